// Package client is the Go client for the ParkMate backend: a typed HTTP
// API client plus the attendant-side occupancy projection.
//
// The projection mirrors what the check-in screen shows: a grid of slots
// per category with an occupied set and a plate-to-slot map. It is
// advisory UI state persisted locally per space; the server's session
// table, not this projection, is the source of truth for billing.
package client

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrFull is returned when the requested category has no free slot left
// in the local projection.
var ErrFull = errors.New("no free slot for category")

// ErrAlreadyInside is returned when the plate already occupies a slot in
// the local projection.
var ErrAlreadyInside = errors.New("vehicle already checked in")

// ErrNotParked is returned when releasing a plate the projection does not
// know about.
var ErrNotParked = errors.New("vehicle not currently parked here")

// SlotKey identifies one physical slot as "{category}-{index}" with the
// index ranging over [0, capacity).
func SlotKey(category string, index int) string {
	return fmt.Sprintf("%s-%d", category, index)
}

// ProjectionState is the persisted form of a projection. The short field
// names are the on-disk format carried over from the app's local storage.
type ProjectionState struct {
	Occupied  []string          `json:"ok"`
	ByVehicle map[string]string `json:"bv"`
}

// Projection tracks slot occupancy for one space. Not safe for concurrent
// use; the UI mutates it from a single event loop.
type Projection struct {
	spaceID  int64
	counts   map[string]int  // category -> capacity snapshot
	occupied map[string]bool // slot key -> taken
	byPlate  map[string]string
}

// NewProjection builds an empty projection over the space's capacity
// snapshot. Categories with zero capacity get no slots.
func NewProjection(spaceID int64, counts map[string]int) *Projection {
	c := make(map[string]int, len(counts))
	for k, v := range counts {
		if v > 0 {
			c[k] = v
		}
	}
	return &Projection{
		spaceID:  spaceID,
		counts:   c,
		occupied: make(map[string]bool),
		byPlate:  make(map[string]string),
	}
}

// SpaceID returns the space this projection belongs to.
func (p *Projection) SpaceID() int64 { return p.spaceID }

// allowed reports whether key names a slot inside the current grid.
func (p *Projection) allowed(key string) bool {
	i := strings.LastIndexByte(key, '-')
	if i <= 0 {
		return false
	}
	category := key[:i]
	index, err := strconv.Atoi(key[i+1:])
	if err != nil {
		return false
	}
	return index >= 0 && index < p.counts[category]
}

// Allocate finds the first free slot of the category, marks it occupied
// and maps the plate to it. ErrAlreadyInside if the plate already holds a
// slot, ErrFull if the category has no free slot.
func (p *Projection) Allocate(plate, category string) (string, error) {
	plate = normalizePlate(plate)
	if _, ok := p.byPlate[plate]; ok {
		return "", ErrAlreadyInside
	}
	for i := 0; i < p.counts[category]; i++ {
		key := SlotKey(category, i)
		if !p.occupied[key] {
			p.occupied[key] = true
			p.byPlate[plate] = key
			return key, nil
		}
	}
	return "", ErrFull
}

// Release frees the slot held by the plate and returns its key.
func (p *Projection) Release(plate string) (string, error) {
	plate = normalizePlate(plate)
	key, ok := p.byPlate[plate]
	if !ok {
		return "", ErrNotParked
	}
	delete(p.byPlate, plate)
	delete(p.occupied, key)
	return key, nil
}

// SlotFor returns the slot key the plate occupies, if any.
func (p *Projection) SlotFor(plate string) (string, bool) {
	key, ok := p.byPlate[normalizePlate(plate)]
	return key, ok
}

// FreeCount returns how many slots of the category are unoccupied.
func (p *Projection) FreeCount(category string) int {
	free := p.counts[category]
	for key := range p.occupied {
		if strings.HasPrefix(key, category+"-") {
			free--
		}
	}
	if free < 0 {
		free = 0
	}
	return free
}

// State snapshots the projection for persistence. Slot keys come out
// sorted so the saved form is stable.
func (p *Projection) State() ProjectionState {
	state := ProjectionState{
		Occupied:  make([]string, 0, len(p.occupied)),
		ByVehicle: make(map[string]string, len(p.byPlate)),
	}
	for key := range p.occupied {
		state.Occupied = append(state.Occupied, key)
	}
	sort.Strings(state.Occupied)
	for plate, key := range p.byPlate {
		state.ByVehicle[plate] = key
	}
	return state
}

// Restore loads a persisted state, dropping any slot key that falls
// outside the current grid (the capacity snapshot may have shrunk since
// the state was saved).
func (p *Projection) Restore(state ProjectionState) {
	p.occupied = make(map[string]bool)
	p.byPlate = make(map[string]string)
	for _, key := range state.Occupied {
		if p.allowed(key) {
			p.occupied[key] = true
		}
	}
	for plate, key := range state.ByVehicle {
		if p.allowed(key) {
			p.byPlate[normalizePlate(plate)] = key
		}
	}
}

func normalizePlate(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
