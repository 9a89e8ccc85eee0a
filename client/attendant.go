package client

import (
	"context"
	"fmt"
	"time"
)

// Attendant drives the on-site check-in/check-out screen for one space:
// it combines the API client with the locally persisted slot projection.
// Slot assignment happens purely in the projection; the server only
// learns that a session opened or closed.
type Attendant struct {
	api     *Client
	storage Storage
	proj    *Projection
}

// OpenSpace builds an attendant for the space and reloads any projection
// state persisted from an earlier visit.
func OpenSpace(api *Client, storage Storage, spaceID int64, counts map[string]int) (*Attendant, error) {
	proj := NewProjection(spaceID, counts)
	if state, err := storage.Load(spaceID); err != nil {
		return nil, err
	} else if state != nil {
		proj.Restore(*state)
	}
	return &Attendant{api: api, storage: storage, proj: proj}, nil
}

// Projection exposes the underlying slot grid for rendering.
func (a *Attendant) Projection() *Projection { return a.proj }

// CheckIn runs the full arrival flow. Duplicate plates and full
// categories are rejected locally, before any server round trip; only a
// locally viable check-in reaches the server. On server success the slot
// is marked occupied and the projection persisted.
func (a *Attendant) CheckIn(ctx context.Context, req CheckInRequest) (string, error) {
	plate := normalizePlate(req.VehicleNo)
	if _, ok := a.proj.SlotFor(plate); ok {
		return "", ErrAlreadyInside
	}
	if a.proj.FreeCount(req.Category) == 0 {
		return "", ErrFull
	}

	req.VehicleNo = plate
	if _, err := a.api.CheckIn(ctx, req); err != nil {
		return "", err
	}

	key, err := a.proj.Allocate(plate, req.Category)
	if err != nil {
		// The server session is open regardless; the projection just
		// cannot visualize it.
		return "", err
	}
	return key, a.persist()
}

// CheckOut runs the departure flow: close the session on the server, then
// release the slot and persist. A plate unknown to the projection can
// still check out server-side (the projection may have been reset).
func (a *Attendant) CheckOut(ctx context.Context, req CheckOutRequest) (*CheckOutResponse, error) {
	req.VehicleNo = normalizePlate(req.VehicleNo)
	resp, err := a.api.CheckOut(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := a.proj.Release(req.VehicleNo); err == nil {
		if perr := a.persist(); perr != nil {
			return resp, perr
		}
	}
	return resp, nil
}

// PrefillCheckOut pre-populates the check-out form from the server's view
// of the plate: start time from the active session's in_time, end time
// from now.
func (a *Attendant) PrefillCheckOut(ctx context.Context, vehicleNo string) (start, end string, err error) {
	resp, err := a.api.Lookup(ctx, a.proj.SpaceID(), normalizePlate(vehicleNo))
	if err != nil {
		return "", "", err
	}
	if !resp.Active {
		return "", "", ErrNotParked
	}
	return clockOf(resp.InTime), time.Now().Format("15:04"), nil
}

func (a *Attendant) persist() error {
	if err := a.storage.Save(a.proj.SpaceID(), a.proj.State()); err != nil {
		return fmt.Errorf("failed to persist occupancy: %w", err)
	}
	return nil
}

// clockOf extracts "HH:MM" from a "YYYY-MM-DD HH:MM:SS" wire timestamp.
func clockOf(ts string) string {
	t, err := time.Parse("2006-01-02 15:04:05", ts)
	if err != nil {
		return ""
	}
	return t.Format("15:04")
}
