package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"parkmate-backend/internal/geo"
	"parkmate-backend/internal/model"
)

// MaxSearchResults caps a single nearby search.
const MaxSearchResults = 200

// Store defines the interface for all database operations.
type Store interface {
	DB() *gorm.DB

	SearchNearby(ctx context.Context, q SearchQuery) ([]SpaceResult, error)

	CheckIn(ctx context.Context, p CheckInParams) (*model.Vehicle, error)
	CheckOut(ctx context.Context, p CheckOutParams) (*model.Vehicle, error)
	Lookup(ctx context.Context, parkingSpaceID int64, vehicleNo string) (*LookupResult, error)

	CreateSpace(ctx context.Context, p CreateSpaceParams) (*model.ParkingSpace, error)
	OwnerSpaces(ctx context.Context, ownerID int64) ([]OwnerSpace, error)
	RecordPayment(ctx context.Context, p PaymentParams) (*PaymentResult, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

func (s *gormStore) DB() *gorm.DB {
	return s.db
}

// SearchNearby returns approved, geocoded spaces within q.RadiusKm of the
// query point, nearest first, with pricing joined. Candidates are
// pre-filtered in SQL by a bounding box so the per-row trigonometry only
// runs on rows that can plausibly match.
func (s *gormStore) SearchNearby(ctx context.Context, q SearchQuery) ([]SpaceResult, error) {
	box := geo.BoundsAround(q.Lat, q.Lng, q.RadiusKm)

	tx := s.db.WithContext(ctx).
		Where("status = ?", model.StatusAccept).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Where("latitude BETWEEN ? AND ?", box.MinLat, box.MaxLat)
	if !box.WrapsLng {
		tx = tx.Where("longitude BETWEEN ? AND ?", box.MinLng, box.MaxLng)
	}

	var candidates []model.ParkingSpace
	if err := tx.Find(&candidates).Error; err != nil {
		return nil, fmt.Errorf("failed to load search candidates: %w", err)
	}

	results := make([]SpaceResult, 0, len(candidates))
	for _, sp := range candidates {
		d := geo.DistanceKm(q.Lat, q.Lng, *sp.Latitude, *sp.Longitude)
		if d > q.RadiusKm {
			continue
		}
		results = append(results, SpaceResult{
			ID:           sp.ID,
			ParkingName:  sp.ParkingName,
			Location:     sp.Location,
			Latitude:     *sp.Latitude,
			Longitude:    *sp.Longitude,
			Availability: sp.Availability,
			DistanceKm:   d,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].DistanceKm < results[j].DistanceKm
	})
	if len(results) > MaxSearchResults {
		results = results[:MaxSearchResults]
	}

	if len(results) == 0 {
		return results, nil
	}

	// Join pricing in one query and merge by space id.
	ids := make([]int64, len(results))
	for i, r := range results {
		ids[i] = r.ID
	}
	var pricings []model.Pricing
	if err := s.db.WithContext(ctx).Where("parking_space_id IN ?", ids).Find(&pricings).Error; err != nil {
		return nil, fmt.Errorf("failed to load pricing: %w", err)
	}
	priceMap := make(map[int64]model.Pricing, len(pricings))
	for _, p := range pricings {
		priceMap[p.ParkingSpaceID] = p
	}
	for i := range results {
		p, ok := priceMap[results[i].ID]
		if !ok {
			continue
		}
		unit := string(p.PriceUnit)
		results[i].PriceUnit = &unit
		results[i].Cars = p.Cars
		results[i].Vans = p.Vans
		results[i].Bikes = p.Bikes
		results[i].Buses = p.Buses
	}

	return results, nil
}

// CheckIn opens a new session for the plate at the space. The no-duplicate
// check runs inside a transaction; should a concurrent check-in slip past
// it, the partial unique index on (parking_space_id, vehicle_no, status='in')
// rejects the insert and the winner's id is surfaced the same way.
//
// Capacity is deliberately NOT checked here. The capacity snapshot on the
// space is advisory and enforced only by the client-side slot projection.
func (s *gormStore) CheckIn(ctx context.Context, p CheckInParams) (*model.Vehicle, error) {
	vehicle := &model.Vehicle{
		ParkingSpaceID: p.ParkingSpaceID,
		VehicleNo:      p.VehicleNo,
		Category:       p.Category,
		Phone:          p.Phone,
		InTime:         p.InTime,
		Status:         model.SessionIn,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var space model.ParkingSpace
		if err := tx.Select("id").First(&space, p.ParkingSpaceID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSpaceNotFound
			}
			return fmt.Errorf("failed to load parking space %d: %w", p.ParkingSpaceID, err)
		}

		var existing model.Vehicle
		err := tx.
			Where("parking_space_id = ? AND vehicle_no = ? AND status = ?",
				p.ParkingSpaceID, p.VehicleNo, model.SessionIn).
			Order("id DESC").
			First(&existing).Error
		if err == nil {
			return &AlreadyCheckedInError{ExistingID: existing.ID}
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for active session: %w", err)
		}

		if err := tx.Create(vehicle).Error; err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent check-in.
			if winner, lookupErr := s.activeSession(ctx, p.ParkingSpaceID, p.VehicleNo); lookupErr == nil && winner != nil {
				return nil, &AlreadyCheckedInError{ExistingID: winner.ID}
			}
			return nil, &AlreadyCheckedInError{}
		}
		return nil, err
	}
	return vehicle, nil
}

// CheckOut closes the plate's open session: status -> out, out_time and the
// caller-chosen pin stored on the row. The most recent active row wins if
// duplicates ever exist.
func (s *gormStore) CheckOut(ctx context.Context, p CheckOutParams) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.
			Where("parking_space_id = ? AND vehicle_no = ? AND status = ?",
				p.ParkingSpaceID, p.VehicleNo, model.SessionIn).
			Order("id DESC").
			First(&vehicle).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNoActiveSession
		}
		if err != nil {
			return fmt.Errorf("failed to find active session: %w", err)
		}

		out := p.OutTime
		updates := map[string]interface{}{
			"status":   model.SessionOut,
			"out_time": out,
			"pin":      p.Pin,
		}
		if err := tx.Model(&vehicle).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to close session %d: %w", vehicle.ID, err)
		}
		vehicle.Status = model.SessionOut
		vehicle.OutTime = &out
		vehicle.Pin = p.Pin
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// Lookup reports whether the plate has an open session at the space, and
// failing that, its most recent historical session.
func (s *gormStore) Lookup(ctx context.Context, parkingSpaceID int64, vehicleNo string) (*LookupResult, error) {
	active, err := s.activeSession(ctx, parkingSpaceID, vehicleNo)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return &LookupResult{Active: active}, nil
	}

	var last model.Vehicle
	err = s.db.WithContext(ctx).
		Where("parking_space_id = ? AND vehicle_no = ?", parkingSpaceID, vehicleNo).
		Order("id DESC").
		First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &LookupResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last session: %w", err)
	}
	return &LookupResult{Last: &last}, nil
}

func (s *gormStore) activeSession(ctx context.Context, parkingSpaceID int64, vehicleNo string) (*model.Vehicle, error) {
	var v model.Vehicle
	err := s.db.WithContext(ctx).
		Where("parking_space_id = ? AND vehicle_no = ? AND status = ?",
			parkingSpaceID, vehicleNo, model.SessionIn).
		Order("id DESC").
		First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find active session: %w", err)
	}
	return &v, nil
}

// CreateSpace inserts a new listing and its pricing row in one
// transaction. The listing starts in 'pending' until moderation flips it.
func (s *gormStore) CreateSpace(ctx context.Context, p CreateSpaceParams) (*model.ParkingSpace, error) {
	space := &model.ParkingSpace{
		OwnerID:      p.OwnerID,
		ParkingName:  p.ParkingName,
		Location:     p.Location,
		Availability: p.Availability,
		Description:  p.Description,
		Status:       model.StatusPending,
		Latitude:     &p.Latitude,
		Longitude:    &p.Longitude,
		Cars:         p.Counts.Cars,
		Vans:         p.Counts.Vans,
		Bikes:        p.Counts.Bikes,
		Buses:        p.Counts.Buses,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(space).Error; err != nil {
			return fmt.Errorf("failed to create parking space: %w", err)
		}
		pricing := model.Pricing{
			ParkingSpaceID: space.ID,
			PriceUnit:      p.PriceUnit,
			Cars:           p.Prices.Cars,
			Vans:           p.Prices.Vans,
			Bikes:          p.Prices.Bikes,
			Buses:          p.Prices.Buses,
		}
		if err := tx.Create(&pricing).Error; err != nil {
			return fmt.Errorf("failed to create pricing: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return space, nil
}

// OwnerSpaces lists an owner's listings newest first with pricing merged.
func (s *gormStore) OwnerSpaces(ctx context.Context, ownerID int64) ([]OwnerSpace, error) {
	var spaces []model.ParkingSpace
	if err := s.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id DESC").
		Find(&spaces).Error; err != nil {
		return nil, fmt.Errorf("failed to load owner spaces: %w", err)
	}
	if len(spaces) == 0 {
		return []OwnerSpace{}, nil
	}

	ids := make([]int64, len(spaces))
	for i, sp := range spaces {
		ids[i] = sp.ID
	}
	var pricings []model.Pricing
	if err := s.db.WithContext(ctx).Where("parking_space_id IN ?", ids).Find(&pricings).Error; err != nil {
		return nil, fmt.Errorf("failed to load pricing: %w", err)
	}
	priceMap := make(map[int64]model.Pricing, len(pricings))
	for _, p := range pricings {
		priceMap[p.ParkingSpaceID] = p
	}

	out := make([]OwnerSpace, 0, len(spaces))
	for _, sp := range spaces {
		entry := OwnerSpace{Space: sp}
		if p, ok := priceMap[sp.ID]; ok {
			pricing := p
			entry.Pricing = &pricing
		}
		out = append(out, entry)
	}
	return out, nil
}

// RecordPayment stores a settled fee. An identical (space, pin, amount)
// triple is treated as a retry and answered with the existing row, so the
// operation is idempotent.
func (s *gormStore) RecordPayment(ctx context.Context, p PaymentParams) (*PaymentResult, error) {
	var space model.ParkingSpace
	if err := s.db.WithContext(ctx).Select("id").First(&space, p.ParkingSpaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("failed to load parking space %d: %w", p.ParkingSpaceID, err)
	}

	var existing model.Payment
	err := s.db.WithContext(ctx).
		Where("parking_space_id = ? AND pin = ? AND payment = ?", p.ParkingSpaceID, p.Pin, p.Amount).
		Order("id DESC").
		First(&existing).Error
	if err == nil {
		return &PaymentResult{PaymentID: existing.ID, Duplicate: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check for duplicate payment: %w", err)
	}

	payment := model.Payment{
		ParkingSpaceID: p.ParkingSpaceID,
		Payment:        p.Amount,
		Pin:            p.Pin,
	}
	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}
	return &PaymentResult{PaymentID: payment.ID}, nil
}
