package model

import "time"

// Category is the physical vehicle class a slot or session belongs to.
type Category string

const (
	CategoryCars  Category = "cars"
	CategoryVans  Category = "vans"
	CategoryBikes Category = "bikes"
	CategoryBuses Category = "buses"
)

// Categories lists the recognized vehicle categories in display order.
var Categories = []Category{CategoryCars, CategoryVans, CategoryBikes, CategoryBuses}

// ValidCategory reports whether s names a known vehicle category.
func ValidCategory(s string) bool {
	switch Category(s) {
	case CategoryCars, CategoryVans, CategoryBikes, CategoryBuses:
		return true
	}
	return false
}

// SessionStatus is the lifecycle state of one vehicle stay.
type SessionStatus string

const (
	SessionIn  SessionStatus = "in"
	SessionOut SessionStatus = "out"
)

// Vehicle is one vehicle session (a single stay) at a parking space.
// VehicleNo is the normalized upper-case plate; it is not unique across
// time — the same plate accumulates one row per stay. The invariant that
// at most one row per (parking_space_id, vehicle_no) has status='in' is
// backed by a partial unique index created in db.ApplyConstraints.
type Vehicle struct {
	ID             int64         `gorm:"primaryKey"`
	ParkingSpaceID int64         `gorm:"index;not null"`
	VehicleNo      string        `gorm:"size:32;not null;index"`
	Category       Category      `gorm:"size:8;not null"`
	Phone          string        `gorm:"size:32"`
	InTime         time.Time     `gorm:"not null"`
	OutTime        *time.Time    // nil while the vehicle is parked
	Status         SessionStatus `gorm:"size:8;not null"`
	Pin            string        `gorm:"size:16"` // chosen at checkout, consumed by payment recording
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// Associations
	ParkingSpace ParkingSpace `gorm:"constraint:OnDelete:CASCADE"`
}
