package model

import "time"

// PriceUnit is the billing unit a listing charges by.
type PriceUnit string

const (
	UnitHour PriceUnit = "hour"
	UnitDay  PriceUnit = "day"
)

// Pricing holds the per-category price for one listing. 1:1 with
// ParkingSpace, created at listing time. A nil category price means the
// category is not offered.
type Pricing struct {
	ID             int64     `gorm:"primaryKey"`
	ParkingSpaceID int64     `gorm:"uniqueIndex;not null"`
	PriceUnit      PriceUnit `gorm:"size:8;not null;default:hour"`
	Cars           *int
	Vans           *int
	Bikes          *int
	Buses          *int
	CreatedAt      time.Time

	// Associations
	ParkingSpace ParkingSpace `gorm:"constraint:OnDelete:CASCADE"`
}
