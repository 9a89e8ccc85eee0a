package model

import "time"

// Payment records one settled parking fee. The pin is the token the driver
// chose at check-out; it authorizes the record but is not a secret.
type Payment struct {
	ID             int64   `gorm:"primaryKey"`
	ParkingSpaceID int64   `gorm:"index;not null"`
	Payment        float64 `gorm:"not null"`
	Pin            string  `gorm:"size:16;not null"`
	CreatedAt      time.Time

	// Associations
	ParkingSpace ParkingSpace `gorm:"constraint:OnDelete:CASCADE"`
}
