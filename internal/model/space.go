package model

import "time"

// SpaceStatus is the moderation lifecycle state of a listing.
// Moderation itself happens outside this service; we only read the value.
type SpaceStatus string

const (
	StatusPending SpaceStatus = "pending"
	StatusAccept  SpaceStatus = "accept"
	StatusReject  SpaceStatus = "reject"
)

// ParkingSpace represents one parking-space listing. Latitude/Longitude are
// nullable: only geocoded spaces participate in nearby search. The four
// count columns are the capacity snapshot taken at listing time, never
// recomputed from sessions.
type ParkingSpace struct {
	ID            int64       `gorm:"primaryKey" json:"id"`
	OwnerID       int64       `gorm:"index;not null" json:"owner_id"`
	ParkingName   string      `gorm:"size:256;not null" json:"parking_name"`
	Location      string      `gorm:"size:512;not null" json:"location"`
	Availability  string      `gorm:"size:256" json:"availability"`
	Status        SpaceStatus `gorm:"size:16;not null;default:pending;index" json:"status"`
	Description   string      `gorm:"size:1024" json:"description"`
	AgreementPath string      `gorm:"size:512" json:"-"`
	PhotosPath    string      `gorm:"size:512" json:"photos_path"`
	Latitude      *float64    `json:"latitude"`
	Longitude     *float64    `json:"longitude"`

	// Capacity snapshot per category.
	Cars  int `gorm:"not null;default:0" json:"cars"`
	Vans  int `gorm:"not null;default:0" json:"vans"`
	Bikes int `gorm:"not null;default:0" json:"bikes"`
	Buses int `gorm:"not null;default:0" json:"buses"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
