package store

import (
	"time"

	"parkmate-backend/internal/model"
)

// SearchQuery is a validated nearby-space query. RadiusKm is already
// clamped by the caller.
type SearchQuery struct {
	Lat      float64
	Lng      float64
	RadiusKm float64
}

// SpaceResult is one search hit: the listing joined with its pricing and
// annotated with the computed distance. The cars/vans/bikes/buses fields
// carry the per-category price; nil means the category is not offered (or
// the listing has no pricing row at all).
type SpaceResult struct {
	ID           int64   `json:"id"`
	ParkingName  string  `json:"parking_name"`
	Location     string  `json:"location"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Availability string  `json:"availability"`
	PriceUnit    *string `json:"price_unit"`
	Cars         *int    `json:"cars"`
	Vans         *int    `json:"vans"`
	Bikes        *int    `json:"bikes"`
	Buses        *int    `json:"buses"`
	DistanceKm   float64 `json:"distance_km"`
}

// CheckInParams describes one check-in. VehicleNo must already be
// plate-normalized and InTime already resolved by parse.Timestamp.
type CheckInParams struct {
	ParkingSpaceID int64
	VehicleNo      string
	Category       model.Category
	Phone          string
	InTime         time.Time
}

// CheckOutParams describes one check-out.
type CheckOutParams struct {
	ParkingSpaceID int64
	VehicleNo      string
	OutTime        time.Time
	Pin            string
}

// LookupResult reports a plate's session state at one space. Active is the
// open session if one exists; Last is the most recent historical session
// (nil when the plate has never been here).
type LookupResult struct {
	Active *model.Vehicle
	Last   *model.Vehicle
}

// CategoryCounts is the capacity snapshot supplied at listing time.
type CategoryCounts struct {
	Cars  int
	Vans  int
	Bikes int
	Buses int
}

// CategoryPrices carries per-category prices; nil means not offered.
type CategoryPrices struct {
	Cars  *int
	Vans  *int
	Bikes *int
	Buses *int
}

// CreateSpaceParams describes a new listing. Latitude/Longitude are
// required: the UI geocodes before submitting.
type CreateSpaceParams struct {
	OwnerID      int64
	ParkingName  string
	Location     string
	Availability string
	Description  string
	Latitude     float64
	Longitude    float64
	PriceUnit    model.PriceUnit
	Counts       CategoryCounts
	Prices       CategoryPrices
}

// OwnerSpace is one listing in an owner's dashboard, with pricing attached
// when present.
type OwnerSpace struct {
	Space   model.ParkingSpace
	Pricing *model.Pricing
}

// PaymentParams describes one payment record request.
type PaymentParams struct {
	ParkingSpaceID int64
	Amount         float64
	Pin            string
}

// PaymentResult reports the recorded (or previously recorded) payment.
type PaymentResult struct {
	PaymentID int64
	Duplicate bool
}
