package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"parkmate-backend/internal/model"
	"parkmate-backend/internal/store"
)

type createSpaceRequest struct {
	OwnerID      int64    `json:"owner_id"`
	ParkingName  string   `json:"parking_name"`
	Location     string   `json:"location"`
	Availability string   `json:"availability"`
	Description  string   `json:"description"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	PriceUnit    string   `json:"price_unit"`

	PriceCars  *int `json:"price_cars"`
	PriceVans  *int `json:"price_vans"`
	PriceBikes *int `json:"price_bikes"`
	PriceBuses *int `json:"price_buses"`

	SpacesCars  int `json:"spaces_cars"`
	SpacesVans  int `json:"spaces_vans"`
	SpacesBikes int `json:"spaces_bikes"`
	SpacesBuses int `json:"spaces_buses"`
}

// CreateSpace handles POST /api/spaces. New listings start as 'pending';
// an external moderation step flips them to 'accept' before they become
// searchable. Agreement and photo files are handled elsewhere.
func (h *Handler) CreateSpace(c *gin.Context) {
	var req createSpaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Latitude == nil || req.Longitude == nil {
		fail(c, http.StatusBadRequest, "latitude and longitude are required")
		return
	}
	if req.OwnerID <= 0 || strings.TrimSpace(req.ParkingName) == "" || strings.TrimSpace(req.Location) == "" {
		fail(c, http.StatusBadRequest, "Missing required fields")
		return
	}
	if req.SpacesCars < 0 || req.SpacesVans < 0 || req.SpacesBikes < 0 || req.SpacesBuses < 0 {
		fail(c, http.StatusBadRequest, "slot counts must be non-negative")
		return
	}

	unit := model.PriceUnit(req.PriceUnit)
	switch unit {
	case "":
		unit = model.UnitHour
	case model.UnitHour, model.UnitDay:
	default:
		fail(c, http.StatusBadRequest, "price_unit must be hour or day")
		return
	}

	space, err := h.store.CreateSpace(c.Request.Context(), store.CreateSpaceParams{
		OwnerID:      req.OwnerID,
		ParkingName:  strings.TrimSpace(req.ParkingName),
		Location:     strings.TrimSpace(req.Location),
		Availability: strings.TrimSpace(req.Availability),
		Description:  strings.TrimSpace(req.Description),
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
		PriceUnit:    unit,
		Counts: store.CategoryCounts{
			Cars:  req.SpacesCars,
			Vans:  req.SpacesVans,
			Bikes: req.SpacesBikes,
			Buses: req.SpacesBuses,
		},
		Prices: store.CategoryPrices{
			Cars:  req.PriceCars,
			Vans:  req.PriceVans,
			Bikes: req.PriceBikes,
			Buses: req.PriceBuses,
		},
	})
	if err != nil {
		failFromStore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"parking_space_id": space.ID,
		"status":           space.Status,
		"latitude":         *space.Latitude,
		"longitude":        *space.Longitude,
	})
}

// ownerSpaceResponse is one row of an owner's dashboard listing.
type ownerSpaceResponse struct {
	ID           int64              `json:"id"`
	ParkingName  string             `json:"parking_name"`
	Location     string             `json:"location"`
	Availability string             `json:"availability"`
	Status       model.SpaceStatus  `json:"status"`
	PhotosPath   string             `json:"photos_path"`
	Latitude     *float64           `json:"latitude"`
	Longitude    *float64           `json:"longitude"`
	Counts       map[string]int     `json:"counts"`
	Price        *ownerSpacePricing `json:"price"`
}

type ownerSpacePricing struct {
	Unit  model.PriceUnit `json:"unit"`
	Cars  *int            `json:"cars"`
	Vans  *int            `json:"vans"`
	Bikes *int            `json:"bikes"`
	Buses *int            `json:"buses"`
}

// OwnerSpaces handles GET /api/owners/:owner_id/spaces.
func (h *Handler) OwnerSpaces(c *gin.Context) {
	ownerID, err := strconv.ParseInt(c.Param("owner_id"), 10, 64)
	if err != nil || ownerID <= 0 {
		fail(c, http.StatusBadRequest, "owner_id required")
		return
	}

	spaces, err := h.store.OwnerSpaces(c.Request.Context(), ownerID)
	if err != nil {
		failFromStore(c, err)
		return
	}

	responses := make([]ownerSpaceResponse, 0, len(spaces))
	for _, entry := range spaces {
		sp := entry.Space
		resp := ownerSpaceResponse{
			ID:           sp.ID,
			ParkingName:  sp.ParkingName,
			Location:     sp.Location,
			Availability: sp.Availability,
			Status:       sp.Status,
			PhotosPath:   sp.PhotosPath,
			Latitude:     sp.Latitude,
			Longitude:    sp.Longitude,
			Counts: map[string]int{
				"cars":  sp.Cars,
				"vans":  sp.Vans,
				"bikes": sp.Bikes,
				"buses": sp.Buses,
			},
		}
		if p := entry.Pricing; p != nil {
			resp.Price = &ownerSpacePricing{
				Unit:  p.PriceUnit,
				Cars:  p.Cars,
				Vans:  p.Vans,
				Bikes: p.Bikes,
				Buses: p.Buses,
			}
		}
		responses = append(responses, resp)
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "spaces": responses})
}
