package api

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"parkmate-backend/internal/store"
)

type searchRequest struct {
	Lat     *float64 `json:"lat"`
	Lng     *float64 `json:"lng"`
	RadiusM *int     `json:"radius_m"`
}

// SearchNearby handles POST /api/spaces/search.
func (h *Handler) SearchNearby(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Lat == nil || req.Lng == nil ||
		math.IsNaN(*req.Lat) || math.IsInf(*req.Lat, 0) ||
		math.IsNaN(*req.Lng) || math.IsInf(*req.Lng, 0) {
		fail(c, http.StatusBadRequest, "lat/lng required")
		return
	}
	lat, lng := *req.Lat, *req.Lng
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		fail(c, http.StatusBadRequest, "lat/lng out of range")
		return
	}

	radiusM := h.search.DefaultRadiusM
	if req.RadiusM != nil {
		radiusM = *req.RadiusM
	}
	radiusKm := float64(radiusM) / 1000.0
	if radiusKm < h.search.MinRadiusKm {
		radiusKm = h.search.MinRadiusKm
	}
	if radiusKm > h.search.MaxRadiusKm {
		radiusKm = h.search.MaxRadiusKm
	}

	spaces, err := h.store.SearchNearby(c.Request.Context(), store.SearchQuery{
		Lat:      lat,
		Lng:      lng,
		RadiusKm: radiusKm,
	})
	if err != nil {
		failFromStore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "spaces": spaces})
}
