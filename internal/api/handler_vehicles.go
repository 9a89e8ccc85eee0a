package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"parkmate-backend/internal/model"
	"parkmate-backend/internal/parse"
	"parkmate-backend/internal/store"
)

type checkInRequest struct {
	ParkingSpaceID int64  `json:"parking_space_id"`
	VehicleNo      string `json:"vehicle_no"`
	Category       string `json:"category"`
	Phone          string `json:"phone"`
	InTime         string `json:"in_time"`
}

// CheckIn handles POST /api/vehicles/check-in.
func (h *Handler) CheckIn(c *gin.Context) {
	var req checkInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	plate := parse.Plate(req.VehicleNo)
	switch {
	case req.ParkingSpaceID <= 0:
		fail(c, http.StatusBadRequest, "parking_space_id required")
		return
	case plate == "":
		fail(c, http.StatusBadRequest, "vehicle_no required")
		return
	case !model.ValidCategory(req.Category):
		fail(c, http.StatusBadRequest, "category must be one of: cars,vans,bikes,buses")
		return
	}

	inTime := parse.Timestamp(req.InTime, time.Now())
	vehicle, err := h.store.CheckIn(c.Request.Context(), store.CheckInParams{
		ParkingSpaceID: req.ParkingSpaceID,
		VehicleNo:      plate,
		Category:       model.Category(req.Category),
		Phone:          req.Phone,
		InTime:         inTime,
	})
	if err != nil {
		failFromStore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"vehicle_id":       vehicle.ID,
		"parking_space_id": vehicle.ParkingSpaceID,
		"vehicle_no":       vehicle.VehicleNo,
		"category":         vehicle.Category,
		"phone":            vehicle.Phone,
		"in_time":          vehicle.InTime.Format(parse.TimeLayout),
		"status":           vehicle.Status,
	})
}

type checkOutRequest struct {
	ParkingSpaceID int64  `json:"parking_space_id"`
	VehicleNo      string `json:"vehicle_no"`
	OutTime        string `json:"out_time"`
	Pin            string `json:"pin"`
}

// CheckOut handles POST /api/vehicles/check-out.
func (h *Handler) CheckOut(c *gin.Context) {
	var req checkOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	plate := parse.Plate(req.VehicleNo)
	switch {
	case req.ParkingSpaceID <= 0:
		fail(c, http.StatusBadRequest, "parking_space_id required")
		return
	case plate == "":
		fail(c, http.StatusBadRequest, "vehicle_no required")
		return
	case req.Pin == "":
		fail(c, http.StatusBadRequest, "pin required")
		return
	}

	outTime := parse.Timestamp(req.OutTime, time.Now())
	vehicle, err := h.store.CheckOut(c.Request.Context(), store.CheckOutParams{
		ParkingSpaceID: req.ParkingSpaceID,
		VehicleNo:      plate,
		OutTime:        outTime,
		Pin:            req.Pin,
	})
	if err != nil {
		failFromStore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"vehicle_id": vehicle.ID,
		"vehicle_no": vehicle.VehicleNo,
		"out_time":   vehicle.OutTime.Format(parse.TimeLayout),
		"pin":        vehicle.Pin,
		"status":     vehicle.Status,
	})
}

type lookupRequest struct {
	ParkingSpaceID int64  `json:"parking_space_id"`
	VehicleNo      string `json:"vehicle_no"`
}

// Lookup handles POST /api/vehicles/lookup. Read-only: the check-out form
// uses it to pre-fill the start time.
func (h *Handler) Lookup(c *gin.Context) {
	var req lookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	plate := parse.Plate(req.VehicleNo)
	switch {
	case req.ParkingSpaceID <= 0:
		fail(c, http.StatusBadRequest, "parking_space_id required")
		return
	case plate == "":
		fail(c, http.StatusBadRequest, "vehicle_no required")
		return
	}

	result, err := h.store.Lookup(c.Request.Context(), req.ParkingSpaceID, plate)
	if err != nil {
		failFromStore(c, err)
		return
	}

	if result.Active != nil {
		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"active":     true,
			"vehicle_id": result.Active.ID,
			"in_time":    result.Active.InTime.Format(parse.TimeLayout),
		})
		return
	}

	payload := gin.H{"success": true, "active": false}
	if last := result.Last; last != nil {
		payload["last_status"] = last.Status
		payload["last_in_time"] = last.InTime.Format(parse.TimeLayout)
		if last.OutTime != nil {
			payload["last_out_time"] = last.OutTime.Format(parse.TimeLayout)
		} else {
			payload["last_out_time"] = nil
		}
	}
	c.JSON(http.StatusOK, payload)
}
