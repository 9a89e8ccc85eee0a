package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"parkmate-backend/internal/store"
)

type paymentRequest struct {
	ParkingSpaceID int64    `json:"parking_space_id"`
	Payment        *float64 `json:"payment"`
	Pin            string   `json:"pin"`
}

// RecordPayment handles POST /api/payments. The pin is the token the
// driver chose at check-out; matching (space, pin, amount) rows are
// answered idempotently.
func (h *Handler) RecordPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "invalid request body")
		return
	}

	pin := strings.TrimSpace(req.Pin)
	switch {
	case req.ParkingSpaceID <= 0:
		fail(c, http.StatusBadRequest, "parking_space_id is required")
		return
	case req.Payment == nil:
		fail(c, http.StatusBadRequest, "payment is required")
		return
	case pin == "":
		fail(c, http.StatusBadRequest, "pin is required")
		return
	}

	result, err := h.store.RecordPayment(c.Request.Context(), store.PaymentParams{
		ParkingSpaceID: req.ParkingSpaceID,
		Amount:         *req.Payment,
		Pin:            pin,
	})
	if err != nil {
		failFromStore(c, err)
		return
	}

	payload := gin.H{"success": true, "payment_id": result.PaymentID}
	if result.Duplicate {
		payload["duplicate"] = true
	}
	c.JSON(http.StatusOK, payload)
}
