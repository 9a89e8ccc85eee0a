package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APIError is a non-2xx response decoded from the server's failure
// envelope.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client is a typed HTTP client for the ParkMate backend.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// New creates a client for the backend at baseURL.
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 15 * time.Second},
	}
}

// NewWithHTTPClient creates a client using the given http.Client.
func NewWithHTTPClient(baseURL string, httpc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpc: httpc}
}

// Space is one nearby-search hit. The cars/vans/bikes/buses fields are
// per-category prices; nil means not offered.
type Space struct {
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

type searchResponse struct {
	Success bool    `json:"success"`
	Spaces  []Space `json:"spaces"`
}

// SearchNearby returns approved spaces within radiusM meters of the
// point, nearest first.
func (c *Client) SearchNearby(ctx context.Context, lat, lng float64, radiusM int) ([]Space, error) {
	body := map[string]interface{}{"lat": lat, "lng": lng}
	if radiusM > 0 {
		body["radius_m"] = radiusM
	}
	var resp searchResponse
	if err := c.post(ctx, "/api/spaces/search", body, &resp); err != nil {
		return nil, err
	}
	return resp.Spaces, nil
}

// CheckInRequest describes one check-in. InTime accepts "HH:MM", a full
// "YYYY-MM-DD HH:MM[:SS]" timestamp, or empty for server now.
type CheckInRequest struct {
	ParkingSpaceID int64  `json:"parking_space_id"`
	VehicleNo      string `json:"vehicle_no"`
	Category       string `json:"category"`
	Phone          string `json:"phone,omitempty"`
	InTime         string `json:"in_time,omitempty"`
}

// CheckInResponse echoes the created session.
type CheckInResponse struct {
	Success   bool   `json:"success"`
	VehicleID int64  `json:"vehicle_id"`
	VehicleNo string `json:"vehicle_no"`
	Category  string `json:"category"`
	InTime    string `json:"in_time"`
	Status    string `json:"status"`
}

// CheckIn opens a session on the server.
func (c *Client) CheckIn(ctx context.Context, req CheckInRequest) (*CheckInResponse, error) {
	var resp CheckInResponse
	if err := c.post(ctx, "/api/vehicles/check-in", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CheckOutRequest describes one check-out. Pin is required.
type CheckOutRequest struct {
	ParkingSpaceID int64  `json:"parking_space_id"`
	VehicleNo      string `json:"vehicle_no"`
	OutTime        string `json:"out_time,omitempty"`
	Pin            string `json:"pin"`
}

// CheckOutResponse echoes the closed session.
type CheckOutResponse struct {
	Success   bool   `json:"success"`
	VehicleID int64  `json:"vehicle_id"`
	VehicleNo string `json:"vehicle_no"`
	OutTime   string `json:"out_time"`
	Pin       string `json:"pin"`
	Status    string `json:"status"`
}

// CheckOut closes the plate's open session on the server.
func (c *Client) CheckOut(ctx context.Context, req CheckOutRequest) (*CheckOutResponse, error) {
	var resp CheckOutResponse
	if err := c.post(ctx, "/api/vehicles/check-out", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// LookupResponse reports the plate's state at one space. When Active is
// false the Last* fields describe the most recent historical session, if
// any.
type LookupResponse struct {
	Success     bool   `json:"success"`
	Active      bool   `json:"active"`
	VehicleID   int64  `json:"vehicle_id"`
	InTime      string `json:"in_time"`
	LastStatus  string `json:"last_status"`
	LastInTime  string `json:"last_in_time"`
	LastOutTime string `json:"last_out_time"`
}

// Lookup asks the server whether the plate is currently checked in.
func (c *Client) Lookup(ctx context.Context, parkingSpaceID int64, vehicleNo string) (*LookupResponse, error) {
	body := map[string]interface{}{
		"parking_space_id": parkingSpaceID,
		"vehicle_no":       vehicleNo,
	}
	var resp LookupResponse
	if err := c.post(ctx, "/api/vehicles/lookup", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// PaymentResponse reports the recorded payment id; Duplicate marks an
// idempotent replay.
type PaymentResponse struct {
	Success   bool  `json:"success"`
	PaymentID int64 `json:"payment_id"`
	Duplicate bool  `json:"duplicate"`
}

// RecordPayment records a settled fee authorized by the checkout pin.
func (c *Client) RecordPayment(ctx context.Context, parkingSpaceID int64, amount float64, pin string) (*PaymentResponse, error) {
	body := map[string]interface{}{
		"parking_space_id": parkingSpaceID,
		"payment":          amount,
		"pin":              pin,
	}
	var resp PaymentResponse
	if err := c.post(ctx, "/api/payments", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

type failureEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: "Server error"}
		var envelope failureEnvelope
		if jsonErr := json.Unmarshal(data, &envelope); jsonErr == nil && envelope.Message != "" {
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response from %s: %w", path, err)
		}
	}
	return nil
}
