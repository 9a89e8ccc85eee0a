package internal

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"parkmate-backend/client"
	"parkmate-backend/config"
	"parkmate-backend/internal/api"
	appdb "parkmate-backend/internal/db"
	"parkmate-backend/internal/model"
	"parkmate-backend/internal/store"
)

// TestParkingLifecycle drives the full stack end to end: the Go client
// and attendant projection on one side, the real router and an in-memory
// database on the other. It walks the day of one space: the owner lists
// it, a driver finds it by distance, the attendant checks vehicles in
// against the local slot grid, and the session closes with a payment.
func TestParkingLifecycle(t *testing.T) {
	// --- Test Setup ---

	// 1. In-memory SQLite with the production schema and constraints.
	gin.SetMode(gin.TestMode)
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to the in-memory database: %v", err)
	}
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	err = testDB.AutoMigrate(&model.ParkingSpace{}, &model.Pricing{}, &model.Vehicle{}, &model.Payment{})
	assert.NoError(t, err)
	assert.NoError(t, appdb.ApplyConstraints(testDB))

	// 2. The real router behind a test server, rate limit raised so the
	// test's burst of requests never trips it.
	cfg := config.Default()
	cfg.Server.RateLimitPerSec = 10000
	cfg.Server.RateBurst = 10000
	server := httptest.NewServer(api.NewRouter(store.NewGormStore(testDB), cfg))
	defer server.Close()

	// 3. An accepted, geocoded space near Colombo Fort, with a bike grid
	// of two slots for the attendant to manage.
	lat, lng := 6.9344, 79.8428
	price := 50
	space := model.ParkingSpace{
		OwnerID: 3, ParkingName: "Fort Railway Parking", Location: "Colombo 01",
		Status: model.StatusAccept, Latitude: &lat, Longitude: &lng,
		Cars: 5, Bikes: 2,
	}
	assert.NoError(t, testDB.Create(&space).Error)
	assert.NoError(t, testDB.Create(&model.Pricing{
		ParkingSpaceID: space.ID, PriceUnit: model.UnitHour, Bikes: &price,
	}).Error)

	ctx := context.Background()
	apiClient := client.New(server.URL)

	// --- Driver side: find the space ---
	var spaceID int64
	t.Run("Search Finds The Space By Distance", func(t *testing.T) {
		hits, err := apiClient.SearchNearby(ctx, 6.9271, 79.8612, 5000)
		assert.NoError(t, err)
		if !assert.Len(t, hits, 1) {
			return
		}
		assert.Equal(t, "Fort Railway Parking", hits[0].ParkingName)
		assert.InDelta(t, 2.2, hits[0].DistanceKm, 0.3)
		if assert.NotNil(t, hits[0].Bikes) {
			assert.Equal(t, 50, *hits[0].Bikes)
		}
		spaceID = hits[0].ID
	})

	// --- Attendant side: fill the bike grid ---
	storage, err := client.NewFileStorage(t.TempDir())
	assert.NoError(t, err)
	attendant, err := client.OpenSpace(apiClient, storage, space.ID, map[string]int{"cars": 5, "bikes": 2})
	assert.NoError(t, err)

	t.Run("Check-Ins Fill The Local Grid", func(t *testing.T) {
		key, err := attendant.CheckIn(ctx, client.CheckInRequest{
			ParkingSpaceID: spaceID, VehicleNo: "bike-101", Category: "bikes", InTime: "08:15",
		})
		assert.NoError(t, err)
		assert.Equal(t, "bikes-0", key)

		key, err = attendant.CheckIn(ctx, client.CheckInRequest{
			ParkingSpaceID: spaceID, VehicleNo: "bike-202", Category: "bikes",
		})
		assert.NoError(t, err)
		assert.Equal(t, "bikes-1", key)

		// Third bike: refused locally, nothing hits the server.
		var before int64
		testDB.Model(&model.Vehicle{}).Count(&before)
		_, err = attendant.CheckIn(ctx, client.CheckInRequest{
			ParkingSpaceID: spaceID, VehicleNo: "bike-303", Category: "bikes",
		})
		assert.ErrorIs(t, err, client.ErrFull)
		var after int64
		testDB.Model(&model.Vehicle{}).Count(&after)
		assert.Equal(t, before, after, "no session row created for a locally refused check-in")
	})

	t.Run("Duplicate Plate Conflicts Server-Side", func(t *testing.T) {
		// A second device without the local projection talks straight to
		// the API; the open-session constraint answers 409.
		_, err := apiClient.CheckIn(ctx, client.CheckInRequest{
			ParkingSpaceID: spaceID, VehicleNo: "BIKE-101", Category: "bikes",
		})
		var apiErr *client.APIError
		if assert.ErrorAs(t, err, &apiErr) {
			assert.Equal(t, 409, apiErr.Status)
			assert.Contains(t, apiErr.Message, "already checked-in")
		}
	})

	// --- Departure: prefill, check out, pay ---
	t.Run("Check-Out And Payment Close The Visit", func(t *testing.T) {
		start, _, err := attendant.PrefillCheckOut(ctx, "bike-101")
		assert.NoError(t, err)
		assert.Equal(t, "08:15", start)

		resp, err := attendant.CheckOut(ctx, client.CheckOutRequest{
			ParkingSpaceID: spaceID, VehicleNo: "bike-101", Pin: "7788",
		})
		assert.NoError(t, err)
		assert.Equal(t, "out", resp.Status)
		assert.Equal(t, 1, attendant.Projection().FreeCount("bikes"))

		pay, err := apiClient.RecordPayment(ctx, spaceID, 100, "7788")
		assert.NoError(t, err)
		assert.False(t, pay.Duplicate)

		replay, err := apiClient.RecordPayment(ctx, spaceID, 100, "7788")
		assert.NoError(t, err)
		assert.True(t, replay.Duplicate)
		assert.Equal(t, pay.PaymentID, replay.PaymentID)

		// The freed slot takes the next arrival.
		key, err := attendant.CheckIn(ctx, client.CheckInRequest{
			ParkingSpaceID: spaceID, VehicleNo: "bike-303", Category: "bikes",
		})
		assert.NoError(t, err)
		assert.Equal(t, "bikes-0", key)
	})

	t.Run("Session History Survives In The Database", func(t *testing.T) {
		var rows []model.Vehicle
		err := testDB.Where("vehicle_no = ?", "BIKE-101").Order("id").Find(&rows).Error
		assert.NoError(t, err)
		if assert.Len(t, rows, 1) {
			assert.Equal(t, model.SessionOut, rows[0].Status)
			assert.NotNil(t, rows[0].OutTime)
			assert.Equal(t, "7788", rows[0].Pin)
		}
	})
}
