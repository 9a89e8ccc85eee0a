package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceKm(t *testing.T) {
	testCases := []struct {
		name       string
		latQ, lngQ float64
		latS, lngS float64
		expectedKm float64
		toleranceKm float64
	}{
		{
			name: "Same point is zero, not NaN",
			latQ: 6.9271, lngQ: 79.8612,
			latS: 6.9271, lngS: 79.8612,
			expectedKm:  0,
			toleranceKm: 0.001,
		},
		{
			name: "Colombo Fort to Galle Face Green",
			latQ: 6.9344, lngQ: 79.8428,
			latS: 6.9271, lngS: 79.8425,
			expectedKm:  0.81,
			toleranceKm: 0.05,
		},
		{
			name: "Colombo to Kandy",
			latQ: 6.9271, lngQ: 79.8612,
			latS: 7.2906, lngS: 80.6337,
			expectedKm:  94.3,
			toleranceKm: 1.5,
		},
		{
			name: "Across the equator",
			latQ: 1.0, lngQ: 100.0,
			latS: -1.0, lngS: 100.0,
			expectedKm:  222.4,
			toleranceKm: 1.0,
		},
		{
			name: "Antipodal points are half the circumference",
			latQ: 0, lngQ: 0,
			latS: 0, lngS: 180,
			expectedKm:  math.Pi * EarthRadiusKm,
			toleranceKm: 1.0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DistanceKm(tc.latQ, tc.lngQ, tc.latS, tc.lngS)
			assert.False(t, math.IsNaN(got), "distance must never be NaN")
			assert.InDelta(t, tc.expectedKm, got, tc.toleranceKm)
		})
	}
}

// TestDistanceKmNearDuplicate exercises the acos clamp: coordinates that
// differ only in the last few bits used to produce acos arguments just
// above 1.
func TestDistanceKmNearDuplicate(t *testing.T) {
	lat, lng := 6.9271, 79.8612
	got := DistanceKm(lat, lng, lat+1e-13, lng-1e-13)
	assert.False(t, math.IsNaN(got))
	assert.Less(t, got, 0.001)
}

func TestBoundsAround(t *testing.T) {
	t.Run("Box contains the radius circle", func(t *testing.T) {
		lat, lng, radius := 6.9271, 79.8612, 2.0
		box := BoundsAround(lat, lng, radius)

		assert.False(t, box.WrapsLng)
		// Points on the circle's cardinal extremes must be inside the box.
		assert.LessOrEqual(t, box.MinLat, lat-radius/kmPerDegreeLat)
		assert.GreaterOrEqual(t, box.MaxLat, lat+radius/kmPerDegreeLat)
		assert.Less(t, box.MinLng, lng)
		assert.Greater(t, box.MaxLng, lng)

		// And the exact distance from center to box edge exceeds the radius.
		assert.Greater(t, DistanceKm(lat, lng, lat, box.MaxLng), radius*0.99)
	})

	t.Run("Near the pole falls back to full longitude range", func(t *testing.T) {
		box := BoundsAround(89.9999, 0, 20)
		assert.True(t, box.WrapsLng)
		assert.Equal(t, -180.0, box.MinLng)
		assert.Equal(t, 180.0, box.MaxLng)
	})

	t.Run("Near the antimeridian wraps", func(t *testing.T) {
		box := BoundsAround(0, 179.999, 20)
		assert.True(t, box.WrapsLng)
	})

	t.Run("Latitude clamped to valid range", func(t *testing.T) {
		box := BoundsAround(89.99, 0, 20)
		assert.LessOrEqual(t, box.MaxLat, 90.0)
	})
}
