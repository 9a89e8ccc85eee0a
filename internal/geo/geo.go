// Package geo implements the great-circle distance and bounding-box math
// used by the nearby-space search.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// kmPerDegreeLat is the approximate north-south span of one degree of
// latitude. Good enough for a pre-filter box; the exact distance check
// happens afterwards.
const kmPerDegreeLat = 111.045

// DistanceKm returns the great-circle distance in kilometers between two
// points, using the spherical law of cosines. The acos argument is clamped
// to [-1, 1]: for near-identical coordinates floating-point rounding can
// push it fractionally above 1, which would yield NaN.
func DistanceKm(latQ, lngQ, latS, lngS float64) float64 {
	latQr := radians(latQ)
	latSr := radians(latS)
	dLng := radians(lngS) - radians(lngQ)

	arg := math.Cos(latQr)*math.Cos(latSr)*math.Cos(dLng) +
		math.Sin(latQr)*math.Sin(latSr)
	if arg > 1 {
		arg = 1
	} else if arg < -1 {
		arg = -1
	}
	return EarthRadiusKm * math.Acos(arg)
}

// BoundingBox is a latitude/longitude rectangle around a query point.
// When WrapsLng is true the box crosses the antimeridian (or sits near a
// pole) and the longitude bounds must not be used as a filter.
type BoundingBox struct {
	MinLat, MaxLat float64
	MinLng, MaxLng float64
	WrapsLng       bool
}

// BoundsAround returns a bounding box that fully contains the circle of
// radiusKm around (lat, lng). It over-approximates on purpose: candidates
// inside the box still go through the exact DistanceKm filter.
func BoundsAround(lat, lng, radiusKm float64) BoundingBox {
	dLat := radiusKm / kmPerDegreeLat

	box := BoundingBox{
		MinLat: math.Max(lat-dLat, -90),
		MaxLat: math.Min(lat+dLat, 90),
	}

	// Longitude degrees shrink with cos(lat); near the poles the box
	// degenerates and we fall back to the full longitude range.
	cosLat := math.Cos(radians(lat))
	if cosLat < 1e-6 {
		box.WrapsLng = true
		box.MinLng, box.MaxLng = -180, 180
		return box
	}

	dLng := radiusKm / (kmPerDegreeLat * cosLat)
	box.MinLng = lng - dLng
	box.MaxLng = lng + dLng
	if box.MinLng < -180 || box.MaxLng > 180 {
		box.WrapsLng = true
		box.MinLng, box.MaxLng = -180, 180
	}
	return box
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
