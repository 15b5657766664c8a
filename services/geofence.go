package services

import (
	"math"
)

const earthRadiusM = 6371000.0

// DistanceMeters returns the great-circle distance between two points
// using the haversine formula.
func DistanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	φ1 := lat1 * math.Pi / 180
	φ2 := lat2 * math.Pi / 180
	Δφ := (lat2 - lat1) * math.Pi / 180
	Δλ := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(Δφ/2)*math.Sin(Δφ/2) +
		math.Cos(φ1)*math.Cos(φ2)*
			math.Sin(Δλ/2)*math.Sin(Δλ/2)
	// Floating-point roundoff can push a past 1 for near-antipodal points.
	if a > 1 {
		a = 1
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// InsideRadius reports whether point (lat, lng) lies within radiusM
// meters of the center, boundary inclusive.
func InsideRadius(centerLat, centerLng, lat, lng, radiusM float64) bool {
	return DistanceMeters(centerLat, centerLng, lat, lng) <= radiusM
}
