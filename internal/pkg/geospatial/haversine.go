package geospatial

import (
	"math"

	"github.com/samirrijal/routeguide/internal/core/domain"
)

// EarthRadiusMeters is the mean Earth radius used by Haversine.
const EarthRadiusMeters = 6371000.0

// Haversine calculates the great-circle distance in meters between two
// points given in decimal degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	sLat := math.Sin(dLat / 2)
	sLon := math.Sin(dLon / 2)
	a := sLat*sLat + math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*(sLon*sLon)

	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMeters * c
}

// Distance returns the great-circle distance in meters between two
// fixed-point coordinates. Out-of-range values still produce a number.
func Distance(a, b domain.Point) float64 {
	return Haversine(a.LatDegrees(), a.LonDegrees(), b.LatDegrees(), b.LonDegrees())
}

// BoundingBox returns a rectangle around p extending radiusMeters in every
// direction, using the same spherical approximation as Haversine.
func BoundingBox(p domain.Point, radiusMeters float64) domain.Rectangle {
	metersPerDegree := EarthRadiusMeters * math.Pi / 180
	latDelta := radiusMeters / metersPerDegree
	lonDelta := radiusMeters / (metersPerDegree * math.Cos(toRad(p.LatDegrees())))

	return domain.Rectangle{
		Lo: FromDegrees(p.LatDegrees()-latDelta, p.LonDegrees()-lonDelta),
		Hi: FromDegrees(p.LatDegrees()+latDelta, p.LonDegrees()+lonDelta),
	}
}

// FromDegrees converts decimal degrees to a fixed-point coordinate,
// rounding to the nearest representable value.
func FromDegrees(lat, lon float64) domain.Point {
	return domain.Point{
		Latitude:  clampInt32(math.Round(lat * domain.CoordFactor)),
		Longitude: clampInt32(math.Round(lon * domain.CoordFactor)),
	}
}

func clampInt32(v float64) int32 {
	switch {
	case v > math.MaxInt32:
		return math.MaxInt32
	case v < math.MinInt32:
		return math.MinInt32
	}
	return int32(v)
}

// toRad multiplies by pi/180 as a single constant, not deg*pi/180.
func toRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}
