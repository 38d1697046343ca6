package domain

import "github.com/paulmach/orb"

// CoordFactor converts fixed-point coordinates to decimal degrees.
const CoordFactor = 1e7

// Point is a geographic coordinate in degrees multiplied by 1e7.
type Point struct {
	Latitude  int32 `json:"latitude"`
	Longitude int32 `json:"longitude"`
}

// LatDegrees returns the latitude in decimal degrees.
func (p Point) LatDegrees() float64 { return float64(p.Latitude) / CoordFactor }

// LonDegrees returns the longitude in decimal degrees.
func (p Point) LonDegrees() float64 { return float64(p.Longitude) / CoordFactor }

// Orb returns the point in orb's (lon, lat) order, still fixed-point scaled.
// int32 values convert to float64 exactly, so comparisons stay exact.
func (p Point) Orb() orb.Point {
	return orb.Point{float64(p.Longitude), float64(p.Latitude)}
}

// Rectangle is a bounding box given by two opposite corners in any order.
type Rectangle struct {
	Lo Point `json:"lo"`
	Hi Point `json:"hi"`
}

// Bound returns the normalized, fixed-point scaled bounds of the rectangle:
// Min holds (left, bottom) and Max holds (right, top).
func (r Rectangle) Bound() orb.Bound {
	lo := r.Lo.Orb()
	return orb.Bound{Min: lo, Max: lo}.Extend(r.Hi.Orb())
}

// Feature is a named place at a fixed location.
type Feature struct {
	Name     string `json:"name"`
	Location Point  `json:"location"`
}

// RouteNote is a message left at a location.
type RouteNote struct {
	Location Point  `json:"location"`
	Message  string `json:"message"`
}

// RouteSummary aggregates a recorded route.
type RouteSummary struct {
	PointCount   int32 `json:"point_count"`
	FeatureCount int32 `json:"feature_count"`
	Distance     int32 `json:"distance"`     // meters
	ElapsedTime  int32 `json:"elapsed_time"` // seconds
}
