// Package planner prices and checks itineraries: great-circle distances,
// per-leg travel cost, the left-to-right aggregation over stops and the
// structural validators applied before anything is stored.
package planner

import (
	"fmt"
	"math"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
)

const earthRadiusKm = 6371.0

// Coordinate is a latitude/longitude pair in degrees
type Coordinate struct {
	Lat float64
	Lon float64
}

// Check returns ErrInvalidCoordinate when c is outside [-90,90]x[-180,180]
func (c Coordinate) Check() error {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return fmt.Errorf("%w: (%g, %g)", apperrors.ErrInvalidCoordinate, c.Lat, c.Lon)
	}
	return nil
}

func degToRad(d float64) float64 {
	return d * (math.Pi / 180)
}

// Distance returns the haversine great-circle distance between a and b in km.
func Distance(a, b Coordinate) (float64, error) {
	if err := a.Check(); err != nil {
		return 0, err
	}
	if err := b.Check(); err != nil {
		return 0, err
	}
	if a == b {
		return 0, nil
	}

	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h just past 1 for antipodal points
	h = math.Min(1, math.Max(0, h))
	c := 2 * math.Asin(math.Sqrt(h))

	return earthRadiusKm * c, nil
}
