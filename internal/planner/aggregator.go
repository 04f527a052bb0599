package planner

import (
	"fmt"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
)

// AverageSpeedKmh converts leg distance into travel hours.
const AverageSpeedKmh = 100.0

// Summary holds the running totals of one aggregation pass
type Summary struct {
	TotalDistanceKm  float64 `json:"total_distance_km"`
	TotalCost        float64 `json:"total_cost"`
	TotalTravelHours float64 `json:"total_travel_hours"`
	Legs             int     `json:"legs"`
}

// Aggregator walks an itinerary's stops in order and prices every leg.
type Aggregator struct {
	Defaults CostParams
}

// NewAggregator returns an Aggregator falling back to defaults for stops
// without their own cost parameters.
func NewAggregator(defaults CostParams) *Aggregator {
	return &Aggregator{Defaults: defaults}
}

type leg struct {
	hours float64
	cost  float64
}

// Aggregate prices it in place: every stop after the first gets its
// travel time and cost from the previous stop, the first stop has both
// cleared, and TotalCost/TotalDistanceKm receive the sums. Nothing is
// written when any leg fails.
func (a *Aggregator) Aggregate(it *models.Itinerary) (Summary, error) {
	var sum Summary
	stops := it.Destinations
	if len(stops) == 0 {
		return sum, apperrors.Invalid("destinations", "at least one destination is required")
	}

	legs := make([]leg, len(stops))
	for i := 0; i < len(stops)-1; i++ {
		from, to := &stops[i], &stops[i+1]

		d, err := Distance(
			Coordinate{Lat: from.Latitude, Lon: from.Longitude},
			Coordinate{Lat: to.Latitude, Lon: to.Longitude},
		)
		if err != nil {
			return Summary{}, fmt.Errorf("destinations[%d]->destinations[%d]: %w", i, i+1, err)
		}

		params, err := a.paramsFor(i+1, to)
		if err != nil {
			return Summary{}, err
		}

		l := leg{hours: d / AverageSpeedKmh, cost: EstimateTravelCost(d, params)}
		legs[i+1] = l
		sum.TotalDistanceKm += d
		sum.TotalCost += l.cost
		sum.TotalTravelHours += l.hours
		sum.Legs++
	}

	if err := (Coordinate{Lat: stops[0].Latitude, Lon: stops[0].Longitude}).Check(); err != nil {
		return Summary{}, fmt.Errorf("destinations[0]: %w", err)
	}

	stops[0].TravelTimeFromPrevious = nil
	stops[0].TravelCostFromPrevious = nil
	for i := 1; i < len(stops); i++ {
		hours, cost := legs[i].hours, legs[i].cost
		stops[i].TravelTimeFromPrevious = &hours
		stops[i].TravelCostFromPrevious = &cost
	}
	it.TotalCost = sum.TotalCost
	it.TotalDistanceKm = sum.TotalDistanceKm

	return sum, nil
}

func (a *Aggregator) paramsFor(i int, stop *models.DestinationStop) (CostParams, error) {
	p := a.Defaults
	if stop.BaseCost != nil {
		p.BaseCost = *stop.BaseCost
	}
	if stop.CostPerKm != nil {
		p.CostPerKm = *stop.CostPerKm
	}
	if p.BaseCost < 0 {
		return p, apperrors.Invalid(fmt.Sprintf("destinations[%d].base_cost", i), "must be >= 0")
	}
	if p.CostPerKm < 0 {
		return p, apperrors.Invalid(fmt.Sprintf("destinations[%d].cost_per_km", i), "must be >= 0")
	}
	return p, nil
}
