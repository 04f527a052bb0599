package planner

import (
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
)

// Field bounds shared by itineraries and destinations.
const (
	MaxTitleLength       = 100
	MaxNameLength        = 100
	MaxDescriptionLength = 500
	MinRating            = 1
	MaxRating            = 5
	MaxScore             = 10
)

// Validate checks the structural invariants of an itinerary and returns the
// first violation as a *apperrors.ValidationError.
func Validate(it *models.Itinerary) error {
	if it == nil {
		return apperrors.Invalid("itinerary", "is required")
	}

	n := utf8.RuneCountInString(it.Title)
	if n < 1 || n > MaxTitleLength {
		return apperrors.Invalid("title", fmt.Sprintf("must be 1-%d characters", MaxTitleLength))
	}
	if it.StartDate.IsZero() {
		return apperrors.Invalid("start_date", "is required")
	}
	if it.EndDate.IsZero() {
		return apperrors.Invalid("end_date", "is required")
	}
	if !it.EndDate.After(it.StartDate) {
		return apperrors.Invalid("end_date", "must be after start_date")
	}
	if it.UserID == uuid.Nil {
		return apperrors.Invalid("user_id", "is required")
	}
	if err := nonNegative("total_budget", it.TotalBudget); err != nil {
		return err
	}
	if err := nonNegative("total_cost", it.TotalCost); err != nil {
		return err
	}
	if it.Status == "" || !it.Status.Valid() {
		return apperrors.Invalid("status", "must be one of planning, in_progress, completed, cancelled")
	}
	if it.Rating != nil && (math.IsNaN(*it.Rating) || *it.Rating < MinRating || *it.Rating > MaxRating) {
		return apperrors.Invalid("rating", fmt.Sprintf("must be between %d and %d", MinRating, MaxRating))
	}

	if len(it.Destinations) == 0 {
		return apperrors.Invalid("destinations", "at least one destination is required")
	}
	first := it.Destinations[0]
	if first.TravelTimeFromPrevious != nil {
		return apperrors.Invalid("destinations[0].travel_time_from_previous", "must be unset on the first stop")
	}
	if first.TravelCostFromPrevious != nil {
		return apperrors.Invalid("destinations[0].travel_cost_from_previous", "must be unset on the first stop")
	}

	for i := range it.Destinations {
		if err := validateStop(i, &it.Destinations[i]); err != nil {
			return err
		}
	}
	return nil
}

func validateStop(i int, s *models.DestinationStop) error {
	field := func(name string) string { return fmt.Sprintf("destinations[%d].%s", i, name) }

	if s.DestinationID == uuid.Nil {
		return apperrors.Invalid(field("destination_id"), "is required")
	}
	if err := (Coordinate{Lat: s.Latitude, Lon: s.Longitude}).Check(); err != nil {
		return apperrors.Invalid(field("latitude"), err.Error())
	}
	if !s.ArrivalTime.IsZero() && !s.DepartureTime.IsZero() && s.DepartureTime.Before(s.ArrivalTime) {
		return apperrors.Invalid(field("departure_time"), "must not be before arrival_time")
	}
	if s.TravelTimeFromPrevious != nil {
		if err := nonNegative(field("travel_time_from_previous"), *s.TravelTimeFromPrevious); err != nil {
			return err
		}
	}
	if s.TravelCostFromPrevious != nil {
		if err := nonNegative(field("travel_cost_from_previous"), *s.TravelCostFromPrevious); err != nil {
			return err
		}
	}
	if s.BaseCost != nil {
		if err := nonNegative(field("base_cost"), *s.BaseCost); err != nil {
			return err
		}
	}
	if s.CostPerKm != nil {
		if err := nonNegative(field("cost_per_km"), *s.CostPerKm); err != nil {
			return err
		}
	}
	return nil
}

// ValidateDestination checks a destination before it is stored.
func ValidateDestination(d *models.Destination) error {
	if d == nil {
		return apperrors.Invalid("destination", "is required")
	}
	if n := utf8.RuneCountInString(d.Name); n < 1 || n > MaxNameLength {
		return apperrors.Invalid("name", fmt.Sprintf("must be 1-%d characters", MaxNameLength))
	}
	if n := utf8.RuneCountInString(d.Country); n < 1 || n > MaxNameLength {
		return apperrors.Invalid("country", fmt.Sprintf("must be 1-%d characters", MaxNameLength))
	}
	if d.Description != nil && utf8.RuneCountInString(*d.Description) > MaxDescriptionLength {
		return apperrors.Invalid("description", fmt.Sprintf("must be at most %d characters", MaxDescriptionLength))
	}
	if d.Latitude < -90 || d.Latitude > 90 || math.IsNaN(d.Latitude) {
		return apperrors.Invalid("latitude", "must be between -90 and 90")
	}
	if d.Longitude < -180 || d.Longitude > 180 || math.IsNaN(d.Longitude) {
		return apperrors.Invalid("longitude", "must be between -180 and 180")
	}
	for i, s := range d.BestSeasons {
		switch s {
		case models.SeasonSpring, models.SeasonSummer, models.SeasonAutumn, models.SeasonWinter:
		default:
			return apperrors.Invalid(fmt.Sprintf("best_seasons[%d]", i), "must be one of spring, summer, autumn, winter")
		}
	}
	if err := scoreInRange("safety_rating", d.SafetyRating); err != nil {
		return err
	}
	if err := scoreInRange("sustainability_score", d.SustainabilityScore); err != nil {
		return err
	}
	if d.BaseCost != nil {
		if err := nonNegative("base_cost", *d.BaseCost); err != nil {
			return err
		}
	}
	if d.CostPerKm != nil {
		if err := nonNegative("cost_per_km", *d.CostPerKm); err != nil {
			return err
		}
	}
	return nil
}

func nonNegative(field string, v float64) error {
	if math.IsNaN(v) || v < 0 {
		return apperrors.Invalid(field, "must be >= 0")
	}
	return nil
}

func scoreInRange(field string, v *float64) error {
	if v == nil {
		return nil
	}
	if math.IsNaN(*v) || *v < 0 || *v > MaxScore {
		return apperrors.Invalid(field, fmt.Sprintf("must be between 0 and %d", MaxScore))
	}
	return nil
}
