package dto

import "TRAVEL_ITINERARY_BACK-END/internal/models"

// StopRequest is one stop of an itinerary payload. Coordinates and any
// missing cost parameters are taken from the referenced destination.
type StopRequest struct {
	DestinationID   string   `json:"destination_id"`
	ArrivalTime     string   `json:"arrival_time"`   // ISO 8601
	DepartureTime   string   `json:"departure_time"` // ISO 8601
	AccommodationID *string  `json:"accommodation_id"`
	BaseCost        *float64 `json:"base_cost"`
	CostPerKm       *float64 `json:"cost_per_km"`
	Activities      []string `json:"activities"`
}

// CreateItineraryRequest represents the payload to create an itinerary
type CreateItineraryRequest struct {
	Title        string        `json:"title"`
	StartDate    string        `json:"start_date"` // ISO 8601 format: YYYY-MM-DD or RFC3339
	EndDate      string        `json:"end_date"`   // ISO 8601 format: YYYY-MM-DD or RFC3339
	TotalBudget  float64       `json:"total_budget"`
	Status       string        `json:"status"` // planning | in_progress | completed | cancelled
	Rating       *float64      `json:"rating"`
	Destinations []StopRequest `json:"destinations"`
}

// UpdateItineraryRequest represents fields allowed to update an itinerary.
// All fields are optional; only provided ones will be updated.
// clear_rating removes the rating.
type UpdateItineraryRequest struct {
	Title        *string        `json:"title"`
	StartDate    *string        `json:"start_date"`
	EndDate      *string        `json:"end_date"`
	TotalBudget  *float64       `json:"total_budget"`
	Status       *string        `json:"status"`
	Rating       *float64       `json:"rating"`
	ClearRating  bool           `json:"clear_rating"`
	Destinations *[]StopRequest `json:"destinations"`
}

// GenerateItineraryRequest asks for a generated itinerary over the given
// destinations, referenced by id or by name.
type GenerateItineraryRequest struct {
	Preferences  models.TravelerPreferences `json:"preferences"`
	Destinations []string                   `json:"destinations"`
	DurationDays int                        `json:"duration_days"`
	StartDate    string                     `json:"start_date,omitempty"`
}

// StopResponse is a priced stop. The first stop carries no from-previous fields.
type StopResponse struct {
	DestinationID          string   `json:"destination_id"`
	Latitude               float64  `json:"latitude"`
	Longitude              float64  `json:"longitude"`
	ArrivalTime            string   `json:"arrival_time"`
	DepartureTime          string   `json:"departure_time"`
	TravelTimeFromPrevious *float64 `json:"travel_time_from_previous,omitempty"`
	TravelCostFromPrevious *float64 `json:"travel_cost_from_previous,omitempty"`
	AccommodationID        *string  `json:"accommodation_id,omitempty"`
	BaseCost               *float64 `json:"base_cost,omitempty"`
	CostPerKm              *float64 `json:"cost_per_km,omitempty"`
	Activities             []string `json:"activities,omitempty"`
}

// ItineraryResponse represents an itinerary in responses
type ItineraryResponse struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	StartDate       string         `json:"start_date"`
	EndDate         string         `json:"end_date"`
	UserID          string         `json:"user_id"`
	TotalBudget     float64        `json:"total_budget"`
	TotalCost       float64        `json:"total_cost"`
	TotalDistanceKm float64        `json:"total_distance_km"`
	Status          string         `json:"status"`
	Rating          *float64       `json:"rating,omitempty"`
	Destinations    []StopResponse `json:"destinations"`
	CreatedAt       string         `json:"created_at"`
	UpdatedAt       string         `json:"updated_at"`
}

// ItineraryEnvelope wraps a single itinerary
type ItineraryEnvelope struct {
	Itinerary ItineraryResponse `json:"itinerary"`
}

// ItineraryListResponse is a page of the caller's itineraries
type ItineraryListResponse struct {
	Itineraries []ItineraryResponse `json:"itineraries"`
	Total       int                 `json:"total"`
	Limit       int                 `json:"limit"`
	Offset      int                 `json:"offset"`
}
