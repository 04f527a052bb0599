package models

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of an itinerary
type TripStatus string

const (
	StatusPlanning   TripStatus = "planning"
	StatusInProgress TripStatus = "in_progress"
	StatusCompleted  TripStatus = "completed"
	StatusCancelled  TripStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses
func (s TripStatus) Valid() bool {
	switch s {
	case StatusPlanning, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// DestinationStop is one entry of an itinerary's ordered travel sequence.
// Stops are embedded in their itinerary and stored with it.
type DestinationStop struct {
	DestinationID          uuid.UUID `json:"destination_id"`
	Latitude               float64   `json:"latitude"`
	Longitude              float64   `json:"longitude"`
	ArrivalTime            time.Time `json:"arrival_time"`
	DepartureTime          time.Time `json:"departure_time"`
	TravelTimeFromPrevious *float64  `json:"travel_time_from_previous,omitempty"` // hours
	TravelCostFromPrevious *float64  `json:"travel_cost_from_previous,omitempty"`
	AccommodationID        *string   `json:"accommodation_id,omitempty"`
	BaseCost               *float64  `json:"base_cost,omitempty"`
	CostPerKm              *float64  `json:"cost_per_km,omitempty"`
	Activities             []string  `json:"activities,omitempty"`
}

// Itinerary represents a priced, time-sequenced trip owned by one user
type Itinerary struct {
	ID              uuid.UUID         `json:"id" db:"id"`
	Title           string            `json:"title" db:"title"`
	StartDate       time.Time         `json:"start_date" db:"start_date"`
	EndDate         time.Time         `json:"end_date" db:"end_date"`
	UserID          uuid.UUID         `json:"user_id" db:"user_id"`
	TotalBudget     float64           `json:"total_budget" db:"total_budget"`
	Destinations    []DestinationStop `json:"destinations" db:"destinations"` // JSONB
	TotalCost       float64           `json:"total_cost" db:"total_cost"`
	TotalDistanceKm float64           `json:"total_distance_km" db:"total_distance_km"`
	Status          TripStatus        `json:"status" db:"status"`
	Rating          *float64          `json:"rating,omitempty" db:"rating"`
	CreatedAt       time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time         `json:"updated_at" db:"updated_at"`
}

// Ground copies the destination's coordinates onto the stop and fills any
// cost parameter the stop does not set itself.
func (s *DestinationStop) Ground(d *Destination) {
	s.DestinationID = d.ID
	s.Latitude = d.Latitude
	s.Longitude = d.Longitude
	if s.BaseCost == nil && d.BaseCost != nil {
		v := *d.BaseCost
		s.BaseCost = &v
	}
	if s.CostPerKm == nil && d.CostPerKm != nil {
		v := *d.CostPerKm
		s.CostPerKm = &v
	}
}

// ItineraryFilter narrows an owner's itinerary listing. An empty Status
// matches every status.
type ItineraryFilter struct {
	Status TripStatus
	Limit  int
	Offset int
}
