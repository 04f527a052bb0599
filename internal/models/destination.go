package models

import (
	"time"

	"github.com/google/uuid"
)

// DestinationSchemaVersion is written on every stored destination. Version 1
// rows lack the safety, theme, sustainability and cost columns.
const DestinationSchemaVersion = 2

// Season values accepted in best_seasons
const (
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonAutumn = "autumn"
	SeasonWinter = "winter"
)

// Destination is a place travellers can add to an itinerary
type Destination struct {
	ID                  uuid.UUID `json:"id" db:"id"`
	Name                string    `json:"name" db:"name"`
	Country             string    `json:"country" db:"country"`
	Description         *string   `json:"description,omitempty" db:"description"`
	Latitude            float64   `json:"latitude" db:"latitude"`
	Longitude           float64   `json:"longitude" db:"longitude"`
	Timezone            string    `json:"timezone" db:"timezone"`
	Currency            string    `json:"currency" db:"currency"`
	Languages           []string  `json:"languages" db:"languages"`
	BestSeasons         []string  `json:"best_seasons" db:"best_seasons"`
	SafetyRating        *float64  `json:"safety_rating,omitempty" db:"safety_rating"`
	Theme               *string   `json:"theme,omitempty" db:"theme"`
	SustainabilityScore *float64  `json:"sustainability_score,omitempty" db:"sustainability_score"`
	BaseCost            *float64  `json:"base_cost,omitempty" db:"base_cost"`
	CostPerKm           *float64  `json:"cost_per_km,omitempty" db:"cost_per_km"`
	CreatedBy           uuid.UUID `json:"created_by" db:"created_by"`
	SchemaVersion       int       `json:"schema_version" db:"schema_version"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// EmbeddingText is the text indexed in the similarity store
func (d *Destination) EmbeddingText() string {
	text := d.Name + ", " + d.Country
	if d.Theme != nil && *d.Theme != "" {
		text += " (" + *d.Theme + ")"
	}
	if d.Description != nil && *d.Description != "" {
		text += ". " + *d.Description
	}
	return text
}

// DestinationFilter narrows the public destination listing
type DestinationFilter struct {
	Country string
	Season  string
	Limit   int
	Offset  int
}
