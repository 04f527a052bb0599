package dto

// DestinationRequest is the payload for POST /api/destinations
type DestinationRequest struct {
	Name                string   `json:"name"`
	Country             string   `json:"country"`
	Description         *string  `json:"description"`
	Latitude            float64  `json:"latitude"`
	Longitude           float64  `json:"longitude"`
	Timezone            string   `json:"timezone"`
	Currency            string   `json:"currency"`
	Languages           []string `json:"languages"`
	BestSeasons         []string `json:"best_seasons"` // spring | summer | autumn | winter
	SafetyRating        *float64 `json:"safety_rating"`
	Theme               *string  `json:"theme"`
	SustainabilityScore *float64 `json:"sustainability_score"`
	BaseCost            *float64 `json:"base_cost"`
	CostPerKm           *float64 `json:"cost_per_km"`
}

// UpdateDestinationRequest represents fields allowed to update a destination.
// All fields are optional; only provided ones will be updated
type UpdateDestinationRequest struct {
	Name                *string   `json:"name"`
	Country             *string   `json:"country"`
	Description         *string   `json:"description"`
	Latitude            *float64  `json:"latitude"`
	Longitude           *float64  `json:"longitude"`
	Timezone            *string   `json:"timezone"`
	Currency            *string   `json:"currency"`
	Languages           *[]string `json:"languages"`
	BestSeasons         *[]string `json:"best_seasons"`
	SafetyRating        *float64  `json:"safety_rating"`
	Theme               *string   `json:"theme"`
	SustainabilityScore *float64  `json:"sustainability_score"`
	BaseCost            *float64  `json:"base_cost"`
	CostPerKm           *float64  `json:"cost_per_km"`
}

// DestinationResponse represents a destination in responses
type DestinationResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Country             string   `json:"country"`
	Description         *string  `json:"description,omitempty"`
	Latitude            float64  `json:"latitude"`
	Longitude           float64  `json:"longitude"`
	Timezone            string   `json:"timezone"`
	Currency            string   `json:"currency"`
	Languages           []string `json:"languages"`
	BestSeasons         []string `json:"best_seasons"`
	SafetyRating        *float64 `json:"safety_rating,omitempty"`
	Theme               *string  `json:"theme,omitempty"`
	SustainabilityScore *float64 `json:"sustainability_score,omitempty"`
	BaseCost            *float64 `json:"base_cost,omitempty"`
	CostPerKm           *float64 `json:"cost_per_km,omitempty"`
	CreatedBy           string   `json:"created_by"`
	SchemaVersion       int      `json:"schema_version"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

// DestinationListResponse is a page of destinations
type DestinationListResponse struct {
	Destinations []DestinationResponse `json:"destinations"`
	Total        int                   `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// DestinationSearchHit is one similarity search result; lower distance is closer
type DestinationSearchHit struct {
	Destination DestinationResponse `json:"destination"`
	Distance    float64             `json:"distance"`
}

// DestinationSearchResponse wraps search hits
type DestinationSearchResponse struct {
	Query   string                 `json:"query"`
	Results []DestinationSearchHit `json:"results"`
}
