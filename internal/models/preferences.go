package models

// TravelerPreferences is descriptive input to itinerary generation.
// It is never mutated after construction.
type TravelerPreferences struct {
	Interests               []string `json:"interests"`
	Budget                  float64  `json:"budget"`
	TravelStyle             string   `json:"preferred_travel_style"`
	PreferredActivities     []string `json:"preferred_activities"`
	AccessibilityNeeds      []string `json:"accessibility_needs,omitempty"`
	PreferredTransportation []string `json:"preferred_transportation,omitempty"`
	MaxTravelTime           *float64 `json:"max_travel_time,omitempty"` // hours between stops
}
