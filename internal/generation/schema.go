package generation

import "encoding/json"

// draftSchema constrains the model output to the draft itinerary shape.
var draftSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "title": {"type": "string", "minLength": 1, "maxLength": 100},
    "start_date": {"type": "string", "description": "YYYY-MM-DD"},
    "end_date": {"type": "string", "description": "YYYY-MM-DD"},
    "total_budget": {"type": "number", "minimum": 0},
    "destinations": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "properties": {
          "destination_id": {"type": "string"},
          "name": {"type": "string"},
          "arrival_time": {"type": "string", "description": "RFC3339"},
          "departure_time": {"type": "string", "description": "RFC3339"},
          "accommodation_id": {"type": "string"},
          "activities": {"type": "array", "items": {"type": "string"}}
        },
        "required": ["destination_id", "arrival_time", "departure_time"]
      }
    }
  },
  "required": ["title", "start_date", "end_date", "destinations"]
}`)

type draft struct {
	Title        string       `json:"title"`
	StartDate    string       `json:"start_date"`
	EndDate      string       `json:"end_date"`
	TotalBudget  *float64     `json:"total_budget"`
	Destinations *[]draftStop `json:"destinations"`
}

type draftStop struct {
	DestinationID   string   `json:"destination_id"`
	Name            string   `json:"name"`
	ArrivalTime     string   `json:"arrival_time"`
	DepartureTime   string   `json:"departure_time"`
	AccommodationID *string  `json:"accommodation_id"`
	Activities      []string `json:"activities"`
}
