package generation

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/planner"
)

var descriptionSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "description": {"type": "string", "minLength": 1, "maxLength": 500}
  },
  "required": ["description"]
}`)

// Describe asks the model for a short traveller-facing description of d.
// The answer is trimmed to the stored description length.
func (a *Adapter) Describe(ctx context.Context, d *models.Destination) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short description of %s, %s for travellers planning a visit.\n", d.Name, d.Country)
	if d.Theme != nil && *d.Theme != "" {
		fmt.Fprintf(&b, "The destination is known for: %s.\n", *d.Theme)
	}
	if len(d.BestSeasons) > 0 {
		fmt.Fprintf(&b, "Best seasons: %s.\n", strings.Join(d.BestSeasons, ", "))
	}
	fmt.Fprintf(&b, "Mention its main attractions and local culture in at most %d characters.\n", planner.MaxDescriptionLength)

	raw, err := a.completer.Complete(ctx, b.String(), descriptionSchema)
	if err != nil {
		return "", err
	}

	var out struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal([]byte(extractJSON(raw)), &out); err != nil {
		return "", &apperrors.GenerationFormatError{Reason: "response is not a JSON object", Err: err}
	}
	desc := strings.TrimSpace(out.Description)
	if desc == "" {
		return "", &apperrors.GenerationFormatError{Reason: "missing description"}
	}
	return truncateRunes(desc, planner.MaxDescriptionLength), nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n]))
}
