// Package generation turns traveler preferences and a destination list into
// a validated draft itinerary using a language model runtime.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/planner"
	"TRAVEL_ITINERARY_BACK-END/internal/utils"
)

// MaxDurationDays caps the trip length a caller may request
const MaxDurationDays = 60

// Completer returns the model's answer to prompt, constrained to schema
type Completer interface {
	Complete(ctx context.Context, prompt string, schema json.RawMessage) (string, error)
}

// ContextProvider supplies background snippets about a destination
type ContextProvider interface {
	RelatedContext(ctx context.Context, query string, k int) ([]string, error)
}

// Request is the input of one generation call. OwnerID must come from a
// verified identity.
type Request struct {
	OwnerID      uuid.UUID
	Preferences  models.TravelerPreferences
	Destinations []models.Destination
	DurationDays int
	StartDate    time.Time
}

func (r *Request) validate() error {
	if r.OwnerID == uuid.Nil {
		return apperrors.Invalid("user_id", "is required")
	}
	if len(r.Destinations) == 0 {
		return apperrors.Invalid("destinations", "at least one destination is required")
	}
	if r.DurationDays < 1 || r.DurationDays > MaxDurationDays {
		return apperrors.Invalid("duration", fmt.Sprintf("must be between 1 and %d days", MaxDurationDays))
	}
	if r.Preferences.Budget < 0 {
		return apperrors.Invalid("preferences.budget", "must be >= 0")
	}
	return nil
}

// Adapter builds prompts, calls the Completer and converts the answer into
// an unpriced itinerary that already satisfies the structural invariants.
type Adapter struct {
	completer    Completer
	context      ContextProvider
	contextLimit int
}

// NewAdapter creates an Adapter. ctxProvider may be nil.
func NewAdapter(completer Completer, ctxProvider ContextProvider, contextLimit int) *Adapter {
	return &Adapter{completer: completer, context: ctxProvider, contextLimit: contextLimit}
}

// Generate returns a draft itinerary for req. Malformed model output is
// reported as *apperrors.GenerationFormatError.
func (a *Adapter) Generate(ctx context.Context, req Request) (*models.Itinerary, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	prompt, err := a.buildPrompt(ctx, &req)
	if err != nil {
		return nil, err
	}

	raw, err := a.completer.Complete(ctx, prompt, draftSchema)
	if err != nil {
		return nil, err
	}

	it, err := parseDraft(raw, &req)
	if err != nil {
		return nil, err
	}
	if err := planner.Validate(it); err != nil {
		return nil, &apperrors.GenerationFormatError{Reason: "draft violates itinerary constraints", Err: err}
	}
	return it, nil
}

func (a *Adapter) buildPrompt(ctx context.Context, req *Request) (string, error) {
	prefs, err := json.Marshal(req.Preferences)
	if err != nil {
		return "", fmt.Errorf("marshal preferences: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate a detailed itinerary for a %d-day trip to the following destinations, in a logical travel order.\n", req.DurationDays)
	if !req.StartDate.IsZero() {
		fmt.Fprintf(&b, "The trip starts on %s.\n", utils.FormatDate(req.StartDate))
	}
	fmt.Fprintf(&b, "\nUser preferences: %s\n\nDestinations:\n", prefs)

	for i := range req.Destinations {
		d := &req.Destinations[i]
		fmt.Fprintf(&b, "- destination_id=%s name=%q country=%q", d.ID, d.Name, d.Country)
		if d.Description != nil && *d.Description != "" {
			fmt.Fprintf(&b, " description=%q", *d.Description)
		}
		b.WriteString("\n")
		for _, snippet := range a.relatedContext(ctx, d) {
			fmt.Fprintf(&b, "  context: %s\n", snippet)
		}
	}

	b.WriteString("\nUse only the destination_id values listed above. ")
	b.WriteString("Include specific activities for each stop. Dates use YYYY-MM-DD and times use RFC3339. ")
	b.WriteString("end_date must be after start_date and each departure_time must not be before its arrival_time.\n")
	return b.String(), nil
}

func (a *Adapter) relatedContext(ctx context.Context, d *models.Destination) []string {
	if a.context == nil || a.contextLimit <= 0 {
		return nil
	}
	snippets, err := a.context.RelatedContext(ctx, d.EmbeddingText(), a.contextLimit)
	if err != nil {
		log.Printf("generation: context for %s unavailable: %v", d.Name, err)
		return nil
	}
	return snippets
}

func parseDraft(raw string, req *Request) (*models.Itinerary, error) {
	var d draft
	if err := json.Unmarshal([]byte(extractJSON(raw)), &d); err != nil {
		return nil, &apperrors.GenerationFormatError{Reason: "response is not a JSON object", Err: err}
	}
	if d.Destinations == nil {
		return nil, &apperrors.GenerationFormatError{Reason: "missing destinations"}
	}
	if len(*d.Destinations) == 0 {
		return nil, &apperrors.GenerationFormatError{Reason: "empty destinations"}
	}

	start, err := parseDraftTime("start_date", d.StartDate)
	if err != nil {
		return nil, err
	}
	end, err := parseDraftTime("end_date", d.EndDate)
	if err != nil {
		return nil, err
	}

	budget := req.Preferences.Budget
	if d.TotalBudget != nil {
		budget = *d.TotalBudget
	}

	it := &models.Itinerary{
		Title:       strings.TrimSpace(d.Title),
		StartDate:   start,
		EndDate:     end,
		UserID:      req.OwnerID,
		TotalBudget: budget,
		Status:      models.StatusPlanning,
	}

	for i, ds := range *d.Destinations {
		dest, err := resolveStop(ds, req.Destinations)
		if err != nil {
			return nil, &apperrors.GenerationFormatError{Reason: fmt.Sprintf("destinations[%d]", i), Err: err}
		}
		arrival, err := parseDraftTime(fmt.Sprintf("destinations[%d].arrival_time", i), ds.ArrivalTime)
		if err != nil {
			return nil, err
		}
		departure, err := parseDraftTime(fmt.Sprintf("destinations[%d].departure_time", i), ds.DepartureTime)
		if err != nil {
			return nil, err
		}

		stop := models.DestinationStop{
			ArrivalTime:     arrival,
			DepartureTime:   departure,
			AccommodationID: ds.AccommodationID,
			Activities:      ds.Activities,
		}
		stop.Ground(dest)
		it.Destinations = append(it.Destinations, stop)
	}
	return it, nil
}

var errUnknownDestination = errors.New("references a destination that was not requested")

// resolveStop maps a draft reference, by id or by name, onto one of the
// requested destinations.
func resolveStop(ds draftStop, requested []models.Destination) (*models.Destination, error) {
	if id, err := uuid.Parse(strings.TrimSpace(ds.DestinationID)); err == nil {
		for i := range requested {
			if requested[i].ID == id {
				return &requested[i], nil
			}
		}
	}
	for _, name := range []string{ds.DestinationID, ds.Name} {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		for i := range requested {
			if strings.EqualFold(requested[i].Name, name) {
				return &requested[i], nil
			}
		}
	}
	return nil, fmt.Errorf("%q %w", ds.DestinationID, errUnknownDestination)
}

func parseDraftTime(field, v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}, &apperrors.GenerationFormatError{Reason: "missing " + field}
	}
	t, err := utils.ParseDate(v)
	if err != nil {
		return time.Time{}, &apperrors.GenerationFormatError{Reason: "bad " + field, Err: err}
	}
	return t, nil
}

// extractJSON strips markdown fences or prose around the outermost object.
func extractJSON(raw string) string {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return raw
	}
	return raw[start : end+1]
}
