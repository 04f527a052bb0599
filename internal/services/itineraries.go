package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/events"
	"TRAVEL_ITINERARY_BACK-END/internal/generation"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/planner"
)

// ItineraryService runs the itinerary pipeline: draft or caller input, then
// grounding, aggregation, validation and finally persistence. A failure at
// any stage leaves the store untouched.
type ItineraryService struct {
	itineraries  ItineraryStore
	destinations *DestinationService
	generator    Generator
	aggregator   *planner.Aggregator
	publisher    events.Publisher
}

// NewItineraryService wires an ItineraryService. publisher may be nil.
func NewItineraryService(
	itineraries ItineraryStore,
	destinations *DestinationService,
	generator Generator,
	aggregator *planner.Aggregator,
	publisher events.Publisher,
) *ItineraryService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &ItineraryService{
		itineraries:  itineraries,
		destinations: destinations,
		generator:    generator,
		aggregator:   aggregator,
		publisher:    publisher,
	}
}

// GenerateInput is the caller side of a generate request
type GenerateInput struct {
	Preferences  models.TravelerPreferences
	Destinations []string // ids or names
	DurationDays int
	StartDate    time.Time
}

// ItineraryPatch holds the fields an update may replace. Nil means keep.
type ItineraryPatch struct {
	Title        *string
	StartDate    *time.Time
	EndDate      *time.Time
	TotalBudget  *float64
	Status       *models.TripStatus
	Rating       *float64
	ClearRating  bool
	Destinations *[]models.DestinationStop
}

// Create prices and stores a caller-built itinerary for owner
func (s *ItineraryService) Create(ctx context.Context, owner uuid.UUID, it *models.Itinerary) (*models.Itinerary, error) {
	it.ID = uuid.Nil
	it.UserID = owner
	if it.Status == "" {
		it.Status = models.StatusPlanning
	}
	if err := s.ground(ctx, it.Destinations); err != nil {
		return nil, err
	}
	if err := s.priceAndValidate(it); err != nil {
		return nil, err
	}
	if err := s.itineraries.Create(ctx, it); err != nil {
		return nil, err
	}
	s.publish(ctx, events.ItineraryCreated, it)
	return it, nil
}

// Generate drafts an itinerary with the generation service, prices it and
// stores it for owner.
func (s *ItineraryService) Generate(ctx context.Context, owner uuid.UUID, in GenerateInput) (*models.Itinerary, error) {
	if len(in.Destinations) == 0 {
		return nil, apperrors.Invalid("destinations", "at least one destination is required")
	}
	dests, err := s.destinations.Resolve(ctx, in.Destinations)
	if err != nil {
		return nil, err
	}

	it, err := s.generator.Generate(ctx, generation.Request{
		OwnerID:      owner,
		Preferences:  in.Preferences,
		Destinations: dests,
		DurationDays: in.DurationDays,
		StartDate:    in.StartDate,
	})
	if err != nil {
		return nil, err
	}
	// the draft is trusted only as far as the adapter validated it
	it.ID = uuid.Nil
	it.UserID = owner
	it.Status = models.StatusPlanning

	if err := s.priceAndValidate(it); err != nil {
		return nil, err
	}
	if err := s.itineraries.Create(ctx, it); err != nil {
		return nil, err
	}
	s.publish(ctx, events.ItineraryGenerated, it)
	return it, nil
}

// Get returns owner's itinerary id
func (s *ItineraryService) Get(ctx context.Context, owner, id uuid.UUID) (*models.Itinerary, error) {
	return s.itineraries.GetForOwner(ctx, id, owner)
}

// List returns one page of owner's itineraries and the total count
func (s *ItineraryService) List(ctx context.Context, owner uuid.UUID, f models.ItineraryFilter) ([]models.Itinerary, int, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, apperrors.Invalid("status", "must be one of planning, in_progress, completed, cancelled")
	}
	f.Limit, f.Offset = clampPage(f.Limit, f.Offset)
	return s.itineraries.ListForOwner(ctx, owner, f)
}

// Update applies p to owner's itinerary id, then re-prices and re-validates
// the result. Another user's itinerary reports ErrNotFound.
func (s *ItineraryService) Update(ctx context.Context, owner, id uuid.UUID, p ItineraryPatch) (*models.Itinerary, error) {
	it, err := s.itineraries.GetForOwner(ctx, id, owner)
	if err != nil {
		return nil, err
	}

	if p.Title != nil {
		it.Title = *p.Title
	}
	if p.StartDate != nil {
		it.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		it.EndDate = *p.EndDate
	}
	if p.TotalBudget != nil {
		it.TotalBudget = *p.TotalBudget
	}
	if p.Status != nil {
		it.Status = *p.Status
	}
	if p.ClearRating {
		it.Rating = nil
	} else if p.Rating != nil {
		r := *p.Rating
		it.Rating = &r
	}
	if p.Destinations != nil {
		it.Destinations = *p.Destinations
		if err := s.ground(ctx, it.Destinations); err != nil {
			return nil, err
		}
	}

	if err := s.priceAndValidate(it); err != nil {
		return nil, err
	}
	if err := s.itineraries.UpdateForOwner(ctx, it); err != nil {
		return nil, err
	}
	s.publish(ctx, events.ItineraryUpdated, it)
	return it, nil
}

// Delete removes owner's itinerary id
func (s *ItineraryService) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.itineraries.DeleteForOwner(ctx, id, owner); err != nil {
		return err
	}
	s.publish(ctx, events.ItineraryDeleted, &models.Itinerary{ID: id, UserID: owner})
	return nil
}

// ground fills every stop's coordinates and missing cost parameters from
// its stored destination.
func (s *ItineraryService) ground(ctx context.Context, stops []models.DestinationStop) error {
	if len(stops) == 0 {
		return apperrors.Invalid("destinations", "at least one destination is required")
	}
	ids := make([]uuid.UUID, 0, len(stops))
	for i, st := range stops {
		if st.DestinationID == uuid.Nil {
			return apperrors.Invalid(fmt.Sprintf("destinations[%d].destination_id", i), "is required")
		}
		ids = append(ids, st.DestinationID)
	}

	found, err := s.destinations.store.GetMany(ctx, ids)
	if err != nil {
		return err
	}
	byID := make(map[uuid.UUID]*models.Destination, len(found))
	for i := range found {
		byID[found[i].ID] = &found[i]
	}

	for i := range stops {
		d, ok := byID[stops[i].DestinationID]
		if !ok {
			return apperrors.Invalid(fmt.Sprintf("destinations[%d].destination_id", i), "unknown destination")
		}
		stops[i].Ground(d)
	}
	return nil
}

func (s *ItineraryService) priceAndValidate(it *models.Itinerary) error {
	if _, err := s.aggregator.Aggregate(it); err != nil {
		return err
	}
	return planner.Validate(it)
}

// publish never fails the request, the write has already happened.
func (s *ItineraryService) publish(ctx context.Context, eventType string, it *models.Itinerary) {
	if err := s.publisher.Publish(ctx, events.NewItineraryEvent(eventType, it)); err != nil {
		log.Printf("publish %s for itinerary %s: %v", eventType, it.ID, err)
	}
}
