package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/planner"
)

// DestinationService manages destinations and their similarity index.
// Anyone may read, only the creator may change or delete.
type DestinationService struct {
	store DestinationStore
	index VectorIndex
}

// NewDestinationService creates a DestinationService. index may be nil, in
// which case search is unavailable.
func NewDestinationService(store DestinationStore, index VectorIndex) *DestinationService {
	return &DestinationService{store: store, index: index}
}

// DestinationPatch holds replaceable destination fields. Nil means keep.
type DestinationPatch struct {
	Name                *string
	Country             *string
	Description         *string
	Latitude            *float64
	Longitude           *float64
	Timezone            *string
	Currency            *string
	Languages           *[]string
	BestSeasons         *[]string
	SafetyRating        *float64
	Theme               *string
	SustainabilityScore *float64
	BaseCost            *float64
	CostPerKm           *float64
}

// SearchResult pairs a destination with its distance to the query
type SearchResult struct {
	Destination models.Destination `json:"destination"`
	Distance    float64            `json:"distance"`
}

// Create validates and stores d as created by creator
func (s *DestinationService) Create(ctx context.Context, creator uuid.UUID, d *models.Destination) (*models.Destination, error) {
	d.ID = uuid.Nil
	d.CreatedBy = creator
	if err := planner.ValidateDestination(d); err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, d); err != nil {
		return nil, err
	}
	s.reindex(ctx, d)
	return d, nil
}

// Get returns one destination
func (s *DestinationService) Get(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	return s.store.Get(ctx, id)
}

// List returns one page of destinations and the total count
func (s *DestinationService) List(ctx context.Context, f models.DestinationFilter) ([]models.Destination, int, error) {
	f.Season = strings.ToLower(strings.TrimSpace(f.Season))
	f.Limit, f.Offset = clampPage(f.Limit, f.Offset)
	return s.store.List(ctx, f)
}

// Update applies p to destination id when creator owns it
func (s *DestinationService) Update(ctx context.Context, creator, id uuid.UUID, p DestinationPatch) (*models.Destination, error) {
	d, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.CreatedBy != creator {
		return nil, fmt.Errorf("destination %s: %w", id, apperrors.ErrNotFound)
	}

	applyDestinationPatch(d, p)
	if err := planner.ValidateDestination(d); err != nil {
		return nil, err
	}
	if err := s.store.UpdateForCreator(ctx, d); err != nil {
		return nil, err
	}
	s.reindex(ctx, d)
	return d, nil
}

// Delete removes destination id when creator owns it
func (s *DestinationService) Delete(ctx context.Context, creator, id uuid.UUID) error {
	if err := s.store.DeleteForCreator(ctx, id, creator); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.Remove(ctx, id); err != nil {
			log.Printf("remove destination %s from index: %v", id, err)
		}
	}
	return nil
}

// Search returns the destinations closest to query, nearest first
func (s *DestinationService) Search(ctx context.Context, query string, k int) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperrors.Invalid("q", "is required")
	}
	if s.index == nil {
		return nil, fmt.Errorf("%w: similarity search is disabled", apperrors.ErrGenerationUnavailable)
	}
	k, _ = clampPage(k, 0)

	matches, err := s.index.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m.DestinationID)
	}
	found, err := s.store.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]models.Destination, len(found))
	for _, d := range found {
		byID[d.ID] = d
	}

	out := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		if d, ok := byID[m.DestinationID]; ok {
			out = append(out, SearchResult{Destination: d, Distance: m.Distance})
		}
	}
	return out, nil
}

// Resolve maps destination references, ids or names, to stored
// destinations in the given order.
func (s *DestinationService) Resolve(ctx context.Context, refs []string) ([]models.Destination, error) {
	out := make([]models.Destination, 0, len(refs))
	for i, ref := range refs {
		ref = strings.TrimSpace(ref)
		field := fmt.Sprintf("destinations[%d]", i)
		if ref == "" {
			return nil, apperrors.Invalid(field, "is empty")
		}

		var (
			d   *models.Destination
			err error
		)
		if id, perr := uuid.Parse(ref); perr == nil {
			d, err = s.store.Get(ctx, id)
		} else {
			d, err = s.store.GetByName(ctx, ref)
		}
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.Invalid(field, fmt.Sprintf("unknown destination %q", ref))
		}
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, nil
}

func (s *DestinationService) reindex(ctx context.Context, d *models.Destination) {
	if s.index == nil {
		return
	}
	if err := s.index.Index(ctx, d); err != nil {
		log.Printf("index destination %s: %v", d.ID, err)
	}
}

func applyDestinationPatch(d *models.Destination, p DestinationPatch) {
	if p.Name != nil {
		d.Name = strings.TrimSpace(*p.Name)
	}
	if p.Country != nil {
		d.Country = strings.TrimSpace(*p.Country)
	}
	if p.Description != nil {
		d.Description = p.Description
	}
	if p.Latitude != nil {
		d.Latitude = *p.Latitude
	}
	if p.Longitude != nil {
		d.Longitude = *p.Longitude
	}
	if p.Timezone != nil {
		d.Timezone = *p.Timezone
	}
	if p.Currency != nil {
		d.Currency = strings.ToUpper(*p.Currency)
	}
	if p.Languages != nil {
		d.Languages = *p.Languages
	}
	if p.BestSeasons != nil {
		d.BestSeasons = *p.BestSeasons
	}
	if p.SafetyRating != nil {
		d.SafetyRating = p.SafetyRating
	}
	if p.Theme != nil {
		d.Theme = p.Theme
	}
	if p.SustainabilityScore != nil {
		d.SustainabilityScore = p.SustainabilityScore
	}
	if p.BaseCost != nil {
		d.BaseCost = p.BaseCost
	}
	if p.CostPerKm != nil {
		d.CostPerKm = p.CostPerKm
	}
}
