// Package services orchestrates the planner, the generation adapter and the
// repositories behind the HTTP handlers. Every collaborator is injected so
// tests can substitute fakes.
package services

import (
	"context"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/generation"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/vectorstore"
)

// Paging defaults shared by list operations
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ItineraryStore persists itineraries, always scoped by owner
type ItineraryStore interface {
	Create(ctx context.Context, it *models.Itinerary) error
	GetForOwner(ctx context.Context, id, owner uuid.UUID) (*models.Itinerary, error)
	ListForOwner(ctx context.Context, owner uuid.UUID, f models.ItineraryFilter) ([]models.Itinerary, int, error)
	UpdateForOwner(ctx context.Context, it *models.Itinerary) error
	DeleteForOwner(ctx context.Context, id, owner uuid.UUID) error
}

// DestinationStore persists destinations
type DestinationStore interface {
	Create(ctx context.Context, d *models.Destination) error
	Get(ctx context.Context, id uuid.UUID) (*models.Destination, error)
	GetByName(ctx context.Context, name string) (*models.Destination, error)
	GetMany(ctx context.Context, ids []uuid.UUID) ([]models.Destination, error)
	List(ctx context.Context, f models.DestinationFilter) ([]models.Destination, int, error)
	UpdateForCreator(ctx context.Context, d *models.Destination) error
	DeleteForCreator(ctx context.Context, id, creator uuid.UUID) error
}

// UserStore persists accounts
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Generator produces draft itineraries
type Generator interface {
	Generate(ctx context.Context, req generation.Request) (*models.Itinerary, error)
}

// VectorIndex is the destination similarity index
type VectorIndex interface {
	Index(ctx context.Context, d *models.Destination) error
	Remove(ctx context.Context, id uuid.UUID) error
	Search(ctx context.Context, query string, k int) ([]vectorstore.Match, error)
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
