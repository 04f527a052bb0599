package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
)

// ItineraryRepository persists itineraries. Every query is filtered by the
// owning user, so another user's itinerary is indistinguishable from a
// missing one.
type ItineraryRepository struct {
	db *DB
}

// NewItineraryRepository creates an ItineraryRepository
func NewItineraryRepository(db *DB) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

const itineraryColumns = `id, user_id, title, start_date, end_date, total_budget, destinations,
       total_cost, total_distance_km, status, rating, created_at, updated_at`

func scanItinerary(row rowScanner) (*models.Itinerary, error) {
	var (
		it    models.Itinerary
		stops []byte
	)
	err := row.Scan(
		&it.ID, &it.UserID, &it.Title, &it.StartDate, &it.EndDate, &it.TotalBudget, &stops,
		&it.TotalCost, &it.TotalDistanceKm, &it.Status, &it.Rating, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(stops, &it.Destinations); err != nil {
		return nil, fmt.Errorf("decode stops of itinerary %s: %w", it.ID, err)
	}
	return &it, nil
}

// encodeStops renders the stops as JSON text. Text rather than []byte,
// since the simple protocol sends byte slices as bytea.
func encodeStops(stops []models.DestinationStop) (string, error) {
	if stops == nil {
		stops = []models.DestinationStop{}
	}
	b, err := json.Marshal(stops)
	if err != nil {
		return "", fmt.Errorf("encode stops: %w", err)
	}
	return string(b), nil
}

// Create inserts a fully priced itinerary
func (r *ItineraryRepository) Create(ctx context.Context, it *models.Itinerary) error {
	stops, err := encodeStops(it.Destinations)
	if err != nil {
		return err
	}
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	now := time.Now().UTC()
	it.CreatedAt, it.UpdatedAt = now, now

	_, err = r.db.Pool.Exec(ctx,
		`INSERT INTO itineraries (`+itineraryColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7::jsonb, $8, $9, $10, $11, $12, $13)`,
		it.ID, it.UserID, it.Title, it.StartDate, it.EndDate, it.TotalBudget, stops,
		it.TotalCost, it.TotalDistanceKm, string(it.Status), it.Rating, it.CreatedAt, it.UpdatedAt,
	)
	return mapError("insert itinerary", err)
}

// GetForOwner loads itinerary id when it belongs to owner
func (r *ItineraryRepository) GetForOwner(ctx context.Context, id, owner uuid.UUID) (*models.Itinerary, error) {
	it, err := scanItinerary(r.db.Pool.QueryRow(ctx,
		`SELECT `+itineraryColumns+` FROM itineraries WHERE id = $1 AND user_id = $2`, id, owner))
	return it, mapError("get itinerary", err)
}

// ListForOwner returns one page of owner's itineraries, newest first, and
// the total number matching f.
func (r *ItineraryRepository) ListForOwner(ctx context.Context, owner uuid.UUID, f models.ItineraryFilter) ([]models.Itinerary, int, error) {
	status := string(f.Status)
	if status == "" {
		status = "all"
	}

	var total int
	if err := r.db.Pool.QueryRow(ctx,
		`SELECT COUNT(1) FROM itineraries WHERE user_id = $1 AND ($2 = 'all' OR status = $2)`,
		owner, status).Scan(&total); err != nil {
		return nil, 0, mapError("count itineraries", err)
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+itineraryColumns+`
           FROM itineraries
          WHERE user_id = $1 AND ($2 = 'all' OR status = $2)
          ORDER BY created_at DESC
          LIMIT $3 OFFSET $4`, owner, status, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, mapError("list itineraries", err)
	}
	defer rows.Close()

	out := make([]models.Itinerary, 0, f.Limit)
	for rows.Next() {
		it, err := scanItinerary(rows)
		if err != nil {
			return nil, 0, mapError("scan itinerary", err)
		}
		out = append(out, *it)
	}
	return out, total, mapError("list itineraries", rows.Err())
}

// UpdateForOwner replaces the stored itinerary when it.UserID owns it
func (r *ItineraryRepository) UpdateForOwner(ctx context.Context, it *models.Itinerary) error {
	stops, err := encodeStops(it.Destinations)
	if err != nil {
		return err
	}
	it.UpdatedAt = time.Now().UTC()

	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE itineraries
            SET title = $1,
                start_date = $2,
                end_date = $3,
                total_budget = $4,
                destinations = $5::jsonb,
                total_cost = $6,
                total_distance_km = $7,
                status = $8,
                rating = $9,
                updated_at = $10
          WHERE id = $11 AND user_id = $12`,
		it.Title, it.StartDate, it.EndDate, it.TotalBudget, stops, it.TotalCost, it.TotalDistanceKm,
		string(it.Status), it.Rating, it.UpdatedAt, it.ID, it.UserID,
	)
	if err != nil {
		return mapError("update itinerary", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteForOwner removes itinerary id when it belongs to owner
func (r *ItineraryRepository) DeleteForOwner(ctx context.Context, id, owner uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM itineraries WHERE id = $1 AND user_id = $2`, id, owner)
	if err != nil {
		return mapError("delete itinerary", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
