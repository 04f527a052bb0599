package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
)

// DestinationRepository persists destinations. Reads are public, writes
// are scoped to the creating user.
type DestinationRepository struct {
	db *DB
}

// NewDestinationRepository creates a DestinationRepository
func NewDestinationRepository(db *DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

const destinationColumns = `id, name, country, description, latitude, longitude, timezone, currency,
       languages, best_seasons, safety_rating, theme, sustainability_score, base_cost, cost_per_km,
       created_by, schema_version, created_at, updated_at`

func scanDestination(row rowScanner) (*models.Destination, error) {
	var d models.Destination
	err := row.Scan(
		&d.ID, &d.Name, &d.Country, &d.Description, &d.Latitude, &d.Longitude, &d.Timezone, &d.Currency,
		&d.Languages, &d.BestSeasons, &d.SafetyRating, &d.Theme, &d.SustainabilityScore, &d.BaseCost, &d.CostPerKm,
		&d.CreatedBy, &d.SchemaVersion, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts d at the current schema version
func (r *DestinationRepository) Create(ctx context.Context, d *models.Destination) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now().UTC()
	d.CreatedAt, d.UpdatedAt = now, now
	d.SchemaVersion = models.DestinationSchemaVersion
	normalizeDestination(d)

	_, err := r.db.Pool.Exec(ctx,
		`INSERT INTO destinations (`+destinationColumns+`)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		d.ID, d.Name, d.Country, d.Description, d.Latitude, d.Longitude, d.Timezone, d.Currency,
		d.Languages, d.BestSeasons, d.SafetyRating, d.Theme, d.SustainabilityScore, d.BaseCost, d.CostPerKm,
		d.CreatedBy, d.SchemaVersion, d.CreatedAt, d.UpdatedAt,
	)
	return mapError("insert destination", err)
}

// Get loads one destination
func (r *DestinationRepository) Get(ctx context.Context, id uuid.UUID) (*models.Destination, error) {
	d, err := scanDestination(r.db.Pool.QueryRow(ctx,
		`SELECT `+destinationColumns+` FROM destinations WHERE id = $1`, id))
	return d, mapError("get destination", err)
}

// GetByName returns the oldest destination whose name matches, ignoring case
func (r *DestinationRepository) GetByName(ctx context.Context, name string) (*models.Destination, error) {
	d, err := scanDestination(r.db.Pool.QueryRow(ctx,
		`SELECT `+destinationColumns+` FROM destinations
          WHERE LOWER(name) = LOWER($1)
          ORDER BY created_at ASC
          LIMIT 1`, strings.TrimSpace(name)))
	return d, mapError("get destination by name", err)
}

// GetMany loads destinations by id, in no particular order. Missing ids are
// simply absent from the result.
func (r *DestinationRepository) GetMany(ctx context.Context, ids []uuid.UUID) ([]models.Destination, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	strIDs := make([]string, 0, len(ids))
	for _, id := range ids {
		strIDs = append(strIDs, id.String())
	}

	rows, err := r.db.Pool.Query(ctx,
		`SELECT `+destinationColumns+` FROM destinations WHERE id = ANY($1::uuid[])`, strIDs)
	if err != nil {
		return nil, mapError("get destinations", err)
	}
	defer rows.Close()

	out := make([]models.Destination, 0, len(ids))
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, mapError("scan destination", err)
		}
		out = append(out, *d)
	}
	return out, mapError("get destinations", rows.Err())
}

// List returns one page of destinations and the total number matching f
func (r *DestinationRepository) List(ctx context.Context, f models.DestinationFilter) ([]models.Destination, int, error) {
	cond := "WHERE 1=1"
	args := []any{}
	idx := 1
	if f.Country != "" {
		cond += fmt.Sprintf(" AND LOWER(country) = LOWER($%d)", idx)
		args = append(args, f.Country)
		idx++
	}
	if f.Season != "" {
		cond += fmt.Sprintf(" AND $%d = ANY(best_seasons)", idx)
		args = append(args, f.Season)
		idx++
	}

	var total int
	if err := r.db.Pool.QueryRow(ctx, `SELECT COUNT(1) FROM destinations `+cond, args...).Scan(&total); err != nil {
		return nil, 0, mapError("count destinations", err)
	}

	args = append(args, f.Limit, f.Offset)
	rows, err := r.db.Pool.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM destinations %s ORDER BY name ASC LIMIT $%d OFFSET $%d`, destinationColumns, cond, idx, idx+1),
		args...)
	if err != nil {
		return nil, 0, mapError("list destinations", err)
	}
	defer rows.Close()

	out := make([]models.Destination, 0, f.Limit)
	for rows.Next() {
		d, err := scanDestination(rows)
		if err != nil {
			return nil, 0, mapError("scan destination", err)
		}
		out = append(out, *d)
	}
	return out, total, mapError("list destinations", rows.Err())
}

// UpdateForCreator rewrites d when it was created by d.CreatedBy
func (r *DestinationRepository) UpdateForCreator(ctx context.Context, d *models.Destination) error {
	d.UpdatedAt = time.Now().UTC()
	d.SchemaVersion = models.DestinationSchemaVersion
	normalizeDestination(d)

	tag, err := r.db.Pool.Exec(ctx,
		`UPDATE destinations
            SET name = $1, country = $2, description = $3, latitude = $4, longitude = $5,
                timezone = $6, currency = $7, languages = $8, best_seasons = $9,
                safety_rating = $10, theme = $11, sustainability_score = $12,
                base_cost = $13, cost_per_km = $14, schema_version = $15, updated_at = $16
          WHERE id = $17 AND created_by = $18`,
		d.Name, d.Country, d.Description, d.Latitude, d.Longitude,
		d.Timezone, d.Currency, d.Languages, d.BestSeasons,
		d.SafetyRating, d.Theme, d.SustainabilityScore,
		d.BaseCost, d.CostPerKm, d.SchemaVersion, d.UpdatedAt,
		d.ID, d.CreatedBy,
	)
	if err != nil {
		return mapError("update destination", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteForCreator removes a destination owned by creator
func (r *DestinationRepository) DeleteForCreator(ctx context.Context, id, creator uuid.UUID) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM destinations WHERE id = $1 AND created_by = $2`, id, creator)
	if err != nil {
		return mapError("delete destination", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// normalizeDestination replaces nil slices, which the columns reject
func normalizeDestination(d *models.Destination) {
	if d.Languages == nil {
		d.Languages = []string{}
	}
	if d.BestSeasons == nil {
		d.BestSeasons = []string{}
	}
}
