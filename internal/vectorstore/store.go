// Package vectorstore indexes destination descriptions as embeddings in
// PostgreSQL (pgvector) and answers nearest-neighbour queries over them.
package vectorstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/utils"
)

// Embedder turns text into a vector
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Match is one search hit. Distance is the cosine distance, lower is closer.
type Match struct {
	DestinationID uuid.UUID `json:"destination_id"`
	Content       string    `json:"content"`
	Distance      float64   `json:"distance"`
}

// Store keeps one embedding per destination
type Store struct {
	pool     *pgxpool.Pool
	embedder Embedder
	dims     int
}

// New creates a Store. dims must match the vector column width.
func New(pool *pgxpool.Pool, embedder Embedder, dims int) *Store {
	return &Store{pool: pool, embedder: embedder, dims: dims}
}

func (s *Store) embed(ctx context.Context, text string) (pgvector.Vector, error) {
	vec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return pgvector.Vector{}, err
	}
	if s.dims > 0 && len(vec) != s.dims {
		return pgvector.Vector{}, fmt.Errorf("embedding has %d dimensions, index expects %d", len(vec), s.dims)
	}
	return pgvector.NewVector(vec), nil
}

// Index embeds d and upserts it into the index
func (s *Store) Index(ctx context.Context, d *models.Destination) (err error) {
	ctx, done := utils.StartSubsegment(ctx, "VectorStore.Index")
	defer func() { done(err) }()

	content := d.EmbeddingText()
	vec, err := s.embed(ctx, content)
	if err != nil {
		return fmt.Errorf("embed destination %s: %w", d.ID, err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO destination_embeddings (destination_id, content, embedding, updated_at)
         VALUES ($1, $2, $3::vector, NOW())
         ON CONFLICT (destination_id)
         DO UPDATE SET content = EXCLUDED.content, embedding = EXCLUDED.embedding, updated_at = NOW()`,
		d.ID, content, vec.String())
	if err != nil {
		return fmt.Errorf("upsert embedding %s: %w", d.ID, err)
	}
	return nil
}

// Remove drops a destination from the index
func (s *Store) Remove(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM destination_embeddings WHERE destination_id = $1`, id); err != nil {
		return fmt.Errorf("delete embedding %s: %w", id, err)
	}
	return nil
}

// Search returns the k destinations closest to query
func (s *Store) Search(ctx context.Context, query string, k int) (matches []Match, err error) {
	ctx, done := utils.StartSubsegment(ctx, "VectorStore.Search")
	defer func() { done(err) }()

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.New("empty query")
	}
	if k <= 0 {
		k = 5
	}

	vec, err := s.embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := s.pool.Query(ctx,
		`SELECT destination_id, content, embedding <=> $1::vector AS distance
           FROM destination_embeddings
          ORDER BY distance ASC
          LIMIT $2`, vec.String(), k)
	if err != nil {
		return nil, fmt.Errorf("search embeddings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var m Match
		if err := rows.Scan(&m.DestinationID, &m.Content, &m.Distance); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// RelatedContext returns the indexed text of the k nearest destinations,
// for use as background in generation prompts.
func (s *Store) RelatedContext(ctx context.Context, query string, k int) ([]string, error) {
	matches, err := s.Search(ctx, query, k)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Content)
	}
	return out, nil
}
