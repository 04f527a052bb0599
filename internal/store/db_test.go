package store

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind string
	}{
		{name: "nil", err: nil, wantKind: ""},
		{name: "no rows", err: pgx.ErrNoRows, wantKind: apperrors.KindNotFound},
		{name: "wrapped no rows", err: fmt.Errorf("scan: %w", pgx.ErrNoRows), wantKind: apperrors.KindNotFound},
		{name: "unique", err: &pgconn.PgError{Code: "23505"}, wantKind: apperrors.KindConflict},
		{name: "foreign key", err: &pgconn.PgError{Code: "23503", ConstraintName: "itineraries_user_id_fkey"}, wantKind: apperrors.KindValidation},
		{name: "check", err: &pgconn.PgError{Code: "23514", ConstraintName: "itineraries_dates_check"}, wantKind: apperrors.KindValidation},
		{name: "other pg error", err: &pgconn.PgError{Code: "57014"}, wantKind: apperrors.KindInternal},
		{name: "plain", err: errors.New("connection reset"), wantKind: apperrors.KindInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError("op", tt.err)
			if kind := apperrors.KindOf(got); kind != tt.wantKind {
				t.Errorf("KindOf(mapError(%v)) = %q, want %q", tt.err, kind, tt.wantKind)
			}
		})
	}
}

func TestEncodeStops(t *testing.T) {
	got, err := encodeStops(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != "[]" {
		t.Errorf("encodeStops(nil) = %q, want []", got)
	}

	cost := 160.5
	got, err = encodeStops([]models.DestinationStop{{TravelCostFromPrevious: &cost}})
	if err != nil {
		t.Fatal(err)
	}
	if want := `"travel_cost_from_previous":160.5`; !strings.Contains(got, want) {
		t.Errorf("encodeStops() = %s, missing %s", got, want)
	}
}
