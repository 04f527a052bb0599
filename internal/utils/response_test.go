package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/dto"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantKind    string
		wantField   string
		wantMessage string
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("create: %w", apperrors.Invalid("end_date", "must be after start_date")),
			wantStatus: http.StatusBadRequest,
			wantKind:   apperrors.KindValidation,
			wantField:  "end_date",
		},
		{
			name:       "coordinate",
			err:        fmt.Errorf("leg 2: %w", apperrors.ErrInvalidCoordinate),
			wantStatus: http.StatusBadRequest,
			wantKind:   apperrors.KindInvalidCoordinate,
		},
		{
			name:       "format",
			err:        &apperrors.GenerationFormatError{Reason: "no JSON object"},
			wantStatus: http.StatusBadGateway,
			wantKind:   apperrors.KindGenerationFormat,
		},
		{
			name:       "not found",
			err:        apperrors.ErrNotFound,
			wantStatus: http.StatusNotFound,
			wantKind:   apperrors.KindNotFound,
		},
		{
			name:        "internal",
			err:         errors.New("pq: password authentication failed for user app"),
			wantStatus:  http.StatusInternalServerError,
			wantKind:    apperrors.KindInternal,
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteError(rec, tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var body dto.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if body.Error != tt.wantKind || body.Field != tt.wantField {
				t.Errorf("body = %+v", body)
			}
			if tt.wantMessage != "" && body.Message != tt.wantMessage {
				t.Errorf("message = %q, want %q", body.Message, tt.wantMessage)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	valid := []string{"2024-06-01", "2024-06-01T09:30:00Z", "2024-06-01T09:30:00+02:00", "2024-06-01T09:30:00", "2024-06-01 09:30"}
	for _, s := range valid {
		if _, err := ParseDate(s); err != nil {
			t.Errorf("ParseDate(%q) error = %v", s, err)
		}
	}
	for _, s := range []string{"", "01/06/2024", "2024-13-01", "tomorrow"} {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("ParseDate(%q) accepted", s)
		}
	}
}

func TestQueryInt(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x?limit=500&offset=-3&page=abc&n=7", nil)
	if got := QueryInt(r, "limit", 20, 100); got != 100 {
		t.Errorf("limit = %d, want 100", got)
	}
	if got := QueryInt(r, "offset", 0, 0); got != 0 {
		t.Errorf("offset = %d, want 0", got)
	}
	if got := QueryInt(r, "page", 1, 0); got != 1 {
		t.Errorf("page = %d, want 1", got)
	}
	if got := QueryInt(r, "n", 1, 0); got != 7 {
		t.Errorf("n = %d, want 7", got)
	}
}
