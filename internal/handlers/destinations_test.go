package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/dto"
	"TRAVEL_ITINERARY_BACK-END/internal/middleware"
)

func TestDestinationsPublicReads(t *testing.T) {
	app := newTestApp()
	h := middleware.AuthForWrites(NewDestinationsHandler(app.destinations).Destination, testJWT)

	rec := httptest.NewRecorder()
	h(rec, httptest.NewRequest(http.MethodGet, "/api/destinations/"+parisID.String(), nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var d dto.DestinationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d.Name != "Paris" || d.Languages == nil {
		t.Errorf("got %+v", d)
	}

	tests := []struct {
		path       string
		wantStatus int
		wantKind   string
	}{
		{path: "/api/destinations/" + uuid.NewString(), wantStatus: http.StatusNotFound, wantKind: apperrors.KindNotFound},
		{path: "/api/destinations/not-a-uuid", wantStatus: http.StatusBadRequest, wantKind: apperrors.KindValidation},
		{path: "/api/destinations/search?q=museums", wantStatus: http.StatusServiceUnavailable, wantKind: apperrors.KindGenerationUnavailable},
		{path: "/api/destinations/search", wantStatus: http.StatusBadRequest, wantKind: apperrors.KindValidation},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.wantStatus || decodeError(t, rec).Error != tt.wantKind {
			t.Errorf("GET %s: status = %d, body = %s", tt.path, rec.Code, rec.Body.String())
		}
	}
}

func TestDestinationWrites(t *testing.T) {
	app := newTestApp()
	dh := NewDestinationsHandler(app.destinations)
	creator, other := uuid.New(), uuid.New()

	const body = `{"name": "Kyoto", "country": "Japan", "latitude": 35.0116, "longitude": 135.7681, "best_seasons": ["Spring", "autumn"], "base_cost": 80}`

	rec := httptest.NewRecorder()
	middleware.AuthForWrites(dh.Destinations, testJWT)(rec, httptest.NewRequest(http.MethodPost, "/api/destinations", strings.NewReader(body)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create status = %d, want 401", rec.Code)
	}

	rec = serve(t, dh.Destinations, http.MethodPost, "/api/destinations", body, creator)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var created dto.DestinationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatal(err)
	}
	if created.CreatedBy != creator.String() || created.BestSeasons[0] != "spring" {
		t.Errorf("got %+v", created)
	}
	path := "/api/destinations/" + created.ID

	rec = serve(t, dh.Destination, http.MethodPut, path, `{"name": "Kyoto City"}`, other)
	if rec.Code != http.StatusNotFound {
		t.Errorf("update by non-creator status = %d, want 404", rec.Code)
	}

	rec = serve(t, dh.Destination, http.MethodPut, path, `{"latitude": 95}`, creator)
	if rec.Code != http.StatusBadRequest || decodeError(t, rec).Field != "latitude" {
		t.Errorf("latitude 95: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = serve(t, dh.Destination, http.MethodPut, path, `{"name": "Kyoto City"}`, creator)
	if rec.Code != http.StatusOK {
		t.Errorf("update status = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = serve(t, dh.Destination, http.MethodDelete, path, "", other)
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete by non-creator status = %d, want 404", rec.Code)
	}
	rec = serve(t, dh.Destination, http.MethodDelete, path, "", creator)
	if rec.Code != http.StatusNoContent {
		t.Errorf("delete status = %d", rec.Code)
	}
}

func TestListDestinations(t *testing.T) {
	app := newTestApp()
	h := NewDestinationsHandler(app.destinations)

	rec := httptest.NewRecorder()
	h.Destinations(rec, httptest.NewRequest(http.MethodGet, "/api/destinations?country=italy&limit=500", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var list dto.DestinationListResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if list.Total != 1 || list.Destinations[0].Name != "Rome" {
		t.Errorf("got %+v", list)
	}
	if list.Limit != 100 {
		t.Errorf("limit = %d, want clamp to 100", list.Limit)
	}
}
