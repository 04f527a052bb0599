package handlers

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/config"
	"TRAVEL_ITINERARY_BACK-END/internal/generation"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/planner"
	"TRAVEL_ITINERARY_BACK-END/internal/services"
)

var (
	parisID = uuid.MustParse("5b2f7c1e-3f1a-4d4b-9a56-0b8f1d2c3e41")
	romeID  = uuid.MustParse("9c4e2a7d-1b3f-4e6a-8d2c-7f5e1a9b0c62")
	adminID = uuid.MustParse("0d3b6f1a-8c2e-4f7b-9a15-2e6c4d8b7a30")
)

var testJWT = &config.JWTConfig{Secret: "handler-test-secret-123", AccessTokenTTL: time.Hour}

type memItineraries struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.Itinerary
}

func (m *memItineraries) Create(_ context.Context, it *models.Itinerary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	it.ID = uuid.New()
	it.CreatedAt, it.UpdatedAt = time.Now(), time.Now()
	m.rows[it.ID] = *it
	return nil
}

func (m *memItineraries) GetForOwner(_ context.Context, id, owner uuid.UUID) (*models.Itinerary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	it, ok := m.rows[id]
	if !ok || it.UserID != owner {
		return nil, apperrors.ErrNotFound
	}
	it.Destinations = append([]models.DestinationStop(nil), it.Destinations...)
	return &it, nil
}

func (m *memItineraries) ListForOwner(_ context.Context, owner uuid.UUID, f models.ItineraryFilter) ([]models.Itinerary, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Itinerary
	for _, it := range m.rows {
		if it.UserID == owner && (f.Status == "" || it.Status == f.Status) {
			out = append(out, it)
		}
	}
	return out, len(out), nil
}

func (m *memItineraries) UpdateForOwner(_ context.Context, it *models.Itinerary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[it.ID]
	if !ok || cur.UserID != it.UserID {
		return apperrors.ErrNotFound
	}
	m.rows[it.ID] = *it
	return nil
}

func (m *memItineraries) DeleteForOwner(_ context.Context, id, owner uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[id]
	if !ok || cur.UserID != owner {
		return apperrors.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memItineraries) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows)
}

type memDestinations struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.Destination
}

func (m *memDestinations) Create(_ context.Context, d *models.Destination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	d.ID = uuid.New()
	d.SchemaVersion = models.DestinationSchemaVersion
	m.rows[d.ID] = *d
	return nil
}

func (m *memDestinations) Get(_ context.Context, id uuid.UUID) (*models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (m *memDestinations) GetByName(_ context.Context, name string) (*models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, d := range m.rows {
		if strings.EqualFold(d.Name, name) {
			return &d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memDestinations) GetMany(_ context.Context, ids []uuid.UUID) ([]models.Destination, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Destination
	for _, id := range ids {
		if d, ok := m.rows[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *memDestinations) List(_ context.Context, f models.DestinationFilter) ([]models.Destination, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Destination
	for _, d := range m.rows {
		if f.Country == "" || strings.EqualFold(d.Country, f.Country) {
			out = append(out, d)
		}
	}
	return out, len(out), nil
}

func (m *memDestinations) UpdateForCreator(_ context.Context, d *models.Destination) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[d.ID]
	if !ok || cur.CreatedBy != d.CreatedBy {
		return apperrors.ErrNotFound
	}
	m.rows[d.ID] = *d
	return nil
}

func (m *memDestinations) DeleteForCreator(_ context.Context, id, creator uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.rows[id]
	if !ok || cur.CreatedBy != creator {
		return apperrors.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type memUsers struct {
	mu   sync.Mutex
	rows map[uuid.UUID]models.User
}

func (m *memUsers) Create(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.rows {
		if strings.EqualFold(existing.Email, u.Email) {
			return apperrors.ErrConflict
		}
	}
	u.ID = uuid.New()
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *memUsers) Update(_ context.Context, u *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[u.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.rows[u.ID] = *u
	return nil
}

func (m *memUsers) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.rows, id)
	return nil
}

type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(context.Context, string, json.RawMessage) (string, error) {
	return s.response, s.err
}

// testApp wires real services over in-memory stores
type testApp struct {
	itineraryRows *memItineraries
	completer     *stubCompleter
	users         *services.UserService
	destinations  *services.DestinationService
	itineraries   *services.ItineraryService
}

func newTestApp() *testApp {
	dests := &memDestinations{rows: map[uuid.UUID]models.Destination{
		parisID: {ID: parisID, Name: "Paris", Country: "France", Latitude: 48.8566, Longitude: 2.3522, CreatedBy: adminID, SchemaVersion: 2},
		romeID:  {ID: romeID, Name: "Rome", Country: "Italy", Latitude: 41.9028, Longitude: 12.4964, CreatedBy: adminID, SchemaVersion: 2},
	}}
	app := &testApp{
		itineraryRows: &memItineraries{rows: map[uuid.UUID]models.Itinerary{}},
		completer:     &stubCompleter{},
		users:         services.NewUserService(&memUsers{rows: map[uuid.UUID]models.User{}}),
	}
	app.destinations = services.NewDestinationService(dests, nil)
	app.itineraries = services.NewItineraryService(
		app.itineraryRows,
		app.destinations,
		generation.NewAdapter(app.completer, nil, 0),
		planner.NewAggregator(planner.DefaultCostParams),
		nil,
	)
	return app
}
