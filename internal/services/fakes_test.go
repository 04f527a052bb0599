package services

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"TRAVEL_ITINERARY_BACK-END/internal/apperrors"
	"TRAVEL_ITINERARY_BACK-END/internal/events"
	"TRAVEL_ITINERARY_BACK-END/internal/models"
	"TRAVEL_ITINERARY_BACK-END/internal/vectorstore"
)

type fakeItineraryStore struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]models.Itinerary
	inserts int
	updates int
}

func newFakeItineraryStore() *fakeItineraryStore {
	return &fakeItineraryStore{rows: map[uuid.UUID]models.Itinerary{}}
}

func (f *fakeItineraryStore) Create(_ context.Context, it *models.Itinerary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if it.ID == uuid.Nil {
		it.ID = uuid.New()
	}
	f.inserts++
	f.rows[it.ID] = cloneItinerary(it)
	return nil
}

func (f *fakeItineraryStore) GetForOwner(_ context.Context, id, owner uuid.UUID) (*models.Itinerary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.rows[id]
	if !ok || it.UserID != owner {
		return nil, apperrors.ErrNotFound
	}
	c := cloneItinerary(&it)
	return &c, nil
}

func (f *fakeItineraryStore) ListForOwner(_ context.Context, owner uuid.UUID, fl models.ItineraryFilter) ([]models.Itinerary, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Itinerary
	for _, it := range f.rows {
		if it.UserID == owner && (fl.Status == "" || it.Status == fl.Status) {
			out = append(out, it)
		}
	}
	return out, len(out), nil
}

func (f *fakeItineraryStore) UpdateForOwner(_ context.Context, it *models.Itinerary) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cur, ok := f.rows[it.ID]
	if !ok || cur.UserID != it.UserID {
		return apperrors.ErrNotFound
	}
	f.updates++
	f.rows[it.ID] = cloneItinerary(it)
	return nil
}

func (f *fakeItineraryStore) DeleteForOwner(_ context.Context, id, owner uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.rows[id]
	if !ok || it.UserID != owner {
		return apperrors.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

// cloneItinerary deep copies through JSON so stored rows never alias
// the caller's stops.
func cloneItinerary(it *models.Itinerary) models.Itinerary {
	b, err := json.Marshal(it)
	if err != nil {
		panic(err)
	}
	var c models.Itinerary
	if err := json.Unmarshal(b, &c); err != nil {
		panic(err)
	}
	return c
}

type fakeDestinationStore struct {
	rows map[uuid.UUID]models.Destination
}

func newFakeDestinationStore(ds ...models.Destination) *fakeDestinationStore {
	f := &fakeDestinationStore{rows: map[uuid.UUID]models.Destination{}}
	for _, d := range ds {
		f.rows[d.ID] = d
	}
	return f
}

func (f *fakeDestinationStore) Create(_ context.Context, d *models.Destination) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	f.rows[d.ID] = *d
	return nil
}

func (f *fakeDestinationStore) Get(_ context.Context, id uuid.UUID) (*models.Destination, error) {
	d, ok := f.rows[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &d, nil
}

func (f *fakeDestinationStore) GetByName(_ context.Context, name string) (*models.Destination, error) {
	for _, d := range f.rows {
		if strings.EqualFold(d.Name, name) {
			return &d, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeDestinationStore) GetMany(_ context.Context, ids []uuid.UUID) ([]models.Destination, error) {
	var out []models.Destination
	for _, id := range ids {
		if d, ok := f.rows[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDestinationStore) List(_ context.Context, fl models.DestinationFilter) ([]models.Destination, int, error) {
	var all []models.Destination
	for _, d := range f.rows {
		all = append(all, d)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	total := len(all)
	if fl.Offset >= total {
		return nil, total, nil
	}
	all = all[fl.Offset:]
	if fl.Limit > 0 && fl.Limit < len(all) {
		all = all[:fl.Limit]
	}
	return all, total, nil
}

func (f *fakeDestinationStore) UpdateForCreator(_ context.Context, d *models.Destination) error {
	cur, ok := f.rows[d.ID]
	if !ok || cur.CreatedBy != d.CreatedBy {
		return apperrors.ErrNotFound
	}
	f.rows[d.ID] = *d
	return nil
}

func (f *fakeDestinationStore) DeleteForCreator(_ context.Context, id, creator uuid.UUID) error {
	cur, ok := f.rows[id]
	if !ok || cur.CreatedBy != creator {
		return apperrors.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeUserStore struct {
	byID map[uuid.UUID]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byID: map[uuid.UUID]models.User{}}
}

func (f *fakeUserStore) Create(_ context.Context, u *models.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email {
			return apperrors.ErrConflict
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.byID {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeUserStore) Update(_ context.Context, u *models.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return apperrors.ErrNotFound
	}
	f.byID[u.ID] = *u
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.byID[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

type fakeCompleter struct {
	response string
	calls    int
}

func (f *fakeCompleter) Complete(context.Context, string, json.RawMessage) (string, error) {
	f.calls++
	return f.response, nil
}

type fakePublisher struct {
	events []events.Event
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, e events.Event) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, e)
	return nil
}

func (f *fakePublisher) Close() {}

type fakeIndex struct {
	indexed []uuid.UUID
	texts   []string
	failFor uuid.UUID
	matches []vectorstore.Match
	err     error
}

func (f *fakeIndex) Index(_ context.Context, d *models.Destination) error {
	if f.err != nil {
		return f.err
	}
	if f.failFor != uuid.Nil && d.ID == f.failFor {
		return errors.New("embedding failed")
	}
	f.indexed = append(f.indexed, d.ID)
	f.texts = append(f.texts, d.EmbeddingText())
	return nil
}

func (f *fakeIndex) Remove(context.Context, uuid.UUID) error { return f.err }

func (f *fakeIndex) Search(context.Context, string, int) ([]vectorstore.Match, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

var errBroker = errors.New("broker down")
