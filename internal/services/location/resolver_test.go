package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/repository"
)

// fakeStore — хранилище в памяти, имитирующее каталог с уникальными
// индексами по (имя в нижнем регистре, родитель).
type fakeStore struct {
	countries   map[string]int64
	departments map[string]int64
	cities      map[string]int64
	nextID      int64

	beginErr  error
	insertErr error

	// вызывается перед вставкой — имитация параллельного писателя
	beforeInsert func(m map[string]int64, key string)

	commits   int
	rollbacks int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		countries:   map[string]int64{},
		departments: map[string]int64{},
		cities:      map[string]int64{},
		nextID:      1,
	}
}

func (s *fakeStore) Begin(ctx context.Context) (Tx, error) {
	if s.beginErr != nil {
		return nil, s.beginErr
	}
	return &fakeTx{store: s}, nil
}

type fakeTx struct {
	store *fakeStore
}

func (t *fakeTx) find(m map[string]int64, key string) (int64, error) {
	if id, ok := m[key]; ok {
		return id, nil
	}
	return 0, repository.ErrLocationNotFound
}

func (t *fakeTx) insert(m map[string]int64, key string) (int64, error) {
	if t.store.insertErr != nil {
		return 0, t.store.insertErr
	}
	if t.store.beforeInsert != nil {
		t.store.beforeInsert(m, key)
	}
	// Конфликт вставки репозиторий гасит через ON CONFLICT и перечитывает победителя
	if id, ok := m[key]; ok {
		return id, nil
	}
	id := t.store.nextID
	t.store.nextID++
	m[key] = id
	return id, nil
}

func (t *fakeTx) FindCountry(ctx context.Context, name string) (int64, error) {
	return t.find(t.store.countries, strings.ToLower(name))
}
func (t *fakeTx) InsertCountry(ctx context.Context, name string) (int64, error) {
	return t.insert(t.store.countries, strings.ToLower(name))
}
func (t *fakeTx) FindDepartment(ctx context.Context, name string, countryID int64) (int64, error) {
	return t.find(t.store.departments, fmt.Sprintf("%d/%s", countryID, strings.ToLower(name)))
}
func (t *fakeTx) InsertDepartment(ctx context.Context, name string, countryID int64) (int64, error) {
	return t.insert(t.store.departments, fmt.Sprintf("%d/%s", countryID, strings.ToLower(name)))
}
func (t *fakeTx) FindCity(ctx context.Context, name string, departmentID int64) (int64, error) {
	return t.find(t.store.cities, fmt.Sprintf("%d/%s", departmentID, strings.ToLower(name)))
}
func (t *fakeTx) InsertCity(ctx context.Context, name string, departmentID int64) (int64, error) {
	return t.insert(t.store.cities, fmt.Sprintf("%d/%s", departmentID, strings.ToLower(name)))
}
func (t *fakeTx) Commit(ctx context.Context) error {
	t.store.commits++
	return nil
}
func (t *fakeTx) Rollback(ctx context.Context) error {
	t.store.rollbacks++
	return nil
}

// MockLocationStore
type MockLocationStore struct {
	CreateLocationFunc func(ctx context.Context, loc domain.PropertyLocation) (int64, error)
	GetLocationFunc    func(ctx context.Context, id int64) (domain.PropertyLocation, error)
}

func (m *MockLocationStore) CreateLocation(ctx context.Context, loc domain.PropertyLocation) (int64, error) {
	if m.CreateLocationFunc != nil {
		return m.CreateLocationFunc(ctx, loc)
	}
	return 1, nil
}

func (m *MockLocationStore) GetLocation(ctx context.Context, id int64) (domain.PropertyLocation, error) {
	if m.GetLocationFunc != nil {
		return m.GetLocationFunc(ctx, id)
	}
	return domain.PropertyLocation{}, repository.ErrLocationNotFound
}

func newTestResolver(store *fakeStore) *Resolver {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewResolver(log, store, &MockLocationStore{})
}

func TestResolver_Resolve_CreatesHierarchy(t *testing.T) {
	store := newFakeStore()
	r := newTestResolver(store)

	ids, err := r.Resolve(context.Background(), "Guatemala", "Sacatepéquez", "Antigua")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ids.CountryID == 0 || ids.DepartmentID == 0 || ids.CityID == 0 {
		t.Errorf("expected all three IDs resolved, got %+v", ids)
	}
	if store.commits != 1 {
		t.Errorf("expected 1 commit, got %d", store.commits)
	}
}

func TestResolver_Resolve_Idempotent(t *testing.T) {
	store := newFakeStore()
	r := newTestResolver(store)

	first, err := r.Resolve(context.Background(), "Guatemala", "Sacatepéquez", "Antigua")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := r.Resolve(context.Background(), "Guatemala", "Sacatepéquez", "Antigua")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("expected same IDs on repeat resolve: %+v vs %+v", first, second)
	}
	if len(store.countries) != 1 || len(store.departments) != 1 || len(store.cities) != 1 {
		t.Errorf("expected no duplicate rows: %d/%d/%d",
			len(store.countries), len(store.departments), len(store.cities))
	}
}

func TestResolver_Resolve_CaseInsensitive(t *testing.T) {
	store := newFakeStore()
	r := newTestResolver(store)

	first, err := r.Resolve(context.Background(), "Guatemala", "Sacatepéquez", "Antigua")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := r.Resolve(context.Background(), "GUATEMALA", "sacatepéquez", "ANTIGUA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("expected case-insensitive match: %+v vs %+v", first, second)
	}
}

func TestResolver_Resolve_TrimsWhitespace(t *testing.T) {
	store := newFakeStore()
	r := newTestResolver(store)

	first, err := r.Resolve(context.Background(), "Guatemala", "Sacatepéquez", "Antigua")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := r.Resolve(context.Background(), "  Guatemala ", " Sacatepéquez", "Antigua  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first != second {
		t.Errorf("expected trimmed input to match: %+v vs %+v", first, second)
	}
}

func TestResolver_Resolve_HierarchyIsolation(t *testing.T) {
	store := newFakeStore()
	r := newTestResolver(store)

	// Одноимённые города в разных департаментах — разные записи
	a, err := r.Resolve(context.Background(), "Guatemala", "Izabal", "San Pedro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := r.Resolve(context.Background(), "Guatemala", "San Marcos", "San Pedro")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.CountryID != b.CountryID {
		t.Errorf("expected shared country, got %d and %d", a.CountryID, b.CountryID)
	}
	if a.DepartmentID == b.DepartmentID {
		t.Error("expected distinct departments")
	}
	if a.CityID == b.CityID {
		t.Error("expected distinct cities for same name in different departments")
	}
}

func TestResolver_Resolve_MissingInput(t *testing.T) {
	store := newFakeStore()
	r := newTestResolver(store)

	cases := []struct {
		name                       string
		country, department, city  string
	}{
		{"empty country", "", "Sacatepéquez", "Antigua"},
		{"empty department", "Guatemala", "", "Antigua"},
		{"empty city", "Guatemala", "Sacatepéquez", ""},
		{"whitespace only", "   ", "Sacatepéquez", "Antigua"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := r.Resolve(context.Background(), tc.country, tc.department, tc.city)
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}

	// Валидация не должна трогать хранилище
	if store.commits != 0 || len(store.countries) != 0 {
		t.Error("expected storage untouched on invalid input")
	}
}

func TestResolver_Resolve_RollbackOnFailure(t *testing.T) {
	store := newFakeStore()
	store.insertErr = errors.New("connection reset")
	r := newTestResolver(store)

	_, err := r.Resolve(context.Background(), "Guatemala", "Sacatepéquez", "Antigua")
	if !errors.Is(err, ErrResolutionFailed) {
		t.Fatalf("expected ErrResolutionFailed, got %v", err)
	}

	if store.commits != 0 {
		t.Error("expected no commit on failure")
	}
	if store.rollbacks == 0 {
		t.Error("expected rollback on failure")
	}
}

func TestResolver_Resolve_LostInsertRace(t *testing.T) {
	store := newFakeStore()
	// Параллельный писатель успевает вставить строку между Find и Insert;
	// разрешение должно вернуть ID победителя, а не ошибку
	store.beforeInsert = func(m map[string]int64, key string) {
		if _, ok := m[key]; !ok {
			m[key] = 77
			store.beforeInsert = nil
		}
	}
	r := newTestResolver(store)

	ids, err := r.Resolve(context.Background(), "Guatemala", "Sacatepéquez", "Antigua")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ids.CountryID != 77 {
		t.Errorf("expected winner's country id 77, got %d", ids.CountryID)
	}
	if store.commits != 1 {
		t.Errorf("expected transaction to survive the conflict, got %d commits", store.commits)
	}
}

func TestResolver_Resolve_PreservesCause(t *testing.T) {
	store := newFakeStore()
	cause := errors.New("disk on fire")
	store.insertErr = cause
	r := newTestResolver(store)

	_, err := r.Resolve(context.Background(), "Guatemala", "Sacatepéquez", "Antigua")

	// Ошибка хранилища остаётся в цепочке рядом с ErrResolutionFailed
	if !errors.Is(err, ErrResolutionFailed) {
		t.Fatalf("expected ErrResolutionFailed, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected storage cause preserved in chain, got %v", err)
	}
}

func TestResolver_RegisterLocation(t *testing.T) {
	store := newFakeStore()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	var gotLoc domain.PropertyLocation
	creator := &MockLocationStore{
		CreateLocationFunc: func(ctx context.Context, loc domain.PropertyLocation) (int64, error) {
			gotLoc = loc
			return 42, nil
		},
	}
	r := NewResolver(log, store, creator)

	locationID, ids, err := r.RegisterLocation(context.Background(), RegisterLocationInput{
		Country:    "Guatemala",
		Department: "Guatemala",
		City:       "Ciudad de Guatemala",
		Address:    "4a Avenida 15-45, Zona 10",
		Latitude:   14.599512,
		Longitude:  -90.513843,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if locationID != 42 {
		t.Errorf("expected location ID 42, got %d", locationID)
	}
	if gotLoc.CityID != ids.CityID {
		t.Errorf("expected location bound to resolved city %d, got %d", ids.CityID, gotLoc.CityID)
	}
}

func TestResolver_Location(t *testing.T) {
	store := newFakeStore()
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	locations := &MockLocationStore{
		GetLocationFunc: func(ctx context.Context, id int64) (domain.PropertyLocation, error) {
			if id != 42 {
				return domain.PropertyLocation{}, repository.ErrLocationNotFound
			}
			return domain.PropertyLocation{ID: 42, Address: "4a Avenida 15-45", CityID: 3}, nil
		},
	}
	r := NewResolver(log, store, locations)

	loc, err := r.Location(context.Background(), 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Address != "4a Avenida 15-45" || loc.CityID != 3 {
		t.Errorf("unexpected location: %+v", loc)
	}

	if _, err := r.Location(context.Background(), 99); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResolver_RegisterLocation_MissingAddress(t *testing.T) {
	r := newTestResolver(newFakeStore())

	_, _, err := r.RegisterLocation(context.Background(), RegisterLocationInput{
		Country:    "Guatemala",
		Department: "Guatemala",
		City:       "Ciudad de Guatemala",
		Address:    "   ",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput, got %v", err)
	}
}
