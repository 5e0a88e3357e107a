package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"inmo_backend/internal/config"
	"inmo_backend/internal/domain"
	"inmo_backend/internal/lib/llm"
	"inmo_backend/internal/lib/metrics"
	"inmo_backend/internal/repository"
	"inmo_backend/internal/services/audio"
	"inmo_backend/internal/services/catalog"
	"inmo_backend/internal/services/favorite"
	"inmo_backend/internal/services/search"
	"inmo_backend/internal/services/user"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---- моки репозиториев ----

type MockCatalogRepository struct {
	ListCountriesFunc func(ctx context.Context) ([]domain.Country, error)
	GetCountryFunc    func(ctx context.Context, id int64) (domain.Country, error)
}

func (m *MockCatalogRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	return m.ListCountriesFunc(ctx)
}

func (m *MockCatalogRepository) GetCountry(ctx context.Context, id int64) (domain.Country, error) {
	return m.GetCountryFunc(ctx, id)
}

func (m *MockCatalogRepository) ListDepartments(ctx context.Context, countryID *int64) ([]domain.Department, error) {
	return nil, nil
}

func (m *MockCatalogRepository) GetDepartment(ctx context.Context, id int64) (domain.Department, error) {
	return domain.Department{}, nil
}

func (m *MockCatalogRepository) ListCities(ctx context.Context, departmentID *int64) ([]domain.City, error) {
	return nil, nil
}

func (m *MockCatalogRepository) GetCity(ctx context.Context, id int64) (domain.City, error) {
	return domain.City{}, nil
}

func (m *MockCatalogRepository) ListPropertyTypes(ctx context.Context) ([]domain.PropertyTypeEntry, error) {
	return nil, nil
}

func (m *MockCatalogRepository) GetPropertyType(ctx context.Context, id int64) (domain.PropertyTypeEntry, error) {
	return domain.PropertyTypeEntry{}, nil
}

func (m *MockCatalogRepository) ListAudioCategories(ctx context.Context) ([]domain.AudioCategory, error) {
	return nil, nil
}

func (m *MockCatalogRepository) GetAudioCategory(ctx context.Context, id int64) (domain.AudioCategory, error) {
	return domain.AudioCategory{}, nil
}

func (m *MockCatalogRepository) CreateCountry(ctx context.Context, name string) (int64, error) {
	return 0, nil
}

func (m *MockCatalogRepository) UpdateCountry(ctx context.Context, id int64, name string) error {
	return nil
}

func (m *MockCatalogRepository) DeleteCountry(ctx context.Context, id int64) error { return nil }

func (m *MockCatalogRepository) CreateDepartment(ctx context.Context, name string, countryID int64) (int64, error) {
	return 0, nil
}

func (m *MockCatalogRepository) UpdateDepartment(ctx context.Context, id int64, name string) error {
	return nil
}

func (m *MockCatalogRepository) DeleteDepartment(ctx context.Context, id int64) error { return nil }

func (m *MockCatalogRepository) CreateCity(ctx context.Context, name string, departmentID int64) (int64, error) {
	return 0, nil
}

func (m *MockCatalogRepository) UpdateCity(ctx context.Context, id int64, name string) error {
	return nil
}

func (m *MockCatalogRepository) DeleteCity(ctx context.Context, id int64) error { return nil }

func (m *MockCatalogRepository) CreatePropertyType(ctx context.Context, name string) (int64, error) {
	return 0, nil
}

func (m *MockCatalogRepository) UpdatePropertyType(ctx context.Context, id int64, name string) error {
	return nil
}

func (m *MockCatalogRepository) DeletePropertyType(ctx context.Context, id int64) error { return nil }

func (m *MockCatalogRepository) CreateAudioCategory(ctx context.Context, category domain.AudioCategory) (int64, error) {
	return 0, nil
}

func (m *MockCatalogRepository) UpdateAudioCategory(ctx context.Context, category domain.AudioCategory) error {
	return nil
}

func (m *MockCatalogRepository) DeleteAudioCategory(ctx context.Context, id int64) error { return nil }

type MockUserRepository struct {
	SaveUserFunc   func(ctx context.Context, u domain.User) (uuid.UUID, error)
	GetByEmailFunc func(ctx context.Context, email string) (domain.User, error)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, u domain.User) (uuid.UUID, error) {
	return m.SaveUserFunc(ctx, u)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return m.GetByEmailFunc(ctx, email)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return domain.User{}, repository.ErrUserNotFound
}

func (m *MockUserRepository) GetCounters(ctx context.Context, userID uuid.UUID) (domain.UserCounters, error) {
	return domain.UserCounters{}, nil
}

type MockFavoriteRepository struct {
	AddFunc func(ctx context.Context, userID, propertyID uuid.UUID) error
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	return m.AddFunc(ctx, userID, propertyID)
}

func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	return nil
}

func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	return false, nil
}

func (m *MockFavoriteRepository) ListCards(ctx context.Context, userID uuid.UUID, pager *domain.Pager) ([]domain.ListingCard, error) {
	return nil, nil
}

// MockAudioRepository — записи обработки аудио в памяти.
type MockAudioRepository struct {
	jobs   map[int64]domain.AudioJob
	nextID int64
}

func newMockAudioRepository() *MockAudioRepository {
	return &MockAudioRepository{jobs: map[int64]domain.AudioJob{}, nextID: 1}
}

func (m *MockAudioRepository) CreateJob(ctx context.Context, job domain.AudioJob) (int64, error) {
	job.ID = m.nextID
	m.nextID++
	m.jobs[job.ID] = job
	return job.ID, nil
}

func (m *MockAudioRepository) GetJob(ctx context.Context, id int64) (domain.AudioJob, error) {
	job, ok := m.jobs[id]
	if !ok {
		return domain.AudioJob{}, repository.ErrAudioJobNotFound
	}
	return job, nil
}

func (m *MockAudioRepository) ListJobs(ctx context.Context, userID uuid.UUID) ([]domain.AudioJob, error) {
	return nil, nil
}

func (m *MockAudioRepository) UpdateJob(ctx context.Context, id int64, update domain.AudioJobUpdate) error {
	job, ok := m.jobs[id]
	if !ok {
		return repository.ErrAudioJobNotFound
	}
	if update.Status != nil {
		job.Status = *update.Status
	}
	if update.Transcript != nil {
		job.Transcript = update.Transcript
	}
	if update.GeneratedDescription != nil {
		job.GeneratedDescription = update.GeneratedDescription
	}
	if update.ErrorMessage != nil {
		job.ErrorMessage = update.ErrorMessage
	}
	m.jobs[id] = job
	return nil
}

func (m *MockAudioRepository) DeleteJob(ctx context.Context, id int64, userID uuid.UUID) error {
	job, ok := m.jobs[id]
	if !ok || job.UserID != userID {
		return repository.ErrAudioJobNotFound
	}
	delete(m.jobs, id)
	return nil
}

type MockPropertyChecker struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Property, error)
}

func (m *MockPropertyChecker) GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	return m.GetByIDFunc(ctx, id)
}

type MockPropertySearcher struct {
	SearchFunc func(ctx context.Context, pred *repository.Predicate, pager *domain.Pager) ([]domain.ListingCard, error)
}

func (m *MockPropertySearcher) Search(ctx context.Context, pred *repository.Predicate, pager *domain.Pager) ([]domain.ListingCard, error) {
	return m.SearchFunc(ctx, pred, pager)
}

type MockLLMClient struct {
	Enabled           bool
	ExtractFilterFunc func(ctx context.Context, query string) (*domain.SearchFilter, error)
}

func (m *MockLLMClient) ExtractSearchFilter(ctx context.Context, query string) (*domain.SearchFilter, error) {
	return m.ExtractFilterFunc(ctx, query)
}

func (m *MockLLMClient) GenerateListing(ctx context.Context, req llm.GenerateListingRequest) (*llm.GenerateListingResponse, error) {
	return nil, llm.ErrDisabled
}

func (m *MockLLMClient) IsEnabled() bool { return m.Enabled }

// ---- сборка тестового сервера ----

type handlersOverride func(h *Handlers)

func newTestServer(t *testing.T, userID uuid.UUID, overrides ...handlersOverride) *httptest.Server {
	t.Helper()

	log := discardLogger()
	h := &Handlers{log: log, aiMetrics: metrics.GetAIMetrics(discardLogger())}
	for _, o := range overrides {
		o(h)
	}

	// Пропускающая авторизация: кладёт фиксированный userID в контекст.
	auth := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
		})
	}

	srv := New(log, config.HTTPConfig{AllowedOrigins: []string{"*"}})
	srv.MountRoutes(h, auth)

	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, url, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

// ---- тесты ----

func TestListCountries(t *testing.T) {
	repo := &MockCatalogRepository{
		ListCountriesFunc: func(ctx context.Context) ([]domain.Country, error) {
			return []domain.Country{{ID: 1, Name: "Honduras"}, {ID: 2, Name: "Guatemala"}}, nil
		},
	}
	ts := newTestServer(t, uuid.Nil, func(h *Handlers) {
		h.catalog = catalog.New(discardLogger(), repo)
	})

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/paises", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got []countryDTO
	decodeBody(t, resp, &got)
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Nombre != "Honduras" {
		t.Errorf("nombre = %q, want Honduras", got[0].Nombre)
	}
}

func TestGetCountry_NotFound(t *testing.T) {
	repo := &MockCatalogRepository{
		GetCountryFunc: func(ctx context.Context, id int64) (domain.Country, error) {
			return domain.Country{}, fmt.Errorf("get: %w", repository.ErrCatalogNotFound)
		},
	}
	ts := newTestServer(t, uuid.Nil, func(h *Handlers) {
		h.catalog = catalog.New(discardLogger(), repo)
	})

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/paises/99", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestGetCountry_BadID(t *testing.T) {
	ts := newTestServer(t, uuid.Nil, func(h *Handlers) {
		h.catalog = catalog.New(discardLogger(), &MockCatalogRepository{})
	})

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/paises/abc", nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRegister(t *testing.T) {
	wantID := uuid.New()
	repo := &MockUserRepository{
		SaveUserFunc: func(ctx context.Context, u domain.User) (uuid.UUID, error) {
			if u.Email != "ana@example.com" {
				t.Errorf("email = %q", u.Email)
			}
			return wantID, nil
		},
	}
	ts := newTestServer(t, uuid.Nil, func(h *Handlers) {
		h.users = user.New(discardLogger(), repo, "secret", 15*time.Minute, 7*24*time.Hour)
	})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/usuarios", registerRequest{
		Nombre:   "Ana",
		Apellido: "García",
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var got map[string]string
	decodeBody(t, resp, &got)
	if got["id"] != wantID.String() {
		t.Errorf("id = %q, want %q", got["id"], wantID)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &MockUserRepository{
		SaveUserFunc: func(ctx context.Context, u domain.User) (uuid.UUID, error) {
			return uuid.Nil, fmt.Errorf("save: %w", repository.ErrUserExists)
		},
	}
	ts := newTestServer(t, uuid.Nil, func(h *Handlers) {
		h.users = user.New(discardLogger(), repo, "secret", 15*time.Minute, 7*24*time.Hour)
	})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/usuarios", registerRequest{
		Nombre:   "Ana",
		Apellido: "García",
		Email:    "ana@example.com",
		Password: "hunter22",
	})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("status = %d, want 409", resp.StatusCode)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	repo := &MockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (domain.User, error) {
			return domain.User{}, fmt.Errorf("get: %w", repository.ErrUserNotFound)
		},
	}
	ts := newTestServer(t, uuid.Nil, func(h *Handlers) {
		h.users = user.New(discardLogger(), repo, "secret", 15*time.Minute, 7*24*time.Hour)
	})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/usuarios/login", loginRequest{
		Email:    "ana@example.com",
		Password: "wrong",
	})
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAddFavorite_PropertyMissing(t *testing.T) {
	userID := uuid.New()
	checker := &MockPropertyChecker{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{}, fmt.Errorf("get: %w", repository.ErrPropertyNotFound)
		},
	}
	ts := newTestServer(t, userID, func(h *Handlers) {
		h.favorites = favorite.New(discardLogger(), &MockFavoriteRepository{}, checker)
	})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/favoritos", addFavoriteRequest{
		PropiedadID: uuid.New(),
	})
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}
}

func TestAddFavorite(t *testing.T) {
	userID := uuid.New()
	propertyID := uuid.New()

	var gotUser, gotProperty uuid.UUID
	repo := &MockFavoriteRepository{
		AddFunc: func(ctx context.Context, u, p uuid.UUID) error {
			gotUser, gotProperty = u, p
			return nil
		},
	}
	checker := &MockPropertyChecker{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{ID: id}, nil
		},
	}
	ts := newTestServer(t, userID, func(h *Handlers) {
		h.favorites = favorite.New(discardLogger(), repo, checker)
	})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/favoritos", addFavoriteRequest{PropiedadID: propertyID})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}
	if gotUser != userID || gotProperty != propertyID {
		t.Errorf("Add(%s, %s), want (%s, %s)", gotUser, gotProperty, userID, propertyID)
	}
}

func TestAISearch(t *testing.T) {
	repo := &MockPropertySearcher{
		SearchFunc: func(ctx context.Context, pred *repository.Predicate, pager *domain.Pager) ([]domain.ListingCard, error) {
			return []domain.ListingCard{{
				ID:              uuid.New(),
				Title:           "Casa en Tegucigalpa",
				TransactionType: domain.TransactionSale,
				ImageURLs:       []string{},
			}}, nil
		},
	}
	llmMock := &MockLLMClient{
		Enabled: true,
		ExtractFilterFunc: func(ctx context.Context, query string) (*domain.SearchFilter, error) {
			tt := domain.TransactionSale
			return &domain.SearchFilter{TransactionType: &tt}, nil
		},
	}
	ts := newTestServer(t, uuid.Nil, func(h *Handlers) {
		h.search = search.New(discardLogger(), repo, llmMock, metrics.GetAIMetrics(discardLogger()))
	})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/ai-search", aiSearchRequest{Consulta: "casa en venta"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got aiSearchResponse
	decodeBody(t, resp, &got)
	if got.Consulta != "casa en venta" {
		t.Errorf("consulta = %q", got.Consulta)
	}
	if got.Filtros.TransactionType == nil || *got.Filtros.TransactionType != domain.TransactionSale {
		t.Errorf("filtros.tipo_transaccion = %v, want Venta", got.Filtros.TransactionType)
	}
	if len(got.Items) != 1 || got.Items[0].TipoTransaccion != "Venta" {
		t.Errorf("items = %+v", got.Items)
	}
}

func TestAISearch_EmptyQuery(t *testing.T) {
	ts := newTestServer(t, uuid.Nil, func(h *Handlers) {
		h.search = search.New(discardLogger(), &MockPropertySearcher{}, &MockLLMClient{}, metrics.GetAIMetrics(discardLogger()))
	})

	resp := doJSON(t, http.MethodPost, ts.URL+"/api/ai-search", aiSearchRequest{Consulta: "   "})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestAIMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t, uuid.Nil)

	resp := doJSON(t, http.MethodGet, ts.URL+"/api/ai/metrics", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var got metrics.Stats
	decodeBody(t, resp, &got)
}

func TestAuthMiddleware(t *testing.T) {
	wantID := uuid.New()
	verifier := verifierFunc(func(token string) (uuid.UUID, error) {
		if token != "valid-token" {
			return uuid.Nil, errors.New("invalid token")
		}
		return wantID, nil
	})

	var gotID uuid.UUID
	handler := Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := UserID(r.Context())
		if !ok {
			t.Error("user id missing from context")
		}
		gotID = id
		w.WriteHeader(http.StatusOK)
	}))

	cases := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{name: "no header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "not bearer", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "bad token", authHeader: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "valid", authHeader: "Bearer valid-token", wantStatus: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
		})
	}
	if gotID != wantID {
		t.Errorf("user id = %s, want %s", gotID, wantID)
	}
}

type verifierFunc func(token string) (uuid.UUID, error)

func (f verifierFunc) VerifyAccess(token string) (uuid.UUID, error) { return f(token) }

func TestQueryPager(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/propiedades?pagina=3&por_pagina=10", nil)
	p := queryPager(req)

	if p.Limit() != 10 {
		t.Errorf("limit = %d, want 10", p.Limit())
	}
	if p.Offset() != 20 {
		t.Errorf("offset = %d, want 20", p.Offset())
	}
}

func TestDecodeJSON_Invalid(t *testing.T) {
	ts := newTestServer(t, uuid.Nil, func(h *Handlers) {
		h.users = user.New(discardLogger(), &MockUserRepository{}, "secret", 15*time.Minute, 7*24*time.Hour)
	})

	resp, err := http.Post(ts.URL+"/api/usuarios", "application/json", strings.NewReader("{broken"))
	if err != nil {
		t.Fatalf("post: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestUpdateAudioJob(t *testing.T) {
	owner := uuid.New()
	repo := newMockAudioRepository()
	svc := audio.New(discardLogger(), repo, &MockCatalogRepository{}, &MockLLMClient{}, metrics.GetAIMetrics(discardLogger()))

	job, err := svc.CreateJob(context.Background(), owner, nil, nil, "http://storage/audio/1.ogg")
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	ts := newTestServer(t, owner, func(h *Handlers) { h.audio = svc })

	url := ts.URL + "/api/procesamientos-audio/" + strconv.FormatInt(job.ID, 10)
	resp := doJSON(t, http.MethodPut, url, map[string]any{"transcripcion": "texto editado"})
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", resp.StatusCode)
	}

	resp = doJSON(t, http.MethodGet, url, nil)
	var dto audioJobDTO
	decodeBody(t, resp, &dto)
	if dto.Transcripcion == nil || *dto.Transcripcion != "texto editado" {
		t.Errorf("unexpected transcript: %v", dto.Transcripcion)
	}
}

func TestUpdateAudioJob_NotOwner(t *testing.T) {
	owner := uuid.New()
	repo := newMockAudioRepository()
	svc := audio.New(discardLogger(), repo, &MockCatalogRepository{}, &MockLLMClient{}, metrics.GetAIMetrics(discardLogger()))

	job, err := svc.CreateJob(context.Background(), owner, nil, nil, "http://storage/audio/1.ogg")
	if err != nil {
		t.Fatalf("create job: %v", err)
	}

	// Запросы идут от другого пользователя
	ts := newTestServer(t, uuid.New(), func(h *Handlers) { h.audio = svc })

	url := ts.URL + "/api/procesamientos-audio/" + strconv.FormatInt(job.ID, 10)
	resp := doJSON(t, http.MethodPut, url, map[string]any{"transcripcion": "ajeno"})
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", resp.StatusCode)
	}
}
