package search

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"strings"
	"testing"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/lib/llm"
	"inmo_backend/internal/lib/metrics"
	"inmo_backend/internal/repository"
)

// MockPropertySearcher
type MockPropertySearcher struct {
	SearchFunc func(ctx context.Context, pred *repository.Predicate, pager *domain.Pager) ([]domain.ListingCard, error)
}

func (m *MockPropertySearcher) Search(ctx context.Context, pred *repository.Predicate, pager *domain.Pager) ([]domain.ListingCard, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, pred, pager)
	}
	return nil, nil
}

// MockLLMClient
type MockLLMClient struct {
	ExtractFunc func(ctx context.Context, query string) (*domain.SearchFilter, error)
	Enabled     bool
}

func (m *MockLLMClient) ExtractSearchFilter(ctx context.Context, query string) (*domain.SearchFilter, error) {
	if m.ExtractFunc != nil {
		return m.ExtractFunc(ctx, query)
	}
	return &domain.SearchFilter{}, nil
}

func (m *MockLLMClient) GenerateListing(ctx context.Context, req llm.GenerateListingRequest) (*llm.GenerateListingResponse, error) {
	return nil, llm.ErrDisabled
}

func (m *MockLLMClient) IsEnabled() bool { return m.Enabled }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestService_Search(t *testing.T) {
	log := testLogger()

	maxPrice := 400.0
	llmClient := &MockLLMClient{
		Enabled: true,
		ExtractFunc: func(ctx context.Context, query string) (*domain.SearchFilter, error) {
			return &domain.SearchFilter{PriceMax: &maxPrice}, nil
		},
	}

	var gotPred *repository.Predicate
	repo := &MockPropertySearcher{
		SearchFunc: func(ctx context.Context, pred *repository.Predicate, pager *domain.Pager) ([]domain.ListingCard, error) {
			gotPred = pred
			return []domain.ListingCard{{Title: "Apartamento en zona 10"}}, nil
		},
	}

	s := New(log, repo, llmClient, &metrics.AIMetrics{})

	result, err := s.Search(context.Background(), "apartamento por menos de 400", domain.NewPager(1, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotPred == nil || gotPred.Len() != 1 {
		t.Errorf("expected extracted filter to reach repository as predicate")
	}
	if len(result.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(result.Items))
	}
	if result.Filters.PriceMax == nil || *result.Filters.PriceMax != 400 {
		t.Errorf("expected filters echoed in result, got %+v", result.Filters)
	}
}

func TestService_Search_EmptyQuery(t *testing.T) {
	s := New(testLogger(), &MockPropertySearcher{}, &MockLLMClient{Enabled: true}, &metrics.AIMetrics{})

	_, err := s.Search(context.Background(), "   ", nil)
	if !errors.Is(err, ErrEmptyQuery) {
		t.Errorf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestService_Search_LLMDisabled(t *testing.T) {
	repo := &MockPropertySearcher{
		SearchFunc: func(ctx context.Context, pred *repository.Predicate, pager *domain.Pager) ([]domain.ListingCard, error) {
			if !pred.IsEmpty() {
				t.Error("expected unfiltered search when llm disabled")
			}
			return nil, nil
		},
	}

	s := New(testLogger(), repo, &MockLLMClient{Enabled: false}, &metrics.AIMetrics{})

	result, err := s.Search(context.Background(), "casa con piscina", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Filters.IsEmpty() {
		t.Errorf("expected empty filters, got %+v", result.Filters)
	}
}

func TestService_Search_ExtractionFailureDegrades(t *testing.T) {
	llmClient := &MockLLMClient{
		Enabled: true,
		ExtractFunc: func(ctx context.Context, query string) (*domain.SearchFilter, error) {
			return nil, errors.New("model overloaded")
		},
	}

	called := false
	repo := &MockPropertySearcher{
		SearchFunc: func(ctx context.Context, pred *repository.Predicate, pager *domain.Pager) ([]domain.ListingCard, error) {
			called = true
			if !pred.IsEmpty() {
				t.Error("expected unfiltered fallback on extraction failure")
			}
			return nil, nil
		},
	}

	s := New(testLogger(), repo, llmClient, &metrics.AIMetrics{})

	if _, err := s.Search(context.Background(), "casa", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected search to proceed despite extraction failure")
	}
}

func TestService_Explain(t *testing.T) {
	bedrooms := int32(3)
	llmClient := &MockLLMClient{
		Enabled: true,
		ExtractFunc: func(ctx context.Context, query string) (*domain.SearchFilter, error) {
			return &domain.SearchFilter{BedroomsMin: &bedrooms}, nil
		},
	}

	s := New(testLogger(), &MockPropertySearcher{}, llmClient, &metrics.AIMetrics{})

	filter, notes, err := s.Explain(context.Background(), "casa de tres habitaciones")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filter.BedroomsMin == nil || *filter.BedroomsMin != 3 {
		t.Errorf("unexpected filter: %+v", filter)
	}
	if len(notes) != 1 || !strings.Contains(notes[0], "al menos 3") {
		t.Errorf("unexpected notes: %v", notes)
	}
}
