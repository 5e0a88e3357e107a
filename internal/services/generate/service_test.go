package generate

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/lib/llm"
	"inmo_backend/internal/lib/metrics"
)

// MockLLMClient
type MockLLMClient struct {
	GenerateFunc func(ctx context.Context, req llm.GenerateListingRequest) (*llm.GenerateListingResponse, error)
	Enabled      bool
}

func (m *MockLLMClient) ExtractSearchFilter(ctx context.Context, query string) (*domain.SearchFilter, error) {
	return nil, llm.ErrDisabled
}
func (m *MockLLMClient) GenerateListing(ctx context.Context, req llm.GenerateListingRequest) (*llm.GenerateListingResponse, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return &llm.GenerateListingResponse{Title: "t", Description: "d"}, nil
}
func (m *MockLLMClient) IsEnabled() bool { return m.Enabled }

// MockResolver
type MockResolver struct {
	ResolveFunc func(ctx context.Context, country, department, city string) (domain.LocationIDs, error)
	Calls       int
}

func (m *MockResolver) Resolve(ctx context.Context, country, department, city string) (domain.LocationIDs, error) {
	m.Calls++
	if m.ResolveFunc != nil {
		return m.ResolveFunc(ctx, country, department, city)
	}
	return domain.LocationIDs{CountryID: 1, DepartmentID: 2, CityID: 3}, nil
}

func newTestService(llmClient llm.Client, resolver *MockResolver) *Service {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
	return New(log, llmClient, resolver, &metrics.AIMetrics{})
}

func TestService_GenerateListing(t *testing.T) {
	llmClient := &MockLLMClient{
		Enabled: true,
		GenerateFunc: func(ctx context.Context, req llm.GenerateListingRequest) (*llm.GenerateListingResponse, error) {
			if req.BaseText != "casa con jardín" {
				t.Errorf("unexpected base text: %q", req.BaseText)
			}
			return &llm.GenerateListingResponse{
				Title:       "Casa con jardín en zona tranquila",
				Description: "<p>Amplio jardín.</p>",
			}, nil
		},
	}
	resolver := &MockResolver{}
	s := newTestService(llmClient, resolver)

	result, err := s.GenerateListing(context.Background(), Input{
		BaseText:   "casa con jardín",
		Country:    "Guatemala",
		Department: "Guatemala",
		City:       "Mixco",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Title == "" || result.Description == "" {
		t.Error("expected generated title and description")
	}
	if result.Location == nil || result.Location.CityID != 3 {
		t.Errorf("expected resolved location, got %+v", result.Location)
	}
}

func TestService_GenerateListing_PartialLocationSkipsResolve(t *testing.T) {
	resolver := &MockResolver{}
	s := newTestService(&MockLLMClient{Enabled: true}, resolver)

	result, err := s.GenerateListing(context.Background(), Input{
		BaseText: "casa con jardín",
		Country:  "Guatemala",
		// департамент и город не заданы
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if resolver.Calls != 0 {
		t.Error("expected resolver untouched on partial hierarchy")
	}
	if result.Location != nil {
		t.Errorf("expected nil location, got %+v", result.Location)
	}
}

func TestService_GenerateListing_ResolveFailureIsNotFatal(t *testing.T) {
	resolver := &MockResolver{
		ResolveFunc: func(ctx context.Context, country, department, city string) (domain.LocationIDs, error) {
			return domain.LocationIDs{}, errors.New("db down")
		},
	}
	s := newTestService(&MockLLMClient{Enabled: true}, resolver)

	result, err := s.GenerateListing(context.Background(), Input{
		BaseText:   "casa",
		Country:    "Guatemala",
		Department: "Guatemala",
		City:       "Mixco",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Location != nil {
		t.Error("expected nil location on resolve failure")
	}
}

func TestService_GenerateListing_Disabled(t *testing.T) {
	s := newTestService(&MockLLMClient{Enabled: false}, &MockResolver{})

	_, err := s.GenerateListing(context.Background(), Input{BaseText: "casa"})
	if !errors.Is(err, ErrAIDisabled) {
		t.Errorf("expected ErrAIDisabled, got %v", err)
	}
}

func TestService_GenerateListing_EmptyInput(t *testing.T) {
	s := newTestService(&MockLLMClient{Enabled: true}, &MockResolver{})

	_, err := s.GenerateListing(context.Background(), Input{BaseText: "   "})
	if !errors.Is(err, ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestService_GenerateListing_BlankModelOutput(t *testing.T) {
	llmClient := &MockLLMClient{
		Enabled: true,
		GenerateFunc: func(ctx context.Context, req llm.GenerateListingRequest) (*llm.GenerateListingResponse, error) {
			return &llm.GenerateListingResponse{}, nil
		},
	}
	s := newTestService(llmClient, &MockResolver{})

	_, err := s.GenerateListing(context.Background(), Input{BaseText: "casa"})
	if !errors.Is(err, ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
}
