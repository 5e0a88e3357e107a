package favorite

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/google/uuid"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/repository"
)

// MockFavoriteRepository
type MockFavoriteRepository struct {
	AddFunc    func(ctx context.Context, userID, propertyID uuid.UUID) error
	RemoveFunc func(ctx context.Context, userID, propertyID uuid.UUID) error
}

func (m *MockFavoriteRepository) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	if m.AddFunc != nil {
		return m.AddFunc(ctx, userID, propertyID)
	}
	return nil
}
func (m *MockFavoriteRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, userID, propertyID)
	}
	return nil
}
func (m *MockFavoriteRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	return false, nil
}
func (m *MockFavoriteRepository) ListCards(ctx context.Context, userID uuid.UUID, pager *domain.Pager) ([]domain.ListingCard, error) {
	return nil, nil
}

// MockPropertyChecker
type MockPropertyChecker struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Property, error)
}

func (m *MockPropertyChecker) GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return domain.Property{ID: id}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestService_Add(t *testing.T) {
	userID := uuid.New()
	propertyID := uuid.New()

	called := false
	repo := &MockFavoriteRepository{
		AddFunc: func(ctx context.Context, gotUser, gotProperty uuid.UUID) error {
			called = true
			if gotUser != userID || gotProperty != propertyID {
				t.Errorf("unexpected args: %s %s", gotUser, gotProperty)
			}
			return nil
		},
	}

	s := New(testLogger(), repo, &MockPropertyChecker{})

	if err := s.Add(context.Background(), userID, propertyID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("expected repository Add called")
	}
}

func TestService_Add_PropertyMissing(t *testing.T) {
	checker := &MockPropertyChecker{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{}, repository.ErrPropertyNotFound
		},
	}

	s := New(testLogger(), &MockFavoriteRepository{}, checker)

	err := s.Add(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Errorf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestService_Remove_NotFavorite(t *testing.T) {
	repo := &MockFavoriteRepository{
		RemoveFunc: func(ctx context.Context, userID, propertyID uuid.UUID) error {
			return repository.ErrFavoriteNotFound
		},
	}

	s := New(testLogger(), repo, &MockPropertyChecker{})

	err := s.Remove(context.Background(), uuid.New(), uuid.New())
	if !errors.Is(err, ErrNotFavorite) {
		t.Errorf("expected ErrNotFavorite, got %v", err)
	}
}
