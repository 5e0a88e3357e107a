package favorite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/repository"
)

type FavoriteRepository interface {
	Add(ctx context.Context, userID, propertyID uuid.UUID) error
	Remove(ctx context.Context, userID, propertyID uuid.UUID) error
	Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error)
	ListCards(ctx context.Context, userID uuid.UUID, pager *domain.Pager) ([]domain.ListingCard, error)
}

// PropertyChecker — проверка существования объявления перед добавлением.
type PropertyChecker interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error)
}

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrNotFavorite      = errors.New("property is not in favorites")
)

// Service — избранные объявления пользователя.
type Service struct {
	log        *slog.Logger
	repo       FavoriteRepository
	properties PropertyChecker
}

func New(log *slog.Logger, repo FavoriteRepository, properties PropertyChecker) *Service {
	return &Service{log: log, repo: repo, properties: properties}
}

// Add — добавляет объявление в избранное; повторный вызов идемпотентен.
func (s *Service) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	const op = "favorite.Service.Add"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID.String()))

	if _, err := s.properties.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return fmt.Errorf("%s: %w", op, ErrPropertyNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.Add(ctx, userID, propertyID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("favorite added", slog.String("property_id", propertyID.String()))

	return nil
}

// Remove — убирает объявление из избранного.
func (s *Service) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	const op = "favorite.Service.Remove"

	if err := s.repo.Remove(ctx, userID, propertyID); err != nil {
		if errors.Is(err, repository.ErrFavoriteNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFavorite)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// IsFavorite — находится ли объявление в избранном пользователя.
func (s *Service) IsFavorite(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	const op = "favorite.Service.IsFavorite"

	exists, err := s.repo.Exists(ctx, userID, propertyID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// List — карточки избранных объявлений пользователя.
func (s *Service) List(ctx context.Context, userID uuid.UUID, pager *domain.Pager) ([]domain.ListingCard, error) {
	const op = "favorite.Service.List"

	items, err := s.repo.ListCards(ctx, userID, pager)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}
