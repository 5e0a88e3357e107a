package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/repository"
)

type CatalogRepository interface {
	ListCountries(ctx context.Context) ([]domain.Country, error)
	GetCountry(ctx context.Context, id int64) (domain.Country, error)
	CreateCountry(ctx context.Context, name string) (int64, error)
	UpdateCountry(ctx context.Context, id int64, name string) error
	DeleteCountry(ctx context.Context, id int64) error
	ListDepartments(ctx context.Context, countryID *int64) ([]domain.Department, error)
	GetDepartment(ctx context.Context, id int64) (domain.Department, error)
	CreateDepartment(ctx context.Context, name string, countryID int64) (int64, error)
	UpdateDepartment(ctx context.Context, id int64, name string) error
	DeleteDepartment(ctx context.Context, id int64) error
	ListCities(ctx context.Context, departmentID *int64) ([]domain.City, error)
	GetCity(ctx context.Context, id int64) (domain.City, error)
	CreateCity(ctx context.Context, name string, departmentID int64) (int64, error)
	UpdateCity(ctx context.Context, id int64, name string) error
	DeleteCity(ctx context.Context, id int64) error
	ListPropertyTypes(ctx context.Context) ([]domain.PropertyTypeEntry, error)
	GetPropertyType(ctx context.Context, id int64) (domain.PropertyTypeEntry, error)
	CreatePropertyType(ctx context.Context, name string) (int64, error)
	UpdatePropertyType(ctx context.Context, id int64, name string) error
	DeletePropertyType(ctx context.Context, id int64) error
	ListAudioCategories(ctx context.Context) ([]domain.AudioCategory, error)
	GetAudioCategory(ctx context.Context, id int64) (domain.AudioCategory, error)
	CreateAudioCategory(ctx context.Context, category domain.AudioCategory) (int64, error)
	UpdateAudioCategory(ctx context.Context, category domain.AudioCategory) error
	DeleteAudioCategory(ctx context.Context, id int64) error
}

var (
	ErrNotFound      = errors.New("catalog entry not found")
	ErrAlreadyExists = errors.New("catalog entry already exists")
	ErrInUse         = errors.New("catalog entry is still referenced")
	ErrInvalidInput  = errors.New("catalog entry name is required")
)

// Service — чтение справочников.
type Service struct {
	log  *slog.Logger
	repo CatalogRepository
}

func New(log *slog.Logger, repo CatalogRepository) *Service {
	return &Service{log: log, repo: repo}
}

func (s *Service) Countries(ctx context.Context) ([]domain.Country, error) {
	const op = "catalog.Service.Countries"

	items, err := s.repo.ListCountries(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s *Service) Country(ctx context.Context, id int64) (domain.Country, error) {
	const op = "catalog.Service.Country"

	c, err := s.repo.GetCountry(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCatalogNotFound) {
			return domain.Country{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.Country{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *Service) Departments(ctx context.Context, countryID *int64) ([]domain.Department, error) {
	const op = "catalog.Service.Departments"

	items, err := s.repo.ListDepartments(ctx, countryID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s *Service) Department(ctx context.Context, id int64) (domain.Department, error) {
	const op = "catalog.Service.Department"

	d, err := s.repo.GetDepartment(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCatalogNotFound) {
			return domain.Department{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.Department{}, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

func (s *Service) Cities(ctx context.Context, departmentID *int64) ([]domain.City, error) {
	const op = "catalog.Service.Cities"

	items, err := s.repo.ListCities(ctx, departmentID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s *Service) City(ctx context.Context, id int64) (domain.City, error) {
	const op = "catalog.Service.City"

	c, err := s.repo.GetCity(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCatalogNotFound) {
			return domain.City{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.City{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

func (s *Service) PropertyTypes(ctx context.Context) ([]domain.PropertyTypeEntry, error) {
	const op = "catalog.Service.PropertyTypes"

	items, err := s.repo.ListPropertyTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s *Service) PropertyType(ctx context.Context, id int64) (domain.PropertyTypeEntry, error) {
	const op = "catalog.Service.PropertyType"

	t, err := s.repo.GetPropertyType(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCatalogNotFound) {
			return domain.PropertyTypeEntry{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.PropertyTypeEntry{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

func (s *Service) AudioCategories(ctx context.Context) ([]domain.AudioCategory, error) {
	const op = "catalog.Service.AudioCategories"

	items, err := s.repo.ListAudioCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return items, nil
}

func (s *Service) AudioCategory(ctx context.Context, id int64) (domain.AudioCategory, error) {
	const op = "catalog.Service.AudioCategory"

	c, err := s.repo.GetAudioCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCatalogNotFound) {
			return domain.AudioCategory{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.AudioCategory{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// mapMutationErr переводит ошибки хранилища в сервисные для операций
// изменения справочников.
func mapMutationErr(op string, err error) error {
	switch {
	case errors.Is(err, repository.ErrCatalogNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, repository.ErrCatalogExists):
		return fmt.Errorf("%s: %w", op, ErrAlreadyExists)
	case errors.Is(err, repository.ErrCatalogInUse):
		return fmt.Errorf("%s: %w", op, ErrInUse)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func (s *Service) CreateCountry(ctx context.Context, name string) (int64, error) {
	const op = "catalog.Service.CreateCountry"

	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	id, err := s.repo.CreateCountry(ctx, name)
	if err != nil {
		return 0, mapMutationErr(op, err)
	}
	s.log.Info("country created", slog.Int64("id", id), slog.String("name", name))
	return id, nil
}

func (s *Service) UpdateCountry(ctx context.Context, id int64, name string) error {
	const op = "catalog.Service.UpdateCountry"

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	if err := s.repo.UpdateCountry(ctx, id, name); err != nil {
		return mapMutationErr(op, err)
	}
	return nil
}

func (s *Service) DeleteCountry(ctx context.Context, id int64) error {
	const op = "catalog.Service.DeleteCountry"

	if err := s.repo.DeleteCountry(ctx, id); err != nil {
		return mapMutationErr(op, err)
	}
	return nil
}

func (s *Service) CreateDepartment(ctx context.Context, name string, countryID int64) (int64, error) {
	const op = "catalog.Service.CreateDepartment"

	name = strings.TrimSpace(name)
	if name == "" || countryID == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	id, err := s.repo.CreateDepartment(ctx, name, countryID)
	if err != nil {
		return 0, mapMutationErr(op, err)
	}
	return id, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, id int64, name string) error {
	const op = "catalog.Service.UpdateDepartment"

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	if err := s.repo.UpdateDepartment(ctx, id, name); err != nil {
		return mapMutationErr(op, err)
	}
	return nil
}

func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	const op = "catalog.Service.DeleteDepartment"

	if err := s.repo.DeleteDepartment(ctx, id); err != nil {
		return mapMutationErr(op, err)
	}
	return nil
}

func (s *Service) CreateCity(ctx context.Context, name string, departmentID int64) (int64, error) {
	const op = "catalog.Service.CreateCity"

	name = strings.TrimSpace(name)
	if name == "" || departmentID == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	id, err := s.repo.CreateCity(ctx, name, departmentID)
	if err != nil {
		return 0, mapMutationErr(op, err)
	}
	return id, nil
}

func (s *Service) UpdateCity(ctx context.Context, id int64, name string) error {
	const op = "catalog.Service.UpdateCity"

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	if err := s.repo.UpdateCity(ctx, id, name); err != nil {
		return mapMutationErr(op, err)
	}
	return nil
}

func (s *Service) DeleteCity(ctx context.Context, id int64) error {
	const op = "catalog.Service.DeleteCity"

	if err := s.repo.DeleteCity(ctx, id); err != nil {
		return mapMutationErr(op, err)
	}
	return nil
}

func (s *Service) CreatePropertyType(ctx context.Context, name string) (int64, error) {
	const op = "catalog.Service.CreatePropertyType"

	name = strings.TrimSpace(name)
	if name == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	id, err := s.repo.CreatePropertyType(ctx, name)
	if err != nil {
		return 0, mapMutationErr(op, err)
	}
	return id, nil
}

func (s *Service) UpdatePropertyType(ctx context.Context, id int64, name string) error {
	const op = "catalog.Service.UpdatePropertyType"

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	if err := s.repo.UpdatePropertyType(ctx, id, name); err != nil {
		return mapMutationErr(op, err)
	}
	return nil
}

func (s *Service) DeletePropertyType(ctx context.Context, id int64) error {
	const op = "catalog.Service.DeletePropertyType"

	if err := s.repo.DeletePropertyType(ctx, id); err != nil {
		return mapMutationErr(op, err)
	}
	return nil
}

func (s *Service) CreateAudioCategory(ctx context.Context, category domain.AudioCategory) (int64, error) {
	const op = "catalog.Service.CreateAudioCategory"

	category.Code = strings.TrimSpace(category.Code)
	if category.Code == "" || strings.TrimSpace(category.AIInstruction) == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	id, err := s.repo.CreateAudioCategory(ctx, category)
	if err != nil {
		return 0, mapMutationErr(op, err)
	}
	return id, nil
}

func (s *Service) UpdateAudioCategory(ctx context.Context, category domain.AudioCategory) error {
	const op = "catalog.Service.UpdateAudioCategory"

	category.Code = strings.TrimSpace(category.Code)
	if category.Code == "" || strings.TrimSpace(category.AIInstruction) == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	if err := s.repo.UpdateAudioCategory(ctx, category); err != nil {
		return mapMutationErr(op, err)
	}
	return nil
}

func (s *Service) DeleteAudioCategory(ctx context.Context, id int64) error {
	const op = "catalog.Service.DeleteAudioCategory"

	if err := s.repo.DeleteAudioCategory(ctx, id); err != nil {
		return mapMutationErr(op, err)
	}
	return nil
}
