package property

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"inmo_backend/internal/config"
	"inmo_backend/internal/domain"
	storage "inmo_backend/internal/lib/minio/core"
	"inmo_backend/internal/lib/logger/sl"
	"inmo_backend/internal/repository"
	"inmo_backend/internal/services/location"
)

type PropertyRepository interface {
	CreateProperty(ctx context.Context, property domain.Property, details *domain.PropertyDetails) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error)
	GetCard(ctx context.Context, id uuid.UUID) (domain.ListingCard, error)
	ListActiveCards(ctx context.Context, pager *domain.Pager) ([]domain.ListingCard, error)
	ListOwned(ctx context.Context, filter domain.OwnedFilter, pager *domain.Pager) (*domain.PagedResult[domain.OwnedListing], error)
	UpdateProperty(ctx context.Context, propertyID, ownerID uuid.UUID, update domain.PropertyUpdate) error
	UpdateStatus(ctx context.Context, propertyID, ownerID uuid.UUID, status domain.PublicationStatus) error
	DeleteProperty(ctx context.Context, propertyID, ownerID uuid.UUID) error
	IncrementVisits(ctx context.Context, propertyID uuid.UUID) error
	GetStats(ctx context.Context, propertyID, ownerID uuid.UUID) (domain.PropertyStats, error)
	UpsertDetails(ctx context.Context, details domain.PropertyDetails) error
	GetDetails(ctx context.Context, propertyID uuid.UUID) (domain.PropertyDetails, error)
	AddImage(ctx context.Context, propertyID uuid.UUID, url string) (domain.PropertyImage, error)
	ListImages(ctx context.Context, propertyID uuid.UUID) ([]domain.PropertyImage, error)
	UpdateImage(ctx context.Context, propertyID uuid.UUID, imageID int64, update domain.ImageUpdate) error
	DeleteImage(ctx context.Context, propertyID uuid.UUID, imageID int64) (string, error)
	CreateContact(ctx context.Context, contact domain.PropertyContact) (int64, error)
	ListContacts(ctx context.Context, propertyID uuid.UUID) ([]domain.PropertyContact, error)
	UpdateContact(ctx context.Context, contact domain.PropertyContact) error
	DeleteContact(ctx context.Context, propertyID uuid.UUID, contactID int64) error
}

// LocationRegistrar — регистрация точки расположения при создании объявления.
type LocationRegistrar interface {
	RegisterLocation(ctx context.Context, input location.RegisterLocationInput) (int64, domain.LocationIDs, error)
}

var (
	ErrNotFound        = errors.New("property not found")
	ErrInvalidInput    = errors.New("invalid property input")
	ErrNoPrice         = errors.New("at least one of sale or rent price is required")
	ErrInvalidStatus   = errors.New("invalid publication status")
	ErrNotOwner        = errors.New("property does not belong to user")
	ErrFileTooLarge    = errors.New("file exceeds size limit")
	ErrUnsupportedMime = errors.New("unsupported file type")
	ErrStorageDisabled = errors.New("image storage is disabled")
)

// Service — жизненный цикл объявлений: создание, публикация, выборки,
// изображения и контакты.
type Service struct {
	log      *slog.Logger
	repo     PropertyRepository
	resolver LocationRegistrar
	images   storage.Client
	upload   config.UploadConfig
}

func New(log *slog.Logger, repo PropertyRepository, resolver LocationRegistrar, images storage.Client, upload config.UploadConfig) *Service {
	return &Service{
		log:      log,
		repo:     repo,
		resolver: resolver,
		images:   images,
		upload:   upload,
	}
}

// CreateInput — данные создания объявления.
type CreateInput struct {
	OwnerUserID    uuid.UUID
	PropertyTypeID int64
	Title          string
	Description    string
	SalePrice      *int64
	RentPrice      *int64
	TotalArea      *float64
	Country        string
	Department     string
	City           string
	Address        string
	Neighborhood   *string
	Latitude       float64
	Longitude      float64
	PostalCode     *string
	Bedrooms       *int32
	Bathrooms      *int32
	OtherDetails   *string
}

// Create — регистрирует локацию и создаёт объявление в статусе «borrador».
func (s *Service) Create(ctx context.Context, input CreateInput) (uuid.UUID, error) {
	const op = "property.Service.Create"
	log := s.log.With(slog.String("op", op), slog.String("owner", input.OwnerUserID.String()))

	if strings.TrimSpace(input.Title) == "" || input.PropertyTypeID == 0 {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}
	if input.SalePrice == nil && input.RentPrice == nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrNoPrice)
	}

	locationID, _, err := s.resolver.RegisterLocation(ctx, location.RegisterLocationInput{
		Country:      input.Country,
		Department:   input.Department,
		City:         input.City,
		Address:      input.Address,
		Neighborhood: input.Neighborhood,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		PostalCode:   input.PostalCode,
	})
	if err != nil {
		log.Error("failed to register location", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	var details *domain.PropertyDetails
	if input.Bedrooms != nil || input.Bathrooms != nil || input.OtherDetails != nil {
		details = &domain.PropertyDetails{
			Bedrooms:     input.Bedrooms,
			Bathrooms:    input.Bathrooms,
			OtherDetails: input.OtherDetails,
		}
	}

	id, err := s.repo.CreateProperty(ctx, domain.Property{
		OwnerUserID:    input.OwnerUserID,
		PropertyTypeID: input.PropertyTypeID,
		LocationID:     locationID,
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		SalePrice:      input.SalePrice,
		RentPrice:      input.RentPrice,
		TotalArea:      input.TotalArea,
		Status:         domain.StatusDraft,
	}, details)
	if err != nil {
		log.Error("failed to create property", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("property created", slog.String("property_id", id.String()))

	return id, nil
}

// GetCard — публичная карточка объявления; просмотр учитывается.
func (s *Service) GetCard(ctx context.Context, id uuid.UUID) (domain.ListingCard, error) {
	const op = "property.Service.GetCard"

	card, err := s.repo.GetCard(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return domain.ListingCard{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.ListingCard{}, fmt.Errorf("%s: %w", op, err)
	}

	// Счётчик просмотров не должен ломать чтение карточки
	if err := s.repo.IncrementVisits(ctx, id); err != nil {
		s.log.Warn("failed to increment visits", slog.String("property_id", id.String()), sl.Err(err))
	}

	return card, nil
}

// ListActive — публичные карточки активных объявлений.
func (s *Service) ListActive(ctx context.Context, pager *domain.Pager) ([]domain.ListingCard, error) {
	const op = "property.Service.ListActive"

	items, err := s.repo.ListActiveCards(ctx, pager)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// ListOwned — объявления владельца с фильтрами по статусу и типу.
func (s *Service) ListOwned(ctx context.Context, filter domain.OwnedFilter, pager *domain.Pager) (*domain.PagedResult[domain.OwnedListing], error) {
	const op = "property.Service.ListOwned"

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}

	result, err := s.repo.ListOwned(ctx, filter, pager)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}

// Update — частичное обновление объявления владельцем.
func (s *Service) Update(ctx context.Context, propertyID, ownerID uuid.UUID, update domain.PropertyUpdate) error {
	const op = "property.Service.Update"

	err := s.repo.UpdateProperty(ctx, propertyID, ownerID, update)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		if errors.Is(err, repository.ErrNoFieldsToUpdate) {
			return fmt.Errorf("%s: %w", op, ErrInvalidInput)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpdateStatus — смена статуса публикации владельцем.
func (s *Service) UpdateStatus(ctx context.Context, propertyID, ownerID uuid.UUID, status domain.PublicationStatus) error {
	const op = "property.Service.UpdateStatus"
	log := s.log.With(slog.String("op", op), slog.String("property_id", propertyID.String()))

	if !status.Valid() {
		return fmt.Errorf("%s: %w", op, ErrInvalidStatus)
	}

	if err := s.repo.UpdateStatus(ctx, propertyID, ownerID, status); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("status updated", slog.String("status", status.String()))

	return nil
}

// Delete — удаляет объявление владельца со всеми зависимостями.
func (s *Service) Delete(ctx context.Context, propertyID, ownerID uuid.UUID) error {
	const op = "property.Service.Delete"

	if err := s.repo.DeleteProperty(ctx, propertyID, ownerID); err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("property deleted", slog.String("property_id", propertyID.String()))

	return nil
}

// Stats — статистика объявления для владельца.
func (s *Service) Stats(ctx context.Context, propertyID, ownerID uuid.UUID) (domain.PropertyStats, error) {
	const op = "property.Service.Stats"

	stats, err := s.repo.GetStats(ctx, propertyID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return domain.PropertyStats{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.PropertyStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return stats, nil
}

// SaveDetails — создаёт или обновляет детали объявления владельца.
func (s *Service) SaveDetails(ctx context.Context, ownerID uuid.UUID, details domain.PropertyDetails) error {
	const op = "property.Service.SaveDetails"

	if err := s.checkOwnership(ctx, details.PropertyID, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.UpsertDetails(ctx, details); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Details — детали объявления.
func (s *Service) Details(ctx context.Context, propertyID uuid.UUID) (domain.PropertyDetails, error) {
	const op = "property.Service.Details"

	d, err := s.repo.GetDetails(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrDetailsNotFound) {
			return domain.PropertyDetails{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.PropertyDetails{}, fmt.Errorf("%s: %w", op, err)
	}

	return d, nil
}

// UploadImage — проверяет файл, кладёт его в объектное хранилище и
// привязывает URL к объявлению владельца.
func (s *Service) UploadImage(ctx context.Context, propertyID, ownerID uuid.UUID, r io.Reader, size int64, contentType string) (domain.PropertyImage, error) {
	const op = "property.Service.UploadImage"
	log := s.log.With(slog.String("op", op), slog.String("property_id", propertyID.String()))

	if !s.images.IsEnabled() {
		return domain.PropertyImage{}, fmt.Errorf("%s: %w", op, ErrStorageDisabled)
	}
	if size <= 0 || size > s.upload.MaxFileSizeBytes {
		return domain.PropertyImage{}, fmt.Errorf("%s: %w", op, ErrFileTooLarge)
	}
	if !lo.Contains(s.upload.AllowedMimeTypes, contentType) {
		return domain.PropertyImage{}, fmt.Errorf("%s: %w", op, ErrUnsupportedMime)
	}

	if err := s.checkOwnership(ctx, propertyID, ownerID); err != nil {
		return domain.PropertyImage{}, fmt.Errorf("%s: %w", op, err)
	}

	objectName := fmt.Sprintf("%s/%s%s", propertyID, uuid.New(), extensionFor(contentType))

	url, err := s.images.UploadImage(ctx, objectName, r, size, contentType)
	if err != nil {
		log.Error("failed to upload image", sl.Err(err))
		return domain.PropertyImage{}, fmt.Errorf("%s: %w", op, err)
	}

	img, err := s.repo.AddImage(ctx, propertyID, url)
	if err != nil {
		log.Error("failed to record image", sl.Err(err))
		return domain.PropertyImage{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("image uploaded", slog.String("url", url))

	return img, nil
}

// Images — изображения объявления в порядке показа.
func (s *Service) Images(ctx context.Context, propertyID uuid.UUID) ([]domain.PropertyImage, error) {
	const op = "property.Service.Images"

	items, err := s.repo.ListImages(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// UpdateImage — меняет позицию показа или URL изображения владельца.
func (s *Service) UpdateImage(ctx context.Context, propertyID, ownerID uuid.UUID, imageID int64, update domain.ImageUpdate) error {
	const op = "property.Service.UpdateImage"

	if err := s.checkOwnership(ctx, propertyID, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.UpdateImage(ctx, propertyID, imageID, update); err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		if errors.Is(err, repository.ErrNoFieldsToUpdate) {
			return fmt.Errorf("%s: %w", op, ErrInvalidInput)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RemoveImage — удаляет изображение владельца и вычищает объект из
// хранилища. Ошибка хранилища удаление записи не отменяет.
func (s *Service) RemoveImage(ctx context.Context, propertyID, ownerID uuid.UUID, imageID int64) error {
	const op = "property.Service.RemoveImage"
	log := s.log.With(slog.String("op", op), slog.String("property_id", propertyID.String()))

	if err := s.checkOwnership(ctx, propertyID, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	url, err := s.repo.DeleteImage(ctx, propertyID, imageID)
	if err != nil {
		if errors.Is(err, repository.ErrImageNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if s.images.IsEnabled() {
		if objectName := objectNameFromURL(url); objectName != "" {
			if err := s.images.RemoveImage(ctx, objectName); err != nil {
				log.Warn("failed to remove stored object", slog.String("url", url), sl.Err(err))
			}
		}
	}

	return nil
}

// AddContact — добавляет контакт объявления владельца.
func (s *Service) AddContact(ctx context.Context, ownerID uuid.UUID, contact domain.PropertyContact) (int64, error) {
	const op = "property.Service.AddContact"

	if strings.TrimSpace(contact.Name) == "" {
		return 0, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	if err := s.checkOwnership(ctx, contact.PropertyID, ownerID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.CreateContact(ctx, contact)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// Contacts — контакты объявления.
func (s *Service) Contacts(ctx context.Context, propertyID uuid.UUID) ([]domain.PropertyContact, error) {
	const op = "property.Service.Contacts"

	items, err := s.repo.ListContacts(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// UpdateContact — перезаписывает контакт объявления владельца.
func (s *Service) UpdateContact(ctx context.Context, ownerID uuid.UUID, contact domain.PropertyContact) error {
	const op = "property.Service.UpdateContact"

	if strings.TrimSpace(contact.Name) == "" {
		return fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	if err := s.checkOwnership(ctx, contact.PropertyID, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.UpdateContact(ctx, contact); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// RemoveContact — удаляет контакт объявления владельца.
func (s *Service) RemoveContact(ctx context.Context, ownerID, propertyID uuid.UUID, contactID int64) error {
	const op = "property.Service.RemoveContact"

	if err := s.checkOwnership(ctx, propertyID, ownerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := s.repo.DeleteContact(ctx, propertyID, contactID); err != nil {
		if errors.Is(err, repository.ErrContactNotFound) {
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Service) checkOwnership(ctx context.Context, propertyID, ownerID uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return ErrNotFound
		}
		return err
	}
	if p.OwnerUserID != ownerID {
		return ErrNotOwner
	}
	return nil
}

// objectNameFromURL восстанавливает имя объекта из публичного URL:
// последние два сегмента пути — <property_id>/<файл>.
func objectNameFromURL(url string) string {
	parts := strings.Split(url, "/")
	if len(parts) < 2 {
		return ""
	}
	return strings.Join(parts[len(parts)-2:], "/")
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	return ""
}
