package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/lib/logger/sl"
	"inmo_backend/internal/repository"
)

// Store открывает транзакции разрешения географической иерархии.
type Store interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx — шаги разрешения страна → департамент → город в одной транзакции.
// Find* возвращают repository.ErrLocationNotFound, если записи нет.
type Tx interface {
	FindCountry(ctx context.Context, name string) (int64, error)
	InsertCountry(ctx context.Context, name string) (int64, error)
	FindDepartment(ctx context.Context, name string, countryID int64) (int64, error)
	InsertDepartment(ctx context.Context, name string, countryID int64) (int64, error)
	FindCity(ctx context.Context, name string, departmentID int64) (int64, error)
	InsertCity(ctx context.Context, name string, departmentID int64) (int64, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// LocationStore — создание и чтение точек расположения объявлений.
type LocationStore interface {
	CreateLocation(ctx context.Context, loc domain.PropertyLocation) (int64, error)
	GetLocation(ctx context.Context, id int64) (domain.PropertyLocation, error)
}

var (
	ErrInvalidInput     = errors.New("country, department and city are required")
	ErrNotFound         = errors.New("location not found")
	ErrResolutionFailed = errors.New("failed to resolve location hierarchy")
)

// Resolver находит или создаёт записи географической иерархии.
// Повторное разрешение той же тройки имён всегда возвращает те же ID.
type Resolver struct {
	log       *slog.Logger
	store     Store
	locations LocationStore
}

func NewResolver(log *slog.Logger, store Store, locations LocationStore) *Resolver {
	return &Resolver{
		log:       log,
		store:     store,
		locations: locations,
	}
}

// Resolve — разрешает тройку имён страна/департамент/город в ID,
// создавая недостающие уровни. Выполняется одной транзакцией: либо
// разрешены все три уровня, либо ни одного.
func (r *Resolver) Resolve(ctx context.Context, country, department, city string) (domain.LocationIDs, error) {
	const op = "location.Resolver.Resolve"
	log := r.log.With(slog.String("op", op))

	country = strings.TrimSpace(country)
	department = strings.TrimSpace(department)
	city = strings.TrimSpace(city)

	if country == "" || department == "" || city == "" {
		return domain.LocationIDs{}, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	tx, err := r.store.Begin(ctx)
	if err != nil {
		log.Error("failed to begin transaction", sl.Err(err))
		return domain.LocationIDs{}, fmt.Errorf("%s: %w: %w", op, ErrResolutionFailed, err)
	}
	defer tx.Rollback(ctx)

	countryID, err := r.findOrCreate(ctx,
		func() (int64, error) { return tx.FindCountry(ctx, country) },
		func() (int64, error) { return tx.InsertCountry(ctx, country) },
	)
	if err != nil {
		log.Error("failed to resolve country", slog.String("country", country), sl.Err(err))
		return domain.LocationIDs{}, fmt.Errorf("%s: %w: %w", op, ErrResolutionFailed, err)
	}

	departmentID, err := r.findOrCreate(ctx,
		func() (int64, error) { return tx.FindDepartment(ctx, department, countryID) },
		func() (int64, error) { return tx.InsertDepartment(ctx, department, countryID) },
	)
	if err != nil {
		log.Error("failed to resolve department", slog.String("department", department), sl.Err(err))
		return domain.LocationIDs{}, fmt.Errorf("%s: %w: %w", op, ErrResolutionFailed, err)
	}

	cityID, err := r.findOrCreate(ctx,
		func() (int64, error) { return tx.FindCity(ctx, city, departmentID) },
		func() (int64, error) { return tx.InsertCity(ctx, city, departmentID) },
	)
	if err != nil {
		log.Error("failed to resolve city", slog.String("city", city), sl.Err(err))
		return domain.LocationIDs{}, fmt.Errorf("%s: %w: %w", op, ErrResolutionFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Error("failed to commit transaction", sl.Err(err))
		return domain.LocationIDs{}, fmt.Errorf("%s: %w: %w", op, ErrResolutionFailed, err)
	}

	return domain.LocationIDs{
		CountryID:    countryID,
		DepartmentID: departmentID,
		CityID:       cityID,
	}, nil
}

func (r *Resolver) findOrCreate(ctx context.Context, find, create func() (int64, error)) (int64, error) {
	id, err := find()
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, repository.ErrLocationNotFound) {
		return 0, err
	}
	return create()
}

// Location — точка расположения по ID.
func (r *Resolver) Location(ctx context.Context, id int64) (domain.PropertyLocation, error) {
	const op = "location.Resolver.Location"

	loc, err := r.locations.GetLocation(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrLocationNotFound) {
			return domain.PropertyLocation{}, fmt.Errorf("%s: %w", op, ErrNotFound)
		}
		return domain.PropertyLocation{}, fmt.Errorf("%s: %w", op, err)
	}

	return loc, nil
}

// RegisterLocationInput — данные для регистрации точки расположения.
type RegisterLocationInput struct {
	Country      string
	Department   string
	City         string
	Address      string
	Neighborhood *string
	Latitude     float64
	Longitude    float64
	PostalCode   *string
}

// RegisterLocation — разрешает иерархию и создаёт точку расположения,
// возвращая её ID вместе с разрешёнными ID иерархии.
func (r *Resolver) RegisterLocation(ctx context.Context, input RegisterLocationInput) (int64, domain.LocationIDs, error) {
	const op = "location.Resolver.RegisterLocation"
	log := r.log.With(slog.String("op", op))

	if strings.TrimSpace(input.Address) == "" {
		return 0, domain.LocationIDs{}, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	ids, err := r.Resolve(ctx, input.Country, input.Department, input.City)
	if err != nil {
		return 0, domain.LocationIDs{}, fmt.Errorf("%s: %w", op, err)
	}

	locationID, err := r.locations.CreateLocation(ctx, domain.PropertyLocation{
		Address:      strings.TrimSpace(input.Address),
		Neighborhood: input.Neighborhood,
		CityID:       ids.CityID,
		Latitude:     input.Latitude,
		Longitude:    input.Longitude,
		PostalCode:   input.PostalCode,
	})
	if err != nil {
		log.Error("failed to create location", sl.Err(err))
		return 0, domain.LocationIDs{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("location registered",
		slog.Int64("location_id", locationID),
		slog.Int64("city_id", ids.CityID),
	)

	return locationID, ids, nil
}
