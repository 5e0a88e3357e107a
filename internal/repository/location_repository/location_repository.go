package location_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/repository"
)

// LocationRepository — хранилище географического каталога и точек
// расположения объявлений.
type LocationRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewLocationRepository(db *pgxpool.Pool, log *slog.Logger) *LocationRepository {
	return &LocationRepository{db: db, log: log}
}

// Tx — транзакция разрешения иерархии страна → департамент → город.
type Tx struct {
	tx  pgx.Tx
	log *slog.Logger
}

// Begin открывает транзакцию разрешения локации.
func (r *LocationRepository) Begin(ctx context.Context) (*Tx, error) {
	const op = "LocationRepository.Begin"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Tx{tx: tx, log: r.log}, nil
}

func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// FindCountry ищет страну по имени без учёта регистра.
func (t *Tx) FindCountry(ctx context.Context, name string) (int64, error) {
	const op = "LocationRepository.FindCountry"

	var id int64
	err := t.tx.QueryRow(ctx,
		`SELECT id FROM countries WHERE LOWER(name) = LOWER($1)`, name,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, repository.ErrLocationNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// InsertCountry создаёт страну. При гонке с параллельной вставкой
// ON CONFLICT не возвращает строку, и тогда перечитывается победившая.
// DO NOTHING вместо перехвата 23505: ошибка уникальности прервала бы
// всю текущую транзакцию.
func (t *Tx) InsertCountry(ctx context.Context, name string) (int64, error) {
	const op = "LocationRepository.InsertCountry"

	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO countries (name) VALUES ($1)
		 ON CONFLICT (LOWER(name)) DO NOTHING
		 RETURNING id`, name,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return t.FindCountry(ctx, name)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// FindDepartment ищет департамент по имени внутри страны.
func (t *Tx) FindDepartment(ctx context.Context, name string, countryID int64) (int64, error) {
	const op = "LocationRepository.FindDepartment"

	var id int64
	err := t.tx.QueryRow(ctx,
		`SELECT id FROM departments WHERE LOWER(name) = LOWER($1) AND country_id = $2`,
		name, countryID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, repository.ErrLocationNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

func (t *Tx) InsertDepartment(ctx context.Context, name string, countryID int64) (int64, error) {
	const op = "LocationRepository.InsertDepartment"

	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO departments (name, country_id) VALUES ($1, $2)
		 ON CONFLICT (LOWER(name), country_id) DO NOTHING
		 RETURNING id`,
		name, countryID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return t.FindDepartment(ctx, name, countryID)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// FindCity ищет город по имени внутри департамента.
func (t *Tx) FindCity(ctx context.Context, name string, departmentID int64) (int64, error) {
	const op = "LocationRepository.FindCity"

	var id int64
	err := t.tx.QueryRow(ctx,
		`SELECT id FROM cities WHERE LOWER(name) = LOWER($1) AND department_id = $2`,
		name, departmentID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("%s: %w", op, repository.ErrLocationNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

func (t *Tx) InsertCity(ctx context.Context, name string, departmentID int64) (int64, error) {
	const op = "LocationRepository.InsertCity"

	var id int64
	err := t.tx.QueryRow(ctx,
		`INSERT INTO cities (name, department_id) VALUES ($1, $2)
		 ON CONFLICT (LOWER(name), department_id) DO NOTHING
		 RETURNING id`,
		name, departmentID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return t.FindCity(ctx, name, departmentID)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// CreateLocation — создаёт точку расположения объявления.
func (r *LocationRepository) CreateLocation(ctx context.Context, loc domain.PropertyLocation) (int64, error) {
	const op = "LocationRepository.CreateLocation"

	query := `
		INSERT INTO property_locations (address, neighborhood, city_id, latitude, longitude, postal_code)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		loc.Address,
		loc.Neighborhood,
		loc.CityID,
		loc.Latitude,
		loc.Longitude,
		loc.PostalCode,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetLocation — получает точку расположения по ID.
func (r *LocationRepository) GetLocation(ctx context.Context, id int64) (domain.PropertyLocation, error) {
	const op = "LocationRepository.GetLocation"

	query := `
		SELECT id, address, neighborhood, city_id, latitude, longitude, postal_code
		FROM property_locations
		WHERE id = $1
	`

	var loc domain.PropertyLocation
	err := r.db.QueryRow(ctx, query, id).Scan(
		&loc.ID,
		&loc.Address,
		&loc.Neighborhood,
		&loc.CityID,
		&loc.Latitude,
		&loc.Longitude,
		&loc.PostalCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PropertyLocation{}, fmt.Errorf("%s: %w", op, repository.ErrLocationNotFound)
		}
		return domain.PropertyLocation{}, fmt.Errorf("%s: %w", op, err)
	}

	return loc, nil
}
