package catalog_repository

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

// CatalogRepository — справочники: страны, департаменты, города,
// типы недвижимости, категории аудио.
type CatalogRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewCatalogRepository(db *pgxpool.Pool, log *slog.Logger) *CatalogRepository {
	return &CatalogRepository{db: db, log: log}
}

// ListCountries — список стран по алфавиту.
func (r *CatalogRepository) ListCountries(ctx context.Context) ([]domain.Country, error) {
	const op = "CatalogRepository.ListCountries"

	rows, err := r.db.Query(ctx, `SELECT id, name FROM countries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.Country
	for rows.Next() {
		var c domain.Country
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// GetCountry — страна по ID.
func (r *CatalogRepository) GetCountry(ctx context.Context, id int64) (domain.Country, error) {
	const op = "CatalogRepository.GetCountry"

	var c domain.Country
	err := r.db.QueryRow(ctx, `SELECT id, name FROM countries WHERE id = $1`, id).
		Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Country{}, fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
		}
		return domain.Country{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// CreateCountry — добавляет страну.
func (r *CatalogRepository) CreateCountry(ctx context.Context, name string) (int64, error) {
	const op = "CatalogRepository.CreateCountry"

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO countries (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, repository.ErrCatalogExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateCountry — переименовывает страну.
func (r *CatalogRepository) UpdateCountry(ctx context.Context, id int64, name string) error {
	const op = "CatalogRepository.UpdateCountry"

	tag, err := r.db.Exec(ctx, `UPDATE countries SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrCatalogExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
	}
	return nil
}

// DeleteCountry — удаляет страну; на страну не должны ссылаться департаменты.
func (r *CatalogRepository) DeleteCountry(ctx context.Context, id int64) error {
	const op = "CatalogRepository.DeleteCountry"

	tag, err := r.db.Exec(ctx, `DELETE FROM countries WHERE id = $1`, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrCatalogInUse)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
	}
	return nil
}

// ListDepartments — департаменты, опционально в пределах страны.
func (r *CatalogRepository) ListDepartments(ctx context.Context, countryID *int64) ([]domain.Department, error) {
	const op = "CatalogRepository.ListDepartments"

	query := `SELECT id, name, country_id FROM departments`
	params := []interface{}{}
	if countryID != nil {
		query += ` WHERE country_id = $1`
		params = append(params, *countryID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.Department
	for rows.Next() {
		var d domain.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CountryID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// GetDepartment — департамент по ID.
func (r *CatalogRepository) GetDepartment(ctx context.Context, id int64) (domain.Department, error) {
	const op = "CatalogRepository.GetDepartment"

	var d domain.Department
	err := r.db.QueryRow(ctx,
		`SELECT id, name, country_id FROM departments WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.CountryID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Department{}, fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
		}
		return domain.Department{}, fmt.Errorf("%s: %w", op, err)
	}
	return d, nil
}

// CreateDepartment — добавляет департамент страны.
func (r *CatalogRepository) CreateDepartment(ctx context.Context, name string, countryID int64) (int64, error) {
	const op = "CatalogRepository.CreateDepartment"

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO departments (name, country_id) VALUES ($1, $2) RETURNING id`,
		name, countryID,
	).Scan(&id)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, repository.ErrCatalogExists)
		}
		if repository.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateDepartment — переименовывает департамент.
func (r *CatalogRepository) UpdateDepartment(ctx context.Context, id int64, name string) error {
	const op = "CatalogRepository.UpdateDepartment"

	tag, err := r.db.Exec(ctx, `UPDATE departments SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrCatalogExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
	}
	return nil
}

// DeleteDepartment — удаляет департамент без городов.
func (r *CatalogRepository) DeleteDepartment(ctx context.Context, id int64) error {
	const op = "CatalogRepository.DeleteDepartment"

	tag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrCatalogInUse)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
	}
	return nil
}

// ListCities — города, опционально в пределах департамента.
func (r *CatalogRepository) ListCities(ctx context.Context, departmentID *int64) ([]domain.City, error) {
	const op = "CatalogRepository.ListCities"

	query := `SELECT id, name, department_id FROM cities`
	params := []interface{}{}
	if departmentID != nil {
		query += ` WHERE department_id = $1`
		params = append(params, *departmentID)
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.City
	for rows.Next() {
		var c domain.City
		if err := rows.Scan(&c.ID, &c.Name, &c.DepartmentID); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// GetCity — город по ID.
func (r *CatalogRepository) GetCity(ctx context.Context, id int64) (domain.City, error) {
	const op = "CatalogRepository.GetCity"

	var c domain.City
	err := r.db.QueryRow(ctx,
		`SELECT id, name, department_id FROM cities WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name, &c.DepartmentID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.City{}, fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
		}
		return domain.City{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// CreateCity — добавляет город департамента.
func (r *CatalogRepository) CreateCity(ctx context.Context, name string, departmentID int64) (int64, error) {
	const op = "CatalogRepository.CreateCity"

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO cities (name, department_id) VALUES ($1, $2) RETURNING id`,
		name, departmentID,
	).Scan(&id)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, repository.ErrCatalogExists)
		}
		if repository.IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateCity — переименовывает город.
func (r *CatalogRepository) UpdateCity(ctx context.Context, id int64, name string) error {
	const op = "CatalogRepository.UpdateCity"

	tag, err := r.db.Exec(ctx, `UPDATE cities SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrCatalogExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
	}
	return nil
}

// DeleteCity — удаляет город, на который не ссылаются локации объявлений.
func (r *CatalogRepository) DeleteCity(ctx context.Context, id int64) error {
	const op = "CatalogRepository.DeleteCity"

	tag, err := r.db.Exec(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrCatalogInUse)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
	}
	return nil
}

// ListPropertyTypes — справочник типов недвижимости.
func (r *CatalogRepository) ListPropertyTypes(ctx context.Context) ([]domain.PropertyTypeEntry, error) {
	const op = "CatalogRepository.ListPropertyTypes"

	rows, err := r.db.Query(ctx, `SELECT id, name FROM property_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.PropertyTypeEntry
	for rows.Next() {
		var t domain.PropertyTypeEntry
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// GetPropertyType — тип недвижимости по ID.
func (r *CatalogRepository) GetPropertyType(ctx context.Context, id int64) (domain.PropertyTypeEntry, error) {
	const op = "CatalogRepository.GetPropertyType"

	var t domain.PropertyTypeEntry
	err := r.db.QueryRow(ctx, `SELECT id, name FROM property_types WHERE id = $1`, id).
		Scan(&t.ID, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PropertyTypeEntry{}, fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
		}
		return domain.PropertyTypeEntry{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// CreatePropertyType — добавляет тип недвижимости.
func (r *CatalogRepository) CreatePropertyType(ctx context.Context, name string) (int64, error) {
	const op = "CatalogRepository.CreatePropertyType"

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO property_types (name) VALUES ($1) RETURNING id`, name,
	).Scan(&id)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, repository.ErrCatalogExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdatePropertyType — переименовывает тип недвижимости.
func (r *CatalogRepository) UpdatePropertyType(ctx context.Context, id int64, name string) error {
	const op = "CatalogRepository.UpdatePropertyType"

	tag, err := r.db.Exec(ctx, `UPDATE property_types SET name = $2 WHERE id = $1`, id, name)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrCatalogExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
	}
	return nil
}

// DeletePropertyType — удаляет тип, не используемый объявлениями.
func (r *CatalogRepository) DeletePropertyType(ctx context.Context, id int64) error {
	const op = "CatalogRepository.DeletePropertyType"

	tag, err := r.db.Exec(ctx, `DELETE FROM property_types WHERE id = $1`, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrCatalogInUse)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
	}
	return nil
}

// ListAudioCategories — категории аудио с AI-инструкциями.
func (r *CatalogRepository) ListAudioCategories(ctx context.Context) ([]domain.AudioCategory, error) {
	const op = "CatalogRepository.ListAudioCategories"

	rows, err := r.db.Query(ctx,
		`SELECT id, code, description, ai_instruction FROM audio_categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.AudioCategory
	for rows.Next() {
		var c domain.AudioCategory
		if err := rows.Scan(&c.ID, &c.Code, &c.Description, &c.AIInstruction); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// GetAudioCategory — категория аудио по ID.
func (r *CatalogRepository) GetAudioCategory(ctx context.Context, id int64) (domain.AudioCategory, error) {
	const op = "CatalogRepository.GetAudioCategory"

	var c domain.AudioCategory
	err := r.db.QueryRow(ctx,
		`SELECT id, code, description, ai_instruction FROM audio_categories WHERE id = $1`, id,
	).Scan(&c.ID, &c.Code, &c.Description, &c.AIInstruction)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AudioCategory{}, fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
		}
		return domain.AudioCategory{}, fmt.Errorf("%s: %w", op, err)
	}
	return c, nil
}

// CreateAudioCategory — добавляет категорию аудио.
func (r *CatalogRepository) CreateAudioCategory(ctx context.Context, category domain.AudioCategory) (int64, error) {
	const op = "CatalogRepository.CreateAudioCategory"

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO audio_categories (code, description, ai_instruction)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		category.Code, category.Description, category.AIInstruction,
	).Scan(&id)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%s: %w", op, repository.ErrCatalogExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// UpdateAudioCategory — обновляет описание и AI-инструкцию категории.
func (r *CatalogRepository) UpdateAudioCategory(ctx context.Context, category domain.AudioCategory) error {
	const op = "CatalogRepository.UpdateAudioCategory"

	tag, err := r.db.Exec(ctx,
		`UPDATE audio_categories
		 SET code = $2, description = $3, ai_instruction = $4
		 WHERE id = $1`,
		category.ID, category.Code, category.Description, category.AIInstruction,
	)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrCatalogExists)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
	}
	return nil
}

// DeleteAudioCategory — удаляет категорию, не используемую обработками.
func (r *CatalogRepository) DeleteAudioCategory(ctx context.Context, id int64) error {
	const op = "CatalogRepository.DeleteAudioCategory"

	tag, err := r.db.Exec(ctx, `DELETE FROM audio_categories WHERE id = $1`, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return fmt.Errorf("%s: %w", op, repository.ErrCatalogInUse)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrCatalogNotFound)
	}
	return nil
}
