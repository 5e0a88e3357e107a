package property_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/repository"
)

type PropertyRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewPropertyRepository(db *pgxpool.Pool, log *slog.Logger) *PropertyRepository {
	return &PropertyRepository{db: db, log: log}
}

// cardSelect — обогащённая выборка карточек: объявление + тип + локация +
// город + детали + изображения. ranked_images нумерует изображения по
// позиции, первая строка становится главным изображением.
const cardSelect = `
	WITH ranked_images AS (
		SELECT property_id, url, position,
		       ROW_NUMBER() OVER (PARTITION BY property_id ORDER BY position, id) AS rn
		FROM property_images
	)
	SELECT
		p.id,
		p.title,
		p.description,
		COALESCE(p.sale_price, p.rent_price) AS price,
		CASE WHEN p.sale_price IS NOT NULL THEN 'Venta' ELSE 'Alquiler' END AS transaction_type,
		loc.latitude,
		loc.longitude,
		loc.address,
		loc.neighborhood,
		c.name AS city_name,
		t.name AS property_type,
		d.bedrooms,
		d.bathrooms,
		p.total_area,
		(SELECT ri.url FROM ranked_images ri WHERE ri.property_id = p.id AND ri.rn = 1) AS main_image_url,
		COALESCE(
			(SELECT array_agg(pi.url ORDER BY pi.position, pi.id) FROM property_images pi WHERE pi.property_id = p.id),
			'{}'
		) AS image_urls
	FROM properties p
	JOIN property_types t ON t.id = p.property_type_id
	JOIN property_locations loc ON loc.id = p.location_id
	JOIN cities c ON c.id = loc.city_id
	LEFT JOIN property_details d ON d.property_id = p.id
`

func scanCard(row pgx.Row, card *domain.ListingCard) error {
	var txType string
	err := row.Scan(
		&card.ID,
		&card.Title,
		&card.Description,
		&card.Price,
		&txType,
		&card.Latitude,
		&card.Longitude,
		&card.Address,
		&card.Neighborhood,
		&card.CityName,
		&card.PropertyType,
		&card.Bedrooms,
		&card.Bathrooms,
		&card.TotalArea,
		&card.MainImageURL,
		&card.ImageURLs,
	)
	if err != nil {
		return err
	}
	card.TransactionType = domain.TransactionType(txType)
	return nil
}

// CreateProperty — создаёт объявление вместе с деталями одной транзакцией.
func (r *PropertyRepository) CreateProperty(ctx context.Context, property domain.Property, details *domain.PropertyDetails) (uuid.UUID, error) {
	const op = "PropertyRepository.CreateProperty"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO properties (
			owner_user_id, property_type_id, location_id,
			title, description, sale_price, rent_price, total_area,
			status, featured, published_at, expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id
	`

	var id uuid.UUID
	err = tx.QueryRow(ctx, query,
		property.OwnerUserID,
		property.PropertyTypeID,
		property.LocationID,
		property.Title,
		property.Description,
		property.SalePrice,
		property.RentPrice,
		property.TotalArea,
		property.Status.String(),
		property.Featured,
		property.PublishedAt,
		property.ExpiresAt,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if details != nil {
		_, err = tx.Exec(ctx,
			`INSERT INTO property_details (property_id, bedrooms, bathrooms, other_details)
			 VALUES ($1, $2, $3, $4)`,
			id, details.Bedrooms, details.Bathrooms, details.OtherDetails,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetByID — получает объявление по ID (без обогащения).
func (r *PropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	const op = "PropertyRepository.GetByID"

	query := `
		SELECT
			id, owner_user_id, property_type_id, location_id,
			title, description, sale_price, rent_price, total_area,
			status, visits, featured,
			created_at, updated_at, published_at, expires_at
		FROM properties
		WHERE id = $1
	`

	var p domain.Property
	var statusStr string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.PropertyTypeID,
		&p.LocationID,
		&p.Title,
		&p.Description,
		&p.SalePrice,
		&p.RentPrice,
		&p.TotalArea,
		&statusStr,
		&p.Visits,
		&p.Featured,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.PublishedAt,
		&p.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Property{}, fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
		}
		return domain.Property{}, fmt.Errorf("%s: %w", op, err)
	}

	p.Status = domain.PublicationStatus(statusStr)

	return p, nil
}

// GetCard — обогащённая карточка объявления по ID.
func (r *PropertyRepository) GetCard(ctx context.Context, id uuid.UUID) (domain.ListingCard, error) {
	const op = "PropertyRepository.GetCard"

	query := cardSelect + ` WHERE p.id = $1`

	var card domain.ListingCard
	if err := scanCard(r.db.QueryRow(ctx, query, id), &card); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ListingCard{}, fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
		}
		return domain.ListingCard{}, fmt.Errorf("%s: %w", op, err)
	}

	return card, nil
}

// ListActiveCards — карточки активных объявлений, новые первыми.
func (r *PropertyRepository) ListActiveCards(ctx context.Context, pager *domain.Pager) ([]domain.ListingCard, error) {
	const op = "PropertyRepository.ListActiveCards"

	query := cardSelect + `
		WHERE p.status = 'activa'
		ORDER BY p.created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, pager.Limit(), pager.Offset())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.ListingCard
	for rows.Next() {
		var card domain.ListingCard
		if err := scanCard(rows, &card); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// Search — карточки активных объявлений, удовлетворяющие предикату.
// Условия предиката ссылаются на псевдонимы p, t, loc, c, d карточной выборки.
func (r *PropertyRepository) Search(ctx context.Context, pred *repository.Predicate, pager *domain.Pager) ([]domain.ListingCard, error) {
	const op = "PropertyRepository.Search"

	where, params := pred.WhereClause(1)
	if where == "" {
		where = `WHERE p.status = 'activa'`
	} else {
		where += ` AND p.status = 'activa'`
	}

	query := fmt.Sprintf(`%s
		%s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, cardSelect, where, len(params)+1, len(params)+2)
	params = append(params, pager.Limit(), pager.Offset())

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.ListingCard
	for rows.Next() {
		var card domain.ListingCard
		if err := scanCard(rows, &card); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// ListOwned — объявления владельца с публикационными полями и счётчиком
// избранного, с общим количеством для пагинации.
func (r *PropertyRepository) ListOwned(ctx context.Context, filter domain.OwnedFilter, pager *domain.Pager) (*domain.PagedResult[domain.OwnedListing], error) {
	const op = "PropertyRepository.ListOwned"

	whereClauses := []string{"p.owner_user_id = $1"}
	params := []interface{}{filter.OwnerUserID}
	paramCount := 2

	if filter.Status != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("p.status = $%d", paramCount))
		params = append(params, filter.Status.String())
		paramCount++
	}
	if filter.PropertyType != nil {
		whereClauses = append(whereClauses, fmt.Sprintf("t.name = $%d", paramCount))
		params = append(params, *filter.PropertyType)
		paramCount++
	}

	where := "WHERE " + strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM properties p
		JOIN property_types t ON t.id = p.property_type_id
		%s
	`, where)

	var total int64
	if err := r.db.QueryRow(ctx, countQuery, params...).Scan(&total); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	query := fmt.Sprintf(`
		WITH ranked_images AS (
			SELECT property_id, url, position,
			       ROW_NUMBER() OVER (PARTITION BY property_id ORDER BY position, id) AS rn
			FROM property_images
		)
		SELECT
			p.id,
			p.title,
			p.description,
			COALESCE(p.sale_price, p.rent_price) AS price,
			CASE WHEN p.sale_price IS NOT NULL THEN 'Venta' ELSE 'Alquiler' END AS transaction_type,
			loc.latitude,
			loc.longitude,
			loc.address,
			loc.neighborhood,
			c.name AS city_name,
			t.name AS property_type,
			d.bedrooms,
			d.bathrooms,
			p.total_area,
			(SELECT ri.url FROM ranked_images ri WHERE ri.property_id = p.id AND ri.rn = 1) AS main_image_url,
			COALESCE(
				(SELECT array_agg(pi.url ORDER BY pi.position, pi.id) FROM property_images pi WHERE pi.property_id = p.id),
				'{}'
			) AS image_urls,
			p.status,
			p.visits,
			p.featured,
			dep.name AS department_name,
			co.name AS country_name,
			(SELECT COUNT(*) FROM favorites f WHERE f.property_id = p.id) AS favorites_count,
			p.created_at,
			p.published_at,
			p.expires_at
		FROM properties p
		JOIN property_types t ON t.id = p.property_type_id
		JOIN property_locations loc ON loc.id = p.location_id
		JOIN cities c ON c.id = loc.city_id
		LEFT JOIN departments dep ON dep.id = c.department_id
		LEFT JOIN countries co ON co.id = dep.country_id
		LEFT JOIN property_details d ON d.property_id = p.id
		%s
		ORDER BY p.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, paramCount, paramCount+1)
	params = append(params, pager.Limit(), pager.Offset())

	rows, err := r.db.Query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.OwnedListing
	for rows.Next() {
		var l domain.OwnedListing
		var txType, statusStr string
		err := rows.Scan(
			&l.ID,
			&l.Title,
			&l.Description,
			&l.Price,
			&txType,
			&l.Latitude,
			&l.Longitude,
			&l.Address,
			&l.Neighborhood,
			&l.CityName,
			&l.PropertyType,
			&l.Bedrooms,
			&l.Bathrooms,
			&l.TotalArea,
			&l.MainImageURL,
			&l.ImageURLs,
			&statusStr,
			&l.Visits,
			&l.Featured,
			&l.DepartmentName,
			&l.CountryName,
			&l.FavoritesCount,
			&l.CreatedAt,
			&l.PublishedAt,
			&l.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		l.TransactionType = domain.TransactionType(txType)
		l.Status = domain.PublicationStatus(statusStr)
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &domain.PagedResult[domain.OwnedListing]{
		Items:      items,
		TotalCount: total,
		Page:       pager.Page(),
		PerPage:    pager.Limit(),
	}, nil
}

// UpdateProperty — частичное обновление объявления владельцем.
func (r *PropertyRepository) UpdateProperty(ctx context.Context, propertyID, ownerID uuid.UUID, update domain.PropertyUpdate) error {
	const op = "PropertyRepository.UpdateProperty"

	setClauses := []string{}
	params := []interface{}{}
	paramCount := 1

	if update.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", paramCount))
		params = append(params, *update.Title)
		paramCount++
	}
	if update.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", paramCount))
		params = append(params, *update.Description)
		paramCount++
	}
	if update.PropertyTypeID != nil {
		setClauses = append(setClauses, fmt.Sprintf("property_type_id = $%d", paramCount))
		params = append(params, *update.PropertyTypeID)
		paramCount++
	}
	if update.SalePrice != nil {
		setClauses = append(setClauses, fmt.Sprintf("sale_price = $%d", paramCount))
		params = append(params, update.SalePrice.Value())
		paramCount++
	}
	if update.RentPrice != nil {
		setClauses = append(setClauses, fmt.Sprintf("rent_price = $%d", paramCount))
		params = append(params, update.RentPrice.Value())
		paramCount++
	}
	if update.TotalArea != nil {
		setClauses = append(setClauses, fmt.Sprintf("total_area = $%d", paramCount))
		params = append(params, *update.TotalArea)
		paramCount++
	}
	if update.Featured != nil {
		setClauses = append(setClauses, fmt.Sprintf("featured = $%d", paramCount))
		params = append(params, *update.Featured)
		paramCount++
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNoFieldsToUpdate)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(
		`UPDATE properties SET %s WHERE id = $%d AND owner_user_id = $%d`,
		strings.Join(setClauses, ", "), paramCount, paramCount+1,
	)
	params = append(params, propertyID, ownerID)

	tag, err := r.db.Exec(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
	}

	return nil
}

// UpdateStatus — переводит объявление в новый статус публикации.
// При активации выставляет published_at и expires_at.
func (r *PropertyRepository) UpdateStatus(ctx context.Context, propertyID, ownerID uuid.UUID, status domain.PublicationStatus) error {
	const op = "PropertyRepository.UpdateStatus"

	var query string
	if status == domain.StatusActive {
		query = `
			UPDATE properties
			SET status = $1,
			    published_at = COALESCE(published_at, NOW()),
			    expires_at = NOW() + INTERVAL '90 days',
			    updated_at = NOW()
			WHERE id = $2 AND owner_user_id = $3
		`
	} else {
		query = `
			UPDATE properties
			SET status = $1, updated_at = NOW()
			WHERE id = $2 AND owner_user_id = $3
		`
	}

	tag, err := r.db.Exec(ctx, query, status.String(), propertyID, ownerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
	}

	return nil
}

// DeleteProperty — удаляет объявление со всеми зависимостями одной
// транзакцией: избранное, изображения, контакты, детали, само объявление.
func (r *PropertyRepository) DeleteProperty(ctx context.Context, propertyID, ownerID uuid.UUID) error {
	const op = "PropertyRepository.DeleteProperty"

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	defer tx.Rollback(ctx)

	var locationID int64
	err = tx.QueryRow(ctx,
		`SELECT location_id FROM properties WHERE id = $1 AND owner_user_id = $2`,
		propertyID, ownerID,
	).Scan(&locationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range []string{
		`DELETE FROM favorites WHERE property_id = $1`,
		`DELETE FROM property_images WHERE property_id = $1`,
		`DELETE FROM property_contacts WHERE property_id = $1`,
		`DELETE FROM property_details WHERE property_id = $1`,
		`DELETE FROM properties WHERE id = $1`,
	} {
		if _, err := tx.Exec(ctx, q, propertyID); err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM property_locations WHERE id = $1`, locationID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// IncrementVisits — увеличивает счётчик просмотров.
func (r *PropertyRepository) IncrementVisits(ctx context.Context, propertyID uuid.UUID) error {
	const op = "PropertyRepository.IncrementVisits"

	tag, err := r.db.Exec(ctx,
		`UPDATE properties SET visits = visits + 1 WHERE id = $1`, propertyID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
	}

	return nil
}

// GetStats — статистика объявления для владельца.
func (r *PropertyRepository) GetStats(ctx context.Context, propertyID, ownerID uuid.UUID) (domain.PropertyStats, error) {
	const op = "PropertyRepository.GetStats"

	query := `
		SELECT
			p.visits,
			(SELECT COUNT(*) FROM favorites f WHERE f.property_id = p.id),
			(SELECT COUNT(*) FROM property_images pi WHERE pi.property_id = p.id),
			p.created_at,
			p.published_at
		FROM properties p
		WHERE p.id = $1 AND p.owner_user_id = $2
	`

	var s domain.PropertyStats
	err := r.db.QueryRow(ctx, query, propertyID, ownerID).Scan(
		&s.Visits,
		&s.FavoritesCount,
		&s.ImagesCount,
		&s.CreatedAt,
		&s.PublishedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PropertyStats{}, fmt.Errorf("%s: %w", op, repository.ErrPropertyNotFound)
		}
		return domain.PropertyStats{}, fmt.Errorf("%s: %w", op, err)
	}

	return s, nil
}

// UpsertDetails — создаёт или обновляет детали объявления.
func (r *PropertyRepository) UpsertDetails(ctx context.Context, details domain.PropertyDetails) error {
	const op = "PropertyRepository.UpsertDetails"

	query := `
		INSERT INTO property_details (property_id, bedrooms, bathrooms, other_details)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (property_id) DO UPDATE SET
			bedrooms = EXCLUDED.bedrooms,
			bathrooms = EXCLUDED.bathrooms,
			other_details = EXCLUDED.other_details
	`

	_, err := r.db.Exec(ctx, query,
		details.PropertyID, details.Bedrooms, details.Bathrooms, details.OtherDetails)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// GetDetails — детали объявления.
func (r *PropertyRepository) GetDetails(ctx context.Context, propertyID uuid.UUID) (domain.PropertyDetails, error) {
	const op = "PropertyRepository.GetDetails"

	var d domain.PropertyDetails
	err := r.db.QueryRow(ctx,
		`SELECT id, property_id, bedrooms, bathrooms, other_details
		 FROM property_details WHERE property_id = $1`, propertyID,
	).Scan(&d.ID, &d.PropertyID, &d.Bedrooms, &d.Bathrooms, &d.OtherDetails)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.PropertyDetails{}, fmt.Errorf("%s: %w", op, repository.ErrDetailsNotFound)
		}
		return domain.PropertyDetails{}, fmt.Errorf("%s: %w", op, err)
	}

	return d, nil
}

// AddImage — добавляет изображение в конец списка объявления.
func (r *PropertyRepository) AddImage(ctx context.Context, propertyID uuid.UUID, url string) (domain.PropertyImage, error) {
	const op = "PropertyRepository.AddImage"

	query := `
		INSERT INTO property_images (property_id, url, position)
		VALUES (
			$1, $2,
			COALESCE((SELECT MAX(position) + 1 FROM property_images WHERE property_id = $1), 0)
		)
		RETURNING id, property_id, url, position, created_at
	`

	var img domain.PropertyImage
	err := r.db.QueryRow(ctx, query, propertyID, url).Scan(
		&img.ID, &img.PropertyID, &img.URL, &img.Position, &img.CreatedAt)
	if err != nil {
		return domain.PropertyImage{}, fmt.Errorf("%s: %w", op, err)
	}

	return img, nil
}

// ListImages — изображения объявления в порядке показа.
func (r *PropertyRepository) ListImages(ctx context.Context, propertyID uuid.UUID) ([]domain.PropertyImage, error) {
	const op = "PropertyRepository.ListImages"

	rows, err := r.db.Query(ctx,
		`SELECT id, property_id, url, position, created_at
		 FROM property_images WHERE property_id = $1 ORDER BY position, id`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.PropertyImage
	for rows.Next() {
		var img domain.PropertyImage
		if err := rows.Scan(&img.ID, &img.PropertyID, &img.URL, &img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// UpdateImage — частичное обновление изображения объявления.
func (r *PropertyRepository) UpdateImage(ctx context.Context, propertyID uuid.UUID, imageID int64, update domain.ImageUpdate) error {
	const op = "PropertyRepository.UpdateImage"

	setClauses := []string{}
	params := []interface{}{}
	paramCount := 1

	if update.URL != nil {
		setClauses = append(setClauses, fmt.Sprintf("url = $%d", paramCount))
		params = append(params, *update.URL)
		paramCount++
	}
	if update.Position != nil {
		setClauses = append(setClauses, fmt.Sprintf("position = $%d", paramCount))
		params = append(params, *update.Position)
		paramCount++
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNoFieldsToUpdate)
	}

	query := fmt.Sprintf(
		`UPDATE property_images SET %s WHERE id = $%d AND property_id = $%d`,
		strings.Join(setClauses, ", "), paramCount, paramCount+1,
	)
	params = append(params, imageID, propertyID)

	tag, err := r.db.Exec(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrImageNotFound)
	}

	return nil
}

// DeleteImage — удаляет изображение объявления и возвращает его URL,
// чтобы вызывающая сторона могла убрать объект из хранилища.
func (r *PropertyRepository) DeleteImage(ctx context.Context, propertyID uuid.UUID, imageID int64) (string, error) {
	const op = "PropertyRepository.DeleteImage"

	var url string
	err := r.db.QueryRow(ctx,
		`DELETE FROM property_images WHERE id = $1 AND property_id = $2 RETURNING url`,
		imageID, propertyID,
	).Scan(&url)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, repository.ErrImageNotFound)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return url, nil
}

// CreateContact — добавляет контакт объявления.
func (r *PropertyRepository) CreateContact(ctx context.Context, contact domain.PropertyContact) (int64, error) {
	const op = "PropertyRepository.CreateContact"

	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO property_contacts (property_id, name, phone, email, contact_type)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		contact.PropertyID, contact.Name, contact.Phone, contact.Email, contact.ContactType,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// ListContacts — контакты объявления.
func (r *PropertyRepository) ListContacts(ctx context.Context, propertyID uuid.UUID) ([]domain.PropertyContact, error) {
	const op = "PropertyRepository.ListContacts"

	rows, err := r.db.Query(ctx,
		`SELECT id, property_id, name, phone, email, contact_type
		 FROM property_contacts WHERE property_id = $1 ORDER BY id`, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.PropertyContact
	for rows.Next() {
		var c domain.PropertyContact
		if err := rows.Scan(&c.ID, &c.PropertyID, &c.Name, &c.Phone, &c.Email, &c.ContactType); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// UpdateContact — перезаписывает поля контакта объявления.
func (r *PropertyRepository) UpdateContact(ctx context.Context, contact domain.PropertyContact) error {
	const op = "PropertyRepository.UpdateContact"

	tag, err := r.db.Exec(ctx,
		`UPDATE property_contacts
		 SET name = $1, phone = $2, email = $3, contact_type = $4
		 WHERE id = $5 AND property_id = $6`,
		contact.Name, contact.Phone, contact.Email, contact.ContactType,
		contact.ID, contact.PropertyID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrContactNotFound)
	}

	return nil
}

// DeleteContact — удаляет контакт объявления.
func (r *PropertyRepository) DeleteContact(ctx context.Context, propertyID uuid.UUID, contactID int64) error {
	const op = "PropertyRepository.DeleteContact"

	tag, err := r.db.Exec(ctx,
		`DELETE FROM property_contacts WHERE id = $1 AND property_id = $2`,
		contactID, propertyID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrContactNotFound)
	}

	return nil
}
