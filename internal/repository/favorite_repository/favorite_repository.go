package favorite_repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/repository"
)

type FavoriteRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewFavoriteRepository(db *pgxpool.Pool, log *slog.Logger) *FavoriteRepository {
	return &FavoriteRepository{db: db, log: log}
}

// Add — добавляет объявление в избранное. Повторное добавление не ошибка.
func (r *FavoriteRepository) Add(ctx context.Context, userID, propertyID uuid.UUID) error {
	const op = "FavoriteRepository.Add"

	query := `
		INSERT INTO favorites (user_id, property_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, property_id) DO NOTHING
	`

	if _, err := r.db.Exec(ctx, query, userID, propertyID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Remove — убирает объявление из избранного.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, propertyID uuid.UUID) error {
	const op = "FavoriteRepository.Remove"

	tag, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND property_id = $2`,
		userID, propertyID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrFavoriteNotFound)
	}

	return nil
}

// Exists — находится ли объявление в избранном пользователя.
func (r *FavoriteRepository) Exists(ctx context.Context, userID, propertyID uuid.UUID) (bool, error) {
	const op = "FavoriteRepository.Exists"

	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND property_id = $2)`,
		userID, propertyID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return exists, nil
}

// ListIDs — идентификаторы избранных объявлений, новые первыми.
func (r *FavoriteRepository) ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	const op = "FavoriteRepository.ListIDs"

	rows, err := r.db.Query(ctx,
		`SELECT property_id FROM favorites WHERE user_id = $1 ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return ids, nil
}

// ListCards — обогащённые карточки избранных объявлений пользователя.
func (r *FavoriteRepository) ListCards(ctx context.Context, userID uuid.UUID, pager *domain.Pager) ([]domain.ListingCard, error) {
	const op = "FavoriteRepository.ListCards"

	query := `
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
		FROM favorites f
		JOIN properties p ON p.id = f.property_id
		JOIN property_types t ON t.id = p.property_type_id
		JOIN property_locations loc ON loc.id = p.location_id
		JOIN cities c ON c.id = loc.city_id
		LEFT JOIN property_details d ON d.property_id = p.id
		WHERE f.user_id = $1
		ORDER BY f.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, pager.Limit(), pager.Offset())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.ListingCard
	for rows.Next() {
		var card domain.ListingCard
		var txType string
		err := rows.Scan(
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
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		card.TransactionType = domain.TransactionType(txType)
		items = append(items, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}
