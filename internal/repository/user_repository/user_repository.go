package user_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/repository"
)

type UserRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewUserRepository(db *pgxpool.Pool, log *slog.Logger) *UserRepository {
	return &UserRepository{db: db, log: log}
}

// SaveUser — сохраняет нового пользователя, возвращает его ID.
func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) (uuid.UUID, error) {
	const op = "UserRepository.SaveUser"

	query := `
		INSERT INTO users (first_name, last_name, birth_date, gender, email, pass_hash, phone)
		VALUES ($1, $2, $3, $4, LOWER($5), $6, $7)
		RETURNING id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.BirthDate,
		user.Gender,
		user.Email,
		user.PassHash,
		user.Phone,
	).Scan(&id)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, repository.ErrUserExists)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetByEmail — пользователь по email (без учёта регистра).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	const op = "UserRepository.GetByEmail"

	query := `
		SELECT id, first_name, last_name, birth_date, gender, email, pass_hash, phone, created_at
		FROM users
		WHERE email = LOWER($1)
	`

	var u domain.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.BirthDate,
		&u.Gender,
		&u.Email,
		&u.PassHash,
		&u.Phone,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// GetByID — пользователь по ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const op = "UserRepository.GetByID"

	query := `
		SELECT id, first_name, last_name, birth_date, gender, email, pass_hash, phone, created_at
		FROM users
		WHERE id = $1
	`

	var u domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID,
		&u.FirstName,
		&u.LastName,
		&u.BirthDate,
		&u.Gender,
		&u.Email,
		&u.PassHash,
		&u.Phone,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.User{}, fmt.Errorf("%s: %w", op, repository.ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

// GetCounters — счётчики объявлений и избранного пользователя.
func (r *UserRepository) GetCounters(ctx context.Context, userID uuid.UUID) (domain.UserCounters, error) {
	const op = "UserRepository.GetCounters"

	query := `
		SELECT
			(SELECT COUNT(*) FROM properties WHERE owner_user_id = $1),
			(SELECT COUNT(*) FROM favorites WHERE user_id = $1)
	`

	var c domain.UserCounters
	err := r.db.QueryRow(ctx, query, userID).Scan(&c.MyPropertiesCount, &c.FavoritesCount)
	if err != nil {
		return domain.UserCounters{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}
