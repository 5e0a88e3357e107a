package audio_repository

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

type AudioRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewAudioRepository(db *pgxpool.Pool, log *slog.Logger) *AudioRepository {
	return &AudioRepository{db: db, log: log}
}

// CreateJob — регистрирует новую запись обработки аудио.
func (r *AudioRepository) CreateJob(ctx context.Context, job domain.AudioJob) (int64, error) {
	const op = "AudioRepository.CreateJob"

	query := `
		INSERT INTO audio_jobs (user_id, audio_category_id, property_id, audio_url, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRow(ctx, query,
		job.UserID,
		job.AudioCategoryID,
		job.PropertyID,
		job.AudioURL,
		job.Status.String(),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetJob — запись обработки по ID.
func (r *AudioRepository) GetJob(ctx context.Context, id int64) (domain.AudioJob, error) {
	const op = "AudioRepository.GetJob"

	query := `
		SELECT id, user_id, audio_category_id, property_id, audio_url,
		       status, transcript, generated_description, error_message,
		       created_at, updated_at
		FROM audio_jobs
		WHERE id = $1
	`

	var j domain.AudioJob
	var statusStr string
	err := r.db.QueryRow(ctx, query, id).Scan(
		&j.ID,
		&j.UserID,
		&j.AudioCategoryID,
		&j.PropertyID,
		&j.AudioURL,
		&statusStr,
		&j.Transcript,
		&j.GeneratedDescription,
		&j.ErrorMessage,
		&j.CreatedAt,
		&j.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AudioJob{}, fmt.Errorf("%s: %w", op, repository.ErrAudioJobNotFound)
		}
		return domain.AudioJob{}, fmt.Errorf("%s: %w", op, err)
	}

	j.Status = domain.AudioJobStatus(statusStr)

	return j, nil
}

// ListJobs — записи обработки пользователя, новые первыми.
func (r *AudioRepository) ListJobs(ctx context.Context, userID uuid.UUID) ([]domain.AudioJob, error) {
	const op = "AudioRepository.ListJobs"

	query := `
		SELECT id, user_id, audio_category_id, property_id, audio_url,
		       status, transcript, generated_description, error_message,
		       created_at, updated_at
		FROM audio_jobs
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var items []domain.AudioJob
	for rows.Next() {
		var j domain.AudioJob
		var statusStr string
		err := rows.Scan(
			&j.ID,
			&j.UserID,
			&j.AudioCategoryID,
			&j.PropertyID,
			&j.AudioURL,
			&statusStr,
			&j.Transcript,
			&j.GeneratedDescription,
			&j.ErrorMessage,
			&j.CreatedAt,
			&j.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		j.Status = domain.AudioJobStatus(statusStr)
		items = append(items, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// UpdateJob — частичное обновление записи обработки.
func (r *AudioRepository) UpdateJob(ctx context.Context, id int64, update domain.AudioJobUpdate) error {
	const op = "AudioRepository.UpdateJob"

	setClauses := []string{}
	params := []interface{}{}
	paramCount := 1

	if update.Status != nil {
		setClauses = append(setClauses, fmt.Sprintf("status = $%d", paramCount))
		params = append(params, update.Status.String())
		paramCount++
	}
	if update.Transcript != nil {
		setClauses = append(setClauses, fmt.Sprintf("transcript = $%d", paramCount))
		params = append(params, *update.Transcript)
		paramCount++
	}
	if update.GeneratedDescription != nil {
		setClauses = append(setClauses, fmt.Sprintf("generated_description = $%d", paramCount))
		params = append(params, *update.GeneratedDescription)
		paramCount++
	}
	if update.ErrorMessage != nil {
		setClauses = append(setClauses, fmt.Sprintf("error_message = $%d", paramCount))
		params = append(params, *update.ErrorMessage)
		paramCount++
	}

	if len(setClauses) == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNoFieldsToUpdate)
	}

	setClauses = append(setClauses, "updated_at = NOW()")

	query := fmt.Sprintf(
		`UPDATE audio_jobs SET %s WHERE id = $%d`,
		strings.Join(setClauses, ", "), paramCount,
	)
	params = append(params, id)

	tag, err := r.db.Exec(ctx, query, params...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrAudioJobNotFound)
	}

	return nil
}

// DeleteJob — удаляет запись обработки пользователя.
func (r *AudioRepository) DeleteJob(ctx context.Context, id int64, userID uuid.UUID) error {
	const op = "AudioRepository.DeleteJob"

	tag, err := r.db.Exec(ctx,
		`DELETE FROM audio_jobs WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrAudioJobNotFound)
	}

	return nil
}
