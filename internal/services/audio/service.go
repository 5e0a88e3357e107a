package audio

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/lib/llm"
	"inmo_backend/internal/lib/logger/sl"
	"inmo_backend/internal/lib/metrics"
	"inmo_backend/internal/repository"
)

type AudioRepository interface {
	CreateJob(ctx context.Context, job domain.AudioJob) (int64, error)
	GetJob(ctx context.Context, id int64) (domain.AudioJob, error)
	ListJobs(ctx context.Context, userID uuid.UUID) ([]domain.AudioJob, error)
	UpdateJob(ctx context.Context, id int64, update domain.AudioJobUpdate) error
	DeleteJob(ctx context.Context, id int64, userID uuid.UUID) error
}

// CategoryReader — чтение категории аудио с AI-инструкцией.
type CategoryReader interface {
	GetAudioCategory(ctx context.Context, id int64) (domain.AudioCategory, error)
}

var (
	ErrJobNotFound      = errors.New("audio job not found")
	ErrNotJobOwner      = errors.New("audio job belongs to another user")
	ErrInvalidInput     = errors.New("invalid audio job input")
	ErrCategoryNotFound = errors.New("audio category not found")
)

// Service — обработка аудио-описаний объявлений. Реального распознавания
// речи нет: транскрипция записывается заглушкой, а описание генерирует LLM
// по инструкции категории.
type Service struct {
	log       *slog.Logger
	repo      AudioRepository
	catalog   CategoryReader
	llmClient llm.Client
	aiMetrics *metrics.AIMetrics
}

func New(log *slog.Logger, repo AudioRepository, catalog CategoryReader, llmClient llm.Client, aiMetrics *metrics.AIMetrics) *Service {
	return &Service{
		log:       log,
		repo:      repo,
		catalog:   catalog,
		llmClient: llmClient,
		aiMetrics: aiMetrics,
	}
}

// placeholderTranscript — заглушка до подключения реального распознавания.
const placeholderTranscript = "[transcripción pendiente]"

// CreateJob — регистрирует запись и сразу запускает обработку.
func (s *Service) CreateJob(ctx context.Context, userID uuid.UUID, categoryID *int64, propertyID *uuid.UUID, audioURL string) (domain.AudioJob, error) {
	const op = "audio.Service.CreateJob"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID.String()))

	if strings.TrimSpace(audioURL) == "" {
		return domain.AudioJob{}, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	var category *domain.AudioCategory
	if categoryID != nil {
		c, err := s.catalog.GetAudioCategory(ctx, *categoryID)
		if err != nil {
			if errors.Is(err, repository.ErrCatalogNotFound) {
				return domain.AudioJob{}, fmt.Errorf("%s: %w", op, ErrCategoryNotFound)
			}
			return domain.AudioJob{}, fmt.Errorf("%s: %w", op, err)
		}
		category = &c
	}

	id, err := s.repo.CreateJob(ctx, domain.AudioJob{
		UserID:          userID,
		AudioCategoryID: categoryID,
		PropertyID:      propertyID,
		AudioURL:        audioURL,
		Status:          domain.AudioJobPending,
	})
	if err != nil {
		log.Error("failed to create audio job", sl.Err(err))
		return domain.AudioJob{}, fmt.Errorf("%s: %w", op, err)
	}

	s.process(ctx, id, category)

	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		return domain.AudioJob{}, fmt.Errorf("%s: %w", op, err)
	}

	return job, nil
}

// process — выполняет обработку записи: транскрипция-заглушка и генерация
// описания по инструкции категории. Сбой генерации переводит запись в
// статус «error», не ломая создание.
func (s *Service) process(ctx context.Context, jobID int64, category *domain.AudioCategory) {
	transcript := placeholderTranscript

	baseText := transcript
	if category != nil && category.AIInstruction != "" {
		baseText = category.AIInstruction + "\n\n" + transcript
	}

	var update domain.AudioJobUpdate

	if s.llmClient.IsEnabled() {
		resp, err := metrics.WrapWithMetrics(ctx, s.aiMetrics, metrics.ServiceGeneration,
			func(ctx context.Context) (*llm.GenerateListingResponse, error) {
				return s.llmClient.GenerateListing(ctx, llm.GenerateListingRequest{BaseText: baseText})
			})
		if err != nil {
			s.log.Warn("audio description generation failed", slog.Int64("job_id", jobID), sl.Err(err))
			failed := domain.AudioJobFailed
			msg := err.Error()
			update = domain.AudioJobUpdate{
				Status:       &failed,
				Transcript:   &transcript,
				ErrorMessage: &msg,
			}
		} else {
			processed := domain.AudioJobProcessed
			update = domain.AudioJobUpdate{
				Status:               &processed,
				Transcript:           &transcript,
				GeneratedDescription: &resp.Description,
			}
		}
	} else {
		// Без LLM запись остаётся обработанной только транскрипцией
		processed := domain.AudioJobProcessed
		update = domain.AudioJobUpdate{
			Status:     &processed,
			Transcript: &transcript,
		}
	}

	if err := s.repo.UpdateJob(ctx, jobID, update); err != nil {
		s.log.Error("failed to update audio job", slog.Int64("job_id", jobID), sl.Err(err))
	}
}

// GetJob — запись обработки; доступна только владельцу.
func (s *Service) GetJob(ctx context.Context, id int64, userID uuid.UUID) (domain.AudioJob, error) {
	const op = "audio.Service.GetJob"

	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAudioJobNotFound) {
			return domain.AudioJob{}, fmt.Errorf("%s: %w", op, ErrJobNotFound)
		}
		return domain.AudioJob{}, fmt.Errorf("%s: %w", op, err)
	}
	if job.UserID != userID {
		return domain.AudioJob{}, fmt.Errorf("%s: %w", op, ErrNotJobOwner)
	}

	return job, nil
}

// ListJobs — записи обработки пользователя.
func (s *Service) ListJobs(ctx context.Context, userID uuid.UUID) ([]domain.AudioJob, error) {
	const op = "audio.Service.ListJobs"

	items, err := s.repo.ListJobs(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return items, nil
}

// UpdateJobInput — правки записи обработки, доступные владельцу.
// Статус и сообщение об ошибке выставляет только конвейер обработки.
type UpdateJobInput struct {
	Transcript           *string
	GeneratedDescription *string
}

// UpdateJob — правит транскрипцию или сгенерированное описание записи.
func (s *Service) UpdateJob(ctx context.Context, id int64, userID uuid.UUID, input UpdateJobInput) error {
	const op = "audio.Service.UpdateJob"

	if input.Transcript == nil && input.GeneratedDescription == nil {
		return fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	job, err := s.repo.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrAudioJobNotFound) {
			return fmt.Errorf("%s: %w", op, ErrJobNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if job.UserID != userID {
		return fmt.Errorf("%s: %w", op, ErrNotJobOwner)
	}

	update := domain.AudioJobUpdate{
		Transcript:           input.Transcript,
		GeneratedDescription: input.GeneratedDescription,
	}
	if err := s.repo.UpdateJob(ctx, id, update); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteJob — удаляет запись обработки пользователя.
func (s *Service) DeleteJob(ctx context.Context, id int64, userID uuid.UUID) error {
	const op = "audio.Service.DeleteJob"

	if err := s.repo.DeleteJob(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrAudioJobNotFound) {
			return fmt.Errorf("%s: %w", op, ErrJobNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
