package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"inmo_backend/internal/domain"
	"inmo_backend/internal/lib/llm"
	"inmo_backend/internal/lib/logger/sl"
	"inmo_backend/internal/lib/metrics"
)

// LocationResolver — разрешение географической иерархии для сгенерированного
// объявления.
type LocationResolver interface {
	Resolve(ctx context.Context, country, department, city string) (domain.LocationIDs, error)
}

var (
	ErrEmptyInput  = errors.New("base text is empty")
	ErrAIDisabled  = errors.New("ai generation is disabled")
	ErrInvalidJSON = errors.New("model returned malformed listing")
)

// Service — генерация маркетингового заголовка и описания объявления.
type Service struct {
	log       *slog.Logger
	llmClient llm.Client
	resolver  LocationResolver
	aiMetrics *metrics.AIMetrics
}

func New(log *slog.Logger, llmClient llm.Client, resolver LocationResolver, aiMetrics *metrics.AIMetrics) *Service {
	return &Service{
		log:       log,
		llmClient: llmClient,
		resolver:  resolver,
		aiMetrics: aiMetrics,
	}
}

// Input — исходные данные генерации. Локация разрешается только когда
// заполнены все три имени иерархии.
type Input struct {
	BaseText   string
	Latitude   float64
	Longitude  float64
	Country    string
	Department string
	City       string
}

// Result — сгенерированное объявление; Location заполнен, если иерархию
// удалось разрешить.
type Result struct {
	Title       string
	Description string
	Location    *domain.LocationIDs
}

// GenerateListing — превращает черновой текст в заголовок и HTML-описание.
func (s *Service) GenerateListing(ctx context.Context, input Input) (*Result, error) {
	const op = "generate.Service.GenerateListing"
	log := s.log.With(slog.String("op", op))

	if strings.TrimSpace(input.BaseText) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyInput)
	}
	if !s.llmClient.IsEnabled() {
		return nil, fmt.Errorf("%s: %w", op, ErrAIDisabled)
	}

	resp, err := metrics.WrapWithMetrics(ctx, s.aiMetrics, metrics.ServiceGeneration,
		func(ctx context.Context) (*llm.GenerateListingResponse, error) {
			return s.llmClient.GenerateListing(ctx, llm.GenerateListingRequest{
				BaseText:  input.BaseText,
				Latitude:  input.Latitude,
				Longitude: input.Longitude,
			})
		})
	if err != nil {
		log.Error("generation failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if strings.TrimSpace(resp.Title) == "" || strings.TrimSpace(resp.Description) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidJSON)
	}

	result := &Result{
		Title:       resp.Title,
		Description: resp.Description,
	}

	// Иерархия разрешается только при полной тройке имён; частичная
	// тройка не приводит к ошибке генерации
	if input.Country != "" && input.Department != "" && input.City != "" {
		ids, err := s.resolver.Resolve(ctx, input.Country, input.Department, input.City)
		if err != nil {
			log.Warn("failed to resolve location for generated listing", sl.Err(err))
		} else {
			result.Location = &ids
		}
	}

	log.Info("listing generated", slog.String("title", result.Title))

	return result, nil
}
