package search

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
	"inmo_backend/internal/repository"
)

// PropertySearcher — выборка карточек по предикату.
type PropertySearcher interface {
	Search(ctx context.Context, pred *repository.Predicate, pager *domain.Pager) ([]domain.ListingCard, error)
}

var (
	ErrEmptyQuery = errors.New("search query is empty")
)

// Service — поиск объявлений по запросу на естественном языке.
// LLM извлекает структурированный фильтр, построитель переводит его
// в предикат, репозиторий выполняет выборку.
type Service struct {
	log       *slog.Logger
	repo      PropertySearcher
	llmClient llm.Client
	aiMetrics *metrics.AIMetrics
}

func New(log *slog.Logger, repo PropertySearcher, llmClient llm.Client, aiMetrics *metrics.AIMetrics) *Service {
	return &Service{
		log:       log,
		repo:      repo,
		llmClient: llmClient,
		aiMetrics: aiMetrics,
	}
}

// Search — извлекает фильтр из запроса и возвращает подходящие карточки.
// При выключенном LLM возвращает выборку без ограничений фильтра.
func (s *Service) Search(ctx context.Context, query string, pager *domain.Pager) (*domain.SearchResult, error) {
	const op = "search.Service.Search"
	log := s.log.With(slog.String("op", op))

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyQuery)
	}

	filter, err := s.extractFilter(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	pred := BuildFilterPredicate(*filter)
	log.Info("search filter extracted",
		slog.String("query", query),
		slog.Int("conditions", pred.Len()),
	)

	items, err := s.repo.Search(ctx, pred, pager)
	if err != nil {
		log.Error("search query failed", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &domain.SearchResult{
		Query:   query,
		Filters: *filter,
		Items:   items,
	}, nil
}

// Explain — возвращает извлечённый фильтр и его словесную расшифровку
// без выполнения выборки.
func (s *Service) Explain(ctx context.Context, query string) (*domain.SearchFilter, []string, error) {
	const op = "search.Service.Explain"

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil, fmt.Errorf("%s: %w", op, ErrEmptyQuery)
	}

	filter, err := s.extractFilter(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	return filter, DescribeFilter(*filter), nil
}

func (s *Service) extractFilter(ctx context.Context, query string) (*domain.SearchFilter, error) {
	if !s.llmClient.IsEnabled() {
		s.log.Warn("llm disabled, searching without filter extraction")
		return &domain.SearchFilter{}, nil
	}

	filter, err := metrics.WrapWithMetrics(ctx, s.aiMetrics, metrics.ServiceExtraction,
		func(ctx context.Context) (*domain.SearchFilter, error) {
			return s.llmClient.ExtractSearchFilter(ctx, query)
		})
	if err != nil {
		// Сбой извлечения не валит поиск: деградируем до выборки без фильтра
		s.log.Warn("filter extraction failed, falling back to unfiltered search", sl.Err(err))
		return &domain.SearchFilter{}, nil
	}

	return filter, nil
}
