package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"inmo_backend/internal/config"
	httpapi "inmo_backend/internal/http"
	"inmo_backend/internal/lib/llm"
	"inmo_backend/internal/lib/metrics"
	miniocore "inmo_backend/internal/lib/minio/core"
	"inmo_backend/internal/repository/audio_repository"
	"inmo_backend/internal/repository/catalog_repository"
	"inmo_backend/internal/repository/favorite_repository"
	"inmo_backend/internal/repository/location_repository"
	"inmo_backend/internal/repository/property_repository"
	"inmo_backend/internal/repository/user_repository"
	"inmo_backend/internal/services/audio"
	"inmo_backend/internal/services/catalog"
	"inmo_backend/internal/services/favorite"
	"inmo_backend/internal/services/generate"
	"inmo_backend/internal/services/location"
	"inmo_backend/internal/services/property"
	"inmo_backend/internal/services/search"
	"inmo_backend/internal/services/user"
)

type App struct {
	Server *httpapi.Server
	// AI-клиенты (экспортированы для внешнего доступа)
	LLMClient llm.Client
	AIMetrics *metrics.AIMetrics
}

func New(ctx context.Context, log *slog.Logger, pool *pgxpool.Pool, cfg *config.Config) (*App, error) {
	const op = "app.New"

	userRepository := user_repository.NewUserRepository(pool, log)
	locationRepository := location_repository.NewLocationRepository(pool, log)
	catalogRepository := catalog_repository.NewCatalogRepository(pool, log)
	propertyRepository := property_repository.NewPropertyRepository(pool, log)
	favoriteRepository := favorite_repository.NewFavoriteRepository(pool, log)
	audioRepository := audio_repository.NewAudioRepository(pool, log)

	// Создаём AI-клиент и хранилище изображений
	llmClient := llm.NewClient(cfg.Gemini, log)

	imageStorage, err := miniocore.NewClient(ctx, cfg.Minio, log)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	aiMetrics := metrics.GetAIMetrics(log)

	log.Info("external services initialized",
		slog.Bool("llm_enabled", llmClient.IsEnabled()),
		slog.Bool("storage_enabled", imageStorage.IsEnabled()),
	)

	resolver := location.NewResolver(log, locationStore{repo: locationRepository}, locationRepository)

	userService := user.New(log, userRepository, cfg.Secret, cfg.TokenTTL, cfg.RefreshTTL)
	catalogService := catalog.New(log, catalogRepository)
	propertyService := property.New(log, propertyRepository, resolver, imageStorage, cfg.Upload)
	favoriteService := favorite.New(log, favoriteRepository, propertyRepository)
	searchService := search.New(log, propertyRepository, llmClient, aiMetrics)
	generateService := generate.New(log, llmClient, resolver, aiMetrics)
	audioService := audio.New(log, audioRepository, catalogRepository, llmClient, aiMetrics)

	server := httpapi.New(log, cfg.HTTP)
	handlers := httpapi.NewHandlers(
		log,
		catalogService,
		userService,
		propertyService,
		favoriteService,
		searchService,
		generateService,
		audioService,
		resolver,
		aiMetrics,
	)
	server.MountRoutes(handlers, httpapi.Auth(userService))

	return &App{
		Server:    server,
		LLMClient: llmClient,
		AIMetrics: aiMetrics,
	}, nil
}

// locationStore сводит конкретный тип транзакции репозитория
// к интерфейсу location.Store.
type locationStore struct {
	repo *location_repository.LocationRepository
}

func (s locationStore) Begin(ctx context.Context) (location.Tx, error) {
	return s.repo.Begin(ctx)
}
