package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"inmo_backend/internal/config"
	"inmo_backend/internal/lib/logger/sl"
)

// ErrDisabled возвращается, когда объектное хранилище выключено в конфигурации.
var ErrDisabled = errors.New("object storage is disabled")

// Client — клиент объектного хранилища для изображений объявлений.
type Client interface {
	// UploadImage загружает изображение и возвращает публичный URL.
	UploadImage(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
	// RemoveImage удаляет объект из бакета.
	RemoveImage(ctx context.Context, objectName string) error
	IsEnabled() bool
}

type minioClient struct {
	client *minio.Client
	cfg    config.MinioConfig
	log    *slog.Logger
}

type noopClient struct {
	log *slog.Logger
}

// NewClient создаёт клиент MinIO. При выключенном хранилище возвращает
// noop-заглушку, загрузка изображений при этом недоступна.
func NewClient(ctx context.Context, cfg config.MinioConfig, log *slog.Logger) (Client, error) {
	const op = "Minio.NewClient"

	if !cfg.Enabled {
		log.Warn("object storage is disabled, image upload unavailable")
		return &noopClient{log: log}, nil
	}

	mc, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioRootUser, cfg.MinioRootPassword, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	c := &minioClient{client: mc, cfg: cfg, log: log}

	if err := c.ensureBucket(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("object storage initialized",
		slog.String("endpoint", cfg.MinioEndpoint),
		slog.String("bucket", cfg.BucketName),
	)

	return c, nil
}

func (c *minioClient) ensureBucket(ctx context.Context) error {
	exists, err := c.client.BucketExists(ctx, c.cfg.BucketName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return c.client.MakeBucket(ctx, c.cfg.BucketName, minio.MakeBucketOptions{})
}

func (c *minioClient) UploadImage(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	const op = "Minio.UploadImage"

	_, err := c.client.PutObject(ctx, c.cfg.BucketName, objectName, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		c.log.Error("failed to upload image", sl.Err(err), slog.String("object", objectName))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return c.publicURL(objectName), nil
}

func (c *minioClient) RemoveImage(ctx context.Context, objectName string) error {
	const op = "Minio.RemoveImage"

	if err := c.client.RemoveObject(ctx, c.cfg.BucketName, objectName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (c *minioClient) IsEnabled() bool { return true }

// publicURL собирает внешний адрес объекта. PublicBaseURL имеет приоритет,
// иначе URL строится от эндпоинта хранилища.
func (c *minioClient) publicURL(objectName string) string {
	if c.cfg.PublicBaseURL != "" {
		return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.cfg.PublicBaseURL, "/"), c.cfg.BucketName, objectName)
	}
	scheme := "http"
	if c.cfg.MinioUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, c.cfg.MinioEndpoint, c.cfg.BucketName, objectName)
}

func (c *noopClient) UploadImage(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error) {
	c.log.Warn("UploadImage called on disabled storage", slog.String("object", objectName))
	return "", ErrDisabled
}

func (c *noopClient) RemoveImage(ctx context.Context, objectName string) error {
	return ErrDisabled
}

func (c *noopClient) IsEnabled() bool { return false }
