package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string `env:"ENV" env-default:"local"`
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
	HTTP        HTTPConfig
	TokenTTL    time.Duration `env:"TOKEN_TTL" env-default:"15m"`
	RefreshTTL  time.Duration `env:"REFRESH_TTL" env-default:"168h"`
	Secret      string        `env:"JWT_SECRET" env-required:"true"`
	Minio       MinioConfig
	Gemini      GeminiConfig
	Upload      UploadConfig
}

type HTTPConfig struct {
	Port           int           `env:"HTTP_PORT" env-default:"3000"`
	ReadTimeout    time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout   time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout    time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	AllowedOrigins []string      `env:"HTTP_ALLOWED_ORIGINS" env-default:"*"`
}

type MinioConfig struct {
	Enabled           bool   `env:"MINIO_ENABLE" env-default:"false"`
	MinioEndpoint     string `env:"MINIO_ENDPOINT"`
	BucketName        string `env:"MINIO_BUCKET" env-default:"property-images"`
	MinioRootUser     string `env:"MINIO_USER"`
	MinioRootPassword string `env:"MINIO_PASSWORD"`
	MinioUseSSL       bool   `env:"MINIO_USE_SSL"`
	PublicBaseURL     string `env:"MINIO_PUBLIC_BASE_URL"`
}

// GeminiConfig — конфигурация клиента Gemini API (извлечение фильтров
// и генерация описаний).
type GeminiConfig struct {
	Enabled bool          `env:"GEMINI_ENABLE" env-default:"false"`
	BaseURL string        `env:"GEMINI_BASE_URL" env-default:"https://generativelanguage.googleapis.com/v1beta"`
	APIKey  string        `env:"GEMINI_API_KEY"`
	Model   string        `env:"GEMINI_MODEL" env-default:"gemini-2.5-pro"`
	Timeout time.Duration `env:"GEMINI_TIMEOUT" env-default:"60s"`
}

// UploadConfig — ограничения загрузки изображений.
type UploadConfig struct {
	MaxFileSizeBytes int64    `env:"UPLOAD_MAX_FILE_SIZE" env-default:"5242880"`
	AllowedMimeTypes []string `env:"UPLOAD_ALLOWED_MIME" env-default:"image/jpeg,image/png,image/webp"`
}

func MustLoad() *Config {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from environment: " + err.Error())
	}
	return &cfg
}
