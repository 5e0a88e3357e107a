package domain

import (
	"time"

	"github.com/google/uuid"
)

// User — пользователь системы.
type User struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	BirthDate    *time.Time
	Gender       *string
	Email        string
	PassHash     []byte
	Phone        *string
	CreatedAt    time.Time
}

// TokenPair — access + refresh токены, выдаваемые при логине.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// UserCounters — счётчики для бейджей в кабинете пользователя.
type UserCounters struct {
	MyPropertiesCount int64
	FavoritesCount    int64
}

// Favorite — связь пользователь/объявление.
type Favorite struct {
	UserID     uuid.UUID
	PropertyID uuid.UUID
	CreatedAt  time.Time
}
