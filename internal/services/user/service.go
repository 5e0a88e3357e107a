package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"inmo_backend/internal/domain"
	libjwt "inmo_backend/internal/lib/jwt"
	"inmo_backend/internal/lib/logger/sl"
	"inmo_backend/internal/repository"
)

type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetCounters(ctx context.Context, userID uuid.UUID) (domain.UserCounters, error)
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidInput       = errors.New("invalid registration input")
)

// Service — регистрация и аутентификация пользователей.
type Service struct {
	log        *slog.Logger
	repo       UserRepository
	secret     string
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

func New(log *slog.Logger, repo UserRepository, secret string, tokenTTL, refreshTTL time.Duration) *Service {
	return &Service{
		log:        log,
		repo:       repo,
		secret:     secret,
		tokenTTL:   tokenTTL,
		refreshTTL: refreshTTL,
	}
}

// RegisterInput — данные регистрации.
type RegisterInput struct {
	FirstName string
	LastName  string
	BirthDate *time.Time
	Gender    *string
	Email     string
	Password  string
	Phone     *string
}

// Register — создаёт пользователя с bcrypt-хэшем пароля.
func (s *Service) Register(ctx context.Context, input RegisterInput) (uuid.UUID, error) {
	const op = "user.Service.Register"
	log := s.log.With(slog.String("op", op), slog.String("email", input.Email))

	if strings.TrimSpace(input.Email) == "" ||
		strings.TrimSpace(input.Password) == "" ||
		strings.TrimSpace(input.FirstName) == "" ||
		strings.TrimSpace(input.LastName) == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidInput)
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to hash password", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.repo.SaveUser(ctx, domain.User{
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		BirthDate: input.BirthDate,
		Gender:    input.Gender,
		Email:     strings.TrimSpace(input.Email),
		PassHash:  passHash,
		Phone:     input.Phone,
	})
	if err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			log.Warn("user already exists")
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrUserExists)
		}
		log.Error("failed to save user", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user registered", slog.String("user_id", id.String()))

	return id, nil
}

// Login — проверяет пароль и выдаёт пару access/refresh токенов.
// Неизвестный email и неверный пароль неразличимы для вызывающего.
func (s *Service) Login(ctx context.Context, email, password string) (domain.TokenPair, error) {
	const op = "user.Service.Login"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			log.Warn("user not found")
			return domain.TokenPair{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		log.Error("failed to get user", sl.Err(err))
		return domain.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(u.PassHash, []byte(password)); err != nil {
		log.Warn("invalid password")
		return domain.TokenPair{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		log.Error("failed to issue tokens", sl.Err(err))
		return domain.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in", slog.String("user_id", u.ID.String()))

	return pair, nil
}

// Refresh — обменивает действующий refresh-токен на новую пару.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	const op = "user.Service.Refresh"
	log := s.log.With(slog.String("op", op))

	claims, err := libjwt.ParseToken(refreshToken, s.secret, libjwt.TypeRefresh)
	if err != nil {
		log.Warn("invalid refresh token", sl.Err(err))
		return domain.TokenPair{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	u, err := s.repo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.TokenPair{}, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return domain.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	pair, err := s.issueTokens(u)
	if err != nil {
		log.Error("failed to issue tokens", sl.Err(err))
		return domain.TokenPair{}, fmt.Errorf("%s: %w", op, err)
	}

	return pair, nil
}

func (s *Service) issueTokens(u domain.User) (domain.TokenPair, error) {
	access, err := libjwt.NewToken(u, s.secret, s.tokenTTL, libjwt.TypeAccess)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := libjwt.NewToken(u, s.secret, s.refreshTTL, libjwt.TypeRefresh)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess — проверяет access-токен и возвращает ID пользователя.
func (s *Service) VerifyAccess(tokenString string) (uuid.UUID, error) {
	const op = "user.Service.VerifyAccess"

	claims, err := libjwt.ParseToken(tokenString, s.secret, libjwt.TypeAccess)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	return claims.UserID, nil
}

// GetProfile — профиль пользователя без хэша пароля.
func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (domain.User, error) {
	const op = "user.Service.GetProfile"

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return domain.User{}, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return domain.User{}, fmt.Errorf("%s: %w", op, err)
	}

	u.PassHash = nil

	return u, nil
}

// Counters — счётчики кабинета пользователя.
func (s *Service) Counters(ctx context.Context, userID uuid.UUID) (domain.UserCounters, error) {
	const op = "user.Service.Counters"

	c, err := s.repo.GetCounters(ctx, userID)
	if err != nil {
		return domain.UserCounters{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}
