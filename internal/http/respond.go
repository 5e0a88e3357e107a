package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"inmo_backend/internal/services/audio"
	"inmo_backend/internal/services/catalog"
	"inmo_backend/internal/services/favorite"
	"inmo_backend/internal/services/generate"
	"inmo_backend/internal/services/location"
	"inmo_backend/internal/services/property"
	"inmo_backend/internal/services/search"
	"inmo_backend/internal/services/user"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError — переводит ошибки сервисного слоя в HTTP-статусы.
// Неопознанная ошибка не раскрывает деталей наружу.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, user.ErrUserExists):
		writeError(w, http.StatusConflict, "email already registered")
	case errors.Is(err, catalog.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "entry already exists")
	case errors.Is(err, catalog.ErrInUse):
		writeError(w, http.StatusConflict, "entry is still referenced")
	case errors.Is(err, property.ErrNotOwner),
		errors.Is(err, audio.ErrNotJobOwner):
		writeError(w, http.StatusForbidden, "access denied")
	case errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, property.ErrNotFound),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, favorite.ErrPropertyNotFound),
		errors.Is(err, favorite.ErrNotFavorite),
		errors.Is(err, audio.ErrJobNotFound),
		errors.Is(err, audio.ErrCategoryNotFound),
		errors.Is(err, location.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, property.ErrFileTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "file exceeds size limit")
	case errors.Is(err, property.ErrUnsupportedMime):
		writeError(w, http.StatusUnsupportedMediaType, "unsupported file type")
	case errors.Is(err, property.ErrStorageDisabled),
		errors.Is(err, generate.ErrAIDisabled):
		writeError(w, http.StatusServiceUnavailable, "service unavailable")
	case errors.Is(err, user.ErrInvalidInput),
		errors.Is(err, property.ErrInvalidInput),
		errors.Is(err, property.ErrNoPrice),
		errors.Is(err, property.ErrInvalidStatus),
		errors.Is(err, location.ErrInvalidInput),
		errors.Is(err, catalog.ErrInvalidInput),
		errors.Is(err, search.ErrEmptyQuery),
		errors.Is(err, generate.ErrEmptyInput),
		errors.Is(err, audio.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
