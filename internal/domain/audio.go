package domain

import (
	"time"

	"github.com/google/uuid"
)

// AudioJobStatus — статус обработки аудио.
type AudioJobStatus string

const (
	AudioJobPending   AudioJobStatus = "pendiente"
	AudioJobProcessed AudioJobStatus = "procesado"
	AudioJobFailed    AudioJobStatus = "error"
)

func (s AudioJobStatus) String() string {
	return string(s)
}

// AudioJob — запись об обработке аудио-описания объявления.
// Транскрипция — заглушка, реального распознавания нет.
type AudioJob struct {
	ID                   int64
	UserID               uuid.UUID
	AudioCategoryID      *int64
	PropertyID           *uuid.UUID
	AudioURL             string
	Status               AudioJobStatus
	Transcript           *string
	GeneratedDescription *string
	ErrorMessage         *string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// AudioJobUpdate — частичное обновление записи обработки аудио.
type AudioJobUpdate struct {
	Status               *AudioJobStatus
	Transcript           *string
	GeneratedDescription *string
	ErrorMessage         *string
}
