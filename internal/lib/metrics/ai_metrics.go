package metrics

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// AIMetrics — метрики для AI-вызовов (извлечение фильтров, генерация объявлений).
type AIMetrics struct {
	log *slog.Logger

	// Счётчики вызовов
	extractionCallsTotal int64
	generationCallsTotal int64

	// Счётчики ошибок
	extractionErrorsTotal int64
	generationErrorsTotal int64

	// Суммарная задержка (для расчёта среднего)
	extractionLatencyTotalMs int64
	generationLatencyTotalMs int64

	// Последние задержки (для мониторинга)
	extractionLastLatencyMs int64
	generationLastLatencyMs int64
}

var (
	globalMetrics *AIMetrics
	metricsOnce   sync.Once
)

// GetAIMetrics возвращает глобальный экземпляр метрик.
func GetAIMetrics(log *slog.Logger) *AIMetrics {
	metricsOnce.Do(func() {
		globalMetrics = &AIMetrics{log: log}
	})
	return globalMetrics
}

// ServiceType — тип AI-операции.
type ServiceType string

const (
	ServiceExtraction ServiceType = "extraction"
	ServiceGeneration ServiceType = "generation"
)

// RecordCall записывает вызов AI-операции.
func (m *AIMetrics) RecordCall(service ServiceType, latency time.Duration, err error) {
	latencyMs := latency.Milliseconds()

	switch service {
	case ServiceExtraction:
		atomic.AddInt64(&m.extractionCallsTotal, 1)
		atomic.AddInt64(&m.extractionLatencyTotalMs, latencyMs)
		atomic.StoreInt64(&m.extractionLastLatencyMs, latencyMs)
		if err != nil {
			atomic.AddInt64(&m.extractionErrorsTotal, 1)
		}
	case ServiceGeneration:
		atomic.AddInt64(&m.generationCallsTotal, 1)
		atomic.AddInt64(&m.generationLatencyTotalMs, latencyMs)
		atomic.StoreInt64(&m.generationLastLatencyMs, latencyMs)
		if err != nil {
			atomic.AddInt64(&m.generationErrorsTotal, 1)
		}
	}

	// Логируем вызов
	if m.log != nil {
		logAttrs := []any{
			slog.String("service", string(service)),
			slog.Int64("latency_ms", latencyMs),
		}
		if err != nil {
			logAttrs = append(logAttrs, slog.String("error", err.Error()))
			m.log.Warn("AI service call failed", logAttrs...)
		} else {
			m.log.Debug("AI service call completed", logAttrs...)
		}
	}
}

// AICallTimer помогает измерять время вызовов.
type AICallTimer struct {
	metrics   *AIMetrics
	service   ServiceType
	startTime time.Time
}

// StartTimer начинает измерение времени вызова.
func (m *AIMetrics) StartTimer(service ServiceType) *AICallTimer {
	return &AICallTimer{
		metrics:   m,
		service:   service,
		startTime: time.Now(),
	}
}

// Stop останавливает таймер и записывает метрики.
func (t *AICallTimer) Stop(err error) {
	latency := time.Since(t.startTime)
	t.metrics.RecordCall(t.service, latency, err)
}

// Stats — текущая статистика по AI-операциям.
type Stats struct {
	Extraction ServiceStats `json:"extraction"`
	Generation ServiceStats `json:"generation"`
}

// ServiceStats — статистика по одной операции.
type ServiceStats struct {
	CallsTotal    int64   `json:"calls_total"`
	ErrorsTotal   int64   `json:"errors_total"`
	ErrorRate     float64 `json:"error_rate"`
	AvgLatencyMs  float64 `json:"avg_latency_ms"`
	LastLatencyMs int64   `json:"last_latency_ms"`
}

// GetStats возвращает текущую статистику.
func (m *AIMetrics) GetStats() Stats {
	return Stats{
		Extraction: m.getServiceStats(ServiceExtraction),
		Generation: m.getServiceStats(ServiceGeneration),
	}
}

func (m *AIMetrics) getServiceStats(service ServiceType) ServiceStats {
	var calls, errors, latencyTotal, lastLatency int64

	switch service {
	case ServiceExtraction:
		calls = atomic.LoadInt64(&m.extractionCallsTotal)
		errors = atomic.LoadInt64(&m.extractionErrorsTotal)
		latencyTotal = atomic.LoadInt64(&m.extractionLatencyTotalMs)
		lastLatency = atomic.LoadInt64(&m.extractionLastLatencyMs)
	case ServiceGeneration:
		calls = atomic.LoadInt64(&m.generationCallsTotal)
		errors = atomic.LoadInt64(&m.generationErrorsTotal)
		latencyTotal = atomic.LoadInt64(&m.generationLatencyTotalMs)
		lastLatency = atomic.LoadInt64(&m.generationLastLatencyMs)
	}

	var errorRate, avgLatency float64
	if calls > 0 {
		errorRate = float64(errors) / float64(calls)
		avgLatency = float64(latencyTotal) / float64(calls)
	}

	return ServiceStats{
		CallsTotal:    calls,
		ErrorsTotal:   errors,
		ErrorRate:     errorRate,
		AvgLatencyMs:  avgLatency,
		LastLatencyMs: lastLatency,
	}
}

// Reset сбрасывает все метрики.
func (m *AIMetrics) Reset() {
	atomic.StoreInt64(&m.extractionCallsTotal, 0)
	atomic.StoreInt64(&m.generationCallsTotal, 0)
	atomic.StoreInt64(&m.extractionErrorsTotal, 0)
	atomic.StoreInt64(&m.generationErrorsTotal, 0)
	atomic.StoreInt64(&m.extractionLatencyTotalMs, 0)
	atomic.StoreInt64(&m.generationLatencyTotalMs, 0)
	atomic.StoreInt64(&m.extractionLastLatencyMs, 0)
	atomic.StoreInt64(&m.generationLastLatencyMs, 0)
}

// WrapWithMetrics оборачивает функцию для автоматического сбора метрик.
func WrapWithMetrics[T any](
	ctx context.Context,
	m *AIMetrics,
	service ServiceType,
	fn func(ctx context.Context) (T, error),
) (T, error) {
	timer := m.StartTimer(service)
	result, err := fn(ctx)
	timer.Stop(err)
	return result, err
}
