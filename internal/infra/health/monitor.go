package health

import (
	"context"
	"sync"
	"time"
)

// Pinger проверка доступности бэкенда
type Pinger interface {
	Ping(ctx context.Context, timeout time.Duration) bool
}

// Metrics интерфейс для публикации статуса бэкенда
type Metrics interface {
	SetBackendUp(up bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
}

// Status последний результат проверки бэкенда
type Status struct {
	BackendUp bool      `json:"backend_up"`
	CheckedAt time.Time `json:"checked_at"`
}

// Monitor периодически проверяет бэкенд и хранит последний результат в памяти
type Monitor struct {
	pinger   Pinger
	metrics  Metrics
	logger   Logger
	interval time.Duration
	timeout  time.Duration

	mu     sync.RWMutex
	status Status
}

// NewMonitor создает монитор; metrics может быть nil
func NewMonitor(pinger Pinger, metrics Metrics, logger Logger, interval, timeout time.Duration) *Monitor {
	return &Monitor{
		pinger:   pinger,
		metrics:  metrics,
		logger:   logger,
		interval: interval,
		timeout:  timeout,
	}
}

// Status возвращает последний снимок
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Check выполняет одну проверку и обновляет статус
func (m *Monitor) Check(ctx context.Context) Status {
	up := m.pinger.Ping(ctx, m.timeout)

	m.mu.Lock()
	changed := !m.status.CheckedAt.IsZero() && m.status.BackendUp != up
	m.status = Status{BackendUp: up, CheckedAt: time.Now()}
	status := m.status
	m.mu.Unlock()

	if m.metrics != nil {
		m.metrics.SetBackendUp(up)
	}
	if changed {
		if up {
			m.logger.Info("HealthMonitor: backend is back online")
		} else {
			m.logger.Warn("HealthMonitor: backend is unreachable")
		}
	}
	return status
}

// Run проверяет бэкенд сразу и далее каждые interval до отмены ctx
func (m *Monitor) Run(ctx context.Context) {
	m.Check(ctx)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Check(ctx)
		}
	}
}
