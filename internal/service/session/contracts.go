package session

import (
	"context"
	"time"
)

// Store сырое key-value хранилище клиентского состояния
type Store interface {
	Get(ctx context.Context, sessionID, key string) (string, error)
	Set(ctx context.Context, sessionID, key, value string) error
	Clear(ctx context.Context, sessionID string, keys ...string) error
	// Touch отмечает сессию активной на момент at, не меняя значений
	Touch(ctx context.Context, sessionID string, at time.Time) error
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}

// Metrics интерфейс метрик хранилища сессий
type Metrics interface {
	ObserveSessionStore(operation, result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
