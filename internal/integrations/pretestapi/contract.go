package pretestapi

import (
	"context"
	"time"
)

// TokenStore хранилище токенов текущей браузерной сессии
type TokenStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetAccessToken(ctx context.Context, token string) error
	ClearAuth(ctx context.Context) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Metrics интерфейс метрик запросов к бэкенду
type Metrics interface {
	ObserveUpstream(method, endpoint, status string, elapsed time.Duration)
	ObserveRefresh(result string)
}

type tokenStoreKey struct{}

// WithTokens привязывает хранилище токенов сессии к контексту запроса
// Без него клиент ходит в API анонимно (каталог, логин, health-check)
func WithTokens(ctx context.Context, store TokenStore) context.Context {
	return context.WithValue(ctx, tokenStoreKey{}, store)
}

// tokensFrom возвращает хранилище токенов из контекста или nil
func tokensFrom(ctx context.Context) TokenStore {
	store, _ := ctx.Value(tokenStoreKey{}).(TokenStore)
	return store
}
