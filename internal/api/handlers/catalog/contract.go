package catalog

import (
	"context"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// CatalogClient каталог тестов и сессий PreTest API
type CatalogClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListSessions(ctx context.Context, productID int64) ([]domain.TestSession, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
