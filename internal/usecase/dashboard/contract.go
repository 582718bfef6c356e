package dashboard

import (
	"context"
	"time"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// PretestClient интерфейс клиента PreTest API
type PretestClient interface {
	ListBookings(ctx context.Context, bookingType domain.BookingType) ([]domain.Booking, error)
	TestResults(ctx context.Context) ([]domain.TestResult, error)
	PaymentHistory(ctx context.Context) ([]domain.PaymentHistoryItem, error)
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
