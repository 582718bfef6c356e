package countdown

import (
	"context"
	"time"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// BookingsClient источник будущих бронирований пользователя
type BookingsClient interface {
	ListBookings(ctx context.Context, bookingType domain.BookingType) ([]domain.Booking, error)
}

// Metrics интерфейс для учёта повторных запросов бронирований
type Metrics interface {
	ObserveCountdownRefetch(result string)
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

type noopMetrics struct{}

func (noopMetrics) ObserveCountdownRefetch(string) {}
