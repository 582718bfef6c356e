package feedback

import (
	"context"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
)

// PretestClient интерфейс клиента PreTest API (видео-фидбек и платежи)
type PretestClient interface {
	FeedbackOptions(ctx context.Context) ([]domain.FeedbackOption, error)
	FeedbackRequests(ctx context.Context) ([]domain.FeedbackRequest, error)
	FeedbackStatistics(ctx context.Context) (*domain.FeedbackStatistics, error)
	CreateFeedback(ctx context.Context, req pretestapi.CreateFeedbackRequest) (*domain.FeedbackRequest, error)
	CreatePayment(ctx context.Context, req pretestapi.CreatePaymentRequest) (*domain.Payment, error)
	GetOrCreatePayment(ctx context.Context, req pretestapi.CreatePaymentRequest) (*domain.Payment, error)
	ListBookings(ctx context.Context, bookingType domain.BookingType) ([]domain.Booking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
