package booking_wizard

import (
	"context"
	"time"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
)

// PretestClient интерфейс клиента PreTest API
type PretestClient interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListSessions(ctx context.Context, productID int64) ([]domain.TestSession, error)
	ListBookings(ctx context.Context, bookingType domain.BookingType) ([]domain.Booking, error)
	ValidatePromocode(ctx context.Context, req pretestapi.ValidatePromocodeRequest) (*domain.PromocodeValidation, error)
	CreateBooking(ctx context.Context, req pretestapi.CreateBookingRequest) (*domain.CreatedBooking, error)
	CreatePayment(ctx context.Context, req pretestapi.CreatePaymentRequest) (*domain.Payment, error)
	GetPaymentURL(ctx context.Context, paymentID string) (*domain.PaymentURL, error)
	PaymentHistory(ctx context.Context) ([]domain.PaymentHistoryItem, error)
}

// WizardSession состояние мастера и черновик бронирования в сессии пользователя
type WizardSession interface {
	Wizard(ctx context.Context) (*domain.WizardState, error)
	SaveWizard(ctx context.Context, state *domain.WizardState) error
	ClearWizard(ctx context.Context) error
	PendingBooking(ctx context.Context) (*domain.PendingBooking, error)
	SetPendingBooking(ctx context.Context, draft *domain.PendingBooking) error
	ClearPendingBooking(ctx context.Context) error
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
