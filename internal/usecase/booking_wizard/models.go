package booking_wizard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// DisabledReason причина, по которой сессию нельзя выбрать
type DisabledReason string

const (
	DisabledNone   DisabledReason = ""
	DisabledFull   DisabledReason = "full"
	DisabledBooked DisabledReason = "booked"
)

// SessionOption сессия в списке выбора
type SessionOption struct {
	Session        domain.TestSession
	Selectable     bool
	DisabledReason DisabledReason
}

// View состояние мастера для отображения
type View struct {
	Step          domain.WizardStep
	Products      []domain.Product // только на шаге test
	Product       *domain.Product
	Sessions      []SessionOption
	Session       *domain.SelectedSession
	PromoCode     string
	Promo         *domain.PromocodeValidation
	OriginalPrice decimal.Decimal
	DisplayPrice  decimal.Decimal
}

// Outcome итог оформления бронирования
type Outcome string

const (
	// OutcomeRedirect браузер уходит на страницу платёжного шлюза
	OutcomeRedirect Outcome = "redirect"
	// OutcomeBookingSaved оплата наличными, бронирование ждёт оплаты до дедлайна
	OutcomeBookingSaved Outcome = "booking_saved"
	// OutcomeRedirectUnavailable бронирование создано, но шлюз не вернул ссылку
	OutcomeRedirectUnavailable Outcome = "redirect_unavailable"
	// OutcomePaymentInitFailed бронирование создано, платёж создать не удалось
	OutcomePaymentInitFailed Outcome = "payment_init_failed"
)

// SubmitRequest выбор способа оплаты
type SubmitRequest struct {
	PaymentMethod domain.PaymentMethod
}

// Refreshed списки, перезапрошенные после успешного оформления
type Refreshed struct {
	Bookings       []domain.Booking
	PaymentHistory []domain.PaymentHistoryItem
	Sessions       []domain.TestSession
}

// SubmitResult результат оформления
type SubmitResult struct {
	Outcome     Outcome
	Booking     *domain.CreatedBooking
	Payment     *domain.Payment
	RedirectURL string
	ExpiresAt   *time.Time
	Refreshed   *Refreshed // nil при переходе на шлюз
}

// DraftRequest черновик бронирования с лендинга до входа пользователя
type DraftRequest struct {
	ProductID int64
	SessionID int64
}

// PayPendingResult ссылка на оплату существующего бронирования
type PayPendingResult struct {
	BookingID   int64
	PaymentID   string
	RedirectURL string
}
