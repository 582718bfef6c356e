package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod способ оплаты
type PaymentMethod string

const (
	PaymentMethodClick PaymentMethod = "click"
	PaymentMethodCash  PaymentMethod = "cash"
)

// IsValid returns true for a supported payment method
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodClick || m == PaymentMethodCash
}

// PaymentStatus статус оплаты бронирования
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// BookingType фильтр списка бронирований
type BookingType string

const (
	BookingTypeFuture BookingType = "future"
	BookingTypePast   BookingType = "past"
)

// Booking бронирование сессии пользователем
// Переходы pending -> paid / cancelled выполняет только бэкенд
type Booking struct {
	ID            int64         `json:"id"`
	Session       TestSession   `json:"session"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	CreatedAt     time.Time     `json:"created_at"`
	User          string        `json:"user,omitempty"`
	HasResult     bool          `json:"has_result"`

	// ExpiresAt крайний срок оплаты, после которого бэкенд отменит бронирование
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IsExpired bool       `json:"is_expired"`

	OriginalPrice    decimal.NullDecimal `json:"original_price"`
	DiscountAmount   decimal.NullDecimal `json:"discount_amount"`
	FinalPrice       decimal.NullDecimal `json:"final_price"`
	PromoCodeApplied *string             `json:"promo_code_applied,omitempty"`
	PaymentID        string              `json:"payment_id,omitempty"`
}

// IsPending returns true if the booking is waiting for payment and the backend has not expired it
func (b *Booking) IsPending() bool {
	return b.PaymentStatus == PaymentStatusPending && !b.IsExpired
}

// IsPaid returns true if the booking has been paid
func (b *Booking) IsPaid() bool {
	return b.PaymentStatus == PaymentStatusPaid
}

// HasDeadline returns true if the backend provided a payment deadline
func (b *Booking) HasDeadline() bool {
	return b.ExpiresAt != nil && !b.ExpiresAt.IsZero()
}

// PayableAmount сумма к оплате: итоговая цена бронирования, иначе цена продукта
func (b *Booking) PayableAmount() decimal.Decimal {
	if b.FinalPrice.Valid {
		return b.FinalPrice.Decimal
	}
	return b.Session.Product.Price
}

// CreatedBooking ответ бэкенда на создание бронирования
// session приходит как id, а не как вложенный объект
type CreatedBooking struct {
	ID               int64               `json:"id"`
	SessionID        int64               `json:"session"`
	PaymentMethod    PaymentMethod       `json:"payment_method"`
	PaymentStatus    PaymentStatus       `json:"payment_status"`
	CreatedAt        time.Time           `json:"created_at"`
	ExpiresAt        *time.Time          `json:"expires_at,omitempty"`
	RedirectURL      string              `json:"redirect_url,omitempty"`
	OriginalPrice    decimal.NullDecimal `json:"original_price"`
	DiscountAmount   decimal.NullDecimal `json:"discount_amount"`
	FinalPrice       decimal.NullDecimal `json:"final_price"`
	PromoCodeApplied *string             `json:"promo_code_applied,omitempty"`
}

// PendingBooking черновик бронирования, сохранённый до входа пользователя
// Создаётся на лендинге, потребляется мастером бронирования после логина
type PendingBooking struct {
	SessionID    int64           `json:"session_id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductPrice decimal.Decimal `json:"product_price"`
	Step         WizardStep      `json:"step"`
}
