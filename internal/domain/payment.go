package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment платёж по бронированию или заявке на видео-фидбек
type Payment struct {
	PaymentID         string              `json:"payment_id"`
	BookingID         *int64              `json:"booking_id"`
	FeedbackRequestID *int64              `json:"feedback_request_id"`
	Amount            decimal.Decimal     `json:"amount"`
	PaymentMethod     PaymentMethod       `json:"payment_method"`
	Status            string              `json:"status"`
	RedirectURL       string              `json:"redirect_url,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	IsExisting        bool                `json:"is_existing,omitempty"`
	OriginalAmount    decimal.NullDecimal `json:"original_amount"`
	DiscountAmount    decimal.NullDecimal `json:"discount_amount"`
	PromoCodeApplied  *string             `json:"promo_code_applied,omitempty"`
}

// HasRedirect returns true if the gateway returned a URL to hand the browser off to
func (p *Payment) HasRedirect() bool {
	return p.RedirectURL != ""
}

// PaymentURL ссылка на оплату существующего платежа
type PaymentURL struct {
	PaymentID  string          `json:"payment_id"`
	PaymentURL string          `json:"payment_url"`
	Status     string          `json:"status"`
	Amount     decimal.Decimal `json:"amount"`
}

// PaymentHistoryItem запись истории платежей
type PaymentHistoryItem struct {
	ID            int64           `json:"id"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	Status        string          `json:"status"` // pending | completed | failed
	CreatedAt     time.Time       `json:"created_at"`
}
