package booking_wizard

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

func validateDraft(req *DraftRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is empty", ErrInvalidInput)
	}
	if req.ProductID <= 0 {
		return fmt.Errorf("%w: productID must be positive", ErrInvalidInput)
	}
	if req.SessionID < 0 {
		return fmt.Errorf("%w: sessionID must not be negative", ErrInvalidInput)
	}
	return nil
}

func validateSubmit(req *SubmitRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is empty", ErrInvalidInput)
	}
	if !req.PaymentMethod.IsValid() {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.PaymentMethod)
	}
	return nil
}

// classifyBookingMessage сопоставляет сообщение бэкенда об отказе в бронировании с кодом ошибки
// Пустое сообщение означает, что бэкенд не объяснил причину
func classifyBookingMessage(message string) error {
	lower := strings.ToLower(message)
	switch {
	case message == "":
		return ErrBookingFailed
	case strings.Contains(lower, "already booked"):
		return ErrAlreadyBooked
	case strings.Contains(lower, "full"), strings.Contains(lower, "no slots available"):
		return ErrSessionFull
	default:
		return ErrBookingRejected
	}
}

// classifyPromoMessage сопоставляет сообщение бэкенда о промокоде с кодом ошибки
func classifyPromoMessage(message string) error {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "expired"):
		return ErrPromoExpired
	case strings.Contains(lower, "already used"):
		return ErrPromoAlreadyUsed
	case strings.Contains(lower, "maximum"), strings.Contains(lower, "limit"):
		return ErrPromoMaxUsed
	default:
		return ErrPromoInvalid
	}
}

// normalizePromoCode отбрасывает пробелы по краям, регистр сохраняется
func normalizePromoCode(code string) string {
	return strings.TrimSpace(code)
}

// paymentAmount сумма платежа: итоговая цена созданного бронирования, иначе цена теста
func paymentAmount(booking *domain.CreatedBooking, product *domain.Product) decimal.Decimal {
	if booking.FinalPrice.Valid {
		return booking.FinalPrice.Decimal
	}
	return product.Price
}
