package booking_wizard

import (
	"context"
	"fmt"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// PayPending возвращает ссылку на оплату существующего неоплаченного бронирования
func (uc *UseCase) PayPending(ctx context.Context, bookingID int64) (*PayPendingResult, error) {
	if bookingID <= 0 {
		return nil, fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	uc.logger.Info("PayPending: booking id=%d", bookingID)

	bookings, err := uc.client.ListBookings(ctx, domain.BookingTypeFuture)
	if err != nil {
		uc.logger.Error("PayPending: failed to list bookings: %v", err)
		return nil, upstreamError("list bookings", err)
	}

	var found bool
	var paymentID string
	for i := range bookings {
		if bookings[i].ID != bookingID {
			continue
		}
		found = true
		if !bookings[i].IsPending() {
			uc.logger.Warn("PayPending: booking id=%d is not pending (status=%s, expired=%t)",
				bookingID, bookings[i].PaymentStatus, bookings[i].IsExpired)
			return nil, ErrBookingNotPending
		}
		paymentID = bookings[i].PaymentID
		break
	}

	if !found {
		uc.logger.Warn("PayPending: booking id=%d not found", bookingID)
		return nil, ErrBookingNotFound
	}
	if paymentID == "" {
		uc.logger.Warn("PayPending: booking id=%d has no payment id", bookingID)
		return nil, ErrPaymentIDMissing
	}

	paymentURL, err := uc.client.GetPaymentURL(ctx, paymentID)
	if err != nil {
		uc.logger.Error("PayPending: failed to get payment url for payment=%s: %v", paymentID, err)
		return nil, upstreamError("get payment url", err)
	}
	if paymentURL.PaymentURL == "" {
		uc.logger.Warn("PayPending: payment=%s has no payment url", paymentID)
		return nil, ErrRedirectUnavailable
	}

	return &PayPendingResult{
		BookingID:   bookingID,
		PaymentID:   paymentID,
		RedirectURL: paymentURL.PaymentURL,
	}, nil
}
