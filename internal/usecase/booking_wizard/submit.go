package booking_wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
)

// Submit создаёт бронирование выбранной сессии и инициирует платёж
//
// Отказ бэкенда в бронировании не сдвигает мастер; при "сессия заполнена" и
// "уже забронировано" список сессий перезапрашивается.
// После создания бронирования ошибка платежа не считается ошибкой операции:
// бронирование существует, результат возвращается как OutcomePaymentInitFailed.
func (uc *UseCase) Submit(ctx context.Context, sess WizardSession, req *SubmitRequest) (*SubmitResult, error) {
	if err := validateSubmit(req); err != nil {
		return nil, err
	}

	state, err := uc.loadState(ctx, sess)
	if err != nil {
		return nil, err
	}

	if err := state.ReadyToSubmit(); err != nil {
		uc.logger.Warn("SubmitBooking: wizard is not ready at step=%s: %v", state.Step, err)
		return nil, err
	}

	product := *state.Product
	sessionID := state.Session.ID

	uc.logger.Info("SubmitBooking: session=%d, product=%d, method=%s, promo=%q",
		sessionID, product.ID, req.PaymentMethod, state.PromoCode)

	// 1. Создаём бронирование
	booking, err := uc.client.CreateBooking(ctx, pretestapi.CreateBookingRequest{
		SessionID:     sessionID,
		PaymentMethod: req.PaymentMethod,
		PromoCodeStr:  state.PromoCode,
	})
	if err != nil {
		return nil, uc.bookingFailed(ctx, sess, state, err)
	}

	uc.logger.Info("SubmitBooking: booking id=%d created, status=%s", booking.ID, booking.PaymentStatus)

	// 2. Инициируем платёж по бронированию
	amount := paymentAmount(booking, &product)
	payment, err := uc.client.CreatePayment(ctx, pretestapi.CreatePaymentRequest{
		BookingID:     &booking.ID,
		Amount:        &amount,
		PaymentMethod: req.PaymentMethod,
	})

	result := &SubmitResult{
		Booking:   booking,
		Payment:   payment,
		ExpiresAt: booking.ExpiresAt,
	}

	switch {
	case err != nil:
		uc.logger.Error("SubmitBooking: booking id=%d created but payment init failed: %v", booking.ID, err)
		result.Payment = nil
		result.Outcome = OutcomePaymentInitFailed
	case req.PaymentMethod == domain.PaymentMethodClick && payment.HasRedirect():
		uc.logger.Info("SubmitBooking: booking id=%d redirecting to payment gateway", booking.ID)
		result.Outcome = OutcomeRedirect
		result.RedirectURL = payment.RedirectURL
		// браузер уходит со страницы, мастер больше не нужен
		if err := sess.ClearWizard(ctx); err != nil {
			uc.logger.Warn("SubmitBooking: failed to clear wizard: %v", err)
		}
		return result, nil
	case req.PaymentMethod == domain.PaymentMethodClick:
		uc.logger.Warn("SubmitBooking: booking id=%d payment has no redirect url", booking.ID)
		result.Outcome = OutcomeRedirectUnavailable
	default:
		result.Outcome = OutcomeBookingSaved
	}

	// 3. Сбрасываем мастер и перезапрашиваем списки
	state.Reset()
	if err := uc.saveState(ctx, sess, state); err != nil {
		uc.logger.Warn("SubmitBooking: failed to reset wizard: %v", err)
	}
	result.Refreshed = uc.refreshAfterSubmit(ctx, product.ID)

	return result, nil
}

// bookingFailed сопоставляет отказ бэкенда с кодом ошибки
// Исходное сообщение остаётся в цепочке и доступно через pretestapi.MessageOf
func (uc *UseCase) bookingFailed(ctx context.Context, sess WizardSession, state *domain.WizardState, err error) error {
	if errors.Is(err, pretestapi.ErrNetwork) || errors.Is(err, pretestapi.ErrSessionExpired) {
		uc.logger.Error("SubmitBooking: failed to create booking: %v", err)
		return upstreamError("create booking", err)
	}

	if _, ok := pretestapi.AsAPIError(err); !ok {
		uc.logger.Error("SubmitBooking: failed to create booking: %v", err)
		return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
	}

	classified := classifyBookingMessage(pretestapi.MessageOf(err))
	uc.logger.Warn("SubmitBooking: booking rejected: %v", err)

	if errors.Is(classified, ErrSessionFull) || errors.Is(classified, ErrAlreadyBooked) {
		sessions, fetchErr := uc.fetchSessions(ctx, state.Product.ID)
		if fetchErr != nil {
			uc.logger.Warn("SubmitBooking: failed to refresh sessions: %v", fetchErr)
		} else {
			state.ReplaceSessions(sessions)
			if saveErr := uc.saveState(ctx, sess, state); saveErr != nil {
				uc.logger.Warn("SubmitBooking: failed to save refreshed sessions: %v", saveErr)
			}
		}
	}

	return fmt.Errorf("%w: %w", classified, err)
}

// refreshAfterSubmit перезапрашивает бронирования, историю платежей и сессии теста
// Ошибки не прерывают оформление: соответствующий список остаётся nil
func (uc *UseCase) refreshAfterSubmit(ctx context.Context, productID int64) *Refreshed {
	refreshed := &Refreshed{}

	bookings, err := uc.client.ListBookings(ctx, domain.BookingTypeFuture)
	if err != nil {
		uc.logger.Warn("SubmitBooking: failed to refresh bookings: %v", err)
	} else {
		refreshed.Bookings = bookings
	}

	history, err := uc.client.PaymentHistory(ctx)
	if err != nil {
		uc.logger.Warn("SubmitBooking: failed to refresh payment history: %v", err)
	} else {
		refreshed.PaymentHistory = history
	}

	sessions, err := uc.fetchSessions(ctx, productID)
	if err != nil {
		uc.logger.Warn("SubmitBooking: failed to refresh sessions: %v", err)
	} else {
		refreshed.Sessions = sessions
	}

	return refreshed
}
