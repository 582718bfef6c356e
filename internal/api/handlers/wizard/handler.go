package wizard

import (
	"errors"
	"net/http"

	"github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers"
	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	bookingWizard "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/booking_wizard"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidInput        = "некорректные данные"
	msgInvalidBookingID    = "некорректный ID бронирования"
	msgWrongStep           = "действие недоступно на текущем шаге"
	msgProductRequired     = "выберите тест"
	msgSessionRequired     = "выберите сессию"
	msgProductNotFound     = "тест не найден"
	msgSessionNotFound     = "сессия не найдена"
	msgSessionFull         = "в выбранной сессии нет свободных мест"
	msgAlreadyBooked       = "вы уже забронировали эту сессию"
	msgBookingFailed       = "не удалось создать бронирование"
	msgPromoEmpty          = "введите промокод"
	msgPromoExpired        = "срок действия промокода истёк"
	msgPromoAlreadyUsed    = "промокод уже использован"
	msgPromoMaxUsed        = "лимит использований промокода исчерпан"
	msgPromoInvalid        = "промокод недействителен"
	msgBookingNotFound     = "бронирование не найдено"
	msgBookingNotPending   = "бронирование уже оплачено или отменено"
	msgPaymentIDMissing    = "платёж для бронирования не найден"
	msgRedirectUnavailable = "платёжный шлюз не вернул ссылку на оплату"
)

// Коды ошибок мастера бронирования
const (
	CodeWrongStep           = "wrong_step"
	CodeProductRequired     = "product_required"
	CodeSessionRequired     = "session_required"
	CodeProductNotFound     = "product_not_found"
	CodeSessionNotFound     = "session_not_found"
	CodeSessionFull         = "session_full"
	CodeAlreadyBooked       = "already_booked"
	CodeBookingRejected     = "booking_rejected"
	CodeBookingFailed       = "booking_failed"
	CodePromoEmpty          = "promo_empty"
	CodePromoExpired        = "promo_expired"
	CodePromoAlreadyUsed    = "promo_already_used"
	CodePromoMaxUsed        = "promo_max_used"
	CodePromoInvalid        = "promo_invalid"
	CodeBookingNotFound     = "booking_not_found"
	CodeBookingNotPending   = "booking_not_pending"
	CodePaymentIDMissing    = "payment_id_missing"
	CodeRedirectUnavailable = "redirect_unavailable"
)

type Handler struct {
	useCase WizardUseCase
	logger  Logger
}

func NewHandler(useCase WizardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Open GET /api/v1/wizard
func (h *Handler) Open(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	view, err := h.useCase.Open(r.Context(), sess)
	if err != nil {
		h.respondError(w, "GET /wizard", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// SelectTest POST /api/v1/wizard/test
func (h *Handler) SelectTest(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	var req SelectTestRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/test - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	view, err := h.useCase.SelectTest(r.Context(), sess, req.ProductID)
	if err != nil {
		h.respondError(w, "POST /wizard/test", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// SelectSession POST /api/v1/wizard/session
func (h *Handler) SelectSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	var req SelectSessionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/session - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	view, err := h.useCase.SelectSession(r.Context(), sess, req.SessionID)
	if err != nil {
		h.respondError(w, "POST /wizard/session", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// Continue POST /api/v1/wizard/continue
func (h *Handler) Continue(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	view, err := h.useCase.Continue(r.Context(), sess)
	if err != nil {
		h.respondError(w, "POST /wizard/continue", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// Back POST /api/v1/wizard/back
func (h *Handler) Back(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	view, err := h.useCase.Back(r.Context(), sess)
	if err != nil {
		h.respondError(w, "POST /wizard/back", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// Close DELETE /api/v1/wizard
func (h *Handler) Close(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	if err := h.useCase.Close(r.Context(), sess); err != nil {
		h.respondError(w, "DELETE /wizard", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ApplyPromocode POST /api/v1/wizard/promocode
func (h *Handler) ApplyPromocode(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	var req PromocodeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/promocode - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	view, err := h.useCase.ApplyPromocode(r.Context(), sess, req.Code)
	if err != nil {
		h.respondError(w, "POST /wizard/promocode", err)
		return
	}

	h.logger.Info("POST /wizard/promocode - Promocode applied: code=%s", view.PromoCode)
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// ClearPromocode DELETE /api/v1/wizard/promocode
func (h *Handler) ClearPromocode(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	view, err := h.useCase.ClearPromocode(r.Context(), sess)
	if err != nil {
		h.respondError(w, "DELETE /wizard/promocode", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromView(view))
}

// Submit POST /api/v1/wizard/submit
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	var req SubmitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /wizard/submit - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Submit(r.Context(), sess, &bookingWizard.SubmitRequest{
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		h.respondError(w, "POST /wizard/submit", err)
		return
	}

	if result.Outcome == bookingWizard.OutcomeRedirect {
		h.logger.Info("POST /wizard/submit - Redirecting to payment gateway: booking_id=%d", result.Booking.ID)
		handlers.RespondRedirect(w, r, string(result.Outcome), result.RedirectURL)
		return
	}

	h.logger.Info("POST /wizard/submit - Booking created: booking_id=%d, outcome=%s", result.Booking.ID, result.Outcome)
	handlers.RespondJSON(w, http.StatusCreated, FromSubmitResult(result))
}

// SaveDraft PUT /api/v1/pending-booking
func (h *Handler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	sess, ok := handlers.CurrentSession(w, r)
	if !ok {
		return
	}

	var req DraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /pending-booking - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	draft, err := h.useCase.SaveDraft(r.Context(), sess, &bookingWizard.DraftRequest{
		ProductID: req.ProductID,
		SessionID: req.SessionID,
	})
	if err != nil {
		h.respondError(w, "PUT /pending-booking", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromDraft(draft))
}

// PayPending POST /api/v1/bookings/{bookingId}/pay
func (h *Handler) PayPending(w http.ResponseWriter, r *http.Request) {
	bookingID, err := handlers.PathInt64(r, "bookingId")
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/pay - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidBookingID)
		return
	}

	result, err := h.useCase.PayPending(r.Context(), bookingID)
	if err != nil {
		h.respondError(w, "POST /bookings/{id}/pay", err)
		return
	}

	h.logger.Info("POST /bookings/{id}/pay - Redirecting to payment gateway: booking_id=%d, payment_id=%s",
		result.BookingID, result.PaymentID)
	handlers.RespondRedirect(w, r, string(bookingWizard.OutcomeRedirect), result.RedirectURL)
}

// respondError сопоставляет ошибку usecase с HTTP-статусом и кодом
// Классифицированные отказы бэкенда проверяются раньше ErrUpstream
func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, bookingWizard.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidInput)

	case errors.Is(err, domain.ErrWrongStep):
		h.logger.Warn("%s - Wrong step: %v", op, err)
		handlers.RespondConflict(w, CodeWrongStep, msgWrongStep)

	case errors.Is(err, domain.ErrProductRequired):
		handlers.RespondBadRequest(w, CodeProductRequired, msgProductRequired)

	case errors.Is(err, domain.ErrSessionRequired):
		handlers.RespondBadRequest(w, CodeSessionRequired, msgSessionRequired)

	case errors.Is(err, bookingWizard.ErrProductNotFound):
		h.logger.Warn("%s - Product not found: %v", op, err)
		handlers.RespondNotFound(w, CodeProductNotFound, msgProductNotFound)

	case errors.Is(err, domain.ErrSessionNotFound):
		h.logger.Warn("%s - Session not found: %v", op, err)
		handlers.RespondNotFound(w, CodeSessionNotFound, msgSessionNotFound)

	case errors.Is(err, domain.ErrSessionFull), errors.Is(err, bookingWizard.ErrSessionFull):
		h.logger.Warn("%s - Session full: %v", op, err)
		handlers.RespondConflict(w, CodeSessionFull, msgSessionFull)

	case errors.Is(err, domain.ErrSessionBooked), errors.Is(err, bookingWizard.ErrAlreadyBooked):
		h.logger.Warn("%s - Already booked: %v", op, err)
		handlers.RespondConflict(w, CodeAlreadyBooked, msgAlreadyBooked)

	case errors.Is(err, bookingWizard.ErrBookingRejected):
		h.logger.Warn("%s - Booking rejected: %v", op, err)
		handlers.RespondError(w, http.StatusUnprocessableEntity, CodeBookingRejected,
			handlers.RejectionMessage(err, msgBookingFailed))

	case errors.Is(err, bookingWizard.ErrBookingFailed):
		h.logger.Warn("%s - Booking failed: %v", op, err)
		handlers.RespondError(w, http.StatusUnprocessableEntity, CodeBookingFailed, msgBookingFailed)

	case errors.Is(err, bookingWizard.ErrPromoCodeEmpty):
		handlers.RespondBadRequest(w, CodePromoEmpty, msgPromoEmpty)

	case errors.Is(err, bookingWizard.ErrPromoExpired):
		handlers.RespondError(w, http.StatusUnprocessableEntity, CodePromoExpired, msgPromoExpired)

	case errors.Is(err, bookingWizard.ErrPromoAlreadyUsed):
		handlers.RespondError(w, http.StatusUnprocessableEntity, CodePromoAlreadyUsed, msgPromoAlreadyUsed)

	case errors.Is(err, bookingWizard.ErrPromoMaxUsed):
		handlers.RespondError(w, http.StatusUnprocessableEntity, CodePromoMaxUsed, msgPromoMaxUsed)

	case errors.Is(err, bookingWizard.ErrPromoInvalid), errors.Is(err, domain.ErrPromoCodeNotUsable):
		handlers.RespondError(w, http.StatusUnprocessableEntity, CodePromoInvalid,
			handlers.RejectionMessage(err, msgPromoInvalid))

	case errors.Is(err, bookingWizard.ErrBookingNotFound):
		h.logger.Warn("%s - Booking not found: %v", op, err)
		handlers.RespondNotFound(w, CodeBookingNotFound, msgBookingNotFound)

	case errors.Is(err, bookingWizard.ErrBookingNotPending):
		handlers.RespondConflict(w, CodeBookingNotPending, msgBookingNotPending)

	case errors.Is(err, bookingWizard.ErrPaymentIDMissing):
		handlers.RespondConflict(w, CodePaymentIDMissing, msgPaymentIDMissing)

	case errors.Is(err, bookingWizard.ErrRedirectUnavailable):
		h.logger.Warn("%s - Redirect unavailable: %v", op, err)
		handlers.RespondError(w, http.StatusBadGateway, CodeRedirectUnavailable, msgRedirectUnavailable)

	case errors.Is(err, bookingWizard.ErrUpstream):
		h.logger.Error("%s - Upstream error: %v", op, err)
		handlers.RespondUpstream(w, err)

	default:
		h.logger.Error("%s - Internal error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
