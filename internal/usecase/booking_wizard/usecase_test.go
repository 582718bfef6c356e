package booking_wizard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/infra/storage/sessionstore"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
	"github.com/pretest-uz/PreTest-DashboardService/internal/service/session"
	"github.com/pretest-uz/PreTest-DashboardService/pkg/logger"
)

type stubClient struct {
	products []domain.Product
	sessions []domain.TestSession
	bookings map[domain.BookingType][]domain.Booking
	history  []domain.PaymentHistoryItem

	promo    *domain.PromocodeValidation
	promoErr error

	created    *domain.CreatedBooking
	createErr  error
	payment    *domain.Payment
	paymentErr error
	paymentURL *domain.PaymentURL

	sessionCalls   int
	bookingReq     *pretestapi.CreateBookingRequest
	paymentReq     *pretestapi.CreatePaymentRequest
	promoReq       *pretestapi.ValidatePromocodeRequest
	paymentURLCall string
}

func (c *stubClient) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return c.products, nil
}

func (c *stubClient) ListSessions(ctx context.Context, productID int64) ([]domain.TestSession, error) {
	c.sessionCalls++
	// копия, чтобы мастер не делил срез со стабом
	return domain.FilterSessionsByProduct(append([]domain.TestSession(nil), c.sessions...), productID), nil
}

func (c *stubClient) ListBookings(ctx context.Context, bookingType domain.BookingType) ([]domain.Booking, error) {
	return c.bookings[bookingType], nil
}

func (c *stubClient) ValidatePromocode(ctx context.Context, req pretestapi.ValidatePromocodeRequest) (*domain.PromocodeValidation, error) {
	c.promoReq = &req
	if c.promoErr != nil {
		return nil, c.promoErr
	}
	return c.promo, nil
}

func (c *stubClient) CreateBooking(ctx context.Context, req pretestapi.CreateBookingRequest) (*domain.CreatedBooking, error) {
	c.bookingReq = &req
	if c.createErr != nil {
		return nil, c.createErr
	}
	return c.created, nil
}

func (c *stubClient) CreatePayment(ctx context.Context, req pretestapi.CreatePaymentRequest) (*domain.Payment, error) {
	c.paymentReq = &req
	if c.paymentErr != nil {
		return nil, c.paymentErr
	}
	return c.payment, nil
}

func (c *stubClient) GetPaymentURL(ctx context.Context, paymentID string) (*domain.PaymentURL, error) {
	c.paymentURLCall = paymentID
	return c.paymentURL, nil
}

func (c *stubClient) PaymentHistory(ctx context.Context) ([]domain.PaymentHistoryItem, error) {
	return c.history, nil
}

func boolPtr(v bool) *bool {
	return &v
}

func proProduct() domain.Product {
	return domain.Product{ID: 2, Name: "Pretest Pro", ProductType: domain.ProductTypeFull, Price: decimal.RequireFromString("89.00")}
}

func newStubClient() *stubClient {
	daily := domain.Product{ID: 1, Name: "Daily Pretest", ProductType: domain.ProductTypeDaily, Price: decimal.RequireFromString("39.00")}
	pro := proProduct()
	return &stubClient{
		products: []domain.Product{daily, pro},
		sessions: []domain.TestSession{
			{ID: 10, Product: pro, SessionDate: "2026-11-02", SessionTime: "10:00:00", MaxParticipants: 20, AvailableSlots: 5, IsBooked: boolPtr(false)},
			{ID: 11, Product: pro, SessionDate: "2026-11-03", SessionTime: "10:00:00", MaxParticipants: 20, AvailableSlots: 0, IsBooked: boolPtr(false)},
			{ID: 12, Product: pro, SessionDate: "2026-11-04", SessionTime: "14:00:00", MaxParticipants: 20, AvailableSlots: 3, IsBooked: boolPtr(true)},
			{ID: 20, Product: daily, SessionDate: "2026-11-02", SessionTime: "09:00:00", MaxParticipants: 10, AvailableSlots: 10, IsBooked: boolPtr(false)},
		},
		bookings: map[domain.BookingType][]domain.Booking{},
	}
}

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	svc := session.NewService(sessionstore.NewMemoryStore(), nil, logger.NewNop(), time.Hour)
	return svc.Bind(session.NewID())
}

// toPaymentStep проводит мастер до шага оплаты: Pretest Pro, сессия 10
func toPaymentStep(t *testing.T, uc *UseCase, sess WizardSession) *View {
	t.Helper()
	ctx := context.Background()

	_, err := uc.SelectTest(ctx, sess, 2)
	require.NoError(t, err)
	_, err = uc.Continue(ctx, sess)
	require.NoError(t, err)
	_, err = uc.SelectSession(ctx, sess, 10)
	require.NoError(t, err)
	view, err := uc.Continue(ctx, sess)
	require.NoError(t, err)
	require.Equal(t, domain.StepPayment, view.Step)
	return view
}

func TestWizard_StepsAndSelectableSessions(t *testing.T) {
	client := newStubClient()
	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()

	view, err := uc.Open(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, domain.StepTest, view.Step)
	assert.Len(t, view.Products, 2)

	_, err = uc.Continue(ctx, sess)
	assert.ErrorIs(t, err, domain.ErrProductRequired)

	_, err = uc.SelectTest(ctx, sess, 99)
	assert.ErrorIs(t, err, ErrProductNotFound)

	_, err = uc.SelectTest(ctx, sess, 2)
	require.NoError(t, err)

	view, err = uc.Continue(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, domain.StepSession, view.Step)
	assert.Empty(t, view.Products)
	require.Len(t, view.Sessions, 3)

	reasons := map[int64]DisabledReason{}
	for _, option := range view.Sessions {
		reasons[option.Session.ID] = option.DisabledReason
		assert.Equal(t, option.DisabledReason == DisabledNone, option.Selectable)
	}
	assert.Equal(t, DisabledNone, reasons[10])
	assert.Equal(t, DisabledFull, reasons[11])
	assert.Equal(t, DisabledBooked, reasons[12])

	_, err = uc.Continue(ctx, sess)
	assert.ErrorIs(t, err, domain.ErrSessionRequired)

	_, err = uc.SelectSession(ctx, sess, 11)
	assert.ErrorIs(t, err, domain.ErrSessionFull)
	_, err = uc.SelectSession(ctx, sess, 12)
	assert.ErrorIs(t, err, domain.ErrSessionBooked)

	_, err = uc.SelectSession(ctx, sess, 10)
	require.NoError(t, err)
	view, err = uc.Continue(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, view.Step)
	require.NotNil(t, view.Session)
	assert.Equal(t, int64(10), view.Session.ID)
	assert.Equal(t, "89.00", view.DisplayPrice.StringFixed(2))
}

func TestWizard_ResolvesBookedFlagFromBookings(t *testing.T) {
	client := newStubClient()
	for i := range client.sessions {
		client.sessions[i].IsBooked = nil
	}
	client.bookings[domain.BookingTypeFuture] = []domain.Booking{
		{ID: 7, Session: client.sessions[0], PaymentStatus: domain.PaymentStatusPending},
	}

	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()

	_, err := uc.SelectTest(ctx, sess, 2)
	require.NoError(t, err)
	view, err := uc.Continue(ctx, sess)
	require.NoError(t, err)

	require.Len(t, view.Sessions, 3)
	assert.Equal(t, DisabledBooked, view.Sessions[0].DisabledReason)
	assert.Equal(t, DisabledFull, view.Sessions[1].DisabledReason)
	assert.True(t, view.Sessions[2].Selectable)
}

func TestApplyPromocode_DiscountAndClear(t *testing.T) {
	client := newStubClient()
	client.promo = &domain.PromocodeValidation{
		Code:           "SAVE10",
		DiscountType:   "percentage",
		DiscountValue:  decimal.RequireFromString("10"),
		OriginalPrice:  decimal.RequireFromString("89.00"),
		DiscountAmount: decimal.RequireFromString("8.90"),
		FinalPrice:     decimal.RequireFromString("80.10"),
		IsValid:        true,
	}
	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()

	toPaymentStep(t, uc, sess)

	_, err := uc.ApplyPromocode(ctx, sess, "   ")
	assert.ErrorIs(t, err, ErrPromoCodeEmpty)

	view, err := uc.ApplyPromocode(ctx, sess, " SAVE10 ")
	require.NoError(t, err)
	require.NotNil(t, client.promoReq)
	assert.Equal(t, "SAVE10", client.promoReq.Code)
	assert.Equal(t, int64(10), client.promoReq.SessionID)
	assert.Equal(t, "SAVE10", view.PromoCode)
	assert.Equal(t, "80.10", view.DisplayPrice.StringFixed(2))
	assert.Equal(t, "89.00", view.OriginalPrice.StringFixed(2))

	view, err = uc.ClearPromocode(ctx, sess)
	require.NoError(t, err)
	assert.Empty(t, view.PromoCode)
	assert.Nil(t, view.Promo)
	assert.Equal(t, "89.00", view.DisplayPrice.StringFixed(2))
}

func TestApplyPromocode_RejectedCodes(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    error
	}{
		{name: "expired", message: "Promo code has expired", want: ErrPromoExpired},
		{name: "already used", message: "You have Already used this promo code", want: ErrPromoAlreadyUsed},
		{name: "maximum", message: "Promo code reached maximum usage", want: ErrPromoMaxUsed},
		{name: "limit", message: "Usage limit exceeded", want: ErrPromoMaxUsed},
		{name: "other", message: "Invalid promo code", want: ErrPromoInvalid},
		{name: "no message", message: "", want: ErrPromoInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newStubClient()
			client.promo = &domain.PromocodeValidation{
				Code:           "OK5",
				OriginalPrice:  decimal.RequireFromString("89.00"),
				DiscountAmount: decimal.RequireFromString("5.00"),
				IsValid:        true,
			}
			uc := NewUseCase(client, logger.NewNop())
			sess := newTestSession(t)
			ctx := context.Background()
			toPaymentStep(t, uc, sess)

			_, err := uc.ApplyPromocode(ctx, sess, "OK5")
			require.NoError(t, err)

			client.promoErr = &pretestapi.APIError{Status: 400, Message: tt.message}
			_, err = uc.ApplyPromocode(ctx, sess, "BAD")
			assert.ErrorIs(t, err, tt.want)

			// ранее применённый промокод снят
			state, err := sess.Wizard(ctx)
			require.NoError(t, err)
			assert.Nil(t, state.Promo)
			assert.Equal(t, "89.00", state.DisplayPrice().StringFixed(2))
		})
	}
}

func TestApplyPromocode_NotValidResponse(t *testing.T) {
	client := newStubClient()
	client.promo = &domain.PromocodeValidation{Code: "NOPE", IsValid: false}
	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	toPaymentStep(t, uc, sess)

	_, err := uc.ApplyPromocode(context.Background(), sess, "NOPE")
	assert.ErrorIs(t, err, ErrPromoInvalid)
}

func TestApplyPromocode_WrongStep(t *testing.T) {
	client := newStubClient()
	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)

	_, err := uc.ApplyPromocode(context.Background(), sess, "SAVE10")
	assert.ErrorIs(t, err, domain.ErrWrongStep)
	assert.Nil(t, client.promoReq)
}

func TestBack_FromPaymentClearsPromo(t *testing.T) {
	client := newStubClient()
	client.promo = &domain.PromocodeValidation{
		Code:           "SAVE10",
		OriginalPrice:  decimal.RequireFromString("89.00"),
		DiscountAmount: decimal.RequireFromString("8.90"),
		IsValid:        true,
	}
	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()
	toPaymentStep(t, uc, sess)

	_, err := uc.ApplyPromocode(ctx, sess, "SAVE10")
	require.NoError(t, err)

	view, err := uc.Back(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, domain.StepSession, view.Step)
	assert.Nil(t, view.Promo)
	require.NotNil(t, view.Session)
	assert.Equal(t, int64(10), view.Session.ID)

	view, err = uc.Back(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, domain.StepTest, view.Step)

	_, err = uc.Back(ctx, sess)
	assert.ErrorIs(t, err, domain.ErrWrongStep)
}

func TestSubmit_CashSavesPendingBooking(t *testing.T) {
	client := newStubClient()
	expiresAt := time.Now().Add(2 * time.Hour).UTC()
	client.created = &domain.CreatedBooking{
		ID:            501,
		SessionID:     10,
		PaymentMethod: domain.PaymentMethodCash,
		PaymentStatus: domain.PaymentStatusPending,
		ExpiresAt:     &expiresAt,
	}
	client.payment = &domain.Payment{PaymentID: "pay-501", Amount: decimal.RequireFromString("89.00"), PaymentMethod: domain.PaymentMethodCash, Status: "pending"}
	client.bookings[domain.BookingTypeFuture] = []domain.Booking{
		{ID: 501, Session: client.sessions[0], PaymentMethod: domain.PaymentMethodCash, PaymentStatus: domain.PaymentStatusPending, ExpiresAt: &expiresAt, PaymentID: "pay-501"},
	}

	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()
	toPaymentStep(t, uc, sess)

	result, err := uc.Submit(ctx, sess, &SubmitRequest{PaymentMethod: domain.PaymentMethodCash})
	require.NoError(t, err)

	assert.Equal(t, OutcomeBookingSaved, result.Outcome)
	assert.Empty(t, result.RedirectURL)
	require.NotNil(t, result.ExpiresAt)
	assert.True(t, result.ExpiresAt.After(time.Now()))
	assert.Equal(t, domain.PaymentStatusPending, result.Booking.PaymentStatus)

	require.NotNil(t, client.bookingReq)
	assert.Equal(t, int64(10), client.bookingReq.SessionID)
	assert.Equal(t, domain.PaymentMethodCash, client.bookingReq.PaymentMethod)
	assert.Empty(t, client.bookingReq.PromoCodeStr)

	require.NotNil(t, client.paymentReq)
	require.NotNil(t, client.paymentReq.BookingID)
	assert.Equal(t, int64(501), *client.paymentReq.BookingID)
	assert.Equal(t, "89.00", client.paymentReq.Amount.StringFixed(2))

	// перезапрошенное бронирование совпадает с созданным
	require.NotNil(t, result.Refreshed)
	require.Len(t, result.Refreshed.Bookings, 1)
	fetched := result.Refreshed.Bookings[0]
	assert.Equal(t, result.Booking.ID, fetched.ID)
	assert.Equal(t, client.bookingReq.SessionID, fetched.Session.ID)
	assert.Equal(t, client.bookingReq.PaymentMethod, fetched.PaymentMethod)

	state, err := sess.Wizard(ctx)
	require.NoError(t, err)
	require.NotNil(t, state)
	assert.Equal(t, domain.StepTest, state.Step)
	assert.Nil(t, state.Product)
}

func TestSubmit_ClickRedirects(t *testing.T) {
	const gatewayURL = "https://my.click.uz/services/pay?service_id=1&transaction_param=501&amount=80.10"

	client := newStubClient()
	client.promo = &domain.PromocodeValidation{
		Code:           "SAVE10",
		OriginalPrice:  decimal.RequireFromString("89.00"),
		DiscountAmount: decimal.RequireFromString("8.90"),
		IsValid:        true,
	}
	client.created = &domain.CreatedBooking{
		ID:            501,
		SessionID:     10,
		PaymentMethod: domain.PaymentMethodClick,
		PaymentStatus: domain.PaymentStatusPending,
		FinalPrice:    decimal.NewNullDecimal(decimal.RequireFromString("80.10")),
	}
	client.payment = &domain.Payment{PaymentID: "pay-501", PaymentMethod: domain.PaymentMethodClick, RedirectURL: gatewayURL}

	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()
	toPaymentStep(t, uc, sess)

	_, err := uc.ApplyPromocode(ctx, sess, "SAVE10")
	require.NoError(t, err)

	result, err := uc.Submit(ctx, sess, &SubmitRequest{PaymentMethod: domain.PaymentMethodClick})
	require.NoError(t, err)

	assert.Equal(t, OutcomeRedirect, result.Outcome)
	assert.Equal(t, gatewayURL, result.RedirectURL)
	assert.Nil(t, result.Refreshed)
	assert.Equal(t, "SAVE10", client.bookingReq.PromoCodeStr)
	assert.Equal(t, "80.10", client.paymentReq.Amount.StringFixed(2))

	state, err := sess.Wizard(ctx)
	require.NoError(t, err)
	assert.Nil(t, state)
}

func TestSubmit_ClickWithoutRedirectURL(t *testing.T) {
	client := newStubClient()
	client.created = &domain.CreatedBooking{ID: 501, SessionID: 10, PaymentMethod: domain.PaymentMethodClick, PaymentStatus: domain.PaymentStatusPending}
	client.payment = &domain.Payment{PaymentID: "pay-501", PaymentMethod: domain.PaymentMethodClick}

	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	toPaymentStep(t, uc, sess)

	result, err := uc.Submit(context.Background(), sess, &SubmitRequest{PaymentMethod: domain.PaymentMethodClick})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirectUnavailable, result.Outcome)
	assert.NotNil(t, result.Refreshed)
}

func TestSubmit_PaymentInitFailed(t *testing.T) {
	client := newStubClient()
	client.created = &domain.CreatedBooking{ID: 501, SessionID: 10, PaymentMethod: domain.PaymentMethodClick, PaymentStatus: domain.PaymentStatusPending}
	client.paymentErr = &pretestapi.APIError{Status: 500}

	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()
	toPaymentStep(t, uc, sess)

	result, err := uc.Submit(ctx, sess, &SubmitRequest{PaymentMethod: domain.PaymentMethodClick})
	require.NoError(t, err)
	assert.Equal(t, OutcomePaymentInitFailed, result.Outcome)
	assert.Equal(t, int64(501), result.Booking.ID)
	assert.Nil(t, result.Payment)

	state, err := sess.Wizard(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.StepTest, state.Step)
}

func TestSubmit_BookingRejected(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		want           error
		refetchesSlots bool
	}{
		{name: "session full", err: &pretestapi.APIError{Status: 400, Message: "Session is full"}, want: ErrSessionFull, refetchesSlots: true},
		{name: "no slots", err: &pretestapi.APIError{Status: 400, Message: "No slots available"}, want: ErrSessionFull, refetchesSlots: true},
		{name: "already booked", err: &pretestapi.APIError{Status: 400, Message: "You have already booked this session"}, want: ErrAlreadyBooked, refetchesSlots: true},
		{name: "raw message", err: &pretestapi.APIError{Status: 400, Message: "Bookings are closed for this date"}, want: ErrBookingRejected},
		{name: "empty body", err: &pretestapi.APIError{Status: 400}, want: ErrBookingFailed},
		{name: "network", err: pretestapi.ErrNetwork, want: pretestapi.ErrNetwork},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newStubClient()
			client.createErr = tt.err

			uc := NewUseCase(client, logger.NewNop())
			sess := newTestSession(t)
			ctx := context.Background()
			toPaymentStep(t, uc, sess)
			callsBefore := client.sessionCalls

			// бэкенд успел заполнить сессию
			client.sessions[0].AvailableSlots = 0

			result, err := uc.Submit(ctx, sess, &SubmitRequest{PaymentMethod: domain.PaymentMethodCash})
			assert.Nil(t, result)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, client.paymentReq)

			state, err := sess.Wizard(ctx)
			require.NoError(t, err)
			assert.Equal(t, domain.StepPayment, state.Step)

			if tt.refetchesSlots {
				assert.Equal(t, callsBefore+1, client.sessionCalls)
				selected, ok := state.FindSession(10)
				require.True(t, ok)
				assert.True(t, selected.IsFull())
			} else {
				assert.Equal(t, callsBefore, client.sessionCalls)
			}
		})
	}
}

func TestSubmit_RejectedMessagePreserved(t *testing.T) {
	client := newStubClient()
	client.createErr = &pretestapi.APIError{Status: 400, Message: "Bookings are closed for this date"}

	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	toPaymentStep(t, uc, sess)

	_, err := uc.Submit(context.Background(), sess, &SubmitRequest{PaymentMethod: domain.PaymentMethodCash})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBookingRejected))
	assert.Equal(t, "Bookings are closed for this date", pretestapi.MessageOf(err))
}

func TestSubmit_Validation(t *testing.T) {
	client := newStubClient()
	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()

	_, err := uc.Submit(ctx, sess, &SubmitRequest{PaymentMethod: "card"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Submit(ctx, sess, &SubmitRequest{PaymentMethod: domain.PaymentMethodCash})
	assert.ErrorIs(t, err, domain.ErrWrongStep)
	assert.Nil(t, client.bookingReq)
}

func TestOpen_ResumesPendingBooking(t *testing.T) {
	client := newStubClient()
	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()

	draft, err := uc.SaveDraft(ctx, sess, &DraftRequest{ProductID: 2, SessionID: 10})
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, draft.Step)
	assert.Equal(t, "Pretest Pro", draft.ProductName)

	view, err := uc.Open(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, view.Step)
	require.NotNil(t, view.Product)
	assert.Equal(t, int64(2), view.Product.ID)
	require.NotNil(t, view.Session)
	assert.Equal(t, int64(10), view.Session.ID)

	stored, err := sess.PendingBooking(ctx)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// повторное открытие продолжает текущий мастер
	view, err = uc.Open(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, domain.StepPayment, view.Step)
}

func TestOpen_DraftWithUnavailableSession(t *testing.T) {
	client := newStubClient()
	uc := NewUseCase(client, logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()

	_, err := uc.SaveDraft(ctx, sess, &DraftRequest{ProductID: 2, SessionID: 11})
	require.NoError(t, err)

	view, err := uc.Open(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, domain.StepSession, view.Step)
	assert.Nil(t, view.Session)
}

func TestSaveDraft_Validation(t *testing.T) {
	uc := NewUseCase(newStubClient(), logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()

	_, err := uc.SaveDraft(ctx, sess, &DraftRequest{ProductID: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.SaveDraft(ctx, sess, &DraftRequest{ProductID: 42})
	assert.ErrorIs(t, err, ErrProductNotFound)

	draft, err := uc.SaveDraft(ctx, sess, &DraftRequest{ProductID: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.StepSession, draft.Step)
}

func TestClose_ResetsWizard(t *testing.T) {
	uc := NewUseCase(newStubClient(), logger.NewNop())
	sess := newTestSession(t)
	ctx := context.Background()
	toPaymentStep(t, uc, sess)

	require.NoError(t, uc.Close(ctx, sess))

	view, err := uc.Open(ctx, sess)
	require.NoError(t, err)
	assert.Equal(t, domain.StepTest, view.Step)
	assert.Nil(t, view.Product)
}

func TestPayPending(t *testing.T) {
	client := newStubClient()
	client.bookings[domain.BookingTypeFuture] = []domain.Booking{
		{ID: 1, Session: client.sessions[0], PaymentStatus: domain.PaymentStatusPending, PaymentID: "pay-1"},
		{ID: 2, Session: client.sessions[0], PaymentStatus: domain.PaymentStatusPending},
		{ID: 3, Session: client.sessions[0], PaymentStatus: domain.PaymentStatusPaid, PaymentID: "pay-3"},
		{ID: 4, Session: client.sessions[0], PaymentStatus: domain.PaymentStatusPending, IsExpired: true, PaymentID: "pay-4"},
	}
	client.paymentURL = &domain.PaymentURL{PaymentID: "pay-1", PaymentURL: "https://my.click.uz/pay/1"}
	uc := NewUseCase(client, logger.NewNop())
	ctx := context.Background()

	result, err := uc.PayPending(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://my.click.uz/pay/1", result.RedirectURL)
	assert.Equal(t, "pay-1", client.paymentURLCall)

	_, err = uc.PayPending(ctx, 2)
	assert.ErrorIs(t, err, ErrPaymentIDMissing)

	_, err = uc.PayPending(ctx, 3)
	assert.ErrorIs(t, err, ErrBookingNotPending)

	_, err = uc.PayPending(ctx, 4)
	assert.ErrorIs(t, err, ErrBookingNotPending)

	_, err = uc.PayPending(ctx, 5)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	client.paymentURL = &domain.PaymentURL{PaymentID: "pay-1"}
	_, err = uc.PayPending(ctx, 1)
	assert.ErrorIs(t, err, ErrRedirectUnavailable)
}
