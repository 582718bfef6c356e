package booking_wizard

import (
	"context"
	"errors"
	"fmt"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
)

// UseCase мастер бронирования test -> session -> payment
// Состояние мастера хранится в сессии пользователя, каждый вызов загружает его и сохраняет обратно
type UseCase struct {
	client       PretestClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client PretestClient, logger Logger) *UseCase {
	return &UseCase{
		client:       client,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Open открывает мастер: продолжает текущий, либо восстанавливает черновик с лендинга
// Черновик удаляется сразу после восстановления
func (uc *UseCase) Open(ctx context.Context, sess WizardSession) (*View, error) {
	draft, err := sess.PendingBooking(ctx)
	if err != nil {
		uc.logger.Error("OpenWizard: failed to read pending booking: %v", err)
		return nil, fmt.Errorf("%w: failed to read pending booking: %v", ErrInternal, err)
	}

	if draft == nil {
		state, err := uc.loadState(ctx, sess)
		if err != nil {
			return nil, err
		}
		return uc.view(ctx, state)
	}

	uc.logger.Info("OpenWizard: resuming pending booking product=%d, session=%d, step=%s",
		draft.ProductID, draft.SessionID, draft.Step)

	state, err := uc.restoreDraft(ctx, draft)
	if err != nil {
		return nil, err
	}

	if err := sess.ClearPendingBooking(ctx); err != nil {
		uc.logger.Error("OpenWizard: failed to clear pending booking: %v", err)
		return nil, fmt.Errorf("%w: failed to clear pending booking: %v", ErrInternal, err)
	}

	if err := uc.saveState(ctx, sess, state); err != nil {
		return nil, err
	}
	return uc.view(ctx, state)
}

// SelectTest выбирает тест на первом шаге
func (uc *UseCase) SelectTest(ctx context.Context, sess WizardSession, productID int64) (*View, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("%w: productID must be positive", ErrInvalidInput)
	}

	state, err := uc.loadState(ctx, sess)
	if err != nil {
		return nil, err
	}

	product, err := uc.findProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := state.SelectProduct(*product); err != nil {
		uc.logger.Warn("SelectTest: product=%d rejected at step=%s: %v", productID, state.Step, err)
		return nil, err
	}

	if err := uc.saveState(ctx, sess, state); err != nil {
		return nil, err
	}
	return uc.view(ctx, state)
}

// SelectSession выбирает сессию на втором шаге
func (uc *UseCase) SelectSession(ctx context.Context, sess WizardSession, sessionID int64) (*View, error) {
	if sessionID <= 0 {
		return nil, fmt.Errorf("%w: sessionID must be positive", ErrInvalidInput)
	}

	state, err := uc.loadState(ctx, sess)
	if err != nil {
		return nil, err
	}

	if err := state.SelectSession(sessionID); err != nil {
		uc.logger.Warn("SelectSession: session=%d rejected: %v", sessionID, err)
		return nil, err
	}

	if err := uc.saveState(ctx, sess, state); err != nil {
		return nil, err
	}
	return uc.view(ctx, state)
}

// Continue переводит мастер на следующий шаг
// При переходе test -> session сессии выбранного теста запрашиваются у бэкенда
func (uc *UseCase) Continue(ctx context.Context, sess WizardSession) (*View, error) {
	state, err := uc.loadState(ctx, sess)
	if err != nil {
		return nil, err
	}

	switch state.Step {
	case domain.StepTest:
		if state.Product == nil {
			return nil, domain.ErrProductRequired
		}
		sessions, err := uc.fetchSessions(ctx, state.Product.ID)
		if err != nil {
			return nil, err
		}
		if err := state.EnterSessionStep(sessions); err != nil {
			return nil, err
		}
	case domain.StepSession:
		if err := state.EnterPaymentStep(); err != nil {
			uc.logger.Warn("ContinueWizard: cannot enter payment step: %v", err)
			return nil, err
		}
	default:
		return nil, domain.ErrWrongStep
	}

	if err := uc.saveState(ctx, sess, state); err != nil {
		return nil, err
	}
	return uc.view(ctx, state)
}

// Back возвращает мастер на шаг назад; уход со страницы оплаты сбрасывает промокод
func (uc *UseCase) Back(ctx context.Context, sess WizardSession) (*View, error) {
	state, err := uc.loadState(ctx, sess)
	if err != nil {
		return nil, err
	}

	if err := state.Back(); err != nil {
		return nil, err
	}

	if err := uc.saveState(ctx, sess, state); err != nil {
		return nil, err
	}
	return uc.view(ctx, state)
}

// Close закрывает мастер и сбрасывает его состояние
func (uc *UseCase) Close(ctx context.Context, sess WizardSession) error {
	if err := sess.ClearWizard(ctx); err != nil {
		uc.logger.Error("CloseWizard: failed to clear wizard: %v", err)
		return fmt.Errorf("%w: failed to clear wizard: %v", ErrInternal, err)
	}
	return nil
}

// SaveDraft сохраняет черновик бронирования, выбранный на лендинге до входа
func (uc *UseCase) SaveDraft(ctx context.Context, sess WizardSession, req *DraftRequest) (*domain.PendingBooking, error) {
	if err := validateDraft(req); err != nil {
		return nil, err
	}

	product, err := uc.findProduct(ctx, req.ProductID)
	if err != nil {
		return nil, err
	}

	draft := &domain.PendingBooking{
		SessionID:    req.SessionID,
		ProductID:    product.ID,
		ProductName:  product.Name,
		ProductPrice: product.Price,
		Step:         domain.StepSession,
	}
	if req.SessionID > 0 {
		draft.Step = domain.StepPayment
	}

	if err := sess.SetPendingBooking(ctx, draft); err != nil {
		uc.logger.Error("SaveDraft: failed to store pending booking: %v", err)
		return nil, fmt.Errorf("%w: failed to store pending booking: %v", ErrInternal, err)
	}

	uc.logger.Info("SaveDraft: product=%d, session=%d, step=%s", draft.ProductID, draft.SessionID, draft.Step)
	return draft, nil
}

// restoreDraft строит состояние мастера из черновика
// Если сохранённую сессию выбрать уже нельзя, мастер останавливается на шаге выбора сессии
func (uc *UseCase) restoreDraft(ctx context.Context, draft *domain.PendingBooking) (*domain.WizardState, error) {
	state := domain.NewWizard()

	product, err := uc.findProduct(ctx, draft.ProductID)
	if err != nil {
		if !errors.Is(err, ErrProductNotFound) {
			return nil, err
		}
		uc.logger.Warn("OpenWizard: product=%d from pending booking is gone", draft.ProductID)
		return state, nil
	}

	if err := state.SelectProduct(*product); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	sessions, err := uc.fetchSessions(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	if err := state.EnterSessionStep(sessions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if draft.SessionID <= 0 {
		return state, nil
	}

	if err := state.SelectSession(draft.SessionID); err != nil {
		uc.logger.Warn("OpenWizard: session=%d from pending booking is not selectable: %v", draft.SessionID, err)
		return state, nil
	}

	if draft.Step == domain.StepPayment {
		if err := state.EnterPaymentStep(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInternal, err)
		}
	}
	return state, nil
}

func (uc *UseCase) loadState(ctx context.Context, sess WizardSession) (*domain.WizardState, error) {
	state, err := sess.Wizard(ctx)
	if err != nil {
		uc.logger.Error("BookingWizard: failed to load wizard state: %v", err)
		return nil, fmt.Errorf("%w: failed to load wizard state: %v", ErrInternal, err)
	}
	if state == nil {
		state = domain.NewWizard()
	}
	return state, nil
}

func (uc *UseCase) saveState(ctx context.Context, sess WizardSession, state *domain.WizardState) error {
	if err := sess.SaveWizard(ctx, state); err != nil {
		uc.logger.Error("BookingWizard: failed to save wizard state: %v", err)
		return fmt.Errorf("%w: failed to save wizard state: %v", ErrInternal, err)
	}
	return nil
}

func (uc *UseCase) findProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	products, err := uc.client.ListProducts(ctx)
	if err != nil {
		uc.logger.Error("BookingWizard: failed to list products: %v", err)
		return nil, upstreamError("list products", err)
	}

	for i := range products {
		if products[i].ID == productID {
			return &products[i], nil
		}
	}
	return nil, ErrProductNotFound
}

// fetchSessions сессии теста с заполненным признаком is_booked
// Если бэкенд не прислал is_booked, он вычисляется по бронированиям пользователя
func (uc *UseCase) fetchSessions(ctx context.Context, productID int64) ([]domain.TestSession, error) {
	sessions, err := uc.client.ListSessions(ctx, productID)
	if err != nil {
		uc.logger.Error("BookingWizard: failed to list sessions for product=%d: %v", productID, err)
		return nil, upstreamError("list sessions", err)
	}

	if !domain.NeedsBookedResolution(sessions) {
		return sessions, nil
	}

	var bookings []domain.Booking
	for _, bookingType := range []domain.BookingType{domain.BookingTypeFuture, domain.BookingTypePast} {
		list, err := uc.client.ListBookings(ctx, bookingType)
		if err != nil {
			if errors.Is(err, pretestapi.ErrSessionExpired) {
				return nil, upstreamError("list bookings", err)
			}
			uc.logger.Warn("BookingWizard: failed to list %s bookings, is_booked left unknown: %v", bookingType, err)
			continue
		}
		bookings = append(bookings, list...)
	}

	domain.ResolveBookedFlags(sessions, bookings)
	return sessions, nil
}

// view собирает представление мастера; каталог запрашивается только на шаге выбора теста
func (uc *UseCase) view(ctx context.Context, state *domain.WizardState) (*View, error) {
	v := &View{
		Step:         state.Step,
		Product:      state.Product,
		Session:      state.Session,
		PromoCode:    state.PromoCode,
		Promo:        state.Promo,
		DisplayPrice: state.DisplayPrice(),
	}
	if state.Product != nil {
		v.OriginalPrice = state.Product.Price
	}

	if state.Step == domain.StepTest {
		products, err := uc.client.ListProducts(ctx)
		if err != nil {
			uc.logger.Error("BookingWizard: failed to list products: %v", err)
			return nil, upstreamError("list products", err)
		}
		v.Products = products
	}

	v.Sessions = make([]SessionOption, 0, len(state.Sessions))
	for _, s := range state.Sessions {
		option := SessionOption{Session: s, Selectable: s.IsSelectable()}
		switch {
		case s.IsFull():
			option.DisabledReason = DisabledFull
		case s.BookedByUser():
			option.DisabledReason = DisabledBooked
		}
		v.Sessions = append(v.Sessions, option)
	}
	return v, nil
}

// upstreamError сохраняет в цепочке исходную ошибку клиента (ErrNetwork, ErrSessionExpired, *APIError)
func upstreamError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstream, op, err)
}
