package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
)

// UseCase заявки на видео-фидбек и их оплата через Click
type UseCase struct {
	client PretestClient
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client PretestClient, logger Logger) *UseCase {
	return &UseCase{
		client: client,
		logger: logger,
	}
}

// Overview виды фидбека, заявки пользователя, статистика и тесты для привязки
// Статистика и список тестов при ошибке заменяются нулями и пустым списком
func (uc *UseCase) Overview(ctx context.Context) (*Overview, error) {
	options, err := uc.client.FeedbackOptions(ctx)
	if err != nil {
		return nil, uc.upstream("FeedbackOverview", err)
	}

	requests, err := uc.client.FeedbackRequests(ctx)
	if err != nil {
		return nil, uc.upstream("FeedbackOverview", err)
	}

	overview := &Overview{
		Options:   options,
		Requests:  requests,
		PastTests: []domain.Booking{},
	}

	stats, err := uc.client.FeedbackStatistics(ctx)
	if err != nil {
		if errors.Is(err, pretestapi.ErrSessionExpired) {
			return nil, uc.upstream("FeedbackOverview", err)
		}
		uc.logger.Warn("FeedbackOverview: failed to load statistics, using zeros: %v", err)
	} else if stats != nil {
		overview.Statistics = *stats
	}

	past, err := uc.client.ListBookings(ctx, domain.BookingTypePast)
	if err != nil {
		if errors.Is(err, pretestapi.ErrSessionExpired) {
			return nil, uc.upstream("FeedbackOverview", err)
		}
		uc.logger.Warn("FeedbackOverview: failed to load past tests: %v", err)
	}
	for _, b := range past {
		if b.IsPaid() {
			overview.PastTests = append(overview.PastTests, b)
		}
	}

	return overview, nil
}

// Submit создаёт заявку и платёж Click по ней
// Ошибка платежа после создания заявки возвращается как OutcomePaymentInitFailed:
// заявка остаётся неоплаченной и её можно оплатить через PayPending
func (uc *UseCase) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResult, error) {
	if req == nil || req.OptionID <= 0 {
		return nil, fmt.Errorf("%w: feedback option is required", ErrInvalidInput)
	}

	option, err := uc.findOption(ctx, req.OptionID)
	if err != nil {
		return nil, err
	}

	createReq, err := buildCreateRequest(*option, req)
	if err != nil {
		uc.logger.Warn("SubmitFeedback: validation failed for option=%d: %v", option.ID, err)
		return nil, err
	}

	uc.logger.Info("SubmitFeedback: option=%d (%s), file=%t", option.ID, option.Kind(), createReq.File != nil)

	created, err := uc.client.CreateFeedback(ctx, *createReq)
	if err != nil {
		return nil, uc.upstream("SubmitFeedback", err)
	}

	result := &SubmitResult{Request: created}

	payment, err := uc.client.CreatePayment(ctx, pretestapi.CreatePaymentRequest{
		FeedbackRequestID: &created.ID,
		PaymentMethod:     domain.PaymentMethodClick,
	})
	switch {
	case err != nil:
		uc.logger.Error("SubmitFeedback: request id=%d created but payment init failed: %v", created.ID, err)
		result.Outcome = OutcomePaymentInitFailed
	case payment.HasRedirect():
		result.Outcome = OutcomeRedirect
		result.Payment = payment
		result.RedirectURL = payment.RedirectURL
	default:
		uc.logger.Warn("SubmitFeedback: request id=%d payment has no redirect url", created.ID)
		result.Outcome = OutcomeRedirectUnavailable
		result.Payment = payment
	}

	return result, nil
}

// PayPending оплата существующей заявки; бэкенд переиспользует созданный ранее платёж
func (uc *UseCase) PayPending(ctx context.Context, requestID int64) (*PayResult, error) {
	if requestID <= 0 {
		return nil, fmt.Errorf("%w: requestID must be positive", ErrInvalidInput)
	}

	requests, err := uc.client.FeedbackRequests(ctx)
	if err != nil {
		return nil, uc.upstream("PayFeedback", err)
	}

	var found *domain.FeedbackRequest
	for i := range requests {
		if requests[i].ID == requestID {
			found = &requests[i]
			break
		}
	}
	if found == nil {
		return nil, ErrRequestNotFound
	}
	if !found.AwaitingPayment() {
		return nil, ErrAlreadyPaid
	}

	payment, err := uc.client.GetOrCreatePayment(ctx, pretestapi.CreatePaymentRequest{
		FeedbackRequestID: &requestID,
		PaymentMethod:     domain.PaymentMethodClick,
	})
	if err != nil {
		return nil, uc.upstream("PayFeedback", err)
	}
	if !payment.HasRedirect() {
		uc.logger.Warn("PayFeedback: request id=%d payment has no redirect url", requestID)
		return nil, ErrRedirectUnavailable
	}

	uc.logger.Info("PayFeedback: request id=%d, existing payment=%t", requestID, payment.IsExisting)
	return &PayResult{
		RequestID:   requestID,
		RedirectURL: payment.RedirectURL,
		IsExisting:  payment.IsExisting,
	}, nil
}

func (uc *UseCase) findOption(ctx context.Context, optionID int64) (*domain.FeedbackOption, error) {
	options, err := uc.client.FeedbackOptions(ctx)
	if err != nil {
		return nil, uc.upstream("SubmitFeedback", err)
	}
	for i := range options {
		if options[i].ID == optionID {
			return &options[i], nil
		}
	}
	return nil, ErrOptionNotFound
}

func (uc *UseCase) upstream(op string, err error) error {
	switch {
	case errors.Is(err, pretestapi.ErrNetwork), errors.Is(err, pretestapi.ErrSessionExpired):
		uc.logger.Error("%s: %v", op, err)
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if _, ok := pretestapi.AsAPIError(err); ok {
		uc.logger.Warn("%s: rejected by backend: %v", op, err)
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}

	uc.logger.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
