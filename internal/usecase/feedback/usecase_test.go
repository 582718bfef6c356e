package feedback

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
	"github.com/pretest-uz/PreTest-DashboardService/pkg/logger"
)

type stubClient struct {
	options  []domain.FeedbackOption
	requests []domain.FeedbackRequest
	stats    *domain.FeedbackStatistics
	statsErr error
	past     []domain.Booking

	created    *domain.FeedbackRequest
	createReq  *pretestapi.CreateFeedbackRequest
	payment    *domain.Payment
	paymentErr error
	paymentReq *pretestapi.CreatePaymentRequest
	reuseReq   *pretestapi.CreatePaymentRequest
}

func (c *stubClient) FeedbackOptions(ctx context.Context) ([]domain.FeedbackOption, error) {
	return c.options, nil
}

func (c *stubClient) FeedbackRequests(ctx context.Context) ([]domain.FeedbackRequest, error) {
	return c.requests, nil
}

func (c *stubClient) FeedbackStatistics(ctx context.Context) (*domain.FeedbackStatistics, error) {
	return c.stats, c.statsErr
}

func (c *stubClient) CreateFeedback(ctx context.Context, req pretestapi.CreateFeedbackRequest) (*domain.FeedbackRequest, error) {
	c.createReq = &req
	return c.created, nil
}

func (c *stubClient) CreatePayment(ctx context.Context, req pretestapi.CreatePaymentRequest) (*domain.Payment, error) {
	c.paymentReq = &req
	return c.payment, c.paymentErr
}

func (c *stubClient) GetOrCreatePayment(ctx context.Context, req pretestapi.CreatePaymentRequest) (*domain.Payment, error) {
	c.reuseReq = &req
	return c.payment, c.paymentErr
}

func (c *stubClient) ListBookings(ctx context.Context, bookingType domain.BookingType) ([]domain.Booking, error) {
	return c.past, nil
}

func strPtr(v string) *string {
	return &v
}

func int64Ptr(v int64) *int64 {
	return &v
}

func newStubClient() *stubClient {
	return &stubClient{
		options: []domain.FeedbackOption{
			{ID: 1, Name: "Writing Feedback", Price: decimal.RequireFromString("50000")},
			{ID: 2, Name: "Speaking Feedback", Price: decimal.RequireFromString("60000")},
		},
		created: &domain.FeedbackRequest{ID: 77, FeedbackType: 1},
		payment: &domain.Payment{PaymentID: "fb-77", RedirectURL: "https://my.click.uz/pay/fb-77"},
	}
}

func TestSubmit_WritingText(t *testing.T) {
	client := newStubClient()
	uc := NewUseCase(client, logger.NewNop())

	result, err := uc.Submit(context.Background(), &SubmitRequest{OptionID: 1, Writing: "  My essay  "})
	require.NoError(t, err)

	assert.Equal(t, OutcomeRedirect, result.Outcome)
	assert.Equal(t, "https://my.click.uz/pay/fb-77", result.RedirectURL)

	require.NotNil(t, client.createReq)
	assert.Equal(t, int64(1), client.createReq.FeedbackType)
	assert.Equal(t, "My essay", client.createReq.Writing)
	assert.Nil(t, client.createReq.File)

	require.NotNil(t, client.paymentReq)
	assert.Equal(t, int64(77), *client.paymentReq.FeedbackRequestID)
	assert.Equal(t, domain.PaymentMethodClick, client.paymentReq.PaymentMethod)
	assert.Nil(t, client.paymentReq.BookingID)
}

func TestSubmit_SpeakingIgnoresAttachments(t *testing.T) {
	client := newStubClient()
	uc := NewUseCase(client, logger.NewNop())

	_, err := uc.Submit(context.Background(), &SubmitRequest{OptionID: 2, Writing: "ignored", RelatedBooking: int64Ptr(5)})
	require.NoError(t, err)

	require.NotNil(t, client.createReq)
	assert.Equal(t, int64(2), client.createReq.FeedbackType)
	assert.Empty(t, client.createReq.Writing)
	assert.Nil(t, client.createReq.RelatedBooking)
}

func TestSubmit_WritingValidation(t *testing.T) {
	file := &domain.FeedbackUpload{Filename: "essay.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}

	tests := []struct {
		name string
		req  SubmitRequest
		want error
	}{
		{name: "nothing", req: SubmitRequest{OptionID: 1}, want: ErrSubmissionRequired},
		{name: "blank text", req: SubmitRequest{OptionID: 1, Writing: "   "}, want: ErrSubmissionRequired},
		{name: "two methods", req: SubmitRequest{OptionID: 1, Writing: "text", File: file}, want: ErrInvalidInput},
		{name: "empty file", req: SubmitRequest{OptionID: 1, File: &domain.FeedbackUpload{Filename: "a.pdf"}}, want: ErrInvalidInput},
		{name: "unknown option", req: SubmitRequest{OptionID: 9, Writing: "text"}, want: ErrOptionNotFound},
		{name: "no option", req: SubmitRequest{}, want: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newStubClient()
			uc := NewUseCase(client, logger.NewNop())

			_, err := uc.Submit(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Nil(t, client.createReq)
		})
	}
}

func TestSubmit_FileAndRelatedBooking(t *testing.T) {
	client := newStubClient()
	uc := NewUseCase(client, logger.NewNop())
	file := &domain.FeedbackUpload{Filename: "essay.pdf", ContentType: "application/pdf", Content: []byte("%PDF")}

	_, err := uc.Submit(context.Background(), &SubmitRequest{OptionID: 1, File: file})
	require.NoError(t, err)
	assert.Same(t, file, client.createReq.File)

	_, err = uc.Submit(context.Background(), &SubmitRequest{OptionID: 1, RelatedBooking: int64Ptr(42)})
	require.NoError(t, err)
	require.NotNil(t, client.createReq.RelatedBooking)
	assert.Equal(t, int64(42), *client.createReq.RelatedBooking)
}

func TestSubmit_PaymentOutcomes(t *testing.T) {
	client := newStubClient()
	client.payment = &domain.Payment{PaymentID: "fb-77"}
	uc := NewUseCase(client, logger.NewNop())

	result, err := uc.Submit(context.Background(), &SubmitRequest{OptionID: 2})
	require.NoError(t, err)
	assert.Equal(t, OutcomeRedirectUnavailable, result.Outcome)

	client.payment = nil
	client.paymentErr = &pretestapi.APIError{Status: 500}
	result, err = uc.Submit(context.Background(), &SubmitRequest{OptionID: 2})
	require.NoError(t, err)
	assert.Equal(t, OutcomePaymentInitFailed, result.Outcome)
	assert.Equal(t, int64(77), result.Request.ID)
}

func TestPayPending(t *testing.T) {
	client := newStubClient()
	client.requests = []domain.FeedbackRequest{
		{ID: 1, FeedbackType: 1, PaymentStatus: strPtr("pending")},
		{ID: 2, FeedbackType: 1, PaymentStatus: strPtr("paid")},
	}
	client.payment = &domain.Payment{PaymentID: "fb-1", RedirectURL: "https://my.click.uz/pay/fb-1", IsExisting: true}
	uc := NewUseCase(client, logger.NewNop())
	ctx := context.Background()

	result, err := uc.PayPending(ctx, 1)
	require.NoError(t, err)
	assert.True(t, result.IsExisting)
	assert.Equal(t, "https://my.click.uz/pay/fb-1", result.RedirectURL)
	require.NotNil(t, client.reuseReq)
	assert.Equal(t, int64(1), *client.reuseReq.FeedbackRequestID)

	_, err = uc.PayPending(ctx, 2)
	assert.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = uc.PayPending(ctx, 3)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	client.payment = &domain.Payment{PaymentID: "fb-1"}
	_, err = uc.PayPending(ctx, 1)
	assert.ErrorIs(t, err, ErrRedirectUnavailable)
}

func TestOverview_StatisticsDefaultToZero(t *testing.T) {
	client := newStubClient()
	client.statsErr = pretestapi.ErrNetwork
	client.past = []domain.Booking{
		{ID: 1, PaymentStatus: domain.PaymentStatusPaid},
		{ID: 2, PaymentStatus: domain.PaymentStatusCancelled},
	}
	uc := NewUseCase(client, logger.NewNop())

	overview, err := uc.Overview(context.Background())
	require.NoError(t, err)
	assert.Len(t, overview.Options, 2)
	assert.Zero(t, overview.Statistics.TotalSubmissions)
	assert.True(t, overview.Statistics.AverageScore.IsZero())
	require.Len(t, overview.PastTests, 1)
	assert.Equal(t, int64(1), overview.PastTests[0].ID)

	client.statsErr = pretestapi.ErrSessionExpired
	_, err = uc.Overview(context.Background())
	assert.ErrorIs(t, err, pretestapi.ErrSessionExpired)
}
