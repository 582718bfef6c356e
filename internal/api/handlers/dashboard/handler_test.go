package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
	"github.com/pretest-uz/PreTest-DashboardService/internal/usecase/countdown"
	dashboardUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/dashboard"
	"github.com/pretest-uz/PreTest-DashboardService/pkg/logger"
)

type stubUseCase struct {
	resp *dashboardUC.Response
	err  error
}

func (s *stubUseCase) Execute(ctx context.Context) (*dashboardUC.Response, error) {
	return s.resp, s.err
}

func TestHandle_EmptyListsAreArrays(t *testing.T) {
	h := NewHandler(&stubUseCase{resp: &dashboardUC.Response{
		Stats: domain.DashboardStats{
			TotalTests:   2,
			AverageScore: decimal.RequireFromString("6.75").Round(1),
			BestScore:    decimal.RequireFromString("7"),
		},
		StatsSource: dashboardUC.StatsSourceFallback,
	}}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
	assert.JSONEq(t, `[]`, string(raw["upcoming_tests"]))
	assert.JSONEq(t, `[]`, string(raw["pending_bookings"]))
	assert.JSONEq(t, `[]`, string(raw["previous_tests"]))
	assert.JSONEq(t, `[]`, string(raw["payment_history"]))

	var body DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "6.8", body.Stats.AverageScore)
	assert.Equal(t, "7.0", body.Stats.BestScore)
	assert.Equal(t, "fallback", body.Stats.Source)
}

func TestHandle_PendingBookingCountdown(t *testing.T) {
	booking := domain.Booking{
		ID:            5,
		PaymentStatus: domain.PaymentStatusPending,
		FinalPrice:    decimal.NewNullDecimal(decimal.RequireFromString("80.1")),
	}
	h := NewHandler(&stubUseCase{resp: &dashboardUC.Response{
		PendingBookings: []dashboardUC.PendingBooking{
			{Booking: booking, Countdown: &countdown.Countdown{BookingID: 5, TotalSeconds: 59, Label: "59s"}},
			{Booking: domain.Booking{ID: 6, PaymentStatus: domain.PaymentStatusPending}},
		},
	}}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body DashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.PendingBookings, 2)
	assert.Equal(t, int64(5), body.PendingBookings[0].ID)
	assert.Equal(t, "80.10", body.PendingBookings[0].AmountDue)
	require.NotNil(t, body.PendingBookings[0].Countdown)
	assert.Equal(t, "59s", body.PendingBookings[0].Countdown.Label)
	assert.Nil(t, body.PendingBookings[1].Countdown)
}

func TestHandle_SessionExpired(t *testing.T) {
	err := fmt.Errorf("%w: %w", dashboardUC.ErrUpstream, pretestapi.ErrSessionExpired)
	h := NewHandler(&stubUseCase{err: err}, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
