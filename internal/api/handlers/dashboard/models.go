package dashboard

import (
	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	dashboardUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/dashboard"
)

// CountdownResponse отсчёт до дедлайна оплаты
type CountdownResponse struct {
	TotalSeconds int64  `json:"total_seconds"`
	Label        string `json:"label"`
}

// PendingBookingResponse неоплаченное бронирование
type PendingBookingResponse struct {
	domain.Booking
	AmountDue string             `json:"amount_due"`
	Countdown *CountdownResponse `json:"countdown,omitempty"`
}

// StatsResponse статистика личного кабинета
type StatsResponse struct {
	TotalTests    int    `json:"total_tests"`
	AverageScore  string `json:"average_score"`
	UpcomingTests int    `json:"upcoming_tests"`
	BestScore     string `json:"best_score"`
	Source        string `json:"source"`
}

// DashboardResponse HTTP response model
type DashboardResponse struct {
	UpcomingTests   []domain.Booking            `json:"upcoming_tests"`
	PendingBookings []PendingBookingResponse    `json:"pending_bookings"`
	PreviousTests   []domain.TestResult         `json:"previous_tests"`
	PaymentHistory  []domain.PaymentHistoryItem `json:"payment_history"`
	Stats           StatsResponse               `json:"stats"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
// Пустые списки отдаются как [], а не null
func FromUseCaseResponse(resp *dashboardUC.Response) *DashboardResponse {
	out := &DashboardResponse{
		UpcomingTests:   nonNil(resp.UpcomingTests),
		PendingBookings: make([]PendingBookingResponse, 0, len(resp.PendingBookings)),
		PreviousTests:   nonNil(resp.PreviousTests),
		PaymentHistory:  nonNil(resp.PaymentHistory),
		Stats: StatsResponse{
			TotalTests:    resp.Stats.TotalTests,
			AverageScore:  resp.Stats.AverageScore.StringFixed(1),
			UpcomingTests: resp.Stats.UpcomingTests,
			BestScore:     resp.Stats.BestScore.StringFixed(1),
			Source:        string(resp.StatsSource),
		},
	}

	for _, p := range resp.PendingBookings {
		item := PendingBookingResponse{
			Booking:   p.Booking,
			AmountDue: p.Booking.PayableAmount().StringFixed(2),
		}
		if p.Countdown != nil {
			item.Countdown = &CountdownResponse{
				TotalSeconds: p.Countdown.TotalSeconds,
				Label:        p.Countdown.Label,
			}
		}
		out.PendingBookings = append(out.PendingBookings, item)
	}

	return out
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
