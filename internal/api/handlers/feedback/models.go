package feedback

import (
	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	feedbackUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/feedback"
)

// SubmitRequest JSON-вариант заявки без файла
type SubmitRequest struct {
	OptionID       int64  `json:"feedback_type"`
	Writing        string `json:"writing,omitempty"`
	RelatedBooking *int64 `json:"related_booking,omitempty"`
}

// OptionResponse вид фидбека
type OptionResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Kind  string `json:"kind"`
}

// StatisticsResponse статистика заявок пользователя
type StatisticsResponse struct {
	TotalSubmissions  int    `json:"total_submissions"`
	CompletedFeedback int    `json:"completed_feedback"`
	AverageScore      string `json:"average_score"`
}

// OverviewResponse HTTP response model
type OverviewResponse struct {
	Options    []OptionResponse         `json:"options"`
	Requests   []domain.FeedbackRequest `json:"requests"`
	Statistics StatisticsResponse       `json:"statistics"`
	PastTests  []domain.Booking         `json:"past_tests"`
}

// SubmitResponse заявка создана, но перейти к оплате не удалось
type SubmitResponse struct {
	Outcome string                  `json:"outcome"`
	Request *domain.FeedbackRequest `json:"request"`
}

// FromOverview конвертирует ответ use case в HTTP response
func FromOverview(o *feedbackUC.Overview) *OverviewResponse {
	resp := &OverviewResponse{
		Options:  make([]OptionResponse, 0, len(o.Options)),
		Requests: o.Requests,
		Statistics: StatisticsResponse{
			TotalSubmissions:  o.Statistics.TotalSubmissions,
			CompletedFeedback: o.Statistics.CompletedFeedback,
			AverageScore:      o.Statistics.AverageScore.StringFixed(1),
		},
		PastTests: o.PastTests,
	}
	if resp.Requests == nil {
		resp.Requests = []domain.FeedbackRequest{}
	}
	if resp.PastTests == nil {
		resp.PastTests = []domain.Booking{}
	}

	for _, opt := range o.Options {
		resp.Options = append(resp.Options, OptionResponse{
			ID:    opt.ID,
			Name:  opt.Name,
			Price: opt.Price.StringFixed(2),
			Kind:  string(opt.Kind()),
		})
	}
	return resp
}
