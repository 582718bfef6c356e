package feedback

import "github.com/pretest-uz/PreTest-DashboardService/internal/domain"

// Overview данные страницы видео-фидбека
type Overview struct {
	Options    []domain.FeedbackOption
	Requests   []domain.FeedbackRequest
	Statistics domain.FeedbackStatistics
	PastTests  []domain.Booking // оплаченные прошедшие тесты, к которым можно привязать заявку
}

// SubmitRequest новая заявка
// Для writing заполняется ровно одно из Writing, File, RelatedBooking; для speaking ничего
type SubmitRequest struct {
	OptionID       int64
	Writing        string
	File           *domain.FeedbackUpload
	RelatedBooking *int64
}

// Outcome итог оформления заявки
type Outcome string

const (
	OutcomeRedirect            Outcome = "redirect"
	OutcomeRedirectUnavailable Outcome = "redirect_unavailable"
	OutcomePaymentInitFailed   Outcome = "payment_init_failed"
)

// SubmitResult созданная заявка и ссылка на оплату
type SubmitResult struct {
	Outcome     Outcome
	Request     *domain.FeedbackRequest
	Payment     *domain.Payment
	RedirectURL string
}

// PayResult ссылка на оплату существующей заявки
type PayResult struct {
	RequestID   int64
	RedirectURL string
	IsExisting  bool
}
