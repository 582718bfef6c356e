package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FeedbackOption вид видео-фидбека (writing/speaking) с ценой
type FeedbackOption struct {
	ID    int64           `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// FeedbackKind вид проверяемой работы, определяется по названию опции
type FeedbackKind string

const (
	FeedbackKindWriting  FeedbackKind = "writing"
	FeedbackKindSpeaking FeedbackKind = "speaking"
	FeedbackKindUnknown  FeedbackKind = "unknown"
)

// Kind вид работы по названию опции; всё, что не speaking, проверяется как writing
func (o *FeedbackOption) Kind() FeedbackKind {
	name := strings.ToLower(o.Name)
	switch {
	case strings.Contains(name, "speaking"):
		return FeedbackKindSpeaking
	case strings.Contains(name, "writing"):
		return FeedbackKindWriting
	}
	return FeedbackKindUnknown
}

// FeedbackRequest заявка пользователя на видео-фидбек
type FeedbackRequest struct {
	ID                  int64            `json:"id"`
	FeedbackType        int64            `json:"feedback_type"`
	RelatedBooking      *int64           `json:"related_booking"`
	Payment             *string          `json:"payment"`
	PaymentStatus       *string          `json:"payment_status"`
	PaymentMethod       *string          `json:"payment_method"`
	UploadedFile        *string          `json:"uploaded_file"`
	Writing             *string          `json:"writing"`
	AdminVideoResponse  *string          `json:"admin_video_response"`
	CreatedAt           time.Time        `json:"created_at"`
	IsCompleted         bool             `json:"is_completed"`
	Score               *decimal.Decimal `json:"score"`
	ExaminerName        *string          `json:"examiner_name"`
	FeedbackDescription *string          `json:"feedback_description"`
	User                string           `json:"user,omitempty"`
}

// AwaitingPayment returns true if the request has not been paid yet
func (f *FeedbackRequest) AwaitingPayment() bool {
	return f.PaymentStatus == nil || *f.PaymentStatus == string(PaymentStatusPending)
}

// FeedbackStatistics статистика заявок пользователя
type FeedbackStatistics struct {
	TotalSubmissions  int             `json:"total_submissions"`
	CompletedFeedback int             `json:"completed_feedback"`
	AverageScore      decimal.Decimal `json:"average_score"`
}

// FeedbackUpload файл, прикреплённый к заявке
type FeedbackUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}
