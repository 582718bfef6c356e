package domain

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TestResult результат пройденного теста
// Бэкенд отдаёт баллы либо как reading/listening/..., либо как reading_score/...,
// а overall как число или строку; NullDecimal принимает оба варианта
type TestResult struct {
	ID        int64               `json:"id"`
	BookingID int64               `json:"booking"`
	TestDate  string              `json:"test_date"`
	TestType  string              `json:"test_type"`
	Reading   decimal.NullDecimal `json:"reading"`
	Listening decimal.NullDecimal `json:"listening"`
	Writing   decimal.NullDecimal `json:"writing"`
	Speaking  decimal.NullDecimal `json:"speaking"`
	Overall   decimal.NullDecimal `json:"overall"`
	PDFFile   *string             `json:"pdf_file,omitempty"`
	CreatedAt time.Time           `json:"created_at"`

	// HasScores false для прошедших оплаченных бронирований, по которым результата ещё нет
	HasScores bool `json:"has_scores"`
}

type testResultAlias TestResult

type testResultWire struct {
	testResultAlias
	ReadingScore   decimal.NullDecimal `json:"reading_score"`
	ListeningScore decimal.NullDecimal `json:"listening_score"`
	WritingScore   decimal.NullDecimal `json:"writing_score"`
	SpeakingScore  decimal.NullDecimal `json:"speaking_score"`
}

// UnmarshalJSON принимает обе формы полей с баллами
func (r *TestResult) UnmarshalJSON(data []byte) error {
	var wire testResultWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	*r = TestResult(wire.testResultAlias)
	r.Reading = firstValid(r.Reading, wire.ReadingScore)
	r.Listening = firstValid(r.Listening, wire.ListeningScore)
	r.Writing = firstValid(r.Writing, wire.WritingScore)
	r.Speaking = firstValid(r.Speaking, wire.SpeakingScore)
	r.HasScores = true
	return nil
}

func firstValid(values ...decimal.NullDecimal) decimal.NullDecimal {
	for _, v := range values {
		if v.Valid {
			return v
		}
	}
	return decimal.NullDecimal{}
}

// ResultFromBooking строка «результат ожидается» для прошедшего оплаченного бронирования
func ResultFromBooking(b Booking) TestResult {
	return TestResult{
		ID:        b.ID,
		BookingID: b.ID,
		TestDate:  b.Session.SessionDate,
		TestType:  b.Session.Product.Name,
		CreatedAt: b.CreatedAt,
		HasScores: false,
	}
}

// DashboardStats сводная статистика кабинета
type DashboardStats struct {
	TotalTests    int             `json:"total_tests"`
	AverageScore  decimal.Decimal `json:"average_score"`
	UpcomingTests int             `json:"upcoming_tests"`
	BestScore     decimal.Decimal `json:"best_score"`
}
