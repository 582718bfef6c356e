package dashboard

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// upcoming будущие оплаченные бронирования
func upcoming(future []domain.Booking) []domain.Booking {
	out := make([]domain.Booking, 0, len(future))
	for _, b := range future {
		if b.IsPaid() {
			out = append(out, b)
		}
	}
	return out
}

// previousTests результаты тестов и прошедшие оплаченные бронирования без результата,
// по дате теста от новых к старым
func previousTests(results []domain.TestResult, past []domain.Booking) []domain.TestResult {
	out := make([]domain.TestResult, 0, len(results)+len(past))
	out = append(out, results...)
	for _, b := range past {
		if b.IsPaid() && !b.HasResult {
			out = append(out, domain.ResultFromBooking(b))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TestDate > out[j].TestDate
	})
	return out
}

func sortPaymentHistory(history []domain.PaymentHistoryItem) {
	sort.SliceStable(history, func(i, j int) bool {
		return history[i].CreatedAt.After(history[j].CreatedAt)
	})
}

// fallbackStats статистика по результатам, когда бэкенд её не отдал
// Средний балл округляется до десятых, учитываются только результаты с overall
func fallbackStats(results []domain.TestResult, upcomingCount int) domain.DashboardStats {
	stats := domain.DashboardStats{
		TotalTests:    len(results),
		UpcomingTests: upcomingCount,
		AverageScore:  decimal.Zero,
		BestScore:     decimal.Zero,
	}

	sum := decimal.Zero
	scored := 0
	for _, r := range results {
		if !r.Overall.Valid {
			continue
		}
		sum = sum.Add(r.Overall.Decimal)
		if scored == 0 || r.Overall.Decimal.GreaterThan(stats.BestScore) {
			stats.BestScore = r.Overall.Decimal
		}
		scored++
	}

	if scored > 0 {
		stats.AverageScore = sum.Div(decimal.NewFromInt(int64(scored))).Round(1)
	}
	return stats
}
