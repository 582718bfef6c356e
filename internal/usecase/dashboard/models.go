package dashboard

import (
	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/usecase/countdown"
)

// StatsSource откуда взята статистика
type StatsSource string

const (
	StatsSourceBackend  StatsSource = "backend"
	StatsSourceFallback StatsSource = "fallback"
)

// PendingBooking неоплаченное бронирование с отсчётом до дедлайна
type PendingBooking struct {
	Booking   domain.Booking
	Countdown *countdown.Countdown // nil, если бэкенд не прислал expires_at
}

// Response данные личного кабинета
type Response struct {
	UpcomingTests   []domain.Booking
	PendingBookings []PendingBooking
	PreviousTests   []domain.TestResult
	PaymentHistory  []domain.PaymentHistoryItem
	Stats           domain.DashboardStats
	StatsSource     StatsSource
}
