package countdown

import (
	"time"

	countdownUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/countdown"
)

// CountdownResponse отсчёт до дедлайна оплаты одного бронирования
type CountdownResponse struct {
	BookingID    int64     `json:"booking_id"`
	ExpiresAt    time.Time `json:"expires_at"`
	Hours        int64     `json:"hours"`
	Minutes      int64     `json:"minutes"`
	Seconds      int64     `json:"seconds"`
	TotalSeconds int64     `json:"total_seconds"`
	Label        string    `json:"label"`
	Reached      bool      `json:"reached"`
}

// SnapshotResponse снимок всех отсчётов; в SSE-потоке отправляется как сигналы datastar
type SnapshotResponse struct {
	At         time.Time           `json:"at"`
	Countdowns []CountdownResponse `json:"countdowns"`
	Stale      bool                `json:"stale"`
}

// LogoutSignal завершающий сигнал потока при истечении сессии
type LogoutSignal struct {
	Logout bool `json:"logout"`
}

// FromSnapshot конвертирует снимок usecase в HTTP response
func FromSnapshot(s *countdownUC.Snapshot) *SnapshotResponse {
	resp := &SnapshotResponse{
		At:         s.At,
		Countdowns: make([]CountdownResponse, 0, len(s.Countdowns)),
		Stale:      s.Stale,
	}
	for _, c := range s.Countdowns {
		resp.Countdowns = append(resp.Countdowns, CountdownResponse{
			BookingID:    c.BookingID,
			ExpiresAt:    c.ExpiresAt,
			Hours:        c.Hours,
			Minutes:      c.Minutes,
			Seconds:      c.Seconds,
			TotalSeconds: c.TotalSeconds,
			Label:        c.Label,
			Reached:      c.Reached(),
		})
	}
	return resp
}
