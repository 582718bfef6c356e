package countdown

import (
	"fmt"
	"time"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// Remaining max(0, expiresAt - now) в целых секундах, разложенное на часы, минуты и секунды
func Remaining(expiresAt, now time.Time) (hours, minutes, seconds int64) {
	total := totalSeconds(expiresAt, now)
	return total / 3600, (total % 3600) / 60, total % 60
}

// Label отображение отсчёта: "1h 5m 30s", при нуле часов и минут только "30s"
func Label(hours, minutes, seconds int64) string {
	if hours == 0 && minutes == 0 {
		return fmt.Sprintf("%ds", seconds)
	}
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}

func totalSeconds(expiresAt, now time.Time) int64 {
	diff := expiresAt.Sub(now)
	if diff <= 0 {
		return 0
	}
	return int64(diff / time.Second)
}

func newCountdown(bookingID int64, expiresAt, now time.Time) Countdown {
	h, m, s := Remaining(expiresAt, now)
	return Countdown{
		BookingID:    bookingID,
		ExpiresAt:    expiresAt,
		Hours:        h,
		Minutes:      m,
		Seconds:      s,
		TotalSeconds: totalSeconds(expiresAt, now),
		Label:        Label(h, m, s),
	}
}

// ForBooking отсчёт по бронированию с дедлайном оплаты
func ForBooking(b domain.Booking, now time.Time) Countdown {
	if !b.HasDeadline() {
		return Countdown{BookingID: b.ID, Label: Label(0, 0, 0)}
	}
	return newCountdown(b.ID, *b.ExpiresAt, now)
}
