package countdown

import "time"

// Countdown оставшееся до дедлайна оплаты время по одному бронированию
type Countdown struct {
	BookingID    int64
	ExpiresAt    time.Time
	Hours        int64
	Minutes      int64
	Seconds      int64
	TotalSeconds int64
	Label        string
}

// Reached true, когда отсчёт дошёл до нуля
// Это только отображение: истёкшим бронирование считает бэкенд
func (c Countdown) Reached() bool {
	return c.TotalSeconds == 0
}

// Snapshot состояние всех отсчётов на момент At
type Snapshot struct {
	At         time.Time
	Countdowns []Countdown
	// Stale последний повторный запрос бронирований не удался, показан прежний список
	Stale bool
}
