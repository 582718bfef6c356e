package countdown

import (
	"time"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// tracker список ожидающих оплаты бронирований и отметки о достижении нуля
// Отметка ставится один раз на бронирование, чтобы ноль вызывал один повторный запрос
type tracker struct {
	pending []domain.Booking
	fired   map[int64]bool
	stale   bool
	// due бронирования, для которых запрос ещё не выполнялся, хотя отметка уже стоит
	due []int64
}

func newTracker(bookings []domain.Booking) *tracker {
	t := &tracker{fired: make(map[int64]bool)}
	t.replace(bookings)
	return t
}

// PendingBookings будущие бронирования со статусом pending, не истёкшие, с дедлайном
func PendingBookings(bookings []domain.Booking) []domain.Booking {
	pending := make([]domain.Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.IsPending() && b.HasDeadline() {
			pending = append(pending, b)
		}
	}
	return pending
}

// replace подставляет свежий список; отметки сохраняются только для оставшихся бронирований
func (t *tracker) replace(bookings []domain.Booking) {
	t.pending = PendingBookings(bookings)
	t.stale = false

	alive := make(map[int64]bool, len(t.pending))
	for _, b := range t.pending {
		if t.fired[b.ID] {
			alive[b.ID] = true
		}
	}
	t.fired = alive
}

// evaluate считает отсчёты на момент now и возвращает бронирования, впервые достигшие нуля
func (t *tracker) evaluate(now time.Time) (Snapshot, []int64) {
	snapshot := Snapshot{
		At:         now,
		Countdowns: make([]Countdown, 0, len(t.pending)),
		Stale:      t.stale,
	}

	var crossed []int64
	for _, b := range t.pending {
		c := ForBooking(b, now)
		snapshot.Countdowns = append(snapshot.Countdowns, c)

		if c.Reached() && !t.fired[b.ID] {
			t.fired[b.ID] = true
			crossed = append(crossed, b.ID)
		}
	}
	return snapshot, crossed
}

// postpone откладывает запрос по бронированиям до следующего тика
func (t *tracker) postpone(ids []int64) {
	t.due = append(t.due, ids...)
}

// takeDue забирает отложенные бронирования, оставшиеся в списке
func (t *tracker) takeDue() []int64 {
	due := make([]int64, 0, len(t.due))
	for _, id := range t.due {
		if t.fired[id] {
			due = append(due, id)
		}
	}
	t.due = nil
	return due
}

// refetchFailed снимает отметки, чтобы следующий тик повторил запрос
func (t *tracker) refetchFailed(crossed []int64) {
	t.stale = true
	for _, id := range crossed {
		delete(t.fired, id)
	}
}
