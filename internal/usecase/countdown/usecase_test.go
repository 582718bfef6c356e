package countdown

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
	"github.com/pretest-uz/PreTest-DashboardService/pkg/logger"
)

type stubBookings struct {
	mu        sync.Mutex
	responses [][]domain.Booking
	errs      []error
	calls     int
}

func (s *stubBookings) ListBookings(ctx context.Context, bookingType domain.BookingType) ([]domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.calls
	s.calls++
	if i < len(s.errs) && s.errs[i] != nil {
		return nil, s.errs[i]
	}
	if i >= len(s.responses) {
		return s.responses[len(s.responses)-1], nil
	}
	return s.responses[i], nil
}

func (s *stubBookings) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubMetrics struct {
	mu      sync.Mutex
	results []string
}

func (m *stubMetrics) ObserveCountdownRefetch(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, result)
}

type fixedTime struct {
	now time.Time
}

func (f *fixedTime) Now() time.Time {
	return f.now
}

func pendingBooking(id int64, expiresAt time.Time) domain.Booking {
	return domain.Booking{
		ID:            id,
		PaymentMethod: domain.PaymentMethodCash,
		PaymentStatus: domain.PaymentStatusPending,
		ExpiresAt:     &expiresAt,
	}
}

func TestRemaining(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		expiresAt time.Time
		h, m, s   int64
		label     string
	}{
		{name: "hours", expiresAt: now.Add(time.Hour + 5*time.Minute + 30*time.Second), h: 1, m: 5, s: 30, label: "1h 5m 30s"},
		{name: "minutes only", expiresAt: now.Add(2*time.Minute + 3*time.Second), h: 0, m: 2, s: 3, label: "0h 2m 3s"},
		{name: "seconds only", expiresAt: now.Add(42 * time.Second), h: 0, m: 0, s: 42, label: "42s"},
		{name: "sub-second floors to zero", expiresAt: now.Add(900 * time.Millisecond), label: "0s"},
		{name: "exactly now", expiresAt: now, label: "0s"},
		{name: "past never negative", expiresAt: now.Add(-3 * time.Hour), label: "0s"},
		{name: "many hours", expiresAt: now.Add(49*time.Hour + 59*time.Second), h: 49, m: 0, s: 59, label: "49h 0m 59s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, m, s := Remaining(tt.expiresAt, now)
			assert.Equal(t, tt.h, h)
			assert.Equal(t, tt.m, m)
			assert.Equal(t, tt.s, s)
			assert.GreaterOrEqual(t, s, int64(0))
			assert.Equal(t, tt.label, Label(h, m, s))
		})
	}
}

func TestPendingBookings(t *testing.T) {
	deadline := time.Now().Add(time.Hour)
	expired := pendingBooking(2, deadline)
	expired.IsExpired = true
	paid := pendingBooking(3, deadline)
	paid.PaymentStatus = domain.PaymentStatusPaid
	noDeadline := pendingBooking(4, deadline)
	noDeadline.ExpiresAt = nil

	pending := PendingBookings([]domain.Booking{pendingBooking(1, deadline), expired, paid, noDeadline})
	require.Len(t, pending, 1)
	assert.Equal(t, int64(1), pending[0].ID)
}

func TestTracker_ZeroCrossingFiresOnce(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	tr := newTracker([]domain.Booking{
		pendingBooking(1, now.Add(2*time.Second)),
		pendingBooking(2, now.Add(time.Hour)),
	})

	snapshot, crossed := tr.evaluate(now)
	assert.Empty(t, crossed)
	require.Len(t, snapshot.Countdowns, 2)
	assert.Equal(t, "2s", snapshot.Countdowns[0].Label)
	assert.Equal(t, "1h 0m 0s", snapshot.Countdowns[1].Label)

	_, crossed = tr.evaluate(now.Add(2 * time.Second))
	assert.Equal(t, []int64{1}, crossed)

	// повторный ноль того же бронирования не вызывает нового запроса
	_, crossed = tr.evaluate(now.Add(3 * time.Second))
	assert.Empty(t, crossed)
}

func TestTracker_FailedRefetchRetriesOnNextTick(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	tr := newTracker([]domain.Booking{pendingBooking(1, now)})

	_, crossed := tr.evaluate(now)
	require.Equal(t, []int64{1}, crossed)

	tr.refetchFailed(crossed)

	snapshot, crossed := tr.evaluate(now.Add(time.Second))
	assert.True(t, snapshot.Stale)
	assert.Equal(t, []int64{1}, crossed)
	// отсчёт не уходит в минус и бронирование не помечается истёкшим локально
	assert.Equal(t, int64(0), snapshot.Countdowns[0].TotalSeconds)
	assert.Len(t, tr.pending, 1)
}

func TestTracker_ReplaceKeepsMarksForRemainingBookings(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	tr := newTracker([]domain.Booking{pendingBooking(1, now), pendingBooking(2, now)})

	_, crossed := tr.evaluate(now)
	require.ElementsMatch(t, []int64{1, 2}, crossed)

	// бэкенд отменил бронирование 2, бронирование 1 ещё не обработано вебхуком
	tr.replace([]domain.Booking{pendingBooking(1, now)})

	snapshot, crossed := tr.evaluate(now.Add(time.Second))
	assert.Empty(t, crossed)
	assert.False(t, snapshot.Stale)
	require.Len(t, snapshot.Countdowns, 1)
	assert.Equal(t, int64(1), snapshot.Countdowns[0].BookingID)
}

func TestSnapshot(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	client := &stubBookings{responses: [][]domain.Booking{{pendingBooking(7, now.Add(90 * time.Second))}}}

	uc := NewUseCase(client, nil, logger.NewNop(), 0, 0)
	uc.timeProvider = &fixedTime{now: now}

	snapshot, err := uc.Snapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, snapshot.Countdowns, 1)
	assert.Equal(t, "0h 1m 30s", snapshot.Countdowns[0].Label)
	assert.Equal(t, int64(90), snapshot.Countdowns[0].TotalSeconds)
}

func TestSnapshot_UpstreamError(t *testing.T) {
	upstream := errors.New("boom")
	client := &stubBookings{errs: []error{upstream}}

	uc := NewUseCase(client, nil, logger.NewNop(), 0, 0)
	_, err := uc.Snapshot(context.Background())
	assert.ErrorIs(t, err, ErrUpstream)
	assert.ErrorIs(t, err, upstream)
}

func TestTracker_PostponedRefetchOnlyForRemainingBookings(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	tr := newTracker([]domain.Booking{pendingBooking(1, now.Add(-time.Second)), pendingBooking(2, now.Add(-time.Second))})

	_, crossed := tr.evaluate(now)
	require.ElementsMatch(t, []int64{1, 2}, crossed)
	tr.postpone(crossed)

	// бронирование 2 оплачено, в свежем списке его нет
	tr.replace([]domain.Booking{pendingBooking(1, now.Add(-time.Second))})

	assert.Equal(t, []int64{1}, tr.takeDue())
	assert.Empty(t, tr.takeDue(), "postponed bookings are taken once")
}

func TestRun_RefetchesOnZeroAndRetriesAfterFailure(t *testing.T) {
	expiresAt := time.Now().Add(-time.Second)
	client := &stubBookings{
		responses: [][]domain.Booking{
			{pendingBooking(1, expiresAt)},
			nil,
			{},
		},
		errs: []error{nil, errors.New("network down"), nil},
	}
	m := &stubMetrics{}

	uc := NewUseCase(client, m, logger.NewNop(), 5*time.Millisecond, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var snapshots []Snapshot
	err := uc.Run(ctx, func(s Snapshot) error {
		snapshots = append(snapshots, s)
		if len(s.Countdowns) == 0 {
			return errStop
		}
		return nil
	})
	require.ErrorIs(t, err, errStop)

	// первичный запрос, неудачный повтор, удачный повтор
	assert.Equal(t, 3, client.Calls())
	require.Len(t, snapshots, 2)
	assert.True(t, snapshots[0].Stale)
	assert.Equal(t, "0s", snapshots[0].Countdowns[0].Label)
	assert.False(t, snapshots[1].Stale)

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Equal(t, []string{"error", "ok"}, m.results)
}

func TestRun_StopsWhenSessionExpiresOnRefetch(t *testing.T) {
	expired := fmt.Errorf("GET /bookings/list/: %w", pretestapi.ErrSessionExpired)
	client := &stubBookings{
		responses: [][]domain.Booking{{pendingBooking(1, time.Now().Add(-time.Second))}},
		errs:      []error{nil, expired, expired, expired},
	}
	m := &stubMetrics{}
	uc := NewUseCase(client, m, logger.NewNop(), 2*time.Millisecond, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	emitted := 0
	err := uc.Run(ctx, func(s Snapshot) error {
		emitted++
		return nil
	})

	require.ErrorIs(t, err, pretestapi.ErrSessionExpired)
	assert.ErrorIs(t, err, ErrUpstream)
	// после истечения сессии запросы без токена не повторяются
	assert.Equal(t, 2, client.Calls())
	assert.Zero(t, emitted)

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Equal(t, []string{"error"}, m.results)
}

func TestRun_StopsWhenSessionExpiresOnResync(t *testing.T) {
	client := &stubBookings{
		responses: [][]domain.Booking{{pendingBooking(1, time.Now().Add(time.Hour))}},
		errs:      []error{nil, pretestapi.ErrSessionExpired},
	}
	uc := NewUseCase(client, nil, logger.NewNop(), 2*time.Millisecond, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := uc.Run(ctx, func(s Snapshot) error { return nil })
	require.ErrorIs(t, err, pretestapi.ErrSessionExpired)
	assert.Equal(t, 2, client.Calls())
}

func TestRun_RefetchesForBookingThatArrivesAtZero(t *testing.T) {
	expiresAt := time.Now().Add(-time.Second)
	client := &stubBookings{
		responses: [][]domain.Booking{
			{pendingBooking(1, expiresAt)},
			// бэкенд ещё держит 1 и вернул новое бронирование 2, тоже с истёкшим дедлайном
			{pendingBooking(1, expiresAt), pendingBooking(2, expiresAt)},
			{},
		},
	}
	uc := NewUseCase(client, nil, logger.NewNop(), 2*time.Millisecond, 0)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var snapshots []Snapshot
	err := uc.Run(ctx, func(s Snapshot) error {
		snapshots = append(snapshots, s)
		if len(s.Countdowns) == 0 {
			return errStop
		}
		return nil
	})
	require.ErrorIs(t, err, errStop)

	// первичный запрос, запрос по нулю бронирования 1, отдельный запрос по бронированию 2
	assert.Equal(t, 3, client.Calls())
	require.Len(t, snapshots, 2)
	assert.Len(t, snapshots[0].Countdowns, 2)
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	client := &stubBookings{responses: [][]domain.Booking{{pendingBooking(1, time.Now().Add(time.Hour))}}}
	uc := NewUseCase(client, nil, logger.NewNop(), 5*time.Millisecond, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	emitted := 0
	err := uc.Run(ctx, func(s Snapshot) error {
		emitted++
		if emitted == 3 {
			cancel()
		}
		return nil
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, emitted, 3)
}

var errStop = errors.New("stop")
