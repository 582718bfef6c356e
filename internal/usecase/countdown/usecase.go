package countdown

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
)

const defaultTick = time.Second

// UseCase отсчёт времени до дедлайна оплаты неоплаченных бронирований
type UseCase struct {
	client       BookingsClient
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
	tick         time.Duration
	resync       time.Duration
}

// NewUseCase создает новый экземпляр use case
// tick <= 0 означает тик в одну секунду; resync <= 0 отключает периодическую синхронизацию
func NewUseCase(client BookingsClient, metrics Metrics, logger Logger, tick, resync time.Duration) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	if tick <= 0 {
		tick = defaultTick
	}
	return &UseCase{
		client:       client,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
		tick:         tick,
		resync:       resync,
	}
}

// Snapshot разовый снимок отсчётов по текущему списку бронирований
func (uc *UseCase) Snapshot(ctx context.Context) (*Snapshot, error) {
	bookings, err := uc.fetch(ctx)
	if err != nil {
		return nil, err
	}

	snapshot, _ := newTracker(bookings).evaluate(uc.timeProvider.Now())
	return &snapshot, nil
}

// Run тикает каждые tick и передаёт снимок в emit
//
// Когда отсчёт бронирования впервые доходит до нуля, список бронирований
// запрашивается заново. Неудачный запрос оставляет прежний список, попытка
// повторяется на следующем тике. Run завершается при отмене ctx, ошибке emit
// или истечении сессии (ошибка содержит pretestapi.ErrSessionExpired).
func (uc *UseCase) Run(ctx context.Context, emit func(Snapshot) error) error {
	bookings, err := uc.fetch(ctx)
	if err != nil {
		return err
	}
	t := newTracker(bookings)

	ticker := time.NewTicker(uc.tick)
	defer ticker.Stop()

	var resync <-chan time.Time
	if uc.resync > 0 {
		resyncTicker := time.NewTicker(uc.resync)
		defer resyncTicker.Stop()
		resync = resyncTicker.C
	}

	if err := uc.step(ctx, t, emit); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-resync:
			if _, err := uc.refetch(ctx, t, nil); err != nil {
				return err
			}
		case <-ticker.C:
			if err := uc.step(ctx, t, emit); err != nil {
				return err
			}
		}
	}
}

// step считает отсчёты, при достижении нуля перезапрашивает бронирования и отдаёт снимок
func (uc *UseCase) step(ctx context.Context, t *tracker, emit func(Snapshot) error) error {
	snapshot, crossed := t.evaluate(uc.timeProvider.Now())
	crossed = append(t.takeDue(), crossed...)

	if len(crossed) > 0 {
		uc.logger.Info("Countdown: bookings %v reached zero, refetching", crossed)
		ok, err := uc.refetch(ctx, t, crossed)
		if err != nil {
			return err
		}
		if ok {
			// бронирования, пришедшие в свежем списке уже на нуле, получают свой запрос на следующем тике
			var fresh []int64
			snapshot, fresh = t.evaluate(uc.timeProvider.Now())
			t.postpone(fresh)
		} else {
			snapshot.Stale = true
		}
	}

	return emit(snapshot)
}

// refetch перезапрашивает бронирования; false означает, что остался прежний список
// Ошибка возвращается только при истечении сессии: дальнейшие запросы без токена бессмысленны
func (uc *UseCase) refetch(ctx context.Context, t *tracker, crossed []int64) (bool, error) {
	bookings, err := uc.fetch(ctx)
	if err != nil {
		uc.metrics.ObserveCountdownRefetch("error")
		if errors.Is(err, pretestapi.ErrSessionExpired) {
			uc.logger.Warn("Countdown: session expired during refetch, stopping: %v", err)
			return false, err
		}
		uc.logger.Warn("Countdown: refetch failed, keeping stale list: %v", err)
		t.refetchFailed(crossed)
		return false, nil
	}

	uc.metrics.ObserveCountdownRefetch("ok")
	t.replace(bookings)
	return true, nil
}

func (uc *UseCase) fetch(ctx context.Context) ([]domain.Booking, error) {
	bookings, err := uc.client.ListBookings(ctx, domain.BookingTypeFuture)
	if err != nil {
		return nil, fmt.Errorf("%w: list bookings: %w", ErrUpstream, err)
	}
	return bookings, nil
}
