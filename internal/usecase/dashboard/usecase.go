package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
	"github.com/pretest-uz/PreTest-DashboardService/internal/usecase/countdown"
)

// UseCase сборка личного кабинета из пяти независимых запросов к бэкенду
type UseCase struct {
	client       PretestClient
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client PretestClient, logger Logger) *UseCase {
	return &UseCase{
		client:       client,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

type fetched struct {
	future   []domain.Booking
	past     []domain.Booking
	results  []domain.TestResult
	history  []domain.PaymentHistoryItem
	stats    *domain.DashboardStats
	statsErr error
}

// Execute запрашивает данные параллельно
// Упавший список заменяется пустым; истёкшая сессия прерывает всю сборку
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		data    fetched
		expired error
	)

	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				if errors.Is(err, pretestapi.ErrSessionExpired) {
					mu.Lock()
					expired = err
					mu.Unlock()
					return
				}
				uc.logger.Warn("Dashboard: failed to fetch %s, using empty list: %v", name, err)
			}
		}()
	}

	run("future bookings", func() error {
		list, err := uc.client.ListBookings(ctx, domain.BookingTypeFuture)
		data.future = list
		return err
	})
	run("past bookings", func() error {
		list, err := uc.client.ListBookings(ctx, domain.BookingTypePast)
		data.past = list
		return err
	})
	run("test results", func() error {
		list, err := uc.client.TestResults(ctx)
		data.results = list
		return err
	})
	run("payment history", func() error {
		list, err := uc.client.PaymentHistory(ctx)
		data.history = list
		return err
	})
	run("stats", func() error {
		stats, err := uc.client.DashboardStats(ctx)
		data.stats, data.statsErr = stats, err
		return err
	})

	wg.Wait()

	if expired != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, expired)
	}

	return uc.aggregate(&data), nil
}

func (uc *UseCase) aggregate(data *fetched) *Response {
	now := uc.timeProvider.Now()

	resp := &Response{
		UpcomingTests:   upcoming(data.future),
		PendingBookings: []PendingBooking{},
		PreviousTests:   previousTests(data.results, data.past),
		PaymentHistory:  append([]domain.PaymentHistoryItem{}, data.history...),
	}
	sortPaymentHistory(resp.PaymentHistory)

	for _, b := range data.future {
		if !b.IsPending() {
			continue
		}
		item := PendingBooking{Booking: b}
		if b.HasDeadline() {
			c := countdown.ForBooking(b, now)
			item.Countdown = &c
		}
		resp.PendingBookings = append(resp.PendingBookings, item)
	}

	if data.statsErr == nil && data.stats != nil {
		resp.Stats = *data.stats
		resp.StatsSource = StatsSourceBackend
	} else {
		resp.Stats = fallbackStats(data.results, len(resp.UpcomingTests))
		resp.StatsSource = StatsSourceFallback
	}

	uc.logger.Info("Dashboard: upcoming=%d, pending=%d, previous=%d, payments=%d, stats=%s",
		len(resp.UpcomingTests), len(resp.PendingBookings), len(resp.PreviousTests),
		len(resp.PaymentHistory), resp.StatsSource)
	return resp
}
