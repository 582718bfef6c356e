package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор Prometheus-коллекторов сервиса
// Использует собственный registry, чтобы несколько экземпляров (например, в тестах) не конфликтовали
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	UpstreamRequestsTotal   *prometheus.CounterVec
	UpstreamRequestDuration *prometheus.HistogramVec

	TokenRefreshTotal     *prometheus.CounterVec
	CountdownRefetchTotal *prometheus.CounterVec
	SessionStoreOpsTotal  *prometheus.CounterVec
	BackendUp             prometheus.Gauge
}

// New создает и регистрирует все метрики
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		UpstreamRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "upstream_requests_total",
			Help:        "Total number of requests to the PreTest backend",
			ConstLabels: constLabels,
		}, []string{"method", "endpoint", "status"}),
		UpstreamRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "upstream_request_duration_seconds",
			Help:        "PreTest backend request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"method", "endpoint"}),
		TokenRefreshTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "token_refresh_total",
			Help:        "Access token refresh attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		CountdownRefetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "countdown_refetch_total",
			Help:        "Bookings re-fetches triggered by countdown zero-crossings",
			ConstLabels: constLabels,
		}, []string{"result"}),
		SessionStoreOpsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "session_store_operations_total",
			Help:        "Session store operations by kind and result",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),
		BackendUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "backend_up",
			Help:        "1 if the last PreTest backend health check succeeded",
			ConstLabels: constLabels,
		}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.UpstreamRequestsTotal,
		m.UpstreamRequestDuration,
		m.TokenRefreshTotal,
		m.CountdownRefetchTotal,
		m.SessionStoreOpsTotal,
		m.BackendUp,
	)

	return m
}

// Handler HTTP-обработчик для scrape
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry нужен тестам для проверки значений
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP фиксирует входящий HTTP-запрос по шаблону маршрута
func (m *Metrics) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveUpstream фиксирует один запрос к бэкенду
// Безопасен для nil (метрики выключены)
func (m *Metrics) ObserveUpstream(method, endpoint, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.UpstreamRequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	m.UpstreamRequestDuration.WithLabelValues(method, endpoint).Observe(elapsed.Seconds())
}

// ObserveRefresh фиксирует результат обмена refresh-токена
func (m *Metrics) ObserveRefresh(result string) {
	if m == nil {
		return
	}
	m.TokenRefreshTotal.WithLabelValues(result).Inc()
}

// ObserveCountdownRefetch фиксирует перезапрос бронирований по истечении таймера
func (m *Metrics) ObserveCountdownRefetch(result string) {
	if m == nil {
		return
	}
	m.CountdownRefetchTotal.WithLabelValues(result).Inc()
}

// ObserveSessionStore фиксирует операцию хранилища сессий
func (m *Metrics) ObserveSessionStore(operation, result string) {
	if m == nil {
		return
	}
	m.SessionStoreOpsTotal.WithLabelValues(operation, result).Inc()
}

// SetBackendUp обновляет статус доступности бэкенда
func (m *Metrics) SetBackendUp(up bool) {
	if m == nil {
		return
	}
	if up {
		m.BackendUp.Set(1)
		return
	}
	m.BackendUp.Set(0)
}
