package main

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	authHandler "github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers/auth"
	catalogHandler "github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers/catalog"
	countdownHandler "github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers/countdown"
	dashboardHandler "github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers/dashboard"
	feedbackHandler "github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers/feedback"
	healthHandler "github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers/health"
	wizardHandler "github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers/wizard"
	"github.com/pretest-uz/PreTest-DashboardService/internal/api/middleware"
	"github.com/pretest-uz/PreTest-DashboardService/internal/config"
	"github.com/pretest-uz/PreTest-DashboardService/internal/infra/health"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
	"github.com/pretest-uz/PreTest-DashboardService/internal/service/session"
	authUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/auth"
	bookingWizardUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/booking_wizard"
	countdownUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/countdown"
	dashboardUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/dashboard"
	feedbackUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/feedback"
	"github.com/pretest-uz/PreTest-DashboardService/pkg/logger"
	"github.com/pretest-uz/PreTest-DashboardService/pkg/metrics"
)

const rateLimitCleanupInterval = 5 * time.Minute

func main() {
	configPath := "config.toml"
	if v := os.Getenv("PRETEST_CONFIG"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting PreTest-DashboardService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Фоновые задачи останавливаются вместе с сервером
	bgCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()

	// Хранилище клиентского состояния сессий
	store, closeStore, err := openSessionStore(bgCtx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open session store: %v", err)
	}
	defer closeStore()

	sessionTTL := time.Duration(cfg.Session.TTLHours) * time.Hour
	sessionSvc := session.NewService(store, metricsCollector, log, sessionTTL)
	go sessionSvc.RunJanitor(bgCtx, time.Duration(cfg.Session.JanitorInterval)*time.Minute)

	// Клиент PreTest API
	client := pretestapi.NewClient(
		cfg.Backend.BaseURL,
		time.Duration(cfg.Backend.Timeout)*time.Second,
		log,
		metricsCollector,
	)
	log.Info("PreTest API client initialized (url=%s, timeout=%ds)", cfg.Backend.BaseURL, cfg.Backend.Timeout)

	monitor := health.NewMonitor(
		client,
		metricsCollector,
		log,
		time.Duration(cfg.Backend.HealthCheckInterval)*time.Second,
		time.Duration(cfg.Backend.HealthCheckTimeout)*time.Second,
	)
	go monitor.Run(bgCtx)

	// Инициализируем use cases
	wizardUseCase := bookingWizardUC.NewUseCase(client, log)
	countdownUseCase := countdownUC.NewUseCase(
		client,
		metricsCollector,
		log,
		time.Duration(cfg.Countdown.TickMillis)*time.Millisecond,
		time.Duration(cfg.Countdown.ResyncInterval)*time.Second,
	)
	dashboardUseCase := dashboardUC.NewUseCase(client, log)
	authUseCase := authUC.NewUseCase(client, log)
	feedbackUseCase := feedbackUC.NewUseCase(client, log)

	// Инициализируем handlers
	wizard := wizardHandler.NewHandler(wizardUseCase, log)
	countdowns := countdownHandler.NewHandler(countdownUseCase, log)
	dashboard := dashboardHandler.NewHandler(dashboardUseCase, log)
	auth := authHandler.NewHandler(authUseCase, log)
	feedback := feedbackHandler.NewHandler(feedbackUseCase, log)
	catalog := catalogHandler.NewHandler(client, log)
	healthCheck := healthHandler.NewHandler(monitor)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, metricsCollector.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", healthCheck.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	if cfg.RateLimit.Enabled {
		limiter, err := middleware.NewRateLimiter(
			cfg.RateLimit.RequestsPerMinute,
			cfg.RateLimit.Burst,
			cfg.RateLimit.TrustedProxies,
			log,
		)
		if err != nil {
			log.Fatal("Failed to configure rate limit: %v", err)
		}
		api.Use(limiter.Middleware)
		go limiter.RunCleanup(bgCtx, rateLimitCleanupInterval)
		log.Info("Rate limit enabled (%d req/min, burst=%d, trusted proxies=%v)",
			cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, cfg.RateLimit.TrustedProxies)
	}

	api.Use(middleware.Session(sessionSvc, middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.CookieSecure,
		TTL:        sessionTTL,
	}, log))

	// ============================================================
	// PUBLIC ROUTES (без авторизации, но с браузерной сессией)
	// ============================================================

	// Каталог для лендинга
	api.HandleFunc("/products", catalog.Products).Methods(http.MethodGet)
	api.HandleFunc("/products/{productId}/sessions", catalog.Sessions).Methods(http.MethodGet)

	// Черновик бронирования до входа
	api.HandleFunc("/pending-booking", wizard.SaveDraft).Methods(http.MethodPut)

	// --- Авторизация ---
	api.HandleFunc("/auth/register", auth.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", auth.Verify).Methods(http.MethodPost)
	api.HandleFunc("/auth/resend-otp", auth.ResendOTP).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", auth.Login).Methods(http.MethodPost)
	api.HandleFunc("/auth/logout", auth.Logout).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset", auth.RequestPasswordReset).Methods(http.MethodPost)
	api.HandleFunc("/auth/password-reset/confirm", auth.ResetPassword).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют access-токен в сессии)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.RequireAuth(log))

	// --- Профиль ---
	protected.HandleFunc("/profile", auth.Me).Methods(http.MethodGet)
	protected.HandleFunc("/profile", auth.UpdateProfile).Methods(http.MethodPut)
	protected.HandleFunc("/profile/password", auth.UpdatePassword).Methods(http.MethodPut)

	// --- Дашборд и таймеры оплаты ---
	protected.HandleFunc("/dashboard", dashboard.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/countdowns", countdowns.Snapshot).Methods(http.MethodGet)
	protected.HandleFunc("/countdowns/stream", countdowns.Stream).Methods(http.MethodGet)

	// --- Мастер бронирования ---
	protected.HandleFunc("/wizard", wizard.Open).Methods(http.MethodGet)
	protected.HandleFunc("/wizard", wizard.Close).Methods(http.MethodDelete)
	protected.HandleFunc("/wizard/test", wizard.SelectTest).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/session", wizard.SelectSession).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/continue", wizard.Continue).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/back", wizard.Back).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/promocode", wizard.ApplyPromocode).Methods(http.MethodPost)
	protected.HandleFunc("/wizard/promocode", wizard.ClearPromocode).Methods(http.MethodDelete)
	protected.HandleFunc("/wizard/submit", wizard.Submit).Methods(http.MethodPost)

	// Оплата ранее созданного бронирования
	protected.HandleFunc("/bookings/{bookingId}/pay", wizard.PayPending).Methods(http.MethodPost)

	// --- Видео-фидбек ---
	protected.HandleFunc("/feedback", feedback.Overview).Methods(http.MethodGet)
	protected.HandleFunc("/feedback", feedback.Submit).Methods(http.MethodPost)
	protected.HandleFunc("/feedback/{requestId}/pay", feedback.PayPending).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		// контексты запросов наследуют bgCtx, чтобы SSE-потоки закрывались при остановке
		BaseContext: func(net.Listener) context.Context { return bgCtx },
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	stopBackground()

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
