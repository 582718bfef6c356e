package middleware

import (
	"net/http"
	"time"

	"github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
	"github.com/pretest-uz/PreTest-DashboardService/internal/service/session"
)

const (
	msgUnauthorized = "требуется авторизация"
	msgNoSession    = "сессия браузера не найдена"
)

// SessionOptions параметры cookie браузерной сессии
type SessionOptions struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// Session привязывает запрос к браузерной сессии по cookie
// Новая сессия создаётся, если cookie нет или она не похожа на выданную сервисом
// Токены сессии становятся доступны клиенту PreTest API через контекст
func Session(svc *session.Service, opts SessionOptions, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(opts.CookieName); err == nil && session.IsValidID(cookie.Value) {
				sessionID = cookie.Value
			}

			if sessionID == "" {
				sessionID = session.NewID()
				logger.Info("Session: new browser session started: path=%s", r.URL.Path)
			} else if err := svc.Touch(r.Context(), sessionID); err != nil {
				// запрос обслуживается и без отметки активности
				logger.Warn("Session: failed to mark session active: %v", err)
			}

			// cookie продлевается на каждом запросе, last-seen в хранилище обновляет svc.Touch с ограничением частоты
			http.SetCookie(w, &http.Cookie{
				Name:     opts.CookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(opts.TTL.Seconds()),
				HttpOnly: true,
				Secure:   opts.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			sess := svc.Bind(sessionID)
			ctx := session.WithSession(r.Context(), sess)
			ctx = pretestapi.WithTokens(ctx, sess)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth пропускает только запросы с access-токеном в сессии
func RequireAuth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess, ok := session.FromContext(r.Context())
			if !ok {
				logger.Error("RequireAuth: session middleware is not installed: path=%s", r.URL.Path)
				handlers.RespondUnauthorized(w, msgNoSession)
				return
			}

			authenticated, err := sess.IsAuthenticated(r.Context())
			if err != nil {
				logger.Error("RequireAuth: failed to read session: %v", err)
				handlers.RespondInternalError(w)
				return
			}
			if !authenticated {
				logger.Warn("RequireAuth: unauthenticated request: %s %s", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
