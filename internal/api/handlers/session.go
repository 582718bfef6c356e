package handlers

import (
	"net/http"

	"github.com/pretest-uz/PreTest-DashboardService/internal/service/session"
)

const msgNoSession = "сессия браузера не найдена"

// CurrentSession сессия браузера из контекста запроса; без неё отвечает 401
func CurrentSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		RespondUnauthorized(w, msgNoSession)
		return nil, false
	}
	return sess, true
}
