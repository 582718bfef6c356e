package health

import (
	"net/http"
	"time"

	"github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers"
	healthInfra "github.com/pretest-uz/PreTest-DashboardService/internal/infra/health"
)

// StatusProvider последний снимок доступности бэкенда
type StatusProvider interface {
	Status() healthInfra.Status
}

// Response ответ /health
// Сервис отвечает 200 даже при недоступном бэкенде: страницы отдаются, API-вызовы деградируют
type Response struct {
	Status    string     `json:"status"`
	BackendUp bool       `json:"backend_up"`
	CheckedAt *time.Time `json:"checked_at,omitempty"`
}

type Handler struct {
	monitor StatusProvider
}

func NewHandler(monitor StatusProvider) *Handler {
	return &Handler{monitor: monitor}
}

// Handle GET /health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	status := h.monitor.Status()

	resp := Response{Status: "ok", BackendUp: status.BackendUp}
	if !status.BackendUp {
		resp.Status = "degraded"
	}
	if !status.CheckedAt.IsZero() {
		checkedAt := status.CheckedAt
		resp.CheckedAt = &checkedAt
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
