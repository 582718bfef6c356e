package dashboard

import (
	"errors"
	"net/http"

	"github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers"
	dashboardUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/dashboard"
)

type Handler struct {
	useCase DashboardUseCase
	logger  Logger
}

func NewHandler(useCase DashboardUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/dashboard
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		if errors.Is(err, dashboardUC.ErrUpstream) {
			h.logger.Warn("GET /dashboard - Upstream error: %v", err)
			handlers.RespondUpstream(w, err)
			return
		}
		h.logger.Error("GET /dashboard - Failed to build dashboard: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
