package countdown

import (
	"errors"
	"net/http"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
	countdownUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/countdown"
)

type Handler struct {
	useCase CountdownUseCase
	logger  Logger
}

func NewHandler(useCase CountdownUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Snapshot GET /api/v1/countdowns
func (h *Handler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.useCase.Snapshot(r.Context())
	if err != nil {
		h.respondError(w, "GET /countdowns", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromSnapshot(snapshot))
}

// Stream GET /api/v1/countdowns/stream
// Каждый тик отправляет снимок как сигналы datastar; поток живёт, пока клиент подключён
// При истечении сессии последним отправляется сигнал {logout: true}
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	var sse *datastar.ServerSentEventGenerator

	err := h.useCase.Run(r.Context(), func(snapshot countdownUC.Snapshot) error {
		// SSE открывается после первого успешного запроса бронирований,
		// чтобы ошибка бэкенда вернулась обычным JSON-ответом
		if sse == nil {
			sse = datastar.NewSSE(w, r)
		}
		return sse.MarshalAndPatchSignals(FromSnapshot(&snapshot))
	})

	if err == nil {
		return
	}
	if sse == nil {
		h.respondError(w, "GET /countdowns/stream", err)
		return
	}
	if errors.Is(err, pretestapi.ErrSessionExpired) {
		// клиент по сигналу logout уходит на страницу входа
		if sendErr := sse.MarshalAndPatchSignals(LogoutSignal{Logout: true}); sendErr != nil {
			h.logger.Warn("GET /countdowns/stream - Failed to send logout signal: %v", sendErr)
		}
		h.logger.Warn("GET /countdowns/stream - Session expired, stream closed: %v", err)
		return
	}
	h.logger.Info("GET /countdowns/stream - Stream closed: %v", err)
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, countdownUC.ErrUpstream) {
		h.logger.Error("%s - Upstream error: %v", op, err)
		handlers.RespondUpstream(w, err)
		return
	}
	h.logger.Error("%s - Internal error: %v", op, err)
	handlers.RespondInternalError(w)
}
