package feedback

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/pretest-uz/PreTest-DashboardService/internal/api/handlers"
	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	feedbackUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/feedback"
)

const maxUploadSize = 10 << 20

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidRequestID    = "некорректный ID заявки"
	msgInvalidInput        = "некорректные данные заявки"
	msgFileTooLarge        = "файл слишком большой, максимум 10 МБ"
	msgOptionNotFound      = "вид фидбека не найден"
	msgSubmissionRequired  = "приложите текст, файл или выберите пройденный тест"
	msgRequestNotFound     = "заявка не найдена"
	msgAlreadyPaid         = "заявка уже оплачена"
	msgRedirectUnavailable = "платёжный шлюз не вернул ссылку на оплату"
	msgRejected            = "заявка отклонена"
)

// Коды ошибок видео-фидбека
const (
	CodeFileTooLarge        = "file_too_large"
	CodeOptionNotFound      = "option_not_found"
	CodeSubmissionRequired  = "submission_required"
	CodeRequestNotFound     = "request_not_found"
	CodeAlreadyPaid         = "already_paid"
	CodeRedirectUnavailable = "redirect_unavailable"
	CodeRejected            = "rejected"
)

type Handler struct {
	useCase FeedbackUseCase
	logger  Logger
}

func NewHandler(useCase FeedbackUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Overview GET /api/v1/feedback
func (h *Handler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.useCase.Overview(r.Context())
	if err != nil {
		h.respondError(w, "GET /feedback", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, FromOverview(overview))
}

// Submit POST /api/v1/feedback
// Принимает multipart/form-data (с файлом) или JSON
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	req, status, err := h.parseSubmit(w, r)
	if err != nil {
		h.logger.Warn("POST /feedback - Invalid request: %v", err)
		if status == http.StatusRequestEntityTooLarge {
			handlers.RespondError(w, status, CodeFileTooLarge, msgFileTooLarge)
			return
		}
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Submit(r.Context(), req)
	if err != nil {
		h.respondError(w, "POST /feedback", err)
		return
	}

	if result.Outcome == feedbackUC.OutcomeRedirect {
		h.logger.Info("POST /feedback - Redirecting to payment gateway: request_id=%d", result.Request.ID)
		handlers.RespondRedirect(w, r, string(result.Outcome), result.RedirectURL)
		return
	}

	h.logger.Warn("POST /feedback - Request created without payment redirect: request_id=%d, outcome=%s",
		result.Request.ID, result.Outcome)
	handlers.RespondJSON(w, http.StatusCreated, SubmitResponse{
		Outcome: string(result.Outcome),
		Request: result.Request,
	})
}

// PayPending POST /api/v1/feedback/{requestId}/pay
func (h *Handler) PayPending(w http.ResponseWriter, r *http.Request) {
	requestID, err := handlers.PathInt64(r, "requestId")
	if err != nil {
		h.logger.Warn("POST /feedback/{id}/pay - Invalid request ID: %v", err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidRequestID)
		return
	}

	result, err := h.useCase.PayPending(r.Context(), requestID)
	if err != nil {
		h.respondError(w, "POST /feedback/{id}/pay", err)
		return
	}

	h.logger.Info("POST /feedback/{id}/pay - Redirecting to payment gateway: request_id=%d, existing=%t",
		result.RequestID, result.IsExisting)
	handlers.RespondRedirect(w, r, string(feedbackUC.OutcomeRedirect), result.RedirectURL)
}

// parseSubmit читает заявку из multipart-формы или JSON
func (h *Handler) parseSubmit(w http.ResponseWriter, r *http.Request) (*feedbackUC.SubmitRequest, int, error) {
	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		var body SubmitRequest
		if err := handlers.DecodeJSON(r, &body); err != nil {
			return nil, http.StatusBadRequest, err
		}
		return &feedbackUC.SubmitRequest{
			OptionID:       body.OptionID,
			Writing:        body.Writing,
			RelatedBooking: body.RelatedBooking,
		}, 0, nil
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, http.StatusRequestEntityTooLarge, err
		}
		return nil, http.StatusBadRequest, err
	}

	optionID, err := strconv.ParseInt(r.FormValue("feedback_type"), 10, 64)
	if err != nil {
		return nil, http.StatusBadRequest, fmt.Errorf("invalid feedback_type: %w", err)
	}

	req := &feedbackUC.SubmitRequest{
		OptionID: optionID,
		Writing:  r.FormValue("writing"),
	}

	if raw := r.FormValue("related_booking"); raw != "" {
		bookingID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("invalid related_booking: %w", err)
		}
		req.RelatedBooking = &bookingID
	}

	file, header, err := r.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		return nil, http.StatusBadRequest, err
	default:
		defer file.Close()
		content, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
		if err != nil {
			return nil, http.StatusBadRequest, err
		}
		if len(content) > maxUploadSize {
			return nil, http.StatusRequestEntityTooLarge, fmt.Errorf("file %s exceeds %d bytes", header.Filename, maxUploadSize)
		}
		req.File = &domain.FeedbackUpload{
			Filename:    header.Filename,
			ContentType: header.Header.Get("Content-Type"),
			Content:     content,
		}
	}

	return req, 0, nil
}

func (h *Handler) respondError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, feedbackUC.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", op, err)
		handlers.RespondBadRequest(w, handlers.CodeInvalidRequest, msgInvalidInput)

	case errors.Is(err, feedbackUC.ErrSubmissionRequired):
		handlers.RespondBadRequest(w, CodeSubmissionRequired, msgSubmissionRequired)

	case errors.Is(err, feedbackUC.ErrOptionNotFound):
		h.logger.Warn("%s - Option not found: %v", op, err)
		handlers.RespondNotFound(w, CodeOptionNotFound, msgOptionNotFound)

	case errors.Is(err, feedbackUC.ErrRequestNotFound):
		h.logger.Warn("%s - Request not found: %v", op, err)
		handlers.RespondNotFound(w, CodeRequestNotFound, msgRequestNotFound)

	case errors.Is(err, feedbackUC.ErrAlreadyPaid):
		handlers.RespondConflict(w, CodeAlreadyPaid, msgAlreadyPaid)

	case errors.Is(err, feedbackUC.ErrRedirectUnavailable):
		h.logger.Warn("%s - Redirect unavailable: %v", op, err)
		handlers.RespondError(w, http.StatusBadGateway, CodeRedirectUnavailable, msgRedirectUnavailable)

	case errors.Is(err, feedbackUC.ErrRejected):
		h.logger.Warn("%s - Rejected by backend: %v", op, err)
		handlers.RespondBadRequest(w, CodeRejected, handlers.RejectionMessage(err, msgRejected))

	case errors.Is(err, feedbackUC.ErrUpstream):
		h.logger.Error("%s - Upstream error: %v", op, err)
		handlers.RespondUpstream(w, err)

	default:
		h.logger.Error("%s - Internal error: %v", op, err)
		handlers.RespondInternalError(w)
	}
}
