package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
)

// Стабильные коды ошибок, общие для всех обработчиков
const (
	CodeInvalidRequest = "invalid_request"
	CodeUnauthorized   = "unauthorized"
	CodeSessionExpired = "session_expired"
	CodeNetworkError   = "network_error"
	CodeUpstreamError  = "upstream_error"
	CodeNotFound       = "not_found"
	CodeRateLimited    = "rate_limited"
	CodeInternalError  = "internal_error"
)

const (
	msgSessionExpired = "сессия истекла, войдите снова"
	msgNetworkError   = "сервис PreTest недоступен, попробуйте позже"
	msgUpstreamError  = "ошибка сервиса PreTest"
	msgInternalError  = "внутренняя ошибка сервера"
)

// ErrorResponse тело ответа с ошибкой
// Code машиночитаемый ключ для локализации на клиенте, Message текст для пользователя
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Logout  bool   `json:"logout,omitempty"`
}

// RedirectResponse ответ для клиентов, которые сами выполняют переход на шлюз
type RedirectResponse struct {
	Outcome     string `json:"outcome"`
	RedirectURL string `json:"redirect_url"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError отправляет ошибку с кодом и сообщением
func RespondError(w http.ResponseWriter, status int, code, message string) {
	RespondJSON(w, status, ErrorResponse{Code: code, Message: message})
}

func RespondBadRequest(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusBadRequest, code, message)
}

func RespondNotFound(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusNotFound, code, message)
}

func RespondConflict(w http.ResponseWriter, code, message string) {
	RespondError(w, http.StatusConflict, code, message)
}

func RespondUnauthorized(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, CodeInternalError, msgInternalError)
}

// RespondUpstream отвечает на ошибку обращения к PreTest API
// Истёкшая сессия требует от клиента выйти из аккаунта (logout=true)
func RespondUpstream(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pretestapi.ErrSessionExpired):
		RespondJSON(w, http.StatusUnauthorized, ErrorResponse{
			Code:    CodeSessionExpired,
			Message: msgSessionExpired,
			Logout:  true,
		})
	case errors.Is(err, pretestapi.ErrNetwork):
		RespondError(w, http.StatusServiceUnavailable, CodeNetworkError, msgNetworkError)
	default:
		message := pretestapi.MessageOf(err)
		if message == "" {
			message = msgUpstreamError
		}
		RespondError(w, http.StatusBadGateway, CodeUpstreamError, message)
	}
}

// RejectionMessage сообщение бэкенда из цепочки ошибок или fallback
func RejectionMessage(err error, fallback string) string {
	if message := pretestapi.MessageOf(err); message != "" {
		return message
	}
	return fallback
}

// WantsJSON клиент явно просит JSON вместо HTTP-редиректа
func WantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// RespondRedirect передаёт браузер платёжному шлюзу
// Обычный браузер получает 303 See Other, JS-клиент получает ссылку в JSON
func RespondRedirect(w http.ResponseWriter, r *http.Request, outcome, url string) {
	if WantsJSON(r) {
		RespondJSON(w, http.StatusOK, RedirectResponse{Outcome: outcome, RedirectURL: url})
		return
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}

// DecodeJSON декодирует JSON из тела запроса
func DecodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// PathInt64 извлекает положительный целочисленный параметр пути
func PathInt64(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return id, nil
}
