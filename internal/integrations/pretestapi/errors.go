package pretestapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetwork ответ от бэкенда не получен (обрыв соединения, таймаут)
	ErrNetwork = errors.New("pretestapi client: network error")

	// ErrSessionExpired обновить access-токен не удалось, данные авторизации удалены
	ErrSessionExpired = errors.New("pretestapi client: session expired")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("pretestapi client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от бэкенда
	ErrInvalidResponse = errors.New("pretestapi client: invalid response")
)

// APIError ответ бэкенда со статусом не 2xx
type APIError struct {
	Status  int
	Body    []byte
	Message string // извлечённое из тела сообщение, может быть пустым
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("pretestapi client: status %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("pretestapi client: status %d", e.Status)
}

// AsAPIError извлекает *APIError из цепочки ошибок
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// MessageOf возвращает сообщение бэкенда из ошибки или пустую строку
func MessageOf(err error) string {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.Message
	}
	return ""
}

// extractMessage достаёт человекочитаемое сообщение из тела ошибки DRF
// Порядок полей: session_id[0], non_field_errors[0], code[0], detail, message, error.message
func extractMessage(body []byte) string {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}

	for _, field := range []string{"session_id", "non_field_errors", "code"} {
		if msg := firstString(payload[field]); msg != "" {
			return msg
		}
	}

	for _, field := range []string{"detail", "message"} {
		if msg := plainString(payload[field]); msg != "" {
			return msg
		}
	}

	if raw, ok := payload["error"]; ok {
		var nested struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(raw, &nested); err == nil && nested.Message != "" {
			return nested.Message
		}
		return plainString(raw)
	}

	return ""
}

// firstString первая строка из списка ошибок поля (или сама строка)
func firstString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		if len(list) > 0 {
			return strings.TrimSpace(list[0])
		}
		return ""
	}
	return plainString(raw)
}

func plainString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func isSessionExpired(err error) bool {
	return errors.Is(err, ErrSessionExpired)
}
