package pretestapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	contentTypeJSON = "application/json"
	maxResponseSize = 10 << 20

	refreshPath = "/token/refresh/"
)

// Client клиент для работы с PreTest API
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
	metrics    Metrics
	now        func() time.Time
}

// NewClient создает новый экземпляр клиента PreTest API
func NewClient(baseURL string, timeout time.Duration, log Logger, metrics Metrics) *Client {
	if metrics == nil {
		metrics = noopMetrics{}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log:     log,
		metrics: metrics,
		now:     time.Now,
	}
}

// request подготовленный запрос; тело хранится целиком, чтобы его можно было повторить
type request struct {
	method      string
	path        string
	body        []byte
	contentType string
}

func newJSONRequest(method, path string, payload interface{}) (*request, error) {
	r := &request{method: method, path: path}
	if payload == nil {
		return r, nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}
	r.body = body
	r.contentType = contentTypeJSON
	return r, nil
}

// doJSON выполняет JSON-запрос и декодирует ответ в out (если out != nil)
func (c *Client) doJSON(ctx context.Context, method, path string, payload, out interface{}) error {
	req, err := newJSONRequest(method, path, payload)
	if err != nil {
		return err
	}
	return c.send(ctx, req, out)
}

// send выполняет запрос с токеном сессии из контекста
// На 401 один раз обменивает refresh-токен и повторяет исходный запрос с новым access-токеном
// Запрос без access-токена (логин гостя) не обновляется: 401 возвращается как есть
func (c *Client) send(ctx context.Context, req *request, out interface{}) error {
	store := tokensFrom(ctx)

	token, err := c.accessToken(ctx, store)
	if err != nil {
		return err
	}

	status, body, err := c.execute(ctx, req, token)
	if err != nil {
		return err
	}

	if status == http.StatusUnauthorized && store != nil && token != "" {
		newToken, err := c.refresh(ctx, store, token)
		if err != nil {
			return err
		}

		status, body, err = c.execute(ctx, req, newToken)
		if err != nil {
			return err
		}
	}

	if status < 200 || status >= 300 {
		return &APIError{Status: status, Body: body, Message: extractMessage(body)}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: failed to decode response from %s: %v", ErrInvalidResponse, req.path, err)
	}
	return nil
}

func (c *Client) accessToken(ctx context.Context, store TokenStore) (string, error) {
	if store == nil {
		return "", nil
	}

	token, err := store.AccessToken(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read access token: %v", ErrInternal, err)
	}
	return token, nil
}

// execute один HTTP-вызов без логики повторов
func (c *Client) execute(ctx context.Context, req *request, token string) (int, []byte, error) {
	var body io.Reader
	if req.body != nil {
		body = bytes.NewReader(req.body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.method, c.baseURL+req.path, body)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	httpReq.Header.Set("Accept", contentTypeJSON)
	if req.contentType != "" {
		httpReq.Header.Set("Content-Type", req.contentType)
	}
	if token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+token)
	}

	endpoint := endpointLabel(req.path)
	started := c.now()

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.metrics.ObserveUpstream(req.method, endpoint, "error", c.now().Sub(started))
		c.log.Warn("PreTest API %s %s: no response: %v", req.method, endpoint, err)
		return 0, nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, req.method, endpoint, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	c.metrics.ObserveUpstream(req.method, endpoint, strconv.Itoa(resp.StatusCode), c.now().Sub(started))
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %s %s: failed to read body: %v", ErrNetwork, req.method, endpoint, err)
	}

	return resp.StatusCode, respBody, nil
}

// refresh обменивает refresh-токен на новый access-токен
// Любая неудача удаляет данные авторизации сессии и возвращает ErrSessionExpired
func (c *Client) refresh(ctx context.Context, store TokenStore, staleToken string) (string, error) {
	// Пока запрос был в полёте, токен мог обновить параллельный запрос той же сессии
	current, err := c.accessToken(ctx, store)
	if err != nil {
		return "", err
	}
	if current != "" && current != staleToken {
		return current, nil
	}

	refreshToken, err := store.RefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read refresh token: %v", ErrInternal, err)
	}

	if refreshToken == "" {
		return "", c.expireSession(ctx, store, "refresh token is missing")
	}
	if c.isExpired(refreshToken) {
		return "", c.expireSession(ctx, store, "refresh token is expired")
	}

	req, err := newJSONRequest(http.MethodPost, refreshPath, map[string]string{"refresh": refreshToken})
	if err != nil {
		return "", err
	}

	status, body, err := c.execute(ctx, req, "")
	if err != nil {
		return "", c.expireSession(ctx, store, err.Error())
	}
	if status < 200 || status >= 300 {
		return "", c.expireSession(ctx, store, fmt.Sprintf("refresh rejected with status %d", status))
	}

	var pair struct {
		Access string `json:"access"`
	}
	if err := json.Unmarshal(body, &pair); err != nil || pair.Access == "" {
		return "", c.expireSession(ctx, store, "refresh response has no access token")
	}

	if err := store.SetAccessToken(ctx, pair.Access); err != nil {
		return "", fmt.Errorf("%w: failed to store access token: %v", ErrInternal, err)
	}

	c.metrics.ObserveRefresh("success")
	c.log.Info("PreTest API: access token refreshed")
	return pair.Access, nil
}

func (c *Client) expireSession(ctx context.Context, store TokenStore, reason string) error {
	c.metrics.ObserveRefresh("failure")
	c.log.Warn("PreTest API: token refresh failed, clearing auth: %s", reason)

	if err := store.ClearAuth(ctx); err != nil {
		c.log.Error("PreTest API: failed to clear auth state: %v", err)
	}
	return fmt.Errorf("%w: %s", ErrSessionExpired, reason)
}

// isExpired проверяет exp refresh-токена без проверки подписи
// Токены не в формате JWT считаются действующими, решение остаётся за бэкендом
func (c *Client) isExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.Time.After(c.now())
}

// endpointLabel путь без query-параметров для меток метрик и логов
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		return path[:i]
	}
	return path
}

// IsNetworkError true, если бэкенд не ответил
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

type noopMetrics struct{}

func (noopMetrics) ObserveUpstream(string, string, string, time.Duration) {}
func (noopMetrics) ObserveRefresh(string) {}
