package pretestapi

import (
	"context"
	"net/http"
	"time"
)

// Ping проверяет доступность бэкенда запросом GET /tests/
// Никогда не возвращает ошибку: недоступность бэкенда ожидаема и не логируется
func (c *Client) Ping(ctx context.Context, timeout time.Duration) bool {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/tests/", nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
