package pretestapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// ListProducts возвращает тестовые пакеты
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.doJSON(ctx, http.MethodGet, "/tests/", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// ListSessions возвращает сессии теста
// Если бэкенд проигнорировал фильтр product_id, сессии фильтруются на месте
func (c *Client) ListSessions(ctx context.Context, productID int64) ([]domain.TestSession, error) {
	path := "/sessions/"
	if productID > 0 {
		path = fmt.Sprintf("/sessions/?product_id=%d", productID)
	}

	var sessions []domain.TestSession
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &sessions); err != nil {
		return nil, err
	}

	if productID > 0 {
		sessions = domain.FilterSessionsByProduct(sessions, productID)
	}
	return sessions, nil
}
