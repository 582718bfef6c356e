package pretestapi

import (
	"context"
	"net/http"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// TestResults возвращает результаты тестов пользователя
func (c *Client) TestResults(ctx context.Context) ([]domain.TestResult, error) {
	var results []domain.TestResult
	if err := c.doJSON(ctx, http.MethodGet, "/test/result/", nil, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// DashboardStats возвращает статистику, рассчитанную бэкендом
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var stats domain.DashboardStats
	if err := c.doJSON(ctx, http.MethodGet, "/dashboard/stats/", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
