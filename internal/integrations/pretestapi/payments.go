package pretestapi

import (
	"context"
	"net/http"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// CreatePayment создает платёж
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	var payment domain.Payment
	if err := c.doJSON(ctx, http.MethodPost, "/payments/create/", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetOrCreatePayment возвращает существующий незавершённый платёж или создает новый
func (c *Client) GetOrCreatePayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	var payment domain.Payment
	if err := c.doJSON(ctx, http.MethodPost, "/payments/get-or-create/", req, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetPaymentURL возвращает ссылку на оплату существующего платежа
func (c *Client) GetPaymentURL(ctx context.Context, paymentID string) (*domain.PaymentURL, error) {
	var url domain.PaymentURL
	if err := c.doJSON(ctx, http.MethodPost, "/payments/url/", map[string]string{"payment_id": paymentID}, &url); err != nil {
		return nil, err
	}
	return &url, nil
}

// PaymentHistory возвращает историю платежей пользователя
func (c *Client) PaymentHistory(ctx context.Context) ([]domain.PaymentHistoryItem, error) {
	var items []domain.PaymentHistoryItem
	if err := c.doJSON(ctx, http.MethodGet, "/payments/history/", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
