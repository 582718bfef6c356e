package pretestapi

import (
	"context"
	"net/http"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// CreateBooking создает бронирование сессии
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.CreatedBooking, error) {
	var booking domain.CreatedBooking
	if err := c.doJSON(ctx, http.MethodPost, "/bookings/create/", req, &booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

// ListBookings возвращает бронирования пользователя (future или past)
func (c *Client) ListBookings(ctx context.Context, bookingType domain.BookingType) ([]domain.Booking, error) {
	path := "/bookings/list/"
	if bookingType != "" {
		path += "?type=" + string(bookingType)
	}

	var bookings []domain.Booking
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

// ValidatePromocode проверяет промокод для сессии, скидку не резервирует
func (c *Client) ValidatePromocode(ctx context.Context, req ValidatePromocodeRequest) (*domain.PromocodeValidation, error) {
	var validation domain.PromocodeValidation
	if err := c.doJSON(ctx, http.MethodPost, "/promocode/validate/", req, &validation); err != nil {
		return nil, err
	}
	return &validation, nil
}
