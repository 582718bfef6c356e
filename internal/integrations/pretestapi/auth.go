package pretestapi

import (
	"context"
	"net/http"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// Register регистрирует пользователя, бэкенд отправляет SMS с кодом
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/register/", req, nil)
}

// Verify подтверждает номер телефона и возвращает токены
func (c *Client) Verify(ctx context.Context, req VerifyRequest) (*VerifyResponse, error) {
	var resp VerifyResponse
	if err := c.doJSON(ctx, http.MethodPost, "/verify/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResendOTP повторно отправляет код подтверждения
func (c *Client) ResendOTP(ctx context.Context, phone string) error {
	return c.doJSON(ctx, http.MethodPost, "/resend-sms/", map[string]string{"phone_number": phone}, nil)
}

// Login выполняет вход и возвращает пару токенов
func (c *Client) Login(ctx context.Context, req LoginRequest) (*domain.TokenPair, error) {
	var pair domain.TokenPair
	if err := c.doJSON(ctx, http.MethodPost, "/login/", req, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Logout сообщает бэкенду о выходе
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	var payload interface{}
	if refreshToken != "" {
		payload = map[string]string{"refresh": refreshToken}
	}
	return c.doJSON(ctx, http.MethodPost, "/logout/", payload, nil)
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.doJSON(ctx, http.MethodGet, "/me/", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile обновляет профиль: сначала PATCH, при ошибке PUT
func (c *Client) UpdateProfile(ctx context.Context, req UpdateProfileRequest) error {
	return c.patchOrPut(ctx, "/user/update/", req)
}

// UpdatePassword меняет пароль: сначала PATCH, при ошибке PUT
func (c *Client) UpdatePassword(ctx context.Context, req UpdatePasswordRequest) error {
	return c.patchOrPut(ctx, "/user/password-update/", req)
}

// ResetPasswordSMS отправляет код для сброса пароля
func (c *Client) ResetPasswordSMS(ctx context.Context, phone string) error {
	return c.doJSON(ctx, http.MethodPost, "/reset-password-sms/", map[string]string{"phone_number": phone}, nil)
}

// ResetPassword устанавливает новый пароль по коду из SMS
func (c *Client) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	return c.doJSON(ctx, http.MethodPost, "/forget-password/", req, nil)
}

func (c *Client) patchOrPut(ctx context.Context, path string, payload interface{}) error {
	err := c.doJSON(ctx, http.MethodPatch, path, payload, nil)
	if err == nil {
		return nil
	}
	if IsNetworkError(err) || isSessionExpired(err) {
		return err
	}

	c.log.Info("PreTest API PATCH %s failed, retrying with PUT: %v", path, err)
	return c.doJSON(ctx, http.MethodPut, path, payload, nil)
}
