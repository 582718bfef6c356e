package auth

import (
	"context"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
)

// PretestClient интерфейс клиента PreTest API (эндпоинты авторизации и профиля)
type PretestClient interface {
	Register(ctx context.Context, req pretestapi.RegisterRequest) error
	Verify(ctx context.Context, req pretestapi.VerifyRequest) (*pretestapi.VerifyResponse, error)
	ResendOTP(ctx context.Context, phone string) error
	Login(ctx context.Context, req pretestapi.LoginRequest) (*domain.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Me(ctx context.Context) (*domain.User, error)
	UpdateProfile(ctx context.Context, req pretestapi.UpdateProfileRequest) error
	UpdatePassword(ctx context.Context, req pretestapi.UpdatePasswordRequest) error
	ResetPasswordSMS(ctx context.Context, phone string) error
	ResetPassword(ctx context.Context, req pretestapi.ResetPasswordRequest) error
}

// AuthSession токены, профиль и черновик бронирования в сессии пользователя
type AuthSession interface {
	RefreshToken(ctx context.Context) (string, error)
	SetTokens(ctx context.Context, pair domain.TokenPair) error
	ClearAuth(ctx context.Context) error
	User(ctx context.Context) (*domain.User, error)
	SetUser(ctx context.Context, user *domain.User) error
	PendingBooking(ctx context.Context) (*domain.PendingBooking, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
