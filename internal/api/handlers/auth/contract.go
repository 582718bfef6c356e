package auth

import (
	"context"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	authUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/auth"
)

type AuthUseCase interface {
	Register(ctx context.Context, req *authUC.RegisterRequest) (*authUC.RegisterResponse, error)
	Verify(ctx context.Context, sess authUC.AuthSession, phone, code string) (*domain.User, error)
	ResendOTP(ctx context.Context, phone string) error
	Login(ctx context.Context, sess authUC.AuthSession, phone, password string) (*authUC.LoginResult, error)
	Logout(ctx context.Context, sess authUC.AuthSession) error
	Me(ctx context.Context, sess authUC.AuthSession) (*domain.User, error)
	UpdateProfile(ctx context.Context, sess authUC.AuthSession, req *authUC.UpdateProfileRequest) (*domain.User, error)
	UpdatePassword(ctx context.Context, oldPassword, newPassword string) error
	RequestPasswordReset(ctx context.Context, phone string) (string, error)
	ResetPassword(ctx context.Context, req *authUC.ResetPasswordRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
