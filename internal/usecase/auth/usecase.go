package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	"github.com/pretest-uz/PreTest-DashboardService/internal/integrations/pretestapi"
)

// UseCase регистрация, вход и профиль пользователя
type UseCase struct {
	client PretestClient
	logger Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(client PretestClient, logger Logger) *UseCase {
	return &UseCase{
		client: client,
		logger: logger,
	}
}

// Register регистрирует пользователя; бэкенд отправляет SMS с кодом подтверждения
func (uc *UseCase) Register(ctx context.Context, req *RegisterRequest) (*RegisterResponse, error) {
	normalized, err := normalizeRegistration(req)
	if err != nil {
		uc.logger.Warn("Register: validation failed: %v", err)
		return nil, err
	}

	uc.logger.Info("Register: phone=%s", normalized.PhoneNumber)

	err = uc.client.Register(ctx, pretestapi.RegisterRequest{
		FullName:             normalized.FullName,
		PhoneNumber:          normalized.PhoneNumber,
		PassportSerial:       normalized.PassportSerial,
		PassportSerialNumber: normalized.PassportNumber,
		Password:             normalized.Password,
	})
	if err != nil {
		if _, ok := pretestapi.AsAPIError(err); ok && isPhoneTaken(pretestapi.MessageOf(err)) {
			uc.logger.Warn("Register: phone=%s already registered", normalized.PhoneNumber)
			return nil, fmt.Errorf("%w: %w", ErrPhoneAlreadyRegistered, err)
		}
		return nil, uc.upstream("Register", err)
	}

	return &RegisterResponse{PhoneNumber: normalized.PhoneNumber}, nil
}

// Verify подтверждает телефон кодом из SMS и авторизует сессию
func (uc *UseCase) Verify(ctx context.Context, sess AuthSession, phone, code string) (*domain.User, error) {
	normalized, err := domain.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	code = strings.TrimSpace(code)
	if err := validateOTP(code); err != nil {
		return nil, err
	}

	resp, err := uc.client.Verify(ctx, pretestapi.VerifyRequest{PhoneNumber: normalized, VerificationCode: code})
	if err != nil {
		return nil, uc.upstream("Verify", err)
	}
	if resp.Access == "" || resp.Refresh == "" {
		uc.logger.Error("Verify: backend returned no tokens for phone=%s", normalized)
		return nil, fmt.Errorf("%w: verify response has no tokens", ErrInternal)
	}

	if err := sess.SetTokens(ctx, domain.TokenPair{Access: resp.Access, Refresh: resp.Refresh}); err != nil {
		uc.logger.Error("Verify: failed to store tokens: %v", err)
		return nil, fmt.Errorf("%w: failed to store tokens: %v", ErrInternal, err)
	}

	user := resp.User
	if user == nil {
		if user, err = uc.client.Me(ctx); err != nil {
			return nil, uc.upstream("Verify", err)
		}
	}
	if err := sess.SetUser(ctx, user); err != nil {
		uc.logger.Error("Verify: failed to store user: %v", err)
		return nil, fmt.Errorf("%w: failed to store user: %v", ErrInternal, err)
	}

	uc.logger.Info("Verify: phone=%s verified, user=%s", normalized, user.ID)
	return user, nil
}

// ResendOTP повторно отправляет код подтверждения
func (uc *UseCase) ResendOTP(ctx context.Context, phone string) error {
	normalized, err := domain.NormalizePhone(phone)
	if err != nil {
		return err
	}
	if err := uc.client.ResendOTP(ctx, normalized); err != nil {
		return uc.upstream("ResendOTP", err)
	}
	return nil
}

// Login выполняет вход, сохраняет токены и профиль в сессии
func (uc *UseCase) Login(ctx context.Context, sess AuthSession, phone, password string) (*LoginResult, error) {
	normalized, err := domain.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	if password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	pair, err := uc.client.Login(ctx, pretestapi.LoginRequest{PhoneNumber: normalized, Password: password})
	if err != nil {
		return nil, uc.loginError(normalized, err)
	}

	if err := sess.SetTokens(ctx, *pair); err != nil {
		uc.logger.Error("Login: failed to store tokens: %v", err)
		return nil, fmt.Errorf("%w: failed to store tokens: %v", ErrInternal, err)
	}

	user, err := uc.client.Me(ctx)
	if err != nil {
		return nil, uc.upstream("Login", err)
	}
	if err := sess.SetUser(ctx, user); err != nil {
		uc.logger.Error("Login: failed to store user: %v", err)
		return nil, fmt.Errorf("%w: failed to store user: %v", ErrInternal, err)
	}

	draft, err := sess.PendingBooking(ctx)
	if err != nil {
		uc.logger.Warn("Login: failed to read pending booking: %v", err)
	}

	uc.logger.Info("Login: user=%s logged in, pending booking=%t", user.ID, draft != nil)
	return &LoginResult{User: user, HasPendingBooking: draft != nil}, nil
}

// Logout сообщает бэкенду о выходе; локальная авторизация удаляется в любом случае
func (uc *UseCase) Logout(ctx context.Context, sess AuthSession) error {
	refresh, err := sess.RefreshToken(ctx)
	if err != nil {
		uc.logger.Warn("Logout: failed to read refresh token: %v", err)
	}

	if refresh != "" {
		if err := uc.client.Logout(ctx, refresh); err != nil {
			uc.logger.Warn("Logout: backend logout failed, clearing local session anyway: %v", err)
		}
	}

	if err := sess.ClearAuth(ctx); err != nil {
		uc.logger.Error("Logout: failed to clear auth: %v", err)
		return fmt.Errorf("%w: failed to clear auth: %v", ErrInternal, err)
	}
	return nil
}

// Me возвращает профиль пользователя и обновляет его копию в сессии
// При недоступном бэкенде отдаётся сохранённая копия
func (uc *UseCase) Me(ctx context.Context, sess AuthSession) (*domain.User, error) {
	user, err := uc.client.Me(ctx)
	if err != nil {
		if errors.Is(err, pretestapi.ErrNetwork) {
			cached, cacheErr := sess.User(ctx)
			if cacheErr == nil && cached != nil {
				uc.logger.Warn("Me: backend unavailable, serving cached profile: %v", err)
				return cached, nil
			}
		}
		return nil, uc.upstream("Me", err)
	}

	if err := sess.SetUser(ctx, user); err != nil {
		uc.logger.Warn("Me: failed to cache user: %v", err)
	}
	return user, nil
}

// UpdateProfile меняет ФИО и паспортные данные
func (uc *UseCase) UpdateProfile(ctx context.Context, sess AuthSession, req *UpdateProfileRequest) (*domain.User, error) {
	if req == nil || strings.TrimSpace(req.FullName) == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}
	serial, err := domain.NormalizePassportSerial(req.PassportSerial)
	if err != nil {
		return nil, err
	}
	number, err := domain.NormalizePassportNumber(req.PassportNumber)
	if err != nil {
		return nil, err
	}

	err = uc.client.UpdateProfile(ctx, pretestapi.UpdateProfileRequest{
		FullName:             strings.TrimSpace(req.FullName),
		PassportSerial:       serial,
		PassportSerialNumber: number,
	})
	if err != nil {
		return nil, uc.upstream("UpdateProfile", err)
	}

	uc.logger.Info("UpdateProfile: profile updated")
	return uc.Me(ctx, sess)
}

// UpdatePassword меняет пароль авторизованного пользователя
func (uc *UseCase) UpdatePassword(ctx context.Context, oldPassword, newPassword string) error {
	if oldPassword == "" {
		return fmt.Errorf("%w: current password is required", ErrInvalidInput)
	}
	if err := validatePassword(newPassword, minNewPasswordLength); err != nil {
		return err
	}

	err := uc.client.UpdatePassword(ctx, pretestapi.UpdatePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword})
	if err != nil {
		return uc.upstream("UpdatePassword", err)
	}
	return nil
}

// RequestPasswordReset отправляет SMS с кодом для сброса пароля
func (uc *UseCase) RequestPasswordReset(ctx context.Context, phone string) (string, error) {
	normalized, err := domain.NormalizePhone(phone)
	if err != nil {
		return "", err
	}
	if err := uc.client.ResetPasswordSMS(ctx, normalized); err != nil {
		return "", uc.upstream("RequestPasswordReset", err)
	}
	return normalized, nil
}

// ResetPassword устанавливает новый пароль по коду из SMS
func (uc *UseCase) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	if req == nil {
		return fmt.Errorf("%w: request is empty", ErrInvalidInput)
	}
	normalized, err := domain.NormalizePhone(req.PhoneNumber)
	if err != nil {
		return err
	}
	if strings.TrimSpace(req.Code) == "" {
		return fmt.Errorf("%w: verification code is required", ErrInvalidInput)
	}
	if err := validatePassword(req.NewPassword, minResetPasswordLength); err != nil {
		return err
	}

	err = uc.client.ResetPassword(ctx, pretestapi.ResetPasswordRequest{
		PhoneNumber:      normalized,
		NewPassword:      req.NewPassword,
		VerificationCode: strings.TrimSpace(req.Code),
	})
	if err != nil {
		return uc.upstream("ResetPassword", err)
	}

	uc.logger.Info("ResetPassword: password reset for phone=%s", normalized)
	return nil
}

func (uc *UseCase) loginError(phone string, err error) error {
	apiErr, ok := pretestapi.AsAPIError(err)
	if !ok {
		return uc.upstream("Login", err)
	}

	uc.logger.Warn("Login: phone=%s rejected: %v", phone, err)
	switch {
	case strings.Contains(apiErr.Message, "No active account"):
		return fmt.Errorf("%w: %w", ErrNoAccount, err)
	case apiErr.Message == "":
		return fmt.Errorf("%w: %w", ErrInvalidCredentials, err)
	default:
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}
}

// upstream переводит ошибку клиента в ошибку usecase, сохраняя исходную цепочку
func (uc *UseCase) upstream(op string, err error) error {
	switch {
	case errors.Is(err, pretestapi.ErrNetwork), errors.Is(err, pretestapi.ErrSessionExpired):
		uc.logger.Error("%s: %v", op, err)
		return fmt.Errorf("%w: %w", ErrUpstream, err)
	}

	if _, ok := pretestapi.AsAPIError(err); ok {
		uc.logger.Warn("%s: rejected by backend: %v", op, err)
		return fmt.Errorf("%w: %w", ErrRejected, err)
	}

	uc.logger.Error("%s: %v", op, err)
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
