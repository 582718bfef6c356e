package auth

import (
	"time"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	authUC "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/auth"
)

// RegisterRequest HTTP request model
type RegisterRequest struct {
	FullName       string `json:"full_name"`
	PhoneNumber    string `json:"phone_number"`
	PassportSerial string `json:"passport_serial"`
	PassportNumber string `json:"passport_serial_number"`
	Password       string `json:"password"`
}

// VerifyRequest HTTP request model
type VerifyRequest struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

// PhoneRequest HTTP request model
type PhoneRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// LoginRequest HTTP request model
type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// UpdateProfileRequest HTTP request model
type UpdateProfileRequest struct {
	FullName       string `json:"full_name"`
	PassportSerial string `json:"passport_serial"`
	PassportNumber string `json:"passport_serial_number"`
}

// UpdatePasswordRequest HTTP request model
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ResetPasswordRequest HTTP request model
type ResetPasswordRequest struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// PhoneResponse нормализованный телефон для следующего шага
type PhoneResponse struct {
	PhoneNumber string `json:"phone_number"`
}

// UserResponse профиль пользователя
type UserResponse struct {
	ID                   string     `json:"id"`
	FullName             string     `json:"full_name"`
	PhoneNumber          string     `json:"phone_number"`
	PassportSerial       string     `json:"passport_serial"`
	PassportSerialNumber string     `json:"passport_serial_number"`
	IsVerified           *bool      `json:"is_verified,omitempty"`
	CreatedAt            *time.Time `json:"created_at,omitempty"`
}

// LoginResponse профиль и признак черновика бронирования, который мастер продолжит после входа
type LoginResponse struct {
	User              UserResponse `json:"user"`
	HasPendingBooking bool         `json:"has_pending_booking"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RegisterRequest) ToUseCaseRequest() *authUC.RegisterRequest {
	return &authUC.RegisterRequest{
		FullName:       r.FullName,
		PhoneNumber:    r.PhoneNumber,
		PassportSerial: r.PassportSerial,
		PassportNumber: r.PassportNumber,
		Password:       r.Password,
	}
}

// FromUser конвертирует профиль в HTTP response
func FromUser(u *domain.User) UserResponse {
	return UserResponse{
		ID:                   u.ID,
		FullName:             u.FullName,
		PhoneNumber:          u.PhoneNumber,
		PassportSerial:       u.PassportSerial,
		PassportSerialNumber: u.PassportSerialNumber,
		IsVerified:           u.IsVerified,
		CreatedAt:            u.CreatedAt,
	}
}
