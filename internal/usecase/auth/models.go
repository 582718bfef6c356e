package auth

import "github.com/pretest-uz/PreTest-DashboardService/internal/domain"

// RegisterRequest данные формы регистрации, телефон и паспорт в свободном формате
type RegisterRequest struct {
	FullName       string
	PhoneNumber    string
	PassportSerial string
	PassportNumber string
	Password       string
}

// RegisterResponse нормализованный телефон для шага верификации
type RegisterResponse struct {
	PhoneNumber string
}

// LoginResult профиль и признак ожидающего черновика бронирования
type LoginResult struct {
	User              *domain.User
	HasPendingBooking bool
}

// UpdateProfileRequest изменение ФИО и паспортных данных
type UpdateProfileRequest struct {
	FullName       string
	PassportSerial string
	PassportNumber string
}

// ResetPasswordRequest новый пароль по коду из SMS
type ResetPasswordRequest struct {
	PhoneNumber string
	Code        string
	NewPassword string
}
