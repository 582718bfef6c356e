package pretestapi

import (
	"github.com/shopspring/decimal"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

// RegisterRequest регистрация нового пользователя
type RegisterRequest struct {
	FullName             string `json:"full_name"`
	PhoneNumber          string `json:"phone_number"`
	PassportSerial       string `json:"passport_serial"`
	PassportSerialNumber string `json:"passport_serial_number"`
	Password             string `json:"password"`
}

// VerifyRequest подтверждение номера кодом из SMS
type VerifyRequest struct {
	PhoneNumber      string `json:"phone_number"`
	VerificationCode string `json:"verification_code"`
}

// VerifyResponse ответ верификации: токены и профиль
type VerifyResponse struct {
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
	User    *domain.User `json:"user"`
}

// LoginRequest вход по телефону и паролю
type LoginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// UpdateProfileRequest обновление профиля
type UpdateProfileRequest struct {
	FullName             string `json:"full_name"`
	PassportSerial       string `json:"passport_serial"`
	PassportSerialNumber string `json:"passport_serial_number"`
}

// UpdatePasswordRequest смена пароля
type UpdatePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ResetPasswordRequest сброс пароля по коду из SMS
type ResetPasswordRequest struct {
	PhoneNumber      string `json:"phone_number"`
	NewPassword      string `json:"new_password"`
	VerificationCode string `json:"verification_code"`
}

// ValidatePromocodeRequest проверка промокода для сессии
type ValidatePromocodeRequest struct {
	Code      string `json:"code"`
	SessionID int64  `json:"session_id"`
}

// CreateBookingRequest создание бронирования
type CreateBookingRequest struct {
	SessionID     int64                `json:"session_id"`
	PaymentMethod domain.PaymentMethod `json:"payment_method"`
	PromoCodeStr  string               `json:"promo_code_str,omitempty"`
}

// CreatePaymentRequest создание платежа по бронированию или заявке на фидбек
type CreatePaymentRequest struct {
	BookingID         *int64               `json:"booking_id,omitempty"`
	FeedbackRequestID *int64               `json:"feedback_request_id,omitempty"`
	Amount            *decimal.Decimal     `json:"amount,omitempty"`
	PaymentMethod     domain.PaymentMethod `json:"payment_method"`
	PromoCodeStr      string               `json:"promo_code_str,omitempty"`
}

// CreateFeedbackRequest заявка на видео-фидбек
// Если File != nil, заявка отправляется как multipart/form-data
type CreateFeedbackRequest struct {
	FeedbackType   int64                  `json:"feedback_type"`
	RelatedBooking *int64                 `json:"related_booking,omitempty"`
	Writing        string                 `json:"writing,omitempty"`
	File           *domain.FeedbackUpload `json:"-"`
}
