package auth

import (
	"fmt"
	"strings"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
)

const (
	otpLength              = 6
	minResetPasswordLength = 6
	minNewPasswordLength   = 8
)

func validateOTP(code string) error {
	if len(code) != otpLength {
		return fmt.Errorf("%w: verification code must have %d digits", ErrInvalidInput, otpLength)
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: verification code must contain only digits", ErrInvalidInput)
		}
	}
	return nil
}

func validatePassword(password string, minLength int) error {
	if password == "" {
		return fmt.Errorf("%w: password is required", ErrInvalidInput)
	}
	if len(password) < minLength {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minLength)
	}
	return nil
}

// normalizeRegistration проверяет форму регистрации и приводит поля к формату бэкенда
func normalizeRegistration(req *RegisterRequest) (*RegisterRequest, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: request is empty", ErrInvalidInput)
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		return nil, fmt.Errorf("%w: full name is required", ErrInvalidInput)
	}

	phone, err := domain.NormalizePhone(req.PhoneNumber)
	if err != nil {
		return nil, err
	}
	serial, err := domain.NormalizePassportSerial(req.PassportSerial)
	if err != nil {
		return nil, err
	}
	number, err := domain.NormalizePassportNumber(req.PassportNumber)
	if err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	return &RegisterRequest{
		FullName:       fullName,
		PhoneNumber:    phone,
		PassportSerial: serial,
		PassportNumber: number,
		Password:       req.Password,
	}, nil
}

// isPhoneTaken сообщение бэкенда о том, что телефон уже зарегистрирован
func isPhoneTaken(message string) bool {
	lower := strings.ToLower(message)
	if !strings.Contains(lower, "phone") {
		return false
	}
	return strings.Contains(lower, "already") || strings.Contains(lower, "exist") || strings.Contains(lower, "registered")
}
