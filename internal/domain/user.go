package domain

import "time"

// User профиль пользователя, кэшируется в сессии под ключом user
type User struct {
	ID                   string     `json:"id"`
	FullName             string     `json:"full_name"`
	PhoneNumber          string     `json:"phone_number"`
	PassportSerial       string     `json:"passport_serial"`
	PassportSerialNumber string     `json:"passport_serial_number"`
	IsVerified           *bool      `json:"is_verified,omitempty"`
	CreatedAt            *time.Time `json:"created_at,omitempty"`
}

// TokenPair пара JWT, выдаваемая при логине и верификации
type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}
