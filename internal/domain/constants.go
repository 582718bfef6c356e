package domain

import "time"

// Форматы даты и времени PreTest API
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
	TimeFormat = "15:04:05"   // HH:MM:SS
)

// Таймауты взаимодействия с бэкендом
const (
	DefaultRequestTimeout     = 30 * time.Second
	DefaultHealthCheckTimeout = 5 * time.Second
	DefaultHealthCheckPeriod  = 30 * time.Second
	CountdownTick             = time.Second
)

// Ключи клиентского состояния в SessionStore
// Совпадают с ключами localStorage исходного SPA
const (
	KeyAccessToken    = "accessToken"
	KeyRefreshToken   = "refreshToken"
	KeyUser           = "user"
	KeyPendingBooking = "pendingBooking"
	KeyBookingWizard  = "bookingWizard"
)

// AuthKeys ключи, удаляемые при выходе или неудачном обновлении токена
var AuthKeys = []string{KeyAccessToken, KeyRefreshToken, KeyUser}
