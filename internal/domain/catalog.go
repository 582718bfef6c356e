package domain

import "github.com/shopspring/decimal"

// ProductType тип тестового пакета
type ProductType string

const (
	ProductTypeDaily ProductType = "daily"
	ProductTypeFull  ProductType = "full"
	ProductTypeVideo ProductType = "video"
)

// Product тестовый пакет (только чтение)
type Product struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	ProductType    ProductType     `json:"product_type"`
	Price          decimal.Decimal `json:"price"`
	HasReading     bool            `json:"has_reading"`
	HasListening   bool            `json:"has_listening"`
	HasWriting     bool            `json:"has_writing"`
	HasSpeaking    bool            `json:"has_speaking"`
	HasInvigilator bool            `json:"has_invigilator"`
}

// TestSession запланированный слот тестирования с ограниченной вместимостью
type TestSession struct {
	ID              int64   `json:"id"`
	Product         Product `json:"product"`
	SessionDate     string  `json:"session_date"`
	SessionTime     string  `json:"session_time"`
	MaxParticipants int     `json:"max_participants"`
	AvailableSlots  int     `json:"available_slots"`
	Location        string  `json:"location,omitempty"`
	LocationURL     string  `json:"location_url,omitempty"`
	// IsBooked вычисляется бэкендом для текущего пользователя; nil, если бэкенд его не прислал
	IsBooked *bool `json:"is_booked,omitempty"`
}

// IsFull returns true if the session has no free slots
func (s *TestSession) IsFull() bool {
	return s.AvailableSlots <= 0
}

// BookedByUser returns true if the backend marked the session as booked by the current user
func (s *TestSession) BookedByUser() bool {
	return s.IsBooked != nil && *s.IsBooked
}

// IsSelectable сессию можно выбрать в мастере бронирования
// Это только UI-проверка, окончательное решение принимает бэкенд при создании бронирования
func (s *TestSession) IsSelectable() bool {
	return !s.IsFull() && !s.BookedByUser()
}

// ResolveBookedFlags заполняет IsBooked там, где бэкенд его не прислал,
// по списку бронирований пользователя (не отменённых)
func ResolveBookedFlags(sessions []TestSession, bookings []Booking) {
	booked := make(map[int64]bool, len(bookings))
	for _, b := range bookings {
		if b.PaymentStatus != PaymentStatusCancelled {
			booked[b.Session.ID] = true
		}
	}

	for i := range sessions {
		if sessions[i].IsBooked != nil {
			continue
		}
		flag := booked[sessions[i].ID]
		sessions[i].IsBooked = &flag
	}
}

// NeedsBookedResolution true, если хотя бы у одной сессии нет флага is_booked
func NeedsBookedResolution(sessions []TestSession) bool {
	for i := range sessions {
		if sessions[i].IsBooked == nil {
			return true
		}
	}
	return false
}

// FilterSessionsByProduct оставляет только сессии указанного продукта
func FilterSessionsByProduct(sessions []TestSession, productID int64) []TestSession {
	filtered := make([]TestSession, 0, len(sessions))
	for _, s := range sessions {
		if s.Product.ID == productID {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
