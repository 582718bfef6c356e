package wizard

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/pretest-uz/PreTest-DashboardService/internal/domain"
	bookingWizard "github.com/pretest-uz/PreTest-DashboardService/internal/usecase/booking_wizard"
)

// SelectTestRequest HTTP request model
type SelectTestRequest struct {
	ProductID int64 `json:"product_id"`
}

// SelectSessionRequest HTTP request model
type SelectSessionRequest struct {
	SessionID int64 `json:"session_id"`
}

// PromocodeRequest HTTP request model
type PromocodeRequest struct {
	Code string `json:"code"`
}

// SubmitRequest HTTP request model
type SubmitRequest struct {
	PaymentMethod string `json:"payment_method"`
}

// DraftRequest HTTP request model
type DraftRequest struct {
	ProductID int64 `json:"product_id"`
	SessionID int64 `json:"session_id,omitempty"`
}

// ProductResponse тест в каталоге
type ProductResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	ProductType    string `json:"product_type"`
	Price          string `json:"price"`
	HasReading     bool   `json:"has_reading"`
	HasListening   bool   `json:"has_listening"`
	HasWriting     bool   `json:"has_writing"`
	HasSpeaking    bool   `json:"has_speaking"`
	HasInvigilator bool   `json:"has_invigilator"`
}

// SessionResponse сессия в списке выбора
type SessionResponse struct {
	ID              int64  `json:"id"`
	SessionDate     string `json:"session_date"`
	SessionTime     string `json:"session_time"`
	MaxParticipants int    `json:"max_participants"`
	AvailableSlots  int    `json:"available_slots"`
	Location        string `json:"location,omitempty"`
	LocationURL     string `json:"location_url,omitempty"`
	IsBooked        bool   `json:"is_booked"`
	Selectable      bool   `json:"selectable"`
	DisabledReason  string `json:"disabled_reason,omitempty"`
}

// PromoResponse применённый промокод
type PromoResponse struct {
	Code           string `json:"code"`
	DiscountType   string `json:"discount_type"`
	DiscountValue  string `json:"discount_value"`
	DiscountAmount string `json:"discount_amount"`
	FinalPrice     string `json:"final_price"`
}

// ViewResponse состояние мастера
type ViewResponse struct {
	Step          string                  `json:"step"`
	Products      []ProductResponse       `json:"products,omitempty"`
	Product       *ProductResponse        `json:"product,omitempty"`
	Sessions      []SessionResponse       `json:"sessions,omitempty"`
	Session       *domain.SelectedSession `json:"session,omitempty"`
	PromoCode     string                  `json:"promo_code,omitempty"`
	Promo         *PromoResponse          `json:"promo,omitempty"`
	OriginalPrice string                  `json:"original_price"`
	DisplayPrice  string                  `json:"display_price"`
}

// BookingResponse созданное бронирование
type BookingResponse struct {
	ID            int64      `json:"id"`
	SessionID     int64      `json:"session_id"`
	PaymentMethod string     `json:"payment_method"`
	PaymentStatus string     `json:"payment_status"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	FinalPrice    *string    `json:"final_price,omitempty"`
	PromoCode     *string    `json:"promo_code_applied,omitempty"`
	PaymentID     string     `json:"payment_id,omitempty"`
	PaymentAmount *string    `json:"payment_amount,omitempty"`
}

// RefreshedResponse списки, обновлённые после оформления
type RefreshedResponse struct {
	Bookings       []domain.Booking            `json:"bookings"`
	PaymentHistory []domain.PaymentHistoryItem `json:"payment_history"`
	Sessions       []domain.TestSession        `json:"sessions"`
}

// SubmitResponse результат оформления без перехода на шлюз
type SubmitResponse struct {
	Outcome   string             `json:"outcome"`
	Booking   BookingResponse    `json:"booking"`
	Refreshed *RefreshedResponse `json:"refreshed,omitempty"`
}

// DraftResponse сохранённый черновик бронирования
type DraftResponse struct {
	ProductID    int64  `json:"product_id"`
	ProductName  string `json:"product_name"`
	ProductPrice string `json:"product_price"`
	SessionID    int64  `json:"session_id,omitempty"`
	Step         string `json:"step"`
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func nullMoney(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := money(d.Decimal)
	return &s
}

func fromProduct(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		ProductType:    string(p.ProductType),
		Price:          money(p.Price),
		HasReading:     p.HasReading,
		HasListening:   p.HasListening,
		HasWriting:     p.HasWriting,
		HasSpeaking:    p.HasSpeaking,
		HasInvigilator: p.HasInvigilator,
	}
}

// FromView конвертирует состояние мастера в HTTP response
func FromView(v *bookingWizard.View) *ViewResponse {
	resp := &ViewResponse{
		Step:          string(v.Step),
		Session:       v.Session,
		PromoCode:     v.PromoCode,
		OriginalPrice: money(v.OriginalPrice),
		DisplayPrice:  money(v.DisplayPrice),
	}

	for _, p := range v.Products {
		resp.Products = append(resp.Products, fromProduct(p))
	}
	if v.Product != nil {
		product := fromProduct(*v.Product)
		resp.Product = &product
	}

	for _, option := range v.Sessions {
		s := option.Session
		resp.Sessions = append(resp.Sessions, SessionResponse{
			ID:              s.ID,
			SessionDate:     s.SessionDate,
			SessionTime:     s.SessionTime,
			MaxParticipants: s.MaxParticipants,
			AvailableSlots:  s.AvailableSlots,
			Location:        s.Location,
			LocationURL:     s.LocationURL,
			IsBooked:        s.BookedByUser(),
			Selectable:      option.Selectable,
			DisabledReason:  string(option.DisabledReason),
		})
	}

	if v.Promo != nil {
		resp.Promo = &PromoResponse{
			Code:           v.Promo.Code,
			DiscountType:   v.Promo.DiscountType,
			DiscountValue:  v.Promo.DiscountValue.String(),
			DiscountAmount: money(v.Promo.DiscountAmount),
			FinalPrice:     money(v.Promo.Final()),
		}
	}

	return resp
}

// FromSubmitResult конвертирует результат оформления в HTTP response
func FromSubmitResult(res *bookingWizard.SubmitResult) *SubmitResponse {
	b := res.Booking
	resp := &SubmitResponse{
		Outcome: string(res.Outcome),
		Booking: BookingResponse{
			ID:            b.ID,
			SessionID:     b.SessionID,
			PaymentMethod: string(b.PaymentMethod),
			PaymentStatus: string(b.PaymentStatus),
			ExpiresAt:     res.ExpiresAt,
			FinalPrice:    nullMoney(b.FinalPrice),
			PromoCode:     b.PromoCodeApplied,
		},
	}

	if res.Payment != nil {
		resp.Booking.PaymentID = res.Payment.PaymentID
		amount := money(res.Payment.Amount)
		resp.Booking.PaymentAmount = &amount
	}

	if res.Refreshed != nil {
		resp.Refreshed = &RefreshedResponse{
			Bookings:       res.Refreshed.Bookings,
			PaymentHistory: res.Refreshed.PaymentHistory,
			Sessions:       res.Refreshed.Sessions,
		}
	}

	return resp
}

// FromDraft конвертирует черновик в HTTP response
func FromDraft(d *domain.PendingBooking) *DraftResponse {
	return &DraftResponse{
		ProductID:    d.ProductID,
		ProductName:  d.ProductName,
		ProductPrice: money(d.ProductPrice),
		SessionID:    d.SessionID,
		Step:         string(d.Step),
	}
}
