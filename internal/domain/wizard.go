package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// WizardStep шаг мастера бронирования
type WizardStep string

const (
	StepTest    WizardStep = "test"
	StepSession WizardStep = "session"
	StepPayment WizardStep = "payment"
)

// IsValid returns true for a known wizard step
func (s WizardStep) IsValid() bool {
	switch s {
	case StepTest, StepSession, StepPayment:
		return true
	}
	return false
}

var (
	ErrWrongStep          = errors.New("wizard: action is not allowed at the current step")
	ErrProductRequired    = errors.New("wizard: product is not selected")
	ErrSessionRequired    = errors.New("wizard: session is not selected")
	ErrSessionNotFound    = errors.New("wizard: session not found")
	ErrSessionFull        = errors.New("wizard: session has no available slots")
	ErrSessionBooked      = errors.New("wizard: session is already booked by user")
	ErrPromoCodeRequired  = errors.New("wizard: promocode is empty")
	ErrPromoCodeNotUsable = errors.New("wizard: promocode is not valid")
)

// SelectedSession выбранная сессия (id и отображаемое время)
type SelectedSession struct {
	ID   int64  `json:"id"`
	Date string `json:"date"`
	Time string `json:"time"`
}

// WizardState состояние мастера test -> session -> payment
// Хранится в сессии пользователя под ключом bookingWizard
type WizardState struct {
	Step      WizardStep           `json:"step"`
	Product   *Product             `json:"product,omitempty"`
	Sessions  []TestSession        `json:"sessions,omitempty"`
	Session   *SelectedSession     `json:"session,omitempty"`
	PromoCode string               `json:"promo_code,omitempty"`
	Promo     *PromocodeValidation `json:"promo,omitempty"`
}

// NewWizard новый мастер на первом шаге
func NewWizard() *WizardState {
	return &WizardState{Step: StepTest}
}

// SelectProduct выбирает тест; смена теста сбрасывает сессию и промокод
func (w *WizardState) SelectProduct(p Product) error {
	if w.Step != StepTest {
		return ErrWrongStep
	}

	if w.Product != nil && w.Product.ID != p.ID {
		w.Sessions = nil
		w.Session = nil
		w.ClearPromo()
	}

	w.Product = &p
	return nil
}

// EnterSessionStep переход test -> session со списком сессий выбранного теста
func (w *WizardState) EnterSessionStep(sessions []TestSession) error {
	if w.Step != StepTest {
		return ErrWrongStep
	}
	if w.Product == nil {
		return ErrProductRequired
	}

	w.Sessions = sessions
	w.Step = StepSession
	return nil
}

// ReplaceSessions обновляет список сессий после повторного запроса к бэкенду
func (w *WizardState) ReplaceSessions(sessions []TestSession) {
	w.Sessions = sessions
}

// FindSession ищет сессию в текущем списке
func (w *WizardState) FindSession(id int64) (*TestSession, bool) {
	for i := range w.Sessions {
		if w.Sessions[i].ID == id {
			return &w.Sessions[i], true
		}
	}
	return nil, false
}

// SelectSession выбирает сессию; заполненные и уже забронированные сессии выбрать нельзя
func (w *WizardState) SelectSession(id int64) error {
	if w.Step != StepSession {
		return ErrWrongStep
	}

	session, ok := w.FindSession(id)
	if !ok {
		return ErrSessionNotFound
	}
	if session.IsFull() {
		return ErrSessionFull
	}
	if session.BookedByUser() {
		return ErrSessionBooked
	}

	if w.Session != nil && w.Session.ID != id {
		w.ClearPromo()
	}

	w.Session = &SelectedSession{
		ID:   session.ID,
		Date: session.SessionDate,
		Time: session.SessionTime,
	}
	return nil
}

// EnterPaymentStep переход session -> payment
func (w *WizardState) EnterPaymentStep() error {
	if w.Step != StepSession {
		return ErrWrongStep
	}
	if w.Session == nil {
		return ErrSessionRequired
	}

	w.Step = StepPayment
	return nil
}

// Back возвращает мастер на один шаг назад
func (w *WizardState) Back() error {
	switch w.Step {
	case StepSession:
		w.Step = StepTest
	case StepPayment:
		w.Step = StepSession
		w.ClearPromo()
	default:
		return ErrWrongStep
	}
	return nil
}

// CanApplyPromo промокод применяется только на шаге оплаты с выбранной сессией
func (w *WizardState) CanApplyPromo() error {
	if w.Step != StepPayment {
		return ErrWrongStep
	}
	if w.Session == nil {
		return ErrSessionRequired
	}
	return nil
}

// ApplyPromo сохраняет результат проверки промокода
func (w *WizardState) ApplyPromo(v PromocodeValidation) error {
	if err := w.CanApplyPromo(); err != nil {
		return err
	}
	if !v.IsValid {
		return ErrPromoCodeNotUsable
	}

	w.PromoCode = v.Code
	w.Promo = &v
	return nil
}

// ClearPromo убирает промокод, цена возвращается к цене теста без скидки
func (w *WizardState) ClearPromo() {
	w.PromoCode = ""
	w.Promo = nil
}

// DisplayPrice цена, показываемая пользователю на шаге оплаты
func (w *WizardState) DisplayPrice() decimal.Decimal {
	if w.Promo != nil && w.Promo.IsValid {
		return w.Promo.Final()
	}
	if w.Product != nil {
		return w.Product.Price
	}
	return decimal.Zero
}

// ReadyToSubmit мастер готов к созданию бронирования
func (w *WizardState) ReadyToSubmit() error {
	if w.Step != StepPayment {
		return ErrWrongStep
	}
	if w.Product == nil {
		return ErrProductRequired
	}
	if w.Session == nil {
		return ErrSessionRequired
	}
	return nil
}

// Reset сбрасывает мастер в начальное состояние
func (w *WizardState) Reset() {
	*w = WizardState{Step: StepTest}
}
