package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(v bool) *bool { return &v }

func testProducts() (Product, Product) {
	daily := Product{ID: 1, Name: "Daily Practice Test", ProductType: ProductTypeDaily, Price: decimal.RequireFromString("29.00")}
	pro := Product{ID: 2, Name: "Pretest Pro", ProductType: ProductTypeFull, Price: decimal.RequireFromString("89.00")}
	return daily, pro
}

func testSessions(p Product) []TestSession {
	return []TestSession{
		{ID: 5, Product: p, SessionDate: "2026-11-02", SessionTime: "09:00:00", MaxParticipants: 20, AvailableSlots: 3, IsBooked: boolPtr(false)},
		{ID: 6, Product: p, SessionDate: "2026-11-03", SessionTime: "09:00:00", MaxParticipants: 20, AvailableSlots: 0, IsBooked: boolPtr(false)},
		{ID: 7, Product: p, SessionDate: "2026-11-04", SessionTime: "14:00:00", MaxParticipants: 20, AvailableSlots: 4, IsBooked: boolPtr(true)},
	}
}

func TestWizard_HappyPathWithPromocode(t *testing.T) {
	_, pro := testProducts()
	w := NewWizard()

	require.NoError(t, w.SelectProduct(pro))
	require.NoError(t, w.EnterSessionStep(testSessions(pro)))
	require.NoError(t, w.SelectSession(5))
	require.NoError(t, w.EnterPaymentStep())
	assert.True(t, w.DisplayPrice().Equal(decimal.RequireFromString("89")))

	err := w.ApplyPromo(PromocodeValidation{
		Code:           "SAVE10",
		DiscountType:   "percentage",
		DiscountValue:  decimal.RequireFromString("10"),
		OriginalPrice:  decimal.RequireFromString("89.00"),
		DiscountAmount: decimal.RequireFromString("8.90"),
		FinalPrice:     decimal.RequireFromString("80.10"),
		IsValid:        true,
	})
	require.NoError(t, err)
	assert.Equal(t, "80.10", w.DisplayPrice().StringFixed(2))
	assert.Equal(t, "SAVE10", w.PromoCode)

	w.ClearPromo()
	assert.Equal(t, "89.00", w.DisplayPrice().StringFixed(2))
	assert.Empty(t, w.PromoCode)
	require.NoError(t, w.ReadyToSubmit())
}

func TestWizard_CannotSkipSteps(t *testing.T) {
	_, pro := testProducts()
	w := NewWizard()

	assert.ErrorIs(t, w.EnterSessionStep(nil), ErrProductRequired)
	assert.ErrorIs(t, w.EnterPaymentStep(), ErrWrongStep)
	assert.ErrorIs(t, w.SelectSession(5), ErrWrongStep)

	require.NoError(t, w.SelectProduct(pro))
	require.NoError(t, w.EnterSessionStep(testSessions(pro)))
	assert.ErrorIs(t, w.EnterPaymentStep(), ErrSessionRequired)
	assert.ErrorIs(t, w.SelectProduct(pro), ErrWrongStep)
	assert.ErrorIs(t, w.ReadyToSubmit(), ErrWrongStep)
}

func TestWizard_DisabledSessionsAreRejected(t *testing.T) {
	_, pro := testProducts()
	w := NewWizard()
	require.NoError(t, w.SelectProduct(pro))
	require.NoError(t, w.EnterSessionStep(testSessions(pro)))

	tests := []struct {
		name    string
		id      int64
		wantErr error
	}{
		{name: "no slots left", id: 6, wantErr: ErrSessionFull},
		{name: "already booked", id: 7, wantErr: ErrSessionBooked},
		{name: "unknown session", id: 99, wantErr: ErrSessionNotFound},
		{name: "selectable", id: 5, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.SelectSession(tt.id)
			if tt.wantErr == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.id, w.Session.ID)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWizard_BackNavigation(t *testing.T) {
	daily, pro := testProducts()
	w := NewWizard()
	assert.ErrorIs(t, w.Back(), ErrWrongStep)

	require.NoError(t, w.SelectProduct(pro))
	require.NoError(t, w.EnterSessionStep(testSessions(pro)))
	require.NoError(t, w.SelectSession(5))
	require.NoError(t, w.EnterPaymentStep())
	require.NoError(t, w.ApplyPromo(PromocodeValidation{Code: "SAVE10", OriginalPrice: pro.Price, DiscountAmount: decimal.RequireFromString("8.90"), IsValid: true}))

	require.NoError(t, w.Back())
	assert.Equal(t, StepSession, w.Step)
	assert.Nil(t, w.Promo)
	require.NotNil(t, w.Session)

	require.NoError(t, w.Back())
	assert.Equal(t, StepTest, w.Step)

	// тот же тест: выбранная сессия сохраняется
	require.NoError(t, w.SelectProduct(pro))
	assert.NotNil(t, w.Session)

	// другой тест: сессия сбрасывается
	require.NoError(t, w.SelectProduct(daily))
	assert.Nil(t, w.Session)
	assert.Nil(t, w.Sessions)
}

func TestWizard_ApplyPromoRequiresPaymentStep(t *testing.T) {
	w := NewWizard()
	assert.ErrorIs(t, w.ApplyPromo(PromocodeValidation{IsValid: true}), ErrWrongStep)

	_, pro := testProducts()
	require.NoError(t, w.SelectProduct(pro))
	require.NoError(t, w.EnterSessionStep(testSessions(pro)))
	require.NoError(t, w.SelectSession(5))
	require.NoError(t, w.EnterPaymentStep())
	assert.ErrorIs(t, w.ApplyPromo(PromocodeValidation{Code: "BAD", IsValid: false}), ErrPromoCodeNotUsable)
	assert.Nil(t, w.Promo)
}

func TestWizard_Reset(t *testing.T) {
	_, pro := testProducts()
	w := NewWizard()
	require.NoError(t, w.SelectProduct(pro))
	require.NoError(t, w.EnterSessionStep(testSessions(pro)))

	w.Reset()
	assert.Equal(t, StepTest, w.Step)
	assert.Nil(t, w.Product)
	assert.Nil(t, w.Sessions)
}
