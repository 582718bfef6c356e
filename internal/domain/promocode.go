package domain

import "github.com/shopspring/decimal"

// PromocodeValidation результат проверки промокода для конкретной сессии
// Существует только в состоянии мастера, скидку не резервирует
type PromocodeValidation struct {
	Code           string          `json:"code"`
	DiscountType   string          `json:"discount_type"`
	DiscountValue  decimal.Decimal `json:"discount_value"`
	OriginalPrice  decimal.Decimal `json:"original_price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	FinalPrice     decimal.Decimal `json:"final_price"`
	IsValid        bool            `json:"is_valid"`
}

// Final итоговая цена со скидкой: original_price - discount_amount
func (p *PromocodeValidation) Final() decimal.Decimal {
	return p.OriginalPrice.Sub(p.DiscountAmount)
}
