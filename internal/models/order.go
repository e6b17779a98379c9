package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TaxRate is applied to the cart amount and truncated to a whole unit.
var TaxRate = decimal.RequireFromString("0.02")

// OrderDraft carries the cart snapshot from the order summary to the payment
// step. It lives only in the session store.
type OrderDraft struct {
	Address    Address         `json:"address"`
	CartCount  int             `json:"cart_count"`
	CartAmount decimal.Decimal `json:"cart_amount"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Tax returns floor(amount * TaxRate).
func Tax(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(TaxRate).Floor()
}
