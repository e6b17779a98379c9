package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartEntry is stored under users/{userID}/cart/{productID}. Quantity is
// always positive; a non-positive quantity removes the document.
type CartEntry struct {
	ProductID string    `json:"-"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
}

type LineItem struct {
	Product   Product         `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// StaleItem is a cart entry whose product no longer resolves.
type StaleItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CartSummary struct {
	Items      []LineItem      `json:"items"`
	StaleItems []StaleItem     `json:"stale_items"`
	Count      int             `json:"count"`
	Amount     decimal.Decimal `json:"amount"`
}
