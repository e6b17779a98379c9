package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categories offered by the admin product form.
var Categories = []string{
	"Clothing",
	"Shoes",
	"Watch",
	"Smartphone",
	"Laptop",
	"Accessories",
	"Computer",
	"Console",
	"Camera",
}

const MaxProductImages = 4

func IsCategory(c string) bool {
	for _, known := range Categories {
		if known == c {
			return true
		}
	}
	return false
}

type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	OfferPrice  decimal.Decimal `json:"offer_price"`
	Images      []string        `json:"images"`
	CreatedBy   string          `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewProduct is the validated input of the admin product form. Image
// references are filled in after the uploads complete.
type NewProduct struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	OfferPrice  decimal.Decimal
	Images      []string
	CreatedBy   string
}
