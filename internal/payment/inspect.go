package payment

import (
	"context"

	"github.com/Cheertaboi/storefront-service/internal/models"
)

type BankLookup interface {
	Lookup(ctx context.Context, cardNumber string) *models.BankInfo
}

// Inspect formats a partially typed card number, classifies its brand and,
// once six digits are known, asks lookup for the issuing bank.
func Inspect(ctx context.Context, lookup BankLookup, raw string) models.CardInspection {
	formatted := FormatCardNumber(raw)
	out := models.CardInspection{
		Formatted: formatted,
		Brand:     DetectBrand(formatted),
	}
	if lookup != nil && len(digitsOnly(formatted)) >= binLength {
		out.BankInfo = lookup.Lookup(ctx, formatted)
	}
	return out
}
