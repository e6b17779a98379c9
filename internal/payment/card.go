// Package payment holds the card-field formatting and validation used by the
// simulated payment step. Nothing here talks to a payment processor.
package payment

import (
	"strconv"
	"strings"
	"time"
)

const (
	maxCardDigits   = 16
	maxExpiryDigits = 4
	cvvDigits       = 3
)

// Brands returned by DetectBrand.
const (
	BrandVisa       = "Visa"
	BrandMastercard = "Mastercard"
	BrandAmex       = "American Express"
	BrandDiscover   = "Discover"
	BrandUnknown    = "Unknown"
)

type brandRule struct {
	brand    string
	prefixes []string
}

var brandRules = []brandRule{
	{BrandVisa, []string{"4"}},
	{BrandMastercard, []string{"51", "52", "53", "54", "55"}},
	{BrandAmex, []string{"34", "37"}},
	{BrandDiscover, []string{"6011", "65"}},
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

// FormatCardNumber keeps at most 16 digits of s and groups them in blocks of
// four separated by spaces.
func FormatCardNumber(s string) string {
	d := digitsOnly(s)
	if len(d) > maxCardDigits {
		d = d[:maxCardDigits]
	}

	parts := make([]string, 0, (len(d)+3)/4)
	for i := 0; i < len(d); i += 4 {
		end := i + 4
		if end > len(d) {
			end = len(d)
		}
		parts = append(parts, d[i:end])
	}
	return strings.Join(parts, " ")
}

// ValidCardNumber runs the Luhn checksum. Whitespace is ignored; anything else
// that is not a digit, or a length outside 13-19, is invalid.
func ValidCardNumber(s string) bool {
	d := stripSpaces(s)
	if len(d) < 13 || len(d) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(d) - 1; i >= 0; i-- {
		c := d[i]
		if c < '0' || c > '9' {
			return false
		}
		n := int(c - '0')
		if double {
			n *= 2
			if n > 9 {
				n -= 9
			}
		}
		sum += n
		double = !double
	}
	return sum%10 == 0
}

// DetectBrand classifies a card number by prefix. The result is for display
// only and never blocks a payment.
func DetectBrand(s string) string {
	d := stripSpaces(s)
	for _, rule := range brandRules {
		for _, p := range rule.prefixes {
			if strings.HasPrefix(d, p) {
				return rule.brand
			}
		}
	}
	return BrandUnknown
}

// FormatExpiry keeps at most four digits and inserts "/" after the month.
func FormatExpiry(s string) string {
	d := digitsOnly(s)
	if len(d) > maxExpiryDigits {
		d = d[:maxExpiryDigits]
	}
	if len(d) >= 2 {
		return d[:2] + "/" + d[2:]
	}
	return d
}

// ValidExpiry parses MM/YY (YY meaning 20YY) and rejects months outside 1-12
// and dates before now's calendar month.
func ValidExpiry(s string, now time.Time) bool {
	month, year, ok := strings.Cut(s, "/")
	if !ok || len(month) != 2 || len(year) != 2 {
		return false
	}
	if digitsOnly(month) != month || digitsOnly(year) != year {
		return false
	}

	m, err := strconv.Atoi(month)
	if err != nil || m < 1 || m > 12 {
		return false
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return false
	}
	y += 2000

	if y < now.Year() {
		return false
	}
	if y == now.Year() && m < int(now.Month()) {
		return false
	}
	return true
}

// FormatCVV keeps at most three digits.
func FormatCVV(s string) string {
	d := digitsOnly(s)
	if len(d) > cvvDigits {
		d = d[:cvvDigits]
	}
	return d
}

func ValidCVV(s string) bool {
	return len(s) == cvvDigits && digitsOnly(s) == s
}
