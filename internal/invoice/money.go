// Package invoice assembles the key/value data merged into the invoice
// document template and matches timesheet payments to bank operations.
package invoice

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Money pairs an amount with its ISO currency code.
type Money struct {
	Currency string
	Value    decimal.Decimal
}

// Speller converts an amount into its spelled-out form for the invoice body.
// The concrete wording (language, currency declension) is the collaborator's
// concern, not ours.
type Speller interface {
	Spell(m Money) string
}

// Format renders the amount with two decimals and thin-spaced thousands,
// e.g. "12 345.67".
func (m Money) Format() string {
	fixed := m.Value.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	whole, frac, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, digit := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			grouped.WriteByte(' ')
		}
		grouped.WriteRune(digit)
	}

	out := grouped.String() + "." + frac
	if negative {
		out = "-" + out
	}
	return out
}
