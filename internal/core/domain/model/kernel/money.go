package kernel

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// Money is an amount in US cents. All monetary fields of an order are stored
// as integer cents; conversion to dollars happens only when formatting.
//
// The zero value is a valid amount of $0.00.
type Money struct {
	cents int64
}

// NewMoney creates an amount from integer cents. Negative amounts are allowed
// so that discounts and adjustments can be represented.
func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

// Cents returns the amount in cents.
func (m Money) Cents() int64 {
	return m.cents
}

// Add returns the sum of both amounts.
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Sub returns the difference of both amounts.
func (m Money) Sub(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Mul multiplies the amount by a quantity.
func (m Money) Mul(qty int) Money {
	return Money{cents: m.cents * int64(qty)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsPositive reports whether the amount is greater than zero.
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// Dollars renders the amount as a plain decimal with two fraction digits,
// e.g. "1234.50". Used where a machine-friendly value is expected.
func (m Money) Dollars() string {
	sign, cents := m.split()
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// String renders the amount for humans with a dollar sign and thousands
// grouping, e.g. "$1,234.50" or "-$5.00".
func (m Money) String() string {
	sign, cents := m.split()
	return sign + "$" + moneyPrinter.Sprintf("%d", cents/100) + fmt.Sprintf(".%02d", cents%100)
}

func (m Money) split() (string, int64) {
	if m.cents < 0 {
		return "-", -m.cents
	}
	return "", m.cents
}
