package money

import "fmt"

// Currency is the display currency for formatted amounts
type Currency string

const (
	USD Currency = "USD"
	EUR Currency = "EUR"
)

// DefaultCurrency is used when an unrecognized currency is passed to Format
const DefaultCurrency = USD

func (c Currency) Symbol() string {
	switch c {
	case USD:
		return "$"
	case EUR:
		return "€"
	}
	return DefaultCurrency.Symbol()
}

func (c Currency) IsValid() bool {
	switch c {
	case USD, EUR:
		return true
	}
	return false
}

// Format renders an integer minor-unit amount as "<symbol><major>.<minor>",
// minor units zero-padded to two digits. Integer div/mod only - float
// arithmetic on prices drifts (105 cents must print as $1.05, never $1.0499999).
func Format(amountCents int64, currency Currency) string {
	major := amountCents / 100
	minor := amountCents % 100
	if minor < 0 {
		minor = -minor
	}
	return fmt.Sprintf("%s%d.%02d", currency.Symbol(), major, minor)
}
