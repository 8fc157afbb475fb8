package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		cents    int64
		currency Currency
		want     string
	}{
		{"zero", 0, USD, "$0.00"},
		{"single cent", 1, USD, "$0.01"},
		{"under a dollar", 99, USD, "$0.99"},
		{"exact dollar", 100, USD, "$1.00"},
		{"needs padding", 105, USD, "$1.05"},
		{"large amount", 100000, USD, "$1000.00"},
		{"euro", 2499, EUR, "€24.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.cents, tt.currency))
		})
	}
}

func TestFormat_UnknownCurrencyFallsBackToDefault(t *testing.T) {
	assert.Equal(t, "$12.34", Format(1234, Currency("GBP")))
}

func TestCurrencyIsValid(t *testing.T) {
	assert.True(t, USD.IsValid())
	assert.True(t, EUR.IsValid())
	assert.False(t, Currency("GBP").IsValid())
	assert.False(t, Currency("").IsValid())
}
