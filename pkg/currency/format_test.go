package currency_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"vitrina/pkg/currency"
)

func TestFormat_GroupsThousandsWithDots(t *testing.T) {
	cases := []struct {
		value    float64
		expected string
	}{
		{0, "$0"},
		{100, "$100"},
		{1000, "$1.000"},
		{849990, "$849.990"},
		{1000000, "$1.000.000"},
		{2499990, "$2.499.990"},
		{-1000, "$-1.000"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.expected, currency.Format(tc.value, true))
	}
}

func TestFormat_WithoutSymbol(t *testing.T) {
	assert.Equal(t, "1.000", currency.Format(1000, false))
	assert.Equal(t, "0", currency.Format(0, false))
	assert.NotContains(t, currency.Format(849990, false), "$")
}

func TestFormat_DropsDecimals(t *testing.T) {
	// Whole pesos only: fractions round away.
	assert.Equal(t, "$1.000", currency.Format(999.99, true))
	assert.Equal(t, "$849.990", currency.Format(849990.4, true))
}

func TestFormat_NonNumericValuesRenderAsZero(t *testing.T) {
	assert.Equal(t, "$0", currency.Format(math.NaN(), true))
	assert.Equal(t, "0", currency.Format(math.NaN(), false))
	assert.Equal(t, "$0", currency.Format(math.Inf(1), true))
	assert.Equal(t, "$0", currency.Format(math.Inf(-1), true))
}

func TestFormat_SymbolPrecedesNegativeSign(t *testing.T) {
	assert.Equal(t, "$-1.000.000", currency.Format(-1000000, true))
	assert.Equal(t, "-100", currency.Format(-100, false))
}
