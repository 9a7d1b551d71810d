package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPaise(t *testing.T) {
	assert.Equal(t, "₹0.00", FormatPaise(0))
	assert.Equal(t, "₹0.05", FormatPaise(5))
	assert.Equal(t, "₹2499.00", FormatPaise(249900))
	assert.Equal(t, "₹500.50", FormatPaise(50050))
	assert.Equal(t, "-₹12.34", FormatPaise(-1234))
}

func TestRupeesToPaise(t *testing.T) {
	assert.Equal(t, int64(249900), RupeesToPaise(2499))
	assert.Equal(t, int64(50050), RupeesToPaise(500.50))
	// Float artifacts round to the nearest paise.
	assert.Equal(t, int64(2999), RupeesToPaise(29.99))
	assert.Equal(t, int64(-1234), RupeesToPaise(-12.34))
}
