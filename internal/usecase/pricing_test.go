package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: 50000,
		ShippingFlatRate:      2500,
		TaxRateBasisPoints:    800,
	}
}

func TestShippingCharge_ThresholdBoundary(t *testing.T) {
	p := testPricing()

	tests := []struct {
		name     string
		subtotal int64
		want     int64
	}{
		{"empty", 0, 2500},
		{"one paise below threshold", 49999, 2500},
		{"exactly at threshold", 50000, 0},
		{"above threshold", 50001, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ShippingCharge(tt.subtotal))
		})
	}
}

func TestTax_RoundsHalfUp(t *testing.T) {
	p := testPricing()

	// 8% of 6 paise is 0.48, rounds down; 8% of 7 paise is 0.56, rounds up.
	assert.Equal(t, int64(0), p.Tax(6))
	assert.Equal(t, int64(1), p.Tax(7))
	assert.Equal(t, int64(4000), p.Tax(50000))
	// 8% of 49999 is 3999.92, rounds to 4000.
	assert.Equal(t, int64(4000), p.Tax(49999))
	assert.Equal(t, int64(0), p.Tax(0))
}

func TestGrandTotal_AroundFreeShipping(t *testing.T) {
	p := testPricing()

	// Just below the threshold the flat rate applies; at the threshold it
	// drops out, so one more paise of subtotal lowers the total.
	assert.Equal(t, int64(49999+2500+4000), p.GrandTotal(49999))
	assert.Equal(t, int64(50000+0+4000), p.GrandTotal(50000))
}

func TestFreeShippingProgress(t *testing.T) {
	p := testPricing()

	assert.Equal(t, 0.0, p.FreeShippingProgress(0))
	assert.Equal(t, 0.5, p.FreeShippingProgress(25000))
	assert.Equal(t, 1.0, p.FreeShippingProgress(50000))
	assert.Equal(t, 1.0, p.FreeShippingProgress(120000))

	noThreshold := Pricing{FreeShippingThreshold: 0, ShippingFlatRate: 2500, TaxRateBasisPoints: 800}
	assert.Equal(t, 1.0, noThreshold.FreeShippingProgress(0))
}

func TestQuote_Deterministic(t *testing.T) {
	p := testPricing()

	first := p.Quote(31999)
	second := p.Quote(31999)

	assert.Equal(t, first, second)
	assert.Equal(t, first.Subtotal+first.ShippingCharge+first.Tax, first.Total)
}
