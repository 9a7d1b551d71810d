package usecase

import "upasana-backend/config"

// Pricing derives shipping, tax, and grand total from a cart subtotal. All
// amounts are int64 paise; every method is a pure function of the subtotal
// and the configured rates, so checkout totals are reproducible.
type Pricing struct {
	FreeShippingThreshold int64
	ShippingFlatRate      int64
	TaxRateBasisPoints    int64
}

func NewPricing(cfg *config.Config) Pricing {
	return Pricing{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFlatRate:      cfg.ShippingFlatRate,
		TaxRateBasisPoints:    cfg.TaxRateBasisPoints,
	}
}

// ShippingCharge is zero at or above the free-shipping threshold, otherwise
// the flat configured rate.
func (p Pricing) ShippingCharge(subtotal int64) int64 {
	if subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.ShippingFlatRate
}

// Tax applies the configured rate with round-half-up on the paise amount.
// The rate is held in basis points so the whole computation stays integral.
func (p Pricing) Tax(subtotal int64) int64 {
	return (subtotal*p.TaxRateBasisPoints + 5000) / 10000
}

// GrandTotal is subtotal + shipping + tax.
func (p Pricing) GrandTotal(subtotal int64) int64 {
	return subtotal + p.ShippingCharge(subtotal) + p.Tax(subtotal)
}

// FreeShippingProgress reports how close the subtotal is to free shipping,
// clamped to [0, 1]. Display-only.
func (p Pricing) FreeShippingProgress(subtotal int64) float64 {
	if p.FreeShippingThreshold <= 0 {
		return 1
	}
	progress := float64(subtotal) / float64(p.FreeShippingThreshold)
	if progress > 1 {
		return 1
	}
	if progress < 0 {
		return 0
	}
	return progress
}

// Quote bundles the derived totals for display.
type Quote struct {
	Subtotal       int64 `json:"subtotal"`
	ShippingCharge int64 `json:"shippingCharge"`
	Tax            int64 `json:"tax"`
	Total          int64 `json:"total"`
}

func (p Pricing) Quote(subtotal int64) Quote {
	return Quote{
		Subtotal:       subtotal,
		ShippingCharge: p.ShippingCharge(subtotal),
		Tax:            p.Tax(subtotal),
		Total:          p.GrandTotal(subtotal),
	}
}
