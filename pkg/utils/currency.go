package utils

import "fmt"

// All money in this codebase is int64 paise. Conversion to rupees happens
// only at a presentation boundary (responses, logs), never for computation.

// FormatPaise renders a paise amount as a rupee string, e.g. 249900 ->
// "₹2499.00".
func FormatPaise(paise int64) string {
	sign := ""
	if paise < 0 {
		sign = "-"
		paise = -paise
	}
	return fmt.Sprintf("%s₹%d.%02d", sign, paise/100, paise%100)
}

// RupeesToPaise converts a major-unit value to paise, rounding half away
// from zero.
func RupeesToPaise(rupees float64) int64 {
	if rupees < 0 {
		return -int64(-rupees*100 + 0.5)
	}
	return int64(rupees*100 + 0.5)
}
