package analysis

import (
	"math"

	"stocklens/internal"
)

// Variance returns the signed percent and value deviation of qty from norm.
// A zero norm forces the percent to 0 to keep the ratio defined, while the
// value still carries the full difference; an item with stock but no norm
// therefore classifies as within norms even though its absolute surplus is
// real. That short-circuit is a documented contract, keep it.
func Variance(qty, norm float64) (percent, value float64) {
	value = qty - norm
	if norm == 0 {
		return 0, value
	}
	return value / norm * 100, value
}

// StatusFor classifies a variance percent against a positive tolerance band.
func StatusFor(percent, tolerance float64) internal.Status {
	switch {
	case math.Abs(percent) <= tolerance:
		return internal.StatusWithinNorms
	case percent > tolerance:
		return internal.StatusExcess
	default:
		return internal.StatusShort
	}
}

// Process classifies every item against the tolerance, in input order, and
// accumulates the per-status totals. Downstream ranking relies on the base
// ordering staying untouched.
func Process(items []internal.CanonicalItem, tolerance float64) ([]internal.ProcessedItem, internal.Summary) {
	processed := make([]internal.ProcessedItem, 0, len(items))
	var summary internal.Summary

	for _, item := range items {
		percent, value := Variance(item.Quantity, item.NormQuantity)
		status := StatusFor(percent, tolerance)

		processed = append(processed, internal.ProcessedItem{
			CanonicalItem:   item,
			VariancePercent: percent,
			VarianceValue:   value,
			Status:          status,
		})

		switch status {
		case internal.StatusShort:
			summary.Short.Count++
			summary.Short.Value += item.StockValue
		case internal.StatusExcess:
			summary.Excess.Count++
			summary.Excess.Value += item.StockValue
		default:
			summary.WithinNorms.Count++
			summary.WithinNorms.Value += item.StockValue
		}
	}

	return processed, summary
}
