package analysis

import "stocklens/internal"

// VendorSummary is the per-vendor rollup. Order lists vendors as first seen
// in the item list; Totals is keyed by vendor name. "Unknown" is an ordinary
// key like any vendor.
type VendorSummary struct {
	Order  []string                          `json:"order"`
	Totals map[string]*internal.VendorTotals `json:"totals"`
}

// SummarizeVendors rolls processed items up by vendor in a single pass.
func SummarizeVendors(items []internal.ProcessedItem) VendorSummary {
	summary := VendorSummary{Totals: map[string]*internal.VendorTotals{}}

	for _, item := range items {
		totals, seen := summary.Totals[item.Vendor]
		if !seen {
			totals = &internal.VendorTotals{Vendor: item.Vendor}
			summary.Totals[item.Vendor] = totals
			summary.Order = append(summary.Order, item.Vendor)
		}

		totals.TotalParts++
		totals.TotalQty += item.Quantity
		totals.TotalRM += item.NormQuantity
		totals.TotalValue += item.StockValue

		switch item.Status {
		case internal.StatusShort:
			totals.ShortParts++
			totals.ShortValue += item.StockValue
		case internal.StatusExcess:
			totals.ExcessParts++
			totals.ExcessValue += item.StockValue
		default:
			totals.NormalParts++
			totals.NormalValue += item.StockValue
		}
	}

	return summary
}

// InOrder returns the vendor totals in first-seen order.
func (v VendorSummary) InOrder() []internal.VendorTotals {
	out := make([]internal.VendorTotals, 0, len(v.Order))
	for _, vendor := range v.Order {
		out = append(out, *v.Totals[vendor])
	}
	return out
}
