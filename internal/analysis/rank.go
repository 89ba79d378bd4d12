package analysis

import (
	"math"
	"sort"

	"stocklens/internal"
)

// TopByStatus selects up to k items of the given status, ranked descending
// by variance value. Short items rank by the magnitude of the deficit,
// the other statuses by the signed surplus. Ties keep the base item order.
func TopByStatus(items []internal.ProcessedItem, status internal.Status, k int) []internal.ProcessedItem {
	filtered := make([]internal.ProcessedItem, 0, len(items))
	for _, item := range items {
		if item.Status == status {
			filtered = append(filtered, item)
		}
	}

	key := func(item internal.ProcessedItem) float64 { return item.VarianceValue }
	if status == internal.StatusShort {
		key = func(item internal.ProcessedItem) float64 { return math.Abs(item.VarianceValue) }
	}
	sort.SliceStable(filtered, func(i, j int) bool { return key(filtered[i]) > key(filtered[j]) })

	return truncate(filtered, k)
}

// VendorTopParts holds one vendor's top-ranked items for a status.
type VendorTopParts struct {
	Vendor string                   `json:"vendor"`
	Items  []internal.ProcessedItem `json:"items"`
}

// TopByStatusPerVendor groups items of the given status by vendor in
// first-seen order and keeps each vendor's top k, ranked with the same
// policy as TopByStatus.
func TopByStatusPerVendor(items []internal.ProcessedItem, status internal.Status, k int) []VendorTopParts {
	order := []string{}
	byVendor := map[string][]internal.ProcessedItem{}
	for _, item := range items {
		if item.Status != status {
			continue
		}
		if _, seen := byVendor[item.Vendor]; !seen {
			order = append(order, item.Vendor)
		}
		byVendor[item.Vendor] = append(byVendor[item.Vendor], item)
	}

	out := make([]VendorTopParts, 0, len(order))
	for _, vendor := range order {
		out = append(out, VendorTopParts{Vendor: vendor, Items: TopByStatus(byVendor[vendor], status, k)})
	}
	return out
}

// TopByAbsVariance ranks all items by |variance value| regardless of status.
func TopByAbsVariance(items []internal.ProcessedItem, k int) []internal.ProcessedItem {
	ranked := append([]internal.ProcessedItem(nil), items...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].VarianceValue) > math.Abs(ranked[j].VarianceValue)
	})
	return truncate(ranked, k)
}

// TopByStockValue ranks all items by stock value descending.
func TopByStockValue(items []internal.ProcessedItem, k int) []internal.ProcessedItem {
	ranked := append([]internal.ProcessedItem(nil), items...)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].StockValue > ranked[j].StockValue })
	return truncate(ranked, k)
}

func truncate(items []internal.ProcessedItem, k int) []internal.ProcessedItem {
	if k >= 0 && len(items) > k {
		return items[:k]
	}
	return items
}
