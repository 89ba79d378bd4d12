package analysis

import (
	"fmt"
	"strings"

	"stocklens/internal"
)

// Standardize builds canonical items out of raw rows using a resolved column
// map. Rows with an empty or "nan" identifier, or a negative quantity or
// norm, are dropped; one bad row never aborts the batch. Output preserves
// input row order.
func Standardize(records []internal.RawRecord, cols ColumnMap) []internal.CanonicalItem {
	out := make([]internal.CanonicalItem, 0, len(records))
	for _, record := range records {
		item, ok := buildItem(record, cols)
		if !ok {
			continue
		}
		out = append(out, item)
	}
	return out
}

func buildItem(record internal.RawRecord, cols ColumnMap) (item internal.CanonicalItem, ok bool) {
	// A panicking row is dropped; the rest of the batch continues.
	defer func() {
		if r := recover(); r != nil {
			ok = false
		}
	}()

	material := strings.TrimSpace(cellString(record[cols[FieldMaterial]]))
	if material == "" || strings.EqualFold(material, "nan") {
		return internal.CanonicalItem{}, false
	}

	qty := SafeFloat(record[cols[FieldQuantity]])
	norm := SafeFloat(record[cols[FieldNormQty]])
	// Written with >= so a NaN that survived coercion is also rejected.
	if !(qty >= 0) || !(norm >= 0) {
		return internal.CanonicalItem{}, false
	}

	item = internal.CanonicalItem{
		Material:     material,
		Quantity:     qty,
		NormQuantity: norm,
		Vendor:       "Unknown",
	}

	if label, resolved := cols[FieldDescription]; resolved {
		item.Description = strings.TrimSpace(cellString(record[label]))
	}
	if label, resolved := cols[FieldStockValue]; resolved {
		item.StockValue = SafeInt(record[label])
	}
	if label, resolved := cols[FieldVendor]; resolved {
		if vendor := strings.TrimSpace(cellString(record[label])); vendor != "" {
			item.Vendor = vendor
		}
	}

	return item, true
}

func cellString(value any) string {
	if value == nil {
		return ""
	}
	if s, isString := value.(string); isString {
		return s
	}
	return fmt.Sprint(value)
}
