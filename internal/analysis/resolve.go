package analysis

import (
	"fmt"
	"strings"
)

// Field is a canonical semantic column of an inventory dataset.
type Field string

const (
	FieldMaterial    Field = "material"
	FieldQuantity    Field = "quantity"
	FieldNormQty     Field = "norm_quantity"
	FieldDescription Field = "description"
	FieldStockValue  Field = "stock_value"
	FieldVendor      Field = "vendor"
)

// fieldSynonyms is checked in order; for each field the first candidate
// present in the dataset wins. Candidates are compared against header labels
// lower-cased with spaces collapsed to underscores.
var fieldSynonyms = []struct {
	field      Field
	candidates []string
}{
	{FieldQuantity, []string{"qty", "quantity", "current_qty", "stock_qty"}},
	{FieldNormQty, []string{"rm", "rm_qty", "required_qty", "norm_qty", "target_qty", "rm_in_qty", "ri_in_qty"}},
	{FieldMaterial, []string{"material", "material_code", "part_number", "item_code", "code", "part_no"}},
	{FieldDescription, []string{"description", "item_description", "part_description", "desc", "part description", "material_description", "part_desc"}},
	{FieldStockValue, []string{"stock_value", "value", "amount", "cost"}},
	{FieldVendor, []string{"vendor", "vendor_name", "supplier", "supplier_name"}},
}

var requiredFields = []Field{FieldMaterial, FieldQuantity, FieldNormQty}

// ColumnMap maps a canonical field to the original header label it resolved
// to. Optional fields that did not resolve are absent.
type ColumnMap map[Field]string

// MissingColumnsError reports which required fields could not be resolved.
// Callers treat it as a signal to fall back to a default dataset, not as a
// fatal condition.
type MissingColumnsError struct {
	Missing []Field
}

func (e *MissingColumnsError) Error() string {
	names := make([]string, 0, len(e.Missing))
	for _, f := range e.Missing {
		names = append(names, string(f))
	}
	return fmt.Sprintf("required columns not found: %s", strings.Join(names, ", "))
}

// ResolveColumns maps the available header labels to canonical fields using
// the synonym tables. Original labels are preserved as map values so lookups
// hit the dataset as-is. Returns a MissingColumnsError if any required field
// stays unresolved.
func ResolveColumns(headers []string) (ColumnMap, error) {
	available := make(map[string]string, len(headers))
	for _, h := range headers {
		available[normalizeLabel(h)] = h
	}

	cols := ColumnMap{}
	for _, entry := range fieldSynonyms {
		for _, candidate := range entry.candidates {
			if original, ok := available[candidate]; ok {
				cols[entry.field] = original
				break
			}
		}
	}

	var missing []Field
	for _, f := range requiredFields {
		if _, ok := cols[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Missing: missing}
	}

	return cols, nil
}

func normalizeLabel(label string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
}
