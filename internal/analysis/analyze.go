package analysis

import (
	"fmt"
	"math"

	"stocklens/internal"
)

// Result is one full analysis pass over one dataset.
type Result struct {
	Source    internal.RecordSource    `json:"source"`
	Tolerance float64                  `json:"tolerance"`
	Accepted  int                      `json:"accepted"`
	Items     []internal.ProcessedItem `json:"items"`
	Summary   internal.Summary         `json:"summary"`
	Vendors   VendorSummary            `json:"vendors"`
}

// Analyze resolves columns over the raw rows, standardizes them and runs
// classification and the vendor rollup. A MissingColumnsError means the
// dataset is unusable as-is and the caller should fall back to a default
// dataset; it is not fatal. Zero accepted rows is not an error either, the
// caller inspects Accepted.
func Analyze(records []internal.RawRecord, source internal.RecordSource, tolerance float64) (Result, error) {
	if !ValidTolerance(tolerance) {
		return Result{}, fmt.Errorf("tolerance must be a positive finite percentage, got %v", tolerance)
	}

	cols, err := ResolveColumns(collectHeaders(records))
	if err != nil {
		return Result{}, err
	}

	return AnalyzeItems(Standardize(records, cols), source, tolerance), nil
}

// ValidTolerance reports whether t is usable as a tolerance band: positive
// and finite. NaN fails the > 0 comparison like every other comparison, so
// it is rejected here too.
func ValidTolerance(t float64) bool {
	return t > 0 && !math.IsInf(t, 0)
}

// AnalyzeItems runs classification and the vendor rollup over already
// canonical items.
func AnalyzeItems(items []internal.CanonicalItem, source internal.RecordSource, tolerance float64) Result {
	processed, summary := Process(items, tolerance)
	return Result{
		Source:    source,
		Tolerance: tolerance,
		Accepted:  len(processed),
		Items:     processed,
		Summary:   summary,
		Vendors:   SummarizeVendors(processed),
	}
}

// collectHeaders unions the keys of all rows in first-appearance order, so
// a ragged source still exposes every label it ever used.
func collectHeaders(records []internal.RawRecord) []string {
	seen := map[string]struct{}{}
	headers := []string{}
	for _, record := range records {
		for label := range record {
			if _, ok := seen[label]; ok {
				continue
			}
			seen[label] = struct{}{}
			headers = append(headers, label)
		}
	}
	return headers
}
