package analysis

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"stocklens/internal"
)

var itemHeaders = []string{
	"material", "description", "qty", "norm_qty",
	"variance_percent", "variance_value", "status", "stock_value", "vendor",
}

var vendorHeaders = []string{
	"vendor", "total_parts", "total_qty", "total_rm", "total_value",
	"short_parts", "excess_parts", "normal_parts",
	"short_value", "excess_value", "normal_value",
}

// ExportXLSX writes the full analysis as a three-sheet workbook: processed
// items, vendor rollup and overall summary. Values are raw numbers; any
// currency or percent formatting belongs to whoever opens the file.
func ExportXLSX(result Result, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	items := f.GetSheetName(0)
	if err := f.SetSheetName(items, "Items"); err != nil {
		return err
	}

	for i, h := range itemHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue("Items", cell, h)
	}
	for i, item := range result.Items {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue("Items", cell, value)
		}
		set(1, item.Material)
		set(2, item.Description)
		set(3, item.Quantity)
		set(4, item.NormQuantity)
		set(5, item.VariancePercent)
		set(6, item.VarianceValue)
		set(7, string(item.Status))
		set(8, item.StockValue)
		set(9, item.Vendor)
	}

	if _, err := f.NewSheet("Vendors"); err != nil {
		return err
	}
	for i, h := range vendorHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue("Vendors", cell, h)
	}
	for i, totals := range result.Vendors.InOrder() {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue("Vendors", cell, value)
		}
		set(1, totals.Vendor)
		set(2, totals.TotalParts)
		set(3, totals.TotalQty)
		set(4, totals.TotalRM)
		set(5, totals.TotalValue)
		set(6, totals.ShortParts)
		set(7, totals.ExcessParts)
		set(8, totals.NormalParts)
		set(9, totals.ShortValue)
		set(10, totals.ExcessValue)
		set(11, totals.NormalValue)
	}

	if _, err := f.NewSheet("Summary"); err != nil {
		return err
	}
	summaryRows := [][]any{
		{"tolerance_percent", result.Tolerance},
		{"total_items", result.Summary.TotalCount()},
		{"total_value", result.Summary.TotalValue()},
		{"within_norms_count", result.Summary.WithinNorms.Count},
		{"within_norms_value", result.Summary.WithinNorms.Value},
		{"excess_count", result.Summary.Excess.Count},
		{"excess_value", result.Summary.Excess.Value},
		{"short_count", result.Summary.Short.Count},
		{"short_value", result.Summary.Short.Value},
	}
	for i, row := range summaryRows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, i+1)
			_ = f.SetCellValue("Summary", cell, value)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

// ExportCSV writes the processed item list as a flat csv file.
func ExportCSV(result Result, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	out, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(itemHeaders); err != nil {
		return err
	}
	for _, item := range result.Items {
		row := []string{
			item.Material,
			item.Description,
			strconv.FormatFloat(item.Quantity, 'f', -1, 64),
			strconv.FormatFloat(item.NormQuantity, 'f', -1, 64),
			strconv.FormatFloat(item.VariancePercent, 'f', -1, 64),
			strconv.FormatFloat(item.VarianceValue, 'f', -1, 64),
			string(item.Status),
			strconv.Itoa(item.StockValue),
			item.Vendor,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// SummaryText renders the plain-text summary report: overall totals, the
// status breakdown and a per-vendor section in first-seen order.
func SummaryText(result Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "INVENTORY ANALYSIS SUMMARY\n")
	fmt.Fprintf(&b, "Tolerance Zone: +/-%g%%\n\n", result.Tolerance)
	fmt.Fprintf(&b, "Total Items: %d\n", result.Summary.TotalCount())
	fmt.Fprintf(&b, "Total Stock Value: %d\n\n", result.Summary.TotalValue())

	fmt.Fprintf(&b, "STATUS BREAKDOWN:\n")
	fmt.Fprintf(&b, "- %s: %d items (%d)\n", internal.StatusWithinNorms, result.Summary.WithinNorms.Count, result.Summary.WithinNorms.Value)
	fmt.Fprintf(&b, "- %s: %d items (%d)\n", internal.StatusExcess, result.Summary.Excess.Count, result.Summary.Excess.Value)
	fmt.Fprintf(&b, "- %s: %d items (%d)\n\n", internal.StatusShort, result.Summary.Short.Count, result.Summary.Short.Value)

	fmt.Fprintf(&b, "VENDOR SUMMARY:\n")
	for _, totals := range result.Vendors.InOrder() {
		fmt.Fprintf(&b, "%s:\n", totals.Vendor)
		fmt.Fprintf(&b, "  - Total Parts: %d\n", totals.TotalParts)
		fmt.Fprintf(&b, "  - Total Value: %d\n", totals.TotalValue)
		fmt.Fprintf(&b, "  - Short: %d items\n", totals.ShortParts)
		fmt.Fprintf(&b, "  - Excess: %d items\n", totals.ExcessParts)
		fmt.Fprintf(&b, "  - Normal: %d items\n", totals.NormalParts)
	}

	return b.String()
}

// ExportSummaryText writes SummaryText to a file.
func ExportSummaryText(result Result, outputPath string) error {
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return os.WriteFile(outputPath, []byte(SummaryText(result)), 0o644)
}
