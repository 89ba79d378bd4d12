package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"stocklens/internal"
)

// ReadFile loads keyed rows out of a tabular file, dispatching on the
// extension. Values come back as text; interpretation is left to the
// analysis layer.
func ReadFile(path string) ([]internal.RawRecord, internal.RecordSource, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	return FromBytes(filepath.Base(path), blob)
}

// FromBytes parses an in-memory file, e.g. an HTTP upload.
func FromBytes(filename string, blob []byte) ([]internal.RawRecord, internal.RecordSource, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		records, err := parseCSV(blob)
		return records, internal.SourceCSV, err
	case ".xlsx", ".xls":
		records, err := parseXLSX(blob)
		return records, internal.SourceXLSX, err
	case ".html", ".htm":
		records, err := parseHTMLTable(blob)
		return records, internal.SourceHTMLTable, err
	default:
		return nil, "", fmt.Errorf("unsupported input type: %s", filename)
	}
}

// SupportedExt reports whether a filename looks like something ReadFile can
// handle. The watcher uses it to pick files out of the drop directory.
func SupportedExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv", ".xlsx", ".xls", ".html", ".htm":
		return true
	}
	return false
}

func parseCSV(blob []byte) ([]internal.RawRecord, error) {
	r := csv.NewReader(bytes.NewReader(blob))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	rows, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	headers := trimCells(rows[0])
	return rowsToRecords(headers, rows[1:]), nil
}

func parseXLSX(blob []byte) ([]internal.RawRecord, error) {
	f, err := excelize.OpenReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		headerIdx := firstNonEmptyRow(rows)
		if headerIdx < 0 {
			continue
		}
		headers := trimCells(rows[headerIdx])
		return rowsToRecords(headers, rows[headerIdx+1:]), nil
	}

	return nil, nil
}

func parseHTMLTable(blob []byte) ([]internal.RawRecord, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(blob))
	if err != nil {
		return nil, err
	}

	var records []internal.RawRecord
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		rows := table.Find("tr")
		if rows.Length() < 2 {
			return true
		}

		headers := []string{}
		rows.First().Find("th,td").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, normalizeSpaces(cell.Text()))
		})

		raw := [][]string{}
		rows.Slice(1, rows.Length()).Each(func(_ int, row *goquery.Selection) {
			cells := []string{}
			row.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, normalizeSpaces(cell.Text()))
			})
			raw = append(raw, cells)
		})

		records = rowsToRecords(headers, raw)
		return false
	})

	return records, nil
}

// rowsToRecords zips each data row against the header labels, skipping rows
// with no content at all. A short row simply leaves its tail columns unset.
func rowsToRecords(headers []string, rows [][]string) []internal.RawRecord {
	out := make([]internal.RawRecord, 0, len(rows))
	for _, row := range rows {
		if emptyRow(row) {
			continue
		}
		record := internal.RawRecord{}
		for i, label := range headers {
			if label == "" {
				continue
			}
			if i < len(row) {
				record[label] = row[i]
			}
		}
		if len(record) > 0 {
			out = append(out, record)
		}
	}
	return out
}

func firstNonEmptyRow(rows [][]string) int {
	for i, row := range rows {
		if !emptyRow(row) {
			return i
		}
	}
	return -1
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func trimCells(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		out[i] = strings.TrimSpace(cell)
	}
	return out
}

func normalizeSpaces(input string) string {
	return strings.Join(strings.Fields(input), " ")
}
