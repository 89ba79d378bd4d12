package internal

// RawRecord is one keyed row from an external tabular source. Keys are the
// original header labels exactly as the file spelled them; values may be
// text, numbers or nil depending on the source.
type RawRecord map[string]any

type RecordSource string

const (
	SourceCSV       RecordSource = "csv"
	SourceXLSX      RecordSource = "xlsx"
	SourceHTMLTable RecordSource = "html_table"
	SourceSample    RecordSource = "sample"
)

type Status string

const (
	StatusWithinNorms Status = "Within Norms"
	StatusExcess      Status = "Excess Inventory"
	StatusShort       Status = "Short Inventory"
)

// CanonicalItem is one inventory row after field resolution and coercion.
type CanonicalItem struct {
	Material     string  `json:"material"`
	Description  string  `json:"description"`
	Quantity     float64 `json:"qty"`
	NormQuantity float64 `json:"norm_qty"`
	StockValue   int     `json:"stock_value"`
	Vendor       string  `json:"vendor"`
}

// ProcessedItem is a CanonicalItem with its variance and classification.
type ProcessedItem struct {
	CanonicalItem
	VariancePercent float64 `json:"variance_percent"`
	VarianceValue   float64 `json:"variance_value"`
	Status          Status  `json:"status"`
}

// StatusBucket holds the part count and summed stock value for one status.
type StatusBucket struct {
	Count int `json:"count"`
	Value int `json:"value"`
}

// Summary partitions the processed items across the three statuses.
type Summary struct {
	WithinNorms StatusBucket `json:"within_norms"`
	Excess      StatusBucket `json:"excess"`
	Short       StatusBucket `json:"short"`
}

func (s Summary) TotalCount() int {
	return s.WithinNorms.Count + s.Excess.Count + s.Short.Count
}

func (s Summary) TotalValue() int {
	return s.WithinNorms.Value + s.Excess.Value + s.Short.Value
}

// VendorTotals is the per-vendor rollup with per-status sub-splits.
type VendorTotals struct {
	Vendor      string  `json:"vendor"`
	TotalParts  int     `json:"total_parts"`
	TotalQty    float64 `json:"total_qty"`
	TotalRM     float64 `json:"total_rm"`
	TotalValue  int     `json:"total_value"`
	ShortParts  int     `json:"short_parts"`
	ExcessParts int     `json:"excess_parts"`
	NormalParts int     `json:"normal_parts"`
	ShortValue  int     `json:"short_value"`
	ExcessValue int     `json:"excess_value"`
	NormalValue int     `json:"normal_value"`
}
