package watcher

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"stocklens/internal/config"
	"stocklens/internal/storage"
)

func testService(t *testing.T) (*Service, config.Config) {
	t.Helper()
	tmp := t.TempDir()
	cfg := config.Config{
		DBPath:           filepath.Join(tmp, "data", "stocklens.db"),
		OutputDir:        filepath.Join(tmp, "out"),
		WatchDir:         filepath.Join(tmp, "drop"),
		WatchIntervalSec: 1,
		WatchAutoExport:  true,
		TolerancePercent: 30,
	}
	if err := os.MkdirAll(cfg.WatchDir, 0o755); err != nil {
		t.Fatal(err)
	}

	db, err := storage.Open(cfg.DBPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })

	return NewService(db, cfg), cfg
}

func TestWatcherProcessesDroppedFile(t *testing.T) {
	svc, cfg := testService(t)

	csv := "Material,QTY,RM IN QTY,Stock_Value,Vendor\nP1,28,20,100,Acme\nP2,8,12,50,Acme\n"
	dropPath := filepath.Join(cfg.WatchDir, "inventory.csv")
	if err := os.WriteFile(dropPath, []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := svc.runCycle(); err != nil {
		t.Fatal(err)
	}

	rows, err := svc.db.ListFilesByStatus("processed", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: %+v", rows)
	}
	if _, err := os.Stat(rows[0].ReportRef); err != nil {
		t.Fatal(err)
	}

	// Second cycle sees the same content hash and leaves it alone.
	if err := svc.runCycle(); err != nil {
		t.Fatal(err)
	}
	rows, err = svc.db.ListFilesByStatus("processed", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("reprocessed: %+v", rows)
	}
}

func TestWatcherMarksFailedSummaryExport(t *testing.T) {
	svc, cfg := testService(t)

	csv := "Material,QTY,RM IN QTY\nP1,28,20\n"
	if err := os.WriteFile(filepath.Join(cfg.WatchDir, "inventory.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	// Occupy the summary path with a directory so the text export fails
	// after the xlsx report was already written.
	sum := sha256.Sum256([]byte(csv))
	hash := hex.EncodeToString(sum[:])
	summaryRef := filepath.Join(cfg.OutputDir, "watch", fmt.Sprintf("inventory_%s.txt", hash[:8]))
	if err := os.MkdirAll(summaryRef, 0o755); err != nil {
		t.Fatal(err)
	}

	if err := svc.runCycle(); err != nil {
		t.Fatal(err)
	}

	rows, err := svc.db.ListFilesByStatus("export_failed", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: %+v", rows)
	}
	if rows, err := svc.db.ListFilesByStatus("found", 10); err != nil || len(rows) != 0 {
		t.Fatalf("stuck rows: %+v err=%v", rows, err)
	}
}

func TestWatcherRejectsUnusableFile(t *testing.T) {
	svc, cfg := testService(t)

	csv := "foo,bar\n1,2\n"
	if err := os.WriteFile(filepath.Join(cfg.WatchDir, "junk.csv"), []byte(csv), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := svc.runCycle(); err != nil {
		t.Fatal(err)
	}

	rows, err := svc.db.ListFilesByStatus("rejected", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("rows: %+v", rows)
	}
}

func TestWatcherIgnoresUnsupportedFiles(t *testing.T) {
	svc, cfg := testService(t)

	if err := os.WriteFile(filepath.Join(cfg.WatchDir, "notes.txt"), []byte("hi"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := svc.runCycle(); err != nil {
		t.Fatal(err)
	}
	for _, status := range []string{"found", "processed", "rejected"} {
		rows, err := svc.db.ListFilesByStatus(status, 10)
		if err != nil {
			t.Fatal(err)
		}
		if len(rows) != 0 {
			t.Fatalf("status %s: %+v", status, rows)
		}
	}
}
