package watcher

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"stocklens/internal/analysis"
	"stocklens/internal/config"
	"stocklens/internal/ingest"
	"stocklens/internal/storage"
)

// Service polls the drop directory and analyzes every file it has not seen
// before, writing the reports into the output directory.
type Service struct {
	db  *storage.DB
	cfg config.Config
}

func NewService(db *storage.DB, cfg config.Config) *Service {
	return &Service{db: db, cfg: cfg}
}

func (s *Service) Run(ctx context.Context) error {
	for {
		if err := s.runCycle(); err != nil {
			fmt.Printf("watcher cycle error: %v\n", err)
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(time.Duration(s.cfg.WatchIntervalSec) * time.Second):
		}
	}
}

func (s *Service) runCycle() error {
	entries, err := os.ReadDir(s.cfg.WatchDir)
	if err != nil {
		if os.IsNotExist(err) {
			return os.MkdirAll(s.cfg.WatchDir, 0o755)
		}
		return err
	}

	picked, processed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || !ingest.SupportedExt(entry.Name()) {
			continue
		}
		path := filepath.Join(s.cfg.WatchDir, entry.Name())
		picked++

		handled, err := s.handleFile(path)
		if err != nil {
			fmt.Printf("watcher: %s: %v\n", entry.Name(), err)
			continue
		}
		if handled {
			processed++
		}
	}

	if processed > 0 {
		fmt.Printf("watcher cycle done picked=%d processed=%d\n", picked, processed)
	}
	return nil
}

// handleFile returns false when the file's content was already processed in
// an earlier cycle.
func (s *Service) handleFile(path string) (bool, error) {
	blob, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	sum := sha256.Sum256(blob)
	hash := hex.EncodeToString(sum[:])
	seen, err := s.db.SeenHash(hash)
	if err != nil {
		return false, err
	}
	if seen {
		return false, nil
	}

	fileID, err := s.db.UpsertFile(path, hash, "found")
	if err != nil {
		return false, err
	}

	records, source, err := ingest.FromBytes(filepath.Base(path), blob)
	if err != nil {
		_ = s.db.UpdateFileStatus(fileID, "rejected", "")
		return false, err
	}

	result, err := analysis.Analyze(records, source, s.cfg.TolerancePercent)
	if err != nil {
		// Unresolvable columns: record it and move on. The drop directory
		// has no user to show a fallback dataset to.
		_ = s.db.UpdateFileStatus(fileID, "rejected", "")
		return false, err
	}
	if result.Accepted == 0 {
		_ = s.db.UpdateFileStatus(fileID, "empty", "")
		return false, fmt.Errorf("no valid inventory rows")
	}

	reportRef := ""
	if s.cfg.WatchAutoExport {
		reportRef = filepath.Join(s.cfg.OutputDir, "watch", reportName(path, hash))
		if err := analysis.ExportXLSX(result, reportRef); err != nil {
			_ = s.db.UpdateFileStatus(fileID, "export_failed", "")
			return false, err
		}
		summaryRef := strings.TrimSuffix(reportRef, ".xlsx") + ".txt"
		if err := analysis.ExportSummaryText(result, summaryRef); err != nil {
			_ = s.db.UpdateFileStatus(fileID, "export_failed", "")
			return false, err
		}
	}

	if err := s.db.InsertRun(fileID, result.Tolerance, result.Summary); err != nil {
		return false, err
	}
	if err := s.db.UpdateFileStatus(fileID, "processed", reportRef); err != nil {
		return false, err
	}

	fmt.Printf("watcher processed %s items=%d short=%d excess=%d normal=%d\n",
		filepath.Base(path), result.Accepted, result.Summary.Short.Count,
		result.Summary.Excess.Count, result.Summary.WithinNorms.Count)
	return true, nil
}

func reportName(path, hash string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return fmt.Sprintf("%s_%s.xlsx", base, hash[:8])
}
