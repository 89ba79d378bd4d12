package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"stocklens/internal"
)

// DB is the watcher's bookkeeping ledger: which dropped files were already
// processed and what each run produced. Analysis data itself is never
// persisted; every run is a full recompute from its input.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS files (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  path TEXT NOT NULL,
  hash TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'found',
  reportRef TEXT,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  UNIQUE(hash)
);
CREATE INDEX IF NOT EXISTS idx_files_status ON files(status);

CREATE TABLE IF NOT EXISTS runs (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  fileId INTEGER NOT NULL,
  tolerance REAL NOT NULL,
  items INTEGER NOT NULL,
  short INTEGER NOT NULL,
  excess INTEGER NOT NULL,
  normal INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(fileId) REFERENCES files(id)
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// FileRow is one entry of the watcher ledger.
type FileRow struct {
	ID        int
	Path      string
	Hash      string
	Status    string
	ReportRef string
}

// SeenHash reports whether a file with this content hash was already picked
// up, regardless of its path or name.
func (d *DB) SeenHash(hash string) (bool, error) {
	var id int
	err := d.conn.QueryRow(`SELECT id FROM files WHERE hash = ?`, hash).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (d *DB) UpsertFile(path, hash, status string) (int64, error) {
	_, err := d.conn.Exec(`
INSERT INTO files (path, hash, status)
VALUES (?, ?, ?)
ON CONFLICT(hash) DO UPDATE SET
  path=excluded.path,
  status=excluded.status,
  updatedAt=CURRENT_TIMESTAMP
`, path, hash, status)
	if err != nil {
		return 0, err
	}

	var id int64
	if err := d.conn.QueryRow(`SELECT id FROM files WHERE hash = ?`, hash).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (d *DB) UpdateFileStatus(fileID int64, status, reportRef string) error {
	_, err := d.conn.Exec(`
UPDATE files SET status = ?, reportRef = ?, updatedAt = CURRENT_TIMESTAMP WHERE id = ?
`, status, reportRef, fileID)
	return err
}

func (d *DB) ListFilesByStatus(status string, limit int) ([]FileRow, error) {
	rows, err := d.conn.Query(`
SELECT id, path, hash, status, COALESCE(reportRef, '')
FROM files WHERE status = ? ORDER BY createdAt ASC LIMIT ?
`, status, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []FileRow
	for rows.Next() {
		var row FileRow
		if err := rows.Scan(&row.ID, &row.Path, &row.Hash, &row.Status, &row.ReportRef); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) InsertRun(fileID int64, tolerance float64, summary internal.Summary) error {
	_, err := d.conn.Exec(`
INSERT INTO runs (fileId, tolerance, items, short, excess, normal)
VALUES (?, ?, ?, ?, ?, ?)
`, fileID, tolerance, summary.TotalCount(), summary.Short.Count, summary.Excess.Count, summary.WithinNorms.Count)
	return err
}
