package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/perfkit/boostd/internal/domain"
)

// RecordWindow inserts an admitted hint window into history.
func (d *DB) RecordWindow(w domain.HintWindow) error {
	_, err := d.db.Exec(
		`INSERT INTO hint_windows (id, workload, hint, kind, duration_ms, issued_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		w.ID, w.Workload.String(), w.Hint, w.Kind.String(), w.DurationMs, w.IssuedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("record window: %w", err)
	}
	return nil
}

// MarkReverted stamps the window's reversion time.
func (d *DB) MarkReverted(id string) error {
	res, err := d.db.Exec(
		`UPDATE hint_windows SET reverted_at = ? WHERE id = ?`,
		time.Now().UnixMilli(), id,
	)
	if err != nil {
		return fmt.Errorf("mark reverted: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrWindowNotFound
	}
	return nil
}

// ListWindows returns the most recent hint windows, newest first.
func (d *DB) ListWindows(limit int) ([]domain.HintWindow, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := d.db.Query(
		`SELECT id, workload, hint, kind, duration_ms, issued_at, reverted_at
		 FROM hint_windows ORDER BY issued_at DESC, id LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	defer rows.Close()

	var out []domain.HintWindow
	for rows.Next() {
		var (
			w          domain.HintWindow
			workload   string
			kind       string
			issuedAt   int64
			revertedAt sql.NullInt64
		)
		if err := rows.Scan(&w.ID, &workload, &w.Hint, &kind, &w.DurationMs, &issuedAt, &revertedAt); err != nil {
			return nil, fmt.Errorf("scan window: %w", err)
		}
		if parsed, ok := domain.ParseWorkload(workload); ok {
			w.Workload = parsed
		}
		if kind == domain.HintMode.String() {
			w.Kind = domain.HintMode
		}
		w.IssuedAt = time.UnixMilli(issuedAt)
		if revertedAt.Valid {
			t := time.UnixMilli(revertedAt.Int64)
			w.RevertedAt = &t
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// AddGamePackage persists a game package. Idempotent.
func (d *DB) AddGamePackage(pkg string) error {
	_, err := d.db.Exec(
		`INSERT INTO game_packages (package, added_at) VALUES (?, ?)
		 ON CONFLICT(package) DO NOTHING`,
		pkg, time.Now().UnixMilli(),
	)
	return err
}

// ListGamePackages returns all persisted game packages.
func (d *DB) ListGamePackages() ([]string, error) {
	rows, err := d.db.Query(`SELECT package FROM game_packages ORDER BY package`)
	if err != nil {
		return nil, fmt.Errorf("list game packages: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var pkg string
		if err := rows.Scan(&pkg); err != nil {
			return nil, err
		}
		out = append(out, pkg)
	}
	return out, rows.Err()
}
