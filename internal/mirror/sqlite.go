package mirror

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite is a Mirror backed by a single-file SQLite database.
// One table per store, named after the store.
type SQLite struct {
	db    *sql.DB
	table string // quoted identifier, safe to splice into statements
}

var _ Mirror = (*SQLite)(nil)

// OpenSQLite creates or opens a SQLite database at the given path and binds
// the mirror to the table named after the store.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - NORMAL synchronous mode (balance durability/performance)
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func OpenSQLite(path, store string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	return &SQLite{db: db, table: quoteIdent(store)}, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// quoteIdent quotes a table identifier so arbitrary store names are safe
// to splice into statements. SQLite doubles embedded quotes.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// EnsureSchema creates the store's table if it does not exist. Idempotent.
// id is the primary key so Replace upserts instead of appending duplicates.
func (s *SQLite) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (id INTEGER PRIMARY KEY, name TEXT, data TEXT)
	`, s.table))
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// LoadAll returns all mirrored rows ordered by id ascending, so replay
// reconstructs the original insertion order.
func (s *SQLite) LoadAll(ctx context.Context) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT id, name, data FROM %s ORDER BY id ASC
	`, s.table))
	if err != nil {
		return nil, fmt.Errorf("query rows: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.ID, &r.Name, &r.Data); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	if out == nil {
		out = []Row{}
	}
	return out, nil
}

// Insert writes a new row.
func (s *SQLite) Insert(ctx context.Context, id int64, name, data string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		INSERT INTO %s (id, name, data) VALUES (?, ?, ?)
	`, s.table), id, name, data)
	if err != nil {
		return fmt.Errorf("insert row: %w", err)
	}
	return nil
}

// Replace upserts a row keyed by id.
func (s *SQLite) Replace(ctx context.Context, id int64, name, data string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		REPLACE INTO %s (id, name, data) VALUES (?, ?, ?)
	`, s.table), id, name, data)
	if err != nil {
		return fmt.Errorf("replace row: %w", err)
	}
	return nil
}

// DeleteID removes the row with the given id.
func (s *SQLite) DeleteID(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		DELETE FROM %s WHERE id = ?
	`, s.table), id)
	if err != nil {
		return fmt.Errorf("delete row by id: %w", err)
	}
	return nil
}

// DeleteName removes the row with the given name.
func (s *SQLite) DeleteName(ctx context.Context, name string) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		DELETE FROM %s WHERE name = ?
	`, s.table), name)
	if err != nil {
		return fmt.Errorf("delete row by name: %w", err)
	}
	return nil
}

// DeleteRange removes all rows with lo <= id <= hi.
func (s *SQLite) DeleteRange(ctx context.Context, lo, hi int64) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		DELETE FROM %s WHERE id BETWEEN ? AND ?
	`, s.table), lo, hi)
	if err != nil {
		return fmt.Errorf("delete row range: %w", err)
	}
	return nil
}

// Clear removes every row.
func (s *SQLite) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, fmt.Sprintf(`
		DELETE FROM %s
	`, s.table))
	if err != nil {
		return fmt.Errorf("clear rows: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
