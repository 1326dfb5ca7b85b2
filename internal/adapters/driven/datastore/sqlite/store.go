// Package sqlite provides the data-store connector over a SQLite
// database (the Northwind transactional records) using the pure-Go
// modernc.org/sqlite driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/domain"
	"github.com/MARTINA-MOUSA/Retail-Analytics-Copilot/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.DataStore = (*Store)(nil)

// compatibilityViews maps lowercase view names onto the Northwind
// tables they expose. Generated queries routinely use the lowercase
// spellings, so the views are created at startup if missing.
var compatibilityViews = map[string]string{
	"orders":      "Orders",
	"order_items": `"Order Details"`,
	"products":    "Products",
	"customers":   "Customers",
}

// Store is a SQLite-backed data store.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens the database at path. The file must already exist;
// this connector never creates or populates a database.
func NewStore(path string) (*Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrDataStoreUnavailable, path)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: path}

	if err := s.ensureViews(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating compatibility views: %w", err)
	}

	return s, nil
}

// ensureViews creates the lowercase compatibility views if they don't exist.
func (s *Store) ensureViews(ctx context.Context) error {
	for view, table := range compatibilityViews {
		stmt := fmt.Sprintf("CREATE VIEW IF NOT EXISTS %s AS SELECT * FROM %s;", view, table)
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("view %s: %w", view, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// TableNames returns all user table names in sqlite_master order.
func (s *Store) TableNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'")
	if err != nil {
		return nil, fmt.Errorf("listing tables: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning table name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SchemaDescription returns a human-readable table/column listing with
// primary-key and not-null annotations, suitable for prompts.
func (s *Store) SchemaDescription(ctx context.Context) (string, error) {
	tables, err := s.TableNames(ctx)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("Database Schema:")

	for _, table := range tables {
		columns, err := s.tableColumns(ctx, table)
		if err != nil {
			return "", err
		}

		sb.WriteString("\n\n")
		sb.WriteString(table)
		sb.WriteString(":")
		for _, col := range columns {
			sb.WriteString(fmt.Sprintf("\n  - %s: %s", col.name, col.typ))
			if col.primaryKey {
				sb.WriteString(" (PRIMARY KEY)")
			}
			if col.notNull {
				sb.WriteString(" NOT NULL")
			}
		}
	}

	return sb.String(), nil
}

// column holds one PRAGMA table_info row.
type column struct {
	name       string
	typ        string
	notNull    bool
	primaryKey bool
}

// tableColumns introspects one table via PRAGMA table_info.
func (s *Store) tableColumns(ctx context.Context, table string) ([]column, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%q)", table))
	if err != nil {
		return nil, fmt.Errorf("table info for %s: %w", table, err)
	}
	defer rows.Close()

	var columns []column
	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notNull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dflt, &pk); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		columns = append(columns, column{
			name:       name,
			typ:        typ,
			notNull:    notNull != 0,
			primaryKey: pk != 0,
		})
	}
	return columns, rows.Err()
}

// Execute runs one statement. SELECT queries return rows and column
// names; other statements return an empty result on success. Any
// execution failure is reported as a plain message in QueryResult.Err,
// never as a typed error.
func (s *Store) Execute(ctx context.Context, query string) (driven.QueryResult, error) {
	trimmed := strings.TrimSpace(query)

	if !strings.HasPrefix(strings.ToUpper(trimmed), "SELECT") {
		if _, err := s.db.ExecContext(ctx, trimmed); err != nil {
			return driven.QueryResult{Err: err.Error()}, nil
		}
		return driven.QueryResult{}, nil
	}

	rows, err := s.db.QueryContext(ctx, trimmed)
	if err != nil {
		return driven.QueryResult{Err: err.Error()}, nil
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return driven.QueryResult{Err: err.Error()}, nil
	}

	result := driven.QueryResult{
		Rows:    []map[string]any{},
		Columns: columns,
	}

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return driven.QueryResult{Err: err.Error()}, nil
		}

		row := make(map[string]any, len(columns))
		for i, col := range columns {
			// Normalise byte slices so results marshal as strings.
			if b, ok := values[i].([]byte); ok {
				values[i] = string(b)
			}
			row[col] = values[i]
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return driven.QueryResult{Err: err.Error()}, nil
	}

	return result, nil
}
