package tablestore

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Table is one raw table with its stable column names. Cell values are
// normalised to time.Time, int64, float64, string or nil.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]any
}

// ErrTableNotFound indicates the named table does not exist in the store.
var ErrTableNotFound = errors.New("tablestore: table not found")

// Store reads arbitrary named tables from Postgres. It is the only blocking
// collaborator of a dashboard render; failures propagate to the caller
// without retries.
type Store struct {
	pool *pgxpool.Pool
}

// New wraps a connection pool. The pool's lifecycle belongs to the caller.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// ListTables returns every base table name in the public schema, sorted.
func (s *Store) ListTables(ctx context.Context) ([]string, error) {
	const query = `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public' AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ReadTable fetches all rows of a named table.
func (s *Store) ReadTable(ctx context.Context, name string) (Table, error) {
	query := fmt.Sprintf("SELECT * FROM %s", pgx.Identifier{name}.Sanitize())
	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return Table{}, classify(name, err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, field := range fields {
		columns[i] = field.Name
	}

	tbl := Table{Name: name, Columns: columns}
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return Table{}, err
		}
		row := make([]any, len(values))
		for i, v := range values {
			row[i] = normalize(v)
		}
		tbl.Rows = append(tbl.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Table{}, classify(name, err)
	}
	return tbl, nil
}

// classify maps undefined_table to ErrTableNotFound; everything else
// propagates unmodified.
func classify(name string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42P01" {
		return fmt.Errorf("%w: %s", ErrTableNotFound, name)
	}
	return err
}

func normalize(v any) any {
	switch val := v.(type) {
	case pgtype.Numeric:
		f, err := val.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}
		return f.Float64
	case float32:
		return float64(val)
	case int32:
		return int64(val)
	case int:
		return int64(val)
	default:
		return v
	}
}
