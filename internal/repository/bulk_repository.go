package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
)

// maxBindParams is the PostgreSQL limit on placeholders in one statement.
const maxBindParams = 65535

// BulkWriter replaces the contents of a table in bulk. Table and column names
// come from code, never from user input.
type BulkWriter interface {
	// DeleteAll removes every row from table and returns how many were removed.
	DeleteAll(ctx context.Context, table string) (int64, error)
	// InsertBatch inserts rows with unordered semantics: a row whose key
	// already exists is skipped and its siblings are still written. It
	// returns the number of rows actually stored.
	InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) (int64, error)
	Count(ctx context.Context, table string) (int64, error)
}

type bulkRepository struct {
	db *sql.DB
}

// NewBulkRepository creates a new instance of BulkWriter
func NewBulkRepository(db *sql.DB) BulkWriter {
	return &bulkRepository{db: db}
}

func (r *bulkRepository) DeleteAll(ctx context.Context, table string) (int64, error) {
	query := "DELETE FROM " + pgx.Identifier{table}.Sanitize()

	result, err := r.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("failed to clear %s: %w", table, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return deleted, nil
}

func (r *bulkRepository) InsertBatch(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	if len(columns) == 0 {
		return 0, fmt.Errorf("insert into %s: no columns", table)
	}

	perStatement := maxBindParams / len(columns)

	var inserted int64
	for start := 0; start < len(rows); start += perStatement {
		end := min(start+perStatement, len(rows))

		n, err := r.insertRows(ctx, table, columns, rows[start:end])
		if err != nil {
			return inserted, err
		}
		inserted += n
	}

	return inserted, nil
}

func (r *bulkRepository) insertRows(ctx context.Context, table string, columns []string, rows [][]any) (int64, error) {
	query, args, err := buildInsert(table, columns, rows)
	if err != nil {
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return n, nil
}

func (r *bulkRepository) Count(ctx context.Context, table string) (int64, error) {
	var count int64
	query := "SELECT COUNT(*) FROM " + pgx.Identifier{table}.Sanitize()

	if err := r.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return count, nil
}

// buildInsert renders a multi-row INSERT ... ON CONFLICT DO NOTHING.
func buildInsert(table string, columns []string, rows [][]any) (string, []any, error) {
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}

	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(pgx.Identifier{table}.Sanitize())
	b.WriteString(" (")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(") VALUES ")

	args := make([]any, 0, len(rows)*len(columns))
	for i, row := range rows {
		if len(row) != len(columns) {
			return "", nil, fmt.Errorf("insert into %s: row %d has %d values, want %d", table, i, len(row), len(columns))
		}
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteByte('(')
		for j, v := range row {
			if j > 0 {
				b.WriteString(", ")
			}
			args = append(args, v)
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(len(args)))
		}
		b.WriteByte(')')
	}
	b.WriteString(" ON CONFLICT DO NOTHING")

	return b.String(), args, nil
}
