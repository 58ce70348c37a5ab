// Package engine abstracts the tabular query engine behind the two operations
// the pipeline needs: materialize a named table, and run an ad hoc read query.
package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ColumnType is the logical type of a table column.
type ColumnType string

const (
	TypeText    ColumnType = "TEXT"
	TypeInteger ColumnType = "INTEGER"
	TypeReal    ColumnType = "REAL"
	TypeBoolean ColumnType = "BOOLEAN"
	TypeDate    ColumnType = "DATE"
)

// Column describes one column of a table.
type Column struct {
	Name string
	Type ColumnType
}

// Table is a named, row-oriented snapshot. Rows keep materialization order.
type Table struct {
	Name    string
	Columns []Column
	Rows    [][]any
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// ResultSet is the row-oriented result of an ad hoc query.
type ResultSet struct {
	Columns []string
	Rows    [][]any
}

// Engine executes named transformations and ad hoc read queries.
type Engine interface {
	// ReplaceTable drops any table with the same name and materializes t.
	ReplaceTable(ctx context.Context, t *Table) error
	// ReadTable returns every row of a table in materialization order.
	ReadTable(ctx context.Context, name string) (*Table, error)
	HasTable(ctx context.Context, name string) (bool, error)
	// DropTable removes a table; a missing table is not an error.
	DropTable(ctx context.Context, name string) error
	// Query runs a read-only statement. Statements that write are rejected.
	Query(ctx context.Context, stmt string) (*ResultSet, error)
	Close() error
}

// ErrTableNotFound is returned when reading a table that does not exist.
var ErrTableNotFound = errors.New("table not found")

// QueryError wraps a failed ad hoc statement.
type QueryError struct {
	Statement string
	Err       error
}

func (e *QueryError) Error() string {
	stmt := strings.Join(strings.Fields(e.Statement), " ")
	if len(stmt) > 120 {
		stmt = stmt[:117] + "..."
	}
	return fmt.Sprintf("query failed: %v (statement: %s)", e.Err, stmt)
}

func (e *QueryError) Unwrap() error { return e.Err }

// QuoteIdent quotes an identifier for use in a SQL statement.
func QuoteIdent(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

// QuoteString quotes a string literal for use in a SQL statement.
func QuoteString(v string) string {
	return "'" + strings.ReplaceAll(v, "'", "''") + "'"
}
