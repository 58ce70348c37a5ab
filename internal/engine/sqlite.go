package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLite is an Engine backed by an embedded SQLite database.
type SQLite struct {
	db     *sqlx.DB
	logger *zap.Logger
}

var _ Engine = (*SQLite)(nil)

// OpenSQLite opens (or creates) the database at path. Use ":memory:" for a
// throwaway engine. The pool is limited to one connection so an in-memory
// database is shared by every call.
func OpenSQLite(path string, logger *zap.Logger) (*SQLite, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	for _, pragma := range []string{"PRAGMA busy_timeout = 5000", "PRAGMA journal_mode = MEMORY"} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure sqlite: %w", err)
		}
	}
	return &SQLite{db: db, logger: logger}, nil
}

// storageType maps logical types onto SQLite declarations. Booleans are stored
// as 0/1 integers and dates as ISO text.
func storageType(t ColumnType) string {
	switch t {
	case TypeInteger, TypeBoolean:
		return "INTEGER"
	case TypeReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

func (s *SQLite) ReplaceTable(ctx context.Context, t *Table) error {
	if t == nil || t.Name == "" {
		return errors.New("table name cannot be empty")
	}
	if len(t.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", t.Name)
	}
	cols := make([]string, len(t.Columns))
	marks := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		cols[i] = QuoteIdent(c.Name) + " " + storageType(c.Type)
		marks[i] = "?"
	}
	name := QuoteIdent(t.Name)

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return fmt.Errorf("drop %s: %w", t.Name, err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", name, strings.Join(cols, ", "))); err != nil {
		return fmt.Errorf("create %s: %w", t.Name, err)
	}
	stmt, err := tx.PreparexContext(ctx, fmt.Sprintf("INSERT INTO %s VALUES (%s)", name, strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert into %s: %w", t.Name, err)
	}
	defer stmt.Close()
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("insert into %s: row %d has %d values, want %d", t.Name, i+1, len(row), len(t.Columns))
		}
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return fmt.Errorf("insert into %s row %d: %w", t.Name, i+1, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", t.Name, err)
	}
	s.logger.Debug("Materialized table",
		zap.String("table", t.Name),
		zap.Int("rows", len(t.Rows)),
		zap.Int("columns", len(t.Columns)))
	return nil
}

func (s *SQLite) ReadTable(ctx context.Context, name string) (*Table, error) {
	ok, err := s.HasTable(ctx, name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("read %s: %w", name, ErrTableNotFound)
	}
	var info []struct {
		CID       int     `db:"cid"`
		Name      string  `db:"name"`
		Type      string  `db:"type"`
		NotNull   int     `db:"notnull"`
		Default   *string `db:"dflt_value"`
		PrimaryKY int     `db:"pk"`
	}
	if err := s.db.SelectContext(ctx, &info, "SELECT * FROM pragma_table_info(?)", name); err != nil {
		return nil, fmt.Errorf("describe %s: %w", name, err)
	}
	t := &Table{Name: name, Columns: make([]Column, len(info))}
	for i, c := range info {
		t.Columns[i] = Column{Name: c.Name, Type: ColumnType(strings.ToUpper(c.Type))}
	}
	rows, err := s.db.QueryxContext(ctx, "SELECT * FROM "+QuoteIdent(name)+" ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	defer rows.Close()
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", name, err)
		}
		t.Rows = append(t.Rows, normalizeRow(vals))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return t, nil
}

func (s *SQLite) HasTable(ctx context.Context, name string) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, "SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name); err != nil {
		return false, fmt.Errorf("lookup table %s: %w", name, err)
	}
	return n > 0, nil
}

func (s *SQLite) DropTable(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, "DROP TABLE IF EXISTS "+QuoteIdent(name)); err != nil {
		return fmt.Errorf("drop %s: %w", name, err)
	}
	return nil
}

// Query runs one read-only statement. Input holding several statements or a
// non-query statement is rejected before execution; query_only guards the rest.
func (s *SQLite) Query(ctx context.Context, stmt string) (*ResultSet, error) {
	if err := checkReadOnly(stmt); err != nil {
		return nil, &QueryError{Statement: stmt, Err: err}
	}
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()
	if _, err := conn.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
		return nil, fmt.Errorf("enable read-only mode: %w", err)
	}
	defer func() {
		if _, err := conn.ExecContext(context.Background(), "PRAGMA query_only = OFF"); err != nil {
			s.logger.Warn("Failed to leave read-only mode", zap.Error(err))
		}
	}()

	rows, err := conn.QueryxContext(ctx, stmt)
	if err != nil {
		return nil, &QueryError{Statement: stmt, Err: err}
	}
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, &QueryError{Statement: stmt, Err: err}
	}
	rs := &ResultSet{Columns: cols}
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, &QueryError{Statement: stmt, Err: err}
		}
		rs.Rows = append(rs.Rows, normalizeRow(vals))
	}
	if err := rows.Err(); err != nil {
		return nil, &QueryError{Statement: stmt, Err: err}
	}
	s.logger.Debug("Ran ad hoc query", zap.Int("rows", len(rs.Rows)))
	return rs, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func normalizeRow(vals []any) []any {
	for i, v := range vals {
		if b, ok := v.([]byte); ok {
			vals[i] = string(b)
		}
	}
	return vals
}
