// Package session owns the raw/cleaned table pair held by the query engine.
//
// A load discards both tables before materializing the new raw table, so a
// cleaned table can never be paired with a raw table it was not derived from.
// The session performs no locking; callers must serialize operations.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/KaramelBytes/tidyset-cli/internal/analytics"
	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
	"github.com/KaramelBytes/tidyset-cli/internal/engine"
	"github.com/KaramelBytes/tidyset-cli/internal/pipeline"
	"github.com/KaramelBytes/tidyset-cli/internal/quality"
)

var (
	// ErrNoRawTable is returned by operations that need a loaded dataset.
	ErrNoRawTable = errors.New("no dataset loaded")
	// ErrNoCleanedTable is returned by operations that need a cleaning run.
	ErrNoCleanedTable = errors.New("dataset has not been cleaned")
)

const stateTable = "_session"

// State describes the current session, persisted next to the tables.
type State struct {
	ID        string                      `json:"id"`
	Source    string                      `json:"source"`
	LoadedAt  time.Time                   `json:"loaded_at"`
	CleanedAt *time.Time                  `json:"cleaned_at,omitempty"`
	Params    *dataset.CleaningParameters `json:"params,omitempty"`
	Stats     *CleanStats                 `json:"stats,omitempty"`
}

// CleanStats is the bookkeeping of the last cleaning run.
type CleanStats struct {
	Raw      int `json:"raw"`
	Filtered int `json:"filtered"`
	Imputed  int `json:"imputed"`
}

// Session runs pipeline operations against an engine.
type Session struct {
	engine engine.Engine
	logger *zap.Logger
}

// New binds a session to eng. Neither argument may be nil.
func New(eng engine.Engine, logger *zap.Logger) (*Session, error) {
	if eng == nil {
		return nil, errors.New("engine cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Session{engine: eng, logger: logger}, nil
}

// State returns the persisted session state, or ErrNoRawTable if nothing is loaded.
func (s *Session) State(ctx context.Context) (*State, error) {
	t, err := s.engine.ReadTable(ctx, stateTable)
	if errors.Is(err, engine.ErrTableNotFound) {
		return nil, ErrNoRawTable
	}
	if err != nil {
		return nil, fmt.Errorf("read session state: %w", err)
	}
	if len(t.Rows) == 0 || len(t.Rows[0]) == 0 {
		return nil, ErrNoRawTable
	}
	var st State
	if err := json.Unmarshal([]byte(textOf(t.Rows[0][0])), &st); err != nil {
		return nil, fmt.Errorf("decode session state: %w", err)
	}
	return &st, nil
}

func (s *Session) saveState(ctx context.Context, st *State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session state: %w", err)
	}
	t := &engine.Table{
		Name:    stateTable,
		Columns: []engine.Column{{Name: "state", Type: engine.TypeText}},
		Rows:    [][]any{{string(b)}},
	}
	if err := s.engine.ReplaceTable(ctx, t); err != nil {
		return fmt.Errorf("save session state: %w", err)
	}
	return nil
}

// Load discards the current session and materializes raw as the new raw table.
func (s *Session) Load(ctx context.Context, raw *dataset.RawTable) (*State, error) {
	if raw == nil {
		return nil, errors.New("raw table cannot be nil")
	}
	if err := s.Reset(ctx); err != nil {
		return nil, err
	}
	if err := s.engine.ReplaceTable(ctx, rawToTable(raw)); err != nil {
		return nil, fmt.Errorf("load raw table: %w", err)
	}
	st := &State{ID: uuid.New().String(), Source: raw.Name, LoadedAt: time.Now().UTC()}
	if err := s.saveState(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Info("Loaded raw table",
		zap.String("session", st.ID),
		zap.String("source", raw.Name),
		zap.Int("rows", raw.Len()),
		zap.Int("columns", len(raw.Columns)))
	if missing := quality.MissingColumns(raw.Columns); len(missing) > 0 {
		s.logger.Warn("Raw table is missing required columns", zap.Strings("missing", missing))
	}
	return st, nil
}

// Raw returns the loaded raw table.
func (s *Session) Raw(ctx context.Context) (*dataset.RawTable, error) {
	st, err := s.State(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.engine.ReadTable(ctx, dataset.RawTableName)
	if errors.Is(err, engine.ErrTableNotFound) {
		return nil, ErrNoRawTable
	}
	if err != nil {
		return nil, fmt.Errorf("read raw table: %w", err)
	}
	return tableToRaw(st.Source, t), nil
}

// Clean runs the pipeline over the raw table and replaces the cleaned table.
func (s *Session) Clean(ctx context.Context, p dataset.CleaningParameters) (*pipeline.Result, error) {
	st, err := s.State(ctx)
	if err != nil {
		return nil, err
	}
	raw, err := s.Raw(ctx)
	if err != nil {
		return nil, err
	}
	if err := quality.ValidateRaw(raw); err != nil {
		return nil, fmt.Errorf("clean: %w", err)
	}
	res := pipeline.Run(raw, p)
	if err := s.engine.ReplaceTable(ctx, cleanedToTable(res.Records)); err != nil {
		return nil, fmt.Errorf("materialize cleaned table: %w", err)
	}
	now := time.Now().UTC()
	st.CleanedAt = &now
	st.Params = &p
	st.Stats = &CleanStats{Raw: res.Raw, Filtered: res.Filtered, Imputed: res.Imputed}
	if err := s.saveState(ctx, st); err != nil {
		return nil, err
	}
	s.logger.Info("Cleaned dataset",
		zap.String("session", st.ID),
		zap.Int("raw", res.Raw),
		zap.Int("cleaned", len(res.Records)),
		zap.Int("imputed", res.Imputed))
	return &res, nil
}

// Cleaned returns the cleaned records in their stored order.
func (s *Session) Cleaned(ctx context.Context) ([]dataset.CleanedRecord, error) {
	t, err := s.engine.ReadTable(ctx, dataset.CleanedTableName)
	if errors.Is(err, engine.ErrTableNotFound) {
		return nil, ErrNoCleanedTable
	}
	if err != nil {
		return nil, fmt.Errorf("read cleaned table: %w", err)
	}
	recs, err := tableToCleaned(t)
	if err != nil {
		return nil, fmt.Errorf("decode cleaned table: %w", err)
	}
	return recs, nil
}

// Reset drops the cleaned table, then the raw table, then the session state.
func (s *Session) Reset(ctx context.Context) error {
	for _, name := range []string{dataset.CleanedTableName, dataset.RawTableName, stateTable} {
		if err := s.engine.DropTable(ctx, name); err != nil {
			return fmt.Errorf("reset session: %w", err)
		}
	}
	s.logger.Debug("Session reset")
	return nil
}

// Metrics reports the row counts. RawCount is absent only when nothing is loaded;
// the cleaned counts are absent until a cleaning run has produced a table.
func (s *Session) Metrics(ctx context.Context) (analytics.Metrics, error) {
	var rawCount *int
	hasRaw, err := s.engine.HasTable(ctx, dataset.RawTableName)
	if err != nil {
		return analytics.Metrics{}, err
	}
	if hasRaw {
		rs, err := s.engine.Query(ctx, "SELECT count(*) FROM "+engine.QuoteIdent(dataset.RawTableName))
		if err != nil {
			return analytics.Metrics{}, fmt.Errorf("count raw rows: %w", err)
		}
		n, err := intOf(rs.Rows[0][0])
		if err != nil {
			return analytics.Metrics{}, fmt.Errorf("count raw rows: %w", err)
		}
		c := int(n)
		rawCount = &c
	}
	cleaned, err := s.Cleaned(ctx)
	if errors.Is(err, ErrNoCleanedTable) {
		return analytics.ComputeMetrics(rawCount, nil, false), nil
	}
	if err != nil {
		return analytics.Metrics{}, err
	}
	return analytics.ComputeMetrics(rawCount, cleaned, true), nil
}

// Charts bundles the three derived views of the cleaned set.
type Charts struct {
	Averages  []analytics.GroupAverage `json:"averages"`
	Histogram []analytics.Bucket       `json:"histogram"`
	Scatter   []analytics.Point        `json:"scatter"`
	SampleCap int                      `json:"sample_cap"`
}

// Charts derives the views from the cleaned table. A zero seed draws a fresh sample
// each call; a non-zero seed makes the scatter sample reproducible.
func (s *Session) Charts(ctx context.Context, sampleSize int, seed uint64) (*Charts, error) {
	recs, err := s.Cleaned(ctx)
	if err != nil {
		return nil, err
	}
	sampleSize = analytics.ScatterCap(sampleSize)
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &Charts{
		Averages:  analytics.GroupedAverages(recs),
		Histogram: analytics.SalaryHistogram(recs),
		Scatter:   analytics.ScatterSample(recs, sampleSize, rng),
		SampleCap: sampleSize,
	}, nil
}

// Preview returns up to limit rows of a table. A non-positive limit returns every row.
func (s *Session) Preview(ctx context.Context, table string, limit int) (*engine.ResultSet, error) {
	t, err := s.engine.ReadTable(ctx, table)
	if errors.Is(err, engine.ErrTableNotFound) {
		switch table {
		case dataset.RawTableName:
			return nil, ErrNoRawTable
		case dataset.CleanedTableName:
			return nil, ErrNoCleanedTable
		}
	}
	if err != nil {
		return nil, err
	}
	rows := t.Rows
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return &engine.ResultSet{Columns: t.ColumnNames(), Rows: rows}, nil
}

// Query runs an ad hoc read-only statement against the session tables.
func (s *Session) Query(ctx context.Context, stmt string) (*engine.ResultSet, error) {
	return s.engine.Query(ctx, stmt)
}
