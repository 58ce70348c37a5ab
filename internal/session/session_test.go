package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/KaramelBytes/tidyset-cli/internal/analytics"
	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
	"github.com/KaramelBytes/tidyset-cli/internal/engine"
	"github.com/KaramelBytes/tidyset-cli/internal/quality"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	eng, err := engine.OpenSQLite(":memory:", zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = eng.Close() })
	s, err := New(eng, zap.NewNop())
	require.NoError(t, err)
	return s
}

func sampleRaw() *dataset.RawTable {
	return &dataset.RawTable{
		Name:    "people.csv",
		Columns: append(append([]string{}, dataset.RequiredColumns...), "notes"),
		Records: []dataset.RawRecord{
			{"employee_id": "1", "age": "30", "years_experience": "5", "department": "ENGINEERING", "salary": "$90,000", "remote": "Y", "hired_date": "2020-01-01", "notes": "x"},
			{"employee_id": "2", "age": "abc", "years_experience": "3", "department": "sales", "salary": "50000"},
			{"employee_id": "3", "age": "44", "years_experience": "20", "department": "sales", "salary": "50000", "remote": "no"},
			{"employee_id": "4", "age": "28", "years_experience": "2", "department": "Sales", "salary": "n/a"},
			{"employee_id": "5", "age": "51", "years_experience": "25", "department": "sales", "salary": "$70,000", "remote": "1"},
		},
	}
}

func params() dataset.CleaningParameters {
	return dataset.CleaningParameters{AgeMin: 18, AgeMax: 65, ExpMin: 0, ExpMax: 60}
}

func TestNewRejectsNil(t *testing.T) {
	_, err := New(nil, zap.NewNop())
	require.Error(t, err)
	eng, err := engine.OpenSQLite(":memory:", zap.NewNop())
	require.NoError(t, err)
	defer eng.Close()
	_, err = New(eng, nil)
	require.Error(t, err)
}

func TestMetricsLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)

	m, err := s.Metrics(ctx)
	require.NoError(t, err)
	assert.Nil(t, m.RawCount)
	assert.Nil(t, m.CleanedCount)

	_, err = s.Load(ctx, sampleRaw())
	require.NoError(t, err)
	m, err = s.Metrics(ctx)
	require.NoError(t, err)
	require.NotNil(t, m.RawCount)
	assert.Equal(t, 5, *m.RawCount)
	assert.Nil(t, m.CleanedCount, "absent until cleaned")
	assert.Nil(t, m.DepartmentCount)

	_, err = s.Clean(ctx, params())
	require.NoError(t, err)
	m, err = s.Metrics(ctx)
	require.NoError(t, err)
	require.NotNil(t, m.CleanedCount)
	assert.Equal(t, 4, *m.CleanedCount)
	assert.Equal(t, 2, *m.DepartmentCount)

	require.NoError(t, s.Reset(ctx))
	m, err = s.Metrics(ctx)
	require.NoError(t, err)
	assert.Nil(t, m.RawCount)
	assert.Nil(t, m.CleanedCount)
}

func TestCleanRoundTripsRecords(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	_, err := s.Load(ctx, sampleRaw())
	require.NoError(t, err)

	res, err := s.Clean(ctx, params())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Imputed)

	got, err := s.Cleaned(ctx)
	require.NoError(t, err)
	assert.Equal(t, res.Records, got)

	first := got[0]
	assert.Equal(t, "1", first.EmployeeID)
	assert.Equal(t, dataset.Engineering, first.Department)
	require.NotNil(t, first.Remote)
	assert.True(t, *first.Remote)
	require.NotNil(t, first.HiredDate)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), *first.HiredDate)

	st, err := s.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, "people.csv", st.Source)
	require.NotNil(t, st.Params)
	assert.Equal(t, params(), *st.Params)
	require.NotNil(t, st.Stats)
	assert.Equal(t, 4, st.Stats.Filtered)
}

func TestLoadDiscardsPreviousCleanedTable(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	first, err := s.Load(ctx, sampleRaw())
	require.NoError(t, err)
	_, err = s.Clean(ctx, params())
	require.NoError(t, err)

	second, err := s.Load(ctx, sampleRaw())
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = s.Cleaned(ctx)
	assert.True(t, errors.Is(err, ErrNoCleanedTable))
	_, err = s.Charts(ctx, 10, 1)
	assert.True(t, errors.Is(err, ErrNoCleanedTable))
}

func TestCleanRequiresRawTable(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Clean(context.Background(), params())
	assert.True(t, errors.Is(err, ErrNoRawTable))
}

func TestCleanFailsOnMissingColumns(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	raw := &dataset.RawTable{Name: "x.csv", Columns: []string{"employee_id", "age"}, Records: []dataset.RawRecord{{"employee_id": "1", "age": "30"}}}
	_, err := s.Load(ctx, raw)
	require.NoError(t, err, "loading stays possible for raw inspection")

	_, err = s.Clean(ctx, params())
	assert.True(t, errors.Is(err, quality.ErrMissingColumns))
}

func TestRawKeepsExtraColumnsAndNulls(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	_, err := s.Load(ctx, sampleRaw())
	require.NoError(t, err)

	raw, err := s.Raw(ctx)
	require.NoError(t, err)
	assert.Contains(t, raw.Columns, "notes")
	v, ok := raw.Records[0].Get("notes")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
	_, ok = raw.Records[1].Get("remote")
	assert.False(t, ok)
}

func TestChartsAndPreview(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	_, err := s.Load(ctx, sampleRaw())
	require.NoError(t, err)
	_, err = s.Clean(ctx, params())
	require.NoError(t, err)

	c, err := s.Charts(ctx, 2, 42)
	require.NoError(t, err)
	assert.Len(t, c.Histogram, analytics.HistogramBuckets)
	assert.Len(t, c.Scatter, 2)
	assert.Equal(t, 2, c.SampleCap)
	require.NotEmpty(t, c.Averages)
	assert.Equal(t, dataset.Engineering, c.Averages[0].Department)

	again, err := s.Charts(ctx, 2, 42)
	require.NoError(t, err)
	assert.Equal(t, c.Scatter, again.Scatter, "same seed, same sample")

	big, err := s.Charts(ctx, 5000, 42)
	require.NoError(t, err)
	assert.Equal(t, analytics.DefaultScatterSize, big.SampleCap)
	assert.LessOrEqual(t, len(big.Scatter), analytics.DefaultScatterSize)

	rs, err := s.Preview(ctx, dataset.RawTableName, 2)
	require.NoError(t, err)
	assert.Len(t, rs.Rows, 2)
	assert.Contains(t, rs.Columns, "notes")

	rs, err = s.Preview(ctx, dataset.CleanedTableName, 0)
	require.NoError(t, err)
	assert.Equal(t, dataset.CleanedColumns, rs.Columns)
	assert.Len(t, rs.Rows, 4)
}

func TestPreviewBeforeLoad(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Preview(context.Background(), dataset.RawTableName, 5)
	assert.True(t, errors.Is(err, ErrNoRawTable))
	_, err = s.Preview(context.Background(), "other", 5)
	assert.True(t, errors.Is(err, engine.ErrTableNotFound))
}

func TestQueryIsReadOnly(t *testing.T) {
	ctx := context.Background()
	s := newTestSession(t)
	_, err := s.Load(ctx, sampleRaw())
	require.NoError(t, err)
	_, err = s.Clean(ctx, params())
	require.NoError(t, err)

	rs, err := s.Query(ctx, "SELECT department, count(*) AS n FROM cleaned GROUP BY department ORDER BY department")
	require.NoError(t, err)
	assert.Equal(t, []string{"department", "n"}, rs.Columns)
	assert.Equal(t, []any{"Engineering", int64(1)}, rs.Rows[0])

	_, err = s.Query(ctx, "DELETE FROM raw")
	var qe *engine.QueryError
	require.True(t, errors.As(err, &qe))

	m, err := s.Metrics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, *m.RawCount)
}
