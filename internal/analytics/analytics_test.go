package analytics

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

func f(v float64) *float64 { return &v }

func rec(id string, d dataset.Department, exp int64, salary *float64) dataset.CleanedRecord {
	return dataset.CleanedRecord{EmployeeID: id, Age: 30, Department: d, YearsExperience: exp, SalaryUSD: salary}
}

func TestGroupedAverages(t *testing.T) {
	recs := []dataset.CleanedRecord{
		rec("1", dataset.Sales, 1, f(50000)),
		rec("2", dataset.Sales, 2, f(70000)),
		rec("3", dataset.Engineering, 3, f(120000)),
		rec("4", dataset.HR, 4, nil),
		rec("5", dataset.Engineering, 3, nil),
	}
	got := GroupedAverages(recs)
	require.Len(t, got, 2, "HR has no salary and must be omitted")
	assert.Equal(t, dataset.Engineering, got[0].Department)
	assert.Equal(t, 120000.0, got[0].Mean)
	assert.Equal(t, 1, got[0].Count)
	assert.Equal(t, dataset.Sales, got[1].Department)
	assert.Equal(t, 60000.0, got[1].Mean)
}

func TestHistogramInvariants(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	var recs []dataset.CleanedRecord
	for i := 0; i < 500; i++ {
		var s *float64
		if i%7 != 0 {
			s = f(30000 + rng.Float64()*170000)
		}
		recs = append(recs, rec("x", dataset.Other, 1, s))
	}
	recs = append(recs, rec("max", dataset.Other, 1, f(250000)), rec("min", dataset.Other, 1, f(20000)))

	buckets := SalaryHistogram(recs)
	require.Len(t, buckets, HistogramBuckets)

	nonNull, total := 0, 0
	for _, r := range recs {
		if r.SalaryUSD != nil {
			nonNull++
		}
	}
	for i, b := range buckets {
		assert.Equal(t, i, b.Index)
		total += b.Count
		if i > 0 {
			assert.GreaterOrEqual(t, b.Start, buckets[i-1].Start)
		}
		assert.GreaterOrEqual(t, b.End, b.Start)
	}
	assert.Equal(t, nonNull, total)
	assert.Equal(t, 20000.0, buckets[0].Start)
	assert.InDelta(t, 250000.0, buckets[HistogramBuckets-1].End, 1e-6)
	assert.Positive(t, buckets[HistogramBuckets-1].Count, "max value clamps into the last bucket")
}

func TestHistogramDegenerateSingleValue(t *testing.T) {
	buckets := SalaryHistogram([]dataset.CleanedRecord{rec("1", dataset.HR, 1, f(100000))})
	require.Len(t, buckets, HistogramBuckets)
	assert.Equal(t, 1, buckets[0].Count)
	for i, b := range buckets {
		if i > 0 {
			assert.Zero(t, b.Count)
		}
		assert.Equal(t, 100000.0+float64(i), b.Start)
		assert.Equal(t, 100000.0+float64(i+1), b.End)
	}
}

func TestHistogramEmpty(t *testing.T) {
	buckets := SalaryHistogram([]dataset.CleanedRecord{rec("1", dataset.HR, 1, nil)})
	require.Len(t, buckets, HistogramBuckets)
	for _, b := range buckets {
		assert.Zero(t, b.Count)
	}
}

func TestScatterSample(t *testing.T) {
	var recs []dataset.CleanedRecord
	for i := 0; i < 1000; i++ {
		var s *float64
		if i%2 == 0 {
			s = f(float64(1000 + i))
		}
		recs = append(recs, rec("x", dataset.Sales, int64(i%40), s))
	}
	pts := ScatterSample(recs, DefaultScatterSize, rand.New(rand.NewPCG(7, 7)))
	assert.Len(t, pts, DefaultScatterSize)
	seen := map[float64]bool{}
	for _, p := range pts {
		assert.False(t, seen[p.Y], "sampled without replacement")
		seen[p.Y] = true
		assert.Equal(t, 0, int(p.Y)%2, "only rows with a salary are eligible")
	}

	small := ScatterSample(recs[:10], DefaultScatterSize, rand.New(rand.NewPCG(1, 1)))
	assert.Len(t, small, 5)
	assert.Empty(t, ScatterSample(recs, 0, nil))
}

func TestScatterSampleNeverExceedsCap(t *testing.T) {
	var recs []dataset.CleanedRecord
	for i := 0; i < 900; i++ {
		recs = append(recs, rec("x", dataset.HR, int64(i%30), f(float64(2000+i))))
	}
	pts := ScatterSample(recs, 1000, rand.New(rand.NewPCG(3, 3)))
	assert.Len(t, pts, DefaultScatterSize)

	assert.Equal(t, DefaultScatterSize, ScatterCap(0))
	assert.Equal(t, DefaultScatterSize, ScatterCap(-5))
	assert.Equal(t, DefaultScatterSize, ScatterCap(5000))
	assert.Equal(t, 25, ScatterCap(25))
}

func TestFinitePoints(t *testing.T) {
	pts := FinitePoints([]Point{{1, 2}, {math.NaN(), 1}, {1, math.Inf(1)}, {3, 4}})
	assert.Equal(t, []Point{{1, 2}, {3, 4}}, pts)
}

func TestComputeMetrics(t *testing.T) {
	raw := 10
	m := ComputeMetrics(&raw, nil, false)
	require.NotNil(t, m.RawCount)
	assert.Equal(t, 10, *m.RawCount)
	assert.Nil(t, m.CleanedCount)
	assert.Nil(t, m.DepartmentCount)

	m = ComputeMetrics(&raw, []dataset.CleanedRecord{
		rec("1", dataset.HR, 1, nil), rec("2", dataset.HR, 1, nil), rec("3", dataset.Sales, 1, nil),
	}, true)
	assert.Equal(t, 3, *m.CleanedCount)
	assert.Equal(t, 2, *m.DepartmentCount)

	m = ComputeMetrics(&raw, nil, true)
	assert.Equal(t, 0, *m.CleanedCount)
}

func TestSalaryByDepartmentAndRemoteSplit(t *testing.T) {
	yes, no := true, false
	recs := []dataset.CleanedRecord{
		rec("1", dataset.Sales, 1, f(50000)),
		rec("2", dataset.Sales, 1, f(70000)),
		rec("3", dataset.Sales, 1, f(90000)),
		rec("4", dataset.Engineering, 1, f(150000)),
	}
	recs[0].Remote = &yes
	recs[1].Remote = &no
	recs[3].Remote = &yes

	stats := SalaryByDepartment(recs)
	require.Len(t, stats, 2)
	assert.Equal(t, dataset.Engineering, stats[0].Department)
	sales := stats[1]
	assert.Equal(t, 3, sales.Count)
	assert.Equal(t, 70000.0, sales.Mean)
	assert.Equal(t, 70000.0, sales.Median)
	assert.Equal(t, 50000.0, sales.Min)
	assert.Equal(t, 90000.0, sales.Max)

	split := RemoteSplit(recs)
	require.Len(t, split, 3)
	assert.False(t, *split[0].Remote)
	assert.Equal(t, 70000.0, split[0].Mean)
	assert.True(t, *split[1].Remote)
	assert.Equal(t, 100000.0, split[1].Mean)
	assert.Nil(t, split[2].Remote)
	assert.Equal(t, 90000.0, split[2].Mean)
}
