package analytics

import (
	"math"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

// HistogramBuckets is the fixed bucket count of the salary histogram.
const HistogramBuckets = 12

// Bucket is one equal-width histogram bin covering [Start, End).
type Bucket struct {
	Index int     `json:"index"`
	Start float64 `json:"range_start"`
	End   float64 `json:"range_end"`
	Count int     `json:"count"`
}

// SalaryHistogram buckets the non-null salary_usd values of the cleaned set.
func SalaryHistogram(recs []dataset.CleanedRecord) []Bucket {
	vals := make([]float64, 0, len(recs))
	for _, r := range recs {
		if r.SalaryUSD != nil {
			vals = append(vals, *r.SalaryUSD)
		}
	}
	return Histogram(vals)
}

// Histogram always returns HistogramBuckets buckets in index order.
// When every value is equal the step is 1 and all values land in bucket 0.
// With no values every bucket is empty and its edges are zero.
func Histogram(vals []float64) []Bucket {
	out := make([]Bucket, HistogramBuckets)
	for i := range out {
		out[i].Index = i
	}
	if len(vals) == 0 {
		return out
	}
	minV, maxV := math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	degenerate := !(maxV > minV)
	step := 1.0
	if !degenerate {
		step = (maxV - minV) / HistogramBuckets
	}
	for i := range out {
		out[i].Start = minV + float64(i)*step
		out[i].End = minV + float64(i+1)*step
	}
	for _, v := range vals {
		idx := 0
		if !degenerate {
			idx = clamp(int(math.Floor((v-minV)/step)), 0, HistogramBuckets-1)
		}
		out[idx].Count++
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
