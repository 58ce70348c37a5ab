package analytics

import (
	"math"
	"math/rand/v2"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

// DefaultScatterSize caps the scatter sample. Larger requests are clamped to it.
const DefaultScatterSize = 400

// ScatterCap resolves a requested sample size: non-positive means the default,
// anything above DefaultScatterSize is clamped.
func ScatterCap(n int) int {
	if n <= 0 || n > DefaultScatterSize {
		return DefaultScatterSize
	}
	return n
}

// Point is an (years_experience, salary_usd) pair.
type Point struct {
	X float64 `json:"years_experience"`
	Y float64 `json:"salary_usd"`
}

// ScatterSample draws at most min(n, DefaultScatterSize) points without replacement
// from the records whose salary is non-null. The sample is unordered; rng drives the selection.
func ScatterSample(recs []dataset.CleanedRecord, n int, rng *rand.Rand) []Point {
	if n <= 0 {
		return nil
	}
	n = min(n, DefaultScatterSize)
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	reservoir := make([]Point, 0, min(n, len(recs)))
	seen := 0
	for _, r := range recs {
		if r.SalaryUSD == nil {
			continue
		}
		p := Point{X: float64(r.YearsExperience), Y: *r.SalaryUSD}
		seen++
		if len(reservoir) < n {
			reservoir = append(reservoir, p)
			continue
		}
		if j := rng.IntN(seen); j < n {
			reservoir[j] = p
		}
	}
	return FinitePoints(reservoir)
}

// FinitePoints drops any point with a NaN or infinite coordinate.
func FinitePoints(pts []Point) []Point {
	out := pts[:0]
	for _, p := range pts {
		if isFinite(p.X) && isFinite(p.Y) {
			out = append(out, p)
		}
	}
	return out
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
