package pipeline

import "sort"

// Median returns the middle value of vals, averaging the two middle values for even counts.
// The second result is false when vals is empty. vals is not modified.
func Median(vals []float64) (float64, bool) {
	if len(vals) == 0 {
		return 0, false
	}
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	mid := len(cp) / 2
	if len(cp)%2 == 1 {
		return cp[mid], true
	}
	return (cp[mid-1] + cp[mid]) / 2, true
}
