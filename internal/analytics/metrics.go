package analytics

import "github.com/KaramelBytes/tidyset-cli/internal/dataset"

// Metrics is the at-a-glance profile. A nil field means the value is absent:
// the corresponding table has not been produced yet.
type Metrics struct {
	RawCount        *int `json:"raw_count"`
	CleanedCount    *int `json:"cleaned_count"`
	DepartmentCount *int `json:"department_count"`
}

// ComputeMetrics builds the summary. cleaned is ignored unless hasCleaned is set,
// so an empty cleaned set reports zero rather than absent.
func ComputeMetrics(rawCount *int, cleaned []dataset.CleanedRecord, hasCleaned bool) Metrics {
	m := Metrics{RawCount: rawCount}
	if !hasCleaned {
		return m
	}
	n := len(cleaned)
	d := DistinctDepartments(cleaned)
	m.CleanedCount = &n
	m.DepartmentCount = &d
	return m
}

// DistinctDepartments counts the department labels appearing in recs.
func DistinctDepartments(recs []dataset.CleanedRecord) int {
	seen := map[dataset.Department]struct{}{}
	for _, r := range recs {
		seen[r.Department] = struct{}{}
	}
	return len(seen)
}
