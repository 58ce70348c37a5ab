package analytics

import (
	"math"
	"sort"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
	"github.com/KaramelBytes/tidyset-cli/internal/pipeline"
)

// DepartmentStats summarizes salary_usd for one department.
type DepartmentStats struct {
	Department dataset.Department `json:"department"`
	Count      int                `json:"count"`
	Mean       float64            `json:"mean"`
	Median     float64            `json:"median"`
	Min        float64            `json:"min"`
	Max        float64            `json:"max"`
}

// SalaryByDepartment returns per-department salary statistics ordered by mean, highest first.
func SalaryByDepartment(recs []dataset.CleanedRecord) []DepartmentStats {
	vals := map[dataset.Department][]float64{}
	for _, r := range recs {
		if r.SalaryUSD != nil {
			vals[r.Department] = append(vals[r.Department], *r.SalaryUSD)
		}
	}
	out := make([]DepartmentStats, 0, len(vals))
	for d, vs := range vals {
		s := DepartmentStats{Department: d, Count: len(vs), Min: math.Inf(1), Max: math.Inf(-1)}
		var sum float64
		for _, v := range vs {
			sum += v
			s.Min = math.Min(s.Min, v)
			s.Max = math.Max(s.Max, v)
		}
		s.Mean = sum / float64(len(vs))
		s.Median, _ = pipeline.Median(vs)
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean == out[j].Mean {
			return out[i].Department < out[j].Department
		}
		return out[i].Mean > out[j].Mean
	})
	return out
}

// RemoteAverage is the mean salary for one remote status. Remote is nil for unknown status.
type RemoteAverage struct {
	Remote *bool   `json:"remote"`
	Mean   float64 `json:"avg_salary"`
	Count  int     `json:"count"`
}

// RemoteSplit averages salary_usd by remote status in the order false, true, unknown.
// Statuses without any salary are omitted.
func RemoteSplit(recs []dataset.CleanedRecord) []RemoteAverage {
	var sums [3]float64
	var counts [3]int
	for _, r := range recs {
		if r.SalaryUSD == nil {
			continue
		}
		k := 2
		if r.Remote != nil {
			k = 0
			if *r.Remote {
				k = 1
			}
		}
		sums[k] += *r.SalaryUSD
		counts[k]++
	}
	f, t := false, true
	status := [3]*bool{&f, &t, nil}
	var out []RemoteAverage
	for k := range status {
		if counts[k] == 0 {
			continue
		}
		out = append(out, RemoteAverage{Remote: status[k], Mean: sums[k] / float64(counts[k]), Count: counts[k]})
	}
	return out
}
