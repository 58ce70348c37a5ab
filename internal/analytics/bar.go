package analytics

import (
	"sort"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

// GroupAverage is the mean salary of one department.
type GroupAverage struct {
	Department dataset.Department `json:"department"`
	Mean       float64            `json:"avg_salary"`
	Count      int                `json:"count"`
}

// GroupedAverages returns the mean salary_usd per department, highest first.
// Null salaries are excluded and departments without any salary are omitted.
func GroupedAverages(recs []dataset.CleanedRecord) []GroupAverage {
	type acc struct {
		sum float64
		n   int
	}
	groups := map[dataset.Department]*acc{}
	for _, r := range recs {
		if r.SalaryUSD == nil {
			continue
		}
		a := groups[r.Department]
		if a == nil {
			a = &acc{}
			groups[r.Department] = a
		}
		a.sum += *r.SalaryUSD
		a.n++
	}
	out := make([]GroupAverage, 0, len(groups))
	for d, a := range groups {
		out = append(out, GroupAverage{Department: d, Mean: a.sum / float64(a.n), Count: a.n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Mean == out[j].Mean {
			return out[i].Department < out[j].Department
		}
		return out[i].Mean > out[j].Mean
	})
	return out
}
