package pipeline

import "github.com/KaramelBytes/tidyset-cli/internal/dataset"

// Medians holds the fallback values used by Impute.
type Medians struct {
	ByDepartment map[dataset.Department]float64
	Global       *float64
}

// ComputeMedians derives department and global salary medians from non-null salaries only.
func ComputeMedians(cands []dataset.Candidate) Medians {
	byDept := map[dataset.Department][]float64{}
	var all []float64
	for _, c := range cands {
		if c.Salary == nil {
			continue
		}
		byDept[c.Department] = append(byDept[c.Department], *c.Salary)
		all = append(all, *c.Salary)
	}
	m := Medians{ByDepartment: make(map[dataset.Department]float64, len(byDept))}
	for d, vals := range byDept {
		if med, ok := Median(vals); ok {
			m.ByDepartment[d] = med
		}
	}
	if med, ok := Median(all); ok {
		m.Global = &med
	}
	return m
}

// Resolve returns the imputed salary for a department, or nil when no salary exists anywhere.
func (m Medians) Resolve(d dataset.Department) *float64 {
	if v, ok := m.ByDepartment[d]; ok {
		return &v
	}
	if m.Global != nil {
		v := *m.Global
		return &v
	}
	return nil
}

// Impute fills null salaries with the department median, falling back to the global median.
// Medians are taken from the input before any value is filled. The input is not modified.
func Impute(cands []dataset.Candidate) []dataset.Candidate {
	m := ComputeMedians(cands)
	out := make([]dataset.Candidate, len(cands))
	for i, c := range cands {
		if c.Salary == nil {
			c.Salary = m.Resolve(c.Department)
		}
		out[i] = c
	}
	return out
}
