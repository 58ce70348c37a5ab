package pipeline

import (
	"strconv"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

func f(v float64) *float64 { return &v }

func fmtFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func fmtBool(v bool) string { return strconv.FormatBool(v) }

func cand(id string, age, exp float64, d dataset.Department, salary *float64) dataset.Candidate {
	return dataset.Candidate{EmployeeID: id, Age: f(age), YearsExperience: f(exp), Department: d, Salary: salary}
}
