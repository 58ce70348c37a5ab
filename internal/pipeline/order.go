package pipeline

import (
	"math"
	"sort"
	"strconv"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

// Finalize converts an imputed candidate into a cleaned record.
// Age and years_experience are truncated toward zero; callers must pass filtered candidates.
func Finalize(c dataset.Candidate) dataset.CleanedRecord {
	rec := dataset.CleanedRecord{
		EmployeeID: c.EmployeeID,
		Department: c.Department,
		Remote:     c.Remote,
		HiredDate:  c.HiredDate,
		SalaryUSD:  c.Salary,
	}
	if c.Age != nil {
		rec.Age = int64(math.Trunc(*c.Age))
	}
	if c.YearsExperience != nil {
		rec.YearsExperience = int64(math.Trunc(*c.YearsExperience))
	}
	return rec
}

// Less orders by department ascending, salary descending with nulls last,
// then employee id ascending.
func Less(a, b dataset.CleanedRecord) bool {
	if a.Department != b.Department {
		return a.Department < b.Department
	}
	switch {
	case a.SalaryUSD == nil && b.SalaryUSD != nil:
		return false
	case a.SalaryUSD != nil && b.SalaryUSD == nil:
		return true
	case a.SalaryUSD != nil && b.SalaryUSD != nil && *a.SalaryUSD != *b.SalaryUSD:
		return *a.SalaryUSD > *b.SalaryUSD
	}
	return CompareEmployeeID(a.EmployeeID, b.EmployeeID) < 0
}

// CompareEmployeeID compares ids numerically when both are numbers, otherwise as text.
// Numeric ids sort before textual ones and empty ids sort last.
func CompareEmployeeID(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return 1
	}
	if b == "" {
		return -1
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	switch {
	case errA == nil && errB == nil:
		if fa < fb {
			return -1
		}
		if fa > fb {
			return 1
		}
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	if a < b {
		return -1
	}
	return 1
}

// Order sorts records in place into the cleaned set's total order.
func Order(recs []dataset.CleanedRecord) {
	sort.SliceStable(recs, func(i, j int) bool { return Less(recs[i], recs[j]) })
}
