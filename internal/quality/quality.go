// Package quality validates raw inputs before cleaning and audits the cleaned set.
package quality

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

// ErrMissingColumns is returned when the raw table lacks a required column.
var ErrMissingColumns = errors.New("missing required columns")

// MissingColumns lists the required columns absent from cols, in canonical order.
func MissingColumns(cols []string) []string {
	have := make(map[string]struct{}, len(cols))
	for _, c := range cols {
		have[c] = struct{}{}
	}
	var missing []string
	for _, c := range dataset.RequiredColumns {
		if _, ok := have[c]; !ok {
			missing = append(missing, c)
		}
	}
	return missing
}

// ValidateRaw fails with ErrMissingColumns when a required column is absent.
// Column names are matched case-sensitively.
func ValidateRaw(raw *dataset.RawTable) error {
	if raw == nil {
		return fmt.Errorf("%w: no raw table", ErrMissingColumns)
	}
	if missing := MissingColumns(raw.Columns); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}
	return nil
}

// Severity grades an Issue.
type Severity string

const (
	Warning Severity = "warning"
	Info    Severity = "info"
)

// Issue is one finding about the cleaned set. Findings are not errors.
type Issue struct {
	Severity Severity `json:"severity"`
	Check    string   `json:"check"`
	Message  string   `json:"message"`
	Count    int      `json:"count,omitempty"`
}

func (i Issue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Severity, i.Check, i.Message)
}

// CheckCleaned audits the cleaned records against the bounds they were cleaned with.
// An empty result means no findings.
func CheckCleaned(recs []dataset.CleanedRecord, p dataset.CleaningParameters) []Issue {
	if len(recs) == 0 {
		return []Issue{{Severity: Warning, Check: "empty", Message: "cleaned set has no rows"}}
	}
	var (
		noSalary, badSalary, noID, noDate, ageOut, expOut int
		dupIDs                                            []string
	)
	seen := make(map[string]int, len(recs))
	for _, r := range recs {
		switch {
		case r.SalaryUSD == nil:
			noSalary++
		case *r.SalaryUSD <= 0:
			badSalary++
		}
		if strings.TrimSpace(r.EmployeeID) == "" {
			noID++
		} else {
			seen[r.EmployeeID]++
			if seen[r.EmployeeID] == 2 {
				dupIDs = append(dupIDs, r.EmployeeID)
			}
		}
		if r.HiredDate == nil {
			noDate++
		}
		if float64(r.Age) < p.AgeMin || float64(r.Age) > p.AgeMax {
			ageOut++
		}
		if float64(r.YearsExperience) < p.ExpMin || float64(r.YearsExperience) > p.ExpMax {
			expOut++
		}
	}

	var issues []Issue
	add := func(sev Severity, check string, n int, format string, args ...any) {
		if n > 0 {
			issues = append(issues, Issue{Severity: sev, Check: check, Count: n, Message: fmt.Sprintf(format, args...)})
		}
	}
	add(Warning, "salary_missing", noSalary, "%d row(s) have no salary_usd after imputation", noSalary)
	add(Warning, "salary_non_positive", badSalary, "%d row(s) have a non-positive salary_usd", badSalary)
	add(Warning, "employee_id_missing", noID, "%d row(s) have no employee_id", noID)
	add(Warning, "employee_id_duplicate", len(dupIDs), "duplicate employee_id values: %s", strings.Join(limit(dupIDs, 10), ", "))
	add(Info, "hired_date_missing", noDate, "%d row(s) have no valid hired_date", noDate)
	// Finalization truncates toward zero, so a fractional bound can reject a
	// stored integer that passed the filter as a real.
	add(Info, "age_out_of_bounds", ageOut, "%d row(s) have age outside [%g, %g]", ageOut, p.AgeMin, p.AgeMax)
	add(Info, "experience_out_of_bounds", expOut, "%d row(s) have years_experience outside [%g, %g]", expOut, p.ExpMin, p.ExpMax)
	return issues
}

func limit(s []string, n int) []string {
	if len(s) <= n {
		return s
	}
	out := append([]string(nil), s[:n]...)
	return append(out, fmt.Sprintf("(+%d more)", len(s)-n))
}
