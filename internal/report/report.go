// Package report renders a Markdown insights document for a cleaned dataset.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/KaramelBytes/tidyset-cli/internal/analytics"
	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

// Report holds the figures rendered by Markdown.
type Report struct {
	Source      string
	RawRows     int
	Rows        int
	Params      *dataset.CleaningParameters
	Departments []dataset.Department
	Salary      []analytics.DepartmentStats
	Remote      []analytics.RemoteAverage
	Histogram   []analytics.Bucket
}

// Build derives every section from the cleaned records. rawRows is the size of
// the raw set; params may be nil when unknown.
func Build(source string, rawRows int, params *dataset.CleaningParameters, recs []dataset.CleanedRecord) *Report {
	seen := map[dataset.Department]bool{}
	var depts []dataset.Department
	for _, r := range recs {
		if !seen[r.Department] {
			seen[r.Department] = true
			depts = append(depts, r.Department)
		}
	}
	sort.Slice(depts, func(i, j int) bool { return depts[i] < depts[j] })
	return &Report{
		Source:      source,
		RawRows:     rawRows,
		Rows:        len(recs),
		Params:      params,
		Departments: depts,
		Salary:      analytics.SalaryByDepartment(recs),
		Remote:      analytics.RemoteSplit(recs),
		Histogram:   analytics.SalaryHistogram(recs),
	}
}

// Markdown renders the report.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("# Insights\n\n")

	b.WriteString("## Dataset overview\n\n")
	if r.Source != "" {
		b.WriteString(fmt.Sprintf("- Source: %s\n", r.Source))
	}
	b.WriteString(fmt.Sprintf("- Rows: %d (of %d raw)\n", r.Rows, r.RawRows))
	names := make([]string, len(r.Departments))
	for i, d := range r.Departments {
		names[i] = string(d)
	}
	b.WriteString(fmt.Sprintf("- Departments: %s\n", orNone(strings.Join(names, ", "))))
	if r.Params != nil {
		b.WriteString(fmt.Sprintf("- Bounds: age %g–%g, years_experience %g–%g\n",
			r.Params.AgeMin, r.Params.AgeMax, r.Params.ExpMin, r.Params.ExpMax))
	}
	b.WriteString("\n")

	b.WriteString("## Salary by department\n\n")
	if len(r.Salary) == 0 {
		b.WriteString("_No salary data._\n\n")
	} else {
		b.WriteString("| department | count | mean | median | min | max |\n")
		b.WriteString("|---|---:|---:|---:|---:|---:|\n")
		for _, s := range r.Salary {
			b.WriteString(fmt.Sprintf("| %s | %d | %s | %s | %s | %s |\n",
				s.Department, s.Count, money(s.Mean), money(s.Median), money(s.Min), money(s.Max)))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Remote vs on-site\n\n")
	if len(r.Remote) == 0 {
		b.WriteString("_No salary data._\n\n")
	} else {
		b.WriteString("| remote | count | avg_salary_usd |\n")
		b.WriteString("|---|---:|---:|\n")
		for _, ra := range r.Remote {
			b.WriteString(fmt.Sprintf("| %s | %d | %s |\n", remoteLabel(ra.Remote), ra.Count, money(ra.Mean)))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Salary distribution\n\n")
	total := 0
	for _, h := range r.Histogram {
		total += h.Count
	}
	if total == 0 {
		b.WriteString("_No salary data._\n\n")
	} else {
		b.WriteString("| bucket | range | count |\n")
		b.WriteString("|---:|---|---:|\n")
		for _, h := range r.Histogram {
			b.WriteString(fmt.Sprintf("| %d | %s – %s | %d |\n", h.Index, money(h.Start), money(h.End), h.Count))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Notable observations\n\n")
	if len(r.Salary) > 0 {
		top := r.Salary[0]
		b.WriteString(fmt.Sprintf("- Highest average salary is in **%s** (%s across %d employees).\n",
			top.Department, money(top.Mean), top.Count))
		widest := r.Salary[0]
		for _, s := range r.Salary[1:] {
			if s.Max-s.Min > widest.Max-widest.Min {
				widest = s
			}
		}
		if widest.Count > 1 {
			b.WriteString(fmt.Sprintf("- The widest salary range is in **%s** (%s to %s).\n",
				widest.Department, money(widest.Min), money(widest.Max)))
		}
	}
	if r.RawRows > r.Rows {
		b.WriteString(fmt.Sprintf("- %d raw row(s) were dropped by the age and experience bounds.\n", r.RawRows-r.Rows))
	}
	if len(r.Salary) == 0 && r.RawRows <= r.Rows {
		b.WriteString("- Nothing notable.\n")
	}
	return b.String()
}

func money(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	neg := strings.HasPrefix(intPart, "-")
	intPart = strings.TrimPrefix(intPart, "-")
	var out []byte
	for i := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, intPart[i])
	}
	if neg {
		return "-$" + string(out) + frac
	}
	return "$" + string(out) + frac
}

func remoteLabel(b *bool) string {
	switch {
	case b == nil:
		return "unknown"
	case *b:
		return "remote"
	default:
		return "on-site"
	}
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
