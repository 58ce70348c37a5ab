package pipeline

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

var salaryNullTokens = map[string]struct{}{
	"n/a":           {},
	"na":            {},
	"none":          {},
	"null":          {},
	"not_available": {},
}

var departmentAliases = map[string]dataset.Department{
	"engineering":     dataset.Engineering,
	"eng":             dataset.Engineering,
	"sales":           dataset.Sales,
	"marketing":       dataset.Marketing,
	"mkt":             dataset.Marketing,
	"hr":              dataset.HR,
	"human resources": dataset.HR,
}

var remoteValues = map[string]bool{
	"yes":   true,
	"y":     true,
	"true":  true,
	"1":     true,
	"no":    false,
	"n":     false,
	"false": false,
	"0":     false,
}

// Date layouts tried in order. Slash dates are month-first.
var dateLayouts = []string{
	dataset.DateLayout,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-1-2",
	"2006/1/2",
	"2006.1.2",
	"2006-01-02 15:04:05-07",
	"2006-01-02 15:04:05-07:00",
	"01/02/2006",
	"1/2/2006",
	"01-02-2006",
	"1/2/2006 15:04",
	"1/2/2006 15:04:05",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"02-Jan-2006",
	"20060102",
}

// Year-first layouts for the date part of a timestamp whose time part no
// layout above matched, e.g. "2020-01-05 10:00:00.123+0530".
var dateOnlyLayouts = []string{"2006-1-2", "2006/1/2", "2006.1.2"}

// ParseNumber parses a real number. Null, empty, non-numeric and non-finite text yield nil.
func ParseNumber(s string, ok bool) *float64 {
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	// ParseFloat also takes hex floats and digit separators.
	if strings.ContainsAny(s, "xX_") {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// NormalizeDepartment maps any input, including null, onto one of the five canonical labels.
func NormalizeDepartment(s string, ok bool) dataset.Department {
	if !ok {
		return dataset.Other
	}
	if d, found := departmentAliases[strings.ToLower(strings.TrimSpace(s))]; found {
		return d
	}
	return dataset.Other
}

// ParseSalary strips currency formatting and returns a positive amount, or nil.
func ParseSalary(s string, ok bool) *float64 {
	if !ok {
		return nil
	}
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil
	}
	if _, isNull := salaryNullTokens[strings.ToLower(trimmed)]; isNull {
		return nil
	}
	stripped := strings.NewReplacer("$", "", ",", "", " ", "").Replace(trimmed)
	v := ParseNumber(stripped, true)
	if v == nil || *v <= 0 {
		return nil
	}
	return v
}

// ParseRemote is three-valued: true, false, or nil for anything unrecognized.
func ParseRemote(s string, ok bool) *bool {
	if !ok {
		return nil
	}
	v, found := remoteValues[strings.ToLower(strings.TrimSpace(s))]
	if !found {
		return nil
	}
	return &v
}

// ParseDate parses a calendar date against a list of common layouts.
// The result is truncated to midnight UTC.
func ParseDate(s string, ok bool) *time.Time {
	if !ok {
		return nil
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return parseDatePrefix(s)
}

// parseDatePrefix keeps the calendar date of "<date> <time>" or "<date>T<time>".
func parseDatePrefix(s string) *time.Time {
	i := strings.IndexAny(s, " T")
	if i < 0 || i+1 >= len(s) {
		return nil
	}
	head, tail := s[:i], s[i+1:]
	if tail[0] < '0' || tail[0] > '9' || !strings.Contains(tail, ":") {
		return nil
	}
	for _, l := range dateOnlyLayouts {
		if t, err := time.Parse(l, head); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// Normalize coerces one raw record. It never fails: each field degrades to null independently.
func Normalize(rec dataset.RawRecord) dataset.Candidate {
	id, _ := rec.Get(dataset.ColEmployeeID)
	return dataset.Candidate{
		EmployeeID:      strings.TrimSpace(id),
		Age:             ParseNumber(rec.Get(dataset.ColAge)),
		YearsExperience: ParseNumber(rec.Get(dataset.ColYearsExperience)),
		Department:      NormalizeDepartment(rec.Get(dataset.ColDepartment)),
		Salary:          ParseSalary(rec.Get(dataset.ColSalary)),
		Remote:          ParseRemote(rec.Get(dataset.ColRemote)),
		HiredDate:       ParseDate(rec.Get(dataset.ColHiredDate)),
	}
}

// NormalizeAll coerces every record of a raw table, preserving input order.
func NormalizeAll(records []dataset.RawRecord) []dataset.Candidate {
	out := make([]dataset.Candidate, len(records))
	for i, rec := range records {
		out[i] = Normalize(rec)
	}
	return out
}
