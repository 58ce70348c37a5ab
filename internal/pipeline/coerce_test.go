package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

func TestNormalizeDepartmentIsTotal(t *testing.T) {
	cases := map[string]dataset.Department{
		"engineering":       dataset.Engineering,
		"  ENGINEERING ":    dataset.Engineering,
		"Eng":               dataset.Engineering,
		"sales":             dataset.Sales,
		"SALES":             dataset.Sales,
		"Marketing":         dataset.Marketing,
		"mkt":               dataset.Marketing,
		"hr":                dataset.HR,
		"Human Resources":   dataset.HR,
		"":                  dataset.Other,
		"   ":               dataset.Other,
		"finance":           dataset.Other,
		"human  resources":  dataset.Other,
		"engineering dept.": dataset.Other,
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeDepartment(in, true), "input %q", in)
	}
	assert.Equal(t, dataset.Other, NormalizeDepartment("", false))

	valid := map[dataset.Department]bool{}
	for _, d := range dataset.Departments {
		valid[d] = true
	}
	for _, in := range []string{"x", "ÄÖÜ", "eng\n", "\t", "HR\x00", "0"} {
		assert.True(t, valid[NormalizeDepartment(in, true)], "input %q", in)
	}
}

func TestParseSalary(t *testing.T) {
	cases := []struct {
		in   string
		ok   bool
		want *float64
	}{
		{"$90,000", true, f(90000)},
		{" 75 000 ", true, f(75000)},
		{"120000.50", true, f(120000.5)},
		{"N/A", true, nil},
		{"na", true, nil},
		{"None", true, nil},
		{"NULL", true, nil},
		{"not_available", true, nil},
		{"", true, nil},
		{"   ", true, nil},
		{"abc", true, nil},
		{"0", true, nil},
		{"-5000", true, nil},
		{"$-1", true, nil},
		{"90000", false, nil},
	}
	for _, tc := range cases {
		got := ParseSalary(tc.in, tc.ok)
		if tc.want == nil {
			assert.Nil(t, got, "input %q", tc.in)
			continue
		}
		require.NotNil(t, got, "input %q", tc.in)
		assert.InDelta(t, *tc.want, *got, 1e-9, "input %q", tc.in)
	}
}

func TestParseRemoteIsThreeValued(t *testing.T) {
	for _, in := range []string{"yes", "Y", " true ", "1", "YES"} {
		got := ParseRemote(in, true)
		require.NotNil(t, got, in)
		assert.True(t, *got, in)
	}
	for _, in := range []string{"no", "N", "False", "0"} {
		got := ParseRemote(in, true)
		require.NotNil(t, got, in)
		assert.False(t, *got, in)
	}
	for _, in := range []string{"", "maybe", "2", "hybrid"} {
		assert.Nil(t, ParseRemote(in, true), in)
	}
	assert.Nil(t, ParseRemote("yes", false))
}

func TestParseNumber(t *testing.T) {
	assert.Equal(t, 30.0, *ParseNumber("30", true))
	assert.Equal(t, 30.5, *ParseNumber(" 30.5 ", true))
	assert.Equal(t, -2.0, *ParseNumber("-2", true))
	assert.Nil(t, ParseNumber("abc", true))
	assert.Nil(t, ParseNumber("", true))
	assert.Nil(t, ParseNumber("NaN", true))
	assert.Nil(t, ParseNumber("inf", true))
	assert.Nil(t, ParseNumber("30", false))
	assert.Nil(t, ParseNumber("0x1p4", true))
	assert.Nil(t, ParseNumber("0X10", true))
	assert.Nil(t, ParseNumber("1_000", true))
	assert.Equal(t, 1500.0, *ParseNumber("1.5e3", true))
	assert.Nil(t, ParseSalary("$0x1p20", true))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range []string{"2020-01-15", "2020/01/15", "01/15/2020", "1/15/2020", "2020-01-15T10:30:00Z", "2020-01-15 08:00:00", "Jan 15, 2020", "15 Jan 2020",
		"2020-1-15", "2020/1/15", "2020.1.15", "2020-01-15 10:00:00+00", "2020-01-15 23:59:59-05:00",
		"2020-01-15 10:00:00.250+0530", "2020-1-15T07:00"} {
		got := ParseDate(in, true)
		require.NotNil(t, got, in)
		assert.True(t, want.Equal(*got), "input %q got %v", in, got)
	}
	for _, in := range []string{"", "not a date", "2020-13-45", "yesterday", "2020-1-15 soon", "2020-02-30 10:00:00+00"} {
		assert.Nil(t, ParseDate(in, true), in)
	}
}

func TestNormalizeScenarioRow(t *testing.T) {
	c := Normalize(dataset.RawRecord{
		"employee_id":      "1",
		"age":              "30",
		"years_experience": "5",
		"department":       "ENGINEERING",
		"salary":           "$90,000",
		"remote":           "Y",
		"hired_date":       "2020-01-01",
	})
	assert.Equal(t, "1", c.EmployeeID)
	require.NotNil(t, c.Age)
	assert.Equal(t, 30.0, *c.Age)
	assert.Equal(t, dataset.Engineering, c.Department)
	require.NotNil(t, c.Salary)
	assert.Equal(t, 90000.0, *c.Salary)
	require.NotNil(t, c.Remote)
	assert.True(t, *c.Remote)
	require.NotNil(t, c.HiredDate)

	bad := Normalize(dataset.RawRecord{"employee_id": "2", "age": "abc"})
	assert.Nil(t, bad.Age)
	assert.Nil(t, bad.YearsExperience)
	assert.Equal(t, dataset.Other, bad.Department)
	assert.Nil(t, bad.Salary)
	assert.Nil(t, bad.Remote)
	assert.Nil(t, bad.HiredDate)
}

func TestNormalizeIsIdempotentOnTypedOutput(t *testing.T) {
	first := Normalize(dataset.RawRecord{
		"employee_id":      "7",
		"age":              "41",
		"years_experience": "12",
		"department":       "human resources",
		"salary":           "$64,500",
		"remote":           "no",
		"hired_date":       "03/04/2019",
	})
	again := Normalize(dataset.RawRecord{
		"employee_id":      first.EmployeeID,
		"age":              fmtFloat(*first.Age),
		"years_experience": fmtFloat(*first.YearsExperience),
		"department":       string(first.Department),
		"salary":           fmtFloat(*first.Salary),
		"remote":           fmtBool(*first.Remote),
		"hired_date":       first.HiredDate.Format(dataset.DateLayout),
	})
	assert.Equal(t, first, again)
}
