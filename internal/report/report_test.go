package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

func f(v float64) *float64 { return &v }

func TestMarkdownSections(t *testing.T) {
	yes, no := true, false
	recs := []dataset.CleanedRecord{
		{EmployeeID: "1", Department: dataset.Engineering, SalaryUSD: f(120000), Remote: &yes},
		{EmployeeID: "2", Department: dataset.Engineering, SalaryUSD: f(100000), Remote: &no},
		{EmployeeID: "3", Department: dataset.Sales, SalaryUSD: f(60000)},
	}
	p := dataset.DefaultParameters()
	md := Build("sample.csv", 5, &p, recs).Markdown()

	for _, want := range []string{
		"# Insights",
		"- Rows: 3 (of 5 raw)",
		"- Departments: Engineering, Sales",
		"| Engineering | 2 | $110,000.00 | $110,000.00 | $100,000.00 | $120,000.00 |",
		"| on-site | 1 | $100,000.00 |",
		"| unknown | 1 | $60,000.00 |",
		"Highest average salary is in **Engineering**",
		"2 raw row(s) were dropped",
	} {
		assert.Contains(t, md, want)
	}
	assert.Less(t, strings.Index(md, "| on-site"), strings.Index(md, "| remote | 1 | $120,000.00 |"))
}

func TestMarkdownEmpty(t *testing.T) {
	md := Build("", 0, nil, nil).Markdown()
	assert.Contains(t, md, "- Departments: none")
	assert.Contains(t, md, "_No salary data._")
	assert.Contains(t, md, "Nothing notable")
}

func TestMoney(t *testing.T) {
	require.Equal(t, "$0.00", money(0))
	assert.Equal(t, "$999.50", money(999.5))
	assert.Equal(t, "$1,234,567.00", money(1234567))
	assert.Equal(t, "-$1,000.00", money(-1000))
}
