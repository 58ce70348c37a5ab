package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

func TestFinalizeTruncates(t *testing.T) {
	r := Finalize(cand("1", 30.9, 4.99, dataset.HR, f(1)))
	assert.Equal(t, int64(30), r.Age)
	assert.Equal(t, int64(4), r.YearsExperience)
}

func TestOrder(t *testing.T) {
	recs := []dataset.CleanedRecord{
		{EmployeeID: "5", Department: dataset.Sales, SalaryUSD: f(10)},
		{EmployeeID: "10", Department: dataset.Engineering, SalaryUSD: f(100)},
		{EmployeeID: "2", Department: dataset.Engineering, SalaryUSD: f(100)},
		{EmployeeID: "3", Department: dataset.Engineering},
		{EmployeeID: "4", Department: dataset.Engineering, SalaryUSD: f(200)},
		{EmployeeID: "1", Department: dataset.HR, SalaryUSD: f(50)},
		{EmployeeID: "9", Department: dataset.Other, SalaryUSD: f(50)},
	}
	Order(recs)
	ids := make([]string, len(recs))
	for i, r := range recs {
		ids[i] = r.EmployeeID
	}
	assert.Equal(t, []string{"4", "2", "10", "3", "1", "9", "5"}, ids)
}

func TestCompareEmployeeID(t *testing.T) {
	assert.Equal(t, -1, CompareEmployeeID("2", "10"))
	assert.Equal(t, 1, CompareEmployeeID("10", "2"))
	assert.Equal(t, -1, CompareEmployeeID("99", "A1"))
	assert.Equal(t, -1, CompareEmployeeID("A1", "B1"))
	assert.Equal(t, 1, CompareEmployeeID("", "A1"))
	assert.Equal(t, 0, CompareEmployeeID("x", "x"))
}
