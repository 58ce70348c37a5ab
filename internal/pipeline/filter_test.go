package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

func TestFilterInclusiveBounds(t *testing.T) {
	p := dataset.CleaningParameters{AgeMin: 18, AgeMax: 65, ExpMin: 0, ExpMax: 40}
	cands := []dataset.Candidate{
		cand("min-age", 18, 5, dataset.Sales, nil),
		cand("max-age", 65, 5, dataset.Sales, nil),
		cand("young", 17.9, 5, dataset.Sales, nil),
		cand("old", 65.1, 5, dataset.Sales, nil),
		cand("min-exp", 30, 0, dataset.Sales, nil),
		cand("max-exp", 30, 40, dataset.Sales, nil),
		cand("neg-exp", 30, -1, dataset.Sales, nil),
		{EmployeeID: "null-age", YearsExperience: f(3)},
		{EmployeeID: "null-exp", Age: f(30)},
	}
	got := Filter(cands, p)
	ids := make([]string, len(got))
	for i, c := range got {
		ids[i] = c.EmployeeID
	}
	assert.Equal(t, []string{"min-age", "max-age", "min-exp", "max-exp"}, ids)
}

func TestFilterInvertedBoundsMatchNothing(t *testing.T) {
	p := dataset.CleaningParameters{AgeMin: 65, AgeMax: 18, ExpMin: 0, ExpMax: 40}
	got := Filter([]dataset.Candidate{cand("a", 30, 5, dataset.HR, nil)}, p)
	assert.Empty(t, got)
}
