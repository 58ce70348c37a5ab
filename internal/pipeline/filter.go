package pipeline

import "github.com/KaramelBytes/tidyset-cli/internal/dataset"

// InRange reports whether a candidate passes both inclusive range checks.
// A null age or years_experience never passes.
func InRange(c dataset.Candidate, p dataset.CleaningParameters) bool {
	if c.Age == nil || c.YearsExperience == nil {
		return false
	}
	age, exp := *c.Age, *c.YearsExperience
	return age >= p.AgeMin && age <= p.AgeMax &&
		exp >= p.ExpMin && exp <= p.ExpMax
}

// Filter keeps the candidates that pass InRange. Rejections are dropped silently.
func Filter(cands []dataset.Candidate, p dataset.CleaningParameters) []dataset.Candidate {
	out := make([]dataset.Candidate, 0, len(cands))
	for _, c := range cands {
		if InRange(c, p) {
			out = append(out, c)
		}
	}
	return out
}
