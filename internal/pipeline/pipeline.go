// Package pipeline turns a raw, loosely typed dataset into the cleaned set.
//
// The stages run strictly in sequence and are pure functions over record slices:
//
//	raw records -> Normalize -> Filter -> Impute -> Finalize/Order -> cleaned records
//
// No stage returns an error for malformed data; unparseable fields become null
// and out-of-range records are dropped.
package pipeline

import "github.com/KaramelBytes/tidyset-cli/internal/dataset"

// Result is the output of one cleaning run.
type Result struct {
	Records  []dataset.CleanedRecord
	Raw      int
	Filtered int
	Imputed  int
}

// Run executes every stage over the raw table with the given bounds.
func Run(raw *dataset.RawTable, p dataset.CleaningParameters) Result {
	var records []dataset.RawRecord
	if raw != nil {
		records = raw.Records
	}
	cands := NormalizeAll(records)
	kept := Filter(cands, p)
	imputed := Impute(kept)

	res := Result{Raw: len(records), Filtered: len(kept)}
	out := make([]dataset.CleanedRecord, len(imputed))
	for i, c := range imputed {
		if kept[i].Salary == nil && c.Salary != nil {
			res.Imputed++
		}
		out[i] = Finalize(c)
	}
	Order(out)
	res.Records = out
	return res
}

// Clean is Run without the bookkeeping.
func Clean(raw *dataset.RawTable, p dataset.CleaningParameters) []dataset.CleanedRecord {
	return Run(raw, p).Records
}
