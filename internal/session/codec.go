package session

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
	"github.com/KaramelBytes/tidyset-cli/internal/engine"
)

// rawToTable stores every raw column as TEXT; null cells become SQL NULL.
func rawToTable(raw *dataset.RawTable) *engine.Table {
	t := &engine.Table{Name: dataset.RawTableName, Columns: make([]engine.Column, len(raw.Columns))}
	for i, c := range raw.Columns {
		t.Columns[i] = engine.Column{Name: c, Type: engine.TypeText}
	}
	t.Rows = make([][]any, len(raw.Records))
	for i, rec := range raw.Records {
		row := make([]any, len(raw.Columns))
		for j, c := range raw.Columns {
			if v, ok := rec.Get(c); ok {
				row[j] = v
			}
		}
		t.Rows[i] = row
	}
	return t
}

func tableToRaw(name string, t *engine.Table) *dataset.RawTable {
	raw := &dataset.RawTable{Name: name, Columns: t.ColumnNames()}
	raw.Records = make([]dataset.RawRecord, len(t.Rows))
	for i, row := range t.Rows {
		rec := dataset.RawRecord{}
		for j, c := range raw.Columns {
			if j >= len(row) || row[j] == nil {
				continue
			}
			rec[c] = textOf(row[j])
		}
		raw.Records[i] = rec
	}
	return raw
}

var cleanedSchema = []engine.Column{
	{Name: dataset.ColEmployeeID, Type: engine.TypeText},
	{Name: dataset.ColAge, Type: engine.TypeInteger},
	{Name: dataset.ColDepartment, Type: engine.TypeText},
	{Name: dataset.ColYearsExperience, Type: engine.TypeInteger},
	{Name: dataset.ColRemote, Type: engine.TypeBoolean},
	{Name: dataset.ColHiredDate, Type: engine.TypeDate},
	{Name: dataset.ColSalaryUSD, Type: engine.TypeReal},
}

func cleanedToTable(recs []dataset.CleanedRecord) *engine.Table {
	t := &engine.Table{Name: dataset.CleanedTableName, Columns: cleanedSchema}
	t.Rows = make([][]any, len(recs))
	for i, r := range recs {
		var remote, hired, salary any
		if r.Remote != nil {
			remote = *r.Remote
		}
		if r.HiredDate != nil {
			hired = r.HiredDate.Format(dataset.DateLayout)
		}
		if r.SalaryUSD != nil {
			salary = *r.SalaryUSD
		}
		t.Rows[i] = []any{r.EmployeeID, r.Age, string(r.Department), r.YearsExperience, remote, hired, salary}
	}
	return t
}

// tableToCleaned decodes by column name so the engine's reported types do not matter.
func tableToCleaned(t *engine.Table) ([]dataset.CleanedRecord, error) {
	idx := map[string]int{}
	for i, c := range t.Columns {
		idx[c.Name] = i
	}
	for _, c := range dataset.CleanedColumns {
		if _, ok := idx[c]; !ok {
			return nil, fmt.Errorf("cleaned table is missing column %s", c)
		}
	}
	out := make([]dataset.CleanedRecord, len(t.Rows))
	for i, row := range t.Rows {
		cell := func(col string) any { return row[idx[col]] }
		var (
			r   dataset.CleanedRecord
			err error
		)
		r.EmployeeID = textOf(cell(dataset.ColEmployeeID))
		r.Department = dataset.Department(textOf(cell(dataset.ColDepartment)))
		if r.Age, err = intOf(cell(dataset.ColAge)); err != nil {
			return nil, fmt.Errorf("row %d age: %w", i+1, err)
		}
		if r.YearsExperience, err = intOf(cell(dataset.ColYearsExperience)); err != nil {
			return nil, fmt.Errorf("row %d years_experience: %w", i+1, err)
		}
		if r.Remote, err = boolOf(cell(dataset.ColRemote)); err != nil {
			return nil, fmt.Errorf("row %d remote: %w", i+1, err)
		}
		if r.HiredDate, err = dateOf(cell(dataset.ColHiredDate)); err != nil {
			return nil, fmt.Errorf("row %d hired_date: %w", i+1, err)
		}
		if r.SalaryUSD, err = floatOf(cell(dataset.ColSalaryUSD)); err != nil {
			return nil, fmt.Errorf("row %d salary_usd: %w", i+1, err)
		}
		out[i] = r
	}
	return out, nil
}

func textOf(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(dataset.DateLayout)
	default:
		return fmt.Sprint(x)
	}
}

func intOf(v any) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case float64:
		return int64(x), nil
	case nil:
		return 0, fmt.Errorf("unexpected null")
	default:
		return strconv.ParseInt(strings.TrimSpace(textOf(x)), 10, 64)
	}
}

func floatOf(v any) (*float64, error) {
	var f float64
	switch x := v.(type) {
	case nil:
		return nil, nil
	case float64:
		f = x
	case int64:
		f = float64(x)
	default:
		p, err := strconv.ParseFloat(strings.TrimSpace(textOf(x)), 64)
		if err != nil {
			return nil, err
		}
		f = p
	}
	return &f, nil
}

func boolOf(v any) (*bool, error) {
	var b bool
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		b = x
	case int64:
		b = x != 0
	default:
		p, err := strconv.ParseBool(strings.TrimSpace(textOf(x)))
		if err != nil {
			return nil, err
		}
		b = p
	}
	return &b, nil
}

func dateOf(v any) (*time.Time, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case time.Time:
		d := time.Date(x.Year(), x.Month(), x.Day(), 0, 0, 0, 0, time.UTC)
		return &d, nil
	default:
		s := strings.TrimSpace(textOf(x))
		if s == "" {
			return nil, nil
		}
		d, err := time.Parse(dataset.DateLayout, s)
		if err != nil {
			return nil, err
		}
		return &d, nil
	}
}
