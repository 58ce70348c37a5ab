// Package export serializes the cleaned set for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

// Format names an export encoding.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ParseFormat accepts "csv" or "parquet".
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatParquet:
		return Format(s), nil
	}
	return "", fmt.Errorf("unsupported export format %q (use csv or parquet)", s)
}

// Write encodes recs in the given format.
func Write(w io.Writer, f Format, recs []dataset.CleanedRecord) error {
	switch f {
	case FormatCSV:
		return WriteCSV(w, recs)
	case FormatParquet:
		return WriteParquet(w, recs)
	}
	return fmt.Errorf("unsupported export format %q", f)
}

// WriteCSV writes a header row and one line per record in dataset.CleanedColumns order.
// Nulls are empty fields.
func WriteCSV(w io.Writer, recs []dataset.CleanedRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dataset.CleanedColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, r := range recs {
		if err := cw.Write(csvRow(r)); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func csvRow(r dataset.CleanedRecord) []string {
	row := []string{
		r.EmployeeID,
		strconv.FormatInt(r.Age, 10),
		string(r.Department),
		strconv.FormatInt(r.YearsExperience, 10),
		"", "", "",
	}
	if r.Remote != nil {
		row[4] = strconv.FormatBool(*r.Remote)
	}
	if r.HiredDate != nil {
		row[5] = r.HiredDate.Format(dataset.DateLayout)
	}
	if r.SalaryUSD != nil {
		row[6] = strconv.FormatFloat(*r.SalaryUSD, 'f', -1, 64)
	}
	return row
}
