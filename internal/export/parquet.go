package export

import (
	"fmt"
	"io"

	"github.com/parquet-go/parquet-go"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

// ParquetRow is the on-disk shape of a cleaned record. Field order follows
// dataset.CleanedColumns.
type ParquetRow struct {
	EmployeeID      string   `parquet:"employee_id"`
	Age             int64    `parquet:"age"`
	Department      string   `parquet:"department"`
	YearsExperience int64    `parquet:"years_experience"`
	Remote          *bool    `parquet:"remote,optional"`
	HiredDate       *string  `parquet:"hired_date,optional"`
	SalaryUSD       *float64 `parquet:"salary_usd,optional"`
}

// ToParquetRow converts one record.
func ToParquetRow(r dataset.CleanedRecord) ParquetRow {
	row := ParquetRow{
		EmployeeID:      r.EmployeeID,
		Age:             r.Age,
		Department:      string(r.Department),
		YearsExperience: r.YearsExperience,
		Remote:          r.Remote,
		SalaryUSD:       r.SalaryUSD,
	}
	if r.HiredDate != nil {
		s := r.HiredDate.Format(dataset.DateLayout)
		row.HiredDate = &s
	}
	return row
}

// WriteParquet writes recs as a single parquet file.
func WriteParquet(w io.Writer, recs []dataset.CleanedRecord) error {
	rows := make([]ParquetRow, len(recs))
	for i, r := range recs {
		rows[i] = ToParquetRow(r)
	}
	writer := parquet.NewGenericWriter[ParquetRow](w)
	if _, err := writer.Write(rows); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
