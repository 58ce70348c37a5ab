// Package dataset holds the record types shared by the cleaning pipeline,
// the analytics views and the storage engine.
package dataset

import "time"

// Raw column names, as they appear in the input header (case-sensitive).
const (
	ColEmployeeID      = "employee_id"
	ColAge             = "age"
	ColYearsExperience = "years_experience"
	ColDepartment      = "department"
	ColSalary          = "salary"
	ColRemote          = "remote"
	ColHiredDate       = "hired_date"
	ColSalaryUSD       = "salary_usd"
)

// Table names known to the session.
const (
	RawTableName     = "raw"
	CleanedTableName = "cleaned"
)

// RequiredColumns are the raw columns the cleaning stage reads.
var RequiredColumns = []string{
	ColEmployeeID,
	ColAge,
	ColYearsExperience,
	ColDepartment,
	ColSalary,
	ColRemote,
	ColHiredDate,
}

// CleanedColumns is the column order of the cleaned table and of its exports.
var CleanedColumns = []string{
	ColEmployeeID,
	ColAge,
	ColDepartment,
	ColYearsExperience,
	ColRemote,
	ColHiredDate,
	ColSalaryUSD,
}

// RawRecord maps a column name to its text. A missing key is a null cell.
type RawRecord map[string]string

// Get returns the cell text and whether the cell is non-null.
func (r RawRecord) Get(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// RawTable is a freshly loaded, untyped dataset.
type RawTable struct {
	Name    string
	Columns []string
	Records []RawRecord
}

// Len returns the number of records.
func (t *RawTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Department is one of the five canonical department labels.
type Department string

const (
	Engineering Department = "Engineering"
	Sales       Department = "Sales"
	Marketing   Department = "Marketing"
	HR          Department = "HR"
	Other       Department = "Other"
)

// Departments lists the canonical labels in ascending lexicographic order.
var Departments = []Department{Engineering, HR, Marketing, Other, Sales}

// CleaningParameters are the inclusive range bounds applied by the filter.
// min <= max is the caller's responsibility; inverted bounds match nothing.
type CleaningParameters struct {
	AgeMin float64 `json:"age_min" yaml:"age_min"`
	AgeMax float64 `json:"age_max" yaml:"age_max"`
	ExpMin float64 `json:"exp_min" yaml:"exp_min"`
	ExpMax float64 `json:"exp_max" yaml:"exp_max"`
}

// DefaultParameters returns the bounds used when nothing else is configured.
func DefaultParameters() CleaningParameters {
	return CleaningParameters{AgeMin: 16, AgeMax: 80, ExpMin: 0, ExpMax: 60}
}

// Candidate is the typed intermediate produced by coercion. Nil pointers are nulls.
type Candidate struct {
	EmployeeID      string
	Age             *float64
	YearsExperience *float64
	Department      Department
	Salary          *float64
	Remote          *bool
	HiredDate       *time.Time
}

// CleanedRecord is one row of the cleaned set.
type CleanedRecord struct {
	EmployeeID      string     `json:"employee_id"`
	Age             int64      `json:"age"`
	Department      Department `json:"department"`
	YearsExperience int64      `json:"years_experience"`
	Remote          *bool      `json:"remote"`
	HiredDate       *time.Time `json:"hired_date"`
	SalaryUSD       *float64   `json:"salary_usd"`
}

// DateLayout is the canonical text form of hired_date in storage and exports.
const DateLayout = "2006-01-02"
