package source

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

// Decoder turns an acquired byte buffer into a raw table.
type Decoder interface {
	CanDecode(name string) bool
	Decode(name string, data []byte) (*dataset.RawTable, error)
}

var registry []Decoder

// Register adds a decoder. Later registrations do not override earlier ones.
func Register(d Decoder) {
	registry = append(registry, d)
}

func init() {
	Register(xlsxDecoder{})
	Register(csvDecoder{})
}

// ErrUnsupportedFormat is returned for inputs no decoder accepts.
var ErrUnsupportedFormat = errors.New("unsupported input format")

// Decode picks a decoder by file name. Names without a known extension are read as CSV.
func Decode(name string, data []byte) (*dataset.RawTable, error) {
	for _, d := range registry {
		if d.CanDecode(name) {
			return d.Decode(name, data)
		}
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case "", ".txt", ".dat":
		return csvDecoder{}.Decode(name, data)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(name))
}

type csvDecoder struct{}

func (csvDecoder) CanDecode(name string) bool {
	n := strings.ToLower(name)
	return strings.HasSuffix(n, ".csv") || strings.HasSuffix(n, ".tsv")
}

func (csvDecoder) Decode(name string, data []byte) (*dataset.RawTable, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.Comma = sniffDelimiter(name, data)

	tbl := &dataset.RawTable{Name: filepath.Base(name)}
	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return tbl, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	tbl.Columns = headerNames(header)
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(tbl.Records)+1, err)
		}
		if isBlankRow(rec) {
			continue
		}
		tbl.Records = append(tbl.Records, toRecord(tbl.Columns, rec))
	}
	return tbl, nil
}

// sniffDelimiter uses the extension for .tsv and otherwise counts candidate
// separators on the header line.
func sniffDelimiter(name string, data []byte) rune {
	if strings.HasSuffix(strings.ToLower(name), ".tsv") {
		return '\t'
	}
	line := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		line = data[:i]
	}
	best, bestN := ',', bytes.Count(line, []byte{','})
	for _, c := range []rune{';', '\t'} {
		if n := bytes.Count(line, []byte(string(c))); n > bestN {
			best, bestN = c, n
		}
	}
	return best
}

// headerNames trims names, fills blanks and de-duplicates so every column is addressable.
// Names are compared case-insensitively since the engine's identifiers are.
func headerNames(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, h := range header {
		base := strings.TrimSpace(h)
		if base == "" {
			base = fmt.Sprintf("column_%d", i+1)
		}
		name := base
		for n := 2; used[strings.ToLower(name)]; n++ {
			name = fmt.Sprintf("%s_%d", base, n)
		}
		used[strings.ToLower(name)] = true
		out[i] = name
	}
	return out
}

// toRecord maps cells onto column names. Empty and missing cells are null.
func toRecord(cols, cells []string) dataset.RawRecord {
	rec := make(dataset.RawRecord, len(cols))
	for i, c := range cols {
		if i < len(cells) && cells[i] != "" {
			rec[c] = cells[i]
		}
	}
	return rec
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
