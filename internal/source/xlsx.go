package source

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/KaramelBytes/tidyset-cli/internal/dataset"
)

type xlsxDecoder struct{}

func (xlsxDecoder) CanDecode(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".xlsx")
}

// Decode reads the first sheet; its first row is the header.
func (xlsxDecoder) Decode(name string, data []byte) (*dataset.RawTable, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	tbl := &dataset.RawTable{Name: filepath.Base(name)}
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return tbl, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return tbl, nil
	}
	tbl.Columns = headerNames(rows[0])
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		tbl.Records = append(tbl.Records, toRecord(tbl.Columns, row))
	}
	return tbl, nil
}
