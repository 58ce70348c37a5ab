package cmd

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/KaramelBytes/tidyset-cli/internal/engine"
)

var (
	okColor   = color.New(color.FgGreen)
	warnColor = color.New(color.FgYellow)
	headColor = color.New(color.FgCyan, color.Bold)
)

func printOK(w io.Writer, format string, args ...any) {
	okColor.Fprintf(w, "✓ "+format+"\n", args...)
}

func printWarn(w io.Writer, format string, args ...any) {
	warnColor.Fprintf(w, "⚠ Warning: "+format+"\n", args...)
}

func printHeading(w io.Writer, title string) {
	headColor.Fprintf(w, "\n%s\n", title)
}

func renderTable(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func renderResultSet(w io.Writer, rs *engine.ResultSet) {
	rows := make([][]string, len(rs.Rows))
	for i, r := range rs.Rows {
		rows[i] = make([]string, len(r))
		for j, v := range r {
			rows[i][j] = formatCell(v, "NULL")
		}
	}
	renderTable(w, rs.Columns, rows)
	fmt.Fprintf(w, "(%d row(s))\n", len(rs.Rows))
}

func writeResultSetCSV(w io.Writer, rs *engine.ResultSet) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(rs.Columns); err != nil {
		return err
	}
	for _, r := range rs.Rows {
		rec := make([]string, len(r))
		for j, v := range r {
			rec[j] = formatCell(v, "")
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCell(v any, null string) string {
	switch x := v.(type) {
	case nil:
		return null
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.Format(time.RFC3339)
	default:
		return fmt.Sprint(x)
	}
}

func formatCount(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func bar(n, max, width int) string {
	if max <= 0 || n <= 0 {
		return ""
	}
	w := n * width / max
	if w == 0 {
		w = 1
	}
	return strings.Repeat("█", w)
}
