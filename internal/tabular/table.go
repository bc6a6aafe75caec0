// Package tabular abstracts the spreadsheet codec behind a small table
// model, so the conversion pipeline never touches file formats directly.
package tabular

import (
	"fmt"
	"strings"

	"github.com/88maurosls/asics/internal/common"
)

// Table is one sheet of named columns. Every cell is a string; numeric
// coercion is the pipeline's job, never the codec's, so color codes and
// barcodes keep their leading zeros.
type Table struct {
	columns map[string]int
	Headers []string
	Rows    [][]string
}

// NewTable builds a table from a header row and data rows. Header lookup is
// whitespace-trimmed but case-sensitive, matching the vendor files.
func NewTable(headers []string, rows [][]string) *Table {
	columns := make(map[string]int, len(headers))
	for i, h := range headers {
		columns[strings.TrimSpace(h)] = i
	}
	return &Table{
		Headers: headers,
		Rows:    rows,
		columns: columns,
	}
}

// RequireColumns verifies every named column exists.
func (t *Table) RequireColumns(names ...string) error {
	var missing []string
	for _, name := range names {
		if _, ok := t.columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", common.ErrSchema, strings.Join(missing, ", "))
	}
	return nil
}

// Cell returns the named column's value in row i, or "" when the row is
// ragged and does not reach that column.
func (t *Table) Cell(i int, column string) string {
	idx, ok := t.columns[column]
	if !ok || i < 0 || i >= len(t.Rows) {
		return ""
	}
	row := t.Rows[i]
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}
