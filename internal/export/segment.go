// Package export splits classified catalog rows into per-label pages and
// writes them as formatted sheets.
package export

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/88maurosls/asics/internal/common"
	"github.com/88maurosls/asics/internal/model"
)

// MaxRowsPerPage is the data-row limit per output sheet.
const MaxRowsPerPage = 50

// Fixed page layout: five metadata lines, one column header row, then data.
const (
	headerLines  = 5
	columnRow    = headerLines + 1
	firstDataRow = columnRow + 1
)

// Meta is the fixed header block written at the top of every page.
type Meta struct {
	Season    string
	Type      string
	StartDate string
	EndDate   string
	Markup    decimal.Decimal
}

// Page is one output sheet: at most MaxRowsPerPage data rows sharing a
// classification label.
type Page struct {
	SheetName string
	Label     model.Label
	Rows      []model.CanonicalRow
}

// Exporter writes segmented pages to an output target.
type Exporter interface {
	Export(ctx context.Context, meta Meta, pages []Page) error
}

// Segment partitions rows by their resolved label and chunks each group
// into pages. It refuses to proceed while any row's key is still unset or
// carries a label outside model.AllLabels, so no row can silently fall out
// of the export. Labels keep their model.AllLabels order; groups with no
// rows produce no pages. The first page of a group takes the bare label as
// its sheet name, later pages append a running counter.
func Segment(rows []model.CanonicalRow, set model.ClassificationSet) ([]Page, error) {
	unclassified := 0
	for _, row := range rows {
		label := set[row.Key()]
		if label == model.LabelUnset {
			unclassified++
			continue
		}
		if !label.Valid() {
			key := row.Key()
			return nil, fmt.Errorf("%w: unknown label %q for %s/%s", common.ErrValidation, label, key.Article, key.Color)
		}
	}
	if unclassified > 0 {
		return nil, fmt.Errorf("%w: %d rows without a label", common.ErrValidation, unclassified)
	}

	groups := make(map[model.Label][]model.CanonicalRow)
	for _, row := range rows {
		label := set[row.Key()]
		groups[label] = append(groups[label], row)
	}

	var pages []Page
	for _, label := range model.AllLabels {
		group := groups[label]
		for start := 0; start < len(group); start += MaxRowsPerPage {
			end := start + MaxRowsPerPage
			if end > len(group) {
				end = len(group)
			}

			name := string(label)
			if start > 0 {
				name = fmt.Sprintf("%s %d", label, start/MaxRowsPerPage+1)
			}

			pages = append(pages, Page{
				SheetName: name,
				Label:     label,
				Rows:      group[start:end],
			})
		}
	}

	return pages, nil
}

// sumRange renders a SUM formula over a page's data rows in the given
// spreadsheet column letter.
func sumRange(column string, dataRows int) string {
	return fmt.Sprintf("=SUM(%s%d:%s%d)", column, firstDataRow, column, firstDataRow+dataRows-1)
}

// columnLetter converts a zero-based column index to its A1 letter.
func columnLetter(index int) string {
	letters := ""
	for index >= 0 {
		letters = string(rune('A'+index%26)) + letters
		index = index/26 - 1
	}
	return letters
}

// PageRecords renders one page as rows of cells in the fixed layout: the
// five-line header block, the column header row, the data rows, then one
// trailing row with SUM formulas under the quantity and total-cost columns.
func PageRecords(meta Meta, page Page) [][]string {
	records := make([][]string, 0, headerLines+2+len(page.Rows))
	records = append(records, metaRows(meta)...)
	records = append(records, model.CatalogColumns)

	for _, row := range page.Rows {
		records = append(records, row.Values())
	}

	sums := make([]string, len(model.CatalogColumns))
	sums[model.QuantityColumn] = sumRange(columnLetter(model.QuantityColumn), len(page.Rows))
	sums[model.TotalCostColumn] = sumRange(columnLetter(model.TotalCostColumn), len(page.Rows))
	records = append(records, sums)

	return records
}

// metaRows renders the fixed five-line header block.
func metaRows(meta Meta) [][]string {
	return [][]string{
		{"Stagione", meta.Season},
		{"Tipo", meta.Type},
		{"Data inizio", meta.StartDate},
		{"Data fine", meta.EndDate},
		{"Ricarico", meta.Markup.String()},
	}
}
