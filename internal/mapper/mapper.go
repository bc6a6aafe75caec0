// Package mapper converts vendor order tables into canonical catalog rows.
package mapper

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/88maurosls/asics/internal/model"
	"github.com/88maurosls/asics/internal/normalize"
	"github.com/88maurosls/asics/internal/tabular"
)

// Vendor column names required in every uploaded file.
const (
	ColTradingCode = "Trading code"
	ColItemName    = "Item name"
	ColColorCode   = "Color code"
	ColColorName   = "Color name"
	ColUnitPrice   = "Unit price"
	ColSizeUS      = "Size US"
	ColEANCode     = "EAN code"
	ColQuantity    = "Quantity"
)

var requiredColumns = []string{
	ColTradingCode,
	ColItemName,
	ColColorCode,
	ColColorName,
	ColUnitPrice,
	ColSizeUS,
	ColEANCode,
	ColQuantity,
}

// Mapper maps one vendor table to canonical rows. Markup is the retail
// multiplier applied to the cleaned unit cost.
type Mapper struct {
	Colors *model.ColorMapping
	Markup decimal.Decimal
}

// New creates a mapper with the given color mapping and markup factor.
func New(colors *model.ColorMapping, markup decimal.Decimal) *Mapper {
	return &Mapper{Colors: colors, Markup: markup}
}

// MapTable converts every row of a vendor table. It fails on a missing
// required column or the first unparseable price, size or quantity; a
// failure aborts only this table, the caller decides what to do with the
// other uploads.
func (m *Mapper) MapTable(table *tabular.Table) ([]model.CanonicalRow, error) {
	if err := table.RequireColumns(requiredColumns...); err != nil {
		return nil, err
	}

	rows := make([]model.CanonicalRow, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		row, err := m.mapRow(table, i)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *Mapper) mapRow(table *tabular.Table, i int) (model.CanonicalRow, error) {
	cost, err := normalize.CleanPrice(table.Cell(i, ColUnitPrice))
	if err != nil {
		return model.CanonicalRow{}, err
	}

	quantity, err := normalize.ParseQuantity(table.Cell(i, ColQuantity))
	if err != nil {
		return model.CanonicalRow{}, err
	}

	color := normalize.PadColor(table.Cell(i, ColColorCode))

	return model.CanonicalRow{
		Article:     table.Cell(i, ColTradingCode),
		Description: table.Cell(i, ColItemName),
		Category:    model.DefaultCategory,
		Subcategory: model.DefaultSubcategory,
		Color:       color,
		BaseColor:   m.Colors.Lookup(table.Cell(i, ColColorName)),
		Cost:        cost,
		Retail:      cost.Mul(m.Markup),
		Size:        normalize.FormatSize(table.Cell(i, ColSizeUS)),
		Barcode:     table.Cell(i, ColEANCode),
		Quantity:    quantity,
		TotalCost:   cost.Mul(decimal.NewFromInt(int64(quantity))),
		SizeScale:   model.DefaultSizeScale,
	}, nil
}
