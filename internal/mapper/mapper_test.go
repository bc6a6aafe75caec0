package mapper

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/88maurosls/asics/internal/common"
	"github.com/88maurosls/asics/internal/model"
	"github.com/88maurosls/asics/internal/tabular"
)

func testColorMapping(t *testing.T) *model.ColorMapping {
	t.Helper()
	mapping, err := model.LoadColorMapping(strings.NewReader("BLACK;NERO\nWHITE;BIANCO\n"))
	require.NoError(t, err)
	return mapping
}

func testTable(rows ...[]string) *tabular.Table {
	headers := []string{
		"Trading code", "Item name", "Color code", "Color name",
		"Unit price", "Size US", "EAN code", "Quantity",
	}
	return tabular.NewTable(headers, rows)
}

func TestMapTable(t *testing.T) {
	m := New(testColorMapping(t), decimal.NewFromInt(2))

	table := testTable(
		[]string{"1011A792", "GEL-KAYANO 31", "1", "BLACK/GRAPHITE", "€89,50", "10.5", "4550456789012", "3"},
	)

	rows, err := m.MapTable(table)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "1011A792", row.Article)
	assert.Equal(t, "GEL-KAYANO 31", row.Description)
	assert.Equal(t, model.DefaultCategory, row.Category)
	assert.Equal(t, model.DefaultSubcategory, row.Subcategory)
	assert.Equal(t, "001", row.Color)
	assert.Equal(t, "NERO", row.BaseColor)
	assert.True(t, row.Cost.Equal(decimal.RequireFromString("89.5")))
	assert.True(t, row.Retail.Equal(decimal.RequireFromString("179")))
	assert.Equal(t, "10+", row.Size)
	assert.Equal(t, "4550456789012", row.Barcode)
	assert.Equal(t, 3, row.Quantity)
	assert.True(t, row.TotalCost.Equal(decimal.RequireFromString("268.5")))
	assert.Equal(t, model.DefaultSizeScale, row.SizeScale)

	// Placeholder columns stay empty for downstream manual entry.
	assert.Empty(t, row.MadeIn)
	assert.Empty(t, row.Material)
	assert.Empty(t, row.HSCode)
}

func TestMapTableMissingColumn(t *testing.T) {
	m := New(testColorMapping(t), decimal.NewFromInt(2))

	table := tabular.NewTable([]string{"Trading code", "Item name"}, nil)
	_, err := m.MapTable(table)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrSchema)
}

func TestMapTableBadPrice(t *testing.T) {
	m := New(testColorMapping(t), decimal.NewFromInt(2))

	table := testTable(
		[]string{"A", "Shoe", "1", "BLACK", "free", "9", "123", "1"},
	)
	_, err := m.MapTable(table)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrParse)
	// Row numbers are reported the way the user sees them in the file.
	assert.Contains(t, err.Error(), "row 2")
}

func TestMapTableBadQuantity(t *testing.T) {
	m := New(testColorMapping(t), decimal.NewFromInt(2))

	table := testTable(
		[]string{"A", "Shoe", "1", "BLACK", "10.00", "9", "123", "1.5"},
	)
	_, err := m.MapTable(table)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrParse)
}

func TestMapTableUnknownColorName(t *testing.T) {
	m := New(testColorMapping(t), decimal.NewFromInt(2))

	table := testTable(
		[]string{"A", "Shoe", "700", "NEON CORAL", "10.00", "9", "123", "1"},
	)
	rows, err := m.MapTable(table)
	require.NoError(t, err)
	assert.Empty(t, rows[0].BaseColor)
}
