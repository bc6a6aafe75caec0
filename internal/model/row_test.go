package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestCanonicalRowValues(t *testing.T) {
	row := CanonicalRow{
		Article:     "1011A792",
		Description: "GEL-KAYANO 31",
		Category:    DefaultCategory,
		Subcategory: DefaultSubcategory,
		Color:       "001",
		Cost:        decimal.RequireFromString("89.5"),
		Retail:      decimal.RequireFromString("179"),
		Size:        "10+",
		Barcode:     "4550456789012",
		Quantity:    1,
		TotalCost:   decimal.RequireFromString("89.5"),
		SizeScale:   DefaultSizeScale,
	}

	values := row.Values()
	assert.Len(t, values, len(CatalogColumns))
	assert.Equal(t, "1011A792", values[0])
	assert.Equal(t, "001", values[4])
	assert.Equal(t, "89.50", values[8])
	assert.Equal(t, "179.00", values[9])
	assert.Equal(t, "4550456789012", values[BarcodeColumn])
	assert.Equal(t, "1", values[QuantityColumn])
	assert.Equal(t, "89.50", values[TotalCostColumn])
}

func TestUniqueKeys(t *testing.T) {
	rows := []CanonicalRow{
		{Article: "A", Color: "001"},
		{Article: "A", Color: "001"}, // second size of the same variant
		{Article: "A", Color: "002"},
		{Article: "B", Color: "001"},
		{Article: "A", Color: "001"},
	}

	keys := UniqueKeys(rows)
	assert.Equal(t, []ClassificationKey{
		{Article: "A", Color: "001"},
		{Article: "A", Color: "002"},
		{Article: "B", Color: "001"},
	}, keys)
}
