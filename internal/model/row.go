package model

import "github.com/shopspring/decimal"

// Fixed catalog constants applied to every converted row.
const (
	DefaultCategory    = "CALZATURE"
	DefaultSubcategory = "Sneakers"
	DefaultSizeScale   = "US"
)

// CanonicalRow is one normalized catalog record: a single article/color/size
// combination. Article, Color and Barcode are always strings so leading zeros
// survive and barcodes never render in scientific notation.
type CanonicalRow struct {
	Article      string
	Description  string
	Category     string
	Subcategory  string
	Color        string
	BaseColor    string
	MadeIn       string
	KidsCode     string
	Cost         decimal.Decimal
	Retail       decimal.Decimal
	Size         string
	Barcode      string
	Quantity     int
	TotalCost    decimal.Decimal
	Material     string
	MaterialSpec string
	Measures     string
	SizeScale    string
	Heel         string
	Sole         string
	Carryover    string
	HSCode       string
}

// Key returns the classification key for this row.
func (r CanonicalRow) Key() ClassificationKey {
	return ClassificationKey{Article: r.Article, Color: r.Color}
}

// CatalogColumns is the fixed output column order. BarcodeColumn marks the
// column that must be written with a text format.
var CatalogColumns = []string{
	"Articolo",
	"Descrizione",
	"Categoria",
	"Subcategoria",
	"Colore",
	"Base Color",
	"Made in",
	"Sigla Bimbo",
	"Costo",
	"Retail",
	"Taglia",
	"Barcode",
	"Qta",
	"Tot Costo",
	"Materiale",
	"Spec. Materiale",
	"Misure",
	"Scala Taglie",
	"Tacco",
	"Suola",
	"Carryover",
	"HS Code",
}

// Zero-based indexes of the columns the writer treats specially.
const (
	BarcodeColumn   = 11
	QuantityColumn  = 12
	TotalCostColumn = 13
)

// Values renders the row in CatalogColumns order. Quantity is the only
// numeric cell; money cells are rendered with two decimals so the output is
// stable regardless of the input's precision.
func (r CanonicalRow) Values() []string {
	return []string{
		r.Article,
		r.Description,
		r.Category,
		r.Subcategory,
		r.Color,
		r.BaseColor,
		r.MadeIn,
		r.KidsCode,
		r.Cost.StringFixed(2),
		r.Retail.StringFixed(2),
		r.Size,
		r.Barcode,
		decimal.NewFromInt(int64(r.Quantity)).String(),
		r.TotalCost.StringFixed(2),
		r.Material,
		r.MaterialSpec,
		r.Measures,
		r.SizeScale,
		r.Heel,
		r.Sole,
		r.Carryover,
		r.HSCode,
	}
}

// UniqueKeys extracts the distinct classification keys from rows, preserving
// first-seen order.
func UniqueKeys(rows []CanonicalRow) []ClassificationKey {
	seen := make(map[ClassificationKey]bool, len(rows))
	keys := make([]ClassificationKey, 0, len(rows))
	for _, row := range rows {
		key := row.Key()
		if !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	return keys
}
