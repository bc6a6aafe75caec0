// Package expand replicates canonical rows into one row per physical unit.
package expand

import "github.com/88maurosls/asics/internal/model"

// Rows replicates each input row Quantity times. Every replica represents
// one unit: quantity is reset to 1 and total cost equals the unit cost.
// Rows with quantity 0 vanish. Invariants:
//
//	sum(out.TotalCost) == sum(in.Cost * in.Quantity)
//	len(out) == sum(in.Quantity)
func Rows(in []model.CanonicalRow) []model.CanonicalRow {
	total := 0
	for _, row := range in {
		total += row.Quantity
	}

	out := make([]model.CanonicalRow, 0, total)
	for _, row := range in {
		for n := 0; n < row.Quantity; n++ {
			replica := row
			replica.Quantity = 1
			replica.TotalCost = row.Cost
			out = append(out, replica)
		}
	}
	return out
}
