package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/88maurosls/asics/internal/model"
)

func TestParseEntries(t *testing.T) {
	values := [][]any{
		{"1011A792", "001", "UOMO"},
		{"1012B413", "700", "DONNA"},
		{"1013C555", "020"}, // no label column yet
		{""},                // junk row
		{"", "001", "UOMO"}, // missing article
	}

	entries := parseEntries(values)
	require.Len(t, entries, 3)
	assert.Equal(t, model.LabelUomo, entries[model.ClassificationKey{Article: "1011A792", Color: "001"}])
	assert.Equal(t, model.LabelDonna, entries[model.ClassificationKey{Article: "1012B413", Color: "700"}])
	assert.Equal(t, model.LabelUnset, entries[model.ClassificationKey{Article: "1013C555", Color: "020"}])
}

func TestParseEntriesCanonicalizesLabels(t *testing.T) {
	// The sheet is hand-editable, so label cells can hold any casing or
	// arbitrary text. Hydrate must never surface an unknown label.
	values := [][]any{
		{"A", "001", "uomo"},
		{"B", "002", " Donna "},
		{"C", "003", "bambino"},
	}

	entries := parseEntries(values)
	assert.Equal(t, model.LabelUomo, entries[model.ClassificationKey{Article: "A", Color: "001"}])
	assert.Equal(t, model.LabelDonna, entries[model.ClassificationKey{Article: "B", Color: "002"}])
	// Unrecognized text reads as unset so the user gets re-prompted.
	assert.Equal(t, model.LabelUnset, entries[model.ClassificationKey{Article: "C", Color: "003"}])
}

func TestParseEntriesKeepsFirstDuplicateRow(t *testing.T) {
	// Duplicate keys resolve to the first row, the same row planCommit
	// targets for updates.
	values := [][]any{
		{"A", "001", "UOMO"},
		{"A", "001", "DONNA"},
	}

	entries := parseEntries(values)
	require.Len(t, entries, 1)
	assert.Equal(t, model.LabelUomo, entries[model.ClassificationKey{Article: "A", Color: "001"}])
}

func TestPlanCommit(t *testing.T) {
	sheet := [][]any{
		{"A", "001", "UOMO"},
		{"B", "002", "DONNA"},
	}

	entries := []model.ClassificationEntry{
		{Key: model.ClassificationKey{Article: "A", Color: "001"}, Label: model.LabelUomo},   // unchanged
		{Key: model.ClassificationKey{Article: "B", Color: "002"}, Label: model.LabelUnisex}, // changed
		{Key: model.ClassificationKey{Article: "C", Color: "003"}, Label: model.LabelDonna},  // new
	}

	plan := planCommit(sheet, entries)

	assert.Equal(t, 1, plan.unchanged)
	require.Len(t, plan.updates, 1)
	// "B" sits on the second data row, which is sheet row 3.
	assert.Equal(t, 3, plan.updates[0].row)
	assert.Equal(t, model.LabelUnisex, plan.updates[0].label)
	require.Len(t, plan.appends, 1)
	assert.Equal(t, "C", plan.appends[0].Key.Article)
}

func TestPlanCommitIsIdempotent(t *testing.T) {
	entries := []model.ClassificationEntry{
		{Key: model.ClassificationKey{Article: "A", Color: "001"}, Label: model.LabelUomo},
	}

	// First commit against an empty sheet appends.
	first := planCommit(nil, entries)
	require.Len(t, first.appends, 1)
	assert.Empty(t, first.updates)

	// Second commit against the sheet state the first one produced does
	// nothing: no duplicate record, no label drift.
	sheet := [][]any{{"A", "001", "UOMO"}}
	second := planCommit(sheet, entries)
	assert.Empty(t, second.appends)
	assert.Empty(t, second.updates)
	assert.Equal(t, 1, second.unchanged)
}

func TestPlanCommitKeepsFirstDuplicateRow(t *testing.T) {
	// Legacy sheets can hold the same key twice; updates must target the
	// row Hydrate would read.
	sheet := [][]any{
		{"A", "001", "UOMO"},
		{"A", "001", "DONNA"},
	}

	entries := []model.ClassificationEntry{
		{Key: model.ClassificationKey{Article: "A", Color: "001"}, Label: model.LabelUnisex},
	}

	plan := planCommit(sheet, entries)
	require.Len(t, plan.updates, 1)
	assert.Equal(t, 2, plan.updates[0].row)
}

func TestChunkBy(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	chunks := chunkBy(items, 2)
	require.Len(t, chunks, 3)
	assert.Equal(t, []int{1, 2}, chunks[0])
	assert.Equal(t, []int{3, 4}, chunks[1])
	assert.Equal(t, []int{5}, chunks[2])

	// A batch size at or above the item count means one request.
	assert.Len(t, chunkBy(items, 5), 1)
	assert.Len(t, chunkBy(items, 100), 1)
	assert.Len(t, chunkBy(items, 0), 1)

	assert.Nil(t, chunkBy([]int(nil), 2))
}
