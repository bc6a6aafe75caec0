package export

import (
	"context"
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/88maurosls/asics/internal/model"
)

func TestFileExporter(t *testing.T) {
	dir := t.TempDir()
	exporter := NewFileExporter(dir, slog.Default())

	pages := []Page{
		{SheetName: "UOMO", Label: model.LabelUomo, Rows: []model.CanonicalRow{unitRow("A", "001")}},
		{SheetName: "UOMO 2", Label: model.LabelUomo, Rows: []model.CanonicalRow{unitRow("B", "002")}},
		{SheetName: "DONNA", Label: model.LabelDonna, Rows: []model.CanonicalRow{unitRow("C", "003")}},
	}

	require.NoError(t, exporter.Export(context.Background(), testMeta(), pages))

	for _, name := range []string{"UOMO.csv", "UOMO_2.csv", "DONNA.csv"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s", name)
	}

	f, err := os.Open(filepath.Join(dir, "UOMO.csv"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	// 5 metadata lines + column header + 1 data row + sum row.
	require.Len(t, records, 8)
	assert.Equal(t, "Stagione", records[0][0])
	assert.Equal(t, model.CatalogColumns, records[5])
	assert.Equal(t, "=SUM(M7:M7)", records[7][model.QuantityColumn])
}

func TestFileExporterNoPages(t *testing.T) {
	dir := t.TempDir()
	exporter := NewFileExporter(dir, slog.Default())

	require.NoError(t, exporter.Export(context.Background(), testMeta(), nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
