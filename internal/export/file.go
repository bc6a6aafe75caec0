package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// FileExporter writes one CSV file per page into an output directory.
// Formula cells are written as literal "=SUM(...)" text, which spreadsheet
// applications evaluate on import; barcodes stay plain strings, which CSV
// cannot corrupt.
type FileExporter struct {
	logger *slog.Logger
	OutDir string
}

// NewFileExporter creates a file exporter targeting dir.
func NewFileExporter(dir string, logger *slog.Logger) *FileExporter {
	return &FileExporter{OutDir: dir, logger: logger}
}

// Export implements the Exporter interface.
func (e *FileExporter) Export(ctx context.Context, meta Meta, pages []Page) error {
	if err := os.MkdirAll(e.OutDir, 0750); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, page := range pages {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		path := filepath.Join(e.OutDir, fileName(page.SheetName))
		if err := e.writePage(path, meta, page); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		e.logger.Info("wrote export page",
			"file", path,
			"label", string(page.Label),
			"rows", len(page.Rows))
	}

	return nil
}

func (e *FileExporter) writePage(path string, meta Meta, page Page) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	for _, record := range PageRecords(meta, page) {
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

func fileName(sheetName string) string {
	return strings.ReplaceAll(sheetName, " ", "_") + ".csv"
}
