package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/88maurosls/asics/internal/common"
)

// Reader turns one uploaded spreadsheet into a Table. The binary codec is a
// black box behind this interface; swapping in an XLSX-backed reader does
// not touch the pipeline.
type Reader interface {
	Read(r io.Reader) (*Table, error)
}

// CSVReader reads comma-separated vendor exports. The first row is the
// header. A UTF-8 BOM is tolerated, as are ragged rows and stray quotes.
type CSVReader struct{}

// NewCSVReader creates a CSV table reader.
func NewCSVReader() *CSVReader { return &CSVReader{} }

// Read parses the full input into a Table.
func (c *CSVReader) Read(r io.Reader) (*Table, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(content))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrParse, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", common.ErrParse)
	}

	return NewTable(records[0], records[1:]), nil
}

// ReadFile opens and parses one file, releasing the handle on all paths.
func ReadFile(reader Reader, path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	table, err := reader.Read(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return table, nil
}
