package export

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/api/sheets/v4"

	"github.com/88maurosls/asics/internal/common"
	"github.com/88maurosls/asics/internal/model"
	"github.com/88maurosls/asics/internal/service"
	"github.com/88maurosls/asics/internal/store"
)

// SheetsExporter writes all pages into one Google Sheets spreadsheet, one
// sheet per page. This is the combined-workbook deployment mode.
type SheetsExporter struct {
	service *sheets.Service
	logger  *slog.Logger
	title   string
	retry   service.RetryOptions
}

// NewSheetsExporter creates a Google Sheets exporter authenticated with the
// same credentials as the classification store.
func NewSheetsExporter(ctx context.Context, config store.Config, title string, logger *slog.Logger) (*SheetsExporter, error) {
	svc, err := store.NewService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsExporter{
		service: svc,
		logger:  logger,
		title:   title,
		retry: service.RetryOptions{
			MaxAttempts:  config.RetryAttempts,
			InitialDelay: config.RetryDelay,
			MaxDelay:     30 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// Export implements the Exporter interface. It creates a fresh spreadsheet
// holding every page, forces the barcode column to text before any value
// lands in it, then writes values with USER_ENTERED so the trailing SUM
// formulas evaluate.
func (e *SheetsExporter) Export(ctx context.Context, meta Meta, pages []Page) error {
	if len(pages) == 0 {
		return nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title: e.title,
		},
	}
	for _, page := range pages {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: page.SheetName},
		})
	}

	created, err := e.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	sheetIDs := make(map[string]int64, len(created.Sheets))
	for _, sheet := range created.Sheets {
		sheetIDs[sheet.Properties.Title] = sheet.Properties.SheetId
	}

	// The barcode format must be in place before values are written:
	// USER_ENTERED coerces long digit strings to numbers otherwise.
	if err := e.applyFormatting(ctx, created.SpreadsheetId, sheetIDs, pages); err != nil {
		return fmt.Errorf("failed to format spreadsheet: %w", err)
	}

	for _, page := range pages {
		if err := e.writePage(ctx, created.SpreadsheetId, meta, page); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", page.SheetName, err)
		}
	}

	e.logger.Info("export spreadsheet written",
		"spreadsheet_id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl,
		"sheets", len(pages))

	return nil
}

func (e *SheetsExporter) writePage(ctx context.Context, spreadsheetID string, meta Meta, page Page) error {
	records := PageRecords(meta, page)
	values := make([][]any, 0, len(records))
	for _, record := range records {
		cells := make([]any, len(record))
		for i, cell := range record {
			cells[i] = cell
		}
		values = append(values, cells)
	}

	return common.WithRetry(ctx, func() error {
		_, err := e.service.Spreadsheets.Values.Update(
			spreadsheetID,
			fmt.Sprintf("'%s'!A1", page.SheetName),
			&sheets.ValueRange{Values: values},
		).ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		return nil
	}, e.retry)
}

func (e *SheetsExporter) applyFormatting(ctx context.Context, spreadsheetID string, sheetIDs map[string]int64, pages []Page) error {
	var requests []*sheets.Request
	for _, page := range pages {
		sheetID := sheetIDs[page.SheetName]
		requests = append(requests,
			// Barcode column rendered as text
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:          sheetID,
						StartColumnIndex: model.BarcodeColumn,
						EndColumnIndex:   model.BarcodeColumn + 1,
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							NumberFormat: &sheets.NumberFormat{
								Type:    "TEXT",
								Pattern: "@",
							},
						},
					},
					Fields: "userEnteredFormat.numberFormat",
				},
			},
			// Bold metadata block and column headers
			&sheets.Request{
				RepeatCell: &sheets.RepeatCellRequest{
					Range: &sheets.GridRange{
						SheetId:       sheetID,
						StartRowIndex: 0,
						EndRowIndex:   int64(columnRow),
					},
					Cell: &sheets.CellData{
						UserEnteredFormat: &sheets.CellFormat{
							TextFormat: &sheets.TextFormat{Bold: true},
						},
					},
					Fields: "userEnteredFormat.textFormat",
				},
			},
			// Freeze everything above the data rows
			&sheets.Request{
				UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
					Properties: &sheets.SheetProperties{
						SheetId: sheetID,
						GridProperties: &sheets.GridProperties{
							FrozenRowCount: int64(columnRow),
						},
					},
					Fields: "gridProperties.frozenRowCount",
				},
			},
		)
	}

	return common.WithRetry(ctx, func() error {
		_, err := e.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
			Requests: requests,
		}).Context(ctx).Do()
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		return nil
	}, e.retry)
}
