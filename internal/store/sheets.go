package store

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/88maurosls/asics/internal/common"
	"github.com/88maurosls/asics/internal/model"
	"github.com/88maurosls/asics/internal/service"
)

// SheetsStore implements service.ClassificationStore against a Google Sheet
// with three columns: articolo, colore, genere. Data rows start at row 2.
type SheetsStore struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewSheetsStore creates a classification store backed by Google Sheets.
func NewSheetsStore(ctx context.Context, config Config, logger *slog.Logger) (*SheetsStore, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	svc, err := NewService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsStore{
		config:  config,
		service: svc,
		logger:  logger,
	}, nil
}

// NewService creates a Google Sheets API service from the configured
// credentials. The export backend shares it so both sides authenticate the
// same way.
func NewService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		// Use service account authentication
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		// Use OAuth2 authentication
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

func (s *SheetsStore) dataRange() string {
	return fmt.Sprintf("%s!A2:C", s.config.SheetName)
}

func (s *SheetsStore) retryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  s.config.RetryAttempts,
		InitialDelay: s.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// Hydrate reads every persisted classification. A remote failure is wrapped
// in common.ErrConnectivity so the caller can degrade instead of aborting.
func (s *SheetsStore) Hydrate(ctx context.Context) (model.ClassificationSet, error) {
	var resp *sheets.ValueRange
	err := common.WithRetry(ctx, func() error {
		var getErr error
		resp, getErr = s.service.Spreadsheets.Values.Get(s.config.SpreadsheetID, s.dataRange()).
			Context(ctx).
			Do()
		if getErr != nil {
			return &common.RetryableError{Err: getErr, Retryable: true}
		}
		return nil
	}, s.retryOptions())

	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrConnectivity, err)
	}

	entries := parseEntries(resp.Values)
	s.logger.Info("hydrated classification store",
		"entries", len(entries),
		"spreadsheet_id", s.config.SpreadsheetID)

	return entries, nil
}

// Commit persists entries. Keys already in the sheet get their label updated
// in place; new keys are appended. Updates go out as values.BatchUpdate
// calls and appends as values.Append calls, at most Config.BatchSize entries
// per request, so round-trips stay bounded no matter how many entries
// change.
func (s *SheetsStore) Commit(ctx context.Context, entries []model.ClassificationEntry) (*service.CommitResult, error) {
	result := &service.CommitResult{}
	if len(entries) == 0 {
		return result, nil
	}

	// Row positions can shift between sessions, so read the sheet's current
	// layout right before writing.
	resp, err := s.service.Spreadsheets.Values.Get(s.config.SpreadsheetID, s.dataRange()).
		Context(ctx).
		Do()
	if err != nil {
		result.Failed = len(entries)
		return result, fmt.Errorf("%w: %v", common.ErrConnectivity, err)
	}

	plan := planCommit(resp.Values, entries)

	for _, batch := range chunkBy(plan.updates, s.config.BatchSize) {
		data := make([]*sheets.ValueRange, 0, len(batch))
		for _, u := range batch {
			data = append(data, &sheets.ValueRange{
				Range:  fmt.Sprintf("%s!C%d", s.config.SheetName, u.row),
				Values: [][]any{{string(u.label)}},
			})
		}

		req := &sheets.BatchUpdateValuesRequest{
			ValueInputOption: "RAW",
			Data:             data,
		}

		err = common.WithRetry(ctx, func() error {
			_, updateErr := s.service.Spreadsheets.Values.BatchUpdate(s.config.SpreadsheetID, req).
				Context(ctx).
				Do()
			if updateErr != nil {
				return &common.RetryableError{Err: updateErr, Retryable: true}
			}
			return nil
		}, s.retryOptions())

		if err != nil {
			// Earlier batches already landed; report the partial success.
			result.Failed = len(plan.updates) - result.Updated + len(plan.appends)
			return result, fmt.Errorf("%w: %d entries not saved: %v", common.ErrPersistence, result.Failed, err)
		}
		result.Updated += len(batch)
	}

	for _, batch := range chunkBy(plan.appends, s.config.BatchSize) {
		values := make([][]any, 0, len(batch))
		for _, e := range batch {
			values = append(values, []any{e.Key.Article, e.Key.Color, string(e.Label)})
		}

		err = common.WithRetry(ctx, func() error {
			_, appendErr := s.service.Spreadsheets.Values.Append(s.config.SpreadsheetID, s.dataRange(), &sheets.ValueRange{Values: values}).
				ValueInputOption("RAW").
				InsertDataOption("INSERT_ROWS").
				Context(ctx).
				Do()
			if appendErr != nil {
				return &common.RetryableError{Err: appendErr, Retryable: true}
			}
			return nil
		}, s.retryOptions())

		if err != nil {
			result.Failed = len(plan.appends) - result.Appended
			return result, fmt.Errorf("%w: %d entries not saved: %v", common.ErrPersistence, result.Failed, err)
		}
		result.Appended += len(batch)
	}

	s.logger.Info("committed classifications",
		"updated", result.Updated,
		"appended", result.Appended,
		"unchanged", plan.unchanged)

	return result, nil
}

// parseEntries turns raw sheet rows into a classification set. Rows missing
// a key column are skipped; a missing label column reads as unset, and label
// text is canonicalized through model.ParseLabel since the sheet is
// hand-editable. A key appearing on several rows keeps its first row's
// label, the same row planCommit targets for updates.
func parseEntries(values [][]any) model.ClassificationSet {
	entries := make(model.ClassificationSet, len(values))
	for _, row := range values {
		if len(row) < 2 {
			continue
		}
		key := model.ClassificationKey{
			Article: cellString(row[0]),
			Color:   cellString(row[1]),
		}
		if key.Article == "" {
			continue
		}
		if _, ok := entries[key]; ok {
			continue
		}
		label := model.LabelUnset
		if len(row) > 2 {
			label = model.ParseLabel(cellString(row[2]))
		}
		entries[key] = label
	}
	return entries
}

type plannedUpdate struct {
	label model.Label
	row   int
}

type commitPlan struct {
	updates   []plannedUpdate
	appends   []model.ClassificationEntry
	unchanged int
}

// planCommit decides, against the sheet's current rows, which entries need
// an in-place update and which need appending. Entries whose stored label
// already matches are dropped, which is what makes Commit idempotent. A key
// appearing on several sheet rows keeps its first row, matching the lookup
// order Hydrate uses.
func planCommit(values [][]any, entries []model.ClassificationEntry) commitPlan {
	type position struct {
		row   int
		label model.Label
	}

	existing := make(map[model.ClassificationKey]position, len(values))
	for i, row := range values {
		if len(row) < 2 {
			continue
		}
		key := model.ClassificationKey{
			Article: cellString(row[0]),
			Color:   cellString(row[1]),
		}
		if key.Article == "" {
			continue
		}
		if _, ok := existing[key]; ok {
			continue
		}
		label := model.LabelUnset
		if len(row) > 2 {
			label = model.Label(cellString(row[2]))
		}
		// First data row is sheet row 2.
		existing[key] = position{row: i + 2, label: label}
	}

	var plan commitPlan
	for _, entry := range entries {
		pos, ok := existing[entry.Key]
		switch {
		case !ok:
			plan.appends = append(plan.appends, entry)
		case pos.label == entry.Label:
			plan.unchanged++
		default:
			plan.updates = append(plan.updates, plannedUpdate{row: pos.row, label: entry.Label})
		}
	}
	return plan
}

// chunkBy splits items into slices of at most size elements, preserving
// order. A non-positive size yields one chunk with everything.
func chunkBy[T any](items []T, size int) [][]T {
	if len(items) == 0 {
		return nil
	}
	if size <= 0 {
		return [][]T{items}
	}

	chunks := make([][]T, 0, (len(items)+size-1)/size)
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		chunks = append(chunks, items[start:end])
	}
	return chunks
}

func cellString(v any) string {
	s, _ := v.(string)
	return s
}
