// Package engine orchestrates the conversion pipeline: read vendor files,
// map and expand rows, reconcile classifications with the remote store,
// collect the user's decisions, export segmented sheets and write the
// decisions back.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/88maurosls/asics/internal/common"
	"github.com/88maurosls/asics/internal/expand"
	"github.com/88maurosls/asics/internal/export"
	"github.com/88maurosls/asics/internal/mapper"
	"github.com/88maurosls/asics/internal/model"
	"github.com/88maurosls/asics/internal/service"
	"github.com/88maurosls/asics/internal/store"
	"github.com/88maurosls/asics/internal/tabular"
)

// Engine wires the pipeline's collaborators together.
type Engine struct {
	reader   tabular.Reader
	store    service.ClassificationStore
	cache    *store.Cache
	prompter Prompter
	exporter export.Exporter
	colors   *model.ColorMapping
	logger   *slog.Logger
}

// New creates a pipeline engine. cache may be nil, in which case a hydrate
// outage degrades straight to an empty mapping.
func New(reader tabular.Reader, classStore service.ClassificationStore, cache *store.Cache, prompter Prompter, exporter export.Exporter, colors *model.ColorMapping, logger *slog.Logger) *Engine {
	return &Engine{
		reader:   reader,
		store:    classStore,
		cache:    cache,
		prompter: prompter,
		exporter: exporter,
		colors:   colors,
		logger:   logger,
	}
}

// Run executes one conversion session over the given input files. Files are
// concatenated in argument order; a parse or schema error in one file skips
// only that file. A persistence failure after a successful export is
// returned wrapped in common.ErrPersistence so the caller can report it
// without discarding the export.
func (e *Engine) Run(ctx context.Context, session *Session, paths []string) (*service.SessionStats, error) {
	start := time.Now()
	stats := &service.SessionStats{}

	canonical, err := e.readFiles(session, paths, stats)
	if err != nil {
		return stats, err
	}
	stats.CanonicalRows = len(canonical)

	expanded := expand.Rows(canonical)
	stats.ExpandedRows = len(expanded)

	keys := model.UniqueKeys(canonical)
	stats.KeysTotal = len(keys)

	existing := e.hydrate(ctx)
	session.Selections = existing.Reconcile(keys)

	if err := e.collectDecisions(ctx, session, keys, stats); err != nil {
		return stats, err
	}

	pages, err := export.Segment(expanded, session.Selections)
	if err != nil {
		return stats, err
	}

	meta := export.Meta{
		Season:    session.Season,
		Type:      model.DefaultSubcategory,
		StartDate: session.StartDate,
		EndDate:   session.EndDate,
		Markup:    session.Markup,
	}

	if err := e.exporter.Export(ctx, meta, pages); err != nil {
		return stats, fmt.Errorf("export failed: %w", err)
	}
	stats.PagesWritten = len(pages)
	stats.Duration = time.Since(start)

	// Export and persistence are independent side effects: a failed save
	// must not discard the files already produced.
	if err := e.commit(ctx, session, keys); err != nil {
		return stats, err
	}

	return stats, nil
}

// readFiles parses every input file, skipping (and reporting) the ones that
// fail, and concatenates the surviving rows in upload order.
func (e *Engine) readFiles(session *Session, paths []string, stats *service.SessionStats) ([]model.CanonicalRow, error) {
	m := mapper.New(e.colors, session.Markup)

	var canonical []model.CanonicalRow
	for _, path := range paths {
		table, err := tabular.ReadFile(e.reader, path)
		if err != nil {
			e.logger.Error("skipping file", "file", path, "error", err)
			stats.FilesSkipped++
			continue
		}

		rows, err := m.MapTable(table)
		if err != nil {
			e.logger.Error("skipping file", "file", path, "error", err)
			stats.FilesSkipped++
			continue
		}

		canonical = append(canonical, rows...)
		stats.FilesRead++
	}

	if len(canonical) == 0 {
		return nil, common.NewUserError("no usable rows in any input file", nil)
	}
	return canonical, nil
}

// hydrate loads the persisted classifications. A connectivity failure
// degrades to the local cache, then to an empty mapping, with a warning
// either way; it never aborts the run.
func (e *Engine) hydrate(ctx context.Context) model.ClassificationSet {
	existing, err := e.store.Hydrate(ctx)
	if err == nil {
		if e.cache != nil {
			if cacheErr := e.cache.Replace(ctx, existing); cacheErr != nil {
				e.logger.Warn("failed to refresh classification cache", "error", cacheErr)
			}
		}
		return existing
	}

	e.logger.Warn("classification store unreachable, degrading", "error", err)

	if e.cache != nil {
		cached, cacheErr := e.cache.GetAll(ctx)
		if cacheErr == nil && len(cached) > 0 {
			e.logger.Warn("using locally cached classifications", "entries", len(cached))
			return cached
		}
		if cacheErr != nil {
			e.logger.Warn("failed to read classification cache", "error", cacheErr)
		}
	}

	e.logger.Warn("treating all articles as unclassified")
	return make(model.ClassificationSet)
}

// collectDecisions prompts for every session key still unset and merges the
// answers into the session.
func (e *Engine) collectDecisions(ctx context.Context, session *Session, keys []model.ClassificationKey, stats *service.SessionStats) error {
	var needed []model.ClassificationKey
	for _, key := range keys {
		if session.Selections[key] == model.LabelUnset {
			needed = append(needed, key)
		}
	}
	stats.KeysPrompted = len(needed)

	if len(needed) == 0 {
		return nil
	}

	decisions, err := e.prompter.ConfirmLabels(ctx, needed)
	if err != nil {
		return fmt.Errorf("classification aborted: %w", err)
	}

	for key, label := range decisions {
		if !label.Valid() {
			return fmt.Errorf("%w: invalid label %q for %s/%s", common.ErrValidation, label, key.Article, key.Color)
		}
		session.Selections[key] = label
	}
	return nil
}

// commit writes this session's decisions back to the remote store and
// refreshes the local cache.
func (e *Engine) commit(ctx context.Context, session *Session, keys []model.ClassificationKey) error {
	entries := make([]model.ClassificationEntry, 0, len(keys))
	for _, key := range keys {
		entries = append(entries, model.ClassificationEntry{Key: key, Label: session.Selections[key]})
	}

	result, err := e.store.Commit(ctx, entries)
	if err != nil {
		if result != nil && result.Saved() > 0 {
			e.logger.Error("partial classification save",
				"saved", result.Saved(),
				"unsaved", result.Failed)
		}
		if errors.Is(err, common.ErrPersistence) || errors.Is(err, common.ErrConnectivity) {
			return fmt.Errorf("%w: export completed but %d classifications were not saved", common.ErrPersistence, len(entries)-resultSaved(result))
		}
		return err
	}

	if e.cache != nil {
		if cacheErr := e.cache.Replace(ctx, session.Selections); cacheErr != nil {
			e.logger.Warn("failed to refresh classification cache", "error", cacheErr)
		}
	}

	return nil
}

func resultSaved(r *service.CommitResult) int {
	if r == nil {
		return 0
	}
	return r.Saved()
}
