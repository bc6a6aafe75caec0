package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/88maurosls/asics/internal/cli"
	"github.com/88maurosls/asics/internal/common"
	"github.com/88maurosls/asics/internal/config"
	"github.com/88maurosls/asics/internal/engine"
	"github.com/88maurosls/asics/internal/export"
	"github.com/88maurosls/asics/internal/model"
	"github.com/88maurosls/asics/internal/service"
	"github.com/88maurosls/asics/internal/store"
	"github.com/88maurosls/asics/internal/tabular"
)

func convertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert vendor order files into segmented catalog sheets",
		Long: `Convert one or more vendor order files into the product-catalog format.

Files are concatenated in argument order. Every distinct article+color pair
needs a gender classification; pairs already classified in a previous session
are filled in from the shared store, the rest are asked interactively.

Examples:
  # Convert one order file
  asics convert ~/Downloads/order_fw26.csv --season "FW26" --start 2026-09-01 --end 2027-02-28

  # Convert a whole drop with a custom markup
  asics convert ~/Downloads/fw26_*.csv --season "FW26" --start 2026-09-01 --end 2027-02-28 --markup 2.2

  # Write into one shared Google Sheets workbook instead of local files
  asics convert order.csv --season "FW26" --start 2026-09-01 --end 2027-02-28 --to-sheets`,
		Args: cobra.MinimumNArgs(1),
		RunE: runConvert,
	}

	cmd.Flags().String("season", "", "season label for the sheet header (required)")
	cmd.Flags().String("start", "", "start date for the sheet header (required)")
	cmd.Flags().String("end", "", "end date for the sheet header (required)")
	cmd.Flags().String("markup", "2.0", "retail markup factor")
	cmd.Flags().StringP("out", "o", "out", "output directory for the exported files")
	cmd.Flags().Bool("to-sheets", false, "export into a Google Sheets workbook instead of local files")
	cmd.Flags().Bool("offline", false, "skip the remote store entirely (no hydrate, no save)")

	return cmd
}

func runConvert(cmd *cobra.Command, args []string) error {
	season, _ := cmd.Flags().GetString("season")
	startDate, _ := cmd.Flags().GetString("start")
	endDate, _ := cmd.Flags().GetString("end")
	markupRaw, _ := cmd.Flags().GetString("markup")
	outDir, _ := cmd.Flags().GetString("out")
	toSheets, _ := cmd.Flags().GetBool("to-sheets")
	offline, _ := cmd.Flags().GetBool("offline")

	markup, err := decimal.NewFromString(markupRaw)
	if err != nil {
		return fmt.Errorf("%w: markup %q is not a decimal", common.ErrInvalidConfig, markupRaw)
	}

	session, err := engine.NewSession(season, startDate, endDate, markup)
	if err != nil {
		return err
	}

	paths, err := expandArgs(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	logger := slog.Default()

	colors, err := loadColorMapping(logger)
	if err != nil {
		return err
	}

	var classStore service.ClassificationStore
	var cache *store.Cache
	if offline {
		classStore = store.NewMockStore(nil)
	} else {
		storeCfg, cfgErr := config.LoadStoreConfig()
		if cfgErr != nil {
			return common.NewUserError("classification store is not configured (see `asics --help` for GOOGLE_SHEETS_* variables)", cfgErr)
		}

		remote, storeErr := store.NewSheetsStore(ctx, *storeCfg, logger)
		if storeErr != nil {
			return storeErr
		}
		classStore = remote

		cache, err = store.NewCache(config.CachePath())
		if err != nil {
			logger.Warn("classification cache unavailable", "error", err)
			cache = nil
		} else {
			defer func() { _ = cache.Close() }()
		}
	}

	var exporter export.Exporter
	if toSheets {
		storeCfg, cfgErr := config.LoadStoreConfig()
		if cfgErr != nil {
			return common.NewUserError("Google Sheets export needs store credentials", cfgErr)
		}
		exporter, err = export.NewSheetsExporter(ctx, *storeCfg, fmt.Sprintf("Catalogo %s", season), logger)
		if err != nil {
			return err
		}
	} else {
		exporter = export.NewFileExporter(outDir, logger)
	}

	eng := engine.New(
		tabular.NewCSVReader(),
		classStore,
		cache,
		cli.NewPrompter(os.Stdin, os.Stdout),
		exporter,
		colors,
		logger,
	)

	stats, err := eng.Run(ctx, session, paths)
	if err != nil {
		if errors.Is(err, common.ErrPersistence) {
			// The export already landed; report the failed save and move on.
			fmt.Fprintln(cmd.OutOrStdout(), cli.WarningStyle.Render(err.Error()))
		} else {
			return err
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render(fmt.Sprintf(
		"Converted %d rows (%d units) from %d files into %d sheets in %s",
		stats.CanonicalRows, stats.ExpandedRows, stats.FilesRead, stats.PagesWritten, stats.Duration.Round(time.Millisecond))))

	if stats.FilesSkipped > 0 {
		fmt.Fprintln(cmd.OutOrStdout(), cli.WarningStyle.Render(fmt.Sprintf(
			"%d files were skipped because of parse or schema errors (see log)", stats.FilesSkipped)))
	}

	return nil
}

// expandArgs resolves globs and validates that every argument matches at
// least one file.
func expandArgs(args []string) ([]string, error) {
	var paths []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
		}
		if len(matches) == 0 {
			if _, statErr := os.Stat(pattern); statErr == nil {
				paths = append(paths, pattern)
			} else {
				common.LogWarn("No files found matching pattern", common.Fields{"pattern": pattern})
			}
		} else {
			paths = append(paths, matches...)
		}
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("no input files found")
	}
	return paths, nil
}

// loadColorMapping loads the base-color reference file when configured; an
// empty mapping is fine, base colors just stay blank.
func loadColorMapping(logger *slog.Logger) (*model.ColorMapping, error) {
	path := config.ColorMappingPath()
	if path == "" {
		return &model.ColorMapping{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open color mapping %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	mapping, err := model.LoadColorMapping(f)
	if err != nil {
		return nil, err
	}

	logger.Info("loaded color mapping", "rules", mapping.Len(), "file", path)
	return mapping, nil
}
