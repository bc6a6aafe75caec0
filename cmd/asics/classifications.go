package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/88maurosls/asics/internal/cli"
	"github.com/88maurosls/asics/internal/config"
	"github.com/88maurosls/asics/internal/model"
	"github.com/88maurosls/asics/internal/store"
)

func classificationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classifications",
		Short: "Inspect the persisted article classifications",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List every persisted article+color classification",
		RunE:  runClassificationsList,
	}
	listCmd.Flags().String("label", "", "only show entries with this label (UOMO, DONNA, UNISEX)")

	cmd.AddCommand(listCmd)
	return cmd
}

func runClassificationsList(cmd *cobra.Command, _ []string) error {
	filter, _ := cmd.Flags().GetString("label")

	storeCfg, err := config.LoadStoreConfig()
	if err != nil {
		return err
	}

	remote, err := store.NewSheetsStore(cmd.Context(), *storeCfg, slog.Default())
	if err != nil {
		return err
	}

	entries, err := remote.Hydrate(cmd.Context())
	if err != nil {
		return err
	}

	keys := make([]model.ClassificationKey, 0, len(entries))
	for key := range entries {
		if filter != "" && string(entries[key]) != filter {
			continue
		}
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Article != keys[j].Article {
			return keys[i].Article < keys[j].Article
		}
		return keys[i].Color < keys[j].Color
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, cli.TitleStyle.Render(fmt.Sprintf("%d classifications", len(keys))))
	for _, key := range keys {
		fmt.Fprintf(out, "%-20s %-5s %s\n", key.Article, key.Color, string(entries[key]))
	}

	return nil
}
