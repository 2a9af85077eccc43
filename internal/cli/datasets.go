package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/datasets"
)

// datasetsCmd groups snapshot-store operations
var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Inspect and refresh government-dataset snapshots",
}

var datasetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := datasets.NewStore(loadConfig().Datasets)
		names, err := store.List()
		if err != nil {
			return err
		}
		for _, name := range names {
			fmt.Println(name)
		}
		return nil
	},
}

var datasetsSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search all snapshots for a keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := datasets.NewStore(loadConfig().Datasets)
		hits, err := store.Search(args[0])
		if err != nil {
			return err
		}

		fmt.Printf("%d matches\n", len(hits))
		for _, hit := range hits {
			record, err := json.Marshal(hit.Record)
			if err != nil {
				continue
			}
			fmt.Printf("  %s: %s\n", hit.File, record)
		}
		return nil
	},
}

var datasetsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Re-download the configured snapshot sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if len(cfg.Datasets.Sources) == 0 {
			return fmt.Errorf("no dataset sources configured (datasets.sources)")
		}

		store := datasets.NewStore(cfg.Datasets)
		refresher := datasets.NewRefresher(cfg.Datasets, store, cfg.Probe.UserAgent)

		failed := 0
		for _, r := range refresher.Refresh(context.Background()) {
			if r.Err != nil {
				failed++
				fmt.Printf("✗ %s: %v\n", r.Name, r.Err)
				continue
			}
			fmt.Printf("✓ %s (%d bytes)\n", r.Name, r.Bytes)
		}
		if failed > 0 {
			return fmt.Errorf("%d source(s) failed", failed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(datasetsCmd)
	datasetsCmd.AddCommand(datasetsListCmd)
	datasetsCmd.AddCommand(datasetsSearchCmd)
	datasetsCmd.AddCommand(datasetsRefreshCmd)
}
