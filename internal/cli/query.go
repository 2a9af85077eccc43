package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/raccoonWhisperer/civicsentinel-server/internal/llm"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/model"
	"github.com/raccoonWhisperer/civicsentinel-server/internal/verify"
)

var (
	queryTopic     string
	queryCategory  string
	queryDateRange string
	queryTimeout   time.Duration
	queryJSON      bool
)

// queryCmd runs one feed request from the command line
var queryCmd = &cobra.Command{
	Use:   "query <city>",
	Short: "Run one verified news query and print the result",
	Long: `Query asks the configured search-augmented model for recent civic
incidents in the given city, verifies every asserted item against the
search citations (probing unresolved URLs), and prints the verified feed
with its audit transcript.

Example:
  civicsentinel query "Murfreesboro, TN"
  civicsentinel query Nashville --topic "water quality" --category environment
  civicsentinel query Nashville --json`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryTopic, "topic", "", "topic to focus the search on")
	queryCmd.Flags().StringVar(&queryCategory, "category", "", "restrict to one category")
	queryCmd.Flags().StringVar(&queryDateRange, "dates", "", "date range, e.g. \"last 7 days\"")
	queryCmd.Flags().DurationVar(&queryTimeout, "timeout", 5*time.Minute, "overall query timeout")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "print the raw JSON response")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM))
	if err != nil {
		return fmt.Errorf("initialize LLM provider: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	pipeline := verify.NewPipeline(provider, cfg.LLM, cfg.Probe)
	resp, err := pipeline.Run(ctx, model.FeedRequest{
		City:      args[0],
		Topic:     queryTopic,
		Category:  queryCategory,
		DateRange: queryDateRange,
	})
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	if queryJSON {
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal response: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("Verified items: %d of %d (%d rejected)\n\n", resp.Stats.Verified, resp.Stats.TotalFound, resp.Stats.Rejected)
	for _, item := range resp.Items {
		fmt.Printf("[%s/%s] %s\n", item.Category, item.Severity, item.Title)
		fmt.Printf("  %s\n", item.Summary)
		fmt.Printf("  %s (%s)\n\n", item.URL, item.VerificationNote)
	}

	if verbose {
		fmt.Println("--- transcript ---")
		fmt.Println(resp.RawResponse)
	}

	return nil
}
