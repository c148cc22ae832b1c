package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/JMaramara/boardgame/internal/client"
	"github.com/JMaramara/boardgame/internal/model"
)

func newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <query>",
		Short: "Search the game catalog",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			updates := make(chan []model.CatalogEntry, 1)
			searcher := client.NewSearcher(api, client.SearcherConfig{
				Debounce: time.Millisecond,
				OnUpdate: func(results []model.CatalogEntry) {
					updates <- results
				},
			}, newLogger(cfg.Verbose))

			searcher.Search(query)

			var results []model.CatalogEntry
			select {
			case results = <-updates:
			case <-time.After(time.Minute):
				return fmt.Errorf("search timed out")
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}

			if len(results) == 0 {
				return fmt.Errorf("no games found for %q", query)
			}

			out := NewOutput(cfg.Output)
			out.Print(results)
			return nil
		},
	}
}
