package cli

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/JMaramara/boardgame/internal/client"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game detail commands",
	}

	cmd.AddCommand(newGameShowCmd())

	return cmd
}

func newGameShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <bgg-id>",
		Short: "Show the full record for a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			resolver := client.NewDetailResolver(api)
			detail, err := resolver.FetchDetail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			// Descriptions arrive with the catalog's markup intact; JSON
			// output keeps it, text output strips it for the terminal
			if cfg.Output != "json" {
				detail.Description = stripMarkup(detail.Description)
			}

			out := NewOutput(cfg.Output)
			out.Print(detail)
			return nil
		},
	}
}

func stripMarkup(text string) string {
	if text == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return text
	}
	return strings.TrimSpace(doc.Text())
}
