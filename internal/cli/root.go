package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/JMaramara/boardgame/internal/client"
)

var (
	cfg        *Config
	api        *client.Client
	session    *client.SessionStore
	collection *client.CollectionManager
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "bgcat",
		Short: "CLI tool for the board game catalog API",
		Long: `bgcat is a CLI tool for managing a personal board game catalog.

It supports account management, catalog search against BoardGameGeek data,
game detail lookup, and collection and wishlist management.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			api = client.NewClient(cfg.ServerURL)
			tokens := client.NewFileTokenStore(cfg.TokenFile)
			session = client.NewSessionStore(api, tokens, newLogger(cfg.Verbose))
			collection = client.NewCollectionManager(api, session, newLogger(cfg.Verbose))

			// Settle the session from the persisted token before any
			// command issues authenticated requests
			return session.Initialize(cmd.Context())
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BGCAT_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: BGCAT_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newCollectionCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
