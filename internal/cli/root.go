package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "hvzctl",
		Short: "CLI tool for the HvZ tracker API",
		Long: `hvzctl is a CLI tool for the HvZ tracker JSON API.

It covers what moderators and the companion bot need during a game: looking
up and registering players, recording tags, issuing and redeeming antivirus
codes, reading the timeline, missions and reports, and following the live feed.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load key from file if not provided via flag/env
			if err := cfg.LoadKey(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.APIKey)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: HVZ_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "API key (env: HVZ_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&cfg.KeyFile, "key-file", cfg.KeyFile, "API key file path (env: HVZ_API_KEY_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newGamesCmd())
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newTagCmd())
	rootCmd.AddCommand(newAntivirusCmd())
	rootCmd.AddCommand(newArmorCmd())
	rootCmd.AddCommand(newTimelineCmd())
	rootCmd.AddCommand(newSummaryCmd())
	rootCmd.AddCommand(newFeedCmd())
	rootCmd.AddCommand(newMissionsCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newClansCmd())
	rootCmd.AddCommand(newScoreboardsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
