package cli

import (
	"net/url"
	"time"

	"github.com/spf13/cobra"
)

func newGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "games",
		Short: "Game management commands",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "active",
		Short: "Show the active game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Get("/api/v1/games/active", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	})
	cmd.AddCommand(newGamesCreateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "activate <id>",
		Short: "Make a game the active game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game
			if err := client.Post("/api/v1/games/"+url.PathEscape(args[0])+"/activate", nil, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	})

	return cmd
}

func newGamesCreateCmd() *cobra.Command {
	var name, start string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new game",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"name": name}
			if start != "" {
				t, err := time.Parse(time.RFC3339, start)
				if err != nil {
					return err
				}
				req["start_date"] = t
			}

			var result Game
			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Game name (required)")
	cmd.Flags().StringVar(&start, "start", "", "Start date, RFC 3339 (default now)")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}
