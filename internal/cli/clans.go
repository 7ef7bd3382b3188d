package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newClansCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "clans",
		Aliases: []string{"clan"},
		Short:   "Clan commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Clan
			if err := client.Get("/api/v1/clans", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	var leader string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a clan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Clan
			req := map[string]string{"name": args[0], "leader": leader}
			if err := client.Post("/api/v1/clans", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Created clan " + result.Name)
			return nil
		},
	}
	create.Flags().StringVar(&leader, "leader", "", "Leader player id")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "join <name> <player-id>",
		Short: "Add a player to a clan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player
			req := map[string]string{"player_id": args[1]}
			if err := client.Post("/api/v1/clans/"+url.PathEscape(args[0])+"/members", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "leave <name> <player-id>",
		Short: "Remove a player from a clan",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete("/api/v1/clans/" + url.PathEscape(args[0]) + "/members/" + url.PathEscape(args[1])); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).PrintMessage("Removed " + args[1] + " from " + args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "history <name>",
		Short: "Show who joined and left a clan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []ClanHistoryItem
			if err := client.Get("/api/v1/clans/"+url.PathEscape(args[0])+"/history", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	})

	return cmd
}
