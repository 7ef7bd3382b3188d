package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newMissionsCmd() *cobra.Command {
	var team string

	cmd := &cobra.Command{
		Use:   "missions",
		Short: "List missions for a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Mission
			if err := client.Get("/api/v1/missions?team="+url.QueryEscape(team), &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&team, "team", "", "Team: Human, Zombie, Staff (required)")
	_ = cmd.MarkFlagRequired("team")

	return cmd
}
