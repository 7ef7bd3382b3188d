package cli

import (
	"github.com/spf13/cobra"
)

func newScoreboardsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "scoreboards",
		Short: "Show the active game's scoreboards",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/scoreboards"
			if all {
				path += "?all=true"
			}
			var result []Scoreboard
			if err := client.Get(path, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include inactive scoreboards")

	return cmd
}
