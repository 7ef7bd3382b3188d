package cli

import (
	"time"

	"github.com/spf13/cobra"
)

func newTagCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tag <tagger-id> <tag-id>",
		Short: "Record a tag",
		Long: `Record that the tagger converted the player holding tag-id.

tag-id is one of the taggee's tag targets as printed on their card.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"tagger": args[0], "taggee": args[1]}

			var result Tag
			if err := client.Post("/api/v1/tags", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}

func newAntivirusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "av",
		Aliases: []string{"antivirus"},
		Short:   "Antivirus code commands",
	}

	cmd.AddCommand(newAntivirusCreateCmd())
	cmd.AddCommand(&cobra.Command{
		Use:   "redeem <code> <player-id>",
		Short: "Redeem an antivirus code for a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"code": args[0], "player_id": args[1]}

			var result Antivirus
			if err := client.Post("/api/v1/antiviruses/redeem", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	})

	return cmd
}

func newAntivirusCreateCmd() *cobra.Command {
	var (
		code  string
		valid time.Duration
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Issue an antivirus code",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"expires_at": time.Now().Add(valid).UTC(),
			}
			if code != "" {
				req["code"] = code
			}

			var result Antivirus
			if err := client.Post("/api/v1/antiviruses", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Code to issue (default generated)")
	cmd.Flags().DurationVar(&valid, "valid-for", 24*time.Hour, "How long the code can be redeemed")

	return cmd
}

func newArmorCmd() *cobra.Command {
	var (
		code  string
		valid time.Duration
	)

	cmd := &cobra.Command{
		Use:     "armor",
		Aliases: []string{"body-armor"},
		Short:   "Body armor code commands",
	}

	create := &cobra.Command{
		Use:   "create",
		Short: "Issue a body armor code",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{
				"expires_at": time.Now().Add(valid).UTC(),
			}
			if code != "" {
				req["code"] = code
			}

			var result BodyArmor
			if err := client.Post("/api/v1/body-armors", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
	create.Flags().StringVar(&code, "code", "", "Code to issue (default generated)")
	create.Flags().DurationVar(&valid, "valid-for", 24*time.Hour, "How long the code stays valid")
	cmd.AddCommand(create)

	return cmd
}
