package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	var email, reporter string

	cmd := &cobra.Command{
		Use:   "report <text>...",
		Short: "Submit an incident report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"text":           strings.Join(args, " "),
				"reporter_email": email,
				"reporter":       reporter,
			}

			var result Report
			if err := client.Post("/api/v1/reports", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Contact email for follow-up")
	cmd.Flags().StringVar(&reporter, "reporter", "", "Reporting player id")

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List submitted reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Report
			if err := client.Get("/api/v1/reports", &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	})

	return cmd
}
