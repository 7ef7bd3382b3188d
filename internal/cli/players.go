package cli

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newPlayersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "players",
		Aliases: []string{"player"},
		Short:   "Player and roster commands",
	}

	cmd.AddCommand(newPlayersListCmd())
	cmd.AddCommand(newPlayersShowCmd())
	cmd.AddCommand(newPlayersRegisterCmd())
	cmd.AddCommand(newPlayersJoinCmd())

	return cmd
}

func newPlayersListCmd() *cobra.Command {
	var (
		query, sort, dir string
		offset, limit    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the active game's roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := url.Values{}
			if query != "" {
				params.Set("q", query)
			}
			if sort != "" {
				params.Set("sort", sort)
			}
			if dir != "" {
				params.Set("dir", dir)
			}
			if offset > 0 {
				params.Set("offset", strconv.Itoa(offset))
			}
			if limit > 0 {
				params.Set("limit", strconv.Itoa(limit))
			}

			path := "/api/v1/players"
			if len(params) > 0 {
				path += "?" + params.Encode()
			}

			var result PlayersPage
			if err := client.Get(path, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by name or clan")
	cmd.Flags().StringVar(&sort, "sort", "", "Sort key: name, clan, tags, status")
	cmd.Flags().StringVar(&dir, "dir", "", "Sort direction: asc, desc")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows (0 for all)")

	return cmd
}

func newPlayersShowCmd() *cobra.Command {
	var zombieID, discordID string

	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a player by id, zombie id or Discord id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output, cmd.OutOrStdout())
			switch {
			case discordID != "":
				var result Player
				if err := client.Get("/api/v1/players/discord?id="+url.QueryEscape(discordID), &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			case zombieID != "":
				var result Member
				if err := client.Get("/api/v1/players/lookup?zid="+url.QueryEscape(zombieID), &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			case len(args) == 1:
				var result Member
				if err := client.Get("/api/v1/players/"+url.PathEscape(args[0]), &result); err != nil {
					return err
				}
				out.Print(result)
				return nil
			}
			return fmt.Errorf("an id, --zid or --discord is required")
		},
	}

	cmd.Flags().StringVar(&zombieID, "zid", "", "Look up by zombie id")
	cmd.Flags().StringVar(&discordID, "discord", "", "Look up by Discord id")

	return cmd
}

func newPlayersRegisterCmd() *cobra.Command {
	var name, email, role string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new player",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"display_name": name,
				"email":        email,
				"role":         role,
			}

			var result Player
			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&role, "role", "", "Role: regular, mod, admin, nonplayer")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newPlayersJoinCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "join <id>",
		Short: "Join a player to the active game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req any
			if status != "" {
				req = map[string]string{"status": status}
			}

			var result JoinResult
			if err := client.Post("/api/v1/players/"+url.PathEscape(args[0])+"/join", req, &result); err != nil {
				return err
			}
			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Initial status code (default from role)")

	return cmd
}
