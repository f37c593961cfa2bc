package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/chaos-recipe-cli/internal/domain"
)

type sessionView struct {
	Account  string `json:"account"`
	League   string `json:"league"`
	TabIndex int    `json:"tab_index"`
	Cookie   string `json:"cookie"`
}

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the stash session",
	}

	cmd.AddCommand(newSessionSetCmd(app), newSessionShowCmd(app))

	return cmd
}

func newSessionSetCmd(app *app) *cobra.Command {
	var session domain.Session

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Store the account, league, tab and session cookie",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.sessions.Save(cmd.Context(), session); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "session saved for %s (%s, tab %d)\n", session.Account, session.League, session.TabIndex)
			return err
		},
	}

	cmd.Flags().StringVar(&session.Account, "account", "", "Account name")
	cmd.Flags().StringVar(&session.League, "league", "", "League id (see `crh leagues`)")
	cmd.Flags().IntVar(&session.TabIndex, "tab", 0, "Stash tab index, starting at 0")
	cmd.Flags().StringVar(&session.Cookie, "cookie", "", "POESESSID cookie value")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("league")
	_ = cmd.MarkFlagRequired("cookie")

	return cmd
}

func newSessionShowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored session with the cookie masked",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			session, err := app.sessions.Load(cmd.Context())
			if err != nil {
				return err
			}

			view := sessionView{
				Account:  session.Account,
				League:   session.League,
				TabIndex: session.TabIndex,
				Cookie:   session.MaskedCookie(),
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(view)
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "account: %s\nleague: %s\ntab: %d\ncookie: %s\n",
				view.Account, view.League, view.TabIndex, view.Cookie)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}
