package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLeaguesCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "leagues",
		Short: "List league ids accepted by `crh session set --league`",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			leagues, err := app.leagues.ListLeagues(cmd.Context())
			if err != nil {
				return fmt.Errorf("list leagues: %w", err)
			}

			for _, league := range leagues {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), league); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
