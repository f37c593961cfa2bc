package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/chaos-recipe-cli/internal/adapters/render/status"
	"github.com/bnema/chaos-recipe-cli/internal/application"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var targetSets int

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Fetch the stash tab and show recipe item counts per type and tier",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			coordinator := app.newCoordinator()
			defer coordinator.Close()

			status, err := refreshOnce(cmd, app, coordinator, asJSON)
			if err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, status, statusadapter.RenderOptions{
				Now:        app.now(),
				TargetSets: targetSets,
			}, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")
	cmd.Flags().IntVar(&targetSets, "target", statusadapter.DefaultTargetSets, "Sets a full progress bar stands for")

	return cmd
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.Status, opts statusadapter.RenderOptions, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	rendered, err := app.statusRenderer(status, opts)
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
