package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/chaos-recipe-cli/internal/application"
)

var errInvalidCount = errors.New("count must be at least 1")

func newRecipeCmd(app *app) *cobra.Command {
	var count int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Fetch the stash tab and print the next recipe sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if count < 1 {
				return errInvalidCount
			}

			coordinator := app.newCoordinator()
			defer coordinator.Close()

			if _, err := refreshOnce(cmd, app, coordinator, asJSON); err != nil {
				return err
			}

			bundles := make([]application.BundleResult, 0, count)
			for range count {
				result, err := coordinator.RequestBundle(cmd.Context())
				if err != nil {
					return err
				}
				if result.Empty() {
					break
				}
				bundles = append(bundles, result)
			}

			return writeBundlesOutput(cmd, app, bundles, asJSON)
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "Number of recipe sets to print")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func writeBundlesOutput(cmd *cobra.Command, app *app, bundles []application.BundleResult, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(bundles)
	}

	if len(bundles) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no recipe available")
		return err
	}

	for i, bundle := range bundles {
		rendered, err := app.bundleRenderer(bundle)
		if err != nil {
			return fmt.Errorf("render bundle: %w", err)
		}
		if i > 0 {
			rendered = "\n" + rendered
		}
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), rendered); err != nil {
			return err
		}
	}

	return nil
}
