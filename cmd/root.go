package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
)

const telemetryShutdownTimeout = 5 * time.Second

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "crh",
		Short:         "Chaos recipe helper (crh): track recipe sets in a stash tab",
		Long:          "crh reads a stash tab, sorts its rare items into low and high item-level tiers, and groups them into complete chaos recipe sets you can vendor.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp(context.Background())
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		ctx, cancel := context.WithTimeout(context.Background(), telemetryShutdownTimeout)
		defer cancel()
		return app.telemetry.Shutdown(ctx)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newSessionCmd(app),
		newLeaguesCmd(app),
		newStatusCmd(app),
		newRecipeCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
