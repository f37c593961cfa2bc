package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/chaos-recipe-cli/internal/adapters/render/status"
	"github.com/bnema/chaos-recipe-cli/internal/domain"
)

var errInvalidInterval = errors.New("interval must be positive")

func newWatchCmd(app *app) *cobra.Command {
	var interval time.Duration
	var staleAfter time.Duration
	var targetSets int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Keep refreshing the stash tab and print the status whenever it changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 {
				return errInvalidInterval
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if err := app.loadSession(ctx); err != nil {
				return err
			}

			coordinator := app.newCoordinator()
			defer coordinator.Close()

			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			var lastUpdated time.Time
			printed := false
			for {
				status, err := coordinator.RequestStatus(ctx)
				switch {
				case ctx.Err() != nil:
					return nil
				case errors.Is(err, domain.ErrUnauthorized):
					return err
				case err != nil:
					app.logger.Warn("stash refresh failed", "error", err)
				case status.Refreshes > 0 && (!printed || !status.UpdatedAt.Equal(lastUpdated)):
					opts := statusadapter.RenderOptions{
						Now:        app.now(),
						StaleAfter: staleAfter,
						TargetSets: targetSets,
					}
					if err := writeStatusOutput(cmd, app, status, opts, asJSON); err != nil {
						return err
					}
					printed = true
					lastUpdated = status.UpdatedAt
				}

				if err := sleepUntilTick(ctx, ticker); err != nil {
					return nil
				}
			}
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "Time between stash refreshes")
	cmd.Flags().DurationVar(&staleAfter, "stale-after", 30*time.Minute, "Mark the status stale when the inventory has not changed for this long (0 disables)")
	cmd.Flags().IntVar(&targetSets, "target", statusadapter.DefaultTargetSets, "Sets a full progress bar stands for")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Render JSON output")

	return cmd
}

func sleepUntilTick(ctx context.Context, ticker *time.Ticker) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("watch stopped: %w", ctx.Err())
	case <-ticker.C:
		return nil
	}
}
