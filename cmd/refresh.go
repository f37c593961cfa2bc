package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/chaos-recipe-cli/internal/application"
	"github.com/bnema/chaos-recipe-cli/internal/domain"
)

// loadSession publishes the stored session to the shared state. Snapshot replay does not read the
// session, so a missing one is tolerated there.
func (a *app) loadSession(ctx context.Context) error {
	_, err := a.sessions.Load(ctx)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrSessionNotFound) && a.cfg.replaying():
		return nil
	case errors.Is(err, domain.ErrSessionNotFound):
		return fmt.Errorf("%w: run `crh session set` first", err)
	default:
		return err
	}
}

// waitForRefresh polls the coordinator until it has consumed one fetch result issued after the call.
func waitForRefresh(ctx context.Context, coordinator *application.Coordinator, poll time.Duration) (application.Status, error) {
	first, err := coordinator.RequestStatus(ctx)
	if err != nil {
		return application.Status{}, err
	}

	ticker := time.NewTicker(poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return application.Status{}, ctx.Err()
		case <-ticker.C:
		}

		status, err := coordinator.RequestStatus(ctx)
		if err != nil {
			return application.Status{}, err
		}
		if status.Refreshes > first.Refreshes {
			return status, nil
		}
	}
}

// refreshOnce loads the session and waits for a fresh inventory, with a spinner on stderr unless quiet.
func refreshOnce(cmd *cobra.Command, app *app, coordinator *application.Coordinator, quiet bool) (application.Status, error) {
	if err := app.loadSession(cmd.Context()); err != nil {
		return application.Status{}, err
	}

	if quiet {
		return waitForRefresh(cmd.Context(), coordinator, app.cfg.RefreshPoll)
	}
	return runRefreshSpinner(cmd.Context(), cmd.ErrOrStderr(), coordinator.RequestStatus, app.cfg.RefreshPoll)
}
