package ports

import (
	"context"

	"github.com/bnema/chaos-recipe-cli/internal/domain"
)

// StashFetcher reads one stash tab. Implementations return ErrTransport-wrapped errors for
// network and authorization failures.
type StashFetcher interface {
	FetchStash(ctx context.Context, session domain.Session) (domain.StashSnapshot, error)
}

type LeagueLister interface {
	ListLeagues(ctx context.Context) ([]string, error)
}
