package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	"github.com/bnema/chaos-recipe-cli/internal/adapters/poe"
	"github.com/bnema/chaos-recipe-cli/internal/domain"
	"github.com/bnema/chaos-recipe-cli/internal/ports"
)

const maxSnapshotBytes = 8 << 20

// Fetcher replays a captured stash payload instead of calling the stash API. The session is
// ignored apart from logging; every fetch re-reads the source so edits show up on refresh.
type Fetcher struct {
	source Source
	logger *slog.Logger
}

var _ ports.StashFetcher = (*Fetcher)(nil)

func NewFetcher(source Source, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{source: source, logger: logger}
}

func (f *Fetcher) FetchStash(ctx context.Context, session domain.Session) (domain.StashSnapshot, error) {
	data, err := f.source.Load(ctx)
	if err != nil {
		return domain.StashSnapshot{}, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	if len(data) > maxSnapshotBytes {
		return domain.StashSnapshot{}, fmt.Errorf("%w: snapshot exceeds %d bytes", domain.ErrTransport, maxSnapshotBytes)
	}

	snapshot, err := poe.DecodeStash(bytes.NewReader(data))
	if err != nil {
		return domain.StashSnapshot{}, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	f.logger.Debug("replayed stash snapshot", "items", len(snapshot.Items), "tab", session.TabIndex)
	return snapshot, nil
}
