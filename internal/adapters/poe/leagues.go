package poe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"

	"github.com/bnema/chaos-recipe-cli/internal/domain"
)

type league struct {
	ID string `json:"id"`
}

func (c *Client) ListLeagues(ctx context.Context) ([]string, error) {
	query := url.Values{}
	query.Set("compact", "1")

	endpoint, err := buildAPIURL(c.leagueBaseURL(), leaguesPath, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	resp, err := c.get(requestCtx, endpoint, "")
	if err != nil {
		return nil, fmt.Errorf("request leagues: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var leagues []league
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxLeagueBytes)).Decode(&leagues); err != nil {
		return nil, fmt.Errorf("%w: decode leagues: %w", domain.ErrTransport, err)
	}

	ids := make([]string, 0, len(leagues))
	for _, l := range leagues {
		if l.ID != "" {
			ids = append(ids, l.ID)
		}
	}

	return ids, nil
}
