package poe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strconv"

	"github.com/bnema/chaos-recipe-cli/internal/domain"
)

type stashPayload struct {
	Items      []stashItem `json:"items"`
	QuadLayout bool        `json:"quadLayout"`
}

type stashItem struct {
	W         int    `json:"w"`
	H         int    `json:"h"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	ItemLevel int    `json:"ilvl"`
	FrameType int    `json:"frameType"`
	Icon      string `json:"icon"`
}

// FetchStash downloads one stash tab for the session. Every failure wraps domain.ErrTransport.
func (c *Client) FetchStash(ctx context.Context, session domain.Session) (domain.StashSnapshot, error) {
	query := url.Values{}
	query.Set("accountName", session.Account)
	query.Set("realm", c.realm())
	query.Set("league", session.League)
	query.Set("tabs", "0")
	query.Set("tabIndex", strconv.Itoa(session.TabIndex))
	query.Set("public", "false")

	endpoint, err := buildAPIURL(c.stashBaseURL(), stashPath, query)
	if err != nil {
		return domain.StashSnapshot{}, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	requestCtx, cancel := c.requestContext(ctx)
	defer cancel()

	resp, err := c.get(requestCtx, endpoint, session.Cookie)
	if err != nil {
		return domain.StashSnapshot{}, fmt.Errorf("request stash tab %d: %w", session.TabIndex, err)
	}
	defer func() { _ = resp.Body.Close() }()

	snapshot, err := DecodeStash(io.LimitReader(resp.Body, maxStashBytes))
	if err != nil {
		return domain.StashSnapshot{}, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	return snapshot, nil
}

// DecodeStash parses a get-stash-items payload. Icons are kept as raw identifiers; classifying
// them is left to the domain.
func DecodeStash(r io.Reader) (domain.StashSnapshot, error) {
	var payload stashPayload
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return domain.StashSnapshot{}, fmt.Errorf("decode stash payload: %w", err)
	}

	items := make([]domain.RawItem, 0, len(payload.Items))
	for _, item := range payload.Items {
		items = append(items, domain.RawItem{
			W:          item.W,
			H:          item.H,
			X:          item.X,
			Y:          item.Y,
			ItemLevel:  item.ItemLevel,
			FrameType:  item.FrameType,
			Identifier: item.Icon,
		})
	}

	return domain.StashSnapshot{Items: items, DoubleSize: payload.QuadLayout}, nil
}
