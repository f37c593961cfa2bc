package poe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/chaos-recipe-cli/internal/domain"
	"github.com/bnema/chaos-recipe-cli/internal/ports"
)

const (
	DefaultStashBaseURL  = "https://www.pathofexile.com"
	DefaultLeagueBaseURL = "https://api.pathofexile.com"
	DefaultRealm         = "pc"

	stashPath        = "/character-window/get-stash-items"
	leaguesPath      = "/leagues"
	maxStashBytes    = 8 << 20
	maxLeagueBytes   = 1 << 20
	defaultUserAgent = "crh/dev"
	defaultTimeout   = 30 * time.Second
)

type API struct {
	StashBaseURL  string
	LeagueBaseURL string
}

// Client talks to the public stash and league endpoints. The zero value uses the default
// hosts and http.DefaultClient.
type Client struct {
	API            API
	Realm          string
	UserAgent      string
	HTTPClient     *http.Client
	RequestTimeout time.Duration
}

var (
	_ ports.StashFetcher = (*Client)(nil)
	_ ports.LeagueLister = (*Client)(nil)
)

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) realm() string {
	if c.Realm != "" {
		return c.Realm
	}
	return DefaultRealm
}

func (c *Client) userAgent() string {
	if c.UserAgent != "" {
		return c.UserAgent
	}
	return defaultUserAgent
}

func (c *Client) stashBaseURL() string {
	if c.API.StashBaseURL != "" {
		return c.API.StashBaseURL
	}
	return DefaultStashBaseURL
}

func (c *Client) leagueBaseURL() string {
	if c.API.LeagueBaseURL != "" {
		return c.API.LeagueBaseURL
	}
	return DefaultLeagueBaseURL
}

func (c *Client) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, hasDeadline := ctx.Deadline(); hasDeadline {
		return ctx, func() {}
	}

	requestTimeout := c.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = defaultTimeout
	}

	return context.WithTimeout(ctx, requestTimeout)
}

func (c *Client) get(ctx context.Context, endpoint string, cookie string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent())
	if cookie != "" {
		req.Header.Set("Cookie", cookieHeader(cookie))
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_ = resp.Body.Close()
		return nil, statusError(resp.StatusCode)
	}

	return resp, nil
}

func statusError(statusCode int) error {
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return fmt.Errorf("%w: %w: status %d", domain.ErrTransport, domain.ErrUnauthorized, statusCode)
	}
	return fmt.Errorf("%w: status %d", domain.ErrTransport, statusCode)
}

// cookieHeader accepts either the bare POESESSID value or a full cookie string.
func cookieHeader(cookie string) string {
	if strings.Contains(cookie, "=") {
		return cookie
	}
	return "POESESSID=" + cookie
}

func buildAPIURL(baseURL string, path string, query url.Values) (string, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parse api base url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", errors.New("api base url must use http or https")
	}
	if parsed.Host == "" {
		return "", errors.New("api base url host is required")
	}

	endpoint, err := parsed.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse api path: %w", err)
	}
	endpoint.RawQuery = query.Encode()

	return endpoint.String(), nil
}
