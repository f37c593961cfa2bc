package poe

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/chaos-recipe-cli/internal/domain"
)

const stashBody = `{
  "numTabs": 12,
  "quadLayout": true,
  "items": [
    {"w": 2, "h": 3, "x": 0, "y": 0, "ilvl": 72, "frameType": 2, "icon": "https://web.poecdn.com/image/Art/2DItems/Armours/BodyArmours/BodyStr1.png?scale=1"},
    {"w": 1, "h": 1, "x": 5, "y": 7, "ilvl": 84, "frameType": 2, "icon": "https://web.poecdn.com/gen/image/WzI1LDE0/2DItems/Rings/Ring2/hash/Ring2.png"},
    {"w": 1, "h": 1, "x": 9, "y": 9, "ilvl": 0, "frameType": 5, "icon": "https://web.poecdn.com/image/Art/2DItems/Currency/CurrencyRerollRare.png"}
  ]
}`

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		API: API{
			StashBaseURL:  server.URL,
			LeagueBaseURL: server.URL,
		},
		HTTPClient: server.Client(),
	}
}

func testSession() domain.Session {
	return domain.Session{Account: "exile#1234", Cookie: "0123456789abcdef", League: "Settlers", TabIndex: 3}
}

func TestFetchStashSendsSessionAndDecodesPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/character-window/get-stash-items", r.URL.Path)

		query := r.URL.Query()
		assert.Equal(t, "exile#1234", query.Get("accountName"))
		assert.Equal(t, "pc", query.Get("realm"))
		assert.Equal(t, "Settlers", query.Get("league"))
		assert.Equal(t, "0", query.Get("tabs"))
		assert.Equal(t, "3", query.Get("tabIndex"))
		assert.Equal(t, "false", query.Get("public"))
		assert.Equal(t, "POESESSID=0123456789abcdef", r.Header.Get("Cookie"))
		assert.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(stashBody))
	}))
	t.Cleanup(server.Close)

	snapshot, err := newTestClient(server).FetchStash(context.Background(), testSession())
	require.NoError(t, err)

	assert.True(t, snapshot.DoubleSize)
	require.Len(t, snapshot.Items, 3)
	assert.Equal(t, domain.RawItem{
		W:          2,
		H:          3,
		X:          0,
		Y:          0,
		ItemLevel:  72,
		FrameType:  2,
		Identifier: "https://web.poecdn.com/image/Art/2DItems/Armours/BodyArmours/BodyStr1.png?scale=1",
	}, snapshot.Items[0])
	assert.Equal(t, 84, snapshot.Items[1].ItemLevel)
}

func TestFetchStashSendsFullCookieVerbatim(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POESESSID=abc; stored_data=1", r.Header.Get("Cookie"))
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	t.Cleanup(server.Close)

	session := testSession()
	session.Cookie = "POESESSID=abc; stored_data=1"

	snapshot, err := newTestClient(server).FetchStash(context.Background(), session)
	require.NoError(t, err)
	assert.False(t, snapshot.DoubleSize, "missing quadLayout means a normal tab")
	assert.Empty(t, snapshot.Items)
}

func TestFetchStashUsesConfiguredRealm(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "sony", r.URL.Query().Get("realm"))
		_, _ = w.Write([]byte(`{"items": []}`))
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server)
	client.Realm = "sony"

	_, err := client.FetchStash(context.Background(), testSession())
	require.NoError(t, err)
}

func TestFetchStashMapsStatusErrors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		status       int
		unauthorized bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, unauthorized: true},
		{name: "forbidden", status: http.StatusForbidden, unauthorized: true},
		{name: "rate limited", status: http.StatusTooManyRequests},
		{name: "server error", status: http.StatusBadGateway},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(`{"error":{"code":1,"message":"nope"}}`))
			}))
			t.Cleanup(server.Close)

			_, err := newTestClient(server).FetchStash(context.Background(), testSession())
			require.ErrorIs(t, err, domain.ErrTransport)
			assert.Equal(t, tc.unauthorized, errors.Is(err, domain.ErrUnauthorized))
			assert.ErrorContains(t, err, "status")
		})
	}
}

func TestFetchStashMalformedJSONIsTransportError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	t.Cleanup(server.Close)

	_, err := newTestClient(server).FetchStash(context.Background(), testSession())
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorContains(t, err, "decode stash payload")
}

func TestFetchStashTimesOutWithoutCallerDeadline(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(server.Close)

	client := newTestClient(server)
	client.RequestTimeout = 20 * time.Millisecond

	_, err := client.FetchStash(context.Background(), testSession())
	require.ErrorIs(t, err, domain.ErrTransport)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchStashRejectsInvalidBaseURL(t *testing.T) {
	t.Parallel()

	client := &Client{API: API{StashBaseURL: "ftp://example.com"}}

	_, err := client.FetchStash(context.Background(), testSession())
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorContains(t, err, "http or https")
}

func TestDecodeStashKeepsIdentifiersUnclassified(t *testing.T) {
	t.Parallel()

	snapshot, err := DecodeStash(strings.NewReader(stashBody))
	require.NoError(t, err)
	assert.Equal(t, "https://web.poecdn.com/image/Art/2DItems/Currency/CurrencyRerollRare.png", snapshot.Items[2].Identifier)

	inv, err := domain.Classify(snapshot)
	require.NoError(t, err)
	assert.Len(t, inv[domain.ItemTypeBody].Low, 1)
	assert.Len(t, inv[domain.ItemTypeRing].High, 1)
}

func TestListLeagues(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/leagues", r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("compact"))
		assert.Empty(t, r.Header.Get("Cookie"))
		_, _ = w.Write([]byte(`[{"id":"Standard"},{"id":"Hardcore"},{"id":""},{"id":"Settlers"}]`))
	}))
	t.Cleanup(server.Close)

	leagues, err := newTestClient(server).ListLeagues(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Standard", "Hardcore", "Settlers"}, leagues)
}

func TestListLeaguesServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	_, err := newTestClient(server).ListLeagues(context.Background())
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestCookieHeader(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "POESESSID=abc", cookieHeader("abc"))
	assert.Equal(t, "POESESSID=abc", cookieHeader("POESESSID=abc"))
}
