package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInventoryEqualTreatsEmptyListsAsMissing(t *testing.T) {
	t.Parallel()

	ring := Item{X: 1, ItemLevel: 70, FrameType: RecipeFrameType, Type: ItemTypeRing}
	a := Inventory{ItemTypeRing: {Low: []Item{ring}}, ItemTypeBelt: {}}
	b := Inventory{ItemTypeRing: {Low: []Item{ring}, High: []Item{}}}

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(a))

	moved := ring
	moved.X = 2
	c := Inventory{ItemTypeRing: {Low: []Item{moved}}}
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(Inventory{}))
}

func TestInventoryCloneDoesNotAlias(t *testing.T) {
	t.Parallel()

	inv := Inventory{ItemTypeBelt: {High: []Item{{X: 3, ItemLevel: 80, Type: ItemTypeBelt}}}}
	cloned := inv.Clone()
	cloned[ItemTypeBelt].High[0].X = 9

	assert.Equal(t, 3, inv[ItemTypeBelt].High[0].X)
	assert.NotNil(t, Inventory(nil).Clone())
}

func TestItemTier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TierLow, Item{ItemLevel: 60}.Tier())
	assert.Equal(t, TierLow, Item{ItemLevel: 74}.Tier())
	assert.Equal(t, TierHigh, Item{ItemLevel: 75}.Tier())
	assert.Equal(t, "high", TierHigh.String())
}

func TestSessionValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		session Session
		wantErr string
	}{
		{name: "valid", session: Session{Account: "exile", League: "Standard", Cookie: "abc"}},
		{name: "missing account", session: Session{League: "Standard", Cookie: "abc"}, wantErr: "account is required"},
		{name: "missing league", session: Session{Account: "exile", Cookie: "abc"}, wantErr: "league is required"},
		{name: "missing cookie", session: Session{Account: "exile", League: "Standard"}, wantErr: "cookie is required"},
		{name: "negative tab", session: Session{Account: "exile", League: "Standard", Cookie: "abc", TabIndex: -1}, wantErr: "tab index"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.session.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrSessionIncomplete)
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestSessionMaskedCookie(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "*****6789", Session{Cookie: "123456789"}.MaskedCookie())
	assert.Equal(t, "***", Session{Cookie: "abc"}.MaskedCookie())
	assert.Equal(t, "crh/sessions/exile/cookie", CookieRef(" exile "))
}
