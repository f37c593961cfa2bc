package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemFactory struct {
	next int
}

// make returns n items of one type at distinct grid positions.
func (f *itemFactory) make(itemType ItemType, itemLevel int, n int) []Item {
	items := make([]Item, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, Item{
			X:         f.next % 24,
			Y:         f.next / 24,
			W:         1,
			H:         1,
			ItemLevel: itemLevel,
			FrameType: RecipeFrameType,
			Type:      itemType,
		})
		f.next++
	}
	return items
}

func (f *itemFactory) lists(itemType ItemType, low int, high int) TierLists {
	lists := TierLists{}
	if low > 0 {
		lists.Low = f.make(itemType, 70, low)
	}
	if high > 0 {
		lists.High = f.make(itemType, 80, high)
	}
	return lists
}

// armourSet builds low/high counts for every non-weapon type; rings get twice as many.
func (f *itemFactory) armourSet(low int, high int) Inventory {
	inv := Inventory{}
	for _, itemType := range []ItemType{ItemTypeAmulet, ItemTypeBelt, ItemTypeBody, ItemTypeBoots, ItemTypeGloves, ItemTypeHelmet} {
		inv[itemType] = f.lists(itemType, low, high)
	}
	inv[ItemTypeRing] = f.lists(ItemTypeRing, low*2, high*2)
	return inv
}

func assertBundleShape(t *testing.T, bundle Bundle) {
	t.Helper()

	require.GreaterOrEqual(t, len(bundle), 9)
	for i, slot := range bundleSlots {
		assert.Equal(t, slot, bundle[i].Type, "slot %d", i)
	}

	weapons := bundle[len(bundleSlots):]
	switch len(weapons) {
	case 1:
		assert.Equal(t, ItemTypeWeapon2H, weapons[0].Type)
	case 2:
		assert.Equal(t, ItemTypeWeapon1HOrShield, weapons[0].Type)
		assert.Equal(t, ItemTypeWeapon1HOrShield, weapons[1].Type)
	default:
		t.Fatalf("unexpected weapon count %d", len(weapons))
	}
}

func TestGeneratorEmptyInventory(t *testing.T) {
	t.Parallel()

	g := NewGenerator(Inventory{})
	_, ok := g.Next()
	assert.False(t, ok)
	_, ok = g.Next()
	assert.False(t, ok)
}

func TestGeneratorSingleLowTierBundle(t *testing.T) {
	t.Parallel()

	f := &itemFactory{}
	inv := f.armourSet(1, 0)
	inv[ItemTypeWeapon1HOrShield] = f.lists(ItemTypeWeapon1HOrShield, 2, 0)

	bundles := CollectBundles(inv)
	require.Len(t, bundles, 1)
	assert.Len(t, bundles[0], 10)
	assertBundleShape(t, bundles[0])
	assert.Equal(t, inv[ItemTypeWeapon1HOrShield].Low, []Item(bundles[0][8:]))
}

func TestGeneratorPrefersHighTierAfterDrawingLowTier(t *testing.T) {
	t.Parallel()

	f := &itemFactory{}
	inv := f.armourSet(1, 1)
	inv[ItemTypeWeapon1HOrShield] = f.lists(ItemTypeWeapon1HOrShield, 1, 1)

	g := NewGenerator(inv)
	bundle, ok := g.Next()
	require.True(t, ok)
	assertBundleShape(t, bundle)

	assert.Equal(t, TierLow, bundle[0].Tier(), "amulet is drawn before any low-tier item")
	for i := 1; i < len(bundleSlots); i++ {
		assert.Equal(t, TierHigh, bundle[i].Tier(), "slot %d", i)
	}

	assert.Equal(t, []Tier{TierHigh, TierLow}, []Tier{bundle[8].Tier(), bundle[9].Tier()})
}

func TestGeneratorRejectsUnmixedHighTierOneHandedPair(t *testing.T) {
	t.Parallel()

	f := &itemFactory{}
	inv := f.armourSet(0, 1)
	inv[ItemTypeWeapon1HOrShield] = f.lists(ItemTypeWeapon1HOrShield, 0, 2)

	assert.Empty(t, CollectBundles(inv))
}

func TestGeneratorUnmixedHighTierPairFallsBackToTwoHanded(t *testing.T) {
	t.Parallel()

	f := &itemFactory{}
	inv := f.armourSet(0, 2)
	inv[ItemTypeWeapon1HOrShield] = f.lists(ItemTypeWeapon1HOrShield, 0, 2)
	inv[ItemTypeWeapon2H] = f.lists(ItemTypeWeapon2H, 0, 1)

	g := NewGenerator(inv)
	bundle, ok := g.Next()
	require.True(t, ok)
	require.Len(t, bundle, 9)
	assert.Equal(t, inv[ItemTypeWeapon2H].High[0], bundle[8])

	_, ok = g.Next()
	assert.False(t, ok, "the failed pair keeps both one-handers consumed")
}

func TestGeneratorMixedOneHandedPairWithoutLowArmour(t *testing.T) {
	t.Parallel()

	f := &itemFactory{}
	inv := f.armourSet(0, 1)
	inv[ItemTypeWeapon1HOrShield] = f.lists(ItemTypeWeapon1HOrShield, 1, 1)

	bundles := CollectBundles(inv)
	require.Len(t, bundles, 1)

	weapons := bundles[0][8:]
	require.Len(t, weapons, 2)
	assert.Equal(t, inv[ItemTypeWeapon1HOrShield].High[0], weapons[0])
	assert.Equal(t, inv[ItemTypeWeapon1HOrShield].Low[0], weapons[1])
}

func TestGeneratorFallsBackToTwoHanded(t *testing.T) {
	t.Parallel()

	f := &itemFactory{}
	inv := f.armourSet(1, 0)
	inv[ItemTypeWeapon2H] = f.lists(ItemTypeWeapon2H, 0, 1)

	bundles := CollectBundles(inv)
	require.Len(t, bundles, 1)
	require.Len(t, bundles[0], 9)
	assert.Equal(t, inv[ItemTypeWeapon2H].High[0], bundles[0][8])
}

func TestGeneratorSingleOneHandedFallsBackToTwoHanded(t *testing.T) {
	t.Parallel()

	f := &itemFactory{}
	inv := f.armourSet(1, 0)
	inv[ItemTypeWeapon1HOrShield] = f.lists(ItemTypeWeapon1HOrShield, 1, 0)
	inv[ItemTypeWeapon2H] = f.lists(ItemTypeWeapon2H, 1, 0)

	bundles := CollectBundles(inv)
	require.Len(t, bundles, 1)
	require.Len(t, bundles[0], 9)
	assert.Equal(t, ItemTypeWeapon2H, bundles[0][8].Type)
}

func TestGeneratorStopsWhenSlotCannotBeFilled(t *testing.T) {
	t.Parallel()

	f := &itemFactory{}
	inv := f.armourSet(1, 0)
	inv[ItemTypeRing] = f.lists(ItemTypeRing, 1, 0)
	inv[ItemTypeWeapon2H] = f.lists(ItemTypeWeapon2H, 1, 0)

	assert.Empty(t, CollectBundles(inv))
}

func TestGeneratorStopsWithoutWeapons(t *testing.T) {
	t.Parallel()

	f := &itemFactory{}
	inv := f.armourSet(3, 3)

	assert.Empty(t, CollectBundles(inv))
}

func largeInventory() Inventory {
	f := &itemFactory{}
	inv := f.armourSet(7, 5)
	inv[ItemTypeAmulet] = f.lists(ItemTypeAmulet, 9, 4)
	inv[ItemTypeWeapon1HOrShield] = f.lists(ItemTypeWeapon1HOrShield, 12, 12)
	inv[ItemTypeWeapon2H] = f.lists(ItemTypeWeapon2H, 2, 3)
	inv[ItemTypeUseless] = f.lists(ItemTypeUseless, 4, 4)
	return inv
}

func TestGeneratorIsDeterministicAndLeavesInventoryUntouched(t *testing.T) {
	t.Parallel()

	inv := largeInventory()
	before := inv.Clone()

	first := CollectBundles(inv)
	second := CollectBundles(inv)

	require.NotEmpty(t, first)
	assert.Equal(t, first, second)
	assert.True(t, inv.Equal(before))
}

func TestGeneratorNeverReusesItems(t *testing.T) {
	t.Parallel()

	inv := largeInventory()
	seen := map[[2]int]struct{}{}

	count := 0
	for bundle := range Bundles(inv) {
		count++
		assertBundleShape(t, bundle)
		for _, item := range bundle {
			key := [2]int{item.X, item.Y}
			_, dup := seen[key]
			require.False(t, dup, "item at %v drawn twice", key)
			seen[key] = struct{}{}
			assert.NotEqual(t, ItemTypeUseless, item.Type)
		}
	}

	assert.Equal(t, 12, count, "belts run out after 12 bundles")
}

func TestBundlesStopsWhenConsumerStops(t *testing.T) {
	t.Parallel()

	count := 0
	for range Bundles(largeInventory()) {
		count++
		if count == 2 {
			break
		}
	}
	assert.Equal(t, 2, count)
}
