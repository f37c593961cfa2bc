package domain

import "iter"

// BundleSlots counts the weapon slot once, whether it holds two one-handers or one two-hander.
const BundleSlots = 9

// Bundle is one complete recipe: eight armour/jewellery items followed by one or two weapons.
type Bundle []Item

// bundleSlots is the fill order of the non-weapon slots.
var bundleSlots = [...]ItemType{
	ItemTypeAmulet,
	ItemTypeBelt,
	ItemTypeBody,
	ItemTypeBoots,
	ItemTypeGloves,
	ItemTypeHelmet,
	ItemTypeRing,
	ItemTypeRing,
}

type cursor struct {
	low  []Item
	high []Item
}

// take pops the head of the preferred tier, falling back to the other tier.
func (c *cursor) take(preferHigh bool) (Item, Tier, bool) {
	if preferHigh {
		if item, ok := c.takeHigh(); ok {
			return item, TierHigh, true
		}
		if item, ok := c.takeLow(); ok {
			return item, TierLow, true
		}
		return Item{}, TierLow, false
	}

	if item, ok := c.takeLow(); ok {
		return item, TierLow, true
	}
	if item, ok := c.takeHigh(); ok {
		return item, TierHigh, true
	}
	return Item{}, TierLow, false
}

func (c *cursor) takeLow() (Item, bool) {
	if len(c.low) == 0 {
		return Item{}, false
	}
	item := c.low[0]
	c.low = c.low[1:]
	return item, true
}

func (c *cursor) takeHigh() (Item, bool) {
	if len(c.high) == 0 {
		return Item{}, false
	}
	item := c.high[0]
	c.high = c.high[1:]
	return item, true
}

// Generator drains an Inventory into bundles. It reslices the inventory lists and never writes
// to them, so a new Generator over the same Inventory yields the same sequence.
type Generator struct {
	cursors map[ItemType]*cursor
	done    bool
}

func NewGenerator(inv Inventory) *Generator {
	cursors := make(map[ItemType]*cursor, len(inv))
	for itemType, lists := range inv {
		cursors[itemType] = &cursor{low: lists.Low, high: lists.High}
	}

	return &Generator{cursors: cursors}
}

// Next returns the next bundle. Once a slot cannot be filled it returns false for good.
func (g *Generator) Next() (Bundle, bool) {
	if g.done {
		return nil, false
	}

	bundle, ok := g.next()
	if !ok {
		g.done = true
		return nil, false
	}

	return bundle, true
}

func (g *Generator) next() (Bundle, bool) {
	bundle := make(Bundle, 0, len(bundleSlots)+2)
	preferHigh := false

	for _, slot := range bundleSlots {
		item, tier, ok := g.take(slot, preferHigh)
		if !ok {
			return nil, false
		}
		if tier == TierLow {
			preferHigh = true
		}
		bundle = append(bundle, item)
	}

	weapons, ok := g.takeWeapons(preferHigh)
	if !ok {
		return nil, false
	}

	return append(bundle, weapons...), true
}

func (g *Generator) take(itemType ItemType, preferHigh bool) (Item, Tier, bool) {
	c, ok := g.cursors[itemType]
	if !ok {
		return Item{}, TierLow, false
	}
	return c.take(preferHigh)
}

// takeWeapons fills the weapon slot with two one-handers/shields, or a single two-hander.
func (g *Generator) takeWeapons(preferHigh bool) ([]Item, bool) {
	if pair, ok := g.takeOneHandedPair(preferHigh); ok {
		return pair, true
	}

	item, _, ok := g.take(ItemTypeWeapon2H, preferHigh)
	if !ok {
		return nil, false
	}
	return []Item{item}, true
}

// takeOneHandedPair draws two one-handers. Without the high-tier preference the pair must mix tiers:
// a high-tier first pick only pairs with a low-tier second one. Items drawn by a failed pair stay consumed.
func (g *Generator) takeOneHandedPair(preferHigh bool) ([]Item, bool) {
	first, firstTier, ok := g.take(ItemTypeWeapon1HOrShield, preferHigh)
	if !ok {
		return nil, false
	}

	if preferHigh {
		second, _, ok := g.take(ItemTypeWeapon1HOrShield, true)
		if !ok {
			return nil, false
		}
		return []Item{first, second}, true
	}

	if firstTier == TierLow {
		second, _, ok := g.take(ItemTypeWeapon1HOrShield, true)
		if !ok {
			return nil, false
		}
		return []Item{second, first}, true
	}

	second, secondTier, ok := g.take(ItemTypeWeapon1HOrShield, false)
	if !ok || secondTier != TierLow {
		return nil, false
	}
	return []Item{second, first}, true
}

// Bundles yields every bundle the inventory can produce.
func Bundles(inv Inventory) iter.Seq[Bundle] {
	return func(yield func(Bundle) bool) {
		g := NewGenerator(inv)
		for {
			bundle, ok := g.Next()
			if !ok || !yield(bundle) {
				return
			}
		}
	}
}

// CollectBundles runs a fresh Generator to exhaustion.
func CollectBundles(inv Inventory) []Bundle {
	bundles := make([]Bundle, 0)
	for bundle := range Bundles(inv) {
		bundles = append(bundles, bundle)
	}
	return bundles
}
