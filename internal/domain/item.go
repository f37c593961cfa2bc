package domain

type ItemType string

const (
	ItemTypeWeapon1HOrShield ItemType = "Weapon1HOrShield"
	ItemTypeWeapon2H         ItemType = "Weapon2H"
	ItemTypeBody             ItemType = "Body"
	ItemTypeHelmet           ItemType = "Helmet"
	ItemTypeBoots            ItemType = "Boots"
	ItemTypeGloves           ItemType = "Gloves"
	ItemTypeRing             ItemType = "Ring"
	ItemTypeAmulet           ItemType = "Amulet"
	ItemTypeBelt             ItemType = "Belt"
	ItemTypeUseless          ItemType = "Useless"
)

// DisplayOrder lists every type a bundle can draw from, in the order status views show them.
var DisplayOrder = []ItemType{
	ItemTypeWeapon1HOrShield,
	ItemTypeWeapon2H,
	ItemTypeBody,
	ItemTypeHelmet,
	ItemTypeGloves,
	ItemTypeBelt,
	ItemTypeBoots,
	ItemTypeRing,
	ItemTypeAmulet,
}

type Tier int

const (
	TierLow Tier = iota
	TierHigh
)

func (t Tier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}

const (
	// RecipeFrameType is the rarity tag of recipe-eligible items.
	RecipeFrameType = 2

	MinRecipeItemLevel = 60
	HighTierItemLevel  = 75
)

// Item is a classified stash entry. It only holds values, so copies never alias the source.
type Item struct {
	X         int      `json:"x"`
	Y         int      `json:"y"`
	W         int      `json:"w"`
	H         int      `json:"h"`
	ItemLevel int      `json:"ilvl"`
	FrameType int      `json:"frame_type"`
	Type      ItemType `json:"type"`
}

func (i Item) Tier() Tier {
	if i.ItemLevel < HighTierItemLevel {
		return TierLow
	}
	return TierHigh
}

// RawItem is one record of a stash payload before classification.
type RawItem struct {
	W          int
	H          int
	X          int
	Y          int
	ItemLevel  int
	FrameType  int
	Identifier string
}

type StashSnapshot struct {
	Items      []RawItem
	DoubleSize bool
}
