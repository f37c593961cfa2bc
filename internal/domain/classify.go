package domain

import (
	"fmt"
	"regexp"
)

var identifierPattern = regexp.MustCompile(`/2DItems/(.+?)/(.+?)(\.png|/)`)

// ItemTypeFromIdentifier maps an icon path such as ".../2DItems/Armours/Boots/..." to an ItemType.
// Paths without a category/subcategory pair fail with ErrMalformedIdentifier.
func ItemTypeFromIdentifier(identifier string) (ItemType, error) {
	match := identifierPattern.FindStringSubmatch(identifier)
	if match == nil {
		return "", fmt.Errorf("%w: %q", ErrMalformedIdentifier, identifier)
	}

	category, subcategory := match[1], match[2]
	switch category {
	case "Armours":
		switch subcategory {
		case "Boots":
			return ItemTypeBoots, nil
		case "Helmets":
			return ItemTypeHelmet, nil
		case "Gloves":
			return ItemTypeGloves, nil
		case "BodyArmours":
			return ItemTypeBody, nil
		case "Shields":
			return ItemTypeWeapon1HOrShield, nil
		}
	case "Weapons":
		switch subcategory {
		case "OneHandWeapons":
			return ItemTypeWeapon1HOrShield, nil
		case "TwoHandWeapons", "Bows":
			return ItemTypeWeapon2H, nil
		}
	case "Amulets":
		return ItemTypeAmulet, nil
	case "Rings":
		return ItemTypeRing, nil
	case "Belts":
		return ItemTypeBelt, nil
	}

	return ItemTypeUseless, nil
}

// Classify filters a snapshot down to recipe-eligible items and splits them by type and tier.
// One malformed identifier fails the whole snapshot.
func Classify(snapshot StashSnapshot) (Inventory, error) {
	inv := Inventory{}

	for i, raw := range snapshot.Items {
		itemType, err := ItemTypeFromIdentifier(raw.Identifier)
		if err != nil {
			return nil, fmt.Errorf("classify item %d: %w", i, err)
		}

		if raw.ItemLevel < MinRecipeItemLevel || raw.FrameType != RecipeFrameType {
			continue
		}

		item := Item{
			X:         raw.X,
			Y:         raw.Y,
			W:         raw.W,
			H:         raw.H,
			ItemLevel: raw.ItemLevel,
			FrameType: raw.FrameType,
			Type:      itemType,
		}

		lists := inv[itemType]
		if item.Tier() == TierLow {
			lists.Low = append(lists.Low, item)
		} else {
			lists.High = append(lists.High, item)
		}
		inv[itemType] = lists
	}

	return inv, nil
}
