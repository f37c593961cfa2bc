package domain

// TierLists holds the items of one type, split by tier, in stash order.
type TierLists struct {
	Low  []Item `json:"low"`
	High []Item `json:"high"`
}

func (l TierLists) Len() int {
	return len(l.Low) + len(l.High)
}

type Inventory map[ItemType]TierLists

func (inv Inventory) Counts(itemType ItemType) (low int, high int) {
	lists := inv[itemType]
	return len(lists.Low), len(lists.High)
}

// Clone returns a copy that shares no slices with inv.
func (inv Inventory) Clone() Inventory {
	if inv == nil {
		return Inventory{}
	}

	cloned := make(Inventory, len(inv))
	for itemType, lists := range inv {
		cloned[itemType] = TierLists{
			Low:  append([]Item(nil), lists.Low...),
			High: append([]Item(nil), lists.High...),
		}
	}

	return cloned
}

// Equal compares structurally. A missing type and a type with two empty lists are equal.
func (inv Inventory) Equal(other Inventory) bool {
	seen := make(map[ItemType]struct{}, len(inv)+len(other))
	for itemType := range inv {
		seen[itemType] = struct{}{}
	}
	for itemType := range other {
		seen[itemType] = struct{}{}
	}

	for itemType := range seen {
		a, b := inv[itemType], other[itemType]
		if !itemsEqual(a.Low, b.Low) || !itemsEqual(a.High, b.High) {
			return false
		}
	}

	return true
}

func itemsEqual(a, b []Item) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
