package battle

import "github.com/cory-johannsen/monbattle/internal/game/dex"

// Bag holds the consumable items a side may use as turn actions, by count.
// A nil Bag is empty.
type Bag map[dex.Item]int

// Count returns how many of item remain.
func (b Bag) Count(item dex.Item) int { return b[item] }

// Take consumes one item. It reports false when none remain.
func (b Bag) Take(item dex.Item) bool {
	if b[item] <= 0 {
		return false
	}
	b[item]--
	if b[item] == 0 {
		delete(b, item)
	}
	return true
}

// Items lists the items with a positive count in dex.BagItems order.
func (b Bag) Items() []dex.Item {
	var out []dex.Item
	for _, it := range dex.BagItems {
		if b[it] > 0 {
			out = append(out, it)
		}
	}
	return out
}

// Clone returns an independent copy.
func (b Bag) Clone() Bag {
	if b == nil {
		return nil
	}
	out := make(Bag, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}
