package services

import (
	"cs2showroom/internal/domain"
	"cs2showroom/internal/inventory"
)

// curation is the operator-owned state carried across refreshes.
type curation struct {
	Selected bool
	PriceEUR *string
	Note     string
}

// reconcile carries selection, price and note from the prior list onto a
// freshly built one. Items join on asset id when the new item has one that
// the prior set knows; otherwise on the name+exterior fallback key. The
// fallback is ambiguous for identical stacked units without asset ids;
// the last prior occurrence wins, which is the documented behavior rather
// than a bug to fix. Unmatched new items keep their defaults (unselected,
// no price, empty note).
func reconcile(prior, next []domain.InventoryItem) {
	index := make(map[string]curation, len(prior))
	for i := range prior {
		item := &prior[i]
		key := item.AssetID
		if key == "" {
			key = item.FallbackKey()
		}
		index[key] = curation{
			Selected: item.Selected,
			PriceEUR: inventory.NormalizePrice(item.PriceEUR),
			Note:     inventory.SanitizeNote(item.Note),
		}
	}

	for i := range next {
		item := &next[i]
		cur, ok := curation{}, false
		if item.AssetID != "" {
			cur, ok = index[item.AssetID]
		}
		if !ok {
			cur, ok = index[item.FallbackKey()]
		}
		if !ok {
			continue
		}
		item.Selected = cur.Selected
		item.PriceEUR = cur.PriceEUR
		item.Note = cur.Note
	}
}
