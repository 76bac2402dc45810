package domain

// Lock states reported in TradableInfo.
const (
	LockStateUnlocked = "unlocked"
	LockStateLocked   = "locked"
)

// Sticker is one sticker or patch attached to an item.
type Sticker struct {
	IconURL string `json:"icon_url"`
	Name    string `json:"name"`
}

// TradableInfo is the structured form of an item's raw tradability text.
// Locked items carry the unlock date in display and ISO form when the raw
// text could be parsed.
type TradableInfo struct {
	Raw        string `json:"raw"`
	IsTradable bool   `json:"is_tradable"`
	LockState  string `json:"lock_state"`
	UnlockText string `json:"unlock_text,omitempty"`
	UnlockISO  string `json:"unlock_iso,omitempty"`
}

// InventoryItem is one displayable unit of the inventory. A stack of N
// assets expands into N records that differ only in identity. Selected,
// PriceEUR and Note are operator curation and are the only fields that
// survive a refresh.
type InventoryItem struct {
	Name            string       `json:"name"`
	IconURL         string       `json:"icon_url"`
	Exterior        *string      `json:"exterior"`
	TradableInfo    TradableInfo `json:"tradable_info"`
	Selected        bool         `json:"selected"`
	WeaponType      string       `json:"weapon_type"`
	ItemType        string       `json:"item_type"`
	Stickers        []Sticker    `json:"stickers"`
	Patches         []Sticker    `json:"patches"`
	Rarity          *string      `json:"rarity"`
	RarityColor     *string      `json:"rarity_color"`
	InspectLink     *string      `json:"inspect_link"`
	AssetID         string       `json:"asset_id"`
	PatternTemplate *int         `json:"pattern_template"`
	Float           *float64     `json:"float"`
	Collection      *string      `json:"collection"`
	PriceEUR        *string      `json:"price_eur"`
	Note            string       `json:"note"`
}

// FallbackKey is the name+exterior composite used to join an item across
// refreshes when no stable asset id is available. Ambiguous for identical
// stacked units; the last occurrence wins.
func (it *InventoryItem) FallbackKey() string {
	key := it.Name
	if it.Exterior != nil && *it.Exterior != "" {
		key += "_" + *it.Exterior
	}
	return key
}
