package inventory

import (
	"strings"

	"cs2showroom/internal/domain"
)

// assetProps are the per-asset cosmetic properties keyed by assetid.
type assetProps struct {
	Float           *float64
	PatternTemplate *int
}

// Build expands a normalized payload into display items. Assets whose
// tradability is "No" and skip-set categories are dropped; a stack of N
// units becomes N records since the showroom renders one card per physical
// item. Returns the items, their count, and the unit count before
// filtering.
func Build(payload *domain.RawPayload, ownerSteamID string) (items []domain.InventoryItem, total, totalBeforeFilters int) {
	descByKey := make(map[domain.DefKey]*domain.RawDescription, len(payload.Descriptions))
	for i := range payload.Descriptions {
		d := &payload.Descriptions[i]
		if d.ClassID == "" {
			continue
		}
		instance := d.InstanceID
		if instance == "" {
			instance = "0"
		}
		descByKey[domain.DefKey{ClassID: d.ClassID, InstanceID: instance}] = d
	}

	props := make(map[string]assetProps, len(payload.AssetProperties))
	for _, entry := range payload.AssetProperties {
		p := props[entry.AssetID]
		for _, prop := range entry.Properties {
			switch prop.Name {
			case "Wear Rating":
				if prop.FloatValue != nil {
					v := *prop.FloatValue
					p.Float = &v
				}
			case "Pattern Template":
				if prop.IntValue != nil {
					if n, err := prop.IntValue.Int64(); err == nil {
						v := int(n)
						p.PatternTemplate = &v
					}
				}
			}
		}
		props[entry.AssetID] = p
	}

	for i := range payload.Assets {
		totalBeforeFilters += payload.Assets[i].Units()
	}

	items = []domain.InventoryItem{}
	for i := range payload.Assets {
		asset := &payload.Assets[i]
		desc := descByKey[asset.DefinitionKey()]
		if desc == nil {
			desc = &domain.RawDescription{}
		}
		name := desc.Name
		if name == "" {
			name = "Unknown"
		}

		tradableStatus := TradableText(desc)
		if tradableStatus == "No" {
			continue
		}

		weaponType, itemType := Classify(name, desc)
		if IsSkippedCategory(itemType) {
			continue
		}

		stickers := Stickers(desc)
		rarityName, rarityColor := Rarity(desc)
		collection := Collection(desc)
		exterior := Exterior(desc)
		tradable := BuildTradableInfo(tradableStatus)
		// Resolved once per asset, not per unit.
		inspect := ResolveInspectLink(inspectTemplate(desc), ownerSteamID, asset.AssetID)
		prop := props[asset.AssetID]

		for n := 0; n < asset.Units(); n++ {
			stickerList, patchList := partitionAgentStickers(itemType, stickers)
			items = append(items, domain.InventoryItem{
				Name:            name,
				IconURL:         desc.IconURL,
				Exterior:        exterior,
				TradableInfo:    tradable,
				WeaponType:      orOther(weaponType),
				ItemType:        orOther(itemType),
				Stickers:        stickerList,
				Patches:         patchList,
				Rarity:          rarityName,
				RarityColor:     rarityColor,
				InspectLink:     inspect,
				AssetID:         asset.AssetID,
				PatternTemplate: prop.PatternTemplate,
				Float:           prop.Float,
				Collection:      collection,
			})
		}
	}
	return items, len(items), totalBeforeFilters
}

func orOther(category string) string {
	if category == "" {
		return "Other"
	}
	return category
}

// partitionAgentStickers moves agent patches out of the sticker list.
// Patches arrive in the sticker_info fragment as stickers whose name
// carries a "Patch:" prefix or whose icon path contains /patches/.
// Non-agent items keep their sticker list untouched.
func partitionAgentStickers(itemType string, stickers []domain.Sticker) (kept, patches []domain.Sticker) {
	kept = make([]domain.Sticker, 0, len(stickers))
	patches = []domain.Sticker{}
	if !strings.EqualFold(itemType, "Agent") {
		return append(kept, stickers...), patches
	}
	for _, s := range stickers {
		if IsPatch(s) {
			patches = append(patches, domain.Sticker{IconURL: s.IconURL, Name: PatchName(s.Name)})
		} else {
			kept = append(kept, s)
		}
	}
	return kept, patches
}

// IsPatch reports whether a sticker entry is actually an agent patch.
func IsPatch(s domain.Sticker) bool {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(s.Name)), "patch:") {
		return true
	}
	return strings.Contains(s.IconURL, "/patches/")
}

// PatchName strips the "Patch:" style prefix from a patch title.
func PatchName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.Index(name, ":"); i >= 0 {
		if cleaned := strings.TrimSpace(name[i+1:]); cleaned != "" {
			return cleaned
		}
	}
	return name
}
