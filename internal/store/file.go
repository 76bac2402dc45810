package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"cs2showroom/internal/domain"
	"cs2showroom/internal/inventory"
)

// Document is the single persisted JSON document holding the canonical
// item list.
type Document struct {
	Skins              []domain.InventoryItem `json:"skins"`
	Total              int                    `json:"total"`
	TotalBeforeFilters int                    `json:"total_before_filters"`
}

// legacyItem augments InventoryItem with fields older schema versions used:
// a bare tradable string and a wear_rating float. Both are migrated and
// dropped on the next save.
type legacyItem struct {
	domain.InventoryItem
	Tradable   *string  `json:"tradable,omitempty"`
	WearRating *float64 `json:"wear_rating,omitempty"`
}

type legacyDocument struct {
	Skins              []legacyItem `json:"skins"`
	Total              int          `json:"total"`
	TotalBeforeFilters *int         `json:"total_before_filters"`
}

// FileStore persists the canonical item list as one JSON file. Writes are
// not transactional; the store is fully rebuildable from the upstream feed,
// so a torn write at worst loses curation since the last successful save.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Load reads the canonical document, self-healing older schema variants in
// place and re-persisting the migrated form when anything changed. A
// corrupt or missing file resets to an empty document; load never surfaces
// a hard failure for those cases.
func (s *FileStore) Load() (Document, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil || len(raw) == 0 {
		return s.reset()
	}
	var legacy legacyDocument
	if err := json.Unmarshal(raw, &legacy); err != nil {
		return s.reset()
	}

	doc, changed := migrate(legacy)
	if changed {
		if err := s.Save(doc); err != nil {
			return doc, err
		}
	}
	return doc, nil
}

func (s *FileStore) reset() (Document, error) {
	doc := Document{Skins: []domain.InventoryItem{}}
	return doc, s.Save(doc)
}

// Save sanitizes curated fields (price normalization, note trimming, patch
// name cleanup) and writes the document pretty-printed.
func (s *FileStore) Save(doc Document) error {
	skins := make([]domain.InventoryItem, len(doc.Skins))
	for i, item := range doc.Skins {
		item.PriceEUR = inventory.NormalizePrice(item.PriceEUR)
		item.Note = inventory.SanitizeNote(item.Note)
		if item.Stickers == nil {
			item.Stickers = []domain.Sticker{}
		}
		patches := make([]domain.Sticker, 0, len(item.Patches))
		for _, p := range item.Patches {
			patches = append(patches, domain.Sticker{IconURL: p.IconURL, Name: stripPatchPrefix(p.Name)})
		}
		item.Patches = patches
		skins[i] = item
	}
	doc.Skins = skins

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, append(data, '\n'), 0o644)
}

// migrate upgrades one loaded document to the current schema. Running it on
// already-migrated data is a no-op (changed=false), so load/save cycles are
// idempotent.
func migrate(legacy legacyDocument) (Document, bool) {
	changed := false
	skins := make([]domain.InventoryItem, 0, len(legacy.Skins))
	for _, ls := range legacy.Skins {
		item := ls.InventoryItem

		if item.Float == nil && ls.WearRating != nil {
			v := *ls.WearRating
			item.Float = &v
		}
		// Legacy fields disappear on resave.
		if ls.WearRating != nil || ls.Tradable != nil {
			changed = true
		}

		raw := item.TradableInfo.Raw
		if raw == "" {
			if ls.Tradable != nil && *ls.Tradable != "" {
				raw = *ls.Tradable
			} else {
				raw = "Yes"
			}
		}
		if rebuilt := inventory.BuildTradableInfo(raw); rebuilt != item.TradableInfo {
			item.TradableInfo = rebuilt
			changed = true
		}

		if sanitized := inventory.SanitizeNote(item.Note); sanitized != item.Note {
			item.Note = sanitized
			changed = true
		}
		if normalized := inventory.NormalizePrice(item.PriceEUR); !eqStrPtr(normalized, item.PriceEUR) {
			item.PriceEUR = normalized
			changed = true
		}

		// Default-fill fields absent from older documents. Filling alone
		// does not force a resave.
		if item.Stickers == nil {
			item.Stickers = []domain.Sticker{}
		}
		if item.Patches == nil {
			item.Patches = []domain.Sticker{}
		}

		if strings.EqualFold(item.ItemType, "Agent") {
			remaining := make([]domain.Sticker, 0, len(item.Stickers))
			var migrated []domain.Sticker
			for _, st := range item.Stickers {
				if inventory.IsPatch(st) {
					migrated = append(migrated, domain.Sticker{IconURL: st.IconURL, Name: inventory.PatchName(st.Name)})
				} else {
					remaining = append(remaining, st)
				}
			}
			if len(migrated) > 0 {
				item.Patches = mergePatches(item.Patches, migrated)
				item.Stickers = remaining
				changed = true
			}
		}

		skins = append(skins, item)
	}

	doc := Document{Skins: skins, Total: legacy.Total}
	if legacy.TotalBeforeFilters != nil {
		doc.TotalBeforeFilters = *legacy.TotalBeforeFilters
	} else {
		doc.TotalBeforeFilters = legacy.Total
		changed = true
	}
	return doc, changed
}

// mergePatches combines existing and newly migrated patches, cleaning
// names and dropping duplicates by (name, icon) while preserving order.
func mergePatches(existing, migrated []domain.Sticker) []domain.Sticker {
	seen := make(map[domain.Sticker]bool)
	out := make([]domain.Sticker, 0, len(existing)+len(migrated))
	for _, p := range append(append([]domain.Sticker{}, existing...), migrated...) {
		cleaned := domain.Sticker{IconURL: p.IconURL, Name: stripPatchPrefix(p.Name)}
		key := domain.Sticker{IconURL: cleaned.IconURL, Name: strings.ToLower(cleaned.Name)}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, cleaned)
	}
	return out
}

// stripPatchPrefix removes a leading "Patch:" marker, leaving other names
// untouched apart from trimming.
func stripPatchPrefix(name string) string {
	name = strings.TrimSpace(name)
	if strings.HasPrefix(strings.ToLower(name), "patch:") {
		return strings.TrimSpace(name[len("patch:"):])
	}
	return name
}

func eqStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
