package store_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cs2showroom/internal/domain"
	"cs2showroom/internal/store"
)

func tmpStore(t *testing.T) (*store.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inventory_data.json")
	return store.NewFileStore(path), path
}

func TestLoadMissingFileResets(t *testing.T) {
	s, path := tmpStore(t)
	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Skins) != 0 || doc.Total != 0 {
		t.Fatalf("want empty document, got %+v", doc)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("reset must write an empty document: %v", err)
	}
}

func TestLoadCorruptFileResets(t *testing.T) {
	s, path := tmpStore(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Skins) != 0 {
		t.Fatalf("want empty document after corrupt reset, got %+v", doc)
	}
}

func TestSaveLoadRoundTripIdempotent(t *testing.T) {
	s, path := tmpStore(t)
	price := "12.50"
	doc := store.Document{
		Skins: []domain.InventoryItem{{
			Name:         "AK-47 | Redline",
			AssetID:      "1",
			TradableInfo: domain.TradableInfo{Raw: "Yes", IsTradable: true, LockState: domain.LockStateUnlocked},
			Selected:     true,
			PriceEUR:     &price,
			Note:         "  rare pattern  ",
			WeaponType:   "AK-47",
			ItemType:     "Rifle",
		}},
		Total:              1,
		TotalBeforeFilters: 1,
	}
	if err := s.Save(doc); err != nil {
		t.Fatal(err)
	}
	first, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	loaded, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Skins[0].PriceEUR == nil || *loaded.Skins[0].PriceEUR != "12.5" {
		t.Fatalf("price not normalized on save: %v", loaded.Skins[0].PriceEUR)
	}
	if loaded.Skins[0].Note != "rare pattern" {
		t.Fatalf("note not trimmed: %q", loaded.Skins[0].Note)
	}

	// A load of already-current data must not rewrite the file.
	second, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(first) != string(second) {
		t.Fatal("load of migrated data rewrote the file")
	}
}

func TestLoadMigratesLegacyFields(t *testing.T) {
	s, path := tmpStore(t)
	legacy := `{
	  "skins": [
	    {
	      "name": "AWP | Asiimov",
	      "icon_url": "icon",
	      "exterior": "Field-Tested",
	      "tradable": "Mar 15, 2026 (9:00:00)",
	      "wear_rating": 0.31,
	      "selected": true,
	      "weapon_type": "AWP",
	      "item_type": "Sniper Rifle",
	      "asset_id": "9",
	      "price_eur": "20.00",
	      "note": "scoped"
	    }
	  ],
	  "total": 1
	}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	it := doc.Skins[0]
	if it.Float == nil || *it.Float != 0.31 {
		t.Fatalf("wear_rating not migrated to float: %v", it.Float)
	}
	if it.TradableInfo.Raw != "Mar 15, 2026 (9:00:00)" || it.TradableInfo.IsTradable {
		t.Fatalf("legacy tradable not structured: %+v", it.TradableInfo)
	}
	if it.TradableInfo.UnlockISO != "2026-03-15T09:00:00Z" {
		t.Fatalf("unlock date not derived: %+v", it.TradableInfo)
	}
	if it.PriceEUR == nil || *it.PriceEUR != "20" {
		t.Fatalf("price not normalized: %v", it.PriceEUR)
	}
	if it.Stickers == nil || it.Patches == nil {
		t.Fatal("sticker/patch lists must default to empty, not null")
	}
	if doc.TotalBeforeFilters != 1 {
		t.Fatalf("missing total_before_filters must default to total, got %d", doc.TotalBeforeFilters)
	}

	// The migrated form must be re-persisted without the legacy fields.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, gone := range []string{`"wear_rating"`, `"tradable":`} {
		if strings.Contains(string(raw), gone) {
			t.Fatalf("legacy field %s survived migration:\n%s", gone, raw)
		}
	}
}

func TestLoadMigratesAgentPatches(t *testing.T) {
	s, path := tmpStore(t)
	legacy := `{
	  "skins": [
	    {
	      "name": "Sir Bloody Miami Darryl | The Professionals",
	      "item_type": "Agent",
	      "tradable_info": {"raw": "Yes", "is_tradable": true, "lock_state": "unlocked"},
	      "stickers": [
	        {"icon_url": "https://cdn.example/patches/skull.png", "name": "Patch: Skull"},
	        {"icon_url": "https://cdn.example/st.png", "name": "Crown"}
	      ],
	      "asset_id": "7"
	    }
	  ],
	  "total": 1,
	  "total_before_filters": 1
	}`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := s.Load()
	if err != nil {
		t.Fatal(err)
	}
	it := doc.Skins[0]
	if len(it.Patches) != 1 || it.Patches[0].Name != "Skull" {
		t.Fatalf("patch not migrated out of stickers: %+v", it.Patches)
	}
	if len(it.Stickers) != 1 || it.Stickers[0].Name != "Crown" {
		t.Fatalf("plain sticker lost: %+v", it.Stickers)
	}
}

