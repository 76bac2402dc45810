package services

import (
	"context"
	"sort"

	"cs2showroom/internal/domain"
	"cs2showroom/internal/inventory"
	"cs2showroom/internal/store"
)

// InventoryFetcher pulls a fresh raw payload from the Steam API.
type InventoryFetcher interface {
	FetchInventory(ctx context.Context) (*domain.RawPayload, error)
}

// ShowroomService owns the refresh and curation operations around the
// persisted item list. Every operation is synchronous and there is exactly
// one writer (the operator), so no locking is needed.
type ShowroomService struct {
	Store   *store.FileStore
	Fetcher InventoryFetcher
	SteamID string
}

func NewShowroomService(st *store.FileStore, fetcher InventoryFetcher, steamID string) *ShowroomService {
	return &ShowroomService{Store: st, Fetcher: fetcher, SteamID: steamID}
}

// Current returns the persisted document as-is (migrated on load).
func (s *ShowroomService) Current() (store.Document, error) {
	return s.Store.Load()
}

// SelectedItems returns the operator-curated public list.
func (s *ShowroomService) SelectedItems() ([]domain.InventoryItem, error) {
	doc, err := s.Store.Load()
	if err != nil {
		return nil, err
	}
	selected := make([]domain.InventoryItem, 0, len(doc.Skins))
	for _, item := range doc.Skins {
		if item.Selected {
			selected = append(selected, item)
		}
	}
	return selected, nil
}

// RefreshFromAPI performs a one-shot rebuild from the live Steam API,
// carrying operator curation forward.
func (s *ShowroomService) RefreshFromAPI(ctx context.Context) (store.Document, error) {
	payload, err := s.Fetcher.FetchInventory(ctx)
	if err != nil {
		return store.Document{}, err
	}
	return s.rebuild(payload)
}

// RefreshFromManual rebuilds from operator-pasted JSON blobs. Persisted
// state is untouched when parsing fails.
func (s *ShowroomService) RefreshFromManual(rawJSON string) (store.Document, error) {
	payload, err := inventory.ParsePayloads(rawJSON)
	if err != nil {
		return store.Document{}, err
	}
	return s.rebuild(payload)
}

func (s *ShowroomService) rebuild(payload *domain.RawPayload) (store.Document, error) {
	prior, err := s.Store.Load()
	if err != nil {
		return store.Document{}, err
	}

	items, total, totalBeforeFilters := inventory.Build(payload, s.SteamID)
	reconcile(prior.Skins, items)

	doc := store.Document{Skins: items, Total: total, TotalBeforeFilters: totalBeforeFilters}
	if err := s.Store.Save(doc); err != nil {
		return store.Document{}, err
	}
	return doc, nil
}

// SelectionUpdate is the full admin form state for one save action.
// Indices refer to positions in the persisted list as rendered.
type SelectionUpdate struct {
	ClearAll bool
	Selected map[int]bool
	Prices   map[int]string
	Notes    map[int]string
}

// SaveSelection applies operator curation edits to the persisted list
// without rebuilding it. Invalid price input keeps the previous price
// rather than failing the whole save.
func (s *ShowroomService) SaveSelection(update SelectionUpdate) (store.Document, error) {
	doc, err := s.Store.Load()
	if err != nil {
		return store.Document{}, err
	}

	for i := range doc.Skins {
		item := &doc.Skins[i]
		if update.ClearAll {
			item.Selected = false
		} else {
			item.Selected = update.Selected[i]
		}
		if raw, ok := update.Prices[i]; ok {
			item.PriceEUR = inventory.ParsePriceInput(raw, item.PriceEUR)
		}
		if raw, ok := update.Notes[i]; ok {
			item.Note = inventory.SanitizeNote(raw)
		}
	}

	doc.Total = len(doc.Skins)
	if err := s.Store.Save(doc); err != nil {
		return store.Document{}, err
	}
	return doc, nil
}

// FilterOption is one filter value with its display count.
type FilterOption struct {
	Name  string
	Count int
}

// FilterSet groups the showroom filter dimensions.
type FilterSet struct {
	Tradable    []FilterOption
	WeaponTypes []FilterOption
	ItemTypes   []FilterOption
}

// FilterCounts aggregates the filter options with counts over the given
// items. Skip-set categories never count; "Yes" sorts first in the
// tradable dimension.
func FilterCounts(items []domain.InventoryItem) FilterSet {
	tradable := map[string]int{}
	weapons := map[string]int{}
	categories := map[string]int{}
	for _, item := range items {
		if inventory.IsSkippedCategory(item.ItemType) {
			continue
		}
		raw := item.TradableInfo.Raw
		if raw == "" {
			raw = "Yes"
		}
		tradable[raw]++
		weapons[item.WeaponType]++
		categories[item.ItemType]++
	}

	fs := FilterSet{
		Tradable:    sortedOptions(tradable),
		WeaponTypes: sortedOptions(weapons),
		ItemTypes:   sortedOptions(categories),
	}
	sort.SliceStable(fs.Tradable, func(i, j int) bool {
		yi, yj := fs.Tradable[i].Name == "Yes", fs.Tradable[j].Name == "Yes"
		if yi != yj {
			return yi
		}
		return fs.Tradable[i].Name < fs.Tradable[j].Name
	})
	return fs
}

func sortedOptions(counts map[string]int) []FilterOption {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]FilterOption, 0, len(names))
	for _, name := range names {
		out = append(out, FilterOption{Name: name, Count: counts[name]})
	}
	return out
}
