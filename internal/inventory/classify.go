package inventory

import (
	"regexp"
	"sort"
	"strings"

	"cs2showroom/internal/domain"
)

// weaponCatalog lists every weapon and knife name the classifier can
// recognize in an item name.
var weaponCatalog = []string{
	"AK-47", "M4A4", "M4A1-S", "AWP", "Desert Eagle", "USP-S", "Glock-18",
	"P250", "Five-SeveN", "Tec-9", "CZ75-Auto", "Dual Berettas", "P90", "MP9",
	"MAC-10", "UMP-45", "PP-Bizon", "MP7", "MP5-SD", "Nova", "XM1014", "MAG-7",
	"Sawed-Off", "M249", "Negev", "Galil AR", "FAMAS", "SG 553", "AUG", "SSG 08",
	"G3SG1", "SCAR-20", "Zeus x27", "Knife", "Bayonet", "Bowie Knife", "Butterfly Knife",
	"Falchion Knife", "Flip Knife", "Gut Knife", "Huntsman Knife", "Karambit",
	"M9 Bayonet", "Shadow Daggers", "Navaja", "Stiletto Knife", "Talon Knife",
	"Ursus Knife", "Classic Knife", "Paracord Knife", "Survival Knife", "Skeleton Knife",
	"Nomad Knife", "C4",
}

// weaponsByLength holds the catalog longest-first so a short name can never
// shadow a longer one that contains it ("Knife" vs "Butterfly Knife").
var weaponsByLength = func() []string {
	sorted := append([]string(nil), weaponCatalog...)
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	return sorted
}()

// typeFieldCategories are matched as substrings against the description's
// explicit type string, in this order.
var typeFieldCategories = []string{
	"Agent", "Equipment", "Music Kit", "Collectible", "Pass", "Graffiti", "Sticker",
}

// tagTypeCategories maps a "Type" tag name to an item category.
var tagTypeCategories = map[string]string{
	"Agent":       "Agent",
	"Equipment":   "Equipment",
	"Collectible": "Collectible",
	"Gloves":      "Gloves",
}

// typeRule maps name tokens to an item category. Rules are evaluated in
// declaration order and the first matching token wins. Knife tokens come
// first because they share tokens with other categories.
type typeRule struct {
	Category string
	Tokens   []string
	Fold     bool // case-insensitive token match
}

var nameTypeRules = []typeRule{
	{"Knife", []string{"Knife", "Bayonet", "Karambit", "Daggers"}, true},
	{"Pistol", []string{"Pistol", "Glock", "USP", "P250", "Five-SeveN", "Tec-9", "CZ75", "Dual Berettas", "Desert Eagle", "P2000", "R8 Revolver"}, true},
	{"SMG", []string{"SMG", "MP9", "MAC-10", "MP7", "MP5", "UMP", "P90", "PP-Bizon"}, true},
	{"Rifle", []string{"AK-47", "M4A4", "M4A1", "Galil", "FAMAS", "SG 553", "AUG"}, true},
	{"Sniper Rifle", []string{"AWP", "SSG 08", "SCAR-20", "G3SG1"}, true},
	{"Shotgun", []string{"Nova", "XM1014", "MAG-7", "Sawed-Off"}, true},
	{"Machinegun", []string{"M249", "Negev"}, true},
	{"Gloves", []string{"Glove", "Hand Wraps", "Driver Gloves"}, false},
	{"Agent", []string{"Agent", "Operator", "Enforcer", "Soldier"}, false},
	{"Sticker", []string{"Sticker"}, false},
	{"Graffiti", []string{"Graffiti", "Spray"}, false},
	{"Music Kit", []string{"Music Kit"}, false},
	{"Collectible", []string{"Case", "Container"}, false},
	{"Tool", []string{"Key"}, false},
	{"Pass", []string{"Pass", "Operation"}, false},
	{"Tool", []string{"Tool", "Kit"}, false},
	{"Tag", []string{"Tag", "Label"}, false},
	{"Equipment", []string{"Equipment", "Defuse Kit"}, false},
}

func (r *typeRule) matches(name, lower string) bool {
	for _, token := range r.Tokens {
		if r.Fold {
			if strings.Contains(lower, strings.ToLower(token)) {
				return true
			}
		} else if strings.Contains(name, token) {
			return true
		}
	}
	return false
}

// skipCategories are item categories never shown in the showroom.
var skipCategories = map[string]bool{
	"C4":       true,
	"Graffiti": true,
	"Pass":     true,
	"Tag":      true,
	"Tool":     true,
}

// IsSkippedCategory reports whether items of the given category are
// excluded from the canonical list.
func IsSkippedCategory(itemType string) bool { return skipCategories[itemType] }

// Classify determines the weapon and item category of an item from its
// display name and description metadata. The item type is resolved from the
// explicit type field first, then the Type tag, then name heuristics.
// Either result may be empty when nothing matches; callers fall back to
// "Other".
func Classify(name string, desc *domain.RawDescription) (weaponType, itemType string) {
	lower := strings.ToLower(name)
	for _, w := range weaponsByLength {
		if strings.Contains(lower, strings.ToLower(w)) {
			weaponType = w
			break
		}
	}

	if desc != nil {
		if desc.Type != "" {
			for _, cat := range typeFieldCategories {
				if strings.Contains(desc.Type, cat) {
					itemType = cat
					break
				}
			}
		}
		if itemType == "" {
			if tag := desc.Tag("Type"); tag != nil {
				itemType = tagTypeCategories[tag.DisplayName()]
			}
		}
	}

	if itemType == "" {
		for i := range nameTypeRules {
			if nameTypeRules[i].matches(name, lower) {
				itemType = nameTypeRules[i].Category
				break
			}
		}
	}
	return weaponType, itemType
}

// Exterior returns the wear-tier label from the Exterior tag, falling back
// to the exterior_wear description block.
func Exterior(desc *domain.RawDescription) *string {
	if tag := desc.Tag("Exterior"); tag != nil {
		if name := tag.DisplayName(); name != "" {
			return &name
		}
	}
	if b := desc.Block("exterior_wear"); b != nil {
		if v := strings.TrimSpace(strings.ReplaceAll(b.Value, "Exterior:", "")); v != "" {
			return &v
		}
	}
	return nil
}

// Rarity extracts the rarity name and display color from the Rarity tag,
// falling back to the description's name color. Colors are normalized to
// include a leading '#'.
func Rarity(desc *domain.RawDescription) (name, color *string) {
	if tag := desc.Tag("Rarity"); tag != nil {
		if n := tag.DisplayName(); n != "" {
			name = &n
		}
		if tag.Color != "" {
			c := normalizeColor(tag.Color)
			color = &c
		}
		return name, color
	}
	if desc.NameColor != "" {
		c := normalizeColor(desc.NameColor)
		return nil, &c
	}
	return nil, nil
}

func normalizeColor(c string) string {
	if strings.HasPrefix(c, "#") {
		return c
	}
	return "#" + c
}

var (
	tradableAfterRe  = regexp.MustCompile(`(?i)Tradable/Marketable After\s+(.*)\s+GMT`)
	tradeProtectedRe = regexp.MustCompile(`(?i)trade.?protected.*?until\s+(.*)\s+GMT`)
	clockRe          = regexp.MustCompile(`\(\d{1,2}:\d{2}:\d{2}\)`)
)

// TradableText derives the raw tradability status: "Yes" for tradable
// items, the unlock date for trade-locked ones (clock pinned to 9:00:00
// since Steam reports it in GMT), "No" otherwise.
func TradableText(desc *domain.RawDescription) string {
	if desc.Tradable != 0 {
		return "Yes"
	}
	for _, od := range desc.OwnerDescriptions {
		for _, re := range []*regexp.Regexp{tradableAfterRe, tradeProtectedRe} {
			if m := re.FindStringSubmatch(od.Value); m != nil {
				return clockRe.ReplaceAllString(strings.TrimSpace(m[1]), "(9:00:00)")
			}
		}
	}
	return "No"
}

var stickerImgRe = regexp.MustCompile(`<img[^>]*\bsrc="([^"]+)"[^>]*\btitle="([^"]+)"`)

// Stickers parses the embedded sticker_info HTML fragment into structured
// entries. Protocol-relative icon URLs are upgraded to https.
func Stickers(desc *domain.RawDescription) []domain.Sticker {
	b := desc.Block("sticker_info")
	if b == nil {
		return nil
	}
	var out []domain.Sticker
	for _, m := range stickerImgRe.FindAllStringSubmatch(b.Value, -1) {
		icon := m[1]
		if strings.HasPrefix(icon, "//") {
			icon = "https:" + icon
		}
		name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(m[2]), "Sticker:"))
		out = append(out, domain.Sticker{IconURL: icon, Name: name})
	}
	return out
}

// Collection resolves the collection name: the itemset_name description
// block first, then the ItemSet tag.
func Collection(desc *domain.RawDescription) *string {
	if b := desc.Block("itemset_name"); b != nil {
		if v := strings.TrimSpace(b.Value); v != "" {
			return &v
		}
	}
	if tag := desc.Tag("ItemSet"); tag != nil {
		if v := strings.TrimSpace(tag.DisplayName()); v != "" {
			return &v
		}
	}
	return nil
}
