package inventory

import (
	"regexp"
	"strings"

	"cs2showroom/internal/domain"
)

var unresolvedTokenRe = regexp.MustCompile(`%[A-Za-z_]+%`)

// inspectTemplate picks the first available inspect-link template from a
// description's action lists.
func inspectTemplate(desc *domain.RawDescription) string {
	if len(desc.Actions) > 0 && desc.Actions[0].Link != "" {
		return desc.Actions[0].Link
	}
	if len(desc.MarketActions) > 0 {
		return desc.MarketActions[0].Link
	}
	return ""
}

// ResolveInspectLink substitutes the owner and asset placeholders in an
// in-game inspect template. A link that still carries an unresolved
// %token% afterwards is dropped rather than exposed broken.
func ResolveInspectLink(template, ownerSteamID, assetID string) *string {
	if template == "" {
		return nil
	}
	link := template
	if ownerSteamID != "" {
		for _, placeholder := range []string{"%owner_steamid%", "%original_owner_steamid%", "%owner_steamid64%"} {
			link = strings.ReplaceAll(link, placeholder, ownerSteamID)
		}
	}
	if assetID != "" {
		link = strings.ReplaceAll(link, "%assetid%", assetID)
	}
	if unresolvedTokenRe.MatchString(link) {
		return nil
	}
	return &link
}
