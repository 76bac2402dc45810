package inventory_test

import (
	"testing"

	"cs2showroom/internal/inventory"
)

func TestResolveInspectLink(t *testing.T) {
	tmpl := "steam://rungame/730/preview%20S%owner_steamid%A%assetid%D123"
	got := inventory.ResolveInspectLink(tmpl, "76561198000000000", "42")
	want := "steam://rungame/730/preview%20S76561198000000000A42D123"
	if got == nil || *got != want {
		t.Fatalf("want %q, got %v", want, got)
	}
}

func TestResolveInspectLinkDropsUnresolved(t *testing.T) {
	// %listingid% has no substitution; a half-resolved link is useless
	tmpl := "steam://rungame/730/preview%20M%listingid%A%assetid%D123"
	if got := inventory.ResolveInspectLink(tmpl, "76561198000000000", "42"); got != nil {
		t.Fatalf("want nil for unresolved token, got %q", *got)
	}
	if got := inventory.ResolveInspectLink("steam://x%owner_steamid%", "", "42"); got != nil {
		t.Fatalf("want nil when owner id is unknown, got %q", *got)
	}
}

func TestResolveInspectLinkEmptyTemplate(t *testing.T) {
	if got := inventory.ResolveInspectLink("", "owner", "42"); got != nil {
		t.Fatalf("want nil for empty template, got %q", *got)
	}
}
