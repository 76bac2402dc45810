package inventory_test

import (
	"errors"
	"strings"
	"testing"

	"cs2showroom/internal/inventory"
)

const mainBlob = `{
  "assets": [
    {"assetid": "101", "classid": "c1", "instanceid": "0", "amount": "1"},
    {"assetid": "102", "classid": "c2", "instanceid": "7", "amount": "2"}
  ],
  "descriptions": [
    {"classid": "c1", "instanceid": "0", "name": "AK-47 | Redline", "tradable": 1},
    {"classid": "c2", "instanceid": "7", "name": "Sticker | Crown", "tradable": 1}
  ]
}`

const protectedBlob = `{
  "assets": [
    {"assetid": "101", "classid": "c1", "instanceid": "0", "amount": "1"},
    {"assetid": "201", "classid": "c3", "amount": "1"}
  ],
  "descriptions": [
    {"classid": "c3", "name": "AWP | Asiimov", "tradable": 1}
  ]
}`

func TestParsePayloadsSingle(t *testing.T) {
	p, err := inventory.ParsePayloads(mainBlob)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Assets) != 2 {
		t.Fatalf("want 2 assets, got %d", len(p.Assets))
	}
	if len(p.Descriptions) != 2 {
		t.Fatalf("want 2 descriptions, got %d", len(p.Descriptions))
	}
}

func TestParsePayloadsConcatenatedDedupes(t *testing.T) {
	p, err := inventory.ParsePayloads(protectedBlob + "\n" + mainBlob)
	if err != nil {
		t.Fatal(err)
	}
	// asset 101 appears in both blobs; first occurrence wins
	if len(p.Assets) != 3 {
		t.Fatalf("want 3 assets after dedupe, got %d", len(p.Assets))
	}
	seen := map[string]int{}
	for _, a := range p.Assets {
		seen[a.AssetID]++
	}
	if seen["101"] != 1 {
		t.Fatalf("asset 101 duplicated: %v", seen)
	}
	if len(p.Descriptions) != 3 {
		t.Fatalf("want 3 descriptions concatenated, got %d", len(p.Descriptions))
	}
}

func TestParsePayloadsDescriptionsAsMap(t *testing.T) {
	blob := `{
	  "assets": [{"assetid": "1", "classid": "c1", "amount": "1"}],
	  "descriptions": {
	    "c1_0": {"classid": "c1", "name": "B item", "tradable": 1},
	    "a9_0": {"classid": "c9", "name": "A item", "tradable": 1}
	  }
	}`
	p, err := inventory.ParsePayloads(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Descriptions) != 2 {
		t.Fatalf("want 2 descriptions, got %d", len(p.Descriptions))
	}
	// map keys are sorted for deterministic order
	if p.Descriptions[0].Name != "A item" {
		t.Fatalf("want sorted key order, got %q first", p.Descriptions[0].Name)
	}
}

func TestParsePayloadsDescriptionsWrapped(t *testing.T) {
	blob := `{
	  "assets": [{"assetid": "1", "classid": "c1", "amount": "1"}],
	  "descriptions": {"descriptions": [{"classid": "c1", "name": "Wrapped", "tradable": 1}]}
	}`
	p, err := inventory.ParsePayloads(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.Descriptions) != 1 || p.Descriptions[0].Name != "Wrapped" {
		t.Fatalf("wrapper form not flattened: %+v", p.Descriptions)
	}
}

func TestParsePayloadsRejectsBadInput(t *testing.T) {
	for _, raw := range []string{
		"",
		"   \n ",
		"not json at all",
		`{"assets": []}`,
		`{"descriptions": []}`,
	} {
		if _, err := inventory.ParsePayloads(raw); err == nil {
			t.Fatalf("want error for %q", raw)
		} else {
			var perr *inventory.ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("want ParseError for %q, got %T", raw, err)
			}
			if !strings.HasPrefix(perr.Error(), "invalid inventory payload:") {
				t.Fatalf("unexpected message: %s", perr.Error())
			}
		}
	}
}

func TestParsePayloadsIgnoresTrailingGarbage(t *testing.T) {
	p, err := inventory.ParsePayloads(mainBlob + "\ntrailing garbage")
	if err != nil {
		t.Fatalf("recovered objects should win over a bad tail: %v", err)
	}
	if len(p.Assets) != 2 {
		t.Fatalf("want 2 assets, got %d", len(p.Assets))
	}
}

func TestParsePayloadsAssetProperties(t *testing.T) {
	blob := `{
	  "assets": [{"assetid": "1", "classid": "c1", "amount": "1"}],
	  "descriptions": [{"classid": "c1", "name": "AK-47 | Slate", "tradable": 1}],
	  "asset_properties": [
	    {"assetid": "1", "asset_properties": [{"name": "Wear Rating", "float_value": 0.123}]}
	  ]
	}`
	p, err := inventory.ParsePayloads(blob)
	if err != nil {
		t.Fatal(err)
	}
	if len(p.AssetProperties) != 1 || p.AssetProperties[0].AssetID != "1" {
		t.Fatalf("asset_properties not carried: %+v", p.AssetProperties)
	}
}
