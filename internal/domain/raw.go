package domain

import "encoding/json"

// RawPayload is one Steam inventory export after normalization: the owned
// assets, their shared descriptions, and optional per-asset numeric
// properties.
type RawPayload struct {
	Assets          []RawAsset           `json:"assets"`
	Descriptions    []RawDescription     `json:"descriptions"`
	AssetProperties []RawAssetProperties `json:"asset_properties"`
}

// RawAsset is one owned unit or stack, identified by assetid. The
// (classid, instanceid) pair keys the shared description; the assetid is
// unique per physical instance but not stable across API calls.
type RawAsset struct {
	AssetID    string      `json:"assetid"`
	ClassID    string      `json:"classid"`
	InstanceID string      `json:"instanceid"`
	Amount     json.Number `json:"amount"`
}

// DefKey identifies an item definition shared by all assets of one kind.
type DefKey struct {
	ClassID    string
	InstanceID string
}

// DefinitionKey returns the asset's definition key, defaulting a missing
// instanceid to "0" as the Steam payloads do.
func (a *RawAsset) DefinitionKey() DefKey {
	instance := a.InstanceID
	if instance == "" {
		instance = "0"
	}
	return DefKey{ClassID: a.ClassID, InstanceID: instance}
}

// Units returns the stack size, defaulting to 1 when the amount is missing
// or unparseable.
func (a *RawAsset) Units() int {
	n, err := a.Amount.Int64()
	if err != nil || n < 1 {
		return 1
	}
	return int(n)
}

// RawDescription holds the shared metadata for one item definition.
type RawDescription struct {
	ClassID           string      `json:"classid"`
	InstanceID        string      `json:"instanceid"`
	Name              string      `json:"name"`
	IconURL           string      `json:"icon_url"`
	Type              string      `json:"type"`
	NameColor         string      `json:"name_color"`
	Tradable          int         `json:"tradable"`
	Tags              []RawTag    `json:"tags"`
	Descriptions      []RawBlock  `json:"descriptions"`
	OwnerDescriptions []RawBlock  `json:"owner_descriptions"`
	Actions           []RawAction `json:"actions"`
	MarketActions     []RawAction `json:"market_actions"`
}

// Tag returns the first tag with the given category, or nil.
func (d *RawDescription) Tag(category string) *RawTag {
	for i := range d.Tags {
		if d.Tags[i].Category == category {
			return &d.Tags[i]
		}
	}
	return nil
}

// Block returns the first description block with the given name, or nil.
func (d *RawDescription) Block(name string) *RawBlock {
	for i := range d.Descriptions {
		if d.Descriptions[i].Name == name {
			return &d.Descriptions[i]
		}
	}
	return nil
}

// RawTag is one category/name metadata pair on a description.
type RawTag struct {
	Category         string `json:"category"`
	InternalName     string `json:"internal_name"`
	LocalizedTagName string `json:"localized_tag_name"`
	Name             string `json:"name"`
	Color            string `json:"color"`
}

// DisplayName prefers the localized tag name over the internal one.
func (t *RawTag) DisplayName() string {
	if t.LocalizedTagName != "" {
		return t.LocalizedTagName
	}
	return t.Name
}

// RawBlock is one free-form description block; some carry structured
// payloads by convention (exterior_wear, itemset_name, sticker_info).
type RawBlock struct {
	Type  string `json:"type"`
	Name  string `json:"name"`
	Value string `json:"value"`
	Color string `json:"color"`
}

// RawAction is an in-game action template, e.g. an inspect link with
// unresolved placeholders.
type RawAction struct {
	Link string `json:"link"`
	Name string `json:"name"`
}

// RawAssetProperties carries optional per-asset numeric properties keyed by
// assetid (not by definition).
type RawAssetProperties struct {
	AssetID    string        `json:"assetid"`
	Properties []RawProperty `json:"asset_properties"`
}

// RawProperty is one named numeric property of an asset.
type RawProperty struct {
	Name       string       `json:"name"`
	FloatValue *float64     `json:"float_value"`
	IntValue   *json.Number `json:"int_value"`
}
