package inventory

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"cs2showroom/internal/domain"
)

// ParseError reports a malformed or incomplete manual payload. Parsing
// failures never touch persisted state.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "invalid inventory payload: " + e.Reason }

func parseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Reason: fmt.Sprintf(format, args...)}
}

// ParsePayloads decodes one or more JSON inventory exports pasted
// back-to-back with only whitespace between them (an operator may combine
// the main and trade-protected inventory pages) and merges them into a
// single normalized payload. Assets are de-duplicated by assetid, first
// occurrence wins, so overlapping exports are not double-counted;
// descriptions and asset properties are concatenated.
func ParsePayloads(raw string) (*domain.RawPayload, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, parseErrorf("payload is empty")
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	var objects []map[string]json.RawMessage
	for {
		var obj map[string]json.RawMessage
		if err := dec.Decode(&obj); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			if len(objects) == 0 {
				return nil, parseErrorf("could not parse data: %v", err)
			}
			// Already recovered at least one object; ignore the tail.
			break
		}
		objects = append(objects, obj)
	}
	if len(objects) == 0 {
		return nil, parseErrorf("could not parse data")
	}

	merged := &domain.RawPayload{}
	seen := make(map[string]bool)
	for _, obj := range objects {
		assetsRaw, hasAssets := obj["assets"]
		descRaw, hasDescs := obj["descriptions"]
		if !hasAssets || !hasDescs {
			return nil, parseErrorf("each payload must include 'assets' and 'descriptions'")
		}

		var assets []domain.RawAsset
		if err := json.Unmarshal(assetsRaw, &assets); err != nil {
			return nil, parseErrorf("malformed assets: %v", err)
		}
		descs, err := normalizeDescriptions(descRaw)
		if err != nil {
			return nil, err
		}

		for _, a := range assets {
			if seen[a.AssetID] {
				continue
			}
			seen[a.AssetID] = true
			merged.Assets = append(merged.Assets, a)
		}
		merged.Descriptions = append(merged.Descriptions, descs...)

		if propsRaw, ok := obj["asset_properties"]; ok {
			var props []domain.RawAssetProperties
			if err := json.Unmarshal(propsRaw, &props); err == nil {
				merged.AssetProperties = append(merged.AssetProperties, props...)
			}
		}
	}
	return merged, nil
}

// normalizeDescriptions flattens the shapes Steam exports use for the
// descriptions field: a plain list, a wrapper object with a nested
// "descriptions" list, or a key -> description mapping.
func normalizeDescriptions(raw json.RawMessage) ([]domain.RawDescription, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var list []domain.RawDescription
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, parseErrorf("malformed descriptions: %v", err)
		}
		return list, nil
	}

	var wrapper struct {
		Descriptions json.RawMessage `json:"descriptions"`
	}
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return nil, parseErrorf("malformed descriptions: %v", err)
	}
	if len(wrapper.Descriptions) > 0 {
		return normalizeDescriptions(wrapper.Descriptions)
	}

	var byKey map[string]domain.RawDescription
	if err := json.Unmarshal(trimmed, &byKey); err != nil {
		return nil, parseErrorf("malformed descriptions: %v", err)
	}
	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	list := make([]domain.RawDescription, 0, len(keys))
	for _, k := range keys {
		list = append(list, byKey[k])
	}
	return list, nil
}
