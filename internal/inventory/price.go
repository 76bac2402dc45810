package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizePrice canonicalizes an operator price annotation: trimmed,
// non-negative, no trailing zeros. Anything that does not parse as a
// non-negative decimal normalizes to nil so garbage is never stored.
func NormalizePrice(value *string) *string {
	if value == nil {
		return nil
	}
	s := strings.TrimSpace(*value)
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return nil
	}
	out := d.String()
	return &out
}

// ParsePriceInput interprets a raw admin form value. Empty input clears the
// price; values may carry a euro sign or a comma decimal separator; invalid
// or negative input keeps the previous price.
func ParsePriceInput(raw string, previous *string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	cleaned := strings.ReplaceAll(raw, ",", ".")
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "€", ""))
	if p := NormalizePrice(&cleaned); p != nil {
		return p
	}
	return previous
}

// noteMaxLen caps operator notes.
const noteMaxLen = 500

// SanitizeNote trims an operator note and caps its length. Notes are never
// nil; absent input sanitizes to the empty string.
func SanitizeNote(note string) string {
	cleaned := strings.TrimSpace(note)
	if runes := []rune(cleaned); len(runes) > noteMaxLen {
		cleaned = strings.TrimRight(string(runes[:noteMaxLen]), " \t\r\n")
	}
	return cleaned
}
