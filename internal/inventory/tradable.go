package inventory

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"cs2showroom/internal/domain"
)

// unlockDateRe matches "<Month> <Day>, <Year> (<H>:<M>[:<S>])" embedded in
// a lock status text, with either abbreviated or full month names.
var unlockDateRe = regexp.MustCompile(`([A-Za-z]+)\s+(\d{1,2}),\s*(\d{4})\s*\((\d{1,2}):(\d{2})(?::(\d{2}))?\)`)

// BuildTradableInfo converts a raw tradability text into its structured
// form. "Yes"/"Tradable" mean fully unlocked; everything else reports a
// locked state, with unlock text and timestamp filled in when a date can be
// parsed out of the text. Parse failures never fail the caller.
func BuildTradableInfo(raw string) domain.TradableInfo {
	info := domain.TradableInfo{Raw: raw}

	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes", "tradable":
		info.IsTradable = true
		info.LockState = domain.LockStateUnlocked
		return info
	}

	info.LockState = domain.LockStateLocked
	if t, ok := parseUnlockTime(raw); ok {
		info.UnlockText = fmt.Sprintf("%d.%d.%d (%d:%02d)", t.Day(), int(t.Month()), t.Year(), t.Hour(), t.Minute())
		info.UnlockISO = t.Format(time.RFC3339)
	}
	return info
}

func parseUnlockTime(raw string) (time.Time, bool) {
	m := unlockDateRe.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}
	for _, layout := range []string{"Jan", "January"} {
		parsed, err := time.Parse(layout, m[1])
		if err != nil {
			continue
		}
		day, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		hour, _ := strconv.Atoi(m[4])
		minute, _ := strconv.Atoi(m[5])
		second := 0
		if m[6] != "" {
			second, _ = strconv.Atoi(m[6])
		}
		return time.Date(year, parsed.Month(), day, hour, minute, second, 0, time.UTC), true
	}
	return time.Time{}, false
}
