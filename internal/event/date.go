package event

import (
	"strings"
	"time"
)

// dateLayouts is the ladder of date representations accepted from source
// content. Ordered most-specific first so unambiguous layouts win.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January 2006",
	"2 Jan 2006",
	"01/02/2006",
	"1/2/2006",
	"02.01.2006",
}

// ParseDate attempts to parse a raw date string into a time.Time.
// Returns time.Time{} (zero value) if no known representation matches.
func ParseDate(raw string) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}

	return time.Time{}
}
