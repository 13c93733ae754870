// Package dedup merges near-duplicate events across sources into one
// canonical entry per fingerprint.
package dedup

import (
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/eventsync/internal/event"
)

// sourcePriority ranks sources for tie-breaking: primary ticketing sources
// before generic listing sites before aggregator sites. Unknown sources
// rank last.
var sourcePriority = map[string]int{
	"ticketmaster": 0,
	"eventbrite":   1,
	"timeout":      2,
	"yelp":         3,
	"tripadvisor":  4,
}

// Priority returns the rank of a source; lower is higher priority.
func Priority(source string) int {
	if p, ok := sourcePriority[strings.ToLower(source)]; ok {
		return p
	}
	return len(sourcePriority)
}

// Deduplicate collapses events sharing a fingerprint into one canonical
// entry. Output order is stable: first-seen fingerprint order from the
// input. When a fingerprint has multiple entries the one with the longest
// non-empty description wins; remaining ties go to the highest-priority
// source. The survivor's Source stays single-valued and is rewritten to
// the highest-priority contributing source, so re-running Deduplicate on
// its own output is a no-op.
func Deduplicate(events []event.Event) []event.Event {
	index := make(map[string]int, len(events))
	out := make([]event.Event, 0, len(events))

	for _, e := range events {
		fp := event.Fingerprint(e)
		i, seen := index[fp]
		if !seen {
			index[fp] = len(out)
			out = append(out, e)
			continue
		}
		prev := out[i]
		merged := merge(prev, e)
		// Source records the best contributing source, not the winner's.
		if Priority(prev.Source) < Priority(merged.Source) {
			merged.Source = prev.Source
		}
		if Priority(e.Source) < Priority(merged.Source) {
			merged.Source = e.Source
		}
		out[i] = merged
	}

	return out
}

// merge picks the surviving entry between two events with equal
// fingerprints.
func merge(a, b event.Event) event.Event {
	al := utf8.RuneCountInString(a.Description)
	bl := utf8.RuneCountInString(b.Description)
	switch {
	case bl > al:
		return b
	case al > bl:
		return a
	case Priority(b.Source) < Priority(a.Source):
		return b
	default:
		return a
	}
}
