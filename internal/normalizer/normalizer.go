// Package normalizer canonicalizes candidate events and enforces the
// month/year window requested for a pipeline run.
package normalizer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pfrederiksen/eventsync/internal/event"
)

// DescriptionLimit bounds description length before external persistence.
const DescriptionLimit = 255

// Reason identifies why a candidate event was rejected.
type Reason string

const (
	ReasonEmptyName   Reason = "empty-name"
	ReasonBadDate     Reason = "bad-date"
	ReasonOutOfWindow Reason = "out-of-window"
)

// ValidationError reports a rejected candidate event. Rejections are
// counted by the pipeline, never retried.
type ValidationError struct {
	Reason Reason
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("event rejected: %s", e.Reason)
}

// Normalizer canonicalizes individual events against a target window.
type Normalizer struct {
	window event.Window
}

// New creates a Normalizer for the given month/year window.
func New(window event.Window) *Normalizer {
	return &Normalizer{window: window}
}

// Normalize cleans an event's text fields, parses and validates its date,
// and maps its category onto the fixed taxonomy. It returns a
// *ValidationError when the event must be dropped: empty name, unparseable
// date, or a date outside the requested window.
func (n *Normalizer) Normalize(e event.Event) (event.Event, error) {
	e.Name = CleanText(e.Name)
	if e.Name == "" {
		return event.Event{}, &ValidationError{Reason: ReasonEmptyName}
	}

	// An adapter may hand over an already-parsed date; otherwise the
	// as-scraped text is tried against the known representations.
	if e.Date.IsZero() {
		e.Date = event.ParseDate(e.DateRaw)
	}
	e.DateRaw = ""
	if e.Date.IsZero() {
		return event.Event{}, &ValidationError{Reason: ReasonBadDate}
	}
	if !n.window.Contains(e.Date) {
		return event.Event{}, &ValidationError{Reason: ReasonOutOfWindow}
	}

	e.Description = TruncateWords(CleanText(e.Description), DescriptionLimit)
	e.Venue = CleanText(e.Venue)
	e.Category = event.MapCategory(e.Category)
	e.URL = strings.TrimSpace(e.URL)

	return e, nil
}

// CleanText trims leading/trailing whitespace and collapses internal
// whitespace runs to single spaces.
func CleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// TruncateWords shortens s to at most limit runes, cutting on the last
// word boundary at or before the limit. When the first word alone exceeds
// the limit the cut is hard.
func TruncateWords(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}

	runes := []rune(s)
	cut := limit
	for i := limit; i > 0; i-- {
		if runes[i] == ' ' {
			cut = i
			break
		}
	}

	return strings.TrimRight(string(runes[:cut]), " ")
}
