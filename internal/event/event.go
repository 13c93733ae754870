package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
	"time"
	"unicode"
)

// DateLayout is the canonical wire format for event dates.
const DateLayout = "2006-01-02"

// Event represents a single event listing produced by a source adapter.
// After normalization an Event is treated as immutable.
type Event struct {
	Name        string    `json:"name"`
	Date        time.Time `json:"date"` // zero value means unparsed
	DateRaw     string    `json:"-"`    // as-scraped date text, consumed by normalization
	Description string    `json:"description,omitempty"`
	Venue       string    `json:"venue,omitempty"`
	Category    string    `json:"category"`
	URL         string    `json:"url,omitempty"`
	Source      string    `json:"source"`
}

// DateText returns the event date in the canonical YYYY-MM-DD form,
// or the empty string when the date is unset.
func (e Event) DateText() string {
	if e.Date.IsZero() {
		return ""
	}
	return e.Date.Format(DateLayout)
}

// Fingerprint creates a deterministic identity key for an event based on
// its normalized name and date. Two events with equal fingerprints are the
// same real-world event regardless of which source produced them.
func Fingerprint(e Event) string {
	h := sha1.New()
	h.Write([]byte(NormalizeName(e.Name) + "|" + e.DateText()))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// NormalizeName reduces an event name to its identity form: lowercase,
// punctuation stripped, whitespace runs collapsed to single spaces.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastSpace := true // leading whitespace is dropped
	for _, r := range strings.ToLower(name) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace {
				b.WriteRune(' ')
				lastSpace = true
			}
		}
		// punctuation and symbols are dropped entirely
	}

	return strings.TrimRight(b.String(), " ")
}
