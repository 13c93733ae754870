// Package extract turns unstructured page content into candidate event
// records via a language-model extraction engine.
//
// The engine's output is treated as untrusted input: ParseCandidates
// validates shape defensively and degrades to zero candidates on any
// mismatch, so a misbehaving model can never fault the pipeline.
package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pfrederiksen/eventsync/internal/event"
)

// Query carries the run context the engine extracts against.
type Query struct {
	Location string
	Window   event.Window
}

// Candidate is one untyped event record as produced by the engine.
type Candidate struct {
	Name        string `json:"name"`
	Date        string `json:"date"`
	Description string `json:"description"`
	Venue       string `json:"venue"`
	Category    string `json:"category"`
	URL         string `json:"url"`
}

// ExtractionError reports a failed extraction call. Adapters absorb
// these; they never abort a run.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting candidates for %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Engine extracts candidate event records from reduced page content.
// Implementations return the raw structured output; callers parse it with
// ParseCandidates.
type Engine interface {
	Extract(ctx context.Context, content string, q Query) (string, error)
}

// payload is the wrapper shape the engine is asked to produce.
type payload struct {
	Events []Candidate `json:"events"`
}

// ParseCandidates parses engine output into candidate records. It accepts
// either a bare JSON array or an {"events": [...]} wrapper, strips
// markdown fences some models add, and skips entries missing a name.
// Malformed input yields an empty slice, never an error.
func ParseCandidates(raw string) []Candidate {
	cleaned := stripFences(raw)
	if cleaned == "" {
		return nil
	}

	var entries []Candidate
	if err := json.Unmarshal([]byte(cleaned), &entries); err != nil {
		var wrapped payload
		if err := json.Unmarshal([]byte(cleaned), &wrapped); err != nil {
			return nil
		}
		entries = wrapped.Events
	}

	out := make([]Candidate, 0, len(entries))
	for _, c := range entries {
		if strings.TrimSpace(c.Name) == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// stripFences removes a leading ```json / ``` fence and trailing fence,
// then trims to the outermost JSON value. Some models wrap structured
// responses in markdown despite being asked not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)

	if after, ok := strings.CutPrefix(s, "```json"); ok {
		s = after
	} else if after, ok := strings.CutPrefix(s, "```"); ok {
		s = after
	}
	if before, ok := strings.CutSuffix(strings.TrimSpace(s), "```"); ok {
		s = before
	}
	s = strings.TrimSpace(s)

	// Trim any prose surrounding the outermost JSON value.
	start := strings.IndexAny(s, "[{")
	if start == -1 {
		return ""
	}
	var end int
	if s[start] == '[' {
		end = strings.LastIndex(s, "]")
	} else {
		end = strings.LastIndex(s, "}")
	}
	if end <= start {
		return ""
	}
	return s[start : end+1]
}
