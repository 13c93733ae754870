package normalizer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/eventsync/internal/event"
)

func january2024() event.Window {
	return event.Window{Month: time.January, Year: 2024}
}

func TestNormalizeAcceptsValidEvent(t *testing.T) {
	n := New(january2024())

	e, err := n.Normalize(event.Event{
		Name:        "  Jazz   Night ",
		DateRaw:     "January 15, 2024",
		Description: "An  evening of live jazz.",
		Venue:       " Blue Note ",
		Category:    "concert",
		URL:         " https://example.com/jazz ",
		Source:      "Eventbrite",
	})
	if err != nil {
		t.Fatalf("Normalize returned unexpected error: %v", err)
	}

	if e.Name != "Jazz Night" {
		t.Errorf("name = %q, want %q", e.Name, "Jazz Night")
	}
	if e.DateText() != "2024-01-15" {
		t.Errorf("date = %q, want %q", e.DateText(), "2024-01-15")
	}
	if e.Description != "An evening of live jazz." {
		t.Errorf("description = %q, want collapsed whitespace", e.Description)
	}
	if e.Venue != "Blue Note" {
		t.Errorf("venue = %q, want %q", e.Venue, "Blue Note")
	}
	if e.Category != event.CategoryMusic {
		t.Errorf("category = %q, want %q", e.Category, event.CategoryMusic)
	}
	if e.URL != "https://example.com/jazz" {
		t.Errorf("url = %q, want trimmed", e.URL)
	}
	if e.DateRaw != "" {
		t.Errorf("raw date should be cleared after normalization, got %q", e.DateRaw)
	}
}

func TestNormalizeRejections(t *testing.T) {
	tests := []struct {
		name   string
		input  event.Event
		reason Reason
	}{
		{
			name:   "empty name",
			input:  event.Event{Name: "   ", DateRaw: "2024-01-15"},
			reason: ReasonEmptyName,
		},
		{
			name:   "missing date",
			input:  event.Event{Name: "Jazz Night"},
			reason: ReasonBadDate,
		},
		{
			name:   "unparseable date",
			input:  event.Event{Name: "Jazz Night", DateRaw: "sometime soon"},
			reason: ReasonBadDate,
		},
		{
			name:   "wrong month",
			input:  event.Event{Name: "Jazz Night", DateRaw: "2024-02-15"},
			reason: ReasonOutOfWindow,
		},
		{
			name:   "wrong year",
			input:  event.Event{Name: "Jazz Night", DateRaw: "2023-01-15"},
			reason: ReasonOutOfWindow,
		},
	}

	n := New(january2024())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(tt.input)
			if err == nil {
				t.Fatal("Normalize should have rejected the event")
			}
			var v *ValidationError
			if !errors.As(err, &v) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if v.Reason != tt.reason {
				t.Errorf("reason = %q, want %q", v.Reason, tt.reason)
			}
		})
	}
}

func TestNormalizeKeepsPreparsedDate(t *testing.T) {
	n := New(january2024())

	date := time.Date(2024, time.January, 20, 0, 0, 0, 0, time.UTC)
	e, err := n.Normalize(event.Event{Name: "Winter Market", Date: date})
	if err != nil {
		t.Fatalf("Normalize returned unexpected error: %v", err)
	}
	if !e.Date.Equal(date) {
		t.Errorf("pre-parsed date should be kept, got %v", e.Date)
	}
}

func TestNormalizeTruncatesDescription(t *testing.T) {
	n := New(january2024())

	long := strings.Repeat("wordy ", 100) // 600 runes
	e, err := n.Normalize(event.Event{Name: "Jazz Night", DateRaw: "2024-01-15", Description: long})
	if err != nil {
		t.Fatalf("Normalize returned unexpected error: %v", err)
	}

	if len([]rune(e.Description)) > DescriptionLimit {
		t.Errorf("description length %d exceeds limit %d", len([]rune(e.Description)), DescriptionLimit)
	}
	if strings.HasSuffix(e.Description, " ") {
		t.Error("truncated description should not end in whitespace")
	}
	if !strings.HasSuffix(e.Description, "wordy") {
		t.Errorf("truncation should land on a word boundary, got %q", e.Description[len(e.Description)-10:])
	}
}

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		limit    int
		expected string
	}{
		{
			name:     "under limit unchanged",
			input:    "short text",
			limit:    255,
			expected: "short text",
		},
		{
			name:     "cuts on word boundary",
			input:    "alpha beta gamma",
			limit:    12,
			expected: "alpha beta",
		},
		{
			name:     "exact fit",
			input:    "alpha beta",
			limit:    10,
			expected: "alpha beta",
		},
		{
			name:     "single long token hard cut",
			input:    "abcdefghijklmnop",
			limit:    5,
			expected: "abcde",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := TruncateWords(tt.input, tt.limit)
			if result != tt.expected {
				t.Errorf("TruncateWords(%q, %d) = %q, want %q", tt.input, tt.limit, result, tt.expected)
			}
		})
	}
}

func TestCleanText(t *testing.T) {
	if got := CleanText("  a \t b\n\nc "); got != "a b c" {
		t.Errorf("CleanText = %q, want %q", got, "a b c")
	}
}
