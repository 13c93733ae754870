package event

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		input string
	}{
		{"2024-01-15"},
		{"2024/01/15"},
		{"January 15, 2024"},
		{"Jan 15, 2024"},
		{"January 15 2024"},
		{"Jan 15 2024"},
		{"15 January 2024"},
		{"15 Jan 2024"},
		{"01/15/2024"},
		{"1/15/2024"},
		{"15.01.2024"},
		{"  2024-01-15  "},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseDate(tt.input)
			if !got.Equal(want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, want)
			}
		})
	}
}

func TestParseDateUnparseable(t *testing.T) {
	tests := []string{
		"",
		"soon",
		"next Friday",
		"2024-13-45",
		"15th of January",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			if got := ParseDate(input); !got.IsZero() {
				t.Errorf("ParseDate(%q) = %v, want zero time", input, got)
			}
		})
	}
}
