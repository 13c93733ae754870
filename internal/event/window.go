package event

import (
	"fmt"
	"strings"
	"time"
)

// Window is the month/year a pipeline run targets. Only events dated
// inside the window survive normalization.
type Window struct {
	Month time.Month
	Year  int
}

// ParseWindow validates a month name and year and returns the
// corresponding window. Month names are matched case-insensitively and
// three-letter abbreviations are accepted.
func ParseWindow(monthName string, year int) (Window, error) {
	if year < 1000 || year > 9999 {
		return Window{}, fmt.Errorf("year must be a 4-digit integer, got %d", year)
	}

	name := strings.TrimSpace(monthName)
	if name == "" {
		return Window{}, fmt.Errorf("month name is required")
	}

	for m := time.January; m <= time.December; m++ {
		full := m.String()
		if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
			return Window{Month: m, Year: year}, nil
		}
	}

	return Window{}, fmt.Errorf("invalid month name: %q", monthName)
}

// Contains reports whether a date falls inside the window.
// Zero dates are never inside any window.
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return t.Year() == w.Year && t.Month() == w.Month
}

// String renders the window as "January 2024".
func (w Window) String() string {
	return fmt.Sprintf("%s %d", w.Month, w.Year)
}
