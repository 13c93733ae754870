package fetch

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ReduceLimit caps the amount of text handed to the extraction engine.
const ReduceLimit = 8000

// ReduceHTML strips markup noise from a fetched page and returns the text
// content capped at limit runes. Script, style, and chrome elements are
// removed first so the budget is spent on listing content. If the input is
// not parseable HTML it is passed through as plain text.
func ReduceHTML(raw string, limit int) string {
	if limit <= 0 {
		limit = ReduceLimit
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return truncateRunes(collapseSpace(raw), limit)
	}

	doc.Find("script, style, noscript, svg, iframe, nav, footer, header").Remove()

	text := doc.Find("body").Text()
	if strings.TrimSpace(text) == "" {
		text = doc.Text()
	}

	return truncateRunes(collapseSpace(text), limit)
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncateRunes(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
