package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// CleanText collapses whitespace (including non-breaking spaces) into single
// spaces and trims the ends.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// HTMLToText reduces an HTML fragment to its visible text. Used on embedded
// job descriptions before tag extraction; on parse failure the raw input is
// returned so matching still has something to work with.
func HTMLToText(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return CleanText(html)
	}
	return CleanText(doc.Text())
}
