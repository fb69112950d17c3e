// Package snapshot inspects captured page source offline, without further
// round trips to the browser.
package snapshot

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Link is an anchor extracted from a document.
type Link struct {
	Href string
	Text string
}

// Snapshot is a parsed copy of a document's HTML.
type Snapshot struct {
	doc *goquery.Document
}

// Parse builds a snapshot from raw HTML.
func Parse(html string) (*Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Snapshot{doc: doc}, nil
}

// Title returns the document title, trimmed.
func (s *Snapshot) Title() string {
	return strings.TrimSpace(s.doc.Find("title").First().Text())
}

// Links returns the document's anchors in document order, deduplicated by
// href. Anchors without an href are skipped.
func (s *Snapshot) Links() []Link {
	seen := map[string]bool{}
	var out []Link
	s.doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok || href == "" || seen[href] {
			return
		}
		seen[href] = true
		out = append(out, Link{
			Href: href,
			Text: strings.TrimSpace(sel.Text()),
		})
	})
	return out
}

// Meta returns meta tag content keyed by name (or property for OpenGraph
// style tags).
func (s *Snapshot) Meta() map[string]string {
	out := map[string]string{}
	s.doc.Find("meta").Each(func(_ int, sel *goquery.Selection) {
		key, ok := sel.Attr("name")
		if !ok {
			key, ok = sel.Attr("property")
		}
		if !ok || key == "" {
			return
		}
		if content, ok := sel.Attr("content"); ok {
			out[key] = content
		}
	})
	return out
}

// Texts returns the trimmed text of every node matching the CSS selector.
func (s *Snapshot) Texts(selector string) []string {
	var out []string
	s.doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, strings.TrimSpace(sel.Text()))
	})
	return out
}
