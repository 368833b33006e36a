package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/enrich"
	"golang.org/x/net/html"
)

// noiseSelector matches elements that never hold article content.
const noiseSelector = "script, style, nav, footer, iframe, noscript"

// parse builds a document from raw HTML with noise elements removed.
func parse(rawHTML string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, enrich.Errorf(enrich.EINVALID, "failed to parse HTML: %v", err)
	}
	doc.Find(noiseSelector).Remove()
	return doc, nil
}

// textParts returns the non-empty, whitespace-trimmed text nodes below n
// in document order.
func textParts(n *html.Node) []string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				parts = append(parts, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return parts
}

// charCount returns the combined character count of parts.
func charCount(parts []string) int {
	var n int
	for _, p := range parts {
		n += enrich.CharCount(p)
	}
	return n
}
