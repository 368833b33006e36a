package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/enrich"
)

var _ enrich.Extractor = (*ContentSelector)(nil)

// TopWeight is the weight at which the search for a content region stops.
const TopWeight = 3

// WeightedSelector is a CSS selector for a candidate content region.
type WeightedSelector struct {
	Selector string
	Weight   int
}

// DefaultSelectors lists the content regions in evaluation order.
// body is the fallback for pages without structural markup.
var DefaultSelectors = []WeightedSelector{
	{Selector: "article", Weight: 3},
	{Selector: "main", Weight: 3},
	{Selector: `[role="main"]`, Weight: 2},
	{Selector: ".article-body", Weight: 2},
	{Selector: ".post-content", Weight: 2},
	{Selector: "#content", Weight: 1},
	{Selector: "body", Weight: 0},
}

// ContentSelector picks the article region of a page by trying weighted
// selectors in order. A region qualifies when its text is longer than
// enrich.MinSelectorText; a qualifying region replaces the current pick
// only if its weight is strictly higher. The first qualifying region with
// TopWeight ends the search.
type ContentSelector struct {
	selectors []WeightedSelector
}

// NewContentSelector creates a ContentSelector. With no selectors it uses
// DefaultSelectors.
func NewContentSelector(selectors ...WeightedSelector) *ContentSelector {
	if len(selectors) == 0 {
		selectors = DefaultSelectors
	}
	return &ContentSelector{selectors: selectors}
}

// Extract parses raw HTML and returns the text of the best region.
// Text is empty when no region qualifies.
func (s *ContentSelector) Extract(rawHTML string) (*enrich.ExtractResult, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}

	result := &enrich.ExtractResult{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	var best *goquery.Selection
	var bestParts []string
	bestWeight := -1
	for _, ws := range s.selectors {
		node := doc.Find(ws.Selector).First()
		if node.Length() == 0 {
			continue
		}
		parts := textParts(node.Get(0))
		if charCount(parts) <= enrich.MinSelectorText || ws.Weight <= bestWeight {
			continue
		}
		best, bestParts, bestWeight = node, parts, ws.Weight
		if ws.Weight >= TopWeight {
			break
		}
	}

	if best == nil {
		return result, nil
	}

	result.Text = strings.Join(bestParts, "\n")
	result.ContentHTML, err = goquery.OuterHtml(best)
	if err != nil {
		return nil, err
	}
	return result, nil
}
