// Package readability implements enrich.Extractor with go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/enrich"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements enrich.Extractor at compile time.
var _ enrich.Extractor = (*Extractor)(nil)

// Extractor wraps go-readability to extract the article of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the article text.
func (e *Extractor) Extract(rawHTML string) (*enrich.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, enrich.Errorf(enrich.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	return &enrich.ExtractResult{
		Title:       article.Title,
		Text:        strings.TrimSpace(article.TextContent),
		ContentHTML: article.Content,
	}, nil
}
