// Package trafilatura implements enrich.Extractor with go-trafilatura's
// boilerplate removal.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/enrich"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements enrich.Extractor at compile time.
var _ enrich.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract the main text of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Comments
// sections are left out.
func (e *Extractor) Extract(rawHTML string) (*enrich.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, enrich.Errorf(enrich.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &enrich.ExtractResult{
		Title:       result.Metadata.Title,
		Text:        strings.TrimSpace(result.ContentText),
		ContentHTML: contentHTML,
	}, nil
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
