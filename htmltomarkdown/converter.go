// Package htmltomarkdown implements enrich.Converter, rendering extracted
// regions as Markdown for the markdown content format.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/enrich"
)

var _ enrich.Converter = (*Converter)(nil)

// mediaSelector matches elements that never reach record content. The
// record carries its selected image separately.
const mediaSelector = "img, picture, svg, video, audio, iframe"

// Converter renders an extracted content region as Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	return &Converter{
		conv: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
	}
}

// Convert renders html as Markdown without media. A region that renders
// to nothing is an error, so callers keep their plain text instead.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", enrich.Errorf(enrich.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", err
	}
	doc.Find(mediaSelector).Remove()
	stripped, err := doc.Html()
	if err != nil {
		return "", err
	}

	md, err := c.conv.ConvertString(stripped)
	if err != nil {
		return "", err
	}
	md = strings.TrimSpace(md)
	if md == "" {
		return "", enrich.Errorf(enrich.ENOTFOUND, "no text in HTML region")
	}
	return md, nil
}
