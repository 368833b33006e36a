package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/enrich"
)

var _ enrich.ImageFinder = (*ImageFinder)(nil)

// FeaturedImageAlt is the alt text given to images declared in page metadata.
const FeaturedImageAlt = "Featured image"

// MetaImageProperties are the meta tag properties that declare a page image,
// in precedence order.
var MetaImageProperties = []string{"og:image", "twitter:image", "image_src"}

// DecorativeImageHints mark inline images that are presumed not to belong
// to the article. They are matched case-insensitively against the raw src.
var DecorativeImageHints = []string{
	"sprite", "spacer", "blank", "tracker", "logo", "icon", "ads", ".svg", ".gif",
}

// ImageFinder discovers image candidates from page metadata and markup.
type ImageFinder struct{}

// NewImageFinder creates a new ImageFinder.
func NewImageFinder() *ImageFinder {
	return &ImageFinder{}
}

// FindImages returns image candidates in precedence order: meta tags, then
// link rel=image_src, every img, the first source of each picture and the
// first img of each figure. Noise elements are removed before scanning.
// A URL is reported once, with the source it was first found under.
func (f *ImageFinder) FindImages(rawHTML string, baseURL string) ([]enrich.ImageCandidate, error) {
	doc, err := parse(rawHTML)
	if err != nil {
		return nil, err
	}

	var c candidates
	c.baseURL = baseURL

	for _, prop := range MetaImageProperties {
		for _, attr := range []string{"property", "name"} {
			doc.Find(fmt.Sprintf("meta[%s=%q]", attr, prop)).Each(func(_ int, sel *goquery.Selection) {
				c.add(sel.AttrOr("content", ""), FeaturedImageAlt, enrich.ImageSourceMeta)
			})
		}
	}

	doc.Find(`link[rel~="image_src"]`).Each(func(_ int, sel *goquery.Selection) {
		c.add(sel.AttrOr("href", ""), FeaturedImageAlt, enrich.ImageSourceLink)
	})

	doc.Find("img[src]").Each(func(_ int, sel *goquery.Selection) {
		src := sel.AttrOr("src", "")
		if isDecorative(src) {
			return
		}
		c.add(src, altText(sel), enrich.ImageSourceContent)
	})

	doc.Find("picture").Each(func(_ int, pic *goquery.Selection) {
		source := pic.Find("source[srcset]").First()
		if source.Length() == 0 {
			return
		}
		c.add(firstSrcsetURL(source.AttrOr("srcset", "")), "", enrich.ImageSourcePicture)
	})

	doc.Find("figure").Each(func(_ int, fig *goquery.Selection) {
		img := fig.Find("img[src]").First()
		if img.Length() == 0 {
			return
		}
		c.add(img.AttrOr("src", ""), altText(img), enrich.ImageSourceFigure)
	})

	return c.list, nil
}

// candidates accumulates normalized, deduplicated image candidates.
type candidates struct {
	baseURL string
	seen    map[string]bool
	list    []enrich.ImageCandidate
}

func (c *candidates) add(raw, alt string, source enrich.ImageSource) {
	u, ok := enrich.NormalizeURL(raw, c.baseURL)
	if !ok {
		return
	}
	if c.seen == nil {
		c.seen = make(map[string]bool)
	}
	if c.seen[u] {
		return
	}
	c.seen[u] = true
	c.list = append(c.list, enrich.ImageCandidate{URL: u, Alt: alt, Source: source})
}

// isDecorative reports whether src carries one of DecorativeImageHints.
func isDecorative(src string) bool {
	lower := strings.ToLower(src)
	for _, hint := range DecorativeImageHints {
		if strings.Contains(lower, hint) {
			return true
		}
	}
	return false
}

func altText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.AttrOr("alt", ""))
}

// firstSrcsetURL returns the URL of the first srcset entry, without its
// width or density descriptor.
func firstSrcsetURL(srcset string) string {
	first, _, _ := strings.Cut(srcset, ",")
	fields := strings.Fields(first)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
