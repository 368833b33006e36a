package enrich

// ExtractResult holds the content extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title, if any.
	Title string

	// Text is the article text with line boundaries kept as newlines.
	// It is empty when no region of the page held enough text.
	Text string

	// ContentHTML is the article region as HTML.
	ContentHTML string
}

// Extractor picks the article region of an HTML page.
type Extractor interface {
	// Extract parses raw HTML and returns the article content.
	// A page without usable content is not an error; Text is empty.
	Extract(html string) (*ExtractResult, error)
}
