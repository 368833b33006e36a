package mock

import "github.com/fwojciec/enrich"

var _ enrich.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of enrich.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*enrich.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*enrich.ExtractResult, error) {
	return e.ExtractFn(html)
}
