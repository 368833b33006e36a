package mock

import "github.com/fwojciec/enrich"

var _ enrich.Converter = (*Converter)(nil)

// Converter is a mock implementation of enrich.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
