package extract

import (
	"context"

	"github.com/fwojciec/enrich"
)

// SelectImage validates candidates in order and returns the first valid
// one. Later candidates are never probed once one passes. It returns nil
// when no candidate validates or ctx is done.
func SelectImage(ctx context.Context, candidates []enrich.ImageCandidate, validator enrich.ImageValidator) *enrich.ImageCandidate {
	for _, c := range candidates {
		if ctx.Err() != nil {
			return nil
		}
		if validator.ValidateImage(ctx, c.URL) {
			return &c
		}
	}
	return nil
}
