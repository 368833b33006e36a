package mock

import (
	"context"

	"github.com/fwojciec/enrich"
)

var _ enrich.ImageFinder = (*ImageFinder)(nil)

// ImageFinder is a mock implementation of enrich.ImageFinder.
type ImageFinder struct {
	FindImagesFn func(html, baseURL string) ([]enrich.ImageCandidate, error)
}

func (f *ImageFinder) FindImages(html, baseURL string) ([]enrich.ImageCandidate, error) {
	return f.FindImagesFn(html, baseURL)
}

var _ enrich.ImageValidator = (*ImageValidator)(nil)

// ImageValidator is a mock implementation of enrich.ImageValidator.
type ImageValidator struct {
	ValidateImageFn func(ctx context.Context, url string) bool
}

func (v *ImageValidator) ValidateImage(ctx context.Context, url string) bool {
	return v.ValidateImageFn(ctx, url)
}
