package enrich

import "context"

// ImageFinder discovers image candidates on a page.
type ImageFinder interface {
	// FindImages returns candidates in precedence order. URLs are already
	// normalized against baseURL; candidates that fail normalization are
	// left out.
	FindImages(html string, baseURL string) ([]ImageCandidate, error)
}

// ImageValidator checks that an image URL points at a real, sizeable image
// without downloading it.
type ImageValidator interface {
	// ValidateImage reports whether url is an acceptable image.
	// Transport failures count as invalid.
	ValidateImage(ctx context.Context, url string) bool
}
