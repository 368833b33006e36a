package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/enrich"
)

var _ enrich.ImageValidator = (*LoggingImageValidator)(nil)

// LoggingImageValidator wraps an ImageValidator with debug logging of probes.
type LoggingImageValidator struct {
	next   enrich.ImageValidator
	logger *slog.Logger
}

// NewLoggingImageValidator creates a new LoggingImageValidator.
func NewLoggingImageValidator(next enrich.ImageValidator, logger *slog.Logger) *LoggingImageValidator {
	return &LoggingImageValidator{next: next, logger: logger}
}

func (v *LoggingImageValidator) ValidateImage(ctx context.Context, url string) (valid bool) {
	defer func(begin time.Time) {
		v.logger.Debug("probe",
			"url", url,
			"valid", valid,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return v.next.ValidateImage(ctx, url)
}
