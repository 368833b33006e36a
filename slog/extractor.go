package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/enrich"
)

var _ enrich.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging.
type LoggingExtractor struct {
	next   enrich.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next enrich.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract logs the size of the extracted text.
func (e *LoggingExtractor) Extract(html string) (result *enrich.ExtractResult, err error) {
	defer func(begin time.Time) {
		var chars int
		if result != nil {
			chars = enrich.CharCount(result.Text)
		}
		e.logger.Debug("extract",
			"bytes", len(html),
			"chars", chars,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Extract(html)
}
