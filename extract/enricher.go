// Package extract turns search hits into enriched records. It sequences
// fetching, content extraction and image selection for each hit and
// applies the fallback policy that guarantees one record per hit.
package extract

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/enrich"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of hits processed at once when
// Enricher.Concurrency is not set.
const DefaultConcurrency = 8

// Record error messages.
const (
	MsgInvalidURL       = "Invalid URL"
	MsgSnippetFallback  = "Using Google snippet"
	MsgProcessingFailed = "Processing failed: "
)

// Enricher produces an enrich.Record for each enrich.SearchHit.
// Fetcher and Extractor are required; everything else is optional.
type Enricher struct {
	Fetcher   enrich.Fetcher
	Extractor enrich.Extractor

	// Images and Validator select the record image. Without both, records
	// carry no image.
	Images    enrich.ImageFinder
	Validator enrich.ImageValidator

	// Converter, if set, turns the extracted region into the content field
	// instead of plain text.
	Converter enrich.Converter

	// RateLimiter, if set, is waited on before every page fetch attempt.
	RateLimiter enrich.DomainLimiter

	Concurrency int
	RetryDelays []time.Duration

	Logger   *slog.Logger
	Progress ProgressFunc
}

// ProgressEvent reports a finished record during a batch.
type ProgressEvent struct {
	Completed int
	Total     int
	Record    *enrich.Record
}

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// EnrichAll processes hits concurrently and returns one record per hit in
// input order. Failures are reported on the records, never as errors.
func (e *Enricher) EnrichAll(ctx context.Context, hits []*enrich.SearchHit) []*enrich.Record {
	begin := time.Now()
	runID := uuid.NewString()

	concurrency := e.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	records := make([]*enrich.Record, len(hits))

	var mu sync.Mutex
	var completed int
	counts := make(map[enrich.Status]int)

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, hit := range hits {
		g.Go(func() error {
			rec := e.Enrich(ctx, hit)
			records[i] = rec

			mu.Lock()
			defer mu.Unlock()
			completed++
			counts[rec.Status]++
			if e.Progress != nil {
				e.Progress(ProgressEvent{
					Completed: completed,
					Total:     len(hits),
					Record:    rec,
				})
			}
			return nil
		})
	}
	_ = g.Wait()

	if e.Logger != nil {
		e.Logger.Info("batch",
			"run_id", runID,
			"items", len(hits),
			"success", counts[enrich.StatusSuccess],
			"fallback", counts[enrich.StatusFallback],
			"error", counts[enrich.StatusError],
			"duration", time.Since(begin),
		)
	}

	return records
}

// Enrich runs a single hit through validation, fetching and extraction.
//
// A URL without an http(s) scheme fails immediately. A fetch that yields
// no HTML, or a page whose text does not exceed enrich.MinContentLength,
// falls back to the snippet. A fetch that still fails after retries, or
// HTML that cannot be processed, yields an error record that carries the
// snippet. A panic in any collaborator is reported the same way. Every
// record gets a favicon URL.
func (e *Enricher) Enrich(ctx context.Context, hit *enrich.SearchHit) (rec *enrich.Record) {
	pageURL := strings.TrimSpace(hit.URL)

	rec = &enrich.Record{SearchHit: *hit}
	rec.FaviconURL = enrich.FaviconURL(pageURL)
	snippet := enrich.Truncate(hit.Snippet, enrich.MaxContentLength)

	if e.Logger != nil {
		defer func() {
			e.Logger.Debug("record",
				"url", pageURL,
				"status", rec.Status,
				"source", rec.Source,
			)
		}()
	}

	defer func() {
		if r := recover(); r != nil {
			rec = failed(rec, snippet, fmt.Errorf("panic processing %s: %v", pageURL, r))
		}
	}()

	if !enrich.IsHTTPURL(pageURL) {
		rec.Status = enrich.StatusError
		rec.Source = enrich.SourceInvalidURL
		rec.Error = MsgInvalidURL
		return rec
	}

	html, err := e.fetch(ctx, pageURL)
	if err != nil {
		return failed(rec, snippet, err)
	}
	if html == "" {
		return fallback(rec, snippet)
	}

	page, err := e.extract(ctx, html, pageURL)
	if err != nil {
		return failed(rec, snippet, err)
	}
	if page == nil {
		return fallback(rec, snippet)
	}

	rec.Status = enrich.StatusSuccess
	rec.Source = enrich.SourceExtracted
	rec.Content = page.content
	rec.ContentHash = ContentHash(page.content)
	rec.Image = page.image
	return rec
}

// fallback substitutes the snippet for page content.
func fallback(rec *enrich.Record, snippet string) *enrich.Record {
	rec.Status = enrich.StatusFallback
	rec.Source = enrich.SourceSnippet
	rec.Error = MsgSnippetFallback
	rec.Content = snippet
	return rec
}

// failed substitutes the snippet and records why processing failed.
func failed(rec *enrich.Record, snippet string, err error) *enrich.Record {
	rec.Status = enrich.StatusError
	rec.Source = enrich.SourceErrorFallback
	rec.Error = MsgProcessingFailed + err.Error()
	rec.Content = snippet
	return rec
}

// fetch retrieves the page, waiting on the rate limiter before each attempt.
func (e *Enricher) fetch(ctx context.Context, pageURL string) (string, error) {
	delays := e.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}

	host := hostOf(pageURL)
	fetchFn := func(ctx context.Context, url string) (string, error) {
		if e.RateLimiter != nil {
			if err := e.RateLimiter.Wait(ctx, host); err != nil {
				return "", err
			}
		}
		return e.Fetcher.Fetch(ctx, url)
	}

	var logFn LogFunc
	if e.Logger != nil {
		logFn = func(format string, args ...any) {
			e.Logger.Warn(fmt.Sprintf(format, args...))
		}
	}

	return FetchWithRetryDelays(ctx, pageURL, fetchFn, logFn, delays)
}

// extracted is the usable content of a page.
type extracted struct {
	content string
	image   *enrich.ImageCandidate
}

// extract selects content and image from the page. It returns nil when the
// page text is too short to use.
func (e *Enricher) extract(ctx context.Context, html, pageURL string) (*extracted, error) {
	result, err := e.Extractor.Extract(html)
	if err != nil {
		return nil, err
	}
	if enrich.CharCount(result.Text) <= enrich.MinContentLength {
		return nil, nil
	}

	content := result.Text
	if e.Converter != nil && result.ContentHTML != "" {
		if md, err := e.Converter.Convert(result.ContentHTML); err == nil && strings.TrimSpace(md) != "" {
			content = md
		}
	}

	return &extracted{
		content: enrich.Truncate(content, enrich.MaxContentLength),
		image:   e.selectImage(ctx, html, pageURL),
	}, nil
}

// selectImage returns the first valid image candidate of the page.
// Discovery failures mean no image.
func (e *Enricher) selectImage(ctx context.Context, html, pageURL string) *enrich.ImageCandidate {
	if e.Images == nil || e.Validator == nil {
		return nil
	}
	candidates, err := e.Images.FindImages(html, pageURL)
	if err != nil {
		return nil
	}
	return SelectImage(ctx, candidates, e.Validator)
}

// ContentHash returns the hex xxhash64 of content.
func ContentHash(content string) string {
	return fmt.Sprintf("%x", xxhash.Sum64String(content))
}

// EnrichJSON decodes a single hit object or an array of hits, enriches
// them and encodes the records in the same shape.
func (e *Enricher) EnrichJSON(ctx context.Context, data []byte) ([]byte, error) {
	hits, single, err := enrich.DecodeHits(data)
	if err != nil {
		return nil, err
	}
	records := e.EnrichAll(ctx, hits)
	return enrich.EncodeRecords(records, single)
}
