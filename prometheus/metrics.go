// Package prometheus exports enrichment metrics with the Prometheus client.
package prometheus

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/fwojciec/enrich"
	"github.com/prometheus/client_golang/prometheus"
)

// Fetch results used as the result label of enrich_fetch_requests_total.
const (
	FetchOK      = "ok"
	FetchNotHTML = "not_html"
	FetchError   = "error"
)

// Metrics owns the enrichment collectors.
type Metrics struct {
	records       *prometheus.CounterVec
	fetchRequests *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	imageProbes   *prometheus.CounterVec
}

// NewMetrics registers the collectors against reg. A nil reg uses the
// default registerer.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		records: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "enrich_records_total",
			Help: "Records produced, partitioned by status and content source.",
		}, []string{"status", "source"}),
		fetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "enrich_fetch_requests_total",
			Help: "Page fetch attempts partitioned by result.",
		}, []string{"result"}),
		fetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "enrich_fetch_duration_seconds",
			Help:    "Duration of page fetch attempts.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 15},
		}),
		imageProbes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "enrich_image_probes_total",
			Help: "Image probes partitioned by outcome.",
		}, []string{"valid"}),
	}
	for _, collector := range []prometheus.Collector{
		m.records,
		m.fetchRequests,
		m.fetchDuration,
		m.imageProbes,
	} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("register enrich collector: %w", err)
		}
	}
	return m, nil
}

// ObserveRecord counts a finished record.
func (m *Metrics) ObserveRecord(rec *enrich.Record) {
	m.records.WithLabelValues(string(rec.Status), string(rec.Source)).Inc()
}

func (m *Metrics) observeFetch(result string, d time.Duration) {
	m.fetchRequests.WithLabelValues(result).Inc()
	m.fetchDuration.Observe(d.Seconds())
}

var _ enrich.Fetcher = (*Fetcher)(nil)

// Fetcher counts and times the attempts of the wrapped fetcher.
type Fetcher struct {
	next    enrich.Fetcher
	metrics *Metrics
}

// NewFetcher creates a new Fetcher.
func NewFetcher(next enrich.Fetcher, metrics *Metrics) *Fetcher {
	return &Fetcher{next: next, metrics: metrics}
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		result := FetchOK
		switch {
		case err != nil:
			result = FetchError
		case html == "":
			result = FetchNotHTML
		}
		f.metrics.observeFetch(result, time.Since(begin))
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *Fetcher) Close() error {
	return f.next.Close()
}

var _ enrich.ImageValidator = (*ImageValidator)(nil)

// ImageValidator counts the probes of the wrapped validator.
type ImageValidator struct {
	next    enrich.ImageValidator
	metrics *Metrics
}

// NewImageValidator creates a new ImageValidator.
func NewImageValidator(next enrich.ImageValidator, metrics *Metrics) *ImageValidator {
	return &ImageValidator{next: next, metrics: metrics}
}

func (v *ImageValidator) ValidateImage(ctx context.Context, url string) bool {
	valid := v.next.ValidateImage(ctx, url)
	v.metrics.imageProbes.WithLabelValues(strconv.FormatBool(valid)).Inc()
	return valid
}

// WriteTextfile writes every metric gathered by g to path in the text
// exposition format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("write metrics %s: %w", path, err)
	}
	return nil
}
