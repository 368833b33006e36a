package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/enrich"
	"github.com/fwojciec/enrich/extract"
	"github.com/fwojciec/enrich/goquery"
	"github.com/fwojciec/enrich/htmltomarkdown"
	enrichhttp "github.com/fwojciec/enrich/http"
	enrichprom "github.com/fwojciec/enrich/prometheus"
	"github.com/fwojciec/enrich/readability"
	enrichslog "github.com/fwojciec/enrich/slog"
	"github.com/fwojciec/enrich/trafilatura"
	"github.com/fwojciec/enrich/yaml"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Stdin is read when no input file is given.
	Stdin io.Reader
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{Stdin: os.Stdin}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("enrich"),
		kong.Description("Enrich search results with page content, favicons and featured images"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg, err := cli.config()
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", enrich.ErrorMessage(err))
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	registry := prometheus.NewRegistry()
	metrics, err := enrichprom.NewMetrics(registry)
	if err != nil {
		return err
	}

	enricher := newEnricher(cfg, logger, metrics)
	defer enricher.Fetcher.Close()

	deps := &Dependencies{
		Ctx:      ctx,
		Stdin:    m.Stdin,
		Stdout:   stdout,
		Stderr:   stderr,
		Enricher: enricher,
		Metrics:  registry,
	}

	cmd := &EnrichCmd{
		File:        cli.File,
		Output:      cli.Output,
		MetricsFile: cli.MetricsFile,
	}

	return cmd.Run(deps)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config      string        `short:"f" help:"YAML configuration file"`
	Concurrency int           `short:"c" help:"Search hits processed at once (default 8)"`
	Timeout     time.Duration `short:"t" help:"Page fetch timeout (default 15s)"`
	Extractor   string        `help:"Content extractor: goquery, trafilatura or readability"`
	Format      string        `help:"Content format: text or markdown"`
	RPS         float64       `name:"rps" help:"Page requests per second per host (0 disables limiting)"`
	Output      string        `short:"o" help:"Write records to this file instead of stdout"`
	MetricsFile string        `name:"metrics-file" help:"Write Prometheus metrics to this file when done"`
	Verbose     bool          `short:"v" help:"Log every record and image probe"`
	File        string        `arg:"" optional:"" help:"JSON file with a search hit or an array of hits (default: stdin)"`
}

// config loads the configuration file, if any, and applies the flags
// that were set.
func (c *CLI) config() (enrich.Config, error) {
	cfg := enrich.DefaultConfig()
	if c.Config != "" {
		var err error
		if cfg, err = yaml.LoadConfig(c.Config); err != nil {
			return enrich.Config{}, err
		}
	}

	if c.Concurrency != 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.Timeout != 0 {
		cfg.FetchTimeout = c.Timeout
	}
	if c.Extractor != "" {
		cfg.Extractor = c.Extractor
	}
	if c.Format != "" {
		cfg.Format = c.Format
	}
	if c.RPS != 0 {
		cfg.RequestsPerSecond = c.RPS
	}

	if err := cfg.Validate(); err != nil {
		return enrich.Config{}, err
	}
	return cfg, nil
}

// newEnricher wires the services selected by cfg. Fetches and probes are
// measured and logged.
func newEnricher(cfg enrich.Config, logger *slog.Logger, metrics *enrichprom.Metrics) *extract.Enricher {
	var fetcher enrich.Fetcher = enrichhttp.NewFetcher(
		enrichhttp.WithTimeout(cfg.FetchTimeout),
		enrichhttp.WithUserAgent(cfg.UserAgent),
	)
	fetcher = enrichprom.NewFetcher(fetcher, metrics)
	fetcher = enrichslog.NewLoggingFetcher(fetcher, logger)

	var validator enrich.ImageValidator = enrichhttp.NewImageValidator(
		enrichhttp.WithTimeout(cfg.ProbeTimeout),
		enrichhttp.WithUserAgent(cfg.UserAgent),
	)
	validator = enrichprom.NewImageValidator(validator, metrics)
	validator = enrichslog.NewLoggingImageValidator(validator, logger)

	e := &extract.Enricher{
		Fetcher:     fetcher,
		Extractor:   enrichslog.NewLoggingExtractor(newExtractor(cfg.Extractor), logger),
		Images:      goquery.NewImageFinder(),
		Validator:   validator,
		Concurrency: cfg.Concurrency,
		RetryDelays: cfg.RetryDelays(),
		Logger:      logger,
		Progress: func(event extract.ProgressEvent) {
			metrics.ObserveRecord(event.Record)
		},
	}
	if cfg.Format == enrich.FormatMarkdown {
		e.Converter = htmltomarkdown.NewConverter()
	}
	if cfg.RequestsPerSecond > 0 {
		e.RateLimiter = extract.NewDomainLimiter(cfg.RequestsPerSecond)
	}
	return e
}

func newExtractor(name string) enrich.Extractor {
	switch name {
	case enrich.ExtractorTrafilatura:
		return trafilatura.NewExtractor()
	case enrich.ExtractorReadability:
		return readability.NewExtractor()
	default:
		return goquery.NewContentSelector()
	}
}
