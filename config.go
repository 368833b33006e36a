package enrich

import "time"

// Content and URL limits. Lengths are counted in characters.
const (
	// MaxContentLength caps the content field of every record.
	MaxContentLength = 2000

	// MinContentLength is the extracted text length a page must exceed
	// for its record to count as a success.
	MinContentLength = 300

	// MinSelectorText is the text length a content region must exceed
	// to be considered at all.
	MinSelectorText = 100

	// MinImageBytes is the declared size an image must exceed to be accepted.
	MinImageBytes = 2000

	// MaxURLLength bounds normalized URLs.
	MaxURLLength = 1000
)

// DefaultUserAgent identifies the client as a desktop browser.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Extractor names accepted by Config.Extractor.
const (
	ExtractorGoquery     = "goquery"
	ExtractorTrafilatura = "trafilatura"
	ExtractorReadability = "readability"
)

// Content formats accepted by Config.Format.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
)

// Config holds the tunables of the enrichment pipeline.
type Config struct {
	FetchTimeout time.Duration `yaml:"fetch_timeout"`
	ProbeTimeout time.Duration `yaml:"probe_timeout"`

	// MaxAttempts is the total number of page fetch attempts.
	MaxAttempts       int           `yaml:"max_attempts"`
	BackoffMultiplier time.Duration `yaml:"backoff_multiplier"`
	BackoffMin        time.Duration `yaml:"backoff_min"`
	BackoffMax        time.Duration `yaml:"backoff_max"`

	Concurrency int `yaml:"concurrency"`

	// RequestsPerSecond limits page fetches per host. Zero disables limiting.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	UserAgent string `yaml:"user_agent"`
	Extractor string `yaml:"extractor"`
	Format    string `yaml:"format"`
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		FetchTimeout:      15 * time.Second,
		ProbeTimeout:      5 * time.Second,
		MaxAttempts:       3,
		BackoffMultiplier: 1 * time.Second,
		BackoffMin:        2 * time.Second,
		BackoffMax:        10 * time.Second,
		Concurrency:       8,
		UserAgent:         DefaultUserAgent,
		Extractor:         ExtractorGoquery,
		Format:            FormatText,
	}
}

// Validate returns an error if the configuration contains invalid fields.
func (c *Config) Validate() error {
	switch {
	case c.FetchTimeout < 0:
		return Errorf(EINVALID, "fetch timeout must not be negative")
	case c.ProbeTimeout < 0:
		return Errorf(EINVALID, "probe timeout must not be negative")
	case c.MaxAttempts < 1:
		return Errorf(EINVALID, "max attempts must be at least 1, got %d", c.MaxAttempts)
	case c.BackoffMultiplier < 0 || c.BackoffMin < 0 || c.BackoffMax < 0:
		return Errorf(EINVALID, "backoff durations must not be negative")
	case c.BackoffMin > c.BackoffMax:
		return Errorf(EINVALID, "backoff min %s exceeds max %s", c.BackoffMin, c.BackoffMax)
	case c.Concurrency < 0:
		return Errorf(EINVALID, "concurrency must not be negative")
	case c.RequestsPerSecond < 0:
		return Errorf(EINVALID, "requests per second must not be negative")
	}

	switch c.Extractor {
	case ExtractorGoquery, ExtractorTrafilatura, ExtractorReadability:
	default:
		return Errorf(EINVALID, "unknown extractor %q", c.Extractor)
	}

	switch c.Format {
	case FormatText, FormatMarkdown:
	default:
		return Errorf(EINVALID, "unknown format %q", c.Format)
	}

	return nil
}

// RetryDelays returns the wait before each retry of a page fetch. The wait
// before retry n (starting at 1) is BackoffMultiplier * 2^(n-1), clamped to
// [BackoffMin, BackoffMax].
func (c *Config) RetryDelays() []time.Duration {
	if c.MaxAttempts <= 1 {
		return []time.Duration{}
	}
	delays := make([]time.Duration, c.MaxAttempts-1)
	d := c.BackoffMultiplier
	for i := range delays {
		delays[i] = min(max(d, c.BackoffMin), c.BackoffMax)
		if d < c.BackoffMax {
			d *= 2
		}
	}
	return delays
}
