package enrich_test

import (
	"testing"
	"time"

	"github.com/fwojciec/enrich"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := enrich.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, 3, cfg.MaxAttempts)
	assert.Equal(t, enrich.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, enrich.ExtractorGoquery, cfg.Extractor)
	assert.Equal(t, enrich.FormatText, cfg.Format)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*enrich.Config)
	}{
		{"negative fetch timeout", func(c *enrich.Config) { c.FetchTimeout = -time.Second }},
		{"negative probe timeout", func(c *enrich.Config) { c.ProbeTimeout = -time.Second }},
		{"zero attempts", func(c *enrich.Config) { c.MaxAttempts = 0 }},
		{"min above max", func(c *enrich.Config) { c.BackoffMin = 20 * time.Second }},
		{"negative concurrency", func(c *enrich.Config) { c.Concurrency = -1 }},
		{"negative rate", func(c *enrich.Config) { c.RequestsPerSecond = -1 }},
		{"unknown extractor", func(c *enrich.Config) { c.Extractor = "lxml" }},
		{"unknown format", func(c *enrich.Config) { c.Format = "pdf" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := enrich.DefaultConfig()
			tt.modify(&cfg)

			err := cfg.Validate()

			assert.Equal(t, enrich.EINVALID, enrich.ErrorCode(err))
		})
	}
}

func TestConfig_RetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("default schedule waits the minimum twice", func(t *testing.T) {
		t.Parallel()

		cfg := enrich.DefaultConfig()

		assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second}, cfg.RetryDelays())
	})

	t.Run("grows exponentially and stops at the maximum", func(t *testing.T) {
		t.Parallel()

		cfg := enrich.DefaultConfig()
		cfg.MaxAttempts = 6

		assert.Equal(t, []time.Duration{
			2 * time.Second,
			2 * time.Second,
			4 * time.Second,
			8 * time.Second,
			10 * time.Second,
		}, cfg.RetryDelays())
	})

	t.Run("a single attempt never retries", func(t *testing.T) {
		t.Parallel()

		cfg := enrich.DefaultConfig()
		cfg.MaxAttempts = 1

		assert.Empty(t, cfg.RetryDelays())
		assert.NotNil(t, cfg.RetryDelays())
	})
}
