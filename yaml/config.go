// Package yaml loads enrich.Config from YAML files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/enrich"
	"gopkg.in/yaml.v3"
)

// LoadConfig reads the YAML file at path on top of enrich.DefaultConfig.
// Keys missing from the file keep their defaults; unknown keys are
// rejected. Durations use Go syntax such as "15s". The result is validated.
func LoadConfig(path string) (enrich.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return enrich.Config{}, fmt.Errorf("read config file %s: %w", path, err)
	}
	return ParseConfig(data)
}

// ParseConfig is like LoadConfig but reads from data.
func ParseConfig(data []byte) (enrich.Config, error) {
	cfg := enrich.DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return enrich.Config{}, enrich.Errorf(enrich.EINVALID, "parse config: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		return enrich.Config{}, err
	}
	return cfg, nil
}
