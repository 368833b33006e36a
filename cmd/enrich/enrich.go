package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/enrich"
	"github.com/fwojciec/enrich/fs"
	enrichprom "github.com/fwojciec/enrich/prometheus"
)

// Run executes the enrich command.
func (c *EnrichCmd) Run(deps *Dependencies) error {
	input, err := c.readInput(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	output, err := deps.Enricher.EnrichJSON(deps.Ctx, input)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", enrich.ErrorMessage(err))
		return err
	}

	if err := c.writeOutput(deps, output); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %v\n", err)
		return err
	}

	if c.MetricsFile != "" && deps.Metrics != nil {
		if err := enrichprom.WriteTextfile(c.MetricsFile, deps.Metrics); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %v\n", err)
			return err
		}
	}

	return nil
}

func (c *EnrichCmd) readInput(deps *Dependencies) ([]byte, error) {
	if c.File == "" || c.File == "-" {
		if deps.Stdin == nil {
			return nil, enrich.Errorf(enrich.EINVALID, "no input")
		}
		return io.ReadAll(deps.Stdin)
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("read input %s: %w", c.File, err)
	}
	return data, nil
}

func (c *EnrichCmd) writeOutput(deps *Dependencies, output []byte) error {
	output = append(output, '\n')
	if c.Output == "" {
		_, err := deps.Stdout.Write(output)
		return err
	}
	if err := fs.WriteFile(c.Output, output); err != nil {
		return fmt.Errorf("write output %s: %w", c.Output, err)
	}
	return nil
}
