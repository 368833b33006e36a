package main

import (
	"context"
	"io"

	"github.com/fwojciec/enrich/extract"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Enricher *extract.Enricher

	// Metrics is gathered into EnrichCmd.MetricsFile, if one is given.
	Metrics prometheus.Gatherer
}

// EnrichCmd enriches the search hits of one input document.
type EnrichCmd struct {
	// File is the input path. Empty or "-" reads Dependencies.Stdin.
	File string

	// Output, if set, is replaced atomically with the records.
	Output      string
	MetricsFile string
}
