// Package config parses command-line arguments for the tgfilter tool.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PonomareVlad/grammy-match-query/internal/exit"
)

var (
	ErrNoArguments = errors.New("no arguments provided")
	ErrNoFilters   = errors.New("no filters specified, use -query or -rules")
	ErrEmptyQuery  = errors.New("query cannot be empty")
)

// Config represents the complete configuration for the tgfilter tool.
type Config struct {
	// Filter sources
	Queries   []string // Ad-hoc filter queries from -query flags
	RulesFile string   // Optional YAML filter-rule file

	// Input
	InputFiles []string // Update files; empty means stdin

	// Output behaviour
	RateLimit float64 // Match records per second (0 = unlimited)
	CountOnly bool    // Print per-filter totals instead of match records
}

// queriesFlag implements flag.Value for parsing repeated -query flags.
type queriesFlag []string

// String returns a string representation of the queries flag for flag.Value interface.
func (q *queriesFlag) String() string {
	return strings.Join(*q, ",")
}

// Set stores one filter query for flag.Value interface.
func (q *queriesFlag) Set(value string) error {
	if strings.TrimSpace(value) == "" {
		return ErrEmptyQuery
	}
	*q = append(*q, value)
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Errorf("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)

	// Suppress the default usage and error output since we handle both ourselves
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	var (
		queries   queriesFlag
		rulesFile = fs.String("rules", "", "Path to YAML filter-rule file")
		rateLimit = fs.Float64("rate-limit", 0, "Rate limit in match records per second (0 for unlimited)")
		countOnly = fs.Bool("count", false, "Print per-filter match totals instead of match records")
	)

	fs.Var(&queries, "query", "Filter query such as \"message:entities:url\" (can be used multiple times)")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Errorf("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}

	config := &Config{
		Queries:    queries,
		RulesFile:  *rulesFile,
		InputFiles: fs.Args(),
		RateLimit:  *rateLimit,
		CountOnly:  *countOnly,
	}

	if err := config.Validate(); err != nil {
		return nil, exit.Errorf("Error: %v\n\n%s", err, Usage())
	}

	return config, nil
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.Queries) == 0 && c.RulesFile == "" {
		return ErrNoFilters
	}

	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); err != nil {
			return fmt.Errorf("rules file %s not found: %w", c.RulesFile, err)
		}
	}

	for _, file := range c.InputFiles {
		if _, err := os.Stat(file); err != nil {
			return fmt.Errorf("input file %s not found: %w", file, err)
		}
	}

	return nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `tgfilter - filter messaging-platform updates with filter queries

Usage: tgfilter [options] [file1] [file2] ...

Reads a stream of JSON update objects from the given files (or stdin when
no files are given) and prints one JSON match record per filter hit.

Options:
  --query Q        Filter query such as "message:entities:url" (can be used multiple times)
  --rules FILE     Path to YAML filter-rule file with named filters and captures
  --rate-limit N   Rate limit in match records per second (0 for unlimited)
  --count          Print per-filter match totals instead of match records
  -h, --help       Show this help message

Examples:
  tgfilter --query message updates.jsonl        # Updates carrying a message
  tgfilter --query ":media:media_group_id"      # Media albums, reading stdin
  tgfilter --rules filters.yaml updates.jsonl   # Named filters with captures
  tgfilter --query edit --count updates.jsonl   # Count edits only`
}
