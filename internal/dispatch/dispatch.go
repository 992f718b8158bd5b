// Package dispatch runs compiled filters over an update stream and emits
// match records.
package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	matchquery "github.com/PonomareVlad/grammy-match-query"
	"github.com/PonomareVlad/grammy-match-query/internal/extractor"
	"github.com/PonomareVlad/grammy-match-query/internal/rules"
)

// Filter is one named, compiled filter with optional captures.
type Filter struct {
	Name      string
	Predicate matchquery.Predicate
	Captures  []rules.Capture
}

// FromQueries compiles ad-hoc queries into filters named query[0], query[1], …
// Each query becomes its own filter so match records identify the query that hit.
func FromQueries(queries []string) ([]Filter, error) {
	filters := make([]Filter, 0, len(queries))
	for i, query := range queries {
		predicate, err := matchquery.Compile(query)
		if err != nil {
			return nil, err
		}
		filters = append(filters, Filter{
			Name:      fmt.Sprintf("query[%d]", i),
			Predicate: predicate,
		})
	}
	return filters, nil
}

// FromRules compiles parsed rule-file filters.
func FromRules(parsed []rules.Filter) ([]Filter, error) {
	filters := make([]Filter, 0, len(parsed))
	for _, filter := range parsed {
		predicate, err := matchquery.Compile(filter.Queries...)
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", filter.Name, err)
		}
		filters = append(filters, Filter{
			Name:      filter.Name,
			Predicate: predicate,
			Captures:  filter.Captures,
		})
	}
	return filters, nil
}

// Stats summarises one dispatch run.
type Stats struct {
	Updates   int            // Updates read from the stream
	Matches   int            // Filter hits across all filters
	PerFilter map[string]int // Hits per filter name
}

// Dispatcher evaluates every update against every filter and writes one
// JSON match record per hit. Record emission is rate limited; evaluation
// is not.
type Dispatcher struct {
	filters     []Filter
	rateLimiter *rate.Limiter
	emitRecords bool
	output      io.Writer
	errOutput   io.Writer
	newID       func() string
}

// New uses 0 or a negative recordsPerSecond for unlimited emission.
func New(filters []Filter, recordsPerSecond float64) *Dispatcher {
	return &Dispatcher{
		filters:     filters,
		rateLimiter: newRateLimiter(recordsPerSecond),
		emitRecords: true,
		output:      os.Stdout,
		errOutput:   os.Stderr,
		newID:       uuid.NewString,
	}
}

func newRateLimiter(recordsPerSecond float64) *rate.Limiter {
	if recordsPerSecond <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}

	return rate.NewLimiter(rate.Limit(recordsPerSecond), 1)
}

func (d *Dispatcher) SetOutput(w io.Writer) {
	d.output = w
}

func (d *Dispatcher) SetErrorOutput(w io.Writer) {
	d.errOutput = w
}

// SetEmitRecords disables record output when counting is all that is wanted.
func (d *Dispatcher) SetEmitRecords(emit bool) {
	d.emitRecords = emit
}

func (d *Dispatcher) payloadWriter() io.Writer {
	if d.output == nil {
		return io.Discard
	}
	return d.output
}

func (d *Dispatcher) errorWriter() io.Writer {
	if d.errOutput == nil {
		return io.Discard
	}
	return d.errOutput
}

func (d *Dispatcher) logf(format string, args ...any) {
	_, _ = fmt.Fprintf(d.errorWriter(), format, args...)
}

// record is one emitted match, a single JSON line on the output writer.
type record struct {
	ID       string            `json:"id"`
	Filter   string            `json:"filter"`
	Captures map[string]any    `json:"captures,omitempty"`
	Update   matchquery.Update `json:"update"`
}

// Run consumes the update sequence until it ends, the context is cancelled,
// or the stream yields an error. Updates are never mutated; a single update
// can produce one record per matching filter.
func (d *Dispatcher) Run(ctx context.Context, updates iter.Seq2[matchquery.Update, error]) (Stats, error) {
	stats := Stats{PerFilter: make(map[string]int, len(d.filters))}
	for _, filter := range d.filters {
		stats.PerFilter[filter.Name] = 0
	}

	for update, err := range updates {
		if err != nil {
			return stats, err
		}

		stats.Updates++
		for _, filter := range d.filters {
			if !filter.Predicate(update) {
				continue
			}

			stats.Matches++
			stats.PerFilter[filter.Name]++

			if !d.emitRecords {
				continue
			}
			if err := d.rateLimiter.Wait(ctx); err != nil {
				return stats, err
			}
			if err := d.writeRecord(filter, update); err != nil {
				return stats, err
			}
		}
	}

	return stats, nil
}

func (d *Dispatcher) writeRecord(filter Filter, update matchquery.Update) error {
	rec := record{
		ID:     d.newID(),
		Filter: filter.Name,
		Update: update,
	}

	for _, capture := range filter.Captures {
		value, err := extractor.JSONPath(update, capture.Path)
		if errors.Is(err, extractor.ErrNotFound) {
			continue
		}
		if err != nil {
			d.logf("capture %s: %v\n", capture.Name, err)
			continue
		}
		if rec.Captures == nil {
			rec.Captures = make(map[string]any, len(filter.Captures))
		}
		rec.Captures[capture.Name] = value
	}

	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode match record: %w", err)
	}

	_, err = fmt.Fprintf(d.payloadWriter(), "%s\n", payload)
	return err
}
