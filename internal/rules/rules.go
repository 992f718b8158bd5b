// Package rules provides YAML parsing for named filter-rule files.
package rules

import (
	"fmt"
	"io"

	yaml "github.com/goccy/go-yaml"

	matchquery "github.com/PonomareVlad/grammy-match-query"
	"github.com/PonomareVlad/grammy-match-query/internal/extractor"
)

// ErrRules is the sentinel error for all rule-file failures.
// It allows error wrapping and consistent error checks using errors.Is().
var ErrRules = fmt.Errorf("rules error")

// Capture extracts one value from a matching update via JSONPath.
type Capture struct {
	Name string `yaml:"name"` // Key under which the value appears in match records
	Path string `yaml:"path"` // JSONPath expression evaluated against the update
}

// Filter is one named filter: a set of filter queries combined with OR,
// plus optional captures applied to every matching update.
type Filter struct {
	Name     string    `yaml:"name"`
	Queries  []string  `yaml:"queries"`
	Captures []Capture `yaml:"captures,omitempty"`
}

type document struct {
	Filters []Filter `yaml:"filters"`
}

// Parse decodes a YAML rule file and validates every filter: names must be
// unique and non-empty, queries must compile, capture paths must be valid
// JSONPath.
func Parse(r io.Reader) ([]Filter, error) {
	decoder := yaml.NewDecoder(r)

	var doc document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: failed to decode YAML: %v", ErrRules, err)
	}

	if len(doc.Filters) == 0 {
		return nil, fmt.Errorf("%w: no filters defined", ErrRules)
	}

	seen := make(map[string]struct{}, len(doc.Filters))
	for i, filter := range doc.Filters {
		if err := validateFilter(filter); err != nil {
			return nil, fmt.Errorf("%w: filter %d: %w", ErrRules, i, err)
		}
		if _, ok := seen[filter.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate filter name %q", ErrRules, filter.Name)
		}
		seen[filter.Name] = struct{}{}
	}

	return doc.Filters, nil
}

func validateFilter(filter Filter) error {
	if filter.Name == "" {
		return fmt.Errorf("missing name")
	}
	if len(filter.Queries) == 0 {
		return fmt.Errorf("%q: no queries", filter.Name)
	}

	if _, err := matchquery.Compile(filter.Queries...); err != nil {
		return fmt.Errorf("%q: %w", filter.Name, err)
	}

	for _, capture := range filter.Captures {
		if capture.Name == "" {
			return fmt.Errorf("%q: capture with missing name", filter.Name)
		}
		if err := extractor.Validate(capture.Path); err != nil {
			return fmt.Errorf("%q: capture %q: %w", filter.Name, capture.Name, err)
		}
	}

	return nil
}
