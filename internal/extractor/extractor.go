// Package extractor evaluates JSONPath capture expressions against decoded
// update payloads.
package extractor

import (
	"errors"
	"fmt"

	"github.com/theory/jsonpath"
)

var (
	// ErrExtraction indicates an invalid capture expression.
	ErrExtraction = errors.New("extraction error")
	// ErrNotFound indicates the expression selected nothing.
	ErrNotFound = errors.New("value not found")
)

// Validate checks a JSONPath capture expression without evaluating it.
func Validate(expr string) error {
	if expr == "" {
		return fmt.Errorf("%w: JSONPath expression is empty", ErrExtraction)
	}

	if _, err := jsonpath.Parse(expr); err != nil {
		return fmt.Errorf("%w: invalid JSONPath %s: %v", ErrExtraction, expr, err)
	}

	return nil
}

// JSONPath returns the first node selected by expr from already-decoded
// data. Supports standard JSONPath syntax (e.g., "$.message.chat.id").
func JSONPath(data any, expr string) (any, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSONPath %s: %v", ErrExtraction, expr, err)
	}

	results := path.Select(data)
	if len(results) > 0 {
		return results[0], nil
	}

	return nil, ErrNotFound
}
