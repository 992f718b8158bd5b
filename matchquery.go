// Package matchquery compiles compact filter queries such as
// "message:entities:url" into predicates over messaging-platform update
// payloads. A query names up to three colon-separated levels of an update
// object; shortcut segments expand to several concrete property paths, and
// multiple queries combine with OR into a single predicate.
package matchquery

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is the sentinel error for queries that cannot be compiled.
// It allows error wrapping and consistent error checks using errors.Is().
var ErrInvalidQuery = errors.New("invalid filter query")

// Update is a decoded update payload: string keys mapping to scalars,
// nested objects, or arrays of nested objects.
type Update = map[string]any

// Predicate reports whether an update satisfies a compiled filter query.
// Predicates are pure and safe for concurrent use; they only read the
// update passed in and never mutate it.
type Predicate func(Update) bool

// Compile builds a single predicate from one or more filter queries.
// Shortcut segments are expanded first, then every resulting concrete path
// is compiled and the predicates are combined with a short-circuit OR.
//
// Compile fails if no queries are given or if any query is empty after
// expansion; malformed property names are not errors, their predicates
// simply never match.
func Compile(queries ...string) (Predicate, error) {
	if len(queries) == 0 {
		return nil, fmt.Errorf("%w: no queries provided", ErrInvalidQuery)
	}

	var predicates []Predicate
	for _, query := range queries {
		for _, p := range expand(parseQuery(query)) {
			pred, err := compilePath(p)
			if err != nil {
				return nil, fmt.Errorf("%w: %q", err, query)
			}
			predicates = append(predicates, pred)
		}
	}

	return anyOf(predicates), nil
}

// anyOf combines predicates with OR, short-circuiting on the first match.
func anyOf(predicates []Predicate) Predicate {
	if len(predicates) == 1 {
		return predicates[0]
	}

	return func(update Update) bool {
		for _, pred := range predicates {
			if pred(update) {
				return true
			}
		}
		return false
	}
}
