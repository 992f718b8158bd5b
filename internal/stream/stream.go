// Package stream decodes sequences of JSON update objects.
package stream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"

	matchquery "github.com/PonomareVlad/grammy-match-query"
)

// ErrMalformed indicates input that is not a stream of JSON objects.
var ErrMalformed = errors.New("malformed update stream")

// Updates returns a lazy iterator over the JSON update objects in r,
// accepting both newline-delimited and concatenated documents. Numbers are
// decoded as json.Number so large identifiers survive round-tripping.
//
// The sequence ends at EOF; a decode error or context cancellation yields
// the error and ends the sequence.
func Updates(ctx context.Context, r io.Reader) iter.Seq2[matchquery.Update, error] {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	return func(yield func(matchquery.Update, error) bool) {
		for {
			if ctx.Err() != nil {
				yield(nil, ctx.Err())
				return
			}

			var update matchquery.Update
			err := decoder.Decode(&update)
			if errors.Is(err, io.EOF) {
				return
			}
			if err != nil {
				yield(nil, fmt.Errorf("%w: %w", ErrMalformed, err))
				return
			}

			if !yield(update, nil) {
				return
			}
		}
	}
}
