package matchquery

import (
	"slices"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "single_segment", query: "message", want: []string{"message"}},
		{name: "two_segments", query: "message:text", want: []string{"message", "text"}},
		{name: "three_segments", query: "message:entities:url", want: []string{"message", "entities", "url"}},
		{name: "empty_query", query: "", want: []string{""}},
		{name: "empty_middle_segment", query: "message::url", want: []string{"message", "", "url"}},
		{name: "trailing_separator", query: "message:", want: []string{"message", ""}},
		{name: "leading_separator", query: ":media", want: []string{"", "media"}},
		{name: "only_separators", query: "::", want: []string{"", "", ""}},
		{name: "excess_segments_ignored", query: "a:b:c:d:e", want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseQuery(tt.query); !slices.Equal(got, tt.want) {
				t.Fatalf("parseQuery(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}
