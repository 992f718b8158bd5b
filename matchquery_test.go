package matchquery

import (
	"errors"
	"testing"
)

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		queries []string
		wantErr bool
	}{
		{name: "no_queries", queries: nil, wantErr: true},
		{name: "empty_query", queries: []string{""}, wantErr: true},
		{name: "only_separators", queries: []string{"::"}, wantErr: true},
		{name: "valid_literal", queries: []string{"message"}},
		{name: "valid_shortcut", queries: []string{":media"}},
		{name: "valid_mixed_with_empty", queries: []string{"message", ""}, wantErr: true},
		{name: "unknown_fields_are_not_errors", queries: []string{"no_such:thing:here"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.queries...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Compile(%v) error = %v, wantErr %v", tt.queries, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidQuery) {
				t.Fatalf("Compile(%v) error = %v, want ErrInvalidQuery", tt.queries, err)
			}
		})
	}
}

func TestCompileScenarios(t *testing.T) {
	tests := []struct {
		name    string
		queries []string
		update  Update
		want    bool
	}{
		{
			name:    "message_matches_message",
			queries: []string{"message"},
			update:  Update{"message": map[string]any{"text": "hi"}},
			want:    true,
		},
		{
			name:    "message_ignores_channel_post",
			queries: []string{"message"},
			update:  Update{"channel_post": map[string]any{"text": "hi"}},
			want:    false,
		},
		{
			name:    "bare_query_checks_existence_only",
			queries: []string{"message"},
			update:  Update{"message": map[string]any{"photo": []any{map[string]any{"file_id": "a"}}}},
			want:    true,
		},
		{
			name:    "bare_edit_checks_existence_only",
			queries: []string{"edit"},
			update:  Update{"edited_message": map[string]any{"caption": "hi"}},
			want:    true,
		},
		{
			name:    "trailing_separator_requires_entities",
			queries: []string{"message:"},
			update:  Update{"message": map[string]any{"text": "hi"}},
			want:    false,
		},
		{
			name:    "trailing_separator_matches_caption_entities",
			queries: []string{"message:"},
			update: Update{"message": map[string]any{
				"caption_entities": []any{map[string]any{"type": "bold"}},
			}},
			want: true,
		},
		{
			name:    "entity_type_mismatch",
			queries: []string{"message:entities:url"},
			update: Update{"message": map[string]any{
				"entities": []any{map[string]any{"type": "bold"}},
			}},
			want: false,
		},
		{
			name:    "entity_type_match",
			queries: []string{"message:entities:url"},
			update: Update{"message": map[string]any{
				"entities": []any{map[string]any{"type": "url"}},
			}},
			want: true,
		},
		{
			name:    "media_group_id_on_photo_element",
			queries: []string{":media:media_group_id"},
			update: Update{"message": map[string]any{
				"photo": []any{map[string]any{"media_group_id": "123"}},
			}},
			want: true,
		},
		{
			name:    "media_group_id_absent",
			queries: []string{":media:media_group_id"},
			update: Update{"message": map[string]any{
				"photo": []any{map[string]any{"file_id": "123"}},
			}},
			want: false,
		},
		{
			name:    "edit_covers_edited_channel_post",
			queries: []string{"edit:text"},
			update:  Update{"edited_channel_post": map[string]any{"text": "hi"}},
			want:    true,
		},
		{
			name:    "edit_ignores_plain_message",
			queries: []string{"edit:text"},
			update:  Update{"message": map[string]any{"text": "hi"}},
			want:    false,
		},
		{
			name:    "multiple_queries_or",
			queries: []string{":photo", ":video"},
			update:  Update{"message": map[string]any{"video": map[string]any{}}},
			want:    true,
		},
		{
			name:    "caption_entities_via_empty_l2",
			queries: []string{"msg::url"},
			update: Update{"message": map[string]any{
				"caption_entities": []any{map[string]any{"type": "url"}},
			}},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pred, err := Compile(tt.queries...)
			if err != nil {
				t.Fatalf("Compile(%v) error = %v", tt.queries, err)
			}
			if got := pred(tt.update); got != tt.want {
				t.Fatalf("pred(%v) = %v, want %v", tt.update, got, tt.want)
			}
		})
	}
}

// sampleUpdates exercises every table entry plus misses, used by the
// behavioural-equivalence tests below.
var sampleUpdates = []Update{
	{"message": map[string]any{"text": "hi"}},
	{"message": map[string]any{"photo": []any{map[string]any{"file_id": "a"}}}},
	{"message": map[string]any{"photo": []any{map[string]any{"media_group_id": "1"}}}},
	{"message": map[string]any{"video": map[string]any{"media_group_id": "1"}}},
	{"channel_post": map[string]any{"photo": []any{map[string]any{"file_id": "a"}}}},
	{"channel_post": map[string]any{"text": "hi"}},
	{"edited_message": map[string]any{"text": "hi"}},
	{"edited_channel_post": map[string]any{"caption": "hi"}},
	{"callback_query": map[string]any{"data": "x"}},
	{"message": nil},
	{},
}

func TestShortcutEquivalence(t *testing.T) {
	short, err := Compile(":media")
	if err != nil {
		t.Fatalf("Compile(\":media\") error = %v", err)
	}

	spelled, err := Compile("message:media", "channel_post:media")
	if err != nil {
		t.Fatalf("Compile(spelled out) error = %v", err)
	}

	for i, update := range sampleUpdates {
		if short(update) != spelled(update) {
			t.Fatalf("update %d: shortcut = %v, spelled out = %v", i, short(update), spelled(update))
		}
	}
}

func TestCombinationIsOrderIndependent(t *testing.T) {
	forward, err := Compile("message:photo", "edit:text", "channel_post")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	backward, err := Compile("channel_post", "edit:text", "message:photo")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	for i, update := range sampleUpdates {
		if forward(update) != backward(update) {
			t.Fatalf("update %d: forward = %v, backward = %v", i, forward(update), backward(update))
		}
	}
}

func TestCompileIsBehaviourallyIdempotent(t *testing.T) {
	first, err := Compile(":media:media_group_id")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	second, err := Compile(":media:media_group_id")
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	for i, update := range sampleUpdates {
		if first(update) != second(update) {
			t.Fatalf("update %d: first = %v, second = %v", i, first(update), second(update))
		}
	}
}
