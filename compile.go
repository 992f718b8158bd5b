package matchquery

import "fmt"

// compilePath turns one concrete path into a predicate. Only the fully
// empty L1 segment is a compile error; everything else evaluates to a
// plain miss at match time.
//
// Evaluation walks the update null-tolerantly: a missing or null value at
// any level is "does not match", never a fault. With all three segments
// present the L3 segment matches inside the L2 value (field presence or
// type discriminator, any element if the value is an array), and falls
// back to a sibling field of L2 on the top-level object. The fallback is
// consulted whenever the nested check fails, including when the L2 value
// is absent entirely; this is what lets queries like ":media:media_group_id"
// reach fields that live on the message itself rather than inside the
// photo or video object.
func compilePath(p path) (Predicate, error) {
	if p.l1 == "" {
		return nil, fmt.Errorf("%w: empty query", ErrInvalidQuery)
	}

	return func(update Update) bool {
		value, ok := update[p.l1]
		if !ok || value == nil {
			return false
		}
		if p.l2 == "" {
			return true
		}

		parent, _ := value.(map[string]any)
		nested := parent[p.l2]
		if p.l3 == "" {
			return nested != nil
		}

		if matchNested(nested, p.l3) {
			return true
		}
		return parent[p.l3] != nil
	}, nil
}

// matchNested applies the L3 rule to an L2 value: true if any element of
// the value (or the value itself when it is a single object) carries the
// key as a non-null field or as its type discriminator.
func matchNested(value any, key string) bool {
	if items, ok := value.([]any); ok {
		for _, item := range items {
			if matchObject(item, key) {
				return true
			}
		}
		return false
	}

	return matchObject(value, key)
}

func matchObject(item any, key string) bool {
	obj, ok := item.(map[string]any)
	if !ok {
		return false
	}
	if obj[key] != nil {
		return true
	}

	kind, _ := obj["type"].(string)
	return kind == key
}
