package options

import (
	"fmt"
	"maps"
	"slices"
)

// Bag is the option set carried by a decorator and passed to its transform.
// Bags are treated as values: every operation that changes options returns a new Bag.
type Bag map[string]any

// Clone returns a shallow copy of b. A nil Bag clones to an empty one.
func (b Bag) Clone() Bag {
	out := make(Bag, len(b))
	maps.Copy(out, b)

	return out
}

// Merge returns a new Bag holding base overlaid with every extra bag in order.
// Later keys win; nested values are not merged.
func Merge(base Bag, extra ...Bag) Bag {
	out := base.Clone()
	for _, e := range extra {
		maps.Copy(out, e)
	}

	return out
}

// Keys returns the option names in sorted order.
func (b Bag) Keys() []string {
	return slices.Sorted(maps.Keys(b))
}

// Get returns the raw option value.
func (b Bag) Get(key string) (any, bool) {
	v, ok := b[key]
	return v, ok
}

// String returns the option as a string, or def when it is missing.
// Non-string values are formatted with %v.
func (b Bag) String(key, def string) string {
	v, ok := b[key]
	if !ok || v == nil {
		return def
	}

	if s, ok := v.(string); ok {
		return s
	}

	return fmt.Sprintf("%v", v)
}

// Int returns the option as an int, or def when it is missing or not numeric.
func (b Bag) Int(key string, def int) int {
	switch v := b[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case uint64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

// Bool returns the option as a bool, or def when it is missing or not a bool.
func (b Bag) Bool(key string, def bool) bool {
	if v, ok := b[key].(bool); ok {
		return v
	}

	return def
}
