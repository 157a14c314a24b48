// Package fact provides the name/value pairs that failure
// descriptions are assembled from. Callers render them into
// human text; the engine only produces them.
package fact

import "strings"

// Fact is a single line of a failure description. A Fact with an
// empty Value is a simple statement rendered on its own.
type Fact struct {
	// Key names the fact, e.g. "missing (1)".
	Key string `json:"key"`

	// Value is the rendered value, possibly empty.
	Value string `json:"value,omitempty"`
}

// New creates a Fact with a key and a value.
func New(key, value string) Fact {
	return Fact{Key: key, Value: value}
}

// Simple creates a Fact that has no value.
func Simple(key string) Fact {
	return Fact{Key: key}
}

// String renders the fact as "key: value", or just the key for a
// simple fact.
func (f Fact) String() string {
	if f.Value == "" {
		return f.Key
	}
	return f.Key + ": " + f.Value
}

// Render joins facts one per line. Multi-line values are indented
// so they stay attached to their key.
func Render(facts []Fact) string {
	lines := make([]string, 0, len(facts))
	for _, f := range facts {
		lines = append(
			lines,
			strings.ReplaceAll(f.String(), "\n", "\n    "),
		)
	}
	return strings.Join(lines, "\n")
}

// Keys returns the keys of facts in order.
func Keys(facts []Fact) []string {
	keys := make([]string, len(facts))
	for i, f := range facts {
		keys[i] = f.Key
	}
	return keys
}

// Value returns the value of the first fact with the given key.
func Value(facts []Fact, key string) (string, bool) {
	for _, f := range facts {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}
