package matching

import (
	"fmt"
	"slices"

	"digital.vasic.correspond/pkg/correspondence"
	"digital.vasic.correspond/pkg/ledger"
	"digital.vasic.correspond/pkg/logging"
)

// Entry is a key and one of its values.
type Entry[K comparable, V any] struct {
	Key   K `json:"key"`
	Value V `json:"value"`
}

// String renders the entry as "key=value".
func (e Entry[K, V]) String() string {
	return fmt.Sprintf("%v=%v", e.Key, e.Value)
}

// Grouping maps keys to multisets of values, remembering the order
// in which keys were first seen. A key is present only while it
// has at least one value. The zero value is not usable; a nil
// *Grouping reads as empty.
type Grouping[K comparable, V any] struct {
	keys   []K
	values map[K][]V
}

// NewGrouping creates an empty grouping.
func NewGrouping[K comparable, V any]() *Grouping[K, V] {
	return &Grouping[K, V]{values: make(map[K][]V)}
}

// GroupEntries builds a grouping from entries in order.
func GroupEntries[K comparable, V any](entries ...Entry[K, V]) *Grouping[K, V] {
	g := NewGrouping[K, V]()
	for _, e := range entries {
		g.Put(e.Key, e.Value)
	}
	return g
}

// Put appends values under key. Putting no values does not add
// the key.
func (g *Grouping[K, V]) Put(key K, values ...V) *Grouping[K, V] {
	if len(values) == 0 {
		return g
	}
	if _, ok := g.values[key]; !ok {
		g.keys = append(g.keys, key)
	}
	g.values[key] = append(g.values[key], values...)
	return g
}

// Keys returns the keys in first-seen order.
func (g *Grouping[K, V]) Keys() []K {
	if g == nil {
		return nil
	}
	return slices.Clone(g.keys)
}

// Values returns the values stored under key, in insertion order.
func (g *Grouping[K, V]) Values(key K) []V {
	if g == nil {
		return nil
	}
	return slices.Clone(g.values[key])
}

// Has reports whether key has at least one value.
func (g *Grouping[K, V]) Has(key K) bool {
	if g == nil {
		return false
	}
	_, ok := g.values[key]
	return ok
}

// Len returns the number of entries.
func (g *Grouping[K, V]) Len() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, vs := range g.values {
		n += len(vs)
	}
	return n
}

// Entries flattens the grouping key by key.
func (g *Grouping[K, V]) Entries() []Entry[K, V] {
	if g == nil {
		return nil
	}
	out := make([]Entry[K, V], 0, g.Len())
	for _, k := range g.keys {
		for _, v := range g.values[k] {
			out = append(out, Entry[K, V]{Key: k, Value: v})
		}
	}
	return out
}

// KeyedReport aggregates one Report per key.
type KeyedReport[K comparable, A, E any] struct {
	Correspondence string `json:"correspondence"`

	// Keys is the union of both key sets: actual keys in order,
	// then keys present only in expected.
	Keys []K `json:"keys"`

	// ActualKeys and ExpectedKeys are each side's keys in order.
	ActualKeys   []K `json:"actual_keys"`
	ExpectedKeys []K `json:"expected_keys"`

	PerKey map[K]Report[A, E] `json:"-"`

	// Missing and Unexpected merge the unmatched values of every
	// key with their key reattached, in Keys order.
	Missing    []Entry[K, E] `json:"missing,omitempty"`
	Unexpected []Entry[K, A] `json:"unexpected,omitempty"`

	// Exact is true iff every per-key report is exact.
	Exact bool `json:"exact"`

	// KeysInOrder is true when both sides list their keys in the
	// same order. Only meaningful when Exact is true.
	KeysInOrder bool `json:"keys_in_order"`

	// ValuesOutOfOrder lists the keys whose values do not
	// correspond position by position. Only meaningful when Exact
	// is true.
	ValuesOutOfOrder []K `json:"values_out_of_order,omitempty"`

	// InOrder is true iff Exact holds and both order layers agree.
	InOrder bool `json:"in_order"`

	Comparisons     int  `json:"comparisons"`
	ActualCovered   bool `json:"actual_covered"`
	ExpectedCovered bool `json:"expected_covered"`
}

// NoOneToOneMapping mirrors Report.NoOneToOneMapping over all keys.
func (r KeyedReport[K, A, E]) NoOneToOneMapping() bool {
	return !r.Exact && r.ActualCovered && r.ExpectedCovered
}

// passesIfFailuresCorrespond reports whether at least one
// comparison failed and the run would pass had every failed
// comparison returned true.
func (r KeyedReport[K, A, E]) passesIfFailuresCorrespond(requireOrder bool) bool {
	failed := false
	for _, k := range r.Keys {
		kr := r.PerKey[k]
		failed = failed || len(kr.FailedPairs) > 0
		if !kr.passesIfFailuresCorrespond(requireOrder) {
			return false
		}
	}
	if requireOrder && !slices.Equal(r.ActualKeys, r.ExpectedKeys) {
		return false
	}
	return failed
}

// MatchKeyedExactly runs MatchExactly's algorithm independently for
// every key of either grouping, values compared under c and keys by
// equality. A key present on one side only contributes all of its
// values as unmatched. All runs share l.
func MatchKeyedExactly[K comparable, A, E any](
	actual *Grouping[K, A],
	expected *Grouping[K, E],
	c correspondence.Correspondence[A, E],
	l *ledger.Ledger,
	opts ...Option,
) KeyedReport[K, A, E] {
	cfg := newConfig(opts)
	before := l.Count()

	r := KeyedReport[K, A, E]{
		Correspondence:  c.String(),
		ActualKeys:      actual.Keys(),
		ExpectedKeys:    expected.Keys(),
		PerKey:          make(map[K]Report[A, E]),
		Exact:           true,
		ActualCovered:   true,
		ExpectedCovered: true,
	}
	r.Keys = slices.Clone(r.ActualKeys)
	for _, k := range r.ExpectedKeys {
		if !actual.Has(k) {
			r.Keys = append(r.Keys, k)
		}
	}

	for _, k := range r.Keys {
		kr := match(actual.Values(k), expected.Values(k), c, l)
		r.PerKey[k] = kr
		r.Comparisons += kr.Comparisons
		r.Exact = r.Exact && kr.Exact
		r.ActualCovered = r.ActualCovered && kr.ActualCovered
		r.ExpectedCovered = r.ExpectedCovered && kr.ExpectedCovered

		for _, v := range kr.Missing {
			r.Missing = append(r.Missing, Entry[K, E]{Key: k, Value: v})
		}
		for _, v := range kr.Unexpected {
			r.Unexpected = append(r.Unexpected, Entry[K, A]{Key: k, Value: v})
		}
		if kr.Exact && !kr.InOrder {
			r.ValuesOutOfOrder = append(r.ValuesOutOfOrder, k)
		}
	}

	if r.Exact {
		r.KeysInOrder = slices.Equal(r.ActualKeys, r.ExpectedKeys)
		r.InOrder = r.KeysInOrder && len(r.ValuesOutOfOrder) == 0
	} else {
		r.ValuesOutOfOrder = nil
	}

	failures := l.Count() - before
	cfg.metrics.RecordMatch("keyed", r.Exact, r.InOrder, r.Comparisons)
	cfg.metrics.RecordPredicateFailures("compare", failures)
	logRun(cfg.logger, "keyed", c.String(), l, failures,
		logging.IntField("keys", len(r.Keys)),
		logging.IntField("actual", actual.Len()),
		logging.IntField("expected", expected.Len()),
		logging.IntField("comparisons", r.Comparisons),
		logging.BoolField("exact", r.Exact),
		logging.BoolField("in_order", r.InOrder),
	)
	return r
}
