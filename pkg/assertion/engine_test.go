package assertion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.correspond/pkg/correspondence"
	"digital.vasic.correspond/pkg/fact"
	"digital.vasic.correspond/pkg/matching"
)

type countingMetrics struct {
	passed, failed int
	runs           int
}

func (m *countingMetrics) RecordMatch(string, bool, bool, int) { m.runs++ }
func (m *countingMetrics) RecordPredicateFailures(string, int) {}
func (m *countingMetrics) RecordAssertion(_ string, passed bool) {
	if passed {
		m.passed++
	} else {
		m.failed++
	}
}

func TestNewEngine_RegistersAllBuiltins(t *testing.T) {
	e := NewEngine()

	for _, name := range []string{
		TypeContainsExactly, TypeContainsExactlyInOrder,
		TypeContainsExactlyEntries, TypeContainsExactlyEntriesInOrder,
		TypeContainsEntry, TypeDoesNotContainEntry,
	} {
		assert.True(t, e.HasEvaluator(name),
			"missing built-in evaluator: %s", name)
	}
	for _, name := range []string{
		"equal", "tolerance", "case_insensitive", "parses_to",
	} {
		assert.True(t, e.HasCorrespondence(name),
			"missing built-in correspondence: %s", name)
	}
}

func TestDefaultEngine_Register_Success(t *testing.T) {
	e := NewEngine()

	err := e.Register("custom", func(Call) (matching.Outcome, error) {
		return matching.Outcome{Passed: true}, nil
	})

	require.NoError(t, err)
	assert.True(t, e.HasEvaluator("custom"))
	r := e.Evaluate(Definition{Type: "custom", Target: "x"}, nil)
	assert.True(t, r.Passed)
}

func TestDefaultEngine_Register_Duplicate(t *testing.T) {
	e := NewEngine()

	err := e.Register(TypeContainsExactly, func(Call) (matching.Outcome, error) {
		return matching.Outcome{}, nil
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestDefaultEngine_RegisterCorrespondence(t *testing.T) {
	e := NewEngine()

	err := e.RegisterCorrespondence("always", func(string) (correspondence.Correspondence[any, any], error) {
		return correspondence.FromPredicate(func(any, any) bool { return true }, "matches"), nil
	})
	require.NoError(t, err)

	r := e.Evaluate(Definition{
		Type:           TypeContainsExactly,
		Correspondence: "always",
		Value:          []any{"x", "y"},
	}, []any{1, 2})
	assert.True(t, r.Passed)

	err = e.RegisterCorrespondence("equal", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")
}

func TestDefaultEngine_Evaluate_UnknownType(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:   "nonexistent",
		Target: "x",
	}, "hello")

	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "unknown assertion type")
}

func TestDefaultEngine_Evaluate_UnknownCorrespondence(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:           TypeContainsExactly,
		Correspondence: "fuzzy",
	}, []any{})

	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "unknown correspondence: fuzzy")
}

func TestDefaultEngine_Evaluate_InvalidTolerance(t *testing.T) {
	e := NewEngine()

	_, err := e.Correspondence("tolerance:-1")

	assert.True(t, errors.Is(err, correspondence.ErrInvalidTolerance))
}

func TestDefaultEngine_Evaluate_ContainsExactly(t *testing.T) {
	tests := []struct {
		name      string
		def       Definition
		actual    any
		wantPass  bool
		wantCause string
	}{
		{
			name:     "same elements any order",
			def:      Definition{Type: TypeContainsExactly, Value: []any{1, 2, 3}},
			actual:   []any{3, 1, 2},
			wantPass: true,
		},
		{
			name:      "wrong order",
			def:       Definition{Type: TypeContainsExactlyInOrder, Value: []any{1, 2, 3}},
			actual:    []any{3, 1, 2},
			wantCause: "order",
		},
		{
			name:      "extra duplicate",
			def:       Definition{Type: TypeContainsExactly, Value: []any{1, 2}},
			actual:    []int{1, 1, 2},
			wantCause: "mismatch",
		},
		{
			name: "tolerance",
			def: Definition{
				Type:           TypeContainsExactlyInOrder,
				Correspondence: "tolerance:0.01",
				Value:          []any{1.0, 2},
			},
			actual:   []float64{1.005, 2.001},
			wantPass: true,
		},
		{
			name: "case insensitive",
			def: Definition{
				Type:           TypeContainsExactly,
				Correspondence: "case_insensitive",
				Value:          []any{"Hello", "WORLD"},
			},
			actual:   []string{"world", "hello"},
			wantPass: true,
		},
		{
			name: "case insensitive fails on non-string",
			def: Definition{
				Type:           TypeContainsExactly,
				Correspondence: "case_insensitive",
				Value:          []any{"a", "b"},
			},
			actual:    []any{"a", 7},
			wantCause: "predicate_failure",
		},
		{
			name: "parses to",
			def: Definition{
				Type:           TypeContainsExactly,
				Correspondence: "parses_to",
				Value:          []any{64, 64, 128},
			},
			actual:   []string{"+64", "0x40", "+128"},
			wantPass: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewEngine().Evaluate(tt.def, tt.actual)

			assert.Equal(t, tt.wantPass, r.Passed, r.Message)
			assert.Equal(t, tt.wantCause, r.Cause)
		})
	}
}

func TestDefaultEngine_Evaluate_PredicateFailureIsReported(t *testing.T) {
	r := NewEngine().Evaluate(Definition{
		Type:           TypeContainsExactly,
		Target:         "codes",
		Correspondence: "case_insensitive",
		Value:          []any{"a", "b"},
	}, []any{"a", 7})

	require.False(t, r.Passed)
	v, ok := fact.Value(r.Facts, "first failure")
	require.True(t, ok)
	assert.Contains(t, v, "correspondence: type mismatch")
}

func TestDefaultEngine_Evaluate_WrongShape(t *testing.T) {
	r := NewEngine().Evaluate(Definition{
		Type:  TypeContainsExactly,
		Value: []any{1},
	}, "not a list")

	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "not a list")
}

func TestDefaultEngine_Evaluate_Entries(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type: TypeContainsExactlyEntriesInOrder,
		Value: []any{
			map[string]any{"kurt": []any{"kluever", "cobain", "russell"}},
		},
	}, []any{
		map[string]any{"kurt": []any{"kluever", "russell", "cobain"}},
	})

	assert.False(t, r.Passed)
	assert.Equal(t, "order", r.Cause)
	assert.Contains(t, r.Message, "the values for keys [kurt] are not in order")

	r = e.Evaluate(Definition{
		Type:  TypeContainsExactlyEntries,
		Value: map[string]any{"a": 1, "b": []any{2, 3}},
	}, map[string]any{"b": []any{3, 2}, "a": 1})
	assert.True(t, r.Passed, r.Message)
}

func TestDefaultEngine_Evaluate_OrderedEntriesRejectMaps(t *testing.T) {
	e := NewEngine()

	r := e.Evaluate(Definition{
		Type:  TypeContainsExactlyEntriesInOrder,
		Value: []any{map[string]any{"a": 1}, map[string]any{"b": 2}},
	}, map[string]any{"b": 2, "a": 1})
	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "ordered entries need a list of single-key maps")

	r = e.Evaluate(Definition{
		Type:  TypeContainsExactlyEntriesInOrder,
		Value: map[string]any{"a": 1, "b": 2},
	}, []any{map[string]any{"a": 1}, map[string]any{"b": 2}})
	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "ordered entries need a list of single-key maps")

	r = e.Evaluate(Definition{
		Type:  TypeContainsExactlyEntriesInOrder,
		Value: []any{map[string]any{"b": 2}, map[string]any{"a": 1}},
	}, []any{map[string]any{"b": 2}, map[string]any{"a": 1}})
	assert.True(t, r.Passed, r.Message)
}

func TestDefaultEngine_Evaluate_SingleEntry(t *testing.T) {
	actual := []any{
		map[string]any{"abc": "+123"},
		map[string]any{"def": []any{"+456", "+789"}},
	}
	tests := []struct {
		name     string
		typ      string
		entry    map[string]any
		wantPass bool
		wantText string
	}{
		{
			name:     "contains parsing value",
			typ:      TypeContainsEntry,
			entry:    map[string]any{"def": 789},
			wantPass: true,
		},
		{
			name:     "key has wrong values",
			typ:      TypeContainsEntry,
			entry:    map[string]any{"def": 123},
			wantText: "however, it has a mapping from that key to: [+456, +789]",
		},
		{
			name:     "other key has the value",
			typ:      TypeContainsEntry,
			entry:    map[string]any{"xyz": 789},
			wantText: "however, the following keys are mapped to such values: [def]",
		},
		{
			name:     "does not contain with wrong values",
			typ:      TypeDoesNotContainEntry,
			entry:    map[string]any{"def": 123},
			wantPass: true,
		},
		{
			name:     "does not contain but does",
			typ:      TypeDoesNotContainEntry,
			entry:    map[string]any{"def": 789},
			wantText: "but it maps that key to the following such values: [+789]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewEngine().Evaluate(Definition{
				Type:           tt.typ,
				Correspondence: "parses_to",
				Value:          tt.entry,
			}, actual)

			assert.Equal(t, tt.wantPass, r.Passed, r.Message)
			if !tt.wantPass {
				assert.Equal(t, "mismatch", r.Cause)
				assert.Contains(t, r.Message, tt.wantText)
			}
		})
	}
}

func TestDefaultEngine_Evaluate_SingleEntryNeedsOneEntry(t *testing.T) {
	r := NewEngine().Evaluate(Definition{
		Type:  TypeContainsEntry,
		Value: map[string]any{"a": 1, "b": 2},
	}, map[string]any{"a": 1})

	assert.False(t, r.Passed)
	assert.Contains(t, r.Message, "need exactly one entry, got 2")
}

func TestDefaultEngine_Evaluate_CustomMessage(t *testing.T) {
	r := NewEngine().Evaluate(Definition{
		Type:    TypeContainsExactly,
		Value:   []any{1},
		Message: "ids must match",
	}, []any{2})

	assert.False(t, r.Passed)
	assert.Equal(t, "ids must match", r.Facts[0].Key)
	assert.Contains(t, r.Message, "ids must match\n")
}

func TestDefaultEngine_EvaluateAll(t *testing.T) {
	m := &countingMetrics{}
	e := NewEngine(WithMetrics(m))

	results := e.EvaluateAll([]Definition{
		{Type: TypeContainsExactly, Target: "a", Value: []any{1}},
		{Type: TypeContainsExactly, Target: "missing", Value: []any{1}},
	}, map[string]any{"a": []any{1}})

	require.Len(t, results, 2)
	assert.True(t, results[0].Passed)
	assert.False(t, results[1].Passed)
	assert.Contains(t, results[1].Message, "target not found")
	assert.Equal(t, 1, m.passed)
	assert.Equal(t, 1, m.failed)
	assert.Equal(t, 1, m.runs)
}
