package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.correspond/pkg/ledger"
	"digital.vasic.correspond/pkg/matching"
)

func TestGrouping_Basics(t *testing.T) {
	g := matching.NewGrouping[string, int]().
		Put("b", 2, 3).
		Put("a", 1).
		Put("b", 4).
		Put("empty")

	assert.Equal(t, []string{"b", "a"}, g.Keys())
	assert.Equal(t, []int{2, 3, 4}, g.Values("b"))
	assert.True(t, g.Has("a"))
	assert.False(t, g.Has("empty"))
	assert.Equal(t, 4, g.Len())
	assert.Equal(t, []matching.Entry[string, int]{
		{Key: "b", Value: 2},
		{Key: "b", Value: 3},
		{Key: "b", Value: 4},
		{Key: "a", Value: 1},
	}, g.Entries())
}

func TestGrouping_ValuesAreCopies(t *testing.T) {
	g := matching.NewGrouping[string, int]().Put("k", 1)

	g.Values("k")[0] = 99
	g.Keys()[0] = "x"

	assert.Equal(t, []int{1}, g.Values("k"))
	assert.Equal(t, []string{"k"}, g.Keys())
}

func TestGrouping_NilIsEmpty(t *testing.T) {
	var g *matching.Grouping[string, int]

	assert.Nil(t, g.Keys())
	assert.Nil(t, g.Values("k"))
	assert.False(t, g.Has("k"))
	assert.Equal(t, 0, g.Len())
	assert.Nil(t, g.Entries())
}

func TestGroupEntries(t *testing.T) {
	g := matching.GroupEntries(
		matching.Entry[string, int]{Key: "x", Value: 1},
		matching.Entry[string, int]{Key: "y", Value: 2},
		matching.Entry[string, int]{Key: "x", Value: 3},
	)

	assert.Equal(t, []string{"x", "y"}, g.Keys())
	assert.Equal(t, []int{1, 3}, g.Values("x"))
}

func TestEntry_String(t *testing.T) {
	assert.Equal(t, "def=64", matching.Entry[string, int]{Key: "def", Value: 64}.String())
}

func TestMatchKeyedExactly_MissingValueInKey(t *testing.T) {
	actual := matching.NewGrouping[string, int]().Put("k", 1, 2, 3)
	expected := matching.NewGrouping[string, int]().Put("k", 2, 1)

	r := matching.MatchKeyedExactly(actual, expected, identity(), ledger.ForCompare())

	assert.False(t, r.Exact)
	assert.False(t, r.InOrder)
	assert.Equal(t, []int{3}, r.PerKey["k"].Unexpected)
	assert.Empty(t, r.PerKey["k"].Missing)
	assert.Equal(t, []matching.Entry[string, int]{{Key: "k", Value: 3}}, r.Unexpected)
	assert.Empty(t, r.Missing)
	assert.Nil(t, r.ValuesOutOfOrder)
}

func TestMatchKeyedExactly_ValueOrderLocalizedToKey(t *testing.T) {
	actual := matching.NewGrouping[string, int]().Put("k", 2, 1, 3).Put("j", 5)
	expected := matching.NewGrouping[string, int]().Put("k", 1, 2, 3).Put("j", 5)

	r := matching.MatchKeyedExactly(actual, expected, identity(), ledger.ForCompare())

	assert.True(t, r.Exact)
	assert.True(t, r.KeysInOrder)
	assert.False(t, r.InOrder)
	assert.Equal(t, []string{"k"}, r.ValuesOutOfOrder)
	assert.Equal(t, []int{0, 1}, r.PerKey["k"].OutOfOrder)
	assert.True(t, r.PerKey["j"].InOrder)
}

func TestMatchKeyedExactly_KeyOrder(t *testing.T) {
	actual := matching.NewGrouping[string, string]().
		Put("abc", "+123").
		Put("def", "+64", "0x40", "+128")
	expected := matching.NewGrouping[string, int]().
		Put("def", 64, 64, 128).
		Put("abc", 123)

	r := matching.MatchKeyedExactly(actual, expected, parsesTo(), ledger.ForCompare())

	assert.True(t, r.Exact)
	assert.False(t, r.KeysInOrder)
	assert.Empty(t, r.ValuesOutOfOrder)
	assert.False(t, r.InOrder)
}

func TestMatchKeyedExactly_KeyOnOneSide(t *testing.T) {
	actual := matching.NewGrouping[string, int]().Put("a", 1)
	expected := matching.NewGrouping[string, int]().Put("a", 1).Put("b", 2, 2)

	r := matching.MatchKeyedExactly(actual, expected, identity(), ledger.ForCompare())

	assert.False(t, r.Exact)
	assert.Equal(t, []string{"a", "b"}, r.Keys)
	assert.Equal(t, []matching.Entry[string, int]{
		{Key: "b", Value: 2},
		{Key: "b", Value: 2},
	}, r.Missing)
	assert.Empty(t, r.PerKey["b"].Actual)
	assert.False(t, r.ExpectedCovered)
}

func TestMatchKeyedExactly_SharesLedger(t *testing.T) {
	l := ledger.ForCompare()
	actual := matching.NewGrouping[string, int]().Put("a", 3).Put("b", 3)
	expected := matching.NewGrouping[string, int]().Put("a", 4).Put("b", 4)

	r := matching.MatchKeyedExactly(actual, expected, failingOn(3, 4), l)

	assert.False(t, r.Exact)
	require.True(t, l.HasFailure())
	assert.Equal(t, 2, l.Count())
	assert.Equal(t, 2, r.Comparisons)
}

func TestMatchKeyedExactly_RecordsMetrics(t *testing.T) {
	m := &recordingMetrics{}
	actual := matching.NewGrouping[string, int]().Put("k", 1, 2)
	expected := matching.NewGrouping[string, int]().Put("k", 1, 2)

	matching.MatchKeyedExactly(actual, expected, identity(), ledger.ForCompare(),
		matching.WithMetrics(m))

	assert.Equal(t, []string{"keyed"}, m.kinds)
	assert.Equal(t, []bool{true}, m.inOrder)
	assert.Equal(t, []int{4}, m.compares)
}
