package assertion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.correspond/pkg/matching"
)

func TestToFloat64(t *testing.T) {
	tests := []struct {
		value  any
		want   float64
		wantOK bool
	}{
		{int(3), 3, true},
		{int64(-4), -4, true},
		{uint8(7), 7, true},
		{float32(1.5), 1.5, true},
		{2.25, 2.25, true},
		{"3", 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := toFloat64(tt.value)
		assert.Equal(t, tt.wantOK, ok, "%v", tt.value)
		assert.Equal(t, tt.want, got, "%v", tt.value)
	}
}

func TestToList(t *testing.T) {
	got, err := toList([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, got)

	got, err = toList([2]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []any{1, 2}, got)

	got, err = toList(nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = toList(42)
	assert.True(t, errors.Is(err, ErrShape))
}

func TestToEntries(t *testing.T) {
	type entry = matching.Entry[string, any]

	got, err := toEntries([]any{
		map[string]any{"z": 1},
		map[string]any{"a": []any{2, 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, []entry{{Key: "z", Value: 1}, {Key: "a", Value: 2}, {Key: "a", Value: 3}}, got)

	got, err = toEntries(map[string]any{"b": 2, "a": 1})
	require.NoError(t, err)
	assert.Equal(t, []entry{{Key: "a", Value: 1}, {Key: "b", Value: 2}}, got)

	_, err = toEntries([]any{map[string]any{"a": 1, "b": 2}})
	assert.True(t, errors.Is(err, ErrShape))

	_, err = toEntries([]any{"a"})
	assert.True(t, errors.Is(err, ErrShape))
}
