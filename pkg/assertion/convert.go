package assertion

import (
	"fmt"
	"reflect"
	"sort"

	"digital.vasic.correspond/pkg/correspondence"
	"digital.vasic.correspond/pkg/matching"
)

// toFloat64 attempts to convert a numeric value to float64.
func toFloat64(value any) (float64, bool) {
	switch v := value.(type) {
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	default:
		return 0, false
	}
}

// toInt64 accepts integers and integral floats, since JSON decodes
// every number as float64.
func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v == float64(int64(v)) {
			return int64(v), nil
		}
	}
	return 0, fmt.Errorf(
		"%w: expected value %v (%T) is not an integer",
		correspondence.ErrTypeMismatch, value, value,
	)
}

// toList converts any slice or array to []any.
func toList(value any) ([]any, error) {
	if list, ok := value.([]any); ok {
		return list, nil
	}
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		return nil, nil
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %T is not a list", ErrShape, value)
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, nil
}

// toEntries converts a value to key/value entries. Accepted shapes:
// a list of single-key maps (ordered), or a map (keys sorted, so
// only fit where key order does not matter). A list value under a
// key contributes one entry per element.
func toEntries(value any) ([]matching.Entry[string, any], error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case []matching.Entry[string, any]:
		return v, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var out []matching.Entry[string, any]
		for _, k := range keys {
			out = appendEntries(out, k, v[k])
		}
		return out, nil
	}

	list, err := toList(value)
	if err != nil {
		return nil, err
	}
	var out []matching.Entry[string, any]
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok || len(m) != 1 {
			return nil, fmt.Errorf(
				"%w: entry %d must be a map with exactly one key", ErrShape, i,
			)
		}
		for k, val := range m {
			out = appendEntries(out, k, val)
		}
	}
	return out, nil
}

func appendEntries(
	out []matching.Entry[string, any],
	key string,
	value any,
) []matching.Entry[string, any] {
	if list, ok := value.([]any); ok {
		for _, item := range list {
			out = append(out, matching.Entry[string, any]{Key: key, Value: item})
		}
		return out
	}
	return append(out, matching.Entry[string, any]{Key: key, Value: value})
}
