package weather

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RawDocument is a provider JSON object decoded into generic maps.
// Providers decode with json.Decoder.UseNumber, so numbers arrive as json.Number.
type RawDocument map[string]any

var (
	errNotWholeNumber  = errors.New("not a whole number")
	errUnsupportedType = errors.New("unsupported value type")
)

// Properties returns the "properties" object, if present.
func (d RawDocument) Properties() (map[string]any, bool) {
	if d == nil {
		return nil, false
	}
	props, ok := d["properties"].(map[string]any)
	return props, ok
}

// stringField returns m[key] when it is a non-null string.
func stringField(m map[string]any, key string) (string, bool) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// periodList normalizes the periods value into a slice of objects.
// Entries that are not objects come back as nil so callers can log and skip them.
func periodList(v any) ([]map[string]any, bool) {
	switch items := v.(type) {
	case []map[string]any:
		return items, true
	case []any:
		out := make([]map[string]any, len(items))
		for i, item := range items {
			if m, ok := item.(map[string]any); ok {
				out[i] = m
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// parseWholeNumber accepts JSON numbers, Go integer kinds, integral floats and
// numeric text. Values outside the int32 range are rejected.
func parseWholeNumber(v any) (int, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return boundedInt(i)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotWholeNumber, n.String())
		}
		return integralFloat(f)
	case int:
		return boundedInt(int64(n))
	case int32:
		return int(n), nil
	case int64:
		return boundedInt(n)
	case float64:
		return integralFloat(n)
	case float32:
		return integralFloat(float64(n))
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotWholeNumber, n)
		}
		return boundedInt(i)
	default:
		return 0, fmt.Errorf("%w: %T", errUnsupportedType, v)
	}
}

func boundedInt(i int64) (int, error) {
	if i < math.MinInt32 || i > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %d out of range", errNotWholeNumber, i)
	}
	return int(i), nil
}

func integralFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %v", errNotWholeNumber, f)
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %v out of range", errNotWholeNumber, f)
	}
	return int(f), nil
}

// parseWindSpeed is parseWholeNumber for text like "10 mph": only the token
// before the first space is parsed.
func parseWindSpeed(v any) (int, error) {
	if s, ok := v.(string); ok {
		s = strings.TrimSpace(s)
		if head, _, found := strings.Cut(s, " "); found {
			s = head
		}
		return parseWholeNumber(s)
	}
	return parseWholeNumber(v)
}
