package storage

import (
	"chat-mirror/domain"
	"strings"
	"time"
)

// compareValues orders two document values. Numbers compare numerically whatever
// their Go type, temporal values after normalization, strings lexicographically.
func compareValues(a, b any) (int, bool) {
	if x, ok := toFloat(a); ok {
		if y, ok := toFloat(b); ok {
			switch {
			case x < y:
				return -1, true
			case x > y:
				return 1, true
			default:
				return 0, true
			}
		}
	}
	if isTemporal(a) || isTemporal(b) {
		x, errA := domain.NormalizeTimestamp(a)
		y, errB := domain.NormalizeTimestamp(b)
		if errA == nil && errB == nil {
			return x.Compare(y), true
		}
	}
	if x, ok := a.(string); ok {
		if y, ok := b.(string); ok {
			return strings.Compare(x, y), true
		}
	}
	if x, ok := a.(bool); ok {
		if y, ok := b.(bool); ok && x == y {
			return 0, true
		}
	}
	return 0, false
}

func matches(fields map[string]any, f domain.Filter) bool {
	v, ok := fields[f.Field]
	if !ok {
		return false
	}
	c, ok := compareValues(v, toNative(f.Value))
	if !ok {
		return false
	}
	switch f.Op {
	case domain.OpEqual:
		return c == 0
	case domain.OpLess:
		return c < 0
	case domain.OpLessOrEqual:
		return c <= 0
	case domain.OpGreater:
		return c > 0
	case domain.OpGreaterOrEqual:
		return c >= 0
	default:
		return false
	}
}

func isTemporal(v any) bool {
	switch v.(type) {
	case time.Time, *time.Time, map[string]any:
		return true
	default:
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
