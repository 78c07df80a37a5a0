package domain

import (
	"chat-mirror/errors"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"google.golang.org/protobuf/types/known/timestamppb"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999-07:00",
	time.DateTime,
}

// NormalizeTimestamp converts every creation time representation found in documents
// into a UTC time.Time. Accepted forms: time.Time, *timestamppb.Timestamp, the store-native
// {seconds, nanos} map (also with Firestore's _seconds/_nanoseconds keys), unix milliseconds
// as a number or numeric string, and RFC3339 strings.
func NormalizeTimestamp(v any) (time.Time, error) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case *time.Time:
		if t == nil {
			break
		}
		return t.UTC(), nil
	case *timestamppb.Timestamp:
		if t == nil {
			break
		}
		return t.AsTime().UTC(), nil
	case map[string]any:
		return fromSecondsNanos(t)
	case float64:
		return time.UnixMilli(int64(t)).UTC(), nil
	case int64:
		return time.UnixMilli(t).UTC(), nil
	case int:
		return time.UnixMilli(int64(t)).UTC(), nil
	case json.Number:
		return NormalizeTimestamp(string(t))
	case string:
		if millis, err := strconv.ParseInt(t, 10, 64); err == nil {
			return time.UnixMilli(millis).UTC(), nil
		}
		for _, layout := range timestampLayouts {
			if parsed, err := time.Parse(layout, t); err == nil {
				return parsed.UTC(), nil
			}
		}
		return time.Time{}, fmt.Errorf("%w: %q", errors.ErrInvalidTimestamp, t)
	}
	return time.Time{}, fmt.Errorf("%w: %T", errors.ErrInvalidTimestamp, v)
}

// TimestampValue is the store-native encoding of a time inside a document.
func TimestampValue(t time.Time) map[string]any {
	ts := timestamppb.New(t)
	return map[string]any{
		"seconds": ts.GetSeconds(),
		"nanos":   int64(ts.GetNanos()),
	}
}

func fromSecondsNanos(m map[string]any) (time.Time, error) {
	secondsRaw, ok := m["seconds"]
	if !ok {
		secondsRaw, ok = m["_seconds"]
	}
	if !ok {
		return time.Time{}, fmt.Errorf("%w: missing seconds", errors.ErrInvalidTimestamp)
	}
	nanosRaw, ok := m["nanos"]
	if !ok {
		nanosRaw = m["_nanoseconds"]
	}
	seconds, err := toInt64(secondsRaw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: seconds: %v", errors.ErrInvalidTimestamp, err)
	}
	var nanos int64
	if nanosRaw != nil {
		if nanos, err = toInt64(nanosRaw); err != nil {
			return time.Time{}, fmt.Errorf("%w: nanos: %v", errors.ErrInvalidTimestamp, err)
		}
	}
	return time.Unix(seconds, nanos).UTC(), nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case int32:
		return int64(n), nil
	case float64:
		return int64(n), nil
	case string:
		return strconv.ParseInt(n, 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}
