package domain

import (
	"chat-mirror/errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

func TestNormalizeTimestamp(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC)

	cases := map[string]any{
		"time":            at.In(time.FixedZone("UTC-5", -5*3600)),
		"time pointer":    &at,
		"protobuf":        timestamppb.New(at),
		"native map":      TimestampValue(at),
		"firestore json":  map[string]any{"_seconds": float64(at.Unix()), "_nanoseconds": float64(at.Nanosecond())},
		"millis float":    float64(at.UnixMilli()),
		"millis int64":    at.UnixMilli(),
		"millis string":   "1741944413589",
		"rfc3339 string":  at.Format(time.RFC3339Nano),
		"offset string":   at.In(time.FixedZone("CET", 3600)).Format(time.RFC3339Nano),
		"sql like string": "2025-03-14 09:26:53.589+00:00",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			req := require.New(t)
			got, err := NormalizeTimestamp(input)
			req.NoError(err)
			req.True(at.Equal(got), "got %s", got)
			req.Equal(time.UTC, got.Location())
		})
	}
}

func TestNormalizeTimestamp_Rejects(t *testing.T) {
	for _, input := range []any{nil, "yesterday", true, map[string]any{"nanos": 1}} {
		_, err := NormalizeTimestamp(input)
		require.ErrorIs(t, err, errors.ErrInvalidTimestamp, "input %v", input)
	}
}
