// ABOUTME: Date parsing utilities for bookmark timestamps
// ABOUTME: Accepts the layouts browsers and bookmark services export, including epoch numbers

package dates

import (
	"strconv"
	"strings"
	"time"
)

// Layouts seen in bookmark exports, most specific first
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
}

// Epoch magnitudes used to tell seconds, milliseconds and microseconds apart
const (
	maxEpochSeconds = 1e11
	maxEpochMillis  = 1e14
)

// Parse parses a bookmark timestamp. Numeric values are read as Unix time in
// seconds, milliseconds or microseconds depending on magnitude. The zero time
// is returned when nothing matches.
func Parse(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}

	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return fromEpoch(n)
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}

	return time.Time{}
}

// ParseWithDefault parses value, returning def when it cannot be parsed
func ParseWithDefault(value string, def time.Time) time.Time {
	if parsed := Parse(value); !parsed.IsZero() {
		return parsed
	}
	return def
}

func fromEpoch(n int64) time.Time {
	if n <= 0 {
		return time.Time{}
	}
	switch {
	case n < maxEpochSeconds:
		return time.Unix(n, 0).UTC()
	case n < maxEpochMillis:
		return time.UnixMilli(n).UTC()
	default:
		return time.UnixMicro(n).UTC()
	}
}
