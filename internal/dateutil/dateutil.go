// Package dateutil parses the loosely formatted timestamps found in wiki and
// blog dumps and formats them for front matter.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTimestamp indicates a timestamp string matched no known layout.
var ErrInvalidTimestamp = errors.New("invalid timestamp")

// MaxTimestampLength limits input length to prevent abuse.
const MaxTimestampLength = 64

// isoZoned and isoNaive mirror the two shapes an ISO-8601 timestamp can take
// in front matter: with an explicit offset, or without any zone at all.
const (
	isoZoned = "2006-01-02T15:04:05-07:00"
	isoNaive = "2006-01-02T15:04:05"
)

// layouts lists accepted input formats. Zoned layouts come first so an offset
// in the input is never silently dropped.
var layouts = []struct {
	layout string
	zoned  bool
}{
	{time.RFC3339Nano, true},
	{time.RFC3339, true},
	{time.RFC1123Z, true},
	{time.RFC1123, true},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02 15:04:05", false},
	{"20060102150405", false}, // MediaWiki rev_timestamp
	{"2006-01-02", false},
}

// Timestamp is a parsed point in time that remembers whether the source
// carried a zone.
type Timestamp struct {
	Time  time.Time
	Zoned bool
}

// ISO formats the timestamp as ISO-8601, keeping the offset only when the
// source had one.
func (ts Timestamp) ISO() string {
	if ts.Zoned {
		return ts.Time.Format(isoZoned)
	}
	return ts.Time.Format(isoNaive)
}

// Parse tries each known layout in order and returns the first match.
// Naive timestamps are interpreted as UTC for file time purposes.
func Parse(value string) (Timestamp, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Timestamp{}, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}
	if len(value) > MaxTimestampLength {
		return Timestamp{}, fmt.Errorf("%w: exceeds %d characters", ErrInvalidTimestamp, MaxTimestampLength)
	}

	for _, l := range layouts {
		t, err := time.Parse(l.layout, value)
		if err == nil {
			return Timestamp{Time: t, Zoned: l.zoned}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, value)
}
