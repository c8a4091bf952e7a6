package utils

import "time"

// Timestamps are stored in UTC with millisecond precision
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// NowUTC returns the current time truncated to the stored precision
func NowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// FormatTimestamp renders a time in the stored layout
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored timestamp, accepting any RFC3339 value
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
