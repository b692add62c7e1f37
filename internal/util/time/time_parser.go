package time_parser

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidDate = errors.New("invalid date format")

var dateFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts RFC3339 timestamps, zone-less timestamps and plain
// dates. Blank input yields nil. Results are in UTC.
func ParseDate(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	for _, format := range dateFormats {
		if parsed, err := time.Parse(format, value); err == nil {
			utc := parsed.UTC()
			return &utc, nil
		}
	}

	return nil, ErrInvalidDate
}
