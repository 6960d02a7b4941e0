package utils

import (
	"fmt"
	"strings"
	"time"
)

// ParseDate parses an ISO 8601 value given as YYYY-MM-DD or RFC3339.
// The result is always in UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}
