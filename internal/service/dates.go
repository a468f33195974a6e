package service

import (
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// NormalizeDate validates and canonicalizes a calendar date to ISO
// YYYY-MM-DD before it is used as a storage key. Locale-formatted date text
// is rejected; a full RFC 3339 timestamp is accepted and truncated to its
// date part.
func NormalizeDate(value string) (string, error) {
	v := strings.TrimSpace(value)

	if t, err := time.Parse(dateLayout, v); err == nil {
		return t.Format(dateLayout), nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.Format(dateLayout), nil
	}

	return "", ErrInvalidDate
}

// Percentage computes attended/total*100 rounded to two decimals. Returns 0
// when no sessions were held.
func Percentage(attended, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(attended)/float64(total)*100*100) / 100
}
