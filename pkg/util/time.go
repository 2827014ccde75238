package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SplitHHMM parses a bare "HH:mm" clock string into its components.
func SplitHHMM(value string) (int, int, error) {
	parts := strings.SplitN(strings.TrimSpace(value), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time string %q", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time string %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid time string %q", value)
	}

	return hours, minutes, nil
}

// MinutesFromHHMM converts a "HH:mm" duration string into minutes. Malformed
// strings count as zero so optional waiting-time cells never poison a sum.
func MinutesFromHHMM(value string) int {
	hours, minutes, err := SplitHHMM(value)
	if err != nil {
		return 0
	}

	return hours*60 + minutes
}

// FormatMinutes renders a minute count as a zero-padded "HH:mm" string.
// Durations of 24h and over are a known display limitation of the format.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// CombineDateTime sets a "HH:mm" clock value on the given date. Unlike
// ResolveClockTime this is for mandatory fields: malformed input is an error.
func CombineDateTime(date time.Time, value string) (time.Time, error) {
	hours, minutes, err := SplitHHMM(value)
	if err != nil {
		return time.Time{}, err
	}

	return time.Date(date.Year(), date.Month(), date.Day(), hours, minutes, 0, 0, date.Location()), nil
}

// ResolveClockTime derives an absolute timestamp from a bare "HH:mm" value
// scattered across composition rows. The base date provides the calendar day;
// when a previous timestamp anchor exists and the naive result would precede
// it, the service crossed midnight and the day rolls forward. The second
// check re-applies the rollover when the gap is negative but within 23 hours,
// compensating for a coarse day-granularity artifact in the running reference
// date on multi-day journeys.
//
// Malformed values yield nil, never an error: composition cells are optional.
func ResolveClockTime(base time.Time, value string, previous *time.Time) *time.Time {
	hours, minutes, err := SplitHHMM(value)
	if err != nil {
		return nil
	}

	resolved := time.Date(base.Year(), base.Month(), base.Day(), hours, minutes, 0, 0, base.Location())

	if previous != nil {
		if resolved.Before(*previous) {
			resolved = resolved.AddDate(0, 0, 1)
		}

		if gap := resolved.Sub(*previous).Hours(); gap < 0 && gap > -23 {
			resolved = resolved.AddDate(0, 0, 1)
		}
	}

	return &resolved
}
