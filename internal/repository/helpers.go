package repository

import (
	"database/sql"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// parseNullableTime parses a sql.NullString into a *time.Time using the given layout.
// Returns nil if the value is NULL, empty, or fails to parse.
func parseNullableTime(s sql.NullString, layout string) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(layout, s.String)
	if err != nil {
		return nil
	}
	return &t
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil, otherwise returns the formatted string.
func nullableTimeToString(t *time.Time, layout string) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(layout)
}

// nullableIntToValue converts a *int to a value suitable for SQLite storage.
func nullableIntToValue(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// nullableString converts a *string to a value suitable for SQLite storage.
func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

// nowUTC returns the current UTC time formatted as RFC3339.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// weekdaysToCSV serializes a working-weekday set as sorted weekday ordinals,
// e.g. Mon-Fri becomes "1,2,3,4,5".
func weekdaysToCSV(weekdays map[time.Weekday]bool) string {
	var days []int
	for d, on := range weekdays {
		if on {
			days = append(days, int(d))
		}
	}
	sort.Ints(days)
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}

// csvToWeekdays parses the stored ordinal list back into a weekday set.
func csvToWeekdays(s string) (map[time.Weekday]bool, error) {
	out := make(map[time.Weekday]bool)
	if s == "" {
		return out, nil
	}
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 || n > 6 {
			return nil, fmt.Errorf("invalid weekday %q in calendar", part)
		}
		out[time.Weekday(n)] = true
	}
	return out, nil
}

// hashToString stores a uint64 fingerprint losslessly; SQLite integers are
// signed 64-bit.
func hashToString(h uint64) string {
	return strconv.FormatUint(h, 10)
}

func stringToHash(s string) (uint64, error) {
	if s == "" {
		return 0, nil
	}
	h, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing state hash: %w", err)
	}
	return h, nil
}
