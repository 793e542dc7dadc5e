package workcalendar

import (
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/domain"
)

// maxScanDays bounds every day-by-day walk. A valid calendar has at least
// one working weekday, so a week-long scan always terminates; the cap turns
// a malformed calendar that slipped past validation into an error instead
// of a hang.
const maxScanDays = 3700

// IsWorkingDay reports whether d counts as a working day: its weekday must
// be in the calendar's working set and its date must not be a holiday.
func IsWorkingDay(cal *domain.WorkingCalendar, d time.Time) bool {
	if !cal.Weekdays[d.Weekday()] {
		return false
	}
	return !cal.Holidays[domain.DateKey(d)]
}

// NextWorkingDay returns d itself when d is a working day, otherwise the
// first working day after d.
func NextWorkingDay(cal *domain.WorkingCalendar, d time.Time) (time.Time, error) {
	if err := check(cal); err != nil {
		return time.Time{}, err
	}
	cur := d
	for i := 0; i < maxScanDays; i++ {
		if IsWorkingDay(cal, cur) {
			return cur, nil
		}
		cur = cur.AddDate(0, 0, 1)
	}
	return time.Time{}, fmt.Errorf("calendar %q: %w", cal.ID, ErrInvalidCalendar)
}

// AddWorkingDays returns the n-th working day strictly after (n > 0) or
// before (n < 0) the anchor. The anchor is first snapped forward to a
// working day; n = 0 returns the snapped anchor. Snapping is the fixed
// tie-break for zero-duration tasks: a milestone anchored to a holiday or
// weekend floats forward to the next working day.
func AddWorkingDays(cal *domain.WorkingCalendar, d time.Time, n int) (time.Time, error) {
	cur, err := NextWorkingDay(cal, d)
	if err != nil {
		return time.Time{}, err
	}
	step := 1
	remaining := n
	if n < 0 {
		step = -1
		remaining = -n
	}
	guard := 0
	for remaining > 0 {
		cur = cur.AddDate(0, 0, step)
		if IsWorkingDay(cal, cur) {
			remaining--
		}
		guard++
		if guard > maxScanDays {
			return time.Time{}, fmt.Errorf("calendar %q: %w", cal.ID, ErrInvalidCalendar)
		}
	}
	return cur, nil
}

// WorkingDaysBetween counts working days strictly after a (snapped forward
// to a working day) up to and including b. The count is negative when b
// precedes a. For any date d and n, AddWorkingDays(d, n) followed by
// WorkingDaysBetween(d, result) recovers n.
func WorkingDaysBetween(cal *domain.WorkingCalendar, a, b time.Time) (int, error) {
	if b.Before(a) {
		n, err := WorkingDaysBetween(cal, b, a)
		return -n, err
	}
	cur, err := NextWorkingDay(cal, a)
	if err != nil {
		return 0, err
	}
	count := 0
	guard := 0
	for cur.Before(b) {
		cur = cur.AddDate(0, 0, 1)
		if IsWorkingDay(cal, cur) {
			count++
		}
		guard++
		if guard > maxScanDays {
			return 0, fmt.Errorf("calendar %q: %w", cal.ID, ErrInvalidCalendar)
		}
	}
	return count, nil
}

// SpanWorkingDays counts working days in the inclusive range [a, b].
// This is the duration of a task occupying the whole range.
func SpanWorkingDays(cal *domain.WorkingCalendar, a, b time.Time) (int, error) {
	if b.Before(a) {
		return 0, nil
	}
	n, err := WorkingDaysBetween(cal, a, b)
	if err != nil {
		return 0, err
	}
	if IsWorkingDay(cal, a) {
		n++
	}
	return n, nil
}

// WorkingHoursBetween converts the inclusive working-day span to hours
// using the calendar's hours-per-day.
func WorkingHoursBetween(cal *domain.WorkingCalendar, a, b time.Time) (float64, error) {
	days, err := SpanWorkingDays(cal, a, b)
	if err != nil {
		return 0, err
	}
	return float64(days) * cal.HoursPerDay, nil
}

func check(cal *domain.WorkingCalendar) error {
	for _, on := range cal.Weekdays {
		if on {
			return nil
		}
	}
	return fmt.Errorf("calendar %q: %w", cal.ID, ErrInvalidCalendar)
}
