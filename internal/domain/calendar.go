package domain

import (
	"fmt"
	"time"
)

// DateLayout is the canonical storage/display format for calendar dates.
const DateLayout = "2006-01-02"

// DateKey normalizes a time to its calendar-date string. All calendar math
// works on dates, not instants; times are kept at UTC midnight.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// Date builds a UTC-midnight time for the given calendar day.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// WorkingCalendar defines which days count for duration and lag arithmetic.
// A day is working iff its weekday is in Weekdays and its date is not in
// Holidays. Holidays exclude a date regardless of weekday membership.
type WorkingCalendar struct {
	ID          string
	Name        string
	Weekdays    map[time.Weekday]bool
	HoursPerDay float64
	Holidays    map[string]bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DefaultCalendar returns a Monday-Friday, 8h/day calendar with no holidays.
func DefaultCalendar() *WorkingCalendar {
	return &WorkingCalendar{
		ID:   "default",
		Name: "Standard",
		Weekdays: map[time.Weekday]bool{
			time.Monday:    true,
			time.Tuesday:   true,
			time.Wednesday: true,
			time.Thursday:  true,
			time.Friday:    true,
		},
		HoursPerDay: 8,
		Holidays:    map[string]bool{},
	}
}

func (c *WorkingCalendar) Validate() error {
	if len(c.Weekdays) == 0 {
		return fmt.Errorf("calendar %q has no working weekdays", c.ID)
	}
	any := false
	for _, on := range c.Weekdays {
		if on {
			any = true
			break
		}
	}
	if !any {
		return fmt.Errorf("calendar %q has no working weekdays", c.ID)
	}
	if c.HoursPerDay <= 0 {
		return fmt.Errorf("calendar %q hours_per_day must be > 0, got %.1f", c.ID, c.HoursPerDay)
	}
	return nil
}
