package workcalendar

import "errors"

// ErrInvalidCalendar indicates a calendar with no working weekdays. Date
// arithmetic over such a calendar can never terminate, so every entry point
// rejects it up front instead of scanning forever.
var ErrInvalidCalendar = errors.New("invalid working calendar")
