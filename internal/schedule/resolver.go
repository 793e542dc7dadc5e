package schedule

import (
	"time"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/workcalendar"
)

// The resolver translates one typed dependency edge into a date bound.
//
// Finish dates are inclusive: a 3-day task starting Monday finishes
// Wednesday. A Finish-to-Start edge therefore puts the successor on the
// next working day after the lagged predecessor finish, while the other
// three types align starts or finishes directly. Lag is signed and counted
// in working days.

// earliestStartBound returns the lower bound the edge imposes on the
// successor's earliest start, given the predecessor's computed dates and
// the successor's duration.
func earliestStartBound(
	cal *domain.WorkingCalendar,
	d domain.Dependency,
	predES, predEF time.Time,
	succDuration int,
) (time.Time, error) {
	switch d.Type {
	case domain.FinishToStart:
		return workcalendar.AddWorkingDays(cal, predEF, d.LagDays+1)
	case domain.StartToStart:
		return workcalendar.AddWorkingDays(cal, predES, d.LagDays)
	case domain.FinishToFinish:
		finish, err := workcalendar.AddWorkingDays(cal, predEF, d.LagDays)
		if err != nil {
			return time.Time{}, err
		}
		return finishToStart(cal, finish, succDuration)
	case domain.StartToFinish:
		finish, err := workcalendar.AddWorkingDays(cal, predES, d.LagDays)
		if err != nil {
			return time.Time{}, err
		}
		return finishToStart(cal, finish, succDuration)
	default:
		// Unknown types are validated away at the domain boundary; treat
		// as Finish-to-Start, the most restrictive common case.
		return workcalendar.AddWorkingDays(cal, predEF, d.LagDays+1)
	}
}

// latestFinishBound returns the upper bound the edge imposes on the
// predecessor's latest finish, given the successor's latest dates and the
// predecessor's duration. It is the exact inverse of earliestStartBound.
func latestFinishBound(
	cal *domain.WorkingCalendar,
	d domain.Dependency,
	succLS, succLF time.Time,
	predDuration int,
) (time.Time, error) {
	switch d.Type {
	case domain.FinishToStart:
		return workcalendar.AddWorkingDays(cal, succLS, -(d.LagDays + 1))
	case domain.FinishToFinish:
		return workcalendar.AddWorkingDays(cal, succLF, -d.LagDays)
	case domain.StartToStart:
		start, err := workcalendar.AddWorkingDays(cal, succLS, -d.LagDays)
		if err != nil {
			return time.Time{}, err
		}
		return startToFinish(cal, start, predDuration)
	case domain.StartToFinish:
		start, err := workcalendar.AddWorkingDays(cal, succLF, -d.LagDays)
		if err != nil {
			return time.Time{}, err
		}
		return startToFinish(cal, start, predDuration)
	default:
		return workcalendar.AddWorkingDays(cal, succLS, -(d.LagDays + 1))
	}
}

// finishToStart converts an inclusive finish date to the matching start for
// a task of the given duration.
func finishToStart(cal *domain.WorkingCalendar, finish time.Time, duration int) (time.Time, error) {
	if duration <= 0 {
		return finish, nil
	}
	return workcalendar.AddWorkingDays(cal, finish, -(duration - 1))
}

// startToFinish converts a start date to the inclusive finish for a task of
// the given duration.
func startToFinish(cal *domain.WorkingCalendar, start time.Time, duration int) (time.Time, error) {
	if duration <= 0 {
		return workcalendar.NextWorkingDay(cal, start)
	}
	return workcalendar.AddWorkingDays(cal, start, duration-1)
}
