package leveling

import (
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/workcalendar"
)

// ManualShift moves one task to an explicit new start date and reschedules
// the snapshot so the change ripples through the task's successors. The
// shift is rejected when the task is unknown, when it is pinned by actual
// dates, or when the requested start lands earlier than its predecessor
// constraints allow. Returns annotated task copies; the input is untouched.
func ManualShift(in Input, taskID string, newStart time.Time) (*Result, error) {
	tasks := copyTasks(in.Tasks)

	var target *domain.Task
	for _, t := range tasks {
		if t.ID == taskID {
			target = t
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrUnknownTask)
	}
	if target.ActualStart != nil || target.ActualEnd != nil {
		return nil, fmt.Errorf("task %s has actual dates: %w", taskID, ErrInvalidShift)
	}

	// The requested start snaps forward off weekends and holidays before
	// it is compared with anything.
	wanted, err := workcalendar.NextWorkingDay(in.Calendar, newStart)
	if err != nil {
		return nil, err
	}

	var oldStart time.Time
	if target.ComputedStart != nil {
		oldStart = *target.ComputedStart
	}
	target.PlannedStart = &wanted

	scheduled, err := reschedule(in, tasks)
	if err != nil {
		return nil, err
	}

	// The planned start is a floor for the forward pass. If the pass lands
	// the task later than asked, a predecessor constraint forbids the
	// requested date.
	var shifted *domain.Task
	for _, t := range scheduled {
		if t.ID == taskID {
			shifted = t
			break
		}
	}
	if shifted == nil || shifted.ComputedStart == nil {
		return nil, fmt.Errorf("task %s: %w", taskID, ErrUnknownTask)
	}
	if shifted.ComputedStart.After(wanted) {
		return nil, fmt.Errorf("task %s cannot start %s before its predecessors allow (%s): %w",
			taskID, wanted.Format(domain.DateLayout),
			shifted.ComputedStart.Format(domain.DateLayout), ErrInvalidShift)
	}

	res := &Result{Tasks: scheduled}
	res.Actions = append(res.Actions, Action{
		TaskID:   taskID,
		TaskName: target.Name,
		OldStart: oldStart,
		NewStart: wanted,
		Reason:   "manual shift",
	})

	conflicts, err := FindConflicts(withTasks(in, scheduled))
	if err != nil {
		return nil, err
	}
	res.Conflicts = conflicts
	return res, nil
}
