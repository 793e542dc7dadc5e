package schedule

import (
	"fmt"
	"time"

	"github.com/jmorand/planline/internal/workcalendar"
)

// Run executes a full CPM computation over the input snapshot: cycle check,
// forward pass (earliest dates), backward pass (latest dates), float and
// critical path. It is side-effect free; computed dates are returned in the
// Result, never written into the input.
func Run(in Input) (*Result, error) {
	if err := in.Calendar.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", workcalendar.ErrInvalidCalendar, err)
	}
	if len(in.Tasks) == 0 {
		return &Result{Tasks: map[string]*TaskSchedule{}}, nil
	}

	g, err := buildGraph(in.Tasks, in.Dependencies)
	if err != nil {
		return nil, err
	}

	es, ef, err := forwardPass(in, g)
	if err != nil {
		return nil, err
	}

	projectFinish := maxTime(ef)

	ls, lf, err := backwardPass(in, g, projectFinish)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Tasks:         make(map[string]*TaskSchedule, len(g.order)),
		Order:         g.order,
		ProjectFinish: projectFinish,
	}
	for _, id := range g.order {
		t := g.tasks[id]
		fl, err := workcalendar.WorkingDaysBetween(in.Calendar, es[id], ls[id])
		if err != nil {
			return nil, err
		}
		if fl < 0 {
			// Actual dates can push a task past its latest allowed start;
			// float never goes negative in the reported schedule.
			fl = 0
		}
		ts := &TaskSchedule{
			TaskID:         id,
			EarliestStart:  es[id],
			EarliestFinish: ef[id],
			LatestStart:    ls[id],
			LatestFinish:   lf[id],
			TotalFloatDays: fl,
			IsCritical:     fl == 0,
		}
		if t.Deadline != nil && ef[id].After(*t.Deadline) {
			late, err := workcalendar.WorkingDaysBetween(in.Calendar, *t.Deadline, ef[id])
			if err != nil {
				return nil, err
			}
			ts.LateByDays = late
		}
		res.Tasks[id] = ts
		if ts.IsCritical {
			res.CriticalPath = append(res.CriticalPath, id)
		}
	}

	if err := verifyCriticalChain(res, g); err != nil {
		return nil, err
	}
	return res, nil
}

func forwardPass(in Input, g *graph) (es, ef map[string]time.Time, err error) {
	cal := in.Calendar
	es = make(map[string]time.Time, len(g.order))
	ef = make(map[string]time.Time, len(g.order))

	for _, id := range g.order {
		t := g.tasks[id]
		dur := t.DurationDays

		anchor := in.ProjectStart
		if t.PlannedStart != nil && t.PlannedStart.After(anchor) {
			anchor = *t.PlannedStart
		}
		start, err := workcalendar.NextWorkingDay(cal, anchor)
		if err != nil {
			return nil, nil, err
		}
		for _, d := range g.incoming[id] {
			bound, err := earliestStartBound(cal, d, es[d.PredecessorID], ef[d.PredecessorID], dur)
			if err != nil {
				return nil, nil, err
			}
			if bound.After(start) {
				start = bound
			}
		}
		finish, err := startToFinish(cal, start, dur)
		if err != nil {
			return nil, nil, err
		}

		// Actual dates are facts: they override derived dates.
		switch {
		case t.ActualEnd != nil:
			finish = *t.ActualEnd
			if t.ActualStart != nil {
				start = *t.ActualStart
			} else {
				start, err = finishToStart(cal, finish, dur)
				if err != nil {
					return nil, nil, err
				}
			}
		case t.ActualStart != nil && t.ActualStart.After(start):
			start = *t.ActualStart
			if dur <= 0 {
				finish = start
			} else {
				finish, err = startToFinish(cal, start, dur)
				if err != nil {
					return nil, nil, err
				}
			}
		}

		es[id], ef[id] = start, finish
	}
	return es, ef, nil
}

func backwardPass(in Input, g *graph, projectFinish time.Time) (ls, lf map[string]time.Time, err error) {
	cal := in.Calendar
	ls = make(map[string]time.Time, len(g.order))
	lf = make(map[string]time.Time, len(g.order))

	for i := len(g.order) - 1; i >= 0; i-- {
		id := g.order[i]
		t := g.tasks[id]
		dur := t.DurationDays

		// The project finish caps every latest finish. A task whose only
		// outgoing edges are start-type (SS/SF) would otherwise derive a
		// bound past the end of the project and drain the critical set.
		bound := projectFinish
		for _, d := range g.outgoing[id] {
			b, err := latestFinishBound(cal, d, ls[d.SuccessorID], lf[d.SuccessorID], dur)
			if err != nil {
				return nil, nil, err
			}
			if b.Before(bound) {
				bound = b
			}
		}
		lf[id] = bound

		start, err := finishToStart(cal, lf[id], dur)
		if err != nil {
			return nil, nil, err
		}
		ls[id] = start
	}
	return ls, lf, nil
}

// verifyCriticalChain checks that the zero-float set forms a chain ending at
// the project finish: some critical task finishes exactly there, and walking
// critical predecessors back from it stays inside the critical set until a
// chain head with no critical predecessor (a task anchored by the project
// start, a planned-start floor or actual dates). A zero-float task without
// predecessors is a degenerate chain of length 1.
func verifyCriticalChain(res *Result, g *graph) error {
	if len(res.Tasks) == 0 {
		return nil
	}
	if len(res.CriticalPath) == 0 {
		return fmt.Errorf("%w: no zero-float task found", ErrInconsistent)
	}
	critical := make(map[string]bool, len(res.CriticalPath))
	for _, id := range res.CriticalPath {
		critical[id] = true
	}

	var tail string
	for _, id := range res.CriticalPath {
		if res.Tasks[id].EarliestFinish.Equal(res.ProjectFinish) {
			tail = id
			break
		}
	}
	if tail == "" {
		return fmt.Errorf("%w: no critical task reaches the project finish", ErrInconsistent)
	}

	cur := tail
	for hops := 0; ; hops++ {
		if hops > len(res.Tasks) {
			return fmt.Errorf("%w: critical chain does not terminate", ErrInconsistent)
		}
		next := ""
		for _, d := range g.incoming[cur] {
			if critical[d.PredecessorID] {
				next = d.PredecessorID
				break
			}
		}
		if next == "" {
			return nil
		}
		cur = next
	}
}

func maxTime(m map[string]time.Time) time.Time {
	var max time.Time
	for _, v := range m {
		if v.After(max) {
			max = v
		}
	}
	return max
}
