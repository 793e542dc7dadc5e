package leveling

import (
	"fmt"
	"sort"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/schedule"
	"github.com/jmorand/planline/internal/workcalendar"
)

// AutoLevel greedily resolves resource over-allocation by shifting tasks
// forward one working day at a time, re-running the forward pass after each
// shift. Shifts are applied through the task's planned-start floor, so a
// shifted task can never land before its own predecessor bounds. Conflicts
// still open when the iteration horizon is reached come back flagged
// unresolved; they are data, not an error, unless the input asks for strict
// mode.
//
// Victim policy (documented tie-break): a task is shiftable only when it
// has no successors, no actual dates, and 0% progress; among candidates
// the lowest priority goes first, then the latest start, then the ID.
func AutoLevel(in Input) (*Result, error) {
	tasks := copyTasks(in.Tasks)
	successors := successorSet(in.Dependencies)

	res := &Result{}
	horizon := in.maxIterations()

	for {
		scheduled, err := reschedule(in, tasks)
		if err != nil {
			return nil, err
		}
		tasks = scheduled

		conflicts, err := FindConflicts(withTasks(in, tasks))
		if err != nil {
			return nil, err
		}
		if len(conflicts) == 0 {
			res.Tasks = tasks
			return res, nil
		}
		if res.Iterations >= horizon {
			return unresolved(in, res, tasks, conflicts)
		}

		worst := worstConflict(conflicts)
		victim := chooseVictim(worst, tasks, successors)
		if victim == nil {
			return unresolved(in, res, tasks, conflicts)
		}

		oldStart := *victim.ComputedStart
		newStart, err := workcalendar.AddWorkingDays(in.Calendar, oldStart, 1)
		if err != nil {
			return nil, err
		}
		victim.PlannedStart = &newStart

		res.Actions = append(res.Actions, Action{
			TaskID:     victim.ID,
			TaskName:   victim.Name,
			ResourceID: worst.ResourceID,
			OldStart:   oldStart,
			NewStart:   newStart,
			Reason: fmt.Sprintf("auto-level: %.1f%% load on %s from %s",
				worst.TotalAllocationPercent, worst.ResourceID,
				worst.Start.Format(domain.DateLayout)),
		})
		res.Iterations++
	}
}

// worstConflict picks the conflict to attack first: highest total, then
// most contributing tasks, then earliest start.
func worstConflict(conflicts []Conflict) Conflict {
	worst := conflicts[0]
	for _, c := range conflicts[1:] {
		switch {
		case c.TotalAllocationPercent > worst.TotalAllocationPercent:
			worst = c
		case c.TotalAllocationPercent == worst.TotalAllocationPercent && len(c.Entries) > len(worst.Entries):
			worst = c
		case c.TotalAllocationPercent == worst.TotalAllocationPercent &&
			len(c.Entries) == len(worst.Entries) && c.Start.Before(worst.Start):
			worst = c
		}
	}
	return worst
}

func chooseVictim(c Conflict, tasks []*domain.Task, successors map[string]bool) *domain.Task {
	byID := make(map[string]*domain.Task, len(tasks))
	for _, t := range tasks {
		byID[t.ID] = t
	}

	var candidates []*domain.Task
	for _, e := range c.Entries {
		t := byID[e.TaskID]
		if t == nil || t.ComputedStart == nil {
			continue
		}
		if successors[t.ID] || t.ActualStart != nil || t.ActualEnd != nil || t.PercentComplete > 0 {
			continue
		}
		candidates = append(candidates, t)
	}
	if len(candidates) == 0 {
		return nil
	}
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		ra, rb := domain.PriorityRank(a.Priority), domain.PriorityRank(b.Priority)
		if ra != rb {
			return ra > rb // lower priority shifts first
		}
		if !a.ComputedStart.Equal(*b.ComputedStart) {
			return a.ComputedStart.After(*b.ComputedStart) // later start shifts first
		}
		return a.ID < b.ID
	})
	return candidates[0]
}

// unresolved closes an auto-leveling run that still has open conflicts:
// flagged as data by default, as ErrUnresolvedConflict in strict mode.
func unresolved(in Input, res *Result, tasks []*domain.Task, conflicts []Conflict) (*Result, error) {
	if in.Strict {
		return nil, fmt.Errorf("%w: %d conflict(s) open after %d iteration(s)",
			ErrUnresolvedConflict, len(conflicts), res.Iterations)
	}
	res.Tasks = tasks
	res.Conflicts = markUnresolved(conflicts)
	return res, nil
}

func markUnresolved(conflicts []Conflict) []Conflict {
	for i := range conflicts {
		conflicts[i].Unresolved = true
	}
	return conflicts
}

func successorSet(deps []domain.Dependency) map[string]bool {
	out := make(map[string]bool, len(deps))
	for _, d := range deps {
		out[d.PredecessorID] = true
	}
	return out
}

func copyTasks(tasks []*domain.Task) []*domain.Task {
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		c := *t
		out = append(out, &c)
	}
	return out
}

func withTasks(in Input, tasks []*domain.Task) Input {
	in.Tasks = tasks
	return in
}

// reschedule runs a forward/backward pass over the working copies and
// returns them annotated with fresh computed dates.
func reschedule(in Input, tasks []*domain.Task) ([]*domain.Task, error) {
	res, err := schedule.Run(schedule.Input{
		ProjectStart: in.ProjectStart,
		Tasks:        tasks,
		Dependencies: in.Dependencies,
		Calendar:     in.Calendar,
	})
	if err != nil {
		return nil, err
	}
	return res.Apply(tasks), nil
}
