package leveling

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/workcalendar"
)

// allocation totals within this epsilon of the threshold do not conflict;
// guards float accumulation noise at exactly 100%.
const allocEpsilon = 1e-9

// maxRangeDays caps the per-task day walk; a task range longer than ten
// years means corrupt input, not a schedule.
const maxRangeDays = 3700

// FindConflicts detects resource over-allocation without mutating schedule
// state (preview mode). For every resource and working day it sums the
// allocation of all not-completed tasks whose scheduled or actual range
// covers the day; runs of adjacent working days over the threshold with
// the same task set coalesce into one conflict.
func FindConflicts(in Input) ([]Conflict, error) {
	threshold := in.threshold()
	tasksByID := make(map[string]*domain.Task, len(in.Tasks))
	for _, t := range in.Tasks {
		tasksByID[t.ID] = t
	}

	type dayKey struct {
		resourceID string
		day        string
	}
	loads := make(map[dayKey]map[string]float64) // -> taskID -> alloc
	days := make(map[dayKey]time.Time)

	for _, a := range in.Assignments {
		t := tasksByID[a.TaskID]
		if t == nil || t.Status == domain.TaskCompleted || a.AllocationPercent <= 0 {
			continue
		}
		start, end := taskRange(t)
		if start == nil || end == nil {
			continue
		}
		cur := *start
		for i := 0; !cur.After(*end); i++ {
			if i > maxRangeDays {
				return nil, fmt.Errorf("task %s: date range exceeds %d days", t.ID, maxRangeDays)
			}
			if workcalendar.IsWorkingDay(in.Calendar, cur) {
				k := dayKey{a.ResourceID, domain.DateKey(cur)}
				if loads[k] == nil {
					loads[k] = make(map[string]float64)
				}
				loads[k][t.ID] += a.AllocationPercent
				days[k] = cur
			}
			cur = cur.AddDate(0, 0, 1)
		}
	}

	type dayLoad struct {
		day     time.Time
		total   float64
		entries []ConflictEntry
		sig     string
	}
	byResource := make(map[string][]dayLoad)
	for k, byTask := range loads {
		var total float64
		for _, alloc := range byTask {
			total += alloc
		}
		if total <= threshold+allocEpsilon {
			continue
		}
		entries := make([]ConflictEntry, 0, len(byTask))
		for taskID, alloc := range byTask {
			name := taskID
			if t := tasksByID[taskID]; t != nil {
				name = t.Name
			}
			entries = append(entries, ConflictEntry{TaskID: taskID, TaskName: name, AllocationPercent: alloc})
		}
		sort.Slice(entries, func(i, j int) bool {
			if entries[i].AllocationPercent != entries[j].AllocationPercent {
				return entries[i].AllocationPercent > entries[j].AllocationPercent
			}
			return entries[i].TaskName < entries[j].TaskName
		})
		var sig strings.Builder
		for _, e := range entries {
			fmt.Fprintf(&sig, "%s=%.4f;", e.TaskID, e.AllocationPercent)
		}
		byResource[k.resourceID] = append(byResource[k.resourceID], dayLoad{
			day:     days[k],
			total:   total,
			entries: entries,
			sig:     sig.String(),
		})
	}

	var conflicts []Conflict
	for resourceID, dls := range byResource {
		sort.Slice(dls, func(i, j int) bool { return dls[i].day.Before(dls[j].day) })
		for i := 0; i < len(dls); {
			j := i + 1
			for j < len(dls) && dls[j].sig == dls[i].sig {
				next, err := workcalendar.AddWorkingDays(in.Calendar, dls[j-1].day, 1)
				if err != nil {
					return nil, err
				}
				if !next.Equal(dls[j].day) {
					break
				}
				j++
			}
			conflicts = append(conflicts, Conflict{
				ResourceID:             resourceID,
				Start:                  dls[i].day,
				End:                    dls[j-1].day,
				TotalAllocationPercent: dls[i].total,
				Entries:                dls[i].entries,
			})
			i = j
		}
	}

	sort.Slice(conflicts, func(i, j int) bool {
		if !conflicts[i].Start.Equal(conflicts[j].Start) {
			return conflicts[i].Start.Before(conflicts[j].Start)
		}
		if conflicts[i].ResourceID != conflicts[j].ResourceID {
			return conflicts[i].ResourceID < conflicts[j].ResourceID
		}
		return conflicts[i].TotalAllocationPercent > conflicts[j].TotalAllocationPercent
	})
	return conflicts, nil
}

// taskRange picks the date range a task occupies: actual dates win over
// computed ones.
func taskRange(t *domain.Task) (start, end *time.Time) {
	start = t.ComputedStart
	if t.ActualStart != nil {
		start = t.ActualStart
	}
	end = t.ComputedEnd
	if t.ActualEnd != nil {
		end = t.ActualEnd
	}
	return start, end
}
