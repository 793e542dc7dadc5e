package evm

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/hashstructure/v2"

	"github.com/jmorand/planline/internal/domain"
)

// SnapshotInput is everything a baseline captures: the scheduled tasks plus
// the cost and staffing records that price them.
type SnapshotInput struct {
	ProjectID    string
	Name         string
	Tasks        []*domain.Task
	Dependencies []domain.Dependency
	Assignments  []*domain.Assignment
	Resources    []*domain.Resource
	CostItems    []*domain.CostItem
	Now          time.Time
}

// BuildBaseline freezes the current plan into an immutable snapshot. Each
// task row carries its planned dates and a planned cost assembled from three
// sources: cost items linked to the task, labor priced as planned hours
// times the resource's hourly rate, and a duration-weighted share of cost
// items not linked to any task. Equal shares apply when every task has zero
// duration, so unscoped cost never silently disappears.
func BuildBaseline(in SnapshotInput) (*domain.Baseline, error) {
	if len(in.Tasks) == 0 {
		return nil, fmt.Errorf("project %s: %w", in.ProjectID, ErrEmptySnapshot)
	}

	rateByResource := make(map[string]float64, len(in.Resources))
	for _, r := range in.Resources {
		rateByResource[r.ID] = r.HourlyRate
	}

	laborCost := make(map[string]float64)
	laborHours := make(map[string]float64)
	for _, a := range in.Assignments {
		laborHours[a.TaskID] += a.PlannedHours
		laborCost[a.TaskID] += a.PlannedHours * rateByResource[a.ResourceID]
	}

	directCost := make(map[string]float64)
	var unscoped float64
	for _, c := range in.CostItems {
		if c.TaskID != nil {
			directCost[*c.TaskID] += c.PlannedAmount
		} else {
			unscoped += c.PlannedAmount
		}
	}

	totalDuration := 0
	for _, t := range in.Tasks {
		totalDuration += t.DurationDays
	}

	b := &domain.Baseline{
		ID:        uuid.NewString(),
		ProjectID: in.ProjectID,
		Name:      in.Name,
		CreatedAt: in.Now.UTC(),
	}
	for _, t := range in.Tasks {
		share := unscoped / float64(len(in.Tasks))
		if totalDuration > 0 {
			share = unscoped * float64(t.DurationDays) / float64(totalDuration)
		}
		b.Tasks = append(b.Tasks, domain.BaselineTask{
			BaselineID:   b.ID,
			TaskID:       t.ID,
			TaskName:     t.Name,
			Start:        copyDate(t.ComputedStart),
			Finish:       copyDate(t.ComputedEnd),
			DurationDays: t.DurationDays,
			PlannedCost:  directCost[t.ID] + laborCost[t.ID] + share,
			PlannedHours: laborHours[t.ID],
		})
	}

	hash, err := snapshotHash(b.Tasks, in.Dependencies)
	if err != nil {
		return nil, fmt.Errorf("fingerprint baseline: %w", err)
	}
	b.StateHash = hash
	return b, nil
}

// snapshotHash fingerprints the frozen plan. Dates are hashed as formatted
// strings because time.Time carries no exported fields for the hasher to see.
func snapshotHash(tasks []domain.BaselineTask, deps []domain.Dependency) (uint64, error) {
	type taskPrint struct {
		TaskID   string
		Name     string
		Start    string
		Finish   string
		Duration int
		Cost     float64
		Hours    float64
	}
	type depPrint struct {
		Pred string
		Succ string
		Type string
		Lag  int
	}
	type print struct {
		Tasks []taskPrint
		Deps  []depPrint
	}

	p := print{}
	for _, t := range tasks {
		p.Tasks = append(p.Tasks, taskPrint{
			TaskID:   t.TaskID,
			Name:     t.TaskName,
			Start:    dateString(t.Start),
			Finish:   dateString(t.Finish),
			Duration: t.DurationDays,
			Cost:     t.PlannedCost,
			Hours:    t.PlannedHours,
		})
	}
	for _, d := range deps {
		p.Deps = append(p.Deps, depPrint{Pred: d.PredecessorID, Succ: d.SuccessorID, Type: string(d.Type), Lag: d.LagDays})
	}
	return hashstructure.Hash(p, hashstructure.FormatV2, nil)
}

func copyDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

func dateString(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(domain.DateLayout)
}
