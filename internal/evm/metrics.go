package evm

import (
	"time"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/workcalendar"
)

// Input drives one earned-value computation: the baseline plan, the live
// tasks that carry progress, the actual cost records, and the as-of date.
type Input struct {
	Baseline  *domain.Baseline
	Tasks     []*domain.Task
	CostItems []*domain.CostItem
	Calendar  *domain.WorkingCalendar
	AsOf      time.Time
}

// Metrics is a standard earned-value report as of a single date. The two
// performance indices are nil when their denominator is zero; a project with
// no planned value yet has no schedule performance to speak of.
type Metrics struct {
	AsOf time.Time

	PlannedValue float64
	EarnedValue  float64
	ActualCost   float64

	ScheduleVariance float64
	CostVariance     float64

	SchedulePerformanceIndex *float64
	CostPerformanceIndex     *float64

	BudgetAtCompletion   float64
	EstimateAtCompletion float64
	EstimateToComplete   float64
	VarianceAtCompletion float64
}

// Compute derives the earned-value metrics for one baseline.
//
// PV accrues each baseline task's planned cost linearly over its planned
// working days; EV is planned cost scaled by the live task's percent
// complete; AC sums actual amounts incurred on or before the as-of date
// (undated actuals count as incurred). EAC uses the CPI projection when CPI
// exists and falls back to AC plus remaining planned work otherwise.
func Compute(in Input) (*Metrics, error) {
	if in.Baseline == nil {
		return nil, ErrNoBaseline
	}
	if err := in.Calendar.Validate(); err != nil {
		return nil, err
	}

	pctByTask := make(map[string]float64, len(in.Tasks))
	for _, t := range in.Tasks {
		pctByTask[t.ID] = t.PercentComplete
	}

	m := &Metrics{AsOf: in.AsOf}
	for _, bt := range in.Baseline.Tasks {
		frac, err := plannedFraction(in.Calendar, bt, in.AsOf)
		if err != nil {
			return nil, err
		}
		m.PlannedValue += bt.PlannedCost * frac
		m.EarnedValue += bt.PlannedCost * clamp01(pctByTask[bt.TaskID]/100)
		m.BudgetAtCompletion += bt.PlannedCost
	}

	for _, c := range in.CostItems {
		if c.ActualAmount == 0 {
			continue
		}
		if c.IncurredDate != nil && c.IncurredDate.After(in.AsOf) {
			continue
		}
		m.ActualCost += c.ActualAmount
	}

	m.ScheduleVariance = m.EarnedValue - m.PlannedValue
	m.CostVariance = m.EarnedValue - m.ActualCost

	if m.PlannedValue != 0 {
		spi := m.EarnedValue / m.PlannedValue
		m.SchedulePerformanceIndex = &spi
	}
	if m.ActualCost != 0 {
		cpi := m.EarnedValue / m.ActualCost
		m.CostPerformanceIndex = &cpi
	}

	if m.CostPerformanceIndex != nil && *m.CostPerformanceIndex != 0 {
		m.EstimateAtCompletion = m.BudgetAtCompletion / *m.CostPerformanceIndex
	} else {
		m.EstimateAtCompletion = m.ActualCost + (m.BudgetAtCompletion - m.EarnedValue)
	}
	m.EstimateToComplete = m.EstimateAtCompletion - m.ActualCost
	m.VarianceAtCompletion = m.BudgetAtCompletion - m.EstimateAtCompletion
	return m, nil
}

// plannedFraction is how much of a baseline task's cost is due by the as-of
// date: elapsed planned working days over total planned working days,
// clamped to [0, 1]. Undated rows are due in full from day one.
func plannedFraction(cal *domain.WorkingCalendar, bt domain.BaselineTask, asOf time.Time) (float64, error) {
	if bt.Start == nil || bt.Finish == nil {
		return 1, nil
	}
	if asOf.Before(*bt.Start) {
		return 0, nil
	}
	if !asOf.Before(*bt.Finish) {
		return 1, nil
	}
	total, err := workcalendar.SpanWorkingDays(cal, *bt.Start, *bt.Finish)
	if err != nil {
		return 0, err
	}
	if total <= 0 {
		return 1, nil
	}
	elapsed, err := workcalendar.SpanWorkingDays(cal, *bt.Start, asOf)
	if err != nil {
		return 0, err
	}
	return clamp01(float64(elapsed) / float64(total)), nil
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
