package formatter

import (
	"testing"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/evm"
	"github.com/stretchr/testify/assert"
)

func TestFormatMetrics_ShowsAllFigures(t *testing.T) {
	spi := 1.0
	cpi := 1.11
	m := &evm.Metrics{
		AsOf:                     domain.Date(2025, 1, 10),
		PlannedValue:             500,
		EarnedValue:              500,
		ActualCost:               450,
		ScheduleVariance:         0,
		CostVariance:             50,
		SchedulePerformanceIndex: &spi,
		CostPerformanceIndex:     &cpi,
		BudgetAtCompletion:       1000,
		EstimateAtCompletion:     900,
		EstimateToComplete:       450,
		VarianceAtCompletion:     100,
	}

	out := FormatMetrics(m)

	assert.Contains(t, out, "2025-01-10")
	assert.Contains(t, out, "500.00")
	assert.Contains(t, out, "450.00")
	assert.Contains(t, out, "+50.00")
	assert.Contains(t, out, "1.11")
	assert.Contains(t, out, "900.00")
}

func TestFormatMetrics_NilIndices(t *testing.T) {
	m := &evm.Metrics{AsOf: domain.Date(2025, 1, 10)}

	out := FormatMetrics(m)
	assert.Contains(t, out, "n/a")
}

func TestFormatBaselineList_ShowsHash(t *testing.T) {
	out := FormatBaselineList([]*domain.Baseline{
		{
			ID:        "bbbb1111-0000-0000-0000-000000000000",
			Name:      "v1",
			StateHash: 0xdeadbeef,
			CreatedAt: domain.Date(2025, 1, 6),
		},
	})

	assert.Contains(t, out, "v1")
	assert.Contains(t, out, "00000000deadbeef")
}
