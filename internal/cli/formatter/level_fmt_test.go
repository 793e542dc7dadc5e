package formatter

import (
	"testing"

	"github.com/jmorand/planline/internal/domain"
	"github.com/jmorand/planline/internal/leveling"
	"github.com/stretchr/testify/assert"
)

func TestFormatConflicts_Empty(t *testing.T) {
	out := FormatConflicts(nil, nil)
	assert.Contains(t, out, "No resource conflicts")
}

func TestFormatConflicts_ShowsRangeAndContributors(t *testing.T) {
	conflicts := []leveling.Conflict{
		{
			ResourceID:             "res-1",
			Start:                  domain.Date(2025, 1, 6),
			End:                    domain.Date(2025, 1, 8),
			TotalAllocationPercent: 150,
			Entries: []leveling.ConflictEntry{
				{TaskID: "a", TaskName: "Design", AllocationPercent: 80},
				{TaskID: "b", TaskName: "Build", AllocationPercent: 70},
			},
		},
	}

	out := FormatConflicts(conflicts, map[string]string{"res-1": "Dana"})

	assert.Contains(t, out, "Dana")
	assert.Contains(t, out, "2025-01-06 .. 2025-01-08")
	assert.Contains(t, out, "150%")
	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Build")
	assert.NotContains(t, out, "unresolved")
}

func TestFormatConflicts_FlagsUnresolved(t *testing.T) {
	conflicts := []leveling.Conflict{
		{
			ResourceID:             "res-1",
			Start:                  domain.Date(2025, 1, 6),
			End:                    domain.Date(2025, 1, 6),
			TotalAllocationPercent: 200,
			Unresolved:             true,
		},
	}

	out := FormatConflicts(conflicts, map[string]string{"res-1": "Dana"})
	assert.Contains(t, out, "unresolved")
}

func TestFormatLevelingResult_ShowsShifts(t *testing.T) {
	res := &leveling.Result{
		Actions: []leveling.Action{
			{
				TaskID:   "a",
				TaskName: "Design",
				OldStart: domain.Date(2025, 1, 6),
				NewStart: domain.Date(2025, 1, 7),
				Reason:   "resource overallocated",
			},
		},
	}

	out := FormatLevelingResult(res, nil)

	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "2025-01-06")
	assert.Contains(t, out, "2025-01-07")
	assert.Contains(t, out, "resource overallocated")
	assert.Contains(t, out, "No resource conflicts")
}
