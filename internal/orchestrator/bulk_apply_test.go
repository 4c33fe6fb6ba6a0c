package orchestrator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

func TestBulkApply_DetectsConflictAcrossVariants(t *testing.T) {
	o := &Orchestrator{}
	d := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

	variants := []model.ScheduleVariant{
		{
			VariantID: "v1",
			Blocks: []model.ShiftBlock{
				{EmployeeID: "E1", Date: d, Start: d.Add(8 * time.Hour), End: d.Add(16 * time.Hour)},
			},
		},
		{
			VariantID: "v2",
			Blocks: []model.ShiftBlock{
				{EmployeeID: "E1", Date: d, Start: d.Add(12 * time.Hour), End: d.Add(20 * time.Hour)},
			},
		},
	}

	result := o.BulkApply(BulkApplyInput{Variants: variants, Mode: model.ModePhased})
	require.Len(t, result.ConflictReport.EmployeeConflicts, 1)
	assert.Equal(t, "E1", result.ConflictReport.EmployeeConflicts[0].EmployeeID)
	assert.ElementsMatch(t, []string{"v1", "v2"}, result.ConflictReport.EmployeeConflicts[0].VariantIDs)
}

func TestBulkApply_TimelineByMode(t *testing.T) {
	o := &Orchestrator{}

	immediate := o.BulkApply(BulkApplyInput{Mode: model.ModeImmediateFull})
	assert.Equal(t, 1, immediate.TimelineWeeks)
	assert.False(t, immediate.TimelineFeasible) // avg complexity 0, not > 70

	phased := o.BulkApply(BulkApplyInput{Mode: model.ModePhased})
	assert.Equal(t, 3, phased.TimelineWeeks)
	assert.True(t, phased.TimelineFeasible)

	pilot := o.BulkApply(BulkApplyInput{Mode: model.ModePilot})
	assert.Equal(t, 4, pilot.TimelineWeeks)
	assert.True(t, pilot.TimelineFeasible)
}

func TestBulkApply_RiskEscalatesWithConflictsAndMissingSkills(t *testing.T) {
	o := &Orchestrator{}
	d := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	variants := []model.ScheduleVariant{
		{VariantID: "v1", Blocks: []model.ShiftBlock{{EmployeeID: "E1", Date: d, Start: d.Add(8 * time.Hour), End: d.Add(16 * time.Hour)}}},
		{VariantID: "v2", Blocks: []model.ShiftBlock{{EmployeeID: "E1", Date: d, Start: d.Add(10 * time.Hour), End: d.Add(18 * time.Hour)}}},
	}
	result := o.BulkApply(BulkApplyInput{
		Variants:       variants,
		RequiredSkills: map[model.SkillID]struct{}{"forklift": {}},
		AvailableSkills: map[model.SkillID]struct{}{},
		Mode:            model.ModePilot,
	})
	assert.Equal(t, model.RiskHigh, result.Risk)
	assert.Contains(t, result.MissingTrainingNeeds, "forklift")
}

func TestBulkApply_MissingSkillsToleratesNearMissNaming(t *testing.T) {
	o := &Orchestrator{}
	result := o.BulkApply(BulkApplyInput{
		RequiredSkills:  map[model.SkillID]struct{}{"customer_service": {}},
		AvailableSkills: map[model.SkillID]struct{}{"customer_servic": {}},
		Mode:            model.ModePhased,
	})
	assert.Empty(t, result.MissingTrainingNeeds, "a near-miss spelling in the available pool should resolve via fuzzy match")
}

func TestBulkApply_RollbackPlanHasThreeTriggers(t *testing.T) {
	o := &Orchestrator{}
	result := o.BulkApply(BulkApplyInput{Mode: model.ModePhased})
	assert.Len(t, result.RollbackPlan.Triggers, 3)
}
