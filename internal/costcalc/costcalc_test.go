package costcalc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneaiguru/wfm-optimization-core/internal/config"
	"github.com/oneaiguru/wfm-optimization-core/internal/costcalc/assignment"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

func defaultRates() config.CostRates {
	return config.CostRates{
		BaseHourly:         25.0,
		OvertimeMultiplier: 1.5,
		WeekendPremium:     5.0,
		NightDifferential:  3.0,
		SkillPremium:       map[string]float64{"basic": 0, "expert": 5},
		BenefitsRate:       0.35,
		TravelRatePerKm:    0.45,
		AccommodationNight: 90,
		CoordinationFee:    25,
	}
}

func TestCalculate_ZeroHoursNoDivisionByZero(t *testing.T) {
	c := New(nil, defaultRates())
	fi := c.Calculate(context.Background(), model.ScheduleVariant{VariantID: "v1"})
	require.Equal(t, 0.0, fi.Totals["total"])
	assert.Empty(t, fi.SavingsOpportunities)
}

func TestCalculate_OvertimeComponent(t *testing.T) {
	c := New(nil, defaultRates())
	d := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)
	variant := model.ScheduleVariant{
		VariantID: "v2",
		Blocks: []model.ShiftBlock{
			{EmployeeID: "E1", Date: d, Start: d.Add(8 * time.Hour), End: d.Add(18 * time.Hour)},
			{EmployeeID: "E1", Date: d.AddDate(0, 0, 1), Start: d.AddDate(0, 0, 1).Add(8 * time.Hour), End: d.AddDate(0, 0, 1).Add(18 * time.Hour)},
			{EmployeeID: "E1", Date: d.AddDate(0, 0, 2), Start: d.AddDate(0, 0, 2).Add(8 * time.Hour), End: d.AddDate(0, 0, 2).Add(18 * time.Hour)},
			{EmployeeID: "E1", Date: d.AddDate(0, 0, 3), Start: d.AddDate(0, 0, 3).Add(8 * time.Hour), End: d.AddDate(0, 0, 3).Add(18 * time.Hour)},
			{EmployeeID: "E1", Date: d.AddDate(0, 0, 4), Start: d.AddDate(0, 0, 4).Add(8 * time.Hour), End: d.AddDate(0, 0, 4).Add(18 * time.Hour)},
		},
	}

	fi := c.Calculate(context.Background(), variant)
	require.Len(t, fi.PerEmployee, 1)
	assert.Greater(t, fi.PerEmployee[0].Overtime, 0.0)
	assert.Equal(t, 50.0, fi.PerEmployee[0].TotalHours)
}

func TestCalculateAssignment_InfeasibleWhenUnderstaffed(t *testing.T) {
	c := New(nil, defaultRates())
	problem := assignment.Problem{
		Requirements: []assignment.Requirement{
			{Site: "site-1", Interval: model.NewInterval(9*60, 10*60), RequiredCount: 2},
		},
	}
	fi := c.CalculateAssignment(problem)
	assert.Equal(t, model.QualityInfeasible, fi.Quality)
	assert.NotEmpty(t, fi.Recommendation)
}

func TestCalculateAssignment_FeasibleWithinBudget(t *testing.T) {
	c := New(nil, defaultRates())
	problem := assignment.Problem{
		Agents: []assignment.Agent{
			{ID: "A1", HourlyCost: 20, HomeSite: "site-1"},
			{ID: "A2", HourlyCost: 22, HomeSite: "site-1"},
		},
		Requirements: []assignment.Requirement{
			{Site: "site-1", Interval: model.NewInterval(9*60, 10*60), RequiredCount: 2},
		},
		BudgetCeiling: 1000,
	}
	fi := c.CalculateAssignment(problem)
	assert.Equal(t, model.QualityOK, fi.Quality)
	assert.Greater(t, fi.Totals["total"], 0.0)
}
