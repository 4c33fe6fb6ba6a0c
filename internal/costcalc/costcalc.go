// Package costcalc implements the CostCalculator stage (spec.md §4.4):
// per-employee, per-week cost components plus mobile-workforce additions,
// savings-opportunity detection, and an optional LP/MILP assignment mode.
// Grounded in original_source/cost_calculator.py.
package costcalc

import (
	"context"

	"github.com/oneaiguru/wfm-optimization-core/internal/config"
	"github.com/oneaiguru/wfm-optimization-core/internal/costcalc/assignment"
	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// Calculator computes FinancialImpact for a variant, preferring employee
// financial profiles from MetricsStore and falling back to default rates
// (spec.md §4.4 Contract).
type Calculator struct {
	store metricsstore.Store
	rates config.CostRates
}

func New(store metricsstore.Store, rates config.CostRates) *Calculator {
	return &Calculator{store: store, rates: rates}
}

// Calculate produces a FinancialImpact for variant (spec.md §4.4).
func (c *Calculator) Calculate(ctx context.Context, variant model.ScheduleVariant) model.FinancialImpact {
	byEmployee := groupByEmployee(variant.Blocks)

	var ids []string
	for id := range byEmployee {
		ids = append(ids, id)
	}

	payroll := c.lookupPayroll(ctx, ids)

	perEmployee := make([]model.EmployeeCost, 0, len(byEmployee))
	totals := make(map[string]float64)

	for empID, blocks := range byEmployee {
		ec := c.costForEmployee(empID, blocks, payroll[empID])
		perEmployee = append(perEmployee, ec)

		totals["base"] += ec.Base
		totals["overtime"] += ec.Overtime
		totals["weekend_premium"] += ec.WeekendPremium
		totals["night_premium"] += ec.NightPremium
		totals["skill_premium"] += ec.SkillPremium
		totals["benefits"] += ec.Benefits
		totals["travel"] += ec.Travel
		totals["accommodation"] += ec.Accommodation
		totals["coordination"] += ec.Coordination
	}

	grandTotal := 0.0
	for _, v := range totals {
		grandTotal += v
	}
	totals["total"] = grandTotal

	opportunities := detectSavingsOpportunities(totals, perEmployee)

	quality := model.QualityOK
	recommendation := ""
	if grandTotal == 0 {
		recommendation = "no cost data available for this variant"
	}

	return model.FinancialImpact{
		Totals:               totals,
		ComponentBreakdown:   componentShares(totals),
		PerEmployee:          perEmployee,
		SavingsOpportunities: opportunities,
		Quality:              quality,
		Recommendation:       recommendation,
	}
}

// CalculateAssignment runs the optional LP/MILP assignment mode (spec.md
// §4.4 "Linear-program mode"): given an interchangeable agent pool and
// per-interval requirements instead of a pre-built variant, it returns a
// FinancialImpact built from the solver's result. An infeasible solve
// yields quality=infeasible and a remediation hint; no partial assignment
// is committed into the returned totals.
func (c *Calculator) CalculateAssignment(problem assignment.Problem) model.FinancialImpact {
	solution := assignment.Solve(problem)
	if !solution.Feasible {
		return model.FinancialImpact{
			Quality:        model.QualityInfeasible,
			Recommendation: solution.RemediationHint,
		}
	}

	totals := map[string]float64{
		"base":          solution.TotalCost,
		"travel":        solution.TravelCost,
		"accommodation": solution.Accommodation,
		"total":         solution.TotalCost + solution.TravelCost + solution.Accommodation,
	}

	return model.FinancialImpact{
		Totals:             totals,
		ComponentBreakdown: componentShares(totals),
		Quality:            model.QualityOK,
		Recommendation:     "",
	}
}

func (c *Calculator) costForEmployee(empID string, blocks []model.ShiftBlock, rate metricsstore.PayrollRate) model.EmployeeCost {
	hourlyRate := c.rates.BaseHourly
	skillTier := "basic"
	if rate.HourlyRate > 0 {
		hourlyRate = rate.HourlyRate
	}
	if rate.SkillTier != "" {
		skillTier = rate.SkillTier
	}

	var totalHours, weekendHours, nightHours, travelKM float64
	var accommodationNights int
	var crossSite bool

	for _, b := range blocks {
		hours := float64(b.DurationMinutes()) / 60.0
		totalHours += hours
		if b.IsWeekend() {
			weekendHours += hours
		}
		nightHours += float64(b.NightMinutes()) / 60.0
		travelKM += b.TravelDistanceKM
		accommodationNights += b.AccommodationNights
		if b.CrossSite {
			crossSite = true
		}
	}

	regularHours := totalHours
	overtimeHours := 0.0
	if totalHours > 40 {
		regularHours = 40
		overtimeHours = totalHours - 40
	}

	base := regularHours * hourlyRate
	overtime := overtimeHours * hourlyRate * c.rates.OvertimeMultiplier
	weekendPremium := weekendHours * c.rates.WeekendPremium
	nightPremium := nightHours * c.rates.NightDifferential
	skillRate := c.rates.SkillPremium[skillTier]
	skillPremium := (regularHours + overtimeHours) * skillRate
	benefits := c.rates.BenefitsRate * (base + overtime + weekendPremium + nightPremium + skillPremium)

	travel := travelKM * c.rates.TravelRatePerKm
	accommodation := float64(accommodationNights) * c.rates.AccommodationNight
	coordination := 0.0
	if crossSite {
		coordination = c.rates.CoordinationFee
	}

	return model.EmployeeCost{
		EmployeeID:     empID,
		Base:           base,
		Overtime:       overtime,
		WeekendPremium: weekendPremium,
		NightPremium:   nightPremium,
		SkillPremium:   skillPremium,
		Benefits:       benefits,
		Travel:         travel,
		Accommodation:  accommodation,
		Coordination:   coordination,
		TotalHours:     totalHours,
	}
}

func (c *Calculator) lookupPayroll(ctx context.Context, ids []string) map[string]metricsstore.PayrollRate {
	if c.store == nil {
		return map[string]metricsstore.PayrollRate{}
	}
	rates, err := c.store.GetPayrollRates(ctx, ids)
	if err != nil {
		return map[string]metricsstore.PayrollRate{}
	}
	return rates
}

func componentShares(totals map[string]float64) map[string]float64 {
	total := totals["total"]
	shares := make(map[string]float64, len(totals))
	for k, v := range totals {
		if k == "total" || total == 0 {
			shares[k] = 0
			continue
		}
		shares[k] = v / total
	}
	return shares
}

func groupByEmployee(blocks []model.ShiftBlock) map[string][]model.ShiftBlock {
	out := make(map[string][]model.ShiftBlock)
	for _, b := range blocks {
		out[b.EmployeeID] = append(out[b.EmployeeID], b)
	}
	return out
}
