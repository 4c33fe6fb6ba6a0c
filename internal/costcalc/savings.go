package costcalc

import (
	"fmt"
	"sort"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

const maxSavingsOpportunities = 5

// detectSavingsOpportunities ranks up to 5 cost-reduction suggestions
// (spec.md §4.4 Savings opportunities): overtime > 15% of total, weekend
// premium > 10%, skill premium > 20%, variance > 30% of employees over
// 1.3x mean, predicted >= 10% achievable via re-optimization (SPEC_FULL.md
// §C.3, grounded in original_source/cost_calculator.py's
// identify_savings_opportunities).
func detectSavingsOpportunities(totals map[string]float64, perEmployee []model.EmployeeCost) []model.SavingsOpportunity {
	total := totals["total"]
	var out []model.SavingsOpportunity
	if total == 0 {
		return out
	}

	if totals["overtime"]/total > 0.15 {
		out = append(out, model.SavingsOpportunity{
			Description:      "overtime exceeds 15% of total cost; consider redistributing hours",
			PotentialSavings: totals["overtime"] * 0.3,
		})
	}
	if totals["weekend_premium"]/total > 0.10 {
		out = append(out, model.SavingsOpportunity{
			Description:      "weekend premium exceeds 10% of total cost; rebalance weekend coverage",
			PotentialSavings: totals["weekend_premium"] * 0.2,
		})
	}
	if totals["skill_premium"]/total > 0.20 {
		out = append(out, model.SavingsOpportunity{
			Description:      "skill premium exceeds 20% of total cost; review premium-tier staffing mix",
			PotentialSavings: totals["skill_premium"] * 0.15,
		})
	}

	if variance := overBandEmployeeFraction(perEmployee); variance > 0.30 {
		out = append(out, model.SavingsOpportunity{
			Description:      fmt.Sprintf("%.0f%% of employees cost over 1.3x the mean; investigate outliers", variance*100),
			PotentialSavings: total * 0.05,
		})
	}

	if achievable := total * 0.10; achievable > 0 {
		out = append(out, model.SavingsOpportunity{
			Description:      "re-optimization could plausibly recover at least 10% of total cost",
			PotentialSavings: achievable,
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].PotentialSavings > out[j].PotentialSavings })
	if len(out) > maxSavingsOpportunities {
		out = out[:maxSavingsOpportunities]
	}
	return out
}

func overBandEmployeeFraction(perEmployee []model.EmployeeCost) float64 {
	if len(perEmployee) == 0 {
		return 0
	}
	var sum float64
	for _, ec := range perEmployee {
		sum += ec.Total()
	}
	mean := sum / float64(len(perEmployee))
	if mean == 0 {
		return 0
	}
	over := 0
	for _, ec := range perEmployee {
		if ec.Total() > 1.3*mean {
			over++
		}
	}
	return float64(over) / float64(len(perEmployee))
}
