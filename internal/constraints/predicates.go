package constraints

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// derived holds the per-employee quantities a predicate may need.
// evaluateRule recomputes it from the employee's blocks on every call; it
// is not cached across rules.
type derived struct {
	weeklyHours      float64
	maxDailyOvertime float64
	minRestHours     float64
	consecutiveDays  int
}

func computeDerived(blocks []model.ShiftBlock) derived {
	var d derived
	var weekly float64
	byDate := make(map[string][]model.ShiftBlock)
	dailyHours := make(map[string]float64)
	for _, b := range blocks {
		hours := float64(b.DurationMinutes()) / 60.0
		weekly += hours
		dateKey := b.Date.Format("2006-01-02")
		byDate[dateKey] = append(byDate[dateKey], b)
		dailyHours[dateKey] += hours
	}
	for _, h := range dailyHours {
		if h-8 > d.maxDailyOvertime {
			d.maxDailyOvertime = h - 8
		}
	}
	d.weeklyHours = weekly
	for _, bs := range byDate {
		// Count forward only from the first date of each run of dates.
		if _, ok := byDate[bs[0].Date.AddDate(0, 0, -1).Format("2006-01-02")]; ok {
			continue
		}
		run := 1
		for next := bs[0].Date.AddDate(0, 0, 1); len(byDate[next.Format("2006-01-02")]) > 0; next = next.AddDate(0, 0, 1) {
			run++
		}
		if run > d.consecutiveDays {
			d.consecutiveDays = run
		}
	}
	d.minRestHours = minRestBetweenBlocks(blocks)
	return d
}

func minRestBetweenBlocks(blocks []model.ShiftBlock) float64 {
	if len(blocks) < 2 {
		return metricsstore.MinRest
	}
	sorted := append([]model.ShiftBlock(nil), blocks...)
	for i := 0; i < len(sorted); i++ {
		for j := i + 1; j < len(sorted); j++ {
			if sorted[j].Start.Before(sorted[i].Start) {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
	}
	min := metricsstore.MinRest * 10 // arbitrary large starting point
	for i := 1; i < len(sorted); i++ {
		rest := sorted[i].Start.Sub(sorted[i-1].End).Hours()
		if rest < min {
			min = rest
		}
	}
	return min
}

// evaluateRule composes rule.Condition and reports whether blocks violate
// it for one employee (spec.md §4.3 Evaluation). employeeType is the
// empty string when the employee's EmploymentType is unknown to the
// caller; rules scoped by RequiredEmploymentType never fire in that case.
func evaluateRule(rule model.ConstraintRule, employeeID string, employeeType model.EmploymentType, blocks []model.ShiftBlock) (model.Violation, bool) {
	if rule.RequiredEmploymentType != "" && rule.RequiredEmploymentType != employeeType {
		return model.Violation{}, false
	}
	if rule.SitePattern != "" && !anySiteMatches(rule.SitePattern, blocks) {
		return model.Violation{}, false
	}

	d := computeDerived(blocks)
	cond := rule.Condition

	broke := false
	desc := ""

	switch cond.Kind {
	case model.PredicateWeeklyHoursOver:
		if d.weeklyHours > cond.HoursLimit {
			broke = true
			desc = fmt.Sprintf("weekly hours %.1f exceed limit %.1f", d.weeklyHours, cond.HoursLimit)
		}
	case model.PredicateDailyOvertimeOver:
		if d.maxDailyOvertime > cond.HoursLimit {
			broke = true
			desc = fmt.Sprintf("daily overtime %.1f exceeds limit %.1f", d.maxDailyOvertime, cond.HoursLimit)
		}
	case model.PredicateMinRestBelow:
		if d.minRestHours < cond.RestHours {
			broke = true
			desc = fmt.Sprintf("rest period %.1fh below minimum %.1fh", d.minRestHours, cond.RestHours)
		}
	case model.PredicateConsecutiveDaysOver:
		if d.consecutiveDays > cond.DaysLimit {
			broke = true
			desc = fmt.Sprintf("%d consecutive work days exceed limit %d", d.consecutiveDays, cond.DaysLimit)
		}
	case model.PredicateMaxDailyHoursOver:
		for _, b := range blocks {
			hours := float64(b.DurationMinutes()) / 60.0
			if hours > cond.HoursLimit {
				broke = true
				desc = fmt.Sprintf("single block of %.1fh exceeds daily limit %.1fh", hours, cond.HoursLimit)
				break
			}
		}
	case model.PredicatePreferenceMismatch, model.PredicateCustom:
		// Preference and custom predicates need data the validator does
		// not carry in this scope (employee preference records, an opaque
		// AST); the built-in evaluator treats them as non-violations and
		// leaves enforcement to a caller-supplied evaluator extension.
		return model.Violation{}, false
	default:
		return model.Violation{}, false
	}

	if !broke {
		return model.Violation{}, false
	}

	return model.Violation{
		RuleID:           rule.ID,
		Severity:         rule.Severity,
		Category:         rule.Category,
		Description:      desc,
		AffectedEmployee: employeeID,
		RemedyHint:       rule.RemedyHint,
		CostImpact:       rule.CostImpact,
	}, true
}

// anySiteMatches reports whether any block's AssignedSite matches the
// glob pattern. A malformed pattern matches nothing rather than panicking.
func anySiteMatches(pattern string, blocks []model.ShiftBlock) bool {
	for _, b := range blocks {
		if ok, err := doublestar.Match(pattern, b.AssignedSite); err == nil && ok {
			return true
		}
	}
	return false
}
