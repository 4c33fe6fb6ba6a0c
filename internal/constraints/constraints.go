// Package constraints implements the ConstraintValidator stage (spec.md
// §4.3): it evaluates a variant's blocks against rules loaded from
// MetricsStore (or, on store failure, a built-in fallback set) and produces
// a ComplianceMatrix. Grounded in original_source/constraint_validator.py's
// rule-composition-and-evaluate loop.
package constraints

import (
	"context"
	"fmt"
	"sort"

	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// Validator evaluates ConstraintRules over ScheduleVariants. Rules and
// employee data are loaded once per run and cached — spec.md §5 "Shared
// resource policy" — by the first call to Validate.
type Validator struct {
	store metricsstore.Store

	rules     []model.ConstraintRule
	rulesErr  error
	loaded    bool
	source    string
}

// New builds a Validator backed by store. A nil store always falls back to
// the built-in rule set (useful for offline tests).
func New(store metricsstore.Store) *Validator {
	return &Validator{store: store}
}

// Validate produces a ComplianceMatrix for variant, optionally scoped to
// employees (spec.md §4.3). Passing employees also makes EmploymentType
// known to rule evaluation, so rules with RequiredEmploymentType (e.g. a
// part-time hours cap) apply only to the employees they name; an employee
// absent from employees (or a nil/empty employees slice) is treated as
// having an unknown EmploymentType and never trips such rules.
func (v *Validator) Validate(ctx context.Context, variant model.ScheduleVariant, employees []model.Employee) model.ComplianceMatrix {
	rules, source := v.loadRules(ctx)

	scope := make(map[string]struct{}, len(employees))
	employeeType := make(map[string]model.EmploymentType, len(employees))
	for _, e := range employees {
		scope[e.ID] = struct{}{}
		employeeType[e.ID] = e.EmploymentType
	}

	countsBySeverity := make(map[model.Severity]int)
	countsByCategory := make(map[model.RuleCategory]int)
	var violations []model.Violation

	byEmployee := groupByEmployee(variant.Blocks)

	for _, rule := range rules {
		for empID, blocks := range byEmployee {
			if len(scope) > 0 {
				if _, ok := scope[empID]; !ok {
					continue
				}
			}
			if viol, broke := evaluateRule(rule, empID, employeeType[empID], blocks); broke {
				violations = append(violations, viol)
				countsBySeverity[rule.Severity]++
				countsByCategory[rule.Category]++
			}
		}
	}

	penalty := 0.0
	for sev, count := range countsBySeverity {
		penalty += model.SeverityWeight[sev] * float64(count)
	}
	complianceScore := 100 - penalty
	if complianceScore < 0 {
		complianceScore = 0
	}

	sort.Slice(violations, func(i, j int) bool { return violations[i].RuleID < violations[j].RuleID })

	summary := fmt.Sprintf("%d rule(s) evaluated from %s, %d violation(s)", len(rules), source, len(violations))
	if v.rulesErr != nil {
		summary = fmt.Sprintf("%s; store error: %v", summary, v.rulesErr)
	}

	return model.ComplianceMatrix{
		CountsBySeverity:  countsBySeverity,
		CountsByCategory:  countsByCategory,
		ComplianceScore:   complianceScore,
		Violations:        violations,
		Source:            source,
		ValidationSummary: summary,
	}
}

// CompliancePoints scales a ComplianceMatrix score into ScoringEngine's
// [0,20] compliance_points component (spec.md §4.3 Severity weighting).
func CompliancePoints(cm model.ComplianceMatrix) float64 {
	return cm.ComplianceScore / 100 * 20
}

func (v *Validator) loadRules(ctx context.Context) ([]model.ConstraintRule, string) {
	if v.loaded {
		return v.rules, v.source
	}

	if v.store == nil {
		v.rules = metricsstore.FallbackRules()
		v.source = "fallback"
		v.loaded = true
		return v.rules, v.source
	}

	var all []model.ConstraintRule
	lists := []func(context.Context) ([]model.ConstraintRule, error){
		v.store.ListActiveConstraintRules,
		v.store.ListWorkRules,
		v.store.ListBusinessRules,
		v.store.ListScheduleConstraints,
	}
	for _, list := range lists {
		rs, err := list(ctx)
		if err != nil {
			v.rulesErr = err
			v.rules = metricsstore.FallbackRules()
			v.source = "fallback"
			v.loaded = true
			return v.rules, v.source
		}
		all = append(all, rs...)
	}

	v.rules = all
	v.source = "store"
	v.loaded = true
	return v.rules, v.source
}

func groupByEmployee(blocks []model.ShiftBlock) map[string][]model.ShiftBlock {
	out := make(map[string][]model.ShiftBlock)
	for _, b := range blocks {
		out[b.EmployeeID] = append(out[b.EmployeeID], b)
	}
	return out
}
