// Package metricsstore defines the MetricsStore capability (spec.md §6): the
// core's sole persistence/I/O boundary. Every operation is idempotent and
// safe to cache for the lifetime of one run (spec.md §5 "Shared resource
// policy"). Implementations live in sub-packages (sqlstore, rediscache);
// this package also provides the fallback rule set stages degrade to when a
// store is unavailable (spec.md §4.3 Fallback, §7 StoreUnavailable).
package metricsstore

import (
	"context"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// ErrUnavailable is the documented "unavailable" signal operations return
// instead of propagating a terminal error (spec.md §6).
var ErrUnavailable = errUnavailable{}

type errUnavailable struct{}

func (errUnavailable) Error() string { return "metricsstore: unavailable" }

// PayrollRate is one employee's financial profile, grounded in
// original_source/financial_data_service.py (SPEC_FULL.md §C.5).
type PayrollRate struct {
	EmployeeID         string
	HourlyRate         float64
	WorkRateMultiplier float64
	SkillTier          string
	CostCenterID       string
}

// Store is the capability every stage takes as an explicit dependency
// (spec.md §9 "Store access"). All methods take a context so callers can
// bound I/O to their stage's remaining budget (spec.md §5 Suspension points).
type Store interface {
	ListActiveConstraintRules(ctx context.Context) ([]model.ConstraintRule, error)
	ListWorkRules(ctx context.Context) ([]model.ConstraintRule, error)
	ListBusinessRules(ctx context.Context) ([]model.ConstraintRule, error)
	ListScheduleConstraints(ctx context.Context) ([]model.ConstraintRule, error)
	GetEmployeeProfiles(ctx context.Context, ids []string) ([]model.Employee, error)
	GetEmployeeSkills(ctx context.Context) (map[string]map[model.SkillID]struct{}, error)
	GetEmployeePreferences(ctx context.Context) (map[string]EmployeePreference, error)
	GetPayrollRates(ctx context.Context, ids []string) (map[string]PayrollRate, error)
	GetCostCenterBudget(ctx context.Context, costCenterID string) (float64, error)
	GetCoverageAnalysis(ctx context.Context) (CoverageAnalysis, error)
	GetOptimizationHistory(ctx context.Context, limit int) ([]OptimizationHistoryEntry, error)
	GetKPITarget(ctx context.Context, code string) (float64, error)
}

// EmployeePreference is one employee's shift preference record.
type EmployeePreference struct {
	EmployeeID     string
	PreferredStart int // minutes since midnight
	PreferredEnd   int
	DayOffRequests []int // weekday indices, 0=Sunday
}

// CoverageAnalysis is a historical coverage snapshot used by ScoringEngine's
// real-data integration path (spec.md §4.5, SPEC_FULL.md §C.1).
type CoverageAnalysis struct {
	CurrentGaps    int
	PeakIntervalsCovered float64 // fraction [0,1]
}

// OptimizationHistoryEntry is one prior optimization run's recorded outcome,
// used by ScoringEngine's real-data cost_reduction path.
type OptimizationHistoryEntry struct {
	VariantID     string
	AchievedCostDelta float64
	AchievedOvertimeDelta float64
}
