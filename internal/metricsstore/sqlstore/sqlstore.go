// Package sqlstore is a reference MetricsStore backed by a relational
// database, grounded in original_source's ConstraintValidator.DatabaseConnection
// (a psycopg2 context-managed connection querying schedule_constraints_core,
// business_rules_engine, employees, employee_skills, and related tables).
// It works against either Postgres (github.com/lib/pq) or SQLite
// (github.com/mattn/go-sqlite3), mirroring the teacher pack's dual use of
// both drivers.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// Store implements metricsstore.Store over a *sql.DB.
type Store struct {
	db *sql.DB
}

// Open opens a connection pool for the given driver ("postgres" or
// "sqlite3") and DSN, matching the teacher's pattern of a thin constructor
// wrapping database/sql.
func Open(driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) ListActiveConstraintRules(ctx context.Context) ([]model.ConstraintRule, error) {
	return s.queryRules(ctx, `SELECT id, category, condition_kind, hours_limit, rest_hours, days_limit, severity, cost_impact, remedy_hint FROM schedule_constraints_core WHERE active = true`)
}

func (s *Store) ListWorkRules(ctx context.Context) ([]model.ConstraintRule, error) {
	return s.queryRules(ctx, `SELECT id, category, condition_kind, hours_limit, rest_hours, days_limit, severity, cost_impact, remedy_hint FROM work_rules WHERE active = true`)
}

func (s *Store) ListBusinessRules(ctx context.Context) ([]model.ConstraintRule, error) {
	return s.queryRules(ctx, `SELECT id, category, condition_kind, hours_limit, rest_hours, days_limit, severity, cost_impact, remedy_hint FROM business_rules_engine WHERE active = true`)
}

func (s *Store) ListScheduleConstraints(ctx context.Context) ([]model.ConstraintRule, error) {
	return s.queryRules(ctx, `SELECT id, category, condition_kind, hours_limit, rest_hours, days_limit, severity, cost_impact, remedy_hint FROM schedule_constraints_core WHERE category = 'schedule'`)
}

func (s *Store) queryRules(ctx context.Context, query string) ([]model.ConstraintRule, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, metricsstore.ErrUnavailable
	}
	defer rows.Close()

	var out []model.ConstraintRule
	for rows.Next() {
		var (
			r          model.ConstraintRule
			kind       string
			category   string
			hoursLimit sql.NullFloat64
			restHours  sql.NullFloat64
			daysLimit  sql.NullInt64
			severity   string
		)
		if err := rows.Scan(&r.ID, &category, &kind, &hoursLimit, &restHours, &daysLimit, &severity, &r.CostImpact, &r.RemedyHint); err != nil {
			return nil, fmt.Errorf("sqlstore: scan rule: %w", err)
		}
		r.Category = model.RuleCategory(category)
		r.Severity = model.Severity(severity)
		r.Condition = model.ConstraintPredicate{
			Kind:       model.PredicateKind(kind),
			HoursLimit: hoursLimit.Float64,
			RestHours:  restHours.Float64,
			DaysLimit:  int(daysLimit.Int64),
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployeeProfiles(ctx context.Context, ids []string) ([]model.Employee, error) {
	query := `SELECT id, employment_type, weekly_hours_norm, work_rate, overtime_authorized, night_permission, weekend_permission, base_site, cost_center_id, salary_band, position_title, time_zone FROM employees`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, metricsstore.ErrUnavailable
	}
	defer rows.Close()

	var out []model.Employee
	for rows.Next() {
		var e model.Employee
		var employmentType string
		if err := rows.Scan(&e.ID, &employmentType, &e.WeeklyHoursNorm, &e.WorkRate, &e.OvertimeAuthorized, &e.NightPermission, &e.WeekendPermission, &e.BaseSite, &e.CostCenterID, &e.SalaryBand, &e.PositionTitle, &e.TimeZone); err != nil {
			return nil, fmt.Errorf("sqlstore: scan employee: %w", err)
		}
		e.EmploymentType = model.EmploymentType(employmentType)
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetEmployeeSkills(ctx context.Context) (map[string]map[model.SkillID]struct{}, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT es.employee_id, sk.code FROM employee_skills es JOIN skills sk ON sk.id = es.skill_id`)
	if err != nil {
		return nil, metricsstore.ErrUnavailable
	}
	defer rows.Close()

	out := make(map[string]map[model.SkillID]struct{})
	for rows.Next() {
		var empID, code string
		if err := rows.Scan(&empID, &code); err != nil {
			return nil, fmt.Errorf("sqlstore: scan skill: %w", err)
		}
		if out[empID] == nil {
			out[empID] = make(map[model.SkillID]struct{})
		}
		out[empID][model.SkillID(code)] = struct{}{}
	}
	return out, rows.Err()
}

func (s *Store) GetEmployeePreferences(ctx context.Context) (map[string]metricsstore.EmployeePreference, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT employee_id, preferred_start, preferred_end FROM employee_schedule_preferences`)
	if err != nil {
		return nil, metricsstore.ErrUnavailable
	}
	defer rows.Close()

	out := make(map[string]metricsstore.EmployeePreference)
	for rows.Next() {
		var p metricsstore.EmployeePreference
		if err := rows.Scan(&p.EmployeeID, &p.PreferredStart, &p.PreferredEnd); err != nil {
			return nil, fmt.Errorf("sqlstore: scan preference: %w", err)
		}
		out[p.EmployeeID] = p
	}
	return out, rows.Err()
}

func (s *Store) GetPayrollRates(ctx context.Context, ids []string) (map[string]metricsstore.PayrollRate, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT employee_id, hourly_rate, work_rate_multiplier, skill_tier, cost_center_id FROM payroll_rates`)
	if err != nil {
		return nil, metricsstore.ErrUnavailable
	}
	defer rows.Close()

	out := make(map[string]metricsstore.PayrollRate)
	for rows.Next() {
		var p metricsstore.PayrollRate
		if err := rows.Scan(&p.EmployeeID, &p.HourlyRate, &p.WorkRateMultiplier, &p.SkillTier, &p.CostCenterID); err != nil {
			return nil, fmt.Errorf("sqlstore: scan payroll: %w", err)
		}
		out[p.EmployeeID] = p
	}
	return out, rows.Err()
}

func (s *Store) GetCostCenterBudget(ctx context.Context, costCenterID string) (float64, error) {
	var amount float64
	err := s.db.QueryRowContext(ctx, `SELECT amount FROM cost_center_budgets WHERE cost_center_id = $1`, costCenterID).Scan(&amount)
	if err != nil {
		return 0, metricsstore.ErrUnavailable
	}
	return amount, nil
}

func (s *Store) GetCoverageAnalysis(ctx context.Context) (metricsstore.CoverageAnalysis, error) {
	var ca metricsstore.CoverageAnalysis
	err := s.db.QueryRowContext(ctx, `SELECT current_gaps, peak_intervals_covered FROM schedule_coverage_analysis ORDER BY created_at DESC LIMIT 1`).Scan(&ca.CurrentGaps, &ca.PeakIntervalsCovered)
	if err != nil {
		return metricsstore.CoverageAnalysis{}, metricsstore.ErrUnavailable
	}
	return ca, nil
}

func (s *Store) GetOptimizationHistory(ctx context.Context, limit int) ([]metricsstore.OptimizationHistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT variant_id, achieved_cost_delta, achieved_overtime_delta FROM performance_optimization_suggestions ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, metricsstore.ErrUnavailable
	}
	defer rows.Close()

	var out []metricsstore.OptimizationHistoryEntry
	for rows.Next() {
		var e metricsstore.OptimizationHistoryEntry
		if err := rows.Scan(&e.VariantID, &e.AchievedCostDelta, &e.AchievedOvertimeDelta); err != nil {
			return nil, fmt.Errorf("sqlstore: scan history: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) GetKPITarget(ctx context.Context, code string) (float64, error) {
	var value float64
	err := s.db.QueryRowContext(ctx, `SELECT target_value FROM advanced_kpi_definitions WHERE code = $1`, code).Scan(&value)
	if err != nil {
		return 0, metricsstore.ErrUnavailable
	}
	return value, nil
}

// Close closes the underlying connection pool.
func (s *Store) Close() error { return s.db.Close() }

var _ metricsstore.Store = (*Store)(nil)
