// Package ratelimit wraps a metricsstore.Store with a token-bucket limiter,
// so a burst of stage calls within one orchestrator run can't overrun the
// durable store's own connection pool (spec.md §5 "Shared resource policy").
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// Store rate-limits every call against an underlying metricsstore.Store.
// A call that would exceed the bucket returns metricsstore.ErrUnavailable
// rather than blocking, so a stage degrades to its fallback instead of
// stalling past its budget (spec.md §7 StoreUnavailable).
type Store struct {
	under   metricsstore.Store
	limiter *rate.Limiter
}

var _ metricsstore.Store = (*Store)(nil)

// New wraps under with a limiter allowing perSecond requests/sec, bursting
// up to burst. perSecond <= 0 disables limiting (under is returned wrapped
// but never throttled).
func New(under metricsstore.Store, perSecond float64, burst int) *Store {
	if perSecond <= 0 {
		perSecond = rate.Inf
	}
	return &Store{under: under, limiter: rate.NewLimiter(rate.Limit(perSecond), burst)}
}

func (s *Store) allow(ctx context.Context) error {
	if s.limiter.Allow() {
		return nil
	}
	return metricsstore.ErrUnavailable
}

func (s *Store) ListActiveConstraintRules(ctx context.Context) ([]model.ConstraintRule, error) {
	if err := s.allow(ctx); err != nil {
		return nil, err
	}
	return s.under.ListActiveConstraintRules(ctx)
}

func (s *Store) ListWorkRules(ctx context.Context) ([]model.ConstraintRule, error) {
	if err := s.allow(ctx); err != nil {
		return nil, err
	}
	return s.under.ListWorkRules(ctx)
}

func (s *Store) ListBusinessRules(ctx context.Context) ([]model.ConstraintRule, error) {
	if err := s.allow(ctx); err != nil {
		return nil, err
	}
	return s.under.ListBusinessRules(ctx)
}

func (s *Store) ListScheduleConstraints(ctx context.Context) ([]model.ConstraintRule, error) {
	if err := s.allow(ctx); err != nil {
		return nil, err
	}
	return s.under.ListScheduleConstraints(ctx)
}

func (s *Store) GetEmployeeProfiles(ctx context.Context, ids []string) ([]model.Employee, error) {
	if err := s.allow(ctx); err != nil {
		return nil, err
	}
	return s.under.GetEmployeeProfiles(ctx, ids)
}

func (s *Store) GetEmployeeSkills(ctx context.Context) (map[string]map[model.SkillID]struct{}, error) {
	if err := s.allow(ctx); err != nil {
		return nil, err
	}
	return s.under.GetEmployeeSkills(ctx)
}

func (s *Store) GetEmployeePreferences(ctx context.Context) (map[string]metricsstore.EmployeePreference, error) {
	if err := s.allow(ctx); err != nil {
		return nil, err
	}
	return s.under.GetEmployeePreferences(ctx)
}

func (s *Store) GetPayrollRates(ctx context.Context, ids []string) (map[string]metricsstore.PayrollRate, error) {
	if err := s.allow(ctx); err != nil {
		return nil, err
	}
	return s.under.GetPayrollRates(ctx, ids)
}

func (s *Store) GetCostCenterBudget(ctx context.Context, costCenterID string) (float64, error) {
	if err := s.allow(ctx); err != nil {
		return 0, err
	}
	return s.under.GetCostCenterBudget(ctx, costCenterID)
}

func (s *Store) GetCoverageAnalysis(ctx context.Context) (metricsstore.CoverageAnalysis, error) {
	if err := s.allow(ctx); err != nil {
		return metricsstore.CoverageAnalysis{}, err
	}
	return s.under.GetCoverageAnalysis(ctx)
}

func (s *Store) GetOptimizationHistory(ctx context.Context, limit int) ([]metricsstore.OptimizationHistoryEntry, error) {
	if err := s.allow(ctx); err != nil {
		return nil, err
	}
	return s.under.GetOptimizationHistory(ctx, limit)
}

func (s *Store) GetKPITarget(ctx context.Context, code string) (float64, error) {
	if err := s.allow(ctx); err != nil {
		return 0, err
	}
	return s.under.GetKPITarget(ctx, code)
}
