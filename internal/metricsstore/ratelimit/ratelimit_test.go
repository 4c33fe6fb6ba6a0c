package ratelimit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

type stubStore struct {
	calls int
}

var _ metricsstore.Store = (*stubStore)(nil)

func (s *stubStore) ListActiveConstraintRules(context.Context) ([]model.ConstraintRule, error) {
	s.calls++
	return nil, nil
}
func (s *stubStore) ListWorkRules(context.Context) ([]model.ConstraintRule, error)      { return nil, nil }
func (s *stubStore) ListBusinessRules(context.Context) ([]model.ConstraintRule, error)  { return nil, nil }
func (s *stubStore) ListScheduleConstraints(context.Context) ([]model.ConstraintRule, error) {
	return nil, nil
}
func (s *stubStore) GetEmployeeProfiles(context.Context, []string) ([]model.Employee, error) {
	return nil, nil
}
func (s *stubStore) GetEmployeeSkills(context.Context) (map[string]map[model.SkillID]struct{}, error) {
	return nil, nil
}
func (s *stubStore) GetEmployeePreferences(context.Context) (map[string]metricsstore.EmployeePreference, error) {
	return nil, nil
}
func (s *stubStore) GetPayrollRates(context.Context, []string) (map[string]metricsstore.PayrollRate, error) {
	return nil, nil
}
func (s *stubStore) GetCostCenterBudget(context.Context, string) (float64, error) { return 0, nil }
func (s *stubStore) GetCoverageAnalysis(context.Context) (metricsstore.CoverageAnalysis, error) {
	return metricsstore.CoverageAnalysis{}, nil
}
func (s *stubStore) GetOptimizationHistory(context.Context, int) ([]metricsstore.OptimizationHistoryEntry, error) {
	return nil, nil
}
func (s *stubStore) GetKPITarget(context.Context, string) (float64, error) { return 0, nil }

func TestStore_AllowsWithinBurstThenUnavailable(t *testing.T) {
	under := &stubStore{}
	s := New(under, 0.0001, 2) // effectively no refill within the test

	_, err := s.ListActiveConstraintRules(context.Background())
	require.NoError(t, err)
	_, err = s.ListActiveConstraintRules(context.Background())
	require.NoError(t, err)

	_, err = s.ListActiveConstraintRules(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, metricsstore.ErrUnavailable))
	assert.Equal(t, 2, under.calls, "the throttled call must not reach the underlying store")
}

func TestStore_UnlimitedWhenPerSecondNonPositive(t *testing.T) {
	under := &stubStore{}
	s := New(under, 0, 1)

	for i := 0; i < 10; i++ {
		_, err := s.ListActiveConstraintRules(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 10, under.calls)
}
