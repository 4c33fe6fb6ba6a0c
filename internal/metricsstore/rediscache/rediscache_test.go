package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/oneaiguru/wfm-optimization-core/internal/metricsstore"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// countingStore records how many times each method is actually called on
// the underlying store, so tests can tell a cache hit (under not called)
// from a cache miss (under called once).
type countingStore struct {
	rulesCalls int
	rules      []model.ConstraintRule
}

var _ metricsstore.Store = (*countingStore)(nil)

func (c *countingStore) ListActiveConstraintRules(context.Context) ([]model.ConstraintRule, error) {
	c.rulesCalls++
	return c.rules, nil
}
func (c *countingStore) ListWorkRules(context.Context) ([]model.ConstraintRule, error) { return nil, nil }
func (c *countingStore) ListBusinessRules(context.Context) ([]model.ConstraintRule, error) {
	return nil, nil
}
func (c *countingStore) ListScheduleConstraints(context.Context) ([]model.ConstraintRule, error) {
	return nil, nil
}
func (c *countingStore) GetEmployeeProfiles(context.Context, []string) ([]model.Employee, error) {
	return nil, nil
}
func (c *countingStore) GetEmployeeSkills(context.Context) (map[string]map[model.SkillID]struct{}, error) {
	return nil, nil
}
func (c *countingStore) GetEmployeePreferences(context.Context) (map[string]metricsstore.EmployeePreference, error) {
	return nil, nil
}
func (c *countingStore) GetPayrollRates(context.Context, []string) (map[string]metricsstore.PayrollRate, error) {
	return nil, nil
}
func (c *countingStore) GetCostCenterBudget(context.Context, string) (float64, error) { return 0, nil }
func (c *countingStore) GetCoverageAnalysis(context.Context) (metricsstore.CoverageAnalysis, error) {
	return metricsstore.CoverageAnalysis{}, nil
}
func (c *countingStore) GetOptimizationHistory(context.Context, int) ([]metricsstore.OptimizationHistoryEntry, error) {
	return nil, nil
}
func (c *countingStore) GetKPITarget(context.Context, string) (float64, error) { return 0, nil }

func TestStore_ListActiveConstraintRules_CacheHitAvoidsUnderlyingCall(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	under := &countingStore{rules: []model.ConstraintRule{{ID: "r1", Category: model.CategoryContract}}}
	store, err := New(Options{Addr: mr.Addr(), TTL: time.Minute}, under, zap.NewNop())
	require.NoError(t, err)

	first, err := store.ListActiveConstraintRules(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 1, under.rulesCalls)

	second, err := store.ListActiveConstraintRules(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, under.rulesCalls, "second call should be served from the redis cache, not the underlying store")
}

func TestStore_FallsThroughToUnderlyingWhenRedisUnreachable(t *testing.T) {
	under := &countingStore{rules: []model.ConstraintRule{{ID: "r1"}}}
	store, err := New(Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond, TTL: time.Minute}, under, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	out, err := store.ListActiveConstraintRules(ctx)
	require.NoError(t, err)
	assert.Len(t, out, 1)
	assert.Equal(t, 1, under.rulesCalls, "an unreachable redis must still fall through to the underlying store")
}
