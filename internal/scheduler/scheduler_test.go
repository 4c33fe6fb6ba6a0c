package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneaiguru/wfm-optimization-core/internal/config"
	"github.com/oneaiguru/wfm-optimization-core/internal/constraints"
	"github.com/oneaiguru/wfm-optimization-core/internal/costcalc"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
	"github.com/oneaiguru/wfm-optimization-core/internal/orchestrator"
	"github.com/oneaiguru/wfm-optimization-core/internal/scheduleloader"
	"github.com/oneaiguru/wfm-optimization-core/internal/scoring"
)

func testOrchestrator() *orchestrator.Orchestrator {
	cfg := &config.Config{
		Budgets: config.Budgets{
			GapAnalyzer: time.Second, PatternGenerator: 2 * time.Second,
			ConstraintValidator: time.Second, CostCalculator: time.Second,
			ScoringEngine: time.Second, Orchestrator: 10 * time.Second, OrchestratorAlert: 5 * time.Second,
		},
		GA: config.GAParams{
			PopulationSize: 10, MaxGenerations: 2, MutationRate: 0.1, CrossoverRate: 0.8,
			EliteSize: 1, TournamentSize: 2, ConvergenceWindow: 2, ConvergenceDelta: 1.0,
			ArchetypeSeedCounts: map[string]int{"traditional": 5},
		},
	}
	validator := constraints.New(nil)
	calculator := costcalc.New(nil, cfg.CostRates)
	scorer := scoring.New(nil)
	return orchestrator.New(scheduleloader.Static{}, validator, calculator, scorer, cfg, nil)
}

func TestScheduler_ScheduleFiresOrchestratorRun(t *testing.T) {
	orch := testOrchestrator()

	var mu sync.Mutex
	var results []model.RunResult

	build := func(firedAt time.Time) model.Request {
		return model.Request{
			RequestID: "scheduled-run", StartDate: firedAt, EndDate: firedAt.AddDate(0, 0, 7),
			ServiceID: "svc-1", Mode: model.ModePilot,
		}
	}
	onResult := func(r model.RunResult) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
	}

	s := New(orch, build, onResult, 5*time.Second, nil)
	_, err := s.Schedule("@every 1s")
	require.NoError(t, err)

	s.Start()
	defer func() { <-s.Stop().Done() }()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(results) >= 1
	}, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_ScheduleRejectsMalformedExpression(t *testing.T) {
	orch := testOrchestrator()
	s := New(orch, func(time.Time) model.Request { return model.Request{} }, nil, 0, nil)

	_, err := s.Schedule("not a cron expression")
	assert.Error(t, err)
}
