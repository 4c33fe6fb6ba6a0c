// Package orchestrator implements the Orchestrator stage (spec.md §4.6):
// it sequences GapAnalyzer -> PatternGenerator -> ConstraintValidator ->
// CostCalculator -> ScoringEngine, enforces per-stage and global budgets,
// and exposes run(request) and bulk_apply(variants, constraints, mode) to
// external collaborators. Grounded in
// original_source/optimization_orchestrator.py.
package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/oneaiguru/wfm-optimization-core/internal/config"
	"github.com/oneaiguru/wfm-optimization-core/internal/constraints"
	"github.com/oneaiguru/wfm-optimization-core/internal/costcalc"
	"github.com/oneaiguru/wfm-optimization-core/internal/gapanalyzer"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
	"github.com/oneaiguru/wfm-optimization-core/internal/obs"
	"github.com/oneaiguru/wfm-optimization-core/internal/patterngen"
	"github.com/oneaiguru/wfm-optimization-core/internal/pool"
	"github.com/oneaiguru/wfm-optimization-core/internal/scheduleloader"
	"github.com/oneaiguru/wfm-optimization-core/internal/scoring"

	"go.uber.org/zap"
)

// Orchestrator wires the pipeline stages together.
type Orchestrator struct {
	loader     scheduleloader.Loader
	validator  *constraints.Validator
	calculator *costcalc.Calculator
	scorer     *scoring.Engine
	cfg        *config.Config
	logger     *zap.Logger

	// RNGSource builds the pseudorandom source passed to PatternGenerator.
	// It must be deterministic for identical request_ids in tests; the
	// production wiring derives a seed from request_id.
	RNGSource func(seed int64) *rand.Rand

	concurrency int
}

// New builds an Orchestrator from its component stages and configuration.
func New(loader scheduleloader.Loader, validator *constraints.Validator, calculator *costcalc.Calculator, scorer *scoring.Engine, cfg *config.Config, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{
		loader:      loader,
		validator:   validator,
		calculator:  calculator,
		scorer:      scorer,
		cfg:         cfg,
		logger:      logger,
		RNGSource:   func(seed int64) *rand.Rand { return rand.New(rand.NewSource(seed)) },
		concurrency: 8,
	}
}

// Run implements spec.md §4.6 run(request): sequences every stage under a
// hard 60s deadline, degrading gracefully on timeout.
func (o *Orchestrator) Run(ctx context.Context, req model.Request) model.RunResult {
	startedAt := nowStub()
	ctx, cancel := context.WithTimeout(ctx, o.cfg.Budgets.Orchestrator)
	defer cancel()

	var algorithmsUsed []string
	status := model.StatusOK
	slow := false

	dr := scheduleloader.DateRange{Start: req.StartDate, End: req.EndDate}

	schedule, forecast, scheduleComplete, forecastComplete := o.loadInputs(ctx, dr, req.ServiceID)

	obs.StageInvocations.WithLabelValues("gap_analyzer").Inc()
	gapCtx, gapCancel := context.WithTimeout(ctx, o.cfg.Budgets.GapAnalyzer)
	gapReport := gapanalyzer.Analyze(forecast, scheduleToHeadcount(schedule), gapanalyzer.Rates{HourlyCostPerUncoveredAgent: o.cfg.CostRates.GapCostPerAgentHour})
	gapCancel()
	algorithmsUsed = append(algorithmsUsed, "gap_analyzer")
	_ = gapCtx

	genCtx, genCancel := context.WithTimeout(ctx, o.cfg.Budgets.PatternGenerator)
	seed := seedFromRequest(req)
	genResult := patterngen.Generate(genCtx, schedule, gapReport, patterngen.Targets(req.Goals), o.cfg.GA, o.RNGSource(seed), req.StartDate)
	genCancel()
	algorithmsUsed = append(algorithmsUsed, "pattern_generator")
	if genResult.Degraded {
		status = model.StatusDegraded
	}

	evalCtx, evalCancel := context.WithTimeout(ctx, o.cfg.Budgets.ConstraintValidator+o.cfg.Budgets.CostCalculator)
	inputs, _ := pool.Run(evalCtx, o.concurrency, genResult.Variants, func(c context.Context, v model.ScheduleVariant) (scoring.Inputs, error) {
		cm := o.validator.Validate(c, v, nil)
		fi := o.calculator.Calculate(c, v)
		return scoring.Inputs{Variant: v, Compliance: cm, Cost: fi}, nil
	})
	evalCancel()
	algorithmsUsed = append(algorithmsUsed, "constraint_validator", "cost_calculator")

	baseline := o.calculator.Calculate(ctx, model.ScheduleVariant{VariantID: "current", Blocks: schedule})

	scoreCtx, scoreCancel := context.WithTimeout(ctx, o.cfg.Budgets.ScoringEngine)
	ranked := o.scorer.Score(scoreCtx, inputs, gapReport, req.Goals, baseline)
	scoreCancel()
	algorithmsUsed = append(algorithmsUsed, "scoring_engine")

	plan := buildImplementationPlan(req.Mode, ranked)

	elapsed := elapsedSince(startedAt)
	if elapsed > o.cfg.Budgets.OrchestratorAlert {
		slow = true
	}
	if ctx.Err() != nil {
		status = model.StatusTimeout
	}

	dataQuality := dataQualityScore(scheduleComplete, forecastComplete)
	confidence := recommendationConfidence(gapReport, ranked)

	return model.RunResult{
		RankedSuggestions:        ranked,
		ImplementationPlan:       plan,
		ProcessingTimeMS:         elapsed.Milliseconds(),
		AlgorithmsUsed:           algorithmsUsed,
		DataQuality:              dataQuality,
		RecommendationConfidence: confidence,
		Status:                   status,
		Slow:                     slow,
	}
}

func (o *Orchestrator) loadInputs(ctx context.Context, dr scheduleloader.DateRange, serviceID string) ([]model.ShiftBlock, map[model.Interval]uint, float64, float64) {
	type scheduleResult struct {
		blocks []model.ShiftBlock
		err    error
	}
	type forecastResult struct {
		m   map[model.Interval]uint
		err error
	}

	scheduleCh := make(chan scheduleResult, 1)
	forecastCh := make(chan forecastResult, 1)

	go func() {
		blocks, err := o.loader.LoadSchedule(ctx, dr, serviceID)
		scheduleCh <- scheduleResult{blocks, err}
	}()
	go func() {
		m, err := o.loader.LoadForecast(ctx, dr, serviceID)
		forecastCh <- forecastResult{m, err}
	}()

	sr := <-scheduleCh
	fr := <-forecastCh

	scheduleComplete := 1.0
	if sr.err != nil {
		scheduleComplete = 0.0
	}
	forecastComplete := 1.0
	if fr.err != nil {
		forecastComplete = 0.0
	}

	return sr.blocks, fr.m, scheduleComplete, forecastComplete
}

func scheduleToHeadcount(blocks []model.ShiftBlock) map[model.Interval]uint {
	out := make(map[model.Interval]uint)
	for _, b := range blocks {
		out[b.Interval()]++
	}
	return out
}

func seedFromRequest(req model.Request) int64 {
	if req.RequestID == "" {
		return 1
	}
	var h int64
	for _, r := range req.RequestID {
		h = h*31 + int64(r)
	}
	if h < 0 {
		h = -h
	}
	return h
}

func dataQualityScore(scheduleComplete, forecastComplete float64) float64 {
	base := 100.0
	if scheduleComplete < 1 {
		base -= 30
	}
	if forecastComplete < 1 {
		base -= 30
	}
	if base < 0 {
		base = 0
	}
	return base
}

func recommendationConfidence(gapReport model.GapReport, ranked model.RankedSuggestions) float64 {
	confidence := 85.0
	confidence += (gapReport.CoverageScore - 50) / 10
	if len(ranked.Suggestions) > 0 {
		confidence += (ranked.Suggestions[0].Breakdown.Compliance - 10)
	}
	if confidence < 80 {
		confidence = 80
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence
}

func buildImplementationPlan(mode model.OptimizationMode, ranked model.RankedSuggestions) string {
	top := "no variant selected"
	if len(ranked.Suggestions) > 0 {
		top = ranked.Suggestions[0].VariantID
	}
	plan := fmt.Sprintf("stage 1: adopt variant %s; stage 2: monitor for 2 weeks; stage 3: full rollout. ", top)
	plan += "success criteria: service-level +5%, cost -10%, satisfaction maintained. "
	plan += "monitoring plan: real-time service-level tracking, daily cost review, weekly satisfaction survey."
	if mode == model.ModePilot {
		plan += " pilot schedule: select department, run pilot, evaluate results before wider rollout."
	}
	return plan
}

// nowStub and elapsedSince are the only places the orchestrator reads the
// wall clock (to measure run duration); pure stage logic never calls
// time.Now().
func nowStub() time.Time { return time.Now() }

func elapsedSince(start time.Time) time.Duration { return time.Since(start) }
