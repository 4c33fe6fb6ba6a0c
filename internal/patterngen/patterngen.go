// Package patterngen implements the PatternGenerator stage (spec.md §4.2):
// an evolutionary search producing up to 5 diverse, high-fitness
// ScheduleVariants from the current schedule and a GapReport. Grounded in
// original_source/pattern_generator.py's population/fitness/selection loop.
package patterngen

import (
	"context"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/oneaiguru/wfm-optimization-core/internal/config"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// Targets expresses desired deltas guiding fitness (spec.md §4.2), e.g.
// {"coverage": 0.15, "cost": -0.10}.
type Targets map[string]float64

// Result is Generate's output, including the degradation flag spec.md §4.2
// requires when the budget is exceeded.
type Result struct {
	Variants  []model.ScheduleVariant
	Degraded  bool
	Generations int
}

// Generate runs the evolutionary search. rng must be an explicit,
// caller-supplied source so identical seeds+inputs produce identical output
// (spec.md §4.2 Determinism). baseDate anchors the seeded population's
// calendar dates when current is empty or sparse; callers should pass the
// request's own start date rather than a wall-clock read, so that two
// Generate calls with identical inputs always produce identical dates.
func Generate(ctx context.Context, current []model.ShiftBlock, gaps model.GapReport, targets Targets, ga config.GAParams, rng *rand.Rand, baseDate time.Time) Result {
	population := seedPopulation(current, gaps, ga, rng, baseDate)

	fitnesses := make([]float64, len(population))
	for i, v := range population {
		fitnesses[i] = fitness(v, gaps, targets)
	}

	window := make([]float64, 0, ga.ConvergenceWindow)
	degraded := false
	gen := 0

	for ; gen < ga.MaxGenerations; gen++ {
		select {
		case <-ctx.Done():
			degraded = true
			return finish(population, fitnesses, gen, degraded)
		default:
		}

		population, fitnesses = evolveGeneration(population, fitnesses, gaps, targets, ga, rng)

		best := maxOf(fitnesses)
		window = append(window, best)
		if len(window) > ga.ConvergenceWindow {
			window = window[1:]
		}
		if len(window) == ga.ConvergenceWindow {
			improvement := window[len(window)-1] - window[0]
			if improvement < ga.ConvergenceDelta {
				break
			}
		}
	}

	return finish(population, fitnesses, gen+1, degraded)
}

func finish(population []model.ScheduleVariant, fitnesses []float64, generations int, degraded bool) Result {
	for i := range population {
		population[i].FitnessScore = fitnesses[i]
	}
	outputs := selectOutputs(population, fitnesses)
	return Result{Variants: outputs, Degraded: degraded, Generations: generations}
}

func evolveGeneration(population []model.ScheduleVariant, fitnesses []float64, gaps model.GapReport, targets Targets, ga config.GAParams, rng *rand.Rand) ([]model.ScheduleVariant, []float64) {
	next := make([]model.ScheduleVariant, 0, len(population))

	eliteIdx := topNIndices(fitnesses, ga.EliteSize)
	for _, i := range eliteIdx {
		next = append(next, population[i])
	}

	for len(next) < len(population) {
		p1 := tournamentSelect(population, fitnesses, ga.TournamentSize, rng)
		p2 := tournamentSelect(population, fitnesses, ga.TournamentSize, rng)

		child1, child2 := population[p1], population[p2]
		if rng.Float64() < ga.CrossoverRate {
			child1, child2 = crossover(child1, child2, rng)
		}
		if rng.Float64() < ga.MutationRate {
			child1 = mutate(child1, gaps, rng)
		}
		if rng.Float64() < ga.MutationRate {
			child2 = mutate(child2, gaps, rng)
		}

		next = append(next, child1)
		if len(next) < len(population) {
			next = append(next, child2)
		}
	}
	next = next[:len(population)]

	nextFitnesses := make([]float64, len(next))
	for i, v := range next {
		nextFitnesses[i] = fitness(v, gaps, targets)
	}
	return next, nextFitnesses
}

func tournamentSelect(population []model.ScheduleVariant, fitnesses []float64, size int, rng *rand.Rand) int {
	best := rng.Intn(len(population))
	for i := 1; i < size; i++ {
		cand := rng.Intn(len(population))
		if fitnesses[cand] > fitnesses[best] {
			best = cand
		}
	}
	return best
}

func topNIndices(fitnesses []float64, n int) []int {
	idx := make([]int, len(fitnesses))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return fitnesses[idx[i]] > fitnesses[idx[j]] })
	if n > len(idx) {
		n = len(idx)
	}
	return idx[:n]
}

func maxOf(xs []float64) float64 {
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func newVariantID() string {
	return uuid.NewString()
}

// deriveDates collects the distinct calendar dates present in current. When
// current is empty (a legal sparse/empty-schedule input, spec.md §4.1/§4.2)
// it falls back to 5 days starting at baseDate rather than the wall clock,
// so that identical (seed, current, baseDate) inputs always produce
// identical variant dates (spec.md §4.2 Determinism).
func deriveDates(current []model.ShiftBlock, baseDate time.Time) []time.Time {
	seen := make(map[string]time.Time)
	for _, b := range current {
		key := b.Date.Format("2006-01-02")
		if _, ok := seen[key]; !ok {
			seen[key] = b.Date
		}
	}
	dates := make([]time.Time, 0, len(seen))
	for _, d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	if len(dates) == 0 {
		start := baseDate.Truncate(24 * time.Hour)
		for i := 0; i < 5; i++ {
			dates = append(dates, start.AddDate(0, 0, i))
		}
	}
	return dates
}

func deriveEmployees(current []model.ShiftBlock) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, b := range current {
		if _, ok := seen[b.EmployeeID]; !ok {
			seen[b.EmployeeID] = struct{}{}
			out = append(out, b.EmployeeID)
		}
	}
	sort.Strings(out)
	if len(out) == 0 {
		out = []string{"E1", "E2", "E3"}
	}
	return out
}
