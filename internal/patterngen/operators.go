package patterngen

import (
	"math/rand"
	"time"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// mutationKind enumerates the moves spec.md §4.2 names for Mutation.
type mutationKind int

const (
	mutShiftTime mutationKind = iota
	mutAddHours
	mutRemoveHours
	mutSplit
	mutMerge
	mutSwapAgents
)

// crossover performs single-point block-list exchange (spec.md §4.2
// Crossover, rate 0.80), returning two new variants with fresh IDs — per the
// Immutable-once-scored invariant (spec.md §3), mutation must never reuse a
// VariantID.
func crossover(a, b model.ScheduleVariant, rng *rand.Rand) (model.ScheduleVariant, model.ScheduleVariant) {
	if len(a.Blocks) == 0 || len(b.Blocks) == 0 {
		return a.WithNewID(newVariantID()), b.WithNewID(newVariantID())
	}

	cutA := 1 + rng.Intn(len(a.Blocks))
	cutB := 1 + rng.Intn(len(b.Blocks))

	child1Blocks := append(append([]model.ShiftBlock(nil), a.Blocks[:cutA]...), b.Blocks[cutB:]...)
	child2Blocks := append(append([]model.ShiftBlock(nil), b.Blocks[:cutB]...), a.Blocks[cutA:]...)

	child1 := a.WithNewID(newVariantID())
	child1.Blocks = child1Blocks
	child1.PatternType = a.PatternType

	child2 := b.WithNewID(newVariantID())
	child2.Blocks = child2Blocks
	child2.PatternType = b.PatternType

	return child1, child2
}

// mutate applies one random move from the mutation set (spec.md §4.2
// Mutation, rate 0.10).
func mutate(v model.ScheduleVariant, gaps model.GapReport, rng *rand.Rand) model.ScheduleVariant {
	out := v.WithNewID(newVariantID())
	if len(out.Blocks) == 0 {
		return out
	}

	idx := rng.Intn(len(out.Blocks))
	kind := mutationKind(rng.Intn(6))

	switch kind {
	case mutShiftTime:
		delta := time.Hour
		if rng.Intn(2) == 0 {
			delta = -delta
		}
		out.Blocks[idx].Start = out.Blocks[idx].Start.Add(delta)
		out.Blocks[idx].End = out.Blocks[idx].End.Add(delta)
	case mutAddHours:
		out.Blocks[idx].End = out.Blocks[idx].End.Add(time.Hour)
	case mutRemoveHours:
		if out.Blocks[idx].End.Sub(out.Blocks[idx].Start) > 2*time.Hour {
			out.Blocks[idx].End = out.Blocks[idx].End.Add(-time.Hour)
		}
	case mutSplit:
		b := out.Blocks[idx]
		mid := b.Start.Add(b.End.Sub(b.Start) / 2)
		first := b
		first.End = mid
		first.ShiftPart = model.ShiftFirstHalf
		second := b
		second.Start = mid.Add(2 * time.Hour)
		second.ShiftPart = model.ShiftSecondHalf
		out.Blocks = append(append(out.Blocks[:idx], first, second), out.Blocks[idx+1:]...)
	case mutMerge:
		if idx+1 < len(out.Blocks) && out.Blocks[idx].EmployeeID == out.Blocks[idx+1].EmployeeID {
			merged := out.Blocks[idx]
			merged.End = out.Blocks[idx+1].End
			merged.ShiftPart = model.ShiftWhole
			out.Blocks = append(append(append([]model.ShiftBlock(nil), out.Blocks[:idx]...), merged), out.Blocks[idx+2:]...)
		}
	case mutSwapAgents:
		other := rng.Intn(len(out.Blocks))
		out.Blocks[idx].EmployeeID, out.Blocks[other].EmployeeID = out.Blocks[other].EmployeeID, out.Blocks[idx].EmployeeID
	}

	return out
}
