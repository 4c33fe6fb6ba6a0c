package patterngen

import (
	"sort"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

const maxOutputVariants = 5
const minDistinctTypesTarget = 3

// selectOutputs picks the final <=5 variants, maximizing pattern-type
// diversity while preferring fitness (spec.md §4.2 Output selection): at
// least 3 distinct pattern types must appear if that many are present in
// the population.
func selectOutputs(population []model.ScheduleVariant, fitnesses []float64) []model.ScheduleVariant {
	type scored struct {
		variant model.ScheduleVariant
		fitness float64
	}
	all := make([]scored, len(population))
	for i, v := range population {
		all[i] = scored{v, fitnesses[i]}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].fitness > all[j].fitness })

	var out []model.ScheduleVariant
	seenTypes := make(map[model.PatternType]bool)

	// First pass: best-of-each-type, up to the distinct-types target, to
	// guarantee diversity before filling remaining slots by pure fitness.
	for _, s := range all {
		if len(out) >= minDistinctTypesTarget {
			break
		}
		if seenTypes[s.variant.PatternType] {
			continue
		}
		seenTypes[s.variant.PatternType] = true
		out = append(out, s.variant)
	}

	for _, s := range all {
		if len(out) >= maxOutputVariants {
			break
		}
		if containsVariant(out, s.variant.VariantID) {
			continue
		}
		out = append(out, s.variant)
	}

	return out
}

func containsVariant(vs []model.ScheduleVariant, id string) bool {
	for _, v := range vs {
		if v.VariantID == id {
			return true
		}
	}
	return false
}
