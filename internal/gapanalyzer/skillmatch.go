package gapanalyzer

import (
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// ResolveSkillID matches a reported skill name against a canonical SkillID
// set, tolerating the naming drift that creeps in when skill rosters are
// entered by different upstream systems (e.g. "cust_service" reported
// against a canonical "customer_service"). An exact match always wins; a
// fuzzy match is accepted only when some canonical name scores a finite
// edit distance. Ties resolve to the first canonical candidate so the
// result stays deterministic across calls.
func ResolveSkillID(raw string, canonical []model.SkillID) (model.SkillID, bool) {
	if raw == "" {
		return "", false
	}

	bestDist := -1
	var best model.SkillID
	for _, c := range canonical {
		if string(c) == raw {
			return c, true
		}
		d := fuzzy.RankMatch(raw, string(c))
		if d < 0 {
			continue
		}
		if bestDist == -1 || d < bestDist {
			bestDist = d
			best = c
		}
	}
	if bestDist == -1 {
		return "", false
	}
	return best, true
}

// SkillMatchScore implements the ScoringEngine skill_match sub-component
// (spec.md §4.5): |required ∩ available| / |required| * 10. An empty
// required set is a full match, since coverage can't fail a requirement
// that was never stated.
func SkillMatchScore(required, available map[model.SkillID]struct{}) float64 {
	if len(required) == 0 {
		return 10
	}
	matched := 0
	for s := range required {
		if _, ok := available[s]; ok {
			matched++
		}
	}
	return (float64(matched) / float64(len(required))) * 10
}
