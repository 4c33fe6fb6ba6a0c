package patterngen

import (
	"math/rand"
	"sort"
	"time"

	"github.com/oneaiguru/wfm-optimization-core/internal/config"
	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// staggeredOffsets are the fixed start-hour offsets spec.md §4.2 names for
// the staggered archetype.
var staggeredOffsets = []int{7, 8, 9, 10, 11, 14, 15, 16}

// seedPopulation builds the fixed-size-50 initial population, seeded
// deterministically by archetype counts (spec.md §4.2 Population).
func seedPopulation(current []model.ShiftBlock, gaps model.GapReport, ga config.GAParams, rng *rand.Rand, baseDate time.Time) []model.ScheduleVariant {
	dates := deriveDates(current, baseDate)
	employees := deriveEmployees(current)
	peakHours := peakGapHours(gaps)

	var population []model.ScheduleVariant
	counts := ga.ArchetypeSeedCounts

	generators := []struct {
		pt    model.PatternType
		count int
		seed  func(int) model.ScheduleVariant
	}{
		{model.PatternTraditional, counts["traditional"], func(i int) model.ScheduleVariant {
			return seedTraditional(employees, dates, i)
		}},
		{model.PatternFlexible, counts["flexible"], func(i int) model.ScheduleVariant {
			return seedFlexible(employees, dates, rng, i)
		}},
		{model.PatternStaggered, counts["staggered"], func(i int) model.ScheduleVariant {
			return seedStaggered(employees, dates, i)
		}},
		{model.PatternSplitShift, counts["split_shift"], func(i int) model.ScheduleVariant {
			return seedSplitShift(employees, dates, i)
		}},
		{model.PatternCompressed, counts["compressed"], func(i int) model.ScheduleVariant {
			return seedCompressed(employees, dates, i)
		}},
		{model.PatternPartTime, counts["part_time"], func(i int) model.ScheduleVariant {
			return seedPartTime(employees, dates, i)
		}},
		{model.PatternPeakFocus, counts["peak_focus"], func(i int) model.ScheduleVariant {
			return seedPeakFocus(employees, dates, peakHours, i)
		}},
		{model.PatternWeekendFocus, counts["weekend_focus"], func(i int) model.ScheduleVariant {
			return seedWeekendFocus(employees, dates, i)
		}},
	}

	for _, g := range generators {
		for i := 0; i < g.count; i++ {
			population = append(population, g.seed(i))
		}
	}
	return population
}

func peakGapHours(gaps model.GapReport) []int {
	type hourGap struct {
		hour  int
		count uint
	}
	byHour := make(map[int]uint)
	for _, ig := range gaps.IntervalGaps {
		byHour[ig.Interval.Start/60] += ig.GapCount
	}
	var hs []hourGap
	for h, c := range byHour {
		hs = append(hs, hourGap{h, c})
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i].count > hs[j].count })
	var out []int
	for i, h := range hs {
		if i >= 3 {
			break
		}
		out = append(out, h.hour)
	}
	if len(out) == 0 {
		out = []int{9, 10, 11}
	}
	return out
}

func block(emp string, date time.Time, startHour, endHour int, site string, part model.ShiftPart) model.ShiftBlock {
	start := time.Date(date.Year(), date.Month(), date.Day(), startHour, 0, 0, 0, time.UTC)
	end := time.Date(date.Year(), date.Month(), date.Day(), endHour, 0, 0, 0, time.UTC)
	return model.ShiftBlock{
		EmployeeID:   emp,
		Date:         date,
		Start:        start,
		End:          end,
		BreakMinutes: 30,
		AssignedSite: site,
		ShiftPart:    part,
	}
}

func newVariant(pt model.PatternType, blocks []model.ShiftBlock) model.ScheduleVariant {
	return model.ScheduleVariant{
		VariantID:   newVariantID(),
		PatternType: pt,
		Generation:  0,
		Blocks:      blocks,
	}
}

// seedTraditional reproduces a standard 09:00-17:00, 5-day pattern.
func seedTraditional(employees []string, dates []time.Time, i int) model.ScheduleVariant {
	var blocks []model.ShiftBlock
	for _, emp := range employees {
		for _, d := range dates {
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				continue
			}
			blocks = append(blocks, block(emp, d, 9, 17, "site-1", model.ShiftWhole))
		}
	}
	return newVariant(model.PatternTraditional, blocks)
}

// seedFlexible offsets each employee's start hour within a small window,
// derived deterministically from the employee and variant index.
func seedFlexible(employees []string, dates []time.Time, rng *rand.Rand, i int) model.ScheduleVariant {
	var blocks []model.ShiftBlock
	for ei, emp := range employees {
		offset := (ei + i) % 5 // 0..4: start hours 07:00-11:00
		startHour := 7 + offset
		for _, d := range dates {
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				continue
			}
			blocks = append(blocks, block(emp, d, startHour, startHour+8, "site-1", model.ShiftWhole))
		}
	}
	return newVariant(model.PatternFlexible, blocks)
}

// seedStaggered cycles employees through the fixed staggered offsets.
func seedStaggered(employees []string, dates []time.Time, i int) model.ScheduleVariant {
	var blocks []model.ShiftBlock
	for ei, emp := range employees {
		startHour := staggeredOffsets[(ei+i)%len(staggeredOffsets)]
		for _, d := range dates {
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				continue
			}
			blocks = append(blocks, block(emp, d, startHour, startHour+8, "site-1", model.ShiftWhole))
		}
	}
	return newVariant(model.PatternStaggered, blocks)
}

// seedSplitShift splits each day into 08:00-12:00 + 14:00-18:00 blocks.
func seedSplitShift(employees []string, dates []time.Time, i int) model.ScheduleVariant {
	var blocks []model.ShiftBlock
	for _, emp := range employees {
		for _, d := range dates {
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				continue
			}
			blocks = append(blocks, block(emp, d, 8, 12, "site-1", model.ShiftFirstHalf))
			blocks = append(blocks, block(emp, d, 14, 18, "site-1", model.ShiftSecondHalf))
		}
	}
	return newVariant(model.PatternSplitShift, blocks)
}

// seedCompressed packs 10h x 4 days.
func seedCompressed(employees []string, dates []time.Time, i int) model.ScheduleVariant {
	var blocks []model.ShiftBlock
	for _, emp := range employees {
		count := 0
		for _, d := range dates {
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				continue
			}
			if count >= 4 {
				break
			}
			blocks = append(blocks, block(emp, d, 7, 17, "site-1", model.ShiftWhole))
			count++
		}
	}
	return newVariant(model.PatternCompressed, blocks)
}

// seedPartTime targets ~20h/week: 4h x 5 days.
func seedPartTime(employees []string, dates []time.Time, i int) model.ScheduleVariant {
	var blocks []model.ShiftBlock
	for _, emp := range employees {
		for _, d := range dates {
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				continue
			}
			blocks = append(blocks, block(emp, d, 9, 13, "site-1", model.ShiftWhole))
		}
	}
	return newVariant(model.PatternPartTime, blocks)
}

// seedPeakFocus aligns shift starts to the highest-gap hours.
func seedPeakFocus(employees []string, dates []time.Time, peakHours []int, i int) model.ScheduleVariant {
	var blocks []model.ShiftBlock
	for ei, emp := range employees {
		start := peakHours[ei%len(peakHours)]
		for _, d := range dates {
			if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
				continue
			}
			blocks = append(blocks, block(emp, d, start, start+8, "site-1", model.ShiftWhole))
		}
	}
	return newVariant(model.PatternPeakFocus, blocks)
}

// seedWeekendFocus concentrates coverage on Saturday/Sunday.
func seedWeekendFocus(employees []string, dates []time.Time, i int) model.ScheduleVariant {
	var blocks []model.ShiftBlock
	for _, emp := range employees {
		for _, d := range dates {
			if d.Weekday() != time.Saturday && d.Weekday() != time.Sunday {
				continue
			}
			blocks = append(blocks, block(emp, d, 8, 18, "site-1", model.ShiftWhole))
		}
	}
	return newVariant(model.PatternWeekendFocus, blocks)
}
