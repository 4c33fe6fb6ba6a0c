// Package scheduleloader defines the ScheduleLoader capability (spec.md §6):
// the one external collaborator that supplies a run's starting schedule and
// forecast. Failures degrade to empty collections rather than propagating,
// so Orchestrator can still tag data_quality and proceed (spec.md §6).
package scheduleloader

import (
	"context"
	"time"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
)

// DateRange bounds a loadSchedule/loadForecast call.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Loader is consumed by Orchestrator to fetch the inputs GapAnalyzer and
// PatternGenerator need (spec.md §6).
type Loader interface {
	LoadSchedule(ctx context.Context, dr DateRange, serviceID string) ([]model.ShiftBlock, error)
	LoadForecast(ctx context.Context, dr DateRange, serviceID string) (map[model.Interval]uint, error)
}

// Static is a fixed-data Loader for tests and offline runs, grounded on the
// teacher's in-memory fixture stores used across its package tests.
type Static struct {
	Schedule []model.ShiftBlock
	Forecast map[model.Interval]uint
}

func (s Static) LoadSchedule(_ context.Context, _ DateRange, _ string) ([]model.ShiftBlock, error) {
	return append([]model.ShiftBlock(nil), s.Schedule...), nil
}

func (s Static) LoadForecast(_ context.Context, _ DateRange, _ string) (map[model.Interval]uint, error) {
	out := make(map[model.Interval]uint, len(s.Forecast))
	for k, v := range s.Forecast {
		out[k] = v
	}
	return out, nil
}

var _ Loader = Static{}
