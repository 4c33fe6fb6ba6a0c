// Package scheduler periodically re-runs the Orchestrator on a cron
// schedule, grounded on the teacher pack's worker scheduler (cron.New +
// AddFunc + Start/Stop/Entries). It is an opt-in wrapper around
// Orchestrator.Run, not part of the core's pure synchronous API: the core
// never schedules its own re-runs (spec.md §4.6 run is a direct call).
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/oneaiguru/wfm-optimization-core/internal/model"
	"github.com/oneaiguru/wfm-optimization-core/internal/orchestrator"
)

// RequestBuilder produces the Request for the next triggered run, given the
// wall-clock time cron fired at (e.g. rolling StartDate/EndDate forward by
// one review window).
type RequestBuilder func(firedAt time.Time) model.Request

// ResultHandler receives each triggered run's result, e.g. for alerting on
// model.StatusDegraded or model.StatusTimeout.
type ResultHandler func(model.RunResult)

// Scheduler triggers Orchestrator.Run on a cron schedule.
type Scheduler struct {
	cron       *cron.Cron
	orch       *orchestrator.Orchestrator
	build      RequestBuilder
	onResult   ResultHandler
	logger     *zap.Logger
	runTimeout time.Duration
}

// New builds a Scheduler. runTimeout bounds each triggered run in addition
// to the Orchestrator's own internal budget (spec.md §2); zero means no
// additional bound.
func New(orch *orchestrator.Orchestrator, build RequestBuilder, onResult ResultHandler, runTimeout time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		orch:       orch,
		build:      build,
		onResult:   onResult,
		runTimeout: runTimeout,
		logger:     logger,
	}
}

// Schedule registers spec (a standard 5-field cron expression) to trigger a
// run. Returns the entry ID for later Remove, or an error on a malformed
// expression.
func (s *Scheduler) Schedule(spec string) (cron.EntryID, error) {
	return s.cron.AddFunc(spec, func() {
		s.fire(time.Now())
	})
}

func (s *Scheduler) fire(firedAt time.Time) {
	req := s.build(firedAt)

	ctx := context.Background()
	if s.runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.runTimeout)
		defer cancel()
	}

	result := s.orch.Run(ctx, req)
	if s.logger != nil {
		s.logger.Info("scheduled orchestrator run completed",
			zap.String("request_id", req.RequestID),
			zap.String("status", string(result.Status)),
			zap.Int64("processing_time_ms", result.ProcessingTimeMS),
		)
	}
	if s.onResult != nil {
		s.onResult(result)
	}
}

// Remove cancels a previously scheduled entry.
func (s *Scheduler) Remove(id cron.EntryID) { s.cron.Remove(id) }

// Entries lists currently scheduled entries.
func (s *Scheduler) Entries() []cron.Entry { return s.cron.Entries() }

// Start begins firing scheduled entries in their own goroutine.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the scheduler without waiting for a running job; the
// returned context is done once any running job has finished.
func (s *Scheduler) Stop() context.Context { return s.cron.Stop() }
