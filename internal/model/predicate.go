package model

// ConstraintPredicate is the tagged variant replacing the reflective
// expression parsing the Python original used (spec.md §9 "Dynamic predicate
// evaluation"). The rule loader compiles declarative MetricsStore rows into
// one of these; internal/constraints pattern-matches on Kind.
type PredicateKind string

const (
	PredicateWeeklyHoursOver      PredicateKind = "weekly_hours_over"
	PredicateDailyOvertimeOver    PredicateKind = "daily_overtime_over"
	PredicateMinRestBelow         PredicateKind = "min_rest_below"
	PredicateConsecutiveDaysOver  PredicateKind = "consecutive_days_over"
	PredicatePreferenceMismatch   PredicateKind = "preference_mismatch"
	PredicateMaxDailyHoursOver    PredicateKind = "max_daily_hours_over"
	PredicateCustom               PredicateKind = "custom"
)

// ConstraintPredicate carries the kind plus whatever numeric/string
// parameters that kind needs. Exactly one of the parameter fields is
// meaningful per Kind.
type ConstraintPredicate struct {
	Kind PredicateKind

	HoursLimit   float64 // WeeklyHoursOver, DailyOvertimeOver, MaxDailyHoursOver
	RestHours    float64 // MinRestBelow
	DaysLimit    int     // ConsecutiveDaysOver
	CustomAST    string  // Custom — opaque, not evaluated by the core's built-in evaluator
}
