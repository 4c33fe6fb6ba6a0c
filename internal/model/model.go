// Package model holds the value types shared by every pipeline stage, per
// spec.md §3. All entities here are value types unless stated otherwise;
// ScheduleVariant is treated as immutable once scored (spec.md §3 invariant).
package model

import "time"

// Priority is a CoverageRequirement priority tier.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// Severity is a violation/gap severity tier.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityCovered  Severity = "covered"
)

// SeverityWeight is the severity → weight table used by ComplianceMatrix and
// GapAnalyzer scoring (spec.md §3 invariant, §4.1 step 5).
var SeverityWeight = map[Severity]float64{
	SeverityCritical: 10,
	SeverityHigh:     5,
	SeverityMedium:   2,
	SeverityLow:      1,
	SeverityCovered:  0,
}

// CoverageWeight is the severity → weight table used only by GapAnalyzer's
// coverage_score (spec.md §4.1 step 5 — distinct scale from SeverityWeight).
var CoverageWeight = map[Severity]float64{
	SeverityCritical: 1.0,
	SeverityHigh:     0.7,
	SeverityMedium:   0.4,
	SeverityLow:      0.2,
	SeverityCovered:  0,
}

// SkillID identifies a required or possessed skill.
type SkillID string

// CoverageRequirement is the required headcount for one interval.
type CoverageRequirement struct {
	Interval         Interval
	RequiredHeadcount uint
	RequiredSkills   map[SkillID]struct{}
	Priority         Priority
}

// ShiftPart labels whether a block is a whole shift or half of a split shift.
type ShiftPart string

const (
	ShiftWhole      ShiftPart = "whole"
	ShiftFirstHalf  ShiftPart = "first_half"
	ShiftSecondHalf ShiftPart = "second_half"
)

// ShiftBlock is one employee's scheduled block on one date.
type ShiftBlock struct {
	EmployeeID    string
	Date          time.Time
	Start         time.Time
	End           time.Time
	BreakMinutes  int
	AssignedSite  string
	ShiftPart     ShiftPart

	// Mobile-workforce fields (spec.md §4.4 mobile additions).
	TravelDistanceKM float64
	AccommodationNights int
	CrossSite        bool
}

// DurationMinutes is the block's length excluding breaks.
func (b ShiftBlock) DurationMinutes() int {
	mins := int(b.End.Sub(b.Start).Minutes()) - b.BreakMinutes
	if mins < 0 {
		return 0
	}
	return mins
}

// Interval projects the block onto a same-day Interval in minutes-since-midnight,
// used for overlap detection in bulk_apply conflict checks (spec.md §4.6).
func (b ShiftBlock) Interval() Interval {
	startMin := b.Start.Hour()*60 + b.Start.Minute()
	endMin := startMin + int(b.End.Sub(b.Start).Minutes())
	return NewInterval(startMin, endMin)
}

// NightMinutes counts the block's minutes that fall in the 22:00-06:00
// night window (spec.md §4.4).
func (b ShiftBlock) NightMinutes() int {
	total := 0
	cur := b.Start
	for cur.Before(b.End) {
		h := cur.Hour()
		if h >= 22 || h < 6 {
			total++
		}
		cur = cur.Add(time.Minute)
	}
	return total
}

// IsWeekend reports whether the block's date is Saturday or Sunday.
func (b ShiftBlock) IsWeekend() bool {
	d := b.Date.Weekday()
	return d == time.Saturday || d == time.Sunday
}

// PatternType is a pattern archetype name (spec.md §3, Glossary).
type PatternType string

const (
	PatternTraditional  PatternType = "traditional"
	PatternFlexible     PatternType = "flexible"
	PatternStaggered    PatternType = "staggered"
	PatternSplitShift   PatternType = "split_shift"
	PatternCompressed   PatternType = "compressed"
	PatternPartTime     PatternType = "part_time"
	PatternPeakFocus    PatternType = "peak_focus"
	PatternWeekendFocus PatternType = "weekend_focus"
)

// ViolationID identifies one constraint violation instance.
type ViolationID string

// ScheduleVariant is one candidate schedule. Immutable once scored: any
// mutation must produce a new VariantID (spec.md §3 invariant).
type ScheduleVariant struct {
	VariantID   string
	PatternType PatternType
	Generation  uint
	Blocks      []ShiftBlock

	// Cached metrics, populated progressively by later stages.
	FitnessScore        float64
	ProjectedGaps        int
	ProjectedWeeklyCost  float64
	ComplexityScore      float64
	ConstraintViolations []ViolationID
}

// WithNewID returns a copy of v with a freshly generated VariantID, used any
// time a variant is mutated (crossover, mutation) during the GA search.
func (v ScheduleVariant) WithNewID(newID string) ScheduleVariant {
	cp := v
	cp.VariantID = newID
	cp.Blocks = append([]ShiftBlock(nil), v.Blocks...)
	cp.ConstraintViolations = append([]ViolationID(nil), v.ConstraintViolations...)
	return cp
}

// EmploymentType distinguishes employee contract categories.
type EmploymentType string

const (
	FullTime EmploymentType = "full_time"
	PartTime EmploymentType = "part_time"
	Contract EmploymentType = "contract"
)

// Employee is a read-only input for one run (spec.md §3 Lifecycle).
type Employee struct {
	ID                  string
	EmploymentType      EmploymentType
	WeeklyHoursNorm     float64
	WorkRate            float64
	Skills              map[SkillID]struct{}
	SkillTier           string // "basic", "intermediate", "expert" — for skill_premium
	OvertimeAuthorized  bool
	NightPermission     bool
	WeekendPermission   bool
	BaseSite            string
	CostCenterID        string
	SalaryBand          string
	PositionTitle       string
	TimeZone            string
	PreferredStart      *time.Time
	PreferredEnd        *time.Time
}

// RuleCategory categorizes a ConstraintRule (spec.md §3, §4.3).
type RuleCategory string

const (
	CategoryLaborLaw   RuleCategory = "labor_law"
	CategoryUnion      RuleCategory = "union"
	CategoryContract   RuleCategory = "contract"
	CategoryBusiness   RuleCategory = "business"
	CategoryPreference RuleCategory = "preference"
	CategorySchedule   RuleCategory = "schedule"
)

// ConstraintRule is loaded from MetricsStore; Condition is opaque to the core
// and evaluated by a pluggable ConstraintPredicate (spec.md §9).
type ConstraintRule struct {
	ID         string
	Category   RuleCategory
	Condition  ConstraintPredicate
	Severity   Severity
	CostImpact float64
	RemedyHint string

	// RequiredEmploymentType scopes the rule to one EmploymentType (e.g. a
	// part-time-hours cap). Empty means the rule applies to every employee.
	RequiredEmploymentType EmploymentType

	// SitePattern restricts the rule to shift blocks whose AssignedSite
	// matches a doublestar glob (e.g. "warehouse-*"). Empty matches every site.
	SitePattern string
}

// Violation is one rule failure recorded in a ComplianceMatrix.
type Violation struct {
	RuleID             string
	Severity           Severity
	Category           RuleCategory
	Description        string
	AffectedEmployee   string
	AffectedInterval   *Interval
	RemedyHint         string
	CostImpact         float64
}

// ComplianceMatrix is the output of ConstraintValidator (spec.md §4.3).
type ComplianceMatrix struct {
	CountsBySeverity  map[Severity]int
	CountsByCategory  map[RuleCategory]int
	ComplianceScore   float64 // [0,100]
	Violations        []Violation
	Source            string // "store" or "fallback" (spec.md §4.3 Fallback)
	ValidationSummary string
}

// CostAnalysis is the per-employee/per-component cost breakdown (spec.md §3).
type CostAnalysis struct {
	PerEmployee          map[string]EmployeeCost
	TotalsByComponent    map[string]float64
	CoefficientOfVariation float64
	EfficiencyIndicators map[string]float64
}

// EmployeeCost is one employee's weekly cost components (spec.md §4.4).
type EmployeeCost struct {
	EmployeeID      string
	Base            float64
	Overtime        float64
	WeekendPremium  float64
	NightPremium    float64
	SkillPremium    float64
	Benefits        float64
	Travel          float64
	Accommodation   float64
	Coordination    float64
	TotalHours      float64
}

// Total sums all components of an EmployeeCost.
func (c EmployeeCost) Total() float64 {
	return c.Base + c.Overtime + c.WeekendPremium + c.NightPremium + c.SkillPremium +
		c.Benefits + c.Travel + c.Accommodation + c.Coordination
}

// Quality tags a FinancialImpact's computability (spec.md §4.4 LP mode, §9).
type Quality string

const (
	QualityOK         Quality = "ok"
	QualityInfeasible Quality = "infeasible"
)

// SavingsOpportunity is one ranked cost-reduction suggestion (spec.md §4.4).
type SavingsOpportunity struct {
	Description      string
	PotentialSavings float64
}

// FinancialImpact is CostCalculator's output (spec.md §3, §4.4).
type FinancialImpact struct {
	Totals               map[string]float64
	ComponentBreakdown   map[string]float64
	PerEmployee          []EmployeeCost
	SavingsOpportunities []SavingsOpportunity
	ProcessingTimeMS     int64
	Quality              Quality
	Recommendation       string
}

// IntervalGap is one interval's coverage gap (spec.md §3, §4.1).
type IntervalGap struct {
	Interval   Interval
	Required   uint
	Scheduled  uint
	GapCount   uint
	GapPct     float64
	Severity   Severity
	CostImpact float64
	SLImpact   float64
}

// GapReport is GapAnalyzer's output (spec.md §3, §4.1).
type GapReport struct {
	IntervalGaps      []IntervalGap
	TotalGaps         uint
	AverageGapPct     float64
	CriticalIntervals int
	CoverageScore     float64 // [0,100]
	Recommendations   []string
}

// GapPatternSummary is GapAnalyzer.IdentifyPatterns's output (SPEC_FULL.md §C.2).
type GapPatternSummary struct {
	PeakPeriods        []Interval
	SeverityDistribution map[Severity]int
	CostHotspots       []IntervalGap // top 5 by cost_impact
}

// ScoreBreakdown is the four weighted scoring components (spec.md §3, §4.5).
type ScoreBreakdown struct {
	Coverage   float64 // [0,40]
	Cost       float64 // [0,30]
	Compliance float64 // [0,20]
	Simplicity float64 // [0,10]

	GapReduction          float64
	PeakCoverage          float64
	SkillMatch            float64
	OvertimeReduction     float64
	CostReduction         float64
	LaborCompliance       float64
	PreferenceSatisfaction float64
	PatternRegularity     float64
}

// Total sums the four weighted components.
func (s ScoreBreakdown) Total() float64 {
	return s.Coverage + s.Cost + s.Compliance + s.Simplicity
}

// RecommendationLevel is the scoring engine's implement/monitor/plan verdict.
type RecommendationLevel string

const (
	RecommendImplement     RecommendationLevel = "implement"
	RecommendMonitor       RecommendationLevel = "monitor"
	RecommendPlanAccordingly RecommendationLevel = "plan_accordingly"
)

// Risk is a low/medium/high risk tier.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// OptimizationScore is one ranked variant's scoring result (spec.md §3, §4.5).
type OptimizationScore struct {
	VariantID            string
	OverallScore         float64
	Breakdown            ScoreBreakdown
	Rank                 int
	RecommendationLevel  RecommendationLevel
	Risk                 Risk
	ImplementationWindow string
	ExpectedOutcomes     []string
}

// ComparisonRow is one variant's side-by-side row in a comparison matrix.
type ComparisonRow struct {
	VariantID           string
	Coverage            float64
	Cost                float64
	Compliance          float64
	Simplicity          float64
	Risk                Risk
	ImplementationWeeks int
}

// RankedSuggestions is ScoringEngine's output (spec.md §3, §4.5).
type RankedSuggestions struct {
	Suggestions      []OptimizationScore
	ComparisonMatrix []ComparisonRow // top-3
	Methodology      string
	Summary          string
}

// OptimizationMode is the implementation mode for bulk_apply (spec.md §4.6).
type OptimizationMode string

const (
	ModeImmediateFull OptimizationMode = "immediate_full"
	ModePhased        OptimizationMode = "phased"
	ModePilot         OptimizationMode = "pilot"
)

// EmployeeConflict is one detected double-booking (spec.md §4.6).
type EmployeeConflict struct {
	EmployeeID string
	Interval   Interval
	VariantIDs []string
}

// ConflictReport is bulk_apply's conflict-detection output.
type ConflictReport struct {
	EmployeeConflicts []EmployeeConflict
}

// RollbackTrigger is one standard rollback condition (spec.md §4.6).
type RollbackTrigger struct {
	Name             string
	DetectionWindow  time.Duration
	DetectionMethod  string
	RecoverySteps    []string
}

// RollbackPlan is bulk_apply's rollback-plan output.
type RollbackPlan struct {
	Triggers []RollbackTrigger
}

// BulkOperationResult is Orchestrator.bulk_apply's output (spec.md §3, §4.6).
type BulkOperationResult struct {
	CombinedCoverageDelta float64
	CombinedCostSavings   float64
	UniqueEmployeeCount   int
	AverageComplexity     float64
	Risk                  Risk
	TimelineWeeks         int
	TimelineFeasible      bool
	ConflictReport        ConflictReport
	RollbackPlan          RollbackPlan
	MissingTrainingNeeds  []string
	BudgetImpact          float64
	BudgetCeiling         float64
	OverBudget            bool
}

// RunStatus is the terminal status of an Orchestrator.run invocation.
type RunStatus string

const (
	StatusOK       RunStatus = "ok"
	StatusTimeout  RunStatus = "timeout"
	StatusDegraded RunStatus = "degraded"
	StatusInvalid  RunStatus = "invalid"
)

// RunResult is Orchestrator.run's output (spec.md §4.6, §6).
type RunResult struct {
	RankedSuggestions      RankedSuggestions
	ImplementationPlan     string
	ProcessingTimeMS       int64
	AlgorithmsUsed         []string
	DataQuality            float64
	RecommendationConfidence float64
	Status                 RunStatus
	Slow                   bool
}

// Request is the orchestrator's run() input envelope (spec.md §6).
type Request struct {
	RequestID string
	StartDate time.Time
	EndDate   time.Time
	ServiceID string
	Goals     map[string]float64
	Mode      OptimizationMode
}
