// Package config loads run-time tunables for the optimization core: stage
// latency budgets, evolutionary-search parameters, default cost rates, and
// the bounded worker pool / circuit breaker guarding MetricsStore access.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Budgets holds the per-stage wall-clock budgets from spec.md §2.
type Budgets struct {
	GapAnalyzer       time.Duration `mapstructure:"gap_analyzer"`
	PatternGenerator  time.Duration `mapstructure:"pattern_generator"`
	ConstraintValidator time.Duration `mapstructure:"constraint_validator"`
	CostCalculator    time.Duration `mapstructure:"cost_calculator"`
	ScoringEngine     time.Duration `mapstructure:"scoring_engine"`
	Orchestrator      time.Duration `mapstructure:"orchestrator"`
	OrchestratorAlert time.Duration `mapstructure:"orchestrator_alert"`
}

// GAParams holds the evolutionary search parameters from spec.md §4.2.
type GAParams struct {
	PopulationSize      int            `mapstructure:"population_size"`
	MaxGenerations      int            `mapstructure:"max_generations"`
	MutationRate        float64        `mapstructure:"mutation_rate"`
	CrossoverRate       float64        `mapstructure:"crossover_rate"`
	EliteSize           int            `mapstructure:"elite_size"`
	TournamentSize      int            `mapstructure:"tournament_size"`
	ConvergenceWindow   int            `mapstructure:"convergence_window"`
	ConvergenceDelta    float64        `mapstructure:"convergence_delta"`
	ArchetypeSeedCounts map[string]int `mapstructure:"archetype_seed_counts"`
}

// ScoringWeights holds the four top-level weighted components from spec.md §4.5.
type ScoringWeights struct {
	Coverage   float64 `mapstructure:"coverage"`
	Cost       float64 `mapstructure:"cost"`
	Compliance float64 `mapstructure:"compliance"`
	Simplicity float64 `mapstructure:"simplicity"`
}

// CostRates holds default per-unit cost rates used when MetricsStore has no
// employee financial profile (spec.md §4.4).
type CostRates struct {
	BaseHourly          float64            `mapstructure:"base_hourly"`
	OvertimeMultiplier  float64            `mapstructure:"overtime_multiplier"`
	WeekendPremium      float64            `mapstructure:"weekend_premium"`
	NightDifferential   float64            `mapstructure:"night_differential"`
	SkillPremium        map[string]float64 `mapstructure:"skill_premium"`
	BenefitsRate        float64            `mapstructure:"benefits_rate"`
	TravelRatePerKm     float64            `mapstructure:"travel_rate_per_km"`
	AccommodationNight  float64            `mapstructure:"accommodation_per_night"`
	CoordinationFee     float64            `mapstructure:"coordination_fee"`
	GapCostPerAgentHour float64            `mapstructure:"gap_cost_per_agent_hour"`
}

// CircuitBreaker guards MetricsStore access.
type CircuitBreaker struct {
	FailureThreshold float64       `mapstructure:"failure_threshold"`
	Window           time.Duration `mapstructure:"window"`
	CooldownPeriod   time.Duration `mapstructure:"cooldown_period"`
	MinSamples       int           `mapstructure:"min_samples"`
}

// StorePool bounds the MetricsStore connection pool (spec.md §5) and
// configures the durable store and optional cache it fronts.
type StorePool struct {
	Size        int           `mapstructure:"size"`
	WaitTimeout time.Duration `mapstructure:"wait_timeout"`

	// Driver/DSN select the sqlstore backend (e.g. "postgres", "sqlite3").
	// Empty Driver means no durable store is opened; MetricsStore falls
	// back to the in-process fallback rules.
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`

	// RedisAddr, when set, fronts the durable store with a read-through
	// rediscache.Store at this address. Empty means no cache.
	RedisAddr string        `mapstructure:"redis_addr"`
	RedisTTL  time.Duration `mapstructure:"redis_ttl"`

	// RateLimitPerSecond/RateLimitBurst bound the request rate against the
	// durable store (x/time/rate token bucket). Zero RateLimitPerSecond
	// means unlimited.
	RateLimitPerSecond float64 `mapstructure:"rate_limit_per_second"`
	RateLimitBurst      int    `mapstructure:"rate_limit_burst"`
}

// Observability configures logging and metrics emission.
type Observability struct {
	MetricsPort int    `mapstructure:"metrics_port"`
	LogLevel    string `mapstructure:"log_level"`
}

type Config struct {
	Budgets        Budgets        `mapstructure:"budgets"`
	GA             GAParams       `mapstructure:"ga"`
	ScoringWeights ScoringWeights `mapstructure:"scoring_weights"`
	CostRates      CostRates      `mapstructure:"cost_rates"`
	CircuitBreaker CircuitBreaker `mapstructure:"circuit_breaker"`
	StorePool      StorePool      `mapstructure:"store_pool"`
	Observability  Observability  `mapstructure:"observability"`
}

func defaultConfig() *Config {
	return &Config{
		Budgets: Budgets{
			GapAnalyzer:         3 * time.Second,
			PatternGenerator:    8 * time.Second,
			ConstraintValidator: 2 * time.Second,
			CostCalculator:      2 * time.Second,
			ScoringEngine:       2 * time.Second,
			Orchestrator:        60 * time.Second,
			OrchestratorAlert:   30 * time.Second,
		},
		GA: GAParams{
			PopulationSize:    50,
			MaxGenerations:    20,
			MutationRate:      0.10,
			CrossoverRate:     0.80,
			EliteSize:         5,
			TournamentSize:    3,
			ConvergenceWindow: 5,
			ConvergenceDelta:  1.0,
			ArchetypeSeedCounts: map[string]int{
				"traditional":   10,
				"flexible":      10,
				"staggered":     8,
				"split_shift":   6,
				"compressed":    6,
				"part_time":     5,
				"peak_focus":    3,
				"weekend_focus": 2,
			},
		},
		ScoringWeights: ScoringWeights{
			Coverage:   0.40,
			Cost:       0.30,
			Compliance: 0.20,
			Simplicity: 0.10,
		},
		CostRates: CostRates{
			BaseHourly:         25.0,
			OvertimeMultiplier: 1.5,
			WeekendPremium:     5.0,
			NightDifferential:  3.0,
			SkillPremium: map[string]float64{
				"basic":        0.0,
				"intermediate": 2.5,
				"expert":       5.0,
			},
			BenefitsRate:        0.35,
			TravelRatePerKm:     0.45,
			AccommodationNight:  90.0,
			CoordinationFee:     25.0,
			GapCostPerAgentHour: 35.0,
		},
		CircuitBreaker: CircuitBreaker{
			FailureThreshold: 0.5,
			Window:           1 * time.Minute,
			CooldownPeriod:   30 * time.Second,
			MinSamples:       10,
		},
		StorePool: StorePool{
			Size:               10,
			WaitTimeout:        2 * time.Second,
			RedisTTL:           5 * time.Minute,
			RateLimitPerSecond: 50,
			RateLimitBurst:     100,
		},
		Observability: Observability{
			MetricsPort: 9090,
			LogLevel:    "info",
		},
	}
}

// Load reads configuration from a YAML file (if present) merged with env
// overrides under the WFO_ prefix, falling back to defaultConfig values.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("WFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	def := defaultConfig()
	v.SetDefault("budgets.gap_analyzer", def.Budgets.GapAnalyzer)
	v.SetDefault("budgets.pattern_generator", def.Budgets.PatternGenerator)
	v.SetDefault("budgets.constraint_validator", def.Budgets.ConstraintValidator)
	v.SetDefault("budgets.cost_calculator", def.Budgets.CostCalculator)
	v.SetDefault("budgets.scoring_engine", def.Budgets.ScoringEngine)
	v.SetDefault("budgets.orchestrator", def.Budgets.Orchestrator)
	v.SetDefault("budgets.orchestrator_alert", def.Budgets.OrchestratorAlert)

	v.SetDefault("ga.population_size", def.GA.PopulationSize)
	v.SetDefault("ga.max_generations", def.GA.MaxGenerations)
	v.SetDefault("ga.mutation_rate", def.GA.MutationRate)
	v.SetDefault("ga.crossover_rate", def.GA.CrossoverRate)
	v.SetDefault("ga.elite_size", def.GA.EliteSize)
	v.SetDefault("ga.tournament_size", def.GA.TournamentSize)
	v.SetDefault("ga.convergence_window", def.GA.ConvergenceWindow)
	v.SetDefault("ga.convergence_delta", def.GA.ConvergenceDelta)
	v.SetDefault("ga.archetype_seed_counts", def.GA.ArchetypeSeedCounts)

	v.SetDefault("scoring_weights.coverage", def.ScoringWeights.Coverage)
	v.SetDefault("scoring_weights.cost", def.ScoringWeights.Cost)
	v.SetDefault("scoring_weights.compliance", def.ScoringWeights.Compliance)
	v.SetDefault("scoring_weights.simplicity", def.ScoringWeights.Simplicity)

	v.SetDefault("cost_rates.base_hourly", def.CostRates.BaseHourly)
	v.SetDefault("cost_rates.overtime_multiplier", def.CostRates.OvertimeMultiplier)
	v.SetDefault("cost_rates.weekend_premium", def.CostRates.WeekendPremium)
	v.SetDefault("cost_rates.night_differential", def.CostRates.NightDifferential)
	v.SetDefault("cost_rates.skill_premium", def.CostRates.SkillPremium)
	v.SetDefault("cost_rates.benefits_rate", def.CostRates.BenefitsRate)
	v.SetDefault("cost_rates.travel_rate_per_km", def.CostRates.TravelRatePerKm)
	v.SetDefault("cost_rates.accommodation_per_night", def.CostRates.AccommodationNight)
	v.SetDefault("cost_rates.coordination_fee", def.CostRates.CoordinationFee)
	v.SetDefault("cost_rates.gap_cost_per_agent_hour", def.CostRates.GapCostPerAgentHour)

	v.SetDefault("circuit_breaker.failure_threshold", def.CircuitBreaker.FailureThreshold)
	v.SetDefault("circuit_breaker.window", def.CircuitBreaker.Window)
	v.SetDefault("circuit_breaker.cooldown_period", def.CircuitBreaker.CooldownPeriod)
	v.SetDefault("circuit_breaker.min_samples", def.CircuitBreaker.MinSamples)

	v.SetDefault("store_pool.size", def.StorePool.Size)
	v.SetDefault("store_pool.wait_timeout", def.StorePool.WaitTimeout)
	v.SetDefault("store_pool.driver", def.StorePool.Driver)
	v.SetDefault("store_pool.dsn", def.StorePool.DSN)
	v.SetDefault("store_pool.redis_addr", def.StorePool.RedisAddr)
	v.SetDefault("store_pool.redis_ttl", def.StorePool.RedisTTL)
	v.SetDefault("store_pool.rate_limit_per_second", def.StorePool.RateLimitPerSecond)
	v.SetDefault("store_pool.rate_limit_burst", def.StorePool.RateLimitBurst)

	v.SetDefault("observability.metrics_port", def.Observability.MetricsPort)
	v.SetDefault("observability.log_level", def.Observability.LogLevel)

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks config constraints and returns an error on invalid settings.
func Validate(cfg *Config) error {
	if cfg.GA.PopulationSize < 1 {
		return fmt.Errorf("ga.population_size must be >= 1")
	}
	if cfg.GA.EliteSize > cfg.GA.PopulationSize {
		return fmt.Errorf("ga.elite_size must be <= ga.population_size")
	}
	if cfg.GA.MutationRate < 0 || cfg.GA.MutationRate > 1 {
		return fmt.Errorf("ga.mutation_rate must be in [0,1]")
	}
	if cfg.GA.CrossoverRate < 0 || cfg.GA.CrossoverRate > 1 {
		return fmt.Errorf("ga.crossover_rate must be in [0,1]")
	}
	sum := cfg.ScoringWeights.Coverage + cfg.ScoringWeights.Cost + cfg.ScoringWeights.Compliance + cfg.ScoringWeights.Simplicity
	if sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("scoring_weights must sum to 1.0, got %f", sum)
	}
	if cfg.Budgets.Orchestrator <= 0 {
		return fmt.Errorf("budgets.orchestrator must be > 0")
	}
	if cfg.StorePool.Size < 1 {
		return fmt.Errorf("store_pool.size must be >= 1")
	}
	if cfg.Observability.MetricsPort <= 0 || cfg.Observability.MetricsPort > 65535 {
		return fmt.Errorf("observability.metrics_port must be 1..65535")
	}
	return nil
}
