// Copyright 2025 James Ross
package config

import (
	"os"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("WFO_GA_POPULATION_SIZE")
	cfg, err := Load("nonexistent.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.GA.PopulationSize != 50 {
		t.Fatalf("expected default population size 50, got %d", cfg.GA.PopulationSize)
	}
	if cfg.Budgets.Orchestrator.Seconds() != 60 {
		t.Fatalf("expected default orchestrator budget 60s, got %v", cfg.Budgets.Orchestrator)
	}
}

func TestValidateFails(t *testing.T) {
	cfg := defaultConfig()
	cfg.GA.PopulationSize = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for ga.population_size < 1")
	}

	cfg = defaultConfig()
	cfg.GA.EliteSize = cfg.GA.PopulationSize + 1
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for ga.elite_size > ga.population_size")
	}

	cfg = defaultConfig()
	cfg.ScoringWeights.Coverage = 0.9
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for scoring weights not summing to 1.0")
	}

	cfg = defaultConfig()
	cfg.StorePool.Size = 0
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for store_pool.size < 1")
	}
}
