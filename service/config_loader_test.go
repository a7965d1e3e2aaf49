package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/manu042k/CodeGaurd/domain"
	"github.com/manu042k/CodeGaurd/internal/config"
)

func TestConfigLoader_BuildRequest(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analysis.EnabledAgents = []string{"security", "performance"}
	cfg.Analysis.MaxConcurrentFiles = 7
	cfg.Analysis.TimeoutPerFile = 45
	cfg.Analysis.UseLLM = true
	cfg.Analysis.LLMSampleRate = 0.35
	cfg.Analysis.SkipPatterns = []string{"vendor/*"}
	cfg.Analysis.RandomSeed = 99

	catalog := []domain.FileEntry{{Path: "a.py", Language: "python"}}
	req := NewConfigurationLoader().BuildRequest(cfg, catalog)

	if len(req.Catalog) != 1 {
		t.Errorf("catalog not carried: %v", req.Catalog)
	}
	if len(req.EnabledAnalyzers) != 2 || req.EnabledAnalyzers[0] != "security" {
		t.Errorf("unexpected analyzers: %v", req.EnabledAnalyzers)
	}
	if req.MaxConcurrentTasks != 7 {
		t.Errorf("unexpected concurrency: %d", req.MaxConcurrentTasks)
	}
	if req.PerTaskTimeout != 45*time.Second {
		t.Errorf("unexpected timeout: %s", req.PerTaskTimeout)
	}
	if !req.UseDeepTier || req.DeepTierSampleRate != 0.35 {
		t.Errorf("deep tier not carried: %v %f", req.UseDeepTier, req.DeepTierSampleRate)
	}
	if len(req.SkipPatterns) != 1 || req.SkipPatterns[0] != "vendor/*" {
		t.Errorf("unexpected skip patterns: %v", req.SkipPatterns)
	}
	if req.Seed != 99 {
		t.Errorf("unexpected seed: %d", req.Seed)
	}
}

func TestConfigLoader_BuildRequestCopiesSlices(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analysis.EnabledAgents = []string{"security"}

	req := NewConfigurationLoader().BuildRequest(cfg, nil)
	req.EnabledAnalyzers[0] = "mutated"

	if cfg.Analysis.EnabledAgents[0] != "security" {
		t.Error("request must not alias configuration slices")
	}
}

func TestConfigLoader_MergeFlags(t *testing.T) {
	loader := NewConfigurationLoader()
	cfg := config.DefaultConfig()
	cfg.Analysis.UseLLM = true

	merged := loader.MergeFlags(cfg, FlagOverrides{
		EnabledAgents:      []string{"security"},
		MaxConcurrentFiles: 3,
		TimeoutPerFile:     15,
		UseLLM:             false,
		UseLLMSet:          true,
		LLMSampleRate:      0.5,
		LLMSampleRateSet:   true,
		SkipPatterns:       []string{"*.gen.go"},
		RandomSeed:         7,
		Format:             "json",
		ShowDetails:        true,
		ShowDetailsSet:     true,
	})

	if len(merged.Analysis.EnabledAgents) != 1 || merged.Analysis.EnabledAgents[0] != "security" {
		t.Errorf("agents not overridden: %v", merged.Analysis.EnabledAgents)
	}
	if merged.Analysis.MaxConcurrentFiles != 3 || merged.Analysis.TimeoutPerFile != 15 {
		t.Errorf("limits not overridden: %+v", merged.Analysis)
	}
	if merged.Analysis.UseLLM {
		t.Error("explicit false flag must win over config true")
	}
	if merged.Analysis.LLMSampleRate != 0.5 || merged.Analysis.RandomSeed != 7 {
		t.Errorf("sampling not overridden: %+v", merged.Analysis)
	}
	if merged.Output.Format != "json" || !merged.Output.ShowDetails {
		t.Errorf("output not overridden: %+v", merged.Output)
	}
}

func TestConfigLoader_MergeFlagsZeroValuesKeepConfig(t *testing.T) {
	loader := NewConfigurationLoader()
	cfg := config.DefaultConfig()
	cfg.Analysis.MaxConcurrentFiles = 5
	cfg.Output.Format = "yaml"

	merged := loader.MergeFlags(cfg, FlagOverrides{})

	if merged.Analysis.MaxConcurrentFiles != 5 {
		t.Errorf("unset flag must not override config: %d", merged.Analysis.MaxConcurrentFiles)
	}
	if merged.Output.Format != "yaml" {
		t.Errorf("unset format flag must not override config: %s", merged.Output.Format)
	}
	if len(merged.Analysis.EnabledAgents) == 0 {
		t.Error("default agents should survive an empty override")
	}
}

func TestConfigLoader_LoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codeguard.yaml")
	content := `analysis:
  enabled_agents:
    - security
  max_concurrent_files: 2
  timeout_per_file: 10
output:
  format: json
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewConfigurationLoader().LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Analysis.EnabledAgents) != 1 || cfg.Analysis.EnabledAgents[0] != "security" {
		t.Errorf("unexpected agents: %v", cfg.Analysis.EnabledAgents)
	}
	if cfg.Analysis.MaxConcurrentFiles != 2 {
		t.Errorf("unexpected concurrency: %d", cfg.Analysis.MaxConcurrentFiles)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("unexpected format: %s", cfg.Output.Format)
	}
	// unspecified keys keep their defaults
	if cfg.Escalation.ComplexityThreshold != config.DefaultComplexityThreshold {
		t.Errorf("defaults lost on partial config: %d", cfg.Escalation.ComplexityThreshold)
	}
}

func TestConfigLoader_LoadConfigMissingFile(t *testing.T) {
	_, err := NewConfigurationLoader().LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !domain.IsConfigError(err) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestConfigLoader_LoadConfigInvalidValues(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codeguard.yaml")
	content := `analysis:
  max_concurrent_files: 0
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewConfigurationLoader().LoadConfig(path); err == nil {
		t.Fatal("expected validation error for zero concurrency")
	}
}

func TestConfigLoader_LoadDefaultConfigFallsBack(t *testing.T) {
	cfg := NewConfigurationLoader().LoadDefaultConfig(t.TempDir())
	if cfg == nil {
		t.Fatal("expected a config")
	}
	if cfg.Analysis.MaxConcurrentFiles != config.DefaultMaxConcurrentFiles {
		t.Errorf("expected defaults, got %+v", cfg.Analysis)
	}
}
