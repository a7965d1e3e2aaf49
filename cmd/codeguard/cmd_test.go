package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAnalyzeFlagOverrides(t *testing.T) {
	cmd := analyzeCmd()
	if err := cmd.Flags().Parse([]string{
		"--agents", "security,performance",
		"--concurrency", "3",
		"--timeout", "12",
		"--use-llm",
		"--llm-sample-rate", "0.4",
		"--seed", "5",
		"--details",
	}); err != nil {
		t.Fatal(err)
	}

	flags := analyzeFlagOverrides(cmd)

	if len(flags.EnabledAgents) != 2 || flags.EnabledAgents[0] != "security" {
		t.Errorf("unexpected agents: %v", flags.EnabledAgents)
	}
	if flags.MaxConcurrentFiles != 3 || flags.TimeoutPerFile != 12 {
		t.Errorf("unexpected limits: %+v", flags)
	}
	if !flags.UseLLM || !flags.UseLLMSet {
		t.Error("use-llm flag not recorded as explicitly set")
	}
	if flags.LLMSampleRate != 0.4 || !flags.LLMSampleRateSet {
		t.Errorf("sample rate not recorded: %+v", flags)
	}
	if flags.RandomSeed != 5 {
		t.Errorf("unexpected seed: %d", flags.RandomSeed)
	}
	if !flags.ShowDetails || !flags.ShowDetailsSet {
		t.Error("details flag not recorded as explicitly set")
	}
}

func TestAnalyzeFlagOverrides_JSONShorthand(t *testing.T) {
	cmd := analyzeCmd()
	if err := cmd.Flags().Parse([]string{"--json"}); err != nil {
		t.Fatal(err)
	}

	flags := analyzeFlagOverrides(cmd)
	if flags.Format != "json" {
		t.Errorf("--json should force json format, got %q", flags.Format)
	}
	if flags.UseLLMSet {
		t.Error("untouched flags must not count as set")
	}
}

func TestInitCreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codeguard.yaml")

	cmd := initCmd()
	if err := cmd.Flags().Set("config", path); err != nil {
		t.Fatal(err)
	}
	if err := runInit(cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	for _, want := range []string{"enabled_agents", "skip_patterns", "escalation", "scoring"} {
		if !strings.Contains(string(content), want) {
			t.Errorf("generated config missing %q", want)
		}
	}
}

func TestInitRefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "codeguard.yaml")
	if err := os.WriteFile(path, []byte("existing"), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := initCmd()
	if err := cmd.Flags().Set("config", path); err != nil {
		t.Fatal(err)
	}
	err := runInit(cmd, nil)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("expected overwrite refusal, got %v", err)
	}
}

func TestInitMinimalTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.yaml")

	cmd := initCmd()
	if err := cmd.Flags().Set("config", path); err != nil {
		t.Fatal(err)
	}
	if err := cmd.Flags().Set("minimal", "true"); err != nil {
		t.Fatal(err)
	}
	if err := runInit(cmd, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(content), "escalation") {
		t.Error("minimal template should omit the escalation section")
	}
}
