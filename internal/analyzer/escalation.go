package analyzer

import (
	"path/filepath"
	"strings"

	"github.com/manu042k/CodeGaurd/domain"
	"github.com/manu042k/CodeGaurd/internal/config"
)

// EscalationPolicy decides whether the deep tier runs for a given file.
// It is a pure function of its inputs: no I/O, no clock, no global
// randomness. Probabilistic escalation consumes a sample value drawn
// by the caller, so decisions are reproducible for a given seed.
type EscalationPolicy struct {
	// MinFileLines is the size below which files never escalate
	MinFileLines int

	// ComplexityThreshold is the estimate above which files always escalate
	ComplexityThreshold int

	// ConfigFileExtensions classify files as configuration
	ConfigFileExtensions []string

	// SampleRate is the probabilistic escalation rate in [0,1]
	SampleRate float64
}

// NewEscalationPolicy builds a policy from configuration
func NewEscalationPolicy(cfg config.EscalationConfig, sampleRate float64) *EscalationPolicy {
	return &EscalationPolicy{
		MinFileLines:         cfg.MinFileLines,
		ComplexityThreshold:  cfg.ComplexityThreshold,
		ConfigFileExtensions: cfg.ConfigFileExtensions,
		SampleRate:           sampleRate,
	}
}

// ShouldEscalate evaluates the escalation rules in order; the first
// matching rule wins:
//
//  1. any CRITICAL Tier-1 finding escalates (verification pass)
//  2. small files and configuration files never escalate
//  3. a complexity estimate above the threshold escalates
//  4. otherwise escalate when sample < SampleRate
func (p *EscalationPolicy) ShouldEscalate(file domain.FileEntry, tier1 []domain.Finding, sample float64) bool {
	for _, f := range tier1 {
		if f.Severity == domain.SeverityCritical {
			return true
		}
	}

	if file.LineCount() < p.MinFileLines {
		return false
	}
	if p.isConfigFile(file.Path) {
		return false
	}

	if EstimateComplexity(file.Content, file.Language) > p.ComplexityThreshold {
		return true
	}

	return sample < p.SampleRate
}

func (p *EscalationPolicy) isConfigFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, configExt := range p.ConfigFileExtensions {
		if ext == configExt {
			return true
		}
	}
	return false
}
