// Package analyzer implements the two-tier analysis contract and the
// concrete rule sets shipped with codeguard.
package analyzer

import (
	"context"
	"fmt"

	"github.com/manu042k/CodeGaurd/domain"
)

// RuleFunc is a deterministic Tier-1 check: cheap pattern and heuristic
// matching over file content, never blocking on external services.
type RuleFunc func(file domain.FileEntry) []domain.Finding

// Options configures the two-tier driver shared by all analyzers
type Options struct {
	// Policy decides whether the deep tier runs; nil disables escalation
	Policy *EscalationPolicy

	// NewInspector builds the deep tier for one analyzer category;
	// nil disables the deep tier
	NewInspector func(category string) domain.DeepInspector

	// MinDeepConfidence is the confidence floor for deep-tier findings
	MinDeepConfidence float64
}

// TwoTierAnalyzer runs the two-tier contract for one rule set: Tier-1
// always, the deep tier only when the escalation policy approves, then
// merges the two finding streams.
type TwoTierAnalyzer struct {
	id          string
	description string
	category    string
	languages   []string
	rules       RuleFunc
	policy      *EscalationPolicy
	deep        domain.DeepInspector
	minDeepConf float64
}

// New creates a two-tier analyzer for the given rule set
func New(id, description, category string, languages []string, rules RuleFunc, opts Options) *TwoTierAnalyzer {
	a := &TwoTierAnalyzer{
		id:          id,
		description: description,
		category:    category,
		languages:   languages,
		rules:       rules,
		policy:      opts.Policy,
		minDeepConf: opts.MinDeepConfidence,
	}
	if opts.NewInspector != nil {
		a.deep = opts.NewInspector(category)
	}
	return a
}

// ID returns the stable analyzer identifier
func (a *TwoTierAnalyzer) ID() string { return a.id }

// Description returns a short human-readable description
func (a *TwoTierAnalyzer) Description() string { return a.description }

// Languages returns the declared language capability set
func (a *TwoTierAnalyzer) Languages() []string { return a.languages }

// Analyze runs both tiers for one file. The sample argument is a
// pre-drawn value in [0,1) consumed by the escalation policy.
func (a *TwoTierAnalyzer) Analyze(ctx context.Context, file domain.FileEntry, sample float64) (*domain.AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tier1 := a.rules(file)

	metrics := map[string]float64{
		"lines":               float64(file.LineCount()),
		"complexity_estimate": float64(EstimateComplexity(file.Content, file.Language)),
		"tier1_findings":      float64(len(tier1)),
	}

	findings := tier1
	if a.deep != nil && a.policy != nil && a.policy.ShouldEscalate(file, tier1, sample) {
		deepResult, err := a.deep.Inspect(ctx, file, tier1)
		if err != nil {
			// A failed deep pass must not leak partial output
			return nil, domain.NewExecutionError(
				fmt.Sprintf("%s deep inspection of %s", a.id, file.Path), err)
		}

		findings = MergeTiers(tier1, deepResult, a.minDeepConf)
		metrics["deep_tier"] = 1
		metrics["deep_findings"] = float64(len(deepResult.Findings))
		metrics["false_positives"] = float64(len(deepResult.FalsePositives))
		for k, v := range deepResult.Metrics {
			metrics[k] = v
		}
	}

	return &domain.AnalysisResult{Findings: findings, Metrics: metrics}, nil
}

// MergeTiers combines Tier-1 findings with a deep result: Tier-1
// findings flagged as false positives are dropped, and deep findings
// below the confidence floor are discarded before the merge.
func MergeTiers(tier1 []domain.Finding, deep *domain.DeepResult, minConfidence float64) []domain.Finding {
	falsePositive := make(map[int]bool, len(deep.FalsePositives))
	for _, idx := range deep.FalsePositives {
		if idx >= 0 && idx < len(tier1) {
			falsePositive[idx] = true
		}
	}

	merged := make([]domain.Finding, 0, len(tier1)+len(deep.Findings))
	for i, f := range tier1 {
		if !falsePositive[i] {
			merged = append(merged, f)
		}
	}
	for _, f := range deep.Findings {
		if f.Confidence >= minConfidence {
			merged = append(merged, f)
		}
	}
	return merged
}
