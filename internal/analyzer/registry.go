package analyzer

import (
	"fmt"
	"sort"
	"strings"

	"github.com/manu042k/CodeGaurd/domain"
)

// Stable analyzer identifiers
const (
	IDSecurity      = "security"
	IDDependency    = "dependency"
	IDCodeQuality   = "code_quality"
	IDPerformance   = "performance"
	IDBestPractices = "best_practices"
)

type analyzerSpec struct {
	description string
	category    string
	languages   []string
	rules       RuleFunc
}

var registry = map[string]analyzerSpec{
	IDSecurity: {
		description: "Detects hardcoded secrets and common vulnerability patterns",
		category:    CategorySecurity,
		languages:   []string{domain.LanguageAny},
		rules:       SecurityRules,
	},
	IDDependency: {
		description: "Reviews dependency manifests for pinning and registry hygiene",
		category:    CategoryDependencies,
		languages:   []string{domain.LanguageAny},
		rules:       DependencyRules,
	},
	IDCodeQuality: {
		description: "Checks function length, nesting, parameter counts and dead code",
		category:    CategoryCodeQuality,
		languages:   []string{"python", "javascript", "typescript", "go", "java", "rust"},
		rules:       QualityRules,
	},
	IDPerformance: {
		description: "Flags nested loops, per-iteration queries and unbounded reads",
		category:    CategoryPerformance,
		languages:   []string{"python", "javascript", "typescript", "go", "java", "rust"},
		rules:       PerformanceRules,
	},
	IDBestPractices: {
		description: "Flags language-convention violations and error-handling smells",
		category:    CategoryBestPractices,
		languages:   []string{"python", "javascript", "typescript"},
		rules:       BestPracticesRules,
	},
}

// AvailableIDs returns every registered analyzer identifier, sorted
func AvailableIDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Describe returns the description for a registered analyzer
func Describe(id string) (string, bool) {
	spec, ok := registry[id]
	return spec.description, ok
}

// Select builds the analyzers for the requested identifiers. An
// unknown identifier is a configuration error naming the offender.
func Select(ids []string, opts Options) ([]domain.Analyzer, error) {
	analyzers := make([]domain.Analyzer, 0, len(ids))
	for _, id := range ids {
		spec, ok := registry[id]
		if !ok {
			return nil, domain.NewConfigError(fmt.Sprintf(
				"unknown analyzer %q (available: %s)", id, strings.Join(AvailableIDs(), ", ")), nil)
		}
		analyzers = append(analyzers, New(id, spec.description, spec.category, spec.languages, spec.rules, opts))
	}
	return analyzers, nil
}
