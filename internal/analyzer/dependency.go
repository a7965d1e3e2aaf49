package analyzer

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/manu042k/CodeGaurd/domain"
)

const CategoryDependencies = "dependencies"

// Manifest file names recognized per ecosystem
var manifestNames = map[string]string{
	"requirements.txt": "python",
	"pyproject.toml":   "python",
	"pipfile":          "python",
	"package.json":     "javascript",
	"go.mod":           "go",
	"cargo.toml":       "rust",
	"pom.xml":          "java",
	"gemfile":          "ruby",
	"composer.json":    "php",
}

var (
	pythonRequirementPattern = regexp.MustCompile(`^([a-zA-Z0-9_\-.]+)([><=~!]+)(.+)$`)
	insecureRegistryPattern  = regexp.MustCompile(`(?i)(--index-url|registry|repository)\s*[=:]?\s*["']?http://`)
	gitDependencyPattern     = regexp.MustCompile(`(?i)(git\+http://|git://)`)
)

// DependencyRules inspects dependency manifests for version pinning
// and registry hygiene problems. Files that are not manifests produce
// no findings.
func DependencyRules(file domain.FileEntry) []domain.Finding {
	base := strings.ToLower(filepath.Base(file.Path))
	ecosystem, ok := manifestNames[base]
	if !ok {
		return nil
	}

	var findings []domain.Finding

	lines := strings.Split(file.Content, "\n")
	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		if insecureRegistryPattern.MatchString(line) {
			findings = append(findings, domain.Finding{
				Title:       "Insecure package registry",
				Description: "Packages are fetched over plain HTTP, exposing the build to tampering",
				Severity:    domain.SeverityHigh,
				Category:    CategoryDependencies,
				FilePath:    file.Path,
				Line:        lineNum,
				CodeSnippet: trimmed,
				Suggestion:  "Use an HTTPS registry URL",
				RuleID:      "DEP-HTTP-REGISTRY",
				Confidence:  0.9,
			})
		}
		if gitDependencyPattern.MatchString(line) {
			findings = append(findings, domain.Finding{
				Title:       "Dependency fetched over insecure git transport",
				Description: "git:// and git+http:// transports are unauthenticated",
				Severity:    domain.SeverityMedium,
				Category:    CategoryDependencies,
				FilePath:    file.Path,
				Line:        lineNum,
				CodeSnippet: trimmed,
				Suggestion:  "Use git+https:// for source dependencies",
				RuleID:      "DEP-GIT-TRANSPORT",
				Confidence:  0.85,
			})
		}
	}

	switch ecosystem {
	case "python":
		if base == "requirements.txt" {
			findings = append(findings, checkPythonRequirements(file)...)
		}
	case "javascript":
		if base == "package.json" {
			findings = append(findings, checkPackageJSON(file)...)
		}
	}

	return findings
}

func checkPythonRequirements(file domain.FileEntry) []domain.Finding {
	var findings []domain.Finding

	for i, line := range strings.Split(file.Content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") {
			continue
		}
		if pythonRequirementPattern.MatchString(trimmed) {
			continue
		}
		findings = append(findings, domain.Finding{
			Title:       fmt.Sprintf("Unpinned dependency '%s'", trimmed),
			Description: "The package has no version constraint, so builds are not reproducible",
			Severity:    domain.SeverityMedium,
			Category:    CategoryDependencies,
			FilePath:    file.Path,
			Line:        i + 1,
			CodeSnippet: trimmed,
			Suggestion:  "Pin the package to a version range or exact version",
			RuleID:      "DEP-UNPINNED",
			Confidence:  0.9,
		})
	}

	return findings
}

func checkPackageJSON(file domain.FileEntry) []domain.Finding {
	var manifest struct {
		Dependencies    map[string]string `json:"dependencies"`
		DevDependencies map[string]string `json:"devDependencies"`
	}
	if err := json.Unmarshal([]byte(file.Content), &manifest); err != nil {
		return []domain.Finding{{
			Title:       "Unparseable package.json",
			Description: fmt.Sprintf("The manifest could not be parsed: %v", err),
			Severity:    domain.SeverityLow,
			Category:    CategoryDependencies,
			FilePath:    file.Path,
			Suggestion:  "Fix the JSON syntax so dependency tooling can read the manifest",
			RuleID:      "DEP-MALFORMED",
			Confidence:  0.95,
		}}
	}

	var findings []domain.Finding
	check := func(deps map[string]string) {
		// Stable iteration keeps finding order reproducible
		pkgs := make([]string, 0, len(deps))
		for pkg := range deps {
			pkgs = append(pkgs, pkg)
		}
		sort.Strings(pkgs)
		for _, pkg := range pkgs {
			version := deps[pkg]
			if version == "*" || version == "latest" || version == "" {
				findings = append(findings, domain.Finding{
					Title:       fmt.Sprintf("Wildcard version for '%s'", pkg),
					Description: fmt.Sprintf("Package '%s' uses version %q, which resolves differently over time", pkg, version),
					Severity:    domain.SeverityMedium,
					Category:    CategoryDependencies,
					FilePath:    file.Path,
					Suggestion:  "Pin the package to a semver range",
					RuleID:      "DEP-WILDCARD",
					Confidence:  0.9,
				})
			}
		}
	}
	check(manifest.Dependencies)
	check(manifest.DevDependencies)

	return findings
}
