package analyzer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/manu042k/CodeGaurd/domain"
)

const CategoryCodeQuality = "code_quality"

const (
	maxFunctionLines  = 50
	maxLineLength     = 120
	maxParameterCount = 5
	maxNestingDepth   = 4
)

var functionStartPatterns = map[string]*regexp.Regexp{
	"python":     regexp.MustCompile(`^\s*def\s+(\w+)\s*\(`),
	"javascript": regexp.MustCompile(`^\s*(?:function\s+(\w+)|const\s+(\w+)\s*=\s*(?:async\s*)?\([^)]*\)\s*=>)`),
	"typescript": regexp.MustCompile(`^\s*(?:function\s+(\w+)|const\s+(\w+)\s*=\s*(?:async\s*)?\([^)]*\)\s*=>)`),
	"go":         regexp.MustCompile(`^\s*func\s+(?:\(\w+\s+\*?\w+\)\s+)?(\w+)\s*\(`),
	"java":       regexp.MustCompile(`^\s*(?:public|private|protected)\s*(?:static\s+)?(?:\w+\s+)+(\w+)\s*\(`),
	"rust":       regexp.MustCompile(`^\s*(?:pub\s+)?fn\s+(\w+)\s*\(`),
}

var parameterListPattern = regexp.MustCompile(`(?:def|function|func|fn)\s+\w+\s*\(([^)]+)\)`)

var deadCodePattern = regexp.MustCompile(`if\s+\(?\s*(false|False|0|None|null)\s*\)?\s*[:{]`)

// QualityRules checks structural code quality: function length, line
// length, parameter counts, nesting depth, and unreachable branches.
func QualityRules(file domain.FileEntry) []domain.Finding {
	var findings []domain.Finding

	lines := strings.Split(file.Content, "\n")
	findings = append(findings, checkFunctionLength(file, lines)...)
	findings = append(findings, checkLineLength(file, lines)...)
	findings = append(findings, checkParameterLists(file, lines)...)
	findings = append(findings, checkNestingDepth(file, lines)...)
	findings = append(findings, checkDeadBranches(file, lines)...)

	return findings
}

func checkFunctionLength(file domain.FileEntry, lines []string) []domain.Finding {
	pattern, ok := functionStartPatterns[strings.ToLower(file.Language)]
	if !ok {
		return nil
	}

	var findings []domain.Finding
	funcStart := -1
	funcName := ""

	flush := func(end int) {
		if funcStart < 0 {
			return
		}
		length := end - funcStart
		if length <= maxFunctionLines {
			return
		}
		severity := domain.SeverityMedium
		if length > maxFunctionLines*2 {
			severity = domain.SeverityHigh
		}
		findings = append(findings, domain.Finding{
			Title:       fmt.Sprintf("Function '%s' is too long (%d lines)", funcName, length),
			Description: fmt.Sprintf("Functions above %d lines are hard to read and test", maxFunctionLines),
			Severity:    severity,
			Category:    CategoryCodeQuality,
			FilePath:    file.Path,
			Line:        funcStart + 1,
			Suggestion:  "Split the function into smaller, focused helpers",
			RuleID:      "QUAL-FUNC-LENGTH",
			Confidence:  0.8,
		})
	}

	for i, line := range lines {
		if m := pattern.FindStringSubmatch(line); m != nil {
			flush(i)
			funcStart = i
			funcName = firstNonEmptyGroup(m)
		}
	}
	flush(len(lines))

	return findings
}

func firstNonEmptyGroup(m []string) string {
	for _, g := range m[1:] {
		if g != "" {
			return g
		}
	}
	return "anonymous"
}

func checkLineLength(file domain.FileEntry, lines []string) []domain.Finding {
	var findings []domain.Finding
	for i, line := range lines {
		if len(line) <= maxLineLength {
			continue
		}
		findings = append(findings, domain.Finding{
			Title:       fmt.Sprintf("Line exceeds %d characters", maxLineLength),
			Description: fmt.Sprintf("Line is %d characters long", len(line)),
			Severity:    domain.SeverityLow,
			Category:    CategoryCodeQuality,
			FilePath:    file.Path,
			Line:        i + 1,
			Suggestion:  "Wrap the line or extract intermediate variables",
			RuleID:      "QUAL-LINE-LENGTH",
			Confidence:  1.0,
		})
	}
	return findings
}

func checkParameterLists(file domain.FileEntry, lines []string) []domain.Finding {
	var findings []domain.Finding
	for i, line := range lines {
		m := parameterListPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		params := strings.Split(m[1], ",")
		if len(params) <= maxParameterCount {
			continue
		}
		findings = append(findings, domain.Finding{
			Title:       fmt.Sprintf("Function takes %d parameters", len(params)),
			Description: fmt.Sprintf("Parameter lists above %d arguments are hard to call correctly", maxParameterCount),
			Severity:    domain.SeverityMedium,
			Category:    CategoryCodeQuality,
			FilePath:    file.Path,
			Line:        i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Group related parameters into a struct or options object",
			RuleID:      "QUAL-PARAM-COUNT",
			Confidence:  0.85,
		})
	}
	return findings
}

func checkNestingDepth(file domain.FileEntry, lines []string) []domain.Finding {
	indentUnit := 4
	if strings.Contains(file.Content, "\n\t") {
		indentUnit = 1
	}

	var findings []domain.Finding
	reported := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		indent := 0
		for _, r := range line {
			if r == ' ' || r == '\t' {
				indent++
			} else {
				break
			}
		}
		depth := indent / indentUnit
		if depth <= maxNestingDepth {
			reported = false
			continue
		}
		if reported {
			continue
		}
		reported = true
		findings = append(findings, domain.Finding{
			Title:       fmt.Sprintf("Deeply nested code (depth %d)", depth),
			Description: fmt.Sprintf("Nesting beyond %d levels obscures control flow", maxNestingDepth),
			Severity:    domain.SeverityMedium,
			Category:    CategoryCodeQuality,
			FilePath:    file.Path,
			Line:        i + 1,
			Suggestion:  "Use early returns or extract the inner block into a function",
			RuleID:      "QUAL-NESTING",
			Confidence:  0.7,
		})
	}
	return findings
}

func checkDeadBranches(file domain.FileEntry, lines []string) []domain.Finding {
	var findings []domain.Finding
	for i, line := range lines {
		if !deadCodePattern.MatchString(line) {
			continue
		}
		findings = append(findings, domain.Finding{
			Title:       "Unreachable conditional branch",
			Description: "The condition is always false, so the branch body never runs",
			Severity:    domain.SeverityMedium,
			Category:    CategoryCodeQuality,
			FilePath:    file.Path,
			Line:        i + 1,
			CodeSnippet: strings.TrimSpace(line),
			Suggestion:  "Remove the dead branch or fix the condition",
			RuleID:      "QUAL-DEAD-BRANCH",
			Confidence:  0.9,
		})
	}
	return findings
}
