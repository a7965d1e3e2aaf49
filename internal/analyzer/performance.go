package analyzer

import (
	"regexp"
	"strings"

	"github.com/manu042k/CodeGaurd/domain"
)

const CategoryPerformance = "performance"

var loopStartPatterns = map[string]*regexp.Regexp{
	"python":     regexp.MustCompile(`^\s*for\s+\w+\s+in\s+|^\s*while\s+`),
	"javascript": regexp.MustCompile(`^\s*(for|while)\s*\(`),
	"typescript": regexp.MustCompile(`^\s*(for|while)\s*\(`),
	"java":       regexp.MustCompile(`^\s*(for|while)\s*\(`),
	"go":         regexp.MustCompile(`^\s*for\s+`),
	"rust":       regexp.MustCompile(`^\s*(for|while)\s+`),
}

var stringConcatInLoopPatterns = map[string]*regexp.Regexp{
	"python":     regexp.MustCompile(`\w+\s*\+=\s*["']|\w+\s*\+=\s*str\(`),
	"javascript": regexp.MustCompile(`\w+\s*\+=\s*["'` + "`" + `]`),
	"typescript": regexp.MustCompile(`\w+\s*\+=\s*["'` + "`" + `]`),
	"java":       regexp.MustCompile(`\w+\s*\+=\s*"`),
}

var (
	queryCallPattern  = regexp.MustCompile(`\.(query|execute|find|fetch)\s*\(`)
	selectStarPattern = regexp.MustCompile(`(?i)SELECT\s+\*\s+FROM`)
	readAllPattern    = regexp.MustCompile(`\.read\(\)\s*$`)
)

// PerformanceRules flags common hotspots: nested loops, string
// building inside loops, database access inside loops, and unbounded
// reads. The checks are indentation heuristics, not data-flow
// analysis, so confidence stays moderate.
func PerformanceRules(file domain.FileEntry) []domain.Finding {
	loopPattern, ok := loopStartPatterns[strings.ToLower(file.Language)]
	if !ok {
		loopPattern = loopStartPatterns["javascript"]
	}
	concatPattern := stringConcatInLoopPatterns[strings.ToLower(file.Language)]

	var findings []domain.Finding

	type loopFrame struct {
		line   int
		indent int
	}
	var loopStack []loopFrame

	lines := strings.Split(file.Content, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		lineNum := i + 1
		indent := indentWidth(line)

		// Pop loops we have dedented out of
		for len(loopStack) > 0 && indent <= loopStack[len(loopStack)-1].indent {
			loopStack = loopStack[:len(loopStack)-1]
		}

		inLoop := len(loopStack) > 0

		if loopPattern.MatchString(line) {
			if len(loopStack) >= 2 {
				findings = append(findings, domain.Finding{
					Title:       "Triple-nested loop",
					Description: "Three or more nested loops suggest cubic or worse time complexity",
					Severity:    domain.SeverityHigh,
					Category:    CategoryPerformance,
					FilePath:    file.Path,
					Line:        lineNum,
					CodeSnippet: trimmed,
					Suggestion:  "Restructure the algorithm or precompute lookups to flatten the nesting",
					RuleID:      "PERF-NESTED-LOOP",
					Confidence:  0.75,
				})
			} else if len(loopStack) == 1 {
				findings = append(findings, domain.Finding{
					Title:       "Nested loop",
					Description: "Nested iteration over collections can be quadratic",
					Severity:    domain.SeverityMedium,
					Category:    CategoryPerformance,
					FilePath:    file.Path,
					Line:        lineNum,
					CodeSnippet: trimmed,
					Suggestion:  "Consider a map lookup instead of the inner scan",
					RuleID:      "PERF-NESTED-LOOP",
					Confidence:  0.6,
				})
			}
			loopStack = append(loopStack, loopFrame{line: lineNum, indent: indent})
			continue
		}

		if inLoop && concatPattern != nil && concatPattern.MatchString(line) {
			findings = append(findings, domain.Finding{
				Title:       "String concatenation inside a loop",
				Description: "Repeated string concatenation copies the buffer on every iteration",
				Severity:    domain.SeverityMedium,
				Category:    CategoryPerformance,
				FilePath:    file.Path,
				Line:        lineNum,
				CodeSnippet: trimmed,
				Suggestion:  stringBuilderHint(file.Language),
				RuleID:      "PERF-STRING-CONCAT",
				Confidence:  0.7,
			})
		}

		if inLoop && queryCallPattern.MatchString(line) {
			findings = append(findings, domain.Finding{
				Title:       "Database query inside a loop",
				Description: "Issuing one query per iteration multiplies round trips",
				Severity:    domain.SeverityHigh,
				Category:    CategoryPerformance,
				FilePath:    file.Path,
				Line:        lineNum,
				CodeSnippet: trimmed,
				Suggestion:  "Batch the queries or fetch the data set before the loop",
				RuleID:      "PERF-QUERY-IN-LOOP",
				Confidence:  0.7,
			})
		}

		if selectStarPattern.MatchString(line) {
			findings = append(findings, domain.Finding{
				Title:       "SELECT * query",
				Description: "Selecting every column fetches more data than needed",
				Severity:    domain.SeverityLow,
				Category:    CategoryPerformance,
				FilePath:    file.Path,
				Line:        lineNum,
				CodeSnippet: trimmed,
				Suggestion:  "List the columns the caller actually uses",
				RuleID:      "PERF-SELECT-STAR",
				Confidence:  0.8,
			})
		}

		if readAllPattern.MatchString(line) {
			findings = append(findings, domain.Finding{
				Title:       "Unbounded file read",
				Description: "Reading a whole file into memory fails on large inputs",
				Severity:    domain.SeverityLow,
				Category:    CategoryPerformance,
				FilePath:    file.Path,
				Line:        lineNum,
				CodeSnippet: trimmed,
				Suggestion:  "Stream the file in chunks or by line",
				RuleID:      "PERF-READ-ALL",
				Confidence:  0.6,
			})
		}
	}

	return findings
}

func indentWidth(line string) int {
	width := 0
	for _, r := range line {
		switch r {
		case ' ':
			width++
		case '\t':
			width += 4
		default:
			return width
		}
	}
	return width
}

func stringBuilderHint(language string) string {
	switch strings.ToLower(language) {
	case "python":
		return "Collect parts in a list and join them once"
	case "java":
		return "Use StringBuilder"
	case "go":
		return "Use strings.Builder"
	default:
		return "Accumulate parts in an array and join them once"
	}
}
