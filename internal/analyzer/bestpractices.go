package analyzer

import (
	"regexp"
	"strings"

	"github.com/manu042k/CodeGaurd/domain"
)

const CategoryBestPractices = "best_practices"

var (
	bareExceptPattern     = regexp.MustCompile(`^\s*except\s*:`)
	broadExceptPattern    = regexp.MustCompile(`^\s*except\s+Exception\s*:`)
	mutableDefaultPattern = regexp.MustCompile(`def\s+\w+\([^)]*=\s*(\[\]|\{\})`)
	wildcardImportPattern = regexp.MustCompile(`^\s*from\s+\S+\s+import\s+\*`)
	globalStmtPattern     = regexp.MustCompile(`^\s*global\s+\w+`)
	varDeclPattern        = regexp.MustCompile(`^\s*var\s+\w+`)
	looseEqualityPattern  = regexp.MustCompile(`[^=!<>]==[^=]|[^=!]!=[^=]`)
	openNoContextPattern  = regexp.MustCompile(`=\s*open\s*\(`)
	consoleLogPattern     = regexp.MustCompile(`^\s*console\.log\s*\(`)
)

// BestPracticesRules flags language-convention violations: swallowed
// exceptions, mutable default arguments, wildcard imports, and the
// JavaScript legacy constructs var and loose equality.
func BestPracticesRules(file domain.FileEntry) []domain.Finding {
	language := strings.ToLower(file.Language)

	var findings []domain.Finding
	add := func(lineNum int, snippet, title, description string, severity domain.Severity, suggestion, ruleID string, confidence float64) {
		findings = append(findings, domain.Finding{
			Title:       title,
			Description: description,
			Severity:    severity,
			Category:    CategoryBestPractices,
			FilePath:    file.Path,
			Line:        lineNum,
			CodeSnippet: snippet,
			Suggestion:  suggestion,
			RuleID:      ruleID,
			Confidence:  confidence,
		})
	}

	lines := strings.Split(file.Content, "\n")
	for i, line := range lines {
		lineNum := i + 1
		trimmed := strings.TrimSpace(line)

		switch language {
		case "python":
			if bareExceptPattern.MatchString(line) {
				add(lineNum, trimmed,
					"Bare except clause",
					"A bare except swallows every error, including KeyboardInterrupt",
					domain.SeverityHigh,
					"Catch the specific exception types the handler can deal with",
					"BP-BARE-EXCEPT", 0.95)
			} else if broadExceptPattern.MatchString(line) {
				add(lineNum, trimmed,
					"Overly broad exception handler",
					"Catching Exception hides unrelated failures",
					domain.SeverityMedium,
					"Narrow the handler to the expected exception types",
					"BP-BROAD-EXCEPT", 0.85)
			}
			if mutableDefaultPattern.MatchString(line) {
				add(lineNum, trimmed,
					"Mutable default argument",
					"Default list or dict values are shared across calls",
					domain.SeverityHigh,
					"Default to None and create the value inside the function",
					"BP-MUTABLE-DEFAULT", 0.95)
			}
			if wildcardImportPattern.MatchString(line) {
				add(lineNum, trimmed,
					"Wildcard import",
					"import * obscures where names come from and pollutes the namespace",
					domain.SeverityMedium,
					"Import the names the module actually uses",
					"BP-WILDCARD-IMPORT", 0.95)
			}
			if globalStmtPattern.MatchString(line) {
				add(lineNum, trimmed,
					"Global variable mutation",
					"Mutating globals couples functions through hidden state",
					domain.SeverityMedium,
					"Pass the value explicitly or wrap the state in a class",
					"BP-GLOBAL", 0.85)
			}

		case "javascript", "typescript":
			if varDeclPattern.MatchString(line) {
				add(lineNum, trimmed,
					"var declaration",
					"var is function-scoped and hoisted; let and const are block-scoped",
					domain.SeverityLow,
					"Use const, or let when reassignment is needed",
					"BP-VAR", 0.9)
			}
			if looseEqualityPattern.MatchString(line) && !strings.Contains(line, "===") && !strings.Contains(line, "!==") {
				add(lineNum, trimmed,
					"Loose equality comparison",
					"== and != coerce types before comparing",
					domain.SeverityLow,
					"Use === and !== for predictable comparisons",
					"BP-LOOSE-EQ", 0.7)
			}
			if consoleLogPattern.MatchString(line) {
				add(lineNum, trimmed,
					"console.log left in code",
					"Stray console output leaks into production logs",
					domain.SeverityInfo,
					"Remove the statement or route it through a logger",
					"BP-CONSOLE-LOG", 0.8)
			}
		}

		if language == "python" && openNoContextPattern.MatchString(line) && !strings.Contains(line, "with ") {
			add(lineNum, trimmed,
				"File opened without a context manager",
				"The handle leaks if an exception fires before close",
				domain.SeverityMedium,
				"Open the file in a with block",
				"BP-NO-CONTEXT", 0.75)
		}
	}

	return findings
}
