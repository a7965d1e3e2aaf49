package analyzer

import (
	"regexp"
	"strings"
)

// Control-flow keywords counted by the cheap complexity estimate,
// per language. The estimate is deliberately crude: it only has to be
// good enough to steer escalation, not to measure McCabe complexity.
var complexityKeywords = map[string][]string{
	"python":     {"if", "elif", "for", "while", "and", "or", "except", "with", "case"},
	"javascript": {"if", "for", "while", "case", "catch"},
	"typescript": {"if", "for", "while", "case", "catch"},
	"java":       {"if", "for", "while", "case", "catch"},
	"go":         {"if", "for", "switch", "case", "select"},
	"rust":       {"if", "for", "while", "match"},
}

var defaultComplexityKeywords = []string{"if", "else", "for", "while", "case", "catch", "except"}

// Boolean operators counted for the C-family languages
var booleanOperators = []string{"&&", "||"}

var wordPattern = regexp.MustCompile(`[A-Za-z_]+`)

// EstimateComplexity returns a cheap control-flow-keyword count for the
// given content. It never parses; it tokenizes words and counts the
// language's branching keywords plus boolean operators.
func EstimateComplexity(content, language string) int {
	keywords, ok := complexityKeywords[strings.ToLower(language)]
	if !ok {
		keywords = defaultComplexityKeywords
	}

	keywordSet := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		keywordSet[k] = true
	}

	complexity := 0
	for _, word := range wordPattern.FindAllString(content, -1) {
		if keywordSet[word] {
			complexity++
		}
	}

	for _, op := range booleanOperators {
		complexity += strings.Count(content, op)
	}

	return complexity
}
