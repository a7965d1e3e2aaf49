package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/manu042k/CodeGaurd/domain"
)

// HeuristicInspector is the deep tier used when no external inspection
// backend is wired in. It re-examines Tier-1 findings with more
// context than single-line matching allows, retracting likely false
// positives and surfacing structural issues that need whole-file view.
type HeuristicInspector struct {
	category string
}

// NewHeuristicInspector builds the deep tier for one analyzer category
func NewHeuristicInspector(category string) domain.DeepInspector {
	return &HeuristicInspector{category: category}
}

// Inspect implements domain.DeepInspector
func (h *HeuristicInspector) Inspect(ctx context.Context, file domain.FileEntry, tier1 []domain.Finding) (*domain.DeepResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &domain.DeepResult{
		Metrics: map[string]float64{},
	}

	lines := strings.Split(file.Content, "\n")

	// Verification pass over Tier-1: a secret match inside an example,
	// test fixture, or comment block is almost always sample data.
	for i, f := range tier1 {
		if f.RuleID == "SEC-SECRET" && h.isLikelySample(lines, f.Line) {
			result.FalsePositives = append(result.FalsePositives, i)
		}
	}

	result.Findings = append(result.Findings, h.findDuplicateBlocks(file, lines)...)
	result.Findings = append(result.Findings, h.findCommentedOutCode(file, lines)...)

	result.Metrics["deep_lines_scanned"] = float64(len(lines))

	return result, nil
}

// isLikelySample checks the lines around a finding for markers that
// the code is illustrative rather than live.
func (h *HeuristicInspector) isLikelySample(lines []string, lineNum int) bool {
	markers := []string{"example", "sample", "fixture", "mock", "fake", "# noqa", "nosec"}

	start := lineNum - 3
	if start < 1 {
		start = 1
	}
	end := lineNum + 1
	if end > len(lines) {
		end = len(lines)
	}

	for i := start; i <= end; i++ {
		lower := strings.ToLower(lines[i-1])
		for _, m := range markers {
			if strings.Contains(lower, m) {
				return true
			}
		}
	}
	return false
}

// findDuplicateBlocks reports runs of identical non-trivial lines
// appearing more than once in the file.
func (h *HeuristicInspector) findDuplicateBlocks(file domain.FileEntry, lines []string) []domain.Finding {
	const window = 4

	seen := map[string]int{}
	var findings []domain.Finding

	for i := 0; i+window <= len(lines); i++ {
		block := make([]string, 0, window)
		trivial := false
		for _, l := range lines[i : i+window] {
			t := strings.TrimSpace(l)
			if len(t) < 10 {
				trivial = true
				break
			}
			block = append(block, t)
		}
		if trivial {
			continue
		}

		key := strings.Join(block, "\n")
		if first, ok := seen[key]; ok {
			findings = append(findings, domain.Finding{
				Title:       "Duplicated code block",
				Description: fmt.Sprintf("Lines %d-%d repeat the block starting at line %d", i+1, i+window, first),
				Severity:    domain.SeverityMedium,
				Category:    h.category,
				FilePath:    file.Path,
				Line:        i + 1,
				Suggestion:  "Extract the repeated block into a shared function",
				RuleID:      "DEEP-DUPLICATE",
				Confidence:  0.75,
			})
			// One report per duplicated block
			delete(seen, key)
			continue
		}
		seen[key] = i + 1
	}

	return findings
}

// findCommentedOutCode reports runs of commented lines that look like
// disabled code rather than prose.
func (h *HeuristicInspector) findCommentedOutCode(file domain.FileEntry, lines []string) []domain.Finding {
	codeMarkers := []string{"(", ")", "=", "{", "}", ";"}

	var findings []domain.Finding
	run := 0
	runStart := 0

	flush := func() {
		if run >= 3 {
			findings = append(findings, domain.Finding{
				Title:       "Commented-out code",
				Description: fmt.Sprintf("%d consecutive comment lines look like disabled code", run),
				Severity:    domain.SeverityLow,
				Category:    h.category,
				FilePath:    file.Path,
				Line:        runStart,
				Suggestion:  "Delete the block; version control keeps the history",
				RuleID:      "DEEP-COMMENTED-CODE",
				Confidence:  0.6,
			})
		}
		run = 0
	}

	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		isComment := strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "#")
		if isComment {
			looksLikeCode := false
			for _, m := range codeMarkers {
				if strings.Contains(trimmed, m) {
					looksLikeCode = true
					break
				}
			}
			if looksLikeCode {
				if run == 0 {
					runStart = i + 1
				}
				run++
				continue
			}
		}
		flush()
	}
	flush()

	return findings
}
