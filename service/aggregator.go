package service

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/manu042k/CodeGaurd/domain"
	"github.com/manu042k/CodeGaurd/internal/config"
)

// AggregatorImpl implements domain.Aggregator. Aggregation is a
// deterministic fold over settled outcomes: the same outcome set
// always produces the same report, regardless of settlement order.
// Malformed findings are dropped with a notice on logw.
type AggregatorImpl struct {
	scoring config.ScoringConfig

	// logw receives drop notices for malformed findings
	logw io.Writer
}

// NewAggregator creates an aggregator with the given scoring configuration
func NewAggregator(scoring config.ScoringConfig) *AggregatorImpl {
	return &AggregatorImpl{scoring: scoring, logw: os.Stderr}
}

// Aggregate folds outcomes into the final report
func (a *AggregatorImpl) Aggregate(outcomes []domain.Outcome, duration time.Duration) *domain.Report {
	// Sort a copy first so aggregation never depends on the order in
	// which tasks happened to settle
	sorted := make([]domain.Outcome, len(outcomes))
	copy(sorted, outcomes)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].AnalyzerID != sorted[j].AnalyzerID {
			return sorted[i].AnalyzerID < sorted[j].AnalyzerID
		}
		return sorted[i].FilePath < sorted[j].FilePath
	})

	var raw []domain.Finding
	filesAnalyzed := map[string]bool{}
	perAnalyzer := map[string]domain.AnalyzerStats{}
	byAgent := map[string]domain.AgentContribution{}
	anyCompleted := false

	for _, outcome := range sorted {
		stats := perAnalyzer[outcome.AnalyzerID]
		stats.TotalExecutionTime += outcome.ExecutionTime.Seconds()

		switch outcome.Status {
		case domain.OutcomeCompleted:
			anyCompleted = true
			filesAnalyzed[outcome.FilePath] = true
			stats.FilesProcessed++
			stats.FindingsFound += len(outcome.Findings)

			contribution := byAgent[outcome.AnalyzerID]
			contribution.Files++
			contribution.Issues += len(outcome.Findings)
			byAgent[outcome.AnalyzerID] = contribution

			for _, f := range outcome.Findings {
				if isMalformed(f) {
					fmt.Fprintf(a.logw, "Warning: dropping malformed finding %q from %s (file %s)\n",
						f.Title, outcome.AnalyzerID, outcome.FilePath)
					continue
				}
				raw = append(raw, f)
			}
		case domain.OutcomeTimedOut:
			stats.Timeouts++
		default:
			stats.Failures++
		}
		perAnalyzer[outcome.AnalyzerID] = stats
	}

	issues := dedupeFindings(raw)
	sortFindings(issues)

	bySeverity := map[string][]domain.Finding{}
	byCategory := map[string][]domain.Finding{}
	byFile := map[string][]domain.Finding{}
	severityCounts := map[string]int{}
	categoryCounts := map[string]int{}
	for _, f := range issues {
		sev := string(f.Severity)
		cat := f.Category
		if cat == "" {
			cat = "general"
		}
		bySeverity[sev] = append(bySeverity[sev], f)
		byCategory[cat] = append(byCategory[cat], f)
		byFile[f.FilePath] = append(byFile[f.FilePath], f)
		severityCounts[sev]++
		categoryCounts[cat]++
	}

	score := scoreFindings(issues)

	// A run counts as completed only when at least one task completed;
	// an empty outcome set (everything filtered or skipped) is a failure
	status := domain.ReportCompleted
	if !anyCompleted {
		status = domain.ReportFailed
	}

	return &domain.Report{
		Status:           status,
		FilesAnalyzed:    len(filesAnalyzed),
		TotalIssues:      len(issues),
		Issues:           issues,
		IssuesBySeverity: bySeverity,
		IssuesByCategory: byCategory,
		IssuesByFile:     byFile,
		Summary: domain.ReportSummary{
			TotalIssues:         len(issues),
			BySeverity:          severityCounts,
			ByCategory:          categoryCounts,
			ByAgent:             byAgent,
			OverallScore:        score,
			Grade:               config.GradeForScore(score),
			TopProblematicFiles: a.topFiles(byFile),
			Recommendations:     a.recommendations(severityCounts, categoryCounts),
		},
		PerAnalyzerStats: perAnalyzer,
		Timing:           domain.ReportTiming{TotalDuration: duration.Seconds()},
	}
}

// isMalformed rejects findings missing their required fields; they are
// dropped rather than poisoning the report.
func isMalformed(f domain.Finding) bool {
	return f.Title == "" || f.FilePath == "" || !f.Severity.IsValid()
}

// dedupKey collapses findings that describe the same problem: same
// normalized title, file, and category, with line numbers bucketed so
// near-identical matches a few lines apart still collapse.
func dedupKey(f domain.Finding) string {
	content := fmt.Sprintf("%s:%s:%s:%d",
		strings.ToLower(f.Title), f.FilePath, f.Category, f.Line/10)
	return fmt.Sprintf("%x", md5.Sum([]byte(content)))
}

// dedupeFindings collapses duplicate findings. The surviving
// representative carries the group's maximum severity (confidence
// breaking ties) and the union of all references, order preserved.
func dedupeFindings(findings []domain.Finding) []domain.Finding {
	index := map[string]int{}
	var unique []domain.Finding

	for _, f := range findings {
		key := dedupKey(f)
		at, seen := index[key]
		if !seen {
			index[key] = len(unique)
			unique = append(unique, f)
			continue
		}

		current := unique[at]
		if f.Severity.Rank() > current.Severity.Rank() ||
			(f.Severity.Rank() == current.Severity.Rank() && f.Confidence > current.Confidence) {
			refs := current.References
			current = f
			current.References = refs
		}
		for _, ref := range f.References {
			if !containsString(current.References, ref) {
				current.References = append(current.References, ref)
			}
		}
		unique[at] = current
	}

	return unique
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// sortFindings orders findings by severity (critical first), then
// file, line, and title for a stable report.
func sortFindings(findings []domain.Finding) {
	sort.Slice(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.Severity.Rank() != b.Severity.Rank() {
			return a.Severity.Rank() > b.Severity.Rank()
		}
		if a.FilePath != b.FilePath {
			return a.FilePath < b.FilePath
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Title < b.Title
	})
}

// scoreFindings subtracts a fixed per-severity penalty for every
// surviving finding from a starting score of 100, clamped to [0, 100].
func scoreFindings(findings []domain.Finding) int {
	score := 100
	for _, f := range findings {
		score -= config.PenaltyForSeverity(string(f.Severity))
	}
	if score < 0 {
		score = 0
	}
	return score
}

// topFiles ranks files by issue count, breaking ties by the highest
// severity present and then by name.
func (a *AggregatorImpl) topFiles(byFile map[string][]domain.Finding) []domain.TopFile {
	maxRank := func(findings []domain.Finding) int {
		rank := 0
		for _, f := range findings {
			if r := f.Severity.Rank(); r > rank {
				rank = r
			}
		}
		return rank
	}

	files := make([]string, 0, len(byFile))
	for file := range byFile {
		files = append(files, file)
	}
	sort.Slice(files, func(i, j int) bool {
		fi, fj := byFile[files[i]], byFile[files[j]]
		if len(fi) != len(fj) {
			return len(fi) > len(fj)
		}
		if ri, rj := maxRank(fi), maxRank(fj); ri != rj {
			return ri > rj
		}
		return files[i] < files[j]
	})

	limit := a.scoring.TopFilesLimit
	if limit <= 0 {
		limit = config.DefaultTopFilesLimit
	}
	if len(files) > limit {
		files = files[:limit]
	}

	top := make([]domain.TopFile, 0, len(files))
	for _, file := range files {
		top = append(top, domain.TopFile{File: file, Issues: len(byFile[file])})
	}
	return top
}

// recommendations builds the ordered advice list: critical first, then
// high, then one entry per category whose finding count reaches the
// configured threshold, busiest categories first.
func (a *AggregatorImpl) recommendations(severityCounts, categoryCounts map[string]int) []string {
	var recs []string

	if n := severityCounts[string(domain.SeverityCritical)]; n > 0 {
		recs = append(recs, fmt.Sprintf(
			"URGENT: Fix %d critical issue(s) immediately - these pose serious security or stability risks", n))
	}
	if n := severityCounts[string(domain.SeverityHigh)]; n > 0 {
		recs = append(recs, fmt.Sprintf(
			"HIGH PRIORITY: Address %d high-severity issue(s) soon", n))
	}

	threshold := a.scoring.CategoryRecommendationThreshold
	if threshold <= 0 {
		threshold = config.DefaultCategoryRecommendationThreshold
	}

	categories := make([]string, 0, len(categoryCounts))
	for cat, n := range categoryCounts {
		if n >= threshold {
			categories = append(categories, cat)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		if categoryCounts[categories[i]] != categoryCounts[categories[j]] {
			return categoryCounts[categories[i]] > categoryCounts[categories[j]]
		}
		return categories[i] < categories[j]
	})
	for _, cat := range categories {
		recs = append(recs, categoryRecommendation(cat, categoryCounts[cat]))
	}

	if len(recs) == 0 {
		recs = append(recs, "No major issues found! Keep up the good work!")
	}

	limit := a.scoring.MaxRecommendations
	if limit <= 0 {
		limit = config.DefaultMaxRecommendations
	}
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs
}

func categoryRecommendation(category string, count int) string {
	switch category {
	case "security":
		return "Security: Prioritize security vulnerabilities to protect your application"
	case "dependencies":
		return "Dependencies: Update outdated or vulnerable dependencies"
	case "code_quality":
		return "Code Quality: Consider refactoring to improve maintainability"
	case "performance":
		return "Performance: Optimize slow operations to improve user experience"
	case "best_practices":
		return "Best Practices: Align the codebase with language conventions"
	default:
		return fmt.Sprintf("%s: Review the %d issue(s) in this category", category, count)
	}
}
