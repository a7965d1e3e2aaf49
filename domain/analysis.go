package domain

import (
	"context"
	"io"
	"time"
)

// OutputFormat represents the supported report output formats
type OutputFormat string

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatJSON OutputFormat = "json"
	OutputFormatYAML OutputFormat = "yaml"
)

// LanguageAny is the capability wildcard matching every language
const LanguageAny = "*"

// FileEntry is one materialized entry of the file catalog: the core
// assumes content is already in memory and language already detected.
type FileEntry struct {
	// Path is the file path relative to the analysis root
	Path string `json:"path"`

	// Content is the full file content
	Content string `json:"content"`

	// Language is the detected programming language (lowercase)
	Language string `json:"language"`
}

// LineCount returns the number of lines in the entry's content
func (f FileEntry) LineCount() int {
	if f.Content == "" {
		return 0
	}
	n := 1
	for _, c := range f.Content {
		if c == '\n' {
			n++
		}
	}
	return n
}

// AnalysisResult is what one analyzer invocation produces for one file
// before the scheduler wraps it into an Outcome.
type AnalysisResult struct {
	Findings []Finding
	Metrics  map[string]float64
}

// Analyzer is the capability interface every concrete analyzer
// implements. Analyze runs the two-tier contract for a single file:
// the cheap deterministic tier always, the deep tier only when the
// escalation policy approves. The sample argument is a pre-drawn
// value in [0,1) used for probabilistic escalation, supplied by the
// scheduler so decisions stay deterministic for a given seed.
type Analyzer interface {
	// ID returns the stable analyzer identifier (e.g. "security")
	ID() string

	// Description returns a short human-readable description
	Description() string

	// Languages returns the declared language capability set;
	// LanguageAny matches everything
	Languages() []string

	// Analyze inspects one file and returns findings and metrics.
	// Failures are surfaced as errors, never as partial output.
	Analyze(ctx context.Context, file FileEntry, sample float64) (*AnalysisResult, error)
}

// SupportsLanguage reports whether the analyzer's declared capability
// set covers the given language.
func SupportsLanguage(a Analyzer, language string) bool {
	for _, l := range a.Languages() {
		if l == LanguageAny || l == language {
			return true
		}
	}
	return false
}

// DeepResult is what the deep inspection tier produces: new candidate
// findings (each with its own confidence) and the indexes of Tier-1
// findings judged to be false positives.
type DeepResult struct {
	Findings       []Finding
	FalsePositives []int
	Metrics        map[string]float64
}

// DeepInspector is the expensive second tier. It is the only operation
// modeled as potentially slow; implementations must honor ctx.
type DeepInspector interface {
	Inspect(ctx context.Context, file FileEntry, tier1 []Finding) (*DeepResult, error)
}

// ProgressObserver receives a snapshot copy after each task settles.
// Notification order across concurrently settling tasks is unspecified.
type ProgressObserver func(snapshot ProgressSnapshot)

// AnalysisRequest carries everything one scheduler run needs.
type AnalysisRequest struct {
	// Catalog is the materialized file catalog
	Catalog []FileEntry

	// EnabledAnalyzers is the set of analyzer ids to run
	EnabledAnalyzers []string

	// MaxConcurrentTasks bounds in-flight tasks
	MaxConcurrentTasks int

	// PerTaskTimeout is the per-task deadline
	PerTaskTimeout time.Duration

	// UseDeepTier enables the expensive second tier
	UseDeepTier bool

	// DeepTierSampleRate is the probabilistic escalation rate in [0,1]
	DeepTierSampleRate float64

	// SkipPatterns are gitignore-style path exclusion patterns
	SkipPatterns []string

	// Seed drives the deterministic escalation sample stream;
	// 0 means derive one from the clock
	Seed int64

	// Observers are notified after each task settles
	Observers []ProgressObserver
}

// RunResult is what a scheduler run yields: every settled outcome plus
// whether the run was cut short by cancellation.
type RunResult struct {
	Outcomes  []Outcome
	Cancelled bool
}

// Scheduler coordinates (file, analyzer) tasks under a concurrency
// bound with per-task timeout and failure isolation.
type Scheduler interface {
	Run(ctx context.Context, req AnalysisRequest) (*RunResult, error)
}

// Aggregator folds settled outcomes into a report. Implementations
// must be pure: no side effects and no dependency on outcome order.
type Aggregator interface {
	Aggregate(outcomes []Outcome, duration time.Duration) *Report
}

// ReportWriter formats and writes a report
type ReportWriter interface {
	Write(report *Report, format OutputFormat, writer io.Writer) error
}

// ProgressManager abstracts interactive progress display
type ProgressManager interface {
	// StartTask creates a new progress task with a description and total count
	StartTask(description string, total int) TaskProgress

	// IsInteractive returns true if progress bars are shown
	IsInteractive() bool

	// Close cleans up all tasks
	Close()
}

// TaskProgress tracks progress of a single long-running task
type TaskProgress interface {
	Increment(n int)
	Describe(description string)
	Complete()
}
