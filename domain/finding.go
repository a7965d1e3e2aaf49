package domain

import "time"

// Severity represents the severity level of a finding
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// severityRanks orders severities for comparison (higher is more severe)
var severityRanks = map[Severity]int{
	SeverityCritical: 5,
	SeverityHigh:     4,
	SeverityMedium:   3,
	SeverityLow:      2,
	SeverityInfo:     1,
}

// Rank returns the numeric rank of the severity (higher is more severe).
// Unknown severities rank below info.
func (s Severity) Rank() int {
	return severityRanks[s]
}

// IsValid reports whether the severity is one of the known levels
func (s Severity) IsValid() bool {
	_, ok := severityRanks[s]
	return ok
}

// ParseSeverity converts a string to a Severity, defaulting to medium
// for unrecognized values
func ParseSeverity(s string) Severity {
	switch Severity(s) {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, SeverityInfo:
		return Severity(s)
	default:
		return SeverityMedium
	}
}

// Finding represents a single issue reported by an analyzer for one file.
// A Finding is immutable once created; analyzers hand it off and never
// touch it again.
type Finding struct {
	// Title is a short human-readable summary
	Title string `json:"title"`

	// Description explains the problem in detail
	Description string `json:"description"`

	// Severity is the severity level
	Severity Severity `json:"severity"`

	// Category is a free-form tag (e.g. "security", "dependency")
	Category string `json:"category"`

	// FilePath is the path of the file the finding applies to
	FilePath string `json:"file_path"`

	// Line is the 1-based line number (0 if unknown)
	Line int `json:"line_number,omitempty"`

	// Column is the 1-based column number (0 if unknown)
	Column int `json:"column,omitempty"`

	// CodeSnippet is the offending source excerpt
	CodeSnippet string `json:"code_snippet,omitempty"`

	// Suggestion is remediation advice
	Suggestion string `json:"suggestion,omitempty"`

	// RuleID is the stable identifier of the check that produced the finding
	RuleID string `json:"rule_id,omitempty"`

	// Confidence is the analyzer's confidence in [0,1]
	Confidence float64 `json:"confidence,omitempty"`

	// References lists external URLs with background material
	References []string `json:"references,omitempty"`
}

// OutcomeStatus represents the terminal state of one (file, analyzer) task
type OutcomeStatus string

const (
	OutcomeCompleted OutcomeStatus = "completed"
	OutcomeFailed    OutcomeStatus = "failed"
	OutcomeTimedOut  OutcomeStatus = "timed_out"
)

// Outcome is the result of one (file, analyzer) task. It is created
// exactly once by the scheduler when the task settles and consumed
// exactly once by the aggregator.
type Outcome struct {
	// AnalyzerID identifies the analyzer that ran
	AnalyzerID string `json:"analyzer_id"`

	// FilePath identifies the analyzed file
	FilePath string `json:"file_path"`

	// Findings are the merged findings from both tiers
	Findings []Finding `json:"findings"`

	// Metrics holds numeric per-task statistics
	Metrics map[string]float64 `json:"metrics,omitempty"`

	// Status is the terminal state of the task
	Status OutcomeStatus `json:"status"`

	// ErrorMessage is set when Status is not completed
	ErrorMessage string `json:"error,omitempty"`

	// ExecutionTime is how long the task ran
	ExecutionTime time.Duration `json:"execution_time"`
}
