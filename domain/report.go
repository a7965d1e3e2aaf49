package domain

// ReportStatus represents the terminal status of a whole run
type ReportStatus string

const (
	ReportCompleted ReportStatus = "completed"
	ReportFailed    ReportStatus = "failed"
)

// AgentContribution summarizes one analyzer's share of the raw issue
// stream, mirroring the per-agent section of the summary.
type AgentContribution struct {
	Files  int `json:"files" yaml:"files"`
	Issues int `json:"issues" yaml:"issues"`
}

// TopFile is one entry of the problematic-file ranking
type TopFile struct {
	File   string `json:"file" yaml:"file"`
	Issues int    `json:"issues" yaml:"issues"`
}

// ReportSummary holds the aggregate statistics of a run.
// Field names are part of the downstream compatibility contract.
type ReportSummary struct {
	TotalIssues         int                          `json:"total_issues" yaml:"total_issues"`
	BySeverity          map[string]int               `json:"by_severity" yaml:"by_severity"`
	ByCategory          map[string]int               `json:"by_category" yaml:"by_category"`
	ByAgent             map[string]AgentContribution `json:"by_agent" yaml:"by_agent"`
	OverallScore        int                          `json:"overall_score" yaml:"overall_score"`
	Grade               string                       `json:"grade" yaml:"grade"`
	TopProblematicFiles []TopFile                    `json:"top_problematic_files" yaml:"top_problematic_files"`
	Recommendations     []string                     `json:"recommendations" yaml:"recommendations"`
}

// ReportTiming holds run timing information
type ReportTiming struct {
	// TotalDuration is the wall time of the whole run in seconds
	TotalDuration float64 `json:"total_duration" yaml:"total_duration"`
}

// Report is the final immutable output of a run, created once by the
// aggregator after every task has settled. The JSON field names are a
// compatibility contract with downstream consumers and must not change.
type Report struct {
	Status           ReportStatus             `json:"status" yaml:"status"`
	FilesAnalyzed    int                      `json:"files_analyzed" yaml:"files_analyzed"`
	TotalIssues      int                      `json:"total_issues" yaml:"total_issues"`
	Issues           []Finding                `json:"issues" yaml:"issues"`
	IssuesBySeverity map[string][]Finding     `json:"issues_by_severity" yaml:"issues_by_severity"`
	IssuesByCategory map[string][]Finding     `json:"issues_by_category" yaml:"issues_by_category"`
	IssuesByFile     map[string][]Finding     `json:"issues_by_file" yaml:"issues_by_file"`
	Summary          ReportSummary            `json:"summary" yaml:"summary"`
	PerAnalyzerStats map[string]AnalyzerStats `json:"per_analyzer_stats" yaml:"per_analyzer_stats"`
	Timing           ReportTiming             `json:"timing" yaml:"timing"`
}
