package domain

import "time"

// AnalyzerStats holds one analyzer's raw contribution counters.
// They are computed from outcomes, not post-dedup findings, so an
// analyzer's work stays visible even when its finding is collapsed
// away during deduplication.
type AnalyzerStats struct {
	// FilesProcessed counts completed tasks
	FilesProcessed int `json:"files_processed"`

	// FindingsFound counts findings contributed before deduplication
	FindingsFound int `json:"findings_found"`

	// Failures counts failed tasks
	Failures int `json:"failures"`

	// Timeouts counts timed-out tasks
	Timeouts int `json:"timeouts"`

	// TotalExecutionTime is the summed task wall time in seconds
	TotalExecutionTime float64 `json:"total_execution_time"`
}

// ProgressSnapshot is a point-in-time view of one run's state. It is
// owned by the scheduler for the duration of a run and handed to
// observers by value; counters are monotonically non-decreasing.
type ProgressSnapshot struct {
	TotalTasks     int `json:"total_tasks"`
	CompletedTasks int `json:"completed_tasks"`
	FailedTasks    int `json:"failed_tasks"`
	TimedOutTasks  int `json:"timed_out_tasks"`

	// FindingsSoFar counts raw findings across settled tasks
	FindingsSoFar int `json:"findings_so_far"`

	// ElapsedTime is the time since the run started
	ElapsedTime time.Duration `json:"elapsed_time"`

	// PerAnalyzerStats maps analyzer id to its counters
	PerAnalyzerStats map[string]AnalyzerStats `json:"per_analyzer_stats"`
}

// SettledTasks returns the number of tasks that reached a terminal state
func (p ProgressSnapshot) SettledTasks() int {
	return p.CompletedTasks + p.FailedTasks + p.TimedOutTasks
}

// ProgressPercent returns run completion as a percentage
func (p ProgressSnapshot) ProgressPercent() float64 {
	if p.TotalTasks == 0 {
		return 100.0
	}
	return float64(p.SettledTasks()) / float64(p.TotalTasks) * 100
}
