package service

import (
	"sync"
	"time"

	"github.com/manu042k/CodeGaurd/domain"
)

// ProgressTracker accumulates per-run counters as tasks settle and
// fans snapshot copies out to observers. One tracker belongs to one
// scheduler run; counters only ever grow.
type ProgressTracker struct {
	mu        sync.Mutex
	started   time.Time
	total     int
	completed int
	failed    int
	timedOut  int
	findings  int
	perAgent  map[string]domain.AnalyzerStats
	observers []domain.ProgressObserver
}

// NewProgressTracker creates a tracker for a run of totalTasks tasks
func NewProgressTracker(totalTasks int, observers []domain.ProgressObserver) *ProgressTracker {
	return &ProgressTracker{
		started:   time.Now(),
		total:     totalTasks,
		perAgent:  make(map[string]domain.AnalyzerStats),
		observers: observers,
	}
}

// Record folds one settled outcome into the counters and notifies
// every observer with a snapshot copy. Safe for concurrent use.
func (t *ProgressTracker) Record(outcome domain.Outcome) {
	t.mu.Lock()

	stats := t.perAgent[outcome.AnalyzerID]
	stats.TotalExecutionTime += outcome.ExecutionTime.Seconds()

	switch outcome.Status {
	case domain.OutcomeCompleted:
		t.completed++
		t.findings += len(outcome.Findings)
		stats.FilesProcessed++
		stats.FindingsFound += len(outcome.Findings)
	case domain.OutcomeTimedOut:
		t.timedOut++
		stats.Timeouts++
	default:
		t.failed++
		stats.Failures++
	}
	t.perAgent[outcome.AnalyzerID] = stats

	snapshot := t.snapshotLocked()
	observers := t.observers
	t.mu.Unlock()

	// Observers run outside the lock; each receives its own copy
	for _, observer := range observers {
		observer(snapshot)
	}
}

// Snapshot returns a point-in-time copy of the run state
func (t *ProgressTracker) Snapshot() domain.ProgressSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *ProgressTracker) snapshotLocked() domain.ProgressSnapshot {
	perAgent := make(map[string]domain.AnalyzerStats, len(t.perAgent))
	for id, stats := range t.perAgent {
		perAgent[id] = stats
	}
	return domain.ProgressSnapshot{
		TotalTasks:       t.total,
		CompletedTasks:   t.completed,
		FailedTasks:      t.failed,
		TimedOutTasks:    t.timedOut,
		FindingsSoFar:    t.findings,
		ElapsedTime:      time.Since(t.started),
		PerAnalyzerStats: perAgent,
	}
}
