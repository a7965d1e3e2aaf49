package service

import (
	"sync"
	"testing"
	"time"

	"github.com/manu042k/CodeGaurd/domain"
)

func TestProgressTracker_Counters(t *testing.T) {
	tracker := NewProgressTracker(4, nil)

	tracker.Record(domain.Outcome{
		AnalyzerID:    "security",
		Status:        domain.OutcomeCompleted,
		Findings:      []domain.Finding{{Title: "a"}, {Title: "b"}},
		ExecutionTime: 100 * time.Millisecond,
	})
	tracker.Record(domain.Outcome{
		AnalyzerID: "security",
		Status:     domain.OutcomeFailed,
	})
	tracker.Record(domain.Outcome{
		AnalyzerID: "performance",
		Status:     domain.OutcomeTimedOut,
	})

	snap := tracker.Snapshot()

	if snap.TotalTasks != 4 {
		t.Errorf("expected total 4, got %d", snap.TotalTasks)
	}
	if snap.CompletedTasks != 1 || snap.FailedTasks != 1 || snap.TimedOutTasks != 1 {
		t.Errorf("unexpected counters: %+v", snap)
	}
	if snap.SettledTasks() != 3 {
		t.Errorf("expected 3 settled, got %d", snap.SettledTasks())
	}
	if snap.FindingsSoFar != 2 {
		t.Errorf("expected 2 findings, got %d", snap.FindingsSoFar)
	}
	if snap.ProgressPercent() != 75.0 {
		t.Errorf("expected 75%%, got %f", snap.ProgressPercent())
	}

	sec := snap.PerAnalyzerStats["security"]
	if sec.FilesProcessed != 1 || sec.FindingsFound != 2 || sec.Failures != 1 {
		t.Errorf("unexpected security stats: %+v", sec)
	}
	if sec.TotalExecutionTime <= 0 {
		t.Error("execution time should accumulate")
	}
	if snap.PerAnalyzerStats["performance"].Timeouts != 1 {
		t.Error("timeout not attributed to performance analyzer")
	}
}

func TestProgressTracker_ObserversNotified(t *testing.T) {
	var mu sync.Mutex
	var snapshots []domain.ProgressSnapshot

	observer := func(s domain.ProgressSnapshot) {
		mu.Lock()
		snapshots = append(snapshots, s)
		mu.Unlock()
	}

	tracker := NewProgressTracker(2, []domain.ProgressObserver{observer})
	tracker.Record(domain.Outcome{AnalyzerID: "a", Status: domain.OutcomeCompleted})
	tracker.Record(domain.Outcome{AnalyzerID: "a", Status: domain.OutcomeCompleted})

	mu.Lock()
	defer mu.Unlock()
	if len(snapshots) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(snapshots))
	}
	if snapshots[0].CompletedTasks != 1 || snapshots[1].CompletedTasks != 2 {
		t.Errorf("snapshots should show monotonic progress: %+v", snapshots)
	}
}

func TestProgressTracker_SnapshotIsolation(t *testing.T) {
	tracker := NewProgressTracker(1, nil)
	tracker.Record(domain.Outcome{AnalyzerID: "a", Status: domain.OutcomeCompleted})

	snap := tracker.Snapshot()
	snap.PerAnalyzerStats["a"] = domain.AnalyzerStats{FilesProcessed: 99}

	if tracker.Snapshot().PerAnalyzerStats["a"].FilesProcessed != 1 {
		t.Error("mutating a snapshot must not affect the tracker")
	}
}

func TestProgressTracker_ConcurrentRecords(t *testing.T) {
	tracker := NewProgressTracker(100, nil)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tracker.Record(domain.Outcome{AnalyzerID: "a", Status: domain.OutcomeCompleted})
		}()
	}
	wg.Wait()

	if got := tracker.Snapshot().CompletedTasks; got != 100 {
		t.Errorf("expected 100 completed, got %d", got)
	}
}
