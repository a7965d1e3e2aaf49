package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"github.com/manu042k/CodeGaurd/domain"
	"github.com/manu042k/CodeGaurd/internal/analyzer"
	"github.com/manu042k/CodeGaurd/internal/config"
)

// analysisTask is one (file, analyzer) unit of work. The escalation
// sample is drawn at construction time, before any concurrency, so a
// fixed seed always yields the same escalation decisions.
type analysisTask struct {
	file     domain.FileEntry
	analyzer domain.Analyzer
	sample   float64
}

// SchedulerImpl implements domain.Scheduler: it fans (file, analyzer)
// tasks out over a bounded worker set, applies a per-task deadline,
// isolates failures into outcomes, and reports progress after every
// settled task.
type SchedulerImpl struct {
	cfg      *config.Config
	progress domain.ProgressManager

	// selectAnalyzers resolves the analyzer set for one request;
	// overridable for testing
	selectAnalyzers func(req domain.AnalysisRequest) ([]domain.Analyzer, error)
}

// NewScheduler creates a scheduler from configuration
func NewScheduler(cfg *config.Config) *SchedulerImpl {
	s := &SchedulerImpl{cfg: cfg, progress: &NoOpProgressManager{}}
	s.selectAnalyzers = s.buildAnalyzers
	return s
}

// NewSchedulerWithProgress creates a scheduler with interactive
// progress display
func NewSchedulerWithProgress(cfg *config.Config, pm domain.ProgressManager) *SchedulerImpl {
	s := NewScheduler(cfg)
	s.progress = pm
	return s
}

// Run executes every task the request implies and returns all settled
// outcomes. Per-task failures and timeouts never fail the run; only
// configuration problems do.
func (s *SchedulerImpl) Run(ctx context.Context, req domain.AnalysisRequest) (*domain.RunResult, error) {
	if len(req.EnabledAnalyzers) == 0 {
		return nil, domain.NewConfigError("no analyzers enabled", nil)
	}
	if len(req.Catalog) == 0 {
		return nil, domain.NewConfigError("file catalog is empty", nil)
	}

	analyzers, err := s.selectAnalyzers(req)
	if err != nil {
		return nil, err
	}

	tasks := s.buildTasks(req, analyzers)
	if len(tasks) == 0 {
		return &domain.RunResult{}, nil
	}

	maxConcurrency := req.MaxConcurrentTasks
	if maxConcurrency <= 0 {
		maxConcurrency = config.DefaultMaxConcurrentFiles
	}
	timeout := req.PerTaskTimeout
	if timeout <= 0 {
		timeout = config.DefaultTimeoutPerFileSeconds * time.Second
	}

	tracker := NewProgressTracker(len(tasks), req.Observers)

	bar := s.progress.StartTask("Analyzing files", len(tasks))
	defer bar.Complete()

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrency)

	var mu sync.Mutex
	outcomes := make([]domain.Outcome, 0, len(tasks))
	cancelled := false

	for _, t := range tasks {
		t := t
		g.Go(func() error {
			select {
			case <-gCtx.Done():
				mu.Lock()
				cancelled = true
				mu.Unlock()
				return nil
			default:
			}

			outcome := s.runTask(gCtx, t, timeout)

			mu.Lock()
			outcomes = append(outcomes, outcome)
			if outcome.Status == domain.OutcomeFailed && gCtx.Err() != nil {
				cancelled = true
			}
			mu.Unlock()

			tracker.Record(outcome)
			bar.Increment(1)

			// Task failures are isolated into outcomes; returning nil
			// keeps the remaining tasks running
			return nil
		})
	}

	_ = g.Wait()

	if ctx.Err() != nil {
		cancelled = true
	}

	return &domain.RunResult{Outcomes: outcomes, Cancelled: cancelled}, nil
}

// buildAnalyzers resolves the enabled analyzer set, wiring in the deep
// tier when the request asks for it.
func (s *SchedulerImpl) buildAnalyzers(req domain.AnalysisRequest) ([]domain.Analyzer, error) {
	opts := analyzer.Options{}
	if req.UseDeepTier {
		opts.Policy = analyzer.NewEscalationPolicy(s.cfg.Escalation, req.DeepTierSampleRate)
		opts.NewInspector = analyzer.NewHeuristicInspector
		opts.MinDeepConfidence = s.cfg.Escalation.MinDeepConfidence
	}
	return analyzer.Select(req.EnabledAnalyzers, opts)
}

// buildTasks produces the task list sequentially: skip patterns are
// applied, language capability is matched, and one escalation sample
// is drawn per task from the seeded stream.
func (s *SchedulerImpl) buildTasks(req domain.AnalysisRequest, analyzers []domain.Analyzer) []analysisTask {
	matcher := ignore.CompileIgnoreLines(req.SkipPatterns...)

	seed := req.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	var tasks []analysisTask
	for _, file := range req.Catalog {
		if matcher.MatchesPath(file.Path) {
			continue
		}
		for _, a := range analyzers {
			if !domain.SupportsLanguage(a, file.Language) {
				continue
			}
			tasks = append(tasks, analysisTask{
				file:     file,
				analyzer: a,
				sample:   rng.Float64(),
			})
		}
	}
	return tasks
}

// runTask executes one task under its deadline. A task that overruns
// is abandoned: its goroutine keeps running until the analyzer notices
// the cancelled context, but its result is discarded.
func (s *SchedulerImpl) runTask(ctx context.Context, t analysisTask, timeout time.Duration) domain.Outcome {
	start := time.Now()

	taskCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type taskResult struct {
		result *domain.AnalysisResult
		err    error
	}
	done := make(chan taskResult, 1)

	go func() {
		result, err := t.analyzer.Analyze(taskCtx, t.file, t.sample)
		done <- taskResult{result, err}
	}()

	outcome := domain.Outcome{
		AnalyzerID: t.analyzer.ID(),
		FilePath:   t.file.Path,
	}

	select {
	case <-taskCtx.Done():
		outcome.ExecutionTime = time.Since(start)
		if ctx.Err() != nil {
			outcome.Status = domain.OutcomeFailed
			outcome.ErrorMessage = domain.NewCancelledError("analysis cancelled").Error()
		} else {
			outcome.Status = domain.OutcomeTimedOut
			outcome.ErrorMessage = fmt.Sprintf("analysis exceeded %s deadline", timeout)
		}
	case res := <-done:
		outcome.ExecutionTime = time.Since(start)
		if res.err != nil {
			outcome.Status = domain.OutcomeFailed
			outcome.ErrorMessage = res.err.Error()
		} else {
			outcome.Status = domain.OutcomeCompleted
			outcome.Findings = res.result.Findings
			outcome.Metrics = res.result.Metrics
		}
	}

	return outcome
}
