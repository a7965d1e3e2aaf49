package app

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/manu042k/CodeGaurd/domain"
)

// mockScheduler returns canned outcomes and captures the request
type mockScheduler struct {
	req      domain.AnalysisRequest
	outcomes []domain.Outcome
	err      error
}

func (m *mockScheduler) Run(ctx context.Context, req domain.AnalysisRequest) (*domain.RunResult, error) {
	m.req = req
	if m.err != nil {
		return nil, m.err
	}
	return &domain.RunResult{Outcomes: m.outcomes}, nil
}

func writeProjectFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeUseCase_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "app.py", "password = \"hunter2secret\"\n")
	writeProjectFile(t, dir, "util.py", "x = 1\n")

	var buf bytes.Buffer
	uc := NewAnalyzeUseCase()

	result, err := uc.Execute(context.Background(), AnalyzeOptions{
		TargetPath:   dir,
		OutputWriter: &buf,
		NoProgress:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Report.Status != domain.ReportCompleted {
		t.Errorf("expected completed, got %s", result.Report.Status)
	}
	if result.Report.FilesAnalyzed != 2 {
		t.Errorf("expected 2 files analyzed, got %d", result.Report.FilesAnalyzed)
	}
	if result.Report.TotalIssues == 0 {
		t.Error("hardcoded password should produce at least one finding")
	}
	if !strings.Contains(buf.String(), "Code Analysis Report") {
		t.Error("text report not written to the output writer")
	}
}

func TestAnalyzeUseCase_JSONOutput(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "app.py", "x = 1\n")
	writeProjectFile(t, dir, "codeguard.yaml", "output:\n  format: json\n")

	var buf bytes.Buffer
	uc := NewAnalyzeUseCase()

	if _, err := uc.Execute(context.Background(), AnalyzeOptions{
		TargetPath:   dir,
		OutputWriter: &buf,
		NoProgress:   true,
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("expected JSON output per discovered config: %v\n%s", err, buf.String())
	}
	if decoded["status"] != "completed" {
		t.Errorf("unexpected status: %v", decoded["status"])
	}
}

func TestAnalyzeUseCase_SingleFileTarget(t *testing.T) {
	dir := t.TempDir()
	path := writeProjectFile(t, dir, "main.py", "import os\nos.system(user_input)\n")

	var buf bytes.Buffer
	uc := NewAnalyzeUseCase()

	result, err := uc.Execute(context.Background(), AnalyzeOptions{
		TargetPath:   path,
		OutputWriter: &buf,
		NoProgress:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Report.FilesAnalyzed != 1 {
		t.Errorf("expected 1 file, got %d", result.Report.FilesAnalyzed)
	}
}

func TestAnalyzeUseCase_EmptyTargetIsConfigError(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "README.md", "# nothing to analyze\n")

	uc := NewAnalyzeUseCase()
	_, err := uc.Execute(context.Background(), AnalyzeOptions{
		TargetPath: dir,
		NoProgress: true,
	})
	if err == nil || !domain.IsConfigError(err) {
		t.Fatalf("expected config error for catalog without code, got %v", err)
	}
}

func TestAnalyzeUseCase_MissingTarget(t *testing.T) {
	uc := NewAnalyzeUseCase()
	_, err := uc.Execute(context.Background(), AnalyzeOptions{
		TargetPath: filepath.Join(t.TempDir(), "missing"),
		NoProgress: true,
	})
	if err == nil || !domain.IsConfigError(err) {
		t.Fatalf("expected config error for missing target, got %v", err)
	}
}

func TestAnalyzeUseCase_FlagOverridesReachRequest(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "app.py", "x = 1\n")

	scheduler := &mockScheduler{}
	uc := NewAnalyzeUseCaseBuilder().WithScheduler(scheduler).Build()

	var buf bytes.Buffer
	opts := AnalyzeOptions{
		TargetPath:   dir,
		OutputWriter: &buf,
		NoProgress:   true,
	}
	opts.Flags.EnabledAgents = []string{"security"}
	opts.Flags.MaxConcurrentFiles = 2
	opts.Flags.TimeoutPerFile = 7
	opts.Flags.RandomSeed = 11

	if _, err := uc.Execute(context.Background(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(scheduler.req.EnabledAnalyzers) != 1 || scheduler.req.EnabledAnalyzers[0] != "security" {
		t.Errorf("flag analyzers not propagated: %v", scheduler.req.EnabledAnalyzers)
	}
	if scheduler.req.MaxConcurrentTasks != 2 {
		t.Errorf("flag concurrency not propagated: %d", scheduler.req.MaxConcurrentTasks)
	}
	if scheduler.req.PerTaskTimeout != 7*time.Second {
		t.Errorf("flag timeout not propagated: %s", scheduler.req.PerTaskTimeout)
	}
	if scheduler.req.Seed != 11 {
		t.Errorf("flag seed not propagated: %d", scheduler.req.Seed)
	}
}

func TestAnalyzeUseCase_CancelledRunIsReported(t *testing.T) {
	dir := t.TempDir()
	writeProjectFile(t, dir, "app.py", "x = 1\n")

	scheduler := &mockScheduler{}
	uc := NewAnalyzeUseCaseBuilder().WithScheduler(scheduler).Build()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	// the mock ignores ctx; this exercises the Cancelled passthrough
	scheduler.outcomes = nil
	result, err := uc.Execute(ctx, AnalyzeOptions{
		TargetPath:   dir,
		OutputWriter: &buf,
		NoProgress:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Report == nil {
		t.Fatal("expected a report even for an empty run")
	}
}
