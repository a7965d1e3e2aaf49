package domain

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSeverityRank(t *testing.T) {
	ordered := []Severity{SeverityInfo, SeverityLow, SeverityMedium, SeverityHigh, SeverityCritical}
	for i := 1; i < len(ordered); i++ {
		if ordered[i].Rank() <= ordered[i-1].Rank() {
			t.Errorf("%s should rank above %s", ordered[i], ordered[i-1])
		}
	}
}

func TestSeverityRank_Unknown(t *testing.T) {
	if Severity("bogus").Rank() != 0 {
		t.Error("unknown severity should rank 0")
	}
	if Severity("bogus").IsValid() {
		t.Error("unknown severity should not be valid")
	}
}

func TestParseSeverity(t *testing.T) {
	tests := []struct {
		input    string
		expected Severity
	}{
		{"critical", SeverityCritical},
		{"high", SeverityHigh},
		{"medium", SeverityMedium},
		{"low", SeverityLow},
		{"info", SeverityInfo},
		{"unknown", SeverityMedium},
		{"", SeverityMedium},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseSeverity(tt.input); got != tt.expected {
				t.Errorf("ParseSeverity(%q) = %s, want %s", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFileEntry_LineCount(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected int
	}{
		{"empty", "", 0},
		{"single line", "hello", 1},
		{"two lines", "a\nb", 2},
		{"trailing newline", "a\nb\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := FileEntry{Path: "x.py", Content: tt.content}
			if got := f.LineCount(); got != tt.expected {
				t.Errorf("LineCount() = %d, want %d", got, tt.expected)
			}
		})
	}
}

type stubAnalyzer struct {
	id    string
	langs []string
}

func (s *stubAnalyzer) ID() string          { return s.id }
func (s *stubAnalyzer) Description() string { return "stub" }
func (s *stubAnalyzer) Languages() []string { return s.langs }
func (s *stubAnalyzer) Analyze(ctx context.Context, file FileEntry, sample float64) (*AnalysisResult, error) {
	return &AnalysisResult{}, nil
}

func TestSupportsLanguage(t *testing.T) {
	tests := []struct {
		name     string
		langs    []string
		language string
		expected bool
	}{
		{"exact match", []string{"python", "go"}, "python", true},
		{"no match", []string{"python"}, "rust", false},
		{"wildcard", []string{LanguageAny}, "anything", true},
		{"empty set", nil, "python", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &stubAnalyzer{id: "stub", langs: tt.langs}
			if got := SupportsLanguage(a, tt.language); got != tt.expected {
				t.Errorf("SupportsLanguage(%v, %s) = %v, want %v", tt.langs, tt.language, got, tt.expected)
			}
		})
	}
}

func TestProgressSnapshot_ProgressPercent(t *testing.T) {
	snap := ProgressSnapshot{TotalTasks: 4, CompletedTasks: 1, FailedTasks: 1, TimedOutTasks: 0}
	if got := snap.ProgressPercent(); got != 50.0 {
		t.Errorf("ProgressPercent() = %f, want 50.0", got)
	}

	empty := ProgressSnapshot{}
	if got := empty.ProgressPercent(); got != 100.0 {
		t.Errorf("empty run should report 100%%, got %f", got)
	}
}

func TestProgressSnapshot_SettledTasks(t *testing.T) {
	snap := ProgressSnapshot{CompletedTasks: 3, FailedTasks: 2, TimedOutTasks: 1}
	if got := snap.SettledTasks(); got != 6 {
		t.Errorf("SettledTasks() = %d, want 6", got)
	}
}

func TestAnalysisError(t *testing.T) {
	underlying := errors.New("boom")
	err := NewConfigError("bad config", underlying)

	if !IsConfigError(err) {
		t.Error("expected config error")
	}
	if !errors.Is(err, underlying) {
		t.Error("expected error to unwrap to underlying")
	}
	if err.Error() != "config: bad config: boom" {
		t.Errorf("unexpected error string: %s", err.Error())
	}
}

func TestAnalysisError_NoUnderlying(t *testing.T) {
	err := NewCancelledError("run cancelled")
	if err.Error() != "cancelled: run cancelled" {
		t.Errorf("unexpected error string: %s", err.Error())
	}
	if IsConfigError(err) {
		t.Error("cancelled error should not classify as config error")
	}
}

func TestOutcomeStatusValues(t *testing.T) {
	o := Outcome{
		AnalyzerID:    "security",
		FilePath:      "main.py",
		Status:        OutcomeCompleted,
		ExecutionTime: 5 * time.Millisecond,
	}
	if o.Status != "completed" {
		t.Errorf("completed status should serialize as 'completed', got %q", o.Status)
	}
}
