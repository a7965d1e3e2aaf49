package service

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/manu042k/CodeGaurd/domain"
)

// barProgressManager renders one progress bar per analysis phase on
// stderr, keeping stdout clean for report output.
type barProgressManager struct {
	out  io.Writer
	bars []*progressbar.ProgressBar
}

// NewProgressManager returns an interactive progress manager when the
// environment can render bars, and a no-op one otherwise.
func NewProgressManager(enabled bool) domain.ProgressManager {
	if enabled && IsInteractiveEnvironment() {
		return &barProgressManager{out: os.Stderr}
	}
	return &NoOpProgressManager{}
}

// IsInteractiveEnvironment reports whether stderr is a terminal that
// can render progress bars. CI environments never qualify.
func IsInteractiveEnvironment() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	info, err := os.Stderr.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func (pm *barProgressManager) StartTask(description string, total int) domain.TaskProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetWriter(pm.out),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(18),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
	)
	pm.bars = append(pm.bars, bar)
	return &barTask{bar: bar}
}

func (pm *barProgressManager) IsInteractive() bool { return true }

// Close finishes every bar so a cancelled run leaves the terminal in a
// sane state.
func (pm *barProgressManager) Close() {
	for _, bar := range pm.bars {
		_ = bar.Finish()
	}
	pm.bars = nil
}

// barTask adapts one progress bar to the TaskProgress interface
type barTask struct {
	bar *progressbar.ProgressBar
}

func (t *barTask) Increment(n int) { _ = t.bar.Add(n) }

func (t *barTask) Describe(description string) { t.bar.Describe(description) }

func (t *barTask) Complete() { _ = t.bar.Finish() }

// NoOpProgressManager is the silent fallback used for non-interactive
// runs and machine-readable output.
type NoOpProgressManager struct{}

func (pm *NoOpProgressManager) StartTask(_ string, _ int) domain.TaskProgress {
	return &NoOpTaskProgress{}
}

func (pm *NoOpProgressManager) IsInteractive() bool { return false }

func (pm *NoOpProgressManager) Close() {}

// NoOpTaskProgress discards all progress updates
type NoOpTaskProgress struct{}

func (tp *NoOpTaskProgress) Increment(_ int) {}

func (tp *NoOpTaskProgress) Describe(_ string) {}

func (tp *NoOpTaskProgress) Complete() {}
