package app

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/manu042k/CodeGaurd/domain"
	"github.com/manu042k/CodeGaurd/internal/catalog"
	"github.com/manu042k/CodeGaurd/internal/config"
	"github.com/manu042k/CodeGaurd/service"
)

// AnalyzeOptions holds per-invocation options for the analyze use case
type AnalyzeOptions struct {
	// TargetPath is the file or directory to analyze
	TargetPath string

	// ConfigPath is an explicit configuration file; empty means discover
	// one near the target
	ConfigPath string

	// Flags are command-line overrides applied on top of the loaded
	// configuration
	Flags service.FlagOverrides

	// OutputWriter receives the formatted report (defaults to stdout)
	OutputWriter io.Writer

	// NoProgress disables the interactive progress bar
	NoProgress bool
}

// AnalyzeUseCase orchestrates one full analysis run: catalog the target,
// schedule analyzer tasks, aggregate outcomes, and write the report.
type AnalyzeUseCase struct {
	loader     *service.ConfigurationLoaderImpl
	aggregator domain.Aggregator
	writer     domain.ReportWriter

	// scheduler overrides the per-run default when set (used in tests)
	scheduler domain.Scheduler
}

// NewAnalyzeUseCase creates the use case with the default wiring
func NewAnalyzeUseCase() *AnalyzeUseCase {
	return &AnalyzeUseCase{loader: service.NewConfigurationLoader()}
}

// AnalyzeResult pairs the final report with run metadata the CLI needs
type AnalyzeResult struct {
	Report    *domain.Report
	Cancelled bool
	Duration  time.Duration
}

// Execute performs one analysis run end to end
func (uc *AnalyzeUseCase) Execute(ctx context.Context, opts AnalyzeOptions) (*AnalyzeResult, error) {
	start := time.Now()

	cfg, err := uc.loadConfig(opts)
	if err != nil {
		return nil, err
	}

	entries, err := uc.buildCatalog(cfg, opts.TargetPath)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, domain.NewConfigError("no analyzable files found in "+opts.TargetPath, nil)
	}

	req := uc.loader.BuildRequest(cfg, entries)

	scheduler := uc.scheduler
	if scheduler == nil {
		scheduler = service.NewSchedulerWithProgress(cfg, uc.progressManager(opts))
	}

	runResult, err := scheduler.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	aggregator := uc.aggregator
	if aggregator == nil {
		aggregator = service.NewAggregator(cfg.Scoring)
	}
	duration := time.Since(start)
	report := aggregator.Aggregate(runResult.Outcomes, duration)

	writer := uc.writer
	if writer == nil {
		writer = service.NewOutputFormatter(cfg.Output.ShowDetails)
	}
	out := opts.OutputWriter
	if out == nil {
		out = os.Stdout
	}
	if err := writer.Write(report, domain.OutputFormat(cfg.Output.Format), out); err != nil {
		return nil, err
	}

	return &AnalyzeResult{
		Report:    report,
		Cancelled: runResult.Cancelled,
		Duration:  duration,
	}, nil
}

func (uc *AnalyzeUseCase) loadConfig(opts AnalyzeOptions) (*config.Config, error) {
	var cfg *config.Config
	if opts.ConfigPath != "" {
		loaded, err := uc.loader.LoadConfig(opts.ConfigPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = uc.loader.LoadDefaultConfig(opts.TargetPath)
	}

	cfg = uc.loader.MergeFlags(cfg, opts.Flags)
	if err := cfg.Validate(); err != nil {
		return nil, domain.NewConfigError("invalid configuration", err)
	}
	return cfg, nil
}

// buildCatalog materializes the target into file entries. Skip patterns
// from the configuration are applied during the walk so excluded trees
// are never read.
func (uc *AnalyzeUseCase) buildCatalog(cfg *config.Config, target string) ([]domain.FileEntry, error) {
	if target == "" {
		target = "."
	}
	info, err := os.Stat(target)
	if err != nil {
		return nil, domain.NewConfigError("cannot access "+target, err)
	}

	builder := catalog.NewBuilder(cfg.Analysis.SkipPatterns)
	if info.IsDir() {
		return builder.BuildFromDir(target)
	}
	return builder.BuildFromFiles([]string{target})
}

func (uc *AnalyzeUseCase) progressManager(opts AnalyzeOptions) domain.ProgressManager {
	if opts.NoProgress || !service.IsInteractiveEnvironment() {
		return &service.NoOpProgressManager{}
	}
	return service.NewProgressManager(true)
}

// AnalyzeUseCaseBuilder builds an AnalyzeUseCase with custom components
type AnalyzeUseCaseBuilder struct {
	uc *AnalyzeUseCase
}

// NewAnalyzeUseCaseBuilder creates a new builder
func NewAnalyzeUseCaseBuilder() *AnalyzeUseCaseBuilder {
	return &AnalyzeUseCaseBuilder{uc: NewAnalyzeUseCase()}
}

// WithScheduler sets a custom scheduler
func (b *AnalyzeUseCaseBuilder) WithScheduler(s domain.Scheduler) *AnalyzeUseCaseBuilder {
	b.uc.scheduler = s
	return b
}

// WithAggregator sets a custom aggregator
func (b *AnalyzeUseCaseBuilder) WithAggregator(a domain.Aggregator) *AnalyzeUseCaseBuilder {
	b.uc.aggregator = a
	return b
}

// WithReportWriter sets a custom report writer
func (b *AnalyzeUseCaseBuilder) WithReportWriter(w domain.ReportWriter) *AnalyzeUseCaseBuilder {
	b.uc.writer = w
	return b
}

// Build creates the AnalyzeUseCase
func (b *AnalyzeUseCaseBuilder) Build() *AnalyzeUseCase {
	return b.uc
}
