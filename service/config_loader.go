package service

import (
	"github.com/manu042k/CodeGaurd/domain"
	"github.com/manu042k/CodeGaurd/internal/config"
)

// ConfigurationLoaderImpl turns configuration files into analysis requests
type ConfigurationLoaderImpl struct{}

// NewConfigurationLoader creates a new configuration loader service
func NewConfigurationLoader() *ConfigurationLoaderImpl {
	return &ConfigurationLoaderImpl{}
}

// LoadConfig loads configuration from the specified path
func (c *ConfigurationLoaderImpl) LoadConfig(path string) (*config.Config, error) {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, domain.NewConfigError("failed to load configuration file", err)
	}
	return cfg, nil
}

// LoadDefaultConfig loads the configuration discovered near targetPath,
// falling back to the built-in defaults
func (c *ConfigurationLoaderImpl) LoadDefaultConfig(targetPath string) *config.Config {
	cfg, err := config.LoadConfigWithTarget("", targetPath)
	if err == nil {
		return cfg
	}
	return config.DefaultConfig()
}

// BuildRequest converts configuration into an analysis request. The
// catalog and observers are supplied by the caller.
func (c *ConfigurationLoaderImpl) BuildRequest(cfg *config.Config, catalog []domain.FileEntry) domain.AnalysisRequest {
	return domain.AnalysisRequest{
		Catalog:            catalog,
		EnabledAnalyzers:   append([]string(nil), cfg.Analysis.EnabledAgents...),
		MaxConcurrentTasks: cfg.Analysis.MaxConcurrentFiles,
		PerTaskTimeout:     cfg.Analysis.TimeoutPerFileDuration(),
		UseDeepTier:        cfg.Analysis.UseLLM,
		DeepTierSampleRate: cfg.Analysis.LLMSampleRate,
		SkipPatterns:       append([]string(nil), cfg.Analysis.SkipPatterns...),
		Seed:               cfg.Analysis.RandomSeed,
	}
}

// MergeFlags overlays command-line flag values onto a loaded
// configuration. Zero values mean the flag was not set.
type FlagOverrides struct {
	EnabledAgents      []string
	MaxConcurrentFiles int
	TimeoutPerFile     int
	UseLLM             bool
	UseLLMSet          bool
	LLMSampleRate      float64
	LLMSampleRateSet   bool
	SkipPatterns       []string
	RandomSeed         int64
	Format             string
	ShowDetails        bool
	ShowDetailsSet     bool
}

// MergeFlags applies flag overrides on top of cfg and returns cfg
func (c *ConfigurationLoaderImpl) MergeFlags(cfg *config.Config, flags FlagOverrides) *config.Config {
	if len(flags.EnabledAgents) > 0 {
		cfg.Analysis.EnabledAgents = flags.EnabledAgents
	}
	if flags.MaxConcurrentFiles > 0 {
		cfg.Analysis.MaxConcurrentFiles = flags.MaxConcurrentFiles
	}
	if flags.TimeoutPerFile > 0 {
		cfg.Analysis.TimeoutPerFile = flags.TimeoutPerFile
	}
	if flags.UseLLMSet {
		cfg.Analysis.UseLLM = flags.UseLLM
	}
	if flags.LLMSampleRateSet {
		cfg.Analysis.LLMSampleRate = flags.LLMSampleRate
	}
	if len(flags.SkipPatterns) > 0 {
		cfg.Analysis.SkipPatterns = flags.SkipPatterns
	}
	if flags.RandomSeed != 0 {
		cfg.Analysis.RandomSeed = flags.RandomSeed
	}
	if flags.Format != "" {
		cfg.Output.Format = flags.Format
	}
	if flags.ShowDetailsSet {
		cfg.Output.ShowDetails = flags.ShowDetails
	}
	return cfg
}
