package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Default analysis execution settings
const (
	// DefaultMaxConcurrentFiles bounds the number of tasks in flight
	DefaultMaxConcurrentFiles = 10

	// DefaultTimeoutPerFileSeconds is the per-task deadline
	DefaultTimeoutPerFileSeconds = 30

	// DefaultDeepSampleRate is the fraction of eligible files escalated
	// to the deep tier when no other rule decides first
	DefaultDeepSampleRate = 0.2
)

// Default escalation policy thresholds
const (
	// DefaultMinFileLines is the size below which files never escalate
	DefaultMinFileLines = 20

	// DefaultComplexityThreshold is the cheap complexity estimate above
	// which files always escalate
	DefaultComplexityThreshold = 15

	// DefaultMinDeepConfidence is the confidence floor for deep-tier
	// findings; lower-confidence candidates are discarded before merge
	DefaultMinDeepConfidence = 0.7
)

// Severity score penalties. Each surviving post-dedup finding subtracts
// its penalty from a starting score of 100, clamped to [0, 100].
const (
	PenaltyCritical = 15
	PenaltyHigh     = 8
	PenaltyMedium   = 4
	PenaltyLow      = 1
	PenaltyInfo     = 0
)

// Default recommendation and ranking limits
const (
	// DefaultCategoryRecommendationThreshold is the per-category finding
	// count above which a category-specific recommendation is emitted
	DefaultCategoryRecommendationThreshold = 3

	// DefaultMaxRecommendations caps the recommendation list
	DefaultMaxRecommendations = 10

	// DefaultTopFilesLimit caps the problematic-file ranking
	DefaultTopFilesLimit = 10
)

// GradeStep maps a minimum score to a letter grade
type GradeStep struct {
	MinScore int
	Grade    string
}

// GradeLadder is the fixed score-to-letter mapping, evaluated top down.
// Scores below the last step grade F.
var GradeLadder = []GradeStep{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{60, "D"},
}

// GradeForScore maps a numeric score to its letter grade
func GradeForScore(score int) string {
	for _, step := range GradeLadder {
		if score >= step.MinScore {
			return step.Grade
		}
	}
	return "F"
}

// PenaltyForSeverity returns the score penalty for a severity string
func PenaltyForSeverity(severity string) int {
	switch severity {
	case "critical":
		return PenaltyCritical
	case "high":
		return PenaltyHigh
	case "medium":
		return PenaltyMedium
	case "low":
		return PenaltyLow
	default:
		return PenaltyInfo
	}
}

// DefaultEnabledAgents is the analyzer set used when none is configured
var DefaultEnabledAgents = []string{
	"security",
	"dependency",
	"code_quality",
	"performance",
	"best_practices",
}

// DefaultSkipPatterns excludes generated and vendored paths from analysis
var DefaultSkipPatterns = []string{
	"*.min.js",
	"*.map",
	"node_modules/*",
	"__pycache__/*",
	".git/*",
	"*.pyc",
	"venv/*",
	"env/*",
	".venv/*",
	"dist/*",
	"build/*",
}

// DefaultConfigFileExtensions classify files as configuration rather
// than code for escalation purposes
var DefaultConfigFileExtensions = []string{
	".json", ".yaml", ".yml", ".xml", ".toml", ".ini",
}

// Config represents the main configuration structure
type Config struct {
	// Analysis holds execution configuration
	Analysis AnalysisConfig `json:"analysis" mapstructure:"analysis" yaml:"analysis"`

	// Escalation holds deep-tier escalation thresholds
	Escalation EscalationConfig `json:"escalation" mapstructure:"escalation" yaml:"escalation"`

	// Scoring holds report scoring configuration
	Scoring ScoringConfig `json:"scoring" mapstructure:"scoring" yaml:"scoring"`

	// Output holds output formatting configuration
	Output OutputConfig `json:"output" mapstructure:"output" yaml:"output"`
}

// AnalysisConfig holds execution configuration for one run.
// The mapstructure keys are the external configuration surface and are
// kept compatible with the historical consumer.
type AnalysisConfig struct {
	// EnabledAgents is the set of analyzer ids to run
	EnabledAgents []string `json:"enabled_agents" mapstructure:"enabled_agents" yaml:"enabled_agents"`

	// MaxConcurrentFiles bounds the number of tasks in flight
	MaxConcurrentFiles int `json:"max_concurrent_files" mapstructure:"max_concurrent_files" yaml:"max_concurrent_files"`

	// TimeoutPerFile is the per-task deadline in seconds
	TimeoutPerFile int `json:"timeout_per_file" mapstructure:"timeout_per_file" yaml:"timeout_per_file"`

	// UseLLM enables the deep inspection tier
	UseLLM bool `json:"use_llm" mapstructure:"use_llm" yaml:"use_llm"`

	// LLMSampleRate is the probabilistic escalation rate in [0,1]
	LLMSampleRate float64 `json:"llm_sample_rate" mapstructure:"llm_sample_rate" yaml:"llm_sample_rate"`

	// SkipPatterns are gitignore-style path exclusion patterns
	SkipPatterns []string `json:"skip_patterns" mapstructure:"skip_patterns" yaml:"skip_patterns"`

	// RandomSeed drives deterministic escalation sampling; 0 derives
	// a seed from the clock
	RandomSeed int64 `json:"random_seed" mapstructure:"random_seed" yaml:"random_seed"`
}

// EscalationConfig holds the deep-tier escalation thresholds
type EscalationConfig struct {
	// MinFileLines is the size below which files never escalate
	MinFileLines int `json:"min_file_lines" mapstructure:"min_file_lines" yaml:"min_file_lines"`

	// ComplexityThreshold is the estimate above which files always escalate
	ComplexityThreshold int `json:"complexity_threshold" mapstructure:"complexity_threshold" yaml:"complexity_threshold"`

	// MinDeepConfidence is the confidence floor for deep-tier findings
	MinDeepConfidence float64 `json:"min_deep_confidence" mapstructure:"min_deep_confidence" yaml:"min_deep_confidence"`

	// ConfigFileExtensions classify files as configuration, which never escalate
	ConfigFileExtensions []string `json:"config_file_extensions" mapstructure:"config_file_extensions" yaml:"config_file_extensions"`
}

// ScoringConfig holds report scoring and recommendation configuration
type ScoringConfig struct {
	// CategoryRecommendationThreshold is the per-category count above
	// which a category-specific recommendation is emitted
	CategoryRecommendationThreshold int `json:"category_recommendation_threshold" mapstructure:"category_recommendation_threshold" yaml:"category_recommendation_threshold"`

	// MaxRecommendations caps the recommendation list
	MaxRecommendations int `json:"max_recommendations" mapstructure:"max_recommendations" yaml:"max_recommendations"`

	// TopFilesLimit caps the problematic-file ranking
	TopFilesLimit int `json:"top_files_limit" mapstructure:"top_files_limit" yaml:"top_files_limit"`
}

// OutputConfig holds configuration for output formatting
type OutputConfig struct {
	// Format specifies the output format: text, json, yaml
	Format string `json:"format" mapstructure:"format" yaml:"format"`

	// ShowDetails controls whether the text report lists every finding
	ShowDetails bool `json:"show_details" mapstructure:"show_details" yaml:"show_details"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			EnabledAgents:      append([]string(nil), DefaultEnabledAgents...),
			MaxConcurrentFiles: DefaultMaxConcurrentFiles,
			TimeoutPerFile:     DefaultTimeoutPerFileSeconds,
			UseLLM:             false,
			LLMSampleRate:      DefaultDeepSampleRate,
			SkipPatterns:       append([]string(nil), DefaultSkipPatterns...),
		},
		Escalation: EscalationConfig{
			MinFileLines:         DefaultMinFileLines,
			ComplexityThreshold:  DefaultComplexityThreshold,
			MinDeepConfidence:    DefaultMinDeepConfidence,
			ConfigFileExtensions: append([]string(nil), DefaultConfigFileExtensions...),
		},
		Scoring: ScoringConfig{
			CategoryRecommendationThreshold: DefaultCategoryRecommendationThreshold,
			MaxRecommendations:              DefaultMaxRecommendations,
			TopFilesLimit:                   DefaultTopFilesLimit,
		},
		Output: OutputConfig{
			Format:      "text",
			ShowDetails: false,
		},
	}
}

// TimeoutPerFileDuration returns the per-task timeout as a Duration
func (c *AnalysisConfig) TimeoutPerFileDuration() time.Duration {
	return time.Duration(c.TimeoutPerFile) * time.Second
}

// LoadConfig loads configuration from file or returns default config
func LoadConfig(configPath string) (*Config, error) {
	return LoadConfigWithTarget(configPath, "")
}

// LoadConfigWithTarget loads configuration with target path context
func LoadConfigWithTarget(configPath string, targetPath string) (*Config, error) {
	if configPath == "" {
		configPath = findDefaultConfig(targetPath)
	}
	return loadConfigFromFile(configPath)
}

// loadConfigFromFile reads and parses a configuration file
func loadConfigFromFile(configPath string) (*Config, error) {
	if configPath == "" {
		return DefaultConfig(), nil
	}

	// Create a new viper instance to avoid race conditions
	v := viper.New()
	config := DefaultConfig()
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// searchConfigInDirectory searches for configuration files in a specific directory
func searchConfigInDirectory(dir string, candidates []string) string {
	for _, candidate := range candidates {
		path := filepath.Join(dir, candidate)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// findDefaultConfig looks for default configuration files in common locations.
// targetPath is the path being analyzed; the search walks upward from there.
func findDefaultConfig(targetPath string) string {
	candidates := []string{
		"codeguard.yaml",
		"codeguard.yml",
		".codeguard.yml",
		"codeguard.config.json",
		"codeguard.json",
		".codeguard.json",
	}

	if targetPath != "" {
		absPath, err := filepath.Abs(targetPath)
		if err == nil {
			info, err := os.Stat(absPath)
			if err == nil && !info.IsDir() {
				absPath = filepath.Dir(absPath)
			}

			volume := filepath.VolumeName(absPath)
			for dir := absPath; ; dir = filepath.Dir(dir) {
				if config := searchConfigInDirectory(dir, candidates); config != "" {
					return config
				}

				parent := filepath.Dir(dir)
				if parent == dir ||
					dir == volume ||
					(volume != "" && dir == volume+string(filepath.Separator)) {
					break
				}
			}
		}
	}

	if config := searchConfigInDirectory(".", candidates); config != "" {
		return config
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		if config := searchConfigInDirectory(filepath.Join(xdgConfig, "codeguard"), candidates); config != "" {
			return config
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		configDir := filepath.Join(home, ".config", "codeguard")
		if config := searchConfigInDirectory(configDir, candidates); config != "" {
			return config
		}

		if config := searchConfigInDirectory(home, candidates); config != "" {
			return config
		}
	}

	if envConfig := os.Getenv("CODEGUARD_CONFIG"); envConfig != "" {
		if _, err := os.Stat(envConfig); err == nil {
			return envConfig
		}
	}

	return ""
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if len(c.Analysis.EnabledAgents) == 0 {
		return fmt.Errorf("analysis.enabled_agents cannot be empty")
	}

	if c.Analysis.MaxConcurrentFiles < 1 {
		return fmt.Errorf("analysis.max_concurrent_files must be >= 1, got %d", c.Analysis.MaxConcurrentFiles)
	}

	if c.Analysis.TimeoutPerFile < 1 {
		return fmt.Errorf("analysis.timeout_per_file must be >= 1 second, got %d", c.Analysis.TimeoutPerFile)
	}

	if c.Analysis.LLMSampleRate < 0 || c.Analysis.LLMSampleRate > 1 {
		return fmt.Errorf("analysis.llm_sample_rate must be in [0,1], got %f", c.Analysis.LLMSampleRate)
	}

	if c.Escalation.MinFileLines < 0 {
		return fmt.Errorf("escalation.min_file_lines must be >= 0, got %d", c.Escalation.MinFileLines)
	}

	if c.Escalation.ComplexityThreshold < 1 {
		return fmt.Errorf("escalation.complexity_threshold must be >= 1, got %d", c.Escalation.ComplexityThreshold)
	}

	if c.Escalation.MinDeepConfidence < 0 || c.Escalation.MinDeepConfidence > 1 {
		return fmt.Errorf("escalation.min_deep_confidence must be in [0,1], got %f", c.Escalation.MinDeepConfidence)
	}

	if c.Scoring.CategoryRecommendationThreshold < 1 {
		return fmt.Errorf("scoring.category_recommendation_threshold must be >= 1, got %d", c.Scoring.CategoryRecommendationThreshold)
	}

	if c.Scoring.MaxRecommendations < 1 {
		return fmt.Errorf("scoring.max_recommendations must be >= 1, got %d", c.Scoring.MaxRecommendations)
	}

	if c.Scoring.TopFilesLimit < 1 {
		return fmt.Errorf("scoring.top_files_limit must be >= 1, got %d", c.Scoring.TopFilesLimit)
	}

	validFormats := map[string]bool{
		"text": true,
		"json": true,
		"yaml": true,
	}

	if !validFormats[c.Output.Format] {
		return fmt.Errorf("invalid output.format '%s', must be one of: text, json, yaml", c.Output.Format)
	}

	return nil
}

// SaveConfig saves configuration to a YAML file
func SaveConfig(config *Config, path string) error {
	// Create a new viper instance to avoid race conditions
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("analysis", config.Analysis)
	v.Set("escalation", config.Escalation)
	v.Set("scoring", config.Scoring)
	v.Set("output", config.Output)

	return v.WriteConfig()
}
