package config

import (
	"fmt"
	"strings"
)

// ProjectType represents the kind of codebase being analyzed
type ProjectType string

const (
	ProjectTypeGeneric  ProjectType = "generic"
	ProjectTypePython   ProjectType = "python"
	ProjectTypeWeb      ProjectType = "web"
	ProjectTypePolyglot ProjectType = "polyglot"
)

// Strictness represents the analysis strictness level
type Strictness string

const (
	StrictnessRelaxed  Strictness = "relaxed"
	StrictnessStandard Strictness = "standard"
	StrictnessStrict   Strictness = "strict"
)

// ProjectPreset holds skip-pattern presets for different project types
type ProjectPreset struct {
	SkipPatterns []string
}

// StrictnessPreset holds escalation tuning for different strictness levels
type StrictnessPreset struct {
	UseLLM              bool
	LLMSampleRate       float64
	ComplexityThreshold int
}

// GetProjectPresets returns presets for different project types
func GetProjectPresets() map[ProjectType]ProjectPreset {
	return map[ProjectType]ProjectPreset{
		ProjectTypeGeneric: {
			SkipPatterns: append([]string(nil), DefaultSkipPatterns...),
		},
		ProjectTypePython: {
			SkipPatterns: []string{
				"__pycache__/*",
				"*.pyc",
				"venv/*",
				"env/*",
				".venv/*",
				".git/*",
				"dist/*",
				"build/*",
			},
		},
		ProjectTypeWeb: {
			SkipPatterns: []string{
				"*.min.js",
				"*.map",
				"*.bundle.js",
				"node_modules/*",
				".git/*",
				"dist/*",
				"build/*",
				"coverage/*",
			},
		},
		ProjectTypePolyglot: {
			SkipPatterns: append(append([]string(nil), DefaultSkipPatterns...),
				"vendor/*",
				"target/*",
			),
		},
	}
}

// GetStrictnessPresets returns presets for different strictness levels
func GetStrictnessPresets() map[Strictness]StrictnessPreset {
	return map[Strictness]StrictnessPreset{
		StrictnessRelaxed: {
			UseLLM:              false,
			LLMSampleRate:       0.1,
			ComplexityThreshold: 25,
		},
		StrictnessStandard: {
			UseLLM:              false,
			LLMSampleRate:       DefaultDeepSampleRate,
			ComplexityThreshold: DefaultComplexityThreshold,
		},
		StrictnessStrict: {
			UseLLM:              true,
			LLMSampleRate:       0.5,
			ComplexityThreshold: 10,
		},
	}
}

// GetMinimalConfigTemplate returns a small config with the essential options
func GetMinimalConfigTemplate() string {
	return fmt.Sprintf(`# codeguard configuration
analysis:
  enabled_agents: [%s]
  max_concurrent_files: %d
  timeout_per_file: %d
  use_llm: false
  llm_sample_rate: %.1f

output:
  format: text
`,
		strings.Join(DefaultEnabledAgents, ", "),
		DefaultMaxConcurrentFiles,
		DefaultTimeoutPerFileSeconds,
		DefaultDeepSampleRate,
	)
}

// GetFullConfigTemplate returns a documented config for the given presets
func GetFullConfigTemplate(projectType ProjectType, strictness Strictness) string {
	project, ok := GetProjectPresets()[projectType]
	if !ok {
		project = GetProjectPresets()[ProjectTypeGeneric]
	}
	tuning, ok := GetStrictnessPresets()[strictness]
	if !ok {
		tuning = GetStrictnessPresets()[StrictnessStandard]
	}

	var sb strings.Builder
	sb.WriteString("# codeguard configuration\n")
	sb.WriteString(fmt.Sprintf("# project type: %s, strictness: %s\n\n", projectType, strictness))

	sb.WriteString("analysis:\n")
	sb.WriteString("  # Analyzers to run for each file\n")
	sb.WriteString(fmt.Sprintf("  enabled_agents: [%s]\n", strings.Join(DefaultEnabledAgents, ", ")))
	sb.WriteString("  # Maximum number of (file, analyzer) tasks in flight\n")
	sb.WriteString(fmt.Sprintf("  max_concurrent_files: %d\n", DefaultMaxConcurrentFiles))
	sb.WriteString("  # Per-task deadline in seconds\n")
	sb.WriteString(fmt.Sprintf("  timeout_per_file: %d\n", DefaultTimeoutPerFileSeconds))
	sb.WriteString("  # Enable the deep inspection tier\n")
	sb.WriteString(fmt.Sprintf("  use_llm: %t\n", tuning.UseLLM))
	sb.WriteString("  # Fraction of eligible files escalated by sampling\n")
	sb.WriteString(fmt.Sprintf("  llm_sample_rate: %.1f\n", tuning.LLMSampleRate))
	sb.WriteString("  # Paths excluded from analysis (gitignore-style)\n")
	sb.WriteString("  skip_patterns:\n")
	for _, p := range project.SkipPatterns {
		sb.WriteString(fmt.Sprintf("    - %q\n", p))
	}

	sb.WriteString("\nescalation:\n")
	sb.WriteString("  # Files shorter than this never escalate\n")
	sb.WriteString(fmt.Sprintf("  min_file_lines: %d\n", DefaultMinFileLines))
	sb.WriteString("  # Complexity estimate above which files always escalate\n")
	sb.WriteString(fmt.Sprintf("  complexity_threshold: %d\n", tuning.ComplexityThreshold))
	sb.WriteString("  # Deep-tier findings below this confidence are discarded\n")
	sb.WriteString(fmt.Sprintf("  min_deep_confidence: %.1f\n", DefaultMinDeepConfidence))

	sb.WriteString("\nscoring:\n")
	sb.WriteString("  # Category finding count above which a recommendation is emitted\n")
	sb.WriteString(fmt.Sprintf("  category_recommendation_threshold: %d\n", DefaultCategoryRecommendationThreshold))
	sb.WriteString(fmt.Sprintf("  max_recommendations: %d\n", DefaultMaxRecommendations))
	sb.WriteString(fmt.Sprintf("  top_files_limit: %d\n", DefaultTopFilesLimit))

	sb.WriteString("\noutput:\n")
	sb.WriteString("  # Output format: text, json, yaml\n")
	sb.WriteString("  format: text\n")
	sb.WriteString("  show_details: false\n")

	return sb.String()
}
