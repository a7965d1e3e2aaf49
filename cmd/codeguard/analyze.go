package main

import (
	"fmt"
	"os"

	"github.com/manu042k/CodeGaurd/app"
	"github.com/manu042k/CodeGaurd/service"
	"github.com/spf13/cobra"
)

var (
	analyzeAgents        []string
	analyzeFormat        string
	analyzeJSON          bool
	analyzeYAML          bool
	analyzeDetails       bool
	analyzeConfigPath    string
	analyzeOutputPath    string
	analyzeConcurrency   int
	analyzeTimeout       int
	analyzeUseLLM        bool
	analyzeLLMSampleRate float64
	analyzeSkipPatterns  []string
	analyzeSeed          int64
	analyzeNoProgress    bool
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [path]",
		Short: "Analyze a file or directory",
		Long: `Run the enabled analyzers over a file or directory and print a
scored report.

Examples:
  codeguard analyze src/
  codeguard analyze --agents security,performance src/
  codeguard analyze --json src/
  codeguard analyze --use-llm --llm-sample-rate 0.5 src/
  codeguard analyze --config codeguard.yaml .`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringSliceVarP(&analyzeAgents, "agents", "a", nil,
		"Analyzers to run (comma-separated); defaults to the configured set")
	cmd.Flags().StringVarP(&analyzeFormat, "format", "f", "",
		"Output format: text, json, yaml")
	cmd.Flags().BoolVar(&analyzeJSON, "json", false,
		"Output results as JSON (shorthand for --format json)")
	cmd.Flags().BoolVar(&analyzeYAML, "yaml", false,
		"Output results as YAML (shorthand for --format yaml)")
	cmd.Flags().BoolVarP(&analyzeDetails, "details", "d", false,
		"List every finding in the text report")
	cmd.Flags().StringVarP(&analyzeConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().StringVarP(&analyzeOutputPath, "output", "o", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 0,
		"Maximum number of tasks in flight")
	cmd.Flags().IntVar(&analyzeTimeout, "timeout", 0,
		"Per-file analysis deadline in seconds")
	cmd.Flags().BoolVar(&analyzeUseLLM, "use-llm", false,
		"Enable the deep inspection tier")
	cmd.Flags().Float64Var(&analyzeLLMSampleRate, "llm-sample-rate", 0,
		"Fraction of eligible files escalated by sampling")
	cmd.Flags().StringSliceVar(&analyzeSkipPatterns, "skip", nil,
		"Paths to exclude (gitignore-style patterns)")
	cmd.Flags().Int64Var(&analyzeSeed, "seed", 0,
		"Random seed for deterministic escalation sampling")
	cmd.Flags().BoolVar(&analyzeNoProgress, "no-progress", false,
		"Disable the progress bar")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	flags := analyzeFlagOverrides(cmd)

	out := os.Stdout
	if analyzeOutputPath != "" {
		file, err := os.Create(analyzeOutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	uc := app.NewAnalyzeUseCase()
	result, err := uc.Execute(cmd.Context(), app.AnalyzeOptions{
		TargetPath:   target,
		ConfigPath:   analyzeConfigPath,
		Flags:        flags,
		OutputWriter: out,
		NoProgress:   analyzeNoProgress || flags.Format == "json" || flags.Format == "yaml",
	})
	if err != nil {
		return err
	}

	if result.Cancelled {
		fmt.Fprintln(os.Stderr, "Warning: analysis was cancelled before all files were processed")
	}
	if analyzeOutputPath != "" {
		fmt.Printf("Report saved to: %s\n", analyzeOutputPath)
	}

	return nil
}

// analyzeFlagOverrides converts command-line flags into configuration
// overrides, recording which boolean-like flags were explicitly set.
func analyzeFlagOverrides(cmd *cobra.Command) service.FlagOverrides {
	format := analyzeFormat
	if analyzeJSON {
		format = "json"
	} else if analyzeYAML {
		format = "yaml"
	}

	return service.FlagOverrides{
		EnabledAgents:      analyzeAgents,
		MaxConcurrentFiles: analyzeConcurrency,
		TimeoutPerFile:     analyzeTimeout,
		UseLLM:             analyzeUseLLM,
		UseLLMSet:          cmd.Flags().Changed("use-llm"),
		LLMSampleRate:      analyzeLLMSampleRate,
		LLMSampleRateSet:   cmd.Flags().Changed("llm-sample-rate"),
		SkipPatterns:       analyzeSkipPatterns,
		RandomSeed:         analyzeSeed,
		Format:             format,
		ShowDetails:        analyzeDetails,
		ShowDetailsSet:     cmd.Flags().Changed("details"),
	}
}
