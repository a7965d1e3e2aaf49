package main

import (
	"fmt"
	"io"
	"os"

	"github.com/manu042k/CodeGaurd/app"
	"github.com/manu042k/CodeGaurd/domain"
	"github.com/manu042k/CodeGaurd/internal/constants"
	"github.com/manu042k/CodeGaurd/service"
	"github.com/spf13/cobra"
)

// CheckExitError carries the exit code for the check command
type CheckExitError struct {
	Code    int
	Message string
}

func (e *CheckExitError) Error() string {
	return e.Message
}

var (
	checkMinScore    int
	checkMaxCritical int
	checkMaxHigh     int
	checkAgents      []string
	checkConfigPath  string
	checkJSON        bool
	checkVerbose     bool
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Quality gate for CI/CD pipelines",
		Long: `Run the analyzers and fail when the report violates the configured
thresholds.

Exit codes:
  0 - All checks pass
  1 - Quality threshold(s) violated
  2 - Analysis error (bad configuration, unreadable target, etc.)

Examples:
  # Fail below a score of 70
  codeguard check --min-score 70 src/

  # Zero tolerance for critical findings
  codeguard check --max-critical 0 src/

  # Security gate only
  codeguard check --agents security src/`,
		Args:          cobra.MaximumNArgs(1),
		RunE:          runCheck,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().IntVar(&checkMinScore, "min-score", 60,
		"Minimum acceptable overall score")
	cmd.Flags().IntVar(&checkMaxCritical, "max-critical", 0,
		"Maximum allowed critical findings")
	cmd.Flags().IntVar(&checkMaxHigh, "max-high", -1,
		"Maximum allowed high-severity findings (-1 = unlimited)")
	cmd.Flags().StringSliceVarP(&checkAgents, "agents", "a", nil,
		"Analyzers to run (comma-separated); defaults to the configured set")
	cmd.Flags().StringVarP(&checkConfigPath, "config", "c", "",
		"Path to config file")
	cmd.Flags().BoolVar(&checkJSON, "json", false,
		"Output results as JSON")
	cmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false,
		"Show the full report before the verdict")

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	flags := service.FlagOverrides{EnabledAgents: checkAgents}
	if checkJSON {
		flags.Format = "json"
	}

	var out io.Writer = io.Discard
	if checkVerbose || checkJSON {
		out = os.Stdout
	}

	uc := app.NewAnalyzeUseCase()
	result, err := uc.Execute(cmd.Context(), app.AnalyzeOptions{
		TargetPath:   target,
		ConfigPath:   checkConfigPath,
		Flags:        flags,
		OutputWriter: out,
		NoProgress:   true,
	})
	if err != nil {
		return &CheckExitError{Code: constants.ExitError, Message: err.Error()}
	}

	report := result.Report
	if report.Status == domain.ReportFailed {
		return &CheckExitError{Code: constants.ExitError, Message: "analysis failed for every file"}
	}

	var violations []string
	if report.Summary.OverallScore < checkMinScore {
		violations = append(violations, fmt.Sprintf(
			"score %d below minimum %d", report.Summary.OverallScore, checkMinScore))
	}
	if n := report.Summary.BySeverity[string(domain.SeverityCritical)]; n > checkMaxCritical {
		violations = append(violations, fmt.Sprintf(
			"%d critical finding(s) exceed limit %d", n, checkMaxCritical))
	}
	if checkMaxHigh >= 0 {
		if n := report.Summary.BySeverity[string(domain.SeverityHigh)]; n > checkMaxHigh {
			violations = append(violations, fmt.Sprintf(
				"%d high-severity finding(s) exceed limit %d", n, checkMaxHigh))
		}
	}

	if len(violations) > 0 {
		if !checkJSON {
			fmt.Printf("FAIL (score %d/100, grade %s)\n", report.Summary.OverallScore, report.Summary.Grade)
			for _, v := range violations {
				fmt.Printf("  - %s\n", v)
			}
		}
		return &CheckExitError{Code: constants.ExitViolation}
	}

	if !checkJSON {
		fmt.Printf("PASS (score %d/100, grade %s, %d issue(s))\n",
			report.Summary.OverallScore, report.Summary.Grade, report.TotalIssues)
	}
	return nil
}
