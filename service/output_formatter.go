package service

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/manu042k/CodeGaurd/domain"
)

// OutputFormatterImpl implements domain.ReportWriter
type OutputFormatterImpl struct {
	// ShowDetails controls whether the text report lists every finding
	ShowDetails bool
}

// NewOutputFormatter creates a new output formatter
func NewOutputFormatter(showDetails bool) *OutputFormatterImpl {
	return &OutputFormatterImpl{ShowDetails: showDetails}
}

// WriteJSON writes data as indented JSON to the writer
func WriteJSON(writer io.Writer, data interface{}) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Write writes the report in the specified format
func (f *OutputFormatterImpl) Write(report *domain.Report, format domain.OutputFormat, writer io.Writer) error {
	switch format {
	case domain.OutputFormatJSON:
		return WriteJSON(writer, report)
	case domain.OutputFormatYAML:
		return yaml.NewEncoder(writer).Encode(report)
	case domain.OutputFormatText:
		return f.writeText(report, writer)
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeText renders the report as a human-readable summary
func (f *OutputFormatterImpl) writeText(report *domain.Report, writer io.Writer) error {
	fmt.Fprintf(writer, "\n=== Code Analysis Report ===\n\n")
	fmt.Fprintf(writer, "Status: %s\n", report.Status)
	fmt.Fprintf(writer, "Files analyzed: %d\n", report.FilesAnalyzed)
	fmt.Fprintf(writer, "Total issues: %d\n", report.TotalIssues)
	fmt.Fprintf(writer, "Duration: %.2fs\n\n", report.Timing.TotalDuration)

	fmt.Fprintf(writer, "Score: %d/100 (%s)\n\n", report.Summary.OverallScore, report.Summary.Grade)

	fmt.Fprintf(writer, "Severity Distribution:\n")
	for _, sev := range []domain.Severity{
		domain.SeverityCritical, domain.SeverityHigh, domain.SeverityMedium,
		domain.SeverityLow, domain.SeverityInfo,
	} {
		if n := report.Summary.BySeverity[string(sev)]; n > 0 {
			fmt.Fprintf(writer, "  %-8s %d\n", sev, n)
		}
	}
	fmt.Fprintf(writer, "\n")

	if len(report.Summary.ByCategory) > 0 {
		categories := make([]string, 0, len(report.Summary.ByCategory))
		for cat := range report.Summary.ByCategory {
			categories = append(categories, cat)
		}
		sort.Strings(categories)

		fmt.Fprintf(writer, "Issues by Category:\n")
		for _, cat := range categories {
			fmt.Fprintf(writer, "  %-16s %d\n", cat, report.Summary.ByCategory[cat])
		}
		fmt.Fprintf(writer, "\n")
	}

	if len(report.Summary.TopProblematicFiles) > 0 {
		fmt.Fprintf(writer, "Top Problematic Files:\n")
		for _, tf := range report.Summary.TopProblematicFiles {
			fmt.Fprintf(writer, "  %s (%d issues)\n", tf.File, tf.Issues)
		}
		fmt.Fprintf(writer, "\n")
	}

	if f.ShowDetails && len(report.Issues) > 0 {
		fmt.Fprintf(writer, "Findings:\n")
		for _, issue := range report.Issues {
			location := issue.FilePath
			if issue.Line > 0 {
				location = fmt.Sprintf("%s:%d", issue.FilePath, issue.Line)
			}
			fmt.Fprintf(writer, "  [%s] %s\n", strings.ToUpper(string(issue.Severity)), issue.Title)
			fmt.Fprintf(writer, "    %s\n", location)
			if issue.Suggestion != "" {
				fmt.Fprintf(writer, "    Suggestion: %s\n", issue.Suggestion)
			}
		}
		fmt.Fprintf(writer, "\n")
	}

	if len(report.Summary.Recommendations) > 0 {
		fmt.Fprintf(writer, "Recommendations:\n")
		for _, rec := range report.Summary.Recommendations {
			fmt.Fprintf(writer, "  - %s\n", rec)
		}
	}

	return nil
}
