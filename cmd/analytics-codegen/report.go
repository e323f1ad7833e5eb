package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"analytics-codegen/internal/diagnostic"
	"analytics-codegen/internal/generate"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e53935"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFC107"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2196F3"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8BC34A"))
	mutedStyle   = lipgloss.NewStyle().Faint(true)
)

func severityStyle(sev diagnostic.Severity) lipgloss.Style {
	switch sev {
	case diagnostic.SeverityError:
		return errorStyle
	case diagnostic.SeverityWarning:
		return warningStyle
	default:
		return infoStyle
	}
}

// renderReport formats the diagnostics and summary of a run for a terminal.
func renderReport(report *generate.Report, output string) string {
	var b strings.Builder

	for _, d := range report.Diagnostics.Items {
		sev := severityStyle(d.Severity).Render(fmt.Sprintf("%-7s", d.Severity))
		fmt.Fprintf(&b, "%s %s\n", sev, d.String())
	}

	if report.Diagnostics.Len() > 0 {
		b.WriteString("\n")
	}

	summaryStyle := successStyle
	if report.Failed() {
		summaryStyle = errorStyle
	}

	b.WriteString(titleStyle.Render(output))
	b.WriteString(" ")
	b.WriteString(summaryStyle.Render(report.Summary()))
	b.WriteString("\n")

	if report.DuplicateRows > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d duplicate rows ignored", report.DuplicateRows)))
		b.WriteString("\n")
	}

	return b.String()
}

func printReport(w io.Writer, report *generate.Report, output string) {
	_, _ = io.WriteString(w, renderReport(report, output))
}
