package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ukaji3/reviewpdf-go/pkg/reviewpdf/models"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)

var boxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

// formatSummary renders the end-of-run report.
func formatSummary(s *models.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Review PDFs"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Input:     %s\n", s.Input)
	fmt.Fprintf(&b, "Output:    %s\n", s.OutputDir)
	b.WriteString(okStyle.Render(fmt.Sprintf("Generated: %d", s.Generated)))

	if s.Failed > 0 {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Failed:    %d", s.Failed)))
		for _, res := range s.Results {
			if !res.OK() {
				fmt.Fprintf(&b, "\n  %s / %s: %s", res.Key.Reviewee, res.Key.Reviewer, res.Error)
			}
		}
	}

	if total := s.WarningTotal(); total > 0 {
		kinds := make([]string, 0, len(s.Warnings))
		for kind := range s.Warnings {
			kinds = append(kinds, string(kind))
		}
		sort.Strings(kinds)

		b.WriteString("\n")
		b.WriteString(warningStyle.Render(fmt.Sprintf("Warnings:  %d", total)))
		for _, kind := range kinds {
			fmt.Fprintf(&b, "\n  %s: %d", kind, s.Warnings[models.WarningKind(kind)])
		}
	}
	return boxStyle.Render(b.String())
}
