// internal/report/report.go

// Package report renders a run's output as terminal text and persists run
// artifacts. It is the only consumer of the harness.RunOutput contract.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spiralogic/halo/internal/harness"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

// Render formats the run summary and per-domain metrics as terminal text.
func Render(output *harness.RunOutput) string {
	s := output.Summary
	var b strings.Builder

	b.WriteString(titleStyle.Render("halo: hallucination evaluation report"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("run %s  seed=%s  %s",
		s.RunID, s.Seed, s.Timestamp.Format("2006-01-02 15:04:05 MST"))))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Cases: %d\n", s.TotalCases)
	fmt.Fprintf(&b, "Overall: accuracy %.3f  confidence %.3f  ECE %.3f\n\n",
		s.OverallAccuracy, s.OverallConfidence, s.OverallECE)

	b.WriteString(headerStyle.Render(fmt.Sprintf("%-15s %6s %9s %11s %9s %7s",
		"domain", "count", "accuracy", "confidence", "overconf", "ece")))
	b.WriteString("\n")

	domains := make([]string, 0, len(s.ByDomain))
	for domain := range s.ByDomain {
		domains = append(domains, string(domain))
	}
	sort.Strings(domains)
	for _, domain := range domains {
		m := s.ByDomain[harness.Domain(domain)]
		fmt.Fprintf(&b, "%-15s %6d %9.3f %11.3f %9.3f %7.3f\n",
			domain, m.Count, m.Accuracy, m.MeanConfidence, m.OverconfidenceRate, m.ECE)
	}
	b.WriteString("\n")

	if s.Gates.Passed {
		b.WriteString(color.GreenString("GATES PASSED"))
		b.WriteString("\n")
	} else {
		b.WriteString(color.RedString("GATES FAILED"))
		b.WriteString("\n")
		for _, failure := range s.Gates.Failures {
			fmt.Fprintf(&b, "  %s %s\n", color.RedString("✗"), failure)
		}
	}
	return b.String()
}
