// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skill-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}

// PrintAnalysis outputs the skills found in a resume grouped by category,
// followed by the selected role.
func (p *Printer) PrintAnalysis(analysis *types.ResumeAnalysis) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills found: %d\n", len(analysis.ExtractedSkills)))
	if len(analysis.ProgrammingLanguages) > 0 {
		sb.WriteString(fmt.Sprintf("Languages:    %s\n", strings.Join(analysis.ProgrammingLanguages, ", ")))
	}
	sb.WriteString("\n")

	for _, category := range types.Categories {
		names := analysis.SkillsByCategory[category.String()]
		if len(names) == 0 {
			continue
		}
		sb.WriteString(fmt.Sprintf("%s:\n", strings.ToUpper(category.String()[:1])+category.String()[1:]))
		count := min(len(names), maxItemsToShow)
		for _, name := range names[:count] {
			sb.WriteString(fmt.Sprintf("  • %s\n", name))
		}
		if len(names) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(names)-maxItemsToShow))
		}
	}

	if analysis.SelectedRole != "" {
		sb.WriteString(fmt.Sprintf("\nSelected role: %s", analysis.SelectedRole))
	}

	p.printBox("RESUME ANALYSIS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRoleMatches outputs ranked role matches with a proportional score bar.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintRoleMatches(matches []types.RoleMatch) {
	if len(matches) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "NO MATCHING ROLES")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	const barWidth = 20
	var sb strings.Builder
	for i, m := range matches {
		filled := m.MatchScore * barWidth / 100
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		sb.WriteString(fmt.Sprintf("#%d  %-24s %s %3d%%", i+1, truncate(m.Role, 24), bar, m.MatchScore))
		if i < len(matches)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ROLE MATCHES", sb.String())
}

// PrintRoleGap outputs which of a role's expected skills are covered.
func (p *Printer) PrintRoleGap(gap *types.RoleGap) {
	if gap == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Role:  %s\n", gap.Role))
	sb.WriteString(fmt.Sprintf("Score: %d%%\n\n", gap.MatchScore))

	sb.WriteString(fmt.Sprintf("Have (%d):\n", len(gap.MatchedSkills)))
	for _, s := range gap.MatchedSkills {
		sb.WriteString(fmt.Sprintf("  ✓ %s\n", s))
	}
	sb.WriteString(fmt.Sprintf("Missing (%d):\n", len(gap.MissingSkills)))
	count := min(len(gap.MissingSkills), maxItemsToShow)
	for _, s := range gap.MissingSkills[:count] {
		sb.WriteString(fmt.Sprintf("  ✗ %s\n", s))
	}
	if len(gap.MissingSkills) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(gap.MissingSkills)-maxItemsToShow))
	}

	p.printBox("ROLE GAP", strings.TrimSuffix(sb.String(), "\n"))
}
