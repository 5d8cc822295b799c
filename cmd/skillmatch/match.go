package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/observability"
	"github.com/jonathan/skill-matcher/internal/ranking"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank job roles for a list of skills",
	Long: "Score every role profile against the given skills and print the best matches. " +
		"With --explain, print which of one role's expected skills are present and missing.",
	RunE: runMatch,
}

var (
	matchSkills  []string
	matchExplain string
	matchLimit   int
)

func init() {
	matchCmd.Flags().StringSliceVarP(&matchSkills, "skills", "s", nil, "Comma-separated skills, e.g. Go,Docker,Kubernetes (required)")
	matchCmd.Flags().StringVar(&matchExplain, "explain", "", "Role name to explain instead of ranking")
	matchCmd.Flags().IntVarP(&matchLimit, "limit", "n", 0, "Number of roles to print (defaults to matcher.top-n)")
	_ = matchCmd.MarkFlagRequired("skills")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if matchLimit < 0 {
		return errors.New("--limit must not be negative")
	}

	skills := make([]string, 0, len(matchSkills))
	for _, s := range matchSkills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}

	limit := cfg.Matcher.TopN
	if matchLimit > 0 {
		limit = matchLimit
	}
	matcher := ranking.NewMatcher(nil, ranking.WithLimit(limit))
	printer := observability.NewPrinter(cmd.ErrOrStderr())

	if matchExplain != "" {
		gap, ok := matcher.Explain(matchExplain, skills)
		if !ok {
			return fmt.Errorf("unknown role: %s", matchExplain)
		}
		if verbose {
			printer.PrintRoleGap(&gap)
		}
		return writeJSON(cmd.OutOrStdout(), gap)
	}

	matches := matcher.MatchRoles(skills)
	if verbose {
		printer.PrintRoleMatches(matches)
	}
	return writeJSON(cmd.OutOrStdout(), matches)
}
