package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/skill-matcher/internal/ingestion"
	"github.com/jonathan/skill-matcher/internal/observability"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract known skills from a resume file",
	Long:  "Extract the dictionary skills found in a PDF, DOCX or plain text resume and print them as JSON.",
	RunE:  runExtract,
}

var (
	extractInput     string
	extractLanguages bool
)

func init() {
	extractCmd.Flags().StringVarP(&extractInput, "in", "i", "", "Path to the resume file (required)")
	extractCmd.Flags().BoolVar(&extractLanguages, "languages", false, "Print only the programming languages")
	_ = extractCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractCmd)
}

// ExtractOutput is the JSON printed by the extract command.
type ExtractOutput struct {
	File   string   `json:"file"`
	Skills []string `json:"skills"`
}

func runExtract(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	text, _, err := ingestion.IngestFile(extractInput)
	if err != nil {
		return fmt.Errorf("failed to read resume: %w", err)
	}

	analyzer := newAnalyzer(cfg)
	found := analyzer.Extractor().ExtractSkills(text)
	if extractLanguages {
		found = analyzer.Extractor().ExtractProgrammingLanguages(found)
	}

	if verbose {
		if analysis, err := analyzer.Analyze(text); err == nil {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintAnalysis(analysis)
		}
	}

	return writeJSON(cmd.OutOrStdout(), ExtractOutput{File: extractInput, Skills: nonNil(found)})
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
