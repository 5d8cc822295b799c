package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/export"
	"github.com/jonathan/skill-matcher/internal/ingestion"
	"github.com/jonathan/skill-matcher/internal/observability"
	"github.com/jonathan/skill-matcher/internal/pipeline"
	"github.com/jonathan/skill-matcher/internal/schemas"
	"github.com/jonathan/skill-matcher/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze one or more resume files",
	Long: "Extract skills from each resume and rank job roles for it. Results are printed as JSON " +
		"or written to --out; --xlsx additionally writes a spreadsheet report.",
	RunE: runAnalyze,
}

var (
	analyzeInputs      []string
	analyzeOutput      string
	analyzeXLSX        string
	analyzeConcurrency int
)

func init() {
	analyzeCmd.Flags().StringSliceVarP(&analyzeInputs, "in", "i", nil, "Resume files to analyze (repeatable or comma-separated)")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "out", "o", "", "Write the JSON report to this file instead of stdout")
	analyzeCmd.Flags().StringVar(&analyzeXLSX, "xlsx", "", "Also write an Excel report to this file")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 0, "Maximum documents analyzed in parallel (defaults to GOMAXPROCS)")
	_ = analyzeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(analyzeCmd)
}

// AnalysisReport is the outcome for one input file.
type AnalysisReport struct {
	File     string                `json:"file"`
	Analysis *types.ResumeAnalysis `json:"analysis,omitempty"`
	Error    string                `json:"error,omitempty"`
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	analyzer := newAnalyzer(cfg, pipeline.WithProgress(func(e pipeline.ProgressEvent) {
		log.Debug(e.Message, zap.String("step", e.Step))
	}))

	reports, err := analyzeFiles(cmd.Context(), analyzer, analyzeInputs, analyzeConcurrency)
	if err != nil {
		return err
	}

	if schemaPath := schemas.ResolveSchemaPath(schemas.ResumeAnalysisSchema); schemaPath != "" {
		if err := validateReports(schemaPath, reports); err != nil {
			var loadErr *schemas.SchemaLoadError
			if !errors.As(err, &loadErr) {
				return err
			}
			log.Warn("could not validate output against schema", zap.Error(err))
		}
	}

	if verbose {
		printer := observability.NewPrinter(cmd.ErrOrStderr())
		for _, r := range reports {
			if r.Analysis != nil {
				printer.PrintAnalysis(r.Analysis)
				printer.PrintRoleMatches(r.Analysis.MatchedRoles)
			}
		}
	}

	if analyzeXLSX != "" {
		rows := make([]export.ReportRow, len(reports))
		for i, r := range reports {
			rows[i] = export.ReportRow{Name: r.File, Analysis: r.Analysis, Err: r.Error}
		}
		if err := export.WriteWorkbook(analyzeXLSX, rows); err != nil {
			return err
		}
		log.Info("wrote spreadsheet report", zap.String("path", analyzeXLSX))
	}

	if analyzeOutput == "" {
		return writeJSON(cmd.OutOrStdout(), reports)
	}

	data, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if dir := filepath.Dir(analyzeOutput); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(analyzeOutput, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Analyzed %d file(s)\nOutput: %s\n", len(reports), analyzeOutput)
	return nil
}

// analyzeFiles ingests every path and analyzes the readable ones as a batch.
// Per-file failures are reported in the result rather than returned.
func analyzeFiles(ctx context.Context, analyzer *pipeline.Analyzer, paths []string, concurrency int) ([]AnalysisReport, error) {
	if len(paths) == 0 {
		return nil, errors.New("at least one --in file is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	reports := make([]AnalysisReport, len(paths))
	docs := make([]pipeline.Document, 0, len(paths))
	index := make([]int, 0, len(paths))

	for i, path := range paths {
		reports[i].File = path
		text, _, err := ingestion.IngestFile(path)
		if err != nil {
			reports[i].Error = err.Error()
			continue
		}
		docs = append(docs, pipeline.Document{Name: path, Text: text})
		index = append(index, i)
	}

	for j, res := range analyzer.AnalyzeBatch(ctx, docs, concurrency) {
		i := index[j]
		if res.Err != nil {
			reports[i].Error = res.Err.Error()
			continue
		}
		reports[i].Analysis = res.Analysis
	}
	return reports, nil
}

func validateReports(schemaPath string, reports []AnalysisReport) error {
	for _, r := range reports {
		if r.Analysis == nil {
			continue
		}
		data, err := json.Marshal(r.Analysis)
		if err != nil {
			return fmt.Errorf("failed to marshal analysis for %s: %w", r.File, err)
		}
		if err := schemas.ValidateBytes(schemaPath, data); err != nil {
			return fmt.Errorf("analysis of %s does not validate against schema: %w", r.File, err)
		}
	}
	return nil
}
