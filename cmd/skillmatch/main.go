// Package main provides the skillmatch command line: resume skill extraction,
// role matching, the REST API server and the analysis queue worker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/config"
	"github.com/jonathan/skill-matcher/internal/logger"
	"github.com/jonathan/skill-matcher/internal/pipeline"
	"github.com/jonathan/skill-matcher/internal/ranking"
)

var (
	configPath string
	verbose    bool
	logJSON    bool
)

var rootCmd = &cobra.Command{
	Use:   "skillmatch",
	Short: "Resume skill extraction and role matching",
	Long: "skillmatch finds known technical skills in resume text and ranks job roles " +
		"by how closely their expected skills overlap with the candidate's.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML, JSON or TOML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print human-readable summaries and debug logs")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "Emit logs as JSON")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration named by --config and applies the
// logging flags on top of it.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("log-json") {
		cfg.Log.JSON = logJSON
	}
	if verbose {
		cfg.Log.Debug = true
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return log, nil
}

// newAnalyzer builds the analyzer with the configured number of role matches.
func newAnalyzer(cfg *config.Config, opts ...pipeline.AnalyzerOption) *pipeline.Analyzer {
	return pipeline.NewAnalyzer(nil, ranking.NewMatcher(nil, ranking.WithLimit(cfg.Matcher.TopN)), opts...)
}
