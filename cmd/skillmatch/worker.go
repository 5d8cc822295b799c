package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/queue"
	"github.com/jonathan/skill-matcher/internal/storage"
)

var workerCount int

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume resume analysis jobs from RabbitMQ",
	Long: "Run queue consumers that download uploaded resumes, analyze them, save the result " +
		"on the user and publish status updates.",
	RunE: runWorker,
}

func init() {
	workerCmd.Flags().IntVar(&workerCount, "workers", 0, "Number of concurrent consumers (overrides queue.workers)")
	rootCmd.AddCommand(workerCmd)
}

func runWorker(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("workers") {
		cfg.Queue.Workers = workerCount
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return errors.New("database.url (or DATABASE_URL) is required")
	}
	if cfg.Queue.URL == "" {
		return errors.New("queue.url (or RABBITMQ_URL) is required")
	}

	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	store, err := storage.NewFromConfig(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to create resume store: %w", err)
	}

	publisher, err := queue.Dial(cfg.Queue.URL, cfg.Queue.Name, cfg.Queue.Exchange)
	if err != nil {
		return err
	}
	defer publisher.Close()

	processor := queue.NewAnalysisProcessor(store, newAnalyzer(cfg), database, log)
	worker := queue.NewWorker(queue.WorkerConfig{
		URL:      cfg.Queue.URL,
		Queue:    cfg.Queue.Name,
		Exchange: cfg.Queue.Exchange,
		Workers:  cfg.Queue.Workers,
		Prefetch: cfg.Queue.Prefetch,
	}, processor, database, publisher, log)

	log.Info("worker started",
		zap.String("queue", cfg.Queue.Name),
		zap.Int("workers", cfg.Queue.Workers))

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("worker stopped")
	return nil
}
