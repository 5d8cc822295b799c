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
	"github.com/jonathan/skill-matcher/internal/server"
	"github.com/jonathan/skill-matcher/internal/storage"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: "Start an HTTP server exposing account, resume upload and role matching endpoints. " +
		"When queue.url is set, uploads can be analyzed asynchronously by the worker.",
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.Database.URL == "" {
		return errors.New("database.url (or DATABASE_URL) is required")
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

	deps := server.Deps{
		DB:       database,
		Store:    store,
		Analyzer: newAnalyzer(cfg),
		Logger:   log,
	}

	if cfg.Queue.URL != "" {
		publisher, err := queue.Dial(cfg.Queue.URL, cfg.Queue.Name, cfg.Queue.Exchange)
		if err != nil {
			return err
		}
		defer publisher.Close()
		deps.Queue = publisher
		log.Info("asynchronous analysis enabled", zap.String("queue", cfg.Queue.Name))
	}

	srv, err := server.New(cfg, deps)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
