package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/logger"
)

// StatusStore records job state transitions.
type StatusStore interface {
	UpdateAnalysisJobStatus(ctx context.Context, id uuid.UUID, status db.JobStatus, errMsg string) error
}

// UpdatePublisher broadcasts job state transitions.
type UpdatePublisher interface {
	PublishUpdate(ctx context.Context, update StatusUpdate) error
}

// Outcome tells the consumer how to settle a delivery.
type Outcome int

const (
	// Ack removes the message; the job reached a terminal state.
	Ack Outcome = iota
	// Requeue returns the message to the queue for another attempt.
	Requeue
	// Discard drops a message that can never be processed.
	Discard
)

func (o Outcome) String() string {
	switch o {
	case Ack:
		return "ack"
	case Requeue:
		return "requeue"
	case Discard:
		return "discard"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// WorkerConfig holds broker settings for a worker pool.
type WorkerConfig struct {
	URL      string
	Queue    string
	Exchange string
	Workers  int
	Prefetch int
}

// Worker is a pool of consumers on the analysis queue.
type Worker struct {
	cfg       WorkerConfig
	processor Processor
	statuses  StatusStore
	updates   UpdatePublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewWorker creates a worker pool. updates may be nil to skip broadcasts.
func NewWorker(cfg WorkerConfig, processor Processor, statuses StatusStore, updates UpdatePublisher, log *zap.Logger) *Worker {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Prefetch < 1 {
		cfg.Prefetch = 1
	}
	return &Worker{
		cfg:       cfg,
		processor: processor,
		statuses:  statuses,
		updates:   updates,
		logger:    logger.OrNop(log),
		now:       time.Now,
	}
}

// Run starts cfg.Workers consumers and blocks until ctx is cancelled or a
// consumer fails.
func (w *Worker) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)
	for i := range w.cfg.Workers {
		g.Go(func() error {
			return w.consume(gCtx, i+1)
		})
	}
	return g.Wait()
}

func (w *Worker) consume(ctx context.Context, id int) error {
	log := w.logger.With(zap.Int("worker", id))

	conn, err := amqp.Dial(w.cfg.URL)
	if err != nil {
		return fmt.Errorf("error dialling rabbitmq: %w", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("error connecting to rabbitmq channel: %w", err)
	}
	defer ch.Close()

	if err := declare(ch, w.cfg.Queue, w.cfg.Exchange); err != nil {
		return err
	}
	if err := ch.Qos(w.cfg.Prefetch, 0, false); err != nil {
		return fmt.Errorf("failed to set prefetch: %w", err)
	}

	msgs, err := ch.Consume(
		w.cfg.Queue, // queue name
		"",          // consumer tag
		false,       // auto-ack
		false,       // exclusive
		false,       // no-local
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("error consuming rabbitmq messages: %w", err)
	}

	log.Info("worker started", zap.String("queue", w.cfg.Queue))
	for {
		select {
		case <-ctx.Done():
			log.Info("worker stopping")
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("rabbitmq delivery channel closed")
			}
			w.settle(log, msg, w.Handle(ctx, msg.Body))
		}
	}
}

func (w *Worker) settle(log *zap.Logger, msg amqp.Delivery, outcome Outcome) {
	var err error
	switch outcome {
	case Ack:
		err = msg.Ack(false)
	case Requeue:
		err = msg.Nack(false, true)
	case Discard:
		err = msg.Nack(false, false)
	}
	if err != nil {
		log.Warn("failed to settle delivery", zap.Stringer("outcome", outcome), zap.Error(err))
	}
}

// Handle runs one job message end to end and reports how to settle it.
// Analysis failures are terminal: the job is marked failed and acked.
func (w *Worker) Handle(ctx context.Context, body []byte) Outcome {
	var job Job
	if err := json.Unmarshal(body, &job); err != nil {
		w.logger.Error("error unmarshalling job message", zap.Error(err))
		return Discard
	}
	if err := job.Validate(); err != nil {
		w.logger.Error("invalid job message", zap.Error(err))
		return Discard
	}

	log := w.logger.With(
		zap.String(logger.FieldJobID, job.ID.String()),
		zap.String(logger.FieldUserID, job.UserID.String()),
		zap.String(logger.FieldObjectKey, job.ObjectKey),
	)

	if err := w.statuses.UpdateAnalysisJobStatus(ctx, job.ID, db.JobProcessing, ""); err != nil {
		log.Error("failed to mark job processing", zap.Error(err))
		return Requeue
	}
	w.notify(ctx, log, job, db.JobProcessing, "analysis started", "")

	start := w.now()
	analysis, err := w.processor.Process(ctx, job)
	if err != nil {
		log.Warn("analysis failed", zap.Error(err))
		if uerr := w.statuses.UpdateAnalysisJobStatus(ctx, job.ID, db.JobFailed, err.Error()); uerr != nil {
			log.Error("failed to mark job failed", zap.Error(uerr))
		}
		w.notify(ctx, log, job, db.JobFailed, err.Error(), "")
		return Ack
	}

	if err := w.statuses.UpdateAnalysisJobStatus(ctx, job.ID, db.JobCompleted, ""); err != nil {
		log.Error("failed to mark job completed", zap.Error(err))
	}
	w.notify(ctx, log, job, db.JobCompleted, "analysis completed", analysis.SelectedRole)
	log.Info("analysis completed",
		zap.Int("skills", len(analysis.ExtractedSkills)),
		zap.String("selected_role", analysis.SelectedRole),
		zap.Duration("elapsed", w.now().Sub(start)),
	)
	return Ack
}

func (w *Worker) notify(ctx context.Context, log *zap.Logger, job Job, status db.JobStatus, message, role string) {
	if w.updates == nil {
		return
	}
	err := w.updates.PublishUpdate(ctx, StatusUpdate{
		JobID:        job.ID,
		UserID:       job.UserID,
		Status:       status,
		Message:      message,
		SelectedRole: role,
		Timestamp:    w.now().UTC(),
	})
	if err != nil {
		log.Warn("failed to publish update", zap.Error(err))
	}
}
