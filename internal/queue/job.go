// Package queue moves resume analyses off the request path: the server
// publishes jobs to RabbitMQ and a pool of workers consumes them.
package queue

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skill-matcher/internal/db"
)

// Job asks a worker to analyze a stored resume.
type Job struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	ObjectKey  string    `json:"objectKey"`
	MIME       string    `json:"mime"`
	EnqueuedAt time.Time `json:"enqueuedAt"`
}

// Validate checks the fields a worker needs.
func (j Job) Validate() error {
	if j.ID == uuid.Nil {
		return fmt.Errorf("job id is empty")
	}
	if j.UserID == uuid.Nil {
		return fmt.Errorf("job %s has no user", j.ID)
	}
	if j.ObjectKey == "" {
		return fmt.Errorf("job %s has no object key", j.ID)
	}
	return nil
}

// StatusUpdate is broadcast on the updates exchange whenever a job changes
// state.
type StatusUpdate struct {
	JobID        uuid.UUID    `json:"jobId"`
	UserID       uuid.UUID    `json:"userId"`
	Status       db.JobStatus `json:"status"`
	Message      string       `json:"message"`
	SelectedRole string       `json:"selectedRole,omitempty"`
	Timestamp    time.Time    `json:"timestamp"`
}

// RoutingKey is the topic key subscribers bind to for one job.
func RoutingKey(jobID uuid.UUID) string {
	return "job." + jobID.String()
}
