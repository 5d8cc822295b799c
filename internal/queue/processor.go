package queue

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/skill-matcher/internal/db"
	"github.com/jonathan/skill-matcher/internal/ingestion"
	"github.com/jonathan/skill-matcher/internal/logger"
	"github.com/jonathan/skill-matcher/internal/pipeline"
	"github.com/jonathan/skill-matcher/internal/storage"
	"github.com/jonathan/skill-matcher/internal/types"
)

// Processor performs the work for one job.
type Processor interface {
	Process(ctx context.Context, job Job) (*types.ResumeAnalysis, error)
}

// ResumeSaver persists a finished analysis on the user.
type ResumeSaver interface {
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	SaveResumeAnalysis(ctx context.Context, userID uuid.UUID, rec db.ResumeRecord) error
}

// AnalysisProcessor downloads the resume, extracts its text, analyzes it and
// saves the result on the user. A rejected upload is deleted from the store,
// and a saved one replaces the user's previous file.
type AnalysisProcessor struct {
	store    storage.Store
	analyzer *pipeline.Analyzer
	saver    ResumeSaver
	logger   *zap.Logger
}

// NewAnalysisProcessor wires the processor's dependencies. log may be nil.
func NewAnalysisProcessor(store storage.Store, analyzer *pipeline.Analyzer, saver ResumeSaver, log *zap.Logger) *AnalysisProcessor {
	return &AnalysisProcessor{store: store, analyzer: analyzer, saver: saver, logger: logger.OrNop(log)}
}

func (p *AnalysisProcessor) Process(ctx context.Context, job Job) (*types.ResumeAnalysis, error) {
	data, err := p.store.Get(ctx, job.ObjectKey)
	if err != nil {
		return nil, fmt.Errorf("file download error: %w", err)
	}

	analysis, err := p.process(ctx, job, data)
	if err != nil {
		p.discard(ctx, job.ObjectKey)
		return nil, err
	}
	return analysis, nil
}

func (p *AnalysisProcessor) process(ctx context.Context, job Job, data []byte) (*types.ResumeAnalysis, error) {
	mime := job.MIME
	if mime == "" {
		mime = ingestion.DetectMIME(job.ObjectKey, data)
	}
	raw, err := ingestion.ExtractText(mime, data)
	if err != nil {
		return nil, fmt.Errorf("text extraction error: %w", err)
	}
	text := ingestion.CleanText(raw)

	analysis, err := p.analyzer.Analyze(text)
	if err != nil {
		return nil, err
	}

	previous := p.previousKey(ctx, job.UserID)
	rec := db.ResumeRecord{ObjectKey: job.ObjectKey, MIME: mime, Text: text, Analysis: analysis}
	if err := p.saver.SaveResumeAnalysis(ctx, job.UserID, rec); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}
	if previous != "" && previous != job.ObjectKey {
		p.discard(ctx, previous)
	}
	return analysis, nil
}

// previousKey returns the user's current resume key. A lookup failure only
// costs the cleanup of the old file, so it is logged and ignored.
func (p *AnalysisProcessor) previousKey(ctx context.Context, userID uuid.UUID) string {
	user, err := p.saver.GetUser(ctx, userID)
	if err != nil {
		p.logger.Warn("failed to look up previous resume", zap.String(logger.FieldUserID, userID.String()), zap.Error(err))
		return ""
	}
	if user == nil {
		return ""
	}
	return user.ResumeKey
}

func (p *AnalysisProcessor) discard(ctx context.Context, key string) {
	if err := p.store.Delete(ctx, key); err != nil {
		p.logger.Warn("failed to delete stored resume", zap.String(logger.FieldObjectKey, key), zap.Error(err))
	}
}
