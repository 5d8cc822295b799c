package pipeline

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-matcher/internal/types"
)

// Document is a named piece of resume text.
type Document struct {
	Name string
	Text string
}

// BatchResult holds the outcome for one document of a batch.
type BatchResult struct {
	Name     string
	Analysis *types.ResumeAnalysis
	Err      error
}

// AnalyzeBatch analyzes docs with at most concurrency workers. Results are in
// input order; per-document failures are recorded in BatchResult.Err rather
// than aborting the batch. A cancelled context marks the remaining documents
// with the context error.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, docs []Document, concurrency int) []BatchResult {
	if concurrency < 1 {
		concurrency = runtime.GOMAXPROCS(0)
	}

	results := make([]BatchResult, len(docs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, doc := range docs {
		results[i].Name = doc.Name
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			results[i].Analysis, results[i].Err = a.Analyze(doc.Text)
			return nil
		})
	}

	_ = g.Wait()
	return results
}
