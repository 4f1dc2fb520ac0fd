package batch

import (
	"context"

	"gitlab.com/hashburst.net/internal/domain"
)

// MaxCount bounds the number of work items a single invocation may request.
const MaxCount = 1000

// IBatchService defines the interface for running batch compute jobs
type IBatchService interface {
	// Run executes a validated job and returns the ordered per-index
	// results together with the invocation metrics.
	Run(ctx context.Context, job domain.ValidatedJob) (*domain.BatchReport, error)
}
