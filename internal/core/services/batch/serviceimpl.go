package batch

import (
	"context"
	"fmt"
	"time"

	"gitlab.com/hashburst.net/internal/adapter/sysinfo"
	"gitlab.com/hashburst.net/internal/config"
	"gitlab.com/hashburst.net/internal/core/ports/primary"
	"gitlab.com/hashburst.net/internal/core/ports/secondary"
	"gitlab.com/hashburst.net/internal/domain"
	"gitlab.com/hashburst.net/internal/workerpool"
)

// autoParallelThreshold is the item count above which auto mode selects the
// parallel path. Below it the pool handoff costs more than it saves.
// Policy constant, not part of the external contract.
const autoParallelThreshold = 8

var _ IBatchService = &BatchService{}

// BatchService implements the dispatch engine over the process-wide pool
type BatchService struct {
	pool   *workerpool.Pool
	hasher secondary.Hasher
	cfg    *config.WorkerPoolConfig
	logger primary.Logger
}

// NewBatchService creates a new batch compute service
func NewBatchService(pool *workerpool.Pool, hasher secondary.Hasher, cfg *config.WorkerPoolConfig, logger primary.Logger) *BatchService {
	return &BatchService{
		pool:   pool,
		hasher: hasher,
		cfg:    cfg,
		logger: logger,
	}
}

// Run executes a validated job under its resolved mode. The result slice is
// ordered by input index regardless of completion order. A per-item compute
// failure does not abort the batch; it surfaces as the Err of that index
// while every other index keeps its result.
func (s *BatchService) Run(ctx context.Context, job domain.ValidatedJob) (*domain.BatchReport, error) {
	items := buildItems(job.Count)
	mode := s.resolveMode(job)

	identities := domain.NewWorkerSet()
	start := time.Now()

	var results []domain.ItemResult
	var err error
	switch mode {
	case domain.ModeSequential:
		results = s.runSequential(ctx, items)
	default:
		results, err = s.runParallel(ctx, items, identities)
	}
	if err != nil {
		return nil, err
	}

	durationMs := time.Since(start).Milliseconds()

	threadsUsed := 1
	if mode == domain.ModeParallel {
		threadsUsed = identities.Size()
	}

	report := &domain.BatchReport{
		Results: results,
		Metrics: s.collectMetrics(job, results, mode, durationMs, threadsUsed),
	}

	s.logger.Debug("Batch complete",
		"mode", mode,
		"count", job.Count,
		"durationMs", durationMs,
		"threadsUsed", threadsUsed,
	)
	return report, nil
}

// resolveMode maps auto onto a concrete mode. Parallel is selected only when
// the batch is large enough to amortize pool dispatch and the pool actually
// has more than one worker.
func (s *BatchService) resolveMode(job domain.ValidatedJob) domain.Mode {
	if job.Mode != domain.ModeAuto {
		return job.Mode
	}
	if job.Count > autoParallelThreshold && s.cfg.Workers > 1 {
		return domain.ModeParallel
	}
	return domain.ModeSequential
}

// runSequential processes items one at a time, in index order, on the
// invocation's own goroutine. No pool involvement.
func (s *BatchService) runSequential(ctx context.Context, items []string) []domain.ItemResult {
	results := make([]domain.ItemResult, len(items))
	for i, item := range items {
		hash, err := s.hasher.Compute(ctx, item)
		results[i] = domain.ItemResult{Index: i, Hash: hash, Err: err}
	}
	return results
}

// runParallel fans the items out across the pool. Each slot of the result
// slice is written by exactly one worker, so no locking is needed beyond the
// identity set. Every worker that executes at least one item registers its
// identity before the batch is considered done.
func (s *BatchService) runParallel(ctx context.Context, items []string, identities *domain.WorkerSet) ([]domain.ItemResult, error) {
	results := make([]domain.ItemResult, len(items))
	tasks := make([]workerpool.Task, len(items))
	for i, item := range items {
		i, item := i, item
		tasks[i] = func(workerID int) {
			identities.Add(workerID)
			hash, err := s.hasher.Compute(ctx, item)
			results[i] = domain.ItemResult{Index: i, Hash: hash, Err: err}
		}
	}

	if err := s.pool.Execute(tasks); err != nil {
		return nil, fmt.Errorf("failed to dispatch batch: %w", err)
	}
	return results, nil
}

// collectMetrics assembles the invocation metrics. Duration covers dispatch
// start to last result collected; validation time is excluded. Workers and
// detected CPUs are copies of the resolved configuration, not recomputed.
func (s *BatchService) collectMetrics(job domain.ValidatedJob, results []domain.ItemResult, mode domain.Mode, durationMs int64, threadsUsed int) domain.BatchMetrics {
	processed := 0
	for _, r := range results {
		if r.Err == nil {
			processed++
		}
	}

	return domain.BatchMetrics{
		Processed:    processed,
		DurationMs:   durationMs,
		Mode:         mode,
		Workers:      s.cfg.Workers,
		DetectedCPUs: s.cfg.DetectedCPUs,
		AvgMsPerItem: float64(durationMs) / float64(job.Count),
		MemoryUsedKB: sysinfo.ResidentMemoryKB(),
		ThreadsUsed:  threadsUsed,
	}
}

// buildItems generates the batch's work items, one per index.
func buildItems(count int) []string {
	items := make([]string, count)
	for i := range items {
		items[i] = fmt.Sprintf("password_%06d", i)
	}
	return items
}
