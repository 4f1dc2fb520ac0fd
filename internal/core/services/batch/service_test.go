package batch

import (
	"context"
	"fmt"
	"testing"
	"time"

	"gitlab.com/hashburst.net/internal/config"
	"gitlab.com/hashburst.net/internal/domain"
	"gitlab.com/hashburst.net/internal/workerpool"
)

type noopLogger struct{}

func (noopLogger) Info(msg string, args ...interface{})  {}
func (noopLogger) Error(msg string, args ...interface{}) {}
func (noopLogger) Debug(msg string, args ...interface{}) {}
func (noopLogger) Warn(msg string, args ...interface{})  {}

// fakeHasher is a deterministic, fast stand-in for the bcrypt capability.
type fakeHasher struct {
	delay  time.Duration
	failOn map[string]error
}

func (f *fakeHasher) Compute(_ context.Context, item string) (string, error) {
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if err, ok := f.failOn[item]; ok {
		return "", err
	}
	return "hashed:" + item, nil
}

func newTestService(t *testing.T, workers int, hasher *fakeHasher) *BatchService {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	cfg := &config.WorkerPoolConfig{Workers: workers, DetectedCPUs: workers}
	pool := workerpool.New(cfg, noopLogger{})
	if err := pool.Init(ctx); err != nil {
		t.Fatalf("pool init: %v", err)
	}
	return NewBatchService(pool, hasher, cfg, noopLogger{})
}

func assertOrdered(t *testing.T, results []domain.ItemResult, count int) {
	t.Helper()
	if len(results) != count {
		t.Fatalf("expected %d results, got %d", count, len(results))
	}
	for i, r := range results {
		if r.Index != i {
			t.Fatalf("result %d carries index %d, order broken", i, r.Index)
		}
		if r.Err == nil && r.Hash != fmt.Sprintf("hashed:password_%06d", i) {
			t.Fatalf("result %d has wrong hash %q", i, r.Hash)
		}
	}
}

func TestRun_Sequential(t *testing.T) {
	svc := newTestService(t, 4, &fakeHasher{})

	report, err := svc.Run(context.Background(), domain.ValidatedJob{Count: 5, Mode: domain.ModeSequential})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertOrdered(t, report.Results, 5)
	if report.Metrics.Processed != 5 {
		t.Errorf("expected 5 processed, got %d", report.Metrics.Processed)
	}
	if report.Metrics.ThreadsUsed != 1 {
		t.Errorf("sequential mode must report 1 thread, got %d", report.Metrics.ThreadsUsed)
	}
	if report.Metrics.Mode != domain.ModeSequential {
		t.Errorf("expected sequential mode reported, got %q", report.Metrics.Mode)
	}
}

func TestRun_Parallel_OrderPreserved(t *testing.T) {
	svc := newTestService(t, 4, &fakeHasher{delay: time.Millisecond})

	const count = 100
	report, err := svc.Run(context.Background(), domain.ValidatedJob{Count: count, Mode: domain.ModeParallel})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assertOrdered(t, report.Results, count)
	if report.Metrics.Processed != count {
		t.Errorf("expected %d processed, got %d", count, report.Metrics.Processed)
	}
}

func TestRun_Parallel_ThreadsBounded(t *testing.T) {
	const workers = 4
	svc := newTestService(t, workers, &fakeHasher{})

	for _, count := range []int{1, 2, 50} {
		report, err := svc.Run(context.Background(), domain.ValidatedJob{Count: count, Mode: domain.ModeParallel})
		if err != nil {
			t.Fatalf("count %d: unexpected error: %v", count, err)
		}
		limit := min(workers, count)
		if got := report.Metrics.ThreadsUsed; got < 1 || got > limit {
			t.Errorf("count %d: threads used %d outside [1,%d]", count, got, limit)
		}
	}
}

// Scheduling is non-deterministic; at least one of the repeated trials must
// show more than one worker executing items.
func TestRun_Parallel_MultipleThreadsObserved(t *testing.T) {
	svc := newTestService(t, 4, &fakeHasher{delay: 2 * time.Millisecond})

	for trial := 0; trial < 5; trial++ {
		report, err := svc.Run(context.Background(), domain.ValidatedJob{Count: 32, Mode: domain.ModeParallel})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if report.Metrics.ThreadsUsed > 1 {
			return
		}
	}
	t.Fatal("expected threads_used > 1 in at least one of 5 parallel trials")
}

func TestRun_SequentialAndParallelProduceSameResults(t *testing.T) {
	svc := newTestService(t, 4, &fakeHasher{})
	job := domain.ValidatedJob{Count: 20}

	job.Mode = domain.ModeSequential
	seq, err := svc.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("sequential: %v", err)
	}

	job.Mode = domain.ModeParallel
	par, err := svc.Run(context.Background(), job)
	if err != nil {
		t.Fatalf("parallel: %v", err)
	}

	for i := range seq.Results {
		if seq.Results[i].Hash != par.Results[i].Hash {
			t.Fatalf("index %d: sequential %q != parallel %q", i, seq.Results[i].Hash, par.Results[i].Hash)
		}
	}
}

func TestRun_AutoBelowThreshold(t *testing.T) {
	svc := newTestService(t, 4, &fakeHasher{})

	report, err := svc.Run(context.Background(), domain.ValidatedJob{Count: autoParallelThreshold, Mode: domain.ModeAuto})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Metrics.Mode != domain.ModeSequential {
		t.Errorf("auto at threshold must resolve to sequential, got %q", report.Metrics.Mode)
	}
	if report.Metrics.ThreadsUsed != 1 {
		t.Errorf("expected 1 thread, got %d", report.Metrics.ThreadsUsed)
	}
	assertOrdered(t, report.Results, autoParallelThreshold)
}

func TestRun_AutoAboveThreshold(t *testing.T) {
	svc := newTestService(t, 4, &fakeHasher{})

	count := autoParallelThreshold + 1
	report, err := svc.Run(context.Background(), domain.ValidatedJob{Count: count, Mode: domain.ModeAuto})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Metrics.Mode != domain.ModeParallel {
		t.Errorf("auto above threshold must resolve to parallel, got %q", report.Metrics.Mode)
	}
	assertOrdered(t, report.Results, count)
}

func TestRun_AutoSingleWorkerStaysSequential(t *testing.T) {
	svc := newTestService(t, 1, &fakeHasher{})

	report, err := svc.Run(context.Background(), domain.ValidatedJob{Count: 100, Mode: domain.ModeAuto})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Metrics.Mode != domain.ModeSequential {
		t.Errorf("auto with a single worker must resolve to sequential, got %q", report.Metrics.Mode)
	}
}

func TestRun_PerItemFailureDoesNotAbortBatch(t *testing.T) {
	failErr := fmt.Errorf("simulated compute failure")
	hasher := &fakeHasher{failOn: map[string]error{
		"password_000003": failErr,
	}}
	svc := newTestService(t, 4, hasher)

	for _, mode := range []domain.Mode{domain.ModeSequential, domain.ModeParallel} {
		report, err := svc.Run(context.Background(), domain.ValidatedJob{Count: 10, Mode: mode})
		if err != nil {
			t.Fatalf("mode %s: unexpected error: %v", mode, err)
		}

		failed := report.FailedIndices()
		if len(failed) != 1 || failed[0] != 3 {
			t.Fatalf("mode %s: expected failed indices [3], got %v", mode, failed)
		}
		if report.Metrics.Processed != 9 {
			t.Errorf("mode %s: expected 9 processed, got %d", mode, report.Metrics.Processed)
		}
		for _, r := range report.Results {
			if r.Index != 3 && r.Err != nil {
				t.Errorf("mode %s: index %d unexpectedly failed: %v", mode, r.Index, r.Err)
			}
		}
	}
}

func TestRun_MetricsCopyResolvedConfig(t *testing.T) {
	const workers = 3
	svc := newTestService(t, workers, &fakeHasher{})

	for _, mode := range []domain.Mode{domain.ModeSequential, domain.ModeParallel} {
		report, err := svc.Run(context.Background(), domain.ValidatedJob{Count: 4, Mode: mode})
		if err != nil {
			t.Fatalf("mode %s: unexpected error: %v", mode, err)
		}
		if report.Metrics.Workers != workers {
			t.Errorf("mode %s: expected workers %d, got %d", mode, workers, report.Metrics.Workers)
		}
		if report.Metrics.DetectedCPUs != workers {
			t.Errorf("mode %s: expected detected CPUs %d, got %d", mode, workers, report.Metrics.DetectedCPUs)
		}
		if report.Metrics.AvgMsPerItem != float64(report.Metrics.DurationMs)/4 {
			t.Errorf("mode %s: avg ms per item not duration/count", mode)
		}
	}
}
