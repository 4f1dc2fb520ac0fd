package workerpool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"gitlab.com/hashburst.net/internal/config"
	"gitlab.com/hashburst.net/internal/core/ports/primary"
	"gitlab.com/hashburst.net/internal/static/errs"
)

// Task is one unit of pool work. The worker that claims it passes its own
// identity (1..Workers) into the closure so that callers can record which
// workers actually executed items.
type Task func(workerID int)

// Pool is the process-wide bounded compute pool. It is built exactly once
// per process via Init and shared by every invocation the process handles;
// nothing may resize or replace it afterwards. The process exit reclaims it,
// there is no teardown API.
type Pool struct {
	cfg    *config.WorkerPoolConfig
	logger primary.Logger

	once       sync.Once
	initErr    error
	buildCount atomic.Int64
	started    atomic.Bool
	tasks      chan Task
	done       chan struct{}
}

// New creates an unbuilt pool handle. No goroutines are started until Init.
func New(cfg *config.WorkerPoolConfig, logger primary.Logger) *Pool {
	return &Pool{
		cfg:    cfg,
		logger: logger,
	}
}

// Init builds the worker set exactly once, no matter how many invocations
// call it or how they race. The first caller performs the build; everyone
// else observes the same outcome. A failed build is fatal for the cold
// start: the error is stored and returned to every caller, the pool never
// enters a partial state.
//
// The context bounds the workers' lifetime. In production it is the
// process's background context, so workers run until the process dies.
func (p *Pool) Init(ctx context.Context) error {
	p.once.Do(func() {
		workers := 0
		if p.cfg != nil {
			workers = p.cfg.Workers
		}
		if workers < 1 {
			p.initErr = fmt.Errorf("%w: got %d", errs.PoolSize, workers)
			return
		}

		p.buildCount.Add(1)
		p.tasks = make(chan Task)
		p.done = make(chan struct{})

		var g errgroup.Group
		for i := 1; i <= workers; i++ {
			i := i
			g.Go(func() error {
				return p.worker(ctx, i)
			})
		}

		go func() {
			_ = g.Wait()
			close(p.done)
		}()

		p.started.Store(true)
		p.logger.Info("Worker pool initialized", "workers", workers, "detectedCpus", p.cfg.DetectedCPUs)
	})

	return p.initErr
}

// Execute runs one batch of tasks on the pool and blocks until every task
// has completed. Idle workers pull the next unclaimed task off a shared
// queue, so uneven per-task latency rebalances dynamically instead of
// leaving some workers backlogged while others sit idle.
func (p *Pool) Execute(tasks []Task) error {
	if !p.started.Load() {
		return errs.PoolNotInitialized
	}
	if len(tasks) == 0 {
		return nil
	}

	var wg sync.WaitGroup
	wg.Add(len(tasks))
	for _, task := range tasks {
		task := task
		p.tasks <- func(workerID int) {
			defer wg.Done()
			task(workerID)
		}
	}
	wg.Wait()

	return nil
}

// worker claims and executes tasks until the pool's context is cancelled.
func (p *Pool) worker(ctx context.Context, id int) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-p.tasks:
			task(id)
		}
	}
}

// Workers returns the resolved pool size.
func (p *Pool) Workers() int {
	if p.cfg == nil {
		return 0
	}
	return p.cfg.Workers
}

// BuildCount reports how many times the underlying pool has been built.
// It must never exceed 1 for a process.
func (p *Pool) BuildCount() int64 {
	return p.buildCount.Load()
}

// Done is closed once every worker has exited, which only happens when the
// pool's context is cancelled at process shutdown.
func (p *Pool) Done() <-chan struct{} {
	return p.done
}
