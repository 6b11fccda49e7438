package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Task is a unit of background work. The context belongs to the pool and is
// cancelled on Stop, not tied to any HTTP request.
type Task func(ctx context.Context) error

// Config tunes pool behaviour. Zero values fall back to safe defaults.
type Config struct {
	Workers    int
	Buffer     int
	MaxRetries int
	RetryDelay time.Duration
	Logger     *zap.Logger
}

// Pool runs tasks on a fixed set of goroutines with bounded retry.
type Pool struct {
	name string

	workers    int
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger

	tasks   chan attempt
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
}

type attempt struct {
	task  Task
	tries int
}

// New builds a pool. Call Start before submitting work.
func New(name string, cfg Config) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = cfg.Workers * 8
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}

	return &Pool{
		name:       name,
		workers:    cfg.Workers,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger,
		tasks:      make(chan attempt, cfg.Buffer),
	}
}

// Start launches the workers. Calling it twice is a no-op.
func (p *Pool) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.started {
		return
	}
	p.ctx, p.cancel = context.WithCancel(ctx)
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
	p.started = true
	p.logger.Sugar().Infow("worker pool started", "pool", p.name, "workers", p.workers)
}

// Stop cancels the workers and waits for them to drain.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.started {
		p.mu.Unlock()
		return
	}
	p.cancel()
	p.started = false
	p.mu.Unlock()
	p.wg.Wait()
	p.logger.Sugar().Infow("worker pool stopped", "pool", p.name)
}

// Submit queues a task. It blocks while the buffer is full and fails once the
// pool has stopped.
func (p *Pool) Submit(task Task) error {
	p.mu.Lock()
	ctx := p.ctx
	started := p.started
	p.mu.Unlock()

	if !started {
		return fmt.Errorf("pool %s not started", p.name)
	}
	return p.push(ctx, attempt{task: task})
}

func (p *Pool) push(ctx context.Context, a attempt) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("pool %s stopped: %w", p.name, ctx.Err())
	case p.tasks <- a:
		return nil
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case a := <-p.tasks:
			if err := a.task(p.ctx); err != nil {
				p.retry(a, err)
			}
		}
	}
}

func (p *Pool) retry(a attempt, err error) {
	a.tries++
	if a.tries > p.maxRetries {
		p.logger.Sugar().Errorw("task exceeded retries", "pool", p.name, "error", err)
		return
	}
	p.logger.Sugar().Warnw("task failed, retrying", "pool", p.name, "attempt", a.tries, "error", err)

	go func() {
		timer := time.NewTimer(p.retryDelay)
		defer timer.Stop()
		select {
		case <-p.ctx.Done():
		case <-timer.C:
			if err := p.push(p.ctx, a); err != nil {
				p.logger.Sugar().Errorw("failed to requeue task", "pool", p.name, "error", err)
			}
		}
	}()
}
