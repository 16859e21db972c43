// Package workerpool runs detached jobs on a fixed set of goroutines fed by a
// bounded queue.
package workerpool

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var (
	ErrPoolClosed = errors.New("worker pool is closed")
	ErrQueueFull  = errors.New("worker pool queue is full")
)

// Job receives the pool context, which is cancelled only when Shutdown gives up
// waiting.
type Job func(ctx context.Context)

type Config struct {
	Workers   int
	QueueSize int
	// EnqueueTimeout bounds how long Submit waits for queue space.
	EnqueueTimeout time.Duration
	// OnPanic is called with the recovered value when a job panics.
	OnPanic func(recovered interface{})
}

func DefaultConfig() Config {
	return Config{Workers: 4, QueueSize: 64, EnqueueTimeout: 2 * time.Second}
}

type Pool struct {
	cfg  Config
	jobs chan Job

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	pendingMu sync.Mutex
	pending   int
	idle      chan struct{}
}

func New(cfg Config) *Pool {
	def := DefaultConfig()
	if cfg.Workers <= 0 {
		cfg.Workers = def.Workers
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = def.QueueSize
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = def.EnqueueTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())
	idle := make(chan struct{})
	close(idle)

	p := &Pool{
		cfg:    cfg,
		jobs:   make(chan Job, cfg.QueueSize),
		ctx:    ctx,
		cancel: cancel,
		idle:   idle,
	}
	p.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for job := range p.jobs {
		p.runJob(job)
		p.done()
	}
}

func (p *Pool) runJob(job Job) {
	defer func() {
		if r := recover(); r != nil && p.cfg.OnPanic != nil {
			p.cfg.OnPanic(r)
		}
	}()
	job(p.ctx)
}

// Submit enqueues job. It waits at most EnqueueTimeout for queue space and
// returns ErrQueueFull after that, or ErrPoolClosed once Shutdown has started.
func (p *Pool) Submit(ctx context.Context, job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}

	p.add()
	select {
	case p.jobs <- job:
		return nil
	default:
	}

	timer := time.NewTimer(p.cfg.EnqueueTimeout)
	defer timer.Stop()
	select {
	case p.jobs <- job:
		return nil
	case <-timer.C:
		p.done()
		return ErrQueueFull
	case <-ctx.Done():
		p.done()
		return fmt.Errorf("submit job: %w", ctx.Err())
	}
}

func (p *Pool) add() {
	p.pendingMu.Lock()
	defer p.pendingMu.Unlock()
	if p.pending == 0 {
		p.idle = make(chan struct{})
	}
	p.pending++
}

func (p *Pool) done() {
	p.pendingMu.Lock()
	defer p.pendingMu.Unlock()
	p.pending--
	if p.pending == 0 {
		close(p.idle)
	}
}

// Pending counts queued and running jobs.
func (p *Pool) Pending() int {
	p.pendingMu.Lock()
	defer p.pendingMu.Unlock()
	return p.pending
}

// Flush blocks until no job is queued or running.
func (p *Pool) Flush(ctx context.Context) error {
	p.pendingMu.Lock()
	idle := p.idle
	p.pendingMu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Shutdown stops accepting jobs and waits for queued ones to finish. When ctx
// expires first the pool context is cancelled and ctx.Err() is returned.
func (p *Pool) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.jobs)
	}
	p.mu.Unlock()

	finished := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		return ctx.Err()
	}
}
