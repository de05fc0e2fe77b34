// Package workerpool provides a bounded pool for CPU-heavy extraction
// work so OCR never runs inline on a request goroutine.
package workerpool

import (
	"context"
	"sync"

	"github.com/custodia-labs/deskhub/internal/core/domain"
)

// Task produces a text result. It must honour ctx cancellation.
type Task func(ctx context.Context) (string, error)

type job struct {
	ctx  context.Context
	task Task
	done chan result
}

type result struct {
	text string
	err  error
}

// Pool runs tasks on a fixed set of workers with a bounded queue.
// Submit applies back-pressure: when the queue is full it rejects with
// domain.ErrPoolSaturated instead of queueing unboundedly.
type Pool struct {
	jobs chan job
	wg   sync.WaitGroup
	once sync.Once
}

// New creates a pool with the given worker count and queue size.
// Non-positive values fall back to 1 worker / 0 queue slots.
func New(workers, queueSize int) *Pool {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}

	p := &Pool{jobs: make(chan job, queueSize)}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit enqueues a task and waits for its result. It returns
// domain.ErrPoolSaturated immediately when the queue is full, and the
// context error if ctx ends before the task completes.
func (p *Pool) Submit(ctx context.Context, task Task) (string, error) {
	j := job{ctx: ctx, task: task, done: make(chan result, 1)}

	select {
	case p.jobs <- j:
	default:
		return "", domain.ErrPoolSaturated
	}

	select {
	case res := <-j.done:
		return res.text, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Close stops accepting work and waits for in-flight tasks to finish.
func (p *Pool) Close() {
	p.once.Do(func() { close(p.jobs) })
	p.wg.Wait()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.jobs {
		if err := j.ctx.Err(); err != nil {
			j.done <- result{err: err}
			continue
		}
		text, err := j.task(j.ctx)
		j.done <- result{text: text, err: err}
	}
}
