// Package background runs fire-and-forget tasks on a bounded set of workers.
//
// Tasks are detached from the cancellation of the submitting request but keep
// its values (trace context, request-scoped loggers). Failures and panics are
// sent to the pool's error channel, which is drained into the structured log.
// Close stops intake and waits until every accepted task has finished.
package background

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrPoolClosed is reported for tasks submitted after Close.
var ErrPoolClosed = errors.New("background pool is closed")

// Task is a unit of background work.
type Task func(ctx context.Context) error

// TaskError is a failed task as reported on the error channel.
type TaskError struct {
	Task string
	Err  error
}

func (e TaskError) Error() string {
	return fmt.Sprintf("task %s: %v", e.Task, e.Err)
}

func (e TaskError) Unwrap() error {
	return e.Err
}

type submission struct {
	ctx  context.Context
	name string
	task Task
}

// Pool executes submitted tasks on a fixed number of workers. When the queue
// is full the task runs on its own goroutine instead of being dropped or
// blocking the caller.
//
// Tasks submitted with SubmitOrdered under the same key run one after another
// in submission order, on a lane goroutine that exits once the key has no
// pending work.
type Pool struct {
	queue  chan submission
	errs   chan TaskError
	logger *slog.Logger
	tracer trace.Tracer

	mu     sync.RWMutex
	closed bool

	laneMu sync.Mutex
	lanes  map[string][]submission

	workers  sync.WaitGroup
	overflow sync.WaitGroup
	ordered  sync.WaitGroup
	drained  chan struct{}
}

// NewPool starts workers goroutines reading from a queue of queueSize
// submissions, plus one goroutine logging task errors.
func NewPool(workers, queueSize int, logger *slog.Logger) *Pool {
	workers = max(workers, 1)
	queueSize = max(queueSize, 0)

	p := &Pool{
		queue:   make(chan submission, queueSize),
		errs:    make(chan TaskError, max(queueSize, 16)),
		logger:  logger.With("component", "background_pool"),
		tracer:  otel.Tracer("fulfillment/background"),
		lanes:   make(map[string][]submission),
		drained: make(chan struct{}),
	}

	p.workers.Add(workers)
	for range workers {
		go p.work()
	}
	go p.logErrors()

	return p
}

// Submit schedules task under name. It never blocks on a busy pool.
func (p *Pool) Submit(ctx context.Context, name string, task Task) {
	s := submission{ctx: context.WithoutCancel(ctx), name: name, task: task}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.ErrorContext(ctx, "Background task rejected", "task", name, "error", ErrPoolClosed)
		return
	}

	select {
	case p.queue <- s:
	default:
		p.overflow.Add(1)
		go func() {
			defer p.overflow.Done()
			p.run(s)
		}()
	}
}

// SubmitOrdered schedules task behind every earlier task submitted under key.
// Like Submit it never blocks.
func (p *Pool) SubmitOrdered(ctx context.Context, key, name string, task Task) {
	s := submission{ctx: context.WithoutCancel(ctx), name: name, task: task}

	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		p.logger.ErrorContext(ctx, "Background task rejected", "task", name, "key", key, "error", ErrPoolClosed)
		return
	}

	p.laneMu.Lock()
	pending, active := p.lanes[key]
	p.lanes[key] = append(pending, s)
	p.laneMu.Unlock()

	if !active {
		p.ordered.Add(1)
		go p.drainLane(key)
	}
}

func (p *Pool) drainLane(key string) {
	defer p.ordered.Done()
	for {
		p.laneMu.Lock()
		pending := p.lanes[key]
		if len(pending) == 0 {
			delete(p.lanes, key)
			p.laneMu.Unlock()
			return
		}
		next := pending[0]
		p.lanes[key] = pending[1:]
		p.laneMu.Unlock()

		p.run(next)
	}
}

// Close stops accepting tasks and waits for accepted ones to finish or for
// ctx to expire.
func (p *Pool) Close(ctx context.Context) error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.workers.Wait()
		p.overflow.Wait()
		p.ordered.Wait()
		close(p.errs)
		<-p.drained
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) work() {
	defer p.workers.Done()
	for s := range p.queue {
		p.run(s)
	}
}

func (p *Pool) run(s submission) {
	ctx, span := p.tracer.Start(s.ctx, "background."+s.name, trace.WithAttributes(attribute.String("task", s.name)))
	defer span.End()

	err := safeCall(ctx, s.task)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		p.errs <- TaskError{Task: s.name, Err: err}
	}
}

func (p *Pool) logErrors() {
	defer close(p.drained)
	for taskErr := range p.errs {
		p.logger.Error("Background task failed", "task", taskErr.Task, "error", taskErr.Err)
	}
}

func safeCall(ctx context.Context, task Task) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return task(ctx)
}
