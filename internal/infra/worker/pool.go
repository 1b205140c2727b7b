// File: internal/infra/worker/pool.go
package worker

import (
	"context"
	"errors"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
)

// A very small worker pool that runs submitted tasks, one task per inbound
// Telegram update. Every worker owns its queue and a key always maps to the
// same worker, so tasks sharing a key run one at a time in submission order.

type Task func(ctx context.Context) error

var (
	ErrNilTask = errors.New("nil task")
	ErrStopped = errors.New("worker pool stopped")
)

type Pool struct {
	wg       sync.WaitGroup
	queues   []chan Task
	quit     chan struct{}
	stopOnce sync.Once
	log      *zerolog.Logger
}

func NewPool(workers int, logger *zerolog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if logger == nil {
		nop := zerolog.Nop()
		logger = &nop
	}
	queues := make([]chan Task, workers)
	for i := range queues {
		queues[i] = make(chan Task, 4)
	}
	return &Pool{queues: queues, quit: make(chan struct{}), log: logger}
}

func (p *Pool) Start(ctx context.Context) {
	for i, q := range p.queues {
		p.wg.Add(1)
		go func(id int, jobs <-chan Task) {
			defer p.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case <-p.quit:
					return
				case task := <-jobs:
					p.run(ctx, id, task)
				}
			}
		}(i, q)
	}
}

// run isolates a task so a panic in one handler does not kill the worker.
func (p *Pool) run(ctx context.Context, id int, task Task) {
	defer func() {
		if rec := recover(); rec != nil {
			p.log.Error().Int("worker", id).Interface("panic", rec).Msg("worker task panicked")
		}
	}()
	if err := task(ctx); err != nil {
		p.log.Warn().Err(err).Int("worker", id).Msg("worker task error")
	}
}

func (p *Pool) Stop() {
	p.stopOnce.Do(func() { close(p.quit) })
	p.wg.Wait()
}

// SubmitWait enqueues task on the worker owning key, blocking until there is
// room, ctx ends or the pool stops.
func (p *Pool) SubmitWait(ctx context.Context, key int64, task Task) error {
	if task == nil {
		return ErrNilTask
	}
	select {
	case <-p.quit:
		return ErrStopped
	default:
	}
	select {
	case p.queues[p.slot(key)] <- task:
		return nil
	case <-p.quit:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) slot(key int64) int {
	return int(uint64(key) % uint64(len(p.queues)))
}
