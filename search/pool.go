package search

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// ErrPoolClosed is returned when submitting to, or closing, a closed pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Job is a unit of work run by a pool worker.
type Job func() error

type task struct {
	job  Job
	done chan<- error
}

// Pool is a fixed set of workers fed through a bounded queue. It is created once and
// reused across searches.
type Pool struct {
	mu     sync.RWMutex
	closed bool
	tasks  chan task
	size   int
	wg     sync.WaitGroup
	log    zerolog.Logger
}

// NewPool starts workers goroutines. The queue holds workers+1 pending jobs.
func NewPool(workers int, log zerolog.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	p := &Pool{
		tasks: make(chan task, workers+1),
		size:  workers,
		log:   log,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.work(i)
	}
	p.log.Debug().Int("workers", workers).Msg("worker pool started")
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int { return p.size }

func (p *Pool) work(id int) {
	defer p.wg.Done()
	for t := range p.tasks {
		t.done <- run(id, t.job)
	}
}

// run calls job, turning a panic into an error so the worker survives.
func run(id int, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("worker %d: panic: %v", id, r)
		}
	}()
	return job()
}

// Submit queues job and returns a channel that receives its result. It blocks while the
// queue is full, and gives up with ctx's error if ctx is done first.
func (p *Pool) Submit(ctx context.Context, job Job) (<-chan error, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrPoolClosed
	}
	done := make(chan error, 1)
	select {
	case p.tasks <- task{job: job, done: done}:
		return done, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close stops accepting jobs and waits for the queued ones to finish.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return ErrPoolClosed
	}
	p.closed = true
	close(p.tasks)
	p.mu.Unlock()

	p.wg.Wait()
	p.log.Debug().Int("workers", p.size).Msg("worker pool stopped")
	return nil
}
