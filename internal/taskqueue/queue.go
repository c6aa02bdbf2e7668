package taskqueue

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

type Task func(ctx context.Context) error

type job struct {
	name string
	run  Task
}

// Queue runs submitted tasks on a fixed pool of workers. Submission never
// blocks; tasks are best effort and never retried.
type Queue struct {
	log    *zap.SugaredLogger
	jobs   chan job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewQueue(log *zap.SugaredLogger, workers, size int) *Queue {
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &Queue{
		log:    log,
		jobs:   make(chan job, size),
		ctx:    ctx,
		cancel: cancel,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
	return q
}

// Submit enqueues task and reports whether it was accepted. A full or closed
// queue drops the task.
func (q *Queue) Submit(name string, task Task) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		q.log.Warnf("task queue closed, dropping %s", name)
		return false
	}
	select {
	case q.jobs <- job{name: name, run: task}:
		return true
	default:
		q.log.Warnf("task queue full, dropping %s", name)
		return false
	}
}

// Close stops accepting tasks, runs what is already queued and waits for the
// workers to exit.
func (q *Queue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	q.cancel()
}

func (q *Queue) worker() {
	defer q.wg.Done()
	for j := range q.jobs {
		q.run(j)
	}
}

func (q *Queue) run(j job) {
	defer func() {
		if r := recover(); r != nil {
			q.log.Errorf("task %s panicked: %v", j.name, r)
		}
	}()
	if err := j.run(q.ctx); err != nil {
		q.log.Errorf("task %s failed: %v", j.name, err)
	}
}
