package utils

import (
	"sync"
	"time"
)

// WorkerPool bounds the number of concurrently running jobs and optionally
// spaces job starts by a minimum interval.
type WorkerPool struct {
	semaphore   chan struct{}
	interval    time.Duration
	wg          sync.WaitGroup
	mu          sync.Mutex
	lastStarted time.Time
}

// NewWorkerPool creates a WorkerPool with the given concurrency and rate limit.
// A rateLimitMs of zero disables spacing.
func NewWorkerPool(maxWorkers, rateLimitMs int) *WorkerPool {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &WorkerPool{
		semaphore: make(chan struct{}, maxWorkers),
		interval:  time.Duration(rateLimitMs) * time.Millisecond,
	}
}

// Submit blocks until a worker slot is free, then runs job in its own goroutine.
func (wp *WorkerPool) Submit(job func()) {
	wp.wg.Add(1)
	wp.semaphore <- struct{}{}

	go func() {
		defer wp.wg.Done()
		defer func() { <-wp.semaphore }()

		wp.throttle()
		job()
	}()
}

// Wait blocks until all submitted jobs have completed.
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
}

func (wp *WorkerPool) throttle() {
	if wp.interval <= 0 {
		return
	}
	wp.mu.Lock()
	defer wp.mu.Unlock()

	if elapsed := time.Since(wp.lastStarted); elapsed < wp.interval {
		time.Sleep(wp.interval - elapsed)
	}
	wp.lastStarted = time.Now()
}

// Collect runs fn for every input on the pool and returns the results in
// input order, regardless of completion order.
func Collect[In, Out any](wp *WorkerPool, inputs []In, fn func(In) Out) []Out {
	results := make([]Out, len(inputs))
	for i, in := range inputs {
		wp.Submit(func() {
			results[i] = fn(in)
		})
	}
	wp.Wait()
	return results
}
