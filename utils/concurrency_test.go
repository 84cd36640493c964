package utils

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestWorkerPoolBoundsConcurrency(t *testing.T) {
	pool := NewWorkerPool(3, 0)

	var running, peak int64
	for i := 0; i < 30; i++ {
		pool.Submit(func() {
			n := atomic.AddInt64(&running, 1)
			for {
				p := atomic.LoadInt64(&peak)
				if n <= p || atomic.CompareAndSwapInt64(&peak, p, n) {
					break
				}
			}
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt64(&running, -1)
		})
	}
	pool.Wait()

	if peak > 3 {
		t.Errorf("peak concurrency: got %d, want <= 3", peak)
	}
}

func TestWorkerPoolRateLimit(t *testing.T) {
	rateLimitMs := 50
	pool := NewWorkerPool(1, rateLimitMs)

	var mu sync.Mutex
	var timestamps []time.Time
	for i := 0; i < 3; i++ {
		pool.Submit(func() {
			mu.Lock()
			timestamps = append(timestamps, time.Now())
			mu.Unlock()
		})
	}
	pool.Wait()

	// The first job may start immediately; later ones are spaced.
	minGap := time.Duration(rateLimitMs) * time.Millisecond
	for i := 1; i < len(timestamps); i++ {
		gap := timestamps[i].Sub(timestamps[i-1])
		if gap < minGap {
			t.Errorf("gap between job %d and %d: %v < minimum %v", i-1, i, gap, minGap)
		}
	}
}

func TestCollectPreservesInputOrder(t *testing.T) {
	pool := NewWorkerPool(4, 0)
	inputs := []int{5, 1, 4, 2, 3}

	got := Collect(pool, inputs, func(n int) int {
		time.Sleep(time.Duration(n) * time.Millisecond)
		return n * 10
	})

	want := []int{50, 10, 40, 20, 30}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("result[%d]: got %d, want %d", i, got[i], want[i])
		}
	}
}

func TestNewWorkerPoolClampsWorkers(t *testing.T) {
	pool := NewWorkerPool(0, 0)
	done := false
	pool.Submit(func() { done = true })
	pool.Wait()
	if !done {
		t.Error("job did not run on a zero-sized pool")
	}
}
