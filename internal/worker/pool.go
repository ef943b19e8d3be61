// Package worker provides a bounded worker pool for fanning analysis tasks
// out across files. Results are slotted by input index, so output order
// always follows the input list, not completion order.
package worker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

var ErrInvalidCapacity = errors.New("invalid worker capacity")

// Pool bounds how many tasks run concurrently.
type Pool struct {
	capacity    int
	totalTasks  atomic.Int64
	failedTasks atomic.Int64
}

// New creates a pool with the given capacity.
func New(capacity int) (*Pool, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	return &Pool{capacity: capacity}, nil
}

// Capacity returns the maximum number of concurrent tasks.
func (p *Pool) Capacity() int { return p.capacity }

// Stats returns task counters for pipeline summaries.
func (p *Pool) Stats() map[string]int64 {
	return map[string]int64{
		"total_tasks":  p.totalTasks.Load(),
		"failed_tasks": p.failedTasks.Load(),
	}
}

// Map applies fn to every input over the pool's workers and returns results
// in input order. Submission stops on context cancellation; the first error
// (from fn or the context) is returned alongside the partial results.
func Map[T, R any](ctx context.Context, p *Pool, inputs []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	results := make([]R, len(inputs))

	tasks := make(chan int)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	for range p.capacity {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range tasks {
				res, err := fn(ctx, inputs[i])
				if err != nil {
					p.failedTasks.Add(1)
					setErr(err)
					continue
				}
				results[i] = res
			}
		}()
	}

submit:
	for i := range inputs {
		select {
		case <-ctx.Done():
			setErr(ctx.Err())
			break submit
		case tasks <- i:
			p.totalTasks.Add(1)
		}
	}
	close(tasks)
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	return results, firstErr
}
