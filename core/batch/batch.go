package batch

import (
	"context"
	"fmt"
	"sync"
)

// Outcome is the per-item result of one unit of work within a run.
// Exactly one Outcome is produced for every input item.
type Outcome[In, Out any] struct {
	// Item is the input item this outcome belongs to.
	Item In `json:"item"`

	// Success reports whether the worker completed without error.
	Success bool `json:"success"`

	// Result is the worker's return value. Zero value on failure.
	Result Out `json:"result,omitempty"`

	// Error is the failure message. Empty on success.
	Error string `json:"error,omitempty"`
}

// Options controls a batch run.
type Options struct {
	// Concurrency is the maximum number of workers in flight.
	// Values below 1 are treated as 1.
	Concurrency int

	// OnProgress, if set, is called synchronously after each item settles
	// with the running completed count and the total item count.
	OnProgress func(done, total int)
}

// Run executes worker over items with a fixed concurrency ceiling.
//
// The returned slice has exactly len(items) outcomes in input order,
// regardless of completion order. A worker error (or panic) is captured in
// that item's Outcome and never aborts the rest of the run. Workers receive
// ctx as-is; Run itself does not cancel mid-batch.
func Run[In, Out any](ctx context.Context, items []In, worker func(ctx context.Context, item In) (Out, error), opts Options) []Outcome[In, Out] {
	outcomes := make([]Outcome[In, Out], len(items))
	if len(items) == 0 {
		return outcomes
	}

	concurrency := opts.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(items) {
		concurrency = len(items)
	}

	// Workers pull indices, so a finished worker immediately picks up the
	// next queued item and the pipeline stays saturated.
	indexCh := make(chan int, len(items))
	for i := range items {
		indexCh <- i
	}
	close(indexCh)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)
	total := len(items)

	wg.Add(concurrency)
	for w := 0; w < concurrency; w++ {
		go func() {
			defer wg.Done()
			for i := range indexCh {
				outcomes[i] = settle(ctx, items[i], worker)

				mu.Lock()
				done++
				if opts.OnProgress != nil {
					opts.OnProgress(done, total)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return outcomes
}

// settle runs the worker for one item and converts the result, the error, or
// a panic into an Outcome.
func settle[In, Out any](ctx context.Context, item In, worker func(ctx context.Context, item In) (Out, error)) (outcome Outcome[In, Out]) {
	outcome.Item = item

	defer func() {
		if r := recover(); r != nil {
			var zero Out
			outcome.Success = false
			outcome.Result = zero
			outcome.Error = fmt.Sprintf("worker panic: %v", r)
		}
	}()

	result, err := worker(ctx, item)
	if err != nil {
		outcome.Error = err.Error()
		return outcome
	}

	outcome.Success = true
	outcome.Result = result
	return outcome
}

// Failed returns the outcomes that did not succeed.
func Failed[In, Out any](outcomes []Outcome[In, Out]) []Outcome[In, Out] {
	var failed []Outcome[In, Out]
	for _, o := range outcomes {
		if !o.Success {
			failed = append(failed, o)
		}
	}
	return failed
}
