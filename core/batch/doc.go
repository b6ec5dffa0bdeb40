// Package batch provides a generic bounded-concurrency task runner.
//
// A run executes one worker function over a list of items with a fixed
// ceiling on simultaneously in-flight workers. As soon as one unit of work
// settles, the next queued item is dispatched, keeping the pipeline saturated
// rather than processing in fixed-size sequential chunks.
//
// # Outcomes
//
// Every item produces exactly one Outcome: success with the worker's result,
// or failure with the error message. A failing (or panicking) worker never
// aborts the run; partial failure is data, not an exception. The outcome
// slice preserves input order regardless of completion order.
//
// # Progress
//
// An optional OnProgress callback is invoked synchronously after each
// settlement with (done, total), enabling live status reporting during
// long-running administrative batches.
//
// # Usage
//
//	outcomes := batch.Run(ctx, publicIDs, deleteOne, batch.Options{
//	    Concurrency: 5,
//	    OnProgress:  func(done, total int) { log.Printf("%d/%d", done, total) },
//	})
package batch
