// Package executor implements one executor function per plan.Kind (C7):
// each reads its declared input variables from gqlctx.ExecutionContext,
// does work (possibly suspending on a storage/meta RPC), writes exactly
// one Result to its output variable, and returns a Future<Status>
// (grounded on rowexec.DefaultBuilder.Build's single dispatch point,
// generalized from row-at-a-time to dataset-at-a-time per the spec's
// materialize-then-forward model).
package executor

import (
	"context"

	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
)

// Status is the outcome an executor's Future resolves to.
type Status struct {
	State gqlctx.ResultState
	Err   error
}

// Future is the scheduler's unit of composition (§5): CPU-only operators
// resolve synchronously before Go ever returns it; operators that call
// storage/metaclient run their RPC in a goroutine, so the scheduler can
// launch independent siblings without blocking on each other.
type Future struct {
	done   chan struct{}
	status Status
}

// Resolved wraps an already-computed Status -- the common case for
// CPU-only executors (Filter/Project/Aggregate/Sort/...), which the spec
// says "run to completion within one continuation without voluntary
// suspension".
func Resolved(status Status) *Future {
	f := &Future{done: make(chan struct{})}
	f.status = status
	close(f.done)
	return f
}

// Go runs fn in a goroutine and resolves the Future with its result --
// the suspension points, which are exactly where storage/meta calls occur.
func Go(fn func() Status) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		f.status = fn()
		close(f.done)
	}()
	return f
}

// Wait blocks until the Future resolves or ctx is canceled.
func (f *Future) Wait(ctx context.Context) (Status, error) {
	select {
	case <-f.done:
		return f.status, nil
	case <-ctx.Done():
		return Status{}, ctx.Err()
	}
}
