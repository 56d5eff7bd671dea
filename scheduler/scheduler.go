// Package scheduler implements the DAG scheduler (C8): a memoized,
// parallel walk of a plan.ExecutionPlan that launches independent sibling
// subtrees concurrently and aborts the rest of the run on the first error
// (grounded on original_source's schedule/Scheduler, generalized from its
// task-queue shape to a future-per-node memoized walk since Go's
// goroutines make an explicit task queue unnecessary).
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/vesoft-inc/nebula-graph-sub000/executor"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
)

// Scheduler drives one ExecutionPlan to completion against a QueryContext.
type Scheduler struct {
	Builder executor.Builder
	Log     *logrus.Entry
}

func New(log *logrus.Entry) *Scheduler {
	return &Scheduler{Builder: executor.DefaultBuilder, Log: log}
}

// Run builds every node in ep reachable from its root and returns the
// root's published Result. Each node's executor runs in its own goroutine
// (executor.Go) once its dependency Futures resolve, so sibling subtrees
// (nodes with no path between them) run concurrently; an errgroup.Group
// waits on the root and cancels the shared context if it fails. A node's
// Future is memoized by id so a variable read by more than one downstream
// node (MultiOutputs) is only ever built once.
func (s *Scheduler) Run(ctx context.Context, qctx *gqlctx.Context, ep *plan.ExecutionPlan) (gqlctx.Result, error) {
	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	memo := map[int64]*executor.Future{}

	var build func(n plan.Node) *executor.Future
	build = func(n plan.Node) *executor.Future {
		mu.Lock()
		if f, ok := memo[n.ID()]; ok {
			mu.Unlock()
			return f
		}
		mu.Unlock()

		deps := n.Dependencies()
		depFutures := make([]*executor.Future, len(deps))
		for i, d := range deps {
			depFutures[i] = build(d)
		}

		f := executor.Go(func() executor.Status {
			for _, df := range depFutures {
				st, err := df.Wait(gctx)
				if err != nil {
					return executor.Status{State: gqlctx.StateError, Err: err}
				}
				if st.State == gqlctx.StateError {
					return st
				}
			}
			if s.Log != nil {
				s.Log.WithField("node_id", n.ID()).WithField("kind", n.Kind()).Debug("scheduling node")
			}
			nodeCtx := gctx
			var span opentracing.Span
			var started time.Time
			if qctx.Desc != nil {
				span, nodeCtx = opentracing.StartSpanFromContext(gctx, string(n.Kind()))
				started = time.Now()
			}
			nf := s.Builder.Build(nodeCtx, qctx, n)
			st, err := nf.Wait(nodeCtx)
			if span != nil {
				span.Finish()
				s.recordProfile(qctx, n, time.Since(started))
			}
			if err != nil {
				return executor.Status{State: gqlctx.StateError, Err: err}
			}
			return st
		})

		mu.Lock()
		memo[n.ID()] = f
		mu.Unlock()
		return f
	}

	root := build(ep.Root)
	g.Go(func() error {
		st, err := root.Wait(gctx)
		if err != nil {
			return err
		}
		if st.State == gqlctx.StateError {
			return st.Err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		r, _ := qctx.ExecCtx.Result(ep.Root.OutputVar())
		return r, err
	}

	r, ok := qctx.ExecCtx.Result(ep.Root.OutputVar())
	if !ok {
		return gqlctx.Result{}, nil
	}
	return r, nil
}

// recordProfile attaches one invocation's timing to the node's
// NodeDescription under qctx.Desc, feeding EXPLAIN PROFILE's per-node
// Profiles list (§6.4). Only called when qctx.Desc is non-nil, i.e. the
// statement was run under EXPLAIN PROFILE rather than a plain EXPLAIN.
func (s *Scheduler) recordProfile(qctx *gqlctx.Context, n plan.Node, d time.Duration) {
	idx, ok := qctx.Desc.NodeIndexMap[n.ID()]
	if !ok || idx < 0 || idx >= len(qctx.Desc.NodeDescs) {
		return
	}
	rows := 0
	if r, ok := qctx.ExecCtx.Result(n.OutputVar()); ok {
		if ds := r.DataSet(); ds != nil {
			rows = len(ds.Rows)
		}
	}
	micros := d.Microseconds()
	desc := &qctx.Desc.NodeDescs[idx]
	desc.Profiles = append(desc.Profiles, plan.ProfilingStats{
		DurationMicros:      micros,
		TotalDurationMicros: micros,
		RowsProduced:        rows,
	})
}
