package executor

import (
	"context"
	"fmt"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

func init() {
	register(plan.KindDataCollect, execDataCollect)
}

// execDataCollect assembles DataCollect's declared InputVars into one
// terminal DataSet per its Kind (§4.7 "Collects multiple input variables
// ... into one terminal DataSet, then publishes"). RowBasedMove and
// Subgraph are the two kinds this module's planner/validators actually
// construct (planner.wrapRowBasedMove, validate.TransformGetSubgraph);
// the remaining path-collection kinds fall back to a plain row concat,
// since no validator in this module emits them.
func execDataCollect(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.DataCollect)
	switch n.CollectKind {
	case plan.CollectRowBasedMove:
		return Resolved(collectRowBasedMove(qctx, n))
	case plan.CollectSubgraph:
		return Resolved(collectSubgraph(qctx, n))
	default:
		return Resolved(collectConcat(qctx, n))
	}
}

// collectRowBasedMove republishes its single input's Result verbatim
// under DataCollect's own output variable, preserving State/IterKind so
// callers that require a materialized row set see the same completeness
// the wrapped statement produced (planner.wrapRowBasedMove wraps every
// non-DataCollect statement root this way).
func collectRowBasedMove(qctx *gqlctx.Context, n *plan.DataCollect) Status {
	vars := n.InputVars()
	if len(vars) != 1 {
		return publishError(qctx, n.OutputVar(), graphderr.ErrExecution.New("RowBasedMove DataCollect requires exactly one input"))
	}
	r, ok := qctx.ExecCtx.Result(vars[0])
	if !ok {
		return publishError(qctx, n.OutputVar(), graphderr.ErrNilIterator.New(vars[0]))
	}
	return publish(qctx, n.OutputVar(), r)
}

// collectSubgraph merges every hop's GetNeighbors-shaped DataSet (columns
// "_vertex", "_edges") into the two accumulator lists GetSubgraph yields:
// a deduplicated vertex list and a deduplicated edge list, one row total
// (§4.7 Subgraph: "accumulates (vertices, edges)").
func collectSubgraph(qctx *gqlctx.Context, n *plan.DataCollect) Status {
	vertices := map[uint64]value.Value{}
	var vertexOrder []uint64
	edges := map[[4]string]value.Value{}
	var edgeOrder [][4]string

	worst := gqlctx.StateSuccess
	var partialMsg string

	for _, v := range n.InputVars() {
		r, ok := qctx.ExecCtx.Result(v)
		if !ok {
			return publishError(qctx, n.OutputVar(), graphderr.ErrNilIterator.New(v))
		}
		if r.State == gqlctx.StateError {
			return publishError(qctx, n.OutputVar(), graphderr.ErrExecution.New(fmt.Sprintf("input %s failed: %s", v, r.Message)))
		}
		if r.State == gqlctx.StatePartialSuccess {
			worst = gqlctx.StatePartialSuccess
			partialMsg = r.Message
		}
		ds := r.DataSet()
		if ds == nil {
			continue
		}
		vidx := ds.ColIndex("_vertex")
		eidx := ds.ColIndex("_edges")
		for _, row := range ds.Rows {
			if vidx >= 0 && vidx < len(row) {
				if vx, ok := row[vidx].(value.Vertex); ok {
					h, err := vx.Hash()
					if err != nil {
						return publishError(qctx, n.OutputVar(), err)
					}
					if _, seen := vertices[h]; !seen {
						vertices[h] = vx
						vertexOrder = append(vertexOrder, h)
					}
				}
			}
			if eidx >= 0 && eidx < len(row) {
				if lst, ok := row[eidx].(value.List); ok {
					for _, ev := range lst.Values {
						e, ok := ev.(value.Edge)
						if !ok {
							continue
						}
						k := e.Key()
						if _, seen := edges[k]; !seen {
							edges[k] = e
							edgeOrder = append(edgeOrder, k)
						}
					}
				}
			}
		}
	}

	vs := make([]value.Value, len(vertexOrder))
	for i, h := range vertexOrder {
		vs[i] = vertices[h]
	}
	es := make([]value.Value, len(edgeOrder))
	for i, k := range edgeOrder {
		es[i] = edges[k]
	}
	ds := dataset.New(n.ColNames(), []dataset.Row{dataset.NewRow(value.NewList(vs...), value.NewList(es...))})
	if worst == gqlctx.StatePartialSuccess {
		return publish(qctx, n.OutputVar(), gqlctx.Partial(dataset.DataSetValue{DS: ds}, dataset.KindSequential, partialMsg))
	}
	return publish(qctx, n.OutputVar(), gqlctx.Success(dataset.DataSetValue{DS: ds}, dataset.KindSequential))
}

// collectConcat is the generic fallback for DataCollect kinds this
// module's planner never constructs (MToN, BFSShortest, AllPaths,
// MultiplePairShortest, PathProp -- their path algorithms publish a
// finished result directly, per executor/path.go, rather than routing
// through a collector): concatenate every named input's rows under the
// node's declared column names.
func collectConcat(qctx *gqlctx.Context, n *plan.DataCollect) Status {
	var rows []dataset.Row
	worst := gqlctx.StateSuccess
	var partialMsg string
	for _, v := range n.InputVars() {
		r, ok := qctx.ExecCtx.Result(v)
		if !ok {
			return publishError(qctx, n.OutputVar(), graphderr.ErrNilIterator.New(v))
		}
		if r.State == gqlctx.StateError {
			return publishError(qctx, n.OutputVar(), graphderr.ErrExecution.New(fmt.Sprintf("input %s failed: %s", v, r.Message)))
		}
		if r.State == gqlctx.StatePartialSuccess {
			worst = gqlctx.StatePartialSuccess
			partialMsg = r.Message
		}
		if ds := r.DataSet(); ds != nil {
			rows = append(rows, ds.Rows...)
		}
	}
	ds := dataset.New(n.ColNames(), rows)
	if worst == gqlctx.StatePartialSuccess {
		return publish(qctx, n.OutputVar(), gqlctx.Partial(dataset.DataSetValue{DS: ds}, dataset.KindSequential, partialMsg))
	}
	return publish(qctx, n.OutputVar(), gqlctx.Success(dataset.DataSetValue{DS: ds}, dataset.KindSequential))
}
