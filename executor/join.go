package executor

import (
	"context"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

func init() {
	register(plan.KindInnerJoin, execInnerJoin)
	register(plan.KindLeftJoin, execLeftJoin)
	register(plan.KindCartesianProduct, execCartesianProduct)
}

// evalKeys evaluates one expression vector against every row of ds,
// returning each row's combined hash key, the evaluated key columns
// themselves are not needed by the caller.
func evalKeys(qctx *gqlctx.Context, ds *dataset.DataSet, keys []expreval.Expression) ([]uint64, error) {
	it := dataset.NewSequentialIterator(ds)
	sctx := expreval.NewSequentialCtx(it, qctx.ExecCtx)
	out := make([]uint64, len(ds.Rows))
	i := 0
	for it.Valid() {
		vals := make([]value.Value, len(keys))
		for j, k := range keys {
			v, err := k.Eval(sctx)
			if err != nil {
				return nil, err
			}
			vals[j] = v
		}
		h, err := rowKey(dataset.Row(vals))
		if err != nil {
			return nil, err
		}
		out[i] = h
		i++
		it.Next()
		sctx.Advance()
	}
	return out, nil
}

func joinInputs(qctx *gqlctx.Context, node plan.Node) (*dataset.DataSet, *dataset.DataSet, error) {
	vars := node.InputVars()
	left, err := inputDataSet(qctx, vars[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := inputDataSet(qctx, vars[1])
	if err != nil {
		return nil, nil, err
	}
	return left, right, nil
}

func execInnerJoin(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.InnerJoin)
	left, right, err := joinInputs(qctx, node)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	leftKeys, err := evalKeys(qctx, left, n.HashKeys)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	rightKeys, err := evalKeys(qctx, right, n.ProbeKeys)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	buckets := map[uint64][]int{}
	for i, k := range leftKeys {
		buckets[k] = append(buckets[k], i)
	}
	var rows []dataset.Row
	for ri, k := range rightKeys {
		for _, li := range buckets[k] {
			rows = append(rows, append(left.Rows[li].Clone(), right.Rows[ri]...))
		}
	}
	return Resolved(publishDataSet(qctx, n.OutputVar(), n.ColNames(), rows, dataset.KindJoin))
}

func execLeftJoin(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.LeftJoin)
	left, right, err := joinInputs(qctx, node)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	leftKeys, err := evalKeys(qctx, left, n.HashKeys)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	rightKeys, err := evalKeys(qctx, right, n.ProbeKeys)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	rightBuckets := map[uint64][]int{}
	for i, k := range rightKeys {
		rightBuckets[k] = append(rightBuckets[k], i)
	}
	rightEmpty := make(dataset.Row, len(right.ColNames))
	for i := range rightEmpty {
		rightEmpty[i] = value.Empty{}
	}
	var rows []dataset.Row
	for li, k := range leftKeys {
		matches := rightBuckets[k]
		if len(matches) == 0 {
			rows = append(rows, append(left.Rows[li].Clone(), rightEmpty...))
			continue
		}
		for _, ri := range matches {
			rows = append(rows, append(left.Rows[li].Clone(), right.Rows[ri]...))
		}
	}
	return Resolved(publishDataSet(qctx, n.OutputVar(), n.ColNames(), rows, dataset.KindJoin))
}

func execCartesianProduct(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.CartesianProduct)
	left, right, err := joinInputs(qctx, node)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	rows := make([]dataset.Row, 0, len(left.Rows)*len(right.Rows))
	for _, lr := range left.Rows {
		for _, rr := range right.Rows {
			rows = append(rows, append(lr.Clone(), rr...))
		}
	}
	return Resolved(publishDataSet(qctx, n.OutputVar(), n.ColNames(), rows, dataset.KindJoin))
}
