package executor

import (
	"context"
	"sort"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

func init() {
	register(plan.KindStart, execStart)
	register(plan.KindPassThrough, execPassThrough)
	register(plan.KindMultiOutputs, execPassThrough)
	register(plan.KindFilter, execFilter)
	register(plan.KindProject, execProject)
	register(plan.KindSort, execSort)
	register(plan.KindLimit, execLimit)
	register(plan.KindTopN, execTopN)
	register(plan.KindDedup, execDedup)
	register(plan.KindAggregate, execAggregate)
	register(plan.KindUnwind, execUnwind)
}

// execStart publishes the single empty row every constant-only sub-plan
// (a literal vid list, a bare `YIELD <const>`) evaluates its expressions
// against -- zero columns, but one row, so a downstream Project still has
// something to iterate.
func execStart(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	return Resolved(publishDataSet(qctx, node.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential))
}

func execPassThrough(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	vars := node.InputVars()
	if len(vars) == 0 {
		return Resolved(publishDataSet(qctx, node.OutputVar(), nil, nil, dataset.KindSequential))
	}
	r, ok := qctx.ExecCtx.Result(vars[0])
	if !ok {
		return Resolved(publishError(qctx, node.OutputVar(), graphderr.ErrNilIterator.New(vars[0])))
	}
	return Resolved(publish(qctx, node.OutputVar(), r))
}

func execFilter(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Filter)
	ds, err := inputDataSet(qctx, n.InputVars()[0])
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	it := dataset.NewSequentialIterator(ds)
	vg := qctx.ExecCtx
	sctx := expreval.NewSequentialCtx(it, vg)
	for it.Valid() {
		v, err := n.Predicate.Eval(sctx)
		if err != nil {
			return Resolved(publishError(qctx, n.OutputVar(), err))
		}
		if !value.IsBoolOrNull(v) {
			return Resolved(publishError(qctx, n.OutputVar(), graphderr.ErrBadPredicate.New(v.Kind())))
		}
		if value.IsTruthy(v) {
			it.Next()
			sctx.Advance()
		} else {
			it.Erase()
			sctx.Advance()
		}
	}
	rows := liveRows(ds, it)
	return Resolved(publishDataSet(qctx, n.OutputVar(), ds.ColNames, rows, dataset.KindSequential))
}

// liveRows drains every surviving row from a SequentialIterator in order.
func liveRows(ds *dataset.DataSet, it *dataset.SequentialIterator) []dataset.Row {
	it.Reset()
	rows := make([]dataset.Row, 0, it.Size())
	for it.Valid() {
		rows = append(rows, it.Row().Clone())
		it.Next()
	}
	return rows
}

func execProject(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Project)
	ds, err := inputDataSet(qctx, n.InputVars()[0])
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	it := dataset.NewSequentialIterator(ds)
	sctx := expreval.NewSequentialCtx(it, qctx.ExecCtx)
	colNames := make([]string, len(n.Columns))
	for i, c := range n.Columns {
		colNames[i] = c.Alias
	}
	var rows []dataset.Row
	for it.Valid() {
		row := make(dataset.Row, len(n.Columns))
		for i, c := range n.Columns {
			v, err := c.Expr.Eval(sctx)
			if err != nil {
				return Resolved(publishError(qctx, n.OutputVar(), err))
			}
			row[i] = v
		}
		rows = append(rows, row)
		it.Next()
		sctx.Advance()
	}
	return Resolved(publishDataSet(qctx, n.OutputVar(), colNames, rows, dataset.KindSequential))
}

func execSort(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Sort)
	ds, err := inputDataSet(qctx, n.InputVars()[0])
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	rows := append([]dataset.Row{}, ds.Rows...)
	sortRows(rows, ds, n.Keys)
	return Resolved(publishDataSet(qctx, n.OutputVar(), ds.ColNames, rows, dataset.KindSequential))
}

func sortRows(rows []dataset.Row, ds *dataset.DataSet, keys []plan.OrderTerm) {
	sort.SliceStable(rows, func(i, j int) bool {
		for _, k := range keys {
			li := dataset.NewSequentialIterator(&dataset.DataSet{ColNames: ds.ColNames, Rows: []dataset.Row{rows[i]}})
			lj := dataset.NewSequentialIterator(&dataset.DataSet{ColNames: ds.ColNames, Rows: []dataset.Row{rows[j]}})
			lv, _ := k.Expr.Eval(expreval.NewSequentialCtx(li, noopVars{}))
			rv, _ := k.Expr.Eval(expreval.NewSequentialCtx(lj, noopVars{}))
			cmp, ok := lv.Compare(rv)
			if !ok || cmp == 0 {
				continue
			}
			if k.Desc {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
}

// noopVars backs sortRows' per-row evaluation when a key expression
// references $-.col rather than a variable; ORDER BY keys never touch
// $var, so GetVar/GetVersionedVar are unreachable here.
type noopVars struct{}

func (noopVars) GetVar(name string) (value.Value, error)               { return value.NullValue, nil }
func (noopVars) GetVersionedVar(name string, v int64) (value.Value, error) { return value.NullValue, nil }

func execLimit(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Limit)
	ds, err := inputDataSet(qctx, n.InputVars()[0])
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	rows := sliceRows(ds.Rows, n.Offset, n.Count)
	return Resolved(publishDataSet(qctx, n.OutputVar(), ds.ColNames, rows, dataset.KindSequential))
}

func sliceRows(rows []dataset.Row, offset, count int64) []dataset.Row {
	n := int64(len(rows))
	if offset < 0 {
		offset = 0
	}
	if offset >= n {
		return nil
	}
	end := offset + count
	if count < 0 || end > n {
		end = n
	}
	return append([]dataset.Row{}, rows[offset:end]...)
}

func execTopN(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.TopN)
	ds, err := inputDataSet(qctx, n.InputVars()[0])
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	rows := append([]dataset.Row{}, ds.Rows...)
	sortRows(rows, ds, n.Keys)
	rows = sliceRows(rows, n.Offset, n.Count)
	return Resolved(publishDataSet(qctx, n.OutputVar(), ds.ColNames, rows, dataset.KindSequential))
}

func execDedup(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Dedup)
	ds, err := inputDataSet(qctx, n.InputVars()[0])
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	seen := map[uint64]bool{}
	var rows []dataset.Row
	for _, row := range ds.Rows {
		key, err := rowKey(row)
		if err != nil {
			return Resolved(publishError(qctx, n.OutputVar(), err))
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		rows = append(rows, row)
	}
	return Resolved(publishDataSet(qctx, n.OutputVar(), ds.ColNames, rows, dataset.KindSequential))
}

func execUnwind(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Unwind)
	ds, err := inputDataSet(qctx, n.InputVars()[0])
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	it := dataset.NewSequentialIterator(ds)
	sctx := expreval.NewSequentialCtx(it, qctx.ExecCtx)
	colNames := append(append([]string{}, ds.ColNames...), n.Alias)
	var rows []dataset.Row
	for it.Valid() {
		listVal, err := n.ListExpr.Eval(sctx)
		if err != nil {
			return Resolved(publishError(qctx, n.OutputVar(), err))
		}
		list, ok := listVal.(value.List)
		if ok {
			for _, elem := range list.Values {
				rows = append(rows, append(it.Row().Clone(), elem))
			}
		}
		it.Next()
		sctx.Advance()
	}
	return Resolved(publishDataSet(qctx, n.OutputVar(), colNames, rows, dataset.KindSequential))
}
