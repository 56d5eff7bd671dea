package executor

import (
	"context"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
)

func init() {
	register(plan.KindUnion, execUnion)
	register(plan.KindIntersect, execIntersect)
	register(plan.KindMinus, execMinus)
}

// setopInputs reads both set-op sides and checks the P1 precondition that
// they share a column-name vector (testable property: "For every set-op
// node, left.output_col_names == right.output_col_names").
func setopInputs(qctx *gqlctx.Context, node plan.Node) (*dataset.DataSet, *dataset.DataSet, error) {
	vars := node.InputVars()
	left, err := inputDataSet(qctx, vars[0])
	if err != nil {
		return nil, nil, err
	}
	right, err := inputDataSet(qctx, vars[1])
	if err != nil {
		return nil, nil, err
	}
	if !left.SameColumns(right) {
		return nil, nil, graphderr.ErrMismatchedColumns.New(vars[0], vars[1])
	}
	return left, right, nil
}

func execUnion(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	left, right, err := setopInputs(qctx, node)
	if err != nil {
		return Resolved(publishError(qctx, node.OutputVar(), err))
	}
	rows := append(append([]dataset.Row{}, left.Rows...), right.Rows...)
	return Resolved(publishDataSet(qctx, node.OutputVar(), left.ColNames, rows, dataset.KindSequential))
}

func execIntersect(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	left, right, err := setopInputs(qctx, node)
	if err != nil {
		return Resolved(publishError(qctx, node.OutputVar(), err))
	}
	rightKeys := map[uint64]bool{}
	for _, row := range right.Rows {
		k, err := rowKey(row)
		if err != nil {
			return Resolved(publishError(qctx, node.OutputVar(), err))
		}
		rightKeys[k] = true
	}
	var rows []dataset.Row
	for _, row := range left.Rows {
		k, err := rowKey(row)
		if err != nil {
			return Resolved(publishError(qctx, node.OutputVar(), err))
		}
		if rightKeys[k] {
			rows = append(rows, row)
		}
	}
	return Resolved(publishDataSet(qctx, node.OutputVar(), left.ColNames, rows, dataset.KindSequential))
}

func execMinus(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	left, right, err := setopInputs(qctx, node)
	if err != nil {
		return Resolved(publishError(qctx, node.OutputVar(), err))
	}
	rightKeys := map[uint64]bool{}
	for _, row := range right.Rows {
		k, err := rowKey(row)
		if err != nil {
			return Resolved(publishError(qctx, node.OutputVar(), err))
		}
		rightKeys[k] = true
	}
	var rows []dataset.Row
	for _, row := range left.Rows {
		k, err := rowKey(row)
		if err != nil {
			return Resolved(publishError(qctx, node.OutputVar(), err))
		}
		if !rightKeys[k] {
			rows = append(rows, row)
		}
	}
	return Resolved(publishDataSet(qctx, node.OutputVar(), left.ColNames, rows, dataset.KindSequential))
}
