package executor

import (
	"fmt"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

// inputDataSet reads the single named input variable's latest Result and
// returns its DataSet. An input in Error state short-circuits (failure
// policy: "any executor that receives Error from its inputs ... surfaces
// Error upward").
func inputDataSet(qctx *gqlctx.Context, varName string) (*dataset.DataSet, error) {
	r, ok := qctx.ExecCtx.Result(varName)
	if !ok {
		return nil, graphderr.ErrNilIterator.New(varName)
	}
	if r.State == gqlctx.StateError {
		return nil, graphderr.ErrExecution.New(fmt.Sprintf("input %s failed: %s", varName, r.Message))
	}
	ds := r.DataSet()
	if ds == nil {
		return nil, graphderr.ErrExecution.New(fmt.Sprintf("input %s did not produce a dataset", varName))
	}
	return ds, nil
}

// publish writes r to outputVar, honoring the variable's append/overwrite
// flag (set ahead of time by scheduler.AnalyzeLifetimes).
func publish(qctx *gqlctx.Context, outputVar string, r gqlctx.Result) Status {
	qctx.ExecCtx.Publish(outputVar, r)
	return Status{State: r.State, Err: stateErr(r)}
}

func stateErr(r gqlctx.Result) error {
	if r.State == gqlctx.StateError {
		return graphderr.ErrExecution.New(r.Message)
	}
	return nil
}

func publishDataSet(qctx *gqlctx.Context, outputVar string, colNames []string, rows []dataset.Row, kind dataset.Kind) Status {
	ds := dataset.New(colNames, rows)
	return publish(qctx, outputVar, gqlctx.Success(dataset.DataSetValue{DS: ds}, kind))
}

func publishError(qctx *gqlctx.Context, outputVar string, err error) Status {
	r := gqlctx.Failure(err.Error())
	qctx.ExecCtx.Publish(outputVar, r)
	return Status{State: gqlctx.StateError, Err: err}
}

// rowKey hashes a full row's values together, used by Dedup/Intersect/
// Minus's hash-set membership tests.
func rowKey(row dataset.Row) (uint64, error) {
	hashes := make([]interface{}, len(row))
	for i, v := range row {
		h, err := v.Hash()
		if err != nil {
			return 0, err
		}
		hashes[i] = h
	}
	h, err := value.NewList(hashesToValues(hashes)...).Hash()
	return h, err
}

func hashesToValues(hashes []interface{}) []value.Value {
	out := make([]value.Value, len(hashes))
	for i, h := range hashes {
		out[i] = value.Int(h.(uint64))
	}
	return out
}
