package executor

import (
	"context"
	"fmt"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/storage"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

func init() {
	register(plan.KindGetNeighbors, execGetNeighbors)
	register(plan.KindGetVertices, execGetVertices)
	register(plan.KindGetEdges, execGetEdges)
	register(plan.KindIndexScan, execIndexScan)
}

// srcVids evaluates a scan node's source expression against its input
// dataset (one row at a time, so `$-.id`/`$var.id` resolve per row) or, when
// there is no input (a Start-rooted constant list), evaluates it once
// against a no-op binder. Duplicate vids are not collapsed here; Dedup is
// its own plan node per §4.4's Go/Traversal contract.
func srcVids(qctx *gqlctx.Context, inputVar string, srcExpr expreval.Expression) ([]value.Value, error) {
	if inputVar == "" {
		v, err := srcExpr.Eval(constBinder{})
		if err != nil {
			return nil, err
		}
		return flattenVids(v), nil
	}
	ds, err := inputDataSet(qctx, inputVar)
	if err != nil {
		return nil, err
	}
	it := dataset.NewSequentialIterator(ds)
	sctx := expreval.NewSequentialCtx(it, qctx.ExecCtx)
	var out []value.Value
	for it.Valid() {
		v, err := srcExpr.Eval(sctx)
		if err != nil {
			return nil, err
		}
		out = append(out, flattenVids(v)...)
		it.Next()
		sctx.Advance()
	}
	return out, nil
}

func flattenVids(v value.Value) []value.Value {
	if l, ok := v.(value.List); ok {
		return l.Values
	}
	return []value.Value{v}
}

// constBinder backs a Start-rooted constant source expression, which never
// references $-, $var, or any property accessor.
type constBinder struct{}

func (constBinder) Var(string) (value.Value, error)                 { return value.NullValue, nil }
func (constBinder) VersionedVar(string, int64) (value.Value, error) { return value.NullValue, nil }
func (constBinder) VarProp(string, string) (value.Value, error)     { return value.Empty{}, nil }
func (constBinder) InputProp(string) (value.Value, error)           { return value.Empty{}, nil }
func (constBinder) SrcProp(string, string) (value.Value, error)     { return value.Empty{}, nil }
func (constBinder) DstProp(string, string) (value.Value, error)     { return value.Empty{}, nil }
func (constBinder) EdgeProp(string, string) (value.Value, error)    { return value.Empty{}, nil }

func execGetNeighbors(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.GetNeighbors)
	inputVar := ""
	if vars := n.InputVars(); len(vars) > 0 {
		inputVar = vars[0]
	}
	vids, err := srcVids(qctx, inputVar, n.SrcExpr)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	rows := make([]dataset.Row, len(vids))
	for i, v := range vids {
		rows[i] = dataset.NewRow(v)
	}
	vertices := dataset.New([]string{"_vid"}, rows)
	return Go(func() Status {
		resp, err := qctx.Storage.GetNeighbors(ctx, storage.GetNeighborsRequest{
			Space:       qctx.CurrentSpace,
			Vertices:    vertices,
			EdgeTypes:   n.EdgeTypes,
			Direction:   int(n.Direction),
			VertexProps: n.VertexProps,
			EdgeProps:   n.EdgeProps,
			StatProps:   n.StatProps,
			Dedup:       n.Dedup,
			Filter:      n.Filter,
		})
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrStorage.New(err.Error()))
		}
		ds := resp.Vertices
		if ds == nil {
			ds = dataset.Empty([]string{"_vertex", "_edges"})
		}
		return publish(qctx, n.OutputVar(), scanResult(resp.Response, dataset.DataSetValue{DS: ds}, dataset.KindGetNeighbors))
	})
}

func execGetVertices(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.GetVertices)
	inputVar := ""
	if vars := n.InputVars(); len(vars) > 0 {
		inputVar = vars[0]
	}
	vids, err := srcVids(qctx, inputVar, n.VidExpr)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	rows := make([]dataset.Row, len(vids))
	for i, v := range vids {
		rows[i] = dataset.NewRow(v)
	}
	keys := dataset.New([]string{"_vid"}, rows)
	return Go(func() Status {
		resp, err := qctx.Storage.GetProps(ctx, storage.GetPropRequest{
			Space:  qctx.CurrentSpace,
			Keys:   keys,
			IsEdge: false,
			Dedup:  n.Dedup,
			Filter: n.Filter,
		})
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrStorage.New(err.Error()))
		}
		ds := resp.Props
		if ds == nil {
			ds = dataset.Empty([]string{"_vertex"})
		}
		return publish(qctx, n.OutputVar(), scanResult(resp.Response, dataset.DataSetValue{DS: ds}, dataset.KindProperty))
	})
}

func execGetEdges(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.GetEdges)
	inputVar := ""
	if vars := n.InputVars(); len(vars) > 0 {
		inputVar = vars[0]
	}
	keyVals, err := srcVids(qctx, inputVar, n.KeyExpr)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	rows := make([]dataset.Row, len(keyVals))
	for i, v := range keyVals {
		rows[i] = dataset.NewRow(v)
	}
	keys := dataset.New([]string{"_edge"}, rows)
	return Go(func() Status {
		resp, err := qctx.Storage.GetProps(ctx, storage.GetPropRequest{
			Space:  qctx.CurrentSpace,
			Keys:   keys,
			IsEdge: true,
			Dedup:  n.Dedup,
			Filter: n.Filter,
		})
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrStorage.New(err.Error()))
		}
		ds := resp.Props
		if ds == nil {
			ds = dataset.Empty([]string{"_edge"})
		}
		return publish(qctx, n.OutputVar(), scanResult(resp.Response, dataset.DataSetValue{DS: ds}, dataset.KindProperty))
	})
}

func execIndexScan(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.IndexScan)
	return Go(func() Status {
		resp, err := qctx.Storage.LookupIndex(ctx, storage.LookupIndexRequest{
			Space:         qctx.CurrentSpace,
			SchemaID:      int32(n.SchemaID),
			IsEdge:        n.IsEdge,
			ReturnColumns: n.ReturnColumns,
		})
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrStorage.New(err.Error()))
		}
		ds := resp.Data
		colName := "_vertex"
		if n.IsEdge {
			colName = "_edge"
		}
		if ds == nil {
			ds = dataset.Empty([]string{colName})
		}
		return publish(qctx, n.OutputVar(), scanResult(resp.Response, dataset.DataSetValue{DS: ds}, dataset.KindProperty))
	})
}

// scanResult turns a storage RPC's completeness envelope into a Result,
// using PartialSuccess with a diagnostic message below full completeness
// and Error when every partition failed outright -- distinguishing a
// degraded read from a wholesale one (§4.7).
func scanResult(resp storage.Response, data value.Value, kind dataset.Kind) gqlctx.Result {
	if resp.Completeness <= 0 && len(resp.FailedParts) > 0 {
		return gqlctx.Failure(fmt.Sprintf("all partitions failed: %d errored", len(resp.FailedParts)))
	}
	if resp.Completeness >= 100 {
		return gqlctx.Success(data, kind)
	}
	return gqlctx.Partial(data, kind, fmt.Sprintf("partial result: %d%% complete, %d partitions failed", resp.Completeness, len(resp.FailedParts)))
}
