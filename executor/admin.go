package executor

import (
	"context"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/metaclient"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/storage"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

// Admin/DDL/DML executors are one-shot calls into metaclient.Client or
// storage.Client; none iterate a dependency's dataset row by row the way
// the relational operators do (§4.7's "Admin/DDL" bullet).

func init() {
	register(plan.KindSwitchSpace, execSwitchSpace)
	register(plan.KindCreateSpace, execCreateSpace)
	register(plan.KindDropSpace, execDropSpace)
	register(plan.KindDescSpace, execDescSpace)
	register(plan.KindShowSpaces, execShowSpaces)
	register(plan.KindCreateTag, execCreateTag)
	register(plan.KindAlterTag, execAlterTag)
	register(plan.KindDropTag, execDropTag)
	register(plan.KindCreateEdge, execCreateEdge)
	register(plan.KindAlterEdge, execAlterEdge)
	register(plan.KindDropEdge, execDropEdge)
	register(plan.KindCreateSnapshot, execCreateSnapshot)
	register(plan.KindDropSnapshot, execDropSnapshot)
	register(plan.KindShowSnapshots, execShowSnapshots)
	register(plan.KindCreateUser, execCreateUser)
	register(plan.KindDropUser, execDropUser)
	register(plan.KindChangePassword, execChangePassword)
	register(plan.KindGrantRole, execGrantRole)
	register(plan.KindRevokeRole, execRevokeRole)
	register(plan.KindListUsers, execListUsers)
	register(plan.KindListRoles, execListRoles)
	register(plan.KindBalance, execBalance)
	register(plan.KindShowBalance, execShowBalance)
	register(plan.KindInsertVertices, execInsertVertices)
	register(plan.KindInsertEdges, execInsertEdges)
	register(plan.KindUpdateVertex, execUpdateVertex)
	register(plan.KindUpdateEdge, execUpdateEdge)
	register(plan.KindDeleteVertices, execDeleteVertices)
	register(plan.KindDeleteEdges, execDeleteEdges)
}

func execSwitchSpace(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.SwitchSpace)
	return Go(func() Status {
		if _, err := qctx.Meta.GetSpace(ctx, n.SpaceName); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		qctx.CurrentSpace = n.SpaceName
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execCreateSpace(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.CreateSpace)
	return Go(func() Status {
		desc := metaclient.SpaceDesc{Name: n.SpaceName, Partitions: n.Partitions, Replicas: n.Replicas, VidType: n.VidType}
		if err := qctx.Meta.CreateSpace(ctx, desc, n.IfNotExists); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execDropSpace(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.DropSpace)
	return Go(func() Status {
		if err := qctx.Meta.DropSpace(ctx, n.SpaceName, n.IfExists); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execDescSpace(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.DescSpace)
	return Go(func() Status {
		desc, err := qctx.Meta.GetSpace(ctx, n.SpaceName)
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		row := dataset.NewRow(value.Str(desc.Name), value.Int(desc.Partitions), value.Int(desc.Replicas), value.Str(desc.VidType))
		return publishDataSet(qctx, n.OutputVar(), []string{"Name", "Partitions", "Replicas", "Vid Type"}, []dataset.Row{row}, dataset.KindSequential)
	})
}

func execShowSpaces(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.ShowSpaces)
	return Go(func() Status {
		spaces, err := qctx.Meta.ListSpaces(ctx)
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		rows := make([]dataset.Row, len(spaces))
		for i, s := range spaces {
			rows[i] = dataset.NewRow(value.Str(s.Name))
		}
		return publishDataSet(qctx, n.OutputVar(), []string{"Name"}, rows, dataset.KindSequential)
	})
}

func execCreateTag(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.CreateTag)
	return Go(func() Status {
		schema := metaclient.TagSchema{Name: n.Schema.Name, Fields: toFieldDefs(n.Schema.Fields)}
		if err := qctx.Meta.CreateTag(ctx, qctx.CurrentSpace, schema, n.IfNotExists); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execAlterTag(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.AlterTag)
	return Go(func() Status {
		if err := qctx.Meta.AlterTag(ctx, qctx.CurrentSpace, n.Name, toFieldDefs(n.AddFields), n.DropFields); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execDropTag(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.DropTag)
	return Go(func() Status {
		if err := qctx.Meta.DropTag(ctx, qctx.CurrentSpace, n.Name, n.IfExists); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execCreateEdge(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.CreateEdge)
	return Go(func() Status {
		schema := metaclient.EdgeSchema{Name: n.Schema.Name, Fields: toFieldDefs(n.Schema.Fields)}
		if err := qctx.Meta.CreateEdge(ctx, qctx.CurrentSpace, schema, n.IfNotExists); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execAlterEdge(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.AlterEdge)
	return Go(func() Status {
		if err := qctx.Meta.AlterEdge(ctx, qctx.CurrentSpace, n.Name, toFieldDefs(n.AddFields), n.DropFields); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execDropEdge(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.DropEdge)
	return Go(func() Status {
		if err := qctx.Meta.DropEdge(ctx, qctx.CurrentSpace, n.Name, n.IfExists); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func toFieldDefs(fields []plan.SchemaField) []metaclient.FieldDef {
	out := make([]metaclient.FieldDef, len(fields))
	for i, f := range fields {
		out[i] = metaclient.FieldDef{Name: f.Name, Type: f.Type, Nullable: f.Nullable}
	}
	return out
}

func execCreateSnapshot(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.CreateSnapshot)
	return Go(func() Status {
		if err := qctx.Meta.CreateSnapshot(ctx, qctx.CurrentSpace); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execDropSnapshot(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.DropSnapshot)
	return Go(func() Status {
		if err := qctx.Meta.DropSnapshot(ctx, n.Name); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execShowSnapshots(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.ShowSnapshots)
	return Go(func() Status {
		snaps, err := qctx.Meta.ListSnapshots(ctx)
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		rows := make([]dataset.Row, len(snaps))
		for i, s := range snaps {
			rows[i] = dataset.NewRow(value.Str(s.Name), value.Str(s.Status))
		}
		return publishDataSet(qctx, n.OutputVar(), []string{"Name", "Status"}, rows, dataset.KindSequential)
	})
}

func execCreateUser(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.CreateUser)
	return Go(func() Status {
		if err := qctx.Meta.CreateUser(ctx, n.Username, n.Password, n.IfNotExists); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execDropUser(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.DropUser)
	return Go(func() Status {
		if err := qctx.Meta.DropUser(ctx, n.Username, n.IfExists); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execChangePassword(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.ChangePassword)
	return Go(func() Status {
		if err := qctx.Meta.ChangePassword(ctx, n.Username, n.NewPassword); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execGrantRole(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.GrantRole)
	return Go(func() Status {
		if err := qctx.Meta.GrantRole(ctx, n.Username, n.SpaceName, n.Role); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execRevokeRole(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.RevokeRole)
	return Go(func() Status {
		if err := qctx.Meta.RevokeRole(ctx, n.Username, n.SpaceName, n.Role); err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), nil, []dataset.Row{{}}, dataset.KindSequential)
	})
}

func execListUsers(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.ListUsers)
	return Go(func() Status {
		users, err := qctx.Meta.ListUsers(ctx)
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		rows := make([]dataset.Row, len(users))
		for i, u := range users {
			rows[i] = dataset.NewRow(value.Str(u.Username))
		}
		return publishDataSet(qctx, n.OutputVar(), []string{"Account"}, rows, dataset.KindSequential)
	})
}

func execListRoles(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.ListRoles)
	return Go(func() Status {
		roles, err := qctx.Meta.ListRoles(ctx, n.SpaceName)
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		rows := make([]dataset.Row, len(roles))
		for i, r := range roles {
			rows[i] = dataset.NewRow(value.Str(r.Username), value.Str(r.Role))
		}
		return publishDataSet(qctx, n.OutputVar(), []string{"Account", "Role"}, rows, dataset.KindSequential)
	})
}

func execBalance(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Balance)
	return Go(func() Status {
		jobID, err := qctx.Meta.Balance(ctx, n.Kind)
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		return publishDataSet(qctx, n.OutputVar(), []string{"New Job Id"}, []dataset.Row{dataset.NewRow(value.Int(jobID))}, dataset.KindSequential)
	})
}

func execShowBalance(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.ShowBalance)
	return Go(func() Status {
		job, err := qctx.Meta.ShowBalance(ctx, n.JobID)
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrMeta.New(err.Error()))
		}
		row := dataset.NewRow(value.Int(job.JobID), value.Str(job.Status))
		return publishDataSet(qctx, n.OutputVar(), []string{"Job Id", "Status"}, []dataset.Row{row}, dataset.KindSequential)
	})
}

func execInsertVertices(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.InsertVertices)
	inputVar := ""
	if vars := n.InputVars(); len(vars) > 0 {
		inputVar = vars[0]
	}
	vids, err := srcVids(qctx, inputVar, n.VidExpr)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	var inserts []storage.VertexInsert
	for _, vid := range vids {
		vs, err := asVID(vid)
		if err != nil {
			return Resolved(publishError(qctx, n.OutputVar(), err))
		}
		for _, tag := range n.Tags {
			props, err := evalProps(n.Props[tag])
			if err != nil {
				return Resolved(publishError(qctx, n.OutputVar(), err))
			}
			inserts = append(inserts, storage.VertexInsert{VID: vs, Tag: tag, Props: props})
		}
	}
	return Go(func() Status {
		resp, err := qctx.Storage.AddVertices(ctx, qctx.CurrentSpace, inserts, n.Overwrite)
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrStorage.New(err.Error()))
		}
		return publish(qctx, n.OutputVar(), execResult(resp.Response))
	})
}

func execInsertEdges(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.InsertEdges)
	inputVar := ""
	if vars := n.InputVars(); len(vars) > 0 {
		inputVar = vars[0]
	}
	keys, err := srcVids(qctx, inputVar, n.KeyExpr)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	props, err := evalProps(n.Props)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	var edges []storage.EdgeInsert
	for _, k := range keys {
		src, dst, rank, err := edgeKeyParts(k)
		if err != nil {
			return Resolved(publishError(qctx, n.OutputVar(), err))
		}
		edges = append(edges, storage.EdgeInsert{Src: src, Dst: dst, Type: n.EdgeType, Ranking: rank, Props: props})
	}
	return Go(func() Status {
		resp, err := qctx.Storage.AddEdges(ctx, qctx.CurrentSpace, edges, n.Overwrite)
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrStorage.New(err.Error()))
		}
		return publish(qctx, n.OutputVar(), execResult(resp.Response))
	})
}

func execUpdateVertex(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.UpdateVertex)
	inputVar := ""
	if vars := n.InputVars(); len(vars) > 0 {
		inputVar = vars[0]
	}
	vids, err := srcVids(qctx, inputVar, n.VidExpr)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	if n.When != nil {
		ok, err := n.When.Eval(constBinder{})
		if err == nil && !value.IsTruthy(ok) {
			return Resolved(publishDataSet(qctx, n.OutputVar(), nil, nil, dataset.KindSequential))
		}
	}
	set, err := evalProps(n.Set)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	return Go(func() Status {
		var last storage.ExecResponse
		for _, vid := range vids {
			vs, err := asVID(vid)
			if err != nil {
				return publishError(qctx, n.OutputVar(), err)
			}
			resp, err := qctx.Storage.UpdateVertex(ctx, qctx.CurrentSpace, vs, n.Tag, set)
			if err != nil {
				return publishError(qctx, n.OutputVar(), graphderr.ErrStorage.New(err.Error()))
			}
			last = resp
		}
		return publish(qctx, n.OutputVar(), execResult(last.Response))
	})
}

func execUpdateEdge(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.UpdateEdge)
	inputVar := ""
	if vars := n.InputVars(); len(vars) > 0 {
		inputVar = vars[0]
	}
	keys, err := srcVids(qctx, inputVar, n.KeyExpr)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	if n.When != nil {
		ok, err := n.When.Eval(constBinder{})
		if err == nil && !value.IsTruthy(ok) {
			return Resolved(publishDataSet(qctx, n.OutputVar(), nil, nil, dataset.KindSequential))
		}
	}
	set, err := evalProps(n.Set)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	return Go(func() Status {
		var last storage.ExecResponse
		for _, k := range keys {
			src, dst, rank, err := edgeKeyParts(k)
			if err != nil {
				return publishError(qctx, n.OutputVar(), err)
			}
			resp, err := qctx.Storage.UpdateEdge(ctx, qctx.CurrentSpace, storage.EdgeInsert{Src: src, Dst: dst, Type: n.EdgeType, Ranking: rank}, set)
			if err != nil {
				return publishError(qctx, n.OutputVar(), graphderr.ErrStorage.New(err.Error()))
			}
			last = resp
		}
		return publish(qctx, n.OutputVar(), execResult(last.Response))
	})
}

func execDeleteVertices(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.DeleteVertices)
	inputVar := ""
	if vars := n.InputVars(); len(vars) > 0 {
		inputVar = vars[0]
	}
	vids, err := srcVids(qctx, inputVar, n.VidExpr)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	ids := make([]string, len(vids))
	for i, v := range vids {
		vs, err := asVID(v)
		if err != nil {
			return Resolved(publishError(qctx, n.OutputVar(), err))
		}
		ids[i] = vs
	}
	return Go(func() Status {
		resp, err := qctx.Storage.DeleteVertices(ctx, qctx.CurrentSpace, ids)
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrStorage.New(err.Error()))
		}
		return publish(qctx, n.OutputVar(), execResult(resp.Response))
	})
}

func execDeleteEdges(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.DeleteEdges)
	inputVar := ""
	if vars := n.InputVars(); len(vars) > 0 {
		inputVar = vars[0]
	}
	keys, err := srcVids(qctx, inputVar, n.KeyExpr)
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	parts := make([][4]string, len(keys))
	for i, k := range keys {
		src, dst, rank, err := edgeKeyParts(k)
		if err != nil {
			return Resolved(publishError(qctx, n.OutputVar(), err))
		}
		parts[i] = [4]string{src, n.EdgeType, value.Int(rank).String(), dst}
	}
	return Go(func() Status {
		resp, err := qctx.Storage.DeleteEdges(ctx, qctx.CurrentSpace, parts)
		if err != nil {
			return publishError(qctx, n.OutputVar(), graphderr.ErrStorage.New(err.Error()))
		}
		return publish(qctx, n.OutputVar(), execResult(resp.Response))
	})
}

// evalProps evaluates each PropAssignment's expression against a constant
// binder: insert/update property values are literal expressions, never
// row-dependent references (§4.3's InsertVertices/UpdateVertex contract).
func evalProps(assigns []plan.PropAssignment) (map[string]value.Value, error) {
	out := make(map[string]value.Value, len(assigns))
	for _, a := range assigns {
		v, err := a.Expr.Eval(constBinder{})
		if err != nil {
			return nil, err
		}
		out[a.Prop] = v
	}
	return out, nil
}

// edgeKeyParts unpacks an edge key value -- a (src, dst[, rank]) list,
// rank defaulting to 0 when absent -- evaluated from KeyExpr (§4.3's InsertEdges/UpdateEdge/
// DeleteEdges contract).
func edgeKeyParts(v value.Value) (src, dst string, rank int64, err error) {
	list, ok := v.(value.List)
	if !ok || len(list.Values) < 2 {
		return "", "", 0, graphderr.ErrExecution.New("edge key must be a (src, dst[, rank]) list")
	}
	src, err = asVID(list.Values[0])
	if err != nil {
		return "", "", 0, err
	}
	dst, err = asVID(list.Values[1])
	if err != nil {
		return "", "", 0, err
	}
	if len(list.Values) >= 3 {
		if r, ok := list.Values[2].(value.Int); ok {
			rank = int64(r)
		}
	}
	return src, dst, rank, nil
}

// asVID coerces a VID-typed Value (STRING or INT64, per the space's
// vid_type) to the string form storage.Client's keys are addressed by.
func asVID(v value.Value) (string, error) {
	switch t := v.(type) {
	case value.Str:
		return string(t), nil
	case value.Int:
		return t.String(), nil
	default:
		return "", graphderr.ErrTypeMismatch.New("VID", v.Kind().String())
	}
}

func execResult(resp storage.Response) gqlctx.Result {
	if resp.Completeness <= 0 && len(resp.FailedParts) > 0 {
		return gqlctx.Failure("all partitions failed")
	}
	if resp.Completeness >= 100 {
		return gqlctx.Success(dataset.DataSetValue{DS: dataset.New(nil, []dataset.Row{{}})}, dataset.KindSequential)
	}
	return gqlctx.Partial(dataset.DataSetValue{DS: dataset.New(nil, []dataset.Row{{}})}, dataset.KindSequential, "partial write")
}
