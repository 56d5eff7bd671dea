package validate

import (
	"context"

	"github.com/vesoft-inc/nebula-graph-sub000/ast"
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/planner"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

func init() {
	planner.Register(ast.KindGo, TransformGo)
	planner.Register(ast.KindFetchVertices, TransformFetchVertices)
	planner.Register(ast.KindFetchEdges, TransformFetchEdges)
	planner.Register(ast.KindLookup, TransformLookup)
	planner.Register(ast.KindGetSubgraph, TransformGetSubgraph)
}

// constListExpr turns a literal vid/key list into the ListExpr a scan
// node's source expression evaluates once with no input (Start-rooted).
func constListExpr(consts []string) expreval.Expression {
	elems := make([]expreval.Expression, len(consts))
	for i, c := range consts {
		elems[i] = &expreval.Literal{V: value.Str(c)}
	}
	return &expreval.ListExpr{Elems: elems}
}

// dstVidsExpr builds the neighbor-expansion step's "next hop source"
// expression: reads the prior GetNeighbors' _edges column and returns the
// list of destination vids it carries, for Unwind to explode one per row.
func dstVidsExpr(col string) expreval.Expression {
	return &expreval.FunctionCall{
		Name: "__dst_vids",
		Args: []expreval.Expression{&expreval.InputPropRef{Prop: col}},
		Impl: func(args []value.Value) (value.Value, error) {
			l, ok := args[0].(value.List)
			if !ok {
				return value.List{}, nil
			}
			out := make([]value.Value, 0, len(l.Values))
			for _, ev := range l.Values {
				if e, ok := ev.(value.Edge); ok {
					out = append(out, value.Str(e.Dst))
				}
			}
			return value.List{Values: out}, nil
		},
	}
}

// stepDir returns a plan.Direction from an ast int (the grammar encodes it
// the same way).
func stepDir(d int) plan.Direction { return plan.Direction(d) }

// TransformGo builds `GO [m TO n STEPS] FROM <src> OVER <edges> [WHERE ...]
// YIELD ...` into one GetNeighbors per hop, dedup-narrowed between hops on
// the expanded vid set, then a Filter/Project/Dedup tail for WHERE/YIELD/
// DISTINCT (§4.4/§4.7).
func TransformGo(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.GoStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if s.Steps.Min < 1 || s.Steps.Max < s.Steps.Min {
		return nil, graphderr.ErrExecution.New("GO step range must satisfy 1 <= min <= max")
	}
	srcExpr := s.FromExpr
	if s.FromConst != nil {
		srcExpr = constListExpr(s.FromConst)
	}
	if err := checkSingleReference(srcExpr, s.Where); err != nil {
		return nil, err
	}

	hopDep, hopVar, hopSrc := dep, inputVar, srcExpr
	for hop := int64(1); hop < s.Steps.Max; hop++ {
		gnID, gnVar := nextVar(qctx, alloc, plan.KindGetNeighbors)
		gn := plan.NewGetNeighbors(gnID, gnVar, hopDep, hopVar, hopSrc, s.EdgeTypes, stepDir(s.Direction))
		bind(qctx, gn)

		uwID, uwVar := nextVar(qctx, alloc, plan.KindUnwind)
		uw := plan.NewUnwind(uwID, uwVar, gn, gn.OutputVar(), dstVidsExpr("_edges"), "_vid")
		bind(qctx, uw)

		pID, pVar := nextVar(qctx, alloc, plan.KindProject)
		proj := plan.NewProject(pID, pVar, uw, uw.OutputVar(), []plan.YieldColumn{{Expr: &expreval.InputPropRef{Prop: "_vid"}, Alias: "_vid"}})
		bind(qctx, proj)

		dID, dVar := nextVar(qctx, alloc, plan.KindDedup)
		dd := plan.NewDedup(dID, dVar, proj, proj.OutputVar())
		bind(qctx, dd)

		hopDep, hopVar, hopSrc = dd, dd.OutputVar(), &expreval.InputPropRef{Prop: "_vid"}
	}

	gnID, gnVar := nextVar(qctx, alloc, plan.KindGetNeighbors)
	gn := plan.NewGetNeighbors(gnID, gnVar, hopDep, hopVar, hopSrc, s.EdgeTypes, stepDir(s.Direction))
	props := expreval.NewProps()
	for _, it := range s.Yield {
		mergeProps(props, expreval.CollectProps(it.Expr))
	}
	if s.Where != nil {
		mergeProps(props, expreval.CollectProps(s.Where))
	}
	gn.VertexProps = toPropMap(props.SrcTagProp)
	for tag, p := range toPropMap(props.DstTagProp) {
		if gn.VertexProps == nil {
			gn.VertexProps = map[string][]string{}
		}
		gn.VertexProps[tag] = append(gn.VertexProps[tag], p...)
	}
	gn.EdgeProps = toPropMap(props.EdgeProp)
	var cur plan.Node = gn
	bind(qctx, cur)

	if s.Where != nil {
		fID, fVar := nextVar(qctx, alloc, plan.KindFilter)
		f := plan.NewFilter(fID, fVar, cur, cur.OutputVar(), s.Where)
		cur = bind(qctx, f)
	}

	items, err := expandYield(s.Yield, cur.ColNames(), func(name string) ([]string, error) { return varColNames(qctx, name) })
	if err != nil {
		return nil, err
	}
	proj, err := buildProject(qctx, alloc, cur, cur.OutputVar(), items)
	if err != nil {
		return nil, err
	}
	cur = proj

	if s.Distinct {
		dID, dVar := nextVar(qctx, alloc, plan.KindDedup)
		cur = bind(qctx, plan.NewDedup(dID, dVar, cur, cur.OutputVar()))
	}
	return cur, nil
}

func mergeProps(dst, src *expreval.Props) {
	for k := range src.InputCols {
		dst.InputCols[k] = true
	}
	for k := range src.VarCols {
		dst.VarCols[k] = true
	}
	for tag, ps := range src.SrcTagProp {
		if dst.SrcTagProp[tag] == nil {
			dst.SrcTagProp[tag] = map[string]bool{}
		}
		for p := range ps {
			dst.SrcTagProp[tag][p] = true
		}
	}
	for tag, ps := range src.DstTagProp {
		if dst.DstTagProp[tag] == nil {
			dst.DstTagProp[tag] = map[string]bool{}
		}
		for p := range ps {
			dst.DstTagProp[tag][p] = true
		}
	}
	for et, ps := range src.EdgeProp {
		if dst.EdgeProp[et] == nil {
			dst.EdgeProp[et] = map[string]bool{}
		}
		for p := range ps {
			dst.EdgeProp[et][p] = true
		}
	}
}

func toPropMap(m map[string]map[string]bool) map[string][]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string][]string, len(m))
	for k, ps := range m {
		for p := range ps {
			out[k] = append(out[k], p)
		}
	}
	return out
}

// TransformFetchVertices builds `FETCH PROP ON <tags> <vids> YIELD ...`.
func TransformFetchVertices(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.FetchVerticesStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	for _, tag := range s.Tags {
		if _, err := qctx.Meta.ToTagID(ctx, qctx.CurrentSpace, tag); err != nil {
			return nil, graphderr.ErrUnknownTag.New(tag)
		}
	}
	vidExpr := s.VidExpr
	if s.VidConst != nil {
		vidExpr = constListExpr(s.VidConst)
	}
	if err := checkSingleReference(vidExpr); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindGetVertices)
	gv := plan.NewGetVertices(id, outVar, dep, inputVar, vidExpr)
	props := expreval.NewProps()
	for _, it := range s.Yield {
		mergeProps(props, expreval.CollectProps(it.Expr))
	}
	gv.TagProps = toPropMap(props.SrcTagProp)
	var cur plan.Node = bind(qctx, gv)

	items, err := expandYield(s.Yield, cur.ColNames(), func(name string) ([]string, error) { return varColNames(qctx, name) })
	if err != nil {
		return nil, err
	}
	proj, err := buildProject(qctx, alloc, cur, cur.OutputVar(), items)
	if err != nil {
		return nil, err
	}
	cur = proj
	if s.Distinct {
		dID, dVar := nextVar(qctx, alloc, plan.KindDedup)
		cur = bind(qctx, plan.NewDedup(dID, dVar, cur, cur.OutputVar()))
	}
	return cur, nil
}

// TransformFetchEdges builds `FETCH PROP ON <edge> <keys> YIELD ...`.
func TransformFetchEdges(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.FetchEdgesStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if _, err := qctx.Meta.ToEdgeType(ctx, qctx.CurrentSpace, s.EdgeType); err != nil {
		return nil, graphderr.ErrUnknownEdgeType.New(s.EdgeType)
	}
	keyExpr := s.KeyExpr
	if s.KeyConst != nil {
		elems := make([]expreval.Expression, len(s.KeyConst))
		for i, k := range s.KeyConst {
			elems[i] = &expreval.ListExpr{Elems: []expreval.Expression{
				&expreval.Literal{V: value.Str(k[0])}, &expreval.Literal{V: value.Str(k[1])},
				&expreval.Literal{V: value.Str(k[2])}, &expreval.Literal{V: value.Str(k[3])},
			}}
		}
		keyExpr = &expreval.ListExpr{Elems: elems}
	}
	if err := checkSingleReference(keyExpr); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindGetEdges)
	ge := plan.NewGetEdges(id, outVar, dep, inputVar, s.EdgeType, keyExpr)
	props := expreval.NewProps()
	for _, it := range s.Yield {
		mergeProps(props, expreval.CollectProps(it.Expr))
	}
	for et, ps := range toPropMap(props.EdgeProp) {
		if et == s.EdgeType {
			ge.Props = ps
		}
	}
	var cur plan.Node = bind(qctx, ge)

	items, err := expandYield(s.Yield, cur.ColNames(), func(name string) ([]string, error) { return varColNames(qctx, name) })
	if err != nil {
		return nil, err
	}
	proj, err := buildProject(qctx, alloc, cur, cur.OutputVar(), items)
	if err != nil {
		return nil, err
	}
	cur = proj
	if s.Distinct {
		dID, dVar := nextVar(qctx, alloc, plan.KindDedup)
		cur = bind(qctx, plan.NewDedup(dID, dVar, cur, cur.OutputVar()))
	}
	return cur, nil
}

// TransformLookup builds `LOOKUP ON <tag|edge> WHERE ... YIELD ...` into an
// IndexScan over the bounded AND-clause grammar; a text-search clause is
// rewritten into an equivalent equality filter recognized the same way
// (§4.4's "bounded grammar" Lookup validator).
func TransformLookup(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.LookupStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	var schemaID int64
	if s.IsEdge {
		id, err := qctx.Meta.ToEdgeType(ctx, qctx.CurrentSpace, s.SchemaName)
		if err != nil {
			return nil, graphderr.ErrUnknownEdgeType.New(s.SchemaName)
		}
		schemaID = int64(id)
	} else {
		id, err := qctx.Meta.ToTagID(ctx, qctx.CurrentSpace, s.SchemaName)
		if err != nil {
			return nil, graphderr.ErrUnknownTag.New(s.SchemaName)
		}
		schemaID = int64(id)
	}

	var filters []plan.IndexFilter
	for _, f := range s.Filters {
		filters = append(filters, plan.IndexFilter{Column: f.Column, Op: f.Op, Value: f.Value})
	}
	if s.TextSearch != nil {
		filters = append(filters, plan.IndexFilter{
			Column: s.TextSearch.Column,
			Op:     expreval.OpEQ,
			Value:  &expreval.Literal{V: value.Str(s.TextSearch.Query)},
		})
	}

	id, outVar := nextVar(qctx, alloc, plan.KindIndexScan)
	scan := plan.NewIndexScan(id, outVar, dep, inputVar, schemaID, s.IsEdge)
	scan.IndexQueries = []plan.IndexQueryContext{{Filters: filters}}
	colName := "_vertex"
	if s.IsEdge {
		colName = "_edge"
	}
	var cur plan.Node = bind(qctx, scan)

	items, err := expandYield(s.Yield, []string{colName}, func(name string) ([]string, error) { return varColNames(qctx, name) })
	if err != nil {
		return nil, err
	}
	props := expreval.NewProps()
	for _, it := range items {
		mergeProps(props, expreval.CollectProps(it.Expr))
	}
	for _, ps := range toPropMap(props.SrcTagProp) {
		scan.ReturnColumns = append(scan.ReturnColumns, ps...)
	}
	for _, ps := range toPropMap(props.EdgeProp) {
		scan.ReturnColumns = append(scan.ReturnColumns, ps...)
	}
	return buildProject(qctx, alloc, cur, cur.OutputVar(), items)
}

// TransformGetSubgraph builds `GET SUBGRAPH [steps] FROM <src> [WHERE ...]`
// as one GetNeighbors per hop (the BFS frontier, simplified to reuse the
// same hop construction TransformGo uses) collected by a terminal
// DataCollect(Subgraph).
func TransformGetSubgraph(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.GetSubgraphStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	srcExpr := s.FromExpr
	if s.FromConst != nil {
		srcExpr = constListExpr(s.FromConst)
	}
	if err := checkSingleReference(srcExpr, s.Where); err != nil {
		return nil, err
	}
	steps := s.Steps
	if steps < 1 {
		steps = 1
	}

	hopDep, hopVar, hopSrc := dep, inputVar, srcExpr
	var hops []plan.Node
	for hop := int64(0); hop < steps; hop++ {
		gnID, gnVar := nextVar(qctx, alloc, plan.KindGetNeighbors)
		gn := plan.NewGetNeighbors(gnID, gnVar, hopDep, hopVar, hopSrc, s.EdgeTypes, stepDir(s.Direction))
		gn.Filter = s.Where
		bind(qctx, gn)
		hops = append(hops, gn)

		if hop == steps-1 {
			break
		}
		uwID, uwVar := nextVar(qctx, alloc, plan.KindUnwind)
		uw := plan.NewUnwind(uwID, uwVar, gn, gn.OutputVar(), dstVidsExpr("_edges"), "_vid")
		bind(qctx, uw)
		dID, dVar := nextVar(qctx, alloc, plan.KindDedup)
		dd := plan.NewDedup(dID, dVar, uw, uw.OutputVar())
		bind(qctx, dd)
		hopDep, hopVar, hopSrc = dd, dd.OutputVar(), &expreval.InputPropRef{Prop: "_vid"}
	}

	deps := make([]plan.Node, len(hops))
	inputVars := make([]string, len(hops))
	copy(deps, hops)
	for i, h := range hops {
		inputVars[i] = h.OutputVar()
	}
	id, outVar := nextVar(qctx, alloc, plan.KindDataCollect)
	dc := plan.NewDataCollect(id, outVar, deps, inputVars, plan.CollectSubgraph, []string{"_vertices", "_edges"})
	return bind(qctx, dc), nil
}
