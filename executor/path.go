package executor

import (
	"context"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

// edgeBinder backs Subgraph's per-edge Filter: $^ resolves to the edge's
// source vertex, edge properties resolve against the edge itself, and $$ is
// unavailable since the unfolded frontier bundle doesn't carry destination
// vertex properties.
type edgeBinder struct {
	vars *gqlctx.ExecutionContext
	src  value.Vertex
	edge value.Edge
}

func (b edgeBinder) Var(name string) (value.Value, error) { return b.vars.GetVar(name) }
func (b edgeBinder) VersionedVar(name string, v int64) (value.Value, error) {
	return b.vars.GetVersionedVar(name, v)
}
func (edgeBinder) VarProp(string, string) (value.Value, error) {
	return nil, graphderr.ErrExecution.New("variable properties are not valid in a subgraph filter")
}
func (edgeBinder) InputProp(string) (value.Value, error) {
	return nil, graphderr.ErrExecution.New("$- is not valid in a subgraph filter")
}
func (b edgeBinder) SrcProp(tag, prop string) (value.Value, error) {
	v, ok := b.src.TagProp(tag, prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}
func (edgeBinder) DstProp(string, string) (value.Value, error) { return value.Empty{}, nil }
func (b edgeBinder) EdgeProp(edgeType, prop string) (value.Value, error) {
	if b.edge.Type != edgeType {
		return value.Empty{}, nil
	}
	v, ok := b.edge.Prop(prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}

func init() {
	register(plan.KindBFSShortestPath, execBFSShortestPath)
	register(plan.KindProduceAllPaths, execProduceAllPaths)
	register(plan.KindProduceSemiShortestPath, execProduceSemiShortestPath)
	register(plan.KindConjunctPath, execConjunctPath)
	register(plan.KindSubgraph, execSubgraph)
}

func vidOf(v value.Value) string {
	if s, ok := v.(value.Str); ok {
		return string(s)
	}
	return v.String()
}

// stepBundles returns every round the input variable's Loop body recorded
// (one entry per iteration, each the GetNeighbors bundle DataSet that
// round's frontier expansion produced), oldest first.
func stepBundles(qctx *gqlctx.Context, inputVar string) []*dataset.DataSet {
	var out []*dataset.DataSet
	for _, r := range qctx.ExecCtx.History(inputVar) {
		if ds := r.DataSet(); ds != nil {
			out = append(out, ds)
		}
	}
	return out
}

// walkEdges unfolds a GetNeighbors bundle DataSet into (src vertex, edge)
// pairs and invokes fn for each.
func walkEdges(ds *dataset.DataSet, fn func(src value.Vertex, e value.Edge)) {
	it := dataset.NewGetNeighborsIterator(ds)
	for it.Valid() {
		src, _ := it.GetVertex()
		e, _ := it.GetEdge()
		fn(src, e)
		it.Next()
	}
}

type predecessor struct {
	srcVid string
	edge   value.Edge
}

func buildPath(vid string, pred map[string]predecessor, vertices map[string]value.Vertex) value.Path {
	var vs []value.Vertex
	var es []value.Edge
	cur := vid
	for {
		vs = append([]value.Vertex{vertices[cur]}, vs...)
		p, ok := pred[cur]
		if !ok {
			break
		}
		es = append([]value.Edge{p.edge}, es...)
		cur = p.srcVid
	}
	return value.Path{Vertices: vs, Edges: es}
}

// execBFSShortestPath keeps one predecessor per visited vid across the
// rounds the input accumulated and stops at the first round that reaches
// ToExpr, which is shortest since rounds expand the frontier breadth-first.
func execBFSShortestPath(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.BFSShortestPath)
	return Resolved(func() Status {
		fromV, err := n.FromExpr.Eval(scalarBinder{qctx.ExecCtx})
		if err != nil {
			return publishError(qctx, n.OutputVar(), err)
		}
		toV, err := n.ToExpr.Eval(scalarBinder{qctx.ExecCtx})
		if err != nil {
			return publishError(qctx, n.OutputVar(), err)
		}
		from, to := vidOf(fromV), vidOf(toV)

		pred := map[string]predecessor{}
		vertices := map[string]value.Vertex{}
		visited := map[string]bool{from: true}

		var found value.Path
		haveFound := false
		for _, ds := range stepBundles(qctx, n.InputVars()[0]) {
			if haveFound {
				break
			}
			var newlyVisited []string
			walkEdges(ds, func(src value.Vertex, e value.Edge) {
				vertices[src.VID] = src
				if !visited[src.VID] {
					return
				}
				if visited[e.Dst] {
					return
				}
				pred[e.Dst] = predecessor{srcVid: src.VID, edge: e}
				newlyVisited = append(newlyVisited, e.Dst)
			})
			for _, vid := range newlyVisited {
				visited[vid] = true
				if vid == to {
					vertices[to] = value.Vertex{VID: to}
					found = buildPath(to, pred, vertices)
					haveFound = true
					break
				}
			}
		}
		var rows []dataset.Row
		if haveFound {
			rows = append(rows, dataset.NewRow(found))
		}
		return publishDataSet(qctx, n.OutputVar(), n.ColNames(), rows, dataset.KindSequential)
	}())
}

// execProduceAllPaths enumerates every forward path recorded by the input's
// rounds from each distinct root reached, rejecting duplicate edges (and,
// when NoLoop, duplicate vertices) within a candidate path.
func execProduceAllPaths(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.ProduceAllPaths)
	return Resolved(func() Status {
		type partial struct {
			path  value.Path
			edges map[string]bool
			vids  map[string]bool
			tail  string
		}
		var frontier []partial
		for _, ds := range stepBundles(qctx, n.InputVars()[0]) {
			var next []partial
			if frontier == nil {
				walkEdges(ds, func(src value.Vertex, e value.Edge) {
					p := partial{
						path:  value.Path{Vertices: []value.Vertex{src, {VID: e.Dst}}, Edges: []value.Edge{e}},
						edges: map[string]bool{e.Src + "|" + e.Dst + "|" + e.Type: true},
						vids:  map[string]bool{src.VID: true, e.Dst: true},
						tail:  e.Dst,
					}
					next = append(next, p)
				})
			} else {
				for _, p := range frontier {
					walkEdges(ds, func(src value.Vertex, e value.Edge) {
						if src.VID != p.tail {
							return
						}
						ek := e.Src + "|" + e.Dst + "|" + e.Type
						if p.edges[ek] {
							return
						}
						if n.NoLoop && p.vids[e.Dst] {
							return
						}
						np := partial{
							path:  value.Path{Vertices: append(append([]value.Vertex{}, p.path.Vertices...), value.Vertex{VID: e.Dst}), Edges: append(append([]value.Edge{}, p.path.Edges...), e)},
							edges: map[string]bool{},
							vids:  map[string]bool{},
							tail:  e.Dst,
						}
						for k := range p.edges {
							np.edges[k] = true
						}
						np.edges[ek] = true
						for k := range p.vids {
							np.vids[k] = true
						}
						np.vids[e.Dst] = true
						next = append(next, np)
					})
				}
				next = append(frontier, next...)
			}
			frontier = next
		}
		rows := make([]dataset.Row, len(frontier))
		for i, p := range frontier {
			rows[i] = dataset.NewRow(p.path)
		}
		return publishDataSet(qctx, n.OutputVar(), n.ColNames(), rows, dataset.KindSequential)
	}())
}

// semiKey identifies one (src, dst) shortest-path slot in
// execProduceSemiShortestPath's cost and predecessor tables.
type semiKey struct{ src, dst string }

func edgeCost(e value.Edge, weightProp string) float64 {
	if weightProp == "" {
		return 1
	}
	wv, ok := e.Prop(weightProp)
	if !ok {
		return 1
	}
	switch t := wv.(type) {
	case value.Float:
		return float64(t)
	case value.Int:
		return float64(t)
	default:
		return 1
	}
}

// execProduceSemiShortestPath keeps one (cost, predecessor) pointer per
// (src, dst) pair, cost being hop count when WeightProp is unset or the sum
// of that numeric edge property otherwise. Every source vertex seeds its
// own (src, src) root at cost 0, and each edge out of a vertex extends
// every (root, vertex) pair already recorded, so costs accumulate across
// rounds.
func execProduceSemiShortestPath(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.ProduceSemiShortestPath)
	return Resolved(func() Status {
		best := map[semiKey]float64{}
		pred := map[semiKey]predecessor{}
		vertices := map[string]value.Vertex{}

		for _, ds := range stepBundles(qctx, n.InputVars()[0]) {
			walkEdges(ds, func(src value.Vertex, e value.Edge) {
				vertices[src.VID] = src
				srcRoot := semiKey{src: src.VID, dst: src.VID}
				if _, ok := best[srcRoot]; !ok {
					best[srcRoot] = 0
				}
				var via []semiKey
				for k := range best {
					if k.dst == src.VID && k.src != e.Dst {
						via = append(via, k)
					}
				}
				for _, from := range via {
					k := semiKey{src: from.src, dst: e.Dst}
					total := best[from] + edgeCost(e, n.WeightProp)
					if cur, ok := best[k]; !ok || total < cur {
						best[k] = total
						pred[k] = predecessor{srcVid: src.VID, edge: e}
					}
				}
			})
		}
		var rows []dataset.Row
		for k := range pred {
			vertices[k.dst] = value.Vertex{VID: k.dst}
			path := buildPath(k.dst, pathPredFor(k.src, pred), vertices)
			rows = append(rows, dataset.NewRow(value.Str(k.src), value.Str(k.dst), value.Float(best[k]), path))
		}
		return publishDataSet(qctx, n.OutputVar(), n.ColNames(), rows, dataset.KindSequential)
	}())
}

// pathPredFor restricts pred to the chain ending at dst that originates at
// src, so buildPath doesn't wander into another source's predecessor chain
// when multiple sources share the same predecessor map.
func pathPredFor(src string, pred map[semiKey]predecessor) map[string]predecessor {
	out := map[string]predecessor{}
	for k, p := range pred {
		if k.src == src {
			out[k.dst] = p
		}
	}
	return out
}

// execConjunctPath pairs a forward frontier (left) and a backward frontier
// (right) produced by two independent sub-plans, joining them at every vid
// visited by both sides over all recorded rounds (each side's path to that
// vid follows its first-recorded predecessor). MaxSteps and PathKind are
// not read: the join is not gated on how many rounds either side has run.
func execConjunctPath(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.ConjunctPath)
	return Resolved(func() Status {
		vars := n.InputVars()
		leftSteps := stepBundles(qctx, vars[0])
		rightSteps := stepBundles(qctx, vars[1])

		fwdPred := map[string]predecessor{}
		fwdVisited := map[string]bool{}
		vertices := map[string]value.Vertex{}
		for _, ds := range leftSteps {
			walkEdges(ds, func(src value.Vertex, e value.Edge) {
				vertices[src.VID] = src
				fwdVisited[src.VID] = true
				if _, ok := fwdPred[e.Dst]; !ok {
					fwdPred[e.Dst] = predecessor{srcVid: src.VID, edge: e}
				}
				fwdVisited[e.Dst] = true
			})
		}
		bwdPred := map[string]predecessor{}
		bwdVisited := map[string]bool{}
		for _, ds := range rightSteps {
			walkEdges(ds, func(src value.Vertex, e value.Edge) {
				vertices[src.VID] = src
				bwdVisited[src.VID] = true
				if _, ok := bwdPred[e.Dst]; !ok {
					bwdPred[e.Dst] = predecessor{srcVid: src.VID, edge: e}
				}
				bwdVisited[e.Dst] = true
			})
		}

		var rows []dataset.Row
		for vid := range fwdVisited {
			if !bwdVisited[vid] {
				continue
			}
			vertices[vid] = value.Vertex{VID: vid}
			fwd := buildPath(vid, fwdPred, vertices)
			bwd := buildPath(vid, bwdPred, vertices)
			full := value.Path{Vertices: append([]value.Vertex{}, fwd.Vertices...), Edges: append([]value.Edge{}, fwd.Edges...)}
			for i := len(bwd.Edges) - 1; i >= 0; i-- {
				e := bwd.Edges[i]
				full.Edges = append(full.Edges, value.Edge{Src: e.Dst, Dst: e.Src, Type: e.Type, Ranking: e.Ranking, Props: e.Props})
			}
			for i := len(bwd.Vertices) - 2; i >= 0; i-- {
				full.Vertices = append(full.Vertices, bwd.Vertices[i])
			}
			rows = append(rows, dataset.NewRow(full))
		}
		return publishDataSet(qctx, n.OutputVar(), n.ColNames(), rows, dataset.KindSequential)
	}())
}

// execSubgraph collects the source vertices and the edges of every round
// recorded in its input variable, deduplicated by vid and by edge key.
// Filter (when set) drops an edge from the output; it is applied after the
// rounds have run, so it does not narrow any frontier. Steps is not read
// here, and destination vertices are not added to the vertex list.
func execSubgraph(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Subgraph)
	var stepErr error
	return Resolved(func() Status {
		vertices := map[string]value.Vertex{}
		edges := map[string]value.Edge{}
		for _, ds := range stepBundles(qctx, n.InputVars()[0]) {
			walkEdges(ds, func(src value.Vertex, e value.Edge) {
				if stepErr != nil {
					return
				}
				vertices[src.VID] = src
				if n.Filter != nil {
					keep, err := n.Filter.Eval(edgeBinder{vars: qctx.ExecCtx, src: src, edge: e})
					if err != nil {
						stepErr = err
						return
					}
					if !value.IsTruthy(keep) {
						return
					}
				}
				edges[e.Src+"|"+e.Dst+"|"+e.Type+"|"+vidOf(value.Int(e.Ranking))] = e
			})
			if stepErr != nil {
				return publishError(qctx, n.OutputVar(), stepErr)
			}
		}
		vList := make([]value.Value, 0, len(vertices))
		for _, v := range vertices {
			vList = append(vList, v)
		}
		eList := make([]value.Value, 0, len(edges))
		for _, e := range edges {
			eList = append(eList, e)
		}
		row := dataset.NewRow(value.NewList(vList...), value.NewList(eList...))
		return publishDataSet(qctx, n.OutputVar(), n.ColNames(), []dataset.Row{row}, dataset.KindSequential)
	}())
}
