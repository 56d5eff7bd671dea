package scheduler

import (
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/symtbl"
)

// AnalyzeLifetimes decides, for every variable in the plan's symbol table,
// whether its producer must append to history (gqlctx.Variable.MultiVersion)
// rather than overwrite the latest entry. The common case is overwrite:
// most variables are produced once and read once. A variable needs the
// full history when a Loop body produces it across iterations and
// something downstream reaches back through it, when a reader names it
// with an explicit version (Join's JoinSide, a $var{n} reference), or when
// the reader is one of the structural multi-version consumers (Join,
// ConjunctPath, DataCollect).
func AnalyzeLifetimes(ep *plan.ExecutionPlan, tbl *symtbl.Table, execCtx *gqlctx.ExecutionContext) {
	loopBodies := collectLoopBodies(ep)
	versionedRefs := collectVersionedRefs(ep)

	for name, info := range tbl.AllVariables() {
		if needsMultiVersion(name, info, ep, loopBodies, versionedRefs) {
			info.MultiVersion = true
			execCtx.SetMultiVersion(name, true)
		}
	}
}

func needsMultiVersion(name string, info *symtbl.VarInfo, ep *plan.ExecutionPlan, loopBodies map[int64]bool, versionedRefs map[string]bool) bool {
	if versionedRefs[name] {
		return true
	}
	if info.HasProducer && loopBodies[info.ProducerID] && len(info.Readers) > 0 {
		return true
	}
	for readerID := range info.Readers {
		n, ok := ep.Nodes[readerID]
		if !ok {
			continue
		}
		switch n.(type) {
		case *plan.DataCollect, *plan.ConjunctPath, *plan.InnerJoin, *plan.LeftJoin:
			return true
		}
	}
	return false
}

// collectLoopBodies returns the set of node ids reachable from a
// Select.Then/Else or Loop.Body root -- subtrees plan.ExecutionPlan.collect
// folds in but Dependencies() deliberately excludes (P2) -- together with
// everything those roots depend on. needsMultiVersion treats every id in
// the set alike, so producers under a Select branch are marked the same
// way as producers under a Loop.Body.
func collectLoopBodies(ep *plan.ExecutionPlan) map[int64]bool {
	ids := map[int64]bool{}
	var mark func(n plan.Node)
	mark = func(n plan.Node) {
		if n == nil || ids[n.ID()] {
			return
		}
		ids[n.ID()] = true
		for _, dep := range n.Dependencies() {
			mark(dep)
		}
		switch t := n.(type) {
		case *plan.Select:
			mark(t.Then)
			mark(t.Else)
		case *plan.Loop:
			mark(t.Body)
		}
	}
	var walk func(n plan.Node)
	walk = func(n plan.Node) {
		if n == nil {
			return
		}
		if t, ok := n.(*plan.Loop); ok {
			mark(t.Body)
		}
		if t, ok := n.(*plan.Select); ok {
			mark(t.Then)
			mark(t.Else)
		}
		for _, dep := range n.Dependencies() {
			walk(dep)
		}
	}
	walk(ep.Root)
	return ids
}

// collectVersionedRefs scans every expression reachable from the plan for
// an explicit VersionedVarRef, returning the set of variable names any
// expression asks history from -- those producers can never safely
// overwrite in place.
func collectVersionedRefs(ep *plan.ExecutionPlan) map[string]bool {
	out := map[string]bool{}
	note := func(e expreval.Expression) {
		if e == nil {
			return
		}
		e.Walk(func(child expreval.Expression) {
			if r, ok := child.(*expreval.VersionedVarRef); ok {
				out[r.Name] = true
			}
		})
	}
	for _, n := range ep.Nodes {
		for _, e := range nodeExpressions(n) {
			note(e)
		}
	}
	return out
}

// nodeExpressions returns the expressions a node directly carries (not its
// dependencies'), covering every kind that embeds one.
func nodeExpressions(n plan.Node) []expreval.Expression {
	var out []expreval.Expression
	add := func(es ...expreval.Expression) {
		for _, e := range es {
			if e != nil {
				out = append(out, e)
			}
		}
	}
	addTerms := func(terms []plan.OrderTerm) {
		for _, t := range terms {
			add(t.Expr)
		}
	}
	switch t := n.(type) {
	case *plan.Filter:
		add(t.Predicate)
	case *plan.Project:
		for _, c := range t.Columns {
			add(c.Expr)
		}
	case *plan.Sort:
		addTerms(t.Keys)
	case *plan.TopN:
		addTerms(t.Keys)
	case *plan.Aggregate:
		add(t.GroupKeys...)
		for _, it := range t.GroupItems {
			if it.Agg != nil {
				add(it.Agg)
			} else {
				add(it.Expr)
			}
		}
	case *plan.Unwind:
		add(t.ListExpr)
	case *plan.GetNeighbors:
		add(t.SrcExpr, t.Filter)
		addTerms(t.OrderBy)
	case *plan.GetVertices:
		add(t.VidExpr, t.Filter)
		addTerms(t.OrderBy)
	case *plan.GetEdges:
		add(t.KeyExpr, t.Filter)
		addTerms(t.OrderBy)
	case *plan.InnerJoin:
		add(t.HashKeys...)
		add(t.ProbeKeys...)
	case *plan.LeftJoin:
		add(t.HashKeys...)
		add(t.ProbeKeys...)
	case *plan.Select:
		add(t.Condition)
	case *plan.Loop:
		add(t.Condition)
	case *plan.Assign:
		add(t.Expr)
	case *plan.BFSShortestPath:
		add(t.FromExpr, t.ToExpr)
	case *plan.Subgraph:
		add(t.Filter)
	case *plan.InsertVertices:
		add(t.VidExpr)
		for _, props := range t.Props {
			for _, p := range props {
				add(p.Expr)
			}
		}
	case *plan.InsertEdges:
		add(t.KeyExpr)
		for _, p := range t.Props {
			add(p.Expr)
		}
	case *plan.UpdateVertex:
		add(t.VidExpr, t.When)
		for _, p := range t.Set {
			add(p.Expr)
		}
	case *plan.UpdateEdge:
		add(t.KeyExpr, t.When)
		for _, p := range t.Set {
			add(p.Expr)
		}
	case *plan.DeleteVertices:
		add(t.VidExpr)
	case *plan.DeleteEdges:
		add(t.KeyExpr)
	}
	return out
}
