package graphd

import (
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
)

// describePlan builds the PlanDescription an EXPLAIN/EXPLAIN PROFILE
// response carries, walking the plan depth-first from its root so sibling
// ordering matches the order a reader would expect to scan the tree in
// (dependencies before the node that consumes them).
func describePlan(ep *plan.ExecutionPlan, profile bool, format string) *gqlctx.PlanDescription {
	desc := &gqlctx.PlanDescription{
		NodeIndexMap: map[int64]int{},
		Format:       format,
	}

	seen := map[int64]bool{}
	var walk func(n plan.Node)
	walk = func(n plan.Node) {
		if n == nil || seen[n.ID()] {
			return
		}
		seen[n.ID()] = true
		for _, dep := range n.Dependencies() {
			walk(dep)
		}
		switch t := n.(type) {
		case *plan.Select:
			walk(t.Then)
			walk(t.Else)
		case *plan.Loop:
			walk(t.Body)
		}
		desc.NodeIndexMap[n.ID()] = len(desc.NodeDescs)
		desc.NodeDescs = append(desc.NodeDescs, n.Explain())
	}
	walk(ep.Root)

	return desc
}
