// Package planner implements the Planner (C5): it walks an ast.Statement
// tree and composes the plan.Node sub-plans validate's transforms produce
// into one rooted plan.ExecutionPlan (grounded on sql/planbuilder's
// statement-to-node composition, generalized from a single SQL grammar to
// this module's pipe/set/sequential composition rules).
//
// Planner never imports validate: each statement kind's TransformFunc is
// registered here by validate's own init(), keeping the dependency edge
// one-directional (validate depends on planner's registry/composition
// helpers, not the reverse).
package planner

import (
	"context"
	"fmt"

	"github.com/vesoft-inc/nebula-graph-sub000/ast"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
)

// TransformFunc builds one ast.Statement into a plan.Node sub-plan spliced
// onto dep/inputVar (the immediately preceding sub-plan's root and output
// variable; both are zero values for a statement that starts a fresh
// source rather than consuming piped input).
type TransformFunc func(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error)

var registry = map[ast.Kind]TransformFunc{}

// Register associates a TransformFunc with an ast.Kind. Called from
// validate's init() once per statement kind.
func Register(k ast.Kind, fn TransformFunc) {
	registry[k] = fn
}

// Transform dispatches stmt to its registered TransformFunc.
func Transform(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	fn, ok := registry[stmt.Kind()]
	if !ok {
		return nil, fmt.Errorf("planner: no transform registered for statement kind %s", stmt.Kind())
	}
	return fn(ctx, qctx, alloc, stmt, dep, inputVar)
}

// Plan builds stmt into a complete, rooted ExecutionPlan: a fresh
// IDAllocator and symbol table scope, one Transform dispatch from the
// top, then a DataCollect(RowBasedMove) wrap so every statement's
// user-visible result presents through the same terminal node shape
// (§4.5) -- skipped when the statement already produced its own
// DataCollect (the traversal/path statements collect internally).
func Plan(ctx context.Context, qctx *gqlctx.Context, stmt ast.Statement, planID string) (*plan.ExecutionPlan, error) {
	alloc := &plan.IDAllocator{}
	root, err := Transform(ctx, qctx, alloc, stmt, nil, "")
	if err != nil {
		return nil, err
	}
	root = wrapRowBasedMove(qctx, alloc, root)
	ep := plan.NewExecutionPlan(planID, root)
	if err := ep.Validate(); err != nil {
		return nil, err
	}
	return ep, nil
}

func wrapRowBasedMove(qctx *gqlctx.Context, alloc *plan.IDAllocator, root plan.Node) plan.Node {
	if root.Kind() == plan.KindDataCollect {
		return root
	}
	id := alloc.Next()
	vi, err := qctx.SymTbl.NewVariable("", plan.KindDataCollect, id)
	if err != nil {
		panic(err)
	}
	dc := plan.NewDataCollect(id, vi.Name, []plan.Node{root}, []string{root.OutputVar()}, plan.CollectRowBasedMove, root.ColNames())
	qctx.SymTbl.RegisterNode(dc)
	if err := qctx.SymTbl.BindProducer(dc.OutputVar(), dc.ID()); err != nil {
		panic(err)
	}
	if err := qctx.SymTbl.BindReader(root.OutputVar(), dc.ID()); err != nil {
		panic(err)
	}
	return dc
}
