package validate

import (
	"context"
	"fmt"

	"github.com/vesoft-inc/nebula-graph-sub000/ast"
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/planner"
)

func init() {
	planner.Register(ast.KindPipe, TransformPipe)
	planner.Register(ast.KindSet, TransformSet)
	planner.Register(ast.KindSequential, TransformSequential)
	planner.Register(ast.KindGroupBy, TransformGroupBy)
	planner.Register(ast.KindYield, TransformYield)
	planner.Register(ast.KindOrderBy, TransformOrderBy)
	planner.Register(ast.KindLimit, TransformLimit)
	planner.Register(ast.KindAssign, TransformAssign)
	planner.Register(ast.KindExplain, TransformExplain)
	planner.Register(ast.KindSwitchSpace, TransformSwitchSpace)
}

// maxSequentialStatements bounds a `;`-chain's length (§4.4).
const maxSequentialStatements = 256

// TransformPipe chains Left's output into Right as $- (§4.4 Pipe).
func TransformPipe(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.PipeStmt)
	left, err := planner.Transform(ctx, qctx, alloc, s.Left, dep, inputVar)
	if err != nil {
		return nil, err
	}
	return planner.Transform(ctx, qctx, alloc, s.Right, left, left.OutputVar())
}

// TransformSet builds UNION/INTERSECT/MINUS: both sides are independent
// complete statements (P1: set-op nodes require matching column-name
// vectors, checked here before the plan node is built).
func TransformSet(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.SetStmt)
	left, err := planner.Transform(ctx, qctx, alloc, s.Left, nil, "")
	if err != nil {
		return nil, err
	}
	right, err := planner.Transform(ctx, qctx, alloc, s.Right, nil, "")
	if err != nil {
		return nil, err
	}
	if !sameColumns(left.ColNames(), right.ColNames()) {
		return nil, graphderr.ErrMismatchedColumns.New(string(left.Kind()), string(right.Kind()))
	}
	var cur plan.Node
	switch s.Op {
	case ast.SetUnion:
		id, outVar := nextVar(qctx, alloc, plan.KindUnion)
		cur = bind(qctx, plan.NewUnion(id, outVar, left, right, left.OutputVar(), right.OutputVar()))
	case ast.SetIntersect:
		id, outVar := nextVar(qctx, alloc, plan.KindIntersect)
		cur = bind(qctx, plan.NewIntersect(id, outVar, left, right, left.OutputVar(), right.OutputVar()))
	case ast.SetMinus:
		id, outVar := nextVar(qctx, alloc, plan.KindMinus)
		cur = bind(qctx, plan.NewMinus(id, outVar, left, right, left.OutputVar(), right.OutputVar()))
	default:
		return nil, fmt.Errorf("validate: unknown set operator %s", s.Op)
	}
	if s.Op == ast.SetUnion && s.Distinct {
		dID, dVar := nextVar(qctx, alloc, plan.KindDedup)
		cur = bind(qctx, plan.NewDedup(dID, dVar, cur, cur.OutputVar()))
	}
	return cur, nil
}

func sameColumns(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TransformSequential builds a `;`-chain, threading each statement's
// output as the next statement's pipe input. A statement that can only
// ever appear mid-chain (it implicitly reads $- with no FROM/traversal
// clause of its own) is rejected as the first clause (§4.4).
func TransformSequential(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.SequentialStmt)
	if len(s.Statements) > maxSequentialStatements {
		return nil, graphderr.ErrTooManyStatements.New(len(s.Statements), maxSequentialStatements)
	}
	cur, curVar := dep, inputVar
	for i, st := range s.Statements {
		if i == 0 && cur == nil {
			if leading, bad := isLeadingClauseError(st); bad {
				return nil, graphderr.ErrLeadingClause.New(leading)
			}
		}
		n, err := planner.Transform(ctx, qctx, alloc, st, cur, curVar)
		if err != nil {
			return nil, err
		}
		cur, curVar = n, n.OutputVar()
	}
	return cur, nil
}

func isLeadingClauseError(st ast.Statement) (string, bool) {
	switch t := st.(type) {
	case *ast.OrderByStmt:
		return "ORDER BY", true
	case *ast.LimitStmt:
		return "LIMIT", true
	case *ast.GroupByStmt:
		if t.Input == nil {
			return "GROUP BY", true
		}
	}
	return "", false
}

// TransformGroupBy builds `... | GROUP BY <keys> YIELD <items>` into an
// Aggregate node (§4.7): non-aggregate Yield items pass through as group
// keys, aggregate calls become GroupItems the Aggregate executor drives.
func TransformGroupBy(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.GroupByStmt)
	d, iv := dep, inputVar
	if s.Input != nil {
		n, err := planner.Transform(ctx, qctx, alloc, s.Input, nil, "")
		if err != nil {
			return nil, err
		}
		d, iv = n, n.OutputVar()
	}
	for _, k := range s.GroupKeys {
		if err := rejectNestedAgg(k); err != nil {
			return nil, err
		}
	}
	items := make([]plan.GroupItem, len(s.Yield))
	for i, it := range s.Yield {
		if err := rejectNestedAgg(it.Expr); err != nil {
			return nil, err
		}
		alias := it.Alias
		if alias == "" {
			alias = it.Expr.String()
		}
		if agg, ok := it.Expr.(*expreval.AggregateCall); ok {
			items[i] = plan.GroupItem{Agg: agg, Alias: alias}
		} else {
			items[i] = plan.GroupItem{Expr: it.Expr, Alias: alias}
		}
	}
	id, outVar := nextVar(qctx, alloc, plan.KindAggregate)
	return bind(qctx, plan.NewAggregate(id, outVar, d, iv, s.GroupKeys, items)), nil
}

// TransformYield builds a bare `YIELD <items> [WHERE ...]` with no FROM/
// traversal clause, sourcing a single empty row from a Start node when it
// isn't itself chained after a pipe (e.g. `YIELD 1+1`).
func TransformYield(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.YieldStmt)
	d, iv := dep, inputVar
	if d == nil && iv == "" {
		id, outVar := nextVar(qctx, alloc, plan.KindStart)
		start := bind(qctx, plan.NewStart(id, outVar))
		d, iv = start, start.OutputVar()
	}
	if err := checkSingleReference(append(exprsOf(s.Yield), s.Where)...); err != nil {
		return nil, err
	}
	var cur plan.Node = d
	if s.Where != nil {
		fID, fVar := nextVar(qctx, alloc, plan.KindFilter)
		cur = bind(qctx, plan.NewFilter(fID, fVar, cur, iv, s.Where))
		iv = cur.OutputVar()
	}
	items, err := expandYield(s.Yield, cur.ColNames(), func(name string) ([]string, error) { return varColNames(qctx, name) })
	if err != nil {
		return nil, err
	}
	proj, err := buildProject(qctx, alloc, cur, iv, items)
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

func exprsOf(items []ast.YieldItem) []expreval.Expression {
	out := make([]expreval.Expression, len(items))
	for i, it := range items {
		out[i] = it.Expr
	}
	return out
}

// TransformOrderBy builds `... | ORDER BY <keys>`.
func TransformOrderBy(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.OrderByStmt)
	if dep == nil {
		return nil, graphderr.ErrLeadingClause.New("ORDER BY")
	}
	for _, k := range s.Keys {
		if err := checkColumnExpr(k.Expr, dep.ColNames()); err != nil {
			return nil, err
		}
	}
	terms := make([]plan.OrderTerm, len(s.Keys))
	for i, k := range s.Keys {
		terms[i] = plan.OrderTerm{Expr: k.Expr, Desc: k.Desc}
	}
	id, outVar := nextVar(qctx, alloc, plan.KindSort)
	return bind(qctx, plan.NewSort(id, outVar, dep, inputVar, terms)), nil
}

// checkColumnExpr rejects a bare InputPropRef naming a column absent from
// cols (§4.4 seed test 8: ORDER BY on a missing column is a SemanticError).
func checkColumnExpr(e expreval.Expression, cols []string) error {
	ref, ok := e.(*expreval.InputPropRef)
	if !ok {
		return nil
	}
	return checkColumn(ref.Prop, cols)
}

// TransformLimit builds `... | LIMIT [offset,] count`.
func TransformLimit(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.LimitStmt)
	if dep == nil {
		return nil, graphderr.ErrLeadingClause.New("LIMIT")
	}
	if s.Offset < 0 || s.Count < 0 {
		return nil, graphderr.ErrInvalidLimit.New(s.Offset, s.Count)
	}
	id, outVar := nextVar(qctx, alloc, plan.KindLimit)
	return bind(qctx, plan.NewLimit(id, outVar, dep, inputVar, s.Offset, s.Count)), nil
}

// TransformAssign builds `$var = <stmt>`: the inner statement's sub-plan
// is built independently, then re-exposed under the user-chosen name via
// a PassThrough so later `$var` references resolve to it.
func TransformAssign(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.AssignStmt)
	inner, err := planner.Transform(ctx, qctx, alloc, s.Stmt, nil, "")
	if err != nil {
		return nil, err
	}
	id := alloc.Next()
	vi, err := qctx.SymTbl.NewVariable(s.Var, plan.KindPassThrough, id)
	if err != nil {
		return nil, graphderr.ErrDuplicateVariable.New(s.Var)
	}
	pt := plan.NewPassThrough(id, vi.Name, inner, inner.OutputVar())
	return bind(qctx, pt), nil
}

// TransformExplain unwraps to the inner statement's transform; EXPLAIN's
// Profile/Format flags are read by the driver off the original ast node
// before planning, since they govern how far the driver's state machine
// advances, not the shape of the plan itself.
func TransformExplain(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.ExplainStmt)
	return planner.Transform(ctx, qctx, alloc, s.Stmt, dep, inputVar)
}

// TransformSwitchSpace builds `USE <space>`.
func TransformSwitchSpace(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.SwitchSpaceStmt)
	if _, err := qctx.Meta.GetSpace(ctx, s.SpaceName); err != nil {
		return nil, graphderr.ErrExecution.New(fmt.Sprintf("unknown space %s", s.SpaceName))
	}
	id, outVar := nextVar(qctx, alloc, plan.KindSwitchSpace)
	return bind(qctx, plan.NewSwitchSpace(id, outVar, dep, s.SpaceName)), nil
}
