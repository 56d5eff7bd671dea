package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vesoft-inc/nebula-graph-sub000/ast"
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/planner"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

func newQCtx() *gqlctx.Context {
	return gqlctx.NewContext(&gqlctx.Session{Username: "t"}, nil, nil, "test_space")
}

func transform(t *testing.T, qctx *gqlctx.Context, stmt ast.Statement) (plan.Node, error) {
	t.Helper()
	return planner.Transform(context.Background(), qctx, &plan.IDAllocator{}, stmt, nil, "")
}

// Seed scenario 1: `YIELD 1` builds a Start -> Project sub-plan with a
// single "1" column.
func TestYieldLiteralBuildsStartAndProject(t *testing.T) {
	qctx := newQCtx()
	y := ast.NewYieldStmt()
	y.Yield = []ast.YieldItem{{Expr: &expreval.Literal{V: value.Int(1)}, Alias: "1"}}
	node, err := transform(t, qctx, y)
	require.NoError(t, err)
	require.Equal(t, []string{"1"}, node.ColNames())
	require.Equal(t, plan.KindProject, node.Kind())
}

// Seed scenario 4: UNION of DataSets with differing column lists is a
// SemanticError naming the mismatch.
func TestSetUnionRejectsMismatchedColumns(t *testing.T) {
	qctx := newQCtx()
	left := ast.NewYieldStmt()
	left.Yield = []ast.YieldItem{{Expr: &expreval.Literal{V: value.Int(2010)}, Alias: "like.start"}}
	right := ast.NewYieldStmt()
	right.Yield = []ast.YieldItem{
		{Expr: &expreval.Literal{V: value.Int(2010)}, Alias: "like.start"},
		{Expr: &expreval.Literal{V: value.Int(2012)}, Alias: "like.start2"},
	}
	set := ast.NewSetStmt(left, right, ast.SetUnion, false)
	_, err := transform(t, qctx, set)
	require.Error(t, err)
}

func TestSetUnionDistinctAddsDedup(t *testing.T) {
	qctx := newQCtx()
	left := ast.NewYieldStmt()
	left.Yield = []ast.YieldItem{{Expr: &expreval.Literal{V: value.Int(1)}, Alias: "c"}}
	right := ast.NewYieldStmt()
	right.Yield = []ast.YieldItem{{Expr: &expreval.Literal{V: value.Int(2)}, Alias: "c"}}
	set := ast.NewSetStmt(left, right, ast.SetUnion, true)
	node, err := transform(t, qctx, set)
	require.NoError(t, err)
	require.Equal(t, plan.KindDedup, node.Kind())
}

// Seed scenario 7: `LIMIT -1, 3` is a SemanticError.
func TestLimitRejectsNegativeOffset(t *testing.T) {
	qctx := newQCtx()
	y := ast.NewYieldStmt()
	y.Yield = []ast.YieldItem{{Expr: &expreval.Literal{V: value.Int(1)}, Alias: "c"}}
	limit := ast.NewLimitStmt(-1, 3)
	pipe := ast.NewPipeStmt(y, limit)
	_, err := transform(t, qctx, pipe)
	require.Error(t, err)
}

func TestLimitAcceptsNonNegativeOffset(t *testing.T) {
	qctx := newQCtx()
	y := ast.NewYieldStmt()
	y.Yield = []ast.YieldItem{{Expr: &expreval.Literal{V: value.Int(1)}, Alias: "c"}}
	limit := ast.NewLimitStmt(1, 3)
	pipe := ast.NewPipeStmt(y, limit)
	node, err := transform(t, qctx, pipe)
	require.NoError(t, err)
	require.Equal(t, plan.KindLimit, node.Kind())
}

// LIMIT with no preceding clause is a leading-clause SemanticError.
func TestLimitRejectsLeadingClause(t *testing.T) {
	qctx := newQCtx()
	limit := ast.NewLimitStmt(0, 3)
	_, err := transform(t, qctx, limit)
	require.Error(t, err)
}

// Seed scenario 8: `ORDER BY $-.name` when the input lacks a `name`
// column is a SemanticError naming the column.
func TestOrderByRejectsUnknownColumn(t *testing.T) {
	qctx := newQCtx()
	y := ast.NewYieldStmt()
	y.Yield = []ast.YieldItem{{Expr: &expreval.Literal{V: value.Int(1)}, Alias: "c"}}
	ob := ast.NewOrderByStmt()
	ob.Keys = []ast.OrderKey{{Expr: &expreval.InputPropRef{Prop: "name"}}}
	pipe := ast.NewPipeStmt(y, ob)
	_, err := transform(t, qctx, pipe)
	require.Error(t, err)
}

func TestOrderByAcceptsKnownColumn(t *testing.T) {
	qctx := newQCtx()
	y := ast.NewYieldStmt()
	y.Yield = []ast.YieldItem{{Expr: &expreval.Literal{V: value.Int(1)}, Alias: "c"}}
	ob := ast.NewOrderByStmt()
	ob.Keys = []ast.OrderKey{{Expr: &expreval.InputPropRef{Prop: "c"}}}
	pipe := ast.NewPipeStmt(y, ob)
	node, err := transform(t, qctx, pipe)
	require.NoError(t, err)
	require.Equal(t, plan.KindSort, node.Kind())
}

// Mixing $-. and $var. in a single statement is rejected (§4.4).
func TestYieldRejectsMixedPipeAndVarReference(t *testing.T) {
	qctx := newQCtx()
	_, err := qctx.SymTbl.NewVariable("v", plan.KindYield, 1)
	require.NoError(t, err)
	y := ast.NewYieldStmt()
	y.Yield = []ast.YieldItem{
		{Expr: &expreval.InputPropRef{Prop: "a"}, Alias: "a"},
		{Expr: &expreval.VarPropRef{Var: "v", Prop: "b"}, Alias: "b"},
	}
	_, err = transform(t, qctx, y)
	require.Error(t, err)
}
