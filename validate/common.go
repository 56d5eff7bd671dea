// Package validate implements the validator set (C4): one validator per
// statement kind, each type/schema/permission-checking its ast.Statement
// against the live metadata catalog and the current session, then
// emitting a sub-plan of plan.Nodes with named output columns (grounded
// on sql/analyzer's resolve/validate rule passes, generalized from
// rule-rewriting a sql.Node to building a plan.Node DAG directly).
//
// Every exported Transform function here is registered into planner's
// strategy registry by this package's init() (one registration per
// ast.Kind), so planner never needs to import validate.
package validate

import (
	"github.com/vesoft-inc/nebula-graph-sub000/ast"
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
)

// nextVar allocates a node id and an anonymous output variable name for
// kind, registering it with the QueryContext's symbol table (§4.1
// new_variable).
func nextVar(qctx *gqlctx.Context, alloc *plan.IDAllocator, kind plan.Kind) (int64, string) {
	id := alloc.Next()
	vi, err := qctx.SymTbl.NewVariable("", kind, id)
	if err != nil {
		// anonymous names are generated from (kind, id) and id is unique
		// per plan (IDAllocator), so a collision here means the allocator
		// itself is broken.
		panic(err)
	}
	return id, vi.Name
}

// bind records node's producer/reader relationships in the symbol table
// (I1-I3) and registers it for id-based lookup, then hands node back so
// callers can do `return bind(qctx, n), nil` inline.
func bind(qctx *gqlctx.Context, node plan.Node) plan.Node {
	qctx.SymTbl.RegisterNode(node)
	if err := qctx.SymTbl.BindProducer(node.OutputVar(), node.ID()); err != nil {
		panic(err)
	}
	for _, v := range node.InputVars() {
		if v == "" {
			continue
		}
		if _, ok := qctx.SymTbl.Resolve(v); !ok {
			// a user variable ($var) read before any statement produced
			// it: skipped here rather than panicking. No validator calls
			// checkVarRef; apart from `$var.*` expansion (varColNames),
			// such a reference is rejected only when an executor reads the
			// undeclared variable (ErrUnknownVariable).
			continue
		}
		if err := qctx.SymTbl.BindReader(v, node.ID()); err != nil {
			panic(err)
		}
	}
	return node
}

// requireSpace enforces "verify a space is chosen if the statement
// requires one" (§4.4).
func requireSpace(qctx *gqlctx.Context, stmt ast.Statement) error {
	if stmt.RequiresSpace() && qctx.CurrentSpace == "" {
		return graphderr.ErrNoSpaceChosen.New()
	}
	return nil
}

// checkSingleReference enforces the two cross-cutting reference rules
// from §4.4: `$-` and `$var` may not both appear in one statement, and at
// most one distinct `$var` name may appear.
func checkSingleReference(exprs ...expreval.Expression) error {
	sawPipe := false
	vars := map[string]bool{}
	for _, e := range exprs {
		if e == nil {
			continue
		}
		e.Walk(func(n expreval.Expression) {
			switch r := n.(type) {
			case *expreval.InputPropRef:
				sawPipe = true
			case *expreval.VarPropRef:
				vars[r.Var] = true
			case *expreval.VarRef:
				vars[r.Name] = true
			case *expreval.VersionedVarRef:
				vars[r.Name] = true
			}
		})
	}
	if len(vars) > 1 {
		names := make([]string, 0, 2)
		for v := range vars {
			names = append(names, v)
			if len(names) == 2 {
				break
			}
		}
		return graphderr.ErrMultipleVariables.New(names[0], names[1])
	}
	if sawPipe && len(vars) > 0 {
		for v := range vars {
			return graphderr.ErrMixedInputReference.New(v)
		}
	}
	return nil
}

// checkVarRef resolves a $var reference against the symbol table,
// rejecting an unknown variable (§4.4 "any reference to an unknown
// variable ... is rejected").
func checkVarRef(qctx *gqlctx.Context, name string) error {
	if _, ok := qctx.SymTbl.Resolve(name); !ok {
		return graphderr.ErrUnknownVariable.New(name)
	}
	return nil
}

// checkColumn rejects a reference to a column name absent from cols
// (§4.4, seed test 8).
func checkColumn(name string, cols []string) error {
	for _, c := range cols {
		if c == name {
			return nil
		}
	}
	return graphderr.ErrUnknownColumn.New(name)
}

// rejectNestedAgg fails if an AggregateCall appears inside another
// AggregateCall's argument subtree (§4.4 "aggregate nesting is
// rejected"). Expression.Walk's callback doesn't carry ancestry, so this
// is a dedicated structural recursion rather than a Walk call.
func rejectNestedAgg(expr expreval.Expression) error {
	var err error
	var walk func(e expreval.Expression, insideAgg bool)
	walk = func(e expreval.Expression, insideAgg bool) {
		if err != nil || e == nil {
			return
		}
		switch n := e.(type) {
		case *expreval.AggregateCall:
			if insideAgg {
				err = graphderr.ErrNestedAggregate.New()
				return
			}
			walk(n.Arg, true)
		case *expreval.UnaryOp:
			walk(n.Expr, insideAgg)
		case *expreval.BinaryOp:
			walk(n.Left, insideAgg)
			walk(n.Right, insideAgg)
		case *expreval.FunctionCall:
			for _, a := range n.Args {
				walk(a, insideAgg)
			}
		case *expreval.ListExpr:
			for _, el := range n.Elems {
				walk(el, insideAgg)
			}
		}
	}
	walk(expr, false)
	return err
}

// expandYield resolves `*` / `$-.*` / `$var.*` (an expreval.Star
// item) by re-expressing it as one InputPropRef/VarPropRef
// per column of the referenced input, immediately before evaluating
// column aliases -- mirrors §4.7 Project's "effective yield columns are
// expanded to the input's full column list" but performed at validate
// time so col_names() is correct without re-running Star at execution.
func expandYield(items []ast.YieldItem, depColNames []string, varCols func(name string) ([]string, error)) ([]ast.YieldItem, error) {
	var out []ast.YieldItem
	for _, it := range items {
		star, ok := it.Expr.(*expreval.Star)
		if !ok {
			out = append(out, it)
			continue
		}
		switch star.Source {
		case "", "$-":
			for _, c := range depColNames {
				out = append(out, ast.YieldItem{Expr: &expreval.InputPropRef{Prop: c}, Alias: c})
			}
		default:
			cols, err := varCols(star.Source)
			if err != nil {
				return nil, err
			}
			for _, c := range cols {
				out = append(out, ast.YieldItem{Expr: &expreval.VarPropRef{Var: star.Source, Prop: c}, Alias: c})
			}
		}
	}
	return out, nil
}

func yieldColumns(items []ast.YieldItem) []plan.YieldColumn {
	cols := make([]plan.YieldColumn, len(items))
	for i, it := range items {
		alias := it.Alias
		if alias == "" {
			alias = it.Expr.String()
		}
		cols[i] = plan.YieldColumn{Expr: it.Expr, Alias: alias}
	}
	return cols
}

// buildProject emits a Project node over dep/inputVar for the given yield
// items, after Star expansion and single-reference checks.
func buildProject(qctx *gqlctx.Context, alloc *plan.IDAllocator, dep plan.Node, inputVar string, items []ast.YieldItem) (plan.Node, error) {
	exprs := make([]expreval.Expression, len(items))
	for i, it := range items {
		exprs[i] = it.Expr
	}
	if err := checkSingleReference(exprs...); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindProject)
	n := plan.NewProject(id, outVar, dep, inputVar, yieldColumns(items))
	return bind(qctx, n), nil
}

// varColNames returns the column names of a previously-produced named
// variable, by inspecting its producer node (the variable's output shape
// is exactly its producer's ColNames()).
func varColNames(qctx *gqlctx.Context, name string) ([]string, error) {
	vi, ok := qctx.SymTbl.Resolve(name)
	if !ok || !vi.HasProducer {
		return nil, graphderr.ErrUnknownVariable.New(name)
	}
	n, ok := qctx.SymTbl.Node(vi.ProducerID)
	if !ok {
		return nil, graphderr.ErrUnknownVariable.New(name)
	}
	return n.ColNames(), nil
}
