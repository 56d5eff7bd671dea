// Package expreval implements the typed expression tree and its bind-time
// evaluation contexts (C2): the same Expression node both validators
// type-check and executors evaluate, mirroring sql/expression's dual-use
// sql.Expression shape.
package expreval

import (
	"fmt"

	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

// Binder is the one trait the §4.2 accessor table compiles down to. Three
// concrete contexts implement it (SequentialCtx, NeighborsCtx,
// PropertyCtx); Expression.Eval never knows which.
type Binder interface {
	Var(name string) (value.Value, error)
	VersionedVar(name string, version int64) (value.Value, error)
	VarProp(varName, prop string) (value.Value, error)
	InputProp(prop string) (value.Value, error)
	SrcProp(tag, prop string) (value.Value, error)
	DstProp(tag, prop string) (value.Value, error)
	EdgeProp(edgeType, prop string) (value.Value, error)
}

// Expression is the typed AST node: validators deduce its static type via
// DeduceType, executors call Eval against a Binder bound to the current
// row.
type Expression interface {
	Eval(b Binder) (value.Value, error)
	String() string
	// Walk invokes fn for this node and every child, used by the
	// exprProps_ structural walk (§4.4).
	Walk(fn func(Expression))
}

// Literal is a constant value.
type Literal struct{ V value.Value }

func (l *Literal) Eval(Binder) (value.Value, error) { return l.V, nil }
func (l *Literal) String() string                   { return l.V.String() }
func (l *Literal) Walk(fn func(Expression))         { fn(l) }

// VarRef resolves the latest version of a named variable.
type VarRef struct{ Name string }

func (r *VarRef) Eval(b Binder) (value.Value, error) { return b.Var(r.Name) }
func (r *VarRef) String() string                      { return "$" + r.Name }
func (r *VarRef) Walk(fn func(Expression))            { fn(r) }

// VersionedVarRef resolves a specific historical version (§4.2
// versioned_var).
type VersionedVarRef struct {
	Name    string
	Version int64
}

func (r *VersionedVarRef) Eval(b Binder) (value.Value, error) {
	return b.VersionedVar(r.Name, r.Version)
}
func (r *VersionedVarRef) String() string {
	return fmt.Sprintf("$%s{%d}", r.Name, r.Version)
}
func (r *VersionedVarRef) Walk(fn func(Expression)) { fn(r) }

// VarPropRef resolves a column on a named variable's current iterator row
// ($var.prop).
type VarPropRef struct{ Var, Prop string }

func (r *VarPropRef) Eval(b Binder) (value.Value, error) { return b.VarProp(r.Var, r.Prop) }
func (r *VarPropRef) String() string                      { return "$" + r.Var + "." + r.Prop }
func (r *VarPropRef) Walk(fn func(Expression))            { fn(r) }

// InputPropRef resolves a column on the current operator's input ($-.prop).
type InputPropRef struct{ Prop string }

func (r *InputPropRef) Eval(b Binder) (value.Value, error) { return b.InputProp(r.Prop) }
func (r *InputPropRef) String() string                      { return "$-." + r.Prop }
func (r *InputPropRef) Walk(fn func(Expression))            { fn(r) }

// SrcPropRef resolves a tag-qualified property on the current edge row's
// source vertex ($^.tag.prop).
type SrcPropRef struct{ Tag, Prop string }

func (r *SrcPropRef) Eval(b Binder) (value.Value, error) { return b.SrcProp(r.Tag, r.Prop) }
func (r *SrcPropRef) String() string                      { return "$^." + r.Tag + "." + r.Prop }
func (r *SrcPropRef) Walk(fn func(Expression))            { fn(r) }

// DstPropRef is the destination-side counterpart ($$.tag.prop).
type DstPropRef struct{ Tag, Prop string }

func (r *DstPropRef) Eval(b Binder) (value.Value, error) { return b.DstProp(r.Tag, r.Prop) }
func (r *DstPropRef) String() string                      { return "$$." + r.Tag + "." + r.Prop }
func (r *DstPropRef) Walk(fn func(Expression))            { fn(r) }

// EdgePropRef resolves a property on the current edge row.
type EdgePropRef struct{ EdgeType, Prop string }

func (r *EdgePropRef) Eval(b Binder) (value.Value, error) { return b.EdgeProp(r.EdgeType, r.Prop) }
func (r *EdgePropRef) String() string                      { return r.EdgeType + "." + r.Prop }
func (r *EdgePropRef) Walk(fn func(Expression))            { fn(r) }

// Star is the `*` / `$-.*` / `$var.*` unfold marker: validators expand it
// against the input schema before any Project is built; it never reaches
// Eval.
type Star struct{ Source string } // "", "$-", or a $var name

func (s *Star) Eval(Binder) (value.Value, error) {
	return nil, graphderr.ErrExecution.New("unexpanded star expression reached evaluation")
}
func (s *Star) String() string              { return s.Source + ".*" }
func (s *Star) Walk(fn func(Expression))    { fn(s) }

// UnaryOpKind enumerates NOT / NEG / IS NULL.
type UnaryOpKind int

const (
	UnaryNot UnaryOpKind = iota
	UnaryNeg
	UnaryIsNull
)

type UnaryOp struct {
	Op   UnaryOpKind
	Expr Expression
}

func (u *UnaryOp) Eval(b Binder) (value.Value, error) {
	v, err := u.Expr.Eval(b)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case UnaryNot:
		return value.Not(v), nil
	case UnaryNeg:
		return value.Neg(v), nil
	case UnaryIsNull:
		_, isNull := v.(value.Null)
		return value.Bool(isNull), nil
	}
	return value.NullValue, nil
}
func (u *UnaryOp) String() string { return fmt.Sprintf("unary(%d, %s)", u.Op, u.Expr) }
func (u *UnaryOp) Walk(fn func(Expression)) {
	fn(u)
	u.Expr.Walk(fn)
}

// BinaryOpKind enumerates arithmetic, comparison, and logical operators.
type BinaryOpKind int

const (
	OpAdd BinaryOpKind = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpEQ
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
	OpAnd
	OpOr
)

type BinaryOp struct {
	Op          BinaryOpKind
	Left, Right Expression
}

func (b *BinaryOp) Eval(bind Binder) (value.Value, error) {
	l, err := b.Left.Eval(bind)
	if err != nil {
		return nil, err
	}
	r, err := b.Right.Eval(bind)
	if err != nil {
		return nil, err
	}
	switch b.Op {
	case OpAdd:
		return value.Add(l, r), nil
	case OpSub:
		return value.Sub(l, r), nil
	case OpMul:
		return value.Mul(l, r), nil
	case OpDiv:
		return value.Div(l, r), nil
	case OpMod:
		return value.Mod(l, r), nil
	case OpAnd:
		return value.And(l, r), nil
	case OpOr:
		return value.Or(l, r), nil
	case OpEQ:
		return value.Compare(value.OpEQ, l, r), nil
	case OpNE:
		return value.Compare(value.OpNE, l, r), nil
	case OpLT:
		return value.Compare(value.OpLT, l, r), nil
	case OpLE:
		return value.Compare(value.OpLE, l, r), nil
	case OpGT:
		return value.Compare(value.OpGT, l, r), nil
	case OpGE:
		return value.Compare(value.OpGE, l, r), nil
	}
	return value.NullValue, nil
}

func (b *BinaryOp) String() string {
	return fmt.Sprintf("(%s %d %s)", b.Left, b.Op, b.Right)
}
func (b *BinaryOp) Walk(fn func(Expression)) {
	fn(b)
	b.Left.Walk(fn)
	b.Right.Walk(fn)
}

// FunctionCall is a scalar builtin (e.g. abs, hash). Impl is resolved by
// name at bind time from a registry owned by the validator package; left
// as a plain func here to keep expreval free of a registry dependency.
type FunctionCall struct {
	Name string
	Args []Expression
	Impl func(args []value.Value) (value.Value, error)
}

func (f *FunctionCall) Eval(b Binder) (value.Value, error) {
	args := make([]value.Value, len(f.Args))
	for i, a := range f.Args {
		v, err := a.Eval(b)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	if f.Impl == nil {
		return nil, graphderr.ErrExecution.New(fmt.Sprintf("unresolved function %s", f.Name))
	}
	return f.Impl(args)
}
func (f *FunctionCall) String() string { return f.Name + "(...)" }
func (f *FunctionCall) Walk(fn func(Expression)) {
	fn(f)
	for _, a := range f.Args {
		a.Walk(fn)
	}
}

// AggKind enumerates the Aggregate executor's supported functions.
type AggKind string

const (
	AggCount         AggKind = "COUNT"
	AggCountDistinct AggKind = "COUNT_DISTINCT"
	AggSum           AggKind = "SUM"
	AggAvg           AggKind = "AVG"
	AggMin           AggKind = "MIN"
	AggMax           AggKind = "MAX"
	AggCollect       AggKind = "COLLECT"
	AggStdev         AggKind = "STDEV"
	AggBitAnd        AggKind = "BITAND"
	AggBitOr         AggKind = "BITOR"
	AggBitXor        AggKind = "BITXOR"
)

// AggregateCall appears only inside an Aggregate plan node's group items;
// it is never evaluated directly by Expression.Eval (the executor drives
// AggState instead) but it implements Expression so it composes in
// expression trees (e.g. nested inside a Project reading Aggregate's
// output).
type AggregateCall struct {
	Fn       AggKind
	Arg      Expression // nil for COUNT(*)
	Distinct bool
}

func (a *AggregateCall) Eval(b Binder) (value.Value, error) {
	if a.Arg == nil {
		return value.NullValue, nil
	}
	return a.Arg.Eval(b)
}
func (a *AggregateCall) String() string { return string(a.Fn) + "(...)" }
func (a *AggregateCall) Walk(fn func(Expression)) {
	fn(a)
	if a.Arg != nil {
		a.Arg.Walk(fn)
	}
}

// ListExpr constructs a value.List from evaluated elements.
type ListExpr struct{ Elems []Expression }

func (l *ListExpr) Eval(b Binder) (value.Value, error) {
	vals := make([]value.Value, len(l.Elems))
	for i, e := range l.Elems {
		v, err := e.Eval(b)
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	return value.List{Values: vals}, nil
}
func (l *ListExpr) String() string { return "[...]" }
func (l *ListExpr) Walk(fn func(Expression)) {
	fn(l)
	for _, e := range l.Elems {
		e.Walk(fn)
	}
}

// CaseExpr is a WHEN/THEN/ELSE chain.
type CaseExpr struct {
	Whens []struct{ Cond, Then Expression }
	Else  Expression
}

func (c *CaseExpr) Eval(b Binder) (value.Value, error) {
	for _, w := range c.Whens {
		cond, err := w.Cond.Eval(b)
		if err != nil {
			return nil, err
		}
		if value.IsTruthy(cond) {
			return w.Then.Eval(b)
		}
	}
	if c.Else != nil {
		return c.Else.Eval(b)
	}
	return value.NullValue, nil
}
func (c *CaseExpr) String() string { return "case" }
func (c *CaseExpr) Walk(fn func(Expression)) {
	fn(c)
	for _, w := range c.Whens {
		w.Cond.Walk(fn)
		w.Then.Walk(fn)
	}
	if c.Else != nil {
		c.Else.Walk(fn)
	}
}

// Props is the closed set exprProps_ computes by structural walk (§4.4):
// every input/variable/tag/edge property an expression touches, used by
// validators to decide which columns a node must request from storage.
type Props struct {
	InputCols  map[string]bool
	VarCols    map[string]bool
	SrcTagProp map[string]map[string]bool
	DstTagProp map[string]map[string]bool
	EdgeProp   map[string]map[string]bool
}

func NewProps() *Props {
	return &Props{
		InputCols:  map[string]bool{},
		VarCols:    map[string]bool{},
		SrcTagProp: map[string]map[string]bool{},
		DstTagProp: map[string]map[string]bool{},
		EdgeProp:   map[string]map[string]bool{},
	}
}

// CollectProps walks expr and every child, populating a Props set.
func CollectProps(expr Expression) *Props {
	p := NewProps()
	expr.Walk(func(e Expression) {
		switch n := e.(type) {
		case *InputPropRef:
			p.InputCols[n.Prop] = true
		case *VarPropRef:
			p.VarCols[n.Var+"."+n.Prop] = true
		case *SrcPropRef:
			if p.SrcTagProp[n.Tag] == nil {
				p.SrcTagProp[n.Tag] = map[string]bool{}
			}
			p.SrcTagProp[n.Tag][n.Prop] = true
		case *DstPropRef:
			if p.DstTagProp[n.Tag] == nil {
				p.DstTagProp[n.Tag] = map[string]bool{}
			}
			p.DstTagProp[n.Tag][n.Prop] = true
		case *EdgePropRef:
			if p.EdgeProp[n.EdgeType] == nil {
				p.EdgeProp[n.EdgeType] = map[string]bool{}
			}
			p.EdgeProp[n.EdgeType][n.Prop] = true
		}
	})
	return p
}
