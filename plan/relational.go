package plan

import "github.com/vesoft-inc/nebula-graph-sub000/expreval"

// YieldColumn is one projected output column: an expression plus its
// display name (explicit alias or the canonical string form of Expr).
type YieldColumn struct {
	Expr  expreval.Expression
	Alias string
}

// Project evaluates YieldColumns against each input row.
type Project struct {
	singleInput
	Columns []YieldColumn
}

// Filter keeps rows whose Predicate evaluates truthy, erasing the rest.
type Filter struct {
	singleInput
	Predicate expreval.Expression
}

// Sort stably reorders rows by a multi-key lexicographic order.
type Sort struct {
	singleInput
	Keys []OrderTerm
}

// Limit skips Offset rows then passes through Count.
type Limit struct {
	singleInput
	Offset int64
	Count  int64
}

// TopN fuses Sort+Limit into one node: its executor sorts the whole input
// (no bounded heap) and then keeps Count rows after Offset.
type TopN struct {
	singleInput
	Keys   []OrderTerm
	Offset int64
	Count  int64
}

// Dedup erases rows whose full row value repeats an earlier one.
type Dedup struct {
	singleInput
}

// GroupItem is one Aggregate output column: an aggregate call, or (when Agg
// is nil) a bare passthrough expression -- normally one of GroupKeys --
// plus its display alias.
type GroupItem struct {
	Agg   *expreval.AggregateCall
	Expr  expreval.Expression // only read when Agg == nil
	Alias string
}

// Aggregate groups rows by GroupKeys and applies each GroupItem's
// aggregate function within the group.
type Aggregate struct {
	singleInput
	GroupKeys  []expreval.Expression
	GroupItems []GroupItem
}

// Unwind explodes a list-valued expression into one row per element.
type Unwind struct {
	singleInput
	ListExpr expreval.Expression
	Alias    string
}

// Start is a terminal source with no dependencies: a literal vid/value
// list feeding the first scan in a traversal, or a bare `YIELD <const>`.
type Start struct {
	noInput
}

// PassThrough republishes its input variable unchanged; used to splice
// sub-plans together without altering columns.
type PassThrough struct {
	singleInput
}

// MultiOutputs marks a node whose single output variable is read by more
// than one downstream node -- a bookkeeping marker, not a transform.
type MultiOutputs struct {
	singleInput
}
