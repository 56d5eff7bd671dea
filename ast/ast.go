// Package ast declares the statement tree the (out-of-scope) parser hands
// the validator set (§4.4): one tagged struct per statement kind, mirroring
// how plan.Node and plan.Kind tag the operator DAG one layer down. Only the
// shape matters here -- the grammar that produces it lives in the parser,
// which is an external collaborator per §1.
package ast

import "github.com/vesoft-inc/nebula-graph-sub000/expreval"

// Kind tags every statement kind the validator set dispatches on.
type Kind string

const (
	KindGo          Kind = "Go"
	KindFetchVertices Kind = "FetchVertices"
	KindFetchEdges    Kind = "FetchEdges"
	KindLookup      Kind = "Lookup"
	KindGetSubgraph Kind = "GetSubgraph"
	KindPipe        Kind = "Pipe"
	KindSet         Kind = "Set"
	KindSequential  Kind = "Sequential"
	KindGroupBy     Kind = "GroupBy"
	KindYield       Kind = "Yield"
	KindOrderBy     Kind = "OrderBy"
	KindLimit       Kind = "Limit"
	KindAssign      Kind = "Assign"
	KindExplain     Kind = "Explain"
	KindSwitchSpace Kind = "SwitchSpace"

	KindCreateSpace    Kind = "CreateSpace"
	KindDropSpace      Kind = "DropSpace"
	KindDescSpace      Kind = "DescSpace"
	KindShowSpaces     Kind = "ShowSpaces"
	KindCreateTag      Kind = "CreateTag"
	KindAlterTag       Kind = "AlterTag"
	KindDropTag        Kind = "DropTag"
	KindCreateEdge     Kind = "CreateEdge"
	KindAlterEdge      Kind = "AlterEdge"
	KindDropEdge       Kind = "DropEdge"
	KindCreateSnapshot Kind = "CreateSnapshot"
	KindDropSnapshot   Kind = "DropSnapshot"
	KindShowSnapshots  Kind = "ShowSnapshots"
	KindCreateUser     Kind = "CreateUser"
	KindDropUser       Kind = "DropUser"
	KindChangePassword Kind = "ChangePassword"
	KindGrantRole      Kind = "GrantRole"
	KindRevokeRole     Kind = "RevokeRole"
	KindListUsers      Kind = "ListUsers"
	KindListRoles      Kind = "ListRoles"
	KindBalance        Kind = "Balance"
	KindShowBalance    Kind = "ShowBalance"
	KindInsertVertices Kind = "InsertVertices"
	KindInsertEdges    Kind = "InsertEdges"
	KindUpdateVertex   Kind = "UpdateVertex"
	KindUpdateEdge     Kind = "UpdateEdge"
	KindDeleteVertices Kind = "DeleteVertices"
	KindDeleteEdges    Kind = "DeleteEdges"
)

// Statement is the common contract every statement kind satisfies.
type Statement interface {
	Kind() Kind
	// RequiresSpace reports whether validate.requireSpace must reject this
	// statement when no space is current (Validator.spaceChosen()'s
	// per-kind override).
	RequiresSpace() bool
}

type base struct{ kind Kind }

func (b base) Kind() Kind          { return b.kind }
func (b base) RequiresSpace() bool { return true }

// YieldItem is one projected column in a YIELD clause: an expression plus
// an optional explicit alias (empty means "use the expression's canonical
// string form").
type YieldItem struct {
	Expr  expreval.Expression
	Alias string
}

// StepRange is GO's `m TO n STEPS` clause; Min==Max for an exact step count.
type StepRange struct{ Min, Max int64 }

// GoStmt is `GO [steps] FROM <src> OVER <edges> [WHERE ...] YIELD ...`.
type GoStmt struct {
	base
	Steps     StepRange
	FromConst []string // literal vids, mutually exclusive with FromExpr
	FromExpr  expreval.Expression // e.g. $-.id / $var.id, mutually exclusive with FromConst
	EdgeTypes []string
	Direction int // mirrors plan.Direction
	Where     expreval.Expression
	Yield     []YieldItem
	Distinct  bool
}

func NewGoStmt() *GoStmt { return &GoStmt{base: base{KindGo}} }

// FetchVerticesStmt is `FETCH PROP ON <tag> <vids> YIELD ...`.
type FetchVerticesStmt struct {
	base
	Tags      []string
	VidConst  []string
	VidExpr   expreval.Expression
	Yield     []YieldItem
	Distinct  bool
}

func NewFetchVerticesStmt() *FetchVerticesStmt {
	return &FetchVerticesStmt{base: base{KindFetchVertices}}
}

// FetchEdgesStmt is `FETCH PROP ON <edge> <src>->,<dst> YIELD ...`.
type FetchEdgesStmt struct {
	base
	EdgeType string
	KeyConst [][4]string // (src, type, rank, dst) literal tuples
	KeyExpr  expreval.Expression
	Yield    []YieldItem
	Distinct bool
}

func NewFetchEdgesStmt() *FetchEdgesStmt { return &FetchEdgesStmt{base: base{KindFetchEdges}} }

// LookupStmt is `LOOKUP ON <tag|edge> WHERE ... YIELD ...`.
type LookupStmt struct {
	base
	SchemaName string
	IsEdge     bool
	Filters    []IndexFilterClause // AND-tree of comparisons against constants
	TextSearch *TextSearchClause   // non-nil when a fulltext predicate is present
	Yield      []YieldItem
}

// IndexFilterClause is one AND-clause of `col OP const` comparisons the
// Lookup validator's bounded grammar recognizes.
type IndexFilterClause struct {
	Column string
	Op     expreval.BinaryOpKind
	Value  expreval.Expression
}

// TextSearchClause is a fulltext predicate; routed through the fulltext
// client (external collaborator, §1) and rewritten to an equivalent
// disjunction of equality predicates by the Lookup validator.
type TextSearchClause struct {
	Column string
	Query  string
}

func NewLookupStmt() *LookupStmt { return &LookupStmt{base: base{KindLookup}} }

// GetSubgraphStmt is `GET SUBGRAPH [steps] FROM <src> [WHERE ...]`.
type GetSubgraphStmt struct {
	base
	Steps     int64
	FromConst []string
	FromExpr  expreval.Expression
	EdgeTypes []string
	Direction int
	Where     expreval.Expression
}

func NewGetSubgraphStmt() *GetSubgraphStmt { return &GetSubgraphStmt{base: base{KindGetSubgraph}} }

// PipeStmt chains Left's output into Right's `$-` references.
type PipeStmt struct {
	base
	Left, Right Statement
}

func NewPipeStmt(left, right Statement) *PipeStmt {
	return &PipeStmt{base: base{KindPipe}, Left: left, Right: right}
}
func (p *PipeStmt) RequiresSpace() bool { return false }

// SetOpKind enumerates UNION/INTERSECT/MINUS.
type SetOpKind string

const (
	SetUnion     SetOpKind = "UNION"
	SetIntersect SetOpKind = "INTERSECT"
	SetMinus     SetOpKind = "MINUS"
)

// SetStmt is `Left <UNION|INTERSECT|MINUS> [DISTINCT] Right`.
type SetStmt struct {
	base
	Left, Right Statement
	Op          SetOpKind
	Distinct    bool // only meaningful for UNION; UNION ALL is Distinct=false
}

func NewSetStmt(left, right Statement, op SetOpKind, distinct bool) *SetStmt {
	return &SetStmt{base: base{KindSet}, Left: left, Right: right, Op: op, Distinct: distinct}
}
func (s *SetStmt) RequiresSpace() bool { return false }

// SequentialStmt is a `;`-separated chain: s1; s2; ...; sn.
type SequentialStmt struct {
	base
	Statements []Statement
}

func NewSequentialStmt(stmts []Statement) *SequentialStmt {
	return &SequentialStmt{base: base{KindSequential}, Statements: stmts}
}
func (s *SequentialStmt) RequiresSpace() bool { return false }

// GroupByStmt is `... | GROUP BY <keys> YIELD <items>` (items may contain
// aggregate calls).
type GroupByStmt struct {
	base
	Input     Statement // nil when chained via PipeStmt; consumes $-
	GroupKeys []expreval.Expression
	Yield     []YieldItem
}

func NewGroupByStmt() *GroupByStmt { return &GroupByStmt{base: base{KindGroupBy}} }
func (g *GroupByStmt) RequiresSpace() bool { return false }

// YieldStmt is a bare `YIELD <items> [WHERE ...]` with no FROM/traversal
// clause (e.g. `YIELD 1+1`, or `$-.* | YIELD ...`).
type YieldStmt struct {
	base
	Yield    []YieldItem
	Where    expreval.Expression
	Distinct bool
}

func NewYieldStmt() *YieldStmt { return &YieldStmt{base: base{KindYield}} }
func (y *YieldStmt) RequiresSpace() bool { return false }

// OrderByStmt is `... | ORDER BY <keys>`.
type OrderByStmt struct {
	base
	Keys []OrderKey
}

type OrderKey struct {
	Expr expreval.Expression
	Desc bool
}

func NewOrderByStmt() *OrderByStmt { return &OrderByStmt{base: base{KindOrderBy}} }
func (o *OrderByStmt) RequiresSpace() bool { return false }

// LimitStmt is `... | LIMIT [offset,] count`.
type LimitStmt struct {
	base
	Offset, Count int64
}

func NewLimitStmt(offset, count int64) *LimitStmt {
	return &LimitStmt{base: base{KindLimit}, Offset: offset, Count: count}
}
func (l *LimitStmt) RequiresSpace() bool { return false }

// AssignStmt is `$var = <stmt>`.
type AssignStmt struct {
	base
	Var  string
	Stmt Statement
}

func NewAssignStmt(v string, stmt Statement) *AssignStmt {
	return &AssignStmt{base: base{KindAssign}, Var: v, Stmt: stmt}
}
func (a *AssignStmt) RequiresSpace() bool { return false }

// ExplainStmt wraps another statement for EXPLAIN [PROFILE] [FORMAT=...].
type ExplainStmt struct {
	base
	Stmt    Statement
	Profile bool
	Format  string // "row" | "dot" | "dot:struct"
}

func NewExplainStmt(stmt Statement, profile bool, format string) *ExplainStmt {
	return &ExplainStmt{base: base{KindExplain}, Stmt: stmt, Profile: profile, Format: format}
}
func (e *ExplainStmt) RequiresSpace() bool { return false }

// SwitchSpaceStmt is `USE <space>`.
type SwitchSpaceStmt struct {
	base
	SpaceName string
}

func NewSwitchSpaceStmt(space string) *SwitchSpaceStmt {
	return &SwitchSpaceStmt{base: base{KindSwitchSpace}, SpaceName: space}
}
func (s *SwitchSpaceStmt) RequiresSpace() bool { return false }
