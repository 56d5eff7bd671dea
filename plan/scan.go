package plan

import "github.com/vesoft-inc/nebula-graph-sub000/expreval"

// GetNeighbors is the one-hop graph-scan operator: expands src vertices
// over a set of edge types in a given direction, optionally pushing down
// stat/vertex/edge property projection, dedup, and a filter. OrderBy and
// Limit are carried on the node, but the executor does not forward them to
// storage.
type GetNeighbors struct {
	base
	dep        Node // nil when SrcExpr is a constant vid list (Start-rooted)
	inputVar   string
	SrcExpr    expreval.Expression
	EdgeTypes  []string
	Direction  Direction
	VertexProps map[string][]string // tag -> props
	EdgeProps   map[string][]string // edge type -> props
	StatProps   []string
	Dedup       bool
	OrderBy     []OrderTerm
	Limit       *LimitSpec
	Filter      expreval.Expression
}

func (g *GetNeighbors) Dependencies() []Node {
	if g.dep == nil {
		return nil
	}
	return []Node{g.dep}
}
func (g *GetNeighbors) InputVars() []string {
	if g.inputVar == "" {
		return nil
	}
	return []string{g.inputVar}
}
func (g *GetNeighbors) Explain() NodeDescription {
	d := g.explainBase()
	if g.dep != nil {
		d.Dependencies = []int64{g.dep.ID()}
	}
	return d
}

// OrderTerm is one ORDER BY key.
type OrderTerm struct {
	Expr expreval.Expression
	Desc bool
}

// LimitSpec is a plan-time offset/count pair.
type LimitSpec struct {
	Offset int64
	Count  int64
}

// GetVertices fetches tag properties for an explicit vid list or an
// expression yielding vids.
type GetVertices struct {
	singleInput
	VidExpr     expreval.Expression
	TagProps    map[string][]string
	Dedup       bool
	OrderBy     []OrderTerm
	Limit       *LimitSpec
	Filter      expreval.Expression
}

// GetEdges fetches edge properties for explicit (src,type,rank,dst) keys
// or an expression yielding edge-key tuples.
type GetEdges struct {
	singleInput
	KeyExpr  expreval.Expression
	EdgeType string
	Props    []string
	Dedup    bool
	OrderBy  []OrderTerm
	Limit    *LimitSpec
	Filter   expreval.Expression
}

// IndexScan answers a query against a declared index.
type IndexScan struct {
	singleInput
	SchemaID      int64
	IsEdge        bool
	IndexQueries  []IndexQueryContext
	ReturnColumns []string
}

// IndexQueryContext is one AND-clause of comparisons against constants the
// index can serve directly (the "bounded grammar" the Lookup validator
// recognizes).
type IndexQueryContext struct {
	Filters []IndexFilter
}

type IndexFilter struct {
	Column string
	Op     expreval.BinaryOpKind
	Value  expreval.Expression
}
