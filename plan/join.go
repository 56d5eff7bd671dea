package plan

import "github.com/vesoft-inc/nebula-graph-sub000/expreval"

// JoinSide names the (variable, version) pair a join reads from one input,
// since Join may name a user variable explicitly rather than inheriting
// its dependency's OutputVar (P1's carve-out).
type JoinSide struct {
	Var     string
	Version int64
}

// InnerJoin keeps rows whose hash key (evaluated on the left) equals the
// probe key (evaluated on the right).
type InnerJoin struct {
	biInput
	LeftSide, RightSide JoinSide
	HashKeys            []expreval.Expression
	ProbeKeys           []expreval.Expression
}

// LeftJoin is InnerJoin plus unmatched left rows padded with Empty on the
// right side.
type LeftJoin struct {
	biInput
	LeftSide, RightSide JoinSide
	HashKeys            []expreval.Expression
	ProbeKeys           []expreval.Expression
}

// CartesianProduct pairs every left row with every right row.
type CartesianProduct struct{ biInput }
