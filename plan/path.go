package plan

import "github.com/vesoft-inc/nebula-graph-sub000/expreval"

// ConjunctPathKind selects the bidirectional path-finding algorithm
// ConjunctPath runs.
type ConjunctPathKind string

const (
	ConjunctBiBFS    ConjunctPathKind = "BiBFS"
	ConjunctAllPaths ConjunctPathKind = "AllPaths"
	ConjunctFloyd    ConjunctPathKind = "Floyd"
)

// BFSShortestPath finds the shortest path(s) from a single source frontier
// to a single destination set, growing the frontier one GetNeighbors step
// at a time (its Dependencies are the repeated-step GetNeighbors/Loop
// subtree wired by the planner, per §4.7's per-destination predecessor
// bookkeeping).
type BFSShortestPath struct {
	singleInput
	FromExpr, ToExpr expreval.Expression
	EdgeTypes        []string
	MaxSteps         int64
}

// ProduceAllPaths concatenates forward and reversed-backward path lists,
// rejecting duplicate edges (and, when NoLoop, duplicate vertices).
type ProduceAllPaths struct {
	singleInput
	MaxSteps int64
	NoLoop   bool
}

// ProduceSemiShortestPath keeps a (cost, predecessor-path) pointer per
// (src, dst) pair, for weighted or step-counted shortest-path variants.
type ProduceSemiShortestPath struct {
	singleInput
	WeightProp string // "" means unweighted (hop count)
}

// ConjunctPath joins a forward frontier and a backward frontier produced
// by two independent sub-plans.
type ConjunctPath struct {
	biInput
	PathKind ConjunctPathKind
	MaxSteps int64
}

// Subgraph gathers the source vertices and the edges of every
// GetNeighbors round recorded in its input variable. Steps and EdgeTypes
// are carried on the node but not read by its executor, and no visited-vid
// set is kept: vertices and edges are deduplicated by key.
type Subgraph struct {
	singleInput
	Steps     int64
	EdgeTypes []string
	Filter    expreval.Expression
}
