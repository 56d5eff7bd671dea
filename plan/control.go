package plan

import "github.com/vesoft-inc/nebula-graph-sub000/expreval"

// Select evaluates Condition and schedules exactly one of Then/Else. Its
// Dependencies() intentionally excludes Then/Else: they are reachable only
// through this node (P2), never as an external dependency edge.
type Select struct {
	singleInput
	Condition  expreval.Expression
	Then, Else Node
}

// Assign publishes the result of Expr under Var.
type Assign struct {
	singleInput
	Var  string
	Expr expreval.Expression
}

// Loop runs Body repeatedly while Condition holds, re-evaluating Condition
// after each run. Body's root is reachable only through this node (P2).
type Loop struct {
	singleInput
	Condition expreval.Expression
	Body      Node
}

// DataCollectKind selects what a DataCollect node assembles from its named
// input variables.
type DataCollectKind string

const (
	CollectSubgraph             DataCollectKind = "Subgraph"
	CollectRowBasedMove         DataCollectKind = "RowBasedMove"
	CollectMToN                 DataCollectKind = "MToN"
	CollectBFSShortest          DataCollectKind = "BFSShortest"
	CollectAllPaths             DataCollectKind = "AllPaths"
	CollectMultiplePairShortest DataCollectKind = "MultiplePairShortest"
	CollectPathProp             DataCollectKind = "PathProp"
)

// DataCollect is the terminal aggregator that assembles one or more named
// input variables into a single output DataSet per its Kind (P1's other
// carve-out: InputVarNames may name user/system variables directly rather
// than mirroring a single dependency's OutputVar).
type DataCollect struct {
	base
	deps          []Node
	InputVarNames []string
	CollectKind   DataCollectKind
}

func (d *DataCollect) Dependencies() []Node { return d.deps }
func (d *DataCollect) InputVars() []string  { return d.InputVarNames }
func (d *DataCollect) Explain() NodeDescription {
	desc := d.explainBase()
	for _, dep := range d.deps {
		desc.Dependencies = append(desc.Dependencies, dep.ID())
	}
	return desc
}

func NewDataCollect(id int64, outputVar string, deps []Node, inputVars []string, kind DataCollectKind, colNames []string) *DataCollect {
	return &DataCollect{
		base:          base{id: id, kind: KindDataCollect, outputVar: outputVar, colNames: colNames},
		deps:          deps,
		InputVarNames: inputVars,
		CollectKind:   kind,
	}
}
