// Package plan implements the typed operator DAG (C3): every PlanNode kind
// named in the specification, built as tagged structs embedding shared
// accessor bases rather than a deep class hierarchy (grounded on
// sql/plan's flat node-per-file layout, generalized per the "prefer tagged
// variants over inheritance" design note).
package plan

// Kind tags every operator. String-valued so explain output and error
// messages read directly off it, matching sql.Expression's String()-keyed
// dispatch idiom.
type Kind string

const (
	KindStart      Kind = "Start"
	KindPassThrough Kind = "PassThrough"
	KindMultiOutputs Kind = "MultiOutputs"

	KindGetNeighbors Kind = "GetNeighbors"
	KindGetVertices  Kind = "GetVertices"
	KindGetEdges     Kind = "GetEdges"
	KindIndexScan    Kind = "IndexScan"

	KindProject   Kind = "Project"
	KindFilter    Kind = "Filter"
	KindSort      Kind = "Sort"
	KindLimit     Kind = "Limit"
	KindTopN      Kind = "TopN"
	KindDedup     Kind = "Dedup"
	KindAggregate Kind = "Aggregate"
	KindUnwind    Kind = "Unwind"

	KindUnion     Kind = "Union"
	KindIntersect Kind = "Intersect"
	KindMinus     Kind = "Minus"

	KindInnerJoin Kind = "InnerJoin"
	KindLeftJoin  Kind = "LeftJoin"

	KindBFSShortestPath         Kind = "BFSShortestPath"
	KindProduceAllPaths         Kind = "ProduceAllPaths"
	KindProduceSemiShortestPath Kind = "ProduceSemiShortestPath"
	KindConjunctPath            Kind = "ConjunctPath"
	KindSubgraph                Kind = "Subgraph"
	KindCartesianProduct        Kind = "CartesianProduct"

	KindSelect Kind = "Select"
	KindLoop   Kind = "Loop"
	KindAssign Kind = "Assign"

	KindDataCollect Kind = "DataCollect"

	KindSwitchSpace    Kind = "SwitchSpace"
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

// Direction qualifies GetNeighbors traversal direction.
type Direction int

const (
	DirOut Direction = iota
	DirIn
	DirBoth
)

// NodeDescription is the EXPLAIN/PROFILE row for one node (§6.4).
type NodeDescription struct {
	ID           int64
	Name         string
	OutputVar    string
	Dependencies []int64
	Description  [][2]string
	BranchInfo   string
	Profiles     []ProfilingStats
}

// ProfilingStats is one executor invocation's timing, attached under
// EXPLAIN PROFILE.
type ProfilingStats struct {
	DurationMicros   int64
	TotalDurationMicros int64
	RowsProduced     int
}

// Node is the common contract every operator kind satisfies (P1-P3).
type Node interface {
	ID() int64
	Kind() Kind
	Dependencies() []Node
	InputVars() []string
	OutputVar() string
	ColNames() []string
	Explain() NodeDescription
}

// base carries the fields and accessors shared by every node kind:
// identity, a single declared output variable, and column names. Kind-
// specific structs embed it and override ColNames/Explain when their
// shape differs from the default (id, kind, outputVar echoed verbatim).
type base struct {
	id        int64
	kind      Kind
	outputVar string
	colNames  []string
}

func (b *base) ID() int64        { return b.id }
func (b *base) Kind() Kind       { return b.kind }
func (b *base) OutputVar() string { return b.outputVar }
func (b *base) ColNames() []string { return b.colNames }

func (b *base) explainBase() NodeDescription {
	return NodeDescription{ID: b.id, Name: string(b.kind), OutputVar: b.outputVar}
}

// singleInput is embedded by every node with exactly one dependency edge
// and one input variable (the common case: Filter, Project, Sort, ...).
type singleInput struct {
	base
	dep      Node
	inputVar string
}

// Dependencies returns nil when dep is unset (a Start-rooted scan with a
// constant source expression has no dependency edge).
func (s *singleInput) Dependencies() []Node {
	if s.dep == nil {
		return nil
	}
	return []Node{s.dep}
}
func (s *singleInput) InputVars() []string {
	if s.inputVar == "" {
		return nil
	}
	return []string{s.inputVar}
}

func (s *singleInput) Explain() NodeDescription {
	d := s.explainBase()
	if s.dep != nil {
		d.Dependencies = []int64{s.dep.ID()}
	}
	return d
}

// biInput is embedded by every bi-dependency node (set ops, joins,
// CartesianProduct).
type biInput struct {
	base
	left, right         Node
	leftVar, rightVar   string
}

func (b *biInput) Dependencies() []Node { return []Node{b.left, b.right} }
func (b *biInput) InputVars() []string  { return []string{b.leftVar, b.rightVar} }

func (b *biInput) Explain() NodeDescription {
	d := b.explainBase()
	d.Dependencies = []int64{b.left.ID(), b.right.ID()}
	return d
}

// noInput is embedded by Start, which has no dependencies.
type noInput struct {
	base
}

func (n *noInput) Dependencies() []Node { return nil }
func (n *noInput) InputVars() []string  { return nil }
func (n *noInput) Explain() NodeDescription { return n.explainBase() }
