package plan

import "github.com/vesoft-inc/nebula-graph-sub000/expreval"

// adminNode is the shared shape for the one-shot Admin/DDL/DML catalogue
// (§4.3's "opaque single-dependency nodes delegating to clients"): each
// wraps a kind-specific parameter bag the executor passes straight to
// metaclient.Client or storage.Client.
type adminNode struct {
	singleInput
}

// SwitchSpace validates and activates a new current space for the rest of
// a sequential statement (grounded on the source's SwitchSpaceExecutor).
type SwitchSpace struct {
	adminNode
	SpaceName string
}

type CreateSpace struct {
	adminNode
	SpaceName  string
	Partitions int32
	Replicas   int32
	VidType    string
	IfNotExists bool
}

type DropSpace struct {
	adminNode
	SpaceName string
	IfExists  bool
}

type DescSpace struct {
	adminNode
	SpaceName string
}

type ShowSpaces struct{ adminNode }

type TagSchema struct {
	Name   string
	Fields []SchemaField
	TTL    *TTLSpec
}

type SchemaField struct {
	Name     string
	Type     string
	Nullable bool
	Default  expreval.Expression
}

type TTLSpec struct {
	Col      string
	Duration int64
}

type CreateTag struct {
	adminNode
	Schema      TagSchema
	IfNotExists bool
}

type AlterTag struct {
	adminNode
	Name       string
	AddFields  []SchemaField
	DropFields []string
}

type DropTag struct {
	adminNode
	Name     string
	IfExists bool
}

type EdgeSchema struct {
	Name   string
	Fields []SchemaField
	TTL    *TTLSpec
}

type CreateEdge struct {
	adminNode
	Schema      EdgeSchema
	IfNotExists bool
}

type AlterEdge struct {
	adminNode
	Name       string
	AddFields  []SchemaField
	DropFields []string
}

type DropEdge struct {
	adminNode
	Name     string
	IfExists bool
}

type CreateSnapshot struct{ adminNode }

type DropSnapshot struct {
	adminNode
	Name string
}

type ShowSnapshots struct{ adminNode }

type CreateUser struct {
	adminNode
	Username    string
	Password    string
	IfNotExists bool
}

type DropUser struct {
	adminNode
	Username string
	IfExists bool
}

type ChangePassword struct {
	adminNode
	Username, NewPassword string
}

type GrantRole struct {
	adminNode
	Username, SpaceName, Role string
}

type RevokeRole struct {
	adminNode
	Username, SpaceName, Role string
}

type ListUsers struct{ adminNode }
type ListRoles struct {
	adminNode
	SpaceName string
}

type Balance struct {
	adminNode
	Kind string // "leader" | "data"
}

type ShowBalance struct {
	adminNode
	JobID int64
}

// PropAssignment is a single property = expr pair used by InsertVertices,
// UpdateVertex, and UpdateEdge.
type PropAssignment struct {
	Prop string
	Expr expreval.Expression
}

type InsertVertices struct {
	adminNode
	Tags      []string
	VidExpr   expreval.Expression
	Props     map[string][]PropAssignment // tag -> props
	Overwrite bool
}

type InsertEdges struct {
	adminNode
	EdgeType  string
	KeyExpr   expreval.Expression
	Props     []PropAssignment
	Overwrite bool
}

type UpdateVertex struct {
	adminNode
	VidExpr expreval.Expression
	Tag     string
	Set     []PropAssignment
	When    expreval.Expression
	Insertable bool
}

type UpdateEdge struct {
	adminNode
	KeyExpr    expreval.Expression
	EdgeType   string
	Set        []PropAssignment
	When       expreval.Expression
	Insertable bool
}

type DeleteVertices struct {
	adminNode
	VidExpr expreval.Expression
}

type DeleteEdges struct {
	adminNode
	EdgeType string
	KeyExpr  expreval.Expression
}
