// Package metaclient declares the metadata-service interface consumed by
// validators and Admin/DDL executors (§6.2). Only the client-side contract
// lives here; concrete RPC transport is out of scope (§1) -- metafake.go
// backs it with an in-process boltdb store so the rest of the module has
// something real to call end to end.
package metaclient

import "context"

// SchemaID identifies a tag or edge-type schema within one space.
type SchemaID int32

// TagSchema is the metadata-service's view of a tag's field list, the
// shape Client.GetTagSchema returns.
type TagSchema struct {
	ID     SchemaID
	Name   string
	Fields []FieldDef
}

type EdgeSchema struct {
	ID     SchemaID
	Name   string
	Fields []FieldDef
}

type FieldDef struct {
	Name     string
	Type     string
	Nullable bool
}

type SpaceDesc struct {
	Name       string
	Partitions int32
	Replicas   int32
	VidType    string
}

type SnapshotDesc struct {
	Name   string
	Status string
}

type UserDesc struct {
	Username string
}

type RoleDesc struct {
	Username, SpaceName, Role string
}

type BalanceJob struct {
	JobID  int64
	Status string
}

// Client is the metadata service's consumed surface (§6.2): schema
// lookups, space/user/role/snapshot/balance administration. Every method
// is a one-shot request/response, same as the original service's RPCs.
type Client interface {
	ToTagID(ctx context.Context, space, name string) (SchemaID, error)
	ToEdgeType(ctx context.Context, space, name string) (SchemaID, error)
	GetTagSchema(ctx context.Context, space, name string) (TagSchema, error)
	GetEdgeSchema(ctx context.Context, space, name string) (EdgeSchema, error)
	GetAllLatestVerTagSchema(ctx context.Context, space string) ([]TagSchema, error)
	GetAllLatestVerEdgeSchema(ctx context.Context, space string) ([]EdgeSchema, error)

	CreateSpace(ctx context.Context, desc SpaceDesc, ifNotExists bool) error
	DropSpace(ctx context.Context, name string, ifExists bool) error
	GetSpace(ctx context.Context, name string) (SpaceDesc, error)
	ListSpaces(ctx context.Context) ([]SpaceDesc, error)

	CreateTag(ctx context.Context, space string, schema TagSchema, ifNotExists bool) error
	AlterTag(ctx context.Context, space string, name string, add []FieldDef, drop []string) error
	DropTag(ctx context.Context, space, name string, ifExists bool) error

	CreateEdge(ctx context.Context, space string, schema EdgeSchema, ifNotExists bool) error
	AlterEdge(ctx context.Context, space string, name string, add []FieldDef, drop []string) error
	DropEdge(ctx context.Context, space, name string, ifExists bool) error

	CreateUser(ctx context.Context, username, password string, ifNotExists bool) error
	DropUser(ctx context.Context, username string, ifExists bool) error
	ChangePassword(ctx context.Context, username, newPassword string) error
	GrantRole(ctx context.Context, username, space, role string) error
	RevokeRole(ctx context.Context, username, space, role string) error
	ListUsers(ctx context.Context) ([]UserDesc, error)
	ListRoles(ctx context.Context, space string) ([]RoleDesc, error)

	CreateSnapshot(ctx context.Context, space string) error
	DropSnapshot(ctx context.Context, name string) error
	ListSnapshots(ctx context.Context) ([]SnapshotDesc, error)

	Balance(ctx context.Context, kind string) (int64, error)
	ShowBalance(ctx context.Context, jobID int64) (BalanceJob, error)
}
