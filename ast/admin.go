package ast

import (
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
)

// Admin/DDL/DML statements. Each mirrors the corresponding plan.Node 1:1
// (§4.3's "opaque single-dependency nodes delegating to clients") -- the
// validator for each is a thin field-for-field copy plus the shared
// PermissionManager check, not new algorithmic design.

type CreateSpaceStmt struct {
	base
	Name        string
	Partitions  int32
	Replicas    int32
	VidType     string
	IfNotExists bool
}

func NewCreateSpaceStmt() *CreateSpaceStmt { return &CreateSpaceStmt{base: base{KindCreateSpace}} }
func (s *CreateSpaceStmt) RequiresSpace() bool { return false }

type DropSpaceStmt struct {
	base
	Name     string
	IfExists bool
}

func NewDropSpaceStmt() *DropSpaceStmt { return &DropSpaceStmt{base: base{KindDropSpace}} }
func (s *DropSpaceStmt) RequiresSpace() bool { return false }

type DescSpaceStmt struct {
	base
	Name string
}

func NewDescSpaceStmt() *DescSpaceStmt { return &DescSpaceStmt{base: base{KindDescSpace}} }
func (s *DescSpaceStmt) RequiresSpace() bool { return false }

type ShowSpacesStmt struct{ base }

func NewShowSpacesStmt() *ShowSpacesStmt { return &ShowSpacesStmt{base{KindShowSpaces}} }
func (s *ShowSpacesStmt) RequiresSpace() bool { return false }

type CreateTagStmt struct {
	base
	Schema      plan.TagSchema
	IfNotExists bool
}

func NewCreateTagStmt() *CreateTagStmt { return &CreateTagStmt{base: base{KindCreateTag}} }

type AlterTagStmt struct {
	base
	Name       string
	AddFields  []plan.SchemaField
	DropFields []string
}

func NewAlterTagStmt() *AlterTagStmt { return &AlterTagStmt{base: base{KindAlterTag}} }

type DropTagStmt struct {
	base
	Name     string
	IfExists bool
}

func NewDropTagStmt() *DropTagStmt { return &DropTagStmt{base: base{KindDropTag}} }

type CreateEdgeStmt struct {
	base
	Schema      plan.EdgeSchema
	IfNotExists bool
}

func NewCreateEdgeStmt() *CreateEdgeStmt { return &CreateEdgeStmt{base: base{KindCreateEdge}} }

type AlterEdgeStmt struct {
	base
	Name       string
	AddFields  []plan.SchemaField
	DropFields []string
}

func NewAlterEdgeStmt() *AlterEdgeStmt { return &AlterEdgeStmt{base: base{KindAlterEdge}} }

type DropEdgeStmt struct {
	base
	Name     string
	IfExists bool
}

func NewDropEdgeStmt() *DropEdgeStmt { return &DropEdgeStmt{base: base{KindDropEdge}} }

type CreateSnapshotStmt struct{ base }

func NewCreateSnapshotStmt() *CreateSnapshotStmt {
	return &CreateSnapshotStmt{base{KindCreateSnapshot}}
}
func (s *CreateSnapshotStmt) RequiresSpace() bool { return false }

type DropSnapshotStmt struct {
	base
	Name string
}

func NewDropSnapshotStmt() *DropSnapshotStmt { return &DropSnapshotStmt{base: base{KindDropSnapshot}} }
func (s *DropSnapshotStmt) RequiresSpace() bool { return false }

type ShowSnapshotsStmt struct{ base }

func NewShowSnapshotsStmt() *ShowSnapshotsStmt { return &ShowSnapshotsStmt{base{KindShowSnapshots}} }
func (s *ShowSnapshotsStmt) RequiresSpace() bool { return false }

type CreateUserStmt struct {
	base
	Username, Password string
	IfNotExists        bool
}

func NewCreateUserStmt() *CreateUserStmt { return &CreateUserStmt{base: base{KindCreateUser}} }
func (s *CreateUserStmt) RequiresSpace() bool { return false }

type DropUserStmt struct {
	base
	Username string
	IfExists bool
}

func NewDropUserStmt() *DropUserStmt { return &DropUserStmt{base: base{KindDropUser}} }
func (s *DropUserStmt) RequiresSpace() bool { return false }

type ChangePasswordStmt struct {
	base
	Username, NewPassword string
}

func NewChangePasswordStmt() *ChangePasswordStmt {
	return &ChangePasswordStmt{base: base{KindChangePassword}}
}
func (s *ChangePasswordStmt) RequiresSpace() bool { return false }

type GrantRoleStmt struct {
	base
	Username, SpaceName, Role string
}

func NewGrantRoleStmt() *GrantRoleStmt { return &GrantRoleStmt{base: base{KindGrantRole}} }
func (s *GrantRoleStmt) RequiresSpace() bool { return false }

type RevokeRoleStmt struct {
	base
	Username, SpaceName, Role string
}

func NewRevokeRoleStmt() *RevokeRoleStmt { return &RevokeRoleStmt{base: base{KindRevokeRole}} }
func (s *RevokeRoleStmt) RequiresSpace() bool { return false }

type ListUsersStmt struct{ base }

func NewListUsersStmt() *ListUsersStmt { return &ListUsersStmt{base{KindListUsers}} }
func (s *ListUsersStmt) RequiresSpace() bool { return false }

type ListRolesStmt struct {
	base
	SpaceName string
}

func NewListRolesStmt() *ListRolesStmt { return &ListRolesStmt{base: base{KindListRoles}} }
func (s *ListRolesStmt) RequiresSpace() bool { return false }

type BalanceStmt struct {
	base
	SubKind string // "leader" | "data"
}

func NewBalanceStmt() *BalanceStmt { return &BalanceStmt{base: base{KindBalance}} }
func (s *BalanceStmt) RequiresSpace() bool { return false }

type ShowBalanceStmt struct {
	base
	JobID int64
}

func NewShowBalanceStmt() *ShowBalanceStmt { return &ShowBalanceStmt{base: base{KindShowBalance}} }
func (s *ShowBalanceStmt) RequiresSpace() bool { return false }

type InsertVerticesStmt struct {
	base
	Tags      []string
	VidExpr   expreval.Expression
	Props     map[string][]plan.PropAssignment
	Overwrite bool
}

func NewInsertVerticesStmt() *InsertVerticesStmt {
	return &InsertVerticesStmt{base: base{KindInsertVertices}}
}

type InsertEdgesStmt struct {
	base
	EdgeType  string
	KeyExpr   expreval.Expression
	Props     []plan.PropAssignment
	Overwrite bool
}

func NewInsertEdgesStmt() *InsertEdgesStmt { return &InsertEdgesStmt{base: base{KindInsertEdges}} }

type UpdateVertexStmt struct {
	base
	VidExpr    expreval.Expression
	Tag        string
	Set        []plan.PropAssignment
	When       expreval.Expression
	Insertable bool
}

func NewUpdateVertexStmt() *UpdateVertexStmt { return &UpdateVertexStmt{base: base{KindUpdateVertex}} }

type UpdateEdgeStmt struct {
	base
	KeyExpr    expreval.Expression
	EdgeType   string
	Set        []plan.PropAssignment
	When       expreval.Expression
	Insertable bool
}

func NewUpdateEdgeStmt() *UpdateEdgeStmt { return &UpdateEdgeStmt{base: base{KindUpdateEdge}} }

type DeleteVerticesStmt struct {
	base
	VidExpr expreval.Expression
}

func NewDeleteVerticesStmt() *DeleteVerticesStmt {
	return &DeleteVerticesStmt{base: base{KindDeleteVertices}}
}

type DeleteEdgesStmt struct {
	base
	EdgeType string
	KeyExpr  expreval.Expression
}

func NewDeleteEdgesStmt() *DeleteEdgesStmt { return &DeleteEdgesStmt{base: base{KindDeleteEdges}} }
