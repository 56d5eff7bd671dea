package plan

import "github.com/vesoft-inc/nebula-graph-sub000/expreval"

// newAdmin builds the shared adminNode embedding; every Admin/DDL/DML
// constructor below threads its dep through here since adminNode's
// embedded singleInput fields are unexported.
func newAdmin(id int64, kind Kind, outputVar string, dep Node) adminNode {
	return adminNode{newSingle(id, kind, outputVar, dep, "")}
}

func NewCreateSpace(id int64, outputVar string, dep Node, name string, partitions, replicas int32, vidType string, ifNotExists bool) *CreateSpace {
	return &CreateSpace{newAdmin(id, KindCreateSpace, outputVar, dep), name, partitions, replicas, vidType, ifNotExists}
}

func NewDropSpace(id int64, outputVar string, dep Node, name string, ifExists bool) *DropSpace {
	return &DropSpace{newAdmin(id, KindDropSpace, outputVar, dep), name, ifExists}
}

func NewDescSpace(id int64, outputVar string, dep Node, name string) *DescSpace {
	return &DescSpace{newAdmin(id, KindDescSpace, outputVar, dep), name}
}

func NewShowSpaces(id int64, outputVar string, dep Node) *ShowSpaces {
	return &ShowSpaces{newAdmin(id, KindShowSpaces, outputVar, dep)}
}

func NewCreateTag(id int64, outputVar string, dep Node, schema TagSchema, ifNotExists bool) *CreateTag {
	return &CreateTag{newAdmin(id, KindCreateTag, outputVar, dep), schema, ifNotExists}
}

func NewAlterTag(id int64, outputVar string, dep Node, name string, add []SchemaField, drop []string) *AlterTag {
	return &AlterTag{newAdmin(id, KindAlterTag, outputVar, dep), name, add, drop}
}

func NewDropTag(id int64, outputVar string, dep Node, name string, ifExists bool) *DropTag {
	return &DropTag{newAdmin(id, KindDropTag, outputVar, dep), name, ifExists}
}

func NewCreateEdge(id int64, outputVar string, dep Node, schema EdgeSchema, ifNotExists bool) *CreateEdge {
	return &CreateEdge{newAdmin(id, KindCreateEdge, outputVar, dep), schema, ifNotExists}
}

func NewAlterEdge(id int64, outputVar string, dep Node, name string, add []SchemaField, drop []string) *AlterEdge {
	return &AlterEdge{newAdmin(id, KindAlterEdge, outputVar, dep), name, add, drop}
}

func NewDropEdge(id int64, outputVar string, dep Node, name string, ifExists bool) *DropEdge {
	return &DropEdge{newAdmin(id, KindDropEdge, outputVar, dep), name, ifExists}
}

func NewCreateSnapshot(id int64, outputVar string, dep Node) *CreateSnapshot {
	return &CreateSnapshot{newAdmin(id, KindCreateSnapshot, outputVar, dep)}
}

func NewDropSnapshot(id int64, outputVar string, dep Node, name string) *DropSnapshot {
	return &DropSnapshot{newAdmin(id, KindDropSnapshot, outputVar, dep), name}
}

func NewShowSnapshots(id int64, outputVar string, dep Node) *ShowSnapshots {
	return &ShowSnapshots{newAdmin(id, KindShowSnapshots, outputVar, dep)}
}

func NewCreateUser(id int64, outputVar string, dep Node, username, password string, ifNotExists bool) *CreateUser {
	return &CreateUser{newAdmin(id, KindCreateUser, outputVar, dep), username, password, ifNotExists}
}

func NewDropUser(id int64, outputVar string, dep Node, username string, ifExists bool) *DropUser {
	return &DropUser{newAdmin(id, KindDropUser, outputVar, dep), username, ifExists}
}

func NewChangePassword(id int64, outputVar string, dep Node, username, newPassword string) *ChangePassword {
	return &ChangePassword{newAdmin(id, KindChangePassword, outputVar, dep), username, newPassword}
}

func NewGrantRole(id int64, outputVar string, dep Node, username, space, role string) *GrantRole {
	return &GrantRole{newAdmin(id, KindGrantRole, outputVar, dep), username, space, role}
}

func NewRevokeRole(id int64, outputVar string, dep Node, username, space, role string) *RevokeRole {
	return &RevokeRole{newAdmin(id, KindRevokeRole, outputVar, dep), username, space, role}
}

func NewListUsers(id int64, outputVar string, dep Node) *ListUsers {
	return &ListUsers{newAdmin(id, KindListUsers, outputVar, dep)}
}

func NewListRoles(id int64, outputVar string, dep Node, space string) *ListRoles {
	return &ListRoles{newAdmin(id, KindListRoles, outputVar, dep), space}
}

func NewBalance(id int64, outputVar string, dep Node, kind string) *Balance {
	return &Balance{newAdmin(id, KindBalance, outputVar, dep), kind}
}

func NewShowBalance(id int64, outputVar string, dep Node, jobID int64) *ShowBalance {
	return &ShowBalance{newAdmin(id, KindShowBalance, outputVar, dep), jobID}
}

func NewInsertVertices(id int64, outputVar string, dep Node, tags []string, vidExpr expreval.Expression, props map[string][]PropAssignment, overwrite bool) *InsertVertices {
	return &InsertVertices{newAdmin(id, KindInsertVertices, outputVar, dep), tags, vidExpr, props, overwrite}
}

func NewInsertEdges(id int64, outputVar string, dep Node, edgeType string, keyExpr expreval.Expression, props []PropAssignment, overwrite bool) *InsertEdges {
	return &InsertEdges{newAdmin(id, KindInsertEdges, outputVar, dep), edgeType, keyExpr, props, overwrite}
}

func NewUpdateVertex(id int64, outputVar string, dep Node, vidExpr expreval.Expression, tag string, set []PropAssignment, when expreval.Expression, insertable bool) *UpdateVertex {
	return &UpdateVertex{newAdmin(id, KindUpdateVertex, outputVar, dep), vidExpr, tag, set, when, insertable}
}

func NewUpdateEdge(id int64, outputVar string, dep Node, keyExpr expreval.Expression, edgeType string, set []PropAssignment, when expreval.Expression, insertable bool) *UpdateEdge {
	return &UpdateEdge{newAdmin(id, KindUpdateEdge, outputVar, dep), keyExpr, edgeType, set, when, insertable}
}

func NewDeleteVertices(id int64, outputVar string, dep Node, vidExpr expreval.Expression) *DeleteVertices {
	return &DeleteVertices{newAdmin(id, KindDeleteVertices, outputVar, dep), vidExpr}
}

func NewDeleteEdges(id int64, outputVar string, dep Node, edgeType string, keyExpr expreval.Expression) *DeleteEdges {
	return &DeleteEdges{newAdmin(id, KindDeleteEdges, outputVar, dep), edgeType, keyExpr}
}
