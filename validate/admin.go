package validate

import (
	"context"

	"github.com/vesoft-inc/nebula-graph-sub000/ast"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/planner"
)

// Admin/DDL/DML validators are thin field-for-field copies from the
// matching ast.Statement into the matching plan.Node, gated by a
// PermissionManager check against the privilege the operation needs.
// None of them consume piped input; dep/inputVar are ignored.

func init() {
	planner.Register(ast.KindCreateSpace, TransformCreateSpace)
	planner.Register(ast.KindDropSpace, TransformDropSpace)
	planner.Register(ast.KindDescSpace, TransformDescSpace)
	planner.Register(ast.KindShowSpaces, TransformShowSpaces)
	planner.Register(ast.KindCreateTag, TransformCreateTag)
	planner.Register(ast.KindAlterTag, TransformAlterTag)
	planner.Register(ast.KindDropTag, TransformDropTag)
	planner.Register(ast.KindCreateEdge, TransformCreateEdge)
	planner.Register(ast.KindAlterEdge, TransformAlterEdge)
	planner.Register(ast.KindDropEdge, TransformDropEdge)
	planner.Register(ast.KindCreateSnapshot, TransformCreateSnapshot)
	planner.Register(ast.KindDropSnapshot, TransformDropSnapshot)
	planner.Register(ast.KindShowSnapshots, TransformShowSnapshots)
	planner.Register(ast.KindCreateUser, TransformCreateUser)
	planner.Register(ast.KindDropUser, TransformDropUser)
	planner.Register(ast.KindChangePassword, TransformChangePassword)
	planner.Register(ast.KindGrantRole, TransformGrantRole)
	planner.Register(ast.KindRevokeRole, TransformRevokeRole)
	planner.Register(ast.KindListUsers, TransformListUsers)
	planner.Register(ast.KindListRoles, TransformListRoles)
	planner.Register(ast.KindBalance, TransformBalance)
	planner.Register(ast.KindShowBalance, TransformShowBalance)
	planner.Register(ast.KindInsertVertices, TransformInsertVertices)
	planner.Register(ast.KindInsertEdges, TransformInsertEdges)
	planner.Register(ast.KindUpdateVertex, TransformUpdateVertex)
	planner.Register(ast.KindUpdateEdge, TransformUpdateEdge)
	planner.Register(ast.KindDeleteVertices, TransformDeleteVertices)
	planner.Register(ast.KindDeleteEdges, TransformDeleteEdges)
}

func TransformCreateSpace(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.CreateSpaceStmt)
	if err := perm.Check(ctx, qctx, "*", RoleGod); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindCreateSpace)
	return bind(qctx, plan.NewCreateSpace(id, outVar, dep, s.Name, s.Partitions, s.Replicas, s.VidType, s.IfNotExists)), nil
}

func TransformDropSpace(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.DropSpaceStmt)
	if err := perm.Check(ctx, qctx, "*", RoleGod); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindDropSpace)
	return bind(qctx, plan.NewDropSpace(id, outVar, dep, s.Name, s.IfExists)), nil
}

func TransformDescSpace(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.DescSpaceStmt)
	if err := perm.Check(ctx, qctx, s.Name, RoleGuest); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindDescSpace)
	return bind(qctx, plan.NewDescSpace(id, outVar, dep, s.Name)), nil
}

func TransformShowSpaces(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	id, outVar := nextVar(qctx, alloc, plan.KindShowSpaces)
	return bind(qctx, plan.NewShowSpaces(id, outVar, dep)), nil
}

func TransformCreateTag(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.CreateTagStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleDBA); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindCreateTag)
	return bind(qctx, plan.NewCreateTag(id, outVar, dep, s.Schema, s.IfNotExists)), nil
}

func TransformAlterTag(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.AlterTagStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleDBA); err != nil {
		return nil, err
	}
	if _, err := qctx.Meta.ToTagID(ctx, qctx.CurrentSpace, s.Name); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindAlterTag)
	return bind(qctx, plan.NewAlterTag(id, outVar, dep, s.Name, s.AddFields, s.DropFields)), nil
}

func TransformDropTag(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.DropTagStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleDBA); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindDropTag)
	return bind(qctx, plan.NewDropTag(id, outVar, dep, s.Name, s.IfExists)), nil
}

func TransformCreateEdge(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.CreateEdgeStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleDBA); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindCreateEdge)
	return bind(qctx, plan.NewCreateEdge(id, outVar, dep, s.Schema, s.IfNotExists)), nil
}

func TransformAlterEdge(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.AlterEdgeStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleDBA); err != nil {
		return nil, err
	}
	if _, err := qctx.Meta.ToEdgeType(ctx, qctx.CurrentSpace, s.Name); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindAlterEdge)
	return bind(qctx, plan.NewAlterEdge(id, outVar, dep, s.Name, s.AddFields, s.DropFields)), nil
}

func TransformDropEdge(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.DropEdgeStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleDBA); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindDropEdge)
	return bind(qctx, plan.NewDropEdge(id, outVar, dep, s.Name, s.IfExists)), nil
}

func TransformCreateSnapshot(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	if err := perm.Check(ctx, qctx, "*", RoleGod); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindCreateSnapshot)
	return bind(qctx, plan.NewCreateSnapshot(id, outVar, dep)), nil
}

func TransformDropSnapshot(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.DropSnapshotStmt)
	if err := perm.Check(ctx, qctx, "*", RoleGod); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindDropSnapshot)
	return bind(qctx, plan.NewDropSnapshot(id, outVar, dep, s.Name)), nil
}

func TransformShowSnapshots(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	id, outVar := nextVar(qctx, alloc, plan.KindShowSnapshots)
	return bind(qctx, plan.NewShowSnapshots(id, outVar, dep)), nil
}

func TransformCreateUser(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.CreateUserStmt)
	if err := perm.Check(ctx, qctx, "*", RoleGod); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindCreateUser)
	return bind(qctx, plan.NewCreateUser(id, outVar, dep, s.Username, s.Password, s.IfNotExists)), nil
}

func TransformDropUser(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.DropUserStmt)
	if err := perm.Check(ctx, qctx, "*", RoleGod); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindDropUser)
	return bind(qctx, plan.NewDropUser(id, outVar, dep, s.Username, s.IfExists)), nil
}

func TransformChangePassword(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.ChangePasswordStmt)
	if err := perm.Check(ctx, qctx, "*", RoleGuest); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindChangePassword)
	return bind(qctx, plan.NewChangePassword(id, outVar, dep, s.Username, s.NewPassword)), nil
}

func TransformGrantRole(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.GrantRoleStmt)
	if err := perm.Check(ctx, qctx, s.SpaceName, RoleAdmin); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindGrantRole)
	return bind(qctx, plan.NewGrantRole(id, outVar, dep, s.Username, s.SpaceName, s.Role)), nil
}

func TransformRevokeRole(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.RevokeRoleStmt)
	if err := perm.Check(ctx, qctx, s.SpaceName, RoleAdmin); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindRevokeRole)
	return bind(qctx, plan.NewRevokeRole(id, outVar, dep, s.Username, s.SpaceName, s.Role)), nil
}

func TransformListUsers(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	if err := perm.Check(ctx, qctx, "*", RoleGod); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindListUsers)
	return bind(qctx, plan.NewListUsers(id, outVar, dep)), nil
}

func TransformListRoles(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.ListRolesStmt)
	if err := perm.Check(ctx, qctx, s.SpaceName, RoleAdmin); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindListRoles)
	return bind(qctx, plan.NewListRoles(id, outVar, dep, s.SpaceName)), nil
}

func TransformBalance(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.BalanceStmt)
	if err := perm.Check(ctx, qctx, "*", RoleGod); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindBalance)
	return bind(qctx, plan.NewBalance(id, outVar, dep, s.SubKind)), nil
}

func TransformShowBalance(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.ShowBalanceStmt)
	if err := perm.Check(ctx, qctx, "*", RoleGod); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindShowBalance)
	return bind(qctx, plan.NewShowBalance(id, outVar, dep, s.JobID)), nil
}

func TransformInsertVertices(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.InsertVerticesStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleUser); err != nil {
		return nil, err
	}
	for _, tag := range s.Tags {
		if _, err := qctx.Meta.ToTagID(ctx, qctx.CurrentSpace, tag); err != nil {
			return nil, err
		}
	}
	id, outVar := nextVar(qctx, alloc, plan.KindInsertVertices)
	return bind(qctx, plan.NewInsertVertices(id, outVar, dep, s.Tags, s.VidExpr, s.Props, s.Overwrite)), nil
}

func TransformInsertEdges(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.InsertEdgesStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleUser); err != nil {
		return nil, err
	}
	if _, err := qctx.Meta.ToEdgeType(ctx, qctx.CurrentSpace, s.EdgeType); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindInsertEdges)
	return bind(qctx, plan.NewInsertEdges(id, outVar, dep, s.EdgeType, s.KeyExpr, s.Props, s.Overwrite)), nil
}

func TransformUpdateVertex(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.UpdateVertexStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleUser); err != nil {
		return nil, err
	}
	if _, err := qctx.Meta.ToTagID(ctx, qctx.CurrentSpace, s.Tag); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindUpdateVertex)
	return bind(qctx, plan.NewUpdateVertex(id, outVar, dep, s.VidExpr, s.Tag, s.Set, s.When, s.Insertable)), nil
}

func TransformUpdateEdge(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.UpdateEdgeStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleUser); err != nil {
		return nil, err
	}
	if _, err := qctx.Meta.ToEdgeType(ctx, qctx.CurrentSpace, s.EdgeType); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindUpdateEdge)
	return bind(qctx, plan.NewUpdateEdge(id, outVar, dep, s.KeyExpr, s.EdgeType, s.Set, s.When, s.Insertable)), nil
}

func TransformDeleteVertices(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.DeleteVerticesStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleUser); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindDeleteVertices)
	return bind(qctx, plan.NewDeleteVertices(id, outVar, dep, s.VidExpr)), nil
}

func TransformDeleteEdges(ctx context.Context, qctx *gqlctx.Context, alloc *plan.IDAllocator, stmt ast.Statement, dep plan.Node, inputVar string) (plan.Node, error) {
	s := stmt.(*ast.DeleteEdgesStmt)
	if err := requireSpace(qctx, stmt); err != nil {
		return nil, err
	}
	if err := perm.Check(ctx, qctx, qctx.CurrentSpace, RoleUser); err != nil {
		return nil, err
	}
	if _, err := qctx.Meta.ToEdgeType(ctx, qctx.CurrentSpace, s.EdgeType); err != nil {
		return nil, err
	}
	id, outVar := nextVar(qctx, alloc, plan.KindDeleteEdges)
	return bind(qctx, plan.NewDeleteEdges(id, outVar, dep, s.EdgeType, s.KeyExpr)), nil
}
