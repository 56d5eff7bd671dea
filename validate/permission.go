package validate

import (
	"context"

	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
)

// Role is a space-scoped privilege level, ordered least to most
// privileged (src/service/PermissionManager.cpp's role ladder).
type Role int

const (
	RoleGuest Role = iota
	RoleUser
	RoleDBA
	RoleAdmin
	RoleGod
)

var roleNames = map[string]Role{
	"GUEST": RoleGuest,
	"USER":  RoleUser,
	"DBA":   RoleDBA,
	"ADMIN": RoleAdmin,
	"GOD":   RoleGod,
}

// PermissionManager is the session-level ACL gate every admin/DDL/DML
// validator calls before building its sub-plan. It consults only the
// session handle already carried on gqlctx.Context -- the session and
// role-grant services themselves are out of scope.
type PermissionManager struct{}

// Check fails unless the session holds at least requiredRole for space.
// A God-role session bypasses the space lookup entirely (global grant).
func (PermissionManager) Check(ctx context.Context, qctx *gqlctx.Context, space string, requiredRole Role) error {
	sess := qctx.Request.Session
	if sess == nil {
		return graphderr.ErrPermissionDenied.New("no session")
	}
	if have, ok := roleNames[sess.Roles["*"]]; ok && have == RoleGod {
		return nil
	}
	got, ok := sess.Roles[space]
	if !ok {
		return graphderr.ErrPermissionDenied.New(sess.Username + " has no role on " + space)
	}
	have, ok := roleNames[got]
	if !ok || have < requiredRole {
		return graphderr.ErrPermissionDenied.New(sess.Username + " lacks required privilege on " + space)
	}
	return nil
}

var perm = PermissionManager{}
