package graphd

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vesoft-inc/nebula-graph-sub000/ast"
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/metaclient"
	"github.com/vesoft-inc/nebula-graph-sub000/storage"
	"github.com/vesoft-inc/nebula-graph-sub000/value"

	_ "github.com/vesoft-inc/nebula-graph-sub000/validate"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	meta, err := metaclient.NewFake(filepath.Join(t.TempDir(), "meta.db"))
	require.NoError(t, err)
	store, err := storage.NewFake(filepath.Join(t.TempDir(), "storage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { meta.Close(); store.Close() })
	return New(meta, store, DefaultConfig(), nil)
}

func godSession() *gqlctx.Session {
	return &gqlctx.Session{Username: "root", Roles: map[string]string{"*": "GOD"}}
}

func newCreateSpaceStmt(name string) *ast.CreateSpaceStmt {
	s := ast.NewCreateSpaceStmt()
	s.Name = name
	s.Partitions = 1
	s.Replicas = 1
	s.VidType = "FIXED_STRING(32)"
	return s
}

func TestEngineExecuteCreateSpaceSucceeds(t *testing.T) {
	e := newTestEngine(t)
	resp := e.Execute(context.Background(), godSession(), "", newCreateSpaceStmt("test_space"))
	require.Equal(t, gqlctx.StateSuccess, resp.State)
	require.Equal(t, ErrCodeNone, resp.ErrorCode)
	require.Empty(t, resp.ErrorMsg)
	require.NotEmpty(t, resp.PlanID)
}

func TestEngineExecuteDuplicateCreateSpaceFails(t *testing.T) {
	e := newTestEngine(t)
	ctx := context.Background()
	resp := e.Execute(ctx, godSession(), "", newCreateSpaceStmt("dup_space"))
	require.Equal(t, gqlctx.StateSuccess, resp.State)

	resp = e.Execute(ctx, godSession(), "", newCreateSpaceStmt("dup_space"))
	require.Equal(t, gqlctx.StateError, resp.State)
	require.Equal(t, ErrCodeMeta, resp.ErrorCode)
}

func TestEngineExecuteRejectsMutationWhenReadOnly(t *testing.T) {
	e := newTestEngine(t)
	e.Config.ReadOnly = true

	resp := e.Execute(context.Background(), godSession(), "", newCreateSpaceStmt("ro_space"))
	require.Equal(t, gqlctx.StateError, resp.State)
	require.Equal(t, ErrCodePermission, resp.ErrorCode)
}

func TestEngineExecuteRejectsUnprivilegedSession(t *testing.T) {
	e := newTestEngine(t)
	unprivileged := &gqlctx.Session{Username: "guest", Roles: map[string]string{}}

	resp := e.Execute(context.Background(), unprivileged, "", newCreateSpaceStmt("forbidden_space"))
	require.Equal(t, gqlctx.StateError, resp.State)
	require.Equal(t, ErrCodePermission, resp.ErrorCode)
}

func TestEngineExecuteExplainSkipsExecution(t *testing.T) {
	e := newTestEngine(t)
	explain := ast.NewExplainStmt(newCreateSpaceStmt("explained_space"), false, "row")

	resp := e.Execute(context.Background(), godSession(), "", explain)
	require.Equal(t, gqlctx.StateSuccess, resp.State)
	require.NotNil(t, resp.Plan)
	require.NotEmpty(t, resp.Plan.NodeDescs)

	// the statement must not actually have run: creating the same space
	// for real afterward must still succeed.
	resp = e.Execute(context.Background(), godSession(), "", newCreateSpaceStmt("explained_space"))
	require.Equal(t, gqlctx.StateSuccess, resp.State)
}

func TestEngineExecuteExplainProfileRunsAndPopulatesProfiles(t *testing.T) {
	e := newTestEngine(t)
	explain := ast.NewExplainStmt(newCreateSpaceStmt("profiled_space"), true, "row")

	resp := e.Execute(context.Background(), godSession(), "", explain)
	require.Equal(t, gqlctx.StateSuccess, resp.State)
	require.NotNil(t, resp.Plan)
	var sawProfile bool
	for _, nd := range resp.Plan.NodeDescs {
		if len(nd.Profiles) > 0 {
			sawProfile = true
		}
	}
	require.True(t, sawProfile, "expected at least one node to carry profiling stats under EXPLAIN PROFILE")
}

// TestEngineExecuteYieldLiteralRoundTripsThroughDataCollect exercises a
// non-admin statement end-to-end: planner.wrapRowBasedMove wraps the
// Project root in a DataCollect(RowBasedMove) node, so this only succeeds
// once that executor republishes the wrapped result under the plan's root
// output variable.
func TestEngineExecuteYieldLiteralRoundTripsThroughDataCollect(t *testing.T) {
	e := newTestEngine(t)
	y := ast.NewYieldStmt()
	y.Yield = []ast.YieldItem{{Expr: &expreval.Literal{V: value.Int(1)}, Alias: "1"}}

	resp := e.Execute(context.Background(), godSession(), "", y)
	require.Equal(t, gqlctx.StateSuccess, resp.State)
	require.Equal(t, ErrCodeNone, resp.ErrorCode)
	require.Equal(t, []string{"1"}, resp.ColNames)
	require.Len(t, resp.Rows, 1)
	require.Equal(t, value.Int(1), resp.Rows[0][0])
}
