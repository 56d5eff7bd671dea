// Package graphd implements the query instance driver (C9): the thin
// top-level Engine a caller hands one already-parsed ast.Statement to,
// grounded on the teacher's own engine.go (sqle.Engine.QueryWithBindings)
// generalized from "parse, analyze, iterate rows" to this module's
// Created→Validated→Optimized→Explain-Skip|Executing→Finished|Failed
// state machine.
package graphd

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	uuid "github.com/satori/go.uuid"

	"github.com/vesoft-inc/nebula-graph-sub000/ast"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/metaclient"
	"github.com/vesoft-inc/nebula-graph-sub000/optimizer"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/planner"
	"github.com/vesoft-inc/nebula-graph-sub000/scheduler"
	"github.com/vesoft-inc/nebula-graph-sub000/storage"
)

// Engine owns the out-of-process client handles and the ambient config
// every request's QueryContext is built from (mirrors sqle.Engine holding
// a Catalog/Analyzer/Config rather than per-query state).
type Engine struct {
	Meta    metaclient.Client
	Storage storage.Client
	Config  *Config
	Logger  *logrus.Logger
}

// New constructs an Engine. A nil Config falls back to DefaultConfig; a
// nil Logger falls back to logrus's standard logger.
func New(meta metaclient.Client, store storage.Client, cfg *Config, logger *logrus.Logger) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Engine{Meta: meta, Storage: store, Config: cfg, Logger: logger}
}

var mutatingKinds = map[ast.Kind]bool{
	ast.KindCreateSpace: true, ast.KindDropSpace: true,
	ast.KindCreateTag: true, ast.KindAlterTag: true, ast.KindDropTag: true,
	ast.KindCreateEdge: true, ast.KindAlterEdge: true, ast.KindDropEdge: true,
	ast.KindCreateSnapshot: true, ast.KindDropSnapshot: true,
	ast.KindCreateUser: true, ast.KindDropUser: true, ast.KindChangePassword: true,
	ast.KindGrantRole: true, ast.KindRevokeRole: true,
	ast.KindInsertVertices: true, ast.KindInsertEdges: true,
	ast.KindUpdateVertex: true, ast.KindUpdateEdge: true,
	ast.KindDeleteVertices: true, ast.KindDeleteEdges: true,
}

func isMutating(stmt ast.Statement) bool {
	return mutatingKinds[stmt.Kind()]
}

// Execute drives stmt through the engine's state machine and returns the
// terminal response. It never panics on a bad statement -- every error,
// including a read-only-mode rejection, is surfaced through
// ExecutionResponse.ErrorCode; Execute has no error return.
func (e *Engine) Execute(ctx context.Context, session *gqlctx.Session, currentSpace string, stmt ast.Statement) *ExecutionResponse {
	start := time.Now()
	planID := uuid.NewV4().String()
	resp := &ExecutionResponse{PlanID: planID, LatestSpace: currentSpace}
	log := e.Logger.WithFields(logrus.Fields{"plan_id": planID})

	if e.Config.ReadOnly && isMutating(stmt) {
		return e.fail(resp, start, graphderr.ErrPermissionDenied.New("engine is running in read-only mode"))
	}

	if currentSpace == "" && e.Config.DefaultSpace != "" {
		currentSpace = e.Config.DefaultSpace
	}

	reqCtx := ctx
	if e.Config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, e.Config.RequestTimeout)
		defer cancel()
	}

	qctx := gqlctx.NewContext(session, e.Meta, e.Storage, currentSpace)

	// Created -> Validated: planner.Plan dispatches into validate's
	// registered TransformFuncs, which both type-check and build the plan.
	ep, err := planner.Plan(reqCtx, qctx, stmt, planID)
	if err != nil {
		log.WithError(err).Debug("validation failed")
		return e.fail(resp, start, err)
	}
	qctx.Plan = ep

	// Validated -> Optimized.
	ep, err = optimizer.Run(ep, qctx)
	if err != nil {
		log.WithError(err).Debug("optimization failed")
		return e.fail(resp, start, err)
	}
	qctx.Plan = ep

	if explainStmt, ok := stmt.(*ast.ExplainStmt); ok {
		qctx.Desc = describePlan(ep, explainStmt.Profile, explainStmt.Format)
		if explainStmt.Profile {
			// Explain-Skip doesn't apply under PROFILE: the plan still
			// runs so each node's Profiles gets populated.
			result, err := e.runPlan(reqCtx, qctx, ep, log)
			if err != nil {
				return e.fail(resp, start, err)
			}
			fillResponse(resp, result)
		}
		resp.Plan = qctx.Desc
		resp.State = gqlctx.StateSuccess
		resp.LatestSpace = qctx.CurrentSpace
		resp.LatencyMicros = time.Since(start).Microseconds()
		return resp
	}

	// Optimized -> Executing -> Finished|Failed.
	result, err := e.runPlan(reqCtx, qctx, ep, log)
	if err != nil {
		return e.fail(resp, start, err)
	}
	fillResponse(resp, result)
	resp.LatestSpace = qctx.CurrentSpace
	resp.LatencyMicros = time.Since(start).Microseconds()
	if result.State == gqlctx.StateError {
		return e.fail(resp, start, errors.Wrap(graphderr.ErrExecution.New(result.Message), "scheduler run"))
	}
	return resp
}

func (e *Engine) runPlan(ctx context.Context, qctx *gqlctx.Context, ep *plan.ExecutionPlan, log *logrus.Entry) (gqlctx.Result, error) {
	sched := scheduler.New(log)
	return sched.Run(ctx, qctx, ep)
}

func fillResponse(resp *ExecutionResponse, result gqlctx.Result) {
	resp.State = result.State
	if ds := result.DataSet(); ds != nil {
		resp.ColNames = ds.ColNames
		resp.Rows = ds.Rows
	}
}

func (e *Engine) fail(resp *ExecutionResponse, start time.Time, err error) *ExecutionResponse {
	resp.State = gqlctx.StateError
	resp.ErrorCode = classify(err)
	resp.ErrorMsg = err.Error()
	resp.LatencyMicros = time.Since(start).Microseconds()
	return resp
}
