package gqlctx

import (
	"time"

	"github.com/vesoft-inc/nebula-graph-sub000/metaclient"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/storage"
	"github.com/vesoft-inc/nebula-graph-sub000/symtbl"
)

// Session is the thin slice of the (out-of-scope) session service a
// validator/executor actually touches: identity and the role grant
// PermissionManager checks against.
type Session struct {
	Username string
	Roles    map[string]string // space -> role
}

// RequestContext pairs the session handle with the eventual response
// destination (§3's RequestContext).
type RequestContext struct {
	Session   *Session
	StartTime time.Time
}

// Context is the per-request QueryContext (§3): owns everything scoped to
// one request and nothing shared across requests or accessed
// concurrently. Created on request arrival, discarded when the root
// executor finishes or fails (§3 Lifecycle).
type Context struct {
	Request *RequestContext

	SymTbl *symtbl.Table
	ExecCtx *ExecutionContext
	Pool   *Pool

	Meta    metaclient.Client
	Storage storage.Client

	CurrentSpace string

	Plan *plan.ExecutionPlan
	Desc *PlanDescription // non-nil only under EXPLAIN/EXPLAIN PROFILE
}

// NewContext constructs a fresh, request-scoped QueryContext.
func NewContext(session *Session, meta metaclient.Client, store storage.Client, currentSpace string) *Context {
	return &Context{
		Request: &RequestContext{Session: session, StartTime: time.Now()},
		SymTbl:  symtbl.New(),
		ExecCtx: NewExecutionContext(),
		Pool:    NewPool(),
		Meta:    meta,
		Storage: store,
		CurrentSpace: currentSpace,
	}
}

// PlanDescription is the EXPLAIN/PROFILE output (§6.4).
type PlanDescription struct {
	NodeDescs     []plan.NodeDescription
	NodeIndexMap  map[int64]int
	Format        string // "row" | "dot" | "dot:struct"
	OptimizeTimeMicros int64
}
