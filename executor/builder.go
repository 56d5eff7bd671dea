package executor

import (
	"context"
	"fmt"

	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
)

// ExecFunc is one plan.Kind's executor contract.
type ExecFunc func(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future

// registry is populated by each kind-specific file's init(), mirroring
// rowexec.DefaultBuilder's single dispatch table generalized to one entry
// per plan.Kind instead of per sql.Node type.
var registry = map[plan.Kind]ExecFunc{}

func register(k plan.Kind, fn ExecFunc) {
	registry[k] = fn
}

// Builder dispatches a plan.Node to its registered ExecFunc.
type Builder struct{}

var DefaultBuilder = Builder{}

func (Builder) Build(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	fn, ok := registry[node.Kind()]
	if !ok {
		return Resolved(Status{
			State: gqlctx.StateError,
			Err:   graphderr.ErrUnknownPlanNode.New(fmt.Sprintf("%s", node.Kind())),
		})
	}
	return fn(ctx, qctx, node)
}
