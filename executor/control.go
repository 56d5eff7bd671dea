package executor

import (
	"context"
	"fmt"

	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

// scalarBinder backs Select/Loop/Assign's Condition and Expr, which are
// scalar expressions over declared variables ($var, $var.history), never
// over a row -- the property accessors are unreachable from this scope.
type scalarBinder struct{ vars *gqlctx.ExecutionContext }

func (b scalarBinder) Var(name string) (value.Value, error) { return b.vars.GetVar(name) }
func (b scalarBinder) VersionedVar(name string, v int64) (value.Value, error) {
	return b.vars.GetVersionedVar(name, v)
}
func (scalarBinder) VarProp(varName, prop string) (value.Value, error) {
	return nil, graphderr.ErrExecution.New(fmt.Sprintf("%s.%s is not valid in a control-flow condition", varName, prop))
}
func (scalarBinder) InputProp(prop string) (value.Value, error) {
	return nil, graphderr.ErrExecution.New(fmt.Sprintf("$-.%s is not valid in a control-flow condition", prop))
}
func (scalarBinder) SrcProp(tag, prop string) (value.Value, error) {
	return nil, graphderr.ErrExecution.New("$^ is not valid in a control-flow condition")
}
func (scalarBinder) DstProp(tag, prop string) (value.Value, error) {
	return nil, graphderr.ErrExecution.New("$$ is not valid in a control-flow condition")
}
func (scalarBinder) EdgeProp(edgeType, prop string) (value.Value, error) {
	return nil, graphderr.ErrExecution.New("edge properties are not valid in a control-flow condition")
}

func init() {
	register(plan.KindSelect, execSelect)
	register(plan.KindLoop, execLoop)
	register(plan.KindAssign, execAssign)
}

// runSubtree drives Select's Then/Else branch and Loop's Body: both are
// closed subtrees reachable only through their controller (P2), so they
// are never handed to the top-level scheduler as sibling nodes. Loop calls
// this once per iteration; Variable.Publish's overwrite-unless-MultiVersion
// rule keeps repeated runs over the same Body safe without any explicit
// reset between iterations.
func runSubtree(ctx context.Context, qctx *gqlctx.Context, n plan.Node) (gqlctx.Result, error) {
	for _, dep := range n.Dependencies() {
		if _, err := runSubtree(ctx, qctx, dep); err != nil {
			return gqlctx.Result{}, err
		}
	}
	f := DefaultBuilder.Build(ctx, qctx, n)
	status, err := f.Wait(ctx)
	if err != nil {
		return gqlctx.Result{}, err
	}
	r, ok := qctx.ExecCtx.Result(n.OutputVar())
	if !ok {
		return gqlctx.Result{}, graphderr.ErrNilIterator.New(n.OutputVar())
	}
	if status.State == gqlctx.StateError {
		return r, status.Err
	}
	return r, nil
}

func execSelect(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Select)
	// Select's own input variable (when it has one) is already published
	// by the time the scheduler builds this node -- Run waits on every
	// Dependencies() future and short-circuits on error before calling
	// the executor -- and Condition is evaluated purely over $var/$var{n}
	// (scalarBinder), never over the input row, so there is nothing here
	// to read it for.
	return Go(func() Status {
		cond, err := n.Condition.Eval(scalarBinder{qctx.ExecCtx})
		if err != nil {
			return publishError(qctx, n.OutputVar(), err)
		}
		if !value.IsBoolOrNull(cond) {
			return publishError(qctx, n.OutputVar(), graphderr.ErrBadPredicate.New(cond.Kind()))
		}
		branch := n.Else
		if value.IsTruthy(cond) {
			branch = n.Then
		}
		if branch == nil {
			return publish(qctx, n.OutputVar(), gqlctx.Success(value.NullValue, 0))
		}
		r, err := runSubtree(ctx, qctx, branch)
		if err != nil {
			return publishError(qctx, n.OutputVar(), err)
		}
		return publish(qctx, n.OutputVar(), r)
	})
}

// execLoop re-evaluates Condition after each Body run, republishing Body's
// last result under the Loop's own output variable once the condition goes
// false.
func execLoop(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Loop)
	return Go(func() Status {
		var last gqlctx.Result
		haveLast := false
		for {
			cond, err := n.Condition.Eval(scalarBinder{qctx.ExecCtx})
			if err != nil {
				return publishError(qctx, n.OutputVar(), err)
			}
			if !value.IsBoolOrNull(cond) {
				return publishError(qctx, n.OutputVar(), graphderr.ErrBadPredicate.New(cond.Kind()))
			}
			if !value.IsTruthy(cond) {
				break
			}
			r, err := runSubtree(ctx, qctx, n.Body)
			if err != nil {
				return publishError(qctx, n.OutputVar(), err)
			}
			last = r
			haveLast = true
		}
		if !haveLast {
			return publish(qctx, n.OutputVar(), gqlctx.Success(value.NullValue, 0))
		}
		return publish(qctx, n.OutputVar(), last)
	})
}

func execAssign(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Assign)
	// Same reasoning as execSelect: Expr is a scalar expression over
	// declared variables only, and the scheduler has already waited on
	// this node's Dependencies() (when it has any) before calling us.
	v, err := n.Expr.Eval(scalarBinder{qctx.ExecCtx})
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	r := gqlctx.Success(v, 0)
	qctx.ExecCtx.Publish(n.Var, r)
	return Resolved(publish(qctx, n.OutputVar(), r))
}
