package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/value"

	_ "github.com/vesoft-inc/nebula-graph-sub000/executor"
)

func newQCtx() *gqlctx.Context {
	return gqlctx.NewContext(&gqlctx.Session{Username: "t"}, nil, nil, "")
}

func TestSchedulerRunsFilterChain(t *testing.T) {
	qctx := newQCtx()
	start := plan.NewStart(1, "$$s1")
	filter := plan.NewFilter(2, "$$f1", start, "$$s1", &expreval.Literal{V: value.Bool(true)})

	ep := plan.NewExecutionPlan("q1", filter)
	s := New(nil)
	res, err := s.Run(context.Background(), qctx, ep)
	require.NoError(t, err)
	require.Equal(t, gqlctx.StateSuccess, res.State)
}

// TestSchedulerMemoizesSharedDependency builds a diamond: start feeds two
// independent filters that both depend on it; a final InnerJoin reads
// both of them. The shared start node must only be built (and published)
// once even though two downstream nodes depend on it.
func TestSchedulerMemoizesSharedDependency(t *testing.T) {
	qctx := newQCtx()
	start := plan.NewStart(1, "$$s1")
	left := plan.NewFilter(2, "$$left", start, "$$s1", &expreval.Literal{V: value.Bool(true)})
	right := plan.NewFilter(3, "$$right", start, "$$s1", &expreval.Literal{V: value.Bool(true)})
	joined := plan.NewInnerJoin(4, "$$out", left, right,
		plan.JoinSide{Var: "$$left"}, plan.JoinSide{Var: "$$right"}, nil, nil)

	ep := plan.NewExecutionPlan("q2", joined)
	s := New(nil)
	res, err := s.Run(context.Background(), qctx, ep)
	require.NoError(t, err)
	require.Equal(t, gqlctx.StateSuccess, res.State)

	startResult, ok := qctx.ExecCtx.Result("$$s1")
	require.True(t, ok)
	require.Len(t, startResult.DataSet().Rows, 1)
}

func TestSchedulerPropagatesExecutorError(t *testing.T) {
	qctx := newQCtx()
	start := plan.NewStart(1, "$$s1")
	filter := plan.NewFilter(2, "$$f1", start, "$$s1", &expreval.Literal{V: value.Str("not a bool")})

	ep := plan.NewExecutionPlan("q3", filter)
	s := New(nil)
	_, err := s.Run(context.Background(), qctx, ep)
	require.Error(t, err)
}
