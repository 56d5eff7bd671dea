package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
)

func TestExecutionPlanValidateAcceptsLoopBody(t *testing.T) {
	start := NewStart(1, "__start")
	body := NewFilter(2, "__body", start, "__start", &expreval.Literal{})
	loop := NewLoop(3, "__loop", start, "__start", &expreval.Literal{}, body)

	p := NewExecutionPlan("q1", loop)
	require.NoError(t, p.Validate())
	require.Len(t, p.Nodes, 3)
}

func TestExecutionPlanDetectsCycle(t *testing.T) {
	a := &Filter{singleInput: newSingle(1, KindFilter, "a", nil, "")}
	b := &Filter{singleInput: newSingle(2, KindFilter, "b", a, "a")}
	a.dep = b // manufacture a cycle

	p := &ExecutionPlan{ID: "q", Root: b, Nodes: map[int64]Node{1: a, 2: b}}
	require.Error(t, p.Validate())
}

func TestGetVerticesNoDependencyWhenConstant(t *testing.T) {
	gv := NewGetVertices(1, "v", nil, "", &expreval.Literal{})
	require.Empty(t, gv.Dependencies())
	require.Empty(t, gv.InputVars())
}

func TestSelectExcludesThenElseFromDependencies(t *testing.T) {
	start := NewStart(1, "s")
	then := NewFilter(2, "t", start, "s", &expreval.Literal{})
	els := NewFilter(3, "e", start, "s", &expreval.Literal{})
	sel := NewSelect(4, "out", start, "s", &expreval.Literal{}, then, els)

	require.Len(t, sel.Dependencies(), 1)
	require.Equal(t, start.ID(), sel.Dependencies()[0].ID())
}
