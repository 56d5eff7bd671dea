package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

func newQCtx() *gqlctx.Context {
	return gqlctx.NewContext(&gqlctx.Session{Username: "t"}, nil, nil, "")
}

func seedInput(qctx *gqlctx.Context, name string, colNames []string, rows []dataset.Row) {
	ds := dataset.New(colNames, rows)
	qctx.ExecCtx.Publish(name, gqlctx.Success(dataset.DataSetValue{DS: ds}, dataset.KindSequential))
}

func run(t *testing.T, qctx *gqlctx.Context, node plan.Node) dataset.DataSetValue {
	t.Helper()
	st, err := DefaultBuilder.Build(context.Background(), qctx, node).Wait(context.Background())
	require.NoError(t, err)
	require.NoError(t, st.Err)
	require.Equal(t, gqlctx.StateSuccess, st.State)
	r, ok := qctx.ExecCtx.Result(node.OutputVar())
	require.True(t, ok)
	return dataset.DataSetValue{DS: r.DataSet()}
}

// Seed scenario 1: `YIELD 1` -- a Start node feeding a Project that yields
// the literal 1, aliased "1".
func TestProjectYieldLiteral(t *testing.T) {
	qctx := newQCtx()
	start := plan.NewStart(1, "$$s1")
	_ = run(t, qctx, start)
	proj := plan.NewProject(2, "$$p1", start, "$$s1", []plan.YieldColumn{
		{Expr: &expreval.Literal{V: value.Int(1)}, Alias: "1"},
	})
	dsv := run(t, qctx, proj)
	require.Equal(t, []string{"1"}, dsv.DS.ColNames)
	require.Len(t, dsv.DS.Rows, 1)
	require.Equal(t, value.Int(1), dsv.DS.Rows[0][0])
}

// Seed scenario 2: three rows piped through a Filter keeping col0 > 0.
func TestFilterKeepsRowsMatchingPredicate(t *testing.T) {
	qctx := newQCtx()
	seedInput(qctx, "$$in", []string{"col0", "col1"}, []dataset.Row{
		{value.Int(0), value.Int(0)},
		{value.Int(1), value.Int(1)},
		{value.Int(2), value.Int(2)},
	})
	pred := &expreval.BinaryOp{
		Op:    expreval.OpGT,
		Left:  &expreval.InputPropRef{Prop: "col0"},
		Right: &expreval.Literal{V: value.Int(0)},
	}
	filter := plan.NewFilter(1, "$$out", nil, "$$in", pred)
	dsv := run(t, qctx, filter)
	require.Equal(t, []string{"col0", "col1"}, dsv.DS.ColNames)
	require.Len(t, dsv.DS.Rows, 2)
	require.Equal(t, value.Int(1), dsv.DS.Rows[0][0])
	require.Equal(t, value.Int(2), dsv.DS.Rows[1][0])
}

func TestFilterNonBoolPredicateIsExecutionError(t *testing.T) {
	qctx := newQCtx()
	seedInput(qctx, "$$in", []string{"col0"}, []dataset.Row{{value.Int(1)}})
	filter := plan.NewFilter(1, "$$out", nil, "$$in", &expreval.Literal{V: value.Str("nope")})
	st, err := DefaultBuilder.Build(context.Background(), qctx, filter).Wait(context.Background())
	require.NoError(t, err)
	require.Error(t, st.Err)
	require.Equal(t, gqlctx.StateError, st.State)
}

// Seed scenario 3: GROUP BY col2 YIELD COUNT(col2) over ten rows with five
// distinct col2 values, two rows apiece, must produce five groups each
// counting 2.
func TestAggregateGroupByCount(t *testing.T) {
	qctx := newQCtx()
	rows := make([]dataset.Row, 0, 10)
	for i := int64(0); i < 5; i++ {
		rows = append(rows, dataset.Row{value.Int(i)}, dataset.Row{value.Int(i)})
	}
	seedInput(qctx, "$$in", []string{"col2"}, rows)
	groupKey := &expreval.InputPropRef{Prop: "col2"}
	agg := plan.NewAggregate(1, "$$out", nil, "$$in",
		[]expreval.Expression{groupKey},
		[]plan.GroupItem{
			{Agg: &expreval.AggregateCall{Fn: expreval.AggCount, Arg: groupKey}, Alias: "COUNT(col2)"},
		},
	)
	dsv := run(t, qctx, agg)
	require.Len(t, dsv.DS.Rows, 5)
	for _, row := range dsv.DS.Rows {
		require.Equal(t, value.Int(2), row[0])
	}
}

func TestAggregateSumAndAvg(t *testing.T) {
	qctx := newQCtx()
	seedInput(qctx, "$$in", []string{"v"}, []dataset.Row{
		{value.Int(1)}, {value.Int(2)}, {value.Int(3)},
	})
	arg := &expreval.InputPropRef{Prop: "v"}
	agg := plan.NewAggregate(1, "$$out", nil, "$$in", nil, []plan.GroupItem{
		{Agg: &expreval.AggregateCall{Fn: expreval.AggSum, Arg: arg}, Alias: "SUM(v)"},
		{Agg: &expreval.AggregateCall{Fn: expreval.AggAvg, Arg: arg}, Alias: "AVG(v)"},
	})
	dsv := run(t, qctx, agg)
	require.Len(t, dsv.DS.Rows, 1)
	require.Equal(t, value.Int(6), dsv.DS.Rows[0][0])
	require.Equal(t, value.Float(2), dsv.DS.Rows[0][1])
}

// Seed scenario 4: union of mismatched-column DataSets is a semantic
// error, surfaced here as the executor's ExecutionError.
func TestUnionMismatchedColumnsFails(t *testing.T) {
	qctx := newQCtx()
	seedInput(qctx, "$$left", []string{"like.start"}, []dataset.Row{{value.Int(2010)}})
	seedInput(qctx, "$$right", []string{"like.start", "like.start2"}, []dataset.Row{{value.Int(2010), value.Int(2012)}})
	union := plan.NewUnion(1, "$$out", nil, nil, "$$left", "$$right")
	st, err := DefaultBuilder.Build(context.Background(), qctx, union).Wait(context.Background())
	require.NoError(t, err)
	require.Error(t, st.Err)
	require.Equal(t, gqlctx.StateError, st.State)
}

func TestUnionConcatenatesEqualColumns(t *testing.T) {
	qctx := newQCtx()
	seedInput(qctx, "$$left", []string{"c"}, []dataset.Row{{value.Int(1)}})
	seedInput(qctx, "$$right", []string{"c"}, []dataset.Row{{value.Int(2)}})
	union := plan.NewUnion(1, "$$out", nil, nil, "$$left", "$$right")
	dsv := run(t, qctx, union)
	require.Len(t, dsv.DS.Rows, 2)
}

func TestDedupRemovesDuplicateRowsStably(t *testing.T) {
	qctx := newQCtx()
	seedInput(qctx, "$$in", []string{"c"}, []dataset.Row{
		{value.Int(1)}, {value.Int(2)}, {value.Int(1)}, {value.Int(3)},
	})
	dedup := plan.NewDedup(1, "$$out", nil, "$$in")
	dsv := run(t, qctx, dedup)
	require.Len(t, dsv.DS.Rows, 3)
	require.Equal(t, value.Int(1), dsv.DS.Rows[0][0])
	require.Equal(t, value.Int(2), dsv.DS.Rows[1][0])
	require.Equal(t, value.Int(3), dsv.DS.Rows[2][0])
}

func TestLimitSkipsOffsetAndBoundsCount(t *testing.T) {
	qctx := newQCtx()
	seedInput(qctx, "$$in", []string{"c"}, []dataset.Row{
		{value.Int(0)}, {value.Int(1)}, {value.Int(2)}, {value.Int(3)},
	})
	limit := plan.NewLimit(1, "$$out", nil, "$$in", 1, 2)
	dsv := run(t, qctx, limit)
	require.Len(t, dsv.DS.Rows, 2)
	require.Equal(t, value.Int(1), dsv.DS.Rows[0][0])
	require.Equal(t, value.Int(2), dsv.DS.Rows[1][0])
}
