package gqlctx

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

func TestVariableOverwritesByDefault(t *testing.T) {
	v := &Variable{Name: "x"}
	v.Publish(Result{Data: value.Int(1), State: StateSuccess})
	v.Publish(Result{Data: value.Int(2), State: StateSuccess})
	require.Len(t, v.History, 1)
	latest, ok := v.Latest()
	require.True(t, ok)
	require.Equal(t, value.Int(2), latest.Data)
}

func TestVariableAppendsWhenMultiVersion(t *testing.T) {
	v := &Variable{Name: "x", MultiVersion: true}
	v.Publish(Result{Data: value.Int(1)})
	v.Publish(Result{Data: value.Int(2)})
	require.Len(t, v.History, 2)
}

func TestVariableVersionedBoundary(t *testing.T) {
	v := &Variable{Name: "x", MultiVersion: true}
	v.Publish(Result{Data: value.Int(1)})
	v.Publish(Result{Data: value.Int(2)})
	v.Publish(Result{Data: value.Int(3)})

	latest, ok := v.Versioned(0)
	require.True(t, ok)
	require.Equal(t, value.Int(3), latest.Data)

	prev, ok := v.Versioned(-1)
	require.True(t, ok)
	require.Equal(t, value.Int(2), prev.Data)

	oldest, ok := v.Versioned(1)
	require.True(t, ok)
	require.Equal(t, value.Int(1), oldest.Data)

	// boundary: |version| == len(history) returns Empty, not the oldest.
	r, ok := v.Versioned(-3)
	require.False(t, ok)
	require.Equal(t, value.Empty{}, r.Data)
}

func TestExecutionContextGetVarUnknown(t *testing.T) {
	ec := NewExecutionContext()
	_, err := ec.GetVar("nope")
	require.Error(t, err)
}
