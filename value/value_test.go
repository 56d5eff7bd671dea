package value

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompareMixedIntFloat(t *testing.T) {
	cmp, ok := Int(2).Compare(Float(2.0))
	require.True(t, ok)
	require.Equal(t, 0, cmp)
}

func TestCompareIncomparableYieldsNotOK(t *testing.T) {
	_, ok := Int(1).Compare(Str("1"))
	require.False(t, ok)
}

func TestAddCoercion(t *testing.T) {
	require.Equal(t, Int(3), Add(Int(1), Int(2)))
	require.Equal(t, Float(3.5), Add(Float(1.5), Int(2)))
	require.Equal(t, Null{}, Add(Str("a"), Int(1)))
}

func TestDivByZeroIsNull(t *testing.T) {
	require.Equal(t, Null{}, Div(Int(1), Int(0)))
}

func TestThreeValuedLogic(t *testing.T) {
	require.Equal(t, Bool(false), And(Bool(false), Null{}))
	require.Equal(t, Bool(true), Or(Bool(true), Null{}))
	require.Equal(t, Null{}, And(Bool(true), Null{}))
	require.Equal(t, Null{}, Or(Bool(false), Null{}))
}

func TestCoerceTotal(t *testing.T) {
	v, err := Coerce(Str("not a number"), KindInt)
	require.NoError(t, err)
	require.Equal(t, Null{}, v)

	v, err = Coerce(Str("42"), KindInt)
	require.NoError(t, err)
	require.Equal(t, Int(42), v)
}

func TestListEquality(t *testing.T) {
	a := NewList(Int(1), Str("x"))
	b := NewList(Int(1), Str("x"))
	require.True(t, a.Equal(b))

	h1, err := a.Hash()
	require.NoError(t, err)
	h2, err := b.Hash()
	require.NoError(t, err)
	require.Equal(t, h1, h2)
}

func TestVertexTagProp(t *testing.T) {
	v := Vertex{VID: "v1", Tags: map[string]map[string]Value{
		"person": {"age": Int(30)},
	}}
	val, ok := v.TagProp("person", "age")
	require.True(t, ok)
	require.Equal(t, Int(30), val)

	_, ok = v.TagProp("person", "missing")
	require.False(t, ok)
}

func TestPathHelpers(t *testing.T) {
	p := Path{
		Vertices: []Vertex{{VID: "a"}, {VID: "b"}},
		Edges:    []Edge{{Src: "a", Dst: "b", Type: "like"}},
	}
	require.Equal(t, 1, p.Length())
	require.True(t, p.ContainsVertex("a"))
	require.False(t, p.ContainsVertex("z"))
	require.True(t, p.ContainsEdge(Edge{Src: "a", Dst: "b", Type: "like"}))
}
