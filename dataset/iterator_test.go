package dataset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

func TestSequentialIteratorEraseIsStable(t *testing.T) {
	ds := New([]string{"a"}, []Row{
		NewRow(value.Int(0)),
		NewRow(value.Int(1)),
		NewRow(value.Int(2)),
	})
	it := NewSequentialIterator(ds)

	var seen []int64
	for it.Valid() {
		v, _ := it.GetColumn("a")
		n := int64(v.(value.Int))
		if n == 1 {
			it.Erase()
			continue
		}
		seen = append(seen, n)
		it.Next()
	}
	require.Equal(t, []int64{0, 2}, seen)
	require.Equal(t, 2, it.Size())
}

func TestSequentialIteratorResetAfterErase(t *testing.T) {
	ds := New([]string{"a"}, []Row{NewRow(value.Int(0)), NewRow(value.Int(1))})
	it := NewSequentialIterator(ds)
	it.Erase() // erase row 0
	it.Reset()

	require.True(t, it.Valid())
	v, _ := it.GetColumn("a")
	require.Equal(t, value.Int(1), v)
	require.Equal(t, 1, it.Size())
}

func TestGetNeighborsIteratorUnfoldsEdges(t *testing.T) {
	src := value.Vertex{VID: "1"}
	e1 := value.Edge{Src: "1", Dst: "2", Type: "like"}
	e2 := value.Edge{Src: "1", Dst: "3", Type: "like"}
	ds := New([]string{"_vertex", "_edges"}, []Row{
		NewRow(src, value.NewList(e1, e2)),
	})
	it := NewGetNeighborsIterator(ds)

	var dsts []string
	for it.Valid() {
		e, ok := it.GetEdge()
		require.True(t, ok)
		dsts = append(dsts, e.Dst)
		it.Next()
	}
	require.Equal(t, []string{"2", "3"}, dsts)
}

func TestJoinIteratorSplitsRow(t *testing.T) {
	ds := New([]string{"l1", "r1", "r2"}, []Row{
		NewRow(value.Int(1), value.Str("a"), value.Str("b")),
	})
	it := NewJoinIterator(ds, 1)
	require.True(t, it.Valid())
	require.Equal(t, Row{value.Int(1)}, it.LeftRow())
	require.Equal(t, Row{value.Str("a"), value.Str("b")}, it.RightRow())
}

func TestDataSetValueEquality(t *testing.T) {
	a := DataSetValue{DS: New([]string{"x"}, []Row{NewRow(value.Int(1))})}
	b := DataSetValue{DS: New([]string{"x"}, []Row{NewRow(value.Int(1))})}
	require.True(t, a.Equal(b))
}

func TestSameColumns(t *testing.T) {
	a := New([]string{"x", "y"}, nil)
	b := New([]string{"x", "y"}, nil)
	c := New([]string{"x", "z"}, nil)
	require.True(t, a.SameColumns(b))
	require.False(t, a.SameColumns(c))
}
