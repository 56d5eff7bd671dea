package dataset

import "github.com/vesoft-inc/nebula-graph-sub000/value"

// Kind tags which of the four logical shapes an Iterator presents over its
// backing DataSet.
type Kind uint8

const (
	KindSequential Kind = iota
	KindGetNeighbors
	KindProperty
	KindJoin
)

func (k Kind) String() string {
	switch k {
	case KindSequential:
		return "Sequential"
	case KindGetNeighbors:
		return "GetNeighbors"
	case KindProperty:
		return "Property"
	case KindJoin:
		return "Join"
	default:
		return "Unknown"
	}
}

// Iterator is a forward cursor over one DataSet. Multiple iterators may
// share the same backing DataSet as long as none mutates it; Erase is
// logical (a tombstone), so the dataset itself is never reallocated or
// reordered while iterators are live over it.
type Iterator interface {
	Kind() Kind
	Valid() bool
	Next()
	Reset()
	// Erase marks the current logical row dead and advances past it. It is
	// stable: the relative order of surviving rows is unchanged.
	Erase()
	// Size is the number of live logical rows remaining (excludes erased).
	Size() int
	ColNames() []string
	GetColumn(name string) (value.Value, bool)
	GetTagProp(tag, prop string) (value.Value, bool)
	GetEdgeProp(edgeType, prop string) (value.Value, bool)
	GetVertex() (value.Vertex, bool)
	GetEdge() (value.Edge, bool)
	// Row returns the current logical row (column-aligned with ColNames).
	Row() Row
}

// seqCursor is the shared order/tombstone bookkeeping every iterator
// variant below builds on: a stable visiting order over logical row
// indices plus a tombstone for O(1) logical erase.
type seqCursor struct {
	order []int // logical row indices in visiting order
	pos   int
	dead  *tombstone
}

func newSeqCursor(n int) seqCursor {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return seqCursor{order: order, dead: newTombstone()}
}

func (c *seqCursor) valid() bool {
	return c.currentIdx() >= 0
}

// currentIdx returns the logical row index at pos, skipping dead rows, or
// -1 once exhausted.
func (c *seqCursor) currentIdx() int {
	for c.pos < len(c.order) {
		idx := c.order[c.pos]
		if !c.dead.isDead(idx) {
			return idx
		}
		c.pos++
	}
	return -1
}

func (c *seqCursor) next() {
	if c.pos < len(c.order) {
		c.pos++
	}
	c.currentIdx()
}

func (c *seqCursor) reset() {
	c.pos = 0
}

func (c *seqCursor) erase() {
	if idx := c.currentIdx(); idx >= 0 {
		c.dead.markDead(idx)
	}
	c.next()
}

func (c *seqCursor) size() int {
	return c.dead.liveCount(len(c.order))
}

// SequentialIterator: one logical row = one DataSet row.
type SequentialIterator struct {
	ds *DataSet
	seqCursor
}

func NewSequentialIterator(ds *DataSet) *SequentialIterator {
	return &SequentialIterator{ds: ds, seqCursor: newSeqCursor(len(ds.Rows))}
}

func (it *SequentialIterator) Kind() Kind   { return KindSequential }
func (it *SequentialIterator) Valid() bool  { return it.valid() }
func (it *SequentialIterator) Next()        { it.next() }
func (it *SequentialIterator) Reset()       { it.reset() }
func (it *SequentialIterator) Erase()       { it.erase() }
func (it *SequentialIterator) Size() int    { return it.size() }
func (it *SequentialIterator) ColNames() []string { return it.ds.ColNames }

func (it *SequentialIterator) Row() Row {
	if idx := it.currentIdx(); idx >= 0 {
		return it.ds.Rows[idx]
	}
	return nil
}

func (it *SequentialIterator) GetColumn(name string) (value.Value, bool) {
	i := it.ds.ColIndex(name)
	row := it.Row()
	if i < 0 || row == nil {
		return value.Empty{}, false
	}
	return row[i], true
}

func (it *SequentialIterator) GetVertex() (value.Vertex, bool) {
	row := it.Row()
	if row == nil {
		return value.Vertex{}, false
	}
	for _, v := range row {
		if vtx, ok := v.(value.Vertex); ok {
			return vtx, true
		}
	}
	return value.Vertex{}, false
}

func (it *SequentialIterator) GetEdge() (value.Edge, bool) {
	row := it.Row()
	if row == nil {
		return value.Edge{}, false
	}
	for _, v := range row {
		if e, ok := v.(value.Edge); ok {
			return e, true
		}
	}
	return value.Edge{}, false
}

func (it *SequentialIterator) GetTagProp(tag, prop string) (value.Value, bool) {
	vtx, ok := it.GetVertex()
	if !ok {
		return value.Empty{}, false
	}
	return vtx.TagProp(tag, prop)
}

func (it *SequentialIterator) GetEdgeProp(edgeType, prop string) (value.Value, bool) {
	e, ok := it.GetEdge()
	if !ok || e.Type != edgeType {
		return value.Empty{}, false
	}
	return e.Prop(prop)
}

// neighborRow is one (src vertex, single edge) unfolding of a GetNeighbors
// bundle row.
type neighborRow struct {
	src  value.Vertex
	dst  value.Value // value.Vertex when dst-vertex props were requested, Empty otherwise
	edge value.Edge
}

// GetNeighborsIterator unfolds per-vertex neighbor bundles (one bundle row
// = one source vertex plus its List of edges) into one logical row per
// (src, edge) pair, per the data model's GetNeighbors iterator shape.
type GetNeighborsIterator struct {
	ds       *DataSet
	colNames []string
	unfolded []neighborRow
	seqCursor
}

// NewGetNeighborsIterator unfolds ds, whose rows are expected to carry a
// "_vertex" column (value.Vertex) and an "_edges" column (value.List of
// value.Edge), into one logical row per edge.
func NewGetNeighborsIterator(ds *DataSet) *GetNeighborsIterator {
	srcIdx := ds.ColIndex("_vertex")
	edgesIdx := ds.ColIndex("_edges")
	var unfolded []neighborRow
	if srcIdx >= 0 && edgesIdx >= 0 {
		for _, row := range ds.Rows {
			src, _ := row[srcIdx].(value.Vertex)
			edgeList, _ := row[edgesIdx].(value.List)
			for _, ev := range edgeList.Values {
				e, ok := ev.(value.Edge)
				if !ok {
					continue
				}
				unfolded = append(unfolded, neighborRow{src: src, edge: e, dst: value.Empty{}})
			}
		}
	}
	return &GetNeighborsIterator{
		ds:        ds,
		colNames:  ds.ColNames,
		unfolded:  unfolded,
		seqCursor: newSeqCursor(len(unfolded)),
	}
}

func (it *GetNeighborsIterator) Kind() Kind         { return KindGetNeighbors }
func (it *GetNeighborsIterator) Valid() bool        { return it.valid() }
func (it *GetNeighborsIterator) Next()              { it.next() }
func (it *GetNeighborsIterator) Reset()             { it.reset() }
func (it *GetNeighborsIterator) Erase()             { it.erase() }
func (it *GetNeighborsIterator) Size() int          { return it.size() }
func (it *GetNeighborsIterator) ColNames() []string { return it.colNames }

func (it *GetNeighborsIterator) current() *neighborRow {
	if idx := it.currentIdx(); idx >= 0 {
		return &it.unfolded[idx]
	}
	return nil
}

func (it *GetNeighborsIterator) Row() Row {
	cur := it.current()
	if cur == nil {
		return nil
	}
	return Row{cur.src, cur.edge}
}

func (it *GetNeighborsIterator) GetColumn(name string) (value.Value, bool) {
	cur := it.current()
	if cur == nil {
		return value.Empty{}, false
	}
	switch name {
	case "_vertex":
		return cur.src, true
	case "_edge":
		return cur.edge, true
	default:
		return value.Empty{}, false
	}
}

func (it *GetNeighborsIterator) GetVertex() (value.Vertex, bool) {
	cur := it.current()
	if cur == nil {
		return value.Vertex{}, false
	}
	return cur.src, true
}

func (it *GetNeighborsIterator) GetEdge() (value.Edge, bool) {
	cur := it.current()
	if cur == nil {
		return value.Edge{}, false
	}
	return cur.edge, true
}

func (it *GetNeighborsIterator) GetTagProp(tag, prop string) (value.Value, bool) {
	cur := it.current()
	if cur == nil {
		return value.Empty{}, false
	}
	return cur.src.TagProp(tag, prop)
}

func (it *GetNeighborsIterator) GetEdgeProp(edgeType, prop string) (value.Value, bool) {
	cur := it.current()
	if cur == nil || cur.edge.Type != edgeType {
		return value.Empty{}, false
	}
	return cur.edge.Prop(prop)
}

// PropertyIterator: one logical row = one vertex or edge property record
// (the shape GetVertices/GetEdges/IndexScan responses and prop-pushdown
// reads present).
type PropertyIterator struct {
	ds        *DataSet
	isEdge    bool
	vertexIdx int
	edgeIdx   int
	seqCursor
}

func NewPropertyIterator(ds *DataSet, isEdge bool) *PropertyIterator {
	p := &PropertyIterator{ds: ds, isEdge: isEdge, seqCursor: newSeqCursor(len(ds.Rows))}
	if isEdge {
		p.edgeIdx = ds.ColIndex("_edge")
	} else {
		p.vertexIdx = ds.ColIndex("_vertex")
	}
	return p
}

func (it *PropertyIterator) Kind() Kind         { return KindProperty }
func (it *PropertyIterator) Valid() bool        { return it.valid() }
func (it *PropertyIterator) Next()              { it.next() }
func (it *PropertyIterator) Reset()             { it.reset() }
func (it *PropertyIterator) Erase()             { it.erase() }
func (it *PropertyIterator) Size() int          { return it.size() }
func (it *PropertyIterator) ColNames() []string { return it.ds.ColNames }

func (it *PropertyIterator) Row() Row {
	if idx := it.currentIdx(); idx >= 0 {
		return it.ds.Rows[idx]
	}
	return nil
}

func (it *PropertyIterator) GetColumn(name string) (value.Value, bool) {
	i := it.ds.ColIndex(name)
	row := it.Row()
	if i < 0 || row == nil {
		return value.Empty{}, false
	}
	return row[i], true
}

func (it *PropertyIterator) GetVertex() (value.Vertex, bool) {
	row := it.Row()
	if it.isEdge || row == nil || it.vertexIdx < 0 {
		return value.Vertex{}, false
	}
	vtx, ok := row[it.vertexIdx].(value.Vertex)
	return vtx, ok
}

func (it *PropertyIterator) GetEdge() (value.Edge, bool) {
	row := it.Row()
	if !it.isEdge || row == nil || it.edgeIdx < 0 {
		return value.Edge{}, false
	}
	e, ok := row[it.edgeIdx].(value.Edge)
	return e, ok
}

func (it *PropertyIterator) GetTagProp(tag, prop string) (value.Value, bool) {
	vtx, ok := it.GetVertex()
	if !ok {
		return value.Empty{}, false
	}
	return vtx.TagProp(tag, prop)
}

func (it *PropertyIterator) GetEdgeProp(edgeType, prop string) (value.Value, bool) {
	e, ok := it.GetEdge()
	if !ok || e.Type != edgeType {
		return value.Empty{}, false
	}
	return e.Prop(prop)
}

// JoinIterator: row = left-row concatenated with right-row. LeftWidth
// marks the boundary so callers (expreval's join-aware binder) can split
// the concatenated row back into its two sides.
type JoinIterator struct {
	ds        *DataSet
	leftWidth int
	seqCursor
}

func NewJoinIterator(ds *DataSet, leftWidth int) *JoinIterator {
	return &JoinIterator{ds: ds, leftWidth: leftWidth, seqCursor: newSeqCursor(len(ds.Rows))}
}

func (it *JoinIterator) Kind() Kind         { return KindJoin }
func (it *JoinIterator) Valid() bool        { return it.valid() }
func (it *JoinIterator) Next()              { it.next() }
func (it *JoinIterator) Reset()             { it.reset() }
func (it *JoinIterator) Erase()             { it.erase() }
func (it *JoinIterator) Size() int          { return it.size() }
func (it *JoinIterator) ColNames() []string { return it.ds.ColNames }
func (it *JoinIterator) LeftWidth() int     { return it.leftWidth }

func (it *JoinIterator) Row() Row {
	if idx := it.currentIdx(); idx >= 0 {
		return it.ds.Rows[idx]
	}
	return nil
}

func (it *JoinIterator) LeftRow() Row {
	row := it.Row()
	if row == nil {
		return nil
	}
	return row[:it.leftWidth]
}

func (it *JoinIterator) RightRow() Row {
	row := it.Row()
	if row == nil {
		return nil
	}
	return row[it.leftWidth:]
}

func (it *JoinIterator) GetColumn(name string) (value.Value, bool) {
	i := it.ds.ColIndex(name)
	row := it.Row()
	if i < 0 || row == nil {
		return value.Empty{}, false
	}
	return row[i], true
}

func (it *JoinIterator) GetVertex() (value.Vertex, bool) {
	row := it.Row()
	if row == nil {
		return value.Vertex{}, false
	}
	for _, v := range row {
		if vtx, ok := v.(value.Vertex); ok {
			return vtx, true
		}
	}
	return value.Vertex{}, false
}

func (it *JoinIterator) GetEdge() (value.Edge, bool) {
	row := it.Row()
	if row == nil {
		return value.Edge{}, false
	}
	for _, v := range row {
		if e, ok := v.(value.Edge); ok {
			return e, true
		}
	}
	return value.Edge{}, false
}

func (it *JoinIterator) GetTagProp(tag, prop string) (value.Value, bool) {
	vtx, ok := it.GetVertex()
	if !ok {
		return value.Empty{}, false
	}
	return vtx.TagProp(tag, prop)
}

func (it *JoinIterator) GetEdgeProp(edgeType, prop string) (value.Value, bool) {
	e, ok := it.GetEdge()
	if !ok || e.Type != edgeType {
		return value.Empty{}, false
	}
	return e.Prop(prop)
}
