package expreval

import (
	"fmt"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

// VarGetter is the slice of gqlctx.ExecutionContext a Binder needs:
// resolving a named variable's latest or versioned Result. Declared here
// (not imported from gqlctx) so expreval stays a leaf package -- gqlctx
// depends on expreval's Expression type for Assign, not the reverse.
type VarGetter interface {
	GetVar(name string) (value.Value, error)
	GetVersionedVar(name string, version int64) (value.Value, error)
}

// varColumn resolves varName.prop by taking the named variable's latest
// DataSet value and reading prop from the row at ordinal idx -- the
// binder's own iterator position, so a row-synchronized $var.prop access
// (the common case: a Join or Loop body referencing a sibling variable at
// the same ordinal) lines up without an explicit join key.
func varColumn(vg VarGetter, varName, prop string, idx int) (value.Value, error) {
	v, err := vg.GetVar(varName)
	if err != nil {
		return nil, err
	}
	dsv, ok := v.(dataset.DataSetValue)
	if !ok {
		return value.Empty{}, nil
	}
	if idx < 0 || idx >= len(dsv.DS.Rows) {
		return value.Empty{}, nil
	}
	row := dsv.DS.Rows[idx]
	i := dsv.DS.ColIndex(prop)
	if i < 0 {
		return value.Empty{}, nil
	}
	return row[i], nil
}

// SequentialCtx binds expressions against a plain row iterator: $-.prop and
// $var.prop are the only accessors that make sense; src/dst/edge prop
// access falls back to whatever vertex/edge value the current row happens
// to carry (Fetch/GetVertices results routed through a Sequential shape).
type SequentialCtx struct {
	It  dataset.Iterator
	Vars VarGetter
	pos  int
}

func NewSequentialCtx(it dataset.Iterator, vars VarGetter) *SequentialCtx {
	return &SequentialCtx{It: it, Vars: vars}
}

// Advance should be called by the owning executor each time It.Next() is
// called, so varColumn's row-synchronized lookups stay aligned.
func (c *SequentialCtx) Advance() { c.pos++ }

func (c *SequentialCtx) Var(name string) (value.Value, error) { return c.Vars.GetVar(name) }
func (c *SequentialCtx) VersionedVar(name string, v int64) (value.Value, error) {
	return c.Vars.GetVersionedVar(name, v)
}
func (c *SequentialCtx) VarProp(varName, prop string) (value.Value, error) {
	return varColumn(c.Vars, varName, prop, c.pos)
}
func (c *SequentialCtx) InputProp(prop string) (value.Value, error) {
	v, ok := c.It.GetColumn(prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}
func (c *SequentialCtx) SrcProp(tag, prop string) (value.Value, error) {
	v, ok := c.It.GetTagProp(tag, prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}
func (c *SequentialCtx) DstProp(tag, prop string) (value.Value, error) {
	return c.SrcProp(tag, prop)
}
func (c *SequentialCtx) EdgeProp(edgeType, prop string) (value.Value, error) {
	v, ok := c.It.GetEdgeProp(edgeType, prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}

var _ Binder = (*SequentialCtx)(nil)

// NeighborsCtx binds over a GetNeighborsIterator: $^ resolves against the
// current row's source vertex, $$ against a destination vertex looked up
// through DstVertex. Nothing in this module sets DstVertex; while it is
// nil, DstProp returns Empty.
type NeighborsCtx struct {
	It        *dataset.GetNeighborsIterator
	Vars      VarGetter
	DstVertex func(vid string) (value.Vertex, bool)
	pos       int
}

func NewNeighborsCtx(it *dataset.GetNeighborsIterator, vars VarGetter) *NeighborsCtx {
	return &NeighborsCtx{It: it, Vars: vars}
}

func (c *NeighborsCtx) Advance() { c.pos++ }

func (c *NeighborsCtx) Var(name string) (value.Value, error) { return c.Vars.GetVar(name) }
func (c *NeighborsCtx) VersionedVar(name string, v int64) (value.Value, error) {
	return c.Vars.GetVersionedVar(name, v)
}
func (c *NeighborsCtx) VarProp(varName, prop string) (value.Value, error) {
	return varColumn(c.Vars, varName, prop, c.pos)
}
func (c *NeighborsCtx) InputProp(prop string) (value.Value, error) {
	v, ok := c.It.GetColumn(prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}
func (c *NeighborsCtx) SrcProp(tag, prop string) (value.Value, error) {
	v, ok := c.It.GetTagProp(tag, prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}
func (c *NeighborsCtx) DstProp(tag, prop string) (value.Value, error) {
	e, ok := c.It.GetEdge()
	if !ok || c.DstVertex == nil {
		return value.Empty{}, nil
	}
	dst, ok := c.DstVertex(e.Dst)
	if !ok {
		return value.Empty{}, nil
	}
	v, ok := dst.TagProp(tag, prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}
func (c *NeighborsCtx) EdgeProp(edgeType, prop string) (value.Value, error) {
	v, ok := c.It.GetEdgeProp(edgeType, prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}

var _ Binder = (*NeighborsCtx)(nil)

// PropertyCtx binds over a PropertyIterator (GetVertices/GetEdges/IndexScan
// results): src/dst-vertex accessors don't apply to this shape, since each
// row is already exactly one vertex or edge record.
type PropertyCtx struct {
	It   *dataset.PropertyIterator
	Vars VarGetter
	pos  int
}

func NewPropertyCtx(it *dataset.PropertyIterator, vars VarGetter) *PropertyCtx {
	return &PropertyCtx{It: it, Vars: vars}
}

func (c *PropertyCtx) Advance() { c.pos++ }

func (c *PropertyCtx) Var(name string) (value.Value, error) { return c.Vars.GetVar(name) }
func (c *PropertyCtx) VersionedVar(name string, v int64) (value.Value, error) {
	return c.Vars.GetVersionedVar(name, v)
}
func (c *PropertyCtx) VarProp(varName, prop string) (value.Value, error) {
	return varColumn(c.Vars, varName, prop, c.pos)
}
func (c *PropertyCtx) InputProp(prop string) (value.Value, error) {
	v, ok := c.It.GetColumn(prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}
func (c *PropertyCtx) SrcProp(tag, prop string) (value.Value, error) {
	v, ok := c.It.GetTagProp(tag, prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}
func (c *PropertyCtx) DstProp(tag, prop string) (value.Value, error) {
	return nil, graphderr.ErrExecution.New(fmt.Sprintf("$$.%s.%s has no meaning over a property iterator", tag, prop))
}
func (c *PropertyCtx) EdgeProp(edgeType, prop string) (value.Value, error) {
	v, ok := c.It.GetEdgeProp(edgeType, prop)
	if !ok {
		return value.Empty{}, nil
	}
	return v, nil
}

var _ Binder = (*PropertyCtx)(nil)
