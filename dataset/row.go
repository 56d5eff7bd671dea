// Package dataset implements the canonical DataSet/Row shape exchanged
// between plan operators, and the polymorphic Iterator that walks a
// DataSet under one of four shapes (Sequential, GetNeighbors, Property,
// Join).
package dataset

import (
	"strings"

	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

// Row is an ordered sequence of Values, one per DataSet column.
type Row []value.Value

func NewRow(vs ...value.Value) Row { return Row(vs) }

func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// DataSet is an ordered sequence of Rows with a parallel, unique column
// name vector -- the shape every plan operator consumes and produces.
type DataSet struct {
	ColNames []string
	Rows     []Row
}

func New(colNames []string, rows []Row) *DataSet {
	return &DataSet{ColNames: colNames, Rows: rows}
}

func Empty(colNames []string) *DataSet {
	return &DataSet{ColNames: colNames}
}

// ColIndex returns the position of name in ColNames, or -1.
func (d *DataSet) ColIndex(name string) int {
	for i, c := range d.ColNames {
		if c == name {
			return i
		}
	}
	return -1
}

// SameColumns reports whether two datasets share an equal column-name
// vector -- the precondition set operators (Union/Intersect/Minus) and
// validators must check (testable property: "For every set-op node,
// left.output_col_names == right.output_col_names").
func (d *DataSet) SameColumns(other *DataSet) bool {
	if len(d.ColNames) != len(other.ColNames) {
		return false
	}
	for i, c := range d.ColNames {
		if c != other.ColNames[i] {
			return false
		}
	}
	return true
}

func (d *DataSet) String() string {
	var b strings.Builder
	b.WriteString(strings.Join(d.ColNames, ", "))
	b.WriteString("\n")
	for _, r := range d.Rows {
		parts := make([]string, len(r))
		for i, v := range r {
			parts[i] = v.String()
		}
		b.WriteString(strings.Join(parts, ", "))
		b.WriteString("\n")
	}
	return b.String()
}

// DataSetValue lifts a *DataSet into value.Value, implementing the
// DataSet variant of the Value sum (kept in this package, rather than in
// value, to avoid a value<->dataset import cycle).
type DataSetValue struct{ DS *DataSet }

func (DataSetValue) Kind() value.Kind   { return value.KindDataSet }
func (DataSetValue) IsNull() bool       { return false }
func (d DataSetValue) String() string   { return d.DS.String() }
func (d DataSetValue) Hash() (uint64, error) {
	return 0, errNotHashable
}
func (d DataSetValue) Equal(other value.Value) bool {
	o, ok := other.(DataSetValue)
	if !ok || !d.DS.SameColumns(o.DS) || len(d.DS.Rows) != len(o.DS.Rows) {
		return false
	}
	for i := range d.DS.Rows {
		if len(d.DS.Rows[i]) != len(o.DS.Rows[i]) {
			return false
		}
		for j := range d.DS.Rows[i] {
			if !d.DS.Rows[i][j].Equal(o.DS.Rows[i][j]) {
				return false
			}
		}
	}
	return true
}
func (d DataSetValue) Compare(other value.Value) (int, bool) { return 0, false }
