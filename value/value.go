// Package value implements the tagged Value sum described in the data
// model: a single type that every row, expression result, and property
// read resolves to, with total comparison/arithmetic over a coercion
// matrix where invalid combinations yield Null instead of panicking.
package value

import (
	"fmt"
	"time"

	"github.com/mitchellh/hashstructure"
	"github.com/spf13/cast"
)

// Kind tags the variant carried by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindEmpty
	KindBool
	KindInt
	KindFloat
	KindString
	KindDate
	KindTime
	KindDateTime
	KindList
	KindMap
	KindSet
	KindDataSet
	KindVertex
	KindEdge
	KindPath
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "NULL"
	case KindEmpty:
		return "EMPTY"
	case KindBool:
		return "BOOL"
	case KindInt:
		return "INT"
	case KindFloat:
		return "FLOAT"
	case KindString:
		return "STRING"
	case KindDate:
		return "DATE"
	case KindTime:
		return "TIME"
	case KindDateTime:
		return "DATETIME"
	case KindList:
		return "LIST"
	case KindMap:
		return "MAP"
	case KindSet:
		return "SET"
	case KindDataSet:
		return "DATASET"
	case KindVertex:
		return "VERTEX"
	case KindEdge:
		return "EDGE"
	case KindPath:
		return "PATH"
	default:
		return "UNKNOWN"
	}
}

// Value is the tagged sum every column, literal, and property resolves to.
// Concrete variants below implement it. Value is required to be usable as
// a hash/tree key, hence Hash and Compare.
type Value interface {
	Kind() Kind
	// IsNull reports whether this is the Null variant (distinct from Empty,
	// which means "no value produced", e.g. a missing optional property).
	IsNull() bool
	// Compare orders this Value against other. ok is false when the pair is
	// not comparable under the coercion matrix, in which case callers must
	// treat the comparison result as Null rather than as a definite answer.
	Compare(other Value) (cmp int, ok bool)
	// Equal is total: incomparable values are simply unequal.
	Equal(other Value) bool
	// Hash must agree with Equal: equal values hash identically.
	Hash() (uint64, error)
	String() string
}

// NullValue is the canonical Null instance, handed out by evaluators that
// need a Value rather than the bare Null{} literal.
var NullValue Value = Null{}

// Null is the SQL/graph-style unknown value: propagates through arithmetic
// and comparisons, distinct from Empty.
type Null struct{}

func (Null) Kind() Kind                        { return KindNull }
func (Null) IsNull() bool                      { return true }
func (Null) String() string                    { return "NULL" }
func (Null) Hash() (uint64, error)             { return hashstructure.Hash("__null__", nil) }
func (n Null) Equal(other Value) bool          { _, ok := other.(Null); return ok }
func (n Null) Compare(other Value) (int, bool) { return 0, false }

// Empty represents the absence of a value (e.g. an unset optional property,
// or an out-of-range versioned-variable access). It is not Null: Empty
// values are dropped from aggregate inputs where Null is counted.
type Empty struct{}

func (Empty) Kind() Kind            { return KindEmpty }
func (Empty) IsNull() bool          { return false }
func (Empty) String() string        { return "_EMPTY_" }
func (Empty) Hash() (uint64, error) { return hashstructure.Hash("__empty__", nil) }
func (e Empty) Equal(other Value) bool {
	_, ok := other.(Empty)
	return ok
}
func (e Empty) Compare(other Value) (int, bool) { return 0, false }

type Bool bool

func (Bool) Kind() Kind     { return KindBool }
func (Bool) IsNull() bool   { return false }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}
func (b Bool) Hash() (uint64, error) { return hashstructure.Hash(bool(b), nil) }
func (b Bool) Equal(other Value) bool {
	o, ok := other.(Bool)
	return ok && b == o
}
func (b Bool) Compare(other Value) (int, bool) {
	o, ok := other.(Bool)
	if !ok {
		return 0, false
	}
	if b == o {
		return 0, true
	}
	if !bool(b) && bool(o) {
		return -1, true
	}
	return 1, true
}

type Int int64

func (Int) Kind() Kind                { return KindInt }
func (Int) IsNull() bool              { return false }
func (i Int) String() string          { return fmt.Sprintf("%d", int64(i)) }
func (i Int) Hash() (uint64, error)   { return hashstructure.Hash(int64(i), nil) }
func (i Int) Equal(other Value) bool {
	cmp, ok := i.Compare(other)
	return ok && cmp == 0
}
func (i Int) Compare(other Value) (int, bool) {
	switch o := other.(type) {
	case Int:
		return compareOrdered(int64(i), int64(o)), true
	case Float:
		return compareOrdered(float64(i), float64(o)), true
	default:
		return 0, false
	}
}

type Float float64

func (Float) Kind() Kind              { return KindFloat }
func (Float) IsNull() bool            { return false }
func (f Float) String() string        { return fmt.Sprintf("%g", float64(f)) }
func (f Float) Hash() (uint64, error) {
	// an integral Float hashes like the equal Int, so Hash agrees with Equal
	if f == Float(int64(f)) {
		return hashstructure.Hash(int64(f), nil)
	}
	return hashstructure.Hash(float64(f), nil)
}
func (f Float) Equal(other Value) bool {
	cmp, ok := f.Compare(other)
	return ok && cmp == 0
}
func (f Float) Compare(other Value) (int, bool) {
	switch o := other.(type) {
	case Float:
		return compareOrdered(float64(f), float64(o)), true
	case Int:
		return compareOrdered(float64(f), float64(o)), true
	default:
		return 0, false
	}
}

type Str string

func (Str) Kind() Kind              { return KindString }
func (Str) IsNull() bool            { return false }
func (s Str) String() string        { return string(s) }
func (s Str) Hash() (uint64, error) { return hashstructure.Hash(string(s), nil) }
func (s Str) Equal(other Value) bool {
	o, ok := other.(Str)
	return ok && s == o
}
func (s Str) Compare(other Value) (int, bool) {
	o, ok := other.(Str)
	if !ok {
		return 0, false
	}
	return compareOrdered(string(s), string(o)), true
}

// Date, Time, DateTime wrap time.Time with the precision their name implies.
// Equality/ordering only hold between values of the same kind.
type Date struct{ T time.Time }

func (Date) Kind() Kind       { return KindDate }
func (Date) IsNull() bool     { return false }
func (d Date) String() string { return d.T.Format("2006-01-02") }
func (d Date) Hash() (uint64, error) {
	return hashstructure.Hash(d.String(), nil)
}
func (d Date) Equal(other Value) bool {
	cmp, ok := d.Compare(other)
	return ok && cmp == 0
}
func (d Date) Compare(other Value) (int, bool) {
	o, ok := other.(Date)
	if !ok {
		return 0, false
	}
	return compareOrdered(d.T.UnixNano(), o.T.UnixNano()), true
}

type Time struct{ T time.Time }

func (Time) Kind() Kind       { return KindTime }
func (Time) IsNull() bool     { return false }
func (t Time) String() string { return t.T.Format("15:04:05.999999") }
func (t Time) Hash() (uint64, error) {
	return hashstructure.Hash(t.String(), nil)
}
func (t Time) Equal(other Value) bool {
	cmp, ok := t.Compare(other)
	return ok && cmp == 0
}
func (t Time) Compare(other Value) (int, bool) {
	o, ok := other.(Time)
	if !ok {
		return 0, false
	}
	return compareOrdered(t.T.UnixNano(), o.T.UnixNano()), true
}

type DateTime struct{ T time.Time }

func (DateTime) Kind() Kind       { return KindDateTime }
func (DateTime) IsNull() bool     { return false }
func (d DateTime) String() string { return d.T.Format(time.RFC3339Nano) }
func (d DateTime) Hash() (uint64, error) {
	return hashstructure.Hash(d.String(), nil)
}
func (d DateTime) Equal(other Value) bool {
	cmp, ok := d.Compare(other)
	return ok && cmp == 0
}
func (d DateTime) Compare(other Value) (int, bool) {
	o, ok := other.(DateTime)
	if !ok {
		return 0, false
	}
	return compareOrdered(d.T.UnixNano(), o.T.UnixNano()), true
}

type ordered interface {
	~int64 | ~float64 | ~string
}

func compareOrdered[T ordered](a, b T) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Coerce converts v to the requested kind following the total coercion
// matrix: unsupported conversions return Null rather than an error, since
// the spec requires every combination to be total. Genuine programmer
// errors (an unknown target Kind) still return an error.
func Coerce(v Value, to Kind) (Value, error) {
	if scalarOf(v) == nil && to >= KindBool && to <= KindString {
		return Null{}, nil
	}
	switch to {
	case KindBool:
		b, err := cast.ToBoolE(scalarOf(v))
		if err != nil {
			return Null{}, nil
		}
		return Bool(b), nil
	case KindInt:
		i, err := cast.ToInt64E(scalarOf(v))
		if err != nil {
			return Null{}, nil
		}
		return Int(i), nil
	case KindFloat:
		f, err := cast.ToFloat64E(scalarOf(v))
		if err != nil {
			return Null{}, nil
		}
		return Float(f), nil
	case KindString:
		s, err := cast.ToStringE(scalarOf(v))
		if err != nil {
			return Null{}, nil
		}
		return Str(s), nil
	default:
		return nil, fmt.Errorf("value: unsupported coercion target %s", to)
	}
}

// scalarOf unwraps a Value into the plain Go scalar spf13/cast knows how to
// convert; non-scalar kinds return nil so Coerce falls through to Null.
func scalarOf(v Value) interface{} {
	switch t := v.(type) {
	case Bool:
		return bool(t)
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case Str:
		return string(t)
	default:
		return nil
	}
}
