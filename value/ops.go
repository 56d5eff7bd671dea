package value

// Arithmetic and comparison operators used by expreval's BinaryOp/UnaryOp
// evaluation. Every operator is total: any operand combination the
// coercion matrix doesn't define returns Null rather than an error, per
// the data model's "invalid combinations yield Null" rule.

func asFloat(v Value) (float64, bool) {
	switch t := v.(type) {
	case Int:
		return float64(t), true
	case Float:
		return float64(t), true
	default:
		return 0, false
	}
}

// bothInt reports whether a and b are both Int, in which case integer
// arithmetic (not float) applies.
func bothInt(a, b Value) (int64, int64, bool) {
	ai, aok := a.(Int)
	bi, bok := b.(Int)
	if aok && bok {
		return int64(ai), int64(bi), true
	}
	return 0, 0, false
}

func Add(a, b Value) Value {
	if ai, bi, ok := bothInt(a, b); ok {
		return Int(ai + bi)
	}
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return Float(af + bf)
		}
	}
	if as, ok := a.(Str); ok {
		if bs, ok := b.(Str); ok {
			return Str(string(as) + string(bs))
		}
	}
	return Null{}
}

func Sub(a, b Value) Value {
	if ai, bi, ok := bothInt(a, b); ok {
		return Int(ai - bi)
	}
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return Float(af - bf)
		}
	}
	return Null{}
}

func Mul(a, b Value) Value {
	if ai, bi, ok := bothInt(a, b); ok {
		return Int(ai * bi)
	}
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			return Float(af * bf)
		}
	}
	return Null{}
}

func Div(a, b Value) Value {
	if af, ok := asFloat(a); ok {
		if bf, ok := asFloat(b); ok {
			if bf == 0 {
				return Null{}
			}
			return Float(af / bf)
		}
	}
	return Null{}
}

func Mod(a, b Value) Value {
	if ai, bi, ok := bothInt(a, b); ok {
		if bi == 0 {
			return Null{}
		}
		return Int(ai % bi)
	}
	return Null{}
}

func Neg(a Value) Value {
	switch t := a.(type) {
	case Int:
		return Int(-t)
	case Float:
		return Float(-t)
	default:
		return Null{}
	}
}

// Not implements unary NOT: Bool flips, Null propagates, anything else is
// an invalid operand and yields Null (the caller, typically Filter, will
// treat a non-Bool/non-Null predicate result as an error at a higher
// layer; Not itself stays total).
func Not(a Value) Value {
	switch t := a.(type) {
	case Bool:
		return Bool(!t)
	case Null:
		return t
	default:
		return Null{}
	}
}

// And/Or implement three-valued logic: Null is absorbing unless the other
// operand already determines the result (false AND x = false, true OR x = true).
func And(a, b Value) Value {
	ab, aIsBool := a.(Bool)
	bb, bIsBool := b.(Bool)
	if aIsBool && !bool(ab) {
		return Bool(false)
	}
	if bIsBool && !bool(bb) {
		return Bool(false)
	}
	if aIsBool && bIsBool {
		return Bool(ab && bb)
	}
	return Null{}
}

func Or(a, b Value) Value {
	ab, aIsBool := a.(Bool)
	bb, bIsBool := b.(Bool)
	if aIsBool && bool(ab) {
		return Bool(true)
	}
	if bIsBool && bool(bb) {
		return Bool(true)
	}
	if aIsBool && bIsBool {
		return Bool(ab || bb)
	}
	return Null{}
}

// CompareOp evaluates a binary comparison (=, !=, <, <=, >, >=) returning
// Bool, or Null when the operands are not comparable under the coercion
// matrix (Value.Compare's ok=false case). = and != between two values of
// the same kind always use Value.Equal and return Bool.
type CompareOp int

const (
	OpEQ CompareOp = iota
	OpNE
	OpLT
	OpLE
	OpGT
	OpGE
)

func Compare(op CompareOp, a, b Value) Value {
	if op == OpEQ || op == OpNE {
		if _, ok := a.Compare(b); !ok && a.Kind() != b.Kind() {
			return Null{}
		}
	}
	if op == OpEQ {
		return Bool(a.Equal(b))
	}
	if op == OpNE {
		return Bool(!a.Equal(b))
	}
	cmp, ok := a.Compare(b)
	if !ok {
		return Null{}
	}
	switch op {
	case OpLT:
		return Bool(cmp < 0)
	case OpLE:
		return Bool(cmp <= 0)
	case OpGT:
		return Bool(cmp > 0)
	case OpGE:
		return Bool(cmp >= 0)
	default:
		return Null{}
	}
}

// IsTruthy reports whether a predicate result should be treated as true by
// Filter/Select/Loop: Bool(true) only. A non-Bool, non-Null predicate
// result is not truthy -- executors surface that as ExecutionError.
func IsTruthy(v Value) bool {
	b, ok := v.(Bool)
	return ok && bool(b)
}

// IsBoolOrNull reports whether v is an acceptable predicate result shape.
func IsBoolOrNull(v Value) bool {
	switch v.(type) {
	case Bool, Null:
		return true
	default:
		return false
	}
}
