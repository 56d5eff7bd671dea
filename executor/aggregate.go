package executor

import (
	"context"
	"math"

	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/expreval"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/plan"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

// aggState accumulates one GroupItem's aggregate function across a single
// group's rows. COUNT_DISTINCT/COLLECT(DISTINCT ...) dedup via a Set keyed
// by the input's Hash; the rest fold incrementally.
type aggState struct {
	fn       expreval.AggKind
	distinct bool
	count    int64
	sum      float64
	sumIsInt bool
	min, max value.Value
	collect  []value.Value
	seen     value.Set
	m2       float64 // Welford running (n, mean, M2) for STDEV
	mean     float64
	bits     *int64
}

func newAggState(fn expreval.AggKind, distinct bool) *aggState {
	return &aggState{fn: fn, distinct: distinct, sumIsInt: true, seen: value.NewSet()}
}

func (s *aggState) add(v value.Value) error {
	// Null inputs are dropped, same as every fold function here; COUNT(*)
	// never reaches this with a real Null since its caller passes a
	// Bool(true) sentinel instead of evaluating an argument.
	if v == nil || v.IsNull() {
		return nil
	}
	if s.distinct {
		h, err := v.Hash()
		if err != nil {
			return err
		}
		if _, dup := s.seen.Values[h]; dup {
			return nil
		}
		s.seen.Values[h] = v
	}
	s.count++
	switch s.fn {
	case expreval.AggSum, expreval.AggAvg, expreval.AggStdev:
		f, ok := numeric(v)
		if !ok {
			return nil
		}
		if _, isInt := v.(value.Int); !isInt {
			s.sumIsInt = false
		}
		s.sum += f
		delta := f - s.mean
		s.mean += delta / float64(s.count)
		s.m2 += delta * (f - s.mean)
	case expreval.AggMin:
		if s.min == nil {
			s.min = v
		} else if cmp, ok := v.Compare(s.min); ok && cmp < 0 {
			s.min = v
		}
	case expreval.AggMax:
		if s.max == nil {
			s.max = v
		} else if cmp, ok := v.Compare(s.max); ok && cmp > 0 {
			s.max = v
		}
	case expreval.AggCollect:
		s.collect = append(s.collect, v)
	case expreval.AggBitAnd, expreval.AggBitOr, expreval.AggBitXor:
		i, ok := v.(value.Int)
		if !ok {
			return nil
		}
		iv := int64(i)
		if s.bits == nil {
			s.bits = &iv
			break
		}
		switch s.fn {
		case expreval.AggBitAnd:
			*s.bits &= iv
		case expreval.AggBitOr:
			*s.bits |= iv
		case expreval.AggBitXor:
			*s.bits ^= iv
		}
	}
	return nil
}

func numeric(v value.Value) (float64, bool) {
	switch t := v.(type) {
	case value.Int:
		return float64(t), true
	case value.Float:
		return float64(t), true
	default:
		return 0, false
	}
}

func (s *aggState) result() value.Value {
	switch s.fn {
	case expreval.AggCount, expreval.AggCountDistinct:
		return value.Int(s.count)
	case expreval.AggSum:
		if s.count == 0 {
			return value.Int(0)
		}
		if s.sumIsInt {
			return value.Int(int64(s.sum))
		}
		return value.Float(s.sum)
	case expreval.AggAvg:
		if s.count == 0 {
			return value.NullValue
		}
		return value.Float(s.sum / float64(s.count))
	case expreval.AggStdev:
		if s.count < 2 {
			return value.Float(0)
		}
		return value.Float(math.Sqrt(s.m2 / float64(s.count)))
	case expreval.AggMin:
		if s.min == nil {
			return value.NullValue
		}
		return s.min
	case expreval.AggMax:
		if s.max == nil {
			return value.NullValue
		}
		return s.max
	case expreval.AggCollect:
		return value.NewList(s.collect...)
	case expreval.AggBitAnd, expreval.AggBitOr, expreval.AggBitXor:
		if s.bits == nil {
			return value.Int(0)
		}
		return value.Int(*s.bits)
	default:
		return value.NullValue
	}
}

// group is one GROUP BY bucket in first-seen order. passVals holds each
// non-aggregate GroupItem's value, captured from the group's first row.
type group struct {
	passVals []value.Value
	states   []*aggState
}

// execAggregate groups dep's rows by GroupKeys and applies each
// GroupItem's aggregate function (or passthrough, when Agg is nil) within
// the group, emitting one output row per group in first-seen order.
func execAggregate(ctx context.Context, qctx *gqlctx.Context, node plan.Node) *Future {
	n := node.(*plan.Aggregate)
	ds, err := inputDataSet(qctx, n.InputVars()[0])
	if err != nil {
		return Resolved(publishError(qctx, n.OutputVar(), err))
	}
	it := dataset.NewSequentialIterator(ds)
	sctx := expreval.NewSequentialCtx(it, qctx.ExecCtx)

	order := []uint64{}
	groups := map[uint64]*group{}

	for it.Valid() {
		keyVals := make([]value.Value, len(n.GroupKeys))
		for i, k := range n.GroupKeys {
			v, err := k.Eval(sctx)
			if err != nil {
				return Resolved(publishError(qctx, n.OutputVar(), err))
			}
			keyVals[i] = v
		}
		key, err := rowKey(dataset.Row(keyVals))
		if err != nil {
			return Resolved(publishError(qctx, n.OutputVar(), err))
		}
		g, ok := groups[key]
		if !ok {
			g = &group{passVals: make([]value.Value, len(n.GroupItems)), states: make([]*aggState, len(n.GroupItems))}
			for i, item := range n.GroupItems {
				if item.Agg != nil {
					g.states[i] = newAggState(item.Agg.Fn, item.Agg.Distinct)
					continue
				}
				if item.Expr != nil {
					v, err := item.Expr.Eval(sctx)
					if err != nil {
						return Resolved(publishError(qctx, n.OutputVar(), err))
					}
					g.passVals[i] = v
				} else {
					g.passVals[i] = value.NullValue
				}
			}
			groups[key] = g
			order = append(order, key)
		}
		for i, item := range n.GroupItems {
			if item.Agg == nil {
				continue
			}
			var v value.Value
			if item.Agg.Arg == nil {
				v = value.Bool(true) // COUNT(*): any non-null sentinel
			} else {
				v, err = item.Agg.Arg.Eval(sctx)
				if err != nil {
					return Resolved(publishError(qctx, n.OutputVar(), err))
				}
			}
			if err := g.states[i].add(v); err != nil {
				return Resolved(publishError(qctx, n.OutputVar(), err))
			}
		}
		it.Next()
		sctx.Advance()
	}

	colNames := make([]string, len(n.GroupItems))
	for i, item := range n.GroupItems {
		colNames[i] = item.Alias
	}
	rows := make([]dataset.Row, 0, len(order))
	for _, key := range order {
		g := groups[key]
		row := make(dataset.Row, len(n.GroupItems))
		for i, item := range n.GroupItems {
			if item.Agg != nil {
				row[i] = g.states[i].result()
				continue
			}
			row[i] = g.passVals[i]
		}
		rows = append(rows, row)
	}
	return Resolved(publishDataSet(qctx, n.OutputVar(), colNames, rows, dataset.KindSequential))
}
