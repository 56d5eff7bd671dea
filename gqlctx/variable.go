package gqlctx

import (
	"fmt"

	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

// Variable is a named, versioned slot: an ordered history of Results,
// oldest to newest (§3, §9 "ring of Results or a Vec with a current
// index"). MultiVersion, set by scheduler.AnalyzeLifetimes through
// ExecutionContext.SetMultiVersion, chooses whether Publish appends
// (true) or overwrites the latest entry (false, the common case).
type Variable struct {
	Name         string
	History      []Result
	MultiVersion bool
}

// Publish records r as the variable's newest value. The first publish
// always appends regardless of MultiVersion, since there is nothing yet
// to overwrite.
func (v *Variable) Publish(r Result) {
	if !v.MultiVersion && len(v.History) > 0 {
		v.History[len(v.History)-1] = r
		return
	}
	v.History = append(v.History, r)
}

// Latest returns the newest Result, or false if the variable has never
// been published.
func (v *Variable) Latest() (Result, bool) {
	if len(v.History) == 0 {
		return Result{}, false
	}
	return v.History[len(v.History)-1], true
}

// Versioned resolves a version per §4.2's versioned_var rule: v<=0 indexes
// from the newest (0 = latest, -1 = one before latest, ...); v>0 indexes
// from the oldest (1 = oldest). Out-of-range returns Empty.
//
// Open question (a), preserved from the source per the design notes: the
// boundary |version| == len(History) returns Empty rather than the
// oldest/newest entry, matching the original's (possibly buggy) edge
// behavior instead of "fixing" it.
func (v *Variable) Versioned(ver int64) (Result, bool) {
	n := int64(len(v.History))
	if n == 0 {
		return Result{}, false
	}
	var idx int64
	if ver <= 0 {
		idx = n - 1 + ver
	} else {
		idx = ver - 1
	}
	if idx < 0 || idx >= n || ver >= n {
		return Result{Data: value.Empty{}}, false
	}
	return v.History[idx], true
}

// ExecutionContext is the execution-scoped variable store (§3's
// ExecutionContext): one Variable per plan-produced dataflow name.
type ExecutionContext struct {
	vars map[string]*Variable
}

func NewExecutionContext() *ExecutionContext {
	return &ExecutionContext{vars: map[string]*Variable{}}
}

// Declare registers name if absent, returning its Variable either way.
func (ec *ExecutionContext) Declare(name string) *Variable {
	v, ok := ec.vars[name]
	if !ok {
		v = &Variable{Name: name}
		ec.vars[name] = v
	}
	return v
}

// SetMultiVersion marks name as requiring append-only publication
// (§4.8's lifetime analysis output).
func (ec *ExecutionContext) SetMultiVersion(name string, multi bool) {
	ec.Declare(name).MultiVersion = multi
}

func (ec *ExecutionContext) Publish(name string, r Result) {
	ec.Declare(name).Publish(r)
}

// GetVar implements expreval.VarGetter: the latest value of name.
func (ec *ExecutionContext) GetVar(name string) (value.Value, error) {
	v, ok := ec.vars[name]
	if !ok {
		return nil, graphderr.ErrUnknownVariable.New(name)
	}
	r, ok := v.Latest()
	if !ok {
		return value.Empty{}, nil
	}
	if r.State == StateError {
		return nil, graphderr.ErrExecution.New(fmt.Sprintf("variable %s: %s", name, r.Message))
	}
	return r.Data, nil
}

// GetVersionedVar implements expreval.VarGetter's versioned accessor.
func (ec *ExecutionContext) GetVersionedVar(name string, ver int64) (value.Value, error) {
	v, ok := ec.vars[name]
	if !ok {
		return nil, graphderr.ErrUnknownVariable.New(name)
	}
	r, ok := v.Versioned(ver)
	if !ok {
		return value.Empty{}, nil
	}
	return r.Data, nil
}

// Result returns the latest full Result (including State) for name.
func (ec *ExecutionContext) Result(name string) (Result, bool) {
	v, ok := ec.vars[name]
	if !ok {
		return Result{}, false
	}
	return v.Latest()
}

func (ec *ExecutionContext) History(name string) []Result {
	v, ok := ec.vars[name]
	if !ok {
		return nil
	}
	return v.History
}
