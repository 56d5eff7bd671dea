// Package gqlctx implements the per-request QueryContext (C9's owned
// state): execution-scoped variable storage with version history, an
// arena for validator-allocated expression scratch, and the session/
// schema/client handles executors read from.
package gqlctx

import (
	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/value"
)

// ResultState is a Result's terminal status.
type ResultState int

const (
	StateSuccess ResultState = iota
	StatePartialSuccess
	StateError
)

func (s ResultState) String() string {
	switch s {
	case StateSuccess:
		return "Success"
	case StatePartialSuccess:
		return "PartialSuccess"
	case StateError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Result is (DataSet-Value, Iterator kind, State), immutable once
// published. Data is usually a dataset.DataSetValue but may be any Value
// (e.g. Assign publishing a scalar).
type Result struct {
	Data    value.Value
	IterKind dataset.Kind
	State   ResultState
	Message string
}

func Success(data value.Value, kind dataset.Kind) Result {
	return Result{Data: data, IterKind: kind, State: StateSuccess}
}

func Partial(data value.Value, kind dataset.Kind, message string) Result {
	return Result{Data: data, IterKind: kind, State: StatePartialSuccess, Message: message}
}

func Failure(message string) Result {
	return Result{Data: value.NullValue, State: StateError, Message: message}
}

// DataSet returns Data as a *dataset.DataSet, or nil if Data isn't a
// DataSetValue (e.g. an Assign-produced scalar).
func (r Result) DataSet() *dataset.DataSet {
	dsv, ok := r.Data.(dataset.DataSetValue)
	if !ok {
		return nil
	}
	return dsv.DS
}
