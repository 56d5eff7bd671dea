package graphd

import (
	"github.com/vesoft-inc/nebula-graph-sub000/dataset"
	"github.com/vesoft-inc/nebula-graph-sub000/gqlctx"
	"github.com/vesoft-inc/nebula-graph-sub000/graphderr"
)

// ErrorCode classifies a failed ExecutionResponse by which graphderr
// taxonomy entry produced it (§7's SyntaxError/SemanticError/
// PermissionError/StorageError/MetaError/ExecutionError/Canceled).
type ErrorCode int

const (
	ErrCodeNone ErrorCode = iota
	ErrCodeSyntax
	ErrCodeSemantic
	ErrCodePermission
	ErrCodeStorage
	ErrCodeMeta
	ErrCodeExecution
	ErrCodeCanceled
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeNone:
		return "None"
	case ErrCodeSyntax:
		return "SyntaxError"
	case ErrCodeSemantic:
		return "SemanticError"
	case ErrCodePermission:
		return "PermissionError"
	case ErrCodeStorage:
		return "StorageError"
	case ErrCodeMeta:
		return "MetaError"
	case ErrCodeExecution:
		return "ExecutionError"
	case ErrCodeCanceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// semanticKinds is every graphderr entry a failed validator call raises;
// anything else that doesn't match a more specific kind below falls back
// to ErrCodeExecution.
var semanticKinds = []interface {
	Is(error) bool
}{
	graphderr.ErrUnknownVariable,
	graphderr.ErrUnknownColumn,
	graphderr.ErrUnknownTag,
	graphderr.ErrUnknownEdgeType,
	graphderr.ErrUnknownProperty,
	graphderr.ErrTypeMismatch,
	graphderr.ErrNestedAggregate,
	graphderr.ErrMismatchedColumns,
	graphderr.ErrDuplicateVariable,
	graphderr.ErrMixedInputReference,
	graphderr.ErrMultipleVariables,
	graphderr.ErrNoSpaceChosen,
	graphderr.ErrInvalidLimit,
	graphderr.ErrTooManyStatements,
	graphderr.ErrLeadingClause,
}

func classify(err error) ErrorCode {
	if err == nil {
		return ErrCodeNone
	}
	switch {
	case graphderr.ErrSyntax.Is(err):
		return ErrCodeSyntax
	case graphderr.ErrPermissionDenied.Is(err):
		return ErrCodePermission
	case graphderr.ErrStorage.Is(err), graphderr.ErrPartialStorage.Is(err):
		return ErrCodeStorage
	case graphderr.ErrMeta.Is(err):
		return ErrCodeMeta
	case graphderr.ErrCanceled.Is(err):
		return ErrCodeCanceled
	}
	for _, k := range semanticKinds {
		if k.Is(err) {
			return ErrCodeSemantic
		}
	}
	return ErrCodeExecution
}

// ExecutionResponse is the driver's reply to one Execute call (§6.3):
// either a result set, a plan description (EXPLAIN/EXPLAIN PROFILE), or an
// error classified by ErrorCode.
type ExecutionResponse struct {
	PlanID        string
	ColNames      []string
	Rows          []dataset.Row
	State         gqlctx.ResultState
	ErrorCode     ErrorCode
	ErrorMsg      string
	LatencyMicros int64
	Plan          *gqlctx.PlanDescription
	LatestSpace   string
}
