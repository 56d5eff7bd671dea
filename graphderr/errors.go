// Package graphderr declares the error taxonomy from the error-handling
// design: one gopkg.in/src-d/go-errors.v1 Kind per error class, following
// the teacher's own auth.ErrNotAuthorized pattern.
package graphderr

import (
	"gopkg.in/src-d/go-errors.v1"
)

// Syntax errors: surfaced by the (out-of-scope) parser; represented here
// only so the driver can classify them.
var ErrSyntax = errors.NewKind("syntax error: %s")

// Semantic errors: validator rejections.
var (
	ErrUnknownVariable     = errors.NewKind("unknown variable: %s")
	ErrUnknownColumn       = errors.NewKind("unknown column: %s")
	ErrUnknownTag          = errors.NewKind("unknown tag: %s")
	ErrUnknownEdgeType     = errors.NewKind("unknown edge type: %s")
	ErrUnknownProperty     = errors.NewKind("unknown property: %s.%s")
	ErrTypeMismatch        = errors.NewKind("type mismatch: expected %s, got %s")
	ErrNestedAggregate     = errors.NewKind("aggregate functions cannot be nested")
	ErrMismatchedColumns   = errors.NewKind("%s and %s produce different columns")
	ErrDuplicateVariable   = errors.NewKind("duplicate variable: %s")
	ErrMixedInputReference = errors.NewKind("cannot mix pipe input ($-) and variable ($%s) in the same statement")
	ErrMultipleVariables   = errors.NewKind("only one distinct $var reference is allowed per statement, found %s and %s")
	ErrNoSpaceChosen       = errors.NewKind("no space chosen")
	ErrInvalidLimit        = errors.NewKind("invalid LIMIT: offset and count must be non-negative, got offset=%d count=%d")
	ErrTooManyStatements   = errors.NewKind("sequential statement count %d exceeds the limit of %d")
	ErrLeadingClause       = errors.NewKind("%s cannot be the first clause of a sequential statement")
)

// Permission errors: session-level ACL rejections.
var ErrPermissionDenied = errors.NewKind("permission denied: %s")

// Storage errors: remote completeness < 100.
var (
	ErrStorage        = errors.NewKind("storage error: %s")
	ErrPartialStorage = errors.NewKind("partial storage result: completeness=%d")
)

// Meta errors: metadata client returned non-ok.
var ErrMeta = errors.NewKind("metadata error: %s")

// Execution errors: unrecoverable internal condition during a run.
var (
	ErrExecution     = errors.NewKind("execution error: %s")
	ErrNilIterator   = errors.NewKind("execution error: nil iterator for variable %s")
	ErrBadPredicate  = errors.NewKind("execution error: filter predicate evaluated to %s, expected BOOL or NULL")
	ErrUnknownPlanNode = errors.NewKind("execution error: no executor registered for plan node kind %s")
)

// Canceled: driver cancellation (session close, deadline).
var ErrCanceled = errors.NewKind("query canceled: %s")
