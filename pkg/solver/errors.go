package solver

import (
	"errors"
	"fmt"
	"strings"
)

// Incomplete is returned when a solve is cancelled, or runs out of its
// decision budget, before reaching an answer either way.
var Incomplete = errors.New("cancelled before a solution could be found")

// AppliedRule is one rule involved in a failed solve, rendered for humans.
type AppliedRule struct {
	Kind        RuleKind
	Description string
}

func (a AppliedRule) String() string {
	return a.Description
}

// NotSatisfiable is an error composed of a set of applied rules that is
// sufficient to make a solution impossible.
type NotSatisfiable []AppliedRule

func (e NotSatisfiable) Error() string {
	const msg = "constraints not satisfiable"
	if len(e) == 0 {
		return msg
	}
	s := make([]string, len(e))
	for i, a := range e {
		s[i] = a.String()
	}
	return fmt.Sprintf("%s: %s", msg, strings.Join(s, ", "))
}

// MalformedInputError is returned when solvables or jobs reference ids the
// pool never issued, or carry metadata the loader could not parse.
type MalformedInputError struct {
	Detail string
}

func (e *MalformedInputError) Error() string {
	return fmt.Sprintf("malformed input: %s", e.Detail)
}

func malformedf(format string, args ...interface{}) *MalformedInputError {
	return &MalformedInputError{Detail: fmt.Sprintf(format, args...)}
}

// UnsupportedOperationError is returned when a request asks for an
// operation the transaction builder has no rules for.
type UnsupportedOperationError struct {
	Operation string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation: %s", e.Operation)
}

// InternalError reports a broken solver invariant. It means a bug in the
// engine, never a problem with the caller's input.
type InternalError string

func (e InternalError) Error() string {
	return fmt.Sprintf("internal solver failure: %s", string(e))
}

func internalErrorf(format string, args ...interface{}) InternalError {
	return InternalError(fmt.Sprintf(format, args...))
}
