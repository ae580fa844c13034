package ir

import (
	"fmt"
	"strings"
)

// ErrorCode is a machine-readable resolution failure category.
type ErrorCode string

const (
	CodeMalformedType    ErrorCode = "malformed_type"
	CodeUnknownType      ErrorCode = "unknown_type"
	CodeCyclicAlias      ErrorCode = "cyclic_alias"
	CodeMissingBase      ErrorCode = "missing_base"
	CodeInheritanceCycle ErrorCode = "inheritance_cycle"
)

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrMalformedType    = &Error{Code: CodeMalformedType}
	ErrUnknownType      = &Error{Code: CodeUnknownType}
	ErrCyclicAlias      = &Error{Code: CodeCyclicAlias}
	ErrMissingBase      = &Error{Code: CodeMissingBase}
	ErrInheritanceCycle = &Error{Code: CodeInheritanceCycle}
)

// Error is a fatal resolution error.
type Error struct {
	Code ErrorCode

	// Name is the offending type expression or declaration name.
	Name string

	// Path holds the names visited before a cycle closed, ending with the
	// name that was revisited.
	Path []string

	// Message overrides the generated description when set.
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	switch e.Code {
	case CodeMalformedType:
		return fmt.Sprintf("malformed type expression %q", e.Name)
	case CodeUnknownType:
		return fmt.Sprintf("unknown type %q", e.Name)
	case CodeCyclicAlias:
		return "cyclic alias: " + strings.Join(e.Path, " -> ")
	case CodeMissingBase:
		return fmt.Sprintf("undeclared base struct %q", e.Name)
	case CodeInheritanceCycle:
		return "inheritance cycle: " + strings.Join(e.Path, " -> ")
	}
	return string(e.Code)
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}
