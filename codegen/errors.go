package codegen

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/cxcorp/js-to-flasm-as2-compiler/ast"
	"github.com/cxcorp/js-to-flasm-as2-compiler/emitctx"
	"github.com/cxcorp/js-to-flasm-as2-compiler/register"
)

// ErrorKind enumerates the generator's fatal-error taxonomy.
type ErrorKind string

const (
	KindUnimplementedNode      ErrorKind = "UnimplementedNode"
	KindUnimplementedFeature   ErrorKind = "UnimplementedFeature"
	KindDuplicateDeclaration   ErrorKind = "DuplicateDeclaration"
	KindThisOutsideFunction    ErrorKind = "ThisOutsideFunction"
	KindGlobalsUnsupported     ErrorKind = "GlobalsUnsupported"
	KindUnsupportedIntrinsic   ErrorKind = "UnsupportedIntrinsic"
	KindWrongArity             ErrorKind = "WrongArity"
	KindOutOfRegisters         ErrorKind = "OutOfRegisters"
	KindRegisterConflict       ErrorKind = "RegisterConflict"
	KindBreakOutsideLoop       ErrorKind = "BreakOutsideLoop"
	KindDirectiveMalformed     ErrorKind = "DirectiveMalformed"
	KindDirectiveMisplaced     ErrorKind = "DirectiveMisplaced"
	KindUnsupportedOperator    ErrorKind = "UnsupportedOperator"
	KindStackInvariantViolation ErrorKind = "StackInvariantViolation"
	KindInternalError          ErrorKind = "InternalError"
)

// CompileError is a fatal compiler error, carrying the node whose source
// span should frame the diagnostic.
type CompileError struct {
	Kind    ErrorKind
	Message string
	Node    ast.Node
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// newError builds a CompileError wrapped with github.com/pkg/errors so a
// "%+v" format (used in --debug CLI output) prints a stack trace without
// losing the typed Kind (errors.Cause unwraps back to *CompileError).
func newError(kind ErrorKind, node ast.Node, format string, args ...interface{}) error {
	return errors.WithStack(&CompileError{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		Node:    node,
	})
}

// wrapAllocError classifies an error from package register or emitctx
// into the matching CompileError kind, framed against node.
func wrapAllocError(err error, node ast.Node) error {
	switch {
	case errors.Is(err, register.ErrOutOfRegisters):
		return newError(KindOutOfRegisters, node, "%v", err)
	case errors.Is(err, register.ErrRegisterConflict):
		return newError(KindRegisterConflict, node, "%v", err)
	case errors.Is(err, emitctx.ErrDuplicateDeclaration):
		return newError(KindDuplicateDeclaration, node, "%v", err)
	default:
		return newError(KindInternalError, node, "%v", err)
	}
}
