// Package heronerr implements the error-kind taxonomy and structured
// failure type from spec §7, grounded on
// funvibe-funxy/internal/evaluator/object_control.go's Error/StackFrame
// shape: every failure carries a kind, a human message, the failing
// expression's textual rendering where available, and a call-stack
// summary derived from the frame stack.
package heronerr

import (
	"fmt"
	"strings"

	"github.com/heron-lang/heron/internal/ast"
)

// Kind is the closed taxonomy of failure kinds spec §7 names.
type Kind string

const (
	KindParseError                Kind = "ParseError"
	KindNameNotFound              Kind = "NameNotFound"
	KindNotAssignable             Kind = "NotAssignable"
	KindNoSuchField               Kind = "NoSuchField"
	KindNullDereference           Kind = "NullDereference"
	KindNotAType                  Kind = "NotAType"
	KindTypeMismatch              Kind = "TypeMismatch"
	KindIncompatibleTypes         Kind = "IncompatibleTypes"
	KindUnsupportedOperation      Kind = "UnsupportedOperation"
	KindDivisionByZero            Kind = "DivisionByZero"
	KindArityMismatch             Kind = "ArityMismatch"
	KindNotCallable               Kind = "NotCallable"
	KindNoEntryPoint              Kind = "NoEntryPoint"
	KindModuleNotFound            Kind = "ModuleNotFound"
	KindCircularModuleDependency  Kind = "CircularModuleDependency"
	KindInternalInvariantViolation Kind = "InternalInvariantViolation"
)

// Frame is one entry in a reported call-stack summary.
type Frame struct {
	Name   string
	File   string
	Line   int
	Column int
}

// Error is Heron's structured failure result (spec §7): the evaluator
// never recovers locally, every failure unwinds through scoped-
// acquisition boundaries up to the top-level entry point, which reports
// it with this shape.
type Error struct {
	Kind    Kind
	Message string
	// ExprText is the failing expression's textual rendering, included
	// where available per spec §7.
	ExprText string
	Pos      ast.Position
	Stack    []Frame
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Kind, e.Message)
	if e.ExprText != "" {
		fmt.Fprintf(&b, " (in `%s`)", e.ExprText)
	}
	if e.Pos.Line != 0 {
		fmt.Fprintf(&b, " at %s", e.Pos.String())
	}
	for i := len(e.Stack) - 1; i >= 0; i-- {
		f := e.Stack[i]
		fmt.Fprintf(&b, "\n  at %s (%s:%d:%d)", f.Name, f.File, f.Line, f.Column)
	}
	return b.String()
}

// New builds a new Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithExpr attaches the failing expression's position and rendered text,
// but only the first (innermost) attachment wins — outer recovery sites
// re-wrap without overwriting the original failure site.
func WithExpr(err error, expr ast.Expression) error {
	he, ok := err.(*Error)
	if !ok || expr == nil || he.ExprText != "" {
		return err
	}
	he.ExprText = expr.Text()
	he.Pos = expr.Pos()
	return he
}

// WithStack attaches a call-stack summary, innermost frame last.
func WithStack(err error, stack []Frame) error {
	he, ok := err.(*Error)
	if !ok || len(he.Stack) > 0 {
		return err
	}
	he.Stack = stack
	return he
}

// As reports whether err is a *Error of kind k.
func As(err error, k Kind) bool {
	he, ok := err.(*Error)
	return ok && he.Kind == k
}
