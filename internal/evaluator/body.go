package evaluator

import (
	"github.com/heron-lang/heron/internal/ast"
	"github.com/heron-lang/heron/internal/heronerr"
	"github.com/heron-lang/heron/internal/vm"
)

// ExprBody is the simplest possible ast.Block: a function whose entire
// body is a single expression, implicitly returned. Statement
// sequencing proper (declarations, if/while, explicit `return`) is an
// external collaborator per spec §1; ExprBody exists so that Call,
// AnonFunction and closures are exercisable end to end in this
// repository's own tests without requiring that collaborator.
type ExprBody struct {
	At   ast.Position
	Expr ast.Expression
}

func (b *ExprBody) blockNode() {}
func (b *ExprBody) Pos() ast.Position { return b.At }

// IdentifierUses implements identifierSource for free-variable analysis.
func (b *ExprBody) IdentifierUses() []string { return namesIn(b.Expr) }

// Locals implements identifierSource: an ExprBody declares no locals of
// its own.
func (b *ExprBody) Locals() []string { return nil }

// ExprExecutor runs an ExprBody by evaluating its expression and
// recording the result via vm.SetReturn, i.e. "return EXPR" is implicit.
// This is the StatementExecutor this repository wires by default.
type ExprExecutor struct{}

func (ExprExecutor) Exec(e *Evaluator, m *vm.VM, body ast.Block) error {
	eb, ok := body.(*ExprBody)
	if !ok {
		return unsupportedBlockErr(body)
	}
	val, err := e.Eval(m, eb.Expr)
	if err != nil {
		return err
	}
	m.SetReturn(val)
	return nil
}

func unsupportedBlockErr(body ast.Block) error {
	return heronerr.New(heronerr.KindInternalInvariantViolation,
		"no statement executor registered for block type %T; the statement sub-AST is an external collaborator (spec §1)", body)
}
