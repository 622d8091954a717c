// Package evaluator implements Heron's recursive expression evaluation
// (spec §4.2) against internal/vm's frame/scope machinery, grounded on
// funvibe-funxy/internal/evaluator's own big type-switch dispatch
// (evaluator.go's Eval/evalCore) — adapted to idiomatic Go explicit
// (value.Value, error) returns rather than the teacher's embedded
// *Error-as-Object sentinel, since that is the shape this spec's own
// §7 error design calls for (see DESIGN.md).
package evaluator

import (
	"github.com/heron-lang/heron/internal/ast"
	"github.com/heron-lang/heron/internal/heronerr"
	"github.com/heron-lang/heron/internal/value"
	"github.com/heron-lang/heron/internal/vm"
)

// StatementExecutor runs a Function's statement body against the VM
// (spec §1: "the statement sub-AST and its sequencing semantics beyond
// what expression evaluation observes" is an external collaborator).
// The evaluator only needs it to run Call's pushed frame/scope to
// completion and leave a value in vm.TakeReturn.
type StatementExecutor interface {
	Exec(e *Evaluator, m *vm.VM, body ast.Block) error
}

// Evaluator recursively interprets Expression nodes against a VM. It is
// intentionally small and stateless beyond its two collaborators —
// mirroring how little shared state funvibe-funxy's own Evaluator
// strictly needs for expression dispatch once trait/generic machinery
// (out of Heron's scope) is set aside.
type Evaluator struct {
	Statements StatementExecutor
	// MaxParallel bounds reduce's worker count (spec §4.3, §5); zero
	// means "use runtime.GOMAXPROCS(0)".
	MaxParallel int
}

// New returns an Evaluator using the given statement executor.
func New(stmts StatementExecutor) *Evaluator {
	return &Evaluator{Statements: stmts}
}

// Eval dispatches on the expression's concrete type (spec §4.1's closed
// variant set) and evaluates it against m.
func (e *Evaluator) Eval(m *vm.VM, expr ast.Expression) (value.Value, error) {
	val, err := e.evalCore(m, expr)
	if err != nil {
		return nil, heronerr.WithExpr(err, expr)
	}
	return val, nil
}

func (e *Evaluator) evalCore(m *vm.VM, expr ast.Expression) (value.Value, error) {
	switch n := expr.(type) {
	case *ast.NullExpr:
		return value.Null{}, nil
	case *ast.Literal:
		return e.evalLiteral(n)
	case *ast.Name:
		return e.evalName(m, n)
	case *ast.Assignment:
		return e.evalAssignment(m, n)
	case *ast.FieldAccess:
		return e.evalFieldAccess(m, n)
	case *ast.Index:
		return e.evalIndex(m, n)
	case *ast.New:
		return e.evalNew(m, n)
	case *ast.Call:
		return e.evalCall(m, n)
	case *ast.UnaryOp:
		return e.evalUnary(m, n)
	case *ast.BinaryOp:
		return e.evalBinary(m, n)
	case *ast.AnonFunction:
		return e.evalAnonFunction(m, n)
	case *ast.PostIncrement:
		return e.evalPostIncrement(m, n)
	case *ast.TupleExpr:
		return e.evalTuple(m, n)
	case *ast.Select:
		return e.evalSelect(m, n)
	case *ast.MapEach:
		return e.evalMapEach(m, n)
	case *ast.Accumulate:
		return e.evalAccumulate(m, n)
	case *ast.Reduce:
		return e.evalReduce(m, n)
	default:
		return nil, heronerr.New(heronerr.KindInternalInvariantViolation, "unhandled expression node %T", expr)
	}
}

func (e *Evaluator) evalLiteral(l *ast.Literal) (value.Value, error) {
	switch l.Kind {
	case ast.LitInt:
		return value.Int{V: l.Int}, nil
	case ast.LitFloat:
		return value.Float{V: l.Flt}, nil
	case ast.LitBool:
		return value.Bool{V: l.Bool}, nil
	case ast.LitChar:
		return value.Char{V: l.Char}, nil
	case ast.LitString:
		return value.String{V: l.Str}, nil
	default:
		return nil, heronerr.New(heronerr.KindInternalInvariantViolation, "unknown literal kind %v", l.Kind)
	}
}
