package evaluator

import (
	"math"

	"github.com/heron-lang/heron/internal/ast"
	"github.com/heron-lang/heron/internal/descriptor"
	"github.com/heron-lang/heron/internal/heronerr"
	"github.com/heron-lang/heron/internal/value"
	"github.com/heron-lang/heron/internal/vm"
)

// evalBinary implements the operator dispatch matrix of spec §4.2,
// grounded on funvibe-funxy/internal/evaluator/expressions_operators.go's
// EvalInfixExpression — a left.Type()/right.Type() switch driving
// per-pair-of-kinds evaluation funcs, generalized here into a single
// table-like cascade over Heron's closed Value taxonomy instead of the
// teacher's open-ended trait/class dispatch (which is out of Heron's
// scope: no user-defined operator overloading).
func (e *Evaluator) evalBinary(m *vm.VM, n *ast.BinaryOp) (value.Value, error) {
	left, err := e.Eval(m, n.Left)
	if err != nil {
		return nil, err
	}

	// `is`/`as` evaluate rhs as a type name, not as a value (spec §4.2).
	if n.Op == ast.OpIs || n.Op == ast.OpAs {
		typeName, ok := n.Right.(*ast.Name)
		if !ok {
			return nil, heronerr.New(heronerr.KindTypeMismatch, "right operand of %s must be a type", n.Op)
		}
		d, ok := m.Arena().Lookup(typeName.Ident)
		if !ok {
			return nil, heronerr.New(heronerr.KindTypeMismatch, "right operand of %s must be a type", n.Op)
		}
		compatible := d.IsCompatible(left)
		if n.Op == ast.OpIs {
			return value.Bool{V: compatible}, nil
		}
		if !compatible {
			return value.Null{}, nil
		}
		return castTo(left, d)
	}

	right, err := e.Eval(m, n.Right)
	if err != nil {
		return nil, err
	}
	return EvalBinary(n.Op, left, right)
}

// castTo implements the successful half of `as`: for an interface
// target, a ClassInstance is wrapped in an InterfaceInstance carrying a
// method-dispatch table resolved against the implementing class (spec
// §4.4 "as-casting a ClassInstance to an interface ... produces an
// InterfaceInstance wrapping it"); for any other compatible target the
// value is unwrapped (from Any, if present) and returned as-is.
func castTo(v value.Value, d *descriptor.Descriptor) (value.Value, error) {
	unwrapped := value.Unwrap(v)
	if d.Kind != descriptor.KindInterface {
		return unwrapped, nil
	}
	ci, ok := unwrapped.(*value.ClassInstance)
	if !ok {
		return unwrapped, nil
	}
	classDesc, ok := ci.Descriptor.(*descriptor.Descriptor)
	if !ok {
		return nil, heronerr.New(heronerr.KindInternalInvariantViolation, "class descriptor has unexpected concrete type")
	}
	dispatch := make(map[string]*value.Function, len(d.Methods))
	for name := range d.Methods {
		if fn, ok := classDesc.Methods[name]; ok {
			dispatch[name] = fn
		}
	}
	return &value.InterfaceInstance{Descriptor: d, Underlying: ci, Dispatch: dispatch}, nil
}

// EvalBinary applies a binary operator to two already-evaluated values.
// Exported so the comprehension engine's combine/step/predicate
// expressions and tests can exercise the matrix directly.
func EvalBinary(op ast.BinaryOperator, left, right value.Value) (value.Value, error) {
	// Null operand policy (spec §4.2): if either operand is Null, only
	// ==/!= are defined, against any other value.
	if _, ok := left.(value.Null); ok {
		return nullBinary(op, left, right)
	}
	if _, ok := right.(value.Null); ok {
		return nullBinary(op, left, right)
	}

	left = value.Unwrap(left)
	right = value.Unwrap(right)

	switch l := left.(type) {
	case value.Int:
		if r, ok := right.(value.Int); ok {
			return intBinary(op, l.V, r.V)
		}
		if r, ok := right.(value.Float); ok {
			return floatBinary(op, float64(l.V), r.V)
		}
	case value.Float:
		if r, ok := right.(value.Float); ok {
			return floatBinary(op, l.V, r.V)
		}
		if r, ok := right.(value.Int); ok {
			return floatBinary(op, l.V, float64(r.V))
		}
	case value.Bool:
		if r, ok := right.(value.Bool); ok {
			return boolBinary(op, l.V, r.V)
		}
	case value.Char:
		if r, ok := right.(value.Char); ok {
			return charBinary(op, l.V, r.V)
		}
	case value.String:
		if r, ok := right.(value.String); ok {
			return stringBinary(op, l.V, r.V)
		}
	case value.EnumInstance:
		if r, ok := right.(value.EnumInstance); ok {
			return equalityOnly(op, l.Equals(r))
		}
	case *value.ClassInstance:
		if r, ok := right.(*value.ClassInstance); ok {
			return equalityOnly(op, l == r)
		}
	case *value.InterfaceInstance:
		if r, ok := right.(*value.InterfaceInstance); ok {
			return equalityOnly(op, l.Underlying == r.Underlying)
		}
	case *value.List:
		if r, ok := right.(*value.List); ok {
			return equalityOnly(op, l.Equals(r))
		}
	}

	return nil, heronerr.New(heronerr.KindIncompatibleTypes, "incompatible types for %s: %s and %s", op, left.Kind(), right.Kind())
}

func nullBinary(op ast.BinaryOperator, left, right value.Value) (value.Value, error) {
	switch op {
	case ast.OpEq:
		return value.Bool{V: left.Equals(right)}, nil
	case ast.OpNeq:
		return value.Bool{V: !left.Equals(right)}, nil
	default:
		return nil, heronerr.New(heronerr.KindUnsupportedOperation, "operator %s is not defined for null", op)
	}
}

func equalityOnly(op ast.BinaryOperator, equal bool) (value.Value, error) {
	switch op {
	case ast.OpEq:
		return value.Bool{V: equal}, nil
	case ast.OpNeq:
		return value.Bool{V: !equal}, nil
	default:
		return nil, heronerr.New(heronerr.KindUnsupportedOperation, "only == and != are defined for this type")
	}
}

// intBinary implements Int×Int arithmetic/comparison. Int division by
// zero fails DivisionByZero (spec §4.2); Int stays Int (no implicit
// promotion when both operands are already Int).
func intBinary(op ast.BinaryOperator, a, b int64) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		return value.Int{V: a + b}, nil
	case ast.OpSub:
		return value.Int{V: a - b}, nil
	case ast.OpMul:
		return value.Int{V: a * b}, nil
	case ast.OpDiv:
		if b == 0 {
			return nil, heronerr.New(heronerr.KindDivisionByZero, "integer division by zero")
		}
		return value.Int{V: a / b}, nil
	case ast.OpMod:
		if b == 0 {
			return nil, heronerr.New(heronerr.KindDivisionByZero, "integer modulo by zero")
		}
		return value.Int{V: a % b}, nil
	case ast.OpEq:
		return value.Bool{V: a == b}, nil
	case ast.OpNeq:
		return value.Bool{V: a != b}, nil
	case ast.OpLt:
		return value.Bool{V: a < b}, nil
	case ast.OpGt:
		return value.Bool{V: a > b}, nil
	case ast.OpLte:
		return value.Bool{V: a <= b}, nil
	case ast.OpGte:
		return value.Bool{V: a >= b}, nil
	}
	return nil, heronerr.New(heronerr.KindUnsupportedOperation, "operator %s is not defined for Int", op)
}

// floatBinary implements Float arithmetic/comparison, used directly for
// Float×Float and, after promotion, for any Int×Float/Float×Int pair
// (spec §4.2 "Numeric promotion"). Float division follows IEEE-754:
// it never fails, producing ±Inf/NaN instead (spec §4.2).
func floatBinary(op ast.BinaryOperator, a, b float64) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		return value.Float{V: a + b}, nil
	case ast.OpSub:
		return value.Float{V: a - b}, nil
	case ast.OpMul:
		return value.Float{V: a * b}, nil
	case ast.OpDiv:
		return value.Float{V: a / b}, nil
	case ast.OpMod:
		return value.Float{V: math.Mod(a, b)}, nil
	case ast.OpEq:
		return value.Bool{V: a == b}, nil
	case ast.OpNeq:
		return value.Bool{V: a != b}, nil
	case ast.OpLt:
		return value.Bool{V: a < b}, nil
	case ast.OpGt:
		return value.Bool{V: a > b}, nil
	case ast.OpLte:
		return value.Bool{V: a <= b}, nil
	case ast.OpGte:
		return value.Bool{V: a >= b}, nil
	}
	return nil, heronerr.New(heronerr.KindUnsupportedOperation, "operator %s is not defined for Float", op)
}

func boolBinary(op ast.BinaryOperator, a, b bool) (value.Value, error) {
	switch op {
	case ast.OpAnd:
		return value.Bool{V: a && b}, nil
	case ast.OpOr:
		return value.Bool{V: a || b}, nil
	case ast.OpXor:
		return value.Bool{V: a != b}, nil
	case ast.OpEq:
		return value.Bool{V: a == b}, nil
	case ast.OpNeq:
		return value.Bool{V: a != b}, nil
	}
	return nil, heronerr.New(heronerr.KindUnsupportedOperation, "operator %s is not defined for Bool", op)
}

func charBinary(op ast.BinaryOperator, a, b rune) (value.Value, error) {
	switch op {
	case ast.OpEq:
		return value.Bool{V: a == b}, nil
	case ast.OpNeq:
		return value.Bool{V: a != b}, nil
	case ast.OpLt:
		return value.Bool{V: a < b}, nil
	case ast.OpGt:
		return value.Bool{V: a > b}, nil
	case ast.OpLte:
		return value.Bool{V: a <= b}, nil
	case ast.OpGte:
		return value.Bool{V: a >= b}, nil
	}
	return nil, heronerr.New(heronerr.KindUnsupportedOperation, "operator %s is not defined for Char", op)
}

func stringBinary(op ast.BinaryOperator, a, b string) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		return value.String{V: a + b}, nil
	case ast.OpEq:
		return value.Bool{V: a == b}, nil
	case ast.OpNeq:
		return value.Bool{V: a != b}, nil
	case ast.OpLt:
		return value.Bool{V: a < b}, nil
	case ast.OpGt:
		return value.Bool{V: a > b}, nil
	case ast.OpLte:
		return value.Bool{V: a <= b}, nil
	case ast.OpGte:
		return value.Bool{V: a >= b}, nil
	}
	return nil, heronerr.New(heronerr.KindUnsupportedOperation, "operator %s is not defined for String", op)
}
