package evaluator

import (
	"math"
	"testing"

	"github.com/heron-lang/heron/internal/ast"
	"github.com/heron-lang/heron/internal/descriptor"
	"github.com/heron-lang/heron/internal/heronerr"
	"github.com/heron-lang/heron/internal/value"
	"github.com/heron-lang/heron/internal/vm"
)

// TestNumericPromotionLaw verifies spec §8's promotion property: for
// every Int a and Float b and every comparison/arithmetic op, a op b
// equals float(a) op b.
func TestNumericPromotionLaw(t *testing.T) {
	ops := []ast.BinaryOperator{
		ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod,
		ast.OpLt, ast.OpGt, ast.OpLte, ast.OpGte, ast.OpEq, ast.OpNeq,
	}
	ints := []int64{-3, 0, 1, 2, 5}
	floats := []float64{-2.5, 0.5, 1.0, 3.25}

	for _, a := range ints {
		for _, b := range floats {
			for _, op := range ops {
				mixed, err1 := EvalBinary(op, value.Int{V: a}, value.Float{V: b})
				promoted, err2 := EvalBinary(op, value.Float{V: float64(a)}, value.Float{V: b})
				if (err1 == nil) != (err2 == nil) {
					t.Fatalf("%v %s %v: error mismatch mixed=%v promoted=%v", a, op, b, err1, err2)
				}
				if err1 != nil {
					continue
				}
				if !mixed.Equals(promoted) {
					t.Errorf("%v %s %v = %v, want %v (promotion law)", a, op, b, mixed, promoted)
				}
			}
		}
	}
}

func TestIntDivisionByZeroFails(t *testing.T) {
	_, err := EvalBinary(ast.OpDiv, value.Int{V: 1}, value.Int{V: 0})
	if !heronerr.As(err, heronerr.KindDivisionByZero) {
		t.Fatalf("Int 1/0 error = %v, want DivisionByZero", err)
	}
	_, err = EvalBinary(ast.OpMod, value.Int{V: 1}, value.Int{V: 0})
	if !heronerr.As(err, heronerr.KindDivisionByZero) {
		t.Fatalf("Int 1%%0 error = %v, want DivisionByZero", err)
	}
}

func TestFloatDivisionByZeroProducesInfNotError(t *testing.T) {
	v, err := EvalBinary(ast.OpDiv, value.Float{V: 1}, value.Float{V: 0})
	if err != nil {
		t.Fatalf("Float 1.0/0.0 returned an error: %v", err)
	}
	f, ok := v.(value.Float)
	if !ok || !math.IsInf(f.V, 1) {
		t.Errorf("Float 1.0/0.0 = %v, want +Inf", v)
	}
}

func TestNullOperandPolicy(t *testing.T) {
	eq, err := EvalBinary(ast.OpEq, value.Null{}, value.Int{V: 1})
	if err != nil || eq.(value.Bool).V {
		t.Errorf("null == Int(1) = %v, %v; want false, nil", eq, err)
	}
	if _, err := EvalBinary(ast.OpAdd, value.Null{}, value.Int{V: 1}); !heronerr.As(err, heronerr.KindUnsupportedOperation) {
		t.Errorf("null + Int(1) error = %v, want UnsupportedOperation", err)
	}
}

func TestStringConcatenation(t *testing.T) {
	v, err := EvalBinary(ast.OpAdd, value.String{V: "a"}, value.String{V: "b"})
	if err != nil {
		t.Fatalf("string concat error: %v", err)
	}
	if !v.Equals(value.String{V: "ab"}) {
		t.Errorf("\"a\" + \"b\" = %v, want String(ab)", v)
	}
}

func TestIsAsConsistency(t *testing.T) {
	arena := descriptor.NewArena()
	petHandle := arena.Declare(descriptor.KindInterface, "Pet")
	dogHandle := arena.Declare(descriptor.KindClass, "Dog")
	fishHandle := arena.Declare(descriptor.KindClass, "Fish")
	arena.Wire(petHandle, func(d *descriptor.Descriptor) { d.Methods = descriptor.MethodTable{"speak": nil} })
	arena.Wire(dogHandle, func(d *descriptor.Descriptor) { d.Implements = []descriptor.Handle{petHandle} })
	arena.Wire(fishHandle, func(*descriptor.Descriptor) {})

	m := vm.New(arena, &vm.Global{})
	ev := New(ExprExecutor{})

	dog := value.NewClassInstance(arena.Get(dogHandle), nil)
	fish := value.NewClassInstance(arena.Get(fishHandle), nil)
	m.Current().Top().Declare("dog", dog)
	m.Current().Top().Declare("fish", fish)

	isExpr := func(name string) *ast.BinaryOp {
		return &ast.BinaryOp{Op: ast.OpIs, Left: &ast.Name{Ident: name}, Right: &ast.Name{Ident: "Pet"}}
	}
	asExpr := func(name string) *ast.BinaryOp {
		return &ast.BinaryOp{Op: ast.OpAs, Left: &ast.Name{Ident: name}, Right: &ast.Name{Ident: "Pet"}}
	}

	for _, name := range []string{"dog", "fish"} {
		isVal, err := ev.Eval(m, isExpr(name))
		if err != nil {
			t.Fatalf("%s is Pet: %v", name, err)
		}
		asVal, err := ev.Eval(m, asExpr(name))
		if err != nil {
			t.Fatalf("%s as Pet: %v", name, err)
		}
		is := isVal.(value.Bool).V
		_, asIsNull := asVal.(value.Null)
		if is && asIsNull {
			t.Errorf("%s is Pet == true but %s as Pet == null", name, name)
		}
		if !is && !asIsNull {
			t.Errorf("%s is Pet == false but %s as Pet != null", name, name)
		}
	}

	asVal, err := ev.Eval(m, asExpr("dog"))
	if err != nil {
		t.Fatalf("dog as Pet: %v", err)
	}
	if _, ok := asVal.(*value.InterfaceInstance); !ok {
		t.Errorf("dog as Pet = %T, want *value.InterfaceInstance", asVal)
	}
}
