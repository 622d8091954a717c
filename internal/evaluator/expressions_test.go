package evaluator

import (
	"testing"

	"github.com/heron-lang/heron/internal/ast"
	"github.com/heron-lang/heron/internal/descriptor"
	"github.com/heron-lang/heron/internal/heronerr"
	"github.com/heron-lang/heron/internal/value"
	"github.com/heron-lang/heron/internal/vm"
)

func newTestEvaluator() (*Evaluator, *vm.VM) {
	ev := New(ExprExecutor{})
	m := vm.New(descriptor.NewArena(), &vm.Global{})
	return ev, m
}

func intLit(n int64) *ast.Literal { return &ast.Literal{Kind: ast.LitInt, Int: n} }

// TestClosureSnapshotSemantics guards spec §8: mutating a captured
// variable after a closure is built must not be observed inside it.
func TestClosureSnapshotSemantics(t *testing.T) {
	ev, m := newTestEvaluator()
	m.Current().Top().Declare("x", value.Int{V: 1})

	anon := &ast.AnonFunction{Body: &ExprBody{Expr: &ast.Name{Ident: "x"}}}
	fnVal, err := ev.Eval(m, anon)
	if err != nil {
		t.Fatalf("building closure: %v", err)
	}
	fn, ok := fnVal.(*value.Function)
	if !ok {
		t.Fatalf("AnonFunction evaluated to %T, want *value.Function", fnVal)
	}

	m.Current().Top().Mutate("x", value.Int{V: 2})

	result, err := ev.Apply(m, fn, nil)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !result.Equals(value.Int{V: 1}) {
		t.Errorf("closure observed x = %v after outer mutation, want the captured Int(1)", result)
	}
}

func TestCallArityMismatch(t *testing.T) {
	ev, m := newTestEvaluator()
	fn := &value.Function{Name: "f", Params: []ast.Param{{Name: "a"}, {Name: "b"}}, Body: &ExprBody{Expr: intLit(0)}}
	if _, err := ev.Apply(m, fn, []value.Value{value.Int{V: 1}}); !heronerr.As(err, heronerr.KindArityMismatch) {
		t.Errorf("Apply with wrong arg count error = %v, want ArityMismatch", err)
	}
}

func TestCallNotCallable(t *testing.T) {
	ev, m := newTestEvaluator()
	m.Current().Top().Declare("notAFunction", value.Int{V: 5})
	call := &ast.Call{Callee: &ast.Name{Ident: "notAFunction"}}
	if _, err := ev.Eval(m, call); !heronerr.As(err, heronerr.KindNotCallable) {
		t.Errorf("calling a non-function error = %v, want NotCallable", err)
	}
}

// TestNewInvokesInitConstructor confirms New applies a declared "init"
// method against the fresh instance before returning it.
func TestNewInvokesInitConstructor(t *testing.T) {
	arena := descriptor.NewArena()
	h := arena.Declare(descriptor.KindClass, "Point")
	arena.Wire(h, func(d *descriptor.Descriptor) {
		d.Fields = []string{"x"}
		d.Methods = descriptor.MethodTable{
			"init": {
				Name:   "init",
				Params: []ast.Param{{Name: "v"}},
				// No local named "x" is declared in the constructor's
				// scope, so this Assignment falls through to the
				// receiver-field write path (assignTo's *ast.Name case).
				Body: &ExprBody{Expr: &ast.Assignment{
					Lhs: &ast.Name{Ident: "x"},
					Rhs: &ast.Name{Ident: "v"},
				}},
			},
		}
	})

	m := vm.New(arena, &vm.Global{})
	ev := New(ExprExecutor{})

	newExpr := &ast.New{TypeName: "Point", Args: []ast.Expression{intLit(7)}}
	result, err := ev.Eval(m, newExpr)
	if err != nil {
		t.Fatalf("new Point(7): %v", err)
	}
	inst, ok := result.(*value.ClassInstance)
	if !ok {
		t.Fatalf("New evaluated to %T, want *value.ClassInstance", result)
	}
	x, ok := inst.GetField("x")
	if !ok || !x.Equals(value.Int{V: 7}) {
		t.Errorf("inst.x = %v, %v; want Int(7), true", x, ok)
	}
}

func TestNewUnknownTypeFails(t *testing.T) {
	ev, m := newTestEvaluator()
	if _, err := ev.Eval(m, &ast.New{TypeName: "Nonexistent"}); !heronerr.As(err, heronerr.KindNotAType) {
		t.Errorf("new Nonexistent() error = %v, want NotAType", err)
	}
}

func TestFieldAccessNullDereference(t *testing.T) {
	ev, m := newTestEvaluator()
	m.Current().Top().Declare("n", value.Null{})
	access := &ast.FieldAccess{Receiver: &ast.Name{Ident: "n"}, FieldName: "x"}
	if _, err := ev.Eval(m, access); !heronerr.As(err, heronerr.KindNullDereference) {
		t.Errorf("field access on null error = %v, want NullDereference", err)
	}
}

func TestFieldAccessNoSuchField(t *testing.T) {
	d := descriptor.NewArena()
	h := d.Declare(descriptor.KindClass, "Point")
	d.Wire(h, func(*descriptor.Descriptor) {})
	m := vm.New(d, &vm.Global{})
	ev := New(ExprExecutor{})

	inst := value.NewClassInstance(d.Get(h), map[string]value.Value{"x": value.Int{V: 1}})
	m.Current().Top().Declare("p", inst)

	access := &ast.FieldAccess{Receiver: &ast.Name{Ident: "p"}, FieldName: "y"}
	if _, err := ev.Eval(m, access); !heronerr.As(err, heronerr.KindNoSuchField) {
		t.Errorf("access to undeclared field error = %v, want NoSuchField", err)
	}
}

func TestIndexGetSet(t *testing.T) {
	ev, m := newTestEvaluator()
	listVal, err := ev.Eval(m, &ast.TupleExpr{Elements: []ast.Expression{intLit(1), intLit(2), intLit(3)}})
	if err != nil {
		t.Fatalf("building list: %v", err)
	}
	m.Current().Top().Declare("xs", listVal)

	got, err := ev.Eval(m, &ast.Index{Collection: &ast.Name{Ident: "xs"}, Idx: intLit(1)})
	if err != nil {
		t.Fatalf("xs[1]: %v", err)
	}
	if !got.Equals(value.Int{V: 2}) {
		t.Errorf("xs[1] = %v, want Int(2)", got)
	}
}

// TestAssignmentIndexLvalue guards the Index-lvalue fix described in
// DESIGN.md: assigning through xs[i] must mutate the underlying
// collection in place.
func TestAssignmentIndexLvalue(t *testing.T) {
	ev, m := newTestEvaluator()
	listVal, err := ev.Eval(m, &ast.TupleExpr{Elements: []ast.Expression{intLit(1), intLit(2), intLit(3)}})
	if err != nil {
		t.Fatalf("building list: %v", err)
	}
	m.Current().Top().Declare("xs", listVal)

	assign := &ast.Assignment{
		Lhs: &ast.Index{Collection: &ast.Name{Ident: "xs"}, Idx: intLit(1)},
		Rhs: intLit(99),
	}
	if _, err := ev.Eval(m, assign); err != nil {
		t.Fatalf("xs[1] = 99: %v", err)
	}

	xs := listVal.(*value.List)
	got, err := xs.GetIndex(value.Int{V: 1})
	if err != nil {
		t.Fatalf("GetIndex(1): %v", err)
	}
	if !got.Equals(value.Int{V: 99}) {
		t.Errorf("xs[1] after assignment = %v, want Int(99)", got)
	}
}

func TestAssignmentToUndeclaredNameFails(t *testing.T) {
	ev, m := newTestEvaluator()
	assign := &ast.Assignment{Lhs: &ast.Name{Ident: "nope"}, Rhs: intLit(1)}
	if _, err := ev.Eval(m, assign); !heronerr.As(err, heronerr.KindNotAssignable) {
		t.Errorf("assigning to an undeclared name error = %v, want NotAssignable", err)
	}
}

// TestPostIncrement guards spec §4.1: x++ yields the old value of x and
// leaves x holding old+1.
func TestPostIncrement(t *testing.T) {
	ev, m := newTestEvaluator()
	m.Current().Top().Declare("x", value.Int{V: 5})

	old, err := ev.Eval(m, &ast.PostIncrement{Target: &ast.Name{Ident: "x"}})
	if err != nil {
		t.Fatalf("x++: %v", err)
	}
	if !old.Equals(value.Int{V: 5}) {
		t.Errorf("x++ yielded %v, want Int(5) (the old value)", old)
	}

	after, ok := m.LookupName("x")
	if !ok || !after.Equals(value.Int{V: 6}) {
		t.Errorf("x after x++ = %v, %v; want Int(6), true", after, ok)
	}
}
