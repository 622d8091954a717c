package evaluator

import (
	"github.com/heron-lang/heron/internal/ast"
	"github.com/heron-lang/heron/internal/descriptor"
	"github.com/heron-lang/heron/internal/heronerr"
	"github.com/heron-lang/heron/internal/value"
	"github.com/heron-lang/heron/internal/vm"
)

func (e *Evaluator) evalName(m *vm.VM, n *ast.Name) (value.Value, error) {
	if v, ok := m.LookupName(n.Ident); ok {
		return v, nil
	}
	return nil, heronerr.New(heronerr.KindNameNotFound, "name not found: %s", n.Ident)
}

// evalAssignment implements spec §4.2 Assignment, including the Index
// lvalue case the teacher leaves unimplemented (spec §9 Open Question):
// a complete implementation must call set_at_index.
func (e *Evaluator) evalAssignment(m *vm.VM, n *ast.Assignment) (value.Value, error) {
	rhs, err := e.Eval(m, n.Rhs)
	if err != nil {
		return nil, err
	}
	return e.assignTo(m, n.Lhs, rhs)
}

// assignTo implements the per-lvalue-kind logic of spec §4.2 Assignment
// given an already-evaluated rhs. Factored out so PostIncrement's
// desugaring (read old, assign old+1, yield old) can reuse it without
// re-evaluating the rhs expression or round-tripping through a
// synthetic AST node.
func (e *Evaluator) assignTo(m *vm.VM, lhsExpr ast.Expression, rhs value.Value) (value.Value, error) {
	switch lhs := lhsExpr.(type) {
	case *ast.Name:
		if m.Current().Mutate(lhs.Ident, rhs) {
			return rhs, nil
		}
		if m.HasField(lhs.Ident) {
			m.SetField(lhs.Ident, rhs)
			return rhs, nil
		}
		return nil, heronerr.New(heronerr.KindNotAssignable, "cannot assign to undeclared name: %s", lhs.Ident)
	case *ast.FieldAccess:
		recv, err := e.Eval(m, lhs.Receiver)
		if err != nil {
			return nil, err
		}
		fa, ok := recv.(value.FieldAccessor)
		if !ok || !fa.SetField(lhs.FieldName, rhs) {
			return nil, heronerr.New(heronerr.KindNoSuchField, "no such field: %s", lhs.FieldName)
		}
		return rhs, nil
	case *ast.Index:
		coll, err := e.Eval(m, lhs.Collection)
		if err != nil {
			return nil, err
		}
		idx, err := e.Eval(m, lhs.Idx)
		if err != nil {
			return nil, err
		}
		ix, ok := coll.(value.Indexable)
		if !ok {
			return nil, heronerr.New(heronerr.KindUnsupportedOperation, "value does not support index assignment")
		}
		if err := ix.SetIndex(idx, rhs); err != nil {
			return nil, heronerr.New(heronerr.KindUnsupportedOperation, "%v", err)
		}
		return rhs, nil
	default:
		return nil, heronerr.New(heronerr.KindNotAssignable, "not an assignable expression")
	}
}

func (e *Evaluator) evalFieldAccess(m *vm.VM, n *ast.FieldAccess) (value.Value, error) {
	recv, err := e.Eval(m, n.Receiver)
	if err != nil {
		return nil, err
	}
	if _, isNull := recv.(value.Null); isNull {
		return nil, heronerr.New(heronerr.KindNullDereference, "null dereference accessing field %s on `%s`", n.FieldName, n.Receiver.Text())
	}
	fa, ok := recv.(value.FieldAccessor)
	if !ok {
		return nil, heronerr.New(heronerr.KindUnsupportedOperation, "value has no fields or methods")
	}
	v, ok := fa.GetField(n.FieldName)
	if !ok {
		return nil, heronerr.New(heronerr.KindNoSuchField, "no such field or method: %s", n.FieldName)
	}
	return v, nil
}

func (e *Evaluator) evalIndex(m *vm.VM, n *ast.Index) (value.Value, error) {
	coll, err := e.Eval(m, n.Collection)
	if err != nil {
		return nil, err
	}
	idx, err := e.Eval(m, n.Idx)
	if err != nil {
		return nil, err
	}
	ix, ok := coll.(value.Indexable)
	if !ok {
		return nil, heronerr.New(heronerr.KindUnsupportedOperation, "value does not support indexing")
	}
	v, err := ix.GetIndex(idx)
	if err != nil {
		return nil, heronerr.New(heronerr.KindUnsupportedOperation, "%v", err)
	}
	return v, nil
}

// evalNew implements spec §4.2 New: look up the type name, fail
// NotAType if it isn't one, then instantiate it. Class construction
// initializes the field map and, if the class declares an "init"
// method, applies it against the fresh instance.
func (e *Evaluator) evalNew(m *vm.VM, n *ast.New) (value.Value, error) {
	d, ok := m.Arena().Lookup(n.TypeName)
	if !ok {
		return nil, heronerr.New(heronerr.KindNotAType, "not a type: %s", n.TypeName)
	}
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.Eval(m, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	switch d.Kind {
	case descriptor.KindClass:
		defaults := make(map[string]value.Value, len(d.Fields))
		for _, name := range d.Fields {
			defaults[name] = value.Null{}
		}
		inst := value.NewClassInstance(d, defaults)
		if ctor, ok := d.Methods["init"]; ok {
			if _, err := e.Apply(m, ctor.Bind(inst), args); err != nil {
				return nil, err
			}
		}
		return inst, nil
	case descriptor.KindModule:
		return value.NewModuleInstance(d, d.Exports), nil
	default:
		return nil, heronerr.New(heronerr.KindNotAType, "%s is not instantiable", n.TypeName)
	}
}

func (e *Evaluator) evalCall(m *vm.VM, n *ast.Call) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.Eval(m, a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	callee, err := e.Eval(m, n.Callee)
	if err != nil {
		return nil, err
	}
	fn, ok := callee.(*value.Function)
	if !ok {
		return nil, heronerr.New(heronerr.KindNotCallable, "value is not callable")
	}
	return e.Apply(m, fn, args)
}

// Apply implements spec §4.2 Call's application semantics for Function
// values: push a new frame bound to the receiver, push the captured
// free-variable scope below a fresh parameter/local scope, run the
// body, pop the frame, and return whatever the body left in
// vm.TakeReturn, else Void. Matches the teacher's ApplyFunction being a
// method on the evaluator rather than a capability on every Value
// (funvibe-funxy/internal/evaluator/apply.go) — see DESIGN.md.
func (e *Evaluator) Apply(m *vm.VM, fn *value.Function, args []value.Value) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return nil, heronerr.New(heronerr.KindArityMismatch, "expected %d arguments, got %d", len(fn.Params), len(args))
	}
	frame := vm.NewFrame(fn.Name, fn, fn.Receiver, m.Current().Module)
	release := m.PushFrame(frame)
	defer release()
	for i, p := range fn.Params {
		frame.Top().Declare(p.Name, args[i])
	}
	if fn.Body == nil {
		return value.Void{}, nil
	}
	if e.Statements == nil {
		return nil, heronerr.New(heronerr.KindInternalInvariantViolation, "no statement executor configured")
	}
	if err := e.Statements.Exec(e, m, fn.Body); err != nil {
		return nil, heronerr.WithStack(err, m.CallStack())
	}
	if ret, ok := m.TakeReturn(); ok {
		return ret, nil
	}
	return value.Void{}, nil
}

func (e *Evaluator) evalUnary(m *vm.VM, n *ast.UnaryOp) (value.Value, error) {
	operand, err := e.Eval(m, n.Operand)
	if err != nil {
		return nil, err
	}
	switch n.Op {
	case ast.OpNeg:
		switch v := operand.(type) {
		case value.Int:
			return value.Int{V: -v.V}, nil
		case value.Float:
			return value.Float{V: -v.V}, nil
		}
	case ast.OpBitNot:
		if v, ok := operand.(value.Int); ok {
			return value.Int{V: ^v.V}, nil
		}
	case ast.OpNot:
		if v, ok := operand.(value.Bool); ok {
			return value.Bool{V: !v.V}, nil
		}
	}
	return nil, heronerr.New(heronerr.KindUnsupportedOperation, "unsupported unary operator %s for %s", n.Op, operand.Kind())
}

// evalPostIncrement implements spec §4.1/§4.2 PostIncrement: read the
// target, store target+1, yield the original value.
func (e *Evaluator) evalPostIncrement(m *vm.VM, n *ast.PostIncrement) (value.Value, error) {
	old, err := e.Eval(m, n.Target)
	if err != nil {
		return nil, err
	}
	incremented, err := e.addOne(old)
	if err != nil {
		return nil, err
	}
	if _, err := e.assignTo(m, n.Target, incremented); err != nil {
		return nil, err
	}
	return old, nil
}

func (e *Evaluator) addOne(v value.Value) (value.Value, error) {
	switch n := v.(type) {
	case value.Int:
		return value.Int{V: n.V + 1}, nil
	case value.Float:
		return value.Float{V: n.V + 1}, nil
	default:
		return nil, heronerr.New(heronerr.KindUnsupportedOperation, "++ requires a numeric operand")
	}
}

func (e *Evaluator) evalTuple(m *vm.VM, n *ast.TupleExpr) (value.Value, error) {
	items := make([]value.Value, len(n.Elements))
	for i, el := range n.Elements {
		v, err := e.Eval(m, el)
		if err != nil {
			return nil, err
		}
		items[i] = v
	}
	return value.NewList(items), nil
}

// evalAnonFunction implements spec §4.2 AnonFunction: static
// free-variable analysis over the body, then a snapshot capture of each
// free name currently bound in the enclosing VM environment (spec §8
// "snapshot semantics" — mutating the source variable afterward must
// not be observed inside the closure).
func (e *Evaluator) evalAnonFunction(m *vm.VM, n *ast.AnonFunction) (value.Value, error) {
	free := FreeVariables(n)
	captured := make(map[string]value.Value, len(free))
	for _, name := range free {
		if v, ok := m.Current().Lookup(name); ok {
			captured[name] = v
		}
		// Names not bound in the enclosing environment are left to be
		// resolved at call time against module/global scope (spec §4.2).
	}
	return &value.Function{
		Params:     n.Params,
		ReturnType: n.ReturnType,
		Body:       n.Body,
		Free:       captured,
	}, nil
}
