// Package vm implements Heron's evaluator-facing virtual machine (spec
// §3 "VM state", §4.2, §6): a stack of Frames, the return-value/
// returning flag pair statements observe, and the scoped-acquisition
// primitives that guarantee frame/scope release on every exit path
// (spec §5, §9). This is distinct from — and not to be confused with —
// a bytecode virtual machine; Heron's core is a tree-walking
// interpreter (spec §1), so there is no opcode/compiler subsystem here.
package vm

import (
	"github.com/heron-lang/heron/internal/descriptor"
	"github.com/heron-lang/heron/internal/heronerr"
	"github.com/heron-lang/heron/internal/value"
)

// Global is the process-wide module holding built-in types (spec §3
// "Program"). It is looked up as the last step of Name resolution
// (spec §4.2) and is shared, read-only once resolution completes.
type Global struct {
	Descriptor *descriptor.Descriptor
}

// VM holds one evaluating task's frame stack (spec §3). The zero value
// is not usable; construct with New.
type VM struct {
	frames  []*Frame
	global  *Global
	arena   *descriptor.Arena
	ret     value.Value
	returning bool
}

// New returns a VM with a single empty top frame, as the VM state
// invariant requires ("at least one empty top frame at all times").
func New(arena *descriptor.Arena, global *Global) *VM {
	v := &VM{arena: arena, global: global}
	v.frames = []*Frame{NewFrame("<top>", nil, nil, nil)}
	return v
}

// Arena exposes the shared descriptor arena for `is`/`as`/`new`.
func (v *VM) Arena() *descriptor.Arena { return v.arena }

// Current returns the active frame.
func (v *VM) Current() *Frame { return v.frames[len(v.frames)-1] }

// PushFrame activates a new frame and returns a release func that pops
// it. Application semantics for Function values push exactly one frame
// per call (spec §4.2 Call).
func (v *VM) PushFrame(f *Frame) func() {
	v.frames = append(v.frames, f)
	depth := len(v.frames)
	return func() {
		if len(v.frames) == depth {
			v.frames = v.frames[:depth-1]
		}
	}
}

// PushScope pushes a scope on the current frame; see Frame.PushScope.
func (v *VM) PushScope() func() { return v.Current().PushScope() }

// PopScope is the non-deferred counterpart to PushScope's release func,
// exposed for statement evaluators that manage their own scope lifetime
// explicitly rather than via defer (spec §6 hook list).
func (v *VM) PopScope(release func()) { release() }

// SetVar declares name in the current (innermost) scope.
func (v *VM) SetVar(name string, val value.Value) bool {
	return v.Current().Top().Declare(name, val)
}

// AddVar is an alias for SetVar matching spec §6's hook name.
func (v *VM) AddVar(name string, val value.Value) bool { return v.SetVar(name, val) }

// GetVar looks up name through the current frame only (no module/global
// fallback); see LookupName for the full chain.
func (v *VM) GetVar(name string) (value.Value, bool) {
	return v.Current().Lookup(name)
}

// HasVar reports whether name is bound anywhere in the current frame.
func (v *VM) HasVar(name string) bool { return v.Current().HasVar(name) }

// HasField reports whether the current frame's receiver has field name.
func (v *VM) HasField(name string) bool {
	recv := v.Current().Receiver
	fa, ok := recv.(value.FieldAccessor)
	if !ok {
		return false
	}
	_, ok = fa.GetField(name)
	return ok
}

// GetField reads field name off the current frame's receiver.
func (v *VM) GetField(name string) (value.Value, bool) {
	fa, ok := v.Current().Receiver.(value.FieldAccessor)
	if !ok {
		return nil, false
	}
	return fa.GetField(name)
}

// SetField writes field name on the current frame's receiver.
func (v *VM) SetField(name string, val value.Value) bool {
	fa, ok := v.Current().Receiver.(value.FieldAccessor)
	if !ok {
		return false
	}
	return fa.SetField(name, val)
}

// LookupName resolves an identifier through the full chain spec §4.2
// describes: innermost scope first, then outer scopes, then the frame's
// captured closure scope, then the module's type table, then the
// global module's type table.
func (v *VM) LookupName(name string) (value.Value, bool) {
	f := v.Current()
	if val, ok := f.Lookup(name); ok {
		return val, true
	}
	if f.Module != nil {
		if exp, ok := f.Module.Exports[name]; ok {
			return exp, true
		}
		if d, ok := v.arena.Lookup(name); ok && d.Name == name {
			return value.TypeValue{Descriptor: d}, true
		}
	}
	if v.global != nil && v.global.Descriptor != nil {
		if exp, ok := v.global.Descriptor.Exports[name]; ok {
			return exp, true
		}
	}
	return nil, false
}

// SetReturn records a return value and raises the returning flag
// (spec §3 VM state invariant, §6 hook "return_value").
func (v *VM) SetReturn(val value.Value) {
	v.ret = val
	v.returning = true
}

// TakeReturn consumes and clears the pending return value, if any
// (spec §6 hook "take_return").
func (v *VM) TakeReturn() (value.Value, bool) {
	if !v.returning {
		return nil, false
	}
	val := v.ret
	v.ret = nil
	v.returning = false
	return val, true
}

// ShouldExitScope reports whether a return is pending and the current
// statement block should stop executing and unwind (spec §6 hook
// "should_exit_scope").
func (v *VM) ShouldExitScope() bool { return v.returning }

// CallStack renders the current frame stack as a heronerr.Frame summary,
// innermost last, for attachment to a failing Error (spec §7).
func (v *VM) CallStack() []heronerr.Frame {
	out := make([]heronerr.Frame, 0, len(v.frames))
	for _, f := range v.frames {
		name := f.Name
		if name == "" {
			name = "<anonymous>"
		}
		out = append(out, heronerr.Frame{Name: name})
	}
	return out
}

// Fork constructs a disjoint VM sharing only the immutable Arena/Global,
// with a single frame holding a copy of the current frame's scope chain
// (and the same closure scope), for use by reduce's
// parallel workers (spec §4.3, §5, §9 "VM fork"). The fork's own return
// flag starts clear; mutating it never affects the parent.
func (v *VM) Fork() *VM {
	fork := &VM{arena: v.arena, global: v.global}
	parent := v.Current()
	snap := &Frame{
		ID:       parent.ID,
		Name:     parent.Name,
		Function: parent.Function,
		Receiver: parent.Receiver,
		Module:   parent.Module,
		closure:  parent.closure,
	}
	// Copy scopes by value snapshot: workers must never observe another
	// worker's writes, nor write back into the parent's live scopes
	// (spec §5 "Worker-private VM state must not observe another
	// worker's scopes").
	for _, s := range parent.scopes {
		cp := NewScope()
		for _, name := range s.Names() {
			val, _ := s.Lookup(name)
			cp.Declare(name, val)
		}
		snap.scopes = append(snap.scopes, cp)
	}
	fork.frames = []*Frame{snap}
	return fork
}
