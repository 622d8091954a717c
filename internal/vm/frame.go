package vm

import (
	"github.com/google/uuid"
	"github.com/heron-lang/heron/internal/descriptor"
	"github.com/heron-lang/heron/internal/value"
)

// Frame is an activation record (spec §3): the active function
// descriptor (nil for the top-level frame), the receiver (nil if none),
// the current module descriptor, and a stack of lexical Scopes,
// outermost first. A frame never inherits scopes from its caller — the
// caller's locals are invisible inside a called function.
type Frame struct {
	// ID is a unique identifier assigned to each frame; the frame built
	// by VM.Fork keeps its parent frame's ID. VM.CallStack does not
	// include it: a rendered call-stack summary lists frame names only.
	ID       uuid.UUID
	Name     string
	Function *value.Function
	Receiver value.Value
	Module   *descriptor.Descriptor
	scopes   []*Scope
	// closure is the function's captured free-variable scope (spec §3):
	// pushed as the innermost lookup source below the frame's own
	// parameter/local scopes, i.e. consulted only after every scope in
	// `scopes` has missed.
	closure map[string]value.Value
}

// NewFrame constructs a frame with one empty scope already pushed, since
// "Scope stack of the current frame is non-empty while statements
// execute" (spec §3 VM state invariants).
func NewFrame(name string, fn *value.Function, receiver value.Value, mod *descriptor.Descriptor) *Frame {
	f := &Frame{ID: uuid.New(), Name: name, Function: fn, Receiver: receiver, Module: mod}
	f.scopes = []*Scope{NewScope()}
	if fn != nil {
		f.closure = fn.Free
	}
	return f
}

// PushScope pushes a new innermost scope and returns a release func that
// pops it. The release func is idempotent-safe to call via defer on
// every exit path (spec §5 "scoped acquisition").
func (f *Frame) PushScope() func() {
	f.scopes = append(f.scopes, NewScope())
	depth := len(f.scopes)
	return func() {
		if len(f.scopes) == depth {
			f.scopes = f.scopes[:depth-1]
		}
	}
}

// Top returns the innermost scope.
func (f *Frame) Top() *Scope {
	return f.scopes[len(f.scopes)-1]
}

// Depth reports how many scopes are currently pushed, used by tests to
// assert the stack returns to its starting depth (spec §8).
func (f *Frame) Depth() int { return len(f.scopes) }

// Lookup resolves name through this frame only: innermost scope first,
// then outer scopes, then the captured closure scope (spec §4.2 Name).
// It does not consult module/global type tables — that is the VM's job,
// since a frame has no notion of "global".
func (f *Frame) Lookup(name string) (value.Value, bool) {
	for i := len(f.scopes) - 1; i >= 0; i-- {
		if v, ok := f.scopes[i].Lookup(name); ok {
			return v, true
		}
	}
	if f.closure != nil {
		if v, ok := f.closure[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Mutate replaces an existing binding by name in the nearest scope that
// has it. It does not write into the closure scope: captured free
// variables are a read-only snapshot (spec §4.2, §8 "snapshot
// semantics").
func (f *Frame) Mutate(name string, v value.Value) bool {
	for i := len(f.scopes) - 1; i >= 0; i-- {
		if f.scopes[i].Mutate(name, v) {
			return true
		}
	}
	return false
}

// HasVar reports whether name is bound anywhere in this frame's scope
// chain (not the closure scope).
func (f *Frame) HasVar(name string) bool {
	for i := len(f.scopes) - 1; i >= 0; i-- {
		if f.scopes[i].Has(name) {
			return true
		}
	}
	return false
}
