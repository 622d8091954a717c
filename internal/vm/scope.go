package vm

import "github.com/heron-lang/heron/internal/value"

// Scope is an insertion-ordered name -> Value mapping for one lexical
// block (spec §3). Insertion order is preserved for Names() so that
// iteration (used by VM.Fork when copying a frame's scopes) is
// deterministic.
type Scope struct {
	order  []string
	values map[string]value.Value
}

// NewScope returns an empty scope.
func NewScope() *Scope {
	return &Scope{values: make(map[string]value.Value)}
}

// Declare creates a new binding. It fails if name is already present at
// this scope (spec §3).
func (s *Scope) Declare(name string, v value.Value) bool {
	if _, exists := s.values[name]; exists {
		return false
	}
	s.order = append(s.order, name)
	s.values[name] = v
	return true
}

// Lookup returns the binding for name, if present at this scope.
func (s *Scope) Lookup(name string) (value.Value, bool) {
	v, ok := s.values[name]
	return v, ok
}

// Mutate replaces an existing binding by name. It fails if name is
// absent at this scope (spec §3).
func (s *Scope) Mutate(name string, v value.Value) bool {
	if _, exists := s.values[name]; !exists {
		return false
	}
	s.values[name] = v
	return true
}

// Has reports whether name is bound at this scope.
func (s *Scope) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

// Names iterates bindings in declaration order.
func (s *Scope) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Snapshot returns a copy of every binding at this scope. Closure
// capture does not use it: evalAnonFunction looks up each free name
// through the enclosing frame instead.
func (s *Scope) Snapshot() map[string]value.Value {
	cp := make(map[string]value.Value, len(s.values))
	for k, v := range s.values {
		cp[k] = v
	}
	return cp
}
