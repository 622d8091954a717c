// Package descriptor implements Heron's type descriptors (spec §4.4):
// classes, interfaces, enums and modules, resolved in the two-pass
// declare-then-wire scheme spec §9 prescribes for cyclic module/class
// references — grounded on funvibe-funxy/internal/symbols's own
// declare-before-resolve symbol table construction.
package descriptor

import "github.com/heron-lang/heron/internal/value"

// Handle is a stable, arena-relative identifier for a descriptor. Using
// a handle instead of a direct Go pointer during the declare pass lets
// two descriptors reference each other before either's fields are fully
// populated (spec §9: "store inter-descriptor links by stable
// identifier (arena + index) rather than direct owning references").
type Handle int

// Kind distinguishes the four descriptor shapes.
type Kind int

const (
	KindClass Kind = iota
	KindInterface
	KindEnum
	KindModule
)

// MethodTable maps a method name to its implementing Function.
type MethodTable map[string]*value.Function

// Descriptor is the common shape of every entry in an Arena.
type Descriptor struct {
	Handle     Handle
	Kind       Kind
	Name       string
	Methods    MethodTable
	Fields     []string          // declared field names, classes only
	Implements []Handle          // interfaces this class implements
	Members    []string          // ordered enum member names, enums only
	Exports    map[string]value.Value // module-level bindings, modules only

	wired bool
}

// DescriptorName implements value.TypeDescriptor.
func (d *Descriptor) DescriptorName() string { return d.Name }

// IsCompatible implements value.TypeDescriptor: whether v's runtime type
// is this descriptor, or — for interfaces — whether v's underlying class
// implements it.
func (d *Descriptor) IsCompatible(v value.Value) bool {
	v = value.Unwrap(v)
	switch d.Kind {
	case KindClass:
		ci, ok := v.(*value.ClassInstance)
		return ok && ci.Descriptor == value.TypeDescriptor(d)
	case KindInterface:
		if ii, ok := v.(*value.InterfaceInstance); ok {
			return ii.Descriptor == value.TypeDescriptor(d)
		}
		ci, ok := v.(*value.ClassInstance)
		if !ok {
			return false
		}
		cd, ok := ci.Descriptor.(*Descriptor)
		return ok && cd.implementsHandle(d.Handle)
	case KindEnum:
		ei, ok := v.(value.EnumInstance)
		return ok && ei.Descriptor == value.TypeDescriptor(d)
	case KindModule:
		mi, ok := v.(*value.ModuleInstance)
		return ok && mi.Descriptor == value.TypeDescriptor(d)
	}
	return false
}

func (d *Descriptor) implementsHandle(h Handle) bool {
	for _, impl := range d.Implements {
		if impl == h {
			return true
		}
	}
	return false
}

// Arena owns every descriptor created while resolving a program,
// addressed by Handle so classes and interfaces declared in different
// modules may reference each other regardless of declaration order.
type Arena struct {
	entries []*Descriptor
	byName  map[string]Handle
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{byName: make(map[string]Handle)}
}

// Declare creates an empty descriptor of the given kind and name and
// returns its handle. Call Wire once all descriptors referenced by this
// one have themselves been declared.
func (a *Arena) Declare(kind Kind, name string) Handle {
	h := Handle(len(a.entries))
	a.entries = append(a.entries, &Descriptor{Handle: h, Kind: kind, Name: name})
	a.byName[name] = h
	return h
}

// Get resolves a handle to its descriptor.
func (a *Arena) Get(h Handle) *Descriptor {
	if int(h) < 0 || int(h) >= len(a.entries) {
		return nil
	}
	return a.entries[h]
}

// Lookup resolves a descriptor by name, as used by the `New` expression
// and by Name resolution falling through to the module/global type
// table (spec §4.2).
func (a *Arena) Lookup(name string) (*Descriptor, bool) {
	h, ok := a.byName[name]
	if !ok {
		return nil, false
	}
	return a.Get(h), true
}

// Wire fills in a previously declared descriptor's method table, field
// list, enum members or supertype links. It is the second pass of the
// two-pass scheme: by the time Wire runs for any descriptor, every
// descriptor it might reference already has a live Handle.
func (a *Arena) Wire(h Handle, fn func(d *Descriptor)) {
	d := a.Get(h)
	if d == nil {
		return
	}
	fn(d)
	d.wired = true
}

// Wired reports whether every declared descriptor has been wired,
// letting callers detect a forgotten second pass before evaluation
// begins.
func (a *Arena) Wired() bool {
	for _, d := range a.entries {
		if !d.wired {
			return false
		}
	}
	return true
}
