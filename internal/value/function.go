package value

import "github.com/heron-lang/heron/internal/ast"

// Function is a callable closure (spec §3): an optional bound receiver,
// its formal parameters, a return-type descriptor (display only — type
// checking is out of scope), its body, and a captured free-variable map
// snapshotting the enclosing bindings at the moment the closure was
// constructed (spec §4.2 AnonFunction, §8 "snapshot semantics").
type Function struct {
	Name       string
	Receiver   Value // nil if unbound
	Params     []ast.Param
	ReturnType string
	Body       ast.Block
	// Free holds the closure's captured free-variable scope: a
	// read-only snapshot taken at construction time, looked up below the
	// function's own parameter/local scopes (spec §3 Frame).
	Free map[string]Value
}

func (f *Function) Kind() Kind      { return KindFunction }
func (f *Function) Inspect() string {
	if f.Name != "" {
		return "fn " + f.Name
	}
	return "fn(...)"
}
func (f *Function) Equals(other Value) bool { return f == other }

// Bind returns a copy of f bound to receiver, used when FieldAccess
// resolves a method: "methods return as bound callables carrying the
// receiver" (spec §4.2).
func (f *Function) Bind(receiver Value) *Function {
	bound := *f
	bound.Receiver = receiver
	return &bound
}

// ClassInstance is an object of a user-declared class. Identity is
// object identity (spec §3): two ClassInstances are equal only if they
// are the same pointer.
type ClassInstance struct {
	Descriptor TypeDescriptor
	fields     map[string]Value
}

// NewClassInstance constructs an instance with an independent field map.
func NewClassInstance(desc TypeDescriptor, fields map[string]Value) *ClassInstance {
	cp := make(map[string]Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return &ClassInstance{Descriptor: desc, fields: cp}
}

func (c *ClassInstance) Kind() Kind      { return KindClass }
func (c *ClassInstance) Inspect() string { return c.Descriptor.DescriptorName() + "{...}" }
func (c *ClassInstance) Equals(other Value) bool {
	o, ok := other.(*ClassInstance)
	return ok && c == o
}

func (c *ClassInstance) GetField(name string) (Value, bool) {
	v, ok := c.fields[name]
	return v, ok
}

// SetField sets the field if it already exists, else adds it. The
// teacher's equivalent (AddOrSetFieldValue) both sets and then
// unconditionally adds, which double-writes; spec §9 calls this a bug
// and directs "set if exists, else add", which is what this does.
func (c *ClassInstance) SetField(name string, v Value) bool {
	c.fields[name] = v
	return true
}

// Fields returns a snapshot copy of the instance's field map.
func (c *ClassInstance) Fields() map[string]Value {
	cp := make(map[string]Value, len(c.fields))
	for k, v := range c.fields {
		cp[k] = v
	}
	return cp
}

// InterfaceInstance wraps a ClassInstance behind an interface's method
// set (spec §3). Equality is identity equality of the underlying
// instance (spec §4.2).
type InterfaceInstance struct {
	Descriptor TypeDescriptor
	Underlying *ClassInstance
	// Dispatch maps interface method name -> the underlying class's
	// implementing Function, resolved once at `as`-cast time.
	Dispatch map[string]*Function
}

func (i *InterfaceInstance) Kind() Kind      { return KindInterface }
func (i *InterfaceInstance) Inspect() string { return i.Descriptor.DescriptorName() + "(" + i.Underlying.Inspect() + ")" }
func (i *InterfaceInstance) Equals(other Value) bool {
	o, ok := other.(*InterfaceInstance)
	return ok && i.Underlying == o.Underlying
}

func (i *InterfaceInstance) GetField(name string) (Value, bool) {
	if fn, ok := i.Dispatch[name]; ok {
		return fn.Bind(i.Underlying), true
	}
	return nil, false
}

func (i *InterfaceInstance) SetField(name string, v Value) bool {
	return i.Underlying.SetField(name, v)
}

// ModuleInstance is a module's runtime field map (spec §3): top-level
// bindings and a reference to its descriptor.
type ModuleInstance struct {
	Descriptor TypeDescriptor
	fields     map[string]Value
}

// NewModuleInstance constructs a module instance owning its field map.
func NewModuleInstance(desc TypeDescriptor, fields map[string]Value) *ModuleInstance {
	cp := make(map[string]Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return &ModuleInstance{Descriptor: desc, fields: cp}
}

func (m *ModuleInstance) Kind() Kind      { return KindModule }
func (m *ModuleInstance) Inspect() string { return "module " + m.Descriptor.DescriptorName() }
func (m *ModuleInstance) Equals(other Value) bool {
	o, ok := other.(*ModuleInstance)
	return ok && m == o
}

func (m *ModuleInstance) GetField(name string) (Value, bool) {
	v, ok := m.fields[name]
	return v, ok
}

func (m *ModuleInstance) SetField(name string, v Value) bool {
	m.fields[name] = v
	return true
}

// EnumInstance identifies one member of an enum descriptor. Identity is
// (descriptor, member-name) equality (spec §3, §4.2).
type EnumInstance struct {
	Descriptor TypeDescriptor
	Member     string
}

func (e EnumInstance) Kind() Kind      { return KindEnum }
func (e EnumInstance) Inspect() string { return e.Descriptor.DescriptorName() + "." + e.Member }
func (e EnumInstance) Equals(other Value) bool {
	o, ok := other.(EnumInstance)
	return ok && e.Descriptor == o.Descriptor && e.Member == o.Member
}

// TypeValue wraps a TypeDescriptor as a first-class value usable in
// `is` / `as` / `new` (spec §3).
type TypeValue struct {
	Descriptor TypeDescriptor
}

func (t TypeValue) Kind() Kind      { return KindType }
func (t TypeValue) Inspect() string { return "Type(" + t.Descriptor.DescriptorName() + ")" }
func (t TypeValue) Equals(other Value) bool {
	o, ok := other.(TypeValue)
	return ok && t.Descriptor == o.Descriptor
}
