package heron

import (
	"github.com/heron-lang/heron/internal/descriptor"
	"github.com/heron-lang/heron/internal/heronerr"
	"github.com/heron-lang/heron/internal/parser"
	"github.com/heron-lang/heron/internal/value"
)

// RunFile implements spec §6's run_file(path): load the module at path,
// recursively load every module it imports (failing
// CircularModuleDependency on a cycle, ModuleNotFound when an import
// can't be resolved), resolve every declared class/interface/enum/
// module into the descriptor arena via the two-pass declare-then-wire
// scheme (spec §9), instantiate the root module, invoke its Meta method
// if present, then its Main — failing NoEntryPoint if Main is absent.
func (in *Interpreter) RunFile(path string) (value.Value, error) {
	if in.Parser == nil {
		return nil, heronerr.New(heronerr.KindInternalInvariantViolation, "no parser configured")
	}

	order, byPath, err := in.loadGraph(path)
	if err != nil {
		return nil, err
	}

	handles, err := in.declareAll(order, byPath)
	if err != nil {
		return nil, err
	}
	if err := in.wireAll(order, byPath, handles); err != nil {
		return nil, err
	}

	root := byPath[path]
	rootHandle := handles[root].module
	rootDesc := in.arena.Get(rootHandle)
	instance := value.NewModuleInstance(rootDesc, rootDesc.Exports)

	if meta, ok := rootDesc.Exports["Meta"].(*value.Function); ok {
		if _, err := in.eval.Apply(in.vm, meta.Bind(instance), nil); err != nil {
			return nil, err
		}
	}

	mainFn, ok := rootDesc.Exports["Main"].(*value.Function)
	if !ok {
		return nil, heronerr.New(heronerr.KindNoEntryPoint, "module %s has no Main function", root.Name)
	}
	return in.eval.Apply(in.vm, mainFn.Bind(instance), nil)
}

// loadGraph performs a depth-first load of path and everything it
// imports (by name, through in.Resolver), returning modules in
// dependency-first order (a module appears only after everything it
// imports) alongside a path -> *parser.Module index.
func (in *Interpreter) loadGraph(path string) ([]*parser.Module, map[string]*parser.Module, error) {
	byPath := make(map[string]*parser.Module)
	var order []*parser.Module
	processing := make(map[string]bool)

	var visit func(p string) error
	visit = func(p string) error {
		if _, done := byPath[p]; done {
			return nil
		}
		if processing[p] {
			return heronerr.New(heronerr.KindCircularModuleDependency, "circular module dependency involving %s", p)
		}
		processing[p] = true
		defer delete(processing, p)

		mod, err := in.Parser.ParseFile(p)
		if err != nil {
			return heronerr.New(heronerr.KindParseError, "%v", err)
		}
		byPath[p] = mod

		for _, name := range mod.Imports {
			depPath, ok := "", false
			if in.Resolver != nil {
				depPath, ok = in.Resolver.Resolve(name)
			}
			if !ok {
				return heronerr.New(heronerr.KindModuleNotFound, "module not found: %s", name)
			}
			if err := visit(depPath); err != nil {
				return err
			}
		}
		order = append(order, mod)
		return nil
	}

	if err := visit(path); err != nil {
		return nil, nil, err
	}
	return order, byPath, nil
}

// moduleHandles indexes the arena handles a single parser.Module
// contributed, keyed by declaration kind and name, plus its own
// enclosing module descriptor's handle.
type moduleHandles struct {
	module     descriptor.Handle
	classes    map[string]descriptor.Handle
	interfaces map[string]descriptor.Handle
	enums      map[string]descriptor.Handle
}

// declareAll runs the first pass of spec §9's two-pass scheme: every
// class, interface, enum and module descriptor is declared (given a
// stable Handle) before any of them is wired, so forward and circular
// references between modules resolve correctly.
func (in *Interpreter) declareAll(order []*parser.Module, byPath map[string]*parser.Module) (map[*parser.Module]*moduleHandles, error) {
	out := make(map[*parser.Module]*moduleHandles, len(order))
	for _, mod := range order {
		mh := &moduleHandles{
			classes:    make(map[string]descriptor.Handle, len(mod.Classes)),
			interfaces: make(map[string]descriptor.Handle, len(mod.Interfaces)),
			enums:      make(map[string]descriptor.Handle, len(mod.Enums)),
		}
		for _, c := range mod.Classes {
			mh.classes[c.Name] = in.arena.Declare(descriptor.KindClass, c.Name)
		}
		for _, f := range mod.Interfaces {
			mh.interfaces[f.Name] = in.arena.Declare(descriptor.KindInterface, f.Name)
		}
		for _, en := range mod.Enums {
			mh.enums[en.Name] = in.arena.Declare(descriptor.KindEnum, en.Name)
		}
		mh.module = in.arena.Declare(descriptor.KindModule, mod.Name)
		out[mod] = mh
	}
	return out, nil
}

// wireAll runs the second pass: fill in each descriptor's method table,
// field list, enum members and interface supertypes now that every
// descriptor referenced anywhere in the program has a live Handle.
func (in *Interpreter) wireAll(order []*parser.Module, byPath map[string]*parser.Module, handles map[*parser.Module]*moduleHandles) error {
	for _, mod := range order {
		mh := handles[mod]

		for _, c := range mod.Classes {
			c := c
			var wireErr error
			in.arena.Wire(mh.classes[c.Name], func(d *descriptor.Descriptor) {
				d.Fields = append([]string(nil), c.Fields...)
				d.Methods = make(descriptor.MethodTable, len(c.Methods))
				for name, fn := range c.Methods {
					d.Methods[name] = &value.Function{
						Name:       name,
						Params:     fn.Params,
						ReturnType: fn.ReturnType,
						Body:       fn.Body,
					}
				}
				for _, ifaceName := range c.Implements {
					ifaceDesc, ok := in.arena.Lookup(ifaceName)
					if !ok {
						wireErr = heronerr.New(heronerr.KindNotAType, "not a type: %s", ifaceName)
						return
					}
					d.Implements = append(d.Implements, ifaceDesc.Handle)
				}
			})
			if wireErr != nil {
				return wireErr
			}
		}

		for _, f := range mod.Interfaces {
			f := f
			in.arena.Wire(mh.interfaces[f.Name], func(d *descriptor.Descriptor) {
				d.Methods = make(descriptor.MethodTable, len(f.Methods))
				for _, name := range f.Methods {
					d.Methods[name] = nil
				}
			})
		}

		for _, en := range mod.Enums {
			en := en
			in.arena.Wire(mh.enums[en.Name], func(d *descriptor.Descriptor) {
				d.Members = append([]string(nil), en.Members...)
			})
		}

		in.arena.Wire(mh.module, func(d *descriptor.Descriptor) {
			d.Exports = make(map[string]value.Value, len(mod.Functions))
			for _, fd := range mod.Functions {
				d.Exports[fd.Name] = &value.Function{
					Name:       fd.Name,
					Params:     fd.Fn.Params,
					ReturnType: fd.Fn.ReturnType,
					Body:       fd.Fn.Body,
				}
			}
		})
	}
	return nil
}
