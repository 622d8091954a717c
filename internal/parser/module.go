package parser

import "github.com/heron-lang/heron/internal/ast"

// Module is parse_file's result (spec §6): the class, interface, enum
// and top-level function declarations one source file contributes, plus
// the module names it imports. This is deliberately the minimal shape
// pkg/heron's program loader needs to populate a
// descriptor.Arena (spec §9's two-pass declare-then-wire scheme) — full
// surface-grammar concerns (visibility modifiers, generics, doc
// comments) are the parser's own business, not this core's.
type Module struct {
	Name       string
	Imports    []string
	Classes    []ClassDecl
	Interfaces []InterfaceDecl
	Enums      []EnumDecl
	Functions  []FunctionDecl
}

// ClassDecl declares a class: its field names, its methods (including,
// by convention, an "init" constructor if present), and the interface
// names it implements.
type ClassDecl struct {
	Name       string
	Fields     []string
	Methods    map[string]*ast.AnonFunction
	Implements []string
}

// InterfaceDecl declares an interface's method set.
type InterfaceDecl struct {
	Name    string
	Methods []string
}

// EnumDecl declares an enum's ordered member names.
type EnumDecl struct {
	Name    string
	Members []string
}

// FunctionDecl declares a top-level, module-scoped function.
type FunctionDecl struct {
	Name string
	Fn   *ast.AnonFunction
}
