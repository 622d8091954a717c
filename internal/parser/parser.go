// Package parser specifies the grammar/lexer collaborator spec §6 treats
// as external: something that turns Heron source text into the
// Expression variants internal/ast declares, and a source file into a
// Module of declarations. No lexer or grammar lives in this repository
// (spec §1 "Deliberately OUT OF SCOPE ... lexing and grammar parsing");
// Parser is the seam a real one plugs into, and Stub is this
// repository's own test double for exercising that seam without one.
package parser

import "github.com/heron-lang/heron/internal/ast"

// Parser is the external collaborator spec §6 names: parse_expression
// and parse_file.
type Parser interface {
	ParseExpression(text string) (ast.Expression, error)
	ParseFile(path string) (*Module, error)
}
