package parser

import (
	"fmt"

	"github.com/heron-lang/heron/internal/ast"
)

// Stub is a Parser double for this repository's own tests: expressions
// and modules are registered ahead of time by the exact text/path a test
// will request, rather than produced by lexing and grammar rules this
// repository doesn't implement.
type Stub struct {
	Expressions map[string]ast.Expression
	Files       map[string]*Module
}

// NewStub returns an empty Stub.
func NewStub() *Stub {
	return &Stub{Expressions: make(map[string]ast.Expression), Files: make(map[string]*Module)}
}

func (s *Stub) ParseExpression(text string) (ast.Expression, error) {
	if e, ok := s.Expressions[text]; ok {
		return e, nil
	}
	return nil, fmt.Errorf("stub parser: no expression registered for %q", text)
}

func (s *Stub) ParseFile(path string) (*Module, error) {
	if m, ok := s.Files[path]; ok {
		return m, nil
	}
	return nil, fmt.Errorf("stub parser: no module registered for %q", path)
}
