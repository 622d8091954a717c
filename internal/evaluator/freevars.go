package evaluator

import "github.com/heron-lang/heron/internal/ast"

// identifierSource is implemented by a Block that can report every
// identifier name its statements reference, letting free-variable
// analysis (spec §4.2 AnonFunction) see past the expression/statement
// boundary without this package depending on the (out-of-scope)
// statement AST. ExprBody implements it for the single-expression
// bodies this repository ships; a full statement-block implementation
// plugged in externally should do the same.
type identifierSource interface {
	IdentifierUses() []string
	Locals() []string
}

// FreeVariables computes the free-variable set of an AnonFunction: every
// identifier its body references that is bound neither as a formal
// parameter nor as a local declaration within the body (spec §4.1
// GLOSSARY "Free variable", §4.2 AnonFunction).
func FreeVariables(fn *ast.AnonFunction) []string {
	bound := make(map[string]bool, len(fn.Params))
	for _, p := range fn.Params {
		bound[p.Name] = true
	}
	src, ok := fn.Body.(identifierSource)
	if !ok {
		return nil
	}
	for _, l := range src.Locals() {
		bound[l] = true
	}
	seen := make(map[string]bool)
	var free []string
	for _, name := range src.IdentifierUses() {
		if bound[name] || seen[name] {
			continue
		}
		seen[name] = true
		free = append(free, name)
	}
	return free
}

// namesIn walks an expression tree (via SubExpressions) collecting every
// ast.Name it finds, used by ExprBody's IdentifierUses implementation
// and reusable by any other Block implementation built on a bare
// Expression.
func namesIn(expr ast.Expression) []string {
	var out []string
	var walk func(ast.Expression)
	walk = func(e ast.Expression) {
		if e == nil {
			return
		}
		if n, ok := e.(*ast.Name); ok {
			out = append(out, n.Ident)
		}
		for _, sub := range e.SubExpressions() {
			walk(sub)
		}
	}
	walk(expr)
	return out
}
