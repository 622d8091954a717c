package ast

import (
	"strconv"
	"strings"
)

// Block is the opaque statement-sequence type carried by AnonFunction
// bodies. Statement parsing, sequencing and the return-flag/scope-push
// semantics they observe are an external collaborator (spec §1); this
// package only needs a handle a parser can produce and an executor can
// consume. See internal/evaluator.StatementExecutor.
type Block interface {
	Pos() Position
}

// NullExpr is the literal null/nil expression.
type NullExpr struct {
	At Position
}

func (n *NullExpr) Pos() Position            { return n.At }
func (n *NullExpr) Text() string             { return "null" }
func (n *NullExpr) SubExpressions() []Expression { return nil }
func (n *NullExpr) exprNode()                {}

// LiteralKind distinguishes the primitive kinds a Literal can carry.
type LiteralKind int

const (
	LitInt LiteralKind = iota
	LitFloat
	LitBool
	LitChar
	LitString
)

// Literal carries an immutable primitive value produced directly by the
// parser (spec §4.1: "carries an immutable Value of one of the
// primitive variants"). Kept as a tagged Go value here rather than a
// dependency on internal/value to avoid an import cycle (value.Function
// embeds ast.Block); the evaluator lifts it into a value.Value.
type Literal struct {
	At   Position
	Kind LiteralKind
	Int  int64
	Flt  float64
	Bool bool
	Char rune
	Str  string
}

func (l *Literal) Pos() Position { return l.At }
func (l *Literal) Text() string {
	switch l.Kind {
	case LitInt:
		return strconv.FormatInt(l.Int, 10)
	case LitFloat:
		return strconv.FormatFloat(l.Flt, 'g', -1, 64)
	case LitBool:
		if l.Bool {
			return "true"
		}
		return "false"
	case LitChar:
		return "'" + string(l.Char) + "'"
	case LitString:
		return `"` + l.Str + `"`
	default:
		return "<literal>"
	}
}
func (l *Literal) SubExpressions() []Expression { return nil }
func (l *Literal) exprNode()                    {}

// Name references an identifier in the current lookup chain (spec §4.2).
type Name struct {
	At    Position
	Ident string
}

func (n *Name) Pos() Position                { return n.At }
func (n *Name) Text() string                 { return n.Ident }
func (n *Name) SubExpressions() []Expression { return nil }
func (n *Name) exprNode()                    {}

// Assignment binds the value of Rhs into Lhs, which must be a Name,
// FieldAccess, or Index expression (spec §4.2).
type Assignment struct {
	At  Position
	Lhs Expression
	Rhs Expression
}

func (a *Assignment) Pos() Position { return a.At }
func (a *Assignment) Text() string  { return a.Lhs.Text() + " = " + a.Rhs.Text() }
func (a *Assignment) SubExpressions() []Expression {
	return []Expression{a.Lhs, a.Rhs}
}
func (a *Assignment) exprNode() {}

// FieldAccess reads a field or bound method off Receiver.
type FieldAccess struct {
	At        Position
	Receiver  Expression
	FieldName string
}

func (f *FieldAccess) Pos() Position { return f.At }
func (f *FieldAccess) Text() string  { return f.Receiver.Text() + "." + f.FieldName }
func (f *FieldAccess) SubExpressions() []Expression {
	return []Expression{f.Receiver}
}
func (f *FieldAccess) exprNode() {}

// Index reads Collection at position Idx.
type Index struct {
	At         Position
	Collection Expression
	Idx        Expression
}

func (ix *Index) Pos() Position { return ix.At }
func (ix *Index) Text() string  { return ix.Collection.Text() + "[" + ix.Idx.Text() + "]" }
func (ix *Index) SubExpressions() []Expression {
	return []Expression{ix.Collection, ix.Idx}
}
func (ix *Index) exprNode() {}

// New instantiates TypeName with Args (spec §4.2).
type New struct {
	At       Position
	TypeName string
	Args     []Expression
}

func (n *New) Pos() Position { return n.At }
func (n *New) Text() string  { return "new " + n.TypeName + "(" + joinText(n.Args) + ")" }
func (n *New) SubExpressions() []Expression {
	return append([]Expression{}, n.Args...)
}
func (n *New) exprNode() {}

// Call invokes Callee with Args, evaluated left to right before Callee
// (spec §4.2).
type Call struct {
	At     Position
	Callee Expression
	Args   []Expression
}

func (c *Call) Pos() Position { return c.At }
func (c *Call) Text() string  { return c.Callee.Text() + "(" + joinText(c.Args) + ")" }
func (c *Call) SubExpressions() []Expression {
	return append([]Expression{c.Callee}, c.Args...)
}
func (c *Call) exprNode() {}

// UnaryOp applies Op to Operand.
type UnaryOp struct {
	At      Position
	Op      UnaryOperator
	Operand Expression
}

func (u *UnaryOp) Pos() Position { return u.At }
func (u *UnaryOp) Text() string  { return string(u.Op) + u.Operand.Text() }
func (u *UnaryOp) SubExpressions() []Expression {
	return []Expression{u.Operand}
}
func (u *UnaryOp) exprNode() {}

// BinaryOp applies Op to Left and Right per the dispatch matrix in
// spec §4.2.
type BinaryOp struct {
	At    Position
	Op    BinaryOperator
	Left  Expression
	Right Expression
}

func (b *BinaryOp) Pos() Position { return b.At }
func (b *BinaryOp) Text() string  { return b.Left.Text() + " " + string(b.Op) + " " + b.Right.Text() }
func (b *BinaryOp) SubExpressions() []Expression {
	return []Expression{b.Left, b.Right}
}
func (b *BinaryOp) exprNode() {}

// Param is a formal parameter of an AnonFunction.
type Param struct {
	Name string
}

// AnonFunction evaluates to a Function value with captured free
// variables (spec §4.2).
type AnonFunction struct {
	At         Position
	Params     []Param
	ReturnType string // descriptor only; type checking is out of scope
	Body       Block
}

func (a *AnonFunction) Pos() Position { return a.At }
func (a *AnonFunction) Text() string {
	names := make([]string, len(a.Params))
	for i, p := range a.Params {
		names[i] = p.Name
	}
	return "fn(" + strings.Join(names, ", ") + ") { ... }"
}
func (a *AnonFunction) SubExpressions() []Expression { return nil }
func (a *AnonFunction) exprNode()                    {}

// PostIncrement desugars to read(old); target := target + 1; yield old
// (spec §4.1).
type PostIncrement struct {
	At     Position
	Target Expression
}

func (p *PostIncrement) Pos() Position { return p.At }
func (p *PostIncrement) Text() string  { return p.Target.Text() + "++" }
func (p *PostIncrement) SubExpressions() []Expression {
	return []Expression{p.Target}
}
func (p *PostIncrement) exprNode() {}

// TupleExpr evaluates to a List value built from Elements. Its
// SubExpressions correctly yields the contained expressions; the
// teacher's equivalent ("unimplemented" in spec §4.1/§9) is a
// documented bug this implementation fixes.
type TupleExpr struct {
	At       Position
	Elements []Expression
}

func (t *TupleExpr) Pos() Position { return t.At }
func (t *TupleExpr) Text() string  { return "(" + joinText(t.Elements) + ")" }
func (t *TupleExpr) SubExpressions() []Expression {
	return append([]Expression{}, t.Elements...)
}
func (t *TupleExpr) exprNode() {}

func joinText(exprs []Expression) string {
	parts := make([]string, len(exprs))
	for i, e := range exprs {
		parts[i] = e.Text()
	}
	return strings.Join(parts, ", ")
}
