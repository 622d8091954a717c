package ast

// Select produces the sub-sequence of Source whose elements satisfy
// Predicate when bound to Var (spec §4.1, §4.3).
type Select struct {
	At        Position
	Var       string
	Source    Expression
	Predicate Expression
}

func (s *Select) Pos() Position { return s.At }
func (s *Select) Text() string {
	return "select (" + s.Var + " from " + s.Source.Text() + ") where " + s.Predicate.Text()
}
func (s *Select) SubExpressions() []Expression {
	return []Expression{s.Source, s.Predicate}
}
func (s *Select) exprNode() {}

// MapEach produces Yield(Var := x) for each x in Source, in source
// order (spec §4.1, §4.3).
type MapEach struct {
	At     Position
	Var    string
	Source Expression
	Yield  Expression
}

func (m *MapEach) Pos() Position { return m.At }
func (m *MapEach) Text() string {
	return "mapeach (" + m.Var + " in " + m.Source.Text() + ") " + m.Yield.Text()
}
func (m *MapEach) SubExpressions() []Expression {
	return []Expression{m.Source, m.Yield}
}
func (m *MapEach) exprNode() {}

// Accumulate folds Step over Source left to right starting from Init,
// binding AccName/EachName for each step (spec §4.1, §4.3).
type Accumulate struct {
	At       Position
	AccName  string
	Init     Expression
	EachName string
	Source   Expression
	Step     Expression
}

func (a *Accumulate) Pos() Position { return a.At }
func (a *Accumulate) Text() string {
	return "accumulate (" + a.AccName + " = " + a.Init.Text() + " forall " + a.EachName +
		" in " + a.Source.Text() + ") " + a.Step.Text()
}
func (a *Accumulate) SubExpressions() []Expression {
	return []Expression{a.Init, a.Source, a.Step}
}
func (a *Accumulate) exprNode() {}

// Reduce associatively folds Combine over Source using a partitioned
// parallel fold (spec §4.1, §4.3, §5). Combine MUST be associative in
// (AName, BName); the evaluator does not and cannot verify this.
type Reduce struct {
	At      Position
	AName   string
	BName   string
	Source  Expression
	Combine Expression
}

func (r *Reduce) Pos() Position { return r.At }
func (r *Reduce) Text() string {
	return "reduce (" + r.AName + ", " + r.BName + " in " + r.Source.Text() + ") " + r.Combine.Text()
}
func (r *Reduce) SubExpressions() []Expression {
	return []Expression{r.Source, r.Combine}
}
func (r *Reduce) exprNode() {}
