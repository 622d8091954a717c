package evaluator

import (
	"testing"

	"github.com/heron-lang/heron/internal/ast"
	"github.com/heron-lang/heron/internal/value"
)

func intList(vals ...int64) *ast.TupleExpr {
	elems := make([]ast.Expression, len(vals))
	for i, v := range vals {
		elems[i] = intLit(v)
	}
	return &ast.TupleExpr{Elements: elems}
}

// TestSelectMapEachEndToEnd covers two of the concrete end-to-end
// scenarios: select(x from [1..5]) where x%2==0 -> [2,4] and
// mapeach(x in [1,2,3]) x*x -> [1,4,9].
func TestSelectMapEachEndToEnd(t *testing.T) {
	ev, m := newTestEvaluator()

	sel := &ast.Select{
		Var:    "x",
		Source: intList(1, 2, 3, 4, 5),
		Predicate: &ast.BinaryOp{
			Op:    ast.OpEq,
			Left:  &ast.BinaryOp{Op: ast.OpMod, Left: &ast.Name{Ident: "x"}, Right: intLit(2)},
			Right: intLit(0),
		},
	}
	got, err := ev.Eval(m, sel)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	want := value.NewList([]value.Value{value.Int{V: 2}, value.Int{V: 4}})
	if !got.Equals(want) {
		t.Errorf("select(x from [1..5]) where x%%2==0 = %v, want %v", got, want)
	}

	mapeach := &ast.MapEach{
		Var:    "x",
		Source: intList(1, 2, 3),
		Yield:  &ast.BinaryOp{Op: ast.OpMul, Left: &ast.Name{Ident: "x"}, Right: &ast.Name{Ident: "x"}},
	}
	got, err = ev.Eval(m, mapeach)
	if err != nil {
		t.Fatalf("mapeach: %v", err)
	}
	want = value.NewList([]value.Value{value.Int{V: 1}, value.Int{V: 4}, value.Int{V: 9}})
	if !got.Equals(want) {
		t.Errorf("mapeach(x in [1,2,3]) x*x = %v, want %v", got, want)
	}
}

func TestSelectPredicateMustBeBool(t *testing.T) {
	ev, m := newTestEvaluator()
	sel := &ast.Select{Var: "x", Source: intList(1), Predicate: intLit(0)}
	if _, err := ev.Eval(m, sel); err == nil {
		t.Fatal("select with a non-Bool predicate: want error, got nil")
	}
}

// TestScopeDepthRestoredAfterSelectFailure guards spec §8's scope
// lifecycle property on the failure path specifically.
func TestScopeDepthRestoredAfterSelectFailure(t *testing.T) {
	ev, m := newTestEvaluator()
	before := m.Current().Depth()

	sel := &ast.Select{Var: "x", Source: intList(1), Predicate: intLit(0)}
	if _, err := ev.Eval(m, sel); err == nil {
		t.Fatal("expected an error from a non-Bool predicate")
	}
	if m.Current().Depth() != before {
		t.Errorf("frame depth after failed select = %d, want %d", m.Current().Depth(), before)
	}
}

// TestAccumulateFoldLaw covers the third end-to-end scenario:
// accumulate (r=0 forall x in [1,2,3,4]) r+x -> Int(10), and confirms
// it matches a plain sequential left-fold.
func TestAccumulateFoldLaw(t *testing.T) {
	ev, m := newTestEvaluator()
	acc := &ast.Accumulate{
		AccName:  "r",
		Init:     intLit(0),
		EachName: "x",
		Source:   intList(1, 2, 3, 4),
		Step:     &ast.BinaryOp{Op: ast.OpAdd, Left: &ast.Name{Ident: "r"}, Right: &ast.Name{Ident: "x"}},
	}
	got, err := ev.Eval(m, acc)
	if err != nil {
		t.Fatalf("accumulate: %v", err)
	}
	if !got.Equals(value.Int{V: 10}) {
		t.Errorf("accumulate(r=0 forall x in [1,2,3,4]) r+x = %v, want Int(10)", got)
	}

	sum := int64(0)
	for _, x := range []int64{1, 2, 3, 4} {
		sum += x
	}
	if !got.Equals(value.Int{V: sum}) {
		t.Errorf("accumulate result %v does not match sequential left-fold %d", got, sum)
	}
}

func TestAccumulateEmptySourceYieldsInit(t *testing.T) {
	ev, m := newTestEvaluator()
	acc := &ast.Accumulate{
		AccName: "r", Init: intLit(42), EachName: "x",
		Source: intList(),
		Step:   &ast.BinaryOp{Op: ast.OpAdd, Left: &ast.Name{Ident: "r"}, Right: &ast.Name{Ident: "x"}},
	}
	got, err := ev.Eval(m, acc)
	if err != nil {
		t.Fatalf("accumulate over empty source: %v", err)
	}
	if !got.Equals(value.Int{V: 42}) {
		t.Errorf("accumulate over empty source = %v, want the init value Int(42)", got)
	}
}

func combineExpr() (*ast.Reduce, string, string) {
	return &ast.Reduce{
		AName: "a", BName: "b",
		Combine: &ast.BinaryOp{Op: ast.OpAdd, Left: &ast.Name{Ident: "a"}, Right: &ast.Name{Ident: "b"}},
	}, "a", "b"
}

// TestReduceEndToEnd covers the sixth end-to-end scenario:
// reduce (a,b in [1..8]) a+b -> Array[Int(36)].
func TestReduceEndToEnd(t *testing.T) {
	ev, m := newTestEvaluator()
	red, _, _ := combineExpr()
	red.Source = intList(1, 2, 3, 4, 5, 6, 7, 8)

	got, err := ev.Eval(m, red)
	if err != nil {
		t.Fatalf("reduce: %v", err)
	}
	arr, ok := got.(*value.Array)
	if !ok || arr.Len() != 1 {
		t.Fatalf("reduce(a,b in [1..8]) a+b = %v (%T), want a length-1 Array", got, got)
	}
	first, _ := arr.GetIndex(value.Int{V: 0})
	if !first.Equals(value.Int{V: 36}) {
		t.Errorf("reduce(a,b in [1..8]) a+b = %v, want Array[Int(36)]", first)
	}
}

func TestReduceEmptySourceYieldsEmptyList(t *testing.T) {
	ev, m := newTestEvaluator()
	red, _, _ := combineExpr()
	red.Source = intList()

	got, err := ev.Eval(m, red)
	if err != nil {
		t.Fatalf("reduce over empty source: %v", err)
	}
	lst, ok := got.(*value.List)
	if !ok || lst.Len() != 0 {
		t.Errorf("reduce over empty source = %v (%T), want an empty List", got, got)
	}
}

func TestReduceSingletonYieldsSingletonArray(t *testing.T) {
	ev, m := newTestEvaluator()
	red, _, _ := combineExpr()
	red.Source = intList(7)

	got, err := ev.Eval(m, red)
	if err != nil {
		t.Fatalf("reduce over a singleton source: %v", err)
	}
	arr, ok := got.(*value.Array)
	if !ok || arr.Len() != 1 {
		t.Fatalf("reduce over a singleton source = %v (%T), want a length-1 Array", got, got)
	}
	first, _ := arr.GetIndex(value.Int{V: 0})
	if !first.Equals(value.Int{V: 7}) {
		t.Errorf("reduce over [7] = %v, want Array[Int(7)]", first)
	}
}

// TestReduceResultIndependentOfPartitionCount confirms the associative
// combine's result does not depend on how many workers the source was
// split across (spec §4.3, §5).
func TestReduceResultIndependentOfPartitionCount(t *testing.T) {
	nums := []int64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	var want int64
	for _, n := range nums {
		want += n
	}

	for _, workers := range []int{1, 2, 3, 4, 5, 12} {
		ev := New(ExprExecutor{})
		ev.MaxParallel = workers
		_, m := newTestEvaluator()
		red, _, _ := combineExpr()
		red.Source = intList(nums...)

		got, err := ev.Eval(m, red)
		if err != nil {
			t.Fatalf("reduce with MaxParallel=%d: %v", workers, err)
		}
		arr := got.(*value.Array)
		first, _ := arr.GetIndex(value.Int{V: 0})
		if !first.Equals(value.Int{V: want}) {
			t.Errorf("reduce with MaxParallel=%d = %v, want Int(%d)", workers, first, want)
		}
	}
}
