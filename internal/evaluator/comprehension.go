package evaluator

import (
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/heron-lang/heron/internal/ast"
	"github.com/heron-lang/heron/internal/heronerr"
	"github.com/heron-lang/heron/internal/value"
	"github.com/heron-lang/heron/internal/vm"
)

// sourceItems extracts the element slice backing a comprehension Source.
// Select/MapEach/Accumulate/Reduce all require an indexable sequence
// (spec §4.3); List and Array are the only value kinds that are one, and
// nothing else in the taxonomy shares a named "sequence" interface worth
// introducing for this alone.
func sourceItems(v value.Value) ([]value.Value, error) {
	switch s := v.(type) {
	case *value.List:
		return s.Items(), nil
	case *value.Array:
		return s.Items(), nil
	default:
		return nil, heronerr.New(heronerr.KindUnsupportedOperation, "not a sequence: %s", v.Kind())
	}
}

// evalSelect implements spec §4.1/§4.3 Select: the sub-sequence of Source
// whose elements satisfy Predicate when bound to Var, in source order.
func (e *Evaluator) evalSelect(m *vm.VM, n *ast.Select) (value.Value, error) {
	src, err := e.Eval(m, n.Source)
	if err != nil {
		return nil, err
	}
	items, err := sourceItems(src)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, 0, len(items))
	for _, item := range items {
		keep, err := func() (value.Value, error) {
			release := m.PushScope()
			defer release()
			m.Current().Top().Declare(n.Var, item)
			return e.Eval(m, n.Predicate)
		}()
		if err != nil {
			return nil, err
		}
		b, ok := keep.(value.Bool)
		if !ok {
			return nil, heronerr.New(heronerr.KindTypeMismatch, "select predicate must evaluate to Bool")
		}
		if b.V {
			out = append(out, item)
		}
	}
	return value.NewList(out), nil
}

// evalMapEach implements spec §4.1/§4.3 MapEach: Yield(Var := x) for each
// x in Source, in source order.
func (e *Evaluator) evalMapEach(m *vm.VM, n *ast.MapEach) (value.Value, error) {
	src, err := e.Eval(m, n.Source)
	if err != nil {
		return nil, err
	}
	items, err := sourceItems(src)
	if err != nil {
		return nil, err
	}
	out := make([]value.Value, len(items))
	for i, item := range items {
		v, err := func() (value.Value, error) {
			release := m.PushScope()
			defer release()
			m.Current().Top().Declare(n.Var, item)
			return e.Eval(m, n.Yield)
		}()
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return value.NewList(out), nil
}

// evalAccumulate implements spec §4.1/§4.3 Accumulate: open one fresh
// scope binding AccName := Init and EachName := null, then for each x
// in Source in order set EachName := x and AccName := eval(Step); yield
// the final AccName. The scope is popped on every exit path, success or
// failure (spec §5 "scoped acquisition").
func (e *Evaluator) evalAccumulate(m *vm.VM, n *ast.Accumulate) (value.Value, error) {
	acc, err := e.Eval(m, n.Init)
	if err != nil {
		return nil, err
	}
	src, err := e.Eval(m, n.Source)
	if err != nil {
		return nil, err
	}
	items, err := sourceItems(src)
	if err != nil {
		return nil, err
	}

	release := m.PushScope()
	defer release()
	scope := m.Current().Top()
	scope.Declare(n.AccName, acc)
	scope.Declare(n.EachName, value.Null{})

	for _, item := range items {
		scope.Mutate(n.EachName, item)
		next, err := e.Eval(m, n.Step)
		if err != nil {
			return nil, err
		}
		scope.Mutate(n.AccName, next)
		acc = next
	}
	return acc, nil
}

// evalReduce implements spec §4.1/§4.3/§5 Reduce: Source is partitioned
// into contiguous chunks, each folded left to right by a worker running
// against its own forked VM (internal/vm.VM.Fork), and the per-worker
// partials are combined into a single result as workers finish, the
// merge serialized by a mutex rather than by a fixed join order — cross-
// chunk combination order is unspecified, which is exactly why Combine
// must be associative (spec §4.3 doc comment on ast.Reduce). A forked
// worker failing aborts the remaining workers and the first error wins,
// via golang.org/x/sync/errgroup (this repository's chosen worker-pool
// idiom — see DESIGN.md).
func (e *Evaluator) evalReduce(m *vm.VM, n *ast.Reduce) (value.Value, error) {
	src, err := e.Eval(m, n.Source)
	if err != nil {
		return nil, err
	}
	items, err := sourceItems(src)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return value.NewList(nil), nil
	}
	if len(items) == 1 {
		return value.NewArray(items), nil
	}

	workers := e.MaxParallel
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(items) {
		workers = len(items)
	}
	chunks := partitionValues(items, workers)

	combine := func(worker *vm.VM, a, b value.Value) (value.Value, error) {
		release := worker.PushScope()
		defer release()
		worker.Current().Top().Declare(n.AName, a)
		worker.Current().Top().Declare(n.BName, b)
		return e.Eval(worker, n.Combine)
	}

	var mu sync.Mutex
	var result value.Value
	haveResult := false

	g := new(errgroup.Group)
	for _, chunk := range chunks {
		chunk := chunk
		g.Go(func() error {
			worker := m.Fork()
			acc := chunk[0]
			for _, x := range chunk[1:] {
				next, err := combine(worker, acc, x)
				if err != nil {
					return err
				}
				acc = next
			}

			mu.Lock()
			defer mu.Unlock()
			if !haveResult {
				result = acc
				haveResult = true
				return nil
			}
			merged, err := combine(worker, result, acc)
			if err != nil {
				return err
			}
			result = merged
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return value.NewArray([]value.Value{result}), nil
}

// partitionValues splits items into up to n contiguous, roughly
// equal-sized chunks, preserving source order within each chunk (spec
// §4.3 "within-chunk order preserved").
func partitionValues(items []value.Value, n int) [][]value.Value {
	if n < 1 {
		n = 1
	}
	total := len(items)
	base := total / n
	rem := total % n
	chunks := make([][]value.Value, 0, n)
	idx := 0
	for i := 0; i < n; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		chunks = append(chunks, items[idx:idx+size])
		idx += size
	}
	return chunks
}
