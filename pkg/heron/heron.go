// Package heron wires the core's collaborators into the runnable
// surface spec §6 exposes: eval, eval_string, run_file. It plays the
// role funvibe-funxy/pkg/cli.entry.go and cmd/funxy/main.go play for
// Funxy — gluing parser, module resolver, descriptor arena and
// evaluator/VM into one entry point — but stays a thin seam: no lexer,
// grammar, or LSP/build-tooling concerns live here (those are out of
// scope; see DESIGN.md).
package heron

import (
	"github.com/heron-lang/heron/internal/ast"
	"github.com/heron-lang/heron/internal/config"
	"github.com/heron-lang/heron/internal/descriptor"
	"github.com/heron-lang/heron/internal/evaluator"
	"github.com/heron-lang/heron/internal/heronerr"
	"github.com/heron-lang/heron/internal/modules"
	"github.com/heron-lang/heron/internal/parser"
	"github.com/heron-lang/heron/internal/value"
	"github.com/heron-lang/heron/internal/vm"
)

// Interpreter is the top-level object embedding one program's state: the
// descriptor arena, the VM, and the collaborators spec §6 treats as
// external (Parser, module Resolver, Configuration).
type Interpreter struct {
	Config   *config.Configuration
	Parser   parser.Parser
	Resolver modules.Resolver

	arena *descriptor.Arena
	vm    *vm.VM
	eval  *evaluator.Evaluator
}

// New builds an Interpreter against a fresh, empty global module. p and
// resolver may be nil if the caller only needs Eval (no New/module
// resolution against named types).
func New(cfg *config.Configuration, p parser.Parser, resolver modules.Resolver) *Interpreter {
	if cfg == nil {
		cfg = config.Default()
	}
	arena := descriptor.NewArena()
	global := &vm.Global{}
	machine := vm.New(arena, global)
	ev := evaluator.New(evaluator.ExprExecutor{})
	ev.MaxParallel = cfg.MaxThreads
	return &Interpreter{Config: cfg, Parser: p, Resolver: resolver, arena: arena, vm: machine, eval: ev}
}

// Arena exposes the descriptor arena so a caller can register built-in
// or host-provided types before the first Eval.
func (in *Interpreter) Arena() *descriptor.Arena { return in.arena }

// VM exposes the underlying VM, e.g. so a host-provided StatementExecutor
// can drive its scope/frame hooks directly (spec §6).
func (in *Interpreter) VM() *vm.VM { return in.vm }

// Eval implements spec §6's eval(expression) -> Value.
func (in *Interpreter) Eval(expr ast.Expression) (value.Value, error) {
	return in.eval.Eval(in.vm, expr)
}

// EvalString implements spec §6's eval_string(text) -> Value: parses via
// the configured Parser, then evaluates.
func (in *Interpreter) EvalString(text string) (value.Value, error) {
	if in.Parser == nil {
		return nil, heronerr.New(heronerr.KindInternalInvariantViolation, "no parser configured")
	}
	expr, err := in.Parser.ParseExpression(text)
	if err != nil {
		return nil, heronerr.New(heronerr.KindParseError, "%v", err)
	}
	return in.Eval(expr)
}
