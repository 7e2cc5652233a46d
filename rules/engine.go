package rules

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/expr-lang/expr/vm"
)

// Engine runs compiled rules against a target each turn. Rules fire in
// priority order; exclusive rules block lower-priority rules in the same
// category.
type Engine[T any] struct {
	rules []*Rule[T]
}

// NewEngine compiles all rule conditions into expr bytecode and sorts by priority.
func NewEngine[T any](rules []*Rule[T]) (*Engine[T], error) {
	compiled, err := compileRules(rules)
	if err != nil {
		return nil, err
	}
	return &Engine[T]{rules: compiled}, nil
}

// Evaluate runs every rule against target and returns the names of those
// that fired. envFn is called before each gate so a rule sees the balances
// left behind by the rules before it.
func (e *Engine[T]) Evaluate(target T, envFn func() Env) []string {
	fired := make(map[string]bool) // category → exclusive rule already fired
	var names []string

	for _, r := range e.rules {
		if fired[r.Category] {
			continue
		}

		env := envFn()
		result, err := vm.Run(r.program, env)
		if err != nil {
			slog.Warn("rule condition error", "rule", r.Name, "error", err)
			continue
		}

		match, ok := result.(bool)
		if !ok || !match {
			continue
		}

		names = append(names, r.Name)
		slog.Debug("rule fired", "rule", r.Name, "priority", r.Priority, "turn", env.Turn)

		if err := r.Action(env, target); err != nil {
			slog.Error("rule action error", "rule", r.Name, "error", err)
		}

		if r.Exclusive {
			fired[r.Category] = true
		}
	}
	return names
}

// Names lists the compiled rules in evaluation order.
func (e *Engine[T]) Names() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

func compileRules[T any](rules []*Rule[T]) ([]*Rule[T], error) {
	for _, r := range rules {
		if r.Action == nil {
			return nil, fmt.Errorf("rule %q has no action", r.Name)
		}
		prog, err := compile(r.ConditionSrc)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Name, err)
		}
		r.program = prog
	}
	sort.SliceStable(rules, func(i, j int) bool {
		return rules[i].Priority > rules[j].Priority
	})
	return rules, nil
}
