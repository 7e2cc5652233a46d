package rules

import "github.com/expr-lang/expr/vm"

// ActionFunc carries out a rule against the turn's target when its gate
// holds.
type ActionFunc[T any] func(env Env, target T) error

// Rule is a gate → action pair. The engine evaluates rules by priority and
// uses Category + Exclusive to stop lower rules in the same category once
// an exclusive one has fired.
type Rule[T any] struct {
	Name         string      // human-readable identifier
	Priority     int         // higher = evaluated first
	Category     string      // grouping for exclusive semantics
	Exclusive    bool        // if true, blocks lower-priority rules in same category
	ConditionSrc string      // expr source (preserved for serialization)
	program      *vm.Program // compiled bytecode
	Action       ActionFunc[T]
}
