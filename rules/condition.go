package rules

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Condition is a standalone boolean expression over Env, used for triggers
// that are not tied to a rule action.
type Condition struct {
	Src     string
	program *vm.Program
}

func compile(src string) (*vm.Program, error) {
	return expr.Compile(src, expr.Env(Env{}), expr.AsBool())
}

func CompileCondition(src string) (*Condition, error) {
	prog, err := compile(src)
	if err != nil {
		return nil, fmt.Errorf("compile condition %q: %w", src, err)
	}
	return &Condition{Src: src, program: prog}, nil
}

func (c *Condition) Eval(env Env) (bool, error) {
	result, err := vm.Run(c.program, env)
	if err != nil {
		return false, err
	}
	match, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("condition %q returned %T", c.Src, result)
	}
	return match, nil
}
