package rules

import "fmt"

// Defense step names, also the keys of Doctrine.Gates.
const (
	StepTurrets        = "turrets"
	StepPerimeter      = "perimeter"
	StepReinforceFront = "reinforce_front"
	StepUpgradeWalls   = "upgrade_walls"
	StepWings          = "wings"
	StepReinforceMid   = "reinforce_mid"
)

// defenseOrder is the fixed build order of the defense. Steps further down
// only ever get what the earlier ones leave of the budget.
var defenseOrder = []struct {
	step     string
	priority int
}{
	{StepTurrets, 600},
	{StepPerimeter, 500},
	{StepReinforceFront, 400},
	{StepUpgradeWalls, 300},
	{StepWings, 200},
	{StepReinforceMid, 100},
}

// CompileDefense builds the defense rule set from a doctrine's gates and the
// caller's step actions. Every step must have an action.
func CompileDefense[T any](d Doctrine, actions map[string]ActionFunc[T]) ([]*Rule[T], error) {
	d.Validate()
	rules := make([]*Rule[T], 0, len(defenseOrder))
	for _, s := range defenseOrder {
		action, ok := actions[s.step]
		if !ok {
			return nil, fmt.Errorf("no action for defense step %q", s.step)
		}
		rules = append(rules, &Rule[T]{
			Name:         s.step,
			Priority:     s.priority,
			Category:     "defense",
			ConditionSrc: d.Gates[s.step],
			Action:       action,
		})
	}
	return rules, nil
}
