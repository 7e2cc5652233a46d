package strategy

import (
	"log/slog"
	"slices"

	"github.com/nstehr/bastion/model"
	"github.com/nstehr/bastion/rules"
)

var (
	// tempLine funnels a prepared attack through the middle of our half.
	tempLine = []model.Cell{
		model.C(10, 12), model.C(11, 12), model.C(12, 12), model.C(13, 12),
		model.C(14, 12), model.C(15, 12), model.C(16, 12),
	}

	leftGap  = []model.Cell{model.C(0, 13), model.C(1, 13)}
	rightGap = []model.Cell{model.C(26, 13), model.C(27, 13)}

	enemyLeftCorner  = []model.Cell{model.C(0, 14), model.C(1, 14)}
	enemyRightCorner = []model.Cell{model.C(27, 14), model.C(26, 14)}
)

// lanes returns the primary and secondary launch cells for an attack on
// side s. Walkers from the bottom-left edge cross to the right.
func lanes(s Side) (primary, secondary model.Cell) {
	if s == SideLeft {
		return model.C(14, 0), model.C(15, 1)
	}
	return model.C(13, 0), model.C(12, 1)
}

// AttackPlan is what Prepare decided for the mobile phase of the turn.
type AttackPlan struct {
	Phase     AttackPhase
	Threshold float64
	Evaluated bool
	Best      model.Cell
	Risk      float64
	Committed bool
}

// Offense drives the attack state machine.
type Offense struct {
	d rules.Doctrine
}

func NewOffense(d rules.Doctrine) *Offense { return &Offense{d: d} }

// Threshold is the MP needed before an attack is considered.
func (o *Offense) Threshold(turn int) float64 {
	switch {
	case turn <= o.d.EarlyTurns:
		return o.d.EarlyAttackMP
	case turn <= o.d.MidTurns:
		return o.d.MidAttackMP
	}
	return o.d.LateAttackMP
}

// advance moves the state machine forward by turn number.
func (o *Offense) advance(st *State, turn int) {
	a := &st.Attack
	switch a.Phase {
	case PreBuild:
		if turn >= a.LaunchTurn {
			a.Phase = Launch
		}
	case Launch:
		if turn > a.LaunchTurn {
			a.Phase = Teardown
		}
	case Teardown:
		a.Phase = Idle
	}
}

// Prepare advances the attack and performs its structural work: opening the
// gap when an attack is committed, raising the funnel the turn before launch
// and pulling it down the turn after.
func (o *Offense) Prepare(view WorldView, st *State) AttackPlan {
	turn := view.TurnNumber()
	o.advance(st, turn)
	a := &st.Attack
	plan := AttackPlan{Phase: a.Phase, Threshold: o.Threshold(turn)}

	switch a.Phase {
	case Idle:
		_, mp := view.Resources(model.Self)
		if mp < plan.Threshold {
			return plan
		}
		best, risk, ok := LeastRisk(view, openDeployCells(view), o.d)
		if !ok {
			return plan
		}
		plan.Evaluated, plan.Best, plan.Risk = true, best, risk
		if risk <= o.d.RiskCutoff {
			return plan
		}
		o.commit(view, st, turn)
		plan.Committed = true
		slog.Info("attack committed", "turn", turn, "launch", a.LaunchTurn, "side", a.Side, "risk", risk)

	case PreBuild:
		if turn == a.LaunchTurn-1 {
			view.Spawn(model.Wall, tempLine, 1)
		}

	case Teardown:
		view.Remove(tempLine)
		a.Side = SideNone
		a.Reserved = nil
		a.Phase = Idle
	}
	return plan
}

func (o *Offense) commit(view WorldView, st *State, turn int) {
	a := &st.Attack
	a.Phase = PreBuild
	a.LaunchTurn = turn + o.d.PrepTurns
	a.Side = chooseSide(view)
	a.Reserved = nil
	switch a.Side {
	case SideRight:
		a.Reserved = slices.Clone(rightGap)
	case SideLeft:
		a.Reserved = slices.Clone(leftGap)
	}
	if len(a.Reserved) > 0 {
		view.Remove(a.Reserved)
	}
}

// chooseSide attacks the enemy corner that is not walled, or neither when
// both or none are.
func chooseSide(view WorldView) Side {
	left := walled(view, enemyLeftCorner)
	right := walled(view, enemyRightCorner)
	switch {
	case left && !right:
		return SideRight
	case right && !left:
		return SideLeft
	}
	return SideNone
}

func walled(view WorldView, cells []model.Cell) bool {
	for _, c := range cells {
		for _, u := range view.UnitsAt(c) {
			if u.Owner == model.Opponent && u.Stationary() {
				return true
			}
		}
	}
	return false
}

// Execute deploys the mobile units the plan calls for and returns how many
// went out in each wave.
func (o *Offense) Execute(view WorldView, st *State, plan AttackPlan) (first, second int) {
	switch plan.Phase {
	case Idle:
		if !plan.Evaluated || plan.Committed {
			return 0, 0
		}
		wave := o.d.FirstWave
		if st.Attack.Launches > 0 {
			wave = o.d.CommittedWave
		}
		first = view.Spawn(model.Scout, []model.Cell{plan.Best}, wave)
		second = view.Spawn(model.Scout, []model.Cell{offsetCell(view, plan.Best, st.Attack.Side)}, view.Affordable(model.Scout))
		return first, second

	case Launch:
		side := st.Attack.Side
		if side == SideNone {
			side = SideRight
			if best, _, ok := LeastRisk(view, openDeployCells(view), o.d); ok && model.OnEdge(best, model.BottomRight) {
				side = SideLeft
			}
		}
		primary, secondary := lanes(side)
		first = view.Spawn(model.Scout, []model.Cell{primary}, o.d.LaunchWave)
		second = view.Spawn(model.Scout, []model.Cell{secondary}, view.Affordable(model.Scout))
		st.Attack.Launches++
		slog.Info("attack launched", "turn", view.TurnNumber(), "side", side, "first", first, "second", second)
		return first, second
	}
	return 0, 0
}

// offsetCell is the cell next to best along the same deploy edge, on the
// side away from s. It falls back to best when that cell cannot be used.
func offsetCell(view WorldView, best model.Cell, s Side) model.Cell {
	edge := model.BottomLeft
	if model.OnEdge(best, model.BottomRight) {
		edge = model.BottomRight
	}
	cells := model.EdgeCells(edge)
	idx := slices.Index(cells, best)
	if idx < 0 {
		return best
	}

	// Indices grow outward: towards x=0 on the left edge, x=27 on the right.
	step := 1
	switch {
	case s == SideRight && edge == model.BottomRight:
		step = -1
	case s == SideLeft && edge == model.BottomLeft:
		step = -1
	}
	next := idx + step
	if next < 0 || next >= len(cells) {
		next = idx - step
	}
	if next < 0 || next >= len(cells) || view.Occupied(cells[next]) {
		return best
	}
	return cells[next]
}
