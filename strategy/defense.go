package strategy

import (
	"github.com/nstehr/bastion/model"
	"github.com/nstehr/bastion/rules"
)

var (
	cornerTurrets = []model.Cell{model.C(23, 11), model.C(4, 11)}
	midTurrets    = []model.Cell{model.C(9, 7), model.C(17, 7)}
	allTurrets    = append(append([]model.Cell(nil), cornerTurrets...), midTurrets...)

	frontWalls = []model.Cell{
		model.C(0, 13), model.C(1, 13), model.C(2, 13),
		model.C(25, 13), model.C(26, 13), model.C(27, 13),
	}

	rightCorner = []model.Cell{model.C(24, 13), model.C(23, 13)}
	leftCorner  = []model.Cell{model.C(4, 13), model.C(5, 13)}

	leftWing = []model.Cell{
		model.C(5, 11), model.C(6, 10), model.C(7, 9), model.C(8, 8), model.C(10, 7),
	}
	rightWing = []model.Cell{
		model.C(22, 11), model.C(21, 10), model.C(20, 9), model.C(19, 8), model.C(18, 8),
	}

	midLine      = []model.Cell{model.C(11, 9), model.C(12, 9), model.C(13, 9), model.C(14, 9), model.C(15, 9)}
	midTurretsUp = []model.Cell{model.C(11, 10), model.C(15, 10)}
	midSupport   = []model.Cell{model.C(11, 9), model.C(15, 9)}
)

// turretGuards are the walls directly in front of each turret.
func turretGuards() []model.Cell {
	out := make([]model.Cell, len(allTurrets))
	for i, t := range allTurrets {
		out[i] = model.C(t.X, t.Y+1)
	}
	return out
}

// defenseTurn is what the defense rules act on during one pass.
type defenseTurn struct {
	view WorldView
	st   *State
	dmg  DamageReport
	// front collects the corner reinforcements tried this turn so the
	// upgrade step covers them.
	front []model.Cell
}

// Defense lays out the static defense in a fixed sequence of gated steps.
// Every step is best effort and sees only what the earlier ones left of the
// budget.
type Defense struct {
	d      rules.Doctrine
	engine *rules.Engine[*defenseTurn]
}

func NewDefense(d rules.Doctrine) (*Defense, error) {
	df := &Defense{d: d}
	rs, err := rules.CompileDefense(d, map[string]rules.ActionFunc[*defenseTurn]{
		rules.StepTurrets:        df.turrets,
		rules.StepPerimeter:      df.perimeter,
		rules.StepReinforceFront: df.reinforceFront,
		rules.StepUpgradeWalls:   df.upgradeWalls,
		rules.StepWings:          df.wings,
		rules.StepReinforceMid:   df.reinforceMid,
	})
	if err != nil {
		return nil, err
	}
	df.engine, err = rules.NewEngine(rs)
	if err != nil {
		return nil, err
	}
	return df, nil
}

// Plan runs the defense steps and returns the names of those whose gate held.
func (df *Defense) Plan(view WorldView, st *State, dmg DamageReport) []string {
	t := &defenseTurn{view: view, st: st, dmg: dmg}
	return df.engine.Evaluate(t, func() rules.Env { return envFor(view, st, dmg) })
}

func (df *Defense) turrets(_ rules.Env, t *defenseTurn) error {
	t.view.Spawn(model.Turret, allTurrets, 1)
	t.view.Upgrade(allTurrets)
	return nil
}

func (df *Defense) perimeter(_ rules.Env, t *defenseTurn) error {
	walls := append(t.st.withoutReserved(frontWalls), turretGuards()...)
	t.view.Spawn(model.Wall, walls, 1)
	return nil
}

func (df *Defense) reinforceFront(env rules.Env, t *defenseTurn) error {
	var cells []model.Cell
	switch {
	case env.SP > df.d.FrontRightFirstSP:
		cells = append(cells, rightCorner...)
		cells = append(cells, leftCorner...)
	case t.dmg.AverageX > df.d.SplitX:
		cells = append(cells, rightCorner...)
		cells = append(cells, leftCorner...)
	default:
		cells = append(cells, leftCorner...)
		cells = append(cells, rightCorner...)
	}
	t.view.Spawn(model.Wall, cells, 1)
	t.front = cells
	return nil
}

func (df *Defense) upgradeWalls(_ rules.Env, t *defenseTurn) error {
	front := append(t.st.withoutReserved(frontWalls), t.front...)
	t.view.Upgrade(front)
	t.view.Upgrade(turretGuards())
	return nil
}

func (df *Defense) wings(env rules.Env, t *defenseTurn) error {
	if env.SP > df.d.WingsBothSP {
		t.view.Spawn(model.Wall, append(append([]model.Cell(nil), leftWing...), rightWing...), 1)
		return nil
	}
	first, second := leftWing, rightWing
	if t.st.Breaches.AverageX() > df.d.SplitX {
		first, second = rightWing, leftWing
	}
	t.view.Spawn(model.Wall, first, 1)
	t.view.Spawn(model.Wall, second, 1)
	return nil
}

func (df *Defense) reinforceMid(env rules.Env, t *defenseTurn) error {
	t.view.Spawn(model.Wall, midLine, 1)

	sp, _ := t.view.Resources(model.Self)
	if !t.st.ReinforceMid && !(sp > df.d.MidTurretSP && env.Health <= df.d.MidTurretHealth) {
		return nil
	}
	t.st.ReinforceMid = true
	t.view.Spawn(model.Turret, midTurretsUp, 1)
	t.view.Upgrade(midTurretsUp)
	t.view.Spawn(model.Wall, midSupport, 1)
	return nil
}

// envFor builds the gate environment from the live view.
func envFor(view WorldView, st *State, dmg DamageReport) rules.Env {
	sp, mp := view.Resources(model.Self)
	esp, emp := view.Resources(model.Opponent)
	return rules.Env{
		Turn:        view.TurnNumber(),
		SP:          sp,
		MP:          mp,
		Health:      view.Health(model.Self),
		EnemySP:     esp,
		EnemyMP:     emp,
		EnemyHealth: view.Health(model.Opponent),
		Cooldown:    st.Cooldown,
		Breaches:    st.Breaches.Len(),
		BreachAvgX:  st.Breaches.AverageX(),
		DamagedAvgX: dmg.AverageX,
		AttackPhase: st.Attack.Phase.String(),
		Threat:      st.DemolisherSeen,
	}
}
