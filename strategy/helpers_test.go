package strategy

import (
	"testing"

	"github.com/nstehr/bastion/model"
	"github.com/nstehr/bastion/rules"
	"github.com/nstehr/bastion/world"
)

type unitSpec struct {
	owner    model.Player
	typ      model.UnitType
	cell     model.Cell
	health   float64 // 0 means full health
	upgraded bool
}

func ours(t model.UnitType, cells ...model.Cell) []unitSpec {
	out := make([]unitSpec, len(cells))
	for i, c := range cells {
		out[i] = unitSpec{owner: model.Self, typ: t, cell: c}
	}
	return out
}

type board struct {
	turn    int
	sp, mp  float64
	health  float64
	enemyMP float64
	units   []unitSpec
}

func (b board) view(t *testing.T) *world.GameState {
	t.Helper()
	cfg := model.DefaultConfig()
	health := b.health
	if health == 0 {
		health = 30
	}
	fr := &model.Frame{
		TurnInfo: []int{0, b.turn, -1},
		P1Stats:  []float64{health, b.sp, b.mp, 0},
		P2Stats:  []float64{30, 20, b.enemyMP, 0},
		P1Units:  make([][]model.UnitEntry, 8),
		P2Units:  make([][]model.UnitEntry, 8),
	}
	for _, u := range b.units {
		lists := fr.P1Units
		if u.owner == model.Opponent {
			lists = fr.P2Units
		}
		hp := u.health
		if hp == 0 {
			hp = cfg.Stats(u.typ).StartHealth
			if u.upgraded {
				hp = cfg.Stats(u.typ).Upgraded().StartHealth
			}
		}
		e := model.UnitEntry{X: u.cell.X, Y: u.cell.Y, Health: hp}
		lists[u.typ] = append(lists[u.typ], e)
		if u.upgraded {
			lists[model.Upgrade] = append(lists[model.Upgrade], e)
		}
	}
	gs, err := world.New(cfg, fr)
	if err != nil {
		t.Fatalf("world.New: %v", err)
	}
	return gs
}

// fakeView lets a test pin paths and attackers while keeping the real
// board for everything else.
type fakeView struct {
	*world.GameState
	paths     map[model.Cell][]model.Cell
	underFire bool
}

func (f *fakeView) PathToEdge(c model.Cell) []model.Cell {
	if p, ok := f.paths[c]; ok {
		return p
	}
	return f.GameState.PathToEdge(c)
}

func (f *fakeView) AttackersAgainst(c model.Cell, p model.Player) []model.Unit {
	if f.underFire {
		return []model.Unit{{Type: model.Turret, Owner: p.Other(), AttackRange: 2.5, DamageWalker: 5}}
	}
	return f.GameState.AttackersAgainst(c, p)
}

// carry turns this turn's placements into the next turn's units.
func carry(units []unitSpec, gs *world.GameState) []unitSpec {
	out := append([]unitSpec(nil), units...)
	types := map[string]model.UnitType{"FF": model.Wall, "EF": model.Support, "DF": model.Turret}
	for _, cmd := range gs.Commands().Build {
		if t, ok := types[cmd.Type]; ok {
			out = append(out, unitSpec{owner: model.Self, typ: t, cell: model.C(cmd.X, cmd.Y)})
		}
	}
	return out
}

func commandCells(gs *world.GameState, shorthand string) []model.Cell {
	var out []model.Cell
	tc := gs.Commands()
	for _, cmd := range append(tc.Build, tc.Deploy...) {
		if cmd.Type == shorthand {
			out = append(out, model.C(cmd.X, cmd.Y))
		}
	}
	return out
}

func newTestEngine(t *testing.T, mutate func(d *rules.Doctrine)) *Engine {
	t.Helper()
	d := rules.DefaultDoctrine()
	if mutate != nil {
		mutate(&d)
	}
	d.Seed = 7
	e, err := NewEngine(d, nil)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

// noDefense switches every defense gate off.
func noDefense(d *rules.Doctrine) {
	d.Gates = make(map[string]string)
	for step := range rules.DefaultGates() {
		d.Gates[step] = "false"
	}
}
