// Package world turns a frame from the game engine into a mutable board that
// the strategy can query and spend against. Spends are applied to the board
// immediately so later queries within the same turn see them.
package world

import (
	"fmt"
	"log/slog"

	"github.com/nstehr/bastion/ipc"
	"github.com/nstehr/bastion/model"
)

// GameState is the board and both resource pools for one turn.
type GameState struct {
	cfg   *model.Config
	turn  int
	stats [2]model.PlayerStats
	grid  [model.ArenaSize][model.ArenaSize][]*model.Unit

	build  []ipc.Command
	deploy []ipc.Command
}

// New builds the board from a turn frame. Units listed under the remove and
// upgrade slots flag units already placed by the earlier slots.
func New(cfg *model.Config, fr *model.Frame) (*GameState, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game state: no config")
	}
	gs := &GameState{
		cfg:  cfg,
		turn: fr.Turn(),
	}
	gs.stats[model.Self] = fr.Stats(model.Self)
	gs.stats[model.Opponent] = fr.Stats(model.Opponent)

	for _, p := range []model.Player{model.Self, model.Opponent} {
		for idx, entries := range fr.Units(p) {
			t := model.UnitType(idx)
			if !t.Stationary() && !t.Mobile() && t != model.Remove && t != model.Upgrade {
				continue
			}
			for _, e := range entries {
				c := e.Cell()
				if !c.InArena() {
					return nil, fmt.Errorf("%w: %s %s at %v outside arena", model.ErrMalformedFrame, p, t, c)
				}
				switch t {
				case model.Remove:
					if u := gs.stationaryAt(c); u != nil {
						u.PendingRemoval = true
					}
				case model.Upgrade:
					if u := gs.stationaryAt(c); u != nil {
						gs.applyUpgrade(u)
					}
				default:
					u := gs.newUnit(t, p, c)
					u.Health = e.Health
					u.ID = e.ID
					gs.place(u)
				}
			}
		}
	}
	return gs, nil
}

func (gs *GameState) newUnit(t model.UnitType, p model.Player, c model.Cell) *model.Unit {
	s := gs.cfg.Stats(t)
	return &model.Unit{
		Type:         t,
		Owner:        p,
		X:            c.X,
		Y:            c.Y,
		Health:       s.StartHealth,
		MaxHealth:    s.StartHealth,
		AttackRange:  s.AttackRange,
		DamageWalker: s.AttackDamageWalker,
	}
}

func (gs *GameState) applyUpgrade(u *model.Unit) {
	s := gs.cfg.Stats(u.Type).Upgraded()
	u.Upgraded = true
	if s.StartHealth > 0 {
		u.MaxHealth = s.StartHealth
	}
	u.AttackRange = s.AttackRange
	u.DamageWalker = s.AttackDamageWalker
}

func (gs *GameState) place(u *model.Unit) {
	gs.grid[u.X][u.Y] = append(gs.grid[u.X][u.Y], u)
}

func (gs *GameState) stationaryAt(c model.Cell) *model.Unit {
	if !c.InArena() {
		return nil
	}
	for _, u := range gs.grid[c.X][c.Y] {
		if u.Stationary() {
			return u
		}
	}
	return nil
}

func (gs *GameState) TurnNumber() int { return gs.turn }

func (gs *GameState) Config() *model.Config { return gs.cfg }

// Health returns the remaining hit points of a side.
func (gs *GameState) Health(p model.Player) float64 { return gs.stats[p].Health }

// Resources returns the current (SP, MP) balance of a side.
func (gs *GameState) Resources(p model.Player) (sp, mp float64) {
	return gs.stats[p].SP, gs.stats[p].MP
}

// Occupied reports whether a structure stands on c.
func (gs *GameState) Occupied(c model.Cell) bool { return gs.stationaryAt(c) != nil }

// UnitsAt returns copies of every unit on c.
func (gs *GameState) UnitsAt(c model.Cell) []model.Unit {
	if !c.InArena() {
		return nil
	}
	out := make([]model.Unit, 0, len(gs.grid[c.X][c.Y]))
	for _, u := range gs.grid[c.X][c.Y] {
		out = append(out, *u)
	}
	return out
}

// AttackersAgainst lists the structures not owned by p whose walker damage
// reaches c.
func (gs *GameState) AttackersAgainst(c model.Cell, p model.Player) []model.Unit {
	var out []model.Unit
	for x := 0; x < model.ArenaSize; x++ {
		for y := 0; y < model.ArenaSize; y++ {
			for _, u := range gs.grid[x][y] {
				if u.Owner == p || !u.Stationary() || u.DamageWalker <= 0 {
					continue
				}
				if c.Distance(u.Cell()) <= u.AttackRange {
					out = append(out, *u)
				}
			}
		}
	}
	return out
}

// Affordable is how many units of t we could place with the current balance.
func (gs *GameState) Affordable(t model.UnitType) int {
	sp, mp := gs.cfg.Cost(t)
	have := gs.stats[model.Self]
	n := -1
	if sp > 0 {
		n = int(have.SP / sp)
	}
	if mp > 0 {
		if m := int(have.MP / mp); n < 0 || m < n {
			n = m
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

func (gs *GameState) canSpawn(t model.UnitType, c model.Cell) bool {
	if !t.Stationary() && !t.Mobile() {
		return false
	}
	if !c.InArena() || !c.OnHomeSide() {
		return false
	}
	sp, mp := gs.cfg.Cost(t)
	have := gs.stats[model.Self]
	if have.SP < sp || have.MP < mp {
		return false
	}
	if gs.Occupied(c) || (t.Stationary() && len(gs.grid[c.X][c.Y]) > 0) {
		return false
	}
	return t.Stationary() || model.OnDeployEdge(c)
}

// Spawn tries to place count units of t on each cell and returns how many
// were placed. A cell stops taking units at the first failure.
func (gs *GameState) Spawn(t model.UnitType, cells []model.Cell, count int) int {
	placed := 0
	for _, c := range cells {
		for i := 0; i < count; i++ {
			if !gs.canSpawn(t, c) {
				break
			}
			sp, mp := gs.cfg.Cost(t)
			gs.stats[model.Self].SP -= sp
			gs.stats[model.Self].MP -= mp
			gs.place(gs.newUnit(t, model.Self, c))
			cmd := ipc.Command{Type: gs.cfg.Shorthand(t), X: c.X, Y: c.Y}
			if t.Stationary() {
				gs.build = append(gs.build, cmd)
			} else {
				gs.deploy = append(gs.deploy, cmd)
			}
			placed++
		}
	}
	if placed == 0 && len(cells) > 0 {
		slog.Debug("spawn placed nothing", "type", t, "cells", len(cells), "turn", gs.turn)
	}
	return placed
}

// Upgrade upgrades our structures on the given cells while the balance
// allows and returns how many were upgraded.
func (gs *GameState) Upgrade(cells []model.Cell) int {
	done := 0
	for _, c := range cells {
		if !c.OnHomeSide() {
			continue
		}
		u := gs.stationaryAt(c)
		if u == nil || u.Upgraded || u.Owner != model.Self {
			continue
		}
		sp, mp, ok := gs.cfg.UpgradeCost(u.Type)
		if !ok {
			continue
		}
		have := gs.stats[model.Self]
		if have.SP < sp || have.MP < mp {
			continue
		}
		gs.stats[model.Self].SP -= sp
		gs.stats[model.Self].MP -= mp
		gs.applyUpgrade(u)
		gs.build = append(gs.build, ipc.Command{Type: gs.cfg.Shorthand(model.Upgrade), X: c.X, Y: c.Y})
		done++
	}
	return done
}

// Remove flags our structures on the given cells for removal at the end of
// the turn and returns how many were flagged.
func (gs *GameState) Remove(cells []model.Cell) int {
	n := 0
	for _, c := range cells {
		if !c.OnHomeSide() {
			continue
		}
		u := gs.stationaryAt(c)
		if u == nil || u.PendingRemoval || u.Owner != model.Self {
			continue
		}
		u.PendingRemoval = true
		gs.build = append(gs.build, ipc.Command{Type: gs.cfg.Shorthand(model.Remove), X: c.X, Y: c.Y})
		n++
	}
	return n
}

// Commands returns the intents accumulated this turn.
func (gs *GameState) Commands() ipc.TurnCommands {
	return ipc.TurnCommands{
		Build:  append([]ipc.Command(nil), gs.build...),
		Deploy: append([]ipc.Command(nil), gs.deploy...),
	}
}
