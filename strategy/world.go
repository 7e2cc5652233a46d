// Package strategy decides what to build, upgrade, remove and deploy each
// turn. It only talks to the board through WorldView and keeps everything it
// remembers between turns in State.
package strategy

import "github.com/nstehr/bastion/model"

// WorldView is the board for one turn. Spend operations return how many
// placements succeeded and are reflected immediately in every query.
type WorldView interface {
	TurnNumber() int
	Health(p model.Player) float64
	Resources(p model.Player) (sp, mp float64)
	Occupied(c model.Cell) bool
	UnitsAt(c model.Cell) []model.Unit
	PathToEdge(start model.Cell) []model.Cell
	AttackersAgainst(c model.Cell, p model.Player) []model.Unit
	Affordable(t model.UnitType) int

	Spawn(t model.UnitType, cells []model.Cell, count int) int
	Upgrade(cells []model.Cell) int
	Remove(cells []model.Cell) int
}
