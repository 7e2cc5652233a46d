package strategy

import (
	"slices"

	"github.com/nstehr/bastion/model"
)

type AttackPhase int

const (
	Idle AttackPhase = iota
	PreBuild
	Launch
	Teardown
)

func (p AttackPhase) String() string {
	switch p {
	case Idle:
		return "idle"
	case PreBuild:
		return "pre_build"
	case Launch:
		return "launch"
	case Teardown:
		return "teardown"
	}
	return "unknown"
}

// Side is the half of the opponent's board an attack is aimed at.
type Side int

const (
	SideNone Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	}
	return "none"
}

type AttackState struct {
	Phase      AttackPhase
	LaunchTurn int
	Side       Side
	// Launches counts attacks that reached the launch turn this game.
	Launches int
	// Reserved cells are our own walls removed to open a lane; the defense
	// leaves them empty until the attack is over.
	Reserved []model.Cell
}

// State is everything the strategy carries from one turn to the next. One
// State lives for one game.
type State struct {
	Breaches BreachMemory
	Supports []model.Cell
	Attack   AttackState

	ReinforceMid   bool
	DemolisherSeen bool

	// EnemySnapshot holds the opponent's units per type as of the frame it
	// was taken from.
	EnemySnapshot [][]model.UnitEntry
	SnapshotTaken bool

	// Turns since the last interceptor deployment.
	Cooldown int
}

func NewState() *State { return &State{} }

func (s *State) clone() *State {
	c := *s
	c.Breaches = BreachMemory{cells: slices.Clone(s.Breaches.cells)}
	c.Supports = slices.Clone(s.Supports)
	c.Attack.Reserved = slices.Clone(s.Attack.Reserved)
	c.EnemySnapshot = make([][]model.UnitEntry, len(s.EnemySnapshot))
	for i, units := range s.EnemySnapshot {
		c.EnemySnapshot[i] = slices.Clone(units)
	}
	return &c
}

func (s *State) reserved(c model.Cell) bool {
	return s.Attack.Phase != Idle && slices.Contains(s.Attack.Reserved, c)
}

// withoutReserved filters cells the defense must not rebuild right now.
func (s *State) withoutReserved(cells []model.Cell) []model.Cell {
	out := make([]model.Cell, 0, len(cells))
	for _, c := range cells {
		if !s.reserved(c) {
			out = append(out, c)
		}
	}
	return out
}
