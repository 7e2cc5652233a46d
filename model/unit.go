package model

import "fmt"

// UnitType is the index of a unit in the game config's unitInformation
// table. The order is fixed by the game engine.
type UnitType int

const (
	Wall UnitType = iota
	Support
	Turret
	Scout
	Demolisher
	Interceptor
	Remove  // pseudo-type: removal marker
	Upgrade // pseudo-type: upgrade marker

	unitTypeCount
)

// Default shorthands, overridden by whatever the config announces.
var defaultShorthands = [unitTypeCount]string{"FF", "EF", "DF", "PI", "EI", "SI", "RM", "UP"}

var unitTypeNames = [unitTypeCount]string{
	"wall", "support", "turret", "scout", "demolisher", "interceptor", "remove", "upgrade",
}

func (t UnitType) String() string {
	if t < 0 || t >= unitTypeCount {
		return fmt.Sprintf("unit(%d)", int(t))
	}
	return unitTypeNames[t]
}

// Stationary reports whether the type is a structure paid for with SP.
func (t UnitType) Stationary() bool {
	return t == Wall || t == Support || t == Turret
}

// Mobile reports whether the type is a walker paid for with MP.
func (t UnitType) Mobile() bool {
	return t == Scout || t == Demolisher || t == Interceptor
}

// Player identifies a side. The zero value is us.
type Player int

const (
	Self     Player = 0
	Opponent Player = 1
)

func (p Player) Other() Player { return 1 - p }

func (p Player) String() string {
	if p == Self {
		return "self"
	}
	return "opponent"
}

// Unit is a single unit on the board as reported by a frame, enriched with
// the stats the config gives its type.
type Unit struct {
	Type           UnitType `json:"type"`
	Owner          Player   `json:"owner"`
	ID             string   `json:"id"`
	X              int      `json:"x"`
	Y              int      `json:"y"`
	Health         float64  `json:"health"`
	MaxHealth      float64  `json:"maxHealth"`
	Upgraded       bool     `json:"upgraded"`
	PendingRemoval bool     `json:"pendingRemoval"`
	AttackRange    float64  `json:"attackRange"`
	DamageWalker   float64  `json:"damageWalker"`
}

func (u Unit) Cell() Cell { return Cell{u.X, u.Y} }

func (u Unit) Stationary() bool { return u.Type.Stationary() }

// damagedRatio is the health fraction below which a structure is refunded.
const damagedRatio = 0.75

// Damaged reports whether a structure has lost enough health to be worth
// refunding before it is destroyed outright.
func (u Unit) Damaged() bool {
	return u.Stationary() && !u.PendingRemoval && u.Health < damagedRatio*u.MaxHealth
}
