package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrMalformedFrame marks frame data that cannot be turned into a board.
var ErrMalformedFrame = errors.New("malformed frame")

// Phase is turnInfo[0]: what the engine expects from us for this frame.
type Phase int

const (
	PhaseTurn   Phase = 0 // deployment phase, we must submit a turn
	PhaseAction Phase = 1 // one of many action frames while units move
	PhaseEnd    Phase = 2 // game over
)

func (p Phase) String() string {
	switch p {
	case PhaseTurn:
		return "turn"
	case PhaseAction:
		return "action"
	case PhaseEnd:
		return "end"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Frame is one game state document from the engine.
type Frame struct {
	TurnInfo []int         `json:"turnInfo"`
	P1Stats  []float64     `json:"p1Stats"`
	P2Stats  []float64     `json:"p2Stats"`
	P1Units  [][]UnitEntry `json:"p1Units"`
	P2Units  [][]UnitEntry `json:"p2Units"`
	Events   Events        `json:"events"`
}

// UnitEntry is the positional [x, y, health, id] tuple the engine sends.
type UnitEntry struct {
	X      int
	Y      int
	Health float64
	ID     string
}

func (u *UnitEntry) UnmarshalJSON(b []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(b, &parts); err != nil {
		return fmt.Errorf("%w: unit entry: %v", ErrMalformedFrame, err)
	}
	if len(parts) < 3 {
		return fmt.Errorf("%w: unit entry has %d fields", ErrMalformedFrame, len(parts))
	}
	var x, y, hp float64
	if err := json.Unmarshal(parts[0], &x); err != nil {
		return fmt.Errorf("%w: unit x: %v", ErrMalformedFrame, err)
	}
	if err := json.Unmarshal(parts[1], &y); err != nil {
		return fmt.Errorf("%w: unit y: %v", ErrMalformedFrame, err)
	}
	if err := json.Unmarshal(parts[2], &hp); err != nil {
		return fmt.Errorf("%w: unit health: %v", ErrMalformedFrame, err)
	}
	u.X, u.Y, u.Health = int(x), int(y), hp
	if len(parts) > 3 {
		u.ID = rawID(parts[3])
	}
	return nil
}

func (u UnitEntry) Cell() Cell { return Cell{u.X, u.Y} }

// rawID accepts ids sent either as strings or numbers.
func rawID(b json.RawMessage) string {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return string(b)
}

// Events holds the per-frame event lists we consume.
type Events struct {
	Breach []Breach `json:"breach"`
}

// Breach owner flags as they appear in raw frames.
const (
	OwnerSelf     = 1
	OwnerOpponent = 2
)

// Breach is a [[x, y], damage, unitType, id, owner] tuple: a mobile unit
// reached a scoring edge.
type Breach struct {
	Cell     Cell
	Damage   float64
	UnitType UnitType
	ID       string
	Owner    int
}

// ScoredOnUs reports whether the breaching unit was the opponent's.
func (b Breach) ScoredOnUs() bool { return b.Owner != OwnerSelf }

func (b *Breach) UnmarshalJSON(raw []byte) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(raw, &parts); err != nil {
		return fmt.Errorf("%w: breach: %v", ErrMalformedFrame, err)
	}
	if len(parts) < 5 {
		return fmt.Errorf("%w: breach has %d fields", ErrMalformedFrame, len(parts))
	}
	var loc []float64
	if err := json.Unmarshal(parts[0], &loc); err != nil || len(loc) < 2 {
		return fmt.Errorf("%w: breach location %s", ErrMalformedFrame, parts[0])
	}
	var dmg, typ, owner float64
	if err := json.Unmarshal(parts[1], &dmg); err != nil {
		return fmt.Errorf("%w: breach damage: %v", ErrMalformedFrame, err)
	}
	if err := json.Unmarshal(parts[2], &typ); err != nil {
		return fmt.Errorf("%w: breach unit type: %v", ErrMalformedFrame, err)
	}
	if err := json.Unmarshal(parts[4], &owner); err != nil {
		return fmt.Errorf("%w: breach owner: %v", ErrMalformedFrame, err)
	}
	b.Cell = Cell{int(loc[0]), int(loc[1])}
	b.Damage = dmg
	b.UnitType = UnitType(typ)
	b.ID = rawID(parts[3])
	b.Owner = int(owner)
	return nil
}

// ParseFrame decodes a game state line and checks the fields every consumer
// indexes into.
func ParseFrame(raw []byte) (*Frame, error) {
	var fr Frame
	if err := json.Unmarshal(raw, &fr); err != nil {
		if errors.Is(err, ErrMalformedFrame) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if len(fr.TurnInfo) < 2 {
		return nil, fmt.Errorf("%w: turnInfo has %d entries", ErrMalformedFrame, len(fr.TurnInfo))
	}
	if len(fr.P1Stats) < 3 || len(fr.P2Stats) < 3 {
		return nil, fmt.Errorf("%w: player stats too short", ErrMalformedFrame)
	}
	return &fr, nil
}

func (fr *Frame) Phase() Phase { return Phase(fr.TurnInfo[0]) }

func (fr *Frame) Turn() int { return fr.TurnInfo[1] }

// ActionFrame is the index of the action frame within the turn, -1 when the
// engine did not send one.
func (fr *Frame) ActionFrame() int {
	if len(fr.TurnInfo) < 3 {
		return -1
	}
	return fr.TurnInfo[2]
}

// PlayerStats is the [health, SP, MP, time] block for one side.
type PlayerStats struct {
	Health float64
	SP     float64
	MP     float64
}

func (fr *Frame) Stats(p Player) PlayerStats {
	s := fr.P1Stats
	if p == Opponent {
		s = fr.P2Stats
	}
	return PlayerStats{Health: s[0], SP: s[1], MP: s[2]}
}

// Units returns the per-type unit lists of a side, indexed by UnitType.
func (fr *Frame) Units(p Player) [][]UnitEntry {
	if p == Opponent {
		return fr.P2Units
	}
	return fr.P1Units
}
