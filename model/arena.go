package model

import "math"

// Arena dimensions. The board is a diamond inscribed in a 28x28 grid, split
// into two mirrored 14-row halves: rows 0..13 belong to us, 14..27 to the
// opponent.
const (
	ArenaSize = 28
	HalfArena = ArenaSize / 2
)

// Cell is an integer board coordinate.
type Cell struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// C is shorthand for building a Cell literal in layout tables.
func C(x, y int) Cell { return Cell{X: x, Y: y} }

// InArena reports whether the cell lies inside the diamond.
func (c Cell) InArena() bool {
	if c.Y < 0 || c.Y >= ArenaSize {
		return false
	}
	rowSize := c.Y + 1
	if c.Y >= HalfArena {
		rowSize = ArenaSize - c.Y
	}
	startX := HalfArena - rowSize
	endX := startX + 2*rowSize - 1
	return c.X >= startX && c.X <= endX
}

// OnHomeSide reports whether the cell is in our half of the board.
func (c Cell) OnHomeSide() bool { return c.Y < HalfArena }

// Distance is the euclidean distance used for turret ranges.
func (c Cell) Distance(o Cell) float64 {
	dx := float64(c.X - o.X)
	dy := float64(c.Y - o.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// Neighbors returns the four orthogonal neighbours in the order the
// pathfinder expects (up, down, right, left). Cells outside the arena are
// included; callers filter with InArena.
func (c Cell) Neighbors() [4]Cell {
	return [4]Cell{
		{c.X, c.Y + 1},
		{c.X, c.Y - 1},
		{c.X + 1, c.Y},
		{c.X - 1, c.Y},
	}
}

// Edge names one of the four scoring/deployment edges of the diamond.
type Edge int

const (
	TopRight Edge = iota
	TopLeft
	BottomLeft
	BottomRight
)

func (e Edge) String() string {
	switch e {
	case TopRight:
		return "top_right"
	case TopLeft:
		return "top_left"
	case BottomLeft:
		return "bottom_left"
	case BottomRight:
		return "bottom_right"
	}
	return "unknown"
}

// EdgeCells lists an edge from its centre-most cell outwards.
func EdgeCells(e Edge) []Cell {
	out := make([]Cell, 0, HalfArena)
	for n := 0; n < HalfArena; n++ {
		switch e {
		case TopRight:
			out = append(out, Cell{HalfArena + n, ArenaSize - 1 - n})
		case TopLeft:
			out = append(out, Cell{HalfArena - 1 - n, ArenaSize - 1 - n})
		case BottomLeft:
			out = append(out, Cell{HalfArena - 1 - n, n})
		case BottomRight:
			out = append(out, Cell{HalfArena + n, n})
		}
	}
	return out
}

// OnEdge reports whether c belongs to edge e.
func OnEdge(c Cell, e Edge) bool {
	switch e {
	case TopRight:
		return c.X >= HalfArena && c.X+c.Y == ArenaSize-1+HalfArena
	case TopLeft:
		return c.X < HalfArena && c.Y-c.X == HalfArena
	case BottomLeft:
		return c.X < HalfArena && c.X+c.Y == HalfArena-1
	case BottomRight:
		return c.X >= HalfArena && c.X-c.Y == HalfArena
	}
	return false
}

// DeployEdges returns our two deployment edges, bottom-left first.
func DeployEdges() []Cell {
	return append(EdgeCells(BottomLeft), EdgeCells(BottomRight)...)
}

// OnDeployEdge reports whether mobile units may be spawned at c.
func OnDeployEdge(c Cell) bool {
	return OnEdge(c, BottomLeft) || OnEdge(c, BottomRight)
}

// TargetEdge is the edge a unit starting at c walks towards: the one
// diagonally opposite the quadrant it starts in.
func TargetEdge(c Cell) Edge {
	left := c.X < HalfArena
	bottom := c.Y < HalfArena
	switch {
	case left && bottom:
		return TopRight
	case left && !bottom:
		return BottomRight
	case !left && bottom:
		return TopLeft
	default:
		return BottomLeft
	}
}

// HomeField lists every cell of our half, top row first.
func HomeField() []Cell {
	var out []Cell
	for y := HalfArena - 1; y >= 0; y-- {
		for x := HalfArena - 1 - y; x <= HalfArena+y; x++ {
			out = append(out, Cell{x, y})
		}
	}
	return out
}

// OpponentField lists every cell of the opponent's half, bottom row first.
func OpponentField() []Cell {
	var out []Cell
	for y := HalfArena; y < ArenaSize; y++ {
		rowSize := ArenaSize - y
		for x := HalfArena - rowSize; x < HalfArena+rowSize; x++ {
			out = append(out, Cell{x, y})
		}
	}
	return out
}
