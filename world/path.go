package world

import (
	"math"

	"github.com/nstehr/bastion/model"
)

type moveDir int

const (
	moveNone moveDir = iota
	moveHorizontal
	moveVertical
)

type pathNode struct {
	blocked    bool
	visited    bool
	pathlength int
}

// pathfinder computes the route a mobile unit takes from a start cell to the
// edge opposite it. Walkers head for the reachable cell closest to the
// target edge, take a shortest route there, and break ties by alternating
// between horizontal and vertical steps.
type pathfinder struct {
	nodes     [model.ArenaSize][model.ArenaSize]pathNode
	ends      []model.Cell
	endSet    map[model.Cell]bool
	direction [2]int
}

func newPathfinder(blocked func(model.Cell) bool, ends []model.Cell) *pathfinder {
	pf := &pathfinder{
		ends:      ends,
		endSet:    make(map[model.Cell]bool, len(ends)),
		direction: [2]int{1, 1},
	}
	for _, e := range ends {
		pf.endSet[e] = true
	}
	for x := 0; x < model.ArenaSize; x++ {
		for y := 0; y < model.ArenaSize; y++ {
			pf.nodes[x][y].pathlength = -1
			c := model.C(x, y)
			if c.InArena() && blocked(c) {
				pf.nodes[x][y].blocked = true
			}
		}
	}
	if len(ends) > 0 {
		if ends[0].X < model.HalfArena {
			pf.direction[0] = -1
		}
		if ends[0].Y < model.HalfArena {
			pf.direction[1] = -1
		}
	}
	return pf
}

func (pf *pathfinder) node(c model.Cell) *pathNode { return &pf.nodes[c.X][c.Y] }

func (pf *pathfinder) walkable(c model.Cell) bool {
	return c.InArena() && !pf.node(c).blocked
}

func (pf *pathfinder) idealness(c model.Cell) int {
	if pf.endSet[c] {
		return math.MaxInt
	}
	score := 0
	if pf.direction[1] == 1 {
		score += model.ArenaSize * c.Y
	} else {
		score += model.ArenaSize * (model.ArenaSize - 1 - c.Y)
	}
	if pf.direction[0] == 1 {
		score += c.X
	} else {
		score += model.ArenaSize - 1 - c.X
	}
	return score
}

// idealSearch floods the region reachable from start and returns its most
// ideal cell.
func (pf *pathfinder) idealSearch(start model.Cell) model.Cell {
	seen := map[model.Cell]bool{start: true}
	queue := []model.Cell{start}
	best, bestScore := start, pf.idealness(start)
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range cur.Neighbors() {
			if !pf.walkable(n) || seen[n] {
				continue
			}
			seen[n] = true
			if s := pf.idealness(n); s > bestScore {
				best, bestScore = n, s
			}
			queue = append(queue, n)
		}
	}
	return best
}

// measure fills in the distance of every reachable cell from the ideal
// target. When the target is on the edge every edge cell counts as distance 0.
func (pf *pathfinder) measure(ideal model.Cell) {
	var queue []model.Cell
	if pf.endSet[ideal] {
		for _, e := range pf.ends {
			n := pf.node(e)
			n.pathlength = 0
			n.visited = true
			queue = append(queue, e)
		}
	} else {
		n := pf.node(ideal)
		n.pathlength = 0
		n.visited = true
		queue = append(queue, ideal)
	}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curNode := pf.node(cur)
		for _, nb := range cur.Neighbors() {
			if !pf.walkable(nb) {
				continue
			}
			n := pf.node(nb)
			if !n.visited && !curNode.blocked {
				n.pathlength = curNode.pathlength + 1
				n.visited = true
				queue = append(queue, nb)
			}
		}
	}
}

// walk follows decreasing distance from start until distance 0.
func (pf *pathfinder) walk(start model.Cell) []model.Cell {
	path := []model.Cell{start}
	cur := start
	dir := moveNone
	// Each step strictly lowers the distance on a well-formed map; the guard
	// only protects against a disconnected start.
	for guard := 0; pf.node(cur).pathlength != 0 && guard < model.ArenaSize*model.ArenaSize; guard++ {
		next := pf.nextMove(cur, dir)
		if next == cur {
			break
		}
		if next.X == cur.X {
			dir = moveVertical
		} else {
			dir = moveHorizontal
		}
		path = append(path, next)
		cur = next
	}
	return path
}

func (pf *pathfinder) nextMove(cur model.Cell, prev moveDir) model.Cell {
	best := cur
	bestLen := pf.node(cur).pathlength
	for _, n := range cur.Neighbors() {
		if !pf.walkable(n) {
			continue
		}
		l := pf.node(n).pathlength
		if l < 0 || l > bestLen {
			continue
		}
		if l == bestLen && !pf.betterDirection(cur, n, best, prev) {
			continue
		}
		best, bestLen = n, l
	}
	return best
}

// betterDirection decides between two equally short moves: prefer turning
// away from the previous axis, then moving towards the target edge.
func (pf *pathfinder) betterDirection(from, cand, best model.Cell, prev moveDir) bool {
	switch {
	case prev == moveHorizontal && cand.X != best.X:
		return from.Y != cand.Y
	case prev == moveVertical && cand.Y != best.Y:
		return from.X != cand.X
	case prev == moveNone:
		return from.Y != cand.Y
	}
	if cand.Y == best.Y {
		return (pf.direction[0] == 1 && cand.X > best.X) || (pf.direction[0] == -1 && cand.X < best.X)
	}
	if cand.X == best.X {
		return (pf.direction[1] == 1 && cand.Y > best.Y) || (pf.direction[1] == -1 && cand.Y < best.Y)
	}
	return true
}

// PathToEdge is the route a mobile unit spawned at start would walk. The
// path begins at start and ends on the target edge, or on the closest cell
// to it when the edge is walled off. It is empty when start is blocked or
// outside the arena.
func (gs *GameState) PathToEdge(start model.Cell) []model.Cell {
	if !start.InArena() || gs.Occupied(start) {
		return nil
	}
	pf := newPathfinder(gs.Occupied, model.EdgeCells(model.TargetEdge(start)))
	pf.measure(pf.idealSearch(start))
	return pf.walk(start)
}
