package strategy

import "github.com/nstehr/bastion/model"

// BreachMemory is the append-only list of cells where the opponent scored
// on us this game.
type BreachMemory struct {
	cells []model.Cell
}

// Observe records the opponent's breaches from one frame and returns how
// many were added. Our own breaches are ignored.
func (b *BreachMemory) Observe(events []model.Breach) int {
	n := 0
	for _, e := range events {
		if !e.ScoredOnUs() {
			continue
		}
		b.cells = append(b.cells, e.Cell)
		n++
	}
	return n
}

func (b *BreachMemory) Len() int { return len(b.cells) }

// AverageX is the mean x of recorded breaches, 0 when there are none.
func (b *BreachMemory) AverageX() float64 {
	if len(b.cells) == 0 {
		return 0
	}
	sum := 0
	for _, c := range b.cells {
		sum += c.X
	}
	return float64(sum) / float64(len(b.cells))
}

func (b *BreachMemory) Cells() []model.Cell {
	return append([]model.Cell(nil), b.cells...)
}
