package strategy

import (
	"github.com/nstehr/bastion/model"
	"github.com/nstehr/bastion/rules"
)

// supportCells is the build order of the support block, filled column by
// column from the centre.
var supportCells = []model.Cell{
	model.C(14, 5), model.C(14, 4), model.C(14, 3),
	model.C(13, 5), model.C(13, 4), model.C(13, 3),
	model.C(12, 5), model.C(12, 4), model.C(12, 3),
}

// SupportBlockSize is how many supports the full block holds.
func SupportBlockSize() int { return len(supportCells) }

// supportApproach shields the block from the front, one cell per three
// supports built.
var supportApproach = []model.Cell{model.C(14, 6), model.C(13, 6), model.C(12, 6)}

// BuildSupport extends the support block and returns how many supports were
// added to st.Supports this turn. A failed build ends the pass so the block
// always fills in order.
func BuildSupport(view WorldView, st *State, d rules.Doctrine) int {
	built := len(st.Supports)

	walls := min(built, d.SupportWallCap)/3 + 1
	for i := 0; i < walls && i < len(supportApproach); i++ {
		view.Spawn(model.Wall, supportApproach[i:i+1], 1)
	}

	added := 0
	if built < len(supportCells) {
		for _, c := range supportCells[built:] {
			if view.Spawn(model.Support, []model.Cell{c}, 1) == 0 {
				break
			}
			st.Supports = append(st.Supports, c)
			added++
		}
	} else {
		// Rebuild anything lost since it was first placed.
		view.Spawn(model.Support, supportCells, 1)
	}

	if len(st.Supports) > 0 {
		view.Upgrade(st.Supports)
	}
	return added
}
