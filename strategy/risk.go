package strategy

import (
	"github.com/nstehr/bastion/model"
	"github.com/nstehr/bastion/rules"
)

// PathRisk scores the lane a walker spawned at start would take: every
// enemy structure able to hit a path cell adds a weight, and a path that
// stops short of its edge adds the health of the structures around its last
// cell. ok is false when start has no path at all.
func PathRisk(view WorldView, start model.Cell, d rules.Doctrine) (risk float64, ok bool) {
	path := view.PathToEdge(start)
	if len(path) == 0 {
		return 0, false
	}
	for _, c := range path {
		for _, a := range view.AttackersAgainst(c, model.Self) {
			if a.Upgraded {
				risk += d.UpgradedRisk
			} else {
				risk += d.BasicRisk
			}
		}
	}
	last := path[len(path)-1]
	if !model.OnEdge(last, model.TargetEdge(start)) {
		for _, n := range last.Neighbors() {
			if !n.InArena() {
				continue
			}
			for _, u := range view.UnitsAt(n) {
				if u.Stationary() {
					risk += u.Health
				}
			}
		}
	}
	return risk, true
}

// LeastRisk returns the candidate with the lowest PathRisk. Ties go to the
// earliest candidate; candidates without a path are skipped.
func LeastRisk(view WorldView, candidates []model.Cell, d rules.Doctrine) (best model.Cell, risk float64, ok bool) {
	for _, c := range candidates {
		r, has := PathRisk(view, c, d)
		if !has {
			continue
		}
		if !ok || r < risk {
			best, risk, ok = c, r, true
		}
	}
	return best, risk, ok
}

// openDeployCells lists our deploy edge cells that are not built over.
func openDeployCells(view WorldView) []model.Cell {
	var out []model.Cell
	for _, c := range model.DeployEdges() {
		if !view.Occupied(c) {
			out = append(out, c)
		}
	}
	return out
}
