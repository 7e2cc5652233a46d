package strategy

import "github.com/nstehr/bastion/model"

// DamageReport lists our damaged structures at the start of a turn.
type DamageReport struct {
	Cells    []model.Cell
	AverageX float64
}

// AssessDamage scans the home field for structures worth refunding.
func AssessDamage(view WorldView) DamageReport {
	var r DamageReport
	sum := 0
	for _, c := range model.HomeField() {
		for _, u := range view.UnitsAt(c) {
			if u.Owner == model.Self && u.Damaged() {
				r.Cells = append(r.Cells, c)
				sum += c.X
			}
		}
	}
	if len(r.Cells) > 0 {
		r.AverageX = float64(sum) / float64(len(r.Cells))
	}
	return r
}

// Refund marks every damaged structure for removal so part of its cost
// comes back before it is destroyed.
func Refund(view WorldView, r DamageReport) int {
	if len(r.Cells) == 0 {
		return 0
	}
	return view.Remove(r.Cells)
}
