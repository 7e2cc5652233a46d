package strategy

import (
	"testing"

	"github.com/nstehr/bastion/model"
	"github.com/nstehr/bastion/rules"
)

func TestNewEngineRejectsBadGates(t *testing.T) {
	d := rules.DefaultDoctrine()
	d.Gates[rules.StepWings] = "Turn >"
	if _, err := NewEngine(d, nil); err == nil {
		t.Error("NewEngine accepted an invalid wings gate")
	}

	d = rules.DefaultDoctrine()
	d.ThreatTrigger = "EnemyGold > 3"
	if _, err := NewEngine(d, nil); err == nil {
		t.Error("NewEngine accepted an invalid threat trigger")
	}
}

func TestStateCopiesAreIndependent(t *testing.T) {
	e := newTestEngine(t, noDefense)
	e.OnTurn(board{turn: 1, sp: 9}.view(t))

	st := e.State()
	if len(st.Supports) != 2 {
		t.Fatalf("supports = %v, want 2", st.Supports)
	}
	st.Supports[0] = model.C(0, 0)
	st.Supports = append(st.Supports, model.C(1, 1))
	st.Breaches.Observe([]model.Breach{{Cell: model.C(5, 8), Owner: model.OwnerOpponent}})

	again := e.State()
	if len(again.Supports) != 2 || again.Supports[0] != model.C(14, 5) {
		t.Errorf("engine state changed through a copy: %v", again.Supports)
	}
	if again.Breaches.Len() != 0 {
		t.Errorf("breaches = %d through a copy, want 0", again.Breaches.Len())
	}
}

func TestOnActionFrameCountsOpponentBreaches(t *testing.T) {
	e := newTestEngine(t, nil)
	fr := demolisherFrame(0)
	fr.Events.Breach = []model.Breach{
		{Cell: model.C(20, 7), Owner: model.OwnerOpponent},
		{Cell: model.C(14, 27), Owner: model.OwnerSelf},
	}
	if n := e.OnActionFrame(fr); n != 1 {
		t.Errorf("OnActionFrame recorded %d breaches, want 1", n)
	}
	if got := e.State().Breaches.AverageX(); got != 20 {
		t.Errorf("AverageX = %v, want 20", got)
	}
}

func TestTurnReport(t *testing.T) {
	e := newTestEngine(t, nil)
	units := []unitSpec{{owner: model.Self, typ: model.Wall, cell: model.C(0, 13), health: 5}}
	rep := e.OnTurn(board{turn: 2, sp: 40, mp: 3, units: units}.view(t))

	if rep.Turn != 2 || rep.Damaged != 1 || rep.Refunded != 1 {
		t.Errorf("report = %+v", rep)
	}
	if rep.Phase != Idle || rep.Next != Idle || rep.Plan.Threshold != 8 {
		t.Errorf("attack fields = %s -> %s threshold %v", rep.Phase, rep.Next, rep.Plan.Threshold)
	}
	if len(rep.Defense) != 3 {
		t.Errorf("defense steps = %v, want turrets, perimeter, reinforce_front", rep.Defense)
	}
}
