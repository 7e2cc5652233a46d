package strategy

import (
	"math/rand"
	"testing"

	"github.com/nstehr/bastion/model"
	"github.com/nstehr/bastion/rules"
)

func demolisherFrame(demolishers int) *model.Frame {
	fr := &model.Frame{
		TurnInfo: []int{1, 0, 0},
		P1Stats:  []float64{30, 40, 5},
		P2Stats:  []float64{30, 40, 5},
		P1Units:  make([][]model.UnitEntry, 8),
		P2Units:  make([][]model.UnitEntry, 8),
	}
	for i := 0; i < demolishers; i++ {
		fr.P2Units[model.Demolisher] = append(fr.P2Units[model.Demolisher], model.UnitEntry{X: 14 + i, Y: 27 - i, Health: 5})
	}
	return fr
}

func TestDemolisherFlagIsSticky(t *testing.T) {
	e := newTestEngine(t, nil)
	e.OnActionFrame(demolisherFrame(1))
	e.OnActionFrame(demolisherFrame(0))

	for turn := 1; turn <= 4; turn++ {
		rep := e.OnTurn(board{turn: turn}.view(t))
		if !rep.DemolisherAlert {
			t.Errorf("turn %d: demolisher alert cleared", turn)
		}
	}
	if got := len(e.State().EnemySnapshot[model.Demolisher]); got != 1 {
		t.Errorf("snapshot demolishers = %d, want the first frame's 1", got)
	}
}

func TestDemolisherFlagSurvivesRefresh(t *testing.T) {
	e := newTestEngine(t, func(d *rules.Doctrine) { d.RefreshEnemySnapshot = true })
	e.OnActionFrame(demolisherFrame(2))
	e.OnTurn(board{turn: 1}.view(t))

	e.OnActionFrame(demolisherFrame(0))
	if got := len(e.State().EnemySnapshot[model.Demolisher]); got != 0 {
		t.Errorf("refreshed snapshot demolishers = %d, want 0", got)
	}
	if rep := e.OnTurn(board{turn: 2}.view(t)); !rep.DemolisherAlert {
		t.Error("demolisher alert cleared by a refreshed snapshot")
	}
}

func TestNoAlertWithoutDemolishers(t *testing.T) {
	e := newTestEngine(t, nil)
	e.OnActionFrame(demolisherFrame(0))
	rep := e.OnTurn(board{turn: 1, mp: 5, enemyMP: 30}.view(t))
	if rep.DemolisherAlert || rep.Intercepted {
		t.Errorf("report = %+v, want no threat", rep)
	}
}

func TestInterceptorAvoidsBlockedLanes(t *testing.T) {
	th, err := NewThreat(rules.DefaultDoctrine())
	if err != nil {
		t.Fatalf("NewThreat: %v", err)
	}
	home := model.C(13, 13)
	for seed := int64(1); seed <= 8; seed++ {
		st := NewState()
		st.EnemySnapshot = demolisherFrame(1).P2Units
		view := &fakeView{
			GameState: board{turn: 4, mp: 5, enemyMP: 20}.view(t),
			paths: map[model.Cell][]model.Cell{
				model.C(4, 9):  {model.C(4, 9), home},
				model.C(23, 9): {model.C(23, 9), home},
				model.C(7, 6):  nil,
			},
		}
		env := envFor(view, st, DamageReport{})

		cell, ok := th.Detect(view, st, env, rand.New(rand.NewSource(seed)))
		if !ok || cell != model.C(20, 6) {
			t.Errorf("seed %d: Detect = (%v, %v), want (20,6)", seed, cell, ok)
		}
		if got := commandCells(view.GameState, "SI"); len(got) != 1 || got[0] != model.C(20, 6) {
			t.Errorf("seed %d: interceptors = %v", seed, got)
		}
		if st.Cooldown != 0 {
			t.Errorf("seed %d: cooldown = %d after deploying, want 0", seed, st.Cooldown)
		}
	}
}

func TestInterceptorCooldown(t *testing.T) {
	th, err := NewThreat(rules.DefaultDoctrine())
	if err != nil {
		t.Fatalf("NewThreat: %v", err)
	}
	st := NewState()
	st.EnemySnapshot = demolisherFrame(1).P2Units
	rng := rand.New(rand.NewSource(1))

	// Quiet opponent: only the cooldown can trigger, on the third turn.
	for turn := 1; turn <= 3; turn++ {
		view := board{turn: turn, mp: 5, enemyMP: 2}.view(t)
		_, ok := th.Detect(view, st, envFor(view, st, DamageReport{}), rng)
		if want := turn == 3; ok != want {
			t.Errorf("turn %d: deployed = %v, want %v (cooldown %d)", turn, ok, want, st.Cooldown)
		}
	}
	if st.Cooldown != 0 {
		t.Errorf("cooldown = %d after deploying, want 0", st.Cooldown)
	}
}

func TestInterceptorNeedsMP(t *testing.T) {
	th, err := NewThreat(rules.DefaultDoctrine())
	if err != nil {
		t.Fatalf("NewThreat: %v", err)
	}
	st := NewState()
	st.EnemySnapshot = demolisherFrame(1).P2Units
	st.Cooldown = 5
	view := board{turn: 8, mp: 0, enemyMP: 20}.view(t)
	if _, ok := th.Detect(view, st, envFor(view, st, DamageReport{}), rand.New(rand.NewSource(3))); ok {
		t.Error("Detect deployed without MP")
	}
	if st.Cooldown != 6 {
		t.Errorf("cooldown = %d, want 6", st.Cooldown)
	}
}
