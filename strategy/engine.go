package strategy

import (
	"log/slog"
	"math/rand"

	"github.com/nstehr/bastion/model"
	"github.com/nstehr/bastion/rules"
)

// TurnReport summarises one decision pass.
type TurnReport struct {
	Turn int

	Defense       []string
	Damaged       int
	Refunded      int
	SupportsAdded int
	Supports      int

	Interceptor     model.Cell
	Intercepted     bool
	DemolisherAlert bool

	// Phase is the attack phase the pass acted in, Next the phase it left
	// for the following turn.
	Phase      AttackPhase
	Next       AttackPhase
	Plan       AttackPlan
	FirstWave  int
	SecondWave int
}

// Engine owns the strategy state for one game and runs the turn pipeline.
type Engine struct {
	d       rules.Doctrine
	rng     *rand.Rand
	state   *State
	defense *Defense
	threat  *Threat
	offense *Offense
}

// NewEngine builds the pipeline for one game. A nil rng is seeded from the
// doctrine.
func NewEngine(d rules.Doctrine, rng *rand.Rand) (*Engine, error) {
	d.Validate()
	if rng == nil {
		rng = rand.New(rand.NewSource(d.Seed))
	}
	defense, err := NewDefense(d)
	if err != nil {
		return nil, err
	}
	threat, err := NewThreat(d)
	if err != nil {
		return nil, err
	}
	return &Engine{
		d:       d,
		rng:     rng,
		state:   NewState(),
		defense: defense,
		threat:  threat,
		offense: NewOffense(d),
	}, nil
}

// State returns a copy of the engine's cross-turn state.
func (e *Engine) State() *State { return e.state.clone() }

// OnActionFrame feeds breach events and the enemy snapshot from an action
// frame. It returns how many opponent breaches were recorded.
func (e *Engine) OnActionFrame(fr *model.Frame) int {
	n := e.state.Breaches.Observe(fr.Events.Breach)
	if n > 0 {
		slog.Debug("breaches recorded", "count", n, "total", e.state.Breaches.Len(), "avgX", e.state.Breaches.AverageX())
	}
	e.threat.Observe(e.state, fr)
	return n
}

// OnTurn runs one decision pass against view. The pass works on a copy of
// the state, which only replaces the engine's state once the pass returns,
// so a pass that panics leaves the previous turn's state intact.
func (e *Engine) OnTurn(view WorldView) TurnReport {
	st := e.state.clone()
	rep := TurnReport{Turn: view.TurnNumber()}

	dmg := AssessDamage(view)
	rep.Damaged = len(dmg.Cells)

	rep.Interceptor, rep.Intercepted = e.threat.Detect(view, st, envFor(view, st, dmg), e.rng)
	rep.DemolisherAlert = st.DemolisherSeen

	rep.Defense = e.defense.Plan(view, st, dmg)

	plan := e.offense.Prepare(view, st)
	rep.Plan = plan
	rep.Phase = plan.Phase

	rep.SupportsAdded = BuildSupport(view, st, e.d)
	rep.Supports = len(st.Supports)

	rep.Refunded = Refund(view, dmg)

	rep.FirstWave, rep.SecondWave = e.offense.Execute(view, st, plan)
	rep.Next = st.Attack.Phase

	e.state = st
	return rep
}
