package strategy

import (
	"log/slog"
	"math/rand"

	"github.com/nstehr/bastion/model"
	"github.com/nstehr/bastion/rules"
)

// interceptorCells are the launch candidates for counter deployments.
var interceptorCells = []model.Cell{
	model.C(4, 9), model.C(23, 9), model.C(7, 6), model.C(20, 6),
}

// Threat reacts to the opponent fielding demolishers by sending
// interceptors out to meet them.
type Threat struct {
	trigger *rules.Condition
	count   int
	refresh bool
}

func NewThreat(d rules.Doctrine) (*Threat, error) {
	trigger, err := rules.CompileCondition(d.ThreatTrigger)
	if err != nil {
		return nil, err
	}
	return &Threat{trigger: trigger, count: d.InterceptorCount, refresh: d.RefreshEnemySnapshot}, nil
}

// Observe takes the enemy snapshot from an action frame. Only the first
// frame of the game is used unless refreshing is enabled.
func (th *Threat) Observe(st *State, fr *model.Frame) {
	if st.SnapshotTaken && !th.refresh {
		return
	}
	units := fr.Units(model.Opponent)
	st.EnemySnapshot = make([][]model.UnitEntry, len(units))
	for i, list := range units {
		st.EnemySnapshot[i] = append([]model.UnitEntry(nil), list...)
	}
	st.SnapshotTaken = true
}

// Detect runs once per turn. It returns the cell interceptors were sent
// from, if any.
func (th *Threat) Detect(view WorldView, st *State, env rules.Env, rng *rand.Rand) (model.Cell, bool) {
	st.Cooldown++
	env.Cooldown = st.Cooldown

	if int(model.Demolisher) < len(st.EnemySnapshot) && len(st.EnemySnapshot[model.Demolisher]) > 0 {
		if !st.DemolisherSeen {
			slog.Info("enemy demolishers spotted", "count", len(st.EnemySnapshot[model.Demolisher]))
		}
		st.DemolisherSeen = true
	}
	if !st.DemolisherSeen {
		return model.Cell{}, false
	}
	env.Threat = true

	fire, err := th.trigger.Eval(env)
	if err != nil {
		slog.Warn("threat trigger error", "condition", th.trigger.Src, "error", err)
		return model.Cell{}, false
	}
	if !fire {
		return model.Cell{}, false
	}

	for _, i := range rng.Perm(len(interceptorCells)) {
		c := interceptorCells[i]
		if view.Occupied(c) {
			continue
		}
		path := view.PathToEdge(c)
		// A path ending at home means the lane is blocked.
		if len(path) == 0 || path[len(path)-1].OnHomeSide() {
			continue
		}
		if view.Spawn(model.Interceptor, []model.Cell{c}, th.count) == 0 {
			return model.Cell{}, false
		}
		st.Cooldown = 0
		return c, true
	}
	slog.Debug("no open interceptor lane", "turn", env.Turn)
	return model.Cell{}, false
}
